package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	// Create persists a booking and its per-facility period rows in one
	// transaction. The partial exclusion constraint on the period rows
	// is the storage-level overlap guarantee: a commit racing against a
	// concurrent overlapping insert loses with ErrTimeConflict, which
	// the service retries as a fresh decide+insert cycle.
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	// UpdateSchedule moves a booking's window, rewriting the period
	// rows under the same exclusion constraint.
	UpdateSchedule(ctx context.Context, b *Booking, entry AuditEntry) error
	// UpdateStatus writes the status, approval and check-in fields,
	// appends the audit entry, and releases the period rows when the
	// new status no longer holds its window.
	UpdateStatus(ctx context.Context, b *Booking, entry AuditEntry) error
	// ListForFacilityRange returns bookings on one facility whose
	// window intersects [from, to), regardless of status.
	ListForFacilityRange(ctx context.Context, facilityID string, from, to time.Time) ([]*Booking, error)
	// ExpireOverdue marks approved bookings whose end passed before the
	// cutoff as expired and releases their windows. Returns the number
	// of bookings expired.
	ExpireOverdue(ctx context.Context, cutoff time.Time) (int, error)

	HasConflict(ctx context.Context, facilityIDs []string, start, end time.Time, excludeBookingID string) (bool, error)
	ReservedFacilities(ctx context.Context, facilityIDs []string, start, end time.Time) ([]string, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const bookingColumns = `b.id, b.user_id, u.display_name, b.purpose, b.start_time, b.end_time,
	b.status, b.is_external,
	b.approval_type, b.approver_id, b.approved_at, b.approval_notes,
	b.check_in_code, b.checked_in_at, b.checked_out_at,
	b.audit, b.created_at, b.updated_at,
	(SELECT array_agg(bf.facility_id ORDER BY bf.facility_id)
	 FROM public.booking_facilities bf
	 WHERE bf.booking_id = b.id) AS facility_ids`

func scanBooking(row pgx.Row, b *Booking, extra ...any) error {
	var approvalType *string
	dest := []any{
		&b.ID, &b.UserID, &b.UserName, &b.Purpose, &b.StartTime, &b.EndTime,
		&b.Status, &b.IsExternal,
		&approvalType, &b.Approval.ApproverID, &b.Approval.ApprovedAt, &b.Approval.Notes,
		&b.CheckInCode, &b.CheckedInAt, &b.CheckedOutAt,
		&b.Audit, &b.CreatedAt, &b.UpdatedAt,
		&b.FacilityIDs,
	}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		return err
	}
	if approvalType != nil {
		b.Approval.Type = ApprovalType(*approvalType)
	}
	return nil
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create booking failed: %w", err)
	}
	defer tx.Rollback(ctx)

	const insertBooking = `
		INSERT INTO public.bookings
			(user_id, purpose, start_time, end_time, status, is_external,
			 approval_type, approver_id, approved_at, approval_notes,
			 check_in_code, audit)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at
	`
	var approvalType any
	if b.Approval.Type != "" {
		approvalType = string(b.Approval.Type)
	}

	err = tx.QueryRow(ctx, insertBooking,
		b.UserID, b.Purpose, b.StartTime, b.EndTime, b.Status, b.IsExternal,
		approvalType, b.Approval.ApproverID, b.Approval.ApprovedAt, b.Approval.Notes,
		b.CheckInCode, b.Audit,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert booking failed: %w", err)
	}

	const insertPeriod = `
		INSERT INTO public.booking_facilities (booking_id, facility_id, period, active)
		VALUES ($1, $2, tstzrange($3, $4, '[)'), $5)
	`
	active := b.Status.BlocksConflict()
	for _, facilityID := range b.FacilityIDs {
		if _, err := tx.Exec(ctx, insertPeriod, b.ID, facilityID, b.StartTime, b.EndTime, active); err != nil {
			if isExclusionViolation(err) {
				return ErrTimeConflict
			}
			return fmt.Errorf("insert booking facility failed: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		if isExclusionViolation(err) {
			return ErrTimeConflict
		}
		return fmt.Errorf("commit create booking failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM public.bookings b
		JOIN public.users u ON b.user_id = u.id
		WHERE b.id = $1
	`, bookingColumns)

	var b Booking
	if err := scanBooking(r.pool.QueryRow(ctx, query, id), &b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return &b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(bookingColumns, "count(*) OVER() as total_count").
		From("public.bookings b").
		Join("public.users u ON b.user_id = u.id")

	if filter.UserID != "" {
		query = query.Where(squirrel.Eq{"b.user_id": filter.UserID})
	}
	if filter.FacilityID != "" {
		query = query.Where(squirrel.Expr(
			"EXISTS (SELECT 1 FROM public.booking_facilities bf WHERE bf.booking_id = b.id AND bf.facility_id = ?)",
			filter.FacilityID,
		))
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"b.status": filter.Status})
	}
	// Date range filtering (intersection logic).
	if filter.StartTime != nil {
		query = query.Where(squirrel.GtOrEq{"b.end_time": filter.StartTime})
	}
	if filter.EndTime != nil {
		query = query.Where(squirrel.LtOrEq{"b.start_time": filter.EndTime})
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	query = query.OrderBy("b.start_time DESC").
		Limit(uint64(filter.PageSize)).
		Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int

	for rows.Next() {
		var b Booking
		if err := scanBooking(rows, &b, &total); err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}

	return bookings, total, nil
}

func (r *pgxRepository) UpdateSchedule(ctx context.Context, b *Booking, entry AuditEntry) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin update schedule failed: %w", err)
	}
	defer tx.Rollback(ctx)

	const updateBooking = `
		UPDATE public.bookings
		SET start_time = $1, end_time = $2,
		    audit = audit || $3::jsonb, updated_at = now()
		WHERE id = $4
		RETURNING updated_at
	`
	err = tx.QueryRow(ctx, updateBooking, b.StartTime, b.EndTime, entry, b.ID).
		Scan(&b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("update booking schedule failed: %w", err)
	}

	const updatePeriods = `
		UPDATE public.booking_facilities
		SET period = tstzrange($1, $2, '[)')
		WHERE booking_id = $3
	`
	if _, err := tx.Exec(ctx, updatePeriods, b.StartTime, b.EndTime, b.ID); err != nil {
		if isExclusionViolation(err) {
			return ErrTimeConflict
		}
		return fmt.Errorf("update booking periods failed: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		if isExclusionViolation(err) {
			return ErrTimeConflict
		}
		return fmt.Errorf("commit update schedule failed: %w", err)
	}

	b.Audit = append(b.Audit, entry)
	return nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, b *Booking, entry AuditEntry) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin update status failed: %w", err)
	}
	defer tx.Rollback(ctx)

	const updateBooking = `
		UPDATE public.bookings
		SET status = $1,
		    approval_type = $2, approver_id = $3, approved_at = $4, approval_notes = $5,
		    checked_in_at = $6, checked_out_at = $7,
		    audit = audit || $8::jsonb, updated_at = now()
		WHERE id = $9
		RETURNING updated_at
	`
	var approvalType any
	if b.Approval.Type != "" {
		approvalType = string(b.Approval.Type)
	}

	err = tx.QueryRow(ctx, updateBooking,
		b.Status,
		approvalType, b.Approval.ApproverID, b.Approval.ApprovedAt, b.Approval.Notes,
		b.CheckedInAt, b.CheckedOutAt,
		entry, b.ID,
	).Scan(&b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("update booking status failed: %w", err)
	}

	if !b.Status.BlocksConflict() {
		const releasePeriods = `
			UPDATE public.booking_facilities
			SET active = false
			WHERE booking_id = $1
		`
		if _, err := tx.Exec(ctx, releasePeriods, b.ID); err != nil {
			return fmt.Errorf("release booking periods failed: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit update status failed: %w", err)
	}

	b.Audit = append(b.Audit, entry)
	return nil
}

func (r *pgxRepository) ListForFacilityRange(ctx context.Context, facilityID string, from, to time.Time) ([]*Booking, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM public.bookings b
		JOIN public.users u ON b.user_id = u.id
		WHERE EXISTS (
			SELECT 1 FROM public.booking_facilities bf
			WHERE bf.booking_id = b.id AND bf.facility_id = $1
		)
		AND b.start_time < $3 AND b.end_time > $2
		ORDER BY b.start_time ASC
	`, bookingColumns)

	rows, err := r.pool.Query(ctx, query, facilityID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list facility bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		var b Booking
		if err := scanBooking(rows, &b); err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}
	return bookings, nil
}

func (r *pgxRepository) ExpireOverdue(ctx context.Context, cutoff time.Time) (int, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin expire overdue failed: %w", err)
	}
	defer tx.Rollback(ctx)

	const expire = `
		UPDATE public.bookings
		SET status = $1,
		    audit = audit || jsonb_build_object('action', 'expire', 'actor_id', 'system', 'at', to_jsonb(now())),
		    updated_at = now()
		WHERE status = $2 AND end_time < $3
		RETURNING id
	`
	rows, err := tx.Query(ctx, expire, StatusExpired, StatusApproved, cutoff)
	if err != nil {
		return 0, fmt.Errorf("expire overdue bookings failed: %w", err)
	}

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return 0, fmt.Errorf("scan expired booking id failed: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()

	if len(ids) == 0 {
		return 0, tx.Commit(ctx)
	}

	const release = `
		UPDATE public.booking_facilities
		SET active = false
		WHERE booking_id = ANY($1)
	`
	if _, err := tx.Exec(ctx, release, ids); err != nil {
		return 0, fmt.Errorf("release expired booking periods failed: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit expire overdue failed: %w", err)
	}
	return len(ids), nil
}

func (r *pgxRepository) HasConflict(ctx context.Context, facilityIDs []string, start, end time.Time, excludeBookingID string) (bool, error) {
	// A booking conflicts iff it still holds its window, shares a
	// facility, and its half-open interval intersects [start, end).
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	subQuery := psql.Select("1").
		From("public.booking_facilities bf").
		Join("public.bookings b ON b.id = bf.booking_id").
		Where(squirrel.Expr("bf.facility_id = ANY(?)", facilityIDs)).
		Where(squirrel.NotEq{"b.status": conflictExemptStatuses}).
		Where(squirrel.Lt{"b.start_time": end}).
		Where(squirrel.Gt{"b.end_time": start})

	if excludeBookingID != "" {
		subQuery = subQuery.Where(squirrel.NotEq{"b.id": excludeBookingID})
	}

	sql, args, err := subQuery.ToSql()
	if err != nil {
		return false, fmt.Errorf("build check overlap query failed: %w", err)
	}

	query := "SELECT EXISTS (" + sql + ")"

	var exists bool
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("check overlap failed: %w", err)
	}
	return exists, nil
}

func (r *pgxRepository) ReservedFacilities(ctx context.Context, facilityIDs []string, start, end time.Time) ([]string, error) {
	const query = `
		SELECT DISTINCT bf.facility_id
		FROM public.booking_facilities bf
		JOIN public.bookings b ON b.id = bf.booking_id
		WHERE bf.facility_id = ANY($1)
		  AND b.status != ALL($2)
		  AND b.start_time < $4 AND b.end_time > $3
	`
	rows, err := r.pool.Query(ctx, query, facilityIDs, conflictExemptStatuses, start, end)
	if err != nil {
		return nil, fmt.Errorf("list reserved facilities failed: %w", err)
	}
	defer rows.Close()

	var reserved []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan reserved facility failed: %w", err)
		}
		reserved = append(reserved, id)
	}
	return reserved, nil
}

// isExclusionViolation reports whether the error is the GiST exclusion
// constraint on booking_facilities rejecting an overlapping period.
func isExclusionViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ExclusionViolation
}
