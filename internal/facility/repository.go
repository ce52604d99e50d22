package facility

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, f *Facility) error
	GetByID(ctx context.Context, id string) (*Facility, error)
	GetByIDs(ctx context.Context, ids []string) ([]*Facility, error)
	List(ctx context.Context, filter Filter) ([]*Facility, int, error)
	// ListActiveByType returns every bookable facility of the given
	// type code. This is the capacity pool for saturation checks.
	ListActiveByType(ctx context.Context, typeCode string) ([]*Facility, error)
	Update(ctx context.Context, f *Facility) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const facilityColumns = `id, name, type_code, building_id, department_id, capacity,
	is_restricted, active, maintenance_mode,
	min_booking_minutes, max_booking_minutes, buffer_minutes_between,
	description, photo_file_id, created_at`

func scanFacility(row pgx.Row, f *Facility, extra ...any) error {
	dest := []any{
		&f.ID, &f.Name, &f.TypeCode, &f.BuildingID, &f.DepartmentID, &f.Capacity,
		&f.IsRestricted, &f.Active, &f.MaintenanceMode,
		&f.MinBookingMinutes, &f.MaxBookingMinutes, &f.BufferMinutesBetween,
		&f.Description, &f.PhotoFileID, &f.CreatedAt,
	}
	dest = append(dest, extra...)
	return row.Scan(dest...)
}

func (r *pgxRepository) Create(ctx context.Context, f *Facility) error {
	const query = `
		INSERT INTO public.facilities
			(name, type_code, building_id, department_id, capacity,
			 is_restricted, active, maintenance_mode,
			 min_booking_minutes, max_booking_minutes, buffer_minutes_between,
			 description, photo_file_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at
	`
	err := r.pool.QueryRow(ctx, query,
		f.Name, f.TypeCode, f.BuildingID, f.DepartmentID, f.Capacity,
		f.IsRestricted, f.Active, f.MaintenanceMode,
		f.MinBookingMinutes, f.MaxBookingMinutes, f.BufferMinutesBetween,
		f.Description, f.PhotoFileID,
	).Scan(&f.ID, &f.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return ErrInvalidType
		}
		return fmt.Errorf("create facility failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Facility, error) {
	query := fmt.Sprintf(`SELECT %s FROM public.facilities WHERE id = $1`, facilityColumns)

	var f Facility
	if err := scanFacility(r.pool.QueryRow(ctx, query, id), &f); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get facility failed: %w", err)
	}
	return &f, nil
}

func (r *pgxRepository) GetByIDs(ctx context.Context, ids []string) ([]*Facility, error) {
	query := fmt.Sprintf(`SELECT %s FROM public.facilities WHERE id = ANY($1)`, facilityColumns)

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("get facilities failed: %w", err)
	}
	defer rows.Close()

	var facilities []*Facility
	for rows.Next() {
		var f Facility
		if err := scanFacility(rows, &f); err != nil {
			return nil, fmt.Errorf("scan facility failed: %w", err)
		}
		facilities = append(facilities, &f)
	}
	return facilities, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Facility, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"id", "name", "type_code", "building_id", "department_id", "capacity",
		"is_restricted", "active", "maintenance_mode",
		"min_booking_minutes", "max_booking_minutes", "buffer_minutes_between",
		"description", "photo_file_id", "created_at",
		"count(*) OVER() as total_count",
	).From("public.facilities")

	if filter.BuildingID != "" {
		query = query.Where(squirrel.Eq{"building_id": filter.BuildingID})
	}
	if filter.DepartmentID != "" {
		query = query.Where(squirrel.Eq{"department_id": filter.DepartmentID})
	}
	if filter.TypeCode != "" {
		query = query.Where(squirrel.Eq{"type_code": filter.TypeCode})
	}
	if filter.ActiveOnly {
		query = query.Where(squirrel.Eq{"active": true})
	}
	if filter.Keyword != "" {
		query = query.Where(squirrel.ILike{"name": "%" + filter.Keyword + "%"})
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	query = query.OrderBy("name ASC").
		Limit(uint64(filter.PageSize)).
		Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list facilities query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list facilities failed: %w", err)
	}
	defer rows.Close()

	var facilities []*Facility
	var total int

	for rows.Next() {
		var f Facility
		if err := scanFacility(rows, &f, &total); err != nil {
			return nil, 0, fmt.Errorf("scan facility failed: %w", err)
		}
		facilities = append(facilities, &f)
	}

	return facilities, total, nil
}

func (r *pgxRepository) ListActiveByType(ctx context.Context, typeCode string) ([]*Facility, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM public.facilities
		WHERE type_code = $1 AND active = true AND maintenance_mode = false
	`, facilityColumns)

	rows, err := r.pool.Query(ctx, query, typeCode)
	if err != nil {
		return nil, fmt.Errorf("list facilities by type failed: %w", err)
	}
	defer rows.Close()

	var facilities []*Facility
	for rows.Next() {
		var f Facility
		if err := scanFacility(rows, &f); err != nil {
			return nil, fmt.Errorf("scan facility failed: %w", err)
		}
		facilities = append(facilities, &f)
	}
	return facilities, nil
}

func (r *pgxRepository) Update(ctx context.Context, f *Facility) error {
	const query = `
		UPDATE public.facilities
		SET name = $1, capacity = $2, is_restricted = $3, active = $4,
		    maintenance_mode = $5, min_booking_minutes = $6, max_booking_minutes = $7,
		    buffer_minutes_between = $8, description = $9, photo_file_id = $10
		WHERE id = $11
	`
	ct, err := r.pool.Exec(ctx, query,
		f.Name, f.Capacity, f.IsRestricted, f.Active,
		f.MaintenanceMode, f.MinBookingMinutes, f.MaxBookingMinutes,
		f.BufferMinutesBetween, f.Description, f.PhotoFileID, f.ID,
	)
	if err != nil {
		return fmt.Errorf("update facility failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM public.facilities WHERE id = $1`
	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return ErrStillReferenced
		}
		return fmt.Errorf("delete facility failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
