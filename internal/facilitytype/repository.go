package facilitytype

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, ft *FacilityType) error
	GetByID(ctx context.Context, id string) (*FacilityType, error)
	GetByCode(ctx context.Context, code string) (*FacilityType, error)
	List(ctx context.Context, filter Filter) ([]*FacilityType, int, error)
	Update(ctx context.Context, ft *FacilityType) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, ft *FacilityType) error {
	const query = `
		INSERT INTO public.facility_types (code, name, description)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	err := r.pool.QueryRow(ctx, query, ft.Code, ft.Name, ft.Description).
		Scan(&ft.ID, &ft.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrCodeInUse
		}
		return fmt.Errorf("create facility type failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*FacilityType, error) {
	return r.getBy(ctx, "id", id)
}

func (r *pgxRepository) GetByCode(ctx context.Context, code string) (*FacilityType, error) {
	return r.getBy(ctx, "code", code)
}

func (r *pgxRepository) getBy(ctx context.Context, field, value string) (*FacilityType, error) {
	query := fmt.Sprintf(`
		SELECT id, code, name, description, created_at
		FROM public.facility_types
		WHERE %s = $1
	`, field)

	var ft FacilityType
	err := r.pool.QueryRow(ctx, query, value).
		Scan(&ft.ID, &ft.Code, &ft.Name, &ft.Description, &ft.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get facility type failed: %w", err)
	}
	return &ft, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*FacilityType, int, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 50
	}
	offset := (filter.Page - 1) * filter.PageSize

	const query = `
		SELECT id, code, name, description, created_at, count(*) OVER() as total_count
		FROM public.facility_types
		ORDER BY code ASC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.pool.Query(ctx, query, filter.PageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list facility types failed: %w", err)
	}
	defer rows.Close()

	var types []*FacilityType
	var total int

	for rows.Next() {
		var ft FacilityType
		if err := rows.Scan(&ft.ID, &ft.Code, &ft.Name, &ft.Description, &ft.CreatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("scan facility type failed: %w", err)
		}
		types = append(types, &ft)
	}

	return types, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, ft *FacilityType) error {
	const query = `
		UPDATE public.facility_types
		SET name = $1, description = $2
		WHERE id = $3
	`
	ct, err := r.pool.Exec(ctx, query, ft.Name, ft.Description, ft.ID)
	if err != nil {
		return fmt.Errorf("update facility type failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM public.facility_types WHERE id = $1`
	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return ErrTypeReferenced
		}
		return fmt.Errorf("delete facility type failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
