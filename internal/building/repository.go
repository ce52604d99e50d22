package building

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, b *Building) error
	GetByID(ctx context.Context, id string) (*Building, error)
	List(ctx context.Context, filter Filter) ([]*Building, int, error)
	Update(ctx context.Context, b *Building) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const buildingColumns = "id, name, campus_area, address, opening_hours_start, opening_hours_end, description, created_at"

func (r *pgxRepository) Create(ctx context.Context, b *Building) error {
	const query = `
		INSERT INTO public.buildings (name, campus_area, address, opening_hours_start, opening_hours_end, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	err := r.pool.QueryRow(ctx, query,
		b.Name, b.CampusArea, b.Address, b.OpeningHoursStart, b.OpeningHoursEnd, b.Description,
	).Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		return fmt.Errorf("create building failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Building, error) {
	query := fmt.Sprintf(`SELECT %s FROM public.buildings WHERE id = $1`, buildingColumns)
	row := r.pool.QueryRow(ctx, query, id)

	var b Building
	if err := row.Scan(
		&b.ID, &b.Name, &b.CampusArea, &b.Address,
		&b.OpeningHoursStart, &b.OpeningHoursEnd, &b.Description, &b.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get building failed: %w", err)
	}
	return &b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Building, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"id", "name", "campus_area", "address",
		"opening_hours_start", "opening_hours_end", "description", "created_at",
		"count(*) OVER() as total_count",
	).From("public.buildings")

	if filter.Keyword != "" {
		kw := "%" + filter.Keyword + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"name": kw},
			squirrel.ILike{"address": kw},
		})
	}
	if filter.CampusArea != "" {
		query = query.Where(squirrel.Eq{"campus_area": filter.CampusArea})
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
		return nil, 0, fmt.Errorf("build list buildings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list buildings failed: %w", err)
	}
	defer rows.Close()

	var buildings []*Building
	var total int

	for rows.Next() {
		var b Building
		if err := rows.Scan(
			&b.ID, &b.Name, &b.CampusArea, &b.Address,
			&b.OpeningHoursStart, &b.OpeningHoursEnd, &b.Description, &b.CreatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan building failed: %w", err)
		}
		buildings = append(buildings, &b)
	}

	return buildings, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, b *Building) error {
	const query = `
		UPDATE public.buildings
		SET name = $1, campus_area = $2, address = $3,
		    opening_hours_start = $4, opening_hours_end = $5, description = $6
		WHERE id = $7
	`
	ct, err := r.pool.Exec(ctx, query,
		b.Name, b.CampusArea, b.Address,
		b.OpeningHoursStart, b.OpeningHoursEnd, b.Description, b.ID,
	)
	if err != nil {
		return fmt.Errorf("update building failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM public.buildings WHERE id = $1`
	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete building failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
