package department

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
	Create(ctx context.Context, d *Department) error
	GetByID(ctx context.Context, id string) (*Department, error)
	List(ctx context.Context, filter Filter) ([]*Department, int, error)
	Update(ctx context.Context, d *Department) error
	Delete(ctx context.Context, id string) error

	AddMember(ctx context.Context, deptID, userID, role string) error
	RemoveMember(ctx context.Context, deptID, userID string) error
	GetMember(ctx context.Context, deptID, userID string) (*Member, error)
	ListMembers(ctx context.Context, deptID string, filter MemberFilter) ([]*Member, int, error)
	SetMemberRole(ctx context.Context, deptID, userID, role string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, d *Department) error {
	const query = `
		INSERT INTO public.departments (name, is_active)
		VALUES ($1, $2)
		RETURNING id, created_at
	`
	err := r.pool.QueryRow(ctx, query, d.Name, d.IsActive).Scan(&d.ID, &d.CreatedAt)
	if err != nil {
		return fmt.Errorf("create department failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Department, error) {
	const query = `
		SELECT id, name, is_active, created_at
		FROM public.departments
		WHERE id = $1
	`
	var d Department
	err := r.pool.QueryRow(ctx, query, id).Scan(&d.ID, &d.Name, &d.IsActive, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get department failed: %w", err)
	}
	return &d, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Department, int, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	const query = `
		SELECT id, name, is_active, created_at, count(*) OVER() as total_count
		FROM public.departments
		ORDER BY name ASC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.pool.Query(ctx, query, filter.PageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list departments failed: %w", err)
	}
	defer rows.Close()

	var departments []*Department
	var total int

	for rows.Next() {
		var d Department
		if err := rows.Scan(&d.ID, &d.Name, &d.IsActive, &d.CreatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("scan department failed: %w", err)
		}
		departments = append(departments, &d)
	}

	return departments, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, d *Department) error {
	const query = `
		UPDATE public.departments
		SET name = $1, is_active = $2
		WHERE id = $3
	`
	ct, err := r.pool.Exec(ctx, query, d.Name, d.IsActive, d.ID)
	if err != nil {
		return fmt.Errorf("update department failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM public.departments WHERE id = $1`
	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete department failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) AddMember(ctx context.Context, deptID, userID, role string) error {
	const query = `
		INSERT INTO public.department_members (department_id, user_id, role)
		VALUES ($1, $2, $3)
	`
	if _, err := r.pool.Exec(ctx, query, deptID, userID, role); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrAlreadyMember
		}
		return fmt.Errorf("add department member failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) RemoveMember(ctx context.Context, deptID, userID string) error {
	const query = `
		DELETE FROM public.department_members
		WHERE department_id = $1 AND user_id = $2
	`
	ct, err := r.pool.Exec(ctx, query, deptID, userID)
	if err != nil {
		return fmt.Errorf("remove department member failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *pgxRepository) GetMember(ctx context.Context, deptID, userID string) (*Member, error) {
	const query = `
		SELECT m.user_id, u.email, u.display_name, m.role
		FROM public.department_members m
		JOIN public.users u ON m.user_id = u.id
		WHERE m.department_id = $1 AND m.user_id = $2
	`
	var m Member
	err := r.pool.QueryRow(ctx, query, deptID, userID).Scan(&m.UserID, &m.Email, &m.DisplayName, &m.Role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get department member failed: %w", err)
	}
	return &m, nil
}

func (r *pgxRepository) ListMembers(ctx context.Context, deptID string, filter MemberFilter) ([]*Member, int, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	const query = `
		SELECT m.user_id, u.email, u.display_name, m.role, count(*) OVER() as total_count
		FROM public.department_members m
		JOIN public.users u ON m.user_id = u.id
		WHERE m.department_id = $1
		ORDER BY u.email ASC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.pool.Query(ctx, query, deptID, filter.PageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list department members failed: %w", err)
	}
	defer rows.Close()

	var members []*Member
	var total int

	for rows.Next() {
		var m Member
		if err := rows.Scan(&m.UserID, &m.Email, &m.DisplayName, &m.Role, &total); err != nil {
			return nil, 0, fmt.Errorf("scan department member failed: %w", err)
		}
		members = append(members, &m)
	}

	return members, total, nil
}

func (r *pgxRepository) SetMemberRole(ctx context.Context, deptID, userID, role string) error {
	const query = `
		UPDATE public.department_members
		SET role = $1
		WHERE department_id = $2 AND user_id = $3
	`
	ct, err := r.pool.Exec(ctx, query, role, deptID, userID)
	if err != nil {
		return fmt.Errorf("set department member role failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}
