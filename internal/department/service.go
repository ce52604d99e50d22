package department

import (
	"context"
	"errors"
	"strings"

	"github.com/campuskit/facility-booking-backend/internal/user"
)

type UpdateRequest struct {
	Name     *string
	IsActive *bool
}

type AddMemberRequest struct {
	UserID string
	Role   string
}

// Service defines business logic for departments and their members.
type Service interface {
	Create(ctx context.Context, name string) (*Department, error)
	GetByID(ctx context.Context, id string) (*Department, error)
	List(ctx context.Context, filter Filter) ([]*Department, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Department, error)
	Delete(ctx context.Context, id string) error

	AddMember(ctx context.Context, deptID string, req AddMemberRequest) error
	RemoveMember(ctx context.Context, deptID, userID string) error
	ListMembers(ctx context.Context, deptID string, filter MemberFilter) ([]*Member, int, error)
	SetMemberRole(ctx context.Context, deptID, userID, role string) error

	// IsManager reports whether the user may review bookings for the
	// department's facilities.
	IsManager(ctx context.Context, deptID, userID string) (bool, error)
}

type service struct {
	repo        Repository
	userService user.Service
}

// NewService creates a new department service.
func NewService(repo Repository, userService user.Service) Service {
	return &service{repo: repo, userService: userService}
}

func (s *service) Create(ctx context.Context, name string) (*Department, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	d := &Department{
		Name:     name,
		IsActive: true,
	}

	if err := s.repo.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Department, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Department, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Department, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		d.Name = name
	}
	if req.IsActive != nil {
		d.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) AddMember(ctx context.Context, deptID string, req AddMemberRequest) error {
	if req.Role != RoleManager && req.Role != RoleMember {
		return ErrInvalidRole
	}

	if _, err := s.repo.GetByID(ctx, deptID); err != nil {
		return err
	}

	if _, err := s.userService.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	return s.repo.AddMember(ctx, deptID, req.UserID, req.Role)
}

func (s *service) RemoveMember(ctx context.Context, deptID, userID string) error {
	if _, err := s.repo.GetByID(ctx, deptID); err != nil {
		return err
	}
	return s.repo.RemoveMember(ctx, deptID, userID)
}

func (s *service) ListMembers(ctx context.Context, deptID string, filter MemberFilter) ([]*Member, int, error) {
	if _, err := s.repo.GetByID(ctx, deptID); err != nil {
		return nil, 0, err
	}
	return s.repo.ListMembers(ctx, deptID, filter)
}

func (s *service) SetMemberRole(ctx context.Context, deptID, userID, role string) error {
	if role != RoleManager && role != RoleMember {
		return ErrInvalidRole
	}
	if _, err := s.repo.GetByID(ctx, deptID); err != nil {
		return err
	}
	return s.repo.SetMemberRole(ctx, deptID, userID, role)
}

func (s *service) IsManager(ctx context.Context, deptID, userID string) (bool, error) {
	m, err := s.repo.GetMember(ctx, deptID, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return false, nil
		}
		return false, err
	}
	return m.Role == RoleManager, nil
}
