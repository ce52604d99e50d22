package facility

import (
	"context"
	"strings"

	"github.com/campuskit/facility-booking-backend/internal/building"
	"github.com/campuskit/facility-booking-backend/internal/department"
	"github.com/campuskit/facility-booking-backend/internal/facilitytype"
)

type CreateRequest struct {
	Name                 string
	TypeCode             string
	BuildingID           string
	DepartmentID         string
	Capacity             int
	IsRestricted         bool
	MinBookingMinutes    int
	MaxBookingMinutes    int
	BufferMinutesBetween int
	Description          string
}

type UpdateRequest struct {
	Name                 *string
	Capacity             *int
	IsRestricted         *bool
	Active               *bool
	MaintenanceMode      *bool
	MinBookingMinutes    *int
	MaxBookingMinutes    *int
	BufferMinutesBetween *int
	Description          *string
	PhotoFileID          *string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Facility, error)
	GetByID(ctx context.Context, id string) (*Facility, error)
	GetByIDs(ctx context.Context, ids []string) ([]*Facility, error)
	List(ctx context.Context, filter Filter) ([]*Facility, int, error)
	ListActiveByType(ctx context.Context, typeCode string) ([]*Facility, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Facility, error)
	// Deactivate is the soft delete: the facility stays referenced by
	// historical bookings but accepts no new ones.
	Deactivate(ctx context.Context, id string) error
}

type service struct {
	repo        Repository
	bldgService building.Service
	deptService department.Service
	typeService facilitytype.Service
}

func NewService(
	repo Repository,
	bldgService building.Service,
	deptService department.Service,
	typeService facilitytype.Service,
) Service {
	return &service{
		repo:        repo,
		bldgService: bldgService,
		deptService: deptService,
		typeService: typeService,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Facility, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyName
	}
	if req.Capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	if req.MinBookingMinutes > 0 && req.MaxBookingMinutes > 0 &&
		req.MinBookingMinutes > req.MaxBookingMinutes {
		return nil, ErrInvalidDuration
	}

	// The type code must exist in the registry.
	if _, err := s.typeService.GetByCode(ctx, req.TypeCode); err != nil {
		return nil, ErrInvalidType
	}
	if _, err := s.bldgService.GetByID(ctx, req.BuildingID); err != nil {
		return nil, ErrInvalidBuilding
	}
	if _, err := s.deptService.GetByID(ctx, req.DepartmentID); err != nil {
		return nil, ErrInvalidDept
	}

	f := &Facility{
		Name:                 strings.TrimSpace(req.Name),
		TypeCode:             req.TypeCode,
		BuildingID:           req.BuildingID,
		DepartmentID:         req.DepartmentID,
		Capacity:             req.Capacity,
		IsRestricted:         req.IsRestricted,
		Active:               true,
		MinBookingMinutes:    req.MinBookingMinutes,
		MaxBookingMinutes:    req.MaxBookingMinutes,
		BufferMinutesBetween: req.BufferMinutesBetween,
		Description:          req.Description,
	}

	if err := s.repo.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Facility, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetByIDs(ctx context.Context, ids []string) ([]*Facility, error) {
	return s.repo.GetByIDs(ctx, ids)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Facility, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) ListActiveByType(ctx context.Context, typeCode string) ([]*Facility, error) {
	return s.repo.ListActiveByType(ctx, typeCode)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Facility, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrEmptyName
		}
		f.Name = strings.TrimSpace(*req.Name)
	}
	if req.Capacity != nil {
		if *req.Capacity <= 0 {
			return nil, ErrInvalidCapacity
		}
		f.Capacity = *req.Capacity
	}
	if req.IsRestricted != nil {
		f.IsRestricted = *req.IsRestricted
	}
	if req.Active != nil {
		f.Active = *req.Active
	}
	if req.MaintenanceMode != nil {
		f.MaintenanceMode = *req.MaintenanceMode
	}
	if req.MinBookingMinutes != nil {
		f.MinBookingMinutes = *req.MinBookingMinutes
	}
	if req.MaxBookingMinutes != nil {
		f.MaxBookingMinutes = *req.MaxBookingMinutes
	}
	if f.MinBookingMinutes > 0 && f.MaxBookingMinutes > 0 &&
		f.MinBookingMinutes > f.MaxBookingMinutes {
		return nil, ErrInvalidDuration
	}
	if req.BufferMinutesBetween != nil {
		f.BufferMinutesBetween = *req.BufferMinutesBetween
	}
	if req.Description != nil {
		f.Description = *req.Description
	}
	if req.PhotoFileID != nil {
		f.PhotoFileID = req.PhotoFileID
	}

	if err := s.repo.Update(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *service) Deactivate(ctx context.Context, id string) error {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	f.Active = false
	return s.repo.Update(ctx, f)
}
