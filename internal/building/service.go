package building

import (
	"context"
	"regexp"
	"strings"
)

// hoursPattern accepts HH:MM with optional seconds.
var hoursPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d(:[0-5]\d)?$`)

type CreateRequest struct {
	Name              string
	CampusArea        string
	Address           string
	OpeningHoursStart string
	OpeningHoursEnd   string
	Description       string
}

type UpdateRequest struct {
	Name              *string
	CampusArea        *string
	Address           *string
	OpeningHoursStart *string
	OpeningHoursEnd   *string
	Description       *string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Building, error)
	GetByID(ctx context.Context, id string) (*Building, error)
	List(ctx context.Context, filter Filter) ([]*Building, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Building, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Building, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}

	start := req.OpeningHoursStart
	end := req.OpeningHoursEnd
	if start == "" {
		start = "08:00:00"
	}
	if end == "" {
		end = "22:00:00"
	}
	if !hoursPattern.MatchString(start) || !hoursPattern.MatchString(end) {
		return nil, ErrInvalidHours
	}

	b := &Building{
		Name:              strings.TrimSpace(req.Name),
		CampusArea:        req.CampusArea,
		Address:           req.Address,
		OpeningHoursStart: start,
		OpeningHoursEnd:   end,
		Description:       req.Description,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Building, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Building, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Building, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrNameRequired
		}
		b.Name = strings.TrimSpace(*req.Name)
	}
	if req.CampusArea != nil {
		b.CampusArea = *req.CampusArea
	}
	if req.Address != nil {
		b.Address = *req.Address
	}
	if req.OpeningHoursStart != nil {
		if !hoursPattern.MatchString(*req.OpeningHoursStart) {
			return nil, ErrInvalidHours
		}
		b.OpeningHoursStart = *req.OpeningHoursStart
	}
	if req.OpeningHoursEnd != nil {
		if !hoursPattern.MatchString(*req.OpeningHoursEnd) {
			return nil, ErrInvalidHours
		}
		b.OpeningHoursEnd = *req.OpeningHoursEnd
	}
	if req.Description != nil {
		b.Description = *req.Description
	}

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
