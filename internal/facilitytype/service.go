package facilitytype

import (
	"context"
	"regexp"
	"strings"
)

var codePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

type CreateRequest struct {
	Code        string
	Name        string
	Description string
}

type UpdateRequest struct {
	Name        *string
	Description *string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*FacilityType, error)
	GetByID(ctx context.Context, id string) (*FacilityType, error)
	GetByCode(ctx context.Context, code string) (*FacilityType, error)
	List(ctx context.Context, filter Filter) ([]*FacilityType, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*FacilityType, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*FacilityType, error) {
	code := strings.TrimSpace(req.Code)
	if code == "" {
		return nil, ErrCodeRequired
	}
	if !codePattern.MatchString(code) {
		return nil, ErrInvalidCode
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}

	ft := &FacilityType{
		Code:        code,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
	}

	if err := s.repo.Create(ctx, ft); err != nil {
		return nil, err
	}
	return ft, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*FacilityType, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetByCode(ctx context.Context, code string) (*FacilityType, error) {
	return s.repo.GetByCode(ctx, code)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*FacilityType, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*FacilityType, error) {
	ft, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrNameRequired
		}
		ft.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		ft.Description = *req.Description
	}

	if err := s.repo.Update(ctx, ft); err != nil {
		return nil, err
	}
	return ft, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
