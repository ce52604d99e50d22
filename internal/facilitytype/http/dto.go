package http

import (
	"time"

	"github.com/campuskit/facility-booking-backend/internal/facilitytype"
	"github.com/campuskit/facility-booking-backend/internal/pkg/request"
)

type FacilityTypeResponse struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewResponse(t *facilitytype.FacilityType) FacilityTypeResponse {
	return FacilityTypeResponse{
		ID:          t.ID,
		Code:        t.Code,
		Name:        t.Name,
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
	}
}

type ListFacilityTypesRequest struct {
	request.ListParams
}

type CreateFacilityTypeRequest struct {
	Code        string `json:"code" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type UpdateFacilityTypeRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}
