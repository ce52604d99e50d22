package http

import (
	"time"

	"github.com/campuskit/facility-booking-backend/internal/building"
	"github.com/campuskit/facility-booking-backend/internal/pkg/request"
)

type BuildingResponse struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	CampusArea        string    `json:"campus_area,omitempty"`
	Address           string    `json:"address,omitempty"`
	OpeningHoursStart string    `json:"opening_hours_start"`
	OpeningHoursEnd   string    `json:"opening_hours_end"`
	Description       string    `json:"description,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

func NewResponse(b *building.Building) BuildingResponse {
	return BuildingResponse{
		ID:                b.ID,
		Name:              b.Name,
		CampusArea:        b.CampusArea,
		Address:           b.Address,
		OpeningHoursStart: b.OpeningHoursStart,
		OpeningHoursEnd:   b.OpeningHoursEnd,
		Description:       b.Description,
		CreatedAt:         b.CreatedAt,
	}
}

type ListBuildingsRequest struct {
	request.ListParams
	Keyword    string `form:"keyword"`
	CampusArea string `form:"campus_area"`
}

type CreateBuildingRequest struct {
	Name              string `json:"name" binding:"required"`
	CampusArea        string `json:"campus_area"`
	Address           string `json:"address"`
	OpeningHoursStart string `json:"opening_hours_start"`
	OpeningHoursEnd   string `json:"opening_hours_end"`
	Description       string `json:"description"`
}

type UpdateBuildingRequest struct {
	Name              *string `json:"name"`
	CampusArea        *string `json:"campus_area"`
	Address           *string `json:"address"`
	OpeningHoursStart *string `json:"opening_hours_start"`
	OpeningHoursEnd   *string `json:"opening_hours_end"`
	Description       *string `json:"description"`
}
