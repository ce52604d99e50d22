package http

import (
	"time"

	"github.com/campuskit/facility-booking-backend/internal/facility"
	"github.com/campuskit/facility-booking-backend/internal/pkg/request"
)

type FacilityResponse struct {
	ID                   string    `json:"id"`
	Name                 string    `json:"name"`
	TypeCode             string    `json:"type_code"`
	BuildingID           string    `json:"building_id"`
	DepartmentID         string    `json:"department_id"`
	Capacity             int       `json:"capacity"`
	IsRestricted         bool      `json:"is_restricted"`
	Active               bool      `json:"active"`
	MaintenanceMode      bool      `json:"maintenance_mode"`
	MinBookingMinutes    int       `json:"min_booking_minutes,omitempty"`
	MaxBookingMinutes    int       `json:"max_booking_minutes,omitempty"`
	BufferMinutesBetween int       `json:"buffer_minutes_between,omitempty"`
	Description          string    `json:"description,omitempty"`
	PhotoFileID          *string   `json:"photo_file_id,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
}

func NewResponse(f *facility.Facility) FacilityResponse {
	return FacilityResponse{
		ID:                   f.ID,
		Name:                 f.Name,
		TypeCode:             f.TypeCode,
		BuildingID:           f.BuildingID,
		DepartmentID:         f.DepartmentID,
		Capacity:             f.Capacity,
		IsRestricted:         f.IsRestricted,
		Active:               f.Active,
		MaintenanceMode:      f.MaintenanceMode,
		MinBookingMinutes:    f.MinBookingMinutes,
		MaxBookingMinutes:    f.MaxBookingMinutes,
		BufferMinutesBetween: f.BufferMinutesBetween,
		Description:          f.Description,
		PhotoFileID:          f.PhotoFileID,
		CreatedAt:            f.CreatedAt,
	}
}

type ListFacilitiesRequest struct {
	request.ListParams
	BuildingID   string `form:"building_id" binding:"omitempty,uuid"`
	DepartmentID string `form:"department_id" binding:"omitempty,uuid"`
	TypeCode     string `form:"type_code"`
	ActiveOnly   bool   `form:"active_only"`
	Keyword      string `form:"keyword"`
}

type CreateFacilityRequest struct {
	Name                 string `json:"name" binding:"required"`
	TypeCode             string `json:"type_code" binding:"required"`
	BuildingID           string `json:"building_id" binding:"required,uuid"`
	DepartmentID         string `json:"department_id" binding:"required,uuid"`
	Capacity             int    `json:"capacity" binding:"required,min=1"`
	IsRestricted         bool   `json:"is_restricted"`
	MinBookingMinutes    int    `json:"min_booking_minutes" binding:"omitempty,min=0"`
	MaxBookingMinutes    int    `json:"max_booking_minutes" binding:"omitempty,min=0"`
	BufferMinutesBetween int    `json:"buffer_minutes_between" binding:"omitempty,min=0"`
	Description          string `json:"description"`
}

type UpdateFacilityRequest struct {
	Name                 *string `json:"name"`
	Capacity             *int    `json:"capacity" binding:"omitempty,min=1"`
	IsRestricted         *bool   `json:"is_restricted"`
	Active               *bool   `json:"active"`
	MaintenanceMode      *bool   `json:"maintenance_mode"`
	MinBookingMinutes    *int    `json:"min_booking_minutes" binding:"omitempty,min=0"`
	MaxBookingMinutes    *int    `json:"max_booking_minutes" binding:"omitempty,min=0"`
	BufferMinutesBetween *int    `json:"buffer_minutes_between" binding:"omitempty,min=0"`
	Description          *string `json:"description"`
	PhotoFileID          *string `json:"photo_file_id" binding:"omitempty,uuid"`
}
