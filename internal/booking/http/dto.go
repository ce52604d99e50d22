package http

import (
	"time"

	"github.com/campuskit/facility-booking-backend/internal/booking"
	"github.com/campuskit/facility-booking-backend/internal/pkg/request"
)

// ListBookingsRequest defines query parameters for listing bookings.
type ListBookingsRequest struct {
	request.ListParams
	FacilityID    string     `form:"facility_id" binding:"omitempty,uuid"`
	Status        string     `form:"status" binding:"omitempty,oneof=pending pending_admin approved rejected cancelled checked_in checked_out expired"`
	UserID        string     `form:"user_id" binding:"omitempty,uuid"`
	StartTimeFrom *time.Time `form:"start_time_from" time_format:"2006-01-02T15:04:05Z07:00"`
	StartTimeTo   *time.Time `form:"start_time_to" time_format:"2006-01-02T15:04:05Z07:00"`
}

// Validate performs custom validation for ListBookingsRequest.
func (r *ListBookingsRequest) Validate() error {
	if r.StartTimeFrom != nil && r.StartTimeTo != nil {
		if r.StartTimeFrom.After(*r.StartTimeTo) {
			return booking.ErrInvalidTimeRange
		}
	}
	return nil
}

type ApprovalResponse struct {
	Type       string     `json:"type"`
	ApproverID *string    `json:"approver_id,omitempty"`
	ApprovedAt *time.Time `json:"approved_at,omitempty"`
	Notes      string     `json:"notes,omitempty"`
}

type AuditEntryResponse struct {
	Action  string    `json:"action"`
	ActorID string    `json:"actor_id"`
	At      time.Time `json:"at"`
}

type BookingResponse struct {
	ID          string               `json:"id"`
	UserID      string               `json:"user_id"`
	UserName    *string              `json:"user_name,omitempty"`
	FacilityIDs []string             `json:"facility_ids"`
	Purpose     string               `json:"purpose,omitempty"`
	StartTime   time.Time            `json:"start_time"`
	EndTime     time.Time            `json:"end_time"`
	Status      string               `json:"status"`
	IsExternal  bool                 `json:"is_external"`
	Approval    *ApprovalResponse    `json:"approval,omitempty"`
	CheckInCode string               `json:"check_in_code,omitempty"`
	CheckedIn   *time.Time           `json:"checked_in_at,omitempty"`
	CheckedOut  *time.Time           `json:"checked_out_at,omitempty"`
	Audit       []AuditEntryResponse `json:"audit,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// NewBookingResponse maps a booking for its owner or a reviewer. The
// check-in code is only included when includeCode is set, so listings
// seen by reviewers do not leak the holder's credential.
func NewBookingResponse(b *booking.Booking, includeCode bool) BookingResponse {
	resp := BookingResponse{
		ID:          b.ID,
		UserID:      b.UserID,
		UserName:    b.UserName,
		FacilityIDs: b.FacilityIDs,
		Purpose:     b.Purpose,
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		Status:      string(b.Status),
		IsExternal:  b.IsExternal,
		CheckedIn:   b.CheckedInAt,
		CheckedOut:  b.CheckedOutAt,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
	if includeCode {
		resp.CheckInCode = b.CheckInCode
	}
	if b.Approval.Type != "" {
		resp.Approval = &ApprovalResponse{
			Type:       string(b.Approval.Type),
			ApproverID: b.Approval.ApproverID,
			ApprovedAt: b.Approval.ApprovedAt,
			Notes:      b.Approval.Notes,
		}
	}
	if len(b.Audit) > 0 {
		resp.Audit = make([]AuditEntryResponse, len(b.Audit))
		for i, e := range b.Audit {
			resp.Audit[i] = AuditEntryResponse{Action: e.Action, ActorID: e.ActorID, At: e.At}
		}
	}
	return resp
}

type CreateBookingRequest struct {
	FacilityIDs []string  `json:"facility_ids" binding:"required,min=1,dive,uuid"`
	Purpose     string    `json:"purpose" binding:"max=500"`
	StartTime   time.Time `json:"start_time" binding:"required"`
	EndTime     time.Time `json:"end_time" binding:"required"`
}

// Validate performs custom validation for CreateBookingRequest.
func (r *CreateBookingRequest) Validate() error {
	if !r.StartTime.Before(r.EndTime) {
		return booking.ErrInvalidTimeRange
	}
	return nil
}

type RescheduleBookingRequest struct {
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
}

// Validate performs custom validation for RescheduleBookingRequest.
func (r *RescheduleBookingRequest) Validate() error {
	if !r.StartTime.Before(r.EndTime) {
		return booking.ErrInvalidTimeRange
	}
	return nil
}

type ReviewBookingRequest struct {
	Notes string `json:"notes" binding:"max=500"`
}

type CheckInRequest struct {
	Code string `json:"code" binding:"required"`
}

type CheckConflictRequest struct {
	FacilityIDs []string  `json:"facility_ids" binding:"required,min=1,dive,uuid"`
	StartTime   time.Time `json:"start_time" binding:"required"`
	EndTime     time.Time `json:"end_time" binding:"required"`
}

type CheckConflictResponse struct {
	Conflict bool `json:"conflict"`
}

type AvailabilityRequest struct {
	Date string `form:"date" binding:"required,datetime=2006-01-02"`
}

type TimeSlotResponse struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

type AvailabilityResponse struct {
	FacilityID string             `json:"facility_id"`
	Date       string             `json:"date"`
	FreeSlots  []TimeSlotResponse `json:"free_slots"`
}
