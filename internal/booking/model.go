package booking

import (
	"net/http"
	"time"

	"github.com/campuskit/facility-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound            = apperror.New(http.StatusNotFound, "booking not found")
	ErrTimeConflict        = apperror.New(http.StatusConflict, "facility already booked for this time")
	ErrFacilityUnavailable = apperror.New(http.StatusUnprocessableEntity, "facility is not currently bookable")
	ErrInvalidTimeRange    = apperror.New(http.StatusBadRequest, "start time must be before end time")
	ErrNoFacilities        = apperror.New(http.StatusBadRequest, "at least one facility is required")
	ErrStartTimePast       = apperror.New(http.StatusBadRequest, "cannot create booking in the past")
	ErrDurationOutOfRange  = apperror.New(http.StatusBadRequest, "booking duration violates the facility's duration limits")
	ErrFacilityNotFound    = apperror.New(http.StatusNotFound, "facility not found")
	ErrPermissionDenied    = apperror.New(http.StatusForbidden, "permission denied")
	ErrInvalidTransition   = apperror.New(http.StatusConflict, "booking status does not allow this action")
	ErrInvalidCheckInCode  = apperror.New(http.StatusBadRequest, "invalid check-in code")
	ErrOutsideCheckInHours = apperror.New(http.StatusConflict, "outside the allowed check-in window")
)

// Status is the lifecycle state of a booking.
type Status string

const (
	StatusPending      Status = "pending"
	StatusPendingAdmin Status = "pending_admin"
	StatusApproved     Status = "approved"
	StatusRejected     Status = "rejected"
	StatusCancelled    Status = "cancelled"
	StatusCheckedIn    Status = "checked_in"
	StatusCheckedOut   Status = "checked_out"
	StatusExpired      Status = "expired"
)

// ApprovalType records how a booking reached the approved state.
type ApprovalType string

const (
	ApprovalAuto   ApprovalType = "auto"
	ApprovalManual ApprovalType = "manual"
)

// Approval holds the approval metadata of a booking.
type Approval struct {
	Type       ApprovalType `json:"type,omitempty"`
	ApproverID *string      `json:"approver_id,omitempty"`
	ApprovedAt *time.Time   `json:"approved_at,omitempty"`
	Notes      string       `json:"notes,omitempty"`
}

// AuditEntry is one line of a booking's append-only audit trail.
type AuditEntry struct {
	Action  string    `json:"action"`
	ActorID string    `json:"actor_id"`
	At      time.Time `json:"at"`
}

// Audit actions.
const (
	ActionCreate     = "create"
	ActionApprove    = "approve"
	ActionReject     = "reject"
	ActionCancel     = "cancel"
	ActionCheckIn    = "check_in"
	ActionCheckOut   = "check_out"
	ActionExpire     = "expire"
	ActionReschedule = "reschedule"
)

// Booking is a reservation of one or more facilities for a time window.
// Multi-facility bookings are a single atomic unit: they are admitted,
// approved and cancelled together.
type Booking struct {
	ID          string
	UserID      string
	UserName    *string
	FacilityIDs []string
	Purpose     string
	StartTime   time.Time
	EndTime     time.Time
	Status      Status
	IsExternal  bool
	Approval    Approval

	// CheckInCode is minted at creation, regardless of whether the
	// booking ends up approved. The client renders it as a QR code;
	// manual entry at the facility desk uses the same value.
	CheckInCode  string
	CheckedInAt  *time.Time
	CheckedOutAt *time.Time

	Audit     []AuditEntry
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Filter defines parameters for listing bookings.
type Filter struct {
	UserID     string
	FacilityID string
	Status     string
	StartTime  *time.Time // bookings ending after this instant
	EndTime    *time.Time // bookings starting before this instant
	Page       int
	PageSize   int
}
