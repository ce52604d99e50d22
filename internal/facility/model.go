package facility

import (
	"errors"
	"time"
)

var (
	ErrNotFound        = errors.New("facility not found")
	ErrEmptyName       = errors.New("name cannot be empty")
	ErrInvalidBuilding = errors.New("invalid building_id")
	ErrInvalidDept     = errors.New("invalid department_id")
	ErrInvalidType     = errors.New("invalid facility type code")
	ErrInvalidCapacity = errors.New("capacity must be positive")
	ErrInvalidDuration = errors.New("min booking duration cannot exceed max booking duration")
	ErrStillReferenced = errors.New("facility is referenced by bookings; deactivate it instead")
)

// Facility is a bookable unit: a room, a vehicle, or a piece of
// equipment. Availability is gated by Active and MaintenanceMode;
// IsRestricted forces every booking through manual review.
type Facility struct {
	ID           string
	Name         string
	TypeCode     string // references facility_types.code
	BuildingID   string
	DepartmentID string // owning department, reviews manual approvals
	Capacity     int

	IsRestricted    bool
	Active          bool
	MaintenanceMode bool

	MinBookingMinutes    int
	MaxBookingMinutes    int
	BufferMinutesBetween int // modeled but not applied by the conflict check

	Description string
	PhotoFileID *string
	CreatedAt   time.Time
}

// Bookable reports whether the facility can currently accept bookings.
func (f *Facility) Bookable() bool {
	return f.Active && !f.MaintenanceMode
}

// Filter defines parameters for listing facilities.
type Filter struct {
	BuildingID   string
	DepartmentID string
	TypeCode     string
	ActiveOnly   bool
	Keyword      string
	Page         int
	PageSize     int
}
