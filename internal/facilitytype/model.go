package facilitytype

import (
	"errors"
	"time"
)

var (
	ErrNotFound       = errors.New("facility type not found")
	ErrCodeRequired   = errors.New("code is required")
	ErrInvalidCode    = errors.New("code must be a lowercase slug (e.g. conference_room)")
	ErrNameRequired   = errors.New("name is required")
	ErrCodeInUse      = errors.New("facility type code already exists")
	ErrTypeReferenced = errors.New("facility type is still referenced by facilities")
)

// FacilityType is an entry in the facility type registry. The registry
// ships seeded with the standard campus types (projector, lab, bus,
// hostel, hall, classroom, conference_room) and admins can register
// further equipment or vehicle types. The code is what facilities
// reference and what capacity pools are grouped by.
type FacilityType struct {
	ID          string
	Code        string // unique slug, e.g. "conference_room"
	Name        string
	Description string
	CreatedAt   time.Time
}

// Filter defines parameters for listing facility types.
type Filter struct {
	Page     int
	PageSize int
}
