package building

import (
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("building not found")
	ErrNameRequired = errors.New("building name is required")
	ErrInvalidHours = errors.New("opening hours must be HH:MM or HH:MM:SS")
)

// Building represents a campus building that houses bookable facilities.
// Opening hours bound the availability window of every facility inside.
type Building struct {
	ID                string
	Name              string
	CampusArea        string // e.g. "North Campus"
	Address           string
	OpeningHoursStart string // Format: HH:MM:SS
	OpeningHoursEnd   string // Format: HH:MM:SS
	Description       string
	CreatedAt         time.Time
}

// Filter defines parameters for listing buildings.
type Filter struct {
	Keyword    string // matches name or address
	CampusArea string
	Page       int
	PageSize   int
}
