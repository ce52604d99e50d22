package announcement

import (
	"errors"
	"time"
)

var (
	ErrNotFound        = errors.New("announcement not found")
	ErrTitleRequired   = errors.New("title is required")
	ErrContentRequired = errors.New("content is required")
	ErrInvalidFacility = errors.New("invalid facility_id")
)

// Announcement is a notice shown to requesters. A nil FacilityID makes
// it campus-wide; otherwise it is pinned to one facility's page (e.g.
// "projector HDMI port broken").
type Announcement struct {
	ID         string
	Title      string
	Content    string
	FacilityID *string
	Pinned     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Filter defines parameters for listing announcements.
type Filter struct {
	Keyword    string
	FacilityID string // only announcements for this facility plus campus-wide ones
	Page       int
	PageSize   int
}
