package http

import (
	"time"

	"github.com/campuskit/facility-booking-backend/internal/announcement"
	"github.com/campuskit/facility-booking-backend/internal/pkg/request"
)

type AnnouncementResponse struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	FacilityID *string   `json:"facility_id,omitempty"`
	Pinned     bool      `json:"pinned"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func NewResponse(a *announcement.Announcement) AnnouncementResponse {
	return AnnouncementResponse{
		ID:         a.ID,
		Title:      a.Title,
		Content:    a.Content,
		FacilityID: a.FacilityID,
		Pinned:     a.Pinned,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

type ListAnnouncementsRequest struct {
	request.ListParams
	Keyword    string `form:"keyword"`
	FacilityID string `form:"facility_id" binding:"omitempty,uuid"`
}

type CreateAnnouncementRequest struct {
	Title      string  `json:"title" binding:"required"`
	Content    string  `json:"content" binding:"required"`
	FacilityID *string `json:"facility_id" binding:"omitempty,uuid"`
	Pinned     bool    `json:"pinned"`
}

type UpdateAnnouncementRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Pinned  *bool   `json:"pinned"`
}
