package api

import (
	"github.com/campuskit/facility-booking-backend/internal/pkg/request"
)

// ListUsersRequest holds the query parameters for GET /v1/users.
type ListUsersRequest struct {
	request.ListParams
	Email      string `form:"email"`
	IsActive   *bool  `form:"is_active"`
	IsExternal *bool  `form:"is_external"`
}

// SetUserActiveRequest is the payload for PATCH /v1/users/:id/active.
type SetUserActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}
