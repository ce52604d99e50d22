package http

import (
	"time"

	"github.com/campuskit/facility-booking-backend/internal/department"
	"github.com/campuskit/facility-booking-backend/internal/pkg/request"
)

type DepartmentResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func NewResponse(d *department.Department) DepartmentResponse {
	return DepartmentResponse{
		ID:        d.ID,
		Name:      d.Name,
		IsActive:  d.IsActive,
		CreatedAt: d.CreatedAt,
	}
}

type MemberResponse struct {
	UserID      string  `json:"user_id"`
	Email       string  `json:"email"`
	DisplayName *string `json:"display_name,omitempty"`
	Role        string  `json:"role"`
}

func NewMemberResponse(m *department.Member) MemberResponse {
	return MemberResponse{
		UserID:      m.UserID,
		Email:       m.Email,
		DisplayName: m.DisplayName,
		Role:        m.Role,
	}
}

type ListDepartmentsRequest struct {
	request.ListParams
}

type CreateDepartmentRequest struct {
	Name string `json:"name" binding:"required"`
}

type UpdateDepartmentRequest struct {
	Name     *string `json:"name"`
	IsActive *bool   `json:"is_active"`
}

type AddMemberRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
	Role   string `json:"role" binding:"omitempty,oneof=manager member"`
}

type SetMemberRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=manager member"`
}

type MemberURI struct {
	ID     string `uri:"id" binding:"required,uuid"`
	UserID string `uri:"user_id" binding:"required,uuid"`
}
