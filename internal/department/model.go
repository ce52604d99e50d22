package department

import (
	"errors"
	"time"
)

var (
	ErrNotFound      = errors.New("department not found")
	ErrNameRequired  = errors.New("department name is required")
	ErrUserNotFound  = errors.New("user not found")
	ErrAlreadyMember = errors.New("user is already a member of this department")
	ErrInvalidRole   = errors.New("invalid department role")
)

// Department represents a unit that owns facilities and reviews booking
// requests for them (e.g. Registrar's Office, Transport Services).
type Department struct {
	ID        string
	Name      string
	IsActive  bool
	CreatedAt time.Time
}

// Roles stored in the department_members table.
const (
	RoleManager = "manager" // may approve/reject bookings for the department's facilities
	RoleMember  = "member"
)

// Member joins a user with their role inside a department.
type Member struct {
	UserID      string
	Email       string
	DisplayName *string
	Role        string
}

// Filter defines parameters for listing departments.
type Filter struct {
	Page     int
	PageSize int
}

// MemberFilter defines parameters for listing members.
type MemberFilter struct {
	Page     int
	PageSize int
}
