package booking

import (
	"context"
	"errors"
	"time"

	"github.com/campuskit/facility-booking-backend/internal/building"
	"github.com/campuskit/facility-booking-backend/internal/department"
	"github.com/campuskit/facility-booking-backend/internal/facility"
	"github.com/campuskit/facility-booking-backend/internal/user"
)

// Actor identifies who is performing a booking operation. Handlers fill
// it from the authenticated request context.
type Actor struct {
	ID      string
	IsAdmin bool
}

type CreateRequest struct {
	UserID      string
	FacilityIDs []string
	Purpose     string
	StartTime   time.Time
	EndTime     time.Time
}

type Service interface {
	// Create runs the admission rules and, unless the request is
	// rejected, persists the booking as pending_admin or auto-approved.
	// A commit-time conflict triggers exactly one fresh decide+insert
	// cycle before the conflict is surfaced to the caller.
	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	GetByID(ctx context.Context, actor Actor, id string) (*Booking, error)
	List(ctx context.Context, actor Actor, filter Filter) ([]*Booking, int, error)
	// Reschedule moves a not-yet-started booking to a new window,
	// keeping its status and approval.
	Reschedule(ctx context.Context, actor Actor, id string, start, end time.Time) (*Booking, error)
	Approve(ctx context.Context, actor Actor, id, notes string) (*Booking, error)
	Reject(ctx context.Context, actor Actor, id, notes string) (*Booking, error)
	Cancel(ctx context.Context, actor Actor, id string) (*Booking, error)
	CheckIn(ctx context.Context, actor Actor, id, code string) (*Booking, error)
	CheckOut(ctx context.Context, actor Actor, id string) (*Booking, error)
	// Availability lists the free slots of one facility on one day,
	// bounded by its building's opening hours.
	Availability(ctx context.Context, facilityID string, date time.Time) ([]TimeSlot, error)
	// CheckConflict is the dry-run overlap probe exposed to clients.
	CheckConflict(ctx context.Context, facilityIDs []string, start, end time.Time) (bool, error)
	// ExpireOverdue sweeps approved bookings whose end time plus the
	// no-show grace period has passed.
	ExpireOverdue(ctx context.Context) (int, error)
}

type service struct {
	repo            Repository
	engine          *AdmissionEngine
	facilityService facility.Service
	bldgService     building.Service
	deptService     department.Service
	userService     user.Service

	checkInEarlyWindow time.Duration
	checkInGracePeriod time.Duration

	// now is swapped out in tests.
	now func() time.Time
}

func NewService(
	repo Repository,
	facilityService facility.Service,
	bldgService building.Service,
	deptService department.Service,
	userService user.Service,
	checkInEarlyWindow, checkInGracePeriod time.Duration,
) Service {
	return &service{
		repo:               repo,
		engine:             NewAdmissionEngine(repo, facilityService),
		facilityService:    facilityService,
		bldgService:        bldgService,
		deptService:        deptService,
		userService:        userService,
		checkInEarlyWindow: checkInEarlyWindow,
		checkInGracePeriod: checkInGracePeriod,
		now:                time.Now,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	facilityIDs := dedupe(req.FacilityIDs)
	if len(facilityIDs) == 0 {
		return nil, ErrNoFacilities
	}
	if !req.StartTime.Before(req.EndTime) {
		return nil, ErrInvalidTimeRange
	}
	if req.StartTime.Before(s.now()) {
		return nil, ErrStartTimePast
	}

	facilities, err := s.facilityService.GetByIDs(ctx, facilityIDs)
	if err != nil {
		return nil, err
	}
	if len(facilities) != len(facilityIDs) {
		return nil, ErrFacilityNotFound
	}

	duration := req.EndTime.Sub(req.StartTime)
	for _, f := range facilities {
		if f.MinBookingMinutes > 0 && duration < time.Duration(f.MinBookingMinutes)*time.Minute {
			return nil, ErrDurationOutOfRange
		}
		if f.MaxBookingMinutes > 0 && duration > time.Duration(f.MaxBookingMinutes)*time.Minute {
			return nil, ErrDurationOutOfRange
		}
	}

	requester, err := s.userService.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	b, err := s.admitAndPersist(ctx, req, facilities, requester.IsExternal)
	if errors.Is(err, ErrTimeConflict) {
		// Lost a race with a concurrent overlapping insert. The window
		// may still be free for us (the winner may have targeted other
		// facilities of the same type), so re-run the decision once
		// against the fresh state.
		b, err = s.admitAndPersist(ctx, req, facilities, requester.IsExternal)
	}
	return b, err
}

func (s *service) admitAndPersist(ctx context.Context, req CreateRequest, facilities []*facility.Facility, isExternal bool) (*Booking, error) {
	decision, err := s.engine.Decide(ctx, facilities, req.StartTime, req.EndTime, isExternal)
	if err != nil {
		return nil, err
	}

	var status Status
	var approval Approval
	now := s.now()

	switch decision {
	case DecisionRejectInactive:
		return nil, ErrFacilityUnavailable
	case DecisionRejectConflict:
		return nil, ErrTimeConflict
	case DecisionRequiresApproval:
		status = StatusPendingAdmin
	case DecisionAutoApprove:
		status = StatusApproved
		approval = Approval{Type: ApprovalAuto, ApprovedAt: &now}
	}

	code, err := newCheckInCode()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(facilities))
	for i, f := range facilities {
		ids[i] = f.ID
	}

	b := &Booking{
		UserID:      req.UserID,
		FacilityIDs: ids,
		Purpose:     req.Purpose,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Status:      status,
		IsExternal:  isExternal,
		Approval:    approval,
		CheckInCode: code,
		Audit: []AuditEntry{
			{Action: ActionCreate, ActorID: req.UserID, At: now},
		},
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) GetByID(ctx context.Context, actor Actor, id string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin && b.UserID != actor.ID {
		allowed, err := s.isDeptManagerForBooking(ctx, actor.ID, b)
		if err != nil {
			return nil, err
		}
		if !allowed {
			return nil, ErrPermissionDenied
		}
	}
	return b, nil
}

func (s *service) List(ctx context.Context, actor Actor, filter Filter) ([]*Booking, int, error) {
	// Non-admins only see their own bookings.
	if !actor.IsAdmin {
		filter.UserID = actor.ID
	}
	return s.repo.List(ctx, filter)
}

func (s *service) Reschedule(ctx context.Context, actor Actor, id string, start, end time.Time) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin && b.UserID != actor.ID {
		return nil, ErrPermissionDenied
	}
	switch b.Status {
	case StatusPending, StatusPendingAdmin, StatusApproved:
	default:
		return nil, ErrInvalidTransition
	}
	if !start.Before(end) {
		return nil, ErrInvalidTimeRange
	}
	if start.Before(s.now()) {
		return nil, ErrStartTimePast
	}

	// The booking's own rows must not count against it.
	conflict, err := s.repo.HasConflict(ctx, b.FacilityIDs, start, end, b.ID)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, ErrTimeConflict
	}

	b.StartTime = start
	b.EndTime = end
	entry := AuditEntry{Action: ActionReschedule, ActorID: actor.ID, At: s.now()}
	if err := s.repo.UpdateSchedule(ctx, b, entry); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) Approve(ctx context.Context, actor Actor, id, notes string) (*Booking, error) {
	return s.review(ctx, actor, id, notes, StatusApproved, ActionApprove)
}

func (s *service) Reject(ctx context.Context, actor Actor, id, notes string) (*Booking, error) {
	return s.review(ctx, actor, id, notes, StatusRejected, ActionReject)
}

func (s *service) review(ctx context.Context, actor Actor, id, notes string, to Status, action string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin {
		allowed, err := s.isDeptManagerForBooking(ctx, actor.ID, b)
		if err != nil {
			return nil, err
		}
		if !allowed {
			return nil, ErrPermissionDenied
		}
	}
	if !CanTransition(b.Status, to) {
		return nil, ErrInvalidTransition
	}

	now := s.now()
	b.Status = to
	if to == StatusApproved {
		b.Approval = Approval{
			Type:       ApprovalManual,
			ApproverID: &actor.ID,
			ApprovedAt: &now,
			Notes:      notes,
		}
	} else {
		b.Approval.Notes = notes
	}

	entry := AuditEntry{Action: action, ActorID: actor.ID, At: now}
	if err := s.repo.UpdateStatus(ctx, b, entry); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) Cancel(ctx context.Context, actor Actor, id string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin && b.UserID != actor.ID {
		return nil, ErrPermissionDenied
	}
	if !CanTransition(b.Status, StatusCancelled) {
		return nil, ErrInvalidTransition
	}

	b.Status = StatusCancelled
	entry := AuditEntry{Action: ActionCancel, ActorID: actor.ID, At: s.now()}
	if err := s.repo.UpdateStatus(ctx, b, entry); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) CheckIn(ctx context.Context, actor Actor, id, code string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanTransition(b.Status, StatusCheckedIn) {
		return nil, ErrInvalidTransition
	}
	if code != b.CheckInCode {
		return nil, ErrInvalidCheckInCode
	}

	now := s.now()
	if now.Before(b.StartTime.Add(-s.checkInEarlyWindow)) || !now.Before(b.EndTime) {
		return nil, ErrOutsideCheckInHours
	}

	b.Status = StatusCheckedIn
	b.CheckedInAt = &now
	entry := AuditEntry{Action: ActionCheckIn, ActorID: actor.ID, At: now}
	if err := s.repo.UpdateStatus(ctx, b, entry); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) CheckOut(ctx context.Context, actor Actor, id string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanTransition(b.Status, StatusCheckedOut) {
		return nil, ErrInvalidTransition
	}

	now := s.now()
	b.Status = StatusCheckedOut
	b.CheckedOutAt = &now
	entry := AuditEntry{Action: ActionCheckOut, ActorID: actor.ID, At: now}
	if err := s.repo.UpdateStatus(ctx, b, entry); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) Availability(ctx context.Context, facilityID string, date time.Time) ([]TimeSlot, error) {
	f, err := s.facilityService.GetByID(ctx, facilityID)
	if err != nil {
		return nil, err
	}

	bldg, err := s.bldgService.GetByID(ctx, f.BuildingID)
	if err != nil {
		return nil, err
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	bookings, err := s.repo.ListForFacilityRange(ctx, f.ID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	return CalculateAvailability(date, bldg.OpeningHoursStart, bldg.OpeningHoursEnd, bookings)
}

func (s *service) CheckConflict(ctx context.Context, facilityIDs []string, start, end time.Time) (bool, error) {
	facilityIDs = dedupe(facilityIDs)
	if len(facilityIDs) == 0 {
		return false, ErrNoFacilities
	}
	if !start.Before(end) {
		return false, ErrInvalidTimeRange
	}
	return s.repo.HasConflict(ctx, facilityIDs, start, end, "")
}

func (s *service) ExpireOverdue(ctx context.Context) (int, error) {
	cutoff := s.now().Add(-s.checkInGracePeriod)
	return s.repo.ExpireOverdue(ctx, cutoff)
}

// isDeptManagerForBooking reports whether the user manages every
// department that owns a facility of the booking. Review rights over a
// multi-facility booking require authority over all of it.
func (s *service) isDeptManagerForBooking(ctx context.Context, userID string, b *Booking) (bool, error) {
	facilities, err := s.facilityService.GetByIDs(ctx, b.FacilityIDs)
	if err != nil {
		return false, err
	}
	if len(facilities) == 0 {
		return false, nil
	}

	checked := make(map[string]bool)
	for _, f := range facilities {
		if checked[f.DepartmentID] {
			continue
		}
		checked[f.DepartmentID] = true

		manager, err := s.deptService.IsManager(ctx, f.DepartmentID, userID)
		if err != nil {
			return false, err
		}
		if !manager {
			return false, nil
		}
	}
	return true, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
