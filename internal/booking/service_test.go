package booking

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuskit/facility-booking-backend/internal/building"
	"github.com/campuskit/facility-booking-backend/internal/department"
	"github.com/campuskit/facility-booking-backend/internal/facility"
	"github.com/campuskit/facility-booking-backend/internal/user"
)

// memRepo is an in-memory Repository that enforces the same overlap
// exclusion the database constraint does: a create or reschedule that
// overlaps a live booking on a shared facility fails with
// ErrTimeConflict under a single lock.
type memRepo struct {
	mu       sync.Mutex
	nextID   int
	bookings map[string]*Booking
}

func newMemRepo() *memRepo {
	return &memRepo{bookings: make(map[string]*Booking)}
}

func (r *memRepo) overlapsLocked(facilityIDs []string, start, end time.Time, excludeID string) bool {
	for _, b := range r.bookings {
		if b.ID == excludeID || !b.Status.BlocksConflict() {
			continue
		}
		if !Overlaps(b.StartTime, b.EndTime, start, end) {
			continue
		}
		for _, fid := range b.FacilityIDs {
			for _, want := range facilityIDs {
				if fid == want {
					return true
				}
			}
		}
	}
	return false
}

func (r *memRepo) Create(_ context.Context, b *Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b.Status.BlocksConflict() && r.overlapsLocked(b.FacilityIDs, b.StartTime, b.EndTime, "") {
		return ErrTimeConflict
	}
	r.nextID++
	b.ID = fmt.Sprintf("booking-%d", r.nextID)
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	clone := *b
	r.bookings[b.ID] = &clone
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id string) (*Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *memRepo) List(_ context.Context, filter Filter) ([]*Booking, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*Booking
	for _, b := range r.bookings {
		if filter.UserID != "" && b.UserID != filter.UserID {
			continue
		}
		if filter.Status != "" && string(b.Status) != filter.Status {
			continue
		}
		clone := *b
		out = append(out, &clone)
	}
	return out, len(out), nil
}

func (r *memRepo) UpdateSchedule(_ context.Context, b *Booking, entry AuditEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.bookings[b.ID]
	if !ok {
		return ErrNotFound
	}
	if b.Status.BlocksConflict() && r.overlapsLocked(b.FacilityIDs, b.StartTime, b.EndTime, b.ID) {
		return ErrTimeConflict
	}
	stored.StartTime = b.StartTime
	stored.EndTime = b.EndTime
	stored.Audit = append(stored.Audit, entry)
	b.Audit = append(b.Audit, entry)
	return nil
}

func (r *memRepo) UpdateStatus(_ context.Context, b *Booking, entry AuditEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.bookings[b.ID]
	if !ok {
		return ErrNotFound
	}
	stored.Status = b.Status
	stored.Approval = b.Approval
	stored.CheckedInAt = b.CheckedInAt
	stored.CheckedOutAt = b.CheckedOutAt
	stored.Audit = append(stored.Audit, entry)
	b.Audit = append(b.Audit, entry)
	return nil
}

func (r *memRepo) ListForFacilityRange(_ context.Context, facilityID string, from, to time.Time) ([]*Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*Booking
	for _, b := range r.bookings {
		if !Overlaps(b.StartTime, b.EndTime, from, to) {
			continue
		}
		for _, fid := range b.FacilityIDs {
			if fid == facilityID {
				clone := *b
				out = append(out, &clone)
				break
			}
		}
	}
	return out, nil
}

func (r *memRepo) ExpireOverdue(_ context.Context, cutoff time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, b := range r.bookings {
		if b.Status == StatusApproved && b.EndTime.Before(cutoff) {
			b.Status = StatusExpired
			b.Audit = append(b.Audit, AuditEntry{Action: ActionExpire, ActorID: "system", At: time.Now()})
			n++
		}
	}
	return n, nil
}

func (r *memRepo) HasConflict(_ context.Context, facilityIDs []string, start, end time.Time, excludeBookingID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.overlapsLocked(facilityIDs, start, end, excludeBookingID), nil
}

func (r *memRepo) ReservedFacilities(_ context.Context, facilityIDs []string, start, end time.Time) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, id := range facilityIDs {
		if r.overlapsLocked([]string{id}, start, end, "") {
			out = append(out, id)
		}
	}
	return out, nil
}

// flakyRepo fails the first create with a conflict, as if a concurrent
// insert won the race, then delegates.
type flakyRepo struct {
	Repository
	mu      sync.Mutex
	creates int
	fails   int
}

func (r *flakyRepo) Create(ctx context.Context, b *Booking) error {
	r.mu.Lock()
	r.creates++
	fail := r.fails > 0
	if fail {
		r.fails--
	}
	r.mu.Unlock()
	if fail {
		return ErrTimeConflict
	}
	return r.Repository.Create(ctx, b)
}

type fakeFacilityService struct {
	facility.Service
	items map[string]*facility.Facility
}

func (s *fakeFacilityService) GetByID(_ context.Context, id string) (*facility.Facility, error) {
	f, ok := s.items[id]
	if !ok {
		return nil, ErrFacilityNotFound
	}
	return f, nil
}

func (s *fakeFacilityService) GetByIDs(_ context.Context, ids []string) ([]*facility.Facility, error) {
	var out []*facility.Facility
	for _, id := range ids {
		if f, ok := s.items[id]; ok {
			out = append(out, f)
		}
	}
	return out, nil
}

func (s *fakeFacilityService) ListActiveByType(_ context.Context, typeCode string) ([]*facility.Facility, error) {
	var out []*facility.Facility
	for _, f := range s.items {
		if f.TypeCode == typeCode && f.Bookable() {
			out = append(out, f)
		}
	}
	return out, nil
}

type fakeBuildingService struct {
	building.Service
	bldg *building.Building
}

func (s *fakeBuildingService) GetByID(_ context.Context, _ string) (*building.Building, error) {
	return s.bldg, nil
}

type fakeDeptService struct {
	department.Service
	// managers[deptID][userID]
	managers map[string]map[string]bool
}

func (s *fakeDeptService) IsManager(_ context.Context, deptID, userID string) (bool, error) {
	return s.managers[deptID][userID], nil
}

type fakeUserService struct {
	user.Service
	users map[string]*user.User
}

func (s *fakeUserService) GetByID(_ context.Context, id string) (*user.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

type fixture struct {
	repo  *memRepo
	svc   *service
	now   time.Time
	users map[string]*user.User
}

func newFixture(t *testing.T, repo Repository) *fixture {
	t.Helper()

	facilities := map[string]*facility.Facility{
		"room-a": {
			ID: "room-a", Name: "Room A", TypeCode: "classroom",
			BuildingID: "bldg-1", DepartmentID: "dept-1",
			Capacity: 30, Active: true,
		},
		"room-b": {
			ID: "room-b", Name: "Room B", TypeCode: "classroom",
			BuildingID: "bldg-1", DepartmentID: "dept-1",
			Capacity: 30, Active: true,
		},
		"vip-hall": {
			ID: "vip-hall", Name: "VIP Hall", TypeCode: "hall",
			BuildingID: "bldg-1", DepartmentID: "dept-1",
			Capacity: 200, Active: true, IsRestricted: true,
		},
		"closed-lab": {
			ID: "closed-lab", Name: "Closed Lab", TypeCode: "lab",
			BuildingID: "bldg-1", DepartmentID: "dept-1",
			Capacity: 20, Active: true, MaintenanceMode: true,
		},
		"short-room": {
			ID: "short-room", Name: "Short Room", TypeCode: "classroom",
			BuildingID: "bldg-1", DepartmentID: "dept-1",
			Capacity: 10, Active: true,
			MinBookingMinutes: 30, MaxBookingMinutes: 120,
		},
	}

	users := map[string]*user.User{
		"alice":    {ID: "alice", Email: "alice@campus.edu", IsActive: true},
		"bob":      {ID: "bob", Email: "bob@campus.edu", IsActive: true},
		"visitor":  {ID: "visitor", Email: "visitor@example.com", IsActive: true, IsExternal: true},
		"admin":    {ID: "admin", Email: "admin@campus.edu", IsActive: true, IsAdmin: true},
		"dmanager": {ID: "dmanager", Email: "dm@campus.edu", IsActive: true},
	}

	svc := NewService(
		repo,
		&fakeFacilityService{items: facilities},
		&fakeBuildingService{bldg: &building.Building{
			ID: "bldg-1", Name: "Main", OpeningHoursStart: "08:00:00", OpeningHoursEnd: "22:00:00",
		}},
		&fakeDeptService{managers: map[string]map[string]bool{
			"dept-1": {"dmanager": true},
		}},
		&fakeUserService{users: users},
		15*time.Minute,
		30*time.Minute,
	).(*service)

	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	mem, _ := repo.(*memRepo)
	return &fixture{repo: mem, svc: svc, now: now, users: users}
}

func (f *fixture) createReq(userID string, facilityIDs []string, startH, endH int) CreateRequest {
	day := f.now.Truncate(24 * time.Hour)
	return CreateRequest{
		UserID:      userID,
		FacilityIDs: facilityIDs,
		Purpose:     "study session",
		StartTime:   day.Add(time.Duration(startH) * time.Hour),
		EndTime:     day.Add(time.Duration(endH) * time.Hour),
	}
}

func TestCreateBooking(t *testing.T) {
	t.Run("auto-approves a plain request", func(t *testing.T) {
		f := newFixture(t, newMemRepo())

		b, err := f.svc.Create(context.Background(), f.createReq("alice", []string{"room-a"}, 10, 12))
		require.NoError(t, err)

		assert.Equal(t, StatusApproved, b.Status)
		assert.Equal(t, ApprovalAuto, b.Approval.Type)
		assert.NotNil(t, b.Approval.ApprovedAt)
		assert.Len(t, b.CheckInCode, 8)
		require.Len(t, b.Audit, 1)
		assert.Equal(t, ActionCreate, b.Audit[0].Action)
		assert.Equal(t, "alice", b.Audit[0].ActorID)
	})

	t.Run("overlapping request conflicts", func(t *testing.T) {
		f := newFixture(t, newMemRepo())

		_, err := f.svc.Create(context.Background(), f.createReq("alice", []string{"room-a"}, 10, 12))
		require.NoError(t, err)

		_, err = f.svc.Create(context.Background(), f.createReq("bob", []string{"room-a"}, 11, 13))
		assert.ErrorIs(t, err, ErrTimeConflict)
	})

	t.Run("touching windows do not conflict", func(t *testing.T) {
		f := newFixture(t, newMemRepo())

		_, err := f.svc.Create(context.Background(), f.createReq("alice", []string{"room-a"}, 10, 12))
		require.NoError(t, err)

		b, err := f.svc.Create(context.Background(), f.createReq("bob", []string{"room-a"}, 12, 14))
		require.NoError(t, err)
		assert.Equal(t, StatusApproved, b.Status)
	})

	t.Run("different facilities do not conflict", func(t *testing.T) {
		f := newFixture(t, newMemRepo())

		_, err := f.svc.Create(context.Background(), f.createReq("alice", []string{"room-a"}, 10, 12))
		require.NoError(t, err)

		_, err = f.svc.Create(context.Background(), f.createReq("bob", []string{"room-b"}, 10, 12))
		require.NoError(t, err)
	})

	t.Run("external requester goes to manual review", func(t *testing.T) {
		f := newFixture(t, newMemRepo())

		b, err := f.svc.Create(context.Background(), f.createReq("visitor", []string{"room-a"}, 10, 12))
		require.NoError(t, err)
		assert.Equal(t, StatusPendingAdmin, b.Status)
		assert.True(t, b.IsExternal)
		assert.Empty(t, b.Approval.Type)
	})

	t.Run("restricted facility goes to manual review", func(t *testing.T) {
		f := newFixture(t, newMemRepo())

		b, err := f.svc.Create(context.Background(), f.createReq("alice", []string{"vip-hall"}, 10, 12))
		require.NoError(t, err)
		assert.Equal(t, StatusPendingAdmin, b.Status)
	})

	t.Run("maintenance facility is rejected outright", func(t *testing.T) {
		f := newFixture(t, newMemRepo())

		_, err := f.svc.Create(context.Background(), f.createReq("alice", []string{"closed-lab"}, 10, 12))
		assert.ErrorIs(t, err, ErrFacilityUnavailable)
	})

	t.Run("pending booking still blocks the window", func(t *testing.T) {
		f := newFixture(t, newMemRepo())

		_, err := f.svc.Create(context.Background(), f.createReq("visitor", []string{"room-a"}, 10, 12))
		require.NoError(t, err)

		_, err = f.svc.Create(context.Background(), f.createReq("alice", []string{"room-a"}, 10, 12))
		assert.ErrorIs(t, err, ErrTimeConflict)
	})

	t.Run("validation failures", func(t *testing.T) {
		f := newFixture(t, newMemRepo())
		ctx := context.Background()

		_, err := f.svc.Create(ctx, f.createReq("alice", nil, 10, 12))
		assert.ErrorIs(t, err, ErrNoFacilities)

		_, err = f.svc.Create(ctx, f.createReq("alice", []string{"room-a"}, 12, 10))
		assert.ErrorIs(t, err, ErrInvalidTimeRange)

		_, err = f.svc.Create(ctx, f.createReq("alice", []string{"room-a"}, 6, 8))
		assert.ErrorIs(t, err, ErrStartTimePast)

		_, err = f.svc.Create(ctx, f.createReq("alice", []string{"no-such-room"}, 10, 12))
		assert.ErrorIs(t, err, ErrFacilityNotFound)
	})

	t.Run("duration limits", func(t *testing.T) {
		f := newFixture(t, newMemRepo())
		ctx := context.Background()

		req := f.createReq("alice", []string{"short-room"}, 10, 12)
		req.EndTime = req.StartTime.Add(10 * time.Minute)
		_, err := f.svc.Create(ctx, req)
		assert.ErrorIs(t, err, ErrDurationOutOfRange)

		req.EndTime = req.StartTime.Add(3 * time.Hour)
		_, err = f.svc.Create(ctx, req)
		assert.ErrorIs(t, err, ErrDurationOutOfRange)

		req.EndTime = req.StartTime.Add(time.Hour)
		_, err = f.svc.Create(ctx, req)
		assert.NoError(t, err)
	})

	t.Run("duplicate facility ids collapse", func(t *testing.T) {
		f := newFixture(t, newMemRepo())

		b, err := f.svc.Create(context.Background(), f.createReq("alice", []string{"room-a", "room-a"}, 10, 12))
		require.NoError(t, err)
		assert.Equal(t, []string{"room-a"}, b.FacilityIDs)
	})
}

func TestCreateRetriesOnceOnCommitConflict(t *testing.T) {
	flaky := &flakyRepo{Repository: newMemRepo(), fails: 1}
	f := newFixture(t, flaky)

	// The losing commit is retried with a fresh decision; the window is
	// actually free, so the retry succeeds.
	b, err := f.svc.Create(context.Background(), f.createReq("alice", []string{"room-a"}, 10, 12))
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, b.Status)
	assert.Equal(t, 2, flaky.creates)
}

func TestCreateRetryGivesUpAfterOneAttempt(t *testing.T) {
	flaky := &flakyRepo{Repository: newMemRepo(), fails: 2}
	f := newFixture(t, flaky)

	_, err := f.svc.Create(context.Background(), f.createReq("alice", []string{"room-a"}, 10, 12))
	assert.ErrorIs(t, err, ErrTimeConflict)
	assert.Equal(t, 2, flaky.creates)
}

func TestConcurrentCreatesAdmitExactlyOne(t *testing.T) {
	f := newFixture(t, newMemRepo())

	const attempts = 8
	errs := make(chan error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			userID := "alice"
			if n%2 == 1 {
				userID = "bob"
			}
			_, err := f.svc.Create(context.Background(), f.createReq(userID, []string{"room-a"}, 10, 12))
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	succeeded, conflicted := 0, 0
	for err := range errs {
		switch {
		case err == nil:
			succeeded++
		case assert.ErrorIs(t, err, ErrTimeConflict):
			conflicted++
		}
	}
	assert.Equal(t, 1, succeeded, "exactly one concurrent request should win the window")
	assert.Equal(t, attempts-1, conflicted)
}

func TestReviewLifecycle(t *testing.T) {
	ctx := context.Background()

	t.Run("admin approves a pending booking", func(t *testing.T) {
		f := newFixture(t, newMemRepo())
		b, err := f.svc.Create(ctx, f.createReq("visitor", []string{"room-a"}, 10, 12))
		require.NoError(t, err)

		approved, err := f.svc.Approve(ctx, Actor{ID: "admin", IsAdmin: true}, b.ID, "ok for visitors")
		require.NoError(t, err)
		assert.Equal(t, StatusApproved, approved.Status)
		assert.Equal(t, ApprovalManual, approved.Approval.Type)
		require.NotNil(t, approved.Approval.ApproverID)
		assert.Equal(t, "admin", *approved.Approval.ApproverID)
		assert.Equal(t, "ok for visitors", approved.Approval.Notes)
	})

	t.Run("department manager can review", func(t *testing.T) {
		f := newFixture(t, newMemRepo())
		b, err := f.svc.Create(ctx, f.createReq("alice", []string{"vip-hall"}, 10, 12))
		require.NoError(t, err)

		rejected, err := f.svc.Reject(ctx, Actor{ID: "dmanager"}, b.ID, "hall is reserved for ceremonies")
		require.NoError(t, err)
		assert.Equal(t, StatusRejected, rejected.Status)
		assert.Equal(t, "hall is reserved for ceremonies", rejected.Approval.Notes)
	})

	t.Run("regular user cannot review", func(t *testing.T) {
		f := newFixture(t, newMemRepo())
		b, err := f.svc.Create(ctx, f.createReq("visitor", []string{"room-a"}, 10, 12))
		require.NoError(t, err)

		_, err = f.svc.Approve(ctx, Actor{ID: "bob"}, b.ID, "")
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("approving an already approved booking fails", func(t *testing.T) {
		f := newFixture(t, newMemRepo())
		b, err := f.svc.Create(ctx, f.createReq("alice", []string{"room-a"}, 10, 12))
		require.NoError(t, err)
		require.Equal(t, StatusApproved, b.Status)

		_, err = f.svc.Approve(ctx, Actor{ID: "admin", IsAdmin: true}, b.ID, "")
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("rejection releases the window", func(t *testing.T) {
		f := newFixture(t, newMemRepo())
		b, err := f.svc.Create(ctx, f.createReq("visitor", []string{"room-a"}, 10, 12))
		require.NoError(t, err)

		_, err = f.svc.Reject(ctx, Actor{ID: "admin", IsAdmin: true}, b.ID, "")
		require.NoError(t, err)

		_, err = f.svc.Create(ctx, f.createReq("alice", []string{"room-a"}, 10, 12))
		assert.NoError(t, err)
	})
}

func TestCancel(t *testing.T) {
	ctx := context.Background()

	t.Run("owner cancels and frees the window", func(t *testing.T) {
		f := newFixture(t, newMemRepo())
		b, err := f.svc.Create(ctx, f.createReq("alice", []string{"room-a"}, 10, 12))
		require.NoError(t, err)

		cancelled, err := f.svc.Cancel(ctx, Actor{ID: "alice"}, b.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, cancelled.Status)

		_, err = f.svc.Create(ctx, f.createReq("bob", []string{"room-a"}, 10, 12))
		assert.NoError(t, err)
	})

	t.Run("non-owner cannot cancel", func(t *testing.T) {
		f := newFixture(t, newMemRepo())
		b, err := f.svc.Create(ctx, f.createReq("alice", []string{"room-a"}, 10, 12))
		require.NoError(t, err)

		_, err = f.svc.Cancel(ctx, Actor{ID: "bob"}, b.ID)
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("cancelled booking stays cancelled", func(t *testing.T) {
		f := newFixture(t, newMemRepo())
		b, err := f.svc.Create(ctx, f.createReq("alice", []string{"room-a"}, 10, 12))
		require.NoError(t, err)

		_, err = f.svc.Cancel(ctx, Actor{ID: "alice"}, b.ID)
		require.NoError(t, err)

		_, err = f.svc.Cancel(ctx, Actor{ID: "alice"}, b.ID)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestCheckInAndOut(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*fixture, *Booking) {
		f := newFixture(t, newMemRepo())
		b, err := f.svc.Create(ctx, f.createReq("alice", []string{"room-a"}, 10, 12))
		require.NoError(t, err)
		return f, b
	}

	t.Run("check-in within the early window", func(t *testing.T) {
		f, b := setup(t)
		f.svc.now = func() time.Time { return b.StartTime.Add(-10 * time.Minute) }

		checked, err := f.svc.CheckIn(ctx, Actor{ID: "alice"}, b.ID, b.CheckInCode)
		require.NoError(t, err)
		assert.Equal(t, StatusCheckedIn, checked.Status)
		assert.NotNil(t, checked.CheckedInAt)
	})

	t.Run("too early", func(t *testing.T) {
		f, b := setup(t)
		f.svc.now = func() time.Time { return b.StartTime.Add(-time.Hour) }

		_, err := f.svc.CheckIn(ctx, Actor{ID: "alice"}, b.ID, b.CheckInCode)
		assert.ErrorIs(t, err, ErrOutsideCheckInHours)
	})

	t.Run("after the booking ended", func(t *testing.T) {
		f, b := setup(t)
		f.svc.now = func() time.Time { return b.EndTime }

		_, err := f.svc.CheckIn(ctx, Actor{ID: "alice"}, b.ID, b.CheckInCode)
		assert.ErrorIs(t, err, ErrOutsideCheckInHours)
	})

	t.Run("wrong code", func(t *testing.T) {
		f, b := setup(t)
		f.svc.now = func() time.Time { return b.StartTime }

		_, err := f.svc.CheckIn(ctx, Actor{ID: "alice"}, b.ID, "WRONGCOD")
		assert.ErrorIs(t, err, ErrInvalidCheckInCode)
	})

	t.Run("pending booking cannot check in", func(t *testing.T) {
		f := newFixture(t, newMemRepo())
		b, err := f.svc.Create(ctx, f.createReq("visitor", []string{"room-a"}, 10, 12))
		require.NoError(t, err)
		f.svc.now = func() time.Time { return b.StartTime }

		_, err = f.svc.CheckIn(ctx, Actor{ID: "visitor"}, b.ID, b.CheckInCode)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("check-out completes the lifecycle", func(t *testing.T) {
		f, b := setup(t)
		f.svc.now = func() time.Time { return b.StartTime }

		_, err := f.svc.CheckIn(ctx, Actor{ID: "alice"}, b.ID, b.CheckInCode)
		require.NoError(t, err)

		done, err := f.svc.CheckOut(ctx, Actor{ID: "alice"}, b.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusCheckedOut, done.Status)
		assert.NotNil(t, done.CheckedOutAt)
		assert.True(t, done.Status.IsTerminal())
	})
}

func TestReschedule(t *testing.T) {
	ctx := context.Background()

	t.Run("moves to a free window", func(t *testing.T) {
		f := newFixture(t, newMemRepo())
		b, err := f.svc.Create(ctx, f.createReq("alice", []string{"room-a"}, 10, 12))
		require.NoError(t, err)

		day := f.now.Truncate(24 * time.Hour)
		moved, err := f.svc.Reschedule(ctx, Actor{ID: "alice"}, b.ID, day.Add(14*time.Hour), day.Add(16*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, day.Add(14*time.Hour), moved.StartTime)
	})

	t.Run("own window does not block the reschedule", func(t *testing.T) {
		f := newFixture(t, newMemRepo())
		b, err := f.svc.Create(ctx, f.createReq("alice", []string{"room-a"}, 10, 12))
		require.NoError(t, err)

		day := f.now.Truncate(24 * time.Hour)
		_, err = f.svc.Reschedule(ctx, Actor{ID: "alice"}, b.ID, day.Add(11*time.Hour), day.Add(13*time.Hour))
		assert.NoError(t, err)
	})

	t.Run("another booking blocks the reschedule", func(t *testing.T) {
		f := newFixture(t, newMemRepo())
		b, err := f.svc.Create(ctx, f.createReq("alice", []string{"room-a"}, 10, 12))
		require.NoError(t, err)
		_, err = f.svc.Create(ctx, f.createReq("bob", []string{"room-a"}, 14, 16))
		require.NoError(t, err)

		day := f.now.Truncate(24 * time.Hour)
		_, err = f.svc.Reschedule(ctx, Actor{ID: "alice"}, b.ID, day.Add(15*time.Hour), day.Add(17*time.Hour))
		assert.ErrorIs(t, err, ErrTimeConflict)
	})
}

func TestExpireOverdue(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, newMemRepo())

	b, err := f.svc.Create(ctx, f.createReq("alice", []string{"room-a"}, 10, 12))
	require.NoError(t, err)

	// Not yet past the grace period.
	f.svc.now = func() time.Time { return b.EndTime.Add(10 * time.Minute) }
	n, err := f.svc.ExpireOverdue(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	// Past end plus grace, with no check-in: the booking is a no-show.
	f.svc.now = func() time.Time { return b.EndTime.Add(31 * time.Minute) }
	n, err = f.svc.ExpireOverdue(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := f.repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusExpired, got.Status)
}

func TestAvailability(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, newMemRepo())

	_, err := f.svc.Create(ctx, f.createReq("alice", []string{"room-a"}, 10, 12))
	require.NoError(t, err)
	cancelled, err := f.svc.Create(ctx, f.createReq("bob", []string{"room-a"}, 14, 16))
	require.NoError(t, err)
	_, err = f.svc.Cancel(ctx, Actor{ID: "bob"}, cancelled.ID)
	require.NoError(t, err)

	day := f.now.Truncate(24 * time.Hour)
	slots, err := f.svc.Availability(ctx, "room-a", day)
	require.NoError(t, err)

	// 08-10 and 12-22: the cancelled booking does not block.
	require.Len(t, slots, 2)
	assert.Equal(t, day.Add(8*time.Hour), slots[0].StartTime)
	assert.Equal(t, day.Add(10*time.Hour), slots[0].EndTime)
	assert.Equal(t, day.Add(12*time.Hour), slots[1].StartTime)
	assert.Equal(t, day.Add(22*time.Hour), slots[1].EndTime)
}

func TestListScopedToOwnBookings(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, newMemRepo())

	_, err := f.svc.Create(ctx, f.createReq("alice", []string{"room-a"}, 10, 12))
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, f.createReq("bob", []string{"room-b"}, 10, 12))
	require.NoError(t, err)

	own, _, err := f.svc.List(ctx, Actor{ID: "alice"}, Filter{})
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, "alice", own[0].UserID)

	all, _, err := f.svc.List(ctx, Actor{ID: "admin", IsAdmin: true}, Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
