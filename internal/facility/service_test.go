package facility

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuskit/facility-booking-backend/internal/building"
	"github.com/campuskit/facility-booking-backend/internal/department"
	"github.com/campuskit/facility-booking-backend/internal/facilitytype"
)

type memRepo struct {
	facilities map[string]*Facility
	nextID     int
}

func newMemRepo() *memRepo {
	return &memRepo{facilities: make(map[string]*Facility)}
}

func (r *memRepo) Create(_ context.Context, f *Facility) error {
	r.nextID++
	f.ID = fmt.Sprintf("facility-%d", r.nextID)
	cp := *f
	r.facilities[f.ID] = &cp
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id string) (*Facility, error) {
	f, ok := r.facilities[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *f
	return &cp, nil
}

func (r *memRepo) GetByIDs(_ context.Context, ids []string) ([]*Facility, error) {
	var out []*Facility
	for _, id := range ids {
		if f, ok := r.facilities[id]; ok {
			cp := *f
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memRepo) List(_ context.Context, _ Filter) ([]*Facility, int, error) {
	var out []*Facility
	for _, f := range r.facilities {
		cp := *f
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (r *memRepo) ListActiveByType(_ context.Context, typeCode string) ([]*Facility, error) {
	var out []*Facility
	for _, f := range r.facilities {
		if f.TypeCode == typeCode && f.Bookable() {
			cp := *f
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memRepo) Update(_ context.Context, f *Facility) error {
	if _, ok := r.facilities[f.ID]; !ok {
		return ErrNotFound
	}
	cp := *f
	r.facilities[f.ID] = &cp
	return nil
}

func (r *memRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.facilities[id]; !ok {
		return ErrNotFound
	}
	delete(r.facilities, id)
	return nil
}

type fakeBuildingService struct {
	building.Service
	known map[string]bool
}

func (f *fakeBuildingService) GetByID(_ context.Context, id string) (*building.Building, error) {
	if !f.known[id] {
		return nil, building.ErrNotFound
	}
	return &building.Building{ID: id}, nil
}

type fakeDeptService struct {
	department.Service
	known map[string]bool
}

func (f *fakeDeptService) GetByID(_ context.Context, id string) (*department.Department, error) {
	if !f.known[id] {
		return nil, department.ErrNotFound
	}
	return &department.Department{ID: id}, nil
}

type fakeTypeService struct {
	facilitytype.Service
	known map[string]bool
}

func (f *fakeTypeService) GetByCode(_ context.Context, code string) (*facilitytype.FacilityType, error) {
	if !f.known[code] {
		return nil, facilitytype.ErrNotFound
	}
	return &facilitytype.FacilityType{Code: code}, nil
}

func newTestService() (Service, *memRepo) {
	repo := newMemRepo()
	svc := NewService(
		repo,
		&fakeBuildingService{known: map[string]bool{"bldg-1": true}},
		&fakeDeptService{known: map[string]bool{"dept-1": true}},
		&fakeTypeService{known: map[string]bool{"classroom": true, "lab": true}},
	)
	return svc, repo
}

func validCreate() CreateRequest {
	return CreateRequest{
		Name:         "Room 101",
		TypeCode:     "classroom",
		BuildingID:   "bldg-1",
		DepartmentID: "dept-1",
		Capacity:     30,
	}
}

func TestCreateFacility(t *testing.T) {
	ctx := context.Background()

	t.Run("creates active facility", func(t *testing.T) {
		svc, _ := newTestService()

		f, err := svc.Create(ctx, validCreate())
		require.NoError(t, err)
		assert.NotEmpty(t, f.ID)
		assert.True(t, f.Active)
		assert.False(t, f.MaintenanceMode)
		assert.True(t, f.Bookable())
	})

	t.Run("trims name", func(t *testing.T) {
		svc, _ := newTestService()

		req := validCreate()
		req.Name = "  Room 101  "
		f, err := svc.Create(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "Room 101", f.Name)
	})

	t.Run("rejects blank name", func(t *testing.T) {
		svc, _ := newTestService()

		req := validCreate()
		req.Name = "   "
		_, err := svc.Create(ctx, req)
		assert.ErrorIs(t, err, ErrEmptyName)
	})

	t.Run("rejects non positive capacity", func(t *testing.T) {
		svc, _ := newTestService()

		req := validCreate()
		req.Capacity = 0
		_, err := svc.Create(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidCapacity)
	})

	t.Run("rejects min duration above max", func(t *testing.T) {
		svc, _ := newTestService()

		req := validCreate()
		req.MinBookingMinutes = 120
		req.MaxBookingMinutes = 60
		_, err := svc.Create(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidDuration)
	})

	t.Run("zero max means unbounded", func(t *testing.T) {
		svc, _ := newTestService()

		req := validCreate()
		req.MinBookingMinutes = 120
		req.MaxBookingMinutes = 0
		_, err := svc.Create(ctx, req)
		assert.NoError(t, err)
	})

	t.Run("rejects unknown type code", func(t *testing.T) {
		svc, _ := newTestService()

		req := validCreate()
		req.TypeCode = "spaceship"
		_, err := svc.Create(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidType)
	})

	t.Run("rejects unknown building", func(t *testing.T) {
		svc, _ := newTestService()

		req := validCreate()
		req.BuildingID = "bldg-404"
		_, err := svc.Create(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidBuilding)
	})

	t.Run("rejects unknown department", func(t *testing.T) {
		svc, _ := newTestService()

		req := validCreate()
		req.DepartmentID = "dept-404"
		_, err := svc.Create(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidDept)
	})
}

func TestUpdateFacility(t *testing.T) {
	ctx := context.Background()

	strPtr := func(s string) *string { return &s }
	intPtr := func(i int) *int { return &i }
	boolPtr := func(b bool) *bool { return &b }

	t.Run("partial update keeps other fields", func(t *testing.T) {
		svc, _ := newTestService()
		created, err := svc.Create(ctx, validCreate())
		require.NoError(t, err)

		updated, err := svc.Update(ctx, created.ID, UpdateRequest{
			Capacity: intPtr(50),
		})
		require.NoError(t, err)
		assert.Equal(t, 50, updated.Capacity)
		assert.Equal(t, created.Name, updated.Name)
		assert.True(t, updated.Active)
	})

	t.Run("maintenance mode stops bookability", func(t *testing.T) {
		svc, _ := newTestService()
		created, err := svc.Create(ctx, validCreate())
		require.NoError(t, err)

		updated, err := svc.Update(ctx, created.ID, UpdateRequest{
			MaintenanceMode: boolPtr(true),
		})
		require.NoError(t, err)
		assert.True(t, updated.Active)
		assert.False(t, updated.Bookable())
	})

	t.Run("duration bounds validated against merged state", func(t *testing.T) {
		svc, _ := newTestService()
		req := validCreate()
		req.MaxBookingMinutes = 60
		created, err := svc.Create(ctx, req)
		require.NoError(t, err)

		_, err = svc.Update(ctx, created.ID, UpdateRequest{
			MinBookingMinutes: intPtr(90),
		})
		assert.ErrorIs(t, err, ErrInvalidDuration)
	})

	t.Run("blank name rejected", func(t *testing.T) {
		svc, _ := newTestService()
		created, err := svc.Create(ctx, validCreate())
		require.NoError(t, err)

		_, err = svc.Update(ctx, created.ID, UpdateRequest{Name: strPtr(" ")})
		assert.ErrorIs(t, err, ErrEmptyName)
	})

	t.Run("unknown id", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.Update(ctx, "missing", UpdateRequest{Capacity: intPtr(10)})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDeactivateFacility(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService()

	created, err := svc.Create(ctx, validCreate())
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(ctx, created.ID))

	stored := repo.facilities[created.ID]
	assert.False(t, stored.Active)
	assert.False(t, stored.Bookable())

	// Deactivated facilities fall out of the active type pool.
	pool, err := svc.ListActiveByType(ctx, "classroom")
	require.NoError(t, err)
	assert.Empty(t, pool)
}
