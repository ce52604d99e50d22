package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuskit/facility-booking-backend/internal/facility"
)

// stubStore gives admission tests direct control over what the booking
// store reports.
type stubStore struct {
	conflict bool
	reserved []string
}

func (s *stubStore) HasConflict(_ context.Context, _ []string, _, _ time.Time, _ string) (bool, error) {
	return s.conflict, nil
}

func (s *stubStore) ReservedFacilities(_ context.Context, ids []string, _, _ time.Time) ([]string, error) {
	var out []string
	for _, id := range ids {
		for _, r := range s.reserved {
			if id == r {
				out = append(out, id)
				break
			}
		}
	}
	return out, nil
}

type stubCatalog struct {
	pools map[string][]*facility.Facility
}

func (s *stubCatalog) ListActiveByType(_ context.Context, typeCode string) ([]*facility.Facility, error) {
	return s.pools[typeCode], nil
}

func testFacility(id, typeCode string) *facility.Facility {
	return &facility.Facility{
		ID:       id,
		Name:     id,
		TypeCode: typeCode,
		Capacity: 10,
		Active:   true,
	}
}

func TestAdmissionRuleOrder(t *testing.T) {
	window := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	start, end := window, window.Add(2*time.Hour)

	t.Run("inactive facility rejects before anything else", func(t *testing.T) {
		f := testFacility("f1", "classroom")
		f.Active = false
		// Even a conflict and a restriction lose to the inactive check.
		f.IsRestricted = true
		engine := NewAdmissionEngine(&stubStore{conflict: true}, &stubCatalog{})

		d, err := engine.Decide(context.Background(), []*facility.Facility{f}, start, end, true)
		require.NoError(t, err)
		assert.Equal(t, DecisionRejectInactive, d)
	})

	t.Run("maintenance mode rejects", func(t *testing.T) {
		f := testFacility("f1", "classroom")
		f.MaintenanceMode = true
		engine := NewAdmissionEngine(&stubStore{}, &stubCatalog{})

		d, err := engine.Decide(context.Background(), []*facility.Facility{f}, start, end, false)
		require.NoError(t, err)
		assert.Equal(t, DecisionRejectInactive, d)
	})

	t.Run("one inactive facility taints the whole request", func(t *testing.T) {
		ok := testFacility("f1", "classroom")
		broken := testFacility("f2", "projector")
		broken.MaintenanceMode = true
		engine := NewAdmissionEngine(&stubStore{}, &stubCatalog{})

		d, err := engine.Decide(context.Background(), []*facility.Facility{ok, broken}, start, end, false)
		require.NoError(t, err)
		assert.Equal(t, DecisionRejectInactive, d)
	})

	t.Run("conflict rejects before manual review", func(t *testing.T) {
		f := testFacility("f1", "classroom")
		f.IsRestricted = true
		engine := NewAdmissionEngine(&stubStore{conflict: true}, &stubCatalog{})

		d, err := engine.Decide(context.Background(), []*facility.Facility{f}, start, end, true)
		require.NoError(t, err)
		assert.Equal(t, DecisionRejectConflict, d)
	})

	t.Run("restricted facility never auto-approves", func(t *testing.T) {
		f := testFacility("f1", "conference_room")
		f.IsRestricted = true
		engine := NewAdmissionEngine(&stubStore{}, &stubCatalog{
			pools: map[string][]*facility.Facility{"conference_room": {f, testFacility("f2", "conference_room")}},
		})

		d, err := engine.Decide(context.Background(), []*facility.Facility{f}, start, end, false)
		require.NoError(t, err)
		assert.Equal(t, DecisionRequiresApproval, d)
	})

	t.Run("external requester never auto-approves", func(t *testing.T) {
		f := testFacility("f1", "classroom")
		engine := NewAdmissionEngine(&stubStore{}, &stubCatalog{
			pools: map[string][]*facility.Facility{"classroom": {f, testFacility("f2", "classroom")}},
		})

		d, err := engine.Decide(context.Background(), []*facility.Facility{f}, start, end, true)
		require.NoError(t, err)
		assert.Equal(t, DecisionRequiresApproval, d)
	})

	t.Run("plain request auto-approves", func(t *testing.T) {
		f := testFacility("f1", "classroom")
		engine := NewAdmissionEngine(&stubStore{}, &stubCatalog{
			pools: map[string][]*facility.Facility{"classroom": {f, testFacility("f2", "classroom")}},
		})

		d, err := engine.Decide(context.Background(), []*facility.Facility{f}, start, end, false)
		require.NoError(t, err)
		assert.Equal(t, DecisionAutoApprove, d)
	})
}

func TestAdmissionSaturation(t *testing.T) {
	window := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	start, end := window, window.Add(time.Hour)

	p1 := testFacility("p1", "projector")
	p2 := testFacility("p2", "projector")
	p3 := testFacility("p3", "projector")
	pools := map[string][]*facility.Facility{"projector": {p1, p2, p3}}

	t.Run("spare capacity auto-approves", func(t *testing.T) {
		engine := NewAdmissionEngine(&stubStore{reserved: []string{"p1"}}, &stubCatalog{pools: pools})

		d, err := engine.Decide(context.Background(), []*facility.Facility{p2}, start, end, false)
		require.NoError(t, err)
		assert.Equal(t, DecisionAutoApprove, d)
	})

	t.Run("saturation flips exactly at the pool size", func(t *testing.T) {
		engine := NewAdmissionEngine(&stubStore{reserved: []string{"p1", "p2", "p3"}}, &stubCatalog{pools: pools})

		d, err := engine.Decide(context.Background(), []*facility.Facility{p2}, start, end, false)
		require.NoError(t, err)
		assert.Equal(t, DecisionRequiresApproval, d)
	})

	t.Run("one reserved short of the pool does not saturate", func(t *testing.T) {
		engine := NewAdmissionEngine(&stubStore{reserved: []string{"p1", "p2"}}, &stubCatalog{pools: pools})

		d, err := engine.Decide(context.Background(), []*facility.Facility{p3}, start, end, false)
		require.NoError(t, err)
		assert.Equal(t, DecisionAutoApprove, d)
	})

	t.Run("saturation of any requested type forces review", func(t *testing.T) {
		room := testFacility("r1", "classroom")
		multiPools := map[string][]*facility.Facility{
			"projector": {p1, p2},
			"classroom": {room, testFacility("r2", "classroom")},
		}
		engine := NewAdmissionEngine(&stubStore{reserved: []string{"p1", "p2"}}, &stubCatalog{pools: multiPools})

		d, err := engine.Decide(context.Background(), []*facility.Facility{room, p1}, start, end, false)
		require.NoError(t, err)
		assert.Equal(t, DecisionRequiresApproval, d)
	})

	t.Run("empty pool is ignored", func(t *testing.T) {
		f := testFacility("x1", "bus")
		engine := NewAdmissionEngine(&stubStore{}, &stubCatalog{pools: map[string][]*facility.Facility{}})

		d, err := engine.Decide(context.Background(), []*facility.Facility{f}, start, end, false)
		require.NoError(t, err)
		assert.Equal(t, DecisionAutoApprove, d)
	})
}
