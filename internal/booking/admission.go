package booking

import (
	"context"
	"time"

	"github.com/campuskit/facility-booking-backend/internal/facility"
)

// Decision is the verdict of the admission engine for a booking request.
type Decision string

const (
	// DecisionAutoApprove grants the booking without human review.
	DecisionAutoApprove Decision = "auto_approve"
	// DecisionRequiresApproval queues the booking for manual review by
	// an admin or the owning department's managers.
	DecisionRequiresApproval Decision = "requires_approval"
	// DecisionRejectConflict refuses the request because a facility is
	// already booked in the window. No booking is created.
	DecisionRejectConflict Decision = "reject_conflict"
	// DecisionRejectInactive refuses the request because a facility is
	// deactivated or under maintenance. No booking is created.
	DecisionRejectInactive Decision = "reject_inactive"
)

// ConflictReader is the slice of the booking store the admission engine
// reads. Tests drive the engine with an in-memory implementation.
type ConflictReader interface {
	// HasConflict reports whether any booking that still holds its
	// window shares a facility with the ids and intersects the
	// half-open interval [start, end). excludeBookingID skips one
	// booking, so a reschedule can be checked against everyone else.
	HasConflict(ctx context.Context, facilityIDs []string, start, end time.Time, excludeBookingID string) (bool, error)

	// ReservedFacilities returns the distinct subset of the given
	// facility ids that are already reserved somewhere in [start, end).
	ReservedFacilities(ctx context.Context, facilityIDs []string, start, end time.Time) ([]string, error)
}

// CatalogReader supplies the capacity pool for a facility type.
type CatalogReader interface {
	ListActiveByType(ctx context.Context, typeCode string) ([]*facility.Facility, error)
}

// AdmissionEngine decides the disposition of a booking request. It is
// read-only and deterministic for a given snapshot of the stores: the
// caller re-runs it from scratch when a commit-time conflict forces a
// retry.
type AdmissionEngine struct {
	conflicts ConflictReader
	catalog   CatalogReader
}

// NewAdmissionEngine creates an admission engine over the given stores.
func NewAdmissionEngine(conflicts ConflictReader, catalog CatalogReader) *AdmissionEngine {
	return &AdmissionEngine{
		conflicts: conflicts,
		catalog:   catalog,
	}
}

// Decide evaluates a request for the given facilities and half-open
// window [start, end). Rules fire in order; the first reject wins:
//
//  1. any facility inactive or in maintenance rejects outright
//  2. an overlap on any requested facility rejects outright
//  3. a restricted facility or an external requester forces review
//  4. if every active facility of a requested type is already reserved
//     in the window, the type is saturated and the request is forced
//     into review as well
//
// Auto-approval is only granted while spare capacity of each requested
// type remains: a request that takes the last instance of a type gets a
// human look before it starves other requesters.
func (e *AdmissionEngine) Decide(ctx context.Context, facilities []*facility.Facility, start, end time.Time, isExternal bool) (Decision, error) {
	for _, f := range facilities {
		if !f.Bookable() {
			return DecisionRejectInactive, nil
		}
	}

	ids := make([]string, len(facilities))
	for i, f := range facilities {
		ids[i] = f.ID
	}

	// TODO: decide whether buffer_minutes_between should widen this
	// interval; the field is stored on facilities but has never been
	// applied here, and enforcing it changes which bookings are
	// accepted.
	conflict, err := e.conflicts.HasConflict(ctx, ids, start, end, "")
	if err != nil {
		return "", err
	}
	if conflict {
		return DecisionRejectConflict, nil
	}

	requiresManual := isExternal
	if !requiresManual {
		for _, f := range facilities {
			if f.IsRestricted {
				requiresManual = true
				break
			}
		}
	}

	if !requiresManual {
		saturated, err := e.anyTypeSaturated(ctx, facilities, start, end)
		if err != nil {
			return "", err
		}
		requiresManual = saturated
	}

	if requiresManual {
		return DecisionRequiresApproval, nil
	}
	return DecisionAutoApprove, nil
}

// anyTypeSaturated checks, per distinct facility type in the request,
// whether every bookable instance of that type is already reserved in
// the window. The comparison is >=: hitting the boundary exactly counts
// as saturated.
func (e *AdmissionEngine) anyTypeSaturated(ctx context.Context, facilities []*facility.Facility, start, end time.Time) (bool, error) {
	checked := make(map[string]bool)

	for _, f := range facilities {
		if checked[f.TypeCode] {
			continue
		}
		checked[f.TypeCode] = true

		pool, err := e.catalog.ListActiveByType(ctx, f.TypeCode)
		if err != nil {
			return false, err
		}
		if len(pool) == 0 {
			continue
		}

		poolIDs := make([]string, len(pool))
		for i, p := range pool {
			poolIDs[i] = p.ID
		}

		reserved, err := e.conflicts.ReservedFacilities(ctx, poolIDs, start, end)
		if err != nil {
			return false, err
		}
		if len(reserved) >= len(pool) {
			return true, nil
		}
	}

	return false, nil
}
