package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to Status }{
		{StatusPending, StatusApproved},
		{StatusPending, StatusRejected},
		{StatusPending, StatusCancelled},
		{StatusPendingAdmin, StatusApproved},
		{StatusPendingAdmin, StatusRejected},
		{StatusPendingAdmin, StatusCancelled},
		{StatusApproved, StatusCheckedIn},
		{StatusApproved, StatusCancelled},
		{StatusApproved, StatusExpired},
		{StatusCheckedIn, StatusCheckedOut},
	}
	for _, tt := range allowed {
		assert.True(t, CanTransition(tt.from, tt.to), "%s -> %s should be allowed", tt.from, tt.to)
	}

	denied := []struct{ from, to Status }{
		{StatusPending, StatusCheckedIn},
		{StatusPendingAdmin, StatusCheckedIn},
		{StatusApproved, StatusApproved},
		{StatusApproved, StatusRejected},
		{StatusCheckedIn, StatusCancelled},
		{StatusCheckedOut, StatusCheckedIn},
		{StatusRejected, StatusApproved},
		{StatusCancelled, StatusApproved},
		{StatusExpired, StatusCheckedIn},
		{StatusExpired, StatusApproved},
	}
	for _, tt := range denied {
		assert.False(t, CanTransition(tt.from, tt.to), "%s -> %s should be denied", tt.from, tt.to)
	}
}

func TestIsTerminal(t *testing.T) {
	terminal := []Status{StatusRejected, StatusCancelled, StatusExpired, StatusCheckedOut}
	for _, s := range terminal {
		assert.True(t, s.IsTerminal(), "%s should be terminal", s)
	}

	live := []Status{StatusPending, StatusPendingAdmin, StatusApproved, StatusCheckedIn}
	for _, s := range live {
		assert.False(t, s.IsTerminal(), "%s should not be terminal", s)
	}
}

func TestBlocksConflict(t *testing.T) {
	exempt := []Status{StatusRejected, StatusCancelled, StatusExpired}
	for _, s := range exempt {
		assert.False(t, s.BlocksConflict(), "%s should not block", s)
	}

	blocking := []Status{StatusPending, StatusPendingAdmin, StatusApproved, StatusCheckedIn, StatusCheckedOut}
	for _, s := range blocking {
		assert.True(t, s.BlocksConflict(), "%s should block", s)
	}

	// The SQL-side list mirrors BlocksConflict exactly.
	assert.Len(t, conflictExemptStatuses, 3)
	for _, s := range conflictExemptStatuses {
		assert.False(t, Status(s).BlocksConflict())
	}
}
