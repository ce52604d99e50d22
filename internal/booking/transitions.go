package booking

// transitions is the forward edge set of the booking status graph.
// Anything not listed here is an invalid move; terminal states have no
// outgoing edges, so nothing can resurrect a finished booking.
var transitions = map[Status][]Status{
	StatusPending:      {StatusApproved, StatusRejected, StatusCancelled},
	StatusPendingAdmin: {StatusApproved, StatusRejected, StatusCancelled},
	StatusApproved:     {StatusCheckedIn, StatusCancelled, StatusExpired},
	StatusCheckedIn:    {StatusCheckedOut},
}

// CanTransition reports whether a booking may move from one status to
// another.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are permitted.
func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0 && isKnownStatus(s)
}

// BlocksConflict reports whether a booking in this status still holds
// its facilities for conflict purposes. Rejected, cancelled and expired
// bookings release their time window.
func (s Status) BlocksConflict() bool {
	switch s {
	case StatusRejected, StatusCancelled, StatusExpired:
		return false
	}
	return true
}

// conflictExemptStatuses is the SQL-side mirror of BlocksConflict.
var conflictExemptStatuses = []string{
	string(StatusRejected),
	string(StatusCancelled),
	string(StatusExpired),
}

func isKnownStatus(s Status) bool {
	switch s {
	case StatusPending, StatusPendingAdmin, StatusApproved, StatusRejected,
		StatusCancelled, StatusCheckedIn, StatusCheckedOut, StatusExpired:
		return true
	}
	return false
}
