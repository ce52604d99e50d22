package booking

import (
	"fmt"
	"sort"
	"time"
)

// TimeSlot is a free window within a facility's opening hours.
type TimeSlot struct {
	StartTime time.Time
	EndTime   time.Time
}

// CalculateAvailability computes the free slots for one facility on one
// day, given the building's opening hours (HH:MM or HH:MM:SS) and the
// bookings touching that day. Bookings that no longer hold their window
// (rejected, cancelled, expired) are ignored; pending ones block the
// slot just like approved ones, since they may still be approved.
func CalculateAvailability(date time.Time, openStr, closeStr string, bookings []*Booking) ([]TimeSlot, error) {
	openAt, err := atTimeOfDay(date, openStr)
	if err != nil {
		return nil, fmt.Errorf("invalid opening time: %w", err)
	}
	closeAt, err := atTimeOfDay(date, closeStr)
	if err != nil {
		return nil, fmt.Errorf("invalid closing time: %w", err)
	}
	if !openAt.Before(closeAt) {
		return nil, fmt.Errorf("opening time %q is not before closing time %q", openStr, closeStr)
	}

	// Collect the blocking bookings clipped to the opening window.
	var blocked []TimeSlot
	for _, b := range bookings {
		if !b.Status.BlocksConflict() {
			continue
		}
		if !Overlaps(b.StartTime, b.EndTime, openAt, closeAt) {
			continue
		}
		blocked = append(blocked, TimeSlot{StartTime: b.StartTime, EndTime: b.EndTime})
	}

	sort.Slice(blocked, func(i, j int) bool {
		return blocked[i].StartTime.Before(blocked[j].StartTime)
	})

	var free []TimeSlot
	cursor := openAt
	for _, bl := range blocked {
		if bl.StartTime.After(cursor) {
			end := bl.StartTime
			if end.After(closeAt) {
				end = closeAt
			}
			if cursor.Before(end) {
				free = append(free, TimeSlot{StartTime: cursor, EndTime: end})
			}
		}
		if bl.EndTime.After(cursor) {
			cursor = bl.EndTime
		}
		if !cursor.Before(closeAt) {
			return free, nil
		}
	}

	if cursor.Before(closeAt) {
		free = append(free, TimeSlot{StartTime: cursor, EndTime: closeAt})
	}
	return free, nil
}

// atTimeOfDay anchors an HH:MM or HH:MM:SS string onto the given date
// in the date's location.
func atTimeOfDay(date time.Time, hhmm string) (time.Time, error) {
	layout := "15:04:05"
	if len(hhmm) == len("15:04") {
		layout = "15:04"
	}
	t, err := time.Parse(layout, hhmm)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), t.Second(), 0, date.Location()), nil
}
