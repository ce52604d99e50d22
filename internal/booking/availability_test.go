package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateAvailability(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	at := func(h, m int) time.Time {
		return time.Date(2026, 3, 2, h, m, 0, 0, time.UTC)
	}
	booked := func(startH, endH int, status Status) *Booking {
		return &Booking{
			StartTime: at(startH, 0),
			EndTime:   at(endH, 0),
			Status:    status,
		}
	}

	t.Run("no bookings gives the full day", func(t *testing.T) {
		slots, err := CalculateAvailability(date, "08:00:00", "22:00:00", nil)
		require.NoError(t, err)
		require.Len(t, slots, 1)
		assert.Equal(t, at(8, 0), slots[0].StartTime)
		assert.Equal(t, at(22, 0), slots[0].EndTime)
	})

	t.Run("one booking splits the day", func(t *testing.T) {
		slots, err := CalculateAvailability(date, "08:00:00", "22:00:00", []*Booking{
			booked(10, 12, StatusApproved),
		})
		require.NoError(t, err)
		require.Len(t, slots, 2)
		assert.Equal(t, at(8, 0), slots[0].StartTime)
		assert.Equal(t, at(10, 0), slots[0].EndTime)
		assert.Equal(t, at(12, 0), slots[1].StartTime)
		assert.Equal(t, at(22, 0), slots[1].EndTime)
	})

	t.Run("back to back bookings leave no gap between them", func(t *testing.T) {
		slots, err := CalculateAvailability(date, "08:00:00", "22:00:00", []*Booking{
			booked(10, 12, StatusApproved),
			booked(12, 14, StatusPendingAdmin),
		})
		require.NoError(t, err)
		require.Len(t, slots, 2)
		assert.Equal(t, at(10, 0), slots[0].EndTime)
		assert.Equal(t, at(14, 0), slots[1].StartTime)
	})

	t.Run("released bookings are ignored", func(t *testing.T) {
		slots, err := CalculateAvailability(date, "08:00:00", "22:00:00", []*Booking{
			booked(10, 12, StatusCancelled),
			booked(13, 15, StatusRejected),
			booked(16, 18, StatusExpired),
		})
		require.NoError(t, err)
		require.Len(t, slots, 1)
		assert.Equal(t, at(8, 0), slots[0].StartTime)
		assert.Equal(t, at(22, 0), slots[0].EndTime)
	})

	t.Run("pending bookings block like approved ones", func(t *testing.T) {
		slots, err := CalculateAvailability(date, "08:00:00", "22:00:00", []*Booking{
			booked(9, 10, StatusPendingAdmin),
		})
		require.NoError(t, err)
		require.Len(t, slots, 2)
	})

	t.Run("booking spilling over the opening boundary is clipped", func(t *testing.T) {
		slots, err := CalculateAvailability(date, "08:00:00", "22:00:00", []*Booking{
			booked(6, 9, StatusApproved),
			booked(21, 23, StatusApproved),
		})
		require.NoError(t, err)
		require.Len(t, slots, 1)
		assert.Equal(t, at(9, 0), slots[0].StartTime)
		assert.Equal(t, at(21, 0), slots[0].EndTime)
	})

	t.Run("fully booked day has no free slots", func(t *testing.T) {
		slots, err := CalculateAvailability(date, "08:00:00", "22:00:00", []*Booking{
			booked(7, 23, StatusApproved),
		})
		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("unsorted input is handled", func(t *testing.T) {
		slots, err := CalculateAvailability(date, "08:00:00", "22:00:00", []*Booking{
			booked(18, 20, StatusApproved),
			booked(9, 11, StatusApproved),
		})
		require.NoError(t, err)
		require.Len(t, slots, 3)
		assert.Equal(t, at(11, 0), slots[1].StartTime)
		assert.Equal(t, at(18, 0), slots[1].EndTime)
	})

	t.Run("short opening hours format", func(t *testing.T) {
		slots, err := CalculateAvailability(date, "08:00", "12:30", nil)
		require.NoError(t, err)
		require.Len(t, slots, 1)
		assert.Equal(t, at(12, 30), slots[0].EndTime)
	})

	t.Run("invalid hours error", func(t *testing.T) {
		_, err := CalculateAvailability(date, "22:00:00", "08:00:00", nil)
		assert.Error(t, err)

		_, err = CalculateAvailability(date, "nope", "08:00:00", nil)
		assert.Error(t, err)
	})
}
