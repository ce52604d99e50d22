package booking

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOverlaps(t *testing.T) {
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	at := func(h int) time.Time { return base.Add(time.Duration(h) * time.Hour) }

	tests := []struct {
		name   string
		aStart int
		aEnd   int
		bStart int
		bEnd   int
		want   bool
	}{
		{"identical windows", 0, 2, 0, 2, true},
		{"partial overlap", 0, 2, 1, 3, true},
		{"contained", 0, 4, 1, 2, true},
		{"touching end to start", 0, 2, 2, 4, false},
		{"touching start to end", 2, 4, 0, 2, false},
		{"disjoint", 0, 1, 3, 4, false},
		{"one minute overlap across boundary", 0, 2, 1, 2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(at(tt.aStart), at(tt.aEnd), at(tt.bStart), at(tt.bEnd))
			assert.Equal(t, tt.want, got)
			// Overlap is symmetric.
			assert.Equal(t, tt.want, Overlaps(at(tt.bStart), at(tt.bEnd), at(tt.aStart), at(tt.aEnd)))
		})
	}
}

func TestOverlapsRandomized(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	base := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 1000; i++ {
		aStart := base.Add(time.Duration(rng.Intn(1440)) * time.Minute)
		aEnd := aStart.Add(time.Duration(1+rng.Intn(480)) * time.Minute)
		bStart := base.Add(time.Duration(rng.Intn(1440)) * time.Minute)
		bEnd := bStart.Add(time.Duration(1+rng.Intn(480)) * time.Minute)

		// Two half-open intervals intersect iff the later start is
		// before the earlier end.
		laterStart := aStart
		if bStart.After(laterStart) {
			laterStart = bStart
		}
		earlierEnd := aEnd
		if bEnd.Before(earlierEnd) {
			earlierEnd = bEnd
		}
		want := laterStart.Before(earlierEnd)

		assert.Equal(t, want, Overlaps(aStart, aEnd, bStart, bEnd),
			"a=[%v,%v) b=[%v,%v)", aStart, aEnd, bStart, bEnd)
	}
}
