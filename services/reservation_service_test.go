package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(d int) time.Time {
	return time.Date(2027, time.March, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, d)
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     int
		want                           bool
	}{
		{"disjoint after", 10, 20, 25, 30, false},
		{"disjoint before", 10, 20, 0, 5, false},
		{"back to back, existing first", 10, 20, 20, 30, false},
		{"back to back, new first", 10, 20, 0, 10, false},
		{"contained", 10, 20, 12, 18, true},
		{"containing", 10, 20, 5, 25, true},
		{"overlapping tail", 10, 20, 15, 25, true},
		{"overlapping head", 10, 20, 5, 15, true},
		{"identical", 10, 20, 10, 20, true},
		{"shared single night", 10, 20, 19, 25, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Overlaps(day(tc.aStart), day(tc.aEnd), day(tc.bStart), day(tc.bEnd))
			assert.Equal(t, tc.want, got)

			// the predicate is symmetric in its two ranges
			swapped := Overlaps(day(tc.bStart), day(tc.bEnd), day(tc.aStart), day(tc.aEnd))
			assert.Equal(t, tc.want, swapped)
		})
	}
}

func TestOverlapsZeroLengthRange(t *testing.T) {
	// a zero-length range covers no nights and conflicts with nothing
	assert.False(t, Overlaps(day(15), day(15), day(10), day(20)))
	assert.False(t, Overlaps(day(10), day(20), day(15), day(15)))
}
