package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCalculateStreaks(t *testing.T) {
	tests := []struct {
		name        string
		days        []time.Time
		ref         time.Time
		wantCurrent int
		wantLongest int
	}{
		{
			name:        "Empty set",
			days:        nil,
			wantCurrent: 0,
			wantLongest: 0,
		},
		{
			name:        "Gap before the latest day",
			days:        []time.Time{day(2025, 1, 1), day(2025, 1, 2), day(2025, 1, 3), day(2025, 1, 5)},
			ref:         day(2025, 1, 5),
			wantCurrent: 1,
			wantLongest: 3,
		},
		{
			name:        "Zero reference anchors at latest active day",
			days:        []time.Time{day(2025, 1, 1), day(2025, 1, 2), day(2025, 1, 3), day(2025, 1, 5)},
			wantCurrent: 1,
			wantLongest: 3,
		},
		{
			name:        "Reference day without activity breaks the current streak",
			days:        []time.Time{day(2025, 1, 1), day(2025, 1, 2)},
			ref:         day(2025, 1, 4),
			wantCurrent: 0,
			wantLongest: 2,
		},
		{
			name:        "Unsorted with duplicates and times of day",
			days:        []time.Time{day(2025, 3, 2).Add(15 * time.Hour), day(2025, 3, 1), day(2025, 3, 2), day(2025, 2, 28)},
			wantCurrent: 3,
			wantLongest: 3,
		},
		{
			name:        "Streak across a month boundary",
			days:        []time.Time{day(2024, 2, 28), day(2024, 2, 29), day(2024, 3, 1)},
			wantCurrent: 3,
			wantLongest: 3,
		},
		{
			name:        "Longest run in the past",
			days:        []time.Time{day(2025, 5, 1), day(2025, 5, 2), day(2025, 5, 3), day(2025, 5, 4), day(2025, 5, 10), day(2025, 5, 11)},
			wantCurrent: 2,
			wantLongest: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotCurrent, gotLongest := CalculateStreaks(tt.days, tt.ref)
			assert.Equal(t, tt.wantCurrent, gotCurrent, "Current Streak mismatch")
			assert.Equal(t, tt.wantLongest, gotLongest, "Longest Streak mismatch")
		})
	}
}

func TestActiveDays(t *testing.T) {
	got := ActiveDays([]time.Time{day(2025, 1, 3), day(2025, 1, 1).Add(time.Hour), day(2025, 1, 1)})
	assert.Equal(t, []time.Time{day(2025, 1, 1), day(2025, 1, 3)}, got)
}
