package domain

import (
	"sort"
	"time"
)

// ActiveDays deduplicates days to their midnight and sorts them ascending.
func ActiveDays(days []time.Time) []time.Time {
	seen := make(map[time.Time]bool, len(days))
	out := make([]time.Time, 0, len(days))
	for _, d := range days {
		m := Midnight(d)
		if !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Before(out[j])
	})
	return out
}

// CalculateStreaks returns the current and the longest run of consecutive days.
// The current streak walks back from ref; a zero ref means the most recent active day.
func CalculateStreaks(days []time.Time, ref time.Time) (int, int) {
	sorted := ActiveDays(days)
	if len(sorted) == 0 {
		return 0, 0
	}

	longest, run := 0, 0
	for i, d := range sorted {
		if i > 0 && d.Equal(sorted[i-1].AddDate(0, 0, 1)) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	present := make(map[time.Time]bool, len(sorted))
	for _, d := range sorted {
		present[d] = true
	}

	cursor := sorted[len(sorted)-1]
	if !ref.IsZero() {
		cursor = Midnight(ref)
	}
	current := 0
	for present[cursor] {
		current++
		cursor = cursor.AddDate(0, 0, -1)
	}

	return current, longest
}
