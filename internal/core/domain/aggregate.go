package domain

// AggregateDay recomputes the totals of one day bucket from the full entry list.
func AggregateDay(entries []SessionEntry, day string) DayAggregate {
	var bucket []SessionEntry
	total := 0
	for _, e := range entries {
		if e.Date != day {
			continue
		}
		bucket = append(bucket, e)
		total += max(0, e.Duration)
	}

	avg := AverageHardness(bucket)
	return DayAggregate{
		Day:          day,
		Sessions:     len(bucket),
		TotalMinutes: total,
		AvgHardness:  avg,
		Points:       Points(total, avg),
	}
}

// DayKeys lists the distinct day keys in order of first appearance.
func DayKeys(entries []SessionEntry) []string {
	seen := make(map[string]bool)
	var keys []string
	for _, e := range entries {
		if !seen[e.Date] {
			seen[e.Date] = true
			keys = append(keys, e.Date)
		}
	}
	return keys
}
