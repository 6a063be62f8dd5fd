package domain

import "math"

const (
	PointsReferenceMinutes  = 480.0
	PointsReferenceHardness = 6.0
	PointsDurationExponent  = 0.7
	PointsHardnessExponent  = 0.5
	MaxPoints               = 100.0
)

// Points scores a day from its total minutes and average hardness, capped at 100.
// 480 minutes at hardness 6 is exactly 100.
func Points(totalMinutes int, avgHardness float64) float64 {
	if totalMinutes <= 0 || avgHardness <= 0 {
		return 0
	}
	t := float64(totalMinutes) / PointsReferenceMinutes
	h := math.Max(0.1, avgHardness) / PointsReferenceHardness
	raw := math.Pow(t, PointsDurationExponent) * math.Pow(h, PointsHardnessExponent)
	return math.Min(MaxPoints, MaxPoints*raw)
}

// AverageHardness is the mean of the valid (1..10) hardness values, 1.0 when there are none.
func AverageHardness(entries []SessionEntry) float64 {
	sum, n := 0, 0
	for _, e := range entries {
		if e.HasValidHardness() {
			sum += e.Hardness
			n++
		}
	}
	if n == 0 {
		return 1.0
	}
	return float64(sum) / float64(n)
}
