package service

import "sort"

// RangeBand is one score range compared as half-open [Min, Max).
type RangeBand struct {
	Min   float64
	Max   float64
	Level Level
}

// ResolveRangeIndex finds the band containing score, compared as
// min <= score < max. When no band matches (a boundary score such as
// 100 against a top range ending at exactly 100) it falls back to the
// band with the greatest max. That fallback is load-bearing for seeded
// boundary data; do not replace it with closed intervals. Returns -1
// only for an empty band list.
func ResolveRangeIndex(score float64, bands []RangeBand) int {
	if len(bands) == 0 {
		return -1
	}
	for i, b := range bands {
		if score >= b.Min && score < b.Max {
			return i
		}
	}
	top := 0
	for i, b := range bands {
		if b.Max > bands[top].Max {
			top = i
		}
	}
	return top
}

// ResolveLevel maps a score to its level, or UnknownLevel when no
// ranges are configured.
func ResolveLevel(score float64, bands []RangeBand) Level {
	i := ResolveRangeIndex(score, bands)
	if i < 0 {
		return UnknownLevel
	}
	return bands[i].Level
}

// Fixed platform tiers for the overall level label and color. These
// are deliberately independent of the admin-configurable overall
// feedback bands, which select the prose only.
var overallTiers = []struct {
	threshold float64
	level     Level
}{
	{80, Level{Name: "Exceptional", Code: "exceptional", Color: "#2e7d32"}},
	{60, Level{Name: "Strong", Code: "strong", Color: "#1976d2"}},
	{40, Level{Name: "Emerging", Code: "emerging", Color: "#f9a825"}},
	{0, Level{Name: "Developing", Code: "developing", Color: "#e53935"}},
}

// OverallLevelFor returns the fixed four-tier overall level.
func OverallLevelFor(score float64) Level {
	for _, t := range overallTiers {
		if score >= t.threshold {
			return t.level
		}
	}
	return overallTiers[len(overallTiers)-1].level
}

// ValidateRangePartition checks that bands partition [0,100] as
// half-open intervals without gaps or overlaps. Violations would make
// level resolution undefined for scores in the gap, so they are
// rejected at write time.
func ValidateRangePartition(bands []RangeBand) bool {
	if len(bands) == 0 {
		return false
	}
	sorted := make([]RangeBand, len(bands))
	copy(sorted, bands)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Min < sorted[j].Min })

	if sorted[0].Min != 0 {
		return false
	}
	for i, b := range sorted {
		if b.Max <= b.Min {
			return false
		}
		if i > 0 && b.Min != sorted[i-1].Max {
			return false
		}
	}
	return sorted[len(sorted)-1].Max == 100
}
