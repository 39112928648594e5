package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fourTierBands() []RangeBand {
	return []RangeBand{
		{Min: 0, Max: 40, Level: Level{Name: "Developing", Code: "developing"}},
		{Min: 40, Max: 60, Level: Level{Name: "Emerging", Code: "emerging"}},
		{Min: 60, Max: 80, Level: Level{Name: "Strong", Code: "strong"}},
		{Min: 80, Max: 100, Level: Level{Name: "Exceptional", Code: "exceptional"}},
	}
}

func TestResolveLevelHalfOpen(t *testing.T) {
	bands := fourTierBands()

	tests := []struct {
		score float64
		code  string
	}{
		{0, "developing"},
		{39.99, "developing"},
		{40, "emerging"},
		{59.5, "emerging"},
		{60, "strong"},
		{80, "exceptional"},
		{99.9, "exceptional"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.code, ResolveLevel(tt.score, bands).Code, "score %v", tt.score)
	}
}

func TestResolveLevelTopBoundaryFallback(t *testing.T) {
	// 100 is outside every half-open band; it falls into the band
	// with the greatest max.
	assert.Equal(t, "exceptional", ResolveLevel(100, fourTierBands()).Code)
}

func TestResolveLevelUnknownWhenUnconfigured(t *testing.T) {
	assert.Equal(t, UnknownLevel, ResolveLevel(50, nil))
	assert.Equal(t, -1, ResolveRangeIndex(50, nil))
}

func TestResolveRangeIndexUnsortedInput(t *testing.T) {
	bands := []RangeBand{
		{Min: 50, Max: 100, Level: Level{Code: "high"}},
		{Min: 0, Max: 50, Level: Level{Code: "low"}},
	}
	assert.Equal(t, 1, ResolveRangeIndex(10, bands))
	assert.Equal(t, 0, ResolveRangeIndex(75, bands))
	assert.Equal(t, 0, ResolveRangeIndex(100, bands))
}

func TestOverallLevelTiers(t *testing.T) {
	tests := []struct {
		score float64
		code  string
	}{
		{100, "exceptional"},
		{80, "exceptional"},
		{79.99, "strong"},
		{60, "strong"},
		{59, "emerging"},
		{40, "emerging"},
		{39.99, "developing"},
		{0, "developing"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.code, OverallLevelFor(tt.score).Code, "score %v", tt.score)
	}
}

func TestValidateRangePartition(t *testing.T) {
	assert.True(t, ValidateRangePartition(fourTierBands()))

	// unsorted input is fine
	assert.True(t, ValidateRangePartition([]RangeBand{
		{Min: 50, Max: 100},
		{Min: 0, Max: 50},
	}))

	assert.False(t, ValidateRangePartition(nil), "empty")
	assert.False(t, ValidateRangePartition([]RangeBand{
		{Min: 5, Max: 100},
	}), "does not start at 0")
	assert.False(t, ValidateRangePartition([]RangeBand{
		{Min: 0, Max: 50},
		{Min: 60, Max: 100},
	}), "gap")
	assert.False(t, ValidateRangePartition([]RangeBand{
		{Min: 0, Max: 60},
		{Min: 50, Max: 100},
	}), "overlap")
	assert.False(t, ValidateRangePartition([]RangeBand{
		{Min: 0, Max: 90},
	}), "does not end at 100")
	assert.False(t, ValidateRangePartition([]RangeBand{
		{Min: 0, Max: 0},
		{Min: 0, Max: 100},
	}), "empty band")
}
