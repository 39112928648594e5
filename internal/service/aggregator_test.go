package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func likertConfig(id uint, scaleMax int, weight float64, reversed bool, subAreas ...uint) QuestionConfig {
	return QuestionConfig{
		QuestionID:      id,
		ScaleMax:        scaleMax,
		Weight:          weight,
		IsReverseScored: reversed,
		SubAreaIDs:      subAreas,
	}
}

func TestAggregateResponsesReverseScored(t *testing.T) {
	configs := map[uint]QuestionConfig{
		1: likertConfig(1, 5, 1, false),
		2: likertConfig(2, 5, 1, true),
	}
	responses := []ResponsePair{
		{QuestionID: 1, Value: 5},
		{QuestionID: 2, Value: 1},
	}

	// 5 stays 5, reversed 1 becomes 5+1-1=5, so (5+5)/(5+5)*100
	assert.InDelta(t, 100.0, AggregateResponses(responses, configs), 1e-9)
}

func TestAggregateResponsesMidScale(t *testing.T) {
	configs := map[uint]QuestionConfig{
		1: likertConfig(1, 5, 1, false),
		2: likertConfig(2, 5, 1, false),
	}
	responses := []ResponsePair{
		{QuestionID: 1, Value: 3},
		{QuestionID: 2, Value: 3},
	}

	assert.InDelta(t, 60.0, AggregateResponses(responses, configs), 1e-9)
}

func TestAggregateResponsesWeighted(t *testing.T) {
	configs := map[uint]QuestionConfig{
		1: likertConfig(1, 5, 3, false),
		2: likertConfig(2, 5, 1, false),
	}
	responses := []ResponsePair{
		{QuestionID: 1, Value: 5},
		{QuestionID: 2, Value: 1},
	}

	// (5*3 + 1*1) / (5*3 + 5*1) = 16/20
	assert.InDelta(t, 80.0, AggregateResponses(responses, configs), 1e-9)
}

func TestAggregateResponsesBounds(t *testing.T) {
	configs := map[uint]QuestionConfig{
		1: likertConfig(1, 5, 2.5, false),
		2: likertConfig(2, 7, 0.5, true),
		3: likertConfig(3, 5, 1, true),
	}

	for v1 := 1; v1 <= 5; v1++ {
		for v2 := 1; v2 <= 7; v2++ {
			for v3 := 1; v3 <= 5; v3++ {
				responses := []ResponsePair{
					{QuestionID: 1, Value: v1},
					{QuestionID: 2, Value: v2},
					{QuestionID: 3, Value: v3},
				}
				score := AggregateResponses(responses, configs)
				assert.GreaterOrEqual(t, score, 0.0)
				assert.LessOrEqual(t, score, 100.0)
			}
		}
	}
}

func TestAggregateResponsesReverseInvolution(t *testing.T) {
	// Scoring v reversed equals scoring scaleMax+1-v unreversed.
	for scaleMax := range map[int]bool{5: true, 7: true} {
		reversed := map[uint]QuestionConfig{1: likertConfig(1, scaleMax, 1, true)}
		plain := map[uint]QuestionConfig{1: likertConfig(1, scaleMax, 1, false)}

		for v := 1; v <= scaleMax; v++ {
			got := AggregateResponses([]ResponsePair{{QuestionID: 1, Value: v}}, reversed)
			want := AggregateResponses([]ResponsePair{{QuestionID: 1, Value: scaleMax + 1 - v}}, plain)
			assert.InDelta(t, want, got, 1e-9)
		}
	}
}

func TestAggregateResponsesSkipsUnknownQuestions(t *testing.T) {
	configs := map[uint]QuestionConfig{
		1: likertConfig(1, 5, 1, false),
	}
	responses := []ResponsePair{
		{QuestionID: 1, Value: 5},
		{QuestionID: 99, Value: 1},
	}

	assert.InDelta(t, 100.0, AggregateResponses(responses, configs), 1e-9)
}

func TestAggregateResponsesEmpty(t *testing.T) {
	assert.Zero(t, AggregateResponses(nil, map[uint]QuestionConfig{}))
	assert.Zero(t, AggregateResponses([]ResponsePair{{QuestionID: 9, Value: 3}}, map[uint]QuestionConfig{}))
}

func TestAggregateSubAreasMultiMembership(t *testing.T) {
	configs := map[uint]QuestionConfig{
		1: likertConfig(1, 5, 1, false, 10, 20),
		2: likertConfig(2, 5, 1, false, 20),
	}
	responses := []ResponsePair{
		{QuestionID: 1, Value: 5},
		{QuestionID: 2, Value: 1},
	}

	results := AggregateSubAreas(responses, configs)
	assert.Len(t, results, 2)

	assert.Equal(t, uint(10), results[0].SubAreaID)
	assert.InDelta(t, 100.0, results[0].Score, 1e-9)

	assert.Equal(t, uint(20), results[1].SubAreaID)
	assert.InDelta(t, 60.0, results[1].Score, 1e-9)
}

func TestAggregateSubAreasIndependence(t *testing.T) {
	configs := map[uint]QuestionConfig{
		1: likertConfig(1, 5, 1, false, 10),
		2: likertConfig(2, 5, 1, false, 20),
	}

	base := AggregateSubAreas([]ResponsePair{
		{QuestionID: 1, Value: 4},
		{QuestionID: 2, Value: 2},
	}, configs)

	// Changing question 2 must not move sub-area 10's score.
	changed := AggregateSubAreas([]ResponsePair{
		{QuestionID: 1, Value: 4},
		{QuestionID: 2, Value: 5},
	}, configs)

	assert.Equal(t, base[0].SubAreaID, changed[0].SubAreaID)
	assert.InDelta(t, base[0].Score, changed[0].Score, 1e-9)
	assert.NotEqual(t, base[1].Score, changed[1].Score)
}

func TestAggregateSubAreasOmitsEmpty(t *testing.T) {
	configs := map[uint]QuestionConfig{
		1: likertConfig(1, 5, 1, false, 10),
		2: likertConfig(2, 5, 1, false, 20),
	}
	results := AggregateSubAreas([]ResponsePair{{QuestionID: 1, Value: 3}}, configs)

	assert.Len(t, results, 1)
	assert.Equal(t, uint(10), results[0].SubAreaID)
}
