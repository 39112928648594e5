package service

import "sort"

// AggregateResponses computes the weighted percentage score for a set
// of responses. Reverse-scored questions contribute scaleMax+1-value.
// Responses without a config entry are skipped; with no valid
// responses the score is 0. The result is always within [0,100].
func AggregateResponses(responses []ResponsePair, configs map[uint]QuestionConfig) float64 {
	var numerator, denominator float64
	for _, r := range responses {
		cfg, ok := configs[r.QuestionID]
		if !ok {
			continue
		}
		adjusted := float64(r.Value)
		if cfg.IsReverseScored {
			adjusted = float64(cfg.ScaleMax+1) - float64(r.Value)
		}
		numerator += adjusted * cfg.Weight
		denominator += float64(cfg.ScaleMax) * cfg.Weight
	}
	if denominator == 0 {
		return 0
	}
	return 100 * numerator / denominator
}

// SubAreaResult is one sub-area's aggregated score.
type SubAreaResult struct {
	SubAreaID uint
	Score     float64
}

// AggregateSubAreas re-partitions the responses by sub-area membership
// and scores each bucket. A question assigned to multiple sub-areas
// contributes to every one of them. Sub-areas with no matching
// responses are omitted, not scored as 0. Output is ordered by
// sub-area id for determinism.
func AggregateSubAreas(responses []ResponsePair, configs map[uint]QuestionConfig) []SubAreaResult {
	buckets := make(map[uint][]ResponsePair)
	for _, r := range responses {
		cfg, ok := configs[r.QuestionID]
		if !ok {
			continue
		}
		for _, subAreaID := range cfg.SubAreaIDs {
			buckets[subAreaID] = append(buckets[subAreaID], r)
		}
	}

	ids := make([]uint, 0, len(buckets))
	for id := range buckets {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	results := make([]SubAreaResult, 0, len(ids))
	for _, id := range ids {
		results = append(results, SubAreaResult{
			SubAreaID: id,
			Score:     AggregateResponses(buckets[id], configs),
		})
	}
	return results
}
