package service

import (
	"resilience_backend/internal/model"
	"resilience_backend/pkg/monitoring"
	"sort"
	"time"
)

// ScoringStore is the read-only configuration and response surface the
// scoring engine needs. It is passed in explicitly so the engine can
// run against fixture data in tests; scoring never mutates anything it
// reads.
type ScoringStore interface {
	ActiveAreas() ([]model.ResilienceArea, error)
	QuestionsByArea(areaID uint) ([]model.Question, error)
	AreaRanges(areaID uint) ([]model.ScoreRange, error)
	SubAreaRanges(subAreaID uint) ([]model.SubAreaScoreRange, error)
	FeedbackForRange(rangeID uint) ([]model.FeedbackContent, error)
	ActiveRules(areaID uint) ([]model.AreaFeedbackRule, error)
	OverallFeedback() ([]model.OverallFeedbackContent, error)
	SessionResponses(sessionID uint) ([]model.SessionResponse, error)
}

type ScoringService struct {
	Store ScoringStore
}

func NewScoringService(store ScoringStore) *ScoringService {
	return &ScoringService{Store: store}
}

// ScoreSession recomputes the full scoring result for a session from
// raw responses and current configuration. Nothing is cached here:
// recomputing on every read keeps feedback text in step with the
// latest admin edits.
func (s *ScoringService) ScoreSession(sessionID uint) (*ScoringResult, error) {
	start := time.Now()
	defer func() {
		monitoring.ScoringDuration.Observe(time.Since(start).Seconds())
	}()

	rows, err := s.Store.SessionResponses(sessionID)
	if err != nil {
		return nil, err
	}
	responses := make([]ResponsePair, len(rows))
	for i, r := range rows {
		responses[i] = ResponsePair{QuestionID: r.QuestionID, Value: r.Value}
	}

	areas, err := s.Store.ActiveAreas()
	if err != nil {
		return nil, err
	}

	result := &ScoringResult{AreaScores: []AreaScore{}}
	var areaScoreSum float64

	for _, area := range areas {
		areaScore, scored, err := s.scoreArea(area, responses)
		if err != nil {
			return nil, err
		}
		if !scored {
			continue
		}
		result.AreaScores = append(result.AreaScores, *areaScore)
		areaScoreSum += areaScore.Score
	}

	// Areas carry their configured display order from the store read;
	// keep the output sorted by it regardless of processing order.
	order := make(map[uint]int, len(areas))
	for _, a := range areas {
		order[a.ID] = a.DisplayOrder
	}
	sort.SliceStable(result.AreaScores, func(i, j int) bool {
		return order[result.AreaScores[i].AreaID] < order[result.AreaScores[j].AreaID]
	})

	// Overall score is the unweighted mean of area scores: an area with
	// three questions counts the same as one with thirty.
	if len(result.AreaScores) > 0 {
		result.OverallScore = areaScoreSum / float64(len(result.AreaScores))
	}
	result.OverallLevel = OverallLevelFor(result.OverallScore)

	overallFeedback, err := s.resolveOverallFeedback(result.OverallScore)
	if err != nil {
		return nil, err
	}
	result.OverallFeedback = overallFeedback

	return result, nil
}

// scoreArea assembles one AreaScore. The second return is false when
// the area has no responses at all, in which case it is skipped rather
// than scored as 0.
func (s *ScoringService) scoreArea(area model.ResilienceArea, responses []ResponsePair) (*AreaScore, bool, error) {
	questions, err := s.Store.QuestionsByArea(area.ID)
	if err != nil {
		return nil, false, err
	}

	configs := make(map[uint]QuestionConfig, len(questions))
	subAreaNames := make(map[uint]string)
	for _, q := range questions {
		subAreaIDs := make([]uint, 0, len(q.SubAreas))
		for _, sa := range q.SubAreas {
			subAreaIDs = append(subAreaIDs, sa.ID)
			subAreaNames[sa.ID] = sa.Name
		}
		configs[q.ID] = QuestionConfig{
			QuestionID:      q.ID,
			ScaleMax:        model.ScaleMax(q.QuestionType),
			Weight:          q.Weight,
			IsReverseScored: q.IsReverseScored,
			SubAreaIDs:      subAreaIDs,
		}
	}

	areaResponses := make([]ResponsePair, 0, len(responses))
	for _, r := range responses {
		if _, ok := configs[r.QuestionID]; ok {
			areaResponses = append(areaResponses, r)
		}
	}
	if len(areaResponses) == 0 {
		return nil, false, nil
	}

	score := AggregateResponses(areaResponses, configs)

	ranges, err := s.Store.AreaRanges(area.ID)
	if err != nil {
		return nil, false, err
	}
	bands := make([]RangeBand, len(ranges))
	for i, r := range ranges {
		bands[i] = RangeBand{
			Min:   r.MinScore,
			Max:   r.MaxScore,
			Level: Level{Name: r.LevelName, Code: r.LevelCode, Color: r.Color},
		}
	}

	as := &AreaScore{
		AreaID:        area.ID,
		Name:          area.Name,
		Score:         score,
		Level:         UnknownLevel,
		SubAreaScores: []SubAreaScore{},
	}

	rangeIdx := ResolveRangeIndex(score, bands)
	if rangeIdx >= 0 {
		as.Level = bands[rangeIdx].Level
		bundle, err := s.feedbackBundle(ranges[rangeIdx].ID)
		if err != nil {
			return nil, false, err
		}
		as.Feedback = bundle
	}

	subAreaLevels := make(map[uint]string)
	for _, sub := range AggregateSubAreas(areaResponses, configs) {
		subRanges, err := s.Store.SubAreaRanges(sub.SubAreaID)
		if err != nil {
			return nil, false, err
		}
		subBands := make([]RangeBand, len(subRanges))
		for i, r := range subRanges {
			subBands[i] = RangeBand{
				Min:   r.MinScore,
				Max:   r.MaxScore,
				Level: Level{Name: r.LevelName, Code: r.LevelCode, Color: r.Color},
			}
		}
		level := ResolveLevel(sub.Score, subBands)
		as.SubAreaScores = append(as.SubAreaScores, SubAreaScore{
			SubAreaID: sub.SubAreaID,
			Name:      subAreaNames[sub.SubAreaID],
			Score:     sub.Score,
			Level:     level,
		})
		if level.Code != UnknownLevel.Code {
			subAreaLevels[sub.SubAreaID] = level.Code
		}
	}

	ruleRows, err := s.Store.ActiveRules(area.ID)
	if err != nil {
		return nil, false, err
	}
	rules := make([]FeedbackRule, 0, len(ruleRows))
	for _, row := range ruleRows {
		if !row.IsActive {
			continue
		}
		conditions := make([]RuleCondition, len(row.Conditions))
		for i, c := range row.Conditions {
			conditions[i] = RuleCondition{
				SubAreaID:  c.SubAreaID,
				LevelCodes: c.LevelCodeList(),
			}
		}
		rules = append(rules, FeedbackRule{
			RuleID:     row.ID,
			Priority:   row.Priority,
			Feedback:   row.Feedback,
			Conditions: conditions,
		})
	}
	if text, ok := MatchFeedbackRule(rules, subAreaLevels); ok {
		as.ConditionalFeedback = text
	}

	return as, true, nil
}

func (s *ScoringService) feedbackBundle(rangeID uint) (FeedbackBundle, error) {
	var bundle FeedbackBundle
	contents, err := s.Store.FeedbackForRange(rangeID)
	if err != nil {
		return bundle, err
	}
	for _, c := range contents {
		switch c.ContentType {
		case model.ContentTypeSummary:
			bundle.Summary = c.Body
		case model.ContentTypeStrengths:
			bundle.Strengths = c.Body
		case model.ContentTypeGrowthAreas:
			bundle.GrowthAreas = c.Body
		case model.ContentTypeRecommendations:
			bundle.Recommendations = c.Body
		}
	}
	return bundle, nil
}

// resolveOverallFeedback picks the overall prose from the configurable
// bands using the same half-open lookup and boundary fallback as area
// ranges. The overall level label does NOT come from here.
func (s *ScoringService) resolveOverallFeedback(score float64) (string, error) {
	contents, err := s.Store.OverallFeedback()
	if err != nil {
		return "", err
	}

	summaries := make([]model.OverallFeedbackContent, 0, len(contents))
	for _, c := range contents {
		if c.ContentType == model.ContentTypeSummary {
			summaries = append(summaries, c)
		}
	}
	bands := make([]RangeBand, len(summaries))
	for i, c := range summaries {
		bands[i] = RangeBand{Min: c.MinOverallScore, Max: c.MaxOverallScore}
	}
	idx := ResolveRangeIndex(score, bands)
	if idx < 0 {
		return "", nil
	}
	return summaries[idx].Body, nil
}
