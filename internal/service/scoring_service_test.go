package service

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resilience_backend/internal/model"
)

// fixtureStore is an in-memory ScoringStore for engine tests.
type fixtureStore struct {
	areas           []model.ResilienceArea
	questions       map[uint][]model.Question
	areaRanges      map[uint][]model.ScoreRange
	subAreaRanges   map[uint][]model.SubAreaScoreRange
	feedback        map[uint][]model.FeedbackContent
	rules           map[uint][]model.AreaFeedbackRule
	overallFeedback []model.OverallFeedbackContent
	responses       map[uint][]model.SessionResponse
}

func (f *fixtureStore) ActiveAreas() ([]model.ResilienceArea, error) { return f.areas, nil }
func (f *fixtureStore) QuestionsByArea(areaID uint) ([]model.Question, error) {
	return f.questions[areaID], nil
}
func (f *fixtureStore) AreaRanges(areaID uint) ([]model.ScoreRange, error) {
	return f.areaRanges[areaID], nil
}
func (f *fixtureStore) SubAreaRanges(subAreaID uint) ([]model.SubAreaScoreRange, error) {
	return f.subAreaRanges[subAreaID], nil
}
func (f *fixtureStore) FeedbackForRange(rangeID uint) ([]model.FeedbackContent, error) {
	return f.feedback[rangeID], nil
}
func (f *fixtureStore) ActiveRules(areaID uint) ([]model.AreaFeedbackRule, error) {
	return f.rules[areaID], nil
}
func (f *fixtureStore) OverallFeedback() ([]model.OverallFeedbackContent, error) {
	return f.overallFeedback, nil
}
func (f *fixtureStore) SessionResponses(sessionID uint) ([]model.SessionResponse, error) {
	return f.responses[sessionID], nil
}

func fixtureArea(id uint, name string, displayOrder int) model.ResilienceArea {
	area := model.ResilienceArea{Name: name, DisplayOrder: displayOrder, IsActive: true}
	area.ID = id
	return area
}

func fixtureQuestion(id, areaID uint, weight float64, reversed bool, subAreaIDs ...uint) model.Question {
	q := model.Question{
		AreaID:          areaID,
		QuestionType:    model.QuestionTypeLikert5,
		Weight:          weight,
		IsReverseScored: reversed,
		IsActive:        true,
	}
	q.ID = id
	for _, saID := range subAreaIDs {
		sub := model.SubArea{AreaID: areaID, Name: "sub"}
		sub.ID = saID
		q.SubAreas = append(q.SubAreas, sub)
	}
	return q
}

func fixtureRanges(areaID uint, firstRangeID uint) []model.ScoreRange {
	levels := []struct {
		min, max float64
		code     string
	}{
		{0, 40, "developing"},
		{40, 60, "emerging"},
		{60, 80, "strong"},
		{80, 100, "exceptional"},
	}
	ranges := make([]model.ScoreRange, len(levels))
	for i, l := range levels {
		ranges[i] = model.ScoreRange{
			AreaID:    areaID,
			MinScore:  l.min,
			MaxScore:  l.max,
			LevelName: l.code,
			LevelCode: l.code,
		}
		ranges[i].ID = firstRangeID + uint(i)
	}
	return ranges
}

func response(sessionID, questionID uint, value int) model.SessionResponse {
	return model.SessionResponse{SessionID: sessionID, QuestionID: questionID, Value: value}
}

func TestScoreSessionSingleArea(t *testing.T) {
	store := &fixtureStore{
		areas: []model.ResilienceArea{fixtureArea(1, "Adaptability", 1)},
		questions: map[uint][]model.Question{
			1: {fixtureQuestion(11, 1, 1, false), fixtureQuestion(12, 1, 1, true)},
		},
		areaRanges: map[uint][]model.ScoreRange{1: fixtureRanges(1, 100)},
		feedback: map[uint][]model.FeedbackContent{
			103: {
				{ScoreRangeID: 103, ContentType: model.ContentTypeSummary, Body: "Top of the scale."},
				{ScoreRangeID: 103, ContentType: model.ContentTypeStrengths, Body: "Everything."},
			},
		},
		responses: map[uint][]model.SessionResponse{
			7: {response(7, 11, 5), response(7, 12, 1)},
		},
	}

	result, err := NewScoringService(store).ScoreSession(7)
	require.NoError(t, err)

	require.Len(t, result.AreaScores, 1)
	area := result.AreaScores[0]
	assert.InDelta(t, 100.0, area.Score, 1e-9)
	assert.Equal(t, "exceptional", area.Level.Code)
	assert.Equal(t, "Top of the scale.", area.Feedback.Summary)
	assert.Equal(t, "Everything.", area.Feedback.Strengths)

	assert.InDelta(t, 100.0, result.OverallScore, 1e-9)
	assert.Equal(t, "exceptional", result.OverallLevel.Code)
}

func TestScoreSessionUnweightedOverallMean(t *testing.T) {
	store := &fixtureStore{
		areas: []model.ResilienceArea{fixtureArea(1, "A", 1), fixtureArea(2, "B", 2)},
		questions: map[uint][]model.Question{
			// Area 1 has three questions, area 2 only one; they still
			// count equally in the overall mean.
			1: {fixtureQuestion(11, 1, 1, false), fixtureQuestion(12, 1, 1, false), fixtureQuestion(13, 1, 1, false)},
			2: {fixtureQuestion(21, 2, 1, false)},
		},
		responses: map[uint][]model.SessionResponse{
			7: {
				response(7, 11, 5), response(7, 12, 5), response(7, 13, 5), // 100
				response(7, 21, 3), // 60
			},
		},
	}

	result, err := NewScoringService(store).ScoreSession(7)
	require.NoError(t, err)

	require.Len(t, result.AreaScores, 2)
	assert.InDelta(t, 80.0, result.OverallScore, 1e-9)
}

func TestScoreSessionSkipsUnansweredAreas(t *testing.T) {
	store := &fixtureStore{
		areas: []model.ResilienceArea{fixtureArea(1, "A", 1), fixtureArea(2, "B", 2)},
		questions: map[uint][]model.Question{
			1: {fixtureQuestion(11, 1, 1, false)},
			2: {fixtureQuestion(21, 2, 1, false)},
		},
		responses: map[uint][]model.SessionResponse{
			7: {response(7, 11, 4)},
		},
	}

	result, err := NewScoringService(store).ScoreSession(7)
	require.NoError(t, err)

	require.Len(t, result.AreaScores, 1)
	assert.Equal(t, uint(1), result.AreaScores[0].AreaID)
	// Overall is the mean of scored areas only, not dragged down by
	// the unanswered one.
	assert.InDelta(t, 80.0, result.OverallScore, 1e-9)
}

func TestScoreSessionOrdersAreasByDisplayOrder(t *testing.T) {
	store := &fixtureStore{
		areas: []model.ResilienceArea{
			fixtureArea(1, "Last", 9),
			fixtureArea(2, "First", 1),
			fixtureArea(3, "Middle", 5),
		},
		questions: map[uint][]model.Question{
			1: {fixtureQuestion(11, 1, 1, false)},
			2: {fixtureQuestion(21, 2, 1, false)},
			3: {fixtureQuestion(31, 3, 1, false)},
		},
		responses: map[uint][]model.SessionResponse{
			7: {response(7, 11, 3), response(7, 21, 3), response(7, 31, 3)},
		},
	}

	result, err := NewScoringService(store).ScoreSession(7)
	require.NoError(t, err)

	require.Len(t, result.AreaScores, 3)
	assert.Equal(t, []string{"First", "Middle", "Last"}, []string{
		result.AreaScores[0].Name,
		result.AreaScores[1].Name,
		result.AreaScores[2].Name,
	})
}

func TestScoreSessionUnknownLevelWithoutRanges(t *testing.T) {
	store := &fixtureStore{
		areas: []model.ResilienceArea{fixtureArea(1, "A", 1)},
		questions: map[uint][]model.Question{
			1: {fixtureQuestion(11, 1, 1, false)},
		},
		responses: map[uint][]model.SessionResponse{
			7: {response(7, 11, 4)},
		},
	}

	result, err := NewScoringService(store).ScoreSession(7)
	require.NoError(t, err)

	require.Len(t, result.AreaScores, 1)
	assert.Equal(t, UnknownLevel, result.AreaScores[0].Level)
	assert.Empty(t, result.AreaScores[0].Feedback.Summary)
}

func TestScoreSessionSubAreaLevelsAndConditionalFeedback(t *testing.T) {
	codes := func(levels ...string) json.RawMessage {
		b, _ := json.Marshal(levels)
		return b
	}

	make5Bands := func(subAreaID uint) []model.SubAreaScoreRange {
		return []model.SubAreaScoreRange{
			{SubAreaID: subAreaID, MinScore: 0, MaxScore: 60, LevelName: "low", LevelCode: "low"},
			{SubAreaID: subAreaID, MinScore: 60, MaxScore: 100, LevelName: "strong", LevelCode: "strong"},
		}
	}

	lowPriority := model.AreaFeedbackRule{
		AreaID:   1,
		Priority: 2,
		Feedback: "generic",
		IsActive: true,
		Conditions: []model.RuleCondition{
			{SubAreaID: 50, LevelCodes: codes()},
		},
	}
	lowPriority.ID = 301
	winner := model.AreaFeedbackRule{
		AreaID:   1,
		Priority: 1,
		Feedback: "strong sub-area guidance",
		IsActive: true,
		Conditions: []model.RuleCondition{
			{SubAreaID: 50, LevelCodes: codes("strong")},
		},
	}
	winner.ID = 302
	inactive := model.AreaFeedbackRule{
		AreaID:   1,
		Priority: 0,
		Feedback: "should never match",
		IsActive: false,
	}
	inactive.ID = 303

	store := &fixtureStore{
		areas: []model.ResilienceArea{fixtureArea(1, "A", 1)},
		questions: map[uint][]model.Question{
			1: {fixtureQuestion(11, 1, 1, false, 50), fixtureQuestion(12, 1, 1, false, 60)},
		},
		areaRanges:    map[uint][]model.ScoreRange{1: fixtureRanges(1, 100)},
		subAreaRanges: map[uint][]model.SubAreaScoreRange{50: make5Bands(50), 60: make5Bands(60)},
		rules:         map[uint][]model.AreaFeedbackRule{1: {inactive, lowPriority, winner}},
		responses: map[uint][]model.SessionResponse{
			7: {response(7, 11, 5), response(7, 12, 2)},
		},
	}

	result, err := NewScoringService(store).ScoreSession(7)
	require.NoError(t, err)

	require.Len(t, result.AreaScores, 1)
	area := result.AreaScores[0]
	require.Len(t, area.SubAreaScores, 2)

	assert.Equal(t, "strong", area.SubAreaScores[0].Level.Code)
	assert.Equal(t, "low", area.SubAreaScores[1].Level.Code)
	assert.Equal(t, "strong sub-area guidance", area.ConditionalFeedback)
}

func TestScoreSessionOverallFeedbackIndependentOfLabel(t *testing.T) {
	store := &fixtureStore{
		areas: []model.ResilienceArea{fixtureArea(1, "A", 1)},
		questions: map[uint][]model.Question{
			1: {fixtureQuestion(11, 1, 1, false)},
		},
		// Bands deliberately diverge from the fixed tiers: prose for
		// [0,70) vs [70,100].
		overallFeedback: []model.OverallFeedbackContent{
			{MinOverallScore: 0, MaxOverallScore: 70, ContentType: model.ContentTypeSummary, Body: "keep going"},
			{MinOverallScore: 70, MaxOverallScore: 100, ContentType: model.ContentTypeSummary, Body: "well done"},
			{MinOverallScore: 0, MaxOverallScore: 100, ContentType: model.ContentTypeStrengths, Body: "ignored for summary"},
		},
		responses: map[uint][]model.SessionResponse{
			// 3/5 -> 60: "Strong" by the fixed tiers, but inside the
			// configurable [0,70) prose band.
			7: {response(7, 11, 3)},
		},
	}

	result, err := NewScoringService(store).ScoreSession(7)
	require.NoError(t, err)

	assert.InDelta(t, 60.0, result.OverallScore, 1e-9)
	assert.Equal(t, "strong", result.OverallLevel.Code)
	assert.Equal(t, "keep going", result.OverallFeedback)
}

func TestScoreSessionBoundaryScoreUsesTopRange(t *testing.T) {
	store := &fixtureStore{
		areas: []model.ResilienceArea{fixtureArea(1, "A", 1)},
		questions: map[uint][]model.Question{
			1: {fixtureQuestion(11, 1, 1, false)},
		},
		areaRanges: map[uint][]model.ScoreRange{1: fixtureRanges(1, 100)},
		responses: map[uint][]model.SessionResponse{
			7: {response(7, 11, 5)},
		},
	}

	result, err := NewScoringService(store).ScoreSession(7)
	require.NoError(t, err)

	require.Len(t, result.AreaScores, 1)
	assert.InDelta(t, 100.0, result.AreaScores[0].Score, 1e-9)
	assert.Equal(t, "exceptional", result.AreaScores[0].Level.Code)
}

func TestScoreSessionNoResponses(t *testing.T) {
	store := &fixtureStore{
		areas: []model.ResilienceArea{fixtureArea(1, "A", 1)},
		questions: map[uint][]model.Question{
			1: {fixtureQuestion(11, 1, 1, false)},
		},
		responses: map[uint][]model.SessionResponse{},
	}

	result, err := NewScoringService(store).ScoreSession(7)
	require.NoError(t, err)

	assert.Empty(t, result.AreaScores)
	assert.Zero(t, result.OverallScore)
	assert.Equal(t, "developing", result.OverallLevel.Code)
}
