package repository

import (
	"resilience_backend/internal/model"

	"gorm.io/gorm"
)

// ScoringRepository bundles the read-only queries the scoring engine
// consumes. It satisfies service.ScoringStore.
type ScoringRepository struct {
	DB *gorm.DB
}

func NewScoringRepository(db *gorm.DB) *ScoringRepository {
	return &ScoringRepository{DB: db}
}

func (r *ScoringRepository) ActiveAreas() ([]model.ResilienceArea, error) {
	var areas []model.ResilienceArea
	err := r.DB.Where("is_active = ?", true).
		Order("display_order asc, created_at asc").Find(&areas).Error
	return areas, err
}

func (r *ScoringRepository) QuestionsByArea(areaID uint) ([]model.Question, error) {
	var qs []model.Question
	err := r.DB.Preload("SubAreas").
		Where("area_id = ? AND is_active = ?", areaID, true).
		Order("display_order asc, created_at asc").Find(&qs).Error
	return qs, err
}

func (r *ScoringRepository) AreaRanges(areaID uint) ([]model.ScoreRange, error) {
	var ranges []model.ScoreRange
	err := r.DB.Where("area_id = ?", areaID).Order("min_score asc").Find(&ranges).Error
	return ranges, err
}

func (r *ScoringRepository) SubAreaRanges(subAreaID uint) ([]model.SubAreaScoreRange, error) {
	var ranges []model.SubAreaScoreRange
	err := r.DB.Where("sub_area_id = ?", subAreaID).Order("min_score asc").Find(&ranges).Error
	return ranges, err
}

func (r *ScoringRepository) FeedbackForRange(rangeID uint) ([]model.FeedbackContent, error) {
	var contents []model.FeedbackContent
	err := r.DB.Where("score_range_id = ?", rangeID).Find(&contents).Error
	return contents, err
}

func (r *ScoringRepository) ActiveRules(areaID uint) ([]model.AreaFeedbackRule, error) {
	var rules []model.AreaFeedbackRule
	err := r.DB.Preload("Conditions").
		Where("area_id = ? AND is_active = ?", areaID, true).
		Order("priority asc").Find(&rules).Error
	return rules, err
}

func (r *ScoringRepository) OverallFeedback() ([]model.OverallFeedbackContent, error) {
	var contents []model.OverallFeedbackContent
	err := r.DB.Order("min_overall_score asc").Find(&contents).Error
	return contents, err
}

func (r *ScoringRepository) SessionResponses(sessionID uint) ([]model.SessionResponse, error) {
	var responses []model.SessionResponse
	err := r.DB.Where("session_id = ?", sessionID).Order("question_id asc").Find(&responses).Error
	return responses, err
}
