package service

import (
	"resilience_backend/internal/model"
	"resilience_backend/internal/repository"
	"resilience_backend/internal/util"
)

type AreaService struct {
	Repo     *repository.AreaRepository
	Sessions *SessionService
}

func NewAreaService(repo *repository.AreaRepository, sessions *SessionService) *AreaService {
	return &AreaService{Repo: repo, Sessions: sessions}
}

type AreaRequest struct {
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	DisplayOrder int    `json:"displayOrder"`
	IsActive     *bool  `json:"isActive"`
}

func (s *AreaService) CreateArea(req AreaRequest) (*model.ResilienceArea, error) {
	area := &model.ResilienceArea{
		Name:         req.Name,
		Description:  req.Description,
		DisplayOrder: req.DisplayOrder,
		IsActive:     true,
	}
	if req.IsActive != nil {
		area.IsActive = *req.IsActive
	}
	if err := s.Repo.Create(area); err != nil {
		return nil, err
	}
	s.Sessions.InvalidateQuestionnaire()
	return area, nil
}

func (s *AreaService) ListAreas() ([]model.ResilienceArea, error) {
	return s.Repo.List()
}

func (s *AreaService) GetArea(id uint) (*model.ResilienceArea, error) {
	return s.Repo.FindByID(id)
}

func (s *AreaService) UpdateArea(id uint, req AreaRequest) (*model.ResilienceArea, error) {
	area, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	area.Name = req.Name
	area.Description = req.Description
	area.DisplayOrder = req.DisplayOrder
	if req.IsActive != nil {
		area.IsActive = *req.IsActive
	}
	if err := s.Repo.Update(area); err != nil {
		return nil, err
	}
	s.Sessions.InvalidateQuestionnaire()
	return area, nil
}

func (s *AreaService) DeleteArea(id uint) error {
	if err := s.Repo.Delete(id); err != nil {
		return err
	}
	s.Sessions.InvalidateQuestionnaire()
	return nil
}

type SubAreaRequest struct {
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	DisplayOrder int    `json:"displayOrder"`
}

func (s *AreaService) CreateSubArea(areaID uint, req SubAreaRequest) (*model.SubArea, error) {
	if _, err := s.Repo.FindByID(areaID); err != nil {
		return nil, err
	}
	sub := &model.SubArea{
		AreaID:       areaID,
		Name:         req.Name,
		Description:  req.Description,
		DisplayOrder: req.DisplayOrder,
	}
	if err := s.Repo.CreateSubArea(sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *AreaService) ListSubAreas(areaID uint) ([]model.SubArea, error) {
	return s.Repo.ListSubAreas(areaID)
}

func (s *AreaService) UpdateSubArea(id uint, req SubAreaRequest) (*model.SubArea, error) {
	sub, err := s.Repo.FindSubAreaByID(id)
	if err != nil {
		return nil, err
	}
	sub.Name = req.Name
	sub.Description = req.Description
	sub.DisplayOrder = req.DisplayOrder
	if err := s.Repo.UpdateSubArea(sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *AreaService) DeleteSubArea(id uint) error {
	return s.Repo.DeleteSubArea(id)
}

type ScoreRangeRequest struct {
	MinScore  float64 `json:"minScore"`
	MaxScore  float64 `json:"maxScore"`
	LevelName string  `json:"levelName" binding:"required"`
	LevelCode string  `json:"levelCode" binding:"required"`
	Color     string  `json:"color"`
}

func rangeBands(ranges []ScoreRangeRequest) []RangeBand {
	bands := make([]RangeBand, len(ranges))
	for i, r := range ranges {
		bands[i] = RangeBand{Min: r.MinScore, Max: r.MaxScore}
	}
	return bands
}

// SetAreaRanges replaces an area's score ranges. The new set must
// partition [0,100] without gaps or overlaps; level resolution is
// undefined otherwise, so invalid sets are rejected outright.
func (s *AreaService) SetAreaRanges(areaID uint, ranges []ScoreRangeRequest) ([]model.ScoreRange, error) {
	if _, err := s.Repo.FindByID(areaID); err != nil {
		return nil, err
	}
	if !ValidateRangePartition(rangeBands(ranges)) {
		return nil, util.ErrRangesNotPartition
	}

	rows := make([]model.ScoreRange, len(ranges))
	for i, r := range ranges {
		rows[i] = model.ScoreRange{
			AreaID:    areaID,
			MinScore:  r.MinScore,
			MaxScore:  r.MaxScore,
			LevelName: r.LevelName,
			LevelCode: r.LevelCode,
			Color:     r.Color,
		}
	}
	if err := s.Repo.ReplaceAreaRanges(areaID, rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *AreaService) SetSubAreaRanges(subAreaID uint, ranges []ScoreRangeRequest) ([]model.SubAreaScoreRange, error) {
	if _, err := s.Repo.FindSubAreaByID(subAreaID); err != nil {
		return nil, err
	}
	if !ValidateRangePartition(rangeBands(ranges)) {
		return nil, util.ErrRangesNotPartition
	}

	rows := make([]model.SubAreaScoreRange, len(ranges))
	for i, r := range ranges {
		rows[i] = model.SubAreaScoreRange{
			SubAreaID: subAreaID,
			MinScore:  r.MinScore,
			MaxScore:  r.MaxScore,
			LevelName: r.LevelName,
			LevelCode: r.LevelCode,
			Color:     r.Color,
		}
	}
	if err := s.Repo.ReplaceSubAreaRanges(subAreaID, rows); err != nil {
		return nil, err
	}
	return rows, nil
}

type FeedbackContentRequest struct {
	ContentType string `json:"contentType" binding:"required"`
	Body        string `json:"body"`
}

func validContentType(t string) bool {
	switch t {
	case model.ContentTypeSummary, model.ContentTypeStrengths,
		model.ContentTypeGrowthAreas, model.ContentTypeRecommendations:
		return true
	}
	return false
}

func (s *AreaService) SetFeedbackContent(rangeID uint, req FeedbackContentRequest) (*model.FeedbackContent, error) {
	if _, err := s.Repo.FindRangeByID(rangeID); err != nil {
		return nil, err
	}
	if !validContentType(req.ContentType) {
		return nil, util.ErrBadContentType
	}
	content := &model.FeedbackContent{
		ScoreRangeID: rangeID,
		ContentType:  req.ContentType,
		Body:         req.Body,
	}
	if err := s.Repo.UpsertFeedbackContent(content); err != nil {
		return nil, err
	}
	return content, nil
}

type OverallFeedbackRequest struct {
	MinOverallScore float64 `json:"minOverallScore"`
	MaxOverallScore float64 `json:"maxOverallScore"`
	ContentType     string  `json:"contentType" binding:"required"`
	Body            string  `json:"body"`
}

func (s *AreaService) ListOverallFeedback() ([]model.OverallFeedbackContent, error) {
	return s.Repo.ListOverallFeedback()
}

// SetOverallFeedback replaces the overall feedback bands. Summary
// bands must partition [0,100]; other content types follow the same
// band edges. Note these bands never move the overall level label,
// which comes from fixed platform tiers.
func (s *AreaService) SetOverallFeedback(reqs []OverallFeedbackRequest) ([]model.OverallFeedbackContent, error) {
	var summaryBands []RangeBand
	for _, r := range reqs {
		if !validContentType(r.ContentType) {
			return nil, util.ErrBadContentType
		}
		if r.ContentType == model.ContentTypeSummary {
			summaryBands = append(summaryBands, RangeBand{Min: r.MinOverallScore, Max: r.MaxOverallScore})
		}
	}
	if !ValidateRangePartition(summaryBands) {
		return nil, util.ErrRangesNotPartition
	}

	rows := make([]model.OverallFeedbackContent, len(reqs))
	for i, r := range reqs {
		rows[i] = model.OverallFeedbackContent{
			MinOverallScore: r.MinOverallScore,
			MaxOverallScore: r.MaxOverallScore,
			ContentType:     r.ContentType,
			Body:            r.Body,
		}
	}
	if err := s.Repo.ReplaceOverallFeedback(rows); err != nil {
		return nil, err
	}
	return rows, nil
}
