package service

import (
	"errors"

	"resilience_backend/internal/model"
	"resilience_backend/internal/repository"
)

type QuestionService struct {
	Repo     *repository.QuestionRepository
	Areas    *repository.AreaRepository
	Sessions *SessionService
}

func NewQuestionService(repo *repository.QuestionRepository, areas *repository.AreaRepository, sessions *SessionService) *QuestionService {
	return &QuestionService{Repo: repo, Areas: areas, Sessions: sessions}
}

type QuestionRequest struct {
	AreaID          uint    `json:"areaId" binding:"required"`
	Text            string  `json:"text" binding:"required"`
	QuestionType    string  `json:"questionType"`
	Weight          float64 `json:"weight"`
	IsReverseScored bool    `json:"isReverseScored"`
	DisplayOrder    int     `json:"displayOrder"`
	IsActive        *bool   `json:"isActive"`
	SubAreaIDs      []uint  `json:"subAreaIds"`
}

func (s *QuestionService) validateSubAreas(areaID uint, subAreaIDs []uint) error {
	if len(subAreaIDs) == 0 {
		return nil
	}
	subs, err := s.Areas.ListSubAreas(areaID)
	if err != nil {
		return err
	}
	known := make(map[uint]bool, len(subs))
	for _, sub := range subs {
		known[sub.ID] = true
	}
	for _, id := range subAreaIDs {
		if !known[id] {
			return errors.New("sub-area does not belong to the question's area")
		}
	}
	return nil
}

func (s *QuestionService) CreateQuestion(req QuestionRequest) (*model.Question, error) {
	if _, err := s.Areas.FindByID(req.AreaID); err != nil {
		return nil, err
	}
	if err := s.validateSubAreas(req.AreaID, req.SubAreaIDs); err != nil {
		return nil, err
	}

	questionType := req.QuestionType
	if questionType == "" {
		questionType = model.QuestionTypeLikert5
	}
	if questionType != model.QuestionTypeLikert5 && questionType != model.QuestionTypeLikert7 {
		return nil, errors.New("unsupported question type")
	}
	weight := req.Weight
	if weight <= 0 {
		weight = 1
	}

	q := &model.Question{
		AreaID:          req.AreaID,
		Text:            req.Text,
		QuestionType:    questionType,
		Weight:          weight,
		IsReverseScored: req.IsReverseScored,
		DisplayOrder:    req.DisplayOrder,
		IsActive:        true,
	}
	if req.IsActive != nil {
		q.IsActive = *req.IsActive
	}
	if err := s.Repo.Create(q); err != nil {
		return nil, err
	}
	if len(req.SubAreaIDs) > 0 {
		if err := s.Repo.SetSubAreas(q.ID, req.SubAreaIDs); err != nil {
			return nil, err
		}
	}
	s.Sessions.InvalidateQuestionnaire()
	return s.Repo.FindByID(q.ID)
}

func (s *QuestionService) GetQuestion(id uint) (*model.Question, error) {
	return s.Repo.FindByID(id)
}

func (s *QuestionService) ListQuestions(page, limit int) ([]model.Question, int64, error) {
	return s.Repo.List(page, limit)
}

func (s *QuestionService) ListByArea(areaID uint) ([]model.Question, error) {
	return s.Repo.ListByArea(areaID, false)
}

func (s *QuestionService) UpdateQuestion(id uint, req QuestionRequest) (*model.Question, error) {
	q, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if req.AreaID != q.AreaID {
		if _, err := s.Areas.FindByID(req.AreaID); err != nil {
			return nil, err
		}
	}
	if err := s.validateSubAreas(req.AreaID, req.SubAreaIDs); err != nil {
		return nil, err
	}
	if req.QuestionType != "" {
		if req.QuestionType != model.QuestionTypeLikert5 && req.QuestionType != model.QuestionTypeLikert7 {
			return nil, errors.New("unsupported question type")
		}
		q.QuestionType = req.QuestionType
	}

	q.AreaID = req.AreaID
	q.Text = req.Text
	if req.Weight > 0 {
		q.Weight = req.Weight
	}
	q.IsReverseScored = req.IsReverseScored
	q.DisplayOrder = req.DisplayOrder
	if req.IsActive != nil {
		q.IsActive = *req.IsActive
	}

	if err := s.Repo.Update(q); err != nil {
		return nil, err
	}
	if err := s.Repo.SetSubAreas(q.ID, req.SubAreaIDs); err != nil {
		return nil, err
	}
	s.Sessions.InvalidateQuestionnaire()
	return s.Repo.FindByID(q.ID)
}

func (s *QuestionService) DeleteQuestion(id uint) error {
	if err := s.Repo.Delete(id); err != nil {
		return err
	}
	s.Sessions.InvalidateQuestionnaire()
	return nil
}
