package service

import (
	"encoding/json"
	"errors"

	"resilience_backend/internal/model"
	"resilience_backend/internal/repository"
)

type RuleService struct {
	Repo  *repository.RuleRepository
	Areas *repository.AreaRepository
}

func NewRuleService(repo *repository.RuleRepository, areas *repository.AreaRepository) *RuleService {
	return &RuleService{Repo: repo, Areas: areas}
}

type RuleConditionRequest struct {
	SubAreaID  uint     `json:"subAreaId" binding:"required"`
	LevelCodes []string `json:"levelCodes"`
}

type RuleRequest struct {
	Priority   int                    `json:"priority"`
	Feedback   string                 `json:"feedback" binding:"required"`
	IsActive   *bool                  `json:"isActive"`
	Conditions []RuleConditionRequest `json:"conditions"`
}

func (s *RuleService) buildConditions(areaID uint, reqs []RuleConditionRequest) ([]model.RuleCondition, error) {
	subs, err := s.Areas.ListSubAreas(areaID)
	if err != nil {
		return nil, err
	}
	known := make(map[uint]bool, len(subs))
	for _, sub := range subs {
		known[sub.ID] = true
	}

	conditions := make([]model.RuleCondition, 0, len(reqs))
	for _, c := range reqs {
		if !known[c.SubAreaID] {
			return nil, errors.New("rule condition references a sub-area outside the rule's area")
		}
		codes, err := json.Marshal(c.LevelCodes)
		if err != nil {
			return nil, err
		}
		conditions = append(conditions, model.RuleCondition{
			SubAreaID:  c.SubAreaID,
			LevelCodes: codes,
		})
	}
	return conditions, nil
}

func (s *RuleService) CreateRule(areaID uint, req RuleRequest) (*model.AreaFeedbackRule, error) {
	if _, err := s.Areas.FindByID(areaID); err != nil {
		return nil, err
	}
	conditions, err := s.buildConditions(areaID, req.Conditions)
	if err != nil {
		return nil, err
	}

	rule := &model.AreaFeedbackRule{
		AreaID:   areaID,
		Priority: req.Priority,
		Feedback: req.Feedback,
		IsActive: true,
	}
	if req.IsActive != nil {
		rule.IsActive = *req.IsActive
	}
	if err := s.Repo.Create(rule); err != nil {
		return nil, err
	}
	if err := s.Repo.ReplaceConditions(rule.ID, conditions); err != nil {
		return nil, err
	}
	return s.Repo.FindByID(rule.ID)
}

func (s *RuleService) GetRule(id uint) (*model.AreaFeedbackRule, error) {
	return s.Repo.FindByID(id)
}

func (s *RuleService) ListRules(areaID uint) ([]model.AreaFeedbackRule, error) {
	return s.Repo.ListByArea(areaID)
}

func (s *RuleService) UpdateRule(id uint, req RuleRequest) (*model.AreaFeedbackRule, error) {
	rule, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	conditions, err := s.buildConditions(rule.AreaID, req.Conditions)
	if err != nil {
		return nil, err
	}

	rule.Priority = req.Priority
	rule.Feedback = req.Feedback
	if req.IsActive != nil {
		rule.IsActive = *req.IsActive
	}
	if err := s.Repo.Update(rule); err != nil {
		return nil, err
	}
	if err := s.Repo.ReplaceConditions(rule.ID, conditions); err != nil {
		return nil, err
	}
	return s.Repo.FindByID(rule.ID)
}

func (s *RuleService) DeleteRule(id uint) error {
	return s.Repo.Delete(id)
}

// ReorderRules rewrites rule priorities for an area to match the given
// order. Every active rule of the area must appear exactly once.
func (s *RuleService) ReorderRules(areaID uint, orderedRuleIDs []uint) ([]model.AreaFeedbackRule, error) {
	rules, err := s.Repo.ListByArea(areaID)
	if err != nil {
		return nil, err
	}
	if len(orderedRuleIDs) != len(rules) {
		return nil, errors.New("reorder must list every rule of the area exactly once")
	}
	known := make(map[uint]bool, len(rules))
	for _, rule := range rules {
		known[rule.ID] = true
	}
	seen := make(map[uint]bool, len(orderedRuleIDs))
	for _, id := range orderedRuleIDs {
		if !known[id] || seen[id] {
			return nil, errors.New("reorder must list every rule of the area exactly once")
		}
		seen[id] = true
	}

	if err := s.Repo.Renumber(areaID, orderedRuleIDs); err != nil {
		return nil, err
	}
	return s.Repo.ListByArea(areaID)
}
