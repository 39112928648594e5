package repository

import (
	"resilience_backend/internal/model"

	"gorm.io/gorm"
)

type RuleRepository struct {
	DB *gorm.DB
}

func NewRuleRepository(db *gorm.DB) *RuleRepository {
	return &RuleRepository{DB: db}
}

func (r *RuleRepository) Create(rule *model.AreaFeedbackRule) error {
	return r.DB.Create(rule).Error
}

func (r *RuleRepository) FindByID(id uint) (*model.AreaFeedbackRule, error) {
	var rule model.AreaFeedbackRule
	err := r.DB.Preload("Conditions").First(&rule, id).Error
	return &rule, err
}

func (r *RuleRepository) ListByArea(areaID uint) ([]model.AreaFeedbackRule, error) {
	var rules []model.AreaFeedbackRule
	err := r.DB.Preload("Conditions").Where("area_id = ?", areaID).
		Order("priority asc").Find(&rules).Error
	return rules, err
}

func (r *RuleRepository) Update(rule *model.AreaFeedbackRule) error {
	return r.DB.Save(rule).Error
}

func (r *RuleRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("rule_id = ?", id).Delete(&model.RuleCondition{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.AreaFeedbackRule{}, id).Error
	})
}

// ReplaceConditions swaps a rule's condition list.
func (r *RuleRepository) ReplaceConditions(ruleID uint, conditions []model.RuleCondition) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("rule_id = ?", ruleID).Delete(&model.RuleCondition{}).Error; err != nil {
			return err
		}
		for i := range conditions {
			conditions[i].RuleID = ruleID
			if err := tx.Create(&conditions[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Renumber assigns priorities 1..n following orderedRuleIDs. The
// update runs in two phases inside one transaction: priorities are
// first shifted out of the target band, then written to their final
// values, so no two rules ever share a priority even transiently.
func (r *RuleRepository) Renumber(areaID uint, orderedRuleIDs []uint) error {
	const offset = 100000
	return r.DB.Transaction(func(tx *gorm.DB) error {
		for i, id := range orderedRuleIDs {
			if err := tx.Model(&model.AreaFeedbackRule{}).
				Where("id = ? AND area_id = ?", id, areaID).
				Update("priority", offset+i+1).Error; err != nil {
				return err
			}
		}
		for i, id := range orderedRuleIDs {
			if err := tx.Model(&model.AreaFeedbackRule{}).
				Where("id = ? AND area_id = ?", id, areaID).
				Update("priority", i+1).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
