package model

import "encoding/json"

// AreaFeedbackRule is an admin-defined conditional feedback block.
// Rules are evaluated in ascending priority order and the first rule
// whose conditions all hold wins.
// swagger:model AreaFeedbackRule
type AreaFeedbackRule struct {
	BaseModel
	AreaID   uint   `gorm:"index;not null" json:"areaId"`
	Priority int    `gorm:"not null" json:"priority"`
	Feedback string `gorm:"type:text;not null" json:"feedback"`
	IsActive bool   `gorm:"default:true" json:"isActive"`

	Conditions []RuleCondition `gorm:"foreignKey:RuleID" json:"conditions,omitempty"`
}

func (AreaFeedbackRule) TableName() string {
	return "area_feedback_rules"
}

// RuleCondition requires the resolved level of one sub-area to be in
// LevelCodes. An empty LevelCodes array is a wildcard.
// swagger:model RuleCondition
type RuleCondition struct {
	BaseModel
	RuleID     uint            `gorm:"index;not null" json:"ruleId"`
	SubAreaID  uint            `gorm:"index;not null" json:"subAreaId"`
	LevelCodes json.RawMessage `gorm:"type:json" json:"levelCodes"`
}

func (RuleCondition) TableName() string {
	return "rule_conditions"
}

// LevelCodeList decodes the stored JSON array. A missing or malformed
// value decodes to an empty list, which matches any level.
func (c *RuleCondition) LevelCodeList() []string {
	if len(c.LevelCodes) == 0 {
		return nil
	}
	var codes []string
	if err := json.Unmarshal(c.LevelCodes, &codes); err != nil {
		return nil
	}
	return codes
}
