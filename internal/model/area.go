package model

// swagger:model ResilienceArea
type ResilienceArea struct {
	BaseModel
	Name         string `gorm:"size:255;not null" json:"name"`
	Description  string `gorm:"type:text" json:"description"`
	DisplayOrder int    `gorm:"default:0" json:"displayOrder"`
	IsActive     bool   `gorm:"default:true" json:"isActive"`

	Questions   []Question       `gorm:"foreignKey:AreaID" json:"questions,omitempty"`
	SubAreas    []SubArea        `gorm:"foreignKey:AreaID" json:"subAreas,omitempty"`
	ScoreRanges []ScoreRange     `gorm:"foreignKey:AreaID" json:"scoreRanges,omitempty"`
	Rules       []AreaFeedbackRule `gorm:"foreignKey:AreaID" json:"rules,omitempty"`
}

func (ResilienceArea) TableName() string {
	return "resilience_areas"
}

// swagger:model SubArea
type SubArea struct {
	BaseModel
	AreaID       uint   `gorm:"index;not null" json:"areaId"`
	Name         string `gorm:"size:255;not null" json:"name"`
	Description  string `gorm:"type:text" json:"description"`
	DisplayOrder int    `gorm:"default:0" json:"displayOrder"`

	ScoreRanges []SubAreaScoreRange `gorm:"foreignKey:SubAreaID" json:"scoreRanges,omitempty"`
}

func (SubArea) TableName() string {
	return "sub_areas"
}
