package model

import "time"

// swagger:model Cohort
type Cohort struct {
	BaseModel
	Name               string     `gorm:"size:255;not null" json:"name"`
	Description        string     `gorm:"type:text" json:"description"`
	AllowRetakes       bool       `gorm:"default:false" json:"allowRetakes"`
	MaxRetakes         int        `gorm:"default:0" json:"maxRetakes"` // 0 = unlimited
	RetakeCooldownDays int        `gorm:"default:0" json:"retakeCooldownDays"`
	AccessStartDate    *time.Time `json:"accessStartDate,omitempty"`
	AccessEndDate      *time.Time `json:"accessEndDate,omitempty"`
	IsActive           bool       `gorm:"default:true" json:"isActive"`

	Codes []AssessmentCode `gorm:"foreignKey:CohortID" json:"codes,omitempty"`
}

func (Cohort) TableName() string {
	return "cohorts"
}

// Assessment code statuses.
const (
	CodeStatusActive   = "active"
	CodeStatusUsed     = "used"
	CodeStatusDisabled = "disabled"
)

// swagger:model AssessmentCode
type AssessmentCode struct {
	BaseModel
	CohortID  uint       `gorm:"index;not null" json:"cohortId"`
	Code      string     `gorm:"size:64;uniqueIndex;not null" json:"code"`
	TimesUsed int        `gorm:"default:0" json:"timesUsed"`
	Status    string     `gorm:"size:20;default:'active'" json:"status"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`

	Cohort   *Cohort             `gorm:"foreignKey:CohortID" json:"cohort,omitempty"`
	Sessions []AssessmentSession `gorm:"foreignKey:CodeID" json:"sessions,omitempty"`
}

func (AssessmentCode) TableName() string {
	return "assessment_codes"
}
