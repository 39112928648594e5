package model

// Question scale types. The type selects the Likert scale the answer
// value must fall into.
const (
	QuestionTypeLikert5 = "likert5"
	QuestionTypeLikert7 = "likert7"
)

// ScaleMax returns the maximum answer value for a question type.
// Unknown types default to the 5-point scale.
func ScaleMax(questionType string) int {
	if questionType == QuestionTypeLikert7 {
		return 7
	}
	return 5
}

// swagger:model Question
type Question struct {
	BaseModel
	AreaID          uint    `gorm:"index;not null" json:"areaId"`
	Text            string  `gorm:"type:text;not null" json:"text"`
	QuestionType    string  `gorm:"size:20;default:'likert5'" json:"questionType"`
	Weight          float64 `gorm:"default:1" json:"weight"`
	IsReverseScored bool    `gorm:"default:false" json:"isReverseScored"`
	DisplayOrder    int     `gorm:"default:0" json:"displayOrder"`
	IsActive        bool    `gorm:"default:true" json:"isActive"`

	SubAreas []SubArea `gorm:"many2many:question_sub_areas;" json:"subAreas,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}

// QuestionSubArea is the explicit join row for the many-to-many
// question to sub-area assignment.
type QuestionSubArea struct {
	QuestionID uint `gorm:"primaryKey" json:"questionId"`
	SubAreaID  uint `gorm:"primaryKey" json:"subAreaId"`
}

func (QuestionSubArea) TableName() string {
	return "question_sub_areas"
}
