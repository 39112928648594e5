package model

// Feedback content types keyed per score range.
const (
	ContentTypeSummary         = "summary"
	ContentTypeStrengths       = "strengths"
	ContentTypeGrowthAreas     = "growth_areas"
	ContentTypeRecommendations = "recommendations"
)

// swagger:model ScoreRange
type ScoreRange struct {
	BaseModel
	AreaID    uint    `gorm:"index;not null" json:"areaId"`
	MinScore  float64 `gorm:"not null" json:"minScore"`
	MaxScore  float64 `gorm:"not null" json:"maxScore"`
	LevelName string  `gorm:"size:100;not null" json:"levelName"`
	LevelCode string  `gorm:"size:50;not null" json:"levelCode"`
	Color     string  `gorm:"size:20" json:"color"`

	FeedbackContents []FeedbackContent `gorm:"foreignKey:ScoreRangeID" json:"feedbackContents,omitempty"`
}

func (ScoreRange) TableName() string {
	return "score_ranges"
}

// swagger:model SubAreaScoreRange
type SubAreaScoreRange struct {
	BaseModel
	SubAreaID uint    `gorm:"index;not null" json:"subAreaId"`
	MinScore  float64 `gorm:"not null" json:"minScore"`
	MaxScore  float64 `gorm:"not null" json:"maxScore"`
	LevelName string  `gorm:"size:100;not null" json:"levelName"`
	LevelCode string  `gorm:"size:50;not null" json:"levelCode"`
	Color     string  `gorm:"size:20" json:"color"`
}

func (SubAreaScoreRange) TableName() string {
	return "sub_area_score_ranges"
}

// swagger:model FeedbackContent
type FeedbackContent struct {
	BaseModel
	ScoreRangeID uint   `gorm:"index;not null" json:"scoreRangeId"`
	ContentType  string `gorm:"size:50;not null" json:"contentType"`
	Body         string `gorm:"type:text" json:"body"`
}

func (FeedbackContent) TableName() string {
	return "feedback_contents"
}

// OverallFeedbackContent bands are independent of any area. They select
// the overall prose only; the overall level label comes from fixed
// platform thresholds.
// swagger:model OverallFeedbackContent
type OverallFeedbackContent struct {
	BaseModel
	MinOverallScore float64 `gorm:"not null" json:"minOverallScore"`
	MaxOverallScore float64 `gorm:"not null" json:"maxOverallScore"`
	ContentType     string  `gorm:"size:50;not null" json:"contentType"`
	Body            string  `gorm:"type:text" json:"body"`
}

func (OverallFeedbackContent) TableName() string {
	return "overall_feedback_contents"
}
