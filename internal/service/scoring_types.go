package service

// QuestionConfig is the canonical per-question scoring configuration
// threaded through every aggregator function.
type QuestionConfig struct {
	QuestionID      uint
	ScaleMax        int
	Weight          float64
	IsReverseScored bool
	SubAreaIDs      []uint
}

// ResponsePair is one answered question.
type ResponsePair struct {
	QuestionID uint
	Value      int
}

// Level is a resolved score band label.
type Level struct {
	Name  string `json:"name"`
	Code  string `json:"code"`
	Color string `json:"color"`
}

// UnknownLevel is returned when no score ranges are configured. Result
// assembly never fails on missing range configuration.
var UnknownLevel = Level{Name: "Unknown", Code: "unknown", Color: "#9e9e9e"}

// FeedbackBundle holds the per-level feedback texts for one area.
type FeedbackBundle struct {
	Summary         string `json:"summary"`
	Strengths       string `json:"strengths"`
	GrowthAreas     string `json:"growthAreas"`
	Recommendations string `json:"recommendations"`
}

type SubAreaScore struct {
	SubAreaID uint    `json:"subAreaId"`
	Name      string  `json:"name"`
	Score     float64 `json:"score"`
	Level     Level   `json:"level"`
}

type AreaScore struct {
	AreaID        uint           `json:"areaId"`
	Name          string         `json:"name"`
	Score         float64        `json:"score"`
	Level         Level          `json:"level"`
	Feedback      FeedbackBundle `json:"feedback"`
	SubAreaScores []SubAreaScore `json:"subAreaScores"`

	// ConditionalFeedback supersedes Feedback.Summary in presentation
	// when non-empty; the summary is still populated for fallback.
	ConditionalFeedback string `json:"conditionalFeedback,omitempty"`
}

type ScoringResult struct {
	OverallScore    float64     `json:"overallScore"`
	OverallLevel    Level       `json:"overallLevel"`
	OverallFeedback string      `json:"overallFeedback"`
	AreaScores      []AreaScore `json:"areaScores"`
}
