package model

import (
	"encoding/json"
	"time"
)

// AssessmentSession is one respondent pass through the questionnaire.
// AttemptNumber is unique per code; the (code_id, attempt_number) index
// is what makes concurrent session starts safe.
// swagger:model AssessmentSession
type AssessmentSession struct {
	BaseModel
	CodeID        uint       `gorm:"not null;uniqueIndex:idx_code_attempt,priority:1" json:"codeId"`
	AttemptNumber int        `gorm:"not null;uniqueIndex:idx_code_attempt,priority:2" json:"attemptNumber"`
	IsComplete    bool       `gorm:"default:false" json:"isComplete"`
	CompletedAt   *time.Time `json:"completedAt,omitempty"`

	// Re-derivable score caches written on completion. Results served to
	// callers are always recomputed from raw responses.
	OverallScore *float64        `json:"overallScore,omitempty"`
	AreaScores   json.RawMessage `gorm:"type:json" json:"areaScores,omitempty"`

	Code      *AssessmentCode   `gorm:"foreignKey:CodeID" json:"-"`
	Responses []SessionResponse `gorm:"foreignKey:SessionID" json:"responses,omitempty"`
}

func (AssessmentSession) TableName() string {
	return "assessment_sessions"
}

// SessionResponse is one answered question. Overwritten per question
// while the session is in progress, immutable once the session
// completes.
// swagger:model SessionResponse
type SessionResponse struct {
	BaseModel
	SessionID  uint `gorm:"not null;uniqueIndex:idx_session_question,priority:1" json:"sessionId"`
	QuestionID uint `gorm:"not null;uniqueIndex:idx_session_question,priority:2" json:"questionId"`
	Value      int  `gorm:"not null" json:"value"`
}

func (SessionResponse) TableName() string {
	return "session_responses"
}
