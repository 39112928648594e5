package repository

import (
	"encoding/json"
	"errors"
	"resilience_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type SessionRepository struct {
	DB *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

func (r *SessionRepository) FindByID(id uint) (*model.AssessmentSession, error) {
	var s model.AssessmentSession
	err := r.DB.First(&s, id).Error
	return &s, err
}

// LatestSession returns the highest-attempt session for a code, or
// (nil, nil) when the code has no sessions yet.
func (r *SessionRepository) LatestSession(codeID uint) (*model.AssessmentSession, error) {
	var s model.AssessmentSession
	err := r.DB.Where("code_id = ?", codeID).Order("attempt_number desc").First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SessionRepository) ListByCode(codeID uint) ([]model.AssessmentSession, error) {
	var sessions []model.AssessmentSession
	err := r.DB.Where("code_id = ?", codeID).Order("attempt_number asc").Find(&sessions).Error
	return sessions, err
}

func (r *SessionRepository) ListCompletedByCohort(cohortID uint) ([]model.AssessmentSession, error) {
	var sessions []model.AssessmentSession
	err := r.DB.
		Preload("Code").
		Joins("JOIN assessment_codes ON assessment_codes.id = assessment_sessions.code_id").
		Where("assessment_codes.cohort_id = ? AND assessment_sessions.is_complete = ?", cohortID, true).
		Order("assessment_sessions.completed_at asc").
		Find(&sessions).Error
	return sessions, err
}

// CreateNextAttempt creates the next session for a code in a single
// transaction: re-read the current max attempt number, insert max+1.
// The unique (code_id, attempt_number) index turns a concurrent start
// into a duplicate-key conflict, which is retried once with a fresh
// read instead of colliding.
func (r *SessionRepository) CreateNextAttempt(codeID uint) (*model.AssessmentSession, error) {
	for attempt := 0; attempt < 2; attempt++ {
		session := &model.AssessmentSession{CodeID: codeID, AttemptNumber: 1}
		err := r.DB.Transaction(func(tx *gorm.DB) error {
			var maxAttempt int
			row := tx.Model(&model.AssessmentSession{}).
				Where("code_id = ?", codeID).
				Select("COALESCE(MAX(attempt_number), 0)")
			if err := row.Scan(&maxAttempt).Error; err != nil {
				return err
			}
			session.AttemptNumber = maxAttempt + 1
			return tx.Create(session).Error
		})
		if err == nil {
			return session, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) || attempt == 1 {
			return nil, err
		}
	}
	return nil, gorm.ErrDuplicatedKey
}

// Response methods

func (r *SessionRepository) UpsertResponse(sessionID, questionID uint, value int) error {
	var existing model.SessionResponse
	err := r.DB.Where("session_id = ? AND question_id = ?", sessionID, questionID).First(&existing).Error
	if err == nil {
		existing.Value = value
		return r.DB.Save(&existing).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.DB.Create(&model.SessionResponse{
		SessionID:  sessionID,
		QuestionID: questionID,
		Value:      value,
	}).Error
}

func (r *SessionRepository) ListResponses(sessionID uint) ([]model.SessionResponse, error) {
	var responses []model.SessionResponse
	err := r.DB.Where("session_id = ?", sessionID).Order("question_id asc").Find(&responses).Error
	return responses, err
}

// Complete marks the session complete, writes the re-derivable score
// caches and bumps the code's usage counter, all in one transaction.
func (r *SessionRepository) Complete(sessionID uint, overallScore float64, areaScores json.RawMessage) error {
	now := time.Now()
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var session model.AssessmentSession
		if err := tx.First(&session, sessionID).Error; err != nil {
			return err
		}
		session.IsComplete = true
		session.CompletedAt = &now
		session.OverallScore = &overallScore
		session.AreaScores = areaScores
		if err := tx.Save(&session).Error; err != nil {
			return err
		}
		return tx.Model(&model.AssessmentCode{}).
			Where("id = ?", session.CodeID).
			Updates(map[string]interface{}{
				"times_used": gorm.Expr("times_used + 1"),
				"status":     model.CodeStatusUsed,
			}).Error
	})
}
