package service

import (
	"context"
	"encoding/json"
	"errors"
	"resilience_backend/internal/model"
	"resilience_backend/internal/repository"
	"resilience_backend/internal/util"
	"resilience_backend/pkg/logger"
	"resilience_backend/pkg/monitoring"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const questionnaireCacheKey = "resilience:questionnaire"
const questionnaireCacheTTL = 10 * time.Minute

// ErrConfirmNewAttempt is returned when a retake-eligible code starts
// a session without the explicit force flag: the caller must confirm
// that it wants a brand-new attempt instead of viewing results.
var ErrConfirmNewAttempt = errors.New("a completed session exists; confirm to start a new attempt")

type SessionService struct {
	Sessions  *repository.SessionRepository
	Questions *repository.QuestionRepository
	Areas     *repository.AreaRepository
	Retake    *RetakeService
	Scoring   *ScoringService
	Redis     *redis.Client
}

func NewSessionService(
	sessions *repository.SessionRepository,
	questions *repository.QuestionRepository,
	areas *repository.AreaRepository,
	retake *RetakeService,
	scoring *ScoringService,
	rdb *redis.Client,
) *SessionService {
	return &SessionService{
		Sessions:  sessions,
		Questions: questions,
		Areas:     areas,
		Retake:    retake,
		Scoring:   scoring,
		Redis:     rdb,
	}
}

// QuestionnaireQuestion is the respondent-facing view of a question.
// Scoring configuration (weights, reverse flags) is not exposed.
type QuestionnaireQuestion struct {
	ID           uint   `json:"id"`
	Text         string `json:"text"`
	QuestionType string `json:"questionType"`
	ScaleMax     int    `json:"scaleMax"`
	DisplayOrder int    `json:"displayOrder"`
}

type QuestionnaireArea struct {
	AreaID      uint                    `json:"areaId"`
	Name        string                  `json:"name"`
	Description string                  `json:"description"`
	Questions   []QuestionnaireQuestion `json:"questions"`
}

// Questionnaire assembles the respondent questionnaire, served from
// redis when warm. Admin configuration writes invalidate the cache.
func (s *SessionService) Questionnaire() ([]QuestionnaireArea, error) {
	ctx := context.Background()

	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, questionnaireCacheKey).Bytes(); err == nil {
			var areas []QuestionnaireArea
			if err := json.Unmarshal(cached, &areas); err == nil {
				return areas, nil
			}
		}
	}

	areaRows, err := s.Areas.List()
	if err != nil {
		return nil, err
	}

	areas := make([]QuestionnaireArea, 0, len(areaRows))
	for _, area := range areaRows {
		if !area.IsActive {
			continue
		}
		questions, err := s.Questions.ListByArea(area.ID, true)
		if err != nil {
			return nil, err
		}
		if len(questions) == 0 {
			continue
		}
		qa := QuestionnaireArea{
			AreaID:      area.ID,
			Name:        area.Name,
			Description: area.Description,
			Questions:   make([]QuestionnaireQuestion, len(questions)),
		}
		for i, q := range questions {
			qa.Questions[i] = QuestionnaireQuestion{
				ID:           q.ID,
				Text:         q.Text,
				QuestionType: q.QuestionType,
				ScaleMax:     model.ScaleMax(q.QuestionType),
				DisplayOrder: q.DisplayOrder,
			}
		}
		areas = append(areas, qa)
	}

	if s.Redis != nil {
		if payload, err := json.Marshal(areas); err == nil {
			if err := s.Redis.Set(ctx, questionnaireCacheKey, payload, questionnaireCacheTTL).Err(); err != nil {
				logger.Log.Warn("questionnaire cache write failed", zap.Error(err))
			}
		}
	}
	return areas, nil
}

// InvalidateQuestionnaire drops the cached questionnaire. Called by
// admin services after configuration writes.
func (s *SessionService) InvalidateQuestionnaire() {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(context.Background(), questionnaireCacheKey).Err(); err != nil {
		logger.Log.Warn("questionnaire cache invalidation failed", zap.Error(err))
	}
}

// StartSession validates the code and returns the session to work in:
// the in-progress one when resuming, or a freshly created next
// attempt. forceNew is required to supersede a completed,
// retake-eligible session.
func (s *SessionService) StartSession(codeStr string, forceNew bool) (*model.AssessmentSession, error) {
	validation, err := s.Retake.ValidateCode(codeStr)
	if err != nil {
		return nil, err
	}
	if !validation.Valid {
		return nil, errors.New(validation.Error)
	}

	switch validation.State {
	case InProgress:
		return validation.InProgressSession, nil
	case NoPriorSession:
		return s.Sessions.CreateNextAttempt(validation.Code.ID)
	case CompletedRetakeEligible:
		if !forceNew {
			return nil, ErrConfirmNewAttempt
		}
		return s.Sessions.CreateNextAttempt(validation.Code.ID)
	case CompletedNoRetake:
		return nil, util.ErrRetakeNotAllowed
	default:
		// CompletedMaxReached / CompletedCooldown carry their reason.
		return nil, errors.New(validation.Error)
	}
}

// SaveResponse records one answer, overwriting any previous answer to
// the same question while the session is in progress.
func (s *SessionService) SaveResponse(sessionID, questionID uint, value int) error {
	session, err := s.Sessions.FindByID(sessionID)
	if err != nil {
		return util.ErrSessionNotFound
	}
	if session.IsComplete {
		return util.ErrSessionComplete
	}

	question, err := s.Questions.FindByID(questionID)
	if err != nil || !question.IsActive {
		return util.ErrQuestionNotInScope
	}
	scaleMax := model.ScaleMax(question.QuestionType)
	if value < 1 || value > scaleMax {
		return util.ErrAnswerOutOfRange
	}

	return s.Sessions.UpsertResponse(sessionID, questionID, value)
}

// sessionScoreCache is the compact score map persisted on completion.
// It is re-derivable; served results are always recomputed.
type sessionScoreCache struct {
	Areas    map[string]float64 `json:"areas"`
	SubAreas map[string]float64 `json:"subAreas"`
}

// CompleteSession scores the session, persists the score caches and
// marks the attempt used. Completing twice is rejected.
func (s *SessionService) CompleteSession(sessionID uint) (*ScoringResult, error) {
	session, err := s.Sessions.FindByID(sessionID)
	if err != nil {
		return nil, util.ErrSessionNotFound
	}
	if session.IsComplete {
		return nil, util.ErrSessionComplete
	}

	result, err := s.Scoring.ScoreSession(sessionID)
	if err != nil {
		return nil, err
	}
	if len(result.AreaScores) == 0 {
		return nil, util.ErrSessionIncomplete
	}

	cache := sessionScoreCache{
		Areas:    make(map[string]float64),
		SubAreas: make(map[string]float64),
	}
	for _, as := range result.AreaScores {
		cache.Areas[strconv.FormatUint(uint64(as.AreaID), 10)] = as.Score
		for _, sub := range as.SubAreaScores {
			cache.SubAreas[strconv.FormatUint(uint64(sub.SubAreaID), 10)] = sub.Score
		}
	}
	cacheJSON, err := json.Marshal(cache)
	if err != nil {
		return nil, err
	}

	if err := s.Sessions.Complete(sessionID, result.OverallScore, cacheJSON); err != nil {
		return nil, err
	}
	monitoring.SessionsCompleted.Inc()

	return result, nil
}

// Results recomputes the scoring result for a completed session.
func (s *SessionService) Results(sessionID uint) (*ScoringResult, error) {
	session, err := s.Sessions.FindByID(sessionID)
	if err != nil {
		return nil, util.ErrSessionNotFound
	}
	if !session.IsComplete {
		return nil, util.ErrSessionIncomplete
	}
	return s.Scoring.ScoreSession(sessionID)
}
