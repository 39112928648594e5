package service

import (
	"fmt"
	"resilience_backend/internal/model"
	"resilience_backend/internal/util"
	"time"
)

// RetakeState is the derived state of a code's session history against
// its cohort's retake policy.
type RetakeState string

const (
	NoPriorSession          RetakeState = "no_prior_session"
	InProgress              RetakeState = "in_progress"
	CompletedNoRetake       RetakeState = "completed_no_retake"
	CompletedMaxReached     RetakeState = "completed_max_reached"
	CompletedCooldown       RetakeState = "completed_cooldown"
	CompletedRetakeEligible RetakeState = "completed_retake_eligible"
)

// RetakePolicy is the cohort's retake configuration.
type RetakePolicy struct {
	AllowRetakes bool
	MaxRetakes   int // 0 = unlimited
	CooldownDays int
}

// RetakeOutcome is the verdict for a completed-or-absent session
// history. AvailableAt is set only for CompletedCooldown.
type RetakeOutcome struct {
	State       RetakeState
	Error       string
	AvailableAt *time.Time
}

// EvaluateRetake derives the retake state. It is a pure function of
// its inputs: identical (policy, timesUsed, latest, now) always yields
// the identical outcome, and re-evaluating never mutates anything.
func EvaluateRetake(policy RetakePolicy, timesUsed int, latest *model.AssessmentSession, now time.Time) RetakeOutcome {
	if latest == nil {
		return RetakeOutcome{State: NoPriorSession}
	}
	if !latest.IsComplete {
		// An in-progress session is resumed regardless of policy.
		return RetakeOutcome{State: InProgress}
	}
	if !policy.AllowRetakes {
		return RetakeOutcome{State: CompletedNoRetake}
	}
	if policy.MaxRetakes > 0 && timesUsed >= policy.MaxRetakes {
		return RetakeOutcome{
			State: CompletedMaxReached,
			Error: "You have reached the maximum number of attempts for this assessment",
		}
	}
	if policy.CooldownDays > 0 && latest.CompletedAt != nil {
		availableAt := latest.CompletedAt.Add(time.Duration(policy.CooldownDays) * 24 * time.Hour)
		if now.Before(availableAt) {
			return RetakeOutcome{
				State:       CompletedCooldown,
				Error:       fmt.Sprintf("You can retake this assessment again on %s", availableAt.Format(util.DateFormat)),
				AvailableAt: &availableAt,
			}
		}
	}
	return RetakeOutcome{State: CompletedRetakeEligible}
}

// RetakeValidation is the user-facing verdict for an access code.
// Blocked retakes are "valid but restricted": the completed session is
// still returned so the caller can show results.
type RetakeValidation struct {
	Valid             bool                     `json:"valid"`
	State             RetakeState              `json:"state,omitempty"`
	Code              *model.AssessmentCode    `json:"code,omitempty"`
	Error             string                   `json:"error,omitempty"`
	CompletedSession  *model.AssessmentSession `json:"completedSession,omitempty"`
	InProgressSession *model.AssessmentSession `json:"inProgressSession,omitempty"`
}

// CodeStore is the read surface code validation needs.
type CodeStore interface {
	FindCodeWithCohort(code string) (*model.AssessmentCode, error)
	LatestSession(codeID uint) (*model.AssessmentSession, error)
}

type RetakeService struct {
	Store CodeStore
	Now   func() time.Time
}

func NewRetakeService(store CodeStore) *RetakeService {
	return &RetakeService{Store: store, Now: time.Now}
}

// ValidateCode runs the terminal code/cohort gates and then the retake
// state machine. Expected rejections (invalid, expired, unavailable,
// outside the access window) are outcomes, not errors; only
// persistence failures surface as errors. Validation never writes.
func (s *RetakeService) ValidateCode(codeStr string) (*RetakeValidation, error) {
	code, err := s.Store.FindCodeWithCohort(codeStr)
	if err != nil {
		return nil, err
	}
	now := s.Now()

	if code == nil {
		return &RetakeValidation{Valid: false, Error: util.ErrCodeNotFound.Error()}, nil
	}
	if code.Status == model.CodeStatusDisabled {
		return &RetakeValidation{Valid: false, Error: util.ErrCodeDisabled.Error()}, nil
	}
	if code.ExpiresAt != nil && now.After(*code.ExpiresAt) {
		return &RetakeValidation{Valid: false, Error: util.ErrCodeExpired.Error()}, nil
	}
	cohort := code.Cohort
	if cohort == nil || !cohort.IsActive {
		return &RetakeValidation{Valid: false, Error: util.ErrCohortUnavailable.Error()}, nil
	}
	if cohort.AccessStartDate != nil && now.Before(*cohort.AccessStartDate) {
		return &RetakeValidation{Valid: false, Error: util.ErrNotYetAvailable.Error()}, nil
	}
	if cohort.AccessEndDate != nil && now.After(*cohort.AccessEndDate) {
		return &RetakeValidation{Valid: false, Error: util.ErrAccessEnded.Error()}, nil
	}

	latest, err := s.Store.LatestSession(code.ID)
	if err != nil {
		return nil, err
	}

	policy := RetakePolicy{
		AllowRetakes: cohort.AllowRetakes,
		MaxRetakes:   cohort.MaxRetakes,
		CooldownDays: cohort.RetakeCooldownDays,
	}
	outcome := EvaluateRetake(policy, code.TimesUsed, latest, now)

	validation := &RetakeValidation{
		Valid: true,
		State: outcome.State,
		Code:  code,
		Error: outcome.Error,
	}
	switch outcome.State {
	case InProgress:
		validation.InProgressSession = latest
	case CompletedNoRetake, CompletedMaxReached, CompletedCooldown, CompletedRetakeEligible:
		validation.CompletedSession = latest
	}
	return validation, nil
}
