package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resilience_backend/internal/model"
	"resilience_backend/internal/util"
)

type fakeCodeStore struct {
	codes    map[string]*model.AssessmentCode
	sessions map[uint]*model.AssessmentSession
}

func (f *fakeCodeStore) FindCodeWithCohort(code string) (*model.AssessmentCode, error) {
	return f.codes[code], nil
}

func (f *fakeCodeStore) LatestSession(codeID uint) (*model.AssessmentSession, error) {
	return f.sessions[codeID], nil
}

func fixedNow() time.Time {
	return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
}

func completedSessionAt(completedAt time.Time) *model.AssessmentSession {
	s := &model.AssessmentSession{AttemptNumber: 1, IsComplete: true, CompletedAt: &completedAt}
	s.ID = 100
	return s
}

func newTestRetakeService(store *fakeCodeStore) *RetakeService {
	svc := NewRetakeService(store)
	svc.Now = fixedNow
	return svc
}

func activeCode(cohort *model.Cohort) *model.AssessmentCode {
	code := &model.AssessmentCode{
		CohortID: cohort.ID,
		Code:     "TESTCODE",
		Status:   model.CodeStatusActive,
		Cohort:   cohort,
	}
	code.ID = 10
	return code
}

func TestEvaluateRetakeStates(t *testing.T) {
	now := fixedNow()
	completed := completedSessionAt(now.Add(-48 * time.Hour))
	inProgress := &model.AssessmentSession{AttemptNumber: 1, IsComplete: false}

	tests := []struct {
		name      string
		policy    RetakePolicy
		timesUsed int
		latest    *model.AssessmentSession
		state     RetakeState
	}{
		{"no prior session", RetakePolicy{}, 0, nil, NoPriorSession},
		{"in progress ignores policy", RetakePolicy{AllowRetakes: false}, 0, inProgress, InProgress},
		{"retakes disabled", RetakePolicy{AllowRetakes: false}, 1, completed, CompletedNoRetake},
		{"max reached", RetakePolicy{AllowRetakes: true, MaxRetakes: 1}, 1, completed, CompletedMaxReached},
		{"under max", RetakePolicy{AllowRetakes: true, MaxRetakes: 3}, 1, completed, CompletedRetakeEligible},
		{"unlimited retakes", RetakePolicy{AllowRetakes: true, MaxRetakes: 0}, 50, completed, CompletedRetakeEligible},
		{"cooldown active", RetakePolicy{AllowRetakes: true, CooldownDays: 7}, 1, completed, CompletedCooldown},
		{"cooldown elapsed", RetakePolicy{AllowRetakes: true, CooldownDays: 1}, 1, completed, CompletedRetakeEligible},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := EvaluateRetake(tt.policy, tt.timesUsed, tt.latest, now)
			assert.Equal(t, tt.state, outcome.State)
		})
	}
}

func TestEvaluateRetakeIsPure(t *testing.T) {
	now := fixedNow()
	latest := completedSessionAt(now.Add(-24 * time.Hour))
	policy := RetakePolicy{AllowRetakes: true, MaxRetakes: 2, CooldownDays: 3}

	first := EvaluateRetake(policy, 1, latest, now)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, EvaluateRetake(policy, 1, latest, now))
	}
	assert.True(t, latest.IsComplete, "evaluation must not mutate the session")
}

func TestEvaluateRetakeCooldownMessage(t *testing.T) {
	now := fixedNow()
	completedAt := now.Add(-24 * time.Hour)
	policy := RetakePolicy{AllowRetakes: true, CooldownDays: 7}

	outcome := EvaluateRetake(policy, 1, completedSessionAt(completedAt), now)
	require.Equal(t, CompletedCooldown, outcome.State)
	require.NotNil(t, outcome.AvailableAt)

	wantAt := completedAt.Add(7 * 24 * time.Hour)
	assert.Equal(t, wantAt, *outcome.AvailableAt)
	assert.Contains(t, outcome.Error, wantAt.Format(util.DateFormat))
}

func TestValidateCodeMaxRetakesReached(t *testing.T) {
	cohort := &model.Cohort{Name: "June", AllowRetakes: true, MaxRetakes: 1, IsActive: true}
	cohort.ID = 1
	code := activeCode(cohort)
	code.TimesUsed = 1

	store := &fakeCodeStore{
		codes:    map[string]*model.AssessmentCode{"TESTCODE": code},
		sessions: map[uint]*model.AssessmentSession{10: completedSessionAt(fixedNow().Add(-time.Hour))},
	}

	validation, err := newTestRetakeService(store).ValidateCode("TESTCODE")
	require.NoError(t, err)

	assert.True(t, validation.Valid)
	assert.Equal(t, CompletedMaxReached, validation.State)
	assert.NotNil(t, validation.CompletedSession)
	assert.NotEmpty(t, validation.Error)
}

func TestValidateCodeRetakesDisabled(t *testing.T) {
	cohort := &model.Cohort{Name: "June", AllowRetakes: false, IsActive: true}
	cohort.ID = 1
	code := activeCode(cohort)
	code.TimesUsed = 1

	store := &fakeCodeStore{
		codes:    map[string]*model.AssessmentCode{"TESTCODE": code},
		sessions: map[uint]*model.AssessmentSession{10: completedSessionAt(fixedNow().Add(-time.Hour))},
	}

	validation, err := newTestRetakeService(store).ValidateCode("TESTCODE")
	require.NoError(t, err)

	// View-only: still valid, completed session attached, no error text.
	assert.True(t, validation.Valid)
	assert.Equal(t, CompletedNoRetake, validation.State)
	assert.NotNil(t, validation.CompletedSession)
	assert.Empty(t, validation.Error)
}

func TestValidateCodeTerminalGates(t *testing.T) {
	now := fixedNow()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	activeCohort := &model.Cohort{Name: "ok", IsActive: true}
	activeCohort.ID = 1
	inactiveCohort := &model.Cohort{Name: "off", IsActive: false}
	inactiveCohort.ID = 2
	notYetCohort := &model.Cohort{Name: "later", IsActive: true, AccessStartDate: &future}
	notYetCohort.ID = 3
	endedCohort := &model.Cohort{Name: "over", IsActive: true, AccessEndDate: &past}
	endedCohort.ID = 4

	tests := []struct {
		name    string
		code    *model.AssessmentCode
		wantErr string
	}{
		{
			name:    "unknown code",
			code:    nil,
			wantErr: util.ErrCodeNotFound.Error(),
		},
		{
			name: "disabled code",
			code: &model.AssessmentCode{Code: "X", Status: model.CodeStatusDisabled, Cohort: activeCohort},

			wantErr: util.ErrCodeDisabled.Error(),
		},
		{
			name:    "expired code",
			code:    &model.AssessmentCode{Code: "X", Status: model.CodeStatusActive, ExpiresAt: &past, Cohort: activeCohort},
			wantErr: util.ErrCodeExpired.Error(),
		},
		{
			name:    "inactive cohort",
			code:    &model.AssessmentCode{Code: "X", Status: model.CodeStatusActive, Cohort: inactiveCohort},
			wantErr: util.ErrCohortUnavailable.Error(),
		},
		{
			name:    "window not open",
			code:    &model.AssessmentCode{Code: "X", Status: model.CodeStatusActive, Cohort: notYetCohort},
			wantErr: util.ErrNotYetAvailable.Error(),
		},
		{
			name:    "window closed",
			code:    &model.AssessmentCode{Code: "X", Status: model.CodeStatusActive, Cohort: endedCohort},
			wantErr: util.ErrAccessEnded.Error(),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeCodeStore{
				codes:    map[string]*model.AssessmentCode{},
				sessions: map[uint]*model.AssessmentSession{},
			}
			if tt.code != nil {
				store.codes["X"] = tt.code
			}

			validation, err := newTestRetakeService(store).ValidateCode("X")
			require.NoError(t, err)
			assert.False(t, validation.Valid)
			assert.Equal(t, tt.wantErr, validation.Error)
		})
	}
}

func TestValidateCodeUsedStatusStillValidates(t *testing.T) {
	// "used" marks exhaustion for reporting; the retake state machine,
	// not the status field, decides whether another attempt is allowed.
	cohort := &model.Cohort{Name: "June", AllowRetakes: true, MaxRetakes: 0, IsActive: true}
	cohort.ID = 1
	code := activeCode(cohort)
	code.Status = model.CodeStatusUsed
	code.TimesUsed = 1

	store := &fakeCodeStore{
		codes:    map[string]*model.AssessmentCode{"TESTCODE": code},
		sessions: map[uint]*model.AssessmentSession{10: completedSessionAt(fixedNow().Add(-time.Hour))},
	}

	validation, err := newTestRetakeService(store).ValidateCode("TESTCODE")
	require.NoError(t, err)
	assert.True(t, validation.Valid)
	assert.Equal(t, CompletedRetakeEligible, validation.State)
}

func TestValidateCodeFreshCode(t *testing.T) {
	cohort := &model.Cohort{Name: "June", IsActive: true}
	cohort.ID = 1
	store := &fakeCodeStore{
		codes:    map[string]*model.AssessmentCode{"TESTCODE": activeCode(cohort)},
		sessions: map[uint]*model.AssessmentSession{},
	}

	validation, err := newTestRetakeService(store).ValidateCode("TESTCODE")
	require.NoError(t, err)
	assert.True(t, validation.Valid)
	assert.Equal(t, NoPriorSession, validation.State)
	assert.Nil(t, validation.CompletedSession)
	assert.Nil(t, validation.InProgressSession)
}

func TestValidateCodeInProgress(t *testing.T) {
	cohort := &model.Cohort{Name: "June", IsActive: true}
	cohort.ID = 1
	open := &model.AssessmentSession{AttemptNumber: 2, IsComplete: false}
	open.ID = 55

	store := &fakeCodeStore{
		codes:    map[string]*model.AssessmentCode{"TESTCODE": activeCode(cohort)},
		sessions: map[uint]*model.AssessmentSession{10: open},
	}

	validation, err := newTestRetakeService(store).ValidateCode("TESTCODE")
	require.NoError(t, err)
	assert.True(t, validation.Valid)
	assert.Equal(t, InProgress, validation.State)
	require.NotNil(t, validation.InProgressSession)
	assert.Equal(t, uint(55), validation.InProgressSession.ID)
}
