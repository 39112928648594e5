package util

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailRegistered    = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPermissionDenied   = errors.New("permission denied")

	ErrCodeNotFound       = errors.New("assessment code not found")
	ErrCodeExpired        = errors.New("assessment code has expired")
	ErrCodeDisabled       = errors.New("assessment code is disabled")
	ErrCohortUnavailable  = errors.New("cohort is not available")
	ErrNotYetAvailable    = errors.New("assessment is not yet available")
	ErrAccessEnded        = errors.New("assessment access period has ended")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionComplete    = errors.New("session already completed")
	ErrSessionIncomplete  = errors.New("session is not complete")
	ErrRetakeNotAllowed   = errors.New("retakes are not allowed for this cohort")
	ErrAnswerOutOfRange   = errors.New("answer value outside the question scale")
	ErrQuestionNotInScope = errors.New("question does not belong to this assessment")
	ErrRangesNotPartition = errors.New("score ranges must cover 0-100 without gaps or overlaps")
	ErrBadContentType     = errors.New("unknown feedback content type")
)
