package errors

import "fmt"

// Error codes for the goal and gift service.
const (
	// Domain errors
	ErrCodeGiftNotFound       = "GIFT_NOT_FOUND"
	ErrCodeGiftAlreadyClaimed = "GIFT_ALREADY_CLAIMED"
	ErrCodeGoalNotFound       = "GOAL_NOT_FOUND"
	ErrCodeExperienceNotFound = "EXPERIENCE_NOT_FOUND"

	// Auth errors
	ErrCodeAuthRequired = "AUTH_REQUIRED"

	// Database errors
	ErrCodeDatabaseError     = "DATABASE_ERROR"
	ErrCodeTransactionFailed = "TRANSACTION_FAILED"

	// Config errors
	ErrCodeConfigInvalid  = "CONFIG_INVALID"
	ErrCodeConfigNotFound = "CONFIG_NOT_FOUND"

	// Validation errors
	ErrCodeValidationFailed = "VALIDATION_FAILED"
	ErrCodeInvalidInput     = "INVALID_INPUT"

	// Submission errors
	ErrCodeSubmissionInFlight = "SUBMISSION_IN_FLIGHT"
	ErrCodeGoalCreateFailed   = "GOAL_CREATE_FAILED"
	ErrCodeDraftStoreFailed   = "DRAFT_STORE_FAILED"
)

// GoalError represents an error in the goal and gift service.
type GoalError struct {
	Code    string
	Message string
	Err     error
}

func (e *GoalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *GoalError) Unwrap() error {
	return e.Err
}

// NewGoalError creates a new GoalError.
func NewGoalError(code, message string, err error) *GoalError {
	return &GoalError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Code extracts the service error code from err, or "" if err is not a
// GoalError.
func Code(err error) string {
	if ge, ok := err.(*GoalError); ok {
		return ge.Code
	}
	return ""
}

// Domain-specific error constructors

// ErrGiftNotFound returns an error when a gift code is not found.
func ErrGiftNotFound(giftID string) *GoalError {
	return &GoalError{
		Code:    ErrCodeGiftNotFound,
		Message: fmt.Sprintf("gift not found: %s", giftID),
		Err:     nil,
	}
}

// ErrGiftAlreadyClaimed returns an error when a gift code has already
// been redeemed by another recipient.
func ErrGiftAlreadyClaimed(giftID string) *GoalError {
	return &GoalError{
		Code:    ErrCodeGiftAlreadyClaimed,
		Message: fmt.Sprintf("gift already claimed: %s", giftID),
		Err:     nil,
	}
}

// ErrGoalNotFound returns an error when a goal is not found.
func ErrGoalNotFound(goalID string) *GoalError {
	return &GoalError{
		Code:    ErrCodeGoalNotFound,
		Message: fmt.Sprintf("goal not found: %s", goalID),
		Err:     nil,
	}
}

// ErrExperienceNotFound returns an error when an experience lookup misses.
func ErrExperienceNotFound(experienceID string) *GoalError {
	return &GoalError{
		Code:    ErrCodeExperienceNotFound,
		Message: fmt.Sprintf("experience not found: %s", experienceID),
		Err:     nil,
	}
}

// ErrAuthRequired returns an error when an operation needs an
// authenticated user.
func ErrAuthRequired(operation string) *GoalError {
	return &GoalError{
		Code:    ErrCodeAuthRequired,
		Message: fmt.Sprintf("authentication required for %s", operation),
		Err:     nil,
	}
}

// ErrDatabaseError wraps database errors.
func ErrDatabaseError(operation string, err error) *GoalError {
	return &GoalError{
		Code:    ErrCodeDatabaseError,
		Message: fmt.Sprintf("database error during %s", operation),
		Err:     err,
	}
}

// ErrConfigInvalid returns an error for invalid configuration.
func ErrConfigInvalid(reason string) *GoalError {
	return &GoalError{
		Code:    ErrCodeConfigInvalid,
		Message: fmt.Sprintf("invalid configuration: %s", reason),
		Err:     nil,
	}
}

// ErrValidationFailed returns a validation error for a single field.
func ErrValidationFailed(field, reason string) *GoalError {
	return &GoalError{
		Code:    ErrCodeValidationFailed,
		Message: fmt.Sprintf("validation failed for %s: %s", field, reason),
		Err:     nil,
	}
}

// ErrSubmissionInFlight returns an error when a second submission is
// attempted while one is still running.
func ErrSubmissionInFlight() *GoalError {
	return &GoalError{
		Code:    ErrCodeSubmissionInFlight,
		Message: "a submission is already in flight",
		Err:     nil,
	}
}

// ErrGoalCreateFailed wraps a goal-creation failure.
func ErrGoalCreateFailed(err error) *GoalError {
	return &GoalError{
		Code:    ErrCodeGoalCreateFailed,
		Message: "failed to create goal",
		Err:     err,
	}
}

// ErrDraftStoreFailed wraps a draft-store failure.
func ErrDraftStoreFailed(err error) *GoalError {
	return &GoalError{
		Code:    ErrCodeDraftStoreFailed,
		Message: "failed to persist goal draft",
		Err:     err,
	}
}
