package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestGoalError_Error(t *testing.T) {
	tests := []struct {
		name    string
		err     *GoalError
		wantMsg string
	}{
		{
			name: "error without wrapped error",
			err: &GoalError{
				Code:    ErrCodeGiftNotFound,
				Message: "gift not found: gift-1",
				Err:     nil,
			},
			wantMsg: "GIFT_NOT_FOUND: gift not found: gift-1",
		},
		{
			name: "error with wrapped error",
			err: &GoalError{
				Code:    ErrCodeDatabaseError,
				Message: "database error during claim",
				Err:     errors.New("connection timeout"),
			},
			wantMsg: "DATABASE_ERROR: database error during claim: connection timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			if got != tt.wantMsg {
				t.Errorf("GoalError.Error() = %v, want %v", got, tt.wantMsg)
			}
		})
	}
}

func TestGoalError_Unwrap(t *testing.T) {
	originalErr := errors.New("original error")
	err := &GoalError{
		Code:    ErrCodeDatabaseError,
		Message: "test error",
		Err:     originalErr,
	}

	unwrapped := err.Unwrap()
	if unwrapped != originalErr {
		t.Errorf("Unwrap() returned %v, want %v", unwrapped, originalErr)
	}
}

func TestErrGiftNotFound(t *testing.T) {
	giftID := "gift-123"
	err := ErrGiftNotFound(giftID)

	if err.Code != ErrCodeGiftNotFound {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeGiftNotFound)
	}

	if !strings.Contains(err.Message, giftID) {
		t.Errorf("Message should contain gift ID %v, got %v", giftID, err.Message)
	}
}

func TestErrGiftAlreadyClaimed(t *testing.T) {
	giftID := "gift-456"
	err := ErrGiftAlreadyClaimed(giftID)

	if err.Code != ErrCodeGiftAlreadyClaimed {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeGiftAlreadyClaimed)
	}

	if !strings.Contains(err.Message, giftID) {
		t.Errorf("Message should contain gift ID %v, got %v", giftID, err.Message)
	}
}

func TestErrValidationFailed(t *testing.T) {
	err := ErrValidationFailed("sessions_per_week", "must be between 1 and 7")

	if err.Code != ErrCodeValidationFailed {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeValidationFailed)
	}

	if !strings.Contains(err.Message, "sessions_per_week") {
		t.Errorf("Message should contain field name, got %v", err.Message)
	}
}

func TestCode(t *testing.T) {
	if got := Code(ErrGiftAlreadyClaimed("g")); got != ErrCodeGiftAlreadyClaimed {
		t.Errorf("Code() = %v, want %v", got, ErrCodeGiftAlreadyClaimed)
	}

	if got := Code(errors.New("plain")); got != "" {
		t.Errorf("Code() on plain error = %v, want empty", got)
	}
}
