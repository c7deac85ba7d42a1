package errors

import (
	stderrors "errors"
	"net/http"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	err := NewValidationError("title is required")
	if got := err.Error(); got != "validation: title is required" {
		t.Errorf("unexpected message %q", got)
	}

	withDetails := NewValidationError("title is required", "max 200 characters")
	if got := withDetails.Error(); got != "validation: title is required (max 200 characters)" {
		t.Errorf("unexpected message with details %q", got)
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := stderrors.New("edit in progress")
	err := NewConflictError("another paragraph edit is in progress", cause)

	if !stderrors.Is(err, cause) {
		t.Errorf("expected errors.Is to reach the cause through the wrap")
	}
}

func TestConstructors_TypesAndStatusCodes(t *testing.T) {
	cause := stderrors.New("boom")
	tests := []struct {
		name    string
		err     *AppError
		errType ErrorType
		status  int
	}{
		{"validation", NewValidationError("bad input"), ErrorTypeValidation, http.StatusBadRequest},
		{"conflict", NewConflictError("locked", cause), ErrorTypeConflict, http.StatusConflict},
		{"processing", NewProcessingError("failed", cause), ErrorTypeProcessing, http.StatusUnprocessableEntity},
		{"not found", NewNotFoundError("missing"), ErrorTypeNotFound, http.StatusNotFound},
		{"unauthorized", NewUnauthorizedError("no token"), ErrorTypeUnauthorized, http.StatusUnauthorized},
		{"internal", NewInternalError("broke", cause), ErrorTypeInternal, http.StatusInternalServerError},
		{"network", NewNetworkError("down", cause), ErrorTypeNetwork, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !IsType(tt.err, tt.errType) {
				t.Errorf("expected type %s, got %s", tt.errType, tt.err.Type)
			}
			if got := GetStatusCode(tt.err); got != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, got)
			}
		})
	}
}

func TestGetStatusCode_PlainError(t *testing.T) {
	if got := GetStatusCode(stderrors.New("plain")); got != http.StatusInternalServerError {
		t.Errorf("expected 500 fallback for plain errors, got %d", got)
	}
}
