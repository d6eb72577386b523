// internal/common/errors/errors_test.go
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors_RetryableMatchesCode(t *testing.T) {
	cause := stderrors.New("connection refused")

	tests := []struct {
		name      string
		err       *StandardError
		code      ErrorCode
		retryable bool
	}{
		{"validation", NewApplicationValidationFailedError([]string{"email: required"}), ErrCodeApplicationValidationFailed, false},
		{"duplicate", NewDuplicateApplicationError("app-1"), ErrCodeDuplicateApplication, false},
		{"document size", NewDocumentTooLargeError("photo_id", 20, 10), ErrCodeDocumentTooLarge, false},
		{"rate limit", NewRateLimitedError(time.Minute), ErrCodeRateLimited, false},
		{"insert", NewDatabaseInsertFailedError(cause), ErrCodeDatabaseInsertFailed, true},
		{"reviewer lookup", NewReviewerLookupFailedError("high", cause), ErrCodeReviewerLookupFailed, true},
		{"search index", NewSearchIndexFailedError("benevolence-applications", cause), ErrCodeSearchIndexFailed, true},
		{"notification", NewNotificationSendFailedError("email", cause), ErrCodeNotificationSendFailed, true},
		{"internal", NewInternalError(cause), ErrCodeInternal, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.retryable, tt.err.Retryable)
			assert.False(t, tt.err.Timestamp.IsZero())
			assert.Contains(t, tt.err.Error(), string(tt.code))
		})
	}
}

func TestValidationErrorMetadata(t *testing.T) {
	problems := []string{"email: required", "first_name: required"}

	err := NewApplicationValidationFailedError(problems)

	assert.Equal(t, problems, err.Metadata["validationErrors"])
	assert.Equal(t, "email: required; first_name: required", err.Details)
}

func TestConvertToBPMNError(t *testing.T) {
	stdErr := NewDuplicateApplicationError("app-42")

	bpmnErr := ConvertToBPMNError(stdErr)

	assert.Equal(t, "DUPLICATE_APPLICATION", bpmnErr.Code)
	assert.Equal(t, 0, bpmnErr.Retries)
	vars := bpmnErr.ToErrorVariables()
	assert.Equal(t, "DUPLICATE_APPLICATION", vars["errorCode"])
	assert.Equal(t, "app-42", vars["existingApplicationId"])
	assert.Equal(t, "DUPLICATE_APPLICATION", vars["originalErrorCode"])
}

func TestConvertToBPMNError_NonRetryableOverride(t *testing.T) {
	stdErr := NewDatabaseInsertFailedError(stderrors.New("x"))
	stdErr.Retryable = false

	assert.Equal(t, 0, ConvertToBPMNError(stdErr).Retries)
}

func TestNormalize(t *testing.T) {
	sentinel := stderrors.New("DUPLICATE_APPLICATION")

	tests := []struct {
		name     string
		err      error
		expected ErrorCode
	}{
		{"standard error", NewSearchIndexFailedError("idx", stderrors.New("x")), ErrCodeSearchIndexFailed},
		{"wrapped standard error", fmt.Errorf("persist: %w", NewDatabaseInsertFailedError(stderrors.New("x"))), ErrCodeDatabaseInsertFailed},
		{"wrapped sentinel", fmt.Errorf("%w: applicationId app-1", sentinel), ErrCodeDuplicateApplication},
		{"unknown code prefix", stderrors.New("SOMETHING_ELSE: nope"), ErrCodeInternal},
		{"plain error", stderrors.New("boom"), ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CodeOf(tt.err))
		})
	}

	assert.Nil(t, Normalize(nil))
	assert.Equal(t, ErrorCode(""), CodeOf(nil))
}

func TestNormalize_SentinelKeepsRetryability(t *testing.T) {
	err := fmt.Errorf("%w: timeout", stderrors.New("DATABASE_INSERT_FAILED"))

	stdErr := Normalize(err)

	require.NotNil(t, stdErr)
	assert.True(t, stdErr.Retryable)
	assert.Equal(t, 3, GetRetryCount(stdErr.Code))
}

func TestHTTPStatus(t *testing.T) {
	tests := map[ErrorCode]int{
		ErrCodeInvalidRequest:              http.StatusBadRequest,
		ErrCodeApplicationValidationFailed: http.StatusUnprocessableEntity,
		ErrCodeUnsupportedDocumentType:     http.StatusUnprocessableEntity,
		ErrCodeDocumentTooLarge:            http.StatusRequestEntityTooLarge,
		ErrCodeDuplicateApplication:        http.StatusConflict,
		ErrCodeRateLimited:                 http.StatusTooManyRequests,
		ErrCodeDatabaseInsertFailed:        http.StatusServiceUnavailable,
		ErrCodeSearchIndexFailed:           http.StatusBadGateway,
		ErrCodeTimeout:                     http.StatusGatewayTimeout,
		ErrCodeInternal:                    http.StatusInternalServerError,
	}
	for code, status := range tests {
		assert.Equal(t, status, HTTPStatus(code), string(code))
	}
}

func TestGetErrorCategory(t *testing.T) {
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeApplicationValidationFailed))
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeDocumentTooLarge))
	assert.Equal(t, "BUSINESS_RULE", GetErrorCategory(ErrCodeDuplicateApplication))
	assert.Equal(t, "DATABASE", GetErrorCategory(ErrCodeDatabaseInsertFailed))
	assert.Equal(t, "DATABASE", GetErrorCategory(ErrCodeReviewerLookupFailed))
	assert.Equal(t, "SEARCH", GetErrorCategory(ErrCodeSearchIndexFailed))
	assert.Equal(t, "NOTIFICATION", GetErrorCategory(ErrCodeNotificationSendFailed))
	assert.Equal(t, "OTHER", GetErrorCategory(ErrCodeInternal))
}

func TestRemainingRetries(t *testing.T) {
	assert.Equal(t, int32(3), RemainingRetries(5, 3))
	assert.Equal(t, int32(1), RemainingRetries(2, 3))
	assert.Equal(t, int32(0), RemainingRetries(1, 3))
	assert.Equal(t, int32(0), RemainingRetries(0, 3))
}
