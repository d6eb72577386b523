// Package errors provides standardized error handling for the intake
// pipeline, shared by the HTTP server and the Zeebe job workers.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeInvalidRequest              ErrorCode = "INVALID_REQUEST"
	ErrCodeApplicationValidationFailed ErrorCode = "APPLICATION_VALIDATION_FAILED"
	ErrCodeDocumentTooLarge            ErrorCode = "DOCUMENT_TOO_LARGE"
	ErrCodeUnsupportedDocumentType     ErrorCode = "UNSUPPORTED_DOCUMENT_TYPE"
	ErrCodeDuplicateApplication        ErrorCode = "DUPLICATE_APPLICATION"
	ErrCodeRateLimited                 ErrorCode = "RATE_LIMITED"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeDatabaseInsertFailed     ErrorCode = "DATABASE_INSERT_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeReviewerLookupFailed     ErrorCode = "REVIEWER_LOOKUP_FAILED"

	ErrCodeElasticsearchConnectionFailed ErrorCode = "ELASTICSEARCH_CONNECTION_FAILED"
	ErrCodeSearchIndexFailed             ErrorCode = "SEARCH_INDEX_FAILED"

	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"

	ErrCodeTimeout         ErrorCode = "TIMEOUT_ERROR"
	ErrCodeExternalService ErrorCode = "EXTERNAL_SERVICE_ERROR"
	ErrCodeInternal        ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// WithMetadata attaches a key to the error and returns it for chaining.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

func newError(code ErrorCode, message, details string) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: IsRetryableErrorCode(code),
		Timestamp: time.Now().UTC(),
	}
}

func NewInvalidRequestError(details string) *StandardError {
	return newError(ErrCodeInvalidRequest, "Request could not be read", details)
}

// NewApplicationValidationFailedError carries the individual field problems
// in Metadata["validationErrors"].
func NewApplicationValidationFailedError(problems []string) *StandardError {
	return newError(ErrCodeApplicationValidationFailed, "Application data validation failed",
		strings.Join(problems, "; ")).
		WithMetadata("validationErrors", problems)
}

func NewDocumentTooLargeError(fieldName string, size, limit int64) *StandardError {
	return newError(ErrCodeDocumentTooLarge, "Uploaded document exceeds the size limit",
		fmt.Sprintf("field: %s, size: %d, limit: %d", fieldName, size, limit))
}

func NewUnsupportedDocumentTypeError(fieldName, contentType string) *StandardError {
	return newError(ErrCodeUnsupportedDocumentType, "Uploaded document type is not accepted",
		fmt.Sprintf("field: %s, contentType: %s", fieldName, contentType))
}

// NewDuplicateApplicationError reports the id of the application already on file.
func NewDuplicateApplicationError(existingID string) *StandardError {
	return newError(ErrCodeDuplicateApplication, "An identical application was already submitted",
		fmt.Sprintf("applicationId: %s", existingID)).
		WithMetadata("existingApplicationId", existingID)
}

func NewRateLimitedError(retryAfter time.Duration) *StandardError {
	return newError(ErrCodeRateLimited, "Too many submissions, try again later",
		fmt.Sprintf("retryAfter: %s", retryAfter)).
		WithMetadata("retryAfterSeconds", int(retryAfter.Seconds()))
}

func NewDatabaseConnectionFailedError(err error) *StandardError {
	return newError(ErrCodeDatabaseConnectionFailed, "Database connection error", err.Error())
}

func NewDatabaseInsertFailedError(err error) *StandardError {
	return newError(ErrCodeDatabaseInsertFailed, "Database insert operation failed", err.Error())
}

func NewQueryExecutionFailedError(queryType string, err error) *StandardError {
	return newError(ErrCodeQueryExecutionFailed, "Database query execution error",
		fmt.Sprintf("queryType: %s, error: %s", queryType, err.Error()))
}

func NewReviewerLookupFailedError(queue string, err error) *StandardError {
	return newError(ErrCodeReviewerLookupFailed, "Reviewer lookup failed",
		fmt.Sprintf("queue: %s, error: %s", queue, err.Error()))
}

func NewElasticsearchConnectionFailedError(err error) *StandardError {
	return newError(ErrCodeElasticsearchConnectionFailed, "Elasticsearch connection error", err.Error())
}

func NewSearchIndexFailedError(index string, err error) *StandardError {
	return newError(ErrCodeSearchIndexFailed, "Search indexing failed",
		fmt.Sprintf("index: %s, error: %s", index, err.Error()))
}

func NewNotificationSendFailedError(channel string, err error) *StandardError {
	return newError(ErrCodeNotificationSendFailed, "Notification delivery failed",
		fmt.Sprintf("channel: %s, error: %s", channel, err.Error()))
}

func NewTimeoutError(service string, err error) *StandardError {
	return newError(ErrCodeTimeout, fmt.Sprintf("Service '%s' timeout", service), err.Error())
}

func NewExternalServiceError(service string, err error) *StandardError {
	return newError(ErrCodeExternalService, fmt.Sprintf("External service '%s' error", service), err.Error())
}

func NewInternalError(err error) *StandardError {
	return newError(ErrCodeInternal, "Unexpected error", err.Error())
}

// ==========================
// 4. Error Conversion
// ==========================

// knownCodes doubles as the BPMN error code mapping; codes are passed through unchanged.
var knownCodes = map[ErrorCode]struct{}{
	ErrCodeInvalidRequest:                {},
	ErrCodeApplicationValidationFailed:   {},
	ErrCodeDocumentTooLarge:              {},
	ErrCodeUnsupportedDocumentType:       {},
	ErrCodeDuplicateApplication:          {},
	ErrCodeRateLimited:                   {},
	ErrCodeDatabaseConnectionFailed:      {},
	ErrCodeDatabaseInsertFailed:          {},
	ErrCodeQueryExecutionFailed:          {},
	ErrCodeReviewerLookupFailed:          {},
	ErrCodeElasticsearchConnectionFailed: {},
	ErrCodeSearchIndexFailed:             {},
	ErrCodeNotificationSendFailed:        {},
	ErrCodeTimeout:                       {},
	ErrCodeExternalService:               {},
	ErrCodeInternal:                      {},
}

// GetRetryCount returns the recommended retry count for a code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeDatabaseConnectionFailed,
		ErrCodeDatabaseInsertFailed,
		ErrCodeQueryExecutionFailed,
		ErrCodeElasticsearchConnectionFailed,
		ErrCodeSearchIndexFailed,
		ErrCodeNotificationSendFailed,
		ErrCodeExternalService:
		return 3
	case ErrCodeReviewerLookupFailed,
		ErrCodeTimeout:
		return 2
	default:
		return 0
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	vars := map[string]interface{}{
		"originalErrorCode": string(stdErr.Code),
		"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
	}
	for k, v := range stdErr.Metadata {
		vars[k] = v
	}

	return &BPMNError{
		Code:           string(stdErr.Code),
		Message:        stdErr.Message,
		Details:        stdErr.Details,
		Retryable:      stdErr.Retryable,
		Retries:        retries,
		ErrorVariables: vars,
	}
}

// Normalize turns any error into a StandardError. Worker sentinel errors
// whose text starts with a known code ("DUPLICATE_APPLICATION: ...") keep
// that code; everything else becomes INTERNAL_ERROR.
func Normalize(err error) *StandardError {
	if err == nil {
		return nil
	}
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}

	msg := err.Error()
	prefix, _, _ := strings.Cut(msg, ":")
	code := ErrorCode(strings.TrimSpace(prefix))
	if _, ok := knownCodes[code]; ok {
		return newError(code, msg, msg)
	}
	return NewInternalError(err)
}

// ==========================
// 5. Utility Functions
// ==========================

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// CodeOf returns the normalized code of err, or "" for nil.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ""
	}
	return Normalize(err).Code
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "DOCUMENT") || strings.Contains(codeStr, "VALIDATION") ||
		strings.Contains(codeStr, "INVALID"):
		return "VALIDATION"
	case strings.Contains(codeStr, "DUPLICATE") || strings.Contains(codeStr, "RATE"):
		return "BUSINESS_RULE"
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "QUERY") ||
		strings.Contains(codeStr, "REVIEWER"):
		return "DATABASE"
	case strings.Contains(codeStr, "ELASTICSEARCH") || strings.Contains(codeStr, "SEARCH"):
		return "SEARCH"
	case strings.Contains(codeStr, "NOTIFICATION"):
		return "NOTIFICATION"
	default:
		return "OTHER"
	}
}

// HTTPStatus maps a code onto the status the intake API answers with.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeInvalidRequest:
		return http.StatusBadRequest
	case ErrCodeApplicationValidationFailed, ErrCodeUnsupportedDocumentType:
		return http.StatusUnprocessableEntity
	case ErrCodeDocumentTooLarge:
		return http.StatusRequestEntityTooLarge
	case ErrCodeDuplicateApplication:
		return http.StatusConflict
	case ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case ErrCodeDatabaseConnectionFailed, ErrCodeDatabaseInsertFailed, ErrCodeQueryExecutionFailed:
		return http.StatusServiceUnavailable
	case ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case ErrCodeElasticsearchConnectionFailed, ErrCodeSearchIndexFailed,
		ErrCodeNotificationSendFailed, ErrCodeExternalService, ErrCodeReviewerLookupFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
