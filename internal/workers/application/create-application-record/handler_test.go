// internal/workers/application/create-application-record/handler_test.go
package createapplicationrecord

import (
	"context"
	"errors"
	"testing"
	"time"

	apperrors "benevolence-intake/internal/common/errors"
	"benevolence-intake/internal/common/logger"
	"benevolence-intake/internal/models"
	"benevolence-intake/internal/scoring"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

var fixedNow = time.Date(2026, 10, 17, 15, 0, 0, 0, time.UTC)

func createTestConfig() *Config {
	return &Config{
		Timeout:         5 * time.Second,
		DuplicateWindow: 72 * time.Hour,
		Now:             func() time.Time { return fixedNow },
	}
}

func createTestInput() *Input {
	fields := map[string]string{
		"first_name":       " Maria ",
		"last_name":        "Lopez",
		"email":            "Maria@Example.com",
		"amount_requested": "$900",
		"deadline_date":    "10/19/2026",
		"need_eviction":    "Yes",
	}
	return &Input{
		Fields: fields,
		Documents: []models.Document{
			{FieldName: "photo_id", Filename: "id.jpg", ContentType: "image/jpeg", Size: 3, Content: []byte{1, 2, 3}},
			{FieldName: "supporting_bill", Filename: "notice.pdf", ContentType: "application/pdf", Content: []byte("%PDF")},
		},
		Assessment: scoring.EvaluateSubmission(fields, nil, fixedNow),
		Priority:   models.PriorityHigh,
	}
}

type testLogger struct {
	t *testing.T
}

func (tl *testLogger) Debug(msg string, fields map[string]interface{}) {
	tl.t.Logf("DEBUG: %s %v", msg, fields)
}

func (tl *testLogger) Info(msg string, fields map[string]interface{}) {
	tl.t.Logf("INFO: %s %v", msg, fields)
}

func (tl *testLogger) Warn(msg string, fields map[string]interface{}) {
	tl.t.Logf("WARN: %s %v", msg, fields)
}

func (tl *testLogger) Error(msg string, fields map[string]interface{}) {
	tl.t.Logf("ERROR: %s %v", msg, fields)
}

func (tl *testLogger) WithFields(fields map[string]interface{}) logger.Logger {
	return tl
}

func (tl *testLogger) WithError(err error) logger.Logger {
	return tl.WithFields(map[string]interface{}{"error": err})
}

func (tl *testLogger) With(fields map[string]interface{}) logger.Logger {
	return tl
}

func newTestLogger(t *testing.T) logger.Logger {
	return &testLogger{t: t}
}

func setupMockDB(t *testing.T) (*Handler, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewHandler(createTestConfig(), db, newTestLogger(t)), mock
}

func expectNoDuplicate(mock sqlmock.Sqlmock, input *Input) {
	mock.ExpectQuery(`SELECT id FROM applications`).
		WithArgs(Fingerprint(input.Fields), fixedNow.Add(-72*time.Hour)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_Success(t *testing.T) {
	handler, mock := setupMockDB(t)
	input := createTestInput()

	expectNoDuplicate(mock, input)
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO applications`).
		WithArgs(
			sqlmock.AnyArg(),
			Fingerprint(input.Fields),
			"Maria",
			"Lopez",
			"Maria@Example.com",
			sqlmock.AnyArg(),
			sqlmock.AnyArg(),
			input.Recommendation.AutoScore,
			input.Recommendation.Bracket,
			models.PriorityHigh,
			models.StatusSubmitted,
			fixedNow,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO application_documents`).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "photo_id", "id.jpg", "image/jpeg", int64(3), []byte{1, 2, 3}, fixedNow).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO application_documents`).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "supporting_bill", "notice.pdf", "application/pdf", int64(4), []byte("%PDF"), fixedNow).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectExec(`INSERT INTO audit_log`).
		WithArgs("application_created", "application", sqlmock.AnyArg(), sqlmock.AnyArg(), fixedNow).
		WillReturnResult(sqlmock.NewResult(1, 1))

	output, err := handler.Execute(context.Background(), input)

	require.NoError(t, err)
	assert.NotEmpty(t, output.ApplicationID)
	assert.Equal(t, models.StatusSubmitted, output.ApplicationStatus)
	assert.Equal(t, "2026-10-17T15:00:00Z", output.CreatedAt)
	assert.Equal(t, 2, output.DocumentCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_KeepsProvidedID(t *testing.T) {
	handler, mock := setupMockDB(t)
	input := createTestInput()
	input.ApplicationID = "6f1c2d4e-0000-4000-8000-000000000001"
	input.Documents = nil

	expectNoDuplicate(mock, input)
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO applications`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectExec(`INSERT INTO audit_log`).
		WithArgs("application_created", "application", input.ApplicationID, sqlmock.AnyArg(), fixedNow).
		WillReturnResult(sqlmock.NewResult(1, 1))

	output, err := handler.Execute(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, input.ApplicationID, output.ApplicationID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_DuplicateApplication(t *testing.T) {
	handler, mock := setupMockDB(t)
	input := createTestInput()

	mock.ExpectQuery(`SELECT id FROM applications`).
		WithArgs(Fingerprint(input.Fields), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("existing-app"))

	output, err := handler.Execute(context.Background(), input)

	assert.Nil(t, output)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateApplication)

	stdErr := apperrors.Normalize(err)
	assert.Equal(t, apperrors.ErrCodeDuplicateApplication, stdErr.Code)
	assert.Equal(t, "existing-app", stdErr.Metadata["existingApplicationId"])
	assert.False(t, stdErr.Retryable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_DuplicateCheckDisabled(t *testing.T) {
	handler, mock := setupMockDB(t)
	handler.config.DuplicateWindow = 0
	input := createTestInput()
	input.Documents = nil

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO applications`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectExec(`INSERT INTO audit_log`).WillReturnResult(sqlmock.NewResult(1, 1))

	_, err := handler.Execute(context.Background(), input)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_DuplicateCheckError(t *testing.T) {
	handler, mock := setupMockDB(t)
	input := createTestInput()

	mock.ExpectQuery(`SELECT id FROM applications`).
		WillReturnError(errors.New("connection reset"))

	_, err := handler.Execute(context.Background(), input)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDatabaseInsertFailed)
	assert.Equal(t, apperrors.ErrCodeDatabaseInsertFailed, apperrors.CodeOf(err))
}

func TestHandler_Execute_DocumentInsertRollsBack(t *testing.T) {
	handler, mock := setupMockDB(t)
	input := createTestInput()

	expectNoDuplicate(mock, input)
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO applications`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO application_documents`).
		WillReturnError(errors.New("value too long"))
	mock.ExpectRollback()

	output, err := handler.Execute(context.Background(), input)

	assert.Nil(t, output)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDatabaseInsertFailed)
	assert.Contains(t, err.Error(), "photo_id")
	assert.True(t, apperrors.Normalize(err).Retryable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_AuditLogErrorIsNotFatal(t *testing.T) {
	handler, mock := setupMockDB(t)
	input := createTestInput()
	input.Documents = nil

	expectNoDuplicate(mock, input)
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO applications`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectExec(`INSERT INTO audit_log`).
		WillReturnError(errors.New("audit table locked"))

	output, err := handler.Execute(context.Background(), input)

	require.NoError(t, err)
	assert.NotEmpty(t, output.ApplicationID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ==========================
// Fingerprint Tests
// ==========================

func TestFingerprint(t *testing.T) {
	base := map[string]string{
		"email":            "maria@example.com",
		"amount_requested": "900",
		"deadline_date":    "2026-10-19",
	}

	same := map[string]string{
		"email":            "  MARIA@example.COM ",
		"amount_requested": "$900.00",
		"deadline_date":    "10/19/2026",
		"first_name":       "ignored",
	}
	assert.Equal(t, Fingerprint(base), Fingerprint(same))
	assert.Len(t, Fingerprint(base), 64)

	differentAmount := map[string]string{"email": "maria@example.com", "amount_requested": "901", "deadline_date": "2026-10-19"}
	assert.NotEqual(t, Fingerprint(base), Fingerprint(differentAmount))

	differentDeadline := map[string]string{"email": "maria@example.com", "amount_requested": "900", "deadline_date": "2026-10-20"}
	assert.NotEqual(t, Fingerprint(base), Fingerprint(differentDeadline))
}

func TestApplicantFrom(t *testing.T) {
	a := ApplicantFrom(map[string]string{
		"first_name": " Maria ",
		"last_name":  "Lopez",
		"email":      "maria@example.com",
		"city":       "Springfield",
	})

	assert.Equal(t, "Maria Lopez", a.FullName())
	assert.Equal(t, "Springfield", a.City)
	assert.Empty(t, a.Phone)
}
