// internal/rest/application_test.go
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"benevolence-intake/internal/common/config"
	apperrors "benevolence-intake/internal/common/errors"
	"benevolence-intake/internal/common/logger"
	"benevolence-intake/internal/common/validation"
	"benevolence-intake/internal/intake"
	"benevolence-intake/internal/models"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

type mockApplicationService struct {
	SubmitFunc func(ctx context.Context, sub models.Submission) (*intake.Result, error)
	received   *models.Submission
}

func (m *mockApplicationService) Submit(ctx context.Context, sub models.Submission) (*intake.Result, error) {
	m.received = &sub
	if m.SubmitFunc == nil {
		return &intake.Result{
			ApplicationID: "app-001",
			Status:        models.StatusSubmitted,
			CreatedAt:     "2026-10-29T12:00:00Z",
			AutoScore:     21,
			Bracket:       "High Need",
			Priority:      models.PriorityHigh,
		}, nil
	}
	return m.SubmitFunc(ctx, sub)
}

type upload struct {
	field       string
	filename    string
	contentType string
	content     []byte
}

func multipartBody(t *testing.T, fields map[string]string, files []upload) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, f.field, f.filename))
		h.Set("Content-Type", f.contentType)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(f.content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func setupServer(t *testing.T, svc *mockApplicationService, limits UploadLimits) *echo.Echo {
	log := logger.NewTestLogger(t)
	apps := NewApplicationHandler(svc, limits, 5*time.Second, log)
	health := NewHealthHandler(nil)
	return NewServer(config.ServerConfig{BodyLimit: "1M"}, apps, health, log)
}

func defaultLimits() UploadLimits {
	return UploadLimits{MaxFileSize: 1024, MaxFiles: 2}
}

func validFields() map[string]string {
	return map[string]string{
		"first_name": "Maria",
		"last_name":  "Lopez",
		"email":      "maria@example.com",
	}
}

func post(e *echo.Echo, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/applications", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	req.Header.Set(echo.HeaderXRealIP, "203.0.113.7")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// ==========================
// Submit Tests
// ==========================

func TestSubmit_Created(t *testing.T) {
	svc := &mockApplicationService{}
	e := setupServer(t, svc, defaultLimits())
	body, ct := multipartBody(t, validFields(), []upload{
		{field: "photo_id", filename: "id.jpg", contentType: "image/jpeg", content: []byte("jpeg-bytes")},
	})

	rec := post(e, body, ct)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "app-001", resp["applicationId"])
	assert.Equal(t, "submitted", resp["status"])
	assert.Equal(t, float64(21), resp["autoScore"])
	assert.Equal(t, "High Need", resp["bracket"])
	assert.NotContains(t, resp, "priority")

	require.NotNil(t, svc.received)
	assert.Equal(t, "Maria", svc.received.Fields["first_name"])
	assert.Equal(t, "203.0.113.7", svc.received.RemoteIP)
	require.Len(t, svc.received.Documents, 1)
	doc := svc.received.Documents[0]
	assert.Equal(t, "photo_id", doc.FieldName)
	assert.Equal(t, "id.jpg", doc.Filename)
	assert.Equal(t, "image/jpeg", doc.ContentType)
	assert.Equal(t, int64(10), doc.Size)
	assert.Equal(t, []byte("jpeg-bytes"), doc.Content)
}

func TestSubmit_EmptyFileInputIgnored(t *testing.T) {
	svc := &mockApplicationService{}
	e := setupServer(t, svc, defaultLimits())
	body, ct := multipartBody(t, validFields(), []upload{
		{field: "proof_of_income", filename: "", contentType: "application/octet-stream"},
	})

	rec := post(e, body, ct)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Empty(t, svc.received.Documents)
}

func TestSubmit_RequestErrors(t *testing.T) {
	tests := []struct {
		name         string
		fields       map[string]string
		files        []upload
		expectedCode int
		expectedErr  string
	}{
		{
			name:         "no fields",
			fields:       map[string]string{},
			expectedCode: http.StatusBadRequest,
			expectedErr:  "INVALID_REQUEST",
		},
		{
			name:   "file over the size limit",
			fields: validFields(),
			files: []upload{
				{field: "photo_id", filename: "big.pdf", contentType: "application/pdf", content: bytes.Repeat([]byte("x"), 2048)},
			},
			expectedCode: http.StatusRequestEntityTooLarge,
			expectedErr:  "DOCUMENT_TOO_LARGE",
		},
		{
			name:   "too many files",
			fields: validFields(),
			files: []upload{
				{field: "photo_id", filename: "a.jpg", contentType: "image/jpeg", content: []byte("a")},
				{field: "proof_of_income", filename: "b.pdf", contentType: "application/pdf", content: []byte("b")},
				{field: "supporting_bill", filename: "c.pdf", contentType: "application/pdf", content: []byte("c")},
			},
			expectedCode: http.StatusBadRequest,
			expectedErr:  "INVALID_REQUEST",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockApplicationService{}
			e := setupServer(t, svc, defaultLimits())
			body, ct := multipartBody(t, tt.fields, tt.files)

			rec := post(e, body, ct)

			assert.Equal(t, tt.expectedCode, rec.Code)
			var resp ResponseError
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.expectedErr, resp.Code)
			assert.Nil(t, svc.received)
		})
	}
}

func TestSubmit_NotMultipart(t *testing.T) {
	e := setupServer(t, &mockApplicationService{}, defaultLimits())

	rec := post(e, bytes.NewBufferString(`{"first_name":"Maria"}`), echo.MIMEApplicationJSON)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmit_ServiceErrors(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedCode   int
		expectedErr    string
		expectDetails  bool
		expectedHeader string
	}{
		{
			name: "validation failure lists every problem",
			err: &intake.InvalidSubmissionError{Errors: []validation.ValidationError{
				{Field: "email", Message: "must be a valid email address", Code: validation.CodeInvalidFormat},
				{Field: "last_name", Message: "is required", Code: validation.CodeMissingRequired},
			}},
			expectedCode: http.StatusUnprocessableEntity,
			expectedErr:  "APPLICATION_VALIDATION_FAILED",
		},
		{
			name:          "duplicate",
			err:           fmt.Errorf("DUPLICATE_APPLICATION: %w", apperrors.NewDuplicateApplicationError("app-000")),
			expectedCode:  http.StatusConflict,
			expectedErr:   "DUPLICATE_APPLICATION",
			expectDetails: true,
		},
		{
			name:           "rate limited",
			err:            apperrors.NewRateLimitedError(90 * time.Second),
			expectedCode:   http.StatusTooManyRequests,
			expectedErr:    "RATE_LIMITED",
			expectDetails:  true,
			expectedHeader: "90",
		},
		{
			name:         "database down hides details",
			err:          fmt.Errorf("DATABASE_INSERT_FAILED: dial tcp 10.0.0.5:5432: connection refused"),
			expectedCode: http.StatusServiceUnavailable,
			expectedErr:  "DATABASE_INSERT_FAILED",
		},
		{
			name:         "unexpected error",
			err:          fmt.Errorf("boom"),
			expectedCode: http.StatusInternalServerError,
			expectedErr:  "INTERNAL_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockApplicationService{
				SubmitFunc: func(ctx context.Context, sub models.Submission) (*intake.Result, error) {
					return nil, tt.err
				},
			}
			e := setupServer(t, svc, defaultLimits())
			body, ct := multipartBody(t, validFields(), nil)

			rec := post(e, body, ct)

			assert.Equal(t, tt.expectedCode, rec.Code)
			var resp ResponseError
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.expectedErr, resp.Code)
			assert.Equal(t, tt.expectDetails, resp.Details != "")
			assert.Equal(t, tt.expectedHeader, rec.Header().Get("Retry-After"))

			if invalid, ok := tt.err.(*intake.InvalidSubmissionError); ok {
				assert.Len(t, resp.ValidationErrors, len(invalid.Errors))
			}
		})
	}
}
