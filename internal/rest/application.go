// internal/rest/application.go
package rest

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"
	"strings"
	"time"

	apperrors "benevolence-intake/internal/common/errors"
	"benevolence-intake/internal/common/logger"
	"benevolence-intake/internal/intake"
	"benevolence-intake/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type ApplicationService interface {
	Submit(ctx context.Context, sub models.Submission) (*intake.Result, error)
}

// UploadLimits bound the multipart request before it reaches the service.
type UploadLimits struct {
	MaxFileSize int64
	MaxFiles    int
}

type ApplicationHandler struct {
	service   ApplicationService
	validator *validator.Validate
	limits    UploadLimits
	timeout   time.Duration
	logger    logger.Logger
}

func NewApplicationHandler(service ApplicationService, limits UploadLimits, timeout time.Duration, log logger.Logger) *ApplicationHandler {
	return &ApplicationHandler{
		service:   service,
		validator: validator.New(),
		limits:    limits,
		timeout:   timeout,
		logger:    log.WithFields(map[string]interface{}{"component": "rest"}),
	}
}

type SubmitApplicationRequest struct {
	Fields    map[string]string `validate:"required,min=1,max=200,dive,keys,required,max=64,endkeys"`
	Documents []DocumentRequest `validate:"dive"`
}

type DocumentRequest struct {
	FieldName   string `validate:"required,max=64"`
	Filename    string `validate:"required,max=255"`
	ContentType string `validate:"omitempty,max=255"`
	Size        int64  `validate:"gte=0"`
}

type SubmitApplicationResponse struct {
	ApplicationID string `json:"applicationId"`
	Status        string `json:"status"`
	CreatedAt     string `json:"createdAt"`
	AutoScore     int    `json:"autoScore"`
	Bracket       string `json:"bracket"`
}

// Submit handles POST /api/v1/applications. Form values become fields; every
// file part becomes a document keyed by its form field name.
func (h *ApplicationHandler) Submit(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return respondError(c, apperrors.NewInvalidRequestError(fmt.Sprintf("multipart form expected: %v", err)))
	}

	fields := make(map[string]string, len(form.Value))
	for name, values := range form.Value {
		if len(values) > 0 {
			fields[name] = values[0]
		}
	}

	docs, err := h.readDocuments(form.File)
	if err != nil {
		return respondError(c, err)
	}

	req := SubmitApplicationRequest{Fields: fields}
	for _, d := range docs {
		req.Documents = append(req.Documents, DocumentRequest{
			FieldName:   d.FieldName,
			Filename:    d.Filename,
			ContentType: d.ContentType,
			Size:        d.Size,
		})
	}
	if err := h.validator.Struct(req); err != nil {
		return respondError(c, apperrors.NewInvalidRequestError(err.Error()))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	result, err := h.service.Submit(ctx, models.Submission{
		Fields:    fields,
		Documents: docs,
		RemoteIP:  c.RealIP(),
	})
	if err != nil {
		h.logger.Warn("submission failed", map[string]interface{}{
			"error":    err,
			"remoteIp": c.RealIP(),
		})
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, SubmitApplicationResponse{
		ApplicationID: result.ApplicationID,
		Status:        result.Status,
		CreatedAt:     result.CreatedAt,
		AutoScore:     result.AutoScore,
		Bracket:       result.Bracket,
	})
}

func (h *ApplicationHandler) readDocuments(files map[string][]*multipart.FileHeader) ([]models.Document, error) {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	var docs []models.Document
	for _, name := range names {
		for _, fh := range files[name] {
			// Browsers post an empty part for an untouched file input.
			if fh.Filename == "" && fh.Size == 0 {
				continue
			}
			if h.limits.MaxFiles > 0 && len(docs) >= h.limits.MaxFiles {
				return nil, apperrors.NewInvalidRequestError(fmt.Sprintf("at most %d documents may be uploaded", h.limits.MaxFiles))
			}
			if h.limits.MaxFileSize > 0 && fh.Size > h.limits.MaxFileSize {
				return nil, apperrors.NewDocumentTooLargeError(name, fh.Size, h.limits.MaxFileSize)
			}

			content, err := readFile(fh)
			if err != nil {
				return nil, apperrors.NewInvalidRequestError(fmt.Sprintf("read %s: %v", name, err))
			}
			docs = append(docs, models.Document{
				FieldName:   name,
				Filename:    fh.Filename,
				ContentType: strings.TrimSpace(fh.Header.Get(echo.HeaderContentType)),
				Size:        int64(len(content)),
				Content:     content,
			})
		}
	}
	return docs, nil
}

func readFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
