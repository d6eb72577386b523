// internal/workers/application/validate-application-data/handler.go
package validateapplicationdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"benevolence-intake/internal/common/camunda"
	apperrors "benevolence-intake/internal/common/errors"
	"benevolence-intake/internal/common/logger"
	"benevolence-intake/internal/common/metrics"
	"benevolence-intake/internal/common/validation"
	"benevolence-intake/internal/scoring"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "validate-application-data"
)

var (
	ErrApplicationValidationFailed = errors.New("APPLICATION_VALIDATION_FAILED")
)

type Handler struct {
	config       *Config
	submission   validation.SubmissionRules
	documents    validation.DocumentRules
	logger       logger.Logger
	errorHandler *apperrors.ErrorHandler
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	if config == nil {
		config = LoadConfig()
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})

	return &Handler{
		config: config,
		submission: validation.SubmissionRules{
			RequiredFields: []string{scoring.FieldFirstName, scoring.FieldLastName, scoring.FieldEmail},
			EmailFields:    []string{scoring.FieldEmail},
			ChoiceFields:   scoring.ChoiceFields,
			DateFields:     []string{scoring.FieldDeadlineDate},
			MaxFieldLength: config.MaxFieldLength,
		},
		documents: validation.DocumentRules{
			KnownFields:         scoring.DocumentFields,
			AllowedContentTypes: config.AllowedContentTypes,
			MaxFileSize:         config.MaxFileSize,
			MaxFilesPerField:    config.MaxFilesPerField,
		},
		logger:       log,
		errorHandler: apperrors.NewErrorHandler(log),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	started := time.Now()
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, apperrors.NewInvalidRequestError(fmt.Sprintf("parse input: %v", err)), started)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if errors.Is(err, ErrApplicationValidationFailed) {
		h.failJob(client, job, apperrors.NewApplicationValidationFailedError(output.Messages()), started)
		return
	}
	if err != nil {
		h.failJob(client, job, err, started)
		return
	}

	if err := camunda.CompleteJob(context.Background(), client, job.Key, output, nil); err != nil {
		h.logger.Error("failed to complete job", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err,
		})
		return
	}
	metrics.ObserveJob(TaskType, started, "")
}

// execute returns the output even when validation fails so callers can
// report every problem at once.
func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.NewTimeoutError(TaskType, err)
	}

	result, err := validation.ValidateSubmission(input.Fields, h.submission)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	validationErrors := append([]validation.ValidationError{}, result.Errors...)
	validationErrors = append(validationErrors, validation.ValidateDocuments(input.Documents, h.documents)...)

	output := &Output{
		IsValid:          len(validationErrors) == 0,
		ValidationErrors: validationErrors,
	}

	h.logger.Info("validation completed", map[string]interface{}{
		"isValid":    output.IsValid,
		"errorCount": len(validationErrors),
		"documents":  len(input.Documents),
	})

	if !output.IsValid {
		return output, fmt.Errorf("%w: %d validation errors", ErrApplicationValidationFailed, len(validationErrors))
	}
	return output, nil
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, err error, started time.Time) {
	metrics.ObserveJob(TaskType, started, string(apperrors.CodeOf(err)))
	h.errorHandler.HandleJobError(context.Background(), client, job, err)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
