// internal/workers/application/check-eligibility-score/handler.go
package checkeligibilityscore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"benevolence-intake/internal/common/camunda"
	apperrors "benevolence-intake/internal/common/errors"
	"benevolence-intake/internal/common/logger"
	"benevolence-intake/internal/common/metrics"
	"benevolence-intake/internal/scoring"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "check-eligibility-score"
)

type Handler struct {
	config       *Config
	logger       logger.Logger
	errorHandler *apperrors.ErrorHandler
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	if config == nil {
		config = LoadConfig()
	}
	if config.Location == nil {
		config.Location = time.UTC
	}
	if config.Now == nil {
		config.Now = time.Now
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
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
	if err != nil {
		h.failJob(client, job, err, started)
		return
	}

	h.completeJob(client, job, output, started)
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	now := h.config.Now()
	if input.EvaluatedAt != nil {
		now = *input.EvaluatedAt
	}
	now = now.In(h.config.Location)

	files := make([]scoring.UploadedFile, 0, len(input.Documents))
	for _, d := range input.Documents {
		files = append(files, scoring.UploadedFile{FieldName: d.FieldName, Filename: d.Filename})
	}

	assessment := scoring.EvaluateSubmission(input.Fields, files, now)
	rec := assessment.Recommendation
	metrics.RecordAssessment(rec.AutoScore, rec.Bracket)

	h.logger.Info("eligibility score calculated", map[string]interface{}{
		"applicationId": input.ApplicationID,
		"autoScore":     rec.AutoScore,
		"bracket":       rec.Bracket,
		"breakdown": map[string]int{
			"completeness": assessment.Completeness.Score,
			"financial":    assessment.Financial.Score,
			"crisis":       assessment.Crisis.Score,
			"alternatives": assessment.Alternatives.Score,
		},
	})

	return &Output{
		ApplicationID: input.ApplicationID,
		Assessment:    assessment,
		AutoScore:     rec.AutoScore,
		Bracket:       rec.Bracket,
		CrisisScore:   assessment.Crisis.Score,
		UrgencyBonus:  assessment.Crisis.UrgencyBonus,
	}, nil
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output, started time.Time) {
	if err := camunda.CompleteJob(context.Background(), client, job.Key, output, nil); err != nil {
		h.logger.Error("failed to complete job", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err,
		})
		return
	}
	metrics.ObserveJob(TaskType, started, "")
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, err error, started time.Time) {
	metrics.ObserveJob(TaskType, started, string(apperrors.CodeOf(err)))
	h.errorHandler.HandleJobError(context.Background(), client, job, err)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
