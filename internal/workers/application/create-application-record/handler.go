// internal/workers/application/create-application-record/handler.go
package createapplicationrecord

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"benevolence-intake/internal/common/camunda"
	"benevolence-intake/internal/common/database"
	apperrors "benevolence-intake/internal/common/errors"
	"benevolence-intake/internal/common/logger"
	"benevolence-intake/internal/common/metrics"
	"benevolence-intake/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "create-application-record"
)

var (
	ErrDatabaseInsertFailed = errors.New("DATABASE_INSERT_FAILED")
	ErrDuplicateApplication = errors.New("DUPLICATE_APPLICATION")
)

type Handler struct {
	config       *Config
	db           *sql.DB
	logger       logger.Logger
	errorHandler *apperrors.ErrorHandler
}

func NewHandler(config *Config, db *sql.DB, log logger.Logger) *Handler {
	if config == nil {
		config = LoadConfig()
	}
	if config.Now == nil {
		config.Now = time.Now
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		db:           db,
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

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	now := h.config.Now().UTC()
	fingerprint := Fingerprint(input.Fields)

	if h.config.DuplicateWindow > 0 {
		var existingID string
		err := h.db.QueryRowContext(ctx, `
			SELECT id FROM applications
			WHERE fingerprint = $1 AND created_at >= $2
			ORDER BY created_at DESC
			LIMIT 1`, fingerprint, now.Add(-h.config.DuplicateWindow)).Scan(&existingID)
		switch {
		case err == nil:
			return nil, fmt.Errorf("%w: %w", ErrDuplicateApplication, apperrors.NewDuplicateApplicationError(existingID))
		case !errors.Is(err, sql.ErrNoRows):
			return nil, fmt.Errorf("%w: duplicate check failed: %v", ErrDatabaseInsertFailed, err)
		}
	}

	appID := input.ApplicationID
	if appID == "" {
		appID = uuid.New().String()
	}
	applicant := ApplicantFrom(input.Fields)

	fieldsJSON, err := json.Marshal(input.Fields)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal application data: %v", ErrDatabaseInsertFailed, err)
	}
	assessmentJSON, err := json.Marshal(input.Assessment)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal assessment: %v", ErrDatabaseInsertFailed, err)
	}

	err = database.WithTx(ctx, h.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO applications (
				id, fingerprint, first_name, last_name, email, application_data,
				assessment, auto_score, bracket, priority, status, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $12)`,
			appID,
			fingerprint,
			applicant.FirstName,
			applicant.LastName,
			applicant.Email,
			fieldsJSON,
			assessmentJSON,
			input.Recommendation.AutoScore,
			input.Recommendation.Bracket,
			input.Priority,
			models.StatusSubmitted,
			now,
		)
		if err != nil {
			return fmt.Errorf("insert application: %w", err)
		}

		for _, doc := range input.Documents {
			content := doc.Content
			if content == nil {
				content = []byte{}
			}
			size := doc.Size
			if size == 0 {
				size = int64(len(content))
			}
			_, err := tx.ExecContext(ctx, `
				INSERT INTO application_documents (
					id, application_id, field_name, filename, content_type, size_bytes, content, created_at
				) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
				uuid.New().String(),
				appID,
				doc.FieldName,
				doc.Filename,
				doc.ContentType,
				size,
				content,
				now,
			)
			if err != nil {
				return fmt.Errorf("insert document %s: %w", doc.FieldName, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseInsertFailed, err)
	}

	h.writeAudit(ctx, appID, input, now)

	h.logger.Info("application record created", map[string]interface{}{
		"applicationId": appID,
		"autoScore":     input.Recommendation.AutoScore,
		"bracket":       input.Recommendation.Bracket,
		"priority":      input.Priority,
		"documents":     len(input.Documents),
	})

	return &Output{
		ApplicationID:     appID,
		ApplicationStatus: models.StatusSubmitted,
		CreatedAt:         now.Format(time.RFC3339),
		Fingerprint:       fingerprint,
		DocumentCount:     len(input.Documents),
	}, nil
}

// writeAudit records the creation event. Failures are logged only.
func (h *Handler) writeAudit(ctx context.Context, appID string, input *Input, now time.Time) {
	auditDetailsJSON, err := json.Marshal(map[string]interface{}{
		"autoScore": input.Recommendation.AutoScore,
		"bracket":   input.Recommendation.Bracket,
		"priority":  input.Priority,
		"documents": models.Descriptors(input.Documents),
	})
	if err != nil {
		h.logger.Warn("failed to marshal audit log details", map[string]interface{}{
			"error": err,
		})
		auditDetailsJSON = []byte("{}")
	}

	_, err = h.db.ExecContext(ctx, `
		INSERT INTO audit_log (event_type, resource_type, resource_id, details, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		"application_created",
		"application",
		appID,
		auditDetailsJSON,
		now,
	)
	if err != nil {
		h.logger.Warn("audit log insert failed", map[string]interface{}{
			"error":         err,
			"applicationId": appID,
		})
	}
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
	h.logger.Info("job completed successfully", map[string]interface{}{
		"jobKey": job.Key,
	})
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, err error, started time.Time) {
	metrics.ObserveJob(TaskType, started, string(apperrors.CodeOf(err)))
	h.errorHandler.HandleJobError(context.Background(), client, job, err)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
