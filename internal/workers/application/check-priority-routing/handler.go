// internal/workers/application/check-priority-routing/handler.go
package checkpriorityrouting

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
	"benevolence-intake/internal/scoring"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"
)

const (
	TaskType = "check-priority-routing"
)

var (
	ErrReviewerLookupFailed = errors.New("REVIEWER_LOOKUP_FAILED")
	errNoReviewer           = errors.New("no active reviewer for queue")
)

const reviewerQuery = `
		SELECT name, email, COALESCE(phone, '')
		FROM reviewers
		WHERE queue = $1 AND active
		ORDER BY id
		LIMIT 1`

type Handler struct {
	config       *Config
	db           *sql.DB
	redis        redis.Cmdable
	logger       logger.Logger
	errorHandler *apperrors.ErrorHandler
}

func NewHandler(config *Config, db *sql.DB, redis redis.Cmdable, log logger.Logger) *Handler {
	if config == nil {
		config = LoadConfig()
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		db:           db,
		redis:        redis,
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

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	priority := DeterminePriority(input.Bracket, input.UrgencyBonus)

	reviewer, source, err := h.getReviewer(ctx, priority)
	if err != nil {
		if h.config.FallbackEmail == "" {
			return nil, fmt.Errorf("%w: queue %s: %v", ErrReviewerLookupFailed, priority, err)
		}
		h.logger.Warn("reviewer lookup failed, using fallback reviewer", map[string]interface{}{
			"queue": priority,
			"error": err,
		})
		reviewer = models.Reviewer{Email: h.config.FallbackEmail, Queue: priority}
		source = SourceFallback
	}

	h.logger.Info("priority routing determined", map[string]interface{}{
		"applicationId":  input.ApplicationID,
		"bracket":        input.Bracket,
		"urgencyBonus":   input.UrgencyBonus,
		"priority":       priority,
		"reviewerSource": source,
	})

	return &Output{
		ApplicationID:  input.ApplicationID,
		Priority:       priority,
		Reviewer:       reviewer,
		ReviewerSource: source,
	}, nil
}

// DeterminePriority maps the recommendation bracket and deadline urgency
// onto a review queue.
func DeterminePriority(bracket string, urgencyBonus int) string {
	switch {
	case bracket == scoring.BracketHighNeed || urgencyBonus >= 2:
		return models.PriorityHigh
	case bracket == scoring.BracketModerateNeed || urgencyBonus == 1:
		return models.PriorityMedium
	default:
		return models.PriorityLow
	}
}

func (h *Handler) getReviewer(ctx context.Context, queue string) (models.Reviewer, string, error) {
	cacheKey := reviewerCacheKey(queue)

	var cached models.Reviewer
	if h.redis != nil {
		found, err := database.GetJSON(ctx, h.redis, cacheKey, &cached)
		if err != nil {
			h.logger.Warn("reviewer cache read failed", map[string]interface{}{
				"key":   cacheKey,
				"error": err,
			})
		}
		if found && cached.Email != "" {
			return cached, SourceCache, nil
		}
	}

	if h.db == nil {
		return models.Reviewer{}, "", errNoReviewer
	}

	reviewer := models.Reviewer{Queue: queue}
	err := h.db.QueryRowContext(ctx, reviewerQuery, queue).
		Scan(&reviewer.Name, &reviewer.Email, &reviewer.Phone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Reviewer{}, "", errNoReviewer
		}
		return models.Reviewer{}, "", fmt.Errorf("database error: %w", err)
	}

	if h.redis != nil {
		if err := database.SetJSON(ctx, h.redis, cacheKey, reviewer, h.config.CacheTTL); err != nil {
			h.logger.Warn("reviewer cache write failed", map[string]interface{}{
				"key":   cacheKey,
				"error": err,
			})
		}
	}
	return reviewer, SourceDatabase, nil
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
