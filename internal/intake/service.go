// internal/intake/service.go
package intake

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	apperrors "benevolence-intake/internal/common/errors"
	"benevolence-intake/internal/common/logger"
	"benevolence-intake/internal/common/metrics"
	"benevolence-intake/internal/common/observability"
	"benevolence-intake/internal/common/validation"
	"benevolence-intake/internal/models"
	checkeligibilityscore "benevolence-intake/internal/workers/application/check-eligibility-score"
	checkpriorityrouting "benevolence-intake/internal/workers/application/check-priority-routing"
	createapplicationrecord "benevolence-intake/internal/workers/application/create-application-record"
	indexapplication "benevolence-intake/internal/workers/application/index-application"
	sendnotification "benevolence-intake/internal/workers/application/send-notification"
	validateapplicationdata "benevolence-intake/internal/workers/application/validate-application-data"

	"github.com/google/uuid"
)

// Result is what the applicant is told. Sub-scores stay internal.
type Result struct {
	ApplicationID      string `json:"applicationId"`
	Status             string `json:"status"`
	CreatedAt          string `json:"createdAt"`
	AutoScore          int    `json:"autoScore"`
	Bracket            string `json:"bracket"`
	Priority           string `json:"-"`
	NotificationStatus string `json:"-"`
}

// InvalidSubmissionError carries every field problem found in a submission.
type InvalidSubmissionError struct {
	Errors []validation.ValidationError
}

func (e *InvalidSubmissionError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, v := range e.Errors {
		msgs = append(msgs, v.Field+": "+v.Message)
	}
	return fmt.Sprintf("%s: %s", apperrors.ErrCodeApplicationValidationFailed, strings.Join(msgs, "; "))
}

type Config struct {
	StepTimeout time.Duration
}

func LoadConfig() *Config {
	return &Config{StepTimeout: 30 * time.Second}
}

// Service runs a submission through every pipeline step in process.
type Service struct {
	config  *Config
	steps   Steps
	limiter *RateLimiter
	obs     *observability.Observability
	logger  logger.Logger
	newID   func() string
}

func NewService(config *Config, steps Steps, log logger.Logger) *Service {
	if config == nil {
		config = LoadConfig()
	}
	return &Service{
		config: config,
		steps:  steps,
		logger: log.WithFields(map[string]interface{}{"component": "intake"}),
		newID:  func() string { return uuid.New().String() },
	}
}

// WithRateLimiter limits submissions per remote IP.
func (s *Service) WithRateLimiter(l *RateLimiter) *Service {
	s.limiter = l
	return s
}

func (s *Service) WithObservability(o *observability.Observability) *Service {
	s.obs = o
	return s
}

// Submit validates, scores, routes, and stores one application, then
// indexes it and notifies the reviewer. Only the first four steps can fail
// the submission.
func (s *Service) Submit(ctx context.Context, sub models.Submission) (*Result, error) {
	result, err := s.submit(ctx, sub)
	metrics.IntakeSubmissions.WithLabelValues(outcomeOf(err)).Inc()
	return result, err
}

func (s *Service) submit(ctx context.Context, sub models.Submission) (*Result, error) {
	if err := s.checkRate(ctx, sub.RemoteIP); err != nil {
		return nil, err
	}

	appID := s.newID()
	log := s.logger.WithFields(map[string]interface{}{"applicationId": appID})

	validated, err := runStep(ctx, s, StepValidate, s.steps.Validate, &validateapplicationdata.Input{
		Fields:    sub.Fields,
		Documents: sub.Documents,
	})
	if validated != nil && !validated.IsValid {
		log.Info("submission rejected", map[string]interface{}{"errors": len(validated.ValidationErrors)})
		return nil, &InvalidSubmissionError{Errors: validated.ValidationErrors}
	}
	if err != nil {
		return nil, err
	}

	scored, err := runStep(ctx, s, StepScore, s.steps.Score, &checkeligibilityscore.Input{
		ApplicationID: appID,
		Fields:        sub.Fields,
		Documents:     sub.Documents,
	})
	if err != nil {
		return nil, err
	}

	routed, err := runStep(ctx, s, StepRoute, s.steps.Route, &checkpriorityrouting.Input{
		ApplicationID: appID,
		Bracket:       scored.Bracket,
		UrgencyBonus:  scored.UrgencyBonus,
		CrisisScore:   scored.CrisisScore,
	})
	if err != nil {
		// Routing only picks who hears about it; the record still gets a priority.
		log.Warn("reviewer routing failed", map[string]interface{}{"error": err})
		routed = &checkpriorityrouting.Output{
			ApplicationID: appID,
			Priority:      checkpriorityrouting.DeterminePriority(scored.Bracket, scored.UrgencyBonus),
		}
	}

	stored, err := runStep(ctx, s, StepPersist, s.steps.Persist, &createapplicationrecord.Input{
		ApplicationID: appID,
		Fields:        sub.Fields,
		Documents:     sub.Documents,
		Assessment:    scored.Assessment,
		Priority:      routed.Priority,
	})
	if err != nil {
		log.Error("application not stored", map[string]interface{}{"error": err})
		return nil, err
	}

	if s.steps.Index != nil {
		_, err := runStep(ctx, s, StepIndex, s.steps.Index, &indexapplication.Input{
			ApplicationID: appID,
			Fields:        sub.Fields,
			Assessment:    scored.Assessment,
			Priority:      routed.Priority,
			CreatedAt:     stored.CreatedAt,
		})
		if err != nil {
			log.Warn("search indexing failed", map[string]interface{}{"error": err})
		}
	}

	notificationStatus := sendnotification.StatusDisabled
	if s.steps.Notify != nil {
		sent, err := runStep(ctx, s, StepNotify, s.steps.Notify, &sendnotification.Input{
			ApplicationID: appID,
			Fields:        sub.Fields,
			Documents:     models.Descriptors(sub.Documents),
			Assessment:    scored.Assessment,
			Priority:      routed.Priority,
			Reviewer:      routed.Reviewer,
		})
		switch {
		case err != nil:
			notificationStatus = sendnotification.StatusFailed
			log.Warn("reviewer notification failed", map[string]interface{}{"error": err})
		case sent.Status == sendnotification.StatusFailed:
			notificationStatus = sent.Status
			log.Warn("reviewer notification not delivered", map[string]interface{}{"notificationId": sent.NotificationID})
		default:
			notificationStatus = sent.Status
		}
	}

	log.Info("application submitted", map[string]interface{}{
		"autoScore":    scored.AutoScore,
		"bracket":      scored.Bracket,
		"priority":     routed.Priority,
		"notification": notificationStatus,
	})

	return &Result{
		ApplicationID:      stored.ApplicationID,
		Status:             stored.ApplicationStatus,
		CreatedAt:          stored.CreatedAt,
		AutoScore:          scored.AutoScore,
		Bracket:            scored.Bracket,
		Priority:           routed.Priority,
		NotificationStatus: notificationStatus,
	}, nil
}

// checkRate fails open when Redis is unavailable.
func (s *Service) checkRate(ctx context.Context, remoteIP string) error {
	if s.limiter == nil || remoteIP == "" {
		return nil
	}
	allowed, retryAfter, err := s.limiter.Allow(ctx, remoteIP)
	if err != nil {
		s.logger.Warn("rate limit check failed", map[string]interface{}{"error": err})
		return nil
	}
	if !allowed {
		return apperrors.NewRateLimitedError(retryAfter)
	}
	return nil
}

func runStep[I, O any](ctx context.Context, s *Service, name string, step Step[I, O], input *I) (*O, error) {
	stepCtx, cancel := context.WithTimeout(ctx, s.config.StepTimeout)
	defer cancel()

	started := time.Now()
	out, err := step.Execute(stepCtx, input)
	elapsed := time.Since(started)

	status := "ok"
	if err != nil {
		status = string(apperrors.CodeOf(err))
	}
	metrics.IntakeStepDuration.WithLabelValues(name).Observe(elapsed.Seconds())
	s.obs.RecordStep(ctx, name, elapsed, status)
	return out, err
}

func outcomeOf(err error) string {
	if err == nil {
		return metrics.OutcomeAccepted
	}
	var invalid *InvalidSubmissionError
	if errors.As(err, &invalid) {
		return metrics.OutcomeInvalid
	}
	switch apperrors.CodeOf(err) {
	case apperrors.ErrCodeDuplicateApplication:
		return metrics.OutcomeDuplicate
	case apperrors.ErrCodeRateLimited:
		return metrics.OutcomeRateLimited
	}
	return metrics.OutcomeFailed
}
