// internal/workers/application/send-notification/handler.go
package sendnotification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	awsclients "benevolence-intake/internal/common/aws"
	"benevolence-intake/internal/common/camunda"
	apperrors "benevolence-intake/internal/common/errors"
	"benevolence-intake/internal/common/logger"
	"benevolence-intake/internal/common/metrics"
	"benevolence-intake/internal/models"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "send-notification"
)

var (
	ErrNotificationSendFailed = errors.New("NOTIFICATION_SEND_FAILED")
)

// Define interfaces for mocking
type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type Handler struct {
	config       *Config
	sesClient    SESService
	snsClient    SNSService
	logger       logger.Logger
	errorHandler *apperrors.ErrorHandler
	now          func() time.Time
}

func NewHandler(config *Config, sesClient SESService, snsClient SNSService, log logger.Logger) *Handler {
	if config == nil {
		config = LoadConfig()
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		sesClient:    sesClient,
		snsClient:    snsClient,
		logger:       log,
		errorHandler: apperrors.NewErrorHandler(log),
		now:          time.Now,
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

// execute never fails on delivery: a rejected email or SMS is reported as
// status "failed" so the process can continue.
func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	subject, body, err := RenderEmail(input)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotificationSendFailed, err)
	}

	sentAt := h.now().UTC()
	output := &Output{
		NotificationID: uuid.New().String(),
		SentAt:         sentAt.Format(time.RFC3339),
		Deliveries:     []models.Notification{},
	}

	reviewer := input.Reviewer
	if h.config.EmailEnabled && reviewer.Email != "" {
		n := h.deliver(models.ChannelEmail, reviewer.Email, subject, sentAt, func() error {
			_, err := h.sesClient.SendEmail(ctx, awsclients.TextEmail(h.config.FromEmail, reviewer.Email, subject, body))
			return err
		})
		output.Deliveries = append(output.Deliveries, n)
	}

	// SMS only if enabled AND phone exists AND priority matches
	if h.config.SMSEnabled && reviewer.Phone != "" && input.Priority == h.config.SMSPriority {
		n := h.deliver(models.ChannelSMS, reviewer.Phone, "", sentAt, func() error {
			_, err := h.snsClient.Publish(ctx, awsclients.TransactionalSMS(reviewer.Phone, RenderSMS(input), h.config.SenderID))
			return err
		})
		output.Deliveries = append(output.Deliveries, n)
	}

	output.Status = overallStatus(output.Deliveries)
	h.logger.Info("reviewer notification processed", map[string]interface{}{
		"applicationId":  input.ApplicationID,
		"notificationId": output.NotificationID,
		"status":         output.Status,
		"deliveries":     len(output.Deliveries),
	})
	return output, nil
}

func (h *Handler) deliver(channel, recipient, subject string, sentAt time.Time, send func() error) models.Notification {
	n := models.Notification{
		ID:        uuid.New().String(),
		Recipient: recipient,
		Channel:   channel,
		Status:    StatusSent,
		Subject:   subject,
		SentAt:    sentAt,
	}
	if err := send(); err != nil {
		stdErr := apperrors.NewNotificationSendFailedError(channel, err)
		h.logger.Error(channel+" send failed", map[string]interface{}{
			"error":     err,
			"errorCode": stdErr.Code,
			"recipient": recipient,
		})
		n.Status = StatusFailed
		n.FailureText = err.Error()
	}
	return n
}

// overallStatus is failed if any channel failed, disabled if nothing was
// attempted, and sent otherwise.
func overallStatus(deliveries []models.Notification) string {
	if len(deliveries) == 0 {
		return StatusDisabled
	}
	for _, d := range deliveries {
		if d.Status == StatusFailed {
			return StatusFailed
		}
	}
	return StatusSent
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
