// internal/workers/application/handlers.go
package application

import (
	"database/sql"

	"benevolence-intake/internal/common/camunda"
	"benevolence-intake/internal/common/config"
	"benevolence-intake/internal/common/logger"
	ces "benevolence-intake/internal/workers/application/check-eligibility-score"
	cpr "benevolence-intake/internal/workers/application/check-priority-routing"
	car "benevolence-intake/internal/workers/application/create-application-record"
	idx "benevolence-intake/internal/workers/application/index-application"
	sn "benevolence-intake/internal/workers/application/send-notification"
	vad "benevolence-intake/internal/workers/application/validate-application-data"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
)

// Dependencies are the shared clients the step handlers need.
type Dependencies struct {
	DB            *sql.DB
	Redis         redis.Cmdable
	Elasticsearch *elasticsearch.Client
	SES           sn.SESService
	SNS           sn.SNSService
}

// Handlers holds one handler per application step. Both the worker manager
// and the intake server build them the same way.
type Handlers struct {
	Validate *vad.Handler
	Score    *ces.Handler
	Route    *cpr.Handler
	Persist  *car.Handler
	Index    *idx.Handler
	Notify   *sn.Handler
}

func NewHandlers(cfg *config.Config, deps Dependencies, log logger.Logger) *Handlers {
	return &Handlers{
		Validate: vad.NewHandler(vad.ConfigFromIntake(cfg.Intake), log),
		Score:    ces.NewHandler(ces.ConfigFrom(cfg), log),
		Route:    cpr.NewHandler(cpr.ConfigFrom(cfg), deps.DB, deps.Redis, log),
		Persist:  car.NewHandler(car.ConfigFrom(cfg), deps.DB, log),
		Index:    idx.NewHandler(idx.ConfigFrom(cfg), deps.Elasticsearch, log),
		Notify:   sn.NewHandler(sn.ConfigFrom(cfg), deps.SES, deps.SNS, log),
	}
}

// JobHandlers maps each Zeebe task type to its handler.
func (h *Handlers) JobHandlers() map[string]camunda.JobHandler {
	return map[string]camunda.JobHandler{
		vad.TaskType: h.Validate.Handle,
		ces.TaskType: h.Score.Handle,
		cpr.TaskType: h.Route.Handle,
		car.TaskType: h.Persist.Handle,
		idx.TaskType: h.Index.Handle,
		sn.TaskType:  h.Notify.Handle,
	}
}
