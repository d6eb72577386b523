// internal/common/metrics/metrics.go
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Submission outcomes.
const (
	OutcomeAccepted    = "accepted"
	OutcomeInvalid     = "invalid"
	OutcomeDuplicate   = "duplicate"
	OutcomeRateLimited = "rate_limited"
	OutcomeFailed      = "failed"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	IntakeSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "benevolence_submissions_total",
			Help: "Application submissions by outcome",
		},
		[]string{"outcome"},
	)

	IntakeStepDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "benevolence_intake_step_duration_seconds",
			Help:    "Duration of each intake pipeline step",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"step"},
	)

	AutoScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "benevolence_auto_score",
			Help:    "Distribution of automatic pre-scores (0-25)",
			Buckets: prometheus.LinearBuckets(0, 5, 6),
		},
	)

	RecommendationBrackets = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "benevolence_recommendation_bracket_total",
			Help: "Scored applications by recommendation bracket",
		},
		[]string{"bracket"},
	)
)

// ObserveJob records one finished worker job. errorCode is empty on success.
func ObserveJob(taskType string, started time.Time, errorCode string) {
	WorkerJobDuration.WithLabelValues(taskType).Observe(time.Since(started).Seconds())
	if errorCode != "" {
		WorkerJobsFailed.WithLabelValues(taskType, errorCode).Inc()
		return
	}
	WorkerJobsCompleted.WithLabelValues(taskType).Inc()
}

func RecordAssessment(autoScore int, bracket string) {
	AutoScore.Observe(float64(autoScore))
	RecommendationBrackets.WithLabelValues(bracket).Inc()
}
