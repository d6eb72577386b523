// internal/intake/steps.go
package intake

import (
	"context"

	checkeligibilityscore "benevolence-intake/internal/workers/application/check-eligibility-score"
	checkpriorityrouting "benevolence-intake/internal/workers/application/check-priority-routing"
	createapplicationrecord "benevolence-intake/internal/workers/application/create-application-record"
	indexapplication "benevolence-intake/internal/workers/application/index-application"
	sendnotification "benevolence-intake/internal/workers/application/send-notification"
	validateapplicationdata "benevolence-intake/internal/workers/application/validate-application-data"
)

// Step is one pipeline stage. Every worker Handler satisfies it through its
// Execute method.
type Step[I, O any] interface {
	Execute(ctx context.Context, input *I) (*O, error)
}

// StepFunc adapts a function to Step.
type StepFunc[I, O any] func(ctx context.Context, input *I) (*O, error)

func (f StepFunc[I, O]) Execute(ctx context.Context, input *I) (*O, error) {
	return f(ctx, input)
}

// Steps wires the pipeline. Index and Notify may be nil.
type Steps struct {
	Validate Step[validateapplicationdata.Input, validateapplicationdata.Output]
	Score    Step[checkeligibilityscore.Input, checkeligibilityscore.Output]
	Route    Step[checkpriorityrouting.Input, checkpriorityrouting.Output]
	Persist  Step[createapplicationrecord.Input, createapplicationrecord.Output]
	Index    Step[indexapplication.Input, indexapplication.Output]
	Notify   Step[sendnotification.Input, sendnotification.Output]
}

// Step names used for metrics and logs.
const (
	StepValidate = "validate"
	StepScore    = "score"
	StepRoute    = "route"
	StepPersist  = "persist"
	StepIndex    = "index"
	StepNotify   = "notify"
)
