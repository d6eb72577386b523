// internal/common/camunda/job.go
package camunda

import (
	"context"
	"fmt"

	"benevolence-intake/internal/common/errors"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

// CompleteJob reports jobKey as done with variables as its output. Transient
// gateway errors are retried per retry, or DefaultRetryConfig when nil.
func CompleteJob(ctx context.Context, client worker.JobClient, jobKey int64, variables interface{}, retry *RetryConfig) error {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(jobKey).
		VariablesFromObject(variables)
	if err != nil {
		return errors.NewInvalidRequestError(fmt.Sprintf("encode job variables: %v", err))
	}

	return executeWithRetry(ctx, retry, func(ctx context.Context) error {
		_, err := cmd.Send(ctx)
		return err
	}, "complete-job")
}
