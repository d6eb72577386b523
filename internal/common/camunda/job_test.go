// internal/common/camunda/job_test.go
package camunda

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"testing"

	"benevolence-intake/internal/common/errors"

	"github.com/camunda/zeebe/clients/go/v8/pkg/commands"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Fake job client
// ==========================

type fakeJobClient struct {
	worker.JobClient
	complete *fakeCompleteCommand
}

func (f *fakeJobClient) NewCompleteJobCommand() commands.CompleteJobCommandStep1 {
	return f.complete
}

// fakeCompleteCommand returns sendErrs in order, then succeeds.
type fakeCompleteCommand struct {
	commands.CompleteJobCommandStep2
	jobKey    int64
	variables string
	sendErrs  []error
	sends     int
}

func (c *fakeCompleteCommand) JobKey(key int64) commands.CompleteJobCommandStep2 {
	c.jobKey = key
	return c
}

func (c *fakeCompleteCommand) VariablesFromObject(v interface{}) (commands.DispatchCompleteJobCommand, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	c.variables = string(b)
	return c, nil
}

func (c *fakeCompleteCommand) Send(context.Context) (*pb.CompleteJobResponse, error) {
	c.sends++
	if c.sends <= len(c.sendErrs) {
		return nil, c.sendErrs[c.sends-1]
	}
	return &pb.CompleteJobResponse{}, nil
}

// ==========================
// CompleteJob
// ==========================

func TestCompleteJob(t *testing.T) {
	tests := []struct {
		name          string
		sendErrs      []error
		expectedSends int
		expectedCode  errors.ErrorCode
	}{
		{
			name:          "first attempt succeeds",
			expectedSends: 1,
		},
		{
			name:          "gateway briefly unavailable",
			sendErrs:      []error{stderrors.New("rpc error: code = Unavailable"), stderrors.New("context deadline exceeded")},
			expectedSends: 3,
		},
		{
			name:          "job already gone",
			sendErrs:      []error{stderrors.New("rpc error: code = NotFound desc = job not found")},
			expectedSends: 1,
			expectedCode:  errors.ErrCodeInternal,
		},
		{
			name: "gateway stays down",
			sendErrs: []error{
				stderrors.New("connection refused"),
				stderrors.New("connection refused"),
				stderrors.New("connection refused"),
			},
			expectedSends: 3,
			expectedCode:  errors.ErrCodeExternalService,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &fakeCompleteCommand{sendErrs: tt.sendErrs}
			client := &fakeJobClient{complete: cmd}

			err := CompleteJob(context.Background(), client, 42, map[string]string{"status": "submitted"}, testRetry(2))

			assert.Equal(t, int64(42), cmd.jobKey)
			assert.JSONEq(t, `{"status":"submitted"}`, cmd.variables)
			assert.Equal(t, tt.expectedSends, cmd.sends)
			if tt.expectedCode == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.expectedCode, errors.CodeOf(err))
		})
	}
}

func TestCompleteJob_UnencodableVariables(t *testing.T) {
	cmd := &fakeCompleteCommand{}

	err := CompleteJob(context.Background(), &fakeJobClient{complete: cmd}, 7, map[string]interface{}{"bad": make(chan int)}, testRetry(2))

	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidRequest, errors.CodeOf(err))
	assert.Equal(t, 0, cmd.sends)
}
