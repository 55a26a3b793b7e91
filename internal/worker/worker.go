// Package worker implements background refresh of the rate document.
package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"ratehistory/internal/service"
)

// TaskTypeRefreshRates is the Asynq task type for document refresh jobs.
const TaskTypeRefreshRates = "rates:refresh"

// Refresher is the part of the service a refresh task needs.
type Refresher interface {
	Refresh(ctx context.Context) (*service.RefreshResult, error)
}

// NewRefreshHandler returns a function to handle refresh tasks.
func NewRefreshHandler(svc Refresher, logger *zap.SugaredLogger) func(context.Context, *asynq.Task) error {
	return func(ctx context.Context, t *asynq.Task) error {
		if len(t.Payload()) > 0 {
			logger.Errorw("Invalid task payload", "type", t.Type(), "payload", string(t.Payload()))
			return fmt.Errorf("%w: unexpected payload", asynq.SkipRetry)
		}
		requestID, _ := asynq.GetTaskID(ctx)

		res, err := svc.Refresh(ctx)
		if err != nil {
			logger.Errorw("Task processing failed", "request_id", requestID, "error", err)
			return err
		}

		logger.Infow("Task completed",
			"request_id", requestID,
			"sheets", res.Sheets,
			"duration", res.Duration,
		)
		return nil
	}
}

// AsynqEnqueuer enqueues refresh tasks with retry, timeout and uniqueness options.
type AsynqEnqueuer struct {
	client   *asynq.Client
	maxRetry int
	timeout  time.Duration
}

// NewAsynqEnqueuer creates a new AsynqEnqueuer with the given client, retry limit, and task timeout duration.
func NewAsynqEnqueuer(client *asynq.Client, maxRetry int, timeout time.Duration) *AsynqEnqueuer {
	return &AsynqEnqueuer{
		client:   client,
		maxRetry: maxRetry,
		timeout:  timeout,
	}
}

// NewRefreshTask builds a refresh task. Refreshes carry no payload, so the
// uniqueness lock covers every refresh and at most one is queued within the
// task timeout. A non-empty requestID becomes the task ID.
func NewRefreshTask(requestID string, maxRetry int, timeout time.Duration) *asynq.Task {
	opts := []asynq.Option{
		asynq.MaxRetry(maxRetry),
		asynq.Timeout(timeout),
		asynq.Unique(timeout),
	}
	if requestID != "" {
		opts = append(opts, asynq.TaskID(requestID))
	}
	return asynq.NewTask(TaskTypeRefreshRates, nil, opts...)
}

// EnqueueRefreshTask enqueues a refresh. A duplicate within the uniqueness
// window is reported as service.ErrRefreshPending.
func (e *AsynqEnqueuer) EnqueueRefreshTask(ctx context.Context, requestID string) error {
	task := NewRefreshTask(requestID, e.maxRetry, e.timeout)

	_, err := e.client.EnqueueContext(ctx, task)
	if errors.Is(err, asynq.ErrDuplicateTask) || errors.Is(err, asynq.ErrTaskIDConflict) {
		return fmt.Errorf("%w: %w", service.ErrRefreshPending, err)
	}
	return err
}

var _ service.TaskEnqueuer = (*AsynqEnqueuer)(nil)
