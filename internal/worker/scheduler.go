package worker

import (
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// NewScheduler registers a periodic refresh on cronSpec. It returns nil when
// cronSpec is empty.
func NewScheduler(redisOpt asynq.RedisConnOpt, cronSpec string, maxRetry int, timeout time.Duration, logger *zap.SugaredLogger) (*asynq.Scheduler, error) {
	if cronSpec == "" {
		return nil, nil
	}

	scheduler := asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{
		Location: time.UTC,
		PostEnqueueFunc: func(info *asynq.TaskInfo, err error) {
			if err != nil {
				logger.Warnw("Scheduled refresh not enqueued", "error", err)
				return
			}
			logger.Infow("Scheduled refresh enqueued", "task_id", info.ID)
		},
	})

	entryID, err := scheduler.Register(cronSpec, NewRefreshTask("", maxRetry, timeout))
	if err != nil {
		return nil, fmt.Errorf("register refresh schedule %q: %w", cronSpec, err)
	}

	logger.Infow("Refresh scheduled", "cron", cronSpec, "entry_id", entryID)
	return scheduler, nil
}
