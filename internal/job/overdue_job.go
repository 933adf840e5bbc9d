package job

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// OverdueNotifier sends the overdue notices for every task that needs one
type OverdueNotifier interface {
	NotifyOverdue(ctx context.Context) (int, error)
}

// OverdueJob notifies assignees of tasks that passed their due date
type OverdueJob struct {
	notifier OverdueNotifier
	timeout  time.Duration
	logger   *zap.Logger
}

// NewOverdueJob creates a new OverdueJob instance. A non-positive timeout
// falls back to one minute.
func NewOverdueJob(notifier OverdueNotifier, timeout time.Duration, logger *zap.Logger) *OverdueJob {
	if timeout <= 0 {
		timeout = time.Minute
	}
	return &OverdueJob{
		notifier: notifier,
		timeout:  timeout,
		logger:   logger,
	}
}

// Run executes one overdue scan
func (j *OverdueJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()
	j.logger.Info("Starting overdue task scan")

	handled, err := j.notifier.NotifyOverdue(ctx)
	if err != nil {
		j.logger.Error("Overdue task scan failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)),
		)
		return
	}

	j.logger.Info("Overdue task scan completed",
		zap.Int("tasks_notified", handled),
		zap.Duration("duration", time.Since(start)),
	)
}
