package poller

import (
	"context"
	"time"

	"go.uber.org/zap"

	"videoeditor/config"
	"videoeditor/types"
)

// StatusFetcher returns the current snapshot of a task
type StatusFetcher interface {
	TaskStatus(ctx context.Context, taskID string) (*types.TaskStatusResponse, error)
}

// Poller repeatedly fetches a task's status until it finishes
type Poller struct {
	fetcher  StatusFetcher
	interval time.Duration
	logger   *zap.Logger
}

// New creates a poller. A non-positive interval falls back to the default.
func New(fetcher StatusFetcher, interval time.Duration, logger *zap.Logger) *Poller {
	if interval <= 0 {
		interval = config.DefaultPollInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Poller{fetcher: fetcher, interval: interval, logger: logger}
}

// Interval returns the delay between two status requests
func (p *Poller) Interval() time.Duration {
	return p.interval
}

// Poll fetches the status of taskID every interval, the first time one
// interval after the call, and hands each snapshot to onUpdate. It returns the
// terminal snapshot, the first fetch error, or ctx.Err() when cancelled.
// Returning false from onUpdate stops polling early.
func (p *Poller) Poll(ctx context.Context, taskID string, onUpdate func(*types.TaskStatusResponse) bool) (*types.TaskStatusResponse, error) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	polls := 0
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("Polling cancelled", zap.String("task_id", taskID), zap.Int("polls", polls))
			return nil, ctx.Err()
		case <-ticker.C:
		}

		polls++
		status, err := p.fetcher.TaskStatus(ctx, taskID)
		if err != nil {
			p.logger.Warn("Status request failed",
				zap.String("task_id", taskID),
				zap.Int("polls", polls),
				zap.Error(err),
			)
			return nil, err
		}

		p.logger.Debug("Task status",
			zap.String("task_id", taskID),
			zap.String("status", string(status.Status)),
			zap.String("message", status.Message),
		)

		if onUpdate != nil && !onUpdate(status) {
			return status, nil
		}
		if status.Status.IsTerminal() {
			p.logger.Info("Task finished",
				zap.String("task_id", taskID),
				zap.String("status", string(status.Status)),
				zap.Int("polls", polls),
			)
			return status, nil
		}
	}
}
