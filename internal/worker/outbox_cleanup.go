package worker

import (
	"context"
	"time"

	"github.com/barberbook/barber-api/internal/repository"
	"github.com/barberbook/barber-api/pkg/logger"
)

// OutboxCleanupWorker prunes processed outbox events past their retention
// window so the table does not grow without bound.
type OutboxCleanupWorker struct {
	repo     repository.OutboxRepository
	logger   *logger.Logger
	retain   time.Duration
	interval time.Duration
}

func NewOutboxCleanupWorker(repo repository.OutboxRepository, log *logger.Logger, retain, interval time.Duration) *OutboxCleanupWorker {
	if retain <= 0 {
		retain = 7 * 24 * time.Hour
	}
	if interval <= 0 {
		interval = time.Hour
	}
	return &OutboxCleanupWorker{
		repo:     repo,
		logger:   log,
		retain:   retain,
		interval: interval,
	}
}

func (w *OutboxCleanupWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := w.cleanup(ctx); err != nil {
				w.logger.Error(err, "outbox cleanup failed")
			}
		}
	}
}

func (w *OutboxCleanupWorker) cleanup(ctx context.Context) error {
	cutoff := time.Now().Add(-w.retain)

	rows, err := w.repo.DeleteProcessedBefore(ctx, cutoff)
	if err != nil {
		return err
	}
	if rows > 0 {
		w.logger.Info("pruned processed outbox events", "removed", rows, "cutoff", cutoff.Format(time.RFC3339))
	}
	return nil
}
