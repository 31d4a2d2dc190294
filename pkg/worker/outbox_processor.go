package worker

import (
	"context"
	"time"

	"github.com/barberbook/barber-api/internal/model"
	"github.com/barberbook/barber-api/internal/repository"
	"github.com/barberbook/barber-api/pkg/logger"
	"github.com/barberbook/barber-api/pkg/messaging"
	"github.com/barberbook/barber-api/pkg/metrics"
)

// Config controls the outbox polling loop.
type Config struct {
	BatchSize    int
	PollInterval time.Duration
	Channel      string
}

func (c *Config) applyDefaults() {
	if c.BatchSize <= 0 {
		c.BatchSize = 50
	}
	if c.PollInterval <= 0 {
		c.PollInterval = 5 * time.Second
	}
	if c.Channel == "" {
		c.Channel = "bookings"
	}
}

// OutboxProcessor drains pending outbox events to the message broker. Events
// that fail to publish are marked failed with the error and are not retried;
// the status row is the audit trail.
type OutboxProcessor struct {
	repo    repository.OutboxRepository
	broker  messaging.Broker
	logger  *logger.Logger
	metrics *metrics.Metrics
	cfg     Config
}

func NewOutboxProcessor(
	repo repository.OutboxRepository,
	broker messaging.Broker,
	log *logger.Logger,
	m *metrics.Metrics,
	cfg Config,
) *OutboxProcessor {
	cfg.applyDefaults()
	return &OutboxProcessor{
		repo:    repo,
		broker:  broker,
		logger:  log,
		metrics: m,
		cfg:     cfg,
	}
}

// Start polls until the context is cancelled.
func (p *OutboxProcessor) Start(ctx context.Context) {
	ticker := time.NewTicker(p.cfg.PollInterval)
	defer ticker.Stop()

	p.logger.Info("outbox processor started",
		"batch_size", p.cfg.BatchSize,
		"poll_interval", p.cfg.PollInterval.String(),
	)

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("outbox processor stopped")
			return
		case <-ticker.C:
			if err := p.ProcessBatch(ctx); err != nil {
				p.logger.Error(err, "outbox batch failed")
			}
		}
	}
}

// ProcessBatch publishes one batch of pending events.
func (p *OutboxProcessor) ProcessBatch(ctx context.Context) error {
	events, err := p.repo.GetPendingEvents(ctx, p.cfg.BatchSize)
	if err != nil {
		return err
	}

	for _, ev := range events {
		p.process(ctx, ev)
	}
	return nil
}

func (p *OutboxProcessor) process(ctx context.Context, ev *model.OutboxEvent) {
	start := time.Now()
	defer func() {
		if p.metrics != nil {
			p.metrics.OutboxProcessingLatency.Observe(time.Since(start).Seconds())
		}
	}()

	msg := messaging.Message{Type: ev.EventType, Payload: ev.Payload}
	if err := p.broker.Publish(ctx, p.cfg.Channel, msg); err != nil {
		p.logger.Error(err, "failed to publish outbox event", "event_id", ev.ID, "event_type", ev.EventType)
		if markErr := p.repo.MarkFailed(ctx, ev.ID, err.Error()); markErr != nil {
			p.logger.Error(markErr, "failed to mark event failed", "event_id", ev.ID)
		}
		if p.metrics != nil {
			p.metrics.OutboxEventsFailed.Inc()
		}
		return
	}

	if err := p.repo.MarkProcessed(ctx, ev.ID); err != nil {
		p.logger.Error(err, "failed to mark event processed", "event_id", ev.ID)
		return
	}
	if p.metrics != nil {
		p.metrics.OutboxEventsProcessed.Inc()
	}
}
