package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/barberbook/barber-api/internal/model"
	"github.com/barberbook/barber-api/internal/repository"
)

// Booking lifecycle event types published through the outbox.
const (
	TypeBookingCreated   = "booking.created"
	TypeBookingUpdated   = "booking.updated"
	TypeBookingCancelled = "booking.cancelled"
	TypeBookingDeleted   = "booking.deleted"
)

// Service records domain events in the outbox table; the worker publishes
// them to the broker asynchronously.
type Service struct {
	repo repository.OutboxRepository
}

func NewService(repo repository.OutboxRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Emit(ctx context.Context, eventType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	return s.repo.Create(ctx, &model.OutboxEvent{
		EventType: eventType,
		Payload:   data,
	})
}
