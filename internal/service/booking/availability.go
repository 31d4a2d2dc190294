package booking

import (
	"context"
	"time"

	"github.com/barberbook/barber-api/internal/model"
	"github.com/barberbook/barber-api/internal/scheduling"
	apperrors "github.com/barberbook/barber-api/pkg/errors"
)

// Availability returns a barber's working hours and booked intervals for a
// date, the raw material a client needs to render its own day view.
func (s *Service) Availability(ctx context.Context, barberRef, date string) (*model.Availability, error) {
	if _, err := time.Parse(model.DateLayout, date); err != nil {
		return nil, apperrors.BadRequest("invalid date", err)
	}

	barberProfile, err := s.barbers.Resolve(ctx, barberRef)
	if err != nil {
		return nil, err
	}

	bookings, err := s.repo.ListForBarberDate(ctx, barberProfile.ID, date)
	if err != nil {
		return nil, err
	}

	booked := make([]model.BookedSlot, 0, len(bookings))
	for _, b := range bookings {
		if b.Status == model.BookingStatusCancelled {
			continue
		}
		booked = append(booked, model.BookedSlot{
			Time:     b.Time,
			Duration: b.DurationMinutes,
		})
	}

	return &model.Availability{
		BarberID:     barberProfile.ID,
		Date:         date,
		WorkingHours: barberProfile.WorkingHours,
		BookedSlots:  booked,
	}, nil
}

// Slots computes the offered slot grid for a barber, date and service. When
// serviceID is empty an explicit duration must be supplied instead. Slots on
// today's grid that already started are reported unavailable.
func (s *Service) Slots(ctx context.Context, barberRef, date, serviceID string, durationMinutes int) ([]scheduling.Slot, error) {
	if _, err := time.Parse(model.DateLayout, date); err != nil {
		return nil, apperrors.BadRequest("invalid date", err)
	}

	barberProfile, err := s.barbers.Resolve(ctx, barberRef)
	if err != nil {
		return nil, err
	}

	duration := durationMinutes
	if serviceID != "" {
		svc, ok := barberProfile.ServiceByID(serviceID)
		if !ok {
			return nil, apperrors.NotFound("service", nil)
		}
		duration = svc.DurationMinutes
	}
	if duration <= 0 {
		return nil, apperrors.BadRequest("service_id or duration is required", nil)
	}

	busy, err := s.busyIntervals(ctx, barberProfile.ID, date)
	if err != nil {
		return nil, err
	}

	nowMinutes := -1
	now := s.now()
	if date == now.Format(model.DateLayout) {
		nowMinutes = now.Hour()*60 + now.Minute()
	}

	dayRange := barberProfile.WorkingHours.ForDate(date)
	return scheduling.GenerateSlots(dayRange, duration, busy, nowMinutes), nil
}
