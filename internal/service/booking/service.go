package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/barberbook/barber-api/internal/email"
	"github.com/barberbook/barber-api/internal/model"
	"github.com/barberbook/barber-api/internal/repository"
	"github.com/barberbook/barber-api/internal/scheduling"
	"github.com/barberbook/barber-api/internal/service/barber"
	"github.com/barberbook/barber-api/internal/service/event"
	apperrors "github.com/barberbook/barber-api/pkg/errors"
	"github.com/barberbook/barber-api/pkg/logger"
)

// Service implements the booking lifecycle. Writes go through the repository,
// which owns the slot-uniqueness guarantee; the availability check here is a
// fast path that catches most conflicts before hitting the store.
type Service struct {
	repo    repository.BookingRepository
	barbers *barber.Service
	users   repository.UserRepository
	events  *event.Service
	mailer  email.Service
	logger  *logger.Logger

	// now is swappable so slot tests can pin the clock.
	now func() time.Time
}

func NewService(
	repo repository.BookingRepository,
	barbers *barber.Service,
	users repository.UserRepository,
	events *event.Service,
	mailer email.Service,
	log *logger.Logger,
) *Service {
	return &Service{
		repo:    repo,
		barbers: barbers,
		users:   users,
		events:  events,
		mailer:  mailer,
		logger:  log,
		now:     time.Now,
	}
}

// Create books a slot for the acting customer. Duration and price default
// from the barber's catalog entry and are frozen on the booking from then on.
func (s *Service) Create(ctx context.Context, actor *model.AuthContext, req *model.CreateBookingRequest) (*model.Booking, error) {
	barberProfile, err := s.barbers.Resolve(ctx, req.BarberID)
	if err != nil {
		return nil, err
	}

	svc, ok := barberProfile.ServiceByID(req.ServiceID)
	if !ok {
		return nil, apperrors.NotFound("service", nil)
	}

	start, err := scheduling.ParseClock(req.Time)
	if err != nil {
		return nil, apperrors.BadRequest("invalid time", err)
	}
	if _, err := time.Parse(model.DateLayout, req.Date); err != nil {
		return nil, apperrors.BadRequest("invalid date", err)
	}

	duration := req.Duration
	if duration == 0 {
		duration = svc.DurationMinutes
	}
	if duration <= 0 {
		return nil, apperrors.BadRequest("invalid duration", nil)
	}
	price := req.Price
	if price == 0 {
		price = svc.Price
	}

	if err := s.checkSlot(ctx, barberProfile, req.Date, start, duration); err != nil {
		return nil, err
	}

	booking := &model.Booking{
		CustomerID:      actor.UserID,
		BarberID:        barberProfile.ID,
		ServiceID:       svc.ID,
		Date:            req.Date,
		Time:            req.Time,
		DurationMinutes: duration,
		Price:           price,
		Status:          model.BookingStatusConfirmed,
		Notes:           req.Notes,
	}
	if err := s.repo.Create(ctx, booking); err != nil {
		return nil, err
	}

	s.emit(ctx, event.TypeBookingCreated, booking)
	s.notify(ctx, booking, false)
	return booking, nil
}

func (s *Service) Get(ctx context.Context, actor *model.AuthContext, id uuid.UUID) (*model.Booking, error) {
	booking, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(actor, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// Update changes a booking's status or notes. Both the owning customer and
// the assigned barber may update; the slot itself is immutable.
func (s *Service) Update(ctx context.Context, actor *model.AuthContext, id uuid.UUID, req *model.UpdateBookingRequest) (*model.Booking, error) {
	booking, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(actor, booking); err != nil {
		return nil, err
	}

	if req.Status != nil {
		if !req.Status.SettableStatus() {
			return nil, apperrors.BadRequest(fmt.Sprintf("invalid status %q", *req.Status), nil)
		}
		// Cancelling frees the slot for rebooking, so a cancelled booking
		// can never come back; it could collide with whoever took the slot.
		if booking.Status == model.BookingStatusCancelled && *req.Status != model.BookingStatusCancelled {
			return nil, apperrors.Conflict("booking is cancelled", nil)
		}
		booking.Status = *req.Status
	}
	if req.Notes != nil {
		booking.Notes = *req.Notes
	}

	if err := s.repo.Update(ctx, booking); err != nil {
		return nil, err
	}

	if req.Status != nil && *req.Status == model.BookingStatusCancelled {
		s.emit(ctx, event.TypeBookingCancelled, booking)
		s.notify(ctx, booking, true)
	} else {
		s.emit(ctx, event.TypeBookingUpdated, booking)
	}
	return booking, nil
}

// Delete removes a booking outright. Only the owning customer may delete;
// barbers cancel instead so the record survives for their history.
func (s *Service) Delete(ctx context.Context, actor *model.AuthContext, id uuid.UUID) error {
	booking, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if booking.CustomerID != actor.UserID {
		return apperrors.Forbidden("not your booking", nil)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.emit(ctx, event.TypeBookingDeleted, booking)
	return nil
}

// List returns the actor's bookings with display names attached. Customers
// see their own bookings; barbers see the bookings assigned to them.
func (s *Service) List(ctx context.Context, actor *model.AuthContext) ([]*model.EnrichedBooking, error) {
	var (
		bookings []*model.Booking
		err      error
	)
	if actor.IsBarber() && actor.BarberID != nil {
		bookings, err = s.repo.ListForBarber(ctx, *actor.BarberID)
	} else {
		bookings, err = s.repo.ListForCustomer(ctx, actor.UserID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	out := make([]*model.EnrichedBooking, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, s.enrich(ctx, b))
	}
	return out, nil
}

func (s *Service) enrich(ctx context.Context, b *model.Booking) *model.EnrichedBooking {
	enriched := &model.EnrichedBooking{Booking: *b}

	if barberProfile, err := s.barbers.Get(ctx, b.BarberID); err == nil {
		enriched.BarberName = barberProfile.Name
		if svc, ok := barberProfile.ServiceByID(b.ServiceID); ok {
			enriched.ServiceName = svc.Name
		}
	}
	display := s.customerDisplay(ctx, b.CustomerID)
	enriched.CustomerName = display.Name
	enriched.CustomerEmail = display.Email
	enriched.CustomerPhone = display.Phone
	return enriched
}

// customerDisplay projects a customer's contact details for display. A
// deleted account must not break listings, so lookup failures fall back to
// a placeholder name.
func (s *Service) customerDisplay(ctx context.Context, id uuid.UUID) model.DisplayInfo {
	customer, err := s.users.Get(ctx, id)
	if err != nil {
		return model.DisplayInfo{Name: "Unknown"}
	}
	return model.DisplayInfo{Name: customer.Name, Phone: customer.Phone, Email: customer.Email}
}

// checkSlot verifies the requested interval sits inside the barber's working
// day and does not overlap an existing non-cancelled booking.
func (s *Service) checkSlot(ctx context.Context, barberProfile *model.Barber, date string, start, duration int) error {
	day := scheduling.ParseDayRange(barberProfile.WorkingHours.ForDate(date))
	if day.Closed {
		return apperrors.Conflict("barber is not working on this date", nil)
	}
	if start < day.Open || start+duration > day.Close {
		return apperrors.Conflict("time slot is outside working hours", nil)
	}

	busy, err := s.busyIntervals(ctx, barberProfile.ID, date)
	if err != nil {
		return err
	}
	if scheduling.OverlapsAny(scheduling.NewInterval(start, duration), busy) {
		return apperrors.Conflict("time slot is already booked", nil)
	}
	return nil
}

// busyIntervals collects the occupied intervals for a barber's day. Cancelled
// bookings do not block.
func (s *Service) busyIntervals(ctx context.Context, barberID uuid.UUID, date string) ([]scheduling.Interval, error) {
	bookings, err := s.repo.ListForBarberDate(ctx, barberID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	var busy []scheduling.Interval
	for _, b := range bookings {
		if b.Status == model.BookingStatusCancelled {
			continue
		}
		start, err := scheduling.ParseClock(b.Time)
		if err != nil {
			continue
		}
		busy = append(busy, scheduling.NewInterval(start, b.DurationMinutes))
	}
	return busy, nil
}

func (s *Service) emit(ctx context.Context, eventType string, booking *model.Booking) {
	if s.events == nil {
		return
	}
	if err := s.events.Emit(ctx, eventType, booking); err != nil {
		s.logger.Error(err, "failed to emit booking event", "event_type", eventType, "booking_id", booking.ID)
	}
}

func (s *Service) notify(ctx context.Context, booking *model.Booking, cancelled bool) {
	if s.mailer == nil {
		return
	}
	customer, err := s.users.Get(ctx, booking.CustomerID)
	if err != nil {
		s.logger.Error(err, "failed to load customer for notification", "booking_id", booking.ID)
		return
	}

	if cancelled {
		err = s.mailer.SendBookingCancellation(ctx, customer.Email, booking)
	} else {
		err = s.mailer.SendBookingConfirmation(ctx, customer.Email, booking)
	}
	if err != nil {
		s.logger.Error(err, "failed to send booking notification", "booking_id", booking.ID)
	}
}

// authorize fails closed: only the owning customer or the assigned barber may
// touch a booking. A barber token without a resolved profile gets nothing.
func authorize(actor *model.AuthContext, booking *model.Booking) error {
	if actor.UserID == booking.CustomerID {
		return nil
	}
	if actor.IsBarber() && actor.BarberID != nil && *actor.BarberID == booking.BarberID {
		return nil
	}
	return apperrors.Forbidden("not your booking", nil)
}
