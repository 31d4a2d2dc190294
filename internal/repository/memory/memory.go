// Package memory provides in-process implementations of the repository
// interfaces. The booking store serializes every write behind one mutex and
// enforces the same compound slot-uniqueness rule as the Postgres schema, so
// the service layer behaves identically against either backend. It backs the
// unit tests; Postgres is the production store.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/barberbook/barber-api/internal/model"
	"github.com/barberbook/barber-api/internal/repository"
	apperrors "github.com/barberbook/barber-api/pkg/errors"
)

type UserRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]model.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[uuid.UUID]model.User)}
}

var _ repository.UserRepository = (*UserRepository)(nil)

func (r *UserRepository) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.Email = strings.ToLower(user.Email)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.users[user.ID] = *user
	return nil
}

func (r *UserRepository) Get(_ context.Context, id uuid.UUID) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.NotFound("user", nil)
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	email = strings.ToLower(email)
	for _, user := range r.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, apperrors.NotFound("user", nil)
}

type BarberRepository struct {
	mu      sync.RWMutex
	barbers map[uuid.UUID]model.Barber
}

func NewBarberRepository() *BarberRepository {
	return &BarberRepository{barbers: make(map[uuid.UUID]model.Barber)}
}

var _ repository.BarberRepository = (*BarberRepository)(nil)

func (r *BarberRepository) Create(_ context.Context, barber *model.Barber) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if barber.ID == uuid.Nil {
		barber.ID = uuid.New()
	}
	barber.CreatedAt = time.Now()
	barber.UpdatedAt = barber.CreatedAt
	r.barbers[barber.ID] = *barber
	return nil
}

func (r *BarberRepository) Get(_ context.Context, id uuid.UUID) (*model.Barber, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	barber, ok := r.barbers[id]
	if !ok {
		return nil, apperrors.NotFound("barber", nil)
	}
	return &barber, nil
}

func (r *BarberRepository) GetByUserID(_ context.Context, userID uuid.UUID) (*model.Barber, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, barber := range r.barbers {
		if barber.UserID == userID {
			b := barber
			return &b, nil
		}
	}
	return nil, apperrors.NotFound("barber", nil)
}

func (r *BarberRepository) List(_ context.Context) ([]*model.Barber, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*model.Barber, 0, len(r.barbers))
	for _, barber := range r.barbers {
		b := barber
		out = append(out, &b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type BookingRepository struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]model.Booking
	order    []uuid.UUID
}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{bookings: make(map[uuid.UUID]model.Booking)}
}

var _ repository.BookingRepository = (*BookingRepository)(nil)

// Create inserts under the store lock, rejecting a second non-cancelled
// booking for the same barber, date and start time. This mirrors the
// uq_bookings_barber_slot index of the Postgres schema.
func (r *BookingRepository) Create(_ context.Context, booking *model.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.bookings {
		if existing.Status == model.BookingStatusCancelled {
			continue
		}
		if existing.BarberID == booking.BarberID &&
			existing.Date == booking.Date &&
			existing.Time == booking.Time {
			return apperrors.Conflict("time slot is already booked", nil)
		}
	}

	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = booking.CreatedAt
	r.bookings[booking.ID] = *booking
	r.order = append(r.order, booking.ID)
	return nil
}

func (r *BookingRepository) Get(_ context.Context, id uuid.UUID) (*model.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	booking, ok := r.bookings[id]
	if !ok {
		return nil, apperrors.NotFound("booking", nil)
	}
	return &booking, nil
}

func (r *BookingRepository) Update(_ context.Context, booking *model.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bookings[booking.ID]; !ok {
		return apperrors.NotFound("booking", nil)
	}
	booking.UpdatedAt = time.Now()
	r.bookings[booking.ID] = *booking
	return nil
}

func (r *BookingRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bookings[id]; !ok {
		return apperrors.NotFound("booking", nil)
	}
	delete(r.bookings, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *BookingRepository) ListForBarberDate(_ context.Context, barberID uuid.UUID, date string) ([]*model.Booking, error) {
	return r.list(func(b *model.Booking) bool {
		return b.BarberID == barberID && b.Date == date
	}), nil
}

func (r *BookingRepository) ListForBarber(_ context.Context, barberID uuid.UUID) ([]*model.Booking, error) {
	return r.list(func(b *model.Booking) bool {
		return b.BarberID == barberID
	}), nil
}

func (r *BookingRepository) ListForCustomer(_ context.Context, customerID uuid.UUID) ([]*model.Booking, error) {
	return r.list(func(b *model.Booking) bool {
		return b.CustomerID == customerID
	}), nil
}

// list walks bookings in insertion order, matching the encounter-order
// guarantee the calendar aggregation depends on.
func (r *BookingRepository) list(match func(*model.Booking) bool) []*model.Booking {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*model.Booking
	for _, id := range r.order {
		booking := r.bookings[id]
		if match(&booking) {
			b := booking
			out = append(out, &b)
		}
	}
	return out
}

type OutboxRepository struct {
	mu     sync.Mutex
	events []*model.OutboxEvent
}

func NewOutboxRepository() *OutboxRepository {
	return &OutboxRepository{}
}

var _ repository.OutboxRepository = (*OutboxRepository)(nil)

func (r *OutboxRepository) Create(_ context.Context, event *model.OutboxEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	event.ID = uuid.New()
	event.Status = model.OutboxStatusPending
	event.CreatedAt = time.Now()
	event.UpdatedAt = event.CreatedAt
	clone := *event
	r.events = append(r.events, &clone)
	return nil
}

func (r *OutboxRepository) GetPendingEvents(_ context.Context, limit int) ([]*model.OutboxEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*model.OutboxEvent
	for _, ev := range r.events {
		if ev.Status != model.OutboxStatusPending {
			continue
		}
		clone := *ev
		out = append(out, &clone)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (r *OutboxRepository) MarkProcessed(_ context.Context, id uuid.UUID) error {
	return r.setStatus(id, model.OutboxStatusProcessed, nil)
}

func (r *OutboxRepository) MarkFailed(_ context.Context, id uuid.UUID, message string) error {
	return r.setStatus(id, model.OutboxStatusFailed, &message)
}

func (r *OutboxRepository) DeleteProcessedBefore(_ context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var kept []*model.OutboxEvent
	var removed int64
	for _, ev := range r.events {
		if ev.Status == model.OutboxStatusProcessed && ev.ProcessedAt != nil && ev.ProcessedAt.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, ev)
	}
	r.events = kept
	return removed, nil
}

func (r *OutboxRepository) setStatus(id uuid.UUID, status model.OutboxStatus, message *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ev := range r.events {
		if ev.ID == id {
			now := time.Now()
			ev.Status = status
			ev.ErrorMessage = message
			ev.UpdatedAt = now
			if status == model.OutboxStatusProcessed {
				ev.ProcessedAt = &now
			}
			return nil
		}
	}
	return apperrors.NotFound("outbox event", nil)
}
