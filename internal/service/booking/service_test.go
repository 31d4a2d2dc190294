package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barberbook/barber-api/internal/email"
	"github.com/barberbook/barber-api/internal/model"
	"github.com/barberbook/barber-api/internal/repository/memory"
	"github.com/barberbook/barber-api/internal/service/barber"
	"github.com/barberbook/barber-api/internal/service/event"
	apperrors "github.com/barberbook/barber-api/pkg/errors"
	"github.com/barberbook/barber-api/pkg/logger"
)

// monday and sunday fall inside the default working hours fixture; the fixed
// clock sits well before both so no slot counts as already started.
const (
	monday = "2026-01-05"
	sunday = "2026-01-04"
)

type fixture struct {
	svc      *Service
	users    *memory.UserRepository
	bookings *memory.BookingRepository

	customer *model.AuthContext
	barber   *model.AuthContext
	profile  *model.Barber
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	users := memory.NewUserRepository()
	barbers := memory.NewBarberRepository()
	bookings := memory.NewBookingRepository()
	outbox := memory.NewOutboxRepository()

	customerUser := &model.User{Name: "Carla Client", Email: "carla@example.com", Phone: "555-0100", Role: model.RoleCustomer}
	require.NoError(t, users.Create(ctx, customerUser))

	barberUser := &model.User{Name: "Bob Barber", Email: "bob@example.com", Role: model.RoleBarber}
	require.NoError(t, users.Create(ctx, barberUser))

	profile := &model.Barber{
		UserID: barberUser.ID,
		Name:   "Bob Barber",
		Services: model.Services{
			{ID: "haircut", Name: "Haircut", DurationMinutes: 30, Price: 25},
			{ID: "full-service", Name: "Cut and Beard", DurationMinutes: 60, Price: 40},
		},
		WorkingHours: model.DefaultWorkingHours(),
	}
	require.NoError(t, barbers.Create(ctx, profile))

	svc := NewService(bookings, barber.NewService(barbers), users, event.NewService(outbox), email.NewNoop(), logger.NewLogger(nil))
	svc.now = func() time.Time {
		return time.Date(2025, time.December, 1, 12, 0, 0, 0, time.UTC)
	}

	return &fixture{
		svc:      svc,
		users:    users,
		bookings: bookings,
		customer: &model.AuthContext{UserID: customerUser.ID, Role: model.RoleCustomer},
		barber:   &model.AuthContext{UserID: barberUser.ID, Role: model.RoleBarber, BarberID: &profile.ID},
		profile:  profile,
	}
}

func (f *fixture) createReq() *model.CreateBookingRequest {
	return &model.CreateBookingRequest{
		BarberID:  f.profile.ID.String(),
		ServiceID: "haircut",
		Date:      monday,
		Time:      "10:00",
	}
}

func TestCreateDefaultsFromCatalog(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	booking, err := f.svc.Create(ctx, f.customer, f.createReq())
	require.NoError(t, err)

	assert.Equal(t, 30, booking.DurationMinutes)
	assert.Equal(t, 25.0, booking.Price)
	assert.Equal(t, model.BookingStatusConfirmed, booking.Status)
	assert.Equal(t, f.profile.ID, booking.BarberID)
	assert.NotEqual(t, uuid.Nil, booking.ID)
}

func TestCreateExplicitDurationWins(t *testing.T) {
	f := newFixture(t)
	req := f.createReq()
	req.Duration = 45
	req.Price = 30

	booking, err := f.svc.Create(context.Background(), f.customer, req)
	require.NoError(t, err)
	assert.Equal(t, 45, booking.DurationMinutes)
	assert.Equal(t, 30.0, booking.Price)
}

func TestCreateBarberByUserID(t *testing.T) {
	f := newFixture(t)
	req := f.createReq()
	req.BarberID = f.barber.UserID.String()

	booking, err := f.svc.Create(context.Background(), f.customer, req)
	require.NoError(t, err)
	assert.Equal(t, f.profile.ID, booking.BarberID)
}

func TestCreateUnknownBarber(t *testing.T) {
	f := newFixture(t)
	req := f.createReq()
	req.BarberID = uuid.NewString()

	_, err := f.svc.Create(context.Background(), f.customer, req)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestCreateUnknownService(t *testing.T) {
	f := newFixture(t)
	req := f.createReq()
	req.ServiceID = "perm"

	_, err := f.svc.Create(context.Background(), f.customer, req)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestCreateConflictOnTakenSlot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, f.customer, f.createReq())
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, f.customer, f.createReq())
	assert.True(t, apperrors.IsConflict(err))
}

func TestCreateConflictOnOverlap(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := f.createReq()
	req.ServiceID = "full-service"
	req.Time = "14:00"
	_, err := f.svc.Create(ctx, f.customer, req)
	require.NoError(t, err)

	// 14:30 falls inside the 14:00-15:00 appointment.
	overlap := f.createReq()
	overlap.Time = "14:30"
	_, err = f.svc.Create(ctx, f.customer, overlap)
	assert.True(t, apperrors.IsConflict(err))
}

func TestCancelledBookingDoesNotBlock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := f.createReq()
	req.ServiceID = "full-service"
	req.Time = "14:00"
	booking, err := f.svc.Create(ctx, f.customer, req)
	require.NoError(t, err)

	cancelled := model.BookingStatusCancelled
	_, err = f.svc.Update(ctx, f.customer, booking.ID, &model.UpdateBookingRequest{Status: &cancelled})
	require.NoError(t, err)

	again := f.createReq()
	again.Time = "14:00"
	_, err = f.svc.Create(ctx, f.customer, again)
	assert.NoError(t, err)
}

func TestCancelledBookingStaysCancelled(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := f.createReq()
	req.ServiceID = "full-service"
	req.Time = "14:00"
	old, err := f.svc.Create(ctx, f.customer, req)
	require.NoError(t, err)

	cancelled := model.BookingStatusCancelled
	_, err = f.svc.Update(ctx, f.customer, old.ID, &model.UpdateBookingRequest{Status: &cancelled})
	require.NoError(t, err)

	// The freed window gets taken by a new booking.
	taken := f.createReq()
	taken.Time = "14:30"
	_, err = f.svc.Create(ctx, f.customer, taken)
	require.NoError(t, err)

	// Reviving the old booking would overlap the new one.
	confirmed := model.BookingStatusConfirmed
	_, err = f.svc.Update(ctx, f.customer, old.ID, &model.UpdateBookingRequest{Status: &confirmed})
	assert.True(t, apperrors.IsConflict(err))

	completed := model.BookingStatusCompleted
	_, err = f.svc.Update(ctx, f.barber, old.ID, &model.UpdateBookingRequest{Status: &completed})
	assert.True(t, apperrors.IsConflict(err))

	got, err := f.svc.Get(ctx, f.customer, old.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusCancelled, got.Status)

	// Only one active interval remains on the day.
	avail, err := f.svc.Availability(ctx, f.profile.ID.String(), monday)
	require.NoError(t, err)
	require.Len(t, avail.BookedSlots, 1)
	assert.Equal(t, "14:30", avail.BookedSlots[0].Time)
}

func TestBackToBackBookingsAccepted(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, f.customer, f.createReq())
	require.NoError(t, err)

	next := f.createReq()
	next.Time = "10:30"
	_, err = f.svc.Create(ctx, f.customer, next)
	assert.NoError(t, err)
}

func TestCreateOutsideWorkingHours(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	closed := f.createReq()
	closed.Date = sunday
	_, err := f.svc.Create(ctx, f.customer, closed)
	assert.True(t, apperrors.IsConflict(err))

	// 17:45 + 30 minutes runs past the 18:00 close.
	late := f.createReq()
	late.Time = "17:45"
	_, err = f.svc.Create(ctx, f.customer, late)
	assert.True(t, apperrors.IsConflict(err))
}

func TestConcurrentCreateOneWins(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.svc.Create(ctx, f.customer, f.createReq())
		}(i)
	}
	wg.Wait()

	conflicts := 0
	for _, err := range errs {
		if apperrors.IsConflict(err) {
			conflicts++
		} else {
			require.NoError(t, err)
		}
	}
	assert.Equal(t, 1, conflicts)
}

func TestUpdateForbiddenForStranger(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	booking, err := f.svc.Create(ctx, f.customer, f.createReq())
	require.NoError(t, err)

	stranger := &model.AuthContext{UserID: uuid.New(), Role: model.RoleCustomer}
	cancelled := model.BookingStatusCancelled
	_, err = f.svc.Update(ctx, stranger, booking.ID, &model.UpdateBookingRequest{Status: &cancelled})
	assert.True(t, apperrors.IsForbidden(err))

	got, err := f.svc.Get(ctx, f.customer, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusConfirmed, got.Status)
}

func TestUpdateRejectsInvalidStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	booking, err := f.svc.Create(ctx, f.customer, f.createReq())
	require.NoError(t, err)

	pending := model.BookingStatusPending
	_, err = f.svc.Update(ctx, f.customer, booking.ID, &model.UpdateBookingRequest{Status: &pending})
	assert.True(t, apperrors.IsBadRequest(err))

	bogus := model.BookingStatus("done")
	_, err = f.svc.Update(ctx, f.customer, booking.ID, &model.UpdateBookingRequest{Status: &bogus})
	assert.True(t, apperrors.IsBadRequest(err))
}

func TestAssignedBarberCanComplete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	booking, err := f.svc.Create(ctx, f.customer, f.createReq())
	require.NoError(t, err)

	completed := model.BookingStatusCompleted
	updated, err := f.svc.Update(ctx, f.barber, booking.ID, &model.UpdateBookingRequest{Status: &completed})
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusCompleted, updated.Status)
}

func TestUpdateNotes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	booking, err := f.svc.Create(ctx, f.customer, f.createReq())
	require.NoError(t, err)

	notes := "please use clippers only"
	updated, err := f.svc.Update(ctx, f.customer, booking.ID, &model.UpdateBookingRequest{Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, notes, updated.Notes)
	assert.Equal(t, model.BookingStatusConfirmed, updated.Status)
}

func TestDeleteOnlyByOwner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	booking, err := f.svc.Create(ctx, f.customer, f.createReq())
	require.NoError(t, err)

	err = f.svc.Delete(ctx, f.barber, booking.ID)
	assert.True(t, apperrors.IsForbidden(err))

	require.NoError(t, f.svc.Delete(ctx, f.customer, booking.ID))

	_, err = f.svc.Get(ctx, f.customer, booking.ID)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestDeleteMissingBooking(t *testing.T) {
	f := newFixture(t)
	err := f.svc.Delete(context.Background(), f.customer, uuid.New())
	assert.True(t, apperrors.IsNotFound(err))
}

func TestListEnrichesDisplayFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, f.customer, f.createReq())
	require.NoError(t, err)

	mine, err := f.svc.List(ctx, f.customer)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Bob Barber", mine[0].BarberName)
	assert.Equal(t, "Haircut", mine[0].ServiceName)

	theirs, err := f.svc.List(ctx, f.barber)
	require.NoError(t, err)
	require.Len(t, theirs, 1)
	assert.Equal(t, "Carla Client", theirs[0].CustomerName)
	assert.Equal(t, "555-0100", theirs[0].CustomerPhone)
}

func TestListUnknownCustomerFallback(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.bookings.Create(ctx, &model.Booking{
		CustomerID:      uuid.New(),
		BarberID:        f.profile.ID,
		ServiceID:       "haircut",
		Date:            monday,
		Time:            "16:00",
		DurationMinutes: 30,
		Status:          model.BookingStatusConfirmed,
	}))

	theirs, err := f.svc.List(ctx, f.barber)
	require.NoError(t, err)
	require.Len(t, theirs, 1)
	assert.Equal(t, "Unknown", theirs[0].CustomerName)
	assert.Empty(t, theirs[0].CustomerEmail)
}
