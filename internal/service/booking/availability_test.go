package booking

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barberbook/barber-api/internal/model"
	"github.com/barberbook/barber-api/internal/scheduling"
	apperrors "github.com/barberbook/barber-api/pkg/errors"
)

func slotByTime(slots []scheduling.Slot, at string) (scheduling.Slot, bool) {
	for _, s := range slots {
		if s.Time == at {
			return s, true
		}
	}
	return scheduling.Slot{}, false
}

func TestSlotsMarkBookedTimesUnavailable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, f.customer, f.createReq())
	require.NoError(t, err)

	slots, err := f.svc.Slots(ctx, f.profile.ID.String(), monday, "haircut", 0)
	require.NoError(t, err)
	require.NotEmpty(t, slots)

	assert.Equal(t, "09:00", slots[0].Time)

	taken, ok := slotByTime(slots, "10:00")
	require.True(t, ok)
	assert.False(t, taken.Available)

	for _, at := range []string{"09:30", "10:30"} {
		s, ok := slotByTime(slots, at)
		require.True(t, ok)
		assert.True(t, s.Available, at)
	}

	// The last 30-minute slot on a 09:00-18:00 day starts at 17:30.
	assert.Equal(t, "17:30", slots[len(slots)-1].Time)
}

func TestSlotsClosedDay(t *testing.T) {
	f := newFixture(t)

	slots, err := f.svc.Slots(context.Background(), f.profile.ID.String(), sunday, "haircut", 0)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestSlotsPastCutoffToday(t *testing.T) {
	f := newFixture(t)
	f.svc.now = func() time.Time {
		return time.Date(2026, time.January, 5, 10, 0, 0, 0, time.UTC)
	}

	slots, err := f.svc.Slots(context.Background(), f.profile.ID.String(), monday, "haircut", 0)
	require.NoError(t, err)

	// A slot starting exactly now is already gone.
	for _, at := range []string{"09:00", "09:30", "10:00"} {
		s, ok := slotByTime(slots, at)
		require.True(t, ok)
		assert.False(t, s.Available, at)
	}
	future, ok := slotByTime(slots, "10:30")
	require.True(t, ok)
	assert.True(t, future.Available)
}

func TestSlotsExplicitDuration(t *testing.T) {
	f := newFixture(t)

	slots, err := f.svc.Slots(context.Background(), f.profile.ID.String(), monday, "", 60)
	require.NoError(t, err)
	require.NotEmpty(t, slots)
	// 17:30 + 60 would run past closing.
	assert.Equal(t, "17:00", slots[len(slots)-1].Time)
}

func TestSlotsRequireDurationSource(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Slots(context.Background(), f.profile.ID.String(), monday, "", 0)
	assert.True(t, apperrors.IsBadRequest(err))

	_, err = f.svc.Slots(context.Background(), f.profile.ID.String(), "05-01-2026", "haircut", 0)
	assert.True(t, apperrors.IsBadRequest(err))
}

func TestAvailabilityExcludesCancelled(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	kept, err := f.svc.Create(ctx, f.customer, f.createReq())
	require.NoError(t, err)

	dropReq := f.createReq()
	dropReq.Time = "11:00"
	dropped, err := f.svc.Create(ctx, f.customer, dropReq)
	require.NoError(t, err)

	cancelled := model.BookingStatusCancelled
	_, err = f.svc.Update(ctx, f.customer, dropped.ID, &model.UpdateBookingRequest{Status: &cancelled})
	require.NoError(t, err)

	avail, err := f.svc.Availability(ctx, f.profile.ID.String(), monday)
	require.NoError(t, err)

	assert.Equal(t, f.profile.ID, avail.BarberID)
	require.Len(t, avail.BookedSlots, 1)
	assert.Equal(t, kept.Time, avail.BookedSlots[0].Time)
	assert.Equal(t, kept.DurationMinutes, avail.BookedSlots[0].Duration)
}

func TestCalendarBarberOnly(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Calendar(context.Background(), f.customer, monday, monday)
	assert.True(t, apperrors.IsForbidden(err))

	// A barber token with no resolved profile fails closed too.
	orphan := &model.AuthContext{UserID: uuid.New(), Role: model.RoleBarber}
	_, err = f.svc.Calendar(context.Background(), orphan, monday, monday)
	assert.True(t, apperrors.IsForbidden(err))
}

func TestCalendarGroupsAndFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	times := []struct {
		date, at string
	}{
		{monday, "10:00"},
		{"2026-01-06", "09:00"},
		{monday, "12:00"},
		{"2026-01-09", "09:00"},
	}
	for _, tc := range times {
		req := f.createReq()
		req.Date = tc.date
		req.Time = tc.at
		_, err := f.svc.Create(ctx, f.customer, req)
		require.NoError(t, err)
	}

	days, err := f.svc.Calendar(ctx, f.barber, monday, "2026-01-07")
	require.NoError(t, err)
	require.Len(t, days, 2)

	// Dates appear in booking encounter order; the 2026-01-09 booking falls
	// outside the range.
	assert.Equal(t, monday, days[0].Date)
	assert.Equal(t, "2026-01-06", days[1].Date)
	require.Len(t, days[0].Bookings, 2)
	assert.Equal(t, "10:00", days[0].Bookings[0].Time)
	assert.Equal(t, "12:00", days[0].Bookings[1].Time)
	assert.Equal(t, "Carla Client", days[0].Bookings[0].CustomerName)
}

func TestCalendarUnknownCustomerFallback(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.bookings.Create(ctx, &model.Booking{
		CustomerID:      uuid.New(),
		BarberID:        f.profile.ID,
		ServiceID:       "haircut",
		Date:            monday,
		Time:            "15:00",
		DurationMinutes: 30,
		Status:          model.BookingStatusConfirmed,
	}))

	days, err := f.svc.Calendar(ctx, f.barber, monday, monday)
	require.NoError(t, err)
	require.Len(t, days, 1)
	require.Len(t, days[0].Bookings, 1)
	assert.Equal(t, "Unknown", days[0].Bookings[0].CustomerName)
	assert.Empty(t, days[0].Bookings[0].CustomerPhone)
}

func TestCalendarWithoutRangeReturnsAll(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, date := range []string{monday, "2026-01-09"} {
		req := f.createReq()
		req.Date = date
		_, err := f.svc.Create(ctx, f.customer, req)
		require.NoError(t, err)
	}

	days, err := f.svc.Calendar(ctx, f.barber, "", "")
	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.Equal(t, monday, days[0].Date)
	assert.Equal(t, "2026-01-09", days[1].Date)

	// A single bound does not filter either.
	days, err = f.svc.Calendar(ctx, f.barber, monday, "")
	require.NoError(t, err)
	assert.Len(t, days, 2)
}

func TestCalendarInvalidRange(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Calendar(context.Background(), f.barber, "2026-01-07", monday)
	assert.True(t, apperrors.IsBadRequest(err))
}
