package booking

import (
	"context"
	"time"

	"github.com/barberbook/barber-api/internal/model"
	apperrors "github.com/barberbook/barber-api/pkg/errors"
)

// CalendarDay groups a barber's bookings for one date.
type CalendarDay struct {
	Date     string                `json:"date"`
	Bookings []model.CalendarEntry `json:"bookings"`
}

// Calendar aggregates the acting barber's bookings grouped by date. The
// inclusive range filter applies only when both bounds are supplied;
// otherwise every booking is returned. Dates appear in the order bookings
// were created, matching the dashboard's expectations. Customers cannot
// call this.
func (s *Service) Calendar(ctx context.Context, actor *model.AuthContext, start, end string) ([]*CalendarDay, error) {
	if !actor.IsBarber() || actor.BarberID == nil {
		return nil, apperrors.Forbidden("calendar is only available to barbers", nil)
	}

	ranged := start != "" && end != ""
	if ranged {
		if _, err := time.Parse(model.DateLayout, start); err != nil {
			return nil, apperrors.BadRequest("invalid start date", err)
		}
		if _, err := time.Parse(model.DateLayout, end); err != nil {
			return nil, apperrors.BadRequest("invalid end date", err)
		}
		if end < start {
			return nil, apperrors.BadRequest("end date is before start date", nil)
		}
	}

	bookings, err := s.repo.ListForBarber(ctx, *actor.BarberID)
	if err != nil {
		return nil, err
	}

	// ISO dates compare correctly as strings, so the range filter needs no
	// further parsing.
	days := make(map[string]*CalendarDay)
	var out []*CalendarDay
	for _, b := range bookings {
		if ranged && (b.Date < start || b.Date > end) {
			continue
		}

		day, ok := days[b.Date]
		if !ok {
			day = &CalendarDay{Date: b.Date}
			days[b.Date] = day
			out = append(out, day)
		}
		day.Bookings = append(day.Bookings, s.calendarEntry(ctx, b))
	}
	return out, nil
}

func (s *Service) calendarEntry(ctx context.Context, b *model.Booking) model.CalendarEntry {
	entry := model.CalendarEntry{
		ID:        b.ID,
		Time:      b.Time,
		Duration:  b.DurationMinutes,
		ServiceID: b.ServiceID,
		Status:    b.Status,
		Price:     b.Price,
	}

	display := s.customerDisplay(ctx, b.CustomerID)
	entry.CustomerName = display.Name
	entry.CustomerPhone = display.Phone
	return entry
}
