package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/barberbook/barber-api/internal/model"
)

// All repository interfaces in one file
type (
	UserRepository interface {
		Create(ctx context.Context, user *model.User) error
		Get(ctx context.Context, id uuid.UUID) (*model.User, error)
		GetByEmail(ctx context.Context, email string) (*model.User, error)
	}

	BarberRepository interface {
		Create(ctx context.Context, barber *model.Barber) error
		Get(ctx context.Context, id uuid.UUID) (*model.Barber, error)
		// GetByUserID resolves the profile of a barber addressed by their
		// user account id.
		GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Barber, error)
		List(ctx context.Context) ([]*model.Barber, error)
	}

	// BookingRepository persists bookings. Create must enforce the
	// compound uniqueness rule (barber, date, time over non-cancelled
	// rows) and return a Conflict app error when it is violated; the
	// service-level availability check is only a fast path.
	BookingRepository interface {
		Create(ctx context.Context, booking *model.Booking) error
		Get(ctx context.Context, id uuid.UUID) (*model.Booking, error)
		Update(ctx context.Context, booking *model.Booking) error
		Delete(ctx context.Context, id uuid.UUID) error
		ListForBarberDate(ctx context.Context, barberID uuid.UUID, date string) ([]*model.Booking, error)
		ListForBarber(ctx context.Context, barberID uuid.UUID) ([]*model.Booking, error)
		ListForCustomer(ctx context.Context, customerID uuid.UUID) ([]*model.Booking, error)
	}

	OutboxRepository interface {
		Create(ctx context.Context, event *model.OutboxEvent) error
		GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
		MarkProcessed(ctx context.Context, id uuid.UUID) error
		MarkFailed(ctx context.Context, id uuid.UUID, message string) error
		// DeleteProcessedBefore prunes processed events older than cutoff
		// and returns the number of rows removed.
		DeleteProcessedBefore(ctx context.Context, cutoff time.Time) (int64, error)
	}
)
