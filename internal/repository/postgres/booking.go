package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/barberbook/barber-api/internal/model"
	apperrors "github.com/barberbook/barber-api/pkg/errors"
)

const pqUniqueViolation = "23505"

func (r *bookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	query := `
		INSERT INTO bookings (
			id, customer_id, barber_id, service_id,
			date, time, duration_minutes, price,
			status, notes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = booking.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		booking.ID,
		booking.CustomerID,
		booking.BarberID,
		booking.ServiceID,
		booking.Date,
		booking.Time,
		booking.DurationMinutes,
		booking.Price,
		booking.Status,
		booking.Notes,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if err != nil {
		// uq_bookings_barber_slot: the slot race lost at the storage layer
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return apperrors.Conflict("time slot is already booked", err)
		}
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (r *bookingRepository) Get(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	query := `
		SELECT id, customer_id, barber_id, service_id,
			   date, time, duration_minutes, price,
			   status, notes, created_at, updated_at
		FROM bookings
		WHERE id = $1
	`
	var booking model.Booking
	err := r.db.GetContext(ctx, &booking, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("booking", err)
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return &booking, nil
}

func (r *bookingRepository) Update(ctx context.Context, booking *model.Booking) error {
	query := `
		UPDATE bookings
		SET status = $1, notes = $2, updated_at = $3
		WHERE id = $4
	`
	booking.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		booking.Status,
		booking.Notes,
		booking.UpdatedAt,
		booking.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("booking", nil)
	}
	return nil
}

func (r *bookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM bookings
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("booking", nil)
	}
	return nil
}

func (r *bookingRepository) ListForBarberDate(ctx context.Context, barberID uuid.UUID, date string) ([]*model.Booking, error) {
	query := `
		SELECT id, customer_id, barber_id, service_id,
			   date, time, duration_minutes, price,
			   status, notes, created_at, updated_at
		FROM bookings
		WHERE barber_id = $1 AND date = $2
		ORDER BY time ASC
	`
	var bookings []*model.Booking
	if err := r.db.SelectContext(ctx, &bookings, query, barberID, date); err != nil {
		return nil, fmt.Errorf("failed to list bookings for date: %w", err)
	}
	return bookings, nil
}

func (r *bookingRepository) ListForBarber(ctx context.Context, barberID uuid.UUID) ([]*model.Booking, error) {
	query := `
		SELECT id, customer_id, barber_id, service_id,
			   date, time, duration_minutes, price,
			   status, notes, created_at, updated_at
		FROM bookings
		WHERE barber_id = $1
		ORDER BY date ASC, time ASC
	`
	var bookings []*model.Booking
	if err := r.db.SelectContext(ctx, &bookings, query, barberID); err != nil {
		return nil, fmt.Errorf("failed to list barber bookings: %w", err)
	}
	return bookings, nil
}

func (r *bookingRepository) ListForCustomer(ctx context.Context, customerID uuid.UUID) ([]*model.Booking, error) {
	query := `
		SELECT id, customer_id, barber_id, service_id,
			   date, time, duration_minutes, price,
			   status, notes, created_at, updated_at
		FROM bookings
		WHERE customer_id = $1
		ORDER BY date DESC, time DESC
	`
	var bookings []*model.Booking
	if err := r.db.SelectContext(ctx, &bookings, query, customerID); err != nil {
		return nil, fmt.Errorf("failed to list customer bookings: %w", err)
	}
	return bookings, nil
}
