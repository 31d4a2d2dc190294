package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/barberbook/barber-api/internal/model"
	apperrors "github.com/barberbook/barber-api/pkg/errors"
)

func (r *barberRepository) Create(ctx context.Context, barber *model.Barber) error {
	query := `
		INSERT INTO barbers (
			id, user_id, name, specialization, experience,
			rating, bio, services, working_hours, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	if barber.ID == uuid.Nil {
		barber.ID = uuid.New()
	}
	barber.CreatedAt = time.Now()
	barber.UpdatedAt = barber.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		barber.ID,
		barber.UserID,
		barber.Name,
		barber.Specialization,
		barber.Experience,
		barber.Rating,
		barber.Bio,
		barber.Services,
		barber.WorkingHours,
		barber.CreatedAt,
		barber.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create barber: %w", err)
	}
	return nil
}

func (r *barberRepository) Get(ctx context.Context, id uuid.UUID) (*model.Barber, error) {
	query := `
		SELECT id, user_id, name, specialization, experience,
			   rating, bio, services, working_hours, created_at, updated_at
		FROM barbers
		WHERE id = $1
	`
	var barber model.Barber
	err := r.db.GetContext(ctx, &barber, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("barber", err)
		}
		return nil, fmt.Errorf("failed to get barber: %w", err)
	}
	return &barber, nil
}

func (r *barberRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Barber, error) {
	query := `
		SELECT id, user_id, name, specialization, experience,
			   rating, bio, services, working_hours, created_at, updated_at
		FROM barbers
		WHERE user_id = $1
	`
	var barber model.Barber
	err := r.db.GetContext(ctx, &barber, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("barber", err)
		}
		return nil, fmt.Errorf("failed to get barber by user: %w", err)
	}
	return &barber, nil
}

func (r *barberRepository) List(ctx context.Context) ([]*model.Barber, error) {
	query := `
		SELECT id, user_id, name, specialization, experience,
			   rating, bio, services, working_hours, created_at, updated_at
		FROM barbers
		ORDER BY rating DESC, name ASC
	`
	var barbers []*model.Barber
	if err := r.db.SelectContext(ctx, &barbers, query); err != nil {
		return nil, fmt.Errorf("failed to list barbers: %w", err)
	}
	return barbers, nil
}
