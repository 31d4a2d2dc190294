package postgres

import (
	"github.com/jmoiron/sqlx"

	"github.com/barberbook/barber-api/internal/repository"
)

type userRepository struct {
	db *sqlx.DB
}

type barberRepository struct {
	db *sqlx.DB
}

type bookingRepository struct {
	db *sqlx.DB
}

type outboxRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func NewBarberRepository(db *sqlx.DB) repository.BarberRepository {
	return &barberRepository{db: db}
}

func NewBookingRepository(db *sqlx.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

func NewOutboxRepository(db *sqlx.DB) repository.OutboxRepository {
	return &outboxRepository{db: db}
}
