package model

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout is the wire format for calendar dates. Times use ClockLayout,
// 24-hour HH:MM.
const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// SettableStatus reports whether callers may move a booking to this status.
// Pending exists only as a legacy stored value, never as an update target.
func (s BookingStatus) SettableStatus() bool {
	switch s {
	case BookingStatusConfirmed, BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}

type Booking struct {
	ID              uuid.UUID     `db:"id" json:"id"`
	CustomerID      uuid.UUID     `db:"customer_id" json:"customer_id"`
	BarberID        uuid.UUID     `db:"barber_id" json:"barber_id"`
	ServiceID       string        `db:"service_id" json:"service_id"`
	Date            string        `db:"date" json:"date"`
	Time            string        `db:"time" json:"time"`
	DurationMinutes int           `db:"duration_minutes" json:"duration_minutes"`
	Price           float64       `db:"price" json:"price"`
	Status          BookingStatus `db:"status" json:"status"`
	Notes           string        `db:"notes" json:"notes,omitempty"`
	CreatedAt       time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time     `db:"updated_at" json:"updated_at"`
}

type CreateBookingRequest struct {
	BarberID  string  `json:"barber_id" binding:"required"`
	ServiceID string  `json:"service_id" binding:"required"`
	Date      string  `json:"date" binding:"required,dateonly"`
	Time      string  `json:"time" binding:"required,hhmm"`
	Duration  int     `json:"duration" binding:"omitempty,min=5"`
	Price     float64 `json:"price" binding:"omitempty,min=0"`
	Notes     string  `json:"notes" binding:"max=500"`
}

type UpdateBookingRequest struct {
	Status *BookingStatus `json:"status"`
	Notes  *string        `json:"notes"`
}

// CalendarEntry is one booking as shown on the barber dashboard.
type CalendarEntry struct {
	ID            uuid.UUID     `json:"id"`
	Time          string        `json:"time"`
	Duration      int           `json:"duration"`
	CustomerName  string        `json:"customer_name"`
	CustomerPhone string        `json:"customer_phone"`
	ServiceID     string        `json:"service_id"`
	Status        BookingStatus `json:"status"`
	Price         float64       `json:"price"`
}

// BookedSlot is the occupied-interval view returned by the availability
// endpoint alongside working hours.
type BookedSlot struct {
	Time     string `json:"time"`
	Duration int    `json:"duration"`
}

type Availability struct {
	BarberID     uuid.UUID    `json:"barber_id"`
	Date         string       `json:"date"`
	WorkingHours WorkingHours `json:"working_hours"`
	BookedSlots  []BookedSlot `json:"booked_slots"`
}

// EnrichedBooking carries the display fields the list endpoints attach to a
// raw booking.
type EnrichedBooking struct {
	Booking
	BarberName    string `json:"barber_name"`
	ServiceName   string `json:"service_name"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email,omitempty"`
	CustomerPhone string `json:"customer_phone,omitempty"`
}
