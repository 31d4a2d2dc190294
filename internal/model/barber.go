package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Service is a catalog entry owned by a barber. Bookings copy its duration
// and price at creation time, so later catalog edits never rewrite history.
type Service struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"duration_minutes"`
	Price           float64 `json:"price"`
	Description     string  `json:"description,omitempty"`
}

type Services []Service

func (s Services) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *Services) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	case nil:
		*s = nil
		return nil
	default:
		return fmt.Errorf("unsupported type for services: %T", src)
	}
}

// ClosedMarker is the working-hours value for a day the barber does not work.
const ClosedMarker = "Closed"

// WorkingHours maps a lowercase weekday name to an "HH:MM-HH:MM" range or
// the closed marker.
type WorkingHours map[string]string

func (w WorkingHours) Value() (driver.Value, error) {
	return json.Marshal(w)
}

func (w *WorkingHours) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, w)
	case string:
		return json.Unmarshal([]byte(v), w)
	case nil:
		*w = nil
		return nil
	default:
		return fmt.Errorf("unsupported type for working hours: %T", src)
	}
}

// DefaultWorkingHours is the schedule applied to barbers that never
// configured one.
func DefaultWorkingHours() WorkingHours {
	return WorkingHours{
		"monday":    "09:00-18:00",
		"tuesday":   "09:00-18:00",
		"wednesday": "09:00-18:00",
		"thursday":  "09:00-18:00",
		"friday":    "09:00-20:00",
		"saturday":  "10:00-17:00",
		"sunday":    ClosedMarker,
	}
}

// ForDate returns the working-hours range for the weekday of a
// "YYYY-MM-DD" date.
func (w WorkingHours) ForDate(date string) string {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return ClosedMarker
	}
	day := w[weekdayKey(t.Weekday())]
	if day == "" {
		return ClosedMarker
	}
	return day
}

func weekdayKey(d time.Weekday) string {
	switch d {
	case time.Monday:
		return "monday"
	case time.Tuesday:
		return "tuesday"
	case time.Wednesday:
		return "wednesday"
	case time.Thursday:
		return "thursday"
	case time.Friday:
		return "friday"
	case time.Saturday:
		return "saturday"
	default:
		return "sunday"
	}
}

// Barber is the public profile of a barber user (1:1 with the user account).
type Barber struct {
	ID             uuid.UUID    `db:"id" json:"id"`
	UserID         uuid.UUID    `db:"user_id" json:"user_id"`
	Name           string       `db:"name" json:"name"`
	Specialization string       `db:"specialization" json:"specialization"`
	Experience     int          `db:"experience" json:"experience"`
	Rating         float64      `db:"rating" json:"rating"`
	Bio            string       `db:"bio" json:"bio,omitempty"`
	Services       Services     `db:"services" json:"services"`
	WorkingHours   WorkingHours `db:"working_hours" json:"working_hours"`
	CreatedAt      time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time    `db:"updated_at" json:"updated_at"`
}

// ServiceByID looks up a catalog entry on the barber.
func (b *Barber) ServiceByID(id string) (*Service, bool) {
	for i := range b.Services {
		if b.Services[i].ID == id {
			return &b.Services[i], true
		}
	}
	return nil, false
}
