package model

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleBarber   Role = "barber"
)

func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleBarber
}

type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	Phone        string    `db:"phone" json:"phone"`
	Role         Role      `db:"role" json:"role"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// DisplayInfo is the subset of user data exposed to other callers,
// e.g. customer contact details on a barber's calendar.
type DisplayInfo struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

type RegisterRequest struct {
	Name           string `json:"name" binding:"required,max=100"`
	Email          string `json:"email" binding:"required,email"`
	Phone          string `json:"phone" binding:"omitempty,max=30"`
	Password       string `json:"password" binding:"required,min=8"`
	Role           Role   `json:"role" binding:"required,oneof=customer barber"`
	Specialization string `json:"specialization" binding:"omitempty,max=100"`
	Experience     int    `json:"experience" binding:"omitempty,min=0"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
