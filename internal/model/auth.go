package model

import "github.com/google/uuid"

// AuthContext identifies the caller of every authenticated operation.
// BarberID is the canonical barber profile id, resolved once by the auth
// middleware; it is nil for customers and for barber accounts whose profile
// could not be resolved (authorization then fails closed).
type AuthContext struct {
	UserID   uuid.UUID
	Role     Role
	BarberID *uuid.UUID
}

// IsBarber reports whether the caller is a barber with a resolved profile.
func (a *AuthContext) IsBarber() bool {
	return a.Role == RoleBarber && a.BarberID != nil
}
