package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/barberbook/barber-api/internal/model"
	"github.com/barberbook/barber-api/internal/repository"
	"github.com/barberbook/barber-api/internal/service/barber"
	"github.com/barberbook/barber-api/pkg/auth"
	apperrors "github.com/barberbook/barber-api/pkg/errors"
	"github.com/barberbook/barber-api/pkg/security"
)

// Service handles registration and login. Registering a barber also creates
// the barber profile, so every barber token carries its profile id.
type Service struct {
	users   repository.UserRepository
	barbers *barber.Service
	hasher  security.PasswordHasher
	jwt     auth.JWTService
}

func NewService(users repository.UserRepository, barbers *barber.Service, hasher security.PasswordHasher, jwt auth.JWTService) *Service {
	return &Service{
		users:   users,
		barbers: barbers,
		hasher:  hasher,
		jwt:     jwt,
	}
}

func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.Conflict("email is already registered", nil)
	} else if !apperrors.IsNotFound(err) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.BadRequest("invalid password", err)
	}

	user := &model.User{
		Name:         req.Name,
		Email:        email,
		Phone:        req.Phone,
		Role:         req.Role,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	var barberID *uuid.UUID
	if req.Role == model.RoleBarber {
		profile := &model.Barber{
			UserID:         user.ID,
			Name:           user.Name,
			Specialization: req.Specialization,
			Experience:     req.Experience,
		}
		if err := s.barbers.Create(ctx, profile); err != nil {
			return nil, fmt.Errorf("failed to create barber profile: %w", err)
		}
		barberID = &profile.ID
	}

	token, err := s.jwt.GenerateToken(user.ID, string(user.Role), barberID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &model.AuthResponse{Token: token, User: user}, nil
}

func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		// Same answer for unknown email and bad password.
		return nil, apperrors.Unauthorized("invalid credentials", nil)
	}

	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		return nil, apperrors.Unauthorized("invalid credentials", nil)
	}

	var barberID *uuid.UUID
	if user.Role == model.RoleBarber {
		if profile, err := s.barbers.ResolveByUser(ctx, user.ID); err == nil {
			barberID = &profile.ID
		}
	}

	token, err := s.jwt.GenerateToken(user.ID, string(user.Role), barberID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &model.AuthResponse{Token: token, User: user}, nil
}
