package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barberbook/barber-api/internal/model"
	"github.com/barberbook/barber-api/internal/repository/memory"
	"github.com/barberbook/barber-api/internal/service/barber"
	pkgauth "github.com/barberbook/barber-api/pkg/auth"
	apperrors "github.com/barberbook/barber-api/pkg/errors"
	"github.com/barberbook/barber-api/pkg/security"
)

func newService(t *testing.T) (*Service, *barber.Service) {
	t.Helper()
	barbers := barber.NewService(memory.NewBarberRepository())
	svc := NewService(
		memory.NewUserRepository(),
		barbers,
		security.NewBcryptHasher(4),
		pkgauth.NewJWTService("test-secret", 1),
	)
	return svc, barbers
}

func registerReq(role model.Role) *model.RegisterRequest {
	return &model.RegisterRequest{
		Name:     "Pat Example",
		Email:    "pat@example.com",
		Password: "correct-horse",
		Role:     role,
	}
}

func TestRegisterCustomer(t *testing.T) {
	svc, _ := newService(t)

	resp, err := svc.Register(context.Background(), registerReq(model.RoleCustomer))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, model.RoleCustomer, resp.User.Role)
	assert.NotEmpty(t, resp.User.PasswordHash)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerReq(model.RoleCustomer))
	require.NoError(t, err)

	dup := registerReq(model.RoleCustomer)
	dup.Email = "PAT@example.com"
	_, err = svc.Register(ctx, dup)
	assert.True(t, apperrors.IsConflict(err))
}

func TestRegisterBarberCreatesProfile(t *testing.T) {
	svc, barbers := newService(t)
	ctx := context.Background()

	req := registerReq(model.RoleBarber)
	req.Specialization = "fades"
	resp, err := svc.Register(ctx, req)
	require.NoError(t, err)

	profile, err := barbers.ResolveByUser(ctx, resp.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "fades", profile.Specialization)
	assert.NotEmpty(t, profile.WorkingHours)
}

func TestLogin(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerReq(model.RoleCustomer))
	require.NoError(t, err)

	resp, err := svc.Login(ctx, &model.LoginRequest{Email: "pat@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	_, err = svc.Login(ctx, &model.LoginRequest{Email: "pat@example.com", Password: "wrong"})
	assert.True(t, apperrors.Code(err) == apperrors.ErrUnauthorized)

	_, err = svc.Login(ctx, &model.LoginRequest{Email: "nobody@example.com", Password: "correct-horse"})
	assert.True(t, apperrors.Code(err) == apperrors.ErrUnauthorized)
}
