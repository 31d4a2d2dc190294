package barber

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barberbook/barber-api/internal/model"
	"github.com/barberbook/barber-api/internal/repository/memory"
	apperrors "github.com/barberbook/barber-api/pkg/errors"
)

func TestResolveByProfileAndUserID(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.NewBarberRepository())

	profile := &model.Barber{UserID: uuid.New(), Name: "Bob"}
	require.NoError(t, svc.Create(ctx, profile))

	byProfile, err := svc.Resolve(ctx, profile.ID.String())
	require.NoError(t, err)
	assert.Equal(t, profile.ID, byProfile.ID)

	byUser, err := svc.Resolve(ctx, profile.UserID.String())
	require.NoError(t, err)
	assert.Equal(t, profile.ID, byUser.ID)

	_, err = svc.Resolve(ctx, uuid.NewString())
	assert.True(t, apperrors.IsNotFound(err))

	_, err = svc.Resolve(ctx, "not-a-uuid")
	assert.True(t, apperrors.IsBadRequest(err))
}

func TestCreateAppliesDefaultHours(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.NewBarberRepository())

	profile := &model.Barber{UserID: uuid.New(), Name: "Bob"}
	require.NoError(t, svc.Create(ctx, profile))
	assert.Equal(t, model.DefaultWorkingHours(), profile.WorkingHours)

	custom := &model.Barber{
		UserID:       uuid.New(),
		Name:         "Ann",
		WorkingHours: model.WorkingHours{"monday": "08:00-12:00"},
	}
	require.NoError(t, svc.Create(ctx, custom))
	assert.Equal(t, "08:00-12:00", custom.WorkingHours["monday"])
}
