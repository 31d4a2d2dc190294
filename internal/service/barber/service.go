package barber

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/barberbook/barber-api/internal/model"
	"github.com/barberbook/barber-api/internal/repository"
	apperrors "github.com/barberbook/barber-api/pkg/errors"
)

const (
	cacheTTL     = 5 * time.Minute
	cacheCleanup = 10 * time.Minute
)

// Service serves barber catalog reads. Profiles are cached briefly; the
// booking flow tolerates slightly stale catalog data because bookings copy
// duration and price at creation.
type Service struct {
	repo  repository.BarberRepository
	cache *cache.Cache
}

func NewService(repo repository.BarberRepository) *Service {
	return &Service{
		repo:  repo,
		cache: cache.New(cacheTTL, cacheCleanup),
	}
}

func (s *Service) List(ctx context.Context) ([]*model.Barber, error) {
	barbers, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list barbers: %w", err)
	}
	return barbers, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Barber, error) {
	return s.repo.Get(ctx, id)
}

// Resolve canonicalizes a barber reference. Clients may address a barber by
// profile id or by the underlying user account id; the profile id wins and
// the user id is only tried when no profile matches. Everything downstream
// of this call works with the profile id alone.
func (s *Service) Resolve(ctx context.Context, ref string) (*model.Barber, error) {
	id, err := uuid.Parse(ref)
	if err != nil {
		return nil, apperrors.BadRequest("invalid barber id", err)
	}

	if cached, ok := s.cache.Get(cacheKey(id)); ok {
		barber := cached.(model.Barber)
		return &barber, nil
	}

	barber, err := s.repo.Get(ctx, id)
	if apperrors.IsNotFound(err) {
		barber, err = s.repo.GetByUserID(ctx, id)
	}
	if err != nil {
		return nil, err
	}

	s.cache.Set(cacheKey(id), *barber, cache.DefaultExpiration)
	return barber, nil
}

// ResolveByUser returns the profile behind a barber user account.
func (s *Service) ResolveByUser(ctx context.Context, userID uuid.UUID) (*model.Barber, error) {
	return s.repo.GetByUserID(ctx, userID)
}

func (s *Service) Create(ctx context.Context, barber *model.Barber) error {
	if len(barber.WorkingHours) == 0 {
		barber.WorkingHours = model.DefaultWorkingHours()
	}
	if err := s.repo.Create(ctx, barber); err != nil {
		return fmt.Errorf("failed to create barber: %w", err)
	}
	return nil
}

func cacheKey(id uuid.UUID) string {
	return "barber:" + id.String()
}
