// Package preferences manages per-user travel preference rows.
package preferences

import (
	"context"
	"time"

	"github.com/Nnvvee96/planora.ai-sub005/internal/domain"
)

type Service interface {
	Get(ctx context.Context, userID string) (*domain.TravelPreferences, error)
	Put(ctx context.Context, userID string, prefs domain.TravelPreferences) (*domain.TravelPreferences, error)
}

type preferencesStore interface {
	Get(ctx context.Context, userID string) (*domain.TravelPreferences, error)
	Put(ctx context.Context, p *domain.TravelPreferences) error
}

type service struct {
	repo preferencesStore
}

func NewService(repo preferencesStore) Service {
	return &service{repo: repo}
}

func (s *service) Get(ctx context.Context, userID string) (*domain.TravelPreferences, error) {
	return s.repo.Get(ctx, userID)
}

func (s *service) Put(ctx context.Context, userID string, prefs domain.TravelPreferences) (*domain.TravelPreferences, error) {
	prefs.UserID = userID
	prefs.UpdatedAt = time.Now().UTC()
	if err := s.repo.Put(ctx, &prefs); err != nil {
		return nil, err
	}
	return &prefs, nil
}
