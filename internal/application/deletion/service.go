// Package deletion creates account deletion requests with a grace period.
package deletion

import (
	"context"
	"fmt"
	"time"

	"github.com/Nnvvee96/planora.ai-sub005/internal/domain"
	"github.com/Nnvvee96/planora.ai-sub005/internal/pkg/id"
)

type Service interface {
	// Request schedules the user's account for purge after the grace period.
	Request(ctx context.Context, userID string) (*domain.AccountDeletionRequest, error)
}

type deletionStore interface {
	Put(ctx context.Context, req *domain.AccountDeletionRequest) error
}

type userStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
}

type service struct {
	deletionRepo deletionStore
	userRepo     userStore
	grace        time.Duration
}

func NewService(deletionRepo deletionStore, userRepo userStore, grace time.Duration) Service {
	return &service{deletionRepo: deletionRepo, userRepo: userRepo, grace: grace}
}

func (s *service) Request(ctx context.Context, userID string) (*domain.AccountDeletionRequest, error) {
	if _, err := s.userRepo.Get(ctx, userID); err != nil {
		return nil, fmt.Errorf("user not found: %w", domain.ErrNotFound)
	}
	now := time.Now().UTC()
	req := &domain.AccountDeletionRequest{
		ID:               id.New(),
		UserID:           userID,
		Status:           domain.DeletionStatusPending,
		ScheduledPurgeAt: now.Add(s.grace).Unix(),
		CreatedAt:        now,
	}
	if err := s.deletionRepo.Put(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}
