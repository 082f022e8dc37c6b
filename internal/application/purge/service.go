// Package purge implements the scheduled account-purge worker: an ordered,
// non-atomic saga of idempotent deletion steps per due deletion request.
package purge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Nnvvee96/planora.ai-sub005/internal/domain"
)

type Service interface {
	// RunCycle processes every deletion request due at now and reports the
	// per-user outcomes. It fails only when the candidates cannot be
	// enumerated; per-user failures are isolated into the report.
	RunCycle(ctx context.Context, now time.Time) (*domain.PurgeReport, error)
}

type deletionStore interface {
	ListDue(ctx context.Context, now time.Time) ([]domain.AccountDeletionRequest, error)
	Claim(ctx context.Context, id string) error
	Release(ctx context.Context, id string) error
	Complete(ctx context.Context, id string, purgedAt time.Time) error
}

type preferencesStore interface {
	Delete(ctx context.Context, userID string) error
}

type profileStore interface {
	Get(ctx context.Context, userID string) (*domain.Profile, error)
	Delete(ctx context.Context, userID string) error
}

type assignmentStore interface {
	DeleteByUser(ctx context.Context, userID string) error
}

type objectStore interface {
	Delete(ctx context.Context, key string) error
}

type identityProvider interface {
	DeleteUser(ctx context.Context, userID string) error
}

type reportPublisher interface {
	PublishPurgeReport(ctx context.Context, report *domain.PurgeReport) error
}

type service struct {
	deletionRepo   deletionStore
	preferenceRepo preferencesStore
	profileRepo    profileStore
	assignmentRepo assignmentStore
	avatars        objectStore
	identity       identityProvider
	reports        reportPublisher // nil disables publishing
}

type ServiceDeps struct {
	DeletionRepo   deletionStore
	PreferenceRepo preferencesStore
	ProfileRepo    profileStore
	AssignmentRepo assignmentStore
	Avatars        objectStore
	Identity       identityProvider
	Reports        reportPublisher
}

func NewService(deps ServiceDeps) Service {
	return &service{
		deletionRepo:   deps.DeletionRepo,
		preferenceRepo: deps.PreferenceRepo,
		profileRepo:    deps.ProfileRepo,
		assignmentRepo: deps.AssignmentRepo,
		avatars:        deps.Avatars,
		identity:       deps.Identity,
		reports:        deps.Reports,
	}
}

func (s *service) RunCycle(ctx context.Context, now time.Time) (*domain.PurgeReport, error) {
	candidates, err := s.deletionRepo.ListDue(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("enumerate purge candidates: %w", err)
	}

	report := &domain.PurgeReport{
		ProcessedAt: now.UTC(),
		Results:     []domain.PurgeResult{},
	}
	for _, req := range candidates {
		// Claim before touching any data so an overlapping cycle cannot
		// process the same request.
		if err := s.deletionRepo.Claim(ctx, req.ID); err != nil {
			slog.Info("skipping deletion request claimed elsewhere", "request_id", req.ID, "user_id", req.UserID)
			continue
		}
		result := domain.PurgeResult{UserID: req.UserID, Success: true}
		if err := s.purgeUser(ctx, req, now); err != nil {
			result.Success = false
			result.Error = err.Error()
			if relErr := s.deletionRepo.Release(ctx, req.ID); relErr != nil {
				slog.Error("failed to release deletion request for retry", "request_id", req.ID, "err", relErr)
			}
			slog.Error("account purge failed", "request_id", req.ID, "user_id", req.UserID, "err", err)
		}
		report.Results = append(report.Results, result)
	}
	report.TotalProcessed = len(report.Results)

	if s.reports != nil {
		if err := s.reports.PublishPurgeReport(ctx, report); err != nil {
			slog.Warn("failed to publish purge report", "err", err)
		}
	}
	return report, nil
}

// purgeUser runs the ordered deletion saga for one request. Soft steps log and
// continue; hard steps abort, leaving the request eligible for retry. Every
// step is idempotent, so a retried cycle repeats completed steps as no-ops.
func (s *service) purgeUser(ctx context.Context, req domain.AccountDeletionRequest, now time.Time) error {
	// Soft: travel preferences.
	if err := s.preferenceRepo.Delete(ctx, req.UserID); err != nil {
		slog.Warn("failed to delete travel preferences, continuing", "user_id", req.UserID, "err", err)
	}

	// Soft: avatar object, when the profile still references one.
	if p, err := s.profileRepo.Get(ctx, req.UserID); err == nil && p.AvatarKey != "" {
		if err := s.avatars.Delete(ctx, p.AvatarKey); err != nil {
			slog.Warn("failed to delete avatar object, continuing", "user_id", req.UserID, "key", p.AvatarKey, "err", err)
		}
	} else if err != nil && !errors.Is(err, domain.ErrNotFound) {
		slog.Warn("failed to load profile for avatar cleanup, continuing", "user_id", req.UserID, "err", err)
	}

	// Soft: role assignments.
	if err := s.assignmentRepo.DeleteByUser(ctx, req.UserID); err != nil {
		slog.Warn("failed to delete role assignments, continuing", "user_id", req.UserID, "err", err)
	}

	// Hard: profile.
	if err := s.profileRepo.Delete(ctx, req.UserID); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}

	// Hard: identity.
	if err := s.identity.DeleteUser(ctx, req.UserID); err != nil {
		return fmt.Errorf("delete identity: %w", err)
	}

	// All deletion steps completed. A failed finalize is logged, not rolled
	// back; releasing the claim keeps the request retryable, and the retry
	// repeats the deletes as no-ops before finalizing again.
	if err := s.deletionRepo.Complete(ctx, req.ID, now); err != nil {
		slog.Error("failed to mark deletion request completed", "request_id", req.ID, "err", err)
		if relErr := s.deletionRepo.Release(ctx, req.ID); relErr != nil {
			slog.Error("failed to release deletion request after finalize failure", "request_id", req.ID, "err", relErr)
		}
	}
	return nil
}
