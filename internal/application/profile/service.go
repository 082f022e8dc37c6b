// Package profile manages per-user profile rows and avatar objects.
package profile

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/Nnvvee96/planora.ai-sub005/internal/domain"
)

// avatarURLTTL bounds how long a returned avatar link stays valid.
const avatarURLTTL = 15 * time.Minute

type Service interface {
	Get(ctx context.Context, userID string) (*domain.Profile, error)
	Update(ctx context.Context, userID string, req domain.UpdateProfileRequest) (*domain.Profile, error)
	// UploadAvatar stores the avatar object and records its key on the profile.
	UploadAvatar(ctx context.Context, userID, filename string, r io.Reader) (*domain.Profile, error)
}

type profileStore interface {
	Put(ctx context.Context, p *domain.Profile) error
	Get(ctx context.Context, userID string) (*domain.Profile, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
}

type objectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}

type service struct {
	repo    profileStore
	avatars objectStore
}

func NewService(repo profileStore, avatars objectStore) Service {
	return &service{repo: repo, avatars: avatars}
}

func (s *service) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	p, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p.AvatarKey != "" {
		url, err := s.avatars.PresignedURL(ctx, p.AvatarKey, avatarURLTTL)
		if err != nil {
			slog.Warn("failed to presign avatar URL", "user_id", userID, "err", err)
		} else {
			p.AvatarURL = url
		}
	}
	return p, nil
}

func (s *service) Update(ctx context.Context, userID string, req domain.UpdateProfileRequest) (*domain.Profile, error) {
	updates := map[string]interface{}{}
	if req.DisplayName != nil {
		updates["display_name"] = *req.DisplayName
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}
	if len(updates) == 0 {
		return s.Get(ctx, userID)
	}
	if err := s.repo.Update(ctx, userID, updates); err != nil {
		return nil, err
	}
	return s.Get(ctx, userID)
}

func (s *service) UploadAvatar(ctx context.Context, userID, filename string, r io.Reader) (*domain.Profile, error) {
	key := fmt.Sprintf("avatars/%s/%s", userID, filename)
	if _, err := s.avatars.Upload(ctx, key, r, ""); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, userID, map[string]interface{}{"avatar_key": key}); err != nil {
		return nil, err
	}
	return s.Get(ctx, userID)
}
