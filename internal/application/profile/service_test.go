package profile

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/Nnvvee96/planora.ai-sub005/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockProfileStore struct{ mock.Mock }

func (m *mockProfileStore) Put(ctx context.Context, p *domain.Profile) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockProfileStore) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	args := m.Called(ctx, userID)
	if p, _ := args.Get(0).(*domain.Profile); p != nil {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProfileStore) Update(ctx context.Context, userID string, updates map[string]interface{}) error {
	return m.Called(ctx, userID, updates).Error(0)
}

type mockObjectStore struct{ mock.Mock }

func (m *mockObjectStore) Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error) {
	args := m.Called(ctx, key, r, contentType)
	return args.String(0), args.Error(1)
}

func (m *mockObjectStore) PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	args := m.Called(ctx, key, ttl)
	return args.String(0), args.Error(1)
}

func TestGet_PresignsAvatarURL(t *testing.T) {
	repo := &mockProfileStore{}
	avatars := &mockObjectStore{}
	repo.On("Get", mock.Anything, "u1").Return(&domain.Profile{UserID: "u1", AvatarKey: "avatars/u1/pic.png"}, nil)
	avatars.On("PresignedURL", mock.Anything, "avatars/u1/pic.png", avatarURLTTL).
		Return("https://bucket.example/avatars/u1/pic.png?sig=abc", nil)
	svc := NewService(repo, avatars)

	p, err := svc.Get(context.Background(), "u1")

	require.NoError(t, err)
	assert.Equal(t, "https://bucket.example/avatars/u1/pic.png?sig=abc", p.AvatarURL)
}

func TestGet_PresignFailure_IsNotFatal(t *testing.T) {
	repo := &mockProfileStore{}
	avatars := &mockObjectStore{}
	repo.On("Get", mock.Anything, "u1").Return(&domain.Profile{UserID: "u1", AvatarKey: "avatars/u1/pic.png"}, nil)
	avatars.On("PresignedURL", mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("bucket unreachable"))
	svc := NewService(repo, avatars)

	p, err := svc.Get(context.Background(), "u1")

	require.NoError(t, err)
	assert.Empty(t, p.AvatarURL)
}

func TestGet_NoAvatar_SkipsPresign(t *testing.T) {
	repo := &mockProfileStore{}
	avatars := &mockObjectStore{}
	repo.On("Get", mock.Anything, "u1").Return(&domain.Profile{UserID: "u1"}, nil)
	svc := NewService(repo, avatars)

	_, err := svc.Get(context.Background(), "u1")

	require.NoError(t, err)
	avatars.AssertNotCalled(t, "PresignedURL", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdate_PartialFields(t *testing.T) {
	repo := &mockProfileStore{}
	avatars := &mockObjectStore{}
	name := "Alice"
	repo.On("Update", mock.Anything, "u1", map[string]interface{}{"display_name": "Alice"}).Return(nil)
	repo.On("Get", mock.Anything, "u1").Return(&domain.Profile{UserID: "u1", DisplayName: "Alice"}, nil)
	svc := NewService(repo, avatars)

	p, err := svc.Update(context.Background(), "u1", domain.UpdateProfileRequest{DisplayName: &name})

	require.NoError(t, err)
	assert.Equal(t, "Alice", p.DisplayName)
	repo.AssertExpectations(t)
}

func TestUpdate_NoFields_ReturnsCurrent(t *testing.T) {
	repo := &mockProfileStore{}
	avatars := &mockObjectStore{}
	repo.On("Get", mock.Anything, "u1").Return(&domain.Profile{UserID: "u1"}, nil)
	svc := NewService(repo, avatars)

	_, err := svc.Update(context.Background(), "u1", domain.UpdateProfileRequest{})

	require.NoError(t, err)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadAvatar_RecordsKey(t *testing.T) {
	repo := &mockProfileStore{}
	avatars := &mockObjectStore{}
	avatars.On("Upload", mock.Anything, "avatars/u1/pic.png", mock.Anything, "").Return("avatars/u1/pic.png", nil)
	repo.On("Update", mock.Anything, "u1", map[string]interface{}{"avatar_key": "avatars/u1/pic.png"}).Return(nil)
	repo.On("Get", mock.Anything, "u1").Return(&domain.Profile{UserID: "u1", AvatarKey: "avatars/u1/pic.png"}, nil)
	avatars.On("PresignedURL", mock.Anything, "avatars/u1/pic.png", avatarURLTTL).Return("https://bucket.example/signed", nil)
	svc := NewService(repo, avatars)

	p, err := svc.UploadAvatar(context.Background(), "u1", "pic.png", bytes.NewReader([]byte("png-bytes")))

	require.NoError(t, err)
	assert.Equal(t, "avatars/u1/pic.png", p.AvatarKey)
	assert.Equal(t, "https://bucket.example/signed", p.AvatarURL)
	repo.AssertExpectations(t)
	avatars.AssertExpectations(t)
}
