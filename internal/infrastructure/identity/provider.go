// Package identity implements the identity provider over the users table.
package identity

import (
	"context"
	"fmt"
	"time"

	"github.com/Nnvvee96/planora.ai-sub005/internal/domain"
	"github.com/Nnvvee96/planora.ai-sub005/internal/pkg/id"
)

type userStore interface {
	Put(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Delete(ctx context.Context, userID string) error
}

// Provider creates and deletes authenticated identities.
type Provider struct {
	users userStore
}

func NewProvider(users userStore) *Provider {
	return &Provider{users: users}
}

// CreateUser provisions an identity and returns its id. passwordHash must be
// a bcrypt hash; the provider never handles raw passwords.
func (p *Provider) CreateUser(ctx context.Context, email, passwordHash string, emailConfirmed bool) (string, error) {
	if _, err := p.users.GetByEmail(ctx, email); err == nil {
		return "", fmt.Errorf("email already registered: %w", domain.ErrIdentity)
	}
	u := &domain.User{
		UserID:         id.New(),
		Email:          email,
		PasswordHash:   passwordHash,
		EmailConfirmed: emailConfirmed,
		CreatedAt:      time.Now().UTC(),
	}
	if err := p.users.Put(ctx, u); err != nil {
		return "", fmt.Errorf("create user: %w (%w)", err, domain.ErrIdentity)
	}
	return u.UserID, nil
}

// DeleteUser removes the identity. Deleting an absent identity is a no-op.
func (p *Provider) DeleteUser(ctx context.Context, userID string) error {
	return p.users.Delete(ctx, userID)
}
