package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/Nnvvee96/planora.ai-sub005/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) Put(ctx context.Context, u *domain.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserStore) Delete(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	users := &mockUserStore{}
	users.On("GetByEmail", mock.Anything, "alice@example.com").
		Return(&domain.User{UserID: "u1", Email: "alice@example.com"}, nil)
	p := NewProvider(users)

	userID, err := p.CreateUser(context.Background(), "alice@example.com", "$2a$10$hash", true)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrIdentity))
	assert.Empty(t, userID)
	users.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestCreateUser_HappyPath(t *testing.T) {
	users := &mockUserStore{}
	users.On("GetByEmail", mock.Anything, "alice@example.com").Return(nil, domain.ErrNotFound)

	var persisted *domain.User
	users.On("Put", mock.Anything, mock.AnythingOfType("*domain.User")).
		Run(func(args mock.Arguments) {
			persisted = args.Get(1).(*domain.User)
		}).Return(nil)
	p := NewProvider(users)

	userID, err := p.CreateUser(context.Background(), "alice@example.com", "$2a$10$hash", true)

	require.NoError(t, err)
	require.NotNil(t, persisted)
	assert.Equal(t, persisted.UserID, userID)
	assert.Equal(t, "alice@example.com", persisted.Email)
	assert.Equal(t, "$2a$10$hash", persisted.PasswordHash)
	assert.True(t, persisted.EmailConfirmed)
}

func TestCreateUser_PersistFailure(t *testing.T) {
	users := &mockUserStore{}
	users.On("GetByEmail", mock.Anything, "alice@example.com").Return(nil, domain.ErrNotFound)
	users.On("Put", mock.Anything, mock.Anything).Return(errors.New("write throttled"))
	p := NewProvider(users)

	userID, err := p.CreateUser(context.Background(), "alice@example.com", "$2a$10$hash", true)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrIdentity))
	assert.Empty(t, userID)
}

func TestDeleteUser_Delegates(t *testing.T) {
	users := &mockUserStore{}
	users.On("Delete", mock.Anything, "u1").Return(nil)
	p := NewProvider(users)

	require.NoError(t, p.DeleteUser(context.Background(), "u1"))
	users.AssertExpectations(t)
}
