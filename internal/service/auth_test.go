package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/papertrade/api/internal/domain"
	"github.com/papertrade/api/internal/repository"
)

type fakeUserStore struct {
	users  map[string]domain.User
	nextID uint
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		users:  make(map[string]domain.User),
		nextID: 1,
	}
}

func (s *fakeUserStore) Create(_ context.Context, user domain.User) (domain.User, error) {
	if _, ok := s.users[user.Username]; ok {
		return domain.User{}, repository.ErrUsernameExists
	}

	user.ID = s.nextID
	s.nextID++
	s.users[user.Username] = user

	return user, nil
}

func (s *fakeUserStore) FindByUsername(_ context.Context, username string) (domain.User, error) {
	user, ok := s.users[username]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}

	return user, nil
}

func (s *fakeUserStore) UsernameTaken(_ context.Context, username string) (bool, error) {
	_, ok := s.users[username]

	return ok, nil
}

func TestAuthService_Register(t *testing.T) {
	store := newFakeUserStore()
	svc := NewAuthService(store, decimal.NewFromInt(10000))

	user, err := svc.Register(context.Background(), "alice", "password1")
	require.NoError(t, err)

	require.Equal(t, "alice", user.Username)
	require.True(t, user.Cash.Equal(decimal.NewFromInt(10000)), "cash %v", user.Cash)

	// The password is stored hashed, never verbatim.
	require.NotEqual(t, "password1", user.Password)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password1")))
}

func TestAuthService_Register_UsernameExists(t *testing.T) {
	store := newFakeUserStore()
	svc := NewAuthService(store, decimal.NewFromInt(10000))

	_, err := svc.Register(context.Background(), "alice", "password1")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "alice", "password2")
	require.ErrorIs(t, err, ErrUsernameExists)
}

func TestAuthService_Register_UsernameIsCaseSensitive(t *testing.T) {
	store := newFakeUserStore()
	svc := NewAuthService(store, decimal.NewFromInt(10000))

	_, err := svc.Register(context.Background(), "alice", "password1")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "Alice", "password1")
	require.NoError(t, err)
}

func TestAuthService_Login(t *testing.T) {
	store := newFakeUserStore()
	svc := NewAuthService(store, decimal.NewFromInt(10000))

	_, err := svc.Register(context.Background(), "alice", "password1")
	require.NoError(t, err)

	user, err := svc.Login(context.Background(), "alice", "password1")
	require.NoError(t, err)
	require.Equal(t, "alice", user.Username)

	_, err = svc.Login(context.Background(), "alice", "wrong-password")
	require.ErrorIs(t, err, ErrWrongPassword)

	_, err = svc.Login(context.Background(), "nobody", "password1")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthService_CheckUsername(t *testing.T) {
	store := newFakeUserStore()
	svc := NewAuthService(store, decimal.NewFromInt(10000))

	available, err := svc.CheckUsername(context.Background(), "alice")
	require.NoError(t, err)
	require.True(t, available)

	_, err = svc.Register(context.Background(), "alice", "password1")
	require.NoError(t, err)

	available, err = svc.CheckUsername(context.Background(), "alice")
	require.NoError(t, err)
	require.False(t, available)

	available, err = svc.CheckUsername(context.Background(), "")
	require.NoError(t, err)
	require.False(t, available)
}
