package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/papertrade/api/internal/domain"
	"github.com/papertrade/api/internal/repository"
)

var (
	ErrUsernameExists = repository.ErrUsernameExists
	ErrWrongPassword  = errors.New("wrong password")
)

type AuthUserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	FindByUsername(ctx context.Context, username string) (domain.User, error)
	UsernameTaken(ctx context.Context, username string) (bool, error)
}

type AuthService struct {
	repo         AuthUserRepository
	startingCash decimal.Decimal
}

func NewAuthService(repo AuthUserRepository, startingCash decimal.Decimal) *AuthService {
	return &AuthService{
		repo:         repo,
		startingCash: startingCash,
	}
}

// Register creates a user with a hashed password and the fixed starting
// cash balance. Usernames are unique, compared case-sensitively.
func (s *AuthService) Register(ctx context.Context, username, password string) (domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, err
	}

	created, err := s.repo.Create(ctx, domain.User{
		Username: username,
		Password: string(hash),
		Cash:     s.startingCash,
	})
	if err != nil {
		if errors.Is(err, repository.ErrUsernameExists) {
			return domain.User{}, ErrUsernameExists
		}

		return domain.User{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (domain.User, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, ErrUserNotFound
		}

		return domain.User{}, fmt.Errorf("s.repo.FindByUsername -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return domain.User{}, ErrWrongPassword
	}

	return user, nil
}

// CheckUsername reports whether a username is available: non-empty and
// not already registered.
func (s *AuthService) CheckUsername(ctx context.Context, username string) (bool, error) {
	if username == "" {
		return false, nil
	}

	taken, err := s.repo.UsernameTaken(ctx, username)
	if err != nil {
		return false, fmt.Errorf("s.repo.UsernameTaken -> %w", err)
	}

	return !taken, nil
}
