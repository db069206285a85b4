package service

import (
	"context"

	"github.com/papertrade/api/internal/domain"
	"github.com/papertrade/api/internal/repository"
)

var (
	ErrUserNotFound = repository.ErrUserNotFound
)

type UserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
}
