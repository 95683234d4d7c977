package repository

import (
	"context"
	"errors"

	"github.com/AlibekovAA/tasklist/backend/internal/user/domain"
)

type Repository interface {
	Create(ctx context.Context, user domain.User) error
	FindByUsername(ctx context.Context, username string) (domain.User, error)
	UpdatePassword(ctx context.Context, id domain.ID, password domain.Password) error
}

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrUsernameAlreadyExists = errors.New("username already exists")
)
