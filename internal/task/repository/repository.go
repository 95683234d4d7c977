package repository

import (
	"context"
	"errors"

	"github.com/AlibekovAA/tasklist/backend/internal/task/domain"
	userdomain "github.com/AlibekovAA/tasklist/backend/internal/user/domain"
)

// Repository is the owner-scoped task store. Every read and write is
// restricted to tasks whose owner matches the given user.
type Repository interface {
	Create(ctx context.Context, task domain.Task) error
	// List returns the owner's tasks whose text contains filter
	// (case-insensitive, literal), newest first.
	List(ctx context.Context, owner userdomain.ID, filter string) ([]domain.Task, error)
	UpdateText(ctx context.Context, owner userdomain.ID, id domain.ID, text string) (domain.Task, error)
	Delete(ctx context.Context, owner userdomain.ID, id domain.ID) error
}

var ErrTaskNotFound = errors.New("task not found")
