package repository

import (
	"context"
	"sync"

	"github.com/AlibekovAA/tasklist/backend/internal/user/domain"
)

// MemoryRepository keeps users in process memory. Contents are lost on exit.
type MemoryRepository struct {
	mu         sync.RWMutex
	byID       map[domain.ID]domain.User
	byUsername map[string]domain.ID
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:       make(map[domain.ID]domain.User),
		byUsername: make(map[string]domain.ID),
	}
}

func (r *MemoryRepository) Create(_ context.Context, user domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byUsername[user.Username]; exists {
		return ErrUsernameAlreadyExists
	}
	r.byID[user.ID] = user
	r.byUsername[user.Username] = user.ID
	return nil
}

func (r *MemoryRepository) FindByUsername(_ context.Context, username string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUsername[username]
	if !ok {
		return domain.User{}, ErrUserNotFound
	}
	return r.byID[id], nil
}

func (r *MemoryRepository) UpdatePassword(_ context.Context, id domain.ID, password domain.Password) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.byID[id]
	if !ok {
		return ErrUserNotFound
	}
	user.Password = password
	r.byID[id] = user
	return nil
}
