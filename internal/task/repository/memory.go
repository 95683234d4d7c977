package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/AlibekovAA/tasklist/backend/internal/task/domain"
	"github.com/AlibekovAA/tasklist/backend/internal/task/query"
	userdomain "github.com/AlibekovAA/tasklist/backend/internal/user/domain"
)

type MemoryRepository struct {
	mu    sync.RWMutex
	tasks map[domain.ID]domain.Task
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{tasks: make(map[domain.ID]domain.Task)}
}

func (r *MemoryRepository) Create(_ context.Context, task domain.Task) error {
	r.mu.Lock()
	r.tasks[task.ID] = task
	r.mu.Unlock()
	return nil
}

func (r *MemoryRepository) List(_ context.Context, owner userdomain.ID, filter string) ([]domain.Task, error) {
	r.mu.RLock()
	out := []domain.Task{}
	for _, t := range r.tasks {
		if t.OwnerID == owner {
			out = append(out, t)
		}
	}
	r.mu.RUnlock()

	out = query.Filter(out, filter)

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryRepository) UpdateText(_ context.Context, owner userdomain.ID, id domain.ID, text string) (domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[id]
	if !ok || t.OwnerID != owner {
		return domain.Task{}, ErrTaskNotFound
	}
	t.Text = text
	r.tasks[id] = t
	return t, nil
}

func (r *MemoryRepository) Delete(_ context.Context, owner userdomain.ID, id domain.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[id]
	if !ok || t.OwnerID != owner {
		return ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}
