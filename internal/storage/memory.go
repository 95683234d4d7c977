package storage

import (
	taskrepo "github.com/AlibekovAA/tasklist/backend/internal/task/repository"
	userrepo "github.com/AlibekovAA/tasklist/backend/internal/user/repository"
)

// NewMemoryStore returns a store whose contents live only as long as the process.
func NewMemoryStore() *Store {
	return &Store{
		Users: userrepo.NewMemoryRepository(),
		Tasks: taskrepo.NewMemoryRepository(),
		name:  BackendMemory,
	}
}
