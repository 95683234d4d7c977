package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/AlibekovAA/tasklist/backend/internal/common/config"
	"github.com/AlibekovAA/tasklist/backend/internal/common/logger"
	"github.com/AlibekovAA/tasklist/backend/internal/observability/metrics"
	taskrepo "github.com/AlibekovAA/tasklist/backend/internal/task/repository"
	userrepo "github.com/AlibekovAA/tasklist/backend/internal/user/repository"
)

const (
	BackendPostgres = "postgres"
	BackendMongo    = "mongodb"
	BackendMemory   = "memory"
)

var ErrUnsupportedScheme = errors.New("unsupported storage url scheme")

// Store is an open storage backend. It is created by Open and must be
// released with Close.
type Store struct {
	Users userrepo.Repository
	Tasks taskrepo.Repository

	name     string
	fallback bool
	ping     func(ctx context.Context) error
	close    func(ctx context.Context) error
}

func (s *Store) Name() string     { return s.name }
func (s *Store) IsFallback() bool { return s.fallback }

func (s *Store) Ping(ctx context.Context) error {
	if s.ping == nil {
		return nil
	}
	return s.ping(ctx)
}

func (s *Store) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}

// Open connects to the backend named by cfg.URL's scheme. When the backend
// is unreachable and cfg allows it, a transient in-memory store is returned
// instead; production configurations never fall back.
func Open(ctx context.Context, cfg config.StorageConfig, log *logger.Logger) (*Store, error) {
	backend, err := backendFor(cfg.URL)
	if err != nil {
		return nil, err
	}

	var store *Store
	switch backend {
	case BackendMemory:
		store = NewMemoryStore()
	case BackendPostgres:
		store, err = openPostgres(ctx, cfg, log)
	case BackendMongo:
		store, err = openMongo(ctx, cfg, log)
	}

	if err != nil {
		if cfg.Production || !cfg.MemoryFallback {
			return nil, fmt.Errorf("open %s storage: %w", backend, err)
		}
		log.WithFields(ctx, logger.Fields{
			"action":  "storage_fallback",
			"backend": backend,
		}).Warnf("%s storage unavailable, falling back to in-memory store: %v", backend, err)
		store = NewMemoryStore()
		store.fallback = true
	}

	metrics.StorageBackendInfo.WithLabelValues(store.name, fmt.Sprintf("%t", store.fallback)).Set(1)
	log.WithFields(ctx, logger.Fields{
		"action":   "storage_open",
		"backend":  store.name,
		"fallback": store.fallback,
	}).Info("storage ready")

	return store, nil
}

func backendFor(url string) (string, error) {
	scheme, _, ok := strings.Cut(url, "://")
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedScheme, url)
	}
	switch strings.ToLower(scheme) {
	case "postgres", "postgresql":
		return BackendPostgres, nil
	case "mongodb", "mongodb+srv":
		return BackendMongo, nil
	case "memory":
		return BackendMemory, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedScheme, scheme)
	}
}
