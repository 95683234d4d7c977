package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/jackc/pgx/v4/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/AlibekovAA/tasklist/backend/internal/common/config"
	"github.com/AlibekovAA/tasklist/backend/internal/common/constants"
	"github.com/AlibekovAA/tasklist/backend/internal/common/db"
	"github.com/AlibekovAA/tasklist/backend/internal/common/logger"
	"github.com/AlibekovAA/tasklist/backend/internal/storage/migrations"
	taskrepo "github.com/AlibekovAA/tasklist/backend/internal/task/repository"
	userrepo "github.com/AlibekovAA/tasklist/backend/internal/user/repository"
)

func openPostgres(ctx context.Context, cfg config.StorageConfig, log *logger.Logger) (*Store, error) {
	pool, err := db.NewPool(ctx, log, cfg.URL, cfg.ConnectTimeout)
	if err != nil {
		return nil, err
	}

	if err := runMigrations(ctx, pool, log); err != nil {
		pool.Close()
		return nil, err
	}

	metricsCtx, stopMetrics := context.WithCancel(context.Background())
	db.StartPoolMetrics(metricsCtx, pool, constants.DBPoolMetricsInterval)

	return &Store{
		Users: userrepo.NewPgRepository(pool),
		Tasks: taskrepo.NewPgRepository(pool),
		name:  BackendPostgres,
		ping:  pool.Ping,
		close: func(context.Context) error {
			stopMetrics()
			pool.Close()
			return nil
		},
	}, nil
}

func runMigrations(ctx context.Context, pool *pgxpool.Pool, log *logger.Logger) error {
	sqlDB := stdlib.OpenDB(*pool.Config().ConnConfig)
	defer sqlDB.Close()

	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(gooseLogger{log: log})
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set migration dialect: %w", err)
	}
	if err := goose.UpContext(ctx, sqlDB, "."); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

type gooseLogger struct {
	log *logger.Logger
}

func (l gooseLogger) Printf(format string, v ...any) {
	l.log.Infof("migrations: "+format, v...)
}

func (l gooseLogger) Fatalf(format string, v ...any) {
	l.log.Fatalf("migrations: "+format, v...)
}
