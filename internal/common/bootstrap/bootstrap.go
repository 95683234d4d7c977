package bootstrap

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	authhttp "github.com/AlibekovAA/tasklist/backend/internal/auth/http"
	authservice "github.com/AlibekovAA/tasklist/backend/internal/auth/service"
	"github.com/AlibekovAA/tasklist/backend/internal/common/clock"
	"github.com/AlibekovAA/tasklist/backend/internal/common/config"
	"github.com/AlibekovAA/tasklist/backend/internal/common/constants"
	commoncrypto "github.com/AlibekovAA/tasklist/backend/internal/common/crypto"
	commonhttp "github.com/AlibekovAA/tasklist/backend/internal/common/http"
	"github.com/AlibekovAA/tasklist/backend/internal/common/jwtverify"
	"github.com/AlibekovAA/tasklist/backend/internal/common/logger"
	"github.com/AlibekovAA/tasklist/backend/internal/storage"
	taskhttp "github.com/AlibekovAA/tasklist/backend/internal/task/http"
	taskservice "github.com/AlibekovAA/tasklist/backend/internal/task/service"
)

// App holds the process-wide dependencies. Everything is constructed
// explicitly and released by Close.
type App struct {
	Log         *logger.Logger
	Config      config.AppConfig
	Clock       clock.Clock
	Store       *storage.Store
	AuthService *authservice.AuthService
	TaskService *taskservice.TaskService
}

func NewApp(ctx context.Context, cfg config.AppConfig, log *logger.Logger) (*App, error) {
	if cfg.JWTSecretIsDev {
		log.WithFields(ctx, logger.Fields{
			"action":      "insecure_jwt_secret",
			"environment": cfg.Environment,
		}).Warn("JWT_SECRET is not set; using the development fallback secret")
	}

	store, err := storage.Open(ctx, cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	clk := clock.NewRealClock()
	ids := commoncrypto.NewUUIDGenerator()
	tokens := authservice.NewTokenIssuer(cfg.JWTSecret, ids, constants.AccessTokenTTL, clk)
	verifier := authservice.NewPasswordVerifier(commoncrypto.NewBcryptHasher())

	return &App{
		Log:         log,
		Config:      cfg,
		Clock:       clk,
		Store:       store,
		AuthService: authservice.NewAuthService(store.Users, verifier, tokens, ids, clk, log),
		TaskService: taskservice.NewTaskService(store.Tasks, ids, clk, log),
	}, nil
}

// Handler returns the complete HTTP handler including the shared middleware chain.
func (a *App) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: a.Config.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", commonhttp.TraceIDHeader},
		ExposedHeaders: []string{commonhttp.TraceIDHeader},
		MaxAge:         constants.DefaultCORSMaxAge,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		commonhttp.WriteErrorEnvelope(w, http.StatusNotFound, commonhttp.CodeNotFound, "Not found", commonhttp.TraceIDFromContext(r.Context()))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		commonhttp.WriteErrorEnvelope(w, http.StatusMethodNotAllowed, commonhttp.CodeMethodNotAllowed, "Method not allowed", commonhttp.TraceIDFromContext(r.Context()))
	})

	r.Get("/health", commonhttp.HealthHandler(a.Store, a.Log))
	r.Handle("/metrics", promhttp.Handler())

	authhttp.NewHandler(a.AuthService, a.Log).Routes(r)

	guard := jwtverify.Middleware(a.Config.JWTSecret, a.Clock, a.Log)
	taskhttp.NewHandler(a.TaskService, a.Log).Routes(r, guard)

	return commonhttp.BuildBaseHandler(a.Log, r)
}

func (a *App) Close(ctx context.Context) error {
	a.Log.Infof("closing %s storage", a.Store.Name())
	return a.Store.Close(ctx)
}
