package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/AlibekovAA/tasklist/backend/internal/common/constants"
)

var (
	ErrMissingRequiredEnv = errors.New("missing required environment variable")
	ErrInvalidJWTSecret   = errors.New("JWT_SECRET must be at least 32 bytes")
)

type StorageConfig struct {
	URL            string
	ConnectTimeout time.Duration
	// MemoryFallback allows a transient in-process store when the primary
	// backend is unreachable. Never honored in production.
	MemoryFallback bool
	Production     bool
}

type AppConfig struct {
	HTTPPort       string
	Environment    string
	JWTSecret      string
	JWTSecretIsDev bool
	Storage        StorageConfig
	AllowedOrigins []string
	LogDir         string
	LogLevel       string
}

// LoadDotenv seeds the environment from the given files (default .env).
// Variables that are already set are left untouched; missing files are ignored.
// A file that exists but fails to parse is skipped and reported in the
// returned error.
func LoadDotenv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	var errs []error
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			errs = append(errs, fmt.Errorf("load %s: %w", p, err))
		}
	}
	return errors.Join(errs...)
}

func Load() (AppConfig, error) {
	env := strings.ToLower(firstNonEmpty(os.Getenv("APP_ENV"), os.Getenv("NODE_ENV"), constants.EnvDevelopment))
	production := env == constants.EnvProduction

	jwtSecret, isDev, err := loadJWTSecret(production)
	if err != nil {
		return AppConfig{}, err
	}

	storageURL := firstNonEmpty(
		os.Getenv("STORAGE_URL"),
		os.Getenv("MONGO_URI"),
		os.Getenv("DATABASE_URL"),
		constants.DefaultStorageURL,
	)

	origins := parseCSV(os.Getenv("ALLOWED_ORIGINS"))
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	return AppConfig{
		HTTPPort:       getEnv("PORT", constants.DefaultHTTPPort),
		Environment:    env,
		JWTSecret:      jwtSecret,
		JWTSecretIsDev: isDev,
		Storage: StorageConfig{
			URL:            storageURL,
			ConnectTimeout: getDurationEnv("STORAGE_CONNECT_TIMEOUT", constants.DefaultStorageConnectTimeout),
			MemoryFallback: !production && getBoolEnv("MEMORY_FALLBACK", true),
			Production:     production,
		},
		AllowedOrigins: origins,
		LogDir:         os.Getenv("LOG_DIR"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}, nil
}

// loadJWTSecret fails closed in production; elsewhere an unset secret falls
// back to the well-known development value.
func loadJWTSecret(production bool) (string, bool, error) {
	if !production {
		if v := os.Getenv("JWT_SECRET"); v != "" {
			return v, false, nil
		}
		return constants.DevelopmentJWTSecret, true, nil
	}

	secret, err := mustEnv("JWT_SECRET")
	if err != nil {
		return "", false, err
	}
	if err := validateJWTSecret(secret); err != nil {
		return "", false, err
	}
	return secret, false, nil
}

func validateJWTSecret(secret string) error {
	if len(secret) < constants.JWTSecretMinLength {
		return fmt.Errorf("%w: got %d bytes", ErrInvalidJWTSecret, len(secret))
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func mustEnv(key string) (string, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingRequiredEnv, key)
	}
	return v, nil
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func getBoolEnv(key string, fallback bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func parseCSV(s string) []string {
	var out []string
	for _, v := range strings.Split(s, ",") {
		if t := strings.TrimSpace(v); t != "" {
			out = append(out, t)
		}
	}
	return out
}
