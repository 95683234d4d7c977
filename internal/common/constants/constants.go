package constants

import "time"

const (
	EnvProduction  = "production"
	EnvDevelopment = "development"
	EnvTest        = "test"

	AccessTokenTTL       = 1 * time.Hour
	BcryptCost           = 10
	DevelopmentJWTSecret = "secret"
	JWTSecretMinLength   = 32

	// BcryptMaxPasswordBytes is bcrypt's input limit; longer passwords are truncated.
	BcryptMaxPasswordBytes = 72

	DefaultHTTPPort              = "5000"
	DefaultStorageURL            = "mongodb://localhost:27017/taskdb"
	DefaultMongoDatabase         = "taskdb"
	DefaultStorageConnectTimeout = 10 * time.Second
	DefaultMaxRequestSize        = 1 << 20
	DefaultCORSMaxAge            = 300

	DBPoolMaxConns        = 10
	DBPoolMinConns        = 1
	DBPoolConnMaxLifetime = 30 * time.Minute
	DBPoolConnMaxIdleTime = 5 * time.Minute
	DBPoolHealthCheck     = 30 * time.Second
	DBPoolMetricsInterval = 30 * time.Second

	ServerReadHeaderTimeout = 10 * time.Second
	ServerReadTimeout       = 30 * time.Second
	ServerWriteTimeout      = 30 * time.Second
	ServerIdleTimeout       = 120 * time.Second

	ShutdownTimeout = 30 * time.Second
	DrainTimeout    = 10 * time.Second
	HealthTimeout   = 2 * time.Second

	LoggerMaxSize    = 100
	LoggerMaxBackups = 3
	LoggerMaxAge     = 28
)

type TraceIDKeyType string

const TraceIDKey TraceIDKeyType = "trace_id"
