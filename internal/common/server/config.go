package server

import (
	stdlog "log"
	"net/http"
	"strings"
	"time"

	"github.com/AlibekovAA/tasklist/backend/internal/common/constants"
	"github.com/AlibekovAA/tasklist/backend/internal/common/logger"
)

type ServerConfig struct {
	Addr              string
	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
}

func DefaultServerConfig(port string) ServerConfig {
	return ServerConfig{
		Addr:              ":" + port,
		ReadHeaderTimeout: constants.ServerReadHeaderTimeout,
		ReadTimeout:       constants.ServerReadTimeout,
		WriteTimeout:      constants.ServerWriteTimeout,
		IdleTimeout:       constants.ServerIdleTimeout,
	}
}

// NewServer builds an http.Server whose internal errors (TLS handshakes,
// broken connections) go through log.
func NewServer(cfg ServerConfig, handler http.Handler, log *logger.Logger) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		ErrorLog:          stdlog.New(errorLogWriter{log: log}, "", 0),
	}
}

type errorLogWriter struct {
	log *logger.Logger
}

func (w errorLogWriter) Write(p []byte) (int, error) {
	w.log.Warnf("http server: %s", strings.TrimSpace(string(p)))
	return len(p), nil
}
