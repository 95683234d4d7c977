package main

import (
	"context"
	"fmt"
	"os"

	"github.com/AlibekovAA/tasklist/backend/internal/common/bootstrap"
	"github.com/AlibekovAA/tasklist/backend/internal/common/config"
	"github.com/AlibekovAA/tasklist/backend/internal/common/logger"
	srv "github.com/AlibekovAA/tasklist/backend/internal/common/server"
)

const serviceName = "tasks"

func main() {
	dotenvErr := config.LoadDotenv()

	log, err := logger.New(os.Getenv("LOG_DIR"), serviceName, os.Getenv("LOG_LEVEL"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	if dotenvErr != nil {
		log.Warnf("ignoring malformed env file: %v", dotenvErr)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	app, err := bootstrap.NewApp(context.Background(), cfg, log)
	if err != nil {
		log.Fatalf("failed to start: %v", err)
	}

	server := srv.NewServer(srv.DefaultServerConfig(cfg.HTTPPort), app.Handler(), log)

	srv.StartWithGracefulShutdown(server, log, serviceName, app.Close)
}
