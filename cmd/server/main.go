package main

import (
	"log"
	"net"
	"os"
	"syscall"
	"time"

	"github.com/joblens/joblens/internal/api"
	"github.com/joblens/joblens/internal/config"
	"github.com/joblens/joblens/pkg/logging"
	"github.com/joblens/joblens/pkg/shutdown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.New(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	resources, err := api.BuildResources(cfg, logger)
	if err != nil {
		logger.Error("failed to build resources", "err", err)
		os.Exit(1)
	}

	srv := api.NewServer(logger, cfg, resources.Service)

	go shutdown.Graceful(
		[]os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP},
		srv,
		10*time.Second,
		logger,
	)

	logger.Info("search API server starting", "addr", net.JoinHostPort(cfg.Host, cfg.Port))

	if err := srv.Run(); err != nil {
		logger.Error("search API server exited with error", "err", err)
	} else {
		logger.Info("search API server stopped")
	}
}
