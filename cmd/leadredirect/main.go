package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	_ "go.uber.org/automaxprocs"
	"go.uber.org/zap"

	"github.com/issafronov/leadredirect/internal/app/config"
	"github.com/issafronov/leadredirect/internal/app/server"
	"github.com/issafronov/leadredirect/internal/middleware/logger"
	"github.com/issafronov/leadredirect/internal/pprof"
)

func main() {
	if err := run(); err != nil {
		logger.Log.Error("lead redirector stopped", zap.Error(err))
		panic(err)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	if err := logger.Initialize(cfg.LoggerLevel); err != nil {
		return err
	}
	defer logger.Log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.PprofAddress != "" {
		pprofServer := pprof.Start(cfg.PprofAddress)
		defer pprofServer.Close()
	}

	app, err := server.New(ctx, cfg)
	if err != nil {
		return err
	}
	return app.Run(ctx)
}
