// Package server собирает зависимости сервиса и запускает HTTP-сервер.
package server

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/acme/autocert"
	"golang.org/x/net/netutil"

	"github.com/issafronov/leadredirect/internal/app/config"
	"github.com/issafronov/leadredirect/internal/app/handlers"
	"github.com/issafronov/leadredirect/internal/app/redirects"
	"github.com/issafronov/leadredirect/internal/app/service"
	"github.com/issafronov/leadredirect/internal/middleware/logger"
)

const (
	shutdownTimeout = 10 * time.Second
	certCacheDir    = "certs"
)

// App — собранный сервис переадресации
type App struct {
	cfg    *config.Config
	server *http.Server
	sinks  *sinkSet
}

// New загружает таблицу переадресаций, создаёт приёмники и HTTP-сервер
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	routes, err := loadRoutes(cfg)
	if err != nil {
		return nil, err
	}

	trustedNet, err := cfg.TrustedNet()
	if err != nil {
		return nil, err
	}

	sinks, err := buildSinks(ctx, cfg)
	if err != nil {
		return nil, err
	}

	svc := service.NewService(routes, sinks.clicks, sinks.stats)
	h, err := handlers.NewHandler(svc)
	if err != nil {
		sinks.close(ctx)
		return nil, err
	}

	logger.Log.Info("lead redirects loaded",
		zap.Int("count", routes.Len()),
		zap.Strings("leads", routes.Leads()),
		zap.Strings("sinks", cfg.Sinks()),
	)

	return &App{
		cfg:   cfg,
		sinks: sinks,
		server: &http.Server{
			Addr:              cfg.ServerAddress,
			Handler:           NewRouter(h, trustedNet),
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      10 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}, nil
}

func loadRoutes(cfg *config.Config) (*redirects.Mapping, error) {
	if cfg.RedirectsFile == "" {
		return redirects.Default(), nil
	}
	routes, err := redirects.LoadFile(cfg.RedirectsFile)
	if err != nil {
		return nil, fmt.Errorf("load redirects: %w", err)
	}
	return routes, nil
}

// Handler возвращает корневой HTTP-обработчик
func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Run слушает cfg.ServerAddress до отмены ctx
func (a *App) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.cfg.ServerAddress)
	if err != nil {
		return err
	}
	return a.Serve(ctx, ln)
}

// Serve обслуживает соединения ln до отмены ctx, затем корректно
// останавливает сервер и дожидается отправки накопленных записей
func (a *App) Serve(ctx context.Context, ln net.Listener) error {
	if a.cfg.MaxConnections > 0 {
		ln = netutil.LimitListener(ln, a.cfg.MaxConnections)
	}

	serve := func() error { return a.server.Serve(ln) }
	if a.cfg.EnableHTTPS {
		a.server.TLSConfig = a.tlsConfig()
		serve = func() error { return a.server.ServeTLS(ln, "", "") }
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Info("Running server",
			zap.String("address", ln.Addr().String()),
			zap.Bool("https", a.cfg.EnableHTTPS),
		)
		errCh <- serve()
	}()

	var serveErr error
	select {
	case <-ctx.Done():
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			serveErr = err
		}
	}

	return errors.Join(serveErr, a.shutdown())
}

// Close освобождает приёмники без запуска сервера
func (a *App) Close(ctx context.Context) error {
	return a.sinks.close(ctx)
}

func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logger.Log.Info("Shutting down server")
	err := a.server.Shutdown(ctx)
	return errors.Join(err, a.Close(ctx))
}

func (a *App) tlsConfig() *tls.Config {
	manager := &autocert.Manager{
		Prompt: autocert.AcceptTOS,
		Cache:  autocert.DirCache(certCacheDir),
	}
	if a.cfg.HTTPSDomain != "" {
		manager.HostPolicy = autocert.HostWhitelist(a.cfg.HTTPSDomain)
	}
	return manager.TLSConfig()
}
