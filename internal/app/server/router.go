package server

import (
	"net"

	"github.com/go-chi/chi/v5"

	"github.com/issafronov/leadredirect/internal/app/handlers"
	"github.com/issafronov/leadredirect/internal/middleware/compress"
	"github.com/issafronov/leadredirect/internal/middleware/logger"
	"github.com/issafronov/leadredirect/internal/middleware/trustedsubnet"
)

// NewRouter собирает маршруты сервиса. Все пути, кроме служебных,
// обрабатываются как лид-ссылки: /api/go/{lead}, /{lead} и т.д.
func NewRouter(h *handlers.Handler, trustedNet *net.IPNet) chi.Router {
	router := chi.NewRouter()
	router.Use(logger.RequestLogger)
	router.Use(compress.GzipMiddleware)

	router.Get("/ping", h.PingHandle)
	router.Route("/api/internal", func(r chi.Router) {
		r.Use(trustedsubnet.TrustedSubnetMiddleware(trustedNet))
		r.Get("/stats", h.StatsHandle)
		r.Get("/leads", h.LeadsHandle)
	})
	router.HandleFunc("/*", h.RedirectHandle)

	return router
}
