package handlers

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/issafronov/leadredirect/internal/middleware/logger"
)

// PingHandle проверяет доступность приёмника записей о переходах
func (h *Handler) PingHandle(res http.ResponseWriter, req *http.Request) {
	logger.Log.Debug("PingHandle", zap.String("url", req.URL.String()))

	res.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if err := h.svc.Ping(req.Context()); err != nil {
		logger.Log.Warn("click sink is unavailable", zap.Error(err))
		res.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprint(res, err.Error())
		return
	}
	res.WriteHeader(http.StatusOK)
	fmt.Fprint(res, "OK")
}
