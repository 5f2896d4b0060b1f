package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/issafronov/leadredirect/internal/app/service"
	"github.com/issafronov/leadredirect/internal/middleware/logger"
)

// StatsHandle отдаёт статистику переходов по лидам
func (h *Handler) StatsHandle(res http.ResponseWriter, req *http.Request) {
	stats, err := h.svc.Stats(req.Context())
	if err != nil {
		if errors.Is(err, service.ErrStatsUnavailable) {
			http.Error(res, err.Error(), http.StatusNotImplemented)
			return
		}
		logger.Log.Error("failed to read click stats", zap.Error(err))
		http.Error(res, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	writeJSON(res, http.StatusOK, stats)
}

// LeadsHandle отдаёт таблицу переадресаций
func (h *Handler) LeadsHandle(res http.ResponseWriter, req *http.Request) {
	writeJSON(res, http.StatusOK, h.svc.Routes(req.Context()))
}

func writeJSON(res http.ResponseWriter, status int, v any) {
	res.Header().Set("Content-Type", "application/json")
	res.WriteHeader(status)
	if err := json.NewEncoder(res).Encode(v); err != nil {
		logger.Log.Info("failed to encode response", zap.Error(err))
	}
}
