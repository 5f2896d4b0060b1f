package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/issafronov/leadredirect/internal/app/leads"
	"github.com/issafronov/leadredirect/internal/app/service"
	"github.com/issafronov/leadredirect/internal/middleware/logger"
)

// NotFoundBody — тело ответа для неизвестного лида
const NotFoundBody = "Not found"

// Handler обслуживает HTTP-запросы к лид-ссылкам
type Handler struct {
	svc service.Service
	now func() time.Time
}

// Option настраивает Handler
type Option func(*Handler)

// WithClock подменяет источник текущего времени
func WithClock(now func() time.Time) Option {
	return func(h *Handler) {
		h.now = now
	}
}

// NewHandler создаёт обработчик поверх сервиса
func NewHandler(svc service.Service, opts ...Option) (*Handler, error) {
	if svc == nil {
		return nil, errors.New("handlers: service is nil")
	}

	h := &Handler{
		svc: svc,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// RedirectHandle переадресует по лид-ссылке. Лидом считается последний
// непустой сегмент пути; метод и строка запроса не учитываются.
// Найденный лид даёт 302 и запись о переходе, неизвестный 404 без записи.
func (h *Handler) RedirectHandle(res http.ResponseWriter, req *http.Request) {
	lead := leads.ExtractLeadID(req.URL.EscapedPath())

	dest, err := h.svc.Resolve(req.Context(), lead)
	if err != nil {
		if !errors.Is(err, service.ErrNotFound) {
			logger.Log.Error("failed to resolve lead", zap.String("lead", lead), zap.Error(err))
		}
		res.Header().Set("Content-Type", "text/plain; charset=utf-8")
		res.WriteHeader(http.StatusNotFound)
		io.WriteString(res, NotFoundBody)
		return
	}

	h.svc.Track(req.Context(), leads.NewClickEvent(lead, h.now(), req.Header))

	res.Header().Set("Location", dest)
	res.WriteHeader(http.StatusFound)
}
