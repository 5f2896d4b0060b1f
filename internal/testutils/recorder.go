package testutils

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/issafronov/leadredirect/internal/app/models"
)

// RecordingSink запоминает все полученные записи. Err возвращается из каждого Record.
type RecordingSink struct {
	Err error

	mu     sync.Mutex
	events []models.ClickEvent
}

func (r *RecordingSink) Record(_ context.Context, event models.ClickEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return r.Err
}

// Events возвращает копию полученных записей
func (r *RecordingSink) Events() []models.ClickEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.ClickEvent(nil), r.events...)
}

// GateSink блокирует каждый Record, пока не будет закрыт Release
type GateSink struct {
	RecordingSink
	Release chan struct{}
}

func NewGateSink() *GateSink {
	return &GateSink{Release: make(chan struct{})}
}

func (g *GateSink) Record(ctx context.Context, event models.ClickEvent) error {
	<-g.Release
	return g.RecordingSink.Record(ctx, event)
}

// NewLeadRequest создаёт GET-запрос с указанными заголовками
func NewLeadRequest(target string, headers map[string]string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Del("User-Agent")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return req
}
