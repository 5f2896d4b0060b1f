package sink

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/issafronov/leadredirect/internal/app/models"
)

const defaultWebhookTimeout = 5 * time.Second

// WebhookSink отправляет каждую запись POST-запросом с JSON-телом
type WebhookSink struct {
	client *resty.Client
	url    string
}

// NewWebhookSink создаёт приёмник для указанного URL
func NewWebhookSink(url string, timeout time.Duration) *WebhookSink {
	if timeout <= 0 {
		timeout = defaultWebhookTimeout
	}
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")

	return &WebhookSink{client: client, url: url}
}

// Record отправляет запись. Ответ со статусом >= 400 считается ошибкой.
func (s *WebhookSink) Record(ctx context.Context, event models.ClickEvent) error {
	res, err := s.client.R().
		SetContext(ctx).
		SetBody(event).
		Post(s.url)
	if err != nil {
		return fmt.Errorf("post click to webhook: %w", err)
	}
	if res.IsError() {
		return fmt.Errorf("post click to webhook: unexpected status %d", res.StatusCode())
	}
	return nil
}
