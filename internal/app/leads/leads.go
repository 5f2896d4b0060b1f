// Package leads извлекает идентификатор лида из пути запроса и собирает
// запись о переходе по ссылке.
package leads

import (
	"net/http"
	"strings"
	"time"

	"github.com/issafronov/leadredirect/internal/app/models"
)

const (
	// ForwardedForHeader — заголовок с адресом клиента, выставляемый прокси
	ForwardedForHeader = "X-Forwarded-For"
	// UserAgentHeader — заголовок с user-agent клиента
	UserAgentHeader = "User-Agent"
	// UnknownIP подставляется, когда адрес клиента неизвестен
	UnknownIP = "unknown"
	// TimestampLayout — ISO-8601 в UTC с миллисекундами
	TimestampLayout = "2006-01-02T15:04:05.000Z"
)

// ExtractLeadID возвращает последний непустой сегмент пути.
// Значение не нормализуется: регистр и символы сохраняются как есть.
func ExtractLeadID(path string) string {
	path = strings.TrimRight(path, "/")
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[i+1:]
	}
	return path
}

// ClientIP возвращает значение X-Forwarded-For или UnknownIP
func ClientIP(h http.Header) string {
	if ip := h.Get(ForwardedForHeader); ip != "" {
		return ip
	}
	return UnknownIP
}

// UserAgent возвращает nil, если заголовок User-Agent отсутствует
func UserAgent(h http.Header) *string {
	values := h.Values(UserAgentHeader)
	if len(values) == 0 {
		return nil
	}
	ua := strings.Join(values, ", ")
	return &ua
}

// FormatTimestamp форматирует время в UTC в формате TimestampLayout
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// NewClickEvent собирает запись о переходе по лиду
func NewClickEvent(lead string, now time.Time, h http.Header) models.ClickEvent {
	return models.ClickEvent{
		Event:     models.ClickEventKind,
		Lead:      lead,
		Timestamp: FormatTimestamp(now),
		IP:        ClientIP(h),
		UA:        UserAgent(h),
	}
}
