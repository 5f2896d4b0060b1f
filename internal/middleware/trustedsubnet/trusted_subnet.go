package trustedsubnet

import (
	"net"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/issafronov/leadredirect/internal/middleware/logger"
)

// RequestIP возвращает адрес клиента из X-Real-IP, а при его отсутствии
// первый адрес из X-Forwarded-For
func RequestIP(r *http.Request) string {
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	forwarded := r.Header.Get("X-Forwarded-For")
	first, _, _ := strings.Cut(forwarded, ",")
	return strings.TrimSpace(first)
}

// TrustedSubnetMiddleware пропускает только запросы из доверенной подсети.
// При trustedNet == nil закрыт для всех.
func TrustedSubnetMiddleware(trustedNet *net.IPNet) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ipStr := RequestIP(r)

			if trustedNet == nil || ipStr == "" {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}

			ip := net.ParseIP(ipStr)
			if ip == nil || !trustedNet.Contains(ip) {
				logger.Log.Debug("request from untrusted address", zap.String("ip", ipStr), zap.String("uri", r.RequestURI))
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
