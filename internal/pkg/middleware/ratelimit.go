package middleware

import (
	"net"
	"net/http"
	"strconv"
	"time"

	apperror "gocatalog/internal/errors"
	"gocatalog/internal/pkg/cache"
	"gocatalog/internal/pkg/logger"
	"gocatalog/internal/pkg/respond"
)

const rateLimitPrefix = "rate-limit:"

// clientIP devolve o IP de origem sem a porta.
func clientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// RateLimiter aplica uma janela fixa de `limit` requisições por IP a cada `duration`.
// Se o cache falhar a requisição segue.
func RateLimiter(client cache.Client, limit int, duration time.Duration, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limit <= 0 {
				next.ServeHTTP(w, r)
				return
			}

			key := rateLimitPrefix + clientIP(r)

			count, err := client.Incr(r.Context(), key, duration)
			if err != nil {
				log.Warn("Falha no contador de rate limit.", map[string]interface{}{"key": key, "error": err.Error()})
				next.ServeHTTP(w, r)
				return
			}

			remaining := int64(limit) - count
			if remaining < 0 {
				remaining = 0
			}
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

			if count > int64(limit) {
				w.Header().Set("Retry-After", strconv.Itoa(int(duration.Seconds())))
				respond.Error(w, apperror.NewTooManyRequestsError("Muitas requisições. Tente novamente mais tarde."))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
