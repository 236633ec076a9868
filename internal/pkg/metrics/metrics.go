// Package metrics define e registra as métricas Prometheus da API do catálogo.
// É a única fonte de nomes, labels e textos de ajuda das métricas.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "gocatalog"

// HTTPRequestsTotal conta as requisições atendidas.
// Labels:
//   - method: método HTTP
//   - route: padrão da rota no ServeMux (ex.: "GET /api/products/{id}")
//   - status: código de status da resposta
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total de requisições HTTP atendidas.",
	},
	[]string{"method", "route", "status"},
)

// HTTPRequestDuration mede a latência das requisições.
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duração das requisições HTTP.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route"},
)

// CacheRequestsTotal conta leituras de cache por resultado ("hit" ou "miss").
var CacheRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_requests_total",
		Help:      "Total de leituras de cache, por resultado (hit/miss).",
	},
	[]string{"result"},
)

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Middleware registra contagem e latência de cada requisição.
// A rota usada como label é o padrão casado pelo ServeMux, para limitar a cardinalidade.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(sw.status)).Inc()
		HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// Handler expõe o registro padrão no formato Prometheus.
func Handler() http.Handler {
	return promhttp.Handler()
}
