// Package metrics регистрирует метрики Prometheus для HTTP API и публикации событий.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор метрик приложения.
type Metrics struct {
	requests        *prometheus.CounterVec
	duration        *prometheus.HistogramVec
	eventsPublished *prometheus.CounterVec
}

// New создаёт метрики и регистрирует их в reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "finance_tracker",
			Name:      "http_requests_total",
			Help:      "Количество обработанных HTTP-запросов.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "finance_tracker",
			Name:      "http_request_duration_seconds",
			Help:      "Длительность обработки HTTP-запросов.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		eventsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "finance_tracker",
			Name:      "events_published_total",
			Help:      "Количество опубликованных доменных событий.",
		}, []string{"routing_key", "result"}),
	}
	reg.MustRegister(m.requests, m.duration, m.eventsPublished)
	return m
}

// Middleware считает запросы и время их обработки по шаблону маршрута chi.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.requests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		m.duration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// Publisher публикует доменные события.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, message any) error
}

// CountingPublisher оборачивает Publisher и считает опубликованные события.
type CountingPublisher struct {
	next    Publisher
	metrics *Metrics
}

// WrapPublisher возвращает Publisher, который учитывает каждую публикацию.
func (m *Metrics) WrapPublisher(next Publisher) *CountingPublisher {
	return &CountingPublisher{next: next, metrics: m}
}

// Publish передаёт событие дальше и увеличивает счётчик с результатом ok или error.
func (p *CountingPublisher) Publish(ctx context.Context, routingKey string, message any) error {
	err := p.next.Publish(ctx, routingKey, message)
	result := "ok"
	if err != nil {
		result = "error"
	}
	p.metrics.eventsPublished.WithLabelValues(routingKey, result).Inc()
	return err
}
