// Package financetracker собирает HTTP-приложение трекера финансов: маршруты,
// сервисы и подключения к PostgreSQL, Redis и RabbitMQ.
package financetracker

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	acccreate "github.com/magabrotheeeer/finance-tracker/internal/http/handlers/accounts/create"
	acclist "github.com/magabrotheeeer/finance-tracker/internal/http/handlers/accounts/list"
	"github.com/magabrotheeeer/finance-tracker/internal/http/handlers/accounts/markpaid"
	"github.com/magabrotheeeer/finance-tracker/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/finance-tracker/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/finance-tracker/internal/http/handlers/dashboard/chart"
	"github.com/magabrotheeeer/finance-tracker/internal/http/handlers/dashboard/overview"
	"github.com/magabrotheeeer/finance-tracker/internal/http/handlers/goals/contribute"
	goalcreate "github.com/magabrotheeeer/finance-tracker/internal/http/handlers/goals/create"
	goallist "github.com/magabrotheeeer/finance-tracker/internal/http/handlers/goals/list"
	"github.com/magabrotheeeer/finance-tracker/internal/http/handlers/health"
	"github.com/magabrotheeeer/finance-tracker/internal/http/handlers/subscription/activate"
	"github.com/magabrotheeeer/finance-tracker/internal/http/handlers/subscription/cancel"
	"github.com/magabrotheeeer/finance-tracker/internal/http/handlers/subscription/checkout"
	"github.com/magabrotheeeer/finance-tracker/internal/http/handlers/subscription/offers"
	"github.com/magabrotheeeer/finance-tracker/internal/http/handlers/subscription/status"
	txcreate "github.com/magabrotheeeer/finance-tracker/internal/http/handlers/transactions/create"
	txlist "github.com/magabrotheeeer/finance-tracker/internal/http/handlers/transactions/list"
	"github.com/magabrotheeeer/finance-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/finance-tracker/internal/metrics"
	"github.com/magabrotheeeer/finance-tracker/internal/services/aggregation"
	"github.com/magabrotheeeer/finance-tracker/internal/services/auth"
	"github.com/magabrotheeeer/finance-tracker/internal/services/finance"
	"github.com/magabrotheeeer/finance-tracker/internal/services/subscription"
)

// Services сервисы, которые обслуживают маршруты API.
type Services struct {
	Auth         *auth.Service
	Subscription *subscription.Service
	Aggregation  *aggregation.Service
	Finance      *finance.Service
	DB           health.Pinger
}

// RegisterRoutes регистрирует все маршруты приложения.
//
// Подписочные маршруты требуют только JWT, чтобы пользователь с истёкшим
// пробным периодом мог оплатить план. Финансовые данные дополнительно требуют
// активной подписки.
func RegisterRoutes(r chi.Router, logger *slog.Logger, svc Services, limiter *middlewarectx.RateLimiter,
	m *metrics.Metrics, gatherer prometheus.Gatherer) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		m.Middleware,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Get("/health", health.New(logger, svc.DB).ServeHTTP)
		r.Get("/plans", offers.New(logger).ServeHTTP)
		r.Group(func(r chi.Router) {
			r.Use(limiter.Middleware(logger))
			r.Post("/register", register.New(logger, svc.Auth).ServeHTTP)
			r.Post("/login", login.New(logger, svc.Auth).ServeHTTP)
		})

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(svc.Auth, logger))
			r.Use(limiter.Middleware(logger))

			r.Get("/subscription", status.New(logger, svc.Subscription).ServeHTTP)
			r.Get("/subscription/checkout/{plan}", checkout.New(logger, svc.Subscription).ServeHTTP)
			r.Post("/subscription/activate/{plan}", activate.New(logger, svc.Subscription).ServeHTTP)
			r.Post("/subscription/cancel", cancel.New(logger, svc.Subscription).ServeHTTP)

			// Финансовые данные доступны только с действующей подпиской
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.SubscriptionStatusMiddleware(logger, svc.Subscription))

				r.Get("/dashboard", overview.New(logger, svc.Aggregation).ServeHTTP)
				r.Get("/dashboard/chart-data", chart.New(logger, svc.Aggregation).ServeHTTP)

				r.Post("/transactions", txcreate.New(logger, svc.Finance).ServeHTTP)
				r.Get("/transactions", txlist.New(logger, svc.Finance).ServeHTTP)

				r.Post("/accounts", acccreate.New(logger, svc.Finance).ServeHTTP)
				r.Get("/accounts", acclist.New(logger, svc.Finance).ServeHTTP)
				r.Post("/accounts/{id}/pay", markpaid.New(logger, svc.Finance).ServeHTTP)

				r.Post("/goals", goalcreate.New(logger, svc.Finance).ServeHTTP)
				r.Get("/goals", goallist.New(logger, svc.Finance).ServeHTTP)
				r.Post("/goals/{id}/contribute", contribute.New(logger, svc.Finance).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
