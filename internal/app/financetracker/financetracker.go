package financetracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/finance-tracker/internal/cache"
	"github.com/magabrotheeeer/finance-tracker/internal/config"
	"github.com/magabrotheeeer/finance-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/finance-tracker/internal/lib/clock"
	"github.com/magabrotheeeer/finance-tracker/internal/lib/jwt"
	"github.com/magabrotheeeer/finance-tracker/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/finance-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/finance-tracker/internal/metrics"
	"github.com/magabrotheeeer/finance-tracker/internal/migrations"
	"github.com/magabrotheeeer/finance-tracker/internal/paymentprovider"
	"github.com/magabrotheeeer/finance-tracker/internal/services/aggregation"
	"github.com/magabrotheeeer/finance-tracker/internal/services/auth"
	"github.com/magabrotheeeer/finance-tracker/internal/services/finance"
	"github.com/magabrotheeeer/finance-tracker/internal/services/subscription"
	"github.com/magabrotheeeer/finance-tracker/internal/storage/repository"
)

const shutdownTimeout = 15 * time.Second

// App HTTP-приложение со всеми внешними подключениями.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
	amqp   *amqp.Connection
}

// New подключается к хранилищам, применяет миграции и собирает маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.financetracker.New"

	confirmer, err := newConfirmer(cfg.Payment, logger)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err = db.CheckDatabaseReady(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	var (
		conn      *amqp.Connection
		publisher metrics.Publisher = rabbitmq.NoopPublisher{}
	)
	if cfg.RabbitMQURL != "" {
		conn, err = rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
		if err != nil {
			_ = db.Close()
			_ = cacheRedis.Close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetEventQueues())
		if err != nil {
			_ = conn.Close()
			_ = db.Close()
			_ = cacheRedis.Close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		publisher = rabbitmq.NewPublisher(ch)
	} else {
		logger.Warn("rabbitmq url is empty, domain events are not published")
	}
	events := m.WrapPublisher(publisher)

	clk := clock.Local{}
	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	svc := Services{
		Auth:         auth.NewAuthService(db, jwtMaker, clk, logger),
		Subscription: subscription.NewSubscriptionService(db, confirmer, events, clk, logger),
		Aggregation:  aggregation.NewAggregationService(db, cacheRedis, clk, cfg.ChartCacheTTL, logger),
		Finance:      finance.NewFinanceService(db, cacheRedis, events, clk, logger),
		DB:           db.DB,
	}

	router := chi.NewRouter()
	limiter := middlewarectx.NewRateLimiter(cfg.RPS, cfg.Burst)
	RegisterRoutes(router, logger, svc, limiter, m, reg)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
		amqp:   conn,
	}, nil
}

func newConfirmer(cfg config.Payment, logger *slog.Logger) (paymentprovider.Confirmer, error) {
	switch cfg.Provider {
	case "", "stub":
		logger.Warn("payment provider is a stub, every payment reference is accepted")
		return paymentprovider.NewStub(logger), nil
	case "http":
		if cfg.APIURL == "" {
			return nil, errors.New("payment.api_url is required for the http provider")
		}
		return paymentprovider.NewClient(cfg.APIURL, cfg.ShopID, cfg.SecretKey, cfg.PaymentTimeout), nil
	default:
		return nil, fmt.Errorf("unknown payment provider %q", cfg.Provider)
	}
}

// Run запускает HTTP-сервер и останавливает его при отмене ctx.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		return err
	}
}

func (a *App) close() {
	if a.amqp != nil {
		if err := a.amqp.Close(); err != nil {
			a.logger.Warn("failed to close rabbitmq connection", sl.Err(err))
		}
	}
	if err := a.cache.Close(); err != nil {
		a.logger.Warn("failed to close redis client", sl.Err(err))
	}
	if err := a.db.Close(); err != nil {
		a.logger.Warn("failed to close database", sl.Err(err))
	}
}
