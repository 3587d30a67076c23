package licensedashboard

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

	"github.com/magabrotheeeer/license-dashboard/internal/analytics"
	"github.com/magabrotheeeer/license-dashboard/internal/cache"
	"github.com/magabrotheeeer/license-dashboard/internal/config"
	"github.com/magabrotheeeer/license-dashboard/internal/http/handlers/health"
	"github.com/magabrotheeeer/license-dashboard/internal/http/middlewarectx"
	"github.com/magabrotheeeer/license-dashboard/internal/lib/sl"
	"github.com/magabrotheeeer/license-dashboard/internal/migrations"
	analyticsservice "github.com/magabrotheeeer/license-dashboard/internal/services/analytics"
	licenseservice "github.com/magabrotheeeer/license-dashboard/internal/services/license"
	"github.com/magabrotheeeer/license-dashboard/internal/storage/repository"
)

const shutdownTimeout = 15 * time.Second

// App — HTTP-сервер панели лицензий вместе с его ресурсами.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
}

// New открывает хранилище, применяет миграции, подключается к Redis
// и собирает маршрутизатор.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "licensedashboard.New"

	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	engine := analytics.New(cfg.Policy)
	logger.Debug("analytics policy", slog.Any("policy", engine.Policy()))

	router := chi.NewRouter()
	RegisterRoutes(router, Deps{
		Log:       logger,
		Licenses:  licenseservice.New(db, cacheRedis, logger, cacheRedis.TTL()),
		Analytics: analyticsservice.New(db, engine, logger),
		Limiter:   middlewarectx.NewLimiter(cfg.RPS, cfg.Burst),
		Registry:  registry,
		Checks: map[string]health.Check{
			"postgres": db.DB.PingContext,
			"redis":    cacheRedis.Ping,
		},
	})

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
	}, nil
}

// Run обслуживает запросы до отмены ctx, затем останавливает сервер
// и закрывает соединения.
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

	var err error
	select {
	case err = <-errCh:
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err = a.server.Shutdown(timeoutCtx)
	}

	if cerr := a.cache.Close(); cerr != nil {
		a.logger.Error("failed to close cache", sl.Err(cerr))
	}
	if cerr := a.db.Close(); cerr != nil {
		a.logger.Error("failed to close database", sl.Err(cerr))
	}
	return err
}
