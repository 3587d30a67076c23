// Package licensedashboard собирает HTTP-приложение учёта лицензий.
package licensedashboard

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/magabrotheeeer/license-dashboard/internal/http/docs"
	analyticshandler "github.com/magabrotheeeer/license-dashboard/internal/http/handlers/analytics"
	"github.com/magabrotheeeer/license-dashboard/internal/http/handlers/checklist"
	"github.com/magabrotheeeer/license-dashboard/internal/http/handlers/health"
	"github.com/magabrotheeeer/license-dashboard/internal/http/handlers/license/byvendor"
	"github.com/magabrotheeeer/license-dashboard/internal/http/handlers/license/create"
	"github.com/magabrotheeeer/license-dashboard/internal/http/handlers/license/export"
	"github.com/magabrotheeeer/license-dashboard/internal/http/handlers/license/list"
	"github.com/magabrotheeeer/license-dashboard/internal/http/handlers/license/read"
	"github.com/magabrotheeeer/license-dashboard/internal/http/handlers/license/remove"
	"github.com/magabrotheeeer/license-dashboard/internal/http/handlers/license/update"
	"github.com/magabrotheeeer/license-dashboard/internal/http/middlewarectx"
)

// LicenseService объединяет операции над лицензиями, нужные обработчикам.
type LicenseService interface {
	create.Service
	read.Service
	update.Service
	remove.Service
	list.Service
	byvendor.Service
}

// AnalyticsService объединяет агрегаты и чек-лист аудита.
type AnalyticsService interface {
	analyticshandler.Service
	checklist.Service
}

// Deps содержит зависимости маршрутизатора.
type Deps struct {
	Log       *slog.Logger
	Licenses  LicenseService
	Analytics AnalyticsService
	Checks    map[string]health.Check
	Limiter   *rate.Limiter
	Registry  *prometheus.Registry
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, d Deps) {
	metrics := middlewarectx.NewHTTPMetrics(d.Registry)

	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
	)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(metrics.Middleware)
		r.Use(middlewarectx.RateLimitMiddleware(d.Log, d.Limiter))

		r.Get("/health", health.New(d.Log, d.Checks).ServeHTTP)

		r.Route("/licenses", func(r chi.Router) {
			r.Get("/", list.New(d.Log, d.Licenses).ServeHTTP)
			r.Post("/", create.New(d.Log, d.Licenses).ServeHTTP)
			r.Get("/export", export.New(d.Log, d.Licenses).ServeHTTP)
			r.Get("/vendor/{vendor}", byvendor.New(d.Log, d.Licenses).ServeHTTP)
			r.Get("/{id}", read.New(d.Log, d.Licenses).ServeHTTP)
			r.Put("/{id}", update.New(d.Log, d.Licenses).ServeHTTP)
			r.Delete("/{id}", remove.New(d.Log, d.Licenses).ServeHTTP)
		})

		analytics := analyticshandler.New(d.Log, d.Analytics)
		r.Route("/analytics", func(r chi.Router) {
			r.Get("/cost-summary", analytics.CostSummary)
			r.Get("/usage-trends", analytics.UsageTrends)
			r.Get("/vendor-comparison", analytics.VendorComparison)
			r.Get("/optimization-opportunities", analytics.OptimizationOpportunities)
			r.Get("/expiring-soon", analytics.ExpiringSoon)
			r.Get("/compliance-score", analytics.ComplianceScore)
		})

		audit := checklist.New(d.Log, d.Analytics)
		r.Get("/audit/checklist", audit.List)
		r.Put("/audit/checklist/{id}", audit.Update)
	})

	r.Handle("/metrics", promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{}))
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
