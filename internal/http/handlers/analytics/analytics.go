// Package analytics реализует HTTP-обработчики агрегатов по набору лицензий.
// Каждый запрос пересчитывает агрегат по текущим данным.
package analytics

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/license-dashboard/internal/analytics"
	"github.com/magabrotheeeer/license-dashboard/internal/http/response"
	"github.com/magabrotheeeer/license-dashboard/internal/lib/sl"
)

// Service описывает методы расчёта агрегатов.
type Service interface {
	CostSummary(ctx context.Context, includeAll bool) (analytics.CostSummary, error)
	UsageTrends(ctx context.Context) (analytics.UsageTrends, error)
	VendorComparison(ctx context.Context) ([]analytics.VendorStats, error)
	OptimizationOpportunities(ctx context.Context) (analytics.Opportunities, error)
	ExpiringSoon(ctx context.Context) ([]analytics.ExpiringLicense, error)
	ComplianceScore(ctx context.Context) (analytics.ComplianceReport, error)
}

// Handler группирует обработчики /analytics/*.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) logger(r *http.Request, op string) *slog.Logger {
	return h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, log *slog.Logger, data any, err error) {
	if err != nil {
		log.Error("failed to compute aggregate", sl.Err(err))
		response.ServiceError(w, r, err, "not found", "could not compute analytics")
		return
	}
	response.JSON(w, r, http.StatusOK, response.StatusOKWithData(data))
}

// CostSummary godoc
// @Summary Сводка затрат
// @Description По умолчанию учитываются только активные лицензии, scope=all включает все.
// @Tags Analytics
// @Produce  json
// @Param scope query string false "active или all" Enums(active, all)
// @Success 200 {object} response.Response
// @Failure 422 {object} response.ErrorResponse
// @Router /analytics/cost-summary [get]
func (h *Handler) CostSummary(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.analytics.costSummary"
	log := h.logger(r, op)

	var includeAll bool
	switch scope := r.URL.Query().Get("scope"); scope {
	case "", "active":
	case "all":
		includeAll = true
	default:
		log.Warn("unknown scope", slog.String("scope", scope))
		response.JSON(w, r, http.StatusUnprocessableEntity, response.Error("field scope must be one of [active all]"))
		return
	}

	summary, err := h.service.CostSummary(r.Context(), includeAll)
	h.respond(w, r, log, summary, err)
}

// UsageTrends godoc
// @Summary Использование по поставщикам
// @Description Объект с ключами-поставщиками в порядке первого появления среди лицензий.
// @Tags Analytics
// @Produce  json
// @Success 200 {object} response.Response
// @Router /analytics/usage-trends [get]
func (h *Handler) UsageTrends(w http.ResponseWriter, r *http.Request) {
	trends, err := h.service.UsageTrends(r.Context())
	h.respond(w, r, h.logger(r, "handlers.analytics.usageTrends"), trends, err)
}

// VendorComparison godoc
// @Summary Сравнение поставщиков
// @Description Поставщики идут в порядке первого появления среди лицензий, от самых ранних записей.
// @Tags Analytics
// @Produce  json
// @Success 200 {object} response.Response
// @Router /analytics/vendor-comparison [get]
func (h *Handler) VendorComparison(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.VendorComparison(r.Context())
	h.respond(w, r, h.logger(r, "handlers.analytics.vendorComparison"), stats, err)
}

// OptimizationOpportunities godoc
// @Summary Возможности оптимизации
// @Tags Analytics
// @Produce  json
// @Success 200 {object} response.Response
// @Router /analytics/optimization-opportunities [get]
func (h *Handler) OptimizationOpportunities(w http.ResponseWriter, r *http.Request) {
	opportunities, err := h.service.OptimizationOpportunities(r.Context())
	h.respond(w, r, h.logger(r, "handlers.analytics.optimizationOpportunities"), opportunities, err)
}

// ExpiringSoon godoc
// @Summary Лицензии с близким продлением
// @Tags Analytics
// @Produce  json
// @Success 200 {object} response.Response
// @Router /analytics/expiring-soon [get]
func (h *Handler) ExpiringSoon(w http.ResponseWriter, r *http.Request) {
	expiring, err := h.service.ExpiringSoon(r.Context())
	h.respond(w, r, h.logger(r, "handlers.analytics.expiringSoon"), expiring, err)
}

// ComplianceScore godoc
// @Summary Оценка соответствия
// @Tags Analytics
// @Produce  json
// @Success 200 {object} response.Response
// @Router /analytics/compliance-score [get]
func (h *Handler) ComplianceScore(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.ComplianceScore(r.Context())
	h.respond(w, r, h.logger(r, "handlers.analytics.complianceScore"), report, err)
}
