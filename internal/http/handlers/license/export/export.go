// Package export реализует выгрузку всех лицензий в CSV.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/license-dashboard/internal/export"
	"github.com/magabrotheeeer/license-dashboard/internal/http/response"
	"github.com/magabrotheeeer/license-dashboard/internal/lib/sl"
	"github.com/magabrotheeeer/license-dashboard/internal/models"
)

// Handler отдаёт лицензии файлом CSV.
type Handler struct {
	log     *slog.Logger
	service Service
	now     func() time.Time
}

// Service описывает метод выборки лицензий.
type Service interface {
	List(ctx context.Context, filter models.LicenseFilter) ([]models.License, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
		now:     time.Now,
	}
}

// ServeHTTP godoc
// @Summary Экспорт лицензий в CSV
// @Tags Licenses
// @Produce  text/csv
// @Param vendor query string false "Поставщик"
// @Param status query string false "Статус"
// @Success 200 {file} file
// @Failure 500 {object} response.ErrorResponse
// @Router /licenses/export [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.license.export"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	filter := models.LicenseFilter{
		Vendor: r.URL.Query().Get("vendor"),
		Status: r.URL.Query().Get("status"),
	}
	licenses, err := h.service.List(r.Context(), filter)
	if err != nil {
		log.Error("failed to list licenses", sl.Err(err))
		response.ServiceError(w, r, err, "licenses not found", "could not export licenses")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="licenses-%s.csv"`, h.now().Format(time.DateOnly)))
	w.WriteHeader(http.StatusOK)
	if err = export.WriteLicenses(w, licenses); err != nil {
		// заголовки уже отправлены, остаётся только записать в лог
		log.Error("failed to write csv", sl.Err(err))
		return
	}
	log.Info("licenses exported", slog.Int("count", len(licenses)))
}
