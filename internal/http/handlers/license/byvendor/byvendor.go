// Package byvendor реализует HTTP-обработчик выборки всех лицензий поставщика.
package byvendor

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/license-dashboard/internal/http/response"
	"github.com/magabrotheeeer/license-dashboard/internal/lib/sl"
	"github.com/magabrotheeeer/license-dashboard/internal/models"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

type Service interface {
	ListByVendor(ctx context.Context, vendor string) ([]models.License, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Лицензии поставщика
// @Description Неизвестный поставщик даёт пустой список.
// @Tags Licenses
// @Produce  json
// @Param vendor path string true "Поставщик"
// @Success 200 {object} response.Response
// @Router /licenses/vendor/{vendor} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.license.byvendor"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	vendor := chi.URLParam(r, "vendor")
	licenses, err := h.service.ListByVendor(r.Context(), vendor)
	if err != nil {
		log.Error("failed to list vendor licenses", slog.String("vendor", vendor), sl.Err(err))
		response.ServiceError(w, r, err, "licenses not found", "could not list licenses")
		return
	}

	response.JSON(w, r, http.StatusOK, response.StatusOKWithData(map[string]any{
		"count":    len(licenses),
		"licenses": licenses,
	}))
}
