// Package list реализует HTTP-обработчик выборки лицензий с фильтрами
// vendor, status и постраничным выводом limit/offset.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/license-dashboard/internal/http/response"
	"github.com/magabrotheeeer/license-dashboard/internal/lib/sl"
	"github.com/magabrotheeeer/license-dashboard/internal/models"
)

// Handler обрабатывает запросы на получение списка лицензий.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает метод выборки лицензий.
type Service interface {
	List(ctx context.Context, filter models.LicenseFilter) ([]models.License, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Список лицензий
// @Description Возвращает лицензии, начиная с последних созданных.
// @Tags Licenses
// @Produce  json
// @Param vendor query string false "Поставщик"
// @Param status query string false "Статус"
// @Param limit query int false "Максимум записей"
// @Param offset query int false "Смещение"
// @Success 200 {object} response.Response
// @Failure 422 {object} response.ErrorResponse
// @Router /licenses [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.license.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	filter, err := parseFilter(r)
	if err != nil {
		log.Warn("invalid query parameters", sl.Err(err))
		response.JSON(w, r, http.StatusUnprocessableEntity, response.Error("limit and offset must be integers"))
		return
	}
	if !response.Validate(w, r, h.validate, filter) {
		log.Warn("validation failed", slog.Any("filter", filter))
		return
	}

	licenses, err := h.service.List(r.Context(), filter)
	if err != nil {
		log.Error("failed to list licenses", sl.Err(err))
		response.ServiceError(w, r, err, "licenses not found", "could not list licenses")
		return
	}

	log.Debug("licenses listed", slog.Int("count", len(licenses)))
	response.JSON(w, r, http.StatusOK, response.StatusOKWithData(map[string]any{
		"count":    len(licenses),
		"licenses": licenses,
	}))
}

func parseFilter(r *http.Request) (models.LicenseFilter, error) {
	q := r.URL.Query()
	filter := models.LicenseFilter{
		Vendor: q.Get("vendor"),
		Status: q.Get("status"),
	}
	var err error
	if v := q.Get("limit"); v != "" {
		if filter.Limit, err = strconv.Atoi(v); err != nil {
			return filter, err
		}
	}
	if v := q.Get("offset"); v != "" {
		if filter.Offset, err = strconv.Atoi(v); err != nil {
			return filter, err
		}
	}
	return filter, nil
}
