// Package read реализует HTTP-обработчик получения лицензии по ID.
package read

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/google/uuid"

	"github.com/magabrotheeeer/license-dashboard/internal/http/response"
	"github.com/magabrotheeeer/license-dashboard/internal/lib/sl"
	"github.com/magabrotheeeer/license-dashboard/internal/models"
)

// Handler обрабатывает запросы на получение лицензии по уникальному идентификатору.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения лицензии.
type Service interface {
	Read(ctx context.Context, id string) (*models.License, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить лицензию
// @Tags Licenses
// @Produce  json
// @Param id path string true "ID лицензии"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 404 {object} response.ErrorResponse "Лицензия не найдена"
// @Router /licenses/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.license.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		log.Warn("failed to decode id from url", sl.Err(err))
		response.JSON(w, r, http.StatusBadRequest, response.Error("invalid license id"))
		return
	}

	res, err := h.service.Read(r.Context(), id.String())
	if err != nil {
		log.Error("failed to read license", sl.Err(err))
		response.ServiceError(w, r, err, "license not found", "could not read license")
		return
	}

	log.Debug("license read", slog.String("id", res.ID))
	response.JSON(w, r, http.StatusOK, response.StatusOKWithData(res))
}
