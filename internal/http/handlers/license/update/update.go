// Package update реализует HTTP-обработчик частичного обновления лицензии.
// Переданные поля заменяют текущие значения, отсутствующие остаются прежними.
package update

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"
	"github.com/google/uuid"

	"github.com/magabrotheeeer/license-dashboard/internal/http/response"
	"github.com/magabrotheeeer/license-dashboard/internal/lib/sl"
	"github.com/magabrotheeeer/license-dashboard/internal/models"
)

type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

type Service interface {
	Update(ctx context.Context, id string, patch models.LicensePatch) (*models.License, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Обновить лицензию
// @Tags Licenses
// @Accept  json
// @Produce  json
// @Param id path string true "ID лицензии"
// @Param request body models.LicensePatch true "Изменяемые поля"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Router /licenses/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.license.update"

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

	var patch models.LicensePatch
	if err = render.DecodeJSON(r.Body, &patch); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		response.JSON(w, r, http.StatusBadRequest, response.Error("invalid request body"))
		return
	}

	if !response.Validate(w, r, h.validate, patch) {
		log.Warn("validation failed")
		return
	}

	updated, err := h.service.Update(r.Context(), id.String(), patch)
	if err != nil {
		log.Error("failed to update license", sl.Err(err))
		response.ServiceError(w, r, err, "license not found", "could not update license")
		return
	}

	log.Info("license updated", slog.String("id", updated.ID))
	response.JSON(w, r, http.StatusOK, response.StatusOKWithData(updated))
}
