package remove

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/google/uuid"

	"github.com/magabrotheeeer/license-dashboard/internal/http/response"
	"github.com/magabrotheeeer/license-dashboard/internal/lib/sl"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

type Service interface {
	Remove(ctx context.Context, id string) error
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Удалить лицензию
// @Tags Licenses
// @Produce  json
// @Param id path string true "ID лицензии"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Router /licenses/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.license.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		log.Warn("invalid id format", sl.Err(err))
		response.JSON(w, r, http.StatusBadRequest, response.Error("invalid license id"))
		return
	}

	if err = h.service.Remove(r.Context(), id.String()); err != nil {
		log.Error("failed to delete license", sl.Err(err))
		response.ServiceError(w, r, err, "license not found", "failed to delete license")
		return
	}

	log.Info("license deleted", slog.String("id", id.String()))
	response.JSON(w, r, http.StatusOK, response.StatusOKWithData(map[string]any{
		"message": "License deleted successfully",
	}))
}
