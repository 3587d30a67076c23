// Package checklist реализует HTTP-обработчики чек-листа готовности к аудиту.
package checklist

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/license-dashboard/internal/http/response"
	"github.com/magabrotheeeer/license-dashboard/internal/lib/sl"
	"github.com/magabrotheeeer/license-dashboard/internal/models"
)

// Service описывает операции над чек-листом.
type Service interface {
	Checklist(ctx context.Context) ([]models.ChecklistItem, error)
	SetChecklistItem(ctx context.Context, id int, completed bool) (*models.ChecklistItem, error)
}

type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// List godoc
// @Summary Чек-лист аудита
// @Tags Audit
// @Produce  json
// @Success 200 {object} response.Response
// @Router /audit/checklist [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.checklist.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	items, err := h.service.Checklist(r.Context())
	if err != nil {
		log.Error("failed to load checklist", sl.Err(err))
		response.ServiceError(w, r, err, "checklist not found", "could not load checklist")
		return
	}
	response.JSON(w, r, http.StatusOK, response.StatusOKWithData(items))
}

// Update godoc
// @Summary Отметить пункт чек-листа
// @Tags Audit
// @Accept  json
// @Produce  json
// @Param id path int true "ID пункта"
// @Param request body models.ChecklistUpdate true "Отметка"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Router /audit/checklist/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.checklist.update"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		log.Warn("invalid id", slog.String("id", chi.URLParam(r, "id")))
		response.JSON(w, r, http.StatusBadRequest, response.Error("invalid id"))
		return
	}

	var req models.ChecklistUpdate
	if err = render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		response.JSON(w, r, http.StatusBadRequest, response.Error("invalid request body"))
		return
	}
	if !response.Validate(w, r, h.validate, req) {
		log.Warn("validation failed")
		return
	}

	item, err := h.service.SetChecklistItem(r.Context(), id, *req.Completed)
	if err != nil {
		log.Error("failed to update checklist item", slog.Int("id", id), sl.Err(err))
		response.ServiceError(w, r, err, "checklist item not found", "could not update checklist item")
		return
	}

	log.Info("checklist item updated", slog.Int("id", id), slog.Bool("completed", item.Completed))
	response.JSON(w, r, http.StatusOK, response.StatusOKWithData(item))
}
