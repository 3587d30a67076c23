// Package create реализует HTTP-обработчик создания лицензии.
//
// Handler принимает JSON с данными лицензии, валидирует его и возвращает
// сохранённую запись с присвоенным ID.
package create

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/license-dashboard/internal/http/response"
	"github.com/magabrotheeeer/license-dashboard/internal/lib/sl"
	"github.com/magabrotheeeer/license-dashboard/internal/models"
)

// Handler управляет HTTP-запросами на создание лицензий.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики лицензий
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики создания лицензии.
type Service interface {
	Create(ctx context.Context, req models.LicenseRequest) (*models.License, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Создать лицензию
// @Description Сохраняет новую лицензию. status по умолчанию active, usage — 0.
// @Tags Licenses
// @Accept  json
// @Produce  json
// @Param request body models.LicenseRequest true "Данные лицензии"
// @Success 201 {object} response.Response "Созданная лицензия"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /licenses [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.license.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.LicenseRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		response.JSON(w, r, http.StatusBadRequest, response.Error("invalid request body"))
		return
	}
	log.Debug("request body decoded", slog.Any("request", req))

	if !response.Validate(w, r, h.validate, req) {
		log.Warn("validation failed")
		return
	}

	created, err := h.service.Create(r.Context(), req)
	if err != nil {
		log.Error("failed to create license", sl.Err(err))
		response.ServiceError(w, r, err, "license not found", "could not create license")
		return
	}

	log.Info("license created", slog.String("id", created.ID))
	response.JSON(w, r, http.StatusCreated, response.StatusOKWithData(created))
}
