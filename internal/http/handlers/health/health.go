package health

import (
	"context"
	"log/slog"
	"net/http"
	"sort"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/license-dashboard/internal/http/response"
	"github.com/magabrotheeeer/license-dashboard/internal/lib/sl"
)

// Check проверяет доступность одной зависимости.
type Check func(ctx context.Context) error

type Handler struct {
	log    *slog.Logger
	checks map[string]Check
}

// New создает Handler с проверками, ключ которых задаёт имя зависимости.
func New(log *slog.Logger, checks map[string]Check) *Handler {
	return &Handler{
		log:    log,
		checks: checks,
	}
}

// ServeHTTP godoc
// @Summary Проверка состояния
// @Tags Health
// @Produce  json
// @Success 200 {object} response.Response
// @Failure 503 {object} response.ErrorResponse
// @Router /health [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.health"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := h.checks[name](r.Context()); err != nil {
			log.Error("dependency is unavailable", slog.String("dependency", name), sl.Err(err))
			response.JSON(w, r, http.StatusServiceUnavailable, response.Error(name+" unavailable"))
			return
		}
	}
	response.JSON(w, r, http.StatusOK, response.StatusOKWithData(map[string]any{
		"status": "ok",
	}))
}
