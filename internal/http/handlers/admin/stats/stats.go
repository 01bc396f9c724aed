// Package stats реализует HTTP-обработчик сводных счётчиков админ-панели.
package stats

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/voice-assistant-platform/internal/http/response"
	"github.com/magabrotheeeer/voice-assistant-platform/internal/lib/sl"
	"github.com/magabrotheeeer/voice-assistant-platform/internal/services/admin"
)

// Handler обрабатывает HTTP-запросы сводных счётчиков.
type Handler struct {
	log          *slog.Logger
	adminService Service
}

// Service описывает интерфейс сбора сводных счётчиков.
type Service interface {
	CollectStats(ctx context.Context) (*admin.Stats, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, adminService Service) *Handler {
	return &Handler{
		log:          log,
		adminService: adminService,
	}
}

// ServeHTTP godoc
// @Summary Сводные счётчики
// @Description Возвращает счётчики учётных записей, подписок и голосовых записей.
// @Tags Admin
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Сводные счётчики"
// @Failure 401 {object} response.ErrorResponse "Нет действующей сессии"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /admin/stats [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.stats"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	stats, err := h.adminService.CollectStats(r.Context())
	if err != nil {
		log.Error("failed to collect stats", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal service error"))
		return
	}

	render.JSON(w, r, response.OKWithData(stats))
}
