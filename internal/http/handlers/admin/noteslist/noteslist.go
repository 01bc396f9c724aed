// Package noteslist реализует HTTP-обработчик голосовых записей всех
// пользователей для админ-панели.
package noteslist

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/voice-assistant-platform/internal/http/response"
	"github.com/magabrotheeeer/voice-assistant-platform/internal/lib/sl"
	"github.com/magabrotheeeer/voice-assistant-platform/internal/models"
)

const defaultLimit = 20

// Handler обрабатывает HTTP-запросы голосовых записей всех пользователей.
type Handler struct {
	log          *slog.Logger
	notesService Service
}

// Service описывает интерфейс общего списка голосовых записей.
type Service interface {
	ListAll(ctx context.Context, limit, offset int) ([]*models.VoiceNote, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, notesService Service) *Handler {
	return &Handler{
		log:          log,
		notesService: notesService,
	}
}

// ServeHTTP godoc
// @Summary Голосовые записи всех пользователей
// @Description Возвращает страницу голосовых записей для админ-панели.
// @Tags Admin
// @Produce  json
// @Security BearerAuth
// @Param limit query int false "Размер страницы"
// @Param offset query int false "Смещение"
// @Success 200 {object} map[string]any "Список записей"
// @Failure 401 {object} response.ErrorResponse "Нет действующей сессии"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /admin/voice-notes [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.noteslist"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	limit := defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	offset := 0
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	notes, err := h.notesService.ListAll(r.Context(), limit, offset)
	if err != nil {
		log.Error("failed to list voice notes", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal service error"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"voice_notes": notes,
	}))
}
