// Package list реализует HTTP-обработчик голосовых записей текущего
// пользователя для личного кабинета.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/voice-assistant-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/voice-assistant-platform/internal/http/response"
	"github.com/magabrotheeeer/voice-assistant-platform/internal/lib/sl"
	"github.com/magabrotheeeer/voice-assistant-platform/internal/models"
)

// Handler обрабатывает HTTP-запросы голосовых записей пользователя.
type Handler struct {
	log          *slog.Logger
	notesService Service
}

// Service описывает интерфейс чтения голосовых записей.
type Service interface {
	ListForAccount(ctx context.Context, accountID string) ([]*models.VoiceNote, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, notesService Service) *Handler {
	return &Handler{
		log:          log,
		notesService: notesService,
	}
}

// ServeHTTP godoc
// @Summary Голосовые записи пользователя
// @Description Возвращает голосовые записи текущего пользователя.
// @Tags VoiceNotes
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Список записей"
// @Failure 401 {object} response.ErrorResponse "Нет действующей сессии"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /voice-notes [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.voicenotes.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	accountUID, ok := middlewarectx.AccountUIDFromContext(r.Context())
	if !ok {
		log.Error("user identification missing")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("user identification missing"))
		return
	}

	notes, err := h.notesService.ListForAccount(r.Context(), accountUID)
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
