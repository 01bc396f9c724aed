// Package me реализует HTTP-обработчик чтения текущей сессии:
// возвращает снимок учётной записи и целевой маршрут, куда сессия
// ведёт при входе в приложение.
package me

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/voice-assistant-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/voice-assistant-platform/internal/http/response"
	"github.com/magabrotheeeer/voice-assistant-platform/internal/services/gate"
)

// Handler обрабатывает HTTP-запросы чтения текущей сессии.
type Handler struct {
	log *slog.Logger
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

// ServeHTTP godoc
// @Summary Текущая сессия
// @Description Возвращает снимок учётной записи текущей сессии и целевой маршрут входа.
// @Tags Auth
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Снимок сессии"
// @Failure 401 {object} response.ErrorResponse "Нет действующей сессии"
// @Router /me [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.me"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	session, ok := middlewarectx.SessionFromContext(r.Context())
	if !ok {
		log.Error("session missing in request context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("authentication required"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"account":  session,
		"redirect": gate.LandingTarget(session),
	}))
}
