// Package logout реализует HTTP-обработчик выхода из системы:
// удаляет оба слота снимка сессии учётной записи из контекста запроса.
package logout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/voice-assistant-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/voice-assistant-platform/internal/http/response"
	"github.com/magabrotheeeer/voice-assistant-platform/internal/lib/sl"
	"github.com/magabrotheeeer/voice-assistant-platform/internal/services/gate"
)

// Handler обрабатывает HTTP-запросы выхода из системы.
type Handler struct {
	log         *slog.Logger
	authService Service
}

// Service описывает интерфейс закрытия сессии.
type Service interface {
	Logout(ctx context.Context, accountID string) error
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, authService Service) *Handler {
	return &Handler{
		log:         log,
		authService: authService,
	}
}

// ServeHTTP godoc
// @Summary Выход из системы
// @Description Закрывает сессию текущего пользователя.
// @Tags Auth
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Сессия закрыта"
// @Failure 401 {object} response.ErrorResponse "Нет действующей сессии"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /logout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

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

	if err := h.authService.Logout(r.Context(), accountUID); err != nil {
		log.Error("logout failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal service error"))
		return
	}

	log.Info("logout success", slog.String("account_uid", accountUID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"redirect": gate.TargetLogin,
	}))
}
