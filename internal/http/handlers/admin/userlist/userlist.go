// Package userlist реализует HTTP-обработчик списка учётных записей
// для админ-панели с пагинацией через query-параметры limit и offset.
package userlist

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/voice-assistant-platform/internal/http/response"
	"github.com/magabrotheeeer/voice-assistant-platform/internal/lib/sl"
	"github.com/magabrotheeeer/voice-assistant-platform/internal/services/admin"
)

const defaultLimit = 20

// Handler обрабатывает HTTP-запросы списка учётных записей.
type Handler struct {
	log          *slog.Logger
	adminService Service
}

// Service описывает интерфейс админ-панели для списка учётных записей.
type Service interface {
	ListUsers(ctx context.Context, limit, offset int) (*admin.UserPage, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, adminService Service) *Handler {
	return &Handler{
		log:          log,
		adminService: adminService,
	}
}

// ServeHTTP godoc
// @Summary Список учётных записей
// @Description Возвращает страницу учётных записей для админ-панели.
// @Tags Admin
// @Produce  json
// @Security BearerAuth
// @Param limit query int false "Размер страницы"
// @Param offset query int false "Смещение"
// @Success 200 {object} map[string]any "Страница учётных записей"
// @Failure 401 {object} response.ErrorResponse "Нет действующей сессии"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /admin/users [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.userlist"

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

	page, err := h.adminService.ListUsers(r.Context(), limit, offset)
	if err != nil {
		log.Error("failed to list users", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal service error"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"accounts": page.Accounts,
		"total":    page.Total,
	}))
}
