// Package packages реализует HTTP-обработчик каталога тарифов.
package packages

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/voice-assistant-platform/internal/http/response"
	"github.com/magabrotheeeer/voice-assistant-platform/internal/services/checkout"
)

// Handler обрабатывает HTTP-запросы каталога тарифов.
type Handler struct {
	log *slog.Logger
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

// ServeHTTP godoc
// @Summary Каталог тарифов
// @Description Возвращает список тарифных планов с ценами и составом.
// @Tags Subscription
// @Produce  json
// @Success 200 {object} map[string]any "Каталог тарифов"
// @Router /packages [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, response.OKWithData(map[string]any{
		"packages": checkout.Packages(),
	}))
}
