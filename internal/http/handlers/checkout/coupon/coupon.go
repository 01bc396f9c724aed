// Package coupon реализует HTTP-обработчик проверки кода купона.
//
// Проверка ничего не сохраняет: купон применяется к сумме только при
// завершении оформления.
package coupon

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/voice-assistant-platform/internal/http/response"
	"github.com/magabrotheeeer/voice-assistant-platform/internal/lib/sl"
	"github.com/magabrotheeeer/voice-assistant-platform/internal/services/checkout"
)

// Request — входные данные проверки купона.
type Request struct {
	Code string `json:"code" validate:"required"`
	// Price — сумма, к которой применяется купон, для предпросмотра итога.
	Price float64 `json:"price" validate:"omitempty,min=0"`
}

// Handler обрабатывает HTTP-запросы проверки купона.
type Handler struct {
	log      *slog.Logger
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger) *Handler {
	return &Handler{
		log:      log,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Проверка купона
// @Description Проверяет код купона и возвращает правило скидки с предпросмотром итога.
// @Tags Checkout
// @Accept  json
// @Produce  json
// @Param request body Request true "Код купона и сумма"
// @Success 200 {object} map[string]any "Правило скидки"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 404 {object} response.ErrorResponse "Купон не существует"
// @Router /checkout/coupon [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.checkout.coupon"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	coupon, err := checkout.ApplyCoupon(req.Code)
	if err != nil {
		if errors.Is(err, checkout.ErrInvalidCoupon) {
			log.Error("invalid coupon code", slog.String("code", req.Code))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("invalid coupon code"))
			return
		}
		log.Error("coupon check failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal service error"))
		return
	}

	log.Info("coupon applied", slog.String("code", coupon.Code))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"coupon": coupon,
		"total":  checkout.ComputeTotal(req.Price, coupon),
	}))
}
