// Package complete реализует HTTP-обработчик завершения оформления
// подписки: списание, активацию подписки и выдачу обновлённого снимка
// учётной записи.
package complete

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/voice-assistant-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/voice-assistant-platform/internal/http/response"
	"github.com/magabrotheeeer/voice-assistant-platform/internal/lib/sl"
	"github.com/magabrotheeeer/voice-assistant-platform/internal/models"
	"github.com/magabrotheeeer/voice-assistant-platform/internal/services/checkout"
	"github.com/magabrotheeeer/voice-assistant-platform/internal/services/gate"
)

// Request — входные данные завершения оформления. Код купона необязателен.
type Request struct {
	CouponCode string `json:"coupon_code,omitempty"`
}

// Handler обрабатывает HTTP-запросы завершения оформления.
type Handler struct {
	log             *slog.Logger
	checkoutService Service
}

// Service описывает интерфейс завершения оформления.
type Service interface {
	CompleteCheckout(ctx context.Context, accountID, couponCode string) (*models.Account, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, checkoutService Service) *Handler {
	return &Handler{
		log:             log,
		checkoutService: checkoutService,
	}
}

// ServeHTTP godoc
// @Summary Завершение оформления подписки
// @Description Списывает итоговую сумму, активирует подписку и возвращает обновлённый снимок учётной записи.
// @Tags Checkout
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body Request true "Код купона (необязателен)"
// @Success 200 {object} map[string]any "Подписка активирована"
// @Failure 400 {object} response.ErrorResponse "Тариф не выбран"
// @Failure 404 {object} response.ErrorResponse "Купон не существует"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /checkout/complete [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.checkout.complete"

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

	// Пустое тело равносильно оформлению без купона.
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	account, err := h.checkoutService.CompleteCheckout(r.Context(), accountUID, req.CouponCode)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrNoPendingSelection):
			log.Error("no pending selection", slog.String("account_uid", accountUID))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("no package selected"))
		case errors.Is(err, checkout.ErrInvalidCoupon):
			log.Error("invalid coupon code", slog.String("code", req.CouponCode))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("invalid coupon code"))
		default:
			log.Error("checkout failed", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("internal service error"))
		}
		return
	}

	log.Info("checkout completed",
		slog.String("account_uid", accountUID),
		slog.String("plan", account.Subscription.Plan))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"account":  account,
		"redirect": gate.TargetDashboard,
	}))
}
