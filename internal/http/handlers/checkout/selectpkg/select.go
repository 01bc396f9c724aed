// Package selectpkg реализует HTTP-обработчик выбора тарифа перед
// оформлением. Выбор сохраняется отдельно от сессии и не меняет подписку.
package selectpkg

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/voice-assistant-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/voice-assistant-platform/internal/http/response"
	"github.com/magabrotheeeer/voice-assistant-platform/internal/lib/sl"
	"github.com/magabrotheeeer/voice-assistant-platform/internal/models"
	"github.com/magabrotheeeer/voice-assistant-platform/internal/services/checkout"
)

// Request — входные данные выбора тарифа.
type Request struct {
	PackageID    string `json:"package_id" validate:"required"`
	BillingCycle string `json:"billing_cycle" validate:"required,oneof=monthly yearly"`
}

// Handler обрабатывает HTTP-запросы выбора тарифа.
type Handler struct {
	log             *slog.Logger
	checkoutService Service
	validate        *validator.Validate
}

// Service описывает интерфейс выбора тарифа.
type Service interface {
	SelectPackage(ctx context.Context, accountID, packageID, billingCycle string) (*models.PendingSelection, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, checkoutService Service) *Handler {
	return &Handler{
		log:             log,
		checkoutService: checkoutService,
		validate:        validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Выбор тарифа
// @Description Запоминает выбранный тариф и цикл оплаты до завершения оформления.
// @Tags Checkout
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body Request true "Тариф и цикл оплаты"
// @Success 200 {object} map[string]any "Сохранённый выбор"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 404 {object} response.ErrorResponse "Неизвестный тариф"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /checkout/select [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.checkout.selectpkg"

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

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Any("request", req))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	selection, err := h.checkoutService.SelectPackage(r.Context(), accountUID, req.PackageID, req.BillingCycle)
	if err != nil {
		if errors.Is(err, checkout.ErrUnknownPackage) {
			log.Error("unknown package", slog.String("package_id", req.PackageID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("unknown package"))
			return
		}
		log.Error("failed to select package", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal service error"))
		return
	}

	log.Info("package selected",
		slog.String("account_uid", accountUID),
		slog.String("package_id", selection.PackageID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"selection": selection,
	}))
}
