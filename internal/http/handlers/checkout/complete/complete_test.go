package complete

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/voice-assistant-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/voice-assistant-platform/internal/models"
	"github.com/magabrotheeeer/voice-assistant-platform/internal/services/checkout"
	"github.com/magabrotheeeer/voice-assistant-platform/internal/services/gate"
)

type CheckoutServiceMock struct {
	mock.Mock
}

func (m *CheckoutServiceMock) CompleteCheckout(ctx context.Context, accountID, couponCode string) (*models.Account, error) {
	args := m.Called(ctx, accountID, couponCode)
	account, _ := args.Get(0).(*models.Account)
	return account, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestCompleteHandler_ServeHTTP(t *testing.T) {
	checkoutMock := new(CheckoutServiceMock)
	logger := newNoopLogger()

	handler := New(logger, checkoutMock)

	upgraded := &models.Account{
		ID:    "uid-1",
		Email: "user@example.com",
		Role:  models.RoleUser,
		Subscription: &models.Subscription{
			Plan:      "Pro",
			Status:    models.SubscriptionActive,
			StartDate: time.Now(),
			EndDate:   time.Now().Add(30 * 24 * time.Hour),
		},
	}

	tests := []struct {
		name           string
		accountUID     string
		requestBody    Request
		mockAccount    *models.Account
		mockErr        error
		wantStatusCode int
		wantError      string
		wantStatus     string
	}{
		{
			name:           "successful checkout",
			accountUID:     "uid-1",
			requestBody:    Request{CouponCode: "SAVE20"},
			mockAccount:    upgraded,
			wantStatusCode: http.StatusOK,
			wantStatus:     "OK",
		},
		{
			name:           "no pending selection",
			accountUID:     "uid-1",
			requestBody:    Request{},
			mockErr:        checkout.ErrNoPendingSelection,
			wantStatusCode: http.StatusBadRequest,
			wantError:      "no package selected",
			wantStatus:     "Error",
		},
		{
			name:           "invalid coupon",
			accountUID:     "uid-1",
			requestBody:    Request{CouponCode: "EXPIRED"},
			mockErr:        checkout.ErrInvalidCoupon,
			wantStatusCode: http.StatusNotFound,
			wantError:      "invalid coupon code",
			wantStatus:     "Error",
		},
		{
			name:           "missing account in context",
			accountUID:     "",
			requestBody:    Request{},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      "user identification missing",
			wantStatus:     "Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkoutMock.ExpectedCalls = nil
			checkoutMock.Calls = nil

			if tt.mockAccount != nil || tt.mockErr != nil {
				checkoutMock.On("CompleteCheckout", mock.Anything, tt.accountUID, tt.requestBody.CouponCode).
					Return(tt.mockAccount, tt.mockErr).Once()
			}

			bodyBytes, err := json.Marshal(tt.requestBody)
			if err != nil {
				t.Fatal(err)
			}

			req := httptest.NewRequest(http.MethodPost, "/checkout/complete", bytes.NewReader(bodyBytes))
			ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123")
			if tt.accountUID != "" {
				ctx = context.WithValue(ctx, middlewarectx.AccountUID, tt.accountUID)
			}
			req = req.WithContext(ctx)

			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			err = json.NewDecoder(rec.Body).Decode(&got)
			assert.NoError(t, err)

			assert.Equal(t, tt.wantStatus, got["status"])

			if tt.wantError != "" {
				errStr, ok := got["error"].(string)
				assert.True(t, ok)
				assert.Equal(t, tt.wantError, errStr)
			}

			if tt.mockAccount != nil {
				data, ok := got["data"].(map[string]any)
				assert.True(t, ok)
				assert.Equal(t, gate.TargetDashboard, data["redirect"])
			}

			if tt.mockAccount != nil || tt.mockErr != nil {
				checkoutMock.AssertExpectations(t)
			}
		})
	}
}
