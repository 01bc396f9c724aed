package middlewarectx_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/voice-assistant-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/voice-assistant-platform/internal/lib/jwt"
	"github.com/magabrotheeeer/voice-assistant-platform/internal/models"
	"github.com/magabrotheeeer/voice-assistant-platform/internal/services/gate"
)

// Fake for SessionReader
type sessionReaderFake struct {
	sessions map[string]*models.Account
}

func (f *sessionReaderFake) GetGuard(_ context.Context, accountID string) (*models.Account, error) {
	return f.sessions[accountID], nil
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestJWTMiddleware(t *testing.T) {
	maker := jwt.NewJWTMaker("test-secret", time.Hour)
	logger := newNoopLogger()

	account := &models.Account{
		ID:    "uid-1",
		Email: "user@example.com",
		Role:  models.RoleUser,
	}
	sessions := &sessionReaderFake{sessions: map[string]*models.Account{
		"uid-1": account,
	}}

	validToken, err := maker.GenerateToken(account.Email, account.Role, account.ID)
	require.NoError(t, err)
	orphanToken, err := maker.GenerateToken("gone@example.com", models.RoleUser, "uid-gone")
	require.NoError(t, err)

	tests := []struct {
		name           string
		authHeader     string
		wantStatusCode int
		wantCalled     bool
	}{
		{
			name:           "missing Authorization header",
			authHeader:     "",
			wantStatusCode: http.StatusUnauthorized,
			wantCalled:     false,
		},
		{
			name:           "invalid Authorization header prefix",
			authHeader:     "Basic sometoken",
			wantStatusCode: http.StatusUnauthorized,
			wantCalled:     false,
		},
		{
			name:           "garbage token",
			authHeader:     "Bearer not-a-token",
			wantStatusCode: http.StatusUnauthorized,
			wantCalled:     false,
		},
		{
			name:           "valid token without session",
			authHeader:     "Bearer " + orphanToken,
			wantStatusCode: http.StatusUnauthorized,
			wantCalled:     false,
		},
		{
			name:           "valid token with session",
			authHeader:     "Bearer " + validToken,
			wantStatusCode: http.StatusOK,
			wantCalled:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlerCalled := false
			nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				handlerCalled = true
				uid, ok := middlewarectx.AccountUIDFromContext(r.Context())
				assert.True(t, ok)
				assert.Equal(t, "uid-1", uid)
				session, ok := middlewarectx.SessionFromContext(r.Context())
				assert.True(t, ok)
				assert.Equal(t, "user@example.com", session.Email)
				w.WriteHeader(http.StatusOK)
			})
			mw := middlewarectx.JWTMiddleware(maker, sessions, logger)(nextHandler)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rr := httptest.NewRecorder()
			mw.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatusCode, rr.Code)
			assert.Equal(t, tt.wantCalled, handlerCalled)
		})
	}
}

func TestAccessGateMiddleware(t *testing.T) {
	logger := newNoopLogger()

	activeSub := &models.Subscription{
		Plan:      "Pro",
		Status:    models.SubscriptionActive,
		StartDate: time.Now(),
		EndDate:   time.Now().Add(30 * 24 * time.Hour),
	}

	tests := []struct {
		name           string
		session        *models.Account
		requiredRole   string
		requiresSub    bool
		wantStatusCode int
		wantCalled     bool
		wantRedirect   string
	}{
		{
			name:           "no session in context",
			session:        nil,
			requiredRole:   models.RoleUser,
			requiresSub:    true,
			wantStatusCode: http.StatusUnauthorized,
			wantCalled:     false,
			wantRedirect:   gate.TargetLogin,
		},
		{
			name:           "user without subscription on gated route",
			session:        &models.Account{ID: "u1", Role: models.RoleUser},
			requiredRole:   models.RoleUser,
			requiresSub:    true,
			wantStatusCode: http.StatusForbidden,
			wantCalled:     false,
			wantRedirect:   gate.TargetSubscriptions,
		},
		{
			name:           "user with active subscription",
			session:        &models.Account{ID: "u1", Role: models.RoleUser, Subscription: activeSub},
			requiredRole:   models.RoleUser,
			requiresSub:    true,
			wantStatusCode: http.StatusOK,
			wantCalled:     true,
		},
		{
			name:           "user on admin route",
			session:        &models.Account{ID: "u1", Role: models.RoleUser, Subscription: activeSub},
			requiredRole:   models.RoleAdmin,
			requiresSub:    false,
			wantStatusCode: http.StatusUnauthorized,
			wantCalled:     false,
			wantRedirect:   gate.TargetLogin,
		},
		{
			name:           "admin on admin route",
			session:        &models.Account{ID: "a1", Role: models.RoleAdmin},
			requiredRole:   models.RoleAdmin,
			requiresSub:    false,
			wantStatusCode: http.StatusOK,
			wantCalled:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlerCalled := false
			nextHandler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				handlerCalled = true
				w.WriteHeader(http.StatusOK)
			})
			mw := middlewarectx.AccessGateMiddleware(logger, tt.requiredRole, tt.requiresSub)(nextHandler)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
			if tt.session != nil {
				ctx := context.WithValue(req.Context(), middlewarectx.Session, tt.session)
				req = req.WithContext(ctx)
			}
			rr := httptest.NewRecorder()
			mw.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatusCode, rr.Code)
			assert.Equal(t, tt.wantCalled, handlerCalled)
			if tt.wantRedirect != "" {
				assert.Contains(t, rr.Body.String(), tt.wantRedirect)
			}
		})
	}
}
