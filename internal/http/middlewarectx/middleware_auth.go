// Package middlewarectx содержит HTTP middleware запросного конвейера:
// проверку JWT токена с подъёмом снимка сессии в контекст, шлюз доступа
// по роли и подписке и ограничитель частоты запросов.
//
// JWTMiddleware проверяет наличие и валидность JWT токена в заголовке
// Authorization, читает страховочный канал снимка сессии и в случае
// успеха добавляет снимок учётной записи в контекст для дальнейшего
// использования в обработчиках.
//
// В случае ошибки проверки возвращает HTTP 401 Unauthorized с сообщением об ошибке.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/voice-assistant-platform/internal/http/response"
	"github.com/magabrotheeeer/voice-assistant-platform/internal/lib/jwt"
	"github.com/magabrotheeeer/voice-assistant-platform/internal/lib/sl"
	"github.com/magabrotheeeer/voice-assistant-platform/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// AccountUID — ключ для идентификатора учётной записи в контексте
	AccountUID Key = "account_uid"
	// Session — ключ для снимка сессии в контексте
	Session Key = "session"
)

// SessionReader читает снимок сессии из страховочного канала.
type SessionReader interface {
	GetGuard(ctx context.Context, accountID string) (*models.Account, error)
}

// JWTMiddleware возвращает HTTP middleware, который проверяет JWT в заголовке Authorization.
//
// Если токен валиден и снимок сессии существует, добавляет идентификатор
// учётной записи и снимок в контекст запроса, иначе возвращает ошибку
// с HTTP статусом 401 Unauthorized.
func JWTMiddleware(jwtMaker jwt.Maker, sessions SessionReader, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"
			authHeader := r.Header.Get("Authorization")

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Error("missing or invalid authorization header")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("missing or invalid authorization header"))
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			claims, err := jwtMaker.ParseToken(tokenStr)
			if err != nil {
				log.Error("invalid or expired token", sl.Err(err))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid or expired token"))
				return
			}

			session, err := sessions.GetGuard(r.Context(), claims.AccountUID)
			if err != nil {
				log.Error("failed to read session", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("internal service error"))
				return
			}
			if session == nil {
				log.Error("session not found", slog.String("account_uid", claims.AccountUID))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("session expired"))
				return
			}

			ctx := context.WithValue(r.Context(), AccountUID, claims.AccountUID)
			ctx = context.WithValue(ctx, Session, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext возвращает снимок сессии, положенный JWTMiddleware.
func SessionFromContext(ctx context.Context) (*models.Account, bool) {
	session, ok := ctx.Value(Session).(*models.Account)
	return session, ok
}

// AccountUIDFromContext возвращает идентификатор учётной записи из контекста.
func AccountUIDFromContext(ctx context.Context) (string, bool) {
	uid, ok := ctx.Value(AccountUID).(string)
	return uid, ok
}
