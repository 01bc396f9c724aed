package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/voice-assistant-platform/internal/http/response"
	"github.com/magabrotheeeer/voice-assistant-platform/internal/services/gate"
)

// AccessGateMiddleware создает middleware, пропускающий запрос только
// при положительном решении шлюза доступа для требуемой роли и,
// при необходимости, действующей подписки. Отказ возвращается с
// маршрутом перенаправления, который предлагает шлюз.
func AccessGateMiddleware(log *slog.Logger, requiredRole string, requiresActiveSubscription bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := SessionFromContext(r.Context())
			if !ok {
				log.Error("session missing in request context")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Denied("authentication required", gate.TargetLogin))
				return
			}

			decision := gate.Evaluate(session, requiredRole, requiresActiveSubscription)
			if !decision.Allow {
				status := http.StatusForbidden
				msg := "access denied"
				if decision.Redirect == gate.TargetLogin {
					status = http.StatusUnauthorized
					msg = "authentication required"
				} else if decision.Redirect == gate.TargetSubscriptions {
					msg = "active subscription required"
				}
				log.Error("access denied by gate",
					slog.String("account_uid", session.ID),
					slog.String("redirect", decision.Redirect))
				render.Status(r, status)
				render.JSON(w, r, response.Denied(msg, decision.Redirect))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
