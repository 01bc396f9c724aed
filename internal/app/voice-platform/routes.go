// Package voiceplatform предоставляет маршруты для основного приложения.
package voiceplatform

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"

	adminnoteslist "github.com/magabrotheeeer/voice-assistant-platform/internal/http/handlers/admin/noteslist"
	adminstats "github.com/magabrotheeeer/voice-assistant-platform/internal/http/handlers/admin/stats"
	adminuserlist "github.com/magabrotheeeer/voice-assistant-platform/internal/http/handlers/admin/userlist"
	"github.com/magabrotheeeer/voice-assistant-platform/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/voice-assistant-platform/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/voice-assistant-platform/internal/http/handlers/auth/me"
	"github.com/magabrotheeeer/voice-assistant-platform/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/voice-assistant-platform/internal/http/handlers/auth/resetpassword"
	billinginvoices "github.com/magabrotheeeer/voice-assistant-platform/internal/http/handlers/billing/invoices"
	checkoutcomplete "github.com/magabrotheeeer/voice-assistant-platform/internal/http/handlers/checkout/complete"
	checkoutcoupon "github.com/magabrotheeeer/voice-assistant-platform/internal/http/handlers/checkout/coupon"
	checkoutselect "github.com/magabrotheeeer/voice-assistant-platform/internal/http/handlers/checkout/selectpkg"
	"github.com/magabrotheeeer/voice-assistant-platform/internal/http/handlers/health"
	profileupdate "github.com/magabrotheeeer/voice-assistant-platform/internal/http/handlers/profile/update"
	"github.com/magabrotheeeer/voice-assistant-platform/internal/http/handlers/subscription/packages"
	noteslist "github.com/magabrotheeeer/voice-assistant-platform/internal/http/handlers/voicenotes/list"
	"github.com/magabrotheeeer/voice-assistant-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/voice-assistant-platform/internal/lib/jwt"
	"github.com/magabrotheeeer/voice-assistant-platform/internal/models"
	adminservice "github.com/magabrotheeeer/voice-assistant-platform/internal/services/admin"
	authservice "github.com/magabrotheeeer/voice-assistant-platform/internal/services/auth"
	billingservice "github.com/magabrotheeeer/voice-assistant-platform/internal/services/billing"
	checkoutservice "github.com/magabrotheeeer/voice-assistant-platform/internal/services/checkout"
	voicenotesservice "github.com/magabrotheeeer/voice-assistant-platform/internal/services/voicenotes"
	"github.com/magabrotheeeer/voice-assistant-platform/internal/session"
)

// Services — сервисы, которыми пользуются маршруты.
type Services struct {
	Auth       *authservice.AuthService
	Checkout   *checkoutservice.CheckoutService
	Admin      *adminservice.AdminService
	Billing    *billingservice.BillingService
	VoiceNotes *voicenotesservice.VoiceNotesService
	Sessions   *session.Store
	JWTMaker   jwt.Maker
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, svc *Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	limiter := rate.NewLimiter(20, 40)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, svc.Auth).ServeHTTP)
		r.Post("/login", login.New(logger, svc.Auth).ServeHTTP)
		r.Post("/reset-password", resetpassword.New(logger, svc.Auth).ServeHTTP)
		r.Get("/packages", packages.New(logger).ServeHTTP)
		r.Post("/checkout/coupon", checkoutcoupon.New(logger).ServeHTTP)
		r.Get("/health", health.New(logger).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(svc.JWTMaker, svc.Sessions, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger, limiter))

			r.Get("/me", me.New(logger).ServeHTTP)
			r.Post("/logout", logout.New(logger, svc.Auth).ServeHTTP)
			r.Patch("/profile", profileupdate.New(logger, svc.Auth).ServeHTTP)

			// Оформление доступно без действующей подписки
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.AccessGateMiddleware(logger, models.RoleUser, false))
				r.Post("/checkout/select", checkoutselect.New(logger, svc.Checkout).ServeHTTP)
				r.Post("/checkout/complete", checkoutcomplete.New(logger, svc.Checkout).ServeHTTP)
			})

			// Личный кабинет требует действующую подписку
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.AccessGateMiddleware(logger, models.RoleUser, true))
				r.Get("/voice-notes", noteslist.New(logger, svc.VoiceNotes).ServeHTTP)
				r.Get("/billing/invoices", billinginvoices.New(logger, svc.Billing).ServeHTTP)
			})

			// Админ-панель
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.AccessGateMiddleware(logger, models.RoleAdmin, false))
				r.Get("/admin/users", adminuserlist.New(logger, svc.Admin).ServeHTTP)
				r.Get("/admin/stats", adminstats.New(logger, svc.Admin).ServeHTTP)
				r.Get("/admin/voice-notes", adminnoteslist.New(logger, svc.VoiceNotes).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
