// Package voiceplatform собирает приложение демонстрационного стенда:
// хранилище учётных записей, слоты сессии в Redis, сервисы и HTTP-сервер.
package voiceplatform

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/voice-assistant-platform/internal/cache"
	"github.com/magabrotheeeer/voice-assistant-platform/internal/config"
	"github.com/magabrotheeeer/voice-assistant-platform/internal/lib/jwt"
	"github.com/magabrotheeeer/voice-assistant-platform/internal/lib/password"
	"github.com/magabrotheeeer/voice-assistant-platform/internal/lib/sl"
	"github.com/magabrotheeeer/voice-assistant-platform/internal/migrations"
	"github.com/magabrotheeeer/voice-assistant-platform/internal/models"
	"github.com/magabrotheeeer/voice-assistant-platform/internal/paymentprovider"
	"github.com/magabrotheeeer/voice-assistant-platform/internal/rabbitmq"
	adminservice "github.com/magabrotheeeer/voice-assistant-platform/internal/services/admin"
	authservice "github.com/magabrotheeeer/voice-assistant-platform/internal/services/auth"
	billingservice "github.com/magabrotheeeer/voice-assistant-platform/internal/services/billing"
	checkoutservice "github.com/magabrotheeeer/voice-assistant-platform/internal/services/checkout"
	notifierservice "github.com/magabrotheeeer/voice-assistant-platform/internal/services/notifier"
	voicenotesservice "github.com/magabrotheeeer/voice-assistant-platform/internal/services/voicenotes"
	"github.com/magabrotheeeer/voice-assistant-platform/internal/session"
	"github.com/magabrotheeeer/voice-assistant-platform/internal/storage/memory"
	"github.com/magabrotheeeer/voice-assistant-platform/internal/storage/repository"
)

// chargeDelay — искусственная задержка имитации списания.
const chargeDelay = 2 * time.Second

// AccountStorage объединяет операции хранилища, которые используют
// сервисы стенда. Реализуется и набором в памяти, и PostgreSQL.
type AccountStorage interface {
	FindByEmail(ctx context.Context, email string) (*models.Account, error)
	Exists(ctx context.Context, email string) (bool, error)
	CreateAccount(ctx context.Context, account models.Account) (string, error)
	GetAccount(ctx context.Context, accountID string) (*models.Account, error)
	UpdateSubscription(ctx context.Context, accountID string, sub models.Subscription) error
	UpdateLastLogin(ctx context.Context, accountID string, at time.Time) error
	ListAccounts(ctx context.Context, limit, offset int) ([]*models.Account, error)
	CountAccounts(ctx context.Context) (int, error)
	CountActiveAccounts(ctx context.Context) (int, error)
	CountActiveSubscriptions(ctx context.Context) (int, error)
	ListVoiceNotes(ctx context.Context, limit, offset int) ([]*models.VoiceNote, error)
	ListVoiceNotesByAccount(ctx context.Context, accountID string) ([]*models.VoiceNote, error)
	CountVoiceNotesByStatus(ctx context.Context) (map[string]int, error)
	ListInvoicesByAccount(ctx context.Context, accountID string) ([]*models.Invoice, error)
	CreateInvoice(ctx context.Context, invoice models.Invoice) (string, error)
}

// App — собранное приложение стенда.
type App struct {
	server   *http.Server
	logger   *slog.Logger
	db       *repository.Storage
	rabbitmq *amqp.Connection
}

// New собирает приложение: открывает хранилище по storage_driver,
// подключает Redis, RabbitMQ (необязателен) и регистрирует маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	var store AccountStorage
	var db *repository.Storage

	switch cfg.StorageDriver {
	case "postgres":
		var err error
		db, err = repository.New(cfg.StorageConnectionString)
		if err != nil {
			return nil, err
		}
		if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
			return nil, err
		}
		store = db
	case "memory", "":
		var err error
		store, err = memory.NewSeeded(password.GetHash)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown storage driver: %s", cfg.StorageDriver)
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}
	sessions := session.New(cacheRedis, cfg.DurableTTL, cfg.GuardTTL)

	// Брокер необязателен: без него уведомления уходят в лог.
	var rabbitConn *amqp.Connection
	var channel *amqp.Channel
	if cfg.RabbitMQConnection != "" {
		rabbitConn, err = rabbitmq.Connect(cfg.RabbitMQConnection, 5, 2*time.Second)
		if err != nil {
			logger.Warn("rabbitmq unavailable, notifications fall back to log", sl.Err(err))
		} else {
			channel, err = rabbitmq.SetupChannel(rabbitConn)
			if err != nil {
				return nil, err
			}
		}
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	notifier := notifierservice.New(channel, logger)

	authService := authservice.NewAuthService(store, sessions, jwtMaker)
	checkoutService := checkoutservice.New(logger, store, store, sessions, cacheRedis,
		paymentprovider.NewClient(chargeDelay), notifier)
	adminService := adminservice.New(store, store)
	billingService := billingservice.New(store)
	notesService := voicenotesservice.New(store)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, &Services{
		Auth:       authService,
		Checkout:   checkoutService,
		Admin:      adminService,
		Billing:    billingService,
		VoiceNotes: notesService,
		Sessions:   sessions,
		JWTMaker:   jwtMaker,
	})

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:   srv,
		logger:   logger,
		db:       db,
		rabbitmq: rabbitConn,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его при отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if a.db != nil {
			_ = a.db.DB.Close()
		}
		if a.rabbitmq != nil {
			_ = a.rabbitmq.Close()
		}
		return err
	}
}
