// Package educationplatform собирает основное приложение платформы:
// хранилище, кеш, брокер сообщений, платежного провайдера и HTTP-сервер.
package educationplatform

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/education-platform/internal/cache"
	"github.com/magabrotheeeer/education-platform/internal/config"
	"github.com/magabrotheeeer/education-platform/internal/lib/jwt"
	"github.com/magabrotheeeer/education-platform/internal/migrations"
	"github.com/magabrotheeeer/education-platform/internal/paymentprovider"
	"github.com/magabrotheeeer/education-platform/internal/rabbitmq"
	authservice "github.com/magabrotheeeer/education-platform/internal/services/auth"
	checkoutservice "github.com/magabrotheeeer/education-platform/internal/services/checkout"
	courseservice "github.com/magabrotheeeer/education-platform/internal/services/course"
	lessonservice "github.com/magabrotheeeer/education-platform/internal/services/lesson"
	paymentservice "github.com/magabrotheeeer/education-platform/internal/services/payment"
	subservice "github.com/magabrotheeeer/education-platform/internal/services/subscription"
	userservice "github.com/magabrotheeeer/education-platform/internal/services/user"
	"github.com/magabrotheeeer/education-platform/internal/storage/repository"
)

// App представляет основное приложение платформы.
type App struct {
	server *http.Server
	conn   *amqp.Connection
	ch     *amqp.Channel
	logger *slog.Logger
	db     *repository.Storage
}

// New создает приложение: подключает зависимости, применяет миграции
// и регистрирует маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, err
	}
	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
	if err != nil {
		conn.Close()
		return nil, err
	}
	publisher := rabbitmq.NewPublisher(ch)

	providerClient := paymentprovider.NewClient(cfg.StripeSecretKey, cfg.StripeAPIURL)
	maker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.AccessTTL, cfg.RefreshTTL)

	deps := Services{
		Auth:         authservice.NewAuthService(db, maker, cacheRedis, publisher, logger),
		Course:       courseservice.NewCourseService(db, providerClient, cacheRedis, publisher, logger),
		Lesson:       lessonservice.NewLessonService(db, publisher, logger),
		Subscription: subservice.NewSubscriptionService(db, publisher, logger),
		Payment:      paymentservice.NewPaymentService(db, logger),
		Checkout:     checkoutservice.NewCheckoutService(db, providerClient, cfg.SuccessURL, cfg.CancelURL, logger),
		User:         userservice.NewUserService(db, logger),
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, maker, deps)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		conn:   conn,
		ch:     ch,
		logger: logger,
		db:     db,
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
		if closeErr := a.ch.Close(); closeErr != nil {
			a.logger.Error("failed to close channel", slog.Any("err", closeErr))
		}
		if closeErr := a.conn.Close(); closeErr != nil {
			a.logger.Error("failed to close connection", slog.Any("err", closeErr))
		}
		a.db.DB.Close()
		return err
	}
}
