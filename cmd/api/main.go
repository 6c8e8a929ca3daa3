package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/bookstore-service/internal/api/http"
	"github.com/spec-kit/bookstore-service/internal/api/http/handlers"
	"github.com/spec-kit/bookstore-service/internal/auth"
	"github.com/spec-kit/bookstore-service/internal/config"
	"github.com/spec-kit/bookstore-service/internal/events"
	"github.com/spec-kit/bookstore-service/internal/observability"
	"github.com/spec-kit/bookstore-service/internal/persistence"
	"github.com/spec-kit/bookstore-service/internal/repository"
	"github.com/spec-kit/bookstore-service/internal/service"
	"github.com/spec-kit/bookstore-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	codec, err := auth.NewCodec(cfg.Auth.JWTSecret)
	if err != nil {
		logger.Fatal("signing key rejected", zap.Error(err))
	}
	issuer := auth.NewIssuer(codec, cfg.Auth.AccessTokenTTL(), cfg.Auth.RefreshTokenTTL())
	verifier := auth.NewVerifier(codec)
	policy := auth.NewPolicy(auth.DefaultRules())
	gate := auth.NewGate(verifier)

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	bookRepo := repository.NewBookRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)
	reviewRepo := repository.NewReviewRepository(pool)
	resetRepo := repository.NewPasswordResetRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	bookCache := persistence.NewBookCache(redis, cfg.Redis.BookCacheTTL())

	credentialService := service.NewCredentialService(*cfg, service.CredentialDependencies{
		UserRepo:          userRepo,
		PasswordResetRepo: resetRepo,
		Issuer:            issuer,
		Verifier:          verifier,
		Dispatcher:        dispatcher,
	})
	userService := service.NewUserService(userRepo)
	bookService := service.NewBookService(bookRepo, bookCache, logger)
	orderService := service.NewOrderService(orderRepo, bookRepo, dispatcher)
	reviewService := service.NewReviewService(reviewRepo, bookRepo)
	adminService := service.NewAdminService(userRepo, bookRepo, orderRepo)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)

	worker.StartNotificationWorker(notificationService)

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout(), cfg.App.RateLimitPerMinute)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:  handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:    handlers.NewAuthHandler(credentialService),
		Users:   handlers.NewUsersHandler(userService, credentialService),
		Books:   handlers.NewBooksHandler(bookService, reviewService),
		Orders:  handlers.NewOrdersHandler(orderService),
		Reviews: handlers.NewReviewsHandler(reviewService),
		Admin:   handlers.NewAdminHandler(adminService, bookService),
		Gate:    gate,
		Policy:  policy,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
