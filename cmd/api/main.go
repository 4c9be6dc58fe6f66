package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/session-booking/internal/api/http"
	"github.com/spec-kit/session-booking/internal/api/http/handlers"
	"github.com/spec-kit/session-booking/internal/auth"
	"github.com/spec-kit/session-booking/internal/cache"
	"github.com/spec-kit/session-booking/internal/config"
	"github.com/spec-kit/session-booking/internal/events"
	"github.com/spec-kit/session-booking/internal/observability"
	"github.com/spec-kit/session-booking/internal/persistence"
	"github.com/spec-kit/session-booking/internal/repository"
	"github.com/spec-kit/session-booking/internal/service"
	"github.com/spec-kit/session-booking/internal/worker"
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

	var cacheStore *cache.Store
	if cfg.Cache.Enabled {
		cacheStore = cache.NewStore(redis.Client, cfg.Cache.Prefix, cfg.Cache.TTL(), logger)
	}

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	teacherRepo := repository.NewTeacherRepository(pool)
	sessionRepo := repository.NewSessionRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:   userRepo,
		Dispatcher: dispatcher,
	})
	sessionService := service.NewSessionService(service.SessionDependencies{
		SessionRepo: sessionRepo,
		UserRepo:    userRepo,
		TeacherRepo: teacherRepo,
		Dispatcher:  dispatcher,
		Cache:       cacheStore,
	})
	teacherService := service.NewTeacherService(teacherRepo, cacheStore)
	userService := service.NewUserService(userRepo)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, metrics),
		Auth:           handlers.NewAuthHandler(authService),
		Sessions:       handlers.NewSessionsHandler(sessionService),
		Teachers:       handlers.NewTeachersHandler(teacherService),
		Users:          handlers.NewUsersHandler(userService),
		AuthMiddleware: authMiddleware,
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
