package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/community-ops/internal/api/http"
	"github.com/spec-kit/community-ops/internal/api/http/handlers"
	"github.com/spec-kit/community-ops/internal/auth"
	"github.com/spec-kit/community-ops/internal/boardcache"
	"github.com/spec-kit/community-ops/internal/config"
	"github.com/spec-kit/community-ops/internal/events"
	"github.com/spec-kit/community-ops/internal/guildconfig"
	"github.com/spec-kit/community-ops/internal/observability"
	"github.com/spec-kit/community-ops/internal/persistence"
	"github.com/spec-kit/community-ops/internal/repository"
	"github.com/spec-kit/community-ops/internal/service"
	"github.com/spec-kit/community-ops/internal/worker"
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

	var pg *persistence.Postgres
	var medium repository.Store
	switch cfg.Storage.Backend {
	case config.StorageBackendPostgres:
		pg, err = persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			logger.Fatal("failed to connect postgres", zap.Error(err))
		}
		defer pg.Close()
		medium, err = repository.NewPostgresStore(ctx, pg.PoolHandle(), logger)
		if err != nil {
			logger.Fatal("failed to init postgres document store", zap.Error(err))
		}
	default:
		medium = repository.NewFileStore(cfg.Storage.DataFile, logger)
	}

	docs := repository.NewDocumentRepository(medium, logger)
	if err := docs.Hydrate(ctx); err != nil {
		logger.Fatal("failed to hydrate document", zap.Error(err))
	}

	guilds := guildconfig.NewStore(cfg.Storage.GuildConfFile, logger)
	if err := guilds.Hydrate(ctx); err != nil {
		logger.Fatal("failed to hydrate guild configs", zap.Error(err))
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()
	boards := boardcache.NewCache(redis.Client)

	dispatcher := events.NewInMemoryDispatcher()

	// the rendered duty board goes stale on any clock event
	invalidateBoard := func(ctx context.Context, event events.Event) error {
		return boards.Invalidate(ctx, boardcache.DefaultGuild)
	}
	dispatcher.Subscribe(events.EventDutyClockIn, invalidateBoard)
	dispatcher.Subscribe(events.EventDutyClockOut, invalidateBoard)
	applicationService := service.NewApplicationService(docs, dispatcher, logger)
	ticketService := service.NewTicketService(docs, dispatcher, logger)
	dutyService := service.NewDutyService(docs, dispatcher, logger)
	reportService := service.NewReportService(docs, logger)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	authMiddleware := auth.NewMiddleware(tokenManager)

	metrics := observability.NewMetrics()
	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, docs, redis),
		Auth:           handlers.NewAuthHandler(tokenManager, cfg.Auth),
		Applications:   handlers.NewApplicationsHandler(applicationService),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		Duty:           handlers.NewDutyHandler(dutyService, boards),
		Reports:        handlers.NewReportsHandler(reportService),
		Guilds:         handlers.NewGuildsHandler(guilds),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()

	flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer flushCancel()
	if err := docs.Flush(flushCtx); err != nil {
		logger.Error("final document flush failed", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
