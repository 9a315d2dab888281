package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/agencyhub/community-service/internal/api/http"
	"github.com/agencyhub/community-service/internal/api/http/handlers"
	"github.com/agencyhub/community-service/internal/auth"
	"github.com/agencyhub/community-service/internal/config"
	"github.com/agencyhub/community-service/internal/events"
	"github.com/agencyhub/community-service/internal/observability"
	"github.com/agencyhub/community-service/internal/persistence"
	"github.com/agencyhub/community-service/internal/repository"
	"github.com/agencyhub/community-service/internal/service"
	"github.com/agencyhub/community-service/internal/worker"
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

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	groupRepo := repository.NewChatGroupRepository(pool)
	messageRepo := repository.NewChatMessageRepository(pool)
	conversationRepo := repository.NewConversationRepository(pool)
	privateMessageRepo := repository.NewPrivateMessageRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	eventRepo := repository.NewEventRepository(pool)
	announcementRepo := repository.NewAnnouncementRepository(pool)
	bannerRepo := repository.NewBannerRepository(pool)
	settingRepo := repository.NewSettingRepository(pool)
	vipAppRepo := repository.NewVipAppRepository(pool)
	siteRepo := repository.NewEmbeddedSiteRepository(pool)

	if cfg.App.SeedInitialData {
		if err := persistence.SeedInitialData(ctx, logger, userRepo, groupRepo, cfg.Session.BcryptCost); err != nil {
			logger.Fatal("failed to seed initial data", zap.Error(err))
		}
	}

	dispatcher := events.NewInMemoryDispatcher()
	sessionManager := auth.NewSessionManager(redis.Client, cfg.Session)

	authService := service.NewAuthService(cfg.Session, service.AuthDependencies{
		UserRepo:   userRepo,
		Sessions:   sessionManager,
		Dispatcher: dispatcher,
	})
	userService := service.NewUserService(userRepo, cfg.Session.BcryptCost)
	chatService := service.NewChatService(service.ChatDependencies{
		GroupRepo:   groupRepo,
		MessageRepo: messageRepo,
		UserRepo:    userRepo,
		Dispatcher:  dispatcher,
	})
	conversationService := service.NewConversationService(service.ConversationDependencies{
		ConversationRepo: conversationRepo,
		MessageRepo:      privateMessageRepo,
		UserRepo:         userRepo,
		Dispatcher:       dispatcher,
	})
	ticketService := service.NewTicketService(ticketRepo, dispatcher)
	eventService := service.NewEventService(eventRepo)
	contentService := service.NewContentService(service.ContentDependencies{
		AnnouncementRepo: announcementRepo,
		BannerRepo:       bannerRepo,
		SettingRepo:      settingRepo,
		VipAppRepo:       vipAppRepo,
		SiteRepo:         siteRepo,
		Dispatcher:       dispatcher,
	})
	statsService := service.NewStatsService(userRepo, eventRepo, messageRepo, ticketRepo)

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewMiddleware(sessionManager, userRepo)
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Users:          handlers.NewUsersHandler(userService),
		Chat:           handlers.NewChatHandler(chatService),
		Conversations:  handlers.NewConversationsHandler(conversationService),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		Events:         handlers.NewEventsHandler(eventService),
		Content:        handlers.NewContentHandler(contentService, statsService),
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
