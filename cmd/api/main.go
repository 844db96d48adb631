package main

import (
	"context"
	"log"
	"time"

	"relay-messenger/config"
	"relay-messenger/internal/handler"
	"relay-messenger/internal/middleware"
	"relay-messenger/internal/redis"
	"relay-messenger/internal/repository"
	"relay-messenger/internal/server"
	"relay-messenger/internal/services"
	"relay-messenger/internal/storage"
	"relay-messenger/pkg/database"
	"relay-messenger/pkg/logger"
)

func main() {
	cfg := config.LoadConfig()

	l := logger.New(cfg.LogMode)
	logger.SetGlobalLogger(l)
	defer l.Sync()

	// Connect to Database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	if cfg.MigrateOnStart {
		if err := database.ApplyMigrations(db); err != nil {
			log.Fatalf("Failed to apply migrations: %v", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := storage.NewClient(ctx, storage.S3Config{
		Region:     cfg.S3Region,
		Bucket:     cfg.S3Bucket,
		AccessKey:  cfg.S3AccessKey,
		SecretKey:  cfg.S3SecretKey,
		Endpoint:   cfg.S3Endpoint,
		PublicBase: cfg.S3PublicBase,
	})
	if err != nil {
		log.Fatalf("Failed to configure object storage: %v", err)
	}

	// Rate limiting is optional; without Redis the auth route is unlimited.
	var limiter middleware.AuthLimiter
	redisCfg := redis.Config{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB}
	if redisCfg.Enabled() {
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			l.Warnf("Redis unavailable, auth rate limiting disabled: %v", err)
		} else {
			defer client.Close()
			limiter = redis.NewRateLimiter(client, redis.RateLimitConfig{
				AuthLimit:  cfg.AuthRateLimit,
				AuthWindow: time.Duration(cfg.AuthRateWindowSec) * time.Second,
			})
		}
	}

	userRepo := repository.NewUserRepository(db)
	chatRepo := repository.NewChatRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	authService := services.NewAuthService(userRepo)
	conversationService := services.NewConversationService(chatRepo, userRepo)
	messageService := services.NewMessageService(messageRepo, userRepo)
	notificationService := services.NewNotificationService(notificationRepo, services.NewLogDispatcher(l), l)
	settingsService := services.NewSettingsService(settingsRepo)
	uploadService := services.NewUploadService(store)

	handlers := &server.Handlers{
		Auth:          handler.NewAuthHandler(authService, l),
		Messages:      handler.NewMessagesHandler(conversationService, messageService, l),
		Notifications: handler.NewNotificationsHandler(notificationService, l),
		Settings:      handler.NewSettingsHandler(settingsService, l),
		Upload:        handler.NewUploadHandler(uploadService, l),
	}

	srv := server.New(cfg, l)
	srv.SetupRoutes(handlers, limiter, func(ctx context.Context) error {
		return database.HealthCheck(ctx, db)
	})

	if err := srv.Start(); err != nil {
		l.Errorf("Server exited with error: %v", err)
	}
}
