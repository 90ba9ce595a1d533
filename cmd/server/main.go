package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/Freeeeeet/field_booking/internal/app"
	"github.com/Freeeeeet/field_booking/internal/auth"
	"github.com/Freeeeeet/field_booking/internal/config"
	"github.com/Freeeeeet/field_booking/internal/controller/handlers"
	"github.com/Freeeeeet/field_booking/internal/notify"
	"github.com/Freeeeeet/field_booking/internal/repository"
	"github.com/Freeeeeet/field_booking/internal/service"
)

const tokenTTL = 24 * time.Hour

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to create connection pool", zap.Error(err))
	}
	defer pool.Close()

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	migrator.Close()

	userRepo := repository.NewUserRepository(pool)
	fieldRepo := repository.NewFieldRepository(pool)
	reservationRepo := repository.NewReservationRepository(pool)

	var notifier service.ReservationNotifier
	if cfg.NotificationsEnabled() {
		telegramNotifier, err := notify.NewTelegramNotifier(cfg.TelegramToken, cfg.TelegramAdminChatID, logger)
		if err != nil {
			logger.Fatal("Failed to create telegram notifier", zap.Error(err))
		}
		notifier = telegramNotifier
		logger.Info("Telegram notifications enabled")
	}

	tokens := auth.NewTokenManager(cfg.JWTSecret, tokenTTL)

	authService := service.NewAuthService(userRepo, tokens, logger)
	fieldService := service.NewFieldService(fieldRepo, logger)
	availabilityService := service.NewAvailabilityService(fieldRepo, reservationRepo, logger)
	reservationService := service.NewReservationService(fieldRepo, reservationRepo, notifier, logger)

	scheduler := app.NewScheduler(reservationService, logger)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	router := handlers.NewRouter(
		handlers.NewAuthHandler(authService, logger),
		handlers.NewFieldHandler(fieldService, availabilityService, logger),
		handlers.NewReservationHandler(reservationService, logger),
		tokens,
		logger,
	)

	server := app.NewServer(cfg.HTTPAddr, router, logger)

	logger.Info("Starting field booking server",
		zap.String("environment", cfg.Environment),
		zap.String("addr", cfg.HTTPAddr),
	)

	if err := server.Run(ctx); err != nil {
		logger.Fatal("Server stopped with error", zap.Error(err))
	}

	logger.Info("Server stopped")
}
