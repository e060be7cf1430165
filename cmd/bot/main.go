package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/daryakhvt/salon_bot/internal/app"
	"github.com/daryakhvt/salon_bot/internal/config"
	"github.com/daryakhvt/salon_bot/internal/controller"
	"github.com/daryakhvt/salon_bot/internal/repository"
	"github.com/daryakhvt/salon_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Info("Starting salon bot",
		zap.String("environment", cfg.Environment))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to create db pool", zap.Error(err))
	}
	defer pool.Close()

	// База может подниматься дольше бота, поэтому пингуем с backoff
	backoff := retry.WithMaxRetries(5, retry.NewFibonacci(500*time.Millisecond))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		if pingErr := pool.Ping(ctx); pingErr != nil {
			logger.Warn("Database not ready yet", zap.Error(pingErr))
			return retry.RetryableError(pingErr)
		}
		return nil
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	logger.Info("✅ Connected to database")

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	defer migrator.Close()

	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}

	// Репозитории
	userRepo := repository.NewUserRepository(pool)
	slotRepo := repository.NewSlotRepository(pool)
	appointmentRepo := repository.NewAppointmentRepository(pool)
	specialistRepo := repository.NewSpecialistRepository(pool)

	// Сервисы
	userService := service.NewUserService(userRepo, cfg.AdminTelegramIDs, logger)
	bookingService := service.NewBookingService(slotRepo, appointmentRepo, specialistRepo, logger)
	scheduleService := service.NewScheduleService(slotRepo, specialistRepo, logger)
	appointmentService := service.NewAppointmentService(appointmentRepo, logger)
	specialistService := service.NewSpecialistService(specialistRepo, slotRepo, appointmentRepo, logger)

	botInstance, err := bot.New(cfg.TelegramToken)
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	botController := controller.NewBotController(
		botInstance,
		userService,
		bookingService,
		scheduleService,
		appointmentService,
		specialistService,
		logger,
	)

	if err := botController.RegisterHandlers(ctx); err != nil {
		logger.Fatal("Failed to register handlers", zap.Error(err))
	}

	if err := botController.Start(ctx); err != nil {
		logger.Fatal("Bot stopped with error", zap.Error(err))
	}

	logger.Info("Bot stopped")
}
