// Package main provides the notification service: a REST gateway and a
// stream-event gateway converging on one notification domain service.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/rueidis"

	"github.com/hiiico/vacation-planning-notifications/internal/config"
	"github.com/hiiico/vacation-planning-notifications/internal/event"
	"github.com/hiiico/vacation-planning-notifications/internal/logger"
	"github.com/hiiico/vacation-planning-notifications/internal/mail"
	"github.com/hiiico/vacation-planning-notifications/internal/repository"
	"github.com/hiiico/vacation-planning-notifications/internal/service"
	"github.com/hiiico/vacation-planning-notifications/internal/web"
)

const (
	signalBufferSize = 1
	shutdownTimeout  = 10 * time.Second
	exitCode         = 1
)

func setupSignalHandling() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, signalBufferSize)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("shutdown signal received")
		cancel()
	}()

	return ctx, cancel
}

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file loaded, continuing with environment as-is")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(exitCode)
	}

	slog.SetDefault(logger.Setup(cfg.LogLevel, cfg.LogFormat))

	ctx, cancel := setupSignalHandling()
	defer cancel()

	dbPool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(exitCode)
	}
	defer dbPool.Close()

	if err := repository.InitSchema(ctx, dbPool); err != nil {
		slog.Error("failed to initialize schema", slog.String("error", err.Error()))
		os.Exit(exitCode)
	}

	redisClient, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress: []string{cfg.RedisAddr},
	})
	if err != nil {
		slog.Error("failed to connect to Redis", slog.String("error", err.Error()))
		os.Exit(exitCode)
	}
	defer redisClient.Close()

	preferenceRepo := repository.NewPreferenceRepositoryImpl(dbPool)
	notificationRepo := repository.NewNotificationRepositoryImpl(dbPool)
	transactionMgr := repository.NewTransactionManagerImpl(dbPool)
	mailSender := mail.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.MailFrom, cfg.SMTPUsername, cfg.SMTPPassword)
	notificationService := service.NewNotificationServiceImpl(preferenceRepo, notificationRepo, transactionMgr, mailSender)

	replyPublisher := event.NewRedisReplyPublisher(redisClient, cfg.ReplyStream)
	dispatcher := event.NewDispatcher(notificationService, replyPublisher)
	consumer := event.NewConsumer(redisClient, dispatcher, cfg.InputStream, cfg.ConsumerGroup, cfg.ConsumerName, cfg.WorkerCount)

	consumerDone := make(chan struct{})

	go func() {
		defer close(consumerDone)
		consumer.Run(ctx)
	}()

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: web.NewServer(notificationService).Handler(),
	}

	go func() {
		slog.Info("starting HTTP server", slog.String("port", cfg.Port))

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("failed to start server", slog.String("error", err.Error()))
			cancel()
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("failed to shut down HTTP server", slog.String("error", err.Error()))
	}

	<-consumerDone
	slog.Info("notification service stopped")
}
