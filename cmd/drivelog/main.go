package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	authApi "drivelog/internal/auth/api"
	authApp "drivelog/internal/auth/app"
	authRepo "drivelog/internal/auth/repo"
	"drivelog/internal/drivelog/api"
	"drivelog/internal/drivelog/app"
	"drivelog/internal/drivelog/broker"
	"drivelog/internal/drivelog/repo"
	"drivelog/internal/notify"
	"drivelog/internal/shared/config"
	"drivelog/internal/shared/db"
	"drivelog/internal/shared/health"
	"drivelog/internal/shared/middleware"
	"drivelog/internal/shared/mq"
	"drivelog/internal/shared/util"
)

func main() {
	log := util.New()

	log.Info("DriveLog", "Starting service initialization...")

	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		log.Fatal("Config", "Failed to load configuration", err)
	}
	log.OK("Config", "Configuration loaded successfully")

	database, err := db.ConnectToDB(&cfg.Database)
	if err != nil {
		log.Fatal("Database", "Failed to connect to database", err)
	}
	defer database.Close()
	log.OK("Database", "Connected successfully")

	rmqConn, rmqCh, err := mq.ConnectToRMQ(&cfg.RabbitMQ)
	if err != nil {
		log.Fatal("RabbitMQ", "Failed to connect to RabbitMQ", err)
	}
	defer rmqConn.Close()
	defer rmqCh.Close()
	log.OK("RabbitMQ", "Connected successfully")

	if err := rmqCh.ExchangeDeclare(mq.Exchange, "topic", true, false, false, false, nil); err != nil {
		log.Fatal("RabbitMQ", "Failed to declare exchange", err)
	}

	jwtSecret := []byte(cfg.Auth.JWTSecret)

	publisher := mq.NewPublisher(rmqCh)
	sessionRepo := repo.NewSessionRepo(database)
	userCtxRepo := repo.NewUserContextRepo(database)
	eventBroker := broker.NewEventBroker(publisher)

	service := app.NewDriveLogService(sessionRepo, userCtxRepo, eventBroker, log)
	wsManager := api.NewWSManager(log)
	handler := api.NewHandler(service, wsManager, log)

	accountRepo := authRepo.NewAuthRepo(database)
	accountService := authApp.NewAuthService(accountRepo, jwtSecret, log)
	accountHandler := authApi.NewHandler(accountService, log)

	reminderDelay := 30 * time.Minute
	if cfg.Push.ReminderDelay != "" {
		if parsed, err := time.ParseDuration(cfg.Push.ReminderDelay); err == nil {
			reminderDelay = parsed
		} else {
			log.Warn("Config", "invalid reminder_delay, using default 30m")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reminders := notify.NewReminderScheduler(sessionRepo, publisher, rmqCh, cfg.Push.Queue, reminderDelay, log)
	if err := reminders.Start(ctx); err != nil {
		log.Fatal("ReminderScheduler", "Failed to start reminder scheduler", err)
	}
	log.OK("ReminderScheduler", "Started successfully")

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, jwtSecret)
	accountHandler.RegisterRoutes(mux, jwtSecret)
	mux.HandleFunc("GET /health", health.Handler("drivelog", database, rmqConn))

	port := cfg.HTTP.Port
	if port == "" {
		port = "3000"
	}

	server := &http.Server{
		Addr:    ":" + port,
		Handler: middleware.RequestID(mux),
	}

	go func() {
		log.OK("HTTP", "drivelog running on :"+port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP", err)
			stop()
		}
	}()

	<-ctx.Done()

	log.Warn("DriveLog", "Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP", err)
		os.Exit(1)
	}
	log.OK("HTTP", "Server stopped gracefully")
	log.Info("DriveLog", "Shutdown complete")
}
