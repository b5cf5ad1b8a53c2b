package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/clinova/odonto-api/internal/appointments"
	"github.com/clinova/odonto-api/internal/auth"
	"github.com/clinova/odonto-api/internal/config"
	"github.com/clinova/odonto-api/internal/database"
	"github.com/clinova/odonto-api/internal/dentists"
	"github.com/clinova/odonto-api/internal/events"
	"github.com/clinova/odonto-api/internal/patients"
	"github.com/clinova/odonto-api/internal/server"
	"github.com/clinova/odonto-api/pkg/logger"
	"github.com/clinova/odonto-api/pkg/metrics"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Create logger
	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zapLogger.Sync()

	// Connect to PostgreSQL and migrate the schema
	db, err := database.NewPostgresDB(cfg.Database.DSN, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime)
	if err != nil {
		zapLogger.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		zapLogger.Fatal("Failed to migrate database", zap.Error(err))
	}

	// Optional Redis client for token revocation
	var redisClient *redis.Client
	if cfg.Redis.Address != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			zapLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
	}

	// Optional Kafka publisher for resource lifecycle events
	var publisher events.Publisher = events.NewNopPublisher()
	if len(cfg.Kafka.Brokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			zapLogger.Error("Failed to close event publisher", zap.Error(err))
		}
	}()

	// Create services
	authSvc, err := auth.NewService(zapLogger, db, redisClient, cfg.JWT.Secret, cfg.JWT.ExpirationHours)
	if err != nil {
		zapLogger.Fatal("Failed to create auth service", zap.Error(err))
	}
	dentistsSvc := dentists.NewService(zapLogger, db, publisher)
	patientsSvc := patients.NewService(zapLogger, db, publisher)
	appointmentsSvc := appointments.NewService(zapLogger, db, publisher, dentistsSvc, patientsSvc)

	// Schedule DB pool metrics collection every 30s
	tickerDB := time.NewTicker(30 * time.Second)
	defer tickerDB.Stop()
	go func() {
		for range tickerDB.C {
			if sqlDB, err := db.DB(); err == nil {
				stats := sqlDB.Stats()
				metrics.DBOpenConns.WithLabelValues("postgres").Set(float64(stats.OpenConnections))
				metrics.DBIdleConns.WithLabelValues("postgres").Set(float64(stats.Idle))
				metrics.DBInUseConns.WithLabelValues("postgres").Set(float64(stats.InUse))
			}
		}
	}()

	// Create API server
	apiServer := server.New(zapLogger, authSvc, dentistsSvc, patientsSvc, appointmentsSvc)

	// Start HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	go func() {
		if err := apiServer.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Failed to start API server", zap.Error(err))
		}
	}()

	// Wait for interrupt to shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(ctx); err != nil {
		zapLogger.Error("Failed to shut down server", zap.Error(err))
	}

	zapLogger.Info("Server exited properly")
}
