package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"gorm.io/gorm"

	_ "github.com/lagerkern/replenish/docs"
	"github.com/lagerkern/replenish/internal/analytics"
	httpDelivery "github.com/lagerkern/replenish/internal/analytics/delivery/http"
	"github.com/lagerkern/replenish/internal/analytics/repository"
	"github.com/lagerkern/replenish/internal/analytics/usecase/command"
	"github.com/lagerkern/replenish/kafka"
	"github.com/lagerkern/replenish/pkg/config"
	"github.com/lagerkern/replenish/pkg/database"
	"github.com/lagerkern/replenish/pkg/logger"
	"github.com/lagerkern/replenish/pkg/tracing"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.Init(cfg.ServiceName, cfg.IsDevelopment())
	logger.SetLevel(cfg.LogLevel)

	logger.Logger.Info().
		Str("service", cfg.ServiceName).
		Str("environment", cfg.Environment).
		Str("log_level", cfg.LogLevel).
		Msg("Starting analytics service")

	// Initialize tracer
	tp, err := tracing.InitTracer(cfg.ServiceName)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to initialize tracer")
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
			}
		}()
	}

	// Connect to database
	db, err := database.NewGormConnection(cfg.Database)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	// Run migrations
	if err := repository.NewGormCatalogRepository(db).AutoMigrate(); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	logger.Logger.Info().Msg("Database initialized successfully")

	// Kafka publisher for run-completed events
	var publisher command.EventPublisher
	if cfg.KafkaEnabled {
		kafkaPublisher, err := kafka.NewPublisher(cfg.KafkaBrokers)
		if err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to initialize Kafka publisher, events disabled")
		} else {
			publisher = kafkaPublisher
			defer kafkaPublisher.Close()
		}
	}

	// Kafka consumer ingesting booking events into the ledger
	consumerCtx, stopConsumer := context.WithCancel(context.Background())
	defer stopConsumer()
	if cfg.KafkaEnabled {
		startBookingConsumer(consumerCtx, cfg.KafkaBrokers, db)
	}

	// Redis client for the report response cache
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			logger.Logger.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("Redis unavailable, response cache disabled")
			redisClient = nil
		}
		cancel()
	}

	// Initialize handler with Wire DI
	handler, err := analytics.InitializeHTTPHandler(db, publisher, redisClient)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize handler")
	}

	logger.Logger.Info().Msg("Analytics handler initialized")

	// Start HTTP server
	go startHTTPServer(handler, sqlDB, redisClient, cfg)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")
}

// startBookingConsumer wires the booking event stream into the ledger
func startBookingConsumer(ctx context.Context, brokers []string, db *gorm.DB) {
	bookingHandler, err := analytics.InitializeBookingHandler(db)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to initialize booking handler, consumer disabled")
		return
	}

	consumer, err := kafka.NewConsumer(brokers, "analytics-service", []string{kafka.TopicBookingRecorded})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to initialize Kafka consumer, booking ingestion disabled")
		return
	}

	consumer.RegisterHandler(kafka.EventTypeBookingRecorded, func(ctx context.Context, event kafka.BookingRecordedEvent) error {
		return bookingHandler.Handle(ctx, command.RecordBookingCommand{
			ItemID:     event.ItemID,
			UsageCode:  event.UsageCode,
			Amount:     event.Amount,
			StreamID:   event.StreamID,
			OccurredAt: event.OccurredAt,
		})
	})

	if err := consumer.Start(ctx); err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to start Kafka consumer")
	}
}

func startHTTPServer(handler *httpDelivery.AnalyticsHandler, db *sql.DB, redisClient *redis.Client, cfg *config.Config) {
	// Setup router
	router := mux.NewRouter()

	// Register all middlewares using middleware registration system
	middlewareConfig := httpDelivery.DefaultMiddlewareConfig()
	httpDelivery.RegisterMiddlewares(router, middlewareConfig)

	// Response cache for the report endpoints
	router.Use(httpDelivery.CacheMiddleware(redisClient, httpDelivery.DefaultCacheConfig(cfg.CacheTTL)))

	// Register routes
	handler.RegisterRoutes(router)

	// Health check endpoint
	handler.RegisterHealthCheck(router, db)

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	// Swagger documentation
	httpDelivery.RegisterSwaggerDocs(router, httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// CORS middleware
	c := httpDelivery.SetupCORS(middlewareConfig)

	logger.Logger.Info().
		Str("port", cfg.HTTPPort).
		Str("metrics_endpoint", "/metrics").
		Str("swagger_endpoint", "/swagger/").
		Msg("HTTP server started")

	if err := http.ListenAndServe(":"+cfg.HTTPPort, c(router)); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
	}
}
