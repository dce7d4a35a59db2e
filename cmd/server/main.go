package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	redisAdapter "github.com/bryokn/ClassiConnect/internal/adapter/cache/redis"
	"github.com/bryokn/ClassiConnect/internal/adapter/email"
	mongoAdapter "github.com/bryokn/ClassiConnect/internal/adapter/mongo"
	natsAdapter "github.com/bryokn/ClassiConnect/internal/adapter/nats"
	minioAdapter "github.com/bryokn/ClassiConnect/internal/adapter/storage/minio"
	"github.com/bryokn/ClassiConnect/internal/config"
	"github.com/bryokn/ClassiConnect/internal/handler"
	"github.com/bryokn/ClassiConnect/internal/platform/metrics"
	"github.com/bryokn/ClassiConnect/internal/router"
	"github.com/bryokn/ClassiConnect/internal/usecase"
)

const serviceName = "classiconnect"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment and config file")
	}

	configPath := "config.yaml"
	if cp := os.Getenv("CONFIG_PATH"); cp != "" {
		configPath = cp
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := zap.NewProductionConfig().Build()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("Configuration loaded",
		zap.String("http_port", cfg.HTTP.Port),
		zap.String("mongo_database", cfg.Mongo.Database),
	)

	mongoClient, err := mongoAdapter.NewMongoDBConnection(&cfg.Mongo)
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			logger.Error("Failed to disconnect MongoDB", zap.Error(err))
		}
	}()

	db := mongoClient.Database(cfg.Mongo.Database)
	if err := mongoAdapter.EnsureIndexes(context.Background(), db); err != nil {
		logger.Fatal("Failed to ensure MongoDB indexes", zap.Error(err))
	}
	logger.Info("Connected to MongoDB, indexes ensured")

	userRepo := mongoAdapter.NewUserMongoRepository(mongoClient, cfg.Mongo.Database)
	listingRepo := mongoAdapter.NewListingMongoRepository(mongoClient, cfg.Mongo.Database)
	categoryRepo := mongoAdapter.NewCategoryMongoRepository(mongoClient, cfg.Mongo.Database)
	commentRepo := mongoAdapter.NewCommentMongoRepository(mongoClient, cfg.Mongo.Database)
	interactionRepo := mongoAdapter.NewInteractionMongoRepository(mongoClient, cfg.Mongo.Database)
	chatRepo := mongoAdapter.NewChatMongoRepository(mongoClient, cfg.Mongo.Database)

	redisClient, err := redisAdapter.NewRedisClient(&cfg.Redis, logger)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	cacheRepo := redisAdapter.NewRedisCacheRepository(redisClient, logger)

	publisher, err := natsAdapter.NewNATSPublisher(&cfg.NATS, logger)
	if err != nil {
		logger.Fatal("Failed to connect to NATS", zap.Error(err))
	}
	defer publisher.Close()

	photoStorage, err := minioAdapter.NewPhotoStorage(&cfg.Minio, logger)
	if err != nil {
		logger.Fatal("Failed to initialize photo storage", zap.Error(err))
	}

	emailSender := email.NewGomailSender(&cfg.SMTP, logger)

	authUC := usecase.NewAuthUseCase(userRepo, cfg.JWT.Secret, cfg.JWT.TokenTTL, logger)
	listingUC := usecase.NewListingUseCase(listingRepo, userRepo, categoryRepo, cacheRepo, publisher, photoStorage, emailSender, logger)
	interactionUC := usecase.NewInteractionUseCase(interactionRepo, listingRepo, publisher, logger)
	commentUC := usecase.NewCommentUseCase(commentRepo, listingRepo, logger)
	chatUC := usecase.NewChatUseCase(chatRepo, logger)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo, logger)

	metricsManager := metrics.NewManager(serviceName)
	go func() {
		if err := metrics.StartServer(cfg.HTTP.MetricsPort, logger, metricsManager.Registry); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Prometheus metrics server failed", zap.Error(err))
		}
	}()

	mux := router.New(router.Handlers{
		Auth:        handler.NewAuthHandler(authUC, logger),
		Listing:     handler.NewListingHandler(listingUC, metricsManager, logger),
		Interaction: handler.NewInteractionHandler(interactionUC, metricsManager, logger),
		Comment:     handler.NewCommentHandler(commentUC, logger),
		Chat:        handler.NewChatHandler(chatUC, logger),
		Category:    handler.NewCategoryHandler(categoryUC, logger),
	}, authUC, metricsManager, logger)

	server := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      mux,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	go func() {
		logger.Info("HTTP server starting", zap.String("port", cfg.HTTP.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", zap.Error(err))
	}
	logger.Info("Server stopped")
}
