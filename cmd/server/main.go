package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bloodlink-service/internal/infrastructure/config"
	"bloodlink-service/internal/infrastructure/persistence"
	"bloodlink-service/internal/interface/repository"
	"bloodlink-service/internal/interface/rest"
	"bloodlink-service/internal/usecase"
	"bloodlink-service/pkg/logger"
	"bloodlink-service/pkg/metrics"

	"github.com/redis/go-redis/v9"

	domainRepo "bloodlink-service/internal/domain/repository"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	log.Info("Starting Bloodlink Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up MongoDB connection
	log.Info("Connecting to MongoDB")
	mongoClient, db, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB, cfg.MongoUser, cfg.MongoPassword)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}

	// Set up PostgreSQL for the geo reference tables
	gormDB, err := persistence.NewPostgresDB(cfg.PostgresURI)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", "error", err)
	}

	// Set up repositories
	requestRepo := repository.NewMongoBloodRequestRepository(db)
	userRepo := repository.NewMongoUserRepository(db)
	messageRepo := repository.NewMongoMessageRepository(db)
	blogRepo := repository.NewMongoBlogRepository(db)

	var geoRepo domainRepo.GeoRepository = repository.NewGormGeoRepository(gormDB)
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		geoRepo = repository.NewCachedGeoRepository(geoRepo, redisClient, cfg.GeoCacheTTL, log)
		log.Info("Geo reference cache enabled", "addr", cfg.RedisAddr)
	}

	// Set up metrics
	m := metrics.NewMetrics("bloodlink")

	// Set up the lifecycle core
	validator := usecase.NewMatchingValidator(requestRepo)
	engine := usecase.NewTransitionEngine(requestRepo, cfg.HistoryLimit, log)
	requestService := usecase.NewRequestService(requestRepo, validator, engine, cfg.HistoryLimit, m, log)
	userService := usecase.NewUserService(userRepo, log)

	// Set up HTTP server
	handler := rest.NewHandler(requestService, userService, messageRepo, blogRepo, geoRepo, log)
	router := rest.NewRouter(handler, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel()

	// Disconnect from MongoDB
	if err := mongoClient.Disconnect(context.Background()); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}

	log.Info("Bloodlink Service stopped")
}
