package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	configs "feedback_service/config"
	"feedback_service/internal/cache"
	"feedback_service/internal/repository"
	"feedback_service/internal/server/feedback_http"
	"feedback_service/internal/service"
	"feedback_service/pkg/db"
	"feedback_service/pkg/kafka"
	"feedback_service/pkg/logger"

	_ "github.com/lib/pq"
)

func main() {
	log := logger.New()
	defer func() { _ = log.Sync() }()

	cfg, err := configs.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	dbConfig := db.Config{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		DBName:   cfg.DB.DBName,
		SSLMode:  cfg.DB.SSLMode,
	}

	pg, err := db.NewPostgres(dbConfig)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() { _ = pg.Close() }()

	commentRepo := repository.NewCommentRepository(pg.DB())
	bundleRepo := repository.NewBundleRepository(pg.DB(), commentRepo)

	kafkaProducer, err := kafka.NewProducer(kafka.Config{Brokers: cfg.Kafka.Brokers})
	if err != nil {
		log.Fatalf("Failed to create Kafka producer: %v", err)
	}
	defer func() { _ = kafkaProducer.Close() }()

	rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Address})
	defer func() { _ = rdb.Close() }()
	pageCache := cache.NewRedisCache(rdb)

	commentService := service.NewCommentService(commentRepo, kafkaProducer, cfg.Kafka.IndexTopic, log)
	submissionService := service.NewSubmissionService()

	handler := feedback_http.NewFeedbackHandler(
		bundleRepo,
		submissionService,
		commentService,
		pageCache,
		cfg.Redis.BundleTTL,
		log,
	)

	router := chi.NewRouter()
	router.Use(feedback_http.NewLoggingMiddleware(log))
	router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	router.Mount("/api/v1", handler.Routes())

	server := &http.Server{
		Addr:         cfg.HTTP.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.Timeout,
		WriteTimeout: cfg.HTTP.Timeout,
	}

	workerCtx, cancelWorker := context.WithCancel(context.Background())
	defer cancelWorker()

	indexWorker := NewIndexWorker(commentRepo, kafkaProducer, cfg.Kafka.IndexTopic, cfg.Indexer.Interval, log)
	go indexWorker.Start(workerCtx)

	go func() {
		log.Infof("Starting HTTP server on %s", cfg.HTTP.Address)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	cancelWorker()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Failed to shut down gracefully: %v", err)
	}
	log.Info("Server stopped")
}
