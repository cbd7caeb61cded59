package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	rediscache "github.com/srgjo27/rac_reservation/internal/adapter/cache/redis"
	"github.com/srgjo27/rac_reservation/internal/adapter/handler"
	"github.com/srgjo27/rac_reservation/internal/adapter/repository/postgres"
	"github.com/srgjo27/rac_reservation/internal/core/allocation"
	"github.com/srgjo27/rac_reservation/internal/core/services"
	"github.com/srgjo27/rac_reservation/internal/platform/config"
	"github.com/srgjo27/rac_reservation/internal/platform/database"
)

func main() {
	config.LoadEnv(".env")

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	db, err := database.NewPostgresDB(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to db after retries: %v", err)
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	defer db.Close()

	if err := database.EnsureSchema(context.Background(), db); err != nil {
		log.Fatalf("Failed to prepare database: %v", err)
	}

	log.Printf("Connecting to Redis at %s...", cfg.RedisAddr)

	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
		DB:   0,
	})

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	log.Println("Redis connected successfully!")
	defer redisClient.Close()

	engine, err := allocation.NewEngine(cfg.Capacity)
	if err != nil {
		log.Fatalf("Invalid seat capacity: %v", err)
	}

	runID := uuid.New()
	log.Printf("Train run %s: L=%d U=%d M=%d RAC=%d",
		runID, cfg.Capacity.Lower, cfg.Capacity.Upper, cfg.Capacity.Middle, cfg.Capacity.RAC)

	reservationService := services.NewReservationService(
		engine,
		rediscache.NewAvailabilityCache(redisClient, cfg.CacheTTL),
		postgres.NewEventJournal(db),
		runID,
	)

	reservationHandler := handler.NewReservationHandler(reservationService)

	workerCtx, stopWorker := context.WithCancel(context.Background())
	workerDone := make(chan struct{})
	go func() {
		reservationService.RunBackgroundFlush(workerCtx, cfg.JournalFlushInterval)
		close(workerDone)
	}()

	mux := http.NewServeMux()
	reservationHandler.Register(mux)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server startup failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	stopWorker()
	<-workerDone

	log.Println("Server exiting")
}
