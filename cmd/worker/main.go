package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"presentation-service/internal/config"
	"presentation-service/internal/database/minio"
	"presentation-service/internal/database/redis"
	"presentation-service/internal/deck"
	"presentation-service/internal/queue"
	"presentation-service/internal/storage"
	"presentation-service/internal/worker"

	"github.com/joho/godotenv"
)

func setupLogging() (*os.File, error) {
	logDir := getLogDir()
	err := os.MkdirAll(logDir, 0o755)
	if err != nil {
		return nil, fmt.Errorf("failed to create log directory: %v", err)
	}

	currentTime := time.Now()
	logFileName := fmt.Sprintf("log_%s.log", currentTime.Format("2006-01-02"))
	logFile := filepath.Join(logDir, logFileName)

	file, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %v", err)
	}

	log.SetOutput(file)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	return file, nil
}

func getLogDir() string {
	if dir := os.Getenv("LOG_DIR"); dir != "" {
		return dir
	}
	return filepath.Join(".", "log", "presentation_worker")
}

func newDeckStore(cfg *config.PresentationServiceConfig) (storage.DeckStore, error) {
	switch cfg.StorageCfg.Backend {
	case "minio":
		minioClient, err := minio.NewMinioClient(cfg.MinioCfg, cfg.StorageCfg.Bucket)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MinIO: %w", err)
		}
		return storage.NewMinioStore(minioClient, cfg.StorageCfg.Bucket), nil
	default:
		return storage.NewLocalStore(cfg.StorageCfg.Path)
	}
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	logFile, err := setupLogging()
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logFile.Close()

	cfg := config.New()

	redisClient, err := redis.NewRedisClient(cfg.RedisCfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	store, err := newDeckStore(cfg)
	if err != nil {
		log.Fatalf("Failed to set up deck storage: %v", err)
	}

	taskQueue := queue.NewRedisQueue(redisClient.GetClient())
	generator := worker.NewGenerator(deck.NewBuilder(), store)
	w := worker.NewWorker(taskQueue, generator)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("Worker stopped: %v", err)
	}
}
