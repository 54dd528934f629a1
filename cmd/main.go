package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"presentation-service/internal/ai"
	"presentation-service/internal/config"
	"presentation-service/internal/database/minio"
	"presentation-service/internal/database/redis"
	"presentation-service/internal/handlers"
	"presentation-service/internal/pdf"
	"presentation-service/internal/queue"
	"presentation-service/internal/services"
	"presentation-service/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func setupLogging() (*os.File, error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("Recovered from panic: %v\n", r)
		}
	}()

	logDir := getLogDir()
	fmt.Println("Log directory:", logDir)
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
	return filepath.Join(".", "log", "presentation_service")
}

// newDeckStore picks the deck storage backend from config.
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

// newSynthesizer picks the language-model backend from config.
func newSynthesizer(ctx context.Context, cfg *config.PresentationServiceConfig) (ai.Synthesizer, error) {
	switch cfg.SynthesizerProvider() {
	case "gemini":
		return ai.NewGeminiSynthesizer(ctx, cfg.GeminiCfg)
	default:
		return ai.NewOpenAISynthesizer(cfg.OpenAICfg), nil
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

	synthesizer, err := newSynthesizer(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to set up synthesizer: %v", err)
	}
	log.Printf("Using %s synthesizer", cfg.SynthesizerProvider())

	taskQueue := queue.NewRedisQueue(redisClient.GetClient())
	extractor := pdf.NewExtractor()

	tokenService := services.NewTokenService(cfg.AuthCfg)
	pricingService, err := services.NewPricingService(services.DefaultPricingTiers(), services.DefaultPricePerSlide)
	if err != nil {
		log.Fatalf("Failed to set up pricing: %v", err)
	}
	presentationService := services.NewPresentationService(taskQueue, extractor, synthesizer)

	r := gin.Default()

	middleware := handlers.NewMiddleware(tokenService)
	authHandler := handlers.NewAuthHandler(tokenService, middleware)
	pricingHandler := handlers.NewPricingHandler(pricingService, middleware)
	presentationHandler := handlers.NewPresentationHandler(presentationService, store)

	authHandler.RegisterRoutes(r)
	pricingHandler.RegisterRoutes(r)
	presentationHandler.RegisterRoutes(r)

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Presentation Generator API",
			"endpoints": gin.H{
				"presentations": "/api/presentations",
				"from_pdf":      "/api/presentations/from-pdf",
				"status":        "/api/presentations/{task_id}",
				"download":      "/api/download/{file_id}",
				"pricing":       "/api/pricing/tiers",
				"auth":          "/api/auth/login",
			},
		})
	})
	r.GET("/checkhealth", func(c *gin.Context) {
		c.String(http.StatusOK, "Presentation service is healthy")
	})

	log.Printf("Starting presentation-service on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
