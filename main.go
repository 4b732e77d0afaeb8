package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"filedrop/internal/config"
	"filedrop/internal/handlers"
	"filedrop/internal/middleware"
	"filedrop/internal/models"
	"filedrop/internal/repositories"
	"filedrop/internal/services"
	"filedrop/internal/storage"
	"filedrop/pkg/events"
)

func main() {
	// --- Configuration ---
	// An unset JWT_SECRET is fatal outside the test environment.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// --- Database ---
	// TranslateError turns dialect unique-violations into gorm.ErrDuplicatedKey.
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.File{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- Blob storage ---
	blobs, err := newBlobStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize blob storage: %v", err)
	}

	// --- RabbitMQ (optional) ---
	// Upload events are best effort; the service runs without a broker.
	var mqClient *events.Client
	if cfg.AMQPURL != "" {
		mqClient, err = events.NewClient(events.Config{URL: cfg.AMQPURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
	}

	// --- Initialize Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	fileRepo := repositories.NewGORMFileRepository(db)

	// --- Initialize Services ---
	authService := services.NewAuthService(userRepo, cfg.JWTSecret)
	fileService := services.NewFileService(fileRepo, blobs, mqClient, cfg.MaxUploadBytes)

	// --- Initialize Handlers ---
	authHandler := handlers.NewAuthHandler(authService, cfg.AppEnv == config.EnvProduction)
	fileHandler := handlers.NewFileHandler(fileService)

	// --- Initialize Fiber App ---
	// Body limit leaves headroom above the upload ceiling for multipart framing.
	app := fiber.New(fiber.Config{
		BodyLimit: int(cfg.MaxUploadBytes) + 1024*1024,
	})

	// --- Middleware ---
	app.Use(logger.New()) // Request logger
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigin,
		AllowCredentials: true,
	}))

	// --- API Routes ---
	authHandler.RegisterRoutes(app)
	fileHandler.RegisterRoutes(app, middleware.AuthRequired(authService))

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", cfg.AppPort)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}

// newBlobStore selects the configured blob backend.
func newBlobStore(cfg *config.Config) (storage.BlobStore, error) {
	switch cfg.StorageBackend {
	case "s3":
		return storage.NewMinioStore(storage.MinioConfig{
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Bucket:    cfg.S3Bucket,
		})
	default:
		return storage.NewLocalStore(cfg.UploadDir)
	}
}
