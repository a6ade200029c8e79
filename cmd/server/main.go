package main

import (
	"log"
	"os"

	"agrichat/internal/advisor"
	"agrichat/internal/api"
	"agrichat/internal/config"
	"agrichat/internal/db"
	"agrichat/internal/inference"
	"agrichat/internal/ml"
	"agrichat/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sashabaranov/go-openai"
)

func main() {
	// Load .env file if it exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode (default to release mode)
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Local classifier; readiness is checked once here and reported via
	// /api/ml/status
	predictor := ml.NewService(cfg.ModelDir, cfg.PythonBin, cfg.PredictTimeout)
	if status := predictor.Status(); !status.Ready {
		log.Printf("Warning: ML predictor not ready: %s", *status.Error)
	}

	// Hosted inference backends are optional; without them the advisor
	// serves fallback responses
	var backend advisor.Backend
	if client := inference.NewClient(cfg.HFToken); client != nil {
		backend = client
		log.Printf("Hugging Face inference client initialized")
	} else {
		log.Printf("Warning: HF_TOKEN not set, AI features will use fallback responses")
	}

	var openAIClient *openai.Client
	if cfg.OpenAIKey != "" {
		openAIClient = openai.NewClient(cfg.OpenAIKey)
		log.Printf("OpenAI client initialized")
	}

	adv := advisor.NewService(backend, openAIClient)

	// Initialize database if DATABASE_URL is provided
	var repo repository.PredictionRepository
	if cfg.DatabaseURL != "" {
		log.Printf("Initializing database connection with DATABASE_URL...")
		if err := db.Init(); err != nil {
			log.Printf("Warning: Failed to initialize database: %v. Continuing without database.", err)
		} else {
			repo = repository.NewPostgresRepository()
			log.Println("Database and repository initialized successfully")
		}
	} else {
		log.Println("DATABASE_URL not set, running without prediction history")
	}

	r := gin.Default()

	// Add CORS middleware for web and mobile clients
	r.Use(corsMiddleware())

	handler := api.NewHandler(adv, predictor, repo, cfg.UploadPath, cfg.MaxFileSize)
	api.RegisterRoutes(r, handler)

	log.Printf("agrichat backend running on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// corsMiddleware adds CORS headers for the frontend
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
