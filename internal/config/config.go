package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port           string
	DatabaseURL    string
	HFToken        string
	OpenAIKey      string
	UploadPath     string
	MaxFileSize    int64
	ModelDir       string
	PythonBin      string
	PredictTimeout time.Duration
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		HFToken:     os.Getenv("HF_TOKEN"),
		OpenAIKey:   os.Getenv("OPENAI_API_KEY"),
		UploadPath:  getEnv("UPLOAD_PATH", "./uploads"),
		ModelDir:    getEnv("ML_MODEL_DIR", "./ml_model"),
		PythonBin:   getEnv("PYTHON_BIN", "python3"),
	}

	maxSize, err := strconv.ParseInt(getEnv("MAX_FILE_SIZE", "10485760"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_FILE_SIZE: %w", err)
	}
	cfg.MaxFileSize = maxSize

	timeoutSecs, err := strconv.Atoi(getEnv("PREDICT_TIMEOUT_SECONDS", "120"))
	if err != nil {
		return nil, fmt.Errorf("invalid PREDICT_TIMEOUT_SECONDS: %w", err)
	}
	cfg.PredictTimeout = time.Duration(timeoutSecs) * time.Second

	// HF_TOKEN and OPENAI_API_KEY are optional. Without them the advisor
	// falls back to canned responses instead of failing requests.

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
