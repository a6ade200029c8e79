package api

import (
	"agrichat/internal/advisor"
	"agrichat/internal/ml"
	"agrichat/internal/repository"
	"agrichat/internal/utils"

	"github.com/gin-gonic/gin"
)

// Handler carries the services the HTTP layer depends on. Everything is
// constructed once at startup and passed in; handlers hold no hidden
// global state.
type Handler struct {
	advisor     *advisor.Service
	predictor   *ml.Service
	repo        repository.PredictionRepository
	uploadPath  string
	maxFileSize int64
}

func NewHandler(adv *advisor.Service, predictor *ml.Service, repo repository.PredictionRepository, uploadPath string, maxFileSize int64) *Handler {
	return &Handler{
		advisor:     adv,
		predictor:   predictor,
		repo:        repo,
		uploadPath:  uploadPath,
		maxFileSize: maxFileSize,
	}
}

func RegisterRoutes(r *gin.Engine, h *Handler) {
	r.GET("/api/health", h.healthCheck)

	api := r.Group("/api")

	rateLimited := APIRateLimiter()

	mlGroup := api.Group("/ml")
	{
		mlGroup.GET("/status", h.getMLStatus)
		mlGroup.POST("/predict", h.predictDisease)
		mlGroup.POST("/predict/quick", h.quickPredict)
		mlGroup.GET("/history", h.getHistory)
		mlGroup.GET("/history/:id", h.getHistoryDetail)
		mlGroup.DELETE("/history/:id", h.deleteHistory)
	}

	upload := api.Group("/upload")
	upload.Use(rateLimited)
	{
		upload.POST("/image", h.uploadImage)
		upload.POST("/voice", h.uploadVoice)
		upload.POST("/transcribe", h.transcribeVoice)
	}

	api.POST("/advice", rateLimited, h.adviceQuery)
}

// healthCheck returns server health status
func (h *Handler) healthCheck(c *gin.Context) {
	utils.Success(c, gin.H{
		"status":  "ok",
		"service": "agrichat-backend",
	})
}
