package api

import (
	"log"
	"strconv"
	"time"

	"agrichat/internal/ml"
	"agrichat/internal/model"
	"agrichat/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// getMLStatus handles GET /api/ml/status
func (h *Handler) getMLStatus(c *gin.Context) {
	status := h.predictor.Status()
	utils.Success(c, gin.H{
		"ready":     status.Ready,
		"error":     status.Error,
		"modelPath": status.ModelPath,
	})
}

// predictDisease handles POST /api/ml/predict
func (h *Handler) predictDisease(c *gin.Context) {
	log.Printf("[ML Handler] Predict disease request received")

	threshold := parseThreshold(c.PostForm("threshold"))
	language := c.DefaultPostForm("language", "english")

	image, file, ok := h.imageUpload(c)
	if !ok {
		return
	}

	log.Printf("[ML Handler] Image file: %s, %d bytes, threshold: %.2f", file.Filename, len(image), threshold)

	result, err := h.predictor.Predict(c.Request.Context(), image, threshold)
	if err != nil {
		log.Printf("[ML Handler] Prediction error: %v", err)
		utils.ServerError(c, err.Error(), err)
		return
	}

	formatted := ml.FormatPrediction(result)

	h.savePrediction(c, formatted, result, language, file.Filename)

	utils.Success(c, gin.H{
		"prediction": formatted,
		"raw":        result,
	})
}

// quickPredict handles POST /api/ml/predict/quick (no auth, for testing)
func (h *Handler) quickPredict(c *gin.Context) {
	log.Printf("[ML Handler] Quick predict request received")

	threshold := parseThreshold(c.PostForm("threshold"))

	image, file, ok := h.imageUpload(c)
	if !ok {
		return
	}

	log.Printf("[ML Handler] Image file: %s, %d bytes", file.Filename, len(image))

	result, err := h.predictor.Predict(c.Request.Context(), image, threshold)
	if err != nil {
		log.Printf("[ML Handler] Quick predict error: %v", err)
		utils.ServerError(c, err.Error(), err)
		return
	}

	utils.Success(c, gin.H{
		"prediction": ml.FormatPrediction(result),
	})
}

// savePrediction persists a prediction record when a repository is
// configured. Persistence failures are logged, never surfaced: the
// prediction itself already succeeded.
func (h *Handler) savePrediction(c *gin.Context, formatted *model.FormattedPrediction, raw *model.ClassificationResult, language, imageName string) {
	if h.repo == nil {
		return
	}

	rec := &model.PredictionRecord{
		ID:             uuid.New(),
		PredictedClass: raw.PredictedClass,
		Plant:          formatted.Plant,
		Disease:        formatted.Disease,
		Confidence:     raw.Confidence,
		ThresholdMet:   raw.ThresholdMet,
		Language:       language,
		ImageName:      &imageName,
		Source:         "local-model",
		Metadata: map[string]interface{}{
			"all_predictions": raw.AllPredictions,
		},
		CreatedAt: time.Now(),
	}

	if err := h.repo.Create(c.Request.Context(), rec); err != nil {
		log.Printf("[ML Handler] Failed to save prediction record: %v", err)
		return
	}
	log.Printf("[ML Handler] Prediction record saved: %s", rec.ID.String())
}

func parseThreshold(raw string) float64 {
	if raw == "" {
		return ml.DefaultThreshold
	}
	threshold, err := strconv.ParseFloat(raw, 64)
	if err != nil || threshold <= 0 || threshold > 1 {
		log.Printf("[ML Handler] Invalid threshold %q, using default", raw)
		return ml.DefaultThreshold
	}
	return threshold
}
