package api

import (
	"log"
	"net/http"
	"strconv"

	"agrichat/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// getHistory handles GET /api/ml/history
func (h *Handler) getHistory(c *gin.Context) {
	if h.repo == nil {
		utils.Error(c, http.StatusServiceUnavailable, "prediction history unavailable: database not configured")
		return
	}

	limit, offset := parsePagination(c)

	records, err := h.repo.ListRecent(c.Request.Context(), limit, offset)
	if err != nil {
		log.Printf("[History] Error listing predictions: %v", err)
		utils.ServerError(c, "failed to retrieve history", err)
		return
	}

	items := make([]gin.H, 0, len(records))
	for _, rec := range records {
		item := gin.H{
			"id":            rec.ID.String(),
			"plant":         rec.Plant,
			"disease":       rec.Disease,
			"confidence":    rec.Confidence,
			"threshold_met": rec.ThresholdMet,
			"language":      rec.Language,
			"created_at":    rec.CreatedAt,
		}
		if rec.ImageName != nil && *rec.ImageName != "" {
			item["image_name"] = *rec.ImageName
		}
		items = append(items, item)
	}

	utils.Success(c, gin.H{
		"items":  items,
		"limit":  limit,
		"offset": offset,
		"count":  len(items),
	})
}

// getHistoryDetail handles GET /api/ml/history/:id
func (h *Handler) getHistoryDetail(c *gin.Context) {
	if h.repo == nil {
		utils.Error(c, http.StatusServiceUnavailable, "prediction history unavailable: database not configured")
		return
	}

	id, ok := parseRecordID(c)
	if !ok {
		return
	}

	rec, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		log.Printf("[History] Error getting prediction %s: %v", id.String(), err)
		utils.Error(c, http.StatusNotFound, "prediction record not found")
		return
	}

	response := gin.H{
		"id":              rec.ID.String(),
		"predicted_class": rec.PredictedClass,
		"plant":           rec.Plant,
		"disease":         rec.Disease,
		"confidence":      rec.Confidence,
		"threshold_met":   rec.ThresholdMet,
		"language":        rec.Language,
		"source":          rec.Source,
		"created_at":      rec.CreatedAt,
	}
	if rec.ImageName != nil && *rec.ImageName != "" {
		response["image_name"] = *rec.ImageName
	}
	if len(rec.Metadata) > 0 {
		response["metadata"] = rec.Metadata
	}

	utils.Success(c, response)
}

// deleteHistory handles DELETE /api/ml/history/:id
func (h *Handler) deleteHistory(c *gin.Context) {
	if h.repo == nil {
		utils.Error(c, http.StatusServiceUnavailable, "prediction history unavailable: database not configured")
		return
	}

	id, ok := parseRecordID(c)
	if !ok {
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		log.Printf("[History] Error deleting prediction %s: %v", id.String(), err)
		utils.Error(c, http.StatusNotFound, "prediction record not found")
		return
	}

	log.Printf("[History] Prediction record deleted: %s", id.String())

	utils.Success(c, gin.H{
		"id":      id.String(),
		"status":  "deleted",
		"message": "Prediction record deleted successfully",
	})
}

func parseRecordID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid id format")
		return uuid.Nil, false
	}
	return id, true
}

func parsePagination(c *gin.Context) (limit, offset int) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	offset, err = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	return limit, offset
}
