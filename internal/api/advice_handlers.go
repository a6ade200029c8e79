package api

import (
	"log"
	"net/http"

	"agrichat/internal/utils"

	"github.com/gin-gonic/gin"
)

// AdviceRequest represents the text advice request body
type AdviceRequest struct {
	Query    string `json:"query" binding:"required"`
	Language string `json:"language"`
}

// adviceQuery handles POST /api/advice
func (h *Handler) adviceQuery(c *gin.Context) {
	var req AdviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "query is required")
		return
	}

	if req.Language == "" {
		req.Language = "urdu"
	}

	log.Printf("[Advice] Query received, length: %d, language: %s", len(req.Query), req.Language)

	result := h.advisor.ProcessTextQuery(c.Request.Context(), req.Query, req.Language)

	utils.Success(c, gin.H{
		"advice":   result.Advice,
		"analysis": result.Analysis,
	})
}
