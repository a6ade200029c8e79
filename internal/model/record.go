package model

import (
	"time"

	"github.com/google/uuid"
)

// PredictionRecord represents a persisted plant disease prediction
type PredictionRecord struct {
	ID             uuid.UUID              `json:"id"`
	UserID         *uuid.UUID             `json:"user_id,omitempty"`
	PredictedClass string                 `json:"predicted_class"`
	Plant          string                 `json:"plant"`
	Disease        string                 `json:"disease"`
	Confidence     float64                `json:"confidence"`
	ThresholdMet   bool                   `json:"threshold_met"`
	Language       string                 `json:"language"`
	ImageName      *string                `json:"image_name,omitempty"`
	Source         string                 `json:"source"`
	Metadata       map[string]interface{} `json:"metadata"`
	CreatedAt      time.Time              `json:"created_at"`
}
