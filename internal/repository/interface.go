package repository

import (
	"context"

	"agrichat/internal/model"

	"github.com/google/uuid"
)

// PredictionRepository defines data access for persisted predictions
type PredictionRepository interface {
	// Create stores a new prediction record
	Create(ctx context.Context, rec *model.PredictionRecord) error

	// GetByID retrieves a prediction record by ID
	GetByID(ctx context.Context, id uuid.UUID) (*model.PredictionRecord, error)

	// ListRecent retrieves prediction records newest first with pagination
	ListRecent(ctx context.Context, limit, offset int) ([]model.PredictionRecord, error)

	// Delete removes a prediction record
	Delete(ctx context.Context, id uuid.UUID) error
}
