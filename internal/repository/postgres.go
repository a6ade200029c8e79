package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"agrichat/internal/db"
	"agrichat/internal/model"

	"github.com/google/uuid"
)

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository() PredictionRepository {
	return &postgresRepository{
		db: db.DB,
	}
}

// Create stores a new prediction record
func (r *postgresRepository) Create(ctx context.Context, rec *model.PredictionRecord) error {
	query := `
		INSERT INTO predictions (
			id, user_id, predicted_class, plant, disease, confidence,
			threshold_met, language, image_name, source, metadata, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		)
	`

	metadataJSON, err := json.Marshal(rec.Metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	_, err = r.db.ExecContext(ctx, query,
		rec.ID,
		rec.UserID,
		rec.PredictedClass,
		rec.Plant,
		rec.Disease,
		rec.Confidence,
		rec.ThresholdMet,
		rec.Language,
		rec.ImageName,
		rec.Source,
		metadataJSON,
		rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create prediction record: %w", err)
	}

	return nil
}

// GetByID retrieves a prediction record by ID
func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.PredictionRecord, error) {
	query := `
		SELECT
			id, user_id, predicted_class, plant, disease, confidence,
			threshold_met, language, image_name, source, metadata, created_at
		FROM predictions
		WHERE id = $1
	`

	rec, err := scanRecord(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("prediction record not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get prediction record: %w", err)
	}

	return rec, nil
}

// ListRecent retrieves prediction records newest first with pagination
func (r *postgresRepository) ListRecent(ctx context.Context, limit, offset int) ([]model.PredictionRecord, error) {
	query := `
		SELECT
			id, user_id, predicted_class, plant, disease, confidence,
			threshold_met, language, image_name, source, metadata, created_at
		FROM predictions
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query prediction records: %w", err)
	}
	defer rows.Close()

	var records []model.PredictionRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan prediction record: %w", err)
		}
		records = append(records, *rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return records, nil
}

// Delete removes a prediction record
func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM predictions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete prediction record: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("prediction record not found")
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(row rowScanner) (*model.PredictionRecord, error) {
	var rec model.PredictionRecord
	var metadataJSON []byte
	var createdAt time.Time

	err := row.Scan(
		&rec.ID,
		&rec.UserID,
		&rec.PredictedClass,
		&rec.Plant,
		&rec.Disease,
		&rec.Confidence,
		&rec.ThresholdMet,
		&rec.Language,
		&rec.ImageName,
		&rec.Source,
		&metadataJSON,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	rec.CreatedAt = createdAt

	if len(metadataJSON) > 0 {
		if err := json.Unmarshal(metadataJSON, &rec.Metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
		}
	} else {
		rec.Metadata = make(map[string]interface{})
	}

	return &rec, nil
}
