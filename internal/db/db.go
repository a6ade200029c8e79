package db

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/lib/pq"
)

// DB is the shared database handle, set by Init
var DB *sql.DB

const schema = `
CREATE TABLE IF NOT EXISTS predictions (
	id UUID PRIMARY KEY,
	user_id UUID,
	predicted_class TEXT NOT NULL,
	plant TEXT NOT NULL,
	disease TEXT NOT NULL,
	confidence DOUBLE PRECISION NOT NULL,
	threshold_met BOOLEAN NOT NULL,
	language TEXT NOT NULL DEFAULT 'english',
	image_name TEXT,
	source TEXT NOT NULL DEFAULT 'local-model',
	metadata JSONB,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_predictions_created_at ON predictions (created_at DESC);
`

// Init opens the PostgreSQL connection from DATABASE_URL and ensures the
// predictions table exists.
func Init() error {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return fmt.Errorf("DATABASE_URL is not set")
	}

	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(30 * time.Minute)

	if err := conn.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := conn.Exec(schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}

	DB = conn
	log.Printf("Database connection established")
	return nil
}
