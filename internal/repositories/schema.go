package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-image-gallery/internal/logger"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		username VARCHAR(50) NOT NULL UNIQUE,
		password VARCHAR(255) NOT NULL,
		email VARCHAR(100),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS uploads (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES users(id),
		filename VARCHAR(255) NOT NULL UNIQUE,
		original_name VARCHAR(255) NOT NULL,
		mime_type VARCHAR(100) NOT NULL,
		size_bytes BIGINT NOT NULL,
		upload_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		seq BIGSERIAL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_uploads_user_date ON uploads(user_id, upload_date DESC, seq DESC)`,
}

// Migrate creates the users and uploads tables if they do not exist yet.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			logger.Log.Errorw("migration failed", "query", compact(stmt), "error", err)
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// compact collapses a multi-line query into one line for logging.
func compact(query string) string {
	return strings.Join(strings.Fields(query), " ")
}
