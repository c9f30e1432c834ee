package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-image-gallery/internal/logger"
	"github.com/sbilibin2017/gw-image-gallery/internal/models"
)

// UploadWriteRepository persists upload metadata.
type UploadWriteRepository struct {
	db *sqlx.DB
}

func NewUploadWriteRepository(db *sqlx.DB) *UploadWriteRepository {
	return &UploadWriteRepository{db: db}
}

// Save inserts upload metadata. An owner that does not exist is reported as
// models.ErrUnknownUser.
func (r *UploadWriteRepository) Save(ctx context.Context, upload *models.UploadDB) error {
	const query = `
		INSERT INTO uploads (id, user_id, filename, original_name, mime_type, size_bytes, upload_date)
		VALUES (:id, :user_id, :filename, :original_name, :mime_type, :size_bytes, :upload_date)
	`

	res, err := r.db.NamedExecContext(ctx, query, upload)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow("query",
		"sql", compact(query),
		"args", []any{upload.UploadID, upload.UserID, upload.Filename, upload.OriginalName},
		"result", rowsAffected,
		"error", err,
	)

	if isPgError(err, pgForeignKeyViolation) {
		return fmt.Errorf("save upload %s: %w", upload.UploadID, models.ErrUnknownUser)
	}
	return err
}

// UploadReadRepository reads upload metadata.
type UploadReadRepository struct {
	db *sqlx.DB
}

func NewUploadReadRepository(db *sqlx.DB) *UploadReadRepository {
	return &UploadReadRepository{db: db}
}

// ListByUserID returns the user's uploads, most recent first.
func (r *UploadReadRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]models.UploadDB, error) {
	const query = `
		SELECT id, user_id, filename, original_name, mime_type, size_bytes, upload_date
		FROM uploads
		WHERE user_id = $1
		ORDER BY upload_date DESC, seq DESC
	`

	uploads := []models.UploadDB{}
	err := r.db.SelectContext(ctx, &uploads, query, userID)

	logger.Log.Infow("query",
		"sql", compact(query),
		"args", []any{userID},
		"result", len(uploads),
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return uploads, nil
}
