package models

import (
	"time"

	"github.com/google/uuid"
)

// UploadDB represents uploaded file metadata in the database.
// Filename is generated by the server; OriginalName is whatever the client sent
// and is only ever displayed.
type UploadDB struct {
	UploadID     uuid.UUID `json:"id" db:"id"`
	UserID       uuid.UUID `json:"user_id" db:"user_id"`
	Filename     string    `json:"filename" db:"filename"`
	OriginalName string    `json:"original_name" db:"original_name"`
	MimeType     string    `json:"mime_type" db:"mime_type"`
	SizeBytes    int64     `json:"size_bytes" db:"size_bytes"`
	UploadDate   time.Time `json:"upload_date" db:"upload_date"`
}
