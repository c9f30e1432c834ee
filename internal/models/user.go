package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// UserDB represents a user record in the database
type UserDB struct {
	UserID       uuid.UUID      `json:"id" db:"id"`                 // Primary key
	Username     string         `json:"username" db:"username"`     // Unique username
	Email        sql.NullString `json:"email" db:"email"`           // Optional email
	PasswordHash string         `json:"-" db:"password"`            // bcrypt hash
	CreatedAt    time.Time      `json:"created_at" db:"created_at"` // Creation timestamp
}
