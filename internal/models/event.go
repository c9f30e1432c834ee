package models

// UploadEvent is published after an upload has been committed.
type UploadEvent struct {
	EventID      string `json:"event_id"`
	Type         string `json:"type"`
	Timestamp    int64  `json:"timestamp"`
	UploadID     string `json:"upload_id"`
	UserID       string `json:"user_id"`
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	MimeType     string `json:"mime_type"`
	SizeBytes    int64  `json:"size_bytes"`
}

// UploadCreated is the event type for a new upload.
const UploadCreated = "upload.created"
