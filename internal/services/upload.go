package services

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-image-gallery/internal/logger"
	"github.com/sbilibin2017/gw-image-gallery/internal/models"
	"github.com/segmentio/kafka-go"
)

//go:generate mockgen -source=upload.go -destination=upload_mock.go -package=services

// DefaultMaxUploadBytes is the largest accepted upload.
const DefaultMaxUploadBytes int64 = 5 << 20

const maxOriginalNameLen = 255

const maxMIMELen = 100

// Upload rejections the client can correct.
var (
	ErrUnsupportedMediaType = errors.New("only image files are allowed")
	ErrPayloadTooLarge      = errors.New("file is too large")
	ErrNoFileProvided       = errors.New("no file uploaded")
)

var safeExt = regexp.MustCompile(`^\.[A-Za-z0-9]{1,10}$`)

// FileStorage stores raw upload bytes.
type FileStorage interface {
	Save(ctx context.Context, name string, data []byte) error
	Remove(ctx context.Context, name string) error
}

// UploadWriter persists upload metadata.
type UploadWriter interface {
	Save(ctx context.Context, upload *models.UploadDB) error
}

// UploadReader reads upload metadata.
type UploadReader interface {
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]models.UploadDB, error)
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// UploadService accepts images and lists them per user.
type UploadService struct {
	files       FileStorage
	writer      UploadWriter
	reader      UploadReader
	kafkaWriter KafkaWriter
	maxBytes    int64
	now         func() time.Time
}

// NewUploadService creates a new UploadService. kafkaWriter may be nil.
func NewUploadService(
	files FileStorage,
	writer UploadWriter,
	reader UploadReader,
	kafkaWriter KafkaWriter,
	maxBytes int64,
) *UploadService {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	return &UploadService{
		files:       files,
		writer:      writer,
		reader:      reader,
		kafkaWriter: kafkaWriter,
		maxBytes:    maxBytes,
		now:         time.Now,
	}
}

// MaxBytes returns the upload size limit.
func (s *UploadService) MaxBytes() int64 {
	return s.maxBytes
}

// Store validates and saves an upload for userID.
//
// The file is written first and the metadata row is the commit point: if the
// insert fails the written file is removed and the error is returned.
func (s *UploadService) Store(ctx context.Context, userID uuid.UUID, data []byte, declaredMIME, originalName string) (*models.UploadDB, error) {
	if len(declaredMIME) > maxMIMELen || !IsImageMIME(declaredMIME) {
		return nil, ErrUnsupportedMediaType
	}
	if int64(len(data)) > s.maxBytes {
		return nil, ErrPayloadTooLarge
	}
	if len(data) == 0 {
		return nil, ErrNoFileProvided
	}

	upload := &models.UploadDB{
		UploadID:     uuid.New(),
		UserID:       userID,
		Filename:     generateFilename(data, originalName),
		OriginalName: cleanOriginalName(originalName),
		MimeType:     declaredMIME,
		SizeBytes:    int64(len(data)),
		UploadDate:   s.now().UTC(),
	}

	if err := s.files.Save(ctx, upload.Filename, data); err != nil {
		logger.Log.Errorw("failed to write upload", "userID", userID, "filename", upload.Filename, "error", err)
		return nil, err
	}

	if err := s.writer.Save(ctx, upload); err != nil {
		logger.Log.Errorw("failed to save upload metadata", "userID", userID, "filename", upload.Filename, "error", err)
		if rmErr := s.files.Remove(context.WithoutCancel(ctx), upload.Filename); rmErr != nil {
			logger.Log.Warnw("orphaned upload left on disk", "filename", upload.Filename, "error", rmErr)
		}
		return nil, err
	}

	s.publishEvent(ctx, upload)

	return upload, nil
}

// ListForUser returns the user's uploads, most recent first.
func (s *UploadService) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.UploadDB, error) {
	uploads, err := s.reader.ListByUserID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to list uploads", "userID", userID, "error", err)
		return nil, err
	}
	if uploads == nil {
		uploads = []models.UploadDB{}
	}
	return uploads, nil
}

// publishEvent publishes an upload event to Kafka.
func (s *UploadService) publishEvent(ctx context.Context, upload *models.UploadDB) {
	if s.kafkaWriter == nil {
		logger.Log.Debugw("Kafka writer not configured, skipping publishing", "upload_id", upload.UploadID)
		return
	}

	event := models.UploadEvent{
		EventID:      uuid.NewString(),
		Type:         models.UploadCreated,
		Timestamp:    upload.UploadDate.Unix(),
		UploadID:     upload.UploadID.String(),
		UserID:       upload.UserID.String(),
		Filename:     upload.Filename,
		OriginalName: upload.OriginalName,
		MimeType:     upload.MimeType,
		SizeBytes:    upload.SizeBytes,
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("Failed to marshal upload event", "upload_id", event.UploadID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.UserID),
		Value: data,
	}

	if err := s.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("Failed to publish upload event", "upload_id", event.UploadID, "error", err)
	} else {
		logger.Log.Infow("Upload event published", "upload_id", event.UploadID)
	}
}

// IsImageMIME reports whether a declared content type is an image type.
func IsImageMIME(declared string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(declared)), "image/")
}

// generateFilename returns a unique on-disk name. The extension comes from the
// content when it is recognizably an image, otherwise from the client's name.
func generateFilename(data []byte, originalName string) string {
	ext := ""
	if mt := mimetype.Detect(data); strings.HasPrefix(mt.String(), "image/") {
		ext = mt.Extension()
	}
	if ext == "" {
		ext = strings.ToLower(filepath.Ext(originalName))
	}
	if !safeExt.MatchString(ext) {
		ext = ""
	}
	return uuid.NewString() + ext
}

func cleanOriginalName(name string) string {
	name = strings.TrimSpace(filepath.Base(strings.ReplaceAll(name, `\`, "/")))
	if name == "." || name == "/" {
		name = ""
	}
	if !utf8.ValidString(name) {
		name = strings.ToValidUTF8(name, "")
	}
	if len(name) > maxOriginalNameLen {
		name = name[:maxOriginalNameLen]
		for !utf8.ValidString(name) {
			name = name[:len(name)-1]
		}
	}
	return name
}
