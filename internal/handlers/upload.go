package handlers

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-image-gallery/internal/logger"
	"github.com/sbilibin2017/gw-image-gallery/internal/middlewares"
	"github.com/sbilibin2017/gw-image-gallery/internal/models"
	"github.com/sbilibin2017/gw-image-gallery/internal/services"
)

//go:generate mockgen -source=upload.go -destination=upload_mock.go -package=handlers

// Form field carrying the uploaded image.
const uploadField = "image"

// Room left for multipart boundaries, part headers and other form fields on top
// of the file limit.
const multipartOverhead = 64 << 10

// nextImagePart skips parts until the file part named uploadField.
func nextImagePart(mr *multipart.Reader) (*multipart.Part, error) {
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			return nil, http.ErrMissingFile
		}
		if err != nil {
			return nil, err
		}
		if part.FormName() == uploadField && part.FileName() != "" {
			return part, nil
		}
		part.Close()
	}
}

// Uploader stores an uploaded image for a user.
type Uploader interface {
	Store(ctx context.Context, userID uuid.UUID, data []byte, declaredMIME, originalName string) (*models.UploadDB, error)
	MaxBytes() int64
}

// UploadedFile describes the stored file.
// swagger:model UploadedFile
type UploadedFile struct {
	ID           uuid.UUID `json:"id"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"originalName"`
}

// UploadResponse represents a successful upload response
// swagger:model UploadResponse
type UploadResponse struct {
	// default: true
	Success bool `json:"success"`
	// default: File uploaded successfully
	Message string       `json:"message"`
	File    UploadedFile `json:"file"`
}

// NewUploadHandler returns an HTTP handler that accepts a single image upload.
// @Summary Upload an image
// @Description Upload one image in the multipart field "image"
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Security SessionCookie
// @Param image formData file true "Image file"
// @Success 201 {object} handlers.UploadResponse "File uploaded"
// @Failure 400 {object} handlers.ErrorResponse "No file uploaded"
// @Failure 401 {object} middlewares.AuthErrorResponse "Authentication required"
// @Failure 413 {object} handlers.ErrorResponse "File too large"
// @Failure 415 {object} handlers.ErrorResponse "Only image files are allowed"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /upload [post]
func NewUploadHandler(svc Uploader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := middlewares.IdentityFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "Authentication required")
			return
		}

		maxBytes := svc.MaxBytes()
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes+multipartOverhead)

		mr, err := r.MultipartReader()
		if err != nil {
			logger.Log.Debugw("upload request is not multipart", "err", err)
			writeError(w, http.StatusBadRequest, "No file uploaded")
			return
		}

		part, err := nextImagePart(mr)
		if err != nil {
			var tooLarge *http.MaxBytesError
			switch {
			case errors.As(err, &tooLarge):
				writeError(w, http.StatusRequestEntityTooLarge, "File too large")
			default:
				logger.Log.Debugw("no file in upload request", "err", err)
				writeError(w, http.StatusBadRequest, "No file uploaded")
			}
			return
		}
		defer part.Close()

		declaredMIME := part.Header.Get("Content-Type")
		if !services.IsImageMIME(declaredMIME) {
			writeError(w, http.StatusUnsupportedMediaType, "Only image files are allowed")
			return
		}

		data, err := io.ReadAll(io.LimitReader(part, maxBytes+1))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeError(w, http.StatusRequestEntityTooLarge, "File too large")
				return
			}
			logger.Log.Errorw("failed to read upload", "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		upload, err := svc.Store(r.Context(), identity.UserID, data, declaredMIME, part.FileName())
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUnsupportedMediaType):
				writeError(w, http.StatusUnsupportedMediaType, "Only image files are allowed")
			case errors.Is(err, services.ErrPayloadTooLarge):
				writeError(w, http.StatusRequestEntityTooLarge, "File too large")
			case errors.Is(err, services.ErrNoFileProvided):
				writeError(w, http.StatusBadRequest, "No file uploaded")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		writeJSON(w, http.StatusCreated, UploadResponse{
			Success: true,
			Message: "File uploaded successfully",
			File: UploadedFile{
				ID:           upload.UploadID,
				Filename:     upload.Filename,
				OriginalName: upload.OriginalName,
			},
		})
	}
}
