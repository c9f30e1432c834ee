package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-image-gallery/internal/logger"
	"github.com/sbilibin2017/gw-image-gallery/internal/middlewares"
	"github.com/sbilibin2017/gw-image-gallery/internal/models"
)

//go:generate mockgen -source=uploads.go -destination=uploads_mock.go -package=handlers

// UploadLister lists a user's uploads.
type UploadLister interface {
	ListForUser(ctx context.Context, userID uuid.UUID) ([]models.UploadDB, error)
}

// UploadItem is one entry of the upload listing.
// swagger:model UploadItem
type UploadItem struct {
	ID           uuid.UUID `json:"id"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"original_name"`
	UploadDate   time.Time `json:"upload_date"`
}

// UploadsResponse lists the caller's uploads, newest first.
// swagger:model UploadsResponse
type UploadsResponse struct {
	// default: true
	Success bool         `json:"success"`
	Uploads []UploadItem `json:"uploads"`
}

// NewListUploadsHandler returns an HTTP handler listing the caller's uploads.
// @Summary List uploads
// @Description Returns the authenticated user's uploads, newest first
// @Tags uploads
// @Produce json
// @Security SessionCookie
// @Success 200 {object} handlers.UploadsResponse
// @Failure 401 {object} middlewares.AuthErrorResponse "Authentication required"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /uploads [get]
func NewListUploadsHandler(svc UploadLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := middlewares.IdentityFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "Authentication required")
			return
		}

		uploads, err := svc.ListForUser(r.Context(), identity.UserID)
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		items := make([]UploadItem, 0, len(uploads))
		for _, u := range uploads {
			items = append(items, UploadItem{
				ID:           u.UploadID,
				Filename:     u.Filename,
				OriginalName: u.OriginalName,
				UploadDate:   u.UploadDate,
			})
		}

		writeJSON(w, http.StatusOK, UploadsResponse{
			Success: true,
			Uploads: items,
		})
	}
}
