package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-image-gallery/internal/logger"
	"github.com/sbilibin2017/gw-image-gallery/internal/models"
)

//go:generate mockgen -source=auth_status.go -destination=auth_status_mock.go -package=handlers

// Tokener extracts the session token from a request.
type Tokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
}

// SessionLookuper resolves a session token.
type SessionLookuper interface {
	Lookup(ctx context.Context, token string) (*models.Session, error)
}

// AuthStatusResponse reports whether the caller holds a live session.
// swagger:model AuthStatusResponse
type AuthStatusResponse struct {
	Authenticated bool       `json:"authenticated"`
	Username      string     `json:"username,omitempty"`
	UserID        *uuid.UUID `json:"userId,omitempty"`
}

// NewAuthStatusHandler returns an HTTP handler reporting the caller's session state.
// @Summary Session status
// @Description Report whether the request carries a valid session
// @Tags auth
// @Produce json
// @Success 200 {object} handlers.AuthStatusResponse
// @Router /auth/status [get]
func NewAuthStatusHandler(tokener Tokener, sessions SessionLookuper) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		tokenString, err := tokener.GetTokenFromRequest(ctx, r)
		if err != nil {
			writeJSON(w, http.StatusOK, AuthStatusResponse{Authenticated: false})
			return
		}

		session, err := sessions.Lookup(ctx, tokenString)
		if err != nil {
			logger.Log.Warnw("session lookup failed", "err", err)
		}
		if session == nil {
			writeJSON(w, http.StatusOK, AuthStatusResponse{Authenticated: false})
			return
		}

		userID := session.UserID
		writeJSON(w, http.StatusOK, AuthStatusResponse{
			Authenticated: true,
			Username:      session.Username,
			UserID:        &userID,
		})
	}
}
