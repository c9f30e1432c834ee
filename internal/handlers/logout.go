package handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/gw-image-gallery/internal/logger"
	"github.com/sbilibin2017/gw-image-gallery/internal/middlewares"
)

//go:generate mockgen -source=logout.go -destination=logout_mock.go -package=handlers

// Logouter ends a session.
type Logouter interface {
	Logout(ctx context.Context, token string) error
}

// LogoutResponse represents a successful logout response
// swagger:model LogoutResponse
type LogoutResponse struct {
	// default: true
	Success bool `json:"success"`
	// default: Logged out successfully
	Message string `json:"message"`
}

// NewLogoutHandler returns an HTTP handler that destroys the caller's session.
// @Summary User logout
// @Description Destroy the current session and clear the cookie
// @Tags auth
// @Produce json
// @Security SessionCookie
// @Success 200 {object} handlers.LogoutResponse "Logged out"
// @Failure 401 {object} middlewares.AuthErrorResponse "Authentication required"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /logout [get]
func NewLogoutHandler(svc Logouter, cookie SessionCookie) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Logout(r.Context(), middlewares.TokenFromContext(r.Context())); err != nil {
			logger.Log.Errorw("failed to destroy session", "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		cookie.Clear(w)
		writeJSON(w, http.StatusOK, LogoutResponse{
			Success: true,
			Message: "Logged out successfully",
		})
	}
}
