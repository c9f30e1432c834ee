package middlewares

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sbilibin2017/gw-image-gallery/internal/logger"
	"github.com/sbilibin2017/gw-image-gallery/internal/models"
)

//go:generate mockgen -source=auth.go -destination=auth_mock.go -package=middlewares

// Failure reasons reported by the auth gate.
const (
	ReasonMissingSession = "missing_session"
	ReasonInvalidSession = "invalid_session"
)

// Tokener extracts the session token from a request.
type Tokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
}

// SessionLookuper resolves a session token. A nil session means not authenticated.
type SessionLookuper interface {
	Lookup(ctx context.Context, token string) (*models.Session, error)
}

// AuthErrorResponse is returned when a request is rejected by the auth gate.
// swagger:model AuthErrorResponse
type AuthErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Reason  string `json:"reason,omitempty"`
}

// AuthMiddleware rejects requests without a valid session and attaches the
// caller's identity to the request context otherwise.
func AuthMiddleware(tokener Tokener, sessions SessionLookuper) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			tokenString, err := tokener.GetTokenFromRequest(ctx, r)
			if err != nil {
				logger.Log.Debugw("authorization failed", "err", err)
				writeAuthError(w, http.StatusUnauthorized, "Authentication required", ReasonMissingSession)
				return
			}

			session, err := sessions.Lookup(ctx, tokenString)
			if err != nil {
				logger.Log.Errorw("session lookup failed", "err", err)
				writeAuthError(w, http.StatusInternalServerError, "Internal server error", "")
				return
			}
			if session == nil {
				logger.Log.Debugw("authorization failed", "err", "unknown or expired session")
				writeAuthError(w, http.StatusUnauthorized, "Authentication required", ReasonInvalidSession)
				return
			}

			ctx = WithIdentity(ctx, models.Identity{UserID: session.UserID, Username: session.Username}, tokenString)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeAuthError(w http.ResponseWriter, status int, message, reason string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(AuthErrorResponse{
		Success: false,
		Message: message,
		Reason:  reason,
	})
}

type authKey struct{}

type authInfo struct {
	identity models.Identity
	token    string
}

// WithIdentity stores the authenticated caller and its session token in ctx.
func WithIdentity(ctx context.Context, identity models.Identity, token string) context.Context {
	return context.WithValue(ctx, authKey{}, authInfo{identity: identity, token: token})
}

// IdentityFromContext returns the caller set by AuthMiddleware.
func IdentityFromContext(ctx context.Context) (models.Identity, bool) {
	info, ok := ctx.Value(authKey{}).(authInfo)
	return info.identity, ok
}

// TokenFromContext returns the session token set by AuthMiddleware.
func TokenFromContext(ctx context.Context) string {
	info, _ := ctx.Value(authKey{}).(authInfo)
	return info.token
}
