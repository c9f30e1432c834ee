package token

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"
)

// DefaultCookieName is the cookie that carries the session token.
const DefaultCookieName = "session_id"

// ErrNoToken is returned when a request carries no session token.
var ErrNoToken = errors.New("session token missing")

// Cookie reads and writes the session token on HTTP requests and responses.
type Cookie struct {
	Name   string        // Cookie name
	MaxAge time.Duration // Lifetime given to the browser
	Secure bool          // Send only over HTTPS
}

// New creates a new Cookie helper.
func New(name string, maxAge time.Duration, secure bool) *Cookie {
	if name == "" {
		name = DefaultCookieName
	}
	return &Cookie{
		Name:   name,
		MaxAge: maxAge,
		Secure: secure,
	}
}

// GetTokenFromRequest returns the session token from the cookie, falling back
// to an "Authorization: Bearer" header for non-browser clients.
func (c *Cookie) GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error) {
	if ck, err := r.Cookie(c.Name); err == nil && ck.Value != "" {
		return ck.Value, nil
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", ErrNoToken
	}

	parts := strings.Fields(authHeader)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", errors.New("invalid authorization header format")
	}

	return parts[1], nil
}

// Set writes the session cookie.
func (c *Cookie) Set(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(c.MaxAge / time.Second),
		Expires:  time.Now().Add(c.MaxAge),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear tells the browser to drop the session cookie.
func (c *Cookie) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
