package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-image-gallery/internal/logger"
	"github.com/sbilibin2017/gw-image-gallery/internal/services"
)

//go:generate mockgen -source=register.go -destination=register_mock.go -package=handlers

// Registerer defines the interface for user registration
type Registerer interface {
	Register(ctx context.Context, username, password, email string) (uuid.UUID, error)
}

// RegisterRequest represents the JSON body for user registration
// swagger:model RegisterRequest
type RegisterRequest struct {
	// Username of the new user
	// required: true
	// default: alice
	Username string `json:"username"`

	// Password of the new user
	// required: true
	// default: secret123
	Password string `json:"password"`

	// Email of the new user
	// required: false
	// default: alice@example.com
	Email string `json:"email"`
}

// RegisterResponse represents a successful registration response
// swagger:model RegisterResponse
type RegisterResponse struct {
	// default: true
	Success bool `json:"success"`
	// default: User registered successfully
	Message string    `json:"message"`
	UserID  uuid.UUID `json:"userId"`
}

// NewRegisterHandler returns an HTTP handler for user registration.
// @Summary Register a new user
// @Description Creates a new user account
// @Tags auth
// @Accept json
// @Produce json
// @Param registerRequest body handlers.RegisterRequest true "Register Request"
// @Success 201 {object} handlers.RegisterResponse "User registered successfully"
// @Failure 400 {object} handlers.ErrorResponse "Invalid request body or missing fields"
// @Failure 409 {object} handlers.ErrorResponse "Username already exists"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /register [post]
func NewRegisterHandler(svc Registerer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		userID, err := svc.Register(r.Context(), req.Username, req.Password, req.Email)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidInput):
				writeError(w, http.StatusBadRequest, "Invalid username, password or email")
			case errors.Is(err, services.ErrUserAlreadyExists):
				writeError(w, http.StatusConflict, "Username already exists")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		writeJSON(w, http.StatusCreated, RegisterResponse{
			Success: true,
			Message: "User registered successfully",
			UserID:  userID,
		})
	}
}
