package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-image-gallery/internal/logger"
	"github.com/sbilibin2017/gw-image-gallery/internal/models"
	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -source=auth.go -destination=auth_mock.go -package=services

// Error variables
// Column limits of the users table.
const (
	MaxUsernameLen = 50
	MaxEmailLen    = 100
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrUserAlreadyExists  = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByUsername(ctx context.Context, username string) (*models.UserDB, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Save(ctx context.Context, userID uuid.UUID, username, passwordHash, email string) error
}

// SessionManager starts and ends sessions.
type SessionManager interface {
	Create(ctx context.Context, userID uuid.UUID, username string) (string, error)
	Destroy(ctx context.Context, token string) error
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token    string
	UserID   uuid.UUID
	Username string
}

// AuthService handles registration, login and logout.
type AuthService struct {
	reader   UserReader
	writer   UserWriter
	sessions SessionManager
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(reader UserReader, writer UserWriter, sessions SessionManager) *AuthService {
	return &AuthService{
		reader:   reader,
		writer:   writer,
		sessions: sessions,
	}
}

// Register creates a new account. It does not log the user in.
func (svc *AuthService) Register(ctx context.Context, username, password, email string) (uuid.UUID, error) {
	if username == "" || password == "" {
		return uuid.Nil, fmt.Errorf("%w: username and password are required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(username) > MaxUsernameLen {
		return uuid.Nil, fmt.Errorf("%w: username is longer than %d characters", ErrInvalidInput, MaxUsernameLen)
	}
	if utf8.RuneCountInString(email) > MaxEmailLen {
		return uuid.Nil, fmt.Errorf("%w: email is longer than %d characters", ErrInvalidInput, MaxEmailLen)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return uuid.Nil, fmt.Errorf("%w: password is too long", ErrInvalidInput)
	}
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return uuid.Nil, err
	}

	userID := uuid.New()
	if err := svc.writer.Save(ctx, userID, username, string(hashedPassword), email); err != nil {
		if errors.Is(err, models.ErrDuplicateUsername) {
			logger.Log.Infow("user already exists", "username", username)
			return uuid.Nil, ErrUserAlreadyExists
		}
		logger.Log.Errorw("failed to save user", "err", err)
		return uuid.Nil, err
	}

	return userID, nil
}

// Login checks credentials and starts a session. Unknown usernames and wrong
// passwords produce the same error.
func (svc *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrInvalidInput)
	}

	user, err := svc.reader.GetByUsername(ctx, username)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return nil, err
	}
	if user == nil {
		// Compare anyway so both failure paths cost the same.
		_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(password))
		logger.Log.Infow("invalid credentials", "username", username)
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Log.Infow("invalid credentials", "username", username)
		return nil, ErrInvalidCredentials
	}

	token, err := svc.sessions.Create(ctx, user.UserID, user.Username)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token:    token,
		UserID:   user.UserID,
		Username: user.Username,
	}, nil
}

// Logout ends the session identified by token.
func (svc *AuthService) Logout(ctx context.Context, token string) error {
	return svc.sessions.Destroy(ctx, token)
}

var (
	dummyOnce sync.Once
	dummy     []byte
)

func dummyHash() []byte {
	dummyOnce.Do(func() {
		dummy, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)
	})
	return dummy
}
