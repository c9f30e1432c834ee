package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-image-gallery/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()

	tests := []struct {
		name            string
		body            string
		mockSetup       func(m *MockLoginer, c *MockSessionCookie)
		expectedStatus  int
		expectedMessage string
	}{
		{
			name: "successful login",
			body: `{"username":"alice","password":"secret"}`,
			mockSetup: func(m *MockLoginer, c *MockSessionCookie) {
				m.EXPECT().Login(gomock.Any(), "alice", "secret").
					Return(&services.LoginResult{Token: "tok", UserID: userID, Username: "alice"}, nil)
				c.EXPECT().Set(gomock.Any(), "tok")
			},
			expectedStatus:  http.StatusOK,
			expectedMessage: "Login successful",
		},
		{
			name: "invalid credentials",
			body: `{"username":"alice","password":"wrong"}`,
			mockSetup: func(m *MockLoginer, c *MockSessionCookie) {
				m.EXPECT().Login(gomock.Any(), "alice", "wrong").
					Return(nil, services.ErrInvalidCredentials)
			},
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: "Invalid username or password",
		},
		{
			name: "missing fields",
			body: `{"username":"alice"}`,
			mockSetup: func(m *MockLoginer, c *MockSessionCookie) {
				m.EXPECT().Login(gomock.Any(), "alice", "").
					Return(nil, services.ErrInvalidInput)
			},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Username and password are required",
		},
		{
			name: "internal server error",
			body: `{"username":"alice","password":"secret"}`,
			mockSetup: func(m *MockLoginer, c *MockSessionCookie) {
				m.EXPECT().Login(gomock.Any(), "alice", "secret").
					Return(nil, errors.New("db down"))
			},
			expectedStatus:  http.StatusInternalServerError,
			expectedMessage: "Internal server error",
		},
		{
			name:            "invalid request body",
			body:            `invalid-json`,
			mockSetup:       func(m *MockLoginer, c *MockSessionCookie) {},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockLoginer(ctrl)
			mockCookie := NewMockSessionCookie(ctrl)
			tt.mockSetup(mockSvc, mockCookie)

			handler := NewLoginHandler(mockSvc, mockCookie)

			req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var resp LoginResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.expectedMessage, resp.Message)
			if tt.expectedStatus == http.StatusOK {
				assert.True(t, resp.Success)
				assert.Equal(t, userID, resp.UserID)
				assert.Equal(t, "alice", resp.Username)
			} else {
				assert.False(t, resp.Success)
			}
		})
	}
}
