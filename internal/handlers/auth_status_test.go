package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-image-gallery/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthStatusHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()

	tests := []struct {
		name          string
		mockSetup     func(tk *MockTokener, s *MockSessionLookuper)
		authenticated bool
	}{
		{
			name: "no token",
			mockSetup: func(tk *MockTokener, s *MockSessionLookuper) {
				tk.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).Return("", errors.New("missing"))
			},
		},
		{
			name: "unknown session",
			mockSetup: func(tk *MockTokener, s *MockSessionLookuper) {
				tk.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).Return("tok", nil)
				s.EXPECT().Lookup(gomock.Any(), "tok").Return(nil, nil)
			},
		},
		{
			name: "store failure",
			mockSetup: func(tk *MockTokener, s *MockSessionLookuper) {
				tk.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).Return("tok", nil)
				s.EXPECT().Lookup(gomock.Any(), "tok").Return(nil, errors.New("redis down"))
			},
		},
		{
			name: "live session",
			mockSetup: func(tk *MockTokener, s *MockSessionLookuper) {
				tk.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).Return("tok", nil)
				s.EXPECT().Lookup(gomock.Any(), "tok").
					Return(&models.Session{Token: "tok", UserID: userID, Username: "alice"}, nil)
			},
			authenticated: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockTokener := NewMockTokener(ctrl)
			mockSessions := NewMockSessionLookuper(ctrl)
			tt.mockSetup(mockTokener, mockSessions)

			handler := NewAuthStatusHandler(mockTokener, mockSessions)

			req := httptest.NewRequest(http.MethodGet, "/auth/status", nil)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)

			var resp map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.authenticated, resp["authenticated"])
			if tt.authenticated {
				assert.Equal(t, "alice", resp["username"])
				assert.Equal(t, userID.String(), resp["userId"])
			} else {
				assert.NotContains(t, resp, "username")
				assert.NotContains(t, resp, "userId")
			}
		})
	}
}
