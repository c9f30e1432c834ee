package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler(t *testing.T) {
	w := httptest.NewRecorder()
	NewHealthHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestServerInfoHandler(t *testing.T) {
	w := httptest.NewRecorder()
	NewServerInfoHandler("pod-1", "node-a").ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/server-info", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var resp ServerInfoResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "pod-1", resp.PodName)
	assert.Equal(t, "node-a", resp.NodeName)
	assert.NotEmpty(t, resp.Hostname)
}
