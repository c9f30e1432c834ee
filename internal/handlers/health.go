package handlers

import (
	"net/http"
	"os"
)

// HealthResponse is returned by the liveness endpoint.
// swagger:model HealthResponse
type HealthResponse struct {
	// default: ok
	Status string `json:"status"`
}

// ServerInfoResponse identifies the instance that served the request.
// swagger:model ServerInfoResponse
type ServerInfoResponse struct {
	Hostname string `json:"hostname"`
	PodName  string `json:"podName"`
	NodeName string `json:"nodeName"`
}

// NewHealthHandler returns the liveness handler.
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} handlers.HealthResponse
// @Router /health [get]
func NewHealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
	}
}

// NewServerInfoHandler returns a handler describing the serving instance.
// @Summary Server info
// @Tags system
// @Produce json
// @Success 200 {object} handlers.ServerInfoResponse
// @Router /server-info [get]
func NewServerInfoHandler(podName, nodeName string) http.HandlerFunc {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, ServerInfoResponse{
			Hostname: hostname,
			PodName:  podName,
			NodeName: nodeName,
		})
	}
}
