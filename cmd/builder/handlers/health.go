package handlers

import (
	"net/http"
)

// HealthResponse reports liveness and the running build.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// HealthHandler returns a health check handler that reports version.
func HealthHandler(version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, HealthResponse{Status: "healthy", Version: version})
	}
}
