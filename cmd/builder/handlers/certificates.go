package handlers

import (
	"net/http"

	"github.com/hairizuan-noorazman/scenario-builder/certs"
)

// CertificateHandler reports and refreshes the local certificate status.
type CertificateHandler struct {
	loader  *certs.Loader
	monitor *certs.Monitor
}

// NewCertificateHandler creates a new certificate handler.
func NewCertificateHandler(loader *certs.Loader, monitor *certs.Monitor) *CertificateHandler {
	return &CertificateHandler{
		loader:  loader,
		monitor: monitor,
	}
}

// CertificateResponse represents the certificate status.
type CertificateResponse struct {
	Status    certs.Status `json:"status"`
	Available bool         `json:"available"`
}

// Status returns the last published status.
func (h *CertificateHandler) Status(w http.ResponseWriter, r *http.Request) {
	status := h.monitor.Get()
	respondJSON(w, http.StatusOK, CertificateResponse{
		Status:    status,
		Available: status == certs.StatusLoaded,
	})
}

// Check reloads the certificates and publishes the result.
func (h *CertificateHandler) Check(w http.ResponseWriter, r *http.Request) {
	available := h.loader.Check(r.Context())
	respondJSON(w, http.StatusOK, CertificateResponse{
		Status:    h.monitor.Get(),
		Available: available,
	})
}
