package handlers

import (
	"io"
	"net/http"

	"github.com/hairizuan-noorazman/scenario-builder/editor"
	"github.com/hairizuan-noorazman/scenario-builder/logger"
	"github.com/hairizuan-noorazman/scenario-builder/payload"
)

// maxImportSize bounds the body of an import request.
const maxImportSize = 1 << 20

// TransferHandler handles import and export of scenario documents.
type TransferHandler struct {
	logger logger.Logger
}

// NewTransferHandler creates a new import/export handler.
func NewTransferHandler(log logger.Logger) *TransferHandler {
	return &TransferHandler{
		logger: log,
	}
}

// ImportResponse reports the detected document shape and the new form state.
type ImportResponse struct {
	Format payload.Format `json:"format"`
	State  editor.State   `json:"state"`
}

// Import replaces the form with the JSON document in the request body.
func (h *TransferHandler) Import(w http.ResponseWriter, r *http.Request) {
	ed, ok := editorOrRespond(w, r)
	if !ok {
		return
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportSize))
	if err != nil {
		respondError(w, http.StatusRequestEntityTooLarge, "import document is too large")
		return
	}

	format, err := ed.Import(r.Context(), data)
	if err != nil {
		respondDomainError(w, r, h.logger, err, "failed to import scenario")
		return
	}

	respondJSON(w, http.StatusOK, ImportResponse{Format: format, State: ed.State()})
}

// Export writes the form as a wire payload, or in the editor's own shape
// with format=ui.
func (h *TransferHandler) Export(w http.ResponseWriter, r *http.Request) {
	ed, ok := editorOrRespond(w, r)
	if !ok {
		return
	}

	format := payload.Format(r.URL.Query().Get("format"))
	if format == payload.FormatUnknown {
		format = payload.FormatWire
	}
	if format != payload.FormatWire && format != payload.FormatUI {
		respondError(w, http.StatusBadRequest, "format must be wire or ui")
		return
	}

	data, err := ed.Export(format)
	if err != nil {
		respondDomainError(w, r, h.logger, err, "failed to export scenario")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
