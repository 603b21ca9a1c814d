package handlers

import (
	"errors"
	"net/http"

	"github.com/hairizuan-noorazman/scenario-builder/logger"
	"github.com/hairizuan-noorazman/scenario-builder/scenario"
)

// SubmitHandler sends the session's scenario to the code-generation service.
type SubmitHandler struct {
	logger logger.Logger
}

// NewSubmitHandler creates a new submit handler.
func NewSubmitHandler(log logger.Logger) *SubmitHandler {
	return &SubmitHandler{
		logger: log,
	}
}

// Submit validates and submits the scenario. The request must carry
// confirmed=true.
func (h *SubmitHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ed, ok := editorOrRespond(w, r)
	if !ok {
		return
	}

	result, err := ed.Submit(r.Context(), confirmation(r))
	if err != nil {
		if errors.Is(err, scenario.ErrValidation) {
			respondValidation(w, ed.Validate())
			return
		}
		respondDomainError(w, r, h.logger, err, "failed to submit scenario")
		return
	}

	h.logger.Info(r.Context(), "scenario submitted", map[string]interface{}{
		"kind":   string(result.Kind),
		"status": result.StatusCode,
	})

	respondJSON(w, http.StatusOK, result)
}
