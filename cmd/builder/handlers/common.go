package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/hairizuan-noorazman/scenario-builder/confirm"
	"github.com/hairizuan-noorazman/scenario-builder/draft"
	"github.com/hairizuan-noorazman/scenario-builder/editor"
	"github.com/hairizuan-noorazman/scenario-builder/gateway"
	"github.com/hairizuan-noorazman/scenario-builder/logger"
	"github.com/hairizuan-noorazman/scenario-builder/payload"
	"github.com/hairizuan-noorazman/scenario-builder/scenario"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error  string                `json:"error"`
	Fields []scenario.FieldError `json:"fields,omitempty"`
}

// SuccessResponse represents a success response with a message.
type SuccessResponse struct {
	Message string `json:"message"`
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response with the given status code.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondSuccess writes a success response with the given message.
func respondSuccess(w http.ResponseWriter, message string) {
	respondJSON(w, http.StatusOK, SuccessResponse{Message: message})
}

// respondState writes the editor state.
func respondState(w http.ResponseWriter, status int, ed *editor.Editor) {
	respondJSON(w, status, ed.State())
}

// parseJSON parses JSON from the request body into the given destination.
func parseJSON(r *http.Request, dest interface{}, log logger.Logger) error {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		log.Error(r.Context(), "failed to parse JSON", map[string]interface{}{
			"error": err.Error(),
		})
		return err
	}
	return nil
}

// confirmation reads the confirmed query parameter. A request without it is
// treated as declined.
func confirmation(r *http.Request) confirm.Confirmer {
	ok, _ := strconv.ParseBool(r.URL.Query().Get("confirmed"))
	return confirm.Static(ok)
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	var remoteErr *gateway.RemoteError
	var transportErr *gateway.TransportError

	switch {
	case errors.Is(err, scenario.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, scenario.ErrStepNotFound),
		errors.Is(err, scenario.ErrFieldNotFound),
		errors.Is(err, draft.ErrDraftNotFound):
		return http.StatusNotFound
	case errors.Is(err, draft.ErrEmptyName),
		errors.Is(err, payload.ErrImport):
		return http.StatusBadRequest
	case errors.Is(err, draft.ErrCorruptedDraft):
		return http.StatusUnprocessableEntity
	case errors.Is(err, editor.ErrNotConfirmed):
		return http.StatusPreconditionRequired
	case errors.Is(err, gateway.ErrSubmissionInProgress):
		return http.StatusConflict
	case errors.Is(err, editor.ErrNoDraftStore),
		errors.Is(err, editor.ErrNoSubmitter):
		return http.StatusServiceUnavailable
	case errors.As(err, &remoteErr), errors.As(err, &transportErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// respondDomainError writes err with the status from statusFor. Unexpected
// errors are logged and replaced by fallback.
func respondDomainError(w http.ResponseWriter, r *http.Request, log logger.Logger, err error, fallback string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error(r.Context(), fallback, map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, status, fallback)
		return
	}
	respondError(w, status, err.Error())
}

// respondValidation writes the field errors of an invalid scenario.
func respondValidation(w http.ResponseWriter, result *scenario.ValidationResult) {
	respondJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
		Error:  result.Err().Error(),
		Fields: result.Errors,
	})
}
