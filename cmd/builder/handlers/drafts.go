package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/hairizuan-noorazman/scenario-builder/draft"
	"github.com/hairizuan-noorazman/scenario-builder/logger"
)

// DraftHandler handles draft requests for the session's form.
type DraftHandler struct {
	logger logger.Logger
}

// NewDraftHandler creates a new draft handler.
func NewDraftHandler(log logger.Logger) *DraftHandler {
	return &DraftHandler{
		logger: log,
	}
}

// SaveDraftRequest represents a draft save request.
type SaveDraftRequest struct {
	Name string `json:"name"`
}

// LoadDraftRequest represents a draft load request.
type LoadDraftRequest struct {
	Key string `json:"key"`
}

// DraftListResponse lists the stored drafts.
type DraftListResponse struct {
	Items []draft.Entry `json:"items"`
	Total int           `json:"total"`
}

// List returns the stored drafts sorted by name.
func (h *DraftHandler) List(w http.ResponseWriter, r *http.Request) {
	ed, ok := editorOrRespond(w, r)
	if !ok {
		return
	}

	entries, err := ed.ListDrafts(r.Context())
	if err != nil {
		respondDomainError(w, r, h.logger, err, "failed to list drafts")
		return
	}
	if entries == nil {
		entries = []draft.Entry{}
	}

	respondJSON(w, http.StatusOK, DraftListResponse{Items: entries, Total: len(entries)})
}

// Save stores the current form under a name.
func (h *DraftHandler) Save(w http.ResponseWriter, r *http.Request) {
	ed, ok := editorOrRespond(w, r)
	if !ok {
		return
	}

	var req SaveDraftRequest
	if err := parseJSON(r, &req, h.logger); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := ed.SaveDraft(r.Context(), req.Name)
	if err != nil {
		respondDomainError(w, r, h.logger, err, "failed to save draft")
		return
	}

	respondJSON(w, http.StatusCreated, entry)
}

// Load replaces the form with a stored draft.
func (h *DraftHandler) Load(w http.ResponseWriter, r *http.Request) {
	ed, ok := editorOrRespond(w, r)
	if !ok {
		return
	}

	var req LoadDraftRequest
	if err := parseJSON(r, &req, h.logger); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := ed.LoadDraft(r.Context(), req.Key); err != nil {
		respondDomainError(w, r, h.logger, err, "failed to load draft")
		return
	}

	respondState(w, http.StatusOK, ed)
}

// Delete removes a stored draft.
func (h *DraftHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ed, ok := editorOrRespond(w, r)
	if !ok {
		return
	}

	key := mux.Vars(r)["key"]
	if err := ed.DeleteDraft(r.Context(), key); err != nil {
		respondDomainError(w, r, h.logger, err, "failed to delete draft")
		return
	}

	respondSuccess(w, "draft deleted")
}
