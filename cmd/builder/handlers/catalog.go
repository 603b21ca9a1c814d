package handlers

import (
	"net/http"

	"github.com/hairizuan-noorazman/scenario-builder/scenario"
)

// CatalogResponse lists the selectable models and action types.
type CatalogResponse struct {
	Models      []scenario.Option `json:"models"`
	ActionTypes []scenario.Option `json:"actionTypes"`
}

// CatalogHandler handles catalog requests.
func CatalogHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, CatalogResponse{
		Models:      scenario.ModelOptions,
		ActionTypes: scenario.ActionTypes,
	})
}
