package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/hairizuan-noorazman/scenario-builder/logger"
	"github.com/hairizuan-noorazman/scenario-builder/scenario"
	"github.com/hairizuan-noorazman/scenario-builder/steplist"
)

// StepHandler handles step list requests.
type StepHandler struct {
	logger logger.Logger
}

// NewStepHandler creates a new step handler.
func NewStepHandler(log logger.Logger) *StepHandler {
	return &StepHandler{
		logger: log,
	}
}

// MoveStepRequest moves a step. Either From/To or a drag result
// (Source/Destination) is given; a drag result with a null destination is
// ignored.
type MoveStepRequest struct {
	From        *int               `json:"from,omitempty"`
	To          *int               `json:"to,omitempty"`
	Source      *steplist.Location `json:"source,omitempty"`
	Destination *steplist.Location `json:"destination,omitempty"`
}

// SetActionTypeRequest sets the action of a step.
type SetActionTypeRequest struct {
	ActionType string `json:"actionType"`
}

// edit runs fn against the session's step list and writes the new state.
func (h *StepHandler) edit(w http.ResponseWriter, r *http.Request, status int, fn func(c *steplist.Controller) error) {
	ed, ok := editorOrRespond(w, r)
	if !ok {
		return
	}

	if _, err := ed.EditSteps(fn); err != nil {
		respondDomainError(w, r, h.logger, err, "failed to update steps")
		return
	}

	respondState(w, status, ed)
}

// Add appends an empty step.
func (h *StepHandler) Add(w http.ResponseWriter, r *http.Request) {
	h.edit(w, r, http.StatusCreated, func(c *steplist.Controller) error {
		c.AddStep()
		return nil
	})
}

// Clear removes every step. The request must carry confirmed=true.
func (h *StepHandler) Clear(w http.ResponseWriter, r *http.Request) {
	ed, ok := editorOrRespond(w, r)
	if !ok {
		return
	}

	if err := ed.ClearSteps(r.Context(), confirmation(r)); err != nil {
		respondDomainError(w, r, h.logger, err, "failed to clear steps")
		return
	}

	respondState(w, http.StatusOK, ed)
}

// Remove deletes the step at the index path parameter. An index outside the
// list leaves the steps unchanged.
func (h *StepHandler) Remove(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid step index")
		return
	}

	h.edit(w, r, http.StatusOK, func(c *steplist.Controller) error {
		c.RemoveStep(index)
		return nil
	})
}

// Move reorders the steps.
func (h *StepHandler) Move(w http.ResponseWriter, r *http.Request) {
	var req MoveStepRequest
	if err := parseJSON(r, &req, h.logger); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var apply func(c *steplist.Controller) bool
	switch {
	case req.Source != nil:
		drop := steplist.DragResult{Source: *req.Source, Destination: req.Destination}
		apply = func(c *steplist.Controller) bool { return c.Drop(drop) }
	case req.From != nil && req.To != nil:
		from, to := *req.From, *req.To
		apply = func(c *steplist.Controller) bool { return c.MoveStep(from, to) }
	default:
		respondError(w, http.StatusBadRequest, "either from/to or source is required")
		return
	}

	h.edit(w, r, http.StatusOK, func(c *steplist.Controller) error {
		if !apply(c) {
			h.logger.Debug(r.Context(), "move ignored", nil)
		}
		return nil
	})
}

// SetActionType updates the action of a step.
func (h *StepHandler) SetActionType(w http.ResponseWriter, r *http.Request) {
	var req SetActionTypeRequest
	if err := parseJSON(r, &req, h.logger); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	stepID := mux.Vars(r)["id"]
	h.edit(w, r, http.StatusOK, func(c *steplist.Controller) error {
		return c.SetActionType(stepID, req.ActionType)
	})
}

// Toggle flips the expand state of a step.
func (h *StepHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	stepID := mux.Vars(r)["id"]
	h.edit(w, r, http.StatusOK, func(c *steplist.Controller) error {
		_, err := c.ToggleExpand(stepID)
		return err
	})
}

// ToggleAll expands every step, or collapses them all when all are expanded.
func (h *StepHandler) ToggleAll(w http.ResponseWriter, r *http.Request) {
	h.edit(w, r, http.StatusOK, func(c *steplist.Controller) error {
		c.ToggleExpandAll()
		return nil
	})
}

// AddParameter appends a parameter to a step.
func (h *StepHandler) AddParameter(w http.ResponseWriter, r *http.Request) {
	var p scenario.Parameter
	if r.ContentLength != 0 {
		if err := parseJSON(r, &p, h.logger); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	stepID := mux.Vars(r)["id"]
	h.edit(w, r, http.StatusCreated, func(c *steplist.Controller) error {
		_, err := c.AddParameter(stepID, p)
		return err
	})
}

// UpdateParameter replaces a parameter of a step.
func (h *StepHandler) UpdateParameter(w http.ResponseWriter, r *http.Request) {
	var p scenario.Parameter
	if err := parseJSON(r, &p, h.logger); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	vars := mux.Vars(r)
	h.edit(w, r, http.StatusOK, func(c *steplist.Controller) error {
		return c.UpdateParameter(vars["id"], vars["fieldId"], p)
	})
}

// RemoveParameter deletes a parameter of a step.
func (h *StepHandler) RemoveParameter(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	h.edit(w, r, http.StatusOK, func(c *steplist.Controller) error {
		return c.RemoveParameter(vars["id"], vars["fieldId"])
	})
}

// AddExpectedResult appends an expected result to a step.
func (h *StepHandler) AddExpectedResult(w http.ResponseWriter, r *http.Request) {
	var res scenario.ExpectedResult
	if r.ContentLength != 0 {
		if err := parseJSON(r, &res, h.logger); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	stepID := mux.Vars(r)["id"]
	h.edit(w, r, http.StatusCreated, func(c *steplist.Controller) error {
		_, err := c.AddExpectedResult(stepID, res)
		return err
	})
}

// UpdateExpectedResult replaces an expected result of a step.
func (h *StepHandler) UpdateExpectedResult(w http.ResponseWriter, r *http.Request) {
	var res scenario.ExpectedResult
	if err := parseJSON(r, &res, h.logger); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	vars := mux.Vars(r)
	h.edit(w, r, http.StatusOK, func(c *steplist.Controller) error {
		return c.UpdateExpectedResult(vars["id"], vars["fieldId"], res)
	})
}

// RemoveExpectedResult deletes an expected result of a step.
func (h *StepHandler) RemoveExpectedResult(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	h.edit(w, r, http.StatusOK, func(c *steplist.Controller) error {
		return c.RemoveExpectedResult(vars["id"], vars["fieldId"])
	})
}
