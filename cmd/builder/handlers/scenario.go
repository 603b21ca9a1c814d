package handlers

import (
	"net/http"

	"github.com/hairizuan-noorazman/scenario-builder/logger"
	"github.com/hairizuan-noorazman/scenario-builder/scenario"
)

// ScenarioHandler handles the agent configuration and whole-form requests.
type ScenarioHandler struct {
	logger logger.Logger
}

// NewScenarioHandler creates a new scenario handler.
func NewScenarioHandler(log logger.Logger) *ScenarioHandler {
	return &ScenarioHandler{
		logger: log,
	}
}

// UpdateAgentConfigRequest represents a partial agent configuration update.
// Omitted fields keep their value; an empty model clears it.
type UpdateAgentConfigRequest struct {
	CodeWriterModel      *string `json:"codeWriterModel,omitempty"`
	HTMLAssistantModel   *string `json:"htmlAssistantModel,omitempty"`
	ProgressCheckerModel *string `json:"progressCheckerModel,omitempty"`
	StartPageURL         *string `json:"startPageUrl,omitempty"`
	ProjectName          *string `json:"projectName,omitempty"`
	ScenarioName         *string `json:"scenarioName,omitempty"`
}

func (req UpdateAgentConfigRequest) setters() []scenario.AgentConfigSetter {
	var setters []scenario.AgentConfigSetter
	if req.CodeWriterModel != nil {
		setters = append(setters, scenario.SetCodeWriterModel(*req.CodeWriterModel))
	}
	if req.HTMLAssistantModel != nil {
		setters = append(setters, scenario.SetHTMLAssistantModel(*req.HTMLAssistantModel))
	}
	if req.ProgressCheckerModel != nil {
		setters = append(setters, scenario.SetProgressCheckerModel(*req.ProgressCheckerModel))
	}
	if req.StartPageURL != nil {
		setters = append(setters, scenario.SetStartPageURL(*req.StartPageURL))
	}
	if req.ProjectName != nil {
		setters = append(setters, scenario.SetProjectName(*req.ProjectName))
	}
	if req.ScenarioName != nil {
		setters = append(setters, scenario.SetScenarioName(*req.ScenarioName))
	}
	return setters
}

// Get returns the current form state.
func (h *ScenarioHandler) Get(w http.ResponseWriter, r *http.Request) {
	ed, ok := editorOrRespond(w, r)
	if !ok {
		return
	}
	respondState(w, http.StatusOK, ed)
}

// UpdateAgentConfig handles updates to the agent configuration.
func (h *ScenarioHandler) UpdateAgentConfig(w http.ResponseWriter, r *http.Request) {
	ed, ok := editorOrRespond(w, r)
	if !ok {
		return
	}

	var req UpdateAgentConfigRequest
	if err := parseJSON(r, &req, h.logger); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if _, err := ed.UpdateAgentConfig(req.setters()...); err != nil {
		respondDomainError(w, r, h.logger, err, "failed to update agent configuration")
		return
	}

	respondState(w, http.StatusOK, ed)
}

// Reset clears the form.
func (h *ScenarioHandler) Reset(w http.ResponseWriter, r *http.Request) {
	ed, ok := editorOrRespond(w, r)
	if !ok {
		return
	}

	ed.Reset()
	h.logger.Info(r.Context(), "scenario reset", nil)

	respondState(w, http.StatusOK, ed)
}
