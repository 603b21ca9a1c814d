package scenario

import (
	"errors"
)

var (
	// ErrValidation is returned when a test scenario fails one or more field rules.
	ErrValidation = errors.New("test scenario is invalid")

	// ErrStepNotFound is returned when a step id does not exist in the scenario.
	ErrStepNotFound = errors.New("step not found")

	// ErrFieldNotFound is returned when a parameter or expected result id does not exist in a step.
	ErrFieldNotFound = errors.New("field not found")
)

// AgentConfig holds the agent settings and naming of a test scenario.
// Model identifiers are optional; an empty string means unset.
type AgentConfig struct {
	CodeWriterModel      string `json:"codeWriterModel,omitempty"`
	HTMLAssistantModel   string `json:"htmlAssistantModel,omitempty"`
	ProgressCheckerModel string `json:"progressCheckerModel,omitempty"`
	StartPageURL         string `json:"startPageUrl"`
	ProjectName          string `json:"projectName"`
	ScenarioName         string `json:"scenarioName"`
}

// Parameter is a key/value input for a step. IsSecret only affects how the
// value is displayed.
type Parameter struct {
	Key      string `json:"key"`
	Value    string `json:"value"`
	IsSecret bool   `json:"isSecret"`
}

// ExpectedResult describes an outcome the generated test should assert.
type ExpectedResult struct {
	Description string `json:"description"`
}

// Step is one ordered action within a scenario.
// ID is stable across reordering; StepNumber is the 1-based position.
type Step struct {
	ID              string           `json:"id"`
	StepNumber      int              `json:"stepNumber"`
	ActionType      string           `json:"actionType"`
	ExpectedResults []ExpectedResult `json:"expectedResults"`
	Parameters      []Parameter      `json:"parameters"`
}

// TestScenario is the root aggregate authored by the user.
type TestScenario struct {
	AgentConfig AgentConfig `json:"agentConfig"`
	Steps       []Step      `json:"steps"`
}

// New returns an empty scenario with defaulted fields.
func New() TestScenario {
	return TestScenario{Steps: []Step{}}
}

// Clone returns a deep copy of the scenario so callers can hand out snapshots
// without sharing the nested slices.
func (ts TestScenario) Clone() TestScenario {
	out := TestScenario{
		AgentConfig: ts.AgentConfig,
		Steps:       make([]Step, len(ts.Steps)),
	}
	for i, s := range ts.Steps {
		out.Steps[i] = s.Clone()
	}
	return out
}

// Clone returns a deep copy of the step.
func (s Step) Clone() Step {
	out := s
	out.ExpectedResults = append([]ExpectedResult{}, s.ExpectedResults...)
	out.Parameters = append([]Parameter{}, s.Parameters...)
	return out
}

// Normalize replaces nil slices with empty ones and renumbers steps so that
// StepNumber matches the 1-based position.
func (ts *TestScenario) Normalize() {
	if ts.Steps == nil {
		ts.Steps = []Step{}
	}
	for i := range ts.Steps {
		ts.Steps[i].StepNumber = i + 1
		if ts.Steps[i].ExpectedResults == nil {
			ts.Steps[i].ExpectedResults = []ExpectedResult{}
		}
		if ts.Steps[i].Parameters == nil {
			ts.Steps[i].Parameters = []Parameter{}
		}
	}
}
