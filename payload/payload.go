package payload

import (
	"fmt"

	"github.com/hairizuan-noorazman/scenario-builder/scenario"
)

// Payload is the JSON body accepted by the code-generation service.
// Model identifiers are omitted when unset.
type Payload struct {
	StartPage            string     `json:"start_page"`
	CodeWriterModel      string     `json:"code_writer_model,omitempty"`
	HTMLAssistantModel   string     `json:"html_assistant_model,omitempty"`
	ProgressCheckerModel string     `json:"progress_checker_model,omitempty"`
	Name                 string     `json:"name"`
	ProjectName          string     `json:"project_name"`
	CaseSteps            []CaseStep `json:"case_steps"`
}

// CaseStep is one step of the wire payload.
type CaseStep struct {
	Action          string      `json:"action"`
	Number          int         `json:"number"`
	ExpectedResults []string    `json:"expected_results"`
	Parameters      []Parameter `json:"parameters"`
}

// Parameter is a step parameter in wire form.
type Parameter struct {
	Key      string `json:"key"`
	Value    string `json:"value"`
	IsSecret bool   `json:"is_secret"`
}

// ToWire maps a scenario onto the wire payload. Step numbers are taken from
// the steps as given; array fields are never nil so they encode as [].
func ToWire(ts scenario.TestScenario) Payload {
	cfg := ts.AgentConfig
	p := Payload{
		StartPage:            cfg.StartPageURL,
		CodeWriterModel:      cfg.CodeWriterModel,
		HTMLAssistantModel:   cfg.HTMLAssistantModel,
		ProgressCheckerModel: cfg.ProgressCheckerModel,
		Name:                 cfg.ScenarioName,
		ProjectName:          cfg.ProjectName,
		CaseSteps:            make([]CaseStep, 0, len(ts.Steps)),
	}

	for _, s := range ts.Steps {
		cs := CaseStep{
			Action:          s.ActionType,
			Number:          s.StepNumber,
			ExpectedResults: make([]string, 0, len(s.ExpectedResults)),
			Parameters:      make([]Parameter, 0, len(s.Parameters)),
		}
		for _, r := range s.ExpectedResults {
			cs.ExpectedResults = append(cs.ExpectedResults, r.Description)
		}
		for _, param := range s.Parameters {
			cs.Parameters = append(cs.Parameters, Parameter{
				Key:      param.Key,
				Value:    param.Value,
				IsSecret: param.IsSecret,
			})
		}
		p.CaseSteps = append(p.CaseSteps, cs)
	}

	return p
}

// FromWire rebuilds a scenario from a wire payload. The wire shape carries
// no step ids, so ids are assigned by position ("step-1", "step-2", ...) and
// step numbers follow position.
func FromWire(p Payload) scenario.TestScenario {
	ts := scenario.TestScenario{
		AgentConfig: scenario.AgentConfig{
			CodeWriterModel:      p.CodeWriterModel,
			HTMLAssistantModel:   p.HTMLAssistantModel,
			ProgressCheckerModel: p.ProgressCheckerModel,
			StartPageURL:         p.StartPage,
			ProjectName:          p.ProjectName,
			ScenarioName:         p.Name,
		},
		Steps: make([]scenario.Step, 0, len(p.CaseSteps)),
	}

	for i, cs := range p.CaseSteps {
		step := scenario.Step{
			ID:              positionalID(i),
			ActionType:      cs.Action,
			ExpectedResults: make([]scenario.ExpectedResult, 0, len(cs.ExpectedResults)),
			Parameters:      make([]scenario.Parameter, 0, len(cs.Parameters)),
		}
		for _, desc := range cs.ExpectedResults {
			step.ExpectedResults = append(step.ExpectedResults, scenario.ExpectedResult{Description: desc})
		}
		for _, param := range cs.Parameters {
			step.Parameters = append(step.Parameters, scenario.Parameter{
				Key:      param.Key,
				Value:    param.Value,
				IsSecret: param.IsSecret,
			})
		}
		ts.Steps = append(ts.Steps, step)
	}

	ts.Normalize()
	return ts
}

// FromUI completes a UI-shaped scenario: steps without an id get a
// positional one, nil arrays become empty and step numbers follow position.
func FromUI(ts scenario.TestScenario) scenario.TestScenario {
	out := ts.Clone()
	for i := range out.Steps {
		if out.Steps[i].ID == "" {
			out.Steps[i].ID = positionalID(i)
		}
	}
	out.Normalize()
	return out
}

func positionalID(index int) string {
	return fmt.Sprintf("step-%d", index+1)
}
