package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validScenario() TestScenario {
	return TestScenario{
		AgentConfig: AgentConfig{
			StartPageURL: "https://example.com",
			ProjectName:  "Proj_1",
			ScenarioName: "Login Test",
		},
		Steps: []Step{
			{
				ID:              "s1",
				StepNumber:      1,
				ActionType:      "Click Login",
				ExpectedResults: []ExpectedResult{{Description: "User is logged in"}},
				Parameters:      []Parameter{{Key: "user", Value: "bob"}},
			},
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(ts *TestScenario)
		wantPaths map[string]string
	}{
		{
			name:   "valid scenario passes",
			mutate: func(ts *TestScenario) {},
		},
		{
			name:   "zero steps fails",
			mutate: func(ts *TestScenario) { ts.Steps = nil },
			wantPaths: map[string]string{
				"steps": "At least one step is required",
			},
		},
		{
			name:   "relative URL fails",
			mutate: func(ts *TestScenario) { ts.AgentConfig.StartPageURL = "example.com/login" },
			wantPaths: map[string]string{
				"agentConfig.startPageUrl": "Please enter a valid URL",
			},
		},
		{
			name:   "scheme without host fails",
			mutate: func(ts *TestScenario) { ts.AgentConfig.StartPageURL = "https://" },
			wantPaths: map[string]string{
				"agentConfig.startPageUrl": "Please enter a valid URL",
			},
		},
		{
			name:   "empty project name reports required, not pattern",
			mutate: func(ts *TestScenario) { ts.AgentConfig.ProjectName = "" },
			wantPaths: map[string]string{
				"agentConfig.projectName": "Project name is required",
			},
		},
		{
			name:   "project name with punctuation fails pattern",
			mutate: func(ts *TestScenario) { ts.AgentConfig.ProjectName = "Proj.1" },
			wantPaths: map[string]string{
				"agentConfig.projectName": "Project name must contain only alphanumeric characters, spaces, hyphens, and underscores",
			},
		},
		{
			name:   "scenario name with slash fails pattern",
			mutate: func(ts *TestScenario) { ts.AgentConfig.ScenarioName = "login/logout" },
			wantPaths: map[string]string{
				"agentConfig.scenarioName": "Scenario name must contain only alphanumeric characters, spaces, hyphens, and underscores",
			},
		},
		{
			name:   "empty model identifiers are accepted",
			mutate: func(ts *TestScenario) { ts.AgentConfig.CodeWriterModel = "" },
		},
		{
			name:   "missing action type fails",
			mutate: func(ts *TestScenario) { ts.Steps[0].ActionType = "" },
			wantPaths: map[string]string{
				"steps.0.actionType": "Action type is required",
			},
		},
		{
			name: "empty parameter key and value both reported",
			mutate: func(ts *TestScenario) {
				ts.Steps[0].Parameters = append(ts.Steps[0].Parameters, Parameter{})
			},
			wantPaths: map[string]string{
				"steps.0.parameters.1.key":   "Parameter key is required",
				"steps.0.parameters.1.value": "Parameter value is required",
			},
		},
		{
			name: "empty expected result fails",
			mutate: func(ts *TestScenario) {
				ts.Steps[0].ExpectedResults[0].Description = ""
			},
			wantPaths: map[string]string{
				"steps.0.expectedResults.0.description": "Expected result description is required",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := validScenario()
			tt.mutate(&ts)

			result := Validate(&ts)
			if len(tt.wantPaths) == 0 {
				assert.True(t, result.Valid(), "unexpected errors: %v", result.Errors)
				assert.NoError(t, result.Err())
				return
			}

			require.Len(t, result.Errors, len(tt.wantPaths))
			for path, msg := range tt.wantPaths {
				got, ok := result.Field(path)
				require.True(t, ok, "missing error for %s", path)
				assert.Equal(t, msg, got)
			}
			assert.ErrorIs(t, result.Err(), ErrValidation)
		})
	}
}

func TestValidate_OneStepMakesScenarioValid(t *testing.T) {
	ts := validScenario()
	ts.Steps = nil
	require.False(t, Validate(&ts).Valid())

	ts.Steps = []Step{{ID: "a", StepNumber: 1, ActionType: "navigate"}}
	assert.True(t, Validate(&ts).Valid())
}

func TestValidateDraft_AllowsEmptySteps(t *testing.T) {
	ts := validScenario()
	ts.Steps = nil

	assert.True(t, ValidateDraft(&ts).Valid())
	assert.False(t, Validate(&ts).Valid())
}

func TestValidate_WithActionCatalog(t *testing.T) {
	ts := validScenario()

	result := Validate(&ts, WithActionCatalog(ActionTypes))
	msg, ok := result.Field("steps.0.actionType")
	require.True(t, ok)
	assert.Equal(t, `Unknown action type "Click Login"`, msg)

	ts.Steps[0].ActionType = "click"
	assert.True(t, Validate(&ts, WithActionCatalog(ActionTypes)).Valid())
}

func TestValidationResult_Sections(t *testing.T) {
	ts := validScenario()
	ts.AgentConfig.ProjectName = ""
	ts.Steps[0].ActionType = ""

	result := Validate(&ts)
	assert.Equal(t, []string{SectionAgentConfig, SectionSteps}, result.Sections())

	ts = validScenario()
	ts.Steps = nil
	assert.Equal(t, []string{SectionSteps}, Validate(&ts).Sections())
}

func TestIsAbsoluteURL(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"https://example.com", true},
		{"http://localhost:8080/path?q=1", true},
		{"mailto:qa@example.com", true},
		{"", false},
		{"example.com", false},
		{"/relative/path", false},
		{"https://", false},
		{"https://exa mple.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAbsoluteURL(tt.in))
		})
	}
}
