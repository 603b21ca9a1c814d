package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestScenario_Clone(t *testing.T) {
	original := validScenario()
	clone := original.Clone()

	clone.Steps[0].Parameters[0].Value = "alice"
	clone.Steps[0].ExpectedResults = append(clone.Steps[0].ExpectedResults, ExpectedResult{Description: "x"})
	clone.AgentConfig.ProjectName = "Other"

	assert.Equal(t, "bob", original.Steps[0].Parameters[0].Value)
	assert.Len(t, original.Steps[0].ExpectedResults, 1)
	assert.Equal(t, "Proj_1", original.AgentConfig.ProjectName)
}

func TestTestScenario_Normalize(t *testing.T) {
	ts := TestScenario{
		Steps: []Step{
			{ID: "b", StepNumber: 7},
			{ID: "a", StepNumber: 2},
		},
	}
	ts.Normalize()

	require.Len(t, ts.Steps, 2)
	for i, s := range ts.Steps {
		assert.Equal(t, i+1, s.StepNumber)
		assert.NotNil(t, s.Parameters)
		assert.NotNil(t, s.ExpectedResults)
	}
	assert.Equal(t, "b", ts.Steps[0].ID)

	empty := TestScenario{}
	empty.Normalize()
	assert.NotNil(t, empty.Steps)
}

func TestAgentConfig_Apply(t *testing.T) {
	var cfg AgentConfig
	err := cfg.Apply(
		SetStartPageURL("  https://example.com  "),
		SetProjectName("Proj"),
		SetScenarioName("Checkout"),
		SetCodeWriterModel("gpt-4o"),
		SetHTMLAssistantModel("claude-3-haiku-20240307"),
		SetProgressCheckerModel(""),
	)
	require.NoError(t, err)

	assert.Equal(t, "https://example.com", cfg.StartPageURL)
	assert.Equal(t, "Proj", cfg.ProjectName)
	assert.Equal(t, "Checkout", cfg.ScenarioName)
	assert.Equal(t, "gpt-4o", cfg.CodeWriterModel)
	assert.Equal(t, "claude-3-haiku-20240307", cfg.HTMLAssistantModel)
	assert.Empty(t, cfg.ProgressCheckerModel)
}

func TestOptionValues(t *testing.T) {
	values := OptionValues(ActionTypes)
	assert.True(t, values["navigate"])
	assert.True(t, values["custom"])
	assert.False(t, values["Navigate"])
	assert.Len(t, values, len(ActionTypes))
}
