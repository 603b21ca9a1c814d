package testutil

import (
	"testing"

	"github.com/hairizuan-noorazman/scenario-builder/scenario"
	"gorm.io/gorm"
)

// CreateFixture creates a fixture in the database.
func CreateFixture(t *testing.T, db *gorm.DB, model interface{}) {
	t.Helper()
	if err := db.Create(model).Error; err != nil {
		t.Fatalf("failed to create fixture: %v", err)
	}
}

// LoginScenario returns a valid single-step scenario.
func LoginScenario() scenario.TestScenario {
	return scenario.TestScenario{
		AgentConfig: scenario.AgentConfig{
			StartPageURL: "https://example.com",
			ProjectName:  "Proj_1",
			ScenarioName: "Login Test",
		},
		Steps: []scenario.Step{
			{
				ID:              "s1",
				StepNumber:      1,
				ActionType:      "Click Login",
				ExpectedResults: []scenario.ExpectedResult{{Description: "User is logged in"}},
				Parameters:      []scenario.Parameter{{Key: "user", Value: "bob"}},
			},
		},
	}
}

// CheckoutScenario returns a valid multi-step scenario with model settings
// and a secret parameter.
func CheckoutScenario() scenario.TestScenario {
	return scenario.TestScenario{
		AgentConfig: scenario.AgentConfig{
			CodeWriterModel:      "claude-3-opus-20240229",
			HTMLAssistantModel:   "gpt-4o",
			ProgressCheckerModel: "claude-3-haiku-20240307",
			StartPageURL:         "https://shop.example.com/cart",
			ProjectName:          "Shop",
			ScenarioName:         "Checkout",
		},
		Steps: []scenario.Step{
			{
				ID:              "s1",
				StepNumber:      1,
				ActionType:      "navigate",
				ExpectedResults: []scenario.ExpectedResult{{Description: "Cart is shown"}},
				Parameters:      []scenario.Parameter{{Key: "url", Value: "/cart"}},
			},
			{
				ID:         "s2",
				StepNumber: 2,
				ActionType: "type",
				ExpectedResults: []scenario.ExpectedResult{
					{Description: "Card accepted"},
					{Description: "Order id displayed"},
				},
				Parameters: []scenario.Parameter{
					{Key: "card", Value: "4242424242424242", IsSecret: true},
					{Key: "name", Value: "Bob"},
				},
			},
			{
				ID:              "s3",
				StepNumber:      3,
				ActionType:      "assert",
				ExpectedResults: []scenario.ExpectedResult{},
				Parameters:      []scenario.Parameter{},
			},
		},
	}
}
