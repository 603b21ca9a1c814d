package scenario

import "strings"

// AgentConfigSetter is a function that updates an agent configuration field.
type AgentConfigSetter func(*AgentConfig) error

// SetStartPageURL returns an AgentConfigSetter that sets the start page URL.
func SetStartPageURL(url string) AgentConfigSetter {
	return func(c *AgentConfig) error {
		c.StartPageURL = strings.TrimSpace(url)
		return nil
	}
}

// SetProjectName returns an AgentConfigSetter that sets the project name.
func SetProjectName(name string) AgentConfigSetter {
	return func(c *AgentConfig) error {
		c.ProjectName = name
		return nil
	}
}

// SetScenarioName returns an AgentConfigSetter that sets the scenario name.
func SetScenarioName(name string) AgentConfigSetter {
	return func(c *AgentConfig) error {
		c.ScenarioName = name
		return nil
	}
}

// SetCodeWriterModel returns an AgentConfigSetter that sets the code writer model.
// An empty model clears the field.
func SetCodeWriterModel(model string) AgentConfigSetter {
	return func(c *AgentConfig) error {
		c.CodeWriterModel = model
		return nil
	}
}

// SetHTMLAssistantModel returns an AgentConfigSetter that sets the HTML assistant model.
func SetHTMLAssistantModel(model string) AgentConfigSetter {
	return func(c *AgentConfig) error {
		c.HTMLAssistantModel = model
		return nil
	}
}

// SetProgressCheckerModel returns an AgentConfigSetter that sets the progress checker model.
func SetProgressCheckerModel(model string) AgentConfigSetter {
	return func(c *AgentConfig) error {
		c.ProgressCheckerModel = model
		return nil
	}
}

// Apply runs the setters against the config in order, stopping at the first error.
func (c *AgentConfig) Apply(setters ...AgentConfigSetter) error {
	for _, setter := range setters {
		if err := setter(c); err != nil {
			return err
		}
	}
	return nil
}
