package scenario

import (
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"
)

const (
	// SectionAgentConfig is the top-level section holding the agent configuration fields.
	SectionAgentConfig = "agentConfig"

	// SectionSteps is the top-level section holding the step list.
	SectionSteps = "steps"
)

const (
	msgInvalidURL            = "Please enter a valid URL"
	msgProjectNameRequired   = "Project name is required"
	msgProjectNamePattern    = "Project name must contain only alphanumeric characters, spaces, hyphens, and underscores"
	msgScenarioNameRequired  = "Scenario name is required"
	msgScenarioNamePattern   = "Scenario name must contain only alphanumeric characters, spaces, hyphens, and underscores"
	msgStepsRequired         = "At least one step is required"
	msgActionTypeRequired    = "Action type is required"
	msgParameterKeyRequired  = "Parameter key is required"
	msgParameterValueMissing = "Parameter value is required"
	msgExpectedResultMissing = "Expected result description is required"
)

var namePattern = regexp.MustCompile(`^[a-zA-Z0-9_\- ]+$`)

// FieldError is a validation failure attached to a single field path,
// e.g. "agentConfig.projectName" or "steps.1.parameters.0.key".
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// ValidationResult holds every field error found in a scenario.
type ValidationResult struct {
	Errors []FieldError `json:"errors"`
}

// Valid reports whether no field failed.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// Field returns the first message recorded for path, if any.
func (r *ValidationResult) Field(path string) (string, bool) {
	for _, e := range r.Errors {
		if e.Path == path {
			return e.Message, true
		}
	}
	return "", false
}

// Sections lists the top-level sections with at least one error, in a stable order.
func (r *ValidationResult) Sections() []string {
	seen := make(map[string]bool)
	for _, e := range r.Errors {
		section := e.Path
		if i := strings.IndexByte(section, '.'); i >= 0 {
			section = section[:i]
		}
		seen[section] = true
	}

	sections := make([]string, 0, len(seen))
	for s := range seen {
		sections = append(sections, s)
	}
	sort.Strings(sections)
	return sections
}

// Err returns nil for a valid result, otherwise an error wrapping ErrValidation
// that names the first failing field.
func (r *ValidationResult) Err() error {
	if r.Valid() {
		return nil
	}
	if len(r.Errors) == 1 {
		return fmt.Errorf("%w: %s", ErrValidation, r.Errors[0])
	}
	return fmt.Errorf("%w: %s (and %d more)", ErrValidation, r.Errors[0], len(r.Errors)-1)
}

func (r *ValidationResult) add(path, message string) {
	r.Errors = append(r.Errors, FieldError{Path: path, Message: message})
}

// ValidateOption tunes validation.
type ValidateOption func(*validateOptions)

type validateOptions struct {
	actions map[string]bool
}

// WithActionCatalog restricts step action types to the given options.
func WithActionCatalog(opts []Option) ValidateOption {
	return func(o *validateOptions) {
		o.actions = OptionValues(opts)
	}
}

// check inspects a single string value and returns a message when it fails.
type check func(value string) (string, bool)

func required(message string) check {
	return func(value string) (string, bool) {
		if value == "" {
			return message, false
		}
		return "", true
	}
}

func matches(pattern *regexp.Regexp, message string) check {
	return func(value string) (string, bool) {
		if !pattern.MatchString(value) {
			return message, false
		}
		return "", true
	}
}

func absoluteURL(message string) check {
	return func(value string) (string, bool) {
		if !IsAbsoluteURL(value) {
			return message, false
		}
		return "", true
	}
}

// agentConfigRule binds a field path to its accessor and checks. Checks run in
// order and stop at the first failure so each field reports one message.
type agentConfigRule struct {
	path   string
	value  func(*AgentConfig) string
	checks []check
}

var agentConfigRules = []agentConfigRule{
	{
		path:   "agentConfig.startPageUrl",
		value:  func(c *AgentConfig) string { return c.StartPageURL },
		checks: []check{absoluteURL(msgInvalidURL)},
	},
	{
		path:   "agentConfig.projectName",
		value:  func(c *AgentConfig) string { return c.ProjectName },
		checks: []check{required(msgProjectNameRequired), matches(namePattern, msgProjectNamePattern)},
	},
	{
		path:   "agentConfig.scenarioName",
		value:  func(c *AgentConfig) string { return c.ScenarioName },
		checks: []check{required(msgScenarioNameRequired), matches(namePattern, msgScenarioNamePattern)},
	},
}

// Validate checks the whole scenario, including the minimum step count required
// for submission.
func Validate(ts *TestScenario, opts ...ValidateOption) *ValidationResult {
	result := ValidateDraft(ts, opts...)
	if len(ts.Steps) == 0 {
		result.add(SectionSteps, msgStepsRequired)
	}
	return result
}

// ValidateDraft checks every field rule but allows an empty step list, which
// is acceptable while the scenario is still being edited.
func ValidateDraft(ts *TestScenario, opts ...ValidateOption) *ValidationResult {
	var o validateOptions
	for _, opt := range opts {
		opt(&o)
	}

	result := &ValidationResult{Errors: []FieldError{}}
	validateAgentConfig(&ts.AgentConfig, result)
	for i := range ts.Steps {
		validateStep(&ts.Steps[i], i, &o, result)
	}
	return result
}

func validateAgentConfig(cfg *AgentConfig, result *ValidationResult) {
	for _, rule := range agentConfigRules {
		value := rule.value(cfg)
		for _, c := range rule.checks {
			if msg, ok := c(value); !ok {
				result.add(rule.path, msg)
				break
			}
		}
	}
}

func validateStep(step *Step, index int, o *validateOptions, result *ValidationResult) {
	prefix := fmt.Sprintf("steps.%d", index)

	switch {
	case step.ActionType == "":
		result.add(prefix+".actionType", msgActionTypeRequired)
	case o.actions != nil && !o.actions[step.ActionType]:
		result.add(prefix+".actionType", fmt.Sprintf("Unknown action type %q", step.ActionType))
	}

	for j, r := range step.ExpectedResults {
		if r.Description == "" {
			result.add(fmt.Sprintf("%s.expectedResults.%d.description", prefix, j), msgExpectedResultMissing)
		}
	}

	for j, p := range step.Parameters {
		if p.Key == "" {
			result.add(fmt.Sprintf("%s.parameters.%d.key", prefix, j), msgParameterKeyRequired)
		}
		if p.Value == "" {
			result.add(fmt.Sprintf("%s.parameters.%d.value", prefix, j), msgParameterValueMissing)
		}
	}
}

// IsAbsoluteURL reports whether s parses as an absolute URL with a scheme and
// either a host or an opaque part.
func IsAbsoluteURL(s string) bool {
	if s == "" || strings.ContainsAny(s, " \t\n") {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	if u.Scheme == "" {
		return false
	}
	return u.Host != "" || u.Opaque != ""
}
