package scenario

// Option is a selectable value with a display name.
type Option struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ModelOptions lists the models offered for the agent model fields.
var ModelOptions = []Option{
	{Name: "Claude 3 Opus", Value: "claude-3-opus-20240229"},
	{Name: "Claude 3 Sonnet", Value: "claude-3-sonnet-20240229"},
	{Name: "Claude 3 Haiku", Value: "claude-3-haiku-20240307"},
	{Name: "GPT-4o", Value: "gpt-4o"},
	{Name: "GPT-4", Value: "gpt-4"},
	{Name: "GPT-3.5 Turbo", Value: "gpt-3.5-turbo"},
}

// ActionTypes lists the action types offered in the constrained step editor.
var ActionTypes = []Option{
	{Name: "Navigate", Value: "navigate"},
	{Name: "Click", Value: "click"},
	{Name: "Type", Value: "type"},
	{Name: "Wait", Value: "wait"},
	{Name: "Assert", Value: "assert"},
	{Name: "Custom", Value: "custom"},
}

// OptionValues returns the set of values in opts.
func OptionValues(opts []Option) map[string]bool {
	values := make(map[string]bool, len(opts))
	for _, o := range opts {
		values[o.Value] = true
	}
	return values
}
