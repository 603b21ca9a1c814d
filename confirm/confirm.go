package confirm

import (
	"context"
	"errors"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// Confirmer asks the user a yes/no question before a destructive or final
// action. A false answer aborts the pending action.
type Confirmer interface {
	Confirm(ctx context.Context, message string) (bool, error)
}

// Static answers every question with a fixed value. It backs --yes flags and
// requests that carry their confirmation up front.
type Static bool

// Confirm returns the fixed answer.
func (s Static) Confirm(ctx context.Context, message string) (bool, error) {
	return bool(s), nil
}

// Func adapts a function to the Confirmer interface.
type Func func(ctx context.Context, message string) (bool, error)

// Confirm calls f.
func (f Func) Confirm(ctx context.Context, message string) (bool, error) {
	return f(ctx, message)
}

// askOne is swapped out in tests.
var askOne = survey.AskOne

// Prompt asks on the terminal.
type Prompt struct {
	// Default is the answer preselected in the prompt.
	Default bool
}

// Confirm shows a survey confirmation. Interrupting the prompt counts as a
// "no", the same as closing a dialog.
func (p Prompt) Confirm(ctx context.Context, message string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	answer := false
	prompt := &survey.Confirm{Message: message, Default: p.Default}
	if err := askOne(prompt, &answer); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return false, nil
		}
		return false, err
	}
	return answer, nil
}
