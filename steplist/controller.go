package steplist

import (
	"fmt"

	"github.com/hairizuan-noorazman/scenario-builder/internal/uuidutil"
	"github.com/hairizuan-noorazman/scenario-builder/scenario"
)

// titleMaxLength bounds the header text shown for a step.
const titleMaxLength = 150

// entry is the controller's internal representation of a step. The step
// number is not stored; it is always derived from the entry's position.
type entry struct {
	id              string
	actionType      string
	parameters      fieldList[scenario.Parameter]
	expectedResults fieldList[scenario.ExpectedResult]
}

// StepView is a step together with the ids of its nested fields and its
// expand state, as needed by an editing surface.
type StepView struct {
	scenario.Step
	Title           string                           `json:"title"`
	Expanded        bool                             `json:"expanded"`
	ParameterFields []Field[scenario.Parameter]      `json:"parameterFields"`
	ResultFields    []Field[scenario.ExpectedResult] `json:"expectedResultFields"`
}

// Controller owns the ordered step collection of a scenario.
// It is not safe for concurrent use; callers serialize access.
type Controller struct {
	ids      uuidutil.Generator
	entries  []*entry
	expanded map[string]bool
	issued   map[string]bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithIDGenerator replaces the default random id generator.
func WithIDGenerator(gen uuidutil.Generator) Option {
	return func(c *Controller) {
		c.ids = gen
	}
}

// New creates an empty controller.
func New(opts ...Option) *Controller {
	c := &Controller{
		ids:      uuidutil.Random{},
		expanded: make(map[string]bool),
		issued:   make(map[string]bool),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// newID returns an id that has never been handed out by this controller,
// including ids that arrived through Load.
func (c *Controller) newID() string {
	for {
		id := c.ids.NewID()
		if !c.issued[id] {
			c.issued[id] = true
			return id
		}
	}
}

// Len returns the number of steps.
func (c *Controller) Len() int {
	return len(c.entries)
}

// AddStep appends an empty, expanded step and returns it.
func (c *Controller) AddStep() scenario.Step {
	e := &entry{id: c.newID()}
	c.entries = append(c.entries, e)
	c.expanded[e.id] = true
	return c.toStep(len(c.entries)-1, e)
}

// RemoveStep deletes the step at index. It reports false and does nothing
// when the index is out of range.
func (c *Controller) RemoveStep(index int) bool {
	if !inRange(index, len(c.entries)) {
		return false
	}
	delete(c.expanded, c.entries[index].id)
	c.entries = append(c.entries[:index], c.entries[index+1:]...)
	return true
}

// MoveStep moves the step at from to position to. It reports false and
// leaves the order untouched when the indices are equal or out of range.
func (c *Controller) MoveStep(from, to int) bool {
	if from == to || !inRange(from, len(c.entries)) || !inRange(to, len(c.entries)) {
		return false
	}
	c.entries = Reorder(c.entries, from, to)
	return true
}

// Drop applies the outcome of a drag gesture. Drops outside the list and
// drops back onto the source position are ignored.
func (c *Controller) Drop(r DragResult) bool {
	from, to, ok := r.Move()
	if !ok {
		return false
	}
	return c.MoveStep(from, to)
}

// ClearAll removes every step and forgets all expand state. Callers are
// expected to have obtained the user's confirmation first.
func (c *Controller) ClearAll() {
	c.entries = nil
	c.expanded = make(map[string]bool)
}

// ToggleExpand flips the expand state of a step and returns the new state.
func (c *Controller) ToggleExpand(stepID string) (bool, error) {
	if _, err := c.find(stepID); err != nil {
		return false, err
	}
	c.expanded[stepID] = !c.expanded[stepID]
	return c.expanded[stepID], nil
}

// ToggleExpandAll expands every step when at least one is collapsed,
// otherwise collapses all of them. It returns the new common state.
func (c *Controller) ToggleExpandAll() bool {
	target := !c.AllExpanded()
	for _, e := range c.entries {
		c.expanded[e.id] = target
	}
	return target
}

// AllExpanded reports whether every step is expanded. An empty list counts
// as expanded.
func (c *Controller) AllExpanded() bool {
	for _, e := range c.entries {
		if !c.expanded[e.id] {
			return false
		}
	}
	return true
}

// IsExpanded reports the expand state of a step.
func (c *Controller) IsExpanded(stepID string) bool {
	return c.expanded[stepID]
}

// SetActionType changes the action of a step.
func (c *Controller) SetActionType(stepID, actionType string) error {
	e, err := c.find(stepID)
	if err != nil {
		return err
	}
	e.actionType = actionType
	return nil
}

// AddParameter appends a parameter to a step and returns its field id.
func (c *Controller) AddParameter(stepID string, p scenario.Parameter) (string, error) {
	e, err := c.find(stepID)
	if err != nil {
		return "", err
	}
	id := c.newID()
	e.parameters.add(id, p)
	return id, nil
}

// UpdateParameter replaces the parameter with the given field id.
func (c *Controller) UpdateParameter(stepID, fieldID string, p scenario.Parameter) error {
	e, err := c.find(stepID)
	if err != nil {
		return err
	}
	if !e.parameters.update(fieldID, p) {
		return fmt.Errorf("%w: parameter %s", scenario.ErrFieldNotFound, fieldID)
	}
	return nil
}

// RemoveParameter deletes the parameter with the given field id.
func (c *Controller) RemoveParameter(stepID, fieldID string) error {
	e, err := c.find(stepID)
	if err != nil {
		return err
	}
	if !e.parameters.remove(fieldID) {
		return fmt.Errorf("%w: parameter %s", scenario.ErrFieldNotFound, fieldID)
	}
	return nil
}

// AddExpectedResult appends an expected result to a step and returns its field id.
func (c *Controller) AddExpectedResult(stepID string, r scenario.ExpectedResult) (string, error) {
	e, err := c.find(stepID)
	if err != nil {
		return "", err
	}
	id := c.newID()
	e.expectedResults.add(id, r)
	return id, nil
}

// UpdateExpectedResult replaces the expected result with the given field id.
func (c *Controller) UpdateExpectedResult(stepID, fieldID string, r scenario.ExpectedResult) error {
	e, err := c.find(stepID)
	if err != nil {
		return err
	}
	if !e.expectedResults.update(fieldID, r) {
		return fmt.Errorf("%w: expected result %s", scenario.ErrFieldNotFound, fieldID)
	}
	return nil
}

// RemoveExpectedResult deletes the expected result with the given field id.
func (c *Controller) RemoveExpectedResult(stepID, fieldID string) error {
	e, err := c.find(stepID)
	if err != nil {
		return err
	}
	if !e.expectedResults.remove(fieldID) {
		return fmt.Errorf("%w: expected result %s", scenario.ErrFieldNotFound, fieldID)
	}
	return nil
}

// Load replaces the whole collection with steps. Existing ids are kept when
// present and unique; missing or duplicate ids are replaced with fresh ones.
// Loaded steps start expanded and are renumbered by position.
func (c *Controller) Load(steps []scenario.Step) {
	c.entries = make([]*entry, 0, len(steps))
	c.expanded = make(map[string]bool, len(steps))

	seen := make(map[string]bool, len(steps))
	for _, s := range steps {
		id := s.ID
		if id == "" || seen[id] {
			id = c.newID()
		}
		seen[id] = true
		c.issued[id] = true

		e := &entry{id: id, actionType: s.ActionType}
		for _, p := range s.Parameters {
			e.parameters.add(c.newID(), p)
		}
		for _, r := range s.ExpectedResults {
			e.expectedResults.add(c.newID(), r)
		}
		c.entries = append(c.entries, e)
		c.expanded[id] = true
	}
}

// Steps returns a detached snapshot of the steps with step numbers matching
// their 1-based positions.
func (c *Controller) Steps() []scenario.Step {
	steps := make([]scenario.Step, len(c.entries))
	for i, e := range c.entries {
		steps[i] = c.toStep(i, e)
	}
	return steps
}

// Step returns the step with the given id.
func (c *Controller) Step(stepID string) (scenario.Step, error) {
	for i, e := range c.entries {
		if e.id == stepID {
			return c.toStep(i, e), nil
		}
	}
	return scenario.Step{}, fmt.Errorf("%w: %s", scenario.ErrStepNotFound, stepID)
}

// IndexOf returns the position of a step, or -1.
func (c *Controller) IndexOf(stepID string) int {
	for i, e := range c.entries {
		if e.id == stepID {
			return i
		}
	}
	return -1
}

// Views returns the steps with field ids and expand state.
func (c *Controller) Views() []StepView {
	views := make([]StepView, len(c.entries))
	for i, e := range c.entries {
		views[i] = StepView{
			Step:            c.toStep(i, e),
			Title:           Title(e.actionType),
			Expanded:        c.expanded[e.id],
			ParameterFields: e.parameters.snapshot(),
			ResultFields:    e.expectedResults.snapshot(),
		}
	}
	return views
}

func (c *Controller) find(stepID string) (*entry, error) {
	for _, e := range c.entries {
		if e.id == stepID {
			return e, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", scenario.ErrStepNotFound, stepID)
}

func (c *Controller) toStep(index int, e *entry) scenario.Step {
	return scenario.Step{
		ID:              e.id,
		StepNumber:      index + 1,
		ActionType:      e.actionType,
		ExpectedResults: e.expectedResults.values(),
		Parameters:      e.parameters.values(),
	}
}

// Title is the header text for a step: its action, truncated, or "New Step"
// while the action is empty.
func Title(actionType string) string {
	if actionType == "" {
		return "New Step"
	}
	runes := []rune(actionType)
	if len(runes) > titleMaxLength {
		return string(runes[:titleMaxLength]) + "..."
	}
	return actionType
}
