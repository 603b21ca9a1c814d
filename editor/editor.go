package editor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/hairizuan-noorazman/scenario-builder/confirm"
	"github.com/hairizuan-noorazman/scenario-builder/draft"
	"github.com/hairizuan-noorazman/scenario-builder/gateway"
	"github.com/hairizuan-noorazman/scenario-builder/internal/uuidutil"
	"github.com/hairizuan-noorazman/scenario-builder/logger"
	"github.com/hairizuan-noorazman/scenario-builder/payload"
	"github.com/hairizuan-noorazman/scenario-builder/scenario"
	"github.com/hairizuan-noorazman/scenario-builder/steplist"
)

const (
	// ConfirmSubmitMessage is asked before a scenario is sent.
	ConfirmSubmitMessage = "Are you sure you want to submit this test scenario?"

	// ConfirmClearMessage is asked before every step is removed.
	ConfirmClearMessage = "Are you sure you want to clear all steps? This cannot be undone."
)

var (
	// ErrNotConfirmed is returned when the user declines a confirmation.
	ErrNotConfirmed = errors.New("action cancelled")

	// ErrNoDraftStore is returned by draft operations when no store is configured.
	ErrNoDraftStore = errors.New("draft storage is not configured")

	// ErrNoSubmitter is returned by Submit when no gateway is configured.
	ErrNoSubmitter = errors.New("submission endpoint is not configured")
)

// Submitter sends a scenario to the code-generation service.
type Submitter interface {
	Submit(ctx context.Context, ts scenario.TestScenario) (*gateway.Result, error)
}

// State is a snapshot of the editor for display.
type State struct {
	Scenario    scenario.TestScenario `json:"scenario"`
	Steps       []steplist.StepView   `json:"steps"`
	Errors      []scenario.FieldError `json:"errors"`
	Sections    []string              `json:"sections"`
	Valid       bool                  `json:"valid"`
	Submitting  bool                  `json:"submitting"`
	AllExpanded bool                  `json:"allExpanded"`
}

// Editor is one user's scenario form: the agent configuration, the step
// list, and the draft, import and submission actions around them. All
// methods are safe for concurrent use.
type Editor struct {
	mu           sync.Mutex
	config       scenario.AgentConfig
	steps        *steplist.Controller
	ids          uuidutil.Generator
	drafts       draft.Store
	submitter    Submitter
	validateOpts []scenario.ValidateOption
	logger       logger.Logger
	submitting   atomic.Bool
}

// Option configures an Editor.
type Option func(*Editor)

// WithDraftStore enables the draft actions.
func WithDraftStore(store draft.Store) Option {
	return func(e *Editor) {
		e.drafts = store
	}
}

// WithSubmitter enables Submit.
func WithSubmitter(s Submitter) Option {
	return func(e *Editor) {
		e.submitter = s
	}
}

// WithValidateOptions adds validation rules, e.g. scenario.WithActionCatalog.
func WithValidateOptions(opts ...scenario.ValidateOption) Option {
	return func(e *Editor) {
		e.validateOpts = append(e.validateOpts, opts...)
	}
}

// WithIDGenerator sets the generator used for step and field ids.
func WithIDGenerator(gen uuidutil.Generator) Option {
	return func(e *Editor) {
		e.ids = gen
	}
}

// New creates an editor holding an empty scenario.
func New(log logger.Logger, opts ...Option) *Editor {
	e := &Editor{
		ids:    uuidutil.Random{},
		logger: log,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.steps = e.newController()
	return e
}

func (e *Editor) newController() *steplist.Controller {
	return steplist.New(steplist.WithIDGenerator(e.ids))
}

// snapshot must be called with e.mu held.
func (e *Editor) snapshot() scenario.TestScenario {
	return scenario.TestScenario{
		AgentConfig: e.config,
		Steps:       e.steps.Steps(),
	}
}

// Scenario returns a detached copy of the current scenario.
func (e *Editor) Scenario() scenario.TestScenario {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshot()
}

// State returns the scenario together with its validation and view state.
func (e *Editor) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	ts := e.snapshot()
	result := scenario.Validate(&ts, e.validateOpts...)
	errs := result.Errors
	if errs == nil {
		errs = []scenario.FieldError{}
	}
	sections := result.Sections()
	if sections == nil {
		sections = []string{}
	}

	return State{
		Scenario:    ts,
		Steps:       e.steps.Views(),
		Errors:      errs,
		Sections:    sections,
		Valid:       result.Valid(),
		Submitting:  e.submitting.Load(),
		AllExpanded: e.steps.AllExpanded(),
	}
}

// Validate checks the current scenario against the submission rules.
func (e *Editor) Validate() *scenario.ValidationResult {
	ts := e.Scenario()
	return scenario.Validate(&ts, e.validateOpts...)
}

// CanSubmit reports whether the scenario is valid and no submission is
// outstanding.
func (e *Editor) CanSubmit() bool {
	return !e.submitting.Load() && e.Validate().Valid()
}

// Submitting reports whether a submission is outstanding.
func (e *Editor) Submitting() bool {
	return e.submitting.Load()
}

// UpdateAgentConfig applies setters to the agent configuration and returns
// the validation of the result. A failing setter leaves the configuration
// untouched.
func (e *Editor) UpdateAgentConfig(setters ...scenario.AgentConfigSetter) (*scenario.ValidationResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	cfg := e.config
	if err := cfg.Apply(setters...); err != nil {
		return nil, err
	}
	e.config = cfg

	ts := e.snapshot()
	return scenario.Validate(&ts, e.validateOpts...), nil
}

// EditSteps runs fn with exclusive access to the step list and returns the
// validation of the result.
func (e *Editor) EditSteps(fn func(c *steplist.Controller) error) (*scenario.ValidationResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := fn(e.steps); err != nil {
		return nil, err
	}

	ts := e.snapshot()
	return scenario.Validate(&ts, e.validateOpts...), nil
}

// ClearSteps removes every step once the user confirms.
func (e *Editor) ClearSteps(ctx context.Context, c confirm.Confirmer) error {
	ok, err := c.Confirm(ctx, ConfirmClearMessage)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotConfirmed
	}

	e.mu.Lock()
	n := e.steps.Len()
	e.steps.ClearAll()
	e.mu.Unlock()

	e.logger.Info(ctx, "steps cleared", map[string]interface{}{
		"removed": n,
	})
	return nil
}

// Reset replaces the form with an empty scenario.
func (e *Editor) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.config = scenario.AgentConfig{}
	e.steps = e.newController()
}

// replace swaps in a complete scenario.
func (e *Editor) replace(ts scenario.TestScenario) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.config = ts.AgentConfig
	c := e.newController()
	c.Load(ts.Steps)
	e.steps = c
}

// SaveDraft stores the current scenario under name.
func (e *Editor) SaveDraft(ctx context.Context, name string) (draft.Entry, error) {
	if e.drafts == nil {
		return draft.Entry{}, ErrNoDraftStore
	}
	if err := draft.ValidateName(name); err != nil {
		return draft.Entry{}, err
	}
	return e.drafts.Save(ctx, name, e.Scenario())
}

// ListDrafts returns the stored drafts.
func (e *Editor) ListDrafts(ctx context.Context) ([]draft.Entry, error) {
	if e.drafts == nil {
		return nil, ErrNoDraftStore
	}
	return e.drafts.List(ctx)
}

// LoadDraft replaces the form with a stored draft. On any error the form is
// left as it was.
func (e *Editor) LoadDraft(ctx context.Context, key string) error {
	if e.drafts == nil {
		return ErrNoDraftStore
	}

	ts, err := e.drafts.Load(ctx, key)
	if err != nil {
		return err
	}

	e.replace(ts)
	e.logger.Info(ctx, "draft loaded", map[string]interface{}{
		"key":   key,
		"steps": len(ts.Steps),
	})
	return nil
}

// DeleteDraft removes a stored draft.
func (e *Editor) DeleteDraft(ctx context.Context, key string) error {
	if e.drafts == nil {
		return ErrNoDraftStore
	}
	return e.drafts.Delete(ctx, key)
}

// Import replaces the form with a wire- or UI-shaped JSON document. On any
// error the form is left as it was.
func (e *Editor) Import(ctx context.Context, data []byte) (payload.Format, error) {
	doc, err := payload.Decode(data)
	if err != nil {
		return payload.FormatUnknown, err
	}
	ts, err := doc.Scenario()
	if err != nil {
		return payload.FormatUnknown, err
	}

	e.replace(ts)
	e.logger.Info(ctx, "scenario imported", map[string]interface{}{
		"format": string(doc.Format),
		"steps":  len(ts.Steps),
	})
	return doc.Format, nil
}

// Export encodes the current scenario in the given shape.
func (e *Editor) Export(format payload.Format) ([]byte, error) {
	ts := e.Scenario()
	switch format {
	case payload.FormatWire:
		return payload.Marshal(ts)
	case payload.FormatUI, payload.FormatUnknown:
		data, err := json.Marshal(ts)
		if err != nil {
			return nil, fmt.Errorf("failed to encode scenario: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
}

// Submit validates the scenario, asks for confirmation and sends it. The
// form stays editable while the request is outstanding; a second Submit in
// that window fails with gateway.ErrSubmissionInProgress.
func (e *Editor) Submit(ctx context.Context, c confirm.Confirmer) (*gateway.Result, error) {
	if e.submitter == nil {
		return nil, ErrNoSubmitter
	}
	if e.submitting.Load() {
		return nil, gateway.ErrSubmissionInProgress
	}

	ts := e.Scenario()
	if result := scenario.Validate(&ts, e.validateOpts...); !result.Valid() {
		return nil, result.Err()
	}

	ok, err := c.Confirm(ctx, ConfirmSubmitMessage)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotConfirmed
	}

	if !e.submitting.CompareAndSwap(false, true) {
		return nil, gateway.ErrSubmissionInProgress
	}
	defer e.submitting.Store(false)

	return e.submitter.Submit(ctx, ts)
}
