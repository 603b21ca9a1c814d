package payload

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hairizuan-noorazman/scenario-builder/scenario"
)

var (
	// ErrImport is the parent of every import failure.
	ErrImport = errors.New("import failed")

	// ErrMalformedJSON is returned when the input is not a JSON object.
	ErrMalformedJSON = fmt.Errorf("%w: malformed JSON", ErrImport)

	// ErrUnrecognizedFormat is returned when the input carries neither the
	// wire nor the UI sections.
	ErrUnrecognizedFormat = fmt.Errorf("%w: missing agent configuration and steps", ErrImport)
)

// Format identifies the shape of an imported document.
type Format string

const (
	FormatUnknown Format = ""
	FormatWire    Format = "wire"
	FormatUI      Format = "ui"
)

// Document is a decoded import. Exactly one of Wire and UI is set, matching
// Format.
type Document struct {
	Format Format
	Wire   *Payload
	UI     *scenario.TestScenario
}

// DetectFormat inspects the top-level keys of a JSON object. The wire shape
// wins when a document carries keys of both shapes.
func DetectFormat(fields map[string]json.RawMessage) Format {
	if _, ok := fields["start_page"]; ok {
		return FormatWire
	}
	if _, ok := fields["case_steps"]; ok {
		return FormatWire
	}
	if _, ok := fields["agentConfig"]; ok {
		return FormatUI
	}
	if _, ok := fields["steps"]; ok {
		return FormatUI
	}
	return FormatUnknown
}

// utf8BOM is written at the start of files by some Windows editors.
var utf8BOM = []byte("\xEF\xBB\xBF")

// Decode parses data into a Document.
func Decode(data []byte) (*Document, error) {
	data = bytes.TrimSpace(bytes.TrimPrefix(data, utf8BOM))
	if len(data) == 0 || data[0] != '{' {
		return nil, ErrMalformedJSON
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}

	switch DetectFormat(fields) {
	case FormatWire:
		var p Payload
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
		}
		return &Document{Format: FormatWire, Wire: &p}, nil

	case FormatUI:
		var ts scenario.TestScenario
		if err := json.Unmarshal(data, &ts); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
		}
		return &Document{Format: FormatUI, UI: &ts}, nil

	default:
		return nil, ErrUnrecognizedFormat
	}
}

// Scenario converts the document with the converter for its format.
func (d *Document) Scenario() (scenario.TestScenario, error) {
	switch {
	case d.Format == FormatWire && d.Wire != nil:
		return FromWire(*d.Wire), nil
	case d.Format == FormatUI && d.UI != nil:
		return FromUI(*d.UI), nil
	default:
		return scenario.TestScenario{}, ErrUnrecognizedFormat
	}
}

// Import decodes either shape into a scenario.
func Import(data []byte) (scenario.TestScenario, error) {
	doc, err := Decode(data)
	if err != nil {
		return scenario.TestScenario{}, err
	}
	return doc.Scenario()
}

// Marshal encodes the wire payload of a scenario.
func Marshal(ts scenario.TestScenario) ([]byte, error) {
	data, err := json.Marshal(ToWire(ts))
	if err != nil {
		return nil, fmt.Errorf("failed to encode payload: %w", err)
	}
	return data, nil
}
