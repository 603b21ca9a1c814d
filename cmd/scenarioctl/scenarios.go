package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/hairizuan-noorazman/scenario-builder/payload"
	"github.com/hairizuan-noorazman/scenario-builder/scenario"
	"github.com/spf13/cobra"
)

// readScenario loads a wire- or UI-shaped scenario document from path.
func readScenario(path string) (scenario.TestScenario, payload.Format, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return scenario.TestScenario{}, payload.FormatUnknown, fmt.Errorf("failed to read %s: %w", path, err)
	}

	doc, err := payload.Decode(data)
	if err != nil {
		return scenario.TestScenario{}, payload.FormatUnknown, err
	}
	ts, err := doc.Scenario()
	if err != nil {
		return scenario.TestScenario{}, payload.FormatUnknown, err
	}
	return ts, doc.Format, nil
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE",
		Short: "Check a scenario against the submission rules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ts, _, err := readScenario(args[0])
			if err != nil {
				return err
			}

			result := scenario.Validate(&ts, validateOptions()...)
			out := cmd.OutOrStdout()

			if flagJSON {
				printJSON(out, result)
			} else if result.Valid() {
				printMessage(out, "Scenario is valid")
			} else {
				var rows [][]string
				for _, e := range result.Errors {
					rows = append(rows, []string{e.Path, e.Message})
				}
				printTable(out, []string{"FIELD", "ERROR"}, rows)
			}

			return result.Err()
		},
	}
}

func newTransformCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "transform FILE",
		Short: "Convert a scenario into the submission payload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ts, _, err := readScenario(args[0])
			if err != nil {
				return err
			}

			data, err := json.MarshalIndent(payload.ToWire(ts), "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode payload: %w", err)
			}
			return writeOutput(cmd.OutOrStdout(), outPath, data)
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write the payload to a file")
	return cmd
}

func newImportCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Convert a payload or scenario document into the editor shape",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ts, format, err := readScenario(args[0])
			if err != nil {
				return err
			}

			data, err := json.MarshalIndent(ts, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode scenario: %w", err)
			}
			if err := writeOutput(cmd.OutOrStdout(), outPath, data); err != nil {
				return err
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "Imported %d steps from %s format\n", len(ts.Steps), format)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write the scenario to a file")
	return cmd
}
