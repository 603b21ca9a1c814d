package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/hairizuan-noorazman/scenario-builder/draft"
	"github.com/hairizuan-noorazman/scenario-builder/editor"
	"github.com/hairizuan-noorazman/scenario-builder/payload"
	"github.com/spf13/cobra"
)

func newDraftsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drafts",
		Short: "Manage saved drafts",
	}

	cmd.AddCommand(newDraftsListCmd())
	cmd.AddCommand(newDraftsSaveCmd())
	cmd.AddCommand(newDraftsLoadCmd())
	cmd.AddCommand(newDraftsDeleteCmd())
	return cmd
}

// withEditor runs fn with an editor bound to the configured draft store.
func withEditor(cmd *cobra.Command, fn func(ed *editor.Editor) error) error {
	log := newLogger(cmd.ErrOrStderr())

	store, closeStore, err := openDraftStore(cmd.Context(), log)
	if err != nil {
		return err
	}
	defer closeStore()

	return fn(editor.New(log, editor.WithDraftStore(store)))
}

func newDraftsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List drafts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEditor(cmd, func(ed *editor.Editor) error {
				entries, err := ed.ListDrafts(cmd.Context())
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if flagJSON {
					if entries == nil {
						entries = []draft.Entry{}
					}
					printJSON(out, entries)
					return nil
				}

				var rows [][]string
				for _, e := range entries {
					rows = append(rows, []string{truncate(e.Name, 40), e.Key})
				}
				printTable(out, []string{"NAME", "KEY"}, rows)
				printMessage(out, fmt.Sprintf("\n%d drafts", len(entries)))
				return nil
			})
		},
	}
}

func newDraftsSaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save NAME FILE",
		Short: "Save a scenario file as a draft",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, path := args[0], args[1]

			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}

			return withEditor(cmd, func(ed *editor.Editor) error {
				if _, err := ed.Import(cmd.Context(), data); err != nil {
					return err
				}
				entry, err := ed.SaveDraft(cmd.Context(), name)
				if err != nil {
					return err
				}

				if flagJSON {
					printJSON(cmd.OutOrStdout(), entry)
					return nil
				}
				printMessage(cmd.OutOrStdout(), fmt.Sprintf("Draft saved as %s", entry.Key))
				return nil
			})
		},
	}
}

func newDraftsLoadCmd() *cobra.Command {
	var (
		outPath string
		format  string
	)

	cmd := &cobra.Command{
		Use:   "load KEY",
		Short: "Print a saved draft",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := payload.Format(format)
			if f != payload.FormatUI && f != payload.FormatWire {
				return fmt.Errorf("unsupported format %q (want ui or wire)", format)
			}

			return withEditor(cmd, func(ed *editor.Editor) error {
				if err := ed.LoadDraft(cmd.Context(), args[0]); err != nil {
					return err
				}

				data, err := ed.Export(f)
				if err != nil {
					return err
				}
				var indented interface{}
				if err := json.Unmarshal(data, &indented); err == nil {
					data, _ = json.MarshalIndent(indented, "", "  ")
				}
				return writeOutput(cmd.OutOrStdout(), outPath, data)
			})
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write the draft to a file")
	cmd.Flags().StringVar(&format, "format", string(payload.FormatUI), "Output shape: ui or wire")
	return cmd
}

func newDraftsDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete KEY",
		Short: "Delete a saved draft",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			out := cmd.OutOrStdout()

			ok, err := confirmer(yes).Confirm(cmd.Context(), fmt.Sprintf("Delete draft %s?", key))
			if err != nil {
				return err
			}
			if !ok {
				printMessage(out, "Cancelled")
				return nil
			}

			return withEditor(cmd, func(ed *editor.Editor) error {
				if err := ed.DeleteDraft(cmd.Context(), key); err != nil {
					return err
				}
				printMessage(out, fmt.Sprintf("Draft %s deleted", key))
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation prompt")
	return cmd
}
