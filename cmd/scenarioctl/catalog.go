package main

import (
	"github.com/hairizuan-noorazman/scenario-builder/scenario"
	"github.com/spf13/cobra"
)

func newCatalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List the selectable models and action types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if flagJSON {
				printJSON(out, map[string]interface{}{
					"models":      scenario.ModelOptions,
					"actionTypes": scenario.ActionTypes,
				})
				return nil
			}

			printTable(out, []string{"MODEL", "ID"}, optionRows(scenario.ModelOptions))
			printMessage(out, "")
			printTable(out, []string{"ACTION", "VALUE"}, optionRows(scenario.ActionTypes))
			return nil
		},
	}
}

func optionRows(opts []scenario.Option) [][]string {
	rows := make([][]string, 0, len(opts))
	for _, o := range opts {
		rows = append(rows, []string{o.Name, o.Value})
	}
	return rows
}
