package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

var (
	flagConfig string
	flagURL    string
	flagJSON   bool
	flagDebug  bool
)

func newRootCmd() *cobra.Command {
	flagConfig, flagURL, flagJSON, flagDebug = "", "", false, false

	rootCmd := &cobra.Command{
		Use:           "scenarioctl",
		Short:         "CLI for test scenarios",
		Long:          "A command-line interface for validating, transforming, saving and submitting UI test scenarios.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
	}

	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default ~/.scenario-builder.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagURL, "url", "", "code-generation service URL (env: SCENARIO_BUILDER_GATEWAY_BASE_URL)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug output")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "scenarioctl %s (commit: %s, built: %s)\n", Version, Commit, BuildDate)
		},
	}

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newTransformCmd())
	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newSubmitCmd())
	rootCmd.AddCommand(newDraftsCmd())
	rootCmd.AddCommand(newCertsCmd())
	rootCmd.AddCommand(newCatalogCmd())
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
