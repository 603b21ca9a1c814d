package main

import (
	"fmt"

	"github.com/hairizuan-noorazman/scenario-builder/certs"
	"github.com/spf13/cobra"
)

func newCertsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "certs",
		Short: "Inspect the local development certificates",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "check",
		Short: "Check that cert.pem and key.pem are present",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			monitor := certs.NewMonitor()
			loader, err := certificateLoader(cmd.Context(), monitor, newLogger(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}

			available := loader.Check(cmd.Context())
			out := cmd.OutOrStdout()

			if flagJSON {
				printJSON(out, map[string]interface{}{
					"status":    monitor.Get(),
					"available": available,
				})
				return nil
			}

			printMessage(out, fmt.Sprintf("Certificates: %s", monitor.Get()))
			if !available {
				printMessage(out, fmt.Sprintf("Place %s and %s in %s to enable local HTTPS.",
					certs.CertFile, certs.KeyFile, cfg.GetString("certs.dir")))
			}
			return nil
		},
	})
	return cmd
}
