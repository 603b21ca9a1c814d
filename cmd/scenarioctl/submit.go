package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/hairizuan-noorazman/scenario-builder/certs"
	"github.com/hairizuan-noorazman/scenario-builder/editor"
	"github.com/hairizuan-noorazman/scenario-builder/gateway"
	"github.com/spf13/cobra"
)

func newSubmitCmd() *cobra.Command {
	var (
		yes     bool
		outPath string
	)

	cmd := &cobra.Command{
		Use:   "submit FILE",
		Short: "Validate a scenario and send it to the code-generation service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			log := newLogger(cmd.ErrOrStderr())

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			monitor := certs.NewMonitor()
			loader, err := certificateLoader(ctx, monitor, log)
			if err != nil {
				return err
			}
			loader.Check(ctx)

			client, err := gateway.New(gatewayConfig(), log, gateway.WithCertificateStatus(monitor))
			if err != nil {
				return err
			}

			ed := editor.New(log,
				editor.WithSubmitter(client),
				editor.WithValidateOptions(validateOptions()...),
			)
			if _, err := ed.Import(ctx, data); err != nil {
				return err
			}

			result, err := ed.Submit(ctx, confirmer(yes))
			if errors.Is(err, editor.ErrNotConfirmed) {
				printMessage(out, "Submission cancelled")
				return nil
			}
			if err != nil {
				var remoteErr *gateway.RemoteError
				if errors.As(err, &remoteErr) {
					return fmt.Errorf("service rejected the scenario (%d): %s", remoteErr.StatusCode, remoteErr.Message)
				}
				return err
			}

			switch {
			case flagJSON:
				printJSON(out, result)
			case result.Kind == gateway.KindData && outPath == "":
				printRawJSON(out, result.Data)
			case result.Kind == gateway.KindData:
				if err := writeOutput(out, outPath, result.Data); err != nil {
					return err
				}
			default:
				if err := writeOutput(out, outPath, []byte(result.Text)); err != nil {
					return err
				}
			}

			if outPath != "" {
				printMessage(out, fmt.Sprintf("Wrote %s response to %s", result.Kind, outPath))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write the response body to a file")
	return cmd
}
