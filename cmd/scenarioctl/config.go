package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hairizuan-noorazman/scenario-builder/gateway"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const configName = ".scenario-builder"

var cfg *viper.Viper

// initConfig resolves settings from, lowest first: defaults, the config
// file, a .env file, the environment, and flags.
func initConfig() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to read .env: %w", err)
	}

	cfg = viper.New()
	home, _ := os.UserHomeDir()
	dataDir := filepath.Join(home, configName)

	if flagConfig != "" {
		cfg.SetConfigFile(flagConfig)
	} else {
		cfg.SetConfigName(configName)
		cfg.SetConfigType("yaml")
		if home != "" {
			cfg.AddConfigPath(home)
		}
	}

	cfg.SetDefault("gateway.base_url", gateway.DefaultBaseURL)
	cfg.SetDefault("gateway.path", gateway.DefaultPath)
	cfg.SetDefault("gateway.timeout", "0s")
	cfg.SetDefault("drafts.backend", "blob")
	cfg.SetDefault("storage.type", "local")
	cfg.SetDefault("storage.base_dir", dataDir)
	cfg.SetDefault("storage.s3_bucket", "")
	cfg.SetDefault("storage.s3_region", "us-east-1")
	cfg.SetDefault("storage.s3_prefix", "")
	cfg.SetDefault("database.driver", "sqlite")
	cfg.SetDefault("database.host", "localhost")
	cfg.SetDefault("database.port", 3306)
	cfg.SetDefault("database.user", "root")
	cfg.SetDefault("database.password", "")
	cfg.SetDefault("database.database", filepath.Join(dataDir, "drafts.db"))
	cfg.SetDefault("certs.dir", "./certs")
	cfg.SetDefault("log.level", "warn")
	cfg.SetDefault("validation.action_catalog", false)

	cfg.SetEnvPrefix("SCENARIO_BUILDER")
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()

	if err := cfg.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !(flagConfig == "" && errors.Is(err, fs.ErrNotExist)) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// CLI flags take highest priority
	if flagURL != "" {
		cfg.Set("gateway.base_url", flagURL)
	}
	if flagDebug {
		cfg.Set("log.level", "debug")
	}

	return nil
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())
	return cmd
}

func newConfigInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create a config file template at ~/.scenario-builder.yaml",
		RunE: func(cmd *cobra.Command, args []string) error {
			home, err := os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("failed to get home directory: %w", err)
			}

			configPath := filepath.Join(home, configName+".yaml")
			out := cmd.OutOrStdout()

			if _, err := os.Stat(configPath); err == nil {
				printMessage(out, "Config file already exists at "+configPath)
				return nil
			}

			template := `# scenarioctl configuration
gateway:
  base_url: ` + gateway.DefaultBaseURL + `
  path: ` + gateway.DefaultPath + `
  timeout: 0s
drafts:
  backend: blob # or database
storage:
  type: local
  base_dir: ` + filepath.Join(home, configName) + `
certs:
  dir: ./certs
`
			if err := os.WriteFile(configPath, []byte(template), 0600); err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}

			printMessage(out, "Config file created at "+configPath)
			return nil
		},
	}
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			endpoint, err := gateway.Endpoint(gatewayConfig())
			if err != nil {
				endpoint = "(invalid: " + err.Error() + ")"
			}

			if flagJSON {
				printJSON(out, map[string]interface{}{
					"endpoint":       endpoint,
					"timeout":        cfg.GetDuration("gateway.timeout").String(),
					"drafts_backend": cfg.GetString("drafts.backend"),
					"storage":        cfg.GetString("storage.type"),
					"certs_dir":      cfg.GetString("certs.dir"),
					"config_file":    cfg.ConfigFileUsed(),
				})
				return nil
			}

			printMessage(out, fmt.Sprintf("Endpoint: %s", endpoint))
			printMessage(out, fmt.Sprintf("Timeout:  %s", cfg.GetDuration("gateway.timeout")))
			printMessage(out, fmt.Sprintf("Drafts:   %s", cfg.GetString("drafts.backend")))
			printMessage(out, fmt.Sprintf("Storage:  %s", cfg.GetString("storage.type")))
			printMessage(out, fmt.Sprintf("Certs:    %s", cfg.GetString("certs.dir")))

			if cfgFile := cfg.ConfigFileUsed(); cfgFile != "" {
				printMessage(out, fmt.Sprintf("Config file: %s", cfgFile))
			} else {
				printMessage(out, "Config file: (none)")
			}

			return nil
		},
	}
}
