package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rshade/policyexport/internal/config"
)

// newConfigCmd creates the "config" command group.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the policyexport configuration file",
	}
	cmd.AddCommand(newConfigInitCmd(), newConfigValidateCmd())
	return cmd
}

// newConfigInitCmd creates the config init command, which writes the
// built-in defaults to the config file.
func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Long: `Creates a new configuration file with default values at the path given by
--config, POLICYEXPORT_CONFIG, or $HOME/.policyexport/config.yaml.`,
		Example: `  # Create the default configuration
  policyexport config init

  # Recreate it, overwriting the existing file
  policyexport config init --force`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationIgnoreConfigError: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInit(cmd, configPathFlag(cmd), force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")

	return cmd
}

func runConfigInit(cmd *cobra.Command, path string, force bool) error {
	if path == "" {
		return errors.New("cannot determine configuration path, use --config")
	}

	if !force {
		_, err := os.Stat(path)
		if err == nil {
			return errors.New("configuration file already exists, use --force to overwrite")
		}
		if !os.IsNotExist(err) {
			return fmt.Errorf("cannot access config path %s: %w", path, err)
		}
	}

	if err := config.Default().Save(path); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	cmd.Printf("Configuration initialized at %s\n", path)
	return nil
}

// newConfigValidateCmd creates the config validate command.
func newConfigValidateCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validates the effective configuration: the config file merged with
POLICYEXPORT_* environment overrides. Checks endpoint URLs, page size,
timeout, default output format and logging settings.`,
		Example: `  # Validate current configuration
  policyexport config validate

  # Validate and show the effective values
  policyexport config validate --verbose`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigValidate(cmd, config.GetGlobalConfig(), verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show the effective configuration values")

	return cmd
}

func runConfigValidate(cmd *cobra.Command, cfg *config.Config, verbose bool) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	cmd.Println("Configuration is valid")

	if verbose {
		printConfigDetails(cmd, cfg)
	}
	return nil
}

func printConfigDetails(cmd *cobra.Command, cfg *config.Config) {
	timeout := "none"
	if cfg.API.Timeout > 0 {
		timeout = cfg.API.Timeout.String()
	}

	cmd.Println()
	cmd.Println("Configuration details:")
	cmd.Printf("  Login URL: %s\n", cfg.API.LoginURL)
	cmd.Printf("  Policies URL: %s\n", cfg.API.PoliciesURL)
	cmd.Printf("  Page size: %d\n", cfg.API.PageSize)
	cmd.Printf("  Timeout: %s\n", timeout)
	cmd.Printf("  Output format: %s\n", cfg.Output.DefaultFormat)
	cmd.Printf("  Logging level: %s\n", cfg.Logging.Level)
	if cfg.Logging.File != "" {
		cmd.Printf("  Log file: %s\n", cfg.Logging.File)
	}
}

// configPathFlag returns the resolved config file path for cmd.
func configPathFlag(cmd *cobra.Command) string {
	flagValue, _ := cmd.Flags().GetString("config")
	return config.ResolvePath(flagValue)
}
