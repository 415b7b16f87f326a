package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/policyexport/internal/cli/sorting"
	"github.com/rshade/policyexport/internal/config"
	"github.com/rshade/policyexport/internal/logging"
	"github.com/rshade/policyexport/internal/report"
)

// RootOptions holds the injectable dependencies of the root command.
type RootOptions struct {
	// Prompt reads the secret key. Defaults to a hidden prompt on stdin.
	Prompt SecretPrompter
	// LookupEnv resolves environment overrides. Defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)
}

// NewRootCmd creates the root Cobra command for the policyexport CLI.
func NewRootCmd(ver string) *cobra.Command {
	return NewRootCmdWithOptions(ver, RootOptions{})
}

// NewRootCmdWithOptions creates the root command with explicit dependencies for testability.
func NewRootCmdWithOptions(ver string, opts RootOptions) *cobra.Command {
	if opts.Prompt == nil {
		opts.Prompt = TerminalSecretPrompt(os.Stdin)
	}
	if opts.LookupEnv == nil {
		opts.LookupEnv = os.LookupEnv
	}

	var (
		params     exportParams
		configPath string
		logResult  *logging.LogPathResult
	)

	cmd := &cobra.Command{
		Use:   "policyexport",
		Short: "Export security policies to Markdown or CSV",
		Long: `Export all policies from the security policy API into a human-readable report.

The secret key is read from a hidden prompt. It is never accepted as a flag
or environment variable.`,
		Version:      ver,
		Example:      rootCmdExample,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(config.ResolvePath(configPath))
			if err != nil {
				if cmd.Annotations[annotationIgnoreConfigError] != "true" {
					return err
				}
				cmd.PrintErrf("Warning: ignoring unreadable configuration: %v\n", err)
				cfg = config.Default()
			}
			cfg.ApplyEnv(opts.LookupEnv)
			config.SetGlobalConfig(cfg)

			result := setupLogging(cmd, cfg)
			logResult = &result
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("format") {
				params.format = config.GetDefaultOutputFormat()
			}
			return executeExport(cmd, params, config.GetGlobalConfig(), opts.Prompt)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&configPath, "config", "",
		"config file (default $HOME/.policyexport/config.yaml)")

	cmd.Flags().StringVarP(&params.clientID, "client_id", "c", "",
		"The client ID from the API key created in the UI settings (required)")
	cmd.Flags().StringVarP(&params.output, "output", "o", "",
		"Output file to save content (default: standard output)")
	cmd.Flags().StringVarP(&params.format, "format", "f", config.DefaultFormat,
		"Output format: "+formatNames())
	cmd.Flags().StringVar(&params.sort, "sort", sorting.DefaultSortField+":"+sorting.DefaultSortOrder,
		"Sort field and order: "+strings.Join(sorting.NewPolicySorter().GetValidFields(), ", ")+" (e.g. severity:desc)")
	cmd.Flags().StringArrayVar(&params.filters, "filter", nil,
		"Keep only policies matching key=value (repeatable); keys: "+strings.Join(filterKeys(), ", "))

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})

	cmd.AddCommand(newConvertCmd(), newConfigCmd())
	closeLogOnExit(cmd, &logResult)

	return cmd
}

// annotationIgnoreConfigError lets a command run on built-in defaults when
// the config file cannot be parsed.
const annotationIgnoreConfigError = "policyexport/ignore-config-error"

// closeLogOnExit wraps every RunE in the tree so the log file opened by the
// pre-run hook is closed whether the command succeeds or fails.
func closeLogOnExit(cmd *cobra.Command, logResult **logging.LogPathResult) {
	if run := cmd.RunE; run != nil {
		cmd.RunE = func(c *cobra.Command, args []string) error {
			defer func() { _ = cleanupLogging(*logResult) }()
			return run(c, args)
		}
	}
	for _, sub := range cmd.Commands() {
		closeLogOnExit(sub, logResult)
	}
}

// formatNames lists the supported output formats for help text.
func formatNames() string {
	names := make([]string, 0, len(report.SupportedFormats()))
	for _, f := range report.SupportedFormats() {
		names = append(names, string(f))
	}
	return strings.Join(names, " or ")
}

const rootCmdExample = `  # Export all policies as Markdown to stdout
  policyexport -c <client-id>

  # Export as CSV into a file
  policyexport -c <client-id> -f csv -o policies.csv

  # Sort by number of active issues, highest first
  policyexport -c <client-id> --sort activeIssues:desc -o policies.md

  # Only enabled high-severity policies
  policyexport -c <client-id> --filter severity=High --filter enabled=true

  # Pipe the secret key in non-interactive environments
  printf '%s\n' "$SECRET" | policyexport -c <client-id> -o policies.md

  # Render any JSON document as Markdown
  policyexport convert response.json -o response.md`
