package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rshade/policyexport/internal/logging"
	"github.com/rshade/policyexport/internal/report"
)

// newConvertCmd creates the "convert" subcommand, which renders an arbitrary
// JSON document as headed Markdown.
func newConvertCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "Render a JSON document as Markdown",
		Long: `Render any JSON document as Markdown. Object keys become "##" headings,
array items are listed one after another, and scalars are printed as text.

Reads from standard input when no file is given.`,
		Example: `  # Convert a saved API response
  policyexport convert response.json -o response.md

  # Convert from a pipe
  curl -s https://example.com/data.json | policyexport convert`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			return executeConvert(cmd, input, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: standard output)")

	return cmd
}

// executeConvert handles the convert subcommand logic.
func executeConvert(cmd *cobra.Command, input, output string) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	var (
		data []byte
		err  error
	)
	if input == "" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(input)
	}
	if err != nil {
		return fmt.Errorf("reading JSON input: %w", err)
	}

	markdown, err := report.ConvertJSONToMarkdown(data)
	if err != nil {
		return err
	}

	log.Debug().Ctx(ctx).
		Str("input", input).
		Int("input_bytes", len(data)).
		Int("output_bytes", len(markdown)).
		Msg("converted JSON to Markdown")

	return report.WriteText(cmd.OutOrStdout(), output, markdown)
}
