package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/policyexport/internal/api"
	"github.com/rshade/policyexport/internal/cli/sorting"
	"github.com/rshade/policyexport/internal/config"
	"github.com/rshade/policyexport/internal/logging"
	"github.com/rshade/policyexport/internal/report"
)

// exportParams holds the root command flags.
type exportParams struct {
	clientID string
	output   string
	format   string
	sort     string
	filters  []string
}

// executeExport runs the export: validate flags, prompt for the secret,
// log in, fetch every page, filter, sort, render and write.
//
// Flags are validated before the prompt so a bad --format, --sort or --filter never
// reaches the API.
func executeExport(cmd *cobra.Command, params exportParams, cfg *config.Config, prompt SecretPrompter) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	if strings.TrimSpace(params.clientID) == "" {
		return &UsageError{Message: `required flag(s) "client_id" not set`}
	}

	format, err := report.ParseFormat(params.format)
	if err != nil {
		return &UsageError{Message: report.InvalidFormatMessage, Err: err}
	}
	formatter, err := report.NewFormatter(format)
	if err != nil {
		return &UsageError{Message: report.InvalidFormatMessage, Err: err}
	}

	var sorter sorting.Sorter = sorting.NewPolicySorter()
	field, order, err := sorting.ParseSort(params.sort)
	if err != nil {
		return &UsageError{Err: err}
	}
	if err := sorter.Validate(field); err != nil {
		return &UsageError{Err: err}
	}
	if err := ValidateFilters(params.filters); err != nil {
		return &UsageError{Err: err}
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	secret, err := prompt(cmd.ErrOrStderr(), secretPromptText)
	if err != nil {
		return err
	}
	if secret == "" {
		return ErrEmptySecret
	}

	client := api.NewClient(api.Options{
		LoginURL:    cfg.API.LoginURL,
		PoliciesURL: cfg.API.PoliciesURL,
		PageSize:    cfg.API.PageSize,
		Timeout:     cfg.API.Timeout,
	})

	token, err := client.Login(ctx, api.Credentials{ClientID: params.clientID, Secret: secret})
	if err != nil {
		log.Error().Ctx(ctx).Err(err).Str("client_id", params.clientID).Msg("login failed")
		return err
	}

	policies, err := client.ListPolicies(ctx, token)
	if err != nil {
		log.Error().Ctx(ctx).Err(err).Msg("fetching policies failed")
		return err
	}

	filtered, err := ApplyFilters(ctx, policies, params.filters)
	if err != nil {
		return &UsageError{Err: err}
	}

	sorted := sorter.Sort(filtered, field, order)

	log.Debug().Ctx(ctx).
		Int("fetched_count", len(policies)).
		Int("policy_count", len(sorted)).
		Str("format", string(format)).
		Str("sort_field", field).
		Str("sort_order", order).
		Str("output", params.output).
		Msg("writing report")

	if err := report.Write(cmd.OutOrStdout(), params.output, formatter, sorted); err != nil {
		return err
	}

	printSummary(cmd.ErrOrStderr(), len(sorted), params.output)
	return nil
}
