package cli

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/rshade/policyexport/internal/api"
	"github.com/rshade/policyexport/internal/logging"
)

// ErrInvalidFilter is returned for a malformed --filter expression.
var ErrInvalidFilter = errors.New("invalid filter")

// filterMatchers maps a filter key to a predicate over a policy and the
// filter value. String comparisons ignore case.
//
//nolint:gochecknoglobals // Read-only lookup table.
var filterMatchers = map[string]func(p api.Policy, value string) bool{
	"name":      func(p api.Policy, v string) bool { return strings.EqualFold(p.DisplayName, v) },
	"severity":  func(p api.Policy, v string) bool { return strings.EqualFold(p.Severity, v) },
	"riskType":  func(p api.Policy, v string) bool { return strings.EqualFold(p.RiskType, v) },
	"createdBy": func(p api.Policy, v string) bool { return strings.EqualFold(p.CreatedBy, v) },
	"group": func(p api.Policy, v string) bool {
		return slices.ContainsFunc(p.GroupNames(), func(g string) bool { return strings.EqualFold(g, v) })
	},
	"enabled": func(p api.Policy, v string) bool {
		want, _ := strconv.ParseBool(v)
		return p.IsEnabled == want
	},
}

// filterKeys returns the supported filter keys in sorted order.
func filterKeys() []string {
	keys := make([]string, 0, len(filterMatchers))
	for k := range filterMatchers {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// parseFilter splits a "key=value" expression and checks the key.
func parseFilter(expr string) (string, string, error) {
	key, value, ok := strings.Cut(expr, "=")
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)
	if !ok || key == "" || value == "" {
		return "", "", fmt.Errorf("%w %q: expected key=value", ErrInvalidFilter, expr)
	}
	if _, known := filterMatchers[key]; !known {
		return "", "", fmt.Errorf("%w %q: unknown key %q (valid: %s)",
			ErrInvalidFilter, expr, key, strings.Join(filterKeys(), ", "))
	}
	if key == "enabled" {
		if _, err := strconv.ParseBool(value); err != nil {
			return "", "", fmt.Errorf("%w %q: enabled must be true or false", ErrInvalidFilter, expr)
		}
	}
	return key, value, nil
}

// ValidateFilters checks every non-empty filter expression.
func ValidateFilters(filters []string) error {
	for _, f := range filters {
		if f == "" {
			continue
		}
		if _, _, err := parseFilter(f); err != nil {
			return err
		}
	}
	return nil
}

// ApplyFilters keeps the policies matching every filter, preserving order.
// All filters are validated before any is applied; empty expressions are
// ignored and no filters returns policies unchanged.
func ApplyFilters(ctx context.Context, policies []api.Policy, filters []string) ([]api.Policy, error) {
	log := logging.FromContext(ctx)

	if len(filters) == 0 {
		return policies, nil
	}

	if err := ValidateFilters(filters); err != nil {
		log.Warn().Ctx(ctx).
			Str("component", "cli").
			Str("operation", "apply_filters").
			Err(err).
			Msg("invalid filter expression")
		return nil, err
	}

	result := policies
	for _, f := range filters {
		if f == "" {
			continue
		}
		key, value, _ := parseFilter(f)
		match := filterMatchers[key]

		before := len(result)
		kept := make([]api.Policy, 0, len(result))
		for _, p := range result {
			if match(p, value) {
				kept = append(kept, p)
			}
		}
		result = kept

		log.Debug().Ctx(ctx).
			Str("component", "cli").
			Str("operation", "apply_filters").
			Str("filter", f).
			Int("before", before).
			Int("after", len(result)).
			Msg("applied filter")
	}

	if len(result) == 0 && len(policies) > 0 {
		log.Warn().Ctx(ctx).
			Str("component", "cli").
			Str("operation", "apply_filters").
			Int("original_count", len(policies)).
			Msg("no policies match filter criteria")
	}

	return result, nil
}
