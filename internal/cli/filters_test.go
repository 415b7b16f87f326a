package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/policyexport/internal/api"
)

func filterFixture() []api.Policy {
	return []api.Policy{
		{UID: "1", DisplayName: "A", Severity: "High", RiskType: "Exposure", CreatedBy: "Cyera", IsEnabled: true,
			PolicyGroups: []api.PolicyGroup{{Name: "GDPR"}}},
		{UID: "2", DisplayName: "B", Severity: "Low", RiskType: "Exposure", CreatedBy: "admin", IsEnabled: false},
		{UID: "3", DisplayName: "C", Severity: "high", RiskType: "Hygiene", CreatedBy: "Cyera", IsEnabled: true,
			PolicyGroups: []api.PolicyGroup{{Name: "PCI"}, {Name: "gdpr"}}},
	}
}

func uids(policies []api.Policy) []string {
	out := make([]string, 0, len(policies))
	for _, p := range policies {
		out = append(out, p.UID)
	}
	return out
}

func TestApplyFilters(t *testing.T) {
	tests := []struct {
		name    string
		filters []string
		want    []string
	}{
		{name: "no filters", filters: nil, want: []string{"1", "2", "3"}},
		{name: "empty expression ignored", filters: []string{""}, want: []string{"1", "2", "3"}},
		{name: "severity ignores case", filters: []string{"severity=HIGH"}, want: []string{"1", "3"}},
		{name: "group matches any", filters: []string{"group=gdpr"}, want: []string{"1", "3"}},
		{name: "enabled false", filters: []string{"enabled=false"}, want: []string{"2"}},
		{name: "filters combine", filters: []string{"riskType=Exposure", "createdBy=cyera"}, want: []string{"1"}},
		{name: "name", filters: []string{"name=b"}, want: []string{"2"}},
		{name: "nothing matches", filters: []string{"severity=Critical"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ApplyFilters(context.Background(), filterFixture(), tt.filters)
			require.NoError(t, err)
			assert.Equal(t, tt.want, uids(got))
		})
	}
}

func TestApplyFilters_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		filter  string
		wantMsg string
	}{
		{name: "missing equals", filter: "severity", wantMsg: "expected key=value"},
		{name: "missing value", filter: "severity=", wantMsg: "expected key=value"},
		{name: "unknown key", filter: "uid=1", wantMsg: "unknown key"},
		{name: "bad bool", filter: "enabled=maybe", wantMsg: "true or false"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ApplyFilters(context.Background(), filterFixture(), []string{"severity=High", tt.filter})
			require.ErrorIs(t, err, ErrInvalidFilter)
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.Nil(t, got)
		})
	}
}
