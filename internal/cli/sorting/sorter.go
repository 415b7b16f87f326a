package sorting

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/rshade/policyexport/internal/api"
)

// Sortable policy fields.
const (
	FieldName         = "name"
	FieldSeverity     = "severity"
	FieldRiskType     = "riskType"
	FieldCreatedBy    = "createdBy"
	FieldActiveIssues = "activeIssues"
)

// Sorter defines the interface for sorting policies.
type Sorter interface {
	// Sort sorts a slice of policies by the specified field and order.
	Sort(policies []api.Policy, field, order string) []api.Policy
	// IsValidField checks if the given field name is valid for sorting.
	IsValidField(field string) bool
	// GetValidFields returns a list of valid field names for sorting.
	GetValidFields() []string
	// Validate returns an error naming the valid fields when field is not sortable.
	Validate(field string) error
}

var _ Sorter = (*PolicySorter)(nil)

// PolicySorter implements Sorter for api.Policy.
type PolicySorter struct {
	compare map[string]func(a, b api.Policy) int
}

// NewPolicySorter creates a PolicySorter with the supported sort fields.
// String fields compare byte-wise, as Go's < does.
func NewPolicySorter() *PolicySorter {
	return &PolicySorter{
		compare: map[string]func(a, b api.Policy) int{
			FieldName:         func(a, b api.Policy) int { return strings.Compare(a.DisplayName, b.DisplayName) },
			FieldSeverity:     func(a, b api.Policy) int { return strings.Compare(a.Severity, b.Severity) },
			FieldRiskType:     func(a, b api.Policy) int { return strings.Compare(a.RiskType, b.RiskType) },
			FieldCreatedBy:    func(a, b api.Policy) int { return strings.Compare(a.CreatedBy, b.CreatedBy) },
			FieldActiveIssues: func(a, b api.Policy) int { return cmp.Compare(a.ActiveIssuesCount, b.ActiveIssuesCount) },
		},
	}
}

// IsValidField checks if the field is valid for sorting.
func (s *PolicySorter) IsValidField(field string) bool {
	_, ok := s.compare[field]
	return ok
}

// GetValidFields returns all valid sort fields in a consistent order.
func (s *PolicySorter) GetValidFields() []string {
	fields := make([]string, 0, len(s.compare))
	for field := range s.compare {
		fields = append(fields, field)
	}
	slices.Sort(fields)
	return fields
}

// Validate returns ErrInvalidSortField if field is not sortable.
func (s *PolicySorter) Validate(field string) error {
	if s.IsValidField(field) {
		return nil
	}
	return fmt.Errorf("%w: %q (valid: %s)", ErrInvalidSortField, field, strings.Join(s.GetValidFields(), ", "))
}

// Sort stable-sorts policies by field and order.
// Returns a new sorted slice; does not modify the original.
// If field is invalid, returns the original slice unchanged.
func (s *PolicySorter) Sort(policies []api.Policy, field, order string) []api.Policy {
	compare, ok := s.compare[field]
	if !ok {
		return policies
	}

	sorted := slices.Clone(policies)
	slices.SortStableFunc(sorted, func(a, b api.Policy) int {
		// Negating keeps equal elements in input order for descending sorts too.
		if order == SortOrderDesc {
			return -compare(a, b)
		}
		return compare(a, b)
	})
	return sorted
}
