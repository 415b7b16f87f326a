// Package sorting provides sorting and sort-flag parsing for policy listings.
//
// This package contains:
//   - ParseSort: parsing of the --sort flag ("field" or "field:order")
//   - Sorter / PolicySorter: stable sorting of policies by a named field
//
// The default ordering is by display name, ascending, with ties kept in the
// order the API returned them so that repeated exports produce identical output.
package sorting
