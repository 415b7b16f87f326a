package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rshade/policyexport/internal/api"
)

// csvColumns is the fixed header row. Order must not change; downstream
// spreadsheets address columns by position.
var csvColumns = []string{ //nolint:gochecknoglobals // fixed column layout
	"UID",
	"Display Name",
	"Risk Type",
	"Severity",
	"Policy Groups",
	"Active Issues",
	"Created By",
	"IsEnabled",
	"Description",
}

// groupSeparator joins policy group names inside the Policy Groups cell.
const groupSeparator = ", "

// CSVFormatter renders one row per policy with encoding/csv quoting.
type CSVFormatter struct{}

// Header returns a copy of the CSV header row.
func (CSVFormatter) Header() []string {
	return append([]string(nil), csvColumns...)
}

// Row converts a policy into its CSV record.
func (CSVFormatter) Row(p api.Policy) []string {
	return []string{
		p.UID,
		p.DisplayName,
		p.RiskType,
		p.Severity,
		strings.Join(p.GroupNames(), groupSeparator),
		strconv.Itoa(p.ActiveIssuesCount),
		p.CreatedBy,
		formatEnabled(p.IsEnabled),
		p.Description,
	}
}

// Render writes the header and one record per policy.
func (f CSVFormatter) Render(w io.Writer, policies []api.Policy) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(f.Header()); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, p := range policies {
		if err := cw.Write(f.Row(p)); err != nil {
			return fmt.Errorf("writing CSV row for %s: %w", p.UID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// formatEnabled keeps the capitalised booleans existing exports use.
func formatEnabled(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
