// Package report renders policies as Markdown or CSV and writes the result to
// a file or a stream. It also holds a generic JSON-to-Markdown converter.
package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rshade/policyexport/internal/api"
)

// Format is an output format name.
type Format string

// Supported formats.
const (
	FormatMarkdown Format = "markdown"
	FormatCSV      Format = "csv"
)

// ErrInvalidFormat is returned by ParseFormat for unsupported names.
var ErrInvalidFormat = errors.New("invalid output format")

// InvalidFormatMessage is the diagnostic shown to users for an unsupported format.
const InvalidFormatMessage = "Invalid output format. Supported formats are 'markdown' and 'csv'."

// SupportedFormats lists the accepted format names.
func SupportedFormats() []Format {
	return []Format{FormatMarkdown, FormatCSV}
}

// ParseFormat validates a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatMarkdown, FormatCSV:
		return f, nil
	default:
		return "", fmt.Errorf("%w (got %q)", ErrInvalidFormat, s)
	}
}

// Formatter renders a sorted policy list.
type Formatter interface {
	Render(w io.Writer, policies []api.Policy) error
}

// NewFormatter returns the formatter for f.
func NewFormatter(f Format) (Formatter, error) {
	switch f {
	case FormatMarkdown:
		return MarkdownFormatter{}, nil
	case FormatCSV:
		return CSVFormatter{}, nil
	default:
		return nil, fmt.Errorf("%w (got %q)", ErrInvalidFormat, string(f))
	}
}
