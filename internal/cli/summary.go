package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer formats counts with thousand separators.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

//nolint:gochecknoglobals // Shared style for the completion line.
var summaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)

// summaryLine returns the completion message for count policies written to path.
func summaryLine(count int, path string) string {
	noun := "policies"
	if count == 1 {
		noun = "policy"
	}
	dest := path
	if dest == "" {
		dest = "standard output"
	}
	return printer.Sprintf("Exported %d %s to %s", count, noun, dest)
}

// printSummary writes the completion line to w, styled when w is a terminal.
func printSummary(w io.Writer, count int, path string) {
	line := summaryLine(count, path)
	if f, ok := w.(*os.File); ok && isTerminal(f) {
		line = summaryStyle.Render(line)
	}
	_, _ = fmt.Fprintln(w, line)
}
