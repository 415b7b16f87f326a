package report

import (
	"bufio"
	"io"

	"github.com/rshade/policyexport/internal/api"
)

// MarkdownFormatter renders one section per policy under a "Policies" heading.
type MarkdownFormatter struct{}

// Render writes the Markdown document. Section order per policy is fixed:
// Risk Type, Severity, Policy Groups, Description.
func (MarkdownFormatter) Render(w io.Writer, policies []api.Policy) error {
	bw := bufio.NewWriter(w)

	bw.WriteString("# Policies\n")
	for _, p := range policies {
		bw.WriteString("## " + p.DisplayName + "\n")
		bw.WriteString("### Risk Type:\n")
		bw.WriteString("**" + p.RiskType + "**\n")
		bw.WriteString("### Severity:\n")
		bw.WriteString("**" + p.Severity + "**\n")
		bw.WriteString("### Policy Groups\n")
		for _, name := range p.GroupNames() {
			bw.WriteString("* " + name + "\n")
		}
		bw.WriteString("### **Description**\n")
		bw.WriteString(p.Description + "\n\n")
	}

	return bw.Flush()
}
