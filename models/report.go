package models

import (
	"fmt"
	"strings"

	"github.com/rfielding/kripke-nfh/nfh"
)

// GenerateReport renders a markdown report of a model: its automaton as a
// Mermaid diagram and a table of sample verdicts.
func GenerateReport(m ModelSpec, a *nfh.NFH, results []Result) (string, error) {
	var report strings.Builder

	report.WriteString(fmt.Sprintf("# %s\n\n", m.Name()))
	report.WriteString(fmt.Sprintf("%s\n\n", m.Description()))

	report.WriteString("## Automaton\n\n")
	report.WriteString(fmt.Sprintf("**Tracks**: %d\n", a.K()))
	report.WriteString(fmt.Sprintf("**Quantifiers**: %v\n", a.Alpha()))
	report.WriteString(fmt.Sprintf("**States**: %d\n", len(a.States())))
	report.WriteString(fmt.Sprintf("**Transitions**: %d\n\n", len(a.Delta())))

	report.WriteString("```mermaid\n")
	if err := nfh.WriteMermaid(&report, a); err != nil {
		return "", err
	}
	report.WriteString("```\n\n")

	report.WriteString("## Samples\n\n")
	report.WriteString("| Hyperword | Expected | Result | Witnesses |\n")
	report.WriteString("|-----------|----------|--------|-----------|\n")
	pass := 0
	for _, r := range results {
		result := "❌ " + r.Outcome.Verdict.String()
		if r.Matches() {
			result = "✅ " + r.Outcome.Verdict.String()
			pass++
		}
		report.WriteString(fmt.Sprintf("| `%s` | %s | %s | %d |\n",
			nfh.NewHyperword(r.Sample.Words...), r.Sample.Want, result, len(r.Outcome.Witnesses)))
	}
	report.WriteString(fmt.Sprintf("\n**Summary**: %d/%d samples as expected\n", pass, len(results)))
	return report.String(), nil
}
