package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/formalbridge/waterfall/internal/audit"
	"github.com/formalbridge/waterfall/internal/model"
	"github.com/formalbridge/waterfall/internal/prescribedpart"
	"github.com/formalbridge/waterfall/internal/storage"
)

// RenderReport writes the integrity report for one audit run: itemized
// blocking warnings with row references first, then advisories, then the
// proceed/blocked banner.
func RenderReport(w io.Writer, run *audit.Run) {
	fmt.Fprintln(w, TitleStyle.Render("Data Integrity Report"))
	fmt.Fprintf(w, "%s  %s\n",
		SubtleStyle.Render("source:"), run.SourceFile)
	fmt.Fprintf(w, "%s  %s\n",
		SubtleStyle.Render("sha256:"), run.FileHash)
	fmt.Fprintf(w, "%s  %d rows, %d valid\n\n",
		SubtleStyle.Render("rows:  "), run.Report.TotalRows, run.Report.ValidRows)

	blocking := filterWarnings(run.Report.Warnings, model.SeverityBlocking)
	advisory := filterWarnings(run.Report.Warnings, model.SeverityAdvisory)

	if len(blocking) > 0 {
		fmt.Fprintln(w, ErrorStyle.Render(fmt.Sprintf("Blocking (%d)", len(blocking))))
		for _, warning := range blocking {
			fmt.Fprintln(w, "  "+formatWarning(warning))
		}
		fmt.Fprintln(w)
	}

	if len(advisory) > 0 {
		fmt.Fprintln(w, WarningStyle.Render(fmt.Sprintf("Advisory (%d)", len(advisory))))
		for _, warning := range advisory {
			fmt.Fprintln(w, "  "+formatWarning(warning))
		}
		fmt.Fprintln(w)
	}

	for _, line := range run.Report.Summary {
		fmt.Fprintln(w, SubtleStyle.Render(line))
	}

	if run.Report.CanProceed {
		fmt.Fprintln(w, SuccessStyle.Render("✓ Ledger clear: distribution may proceed"))
	} else {
		fmt.Fprintln(w, ErrorStyle.Render("✗ Certification blocked until the issues above are resolved"))
	}
}

// RenderPrescribedPart writes the banded s.176A breakdown.
func RenderPrescribedPart(w io.Writer, result *prescribedpart.Result) {
	fmt.Fprintln(w, TitleStyle.Render("Prescribed Part (s.176A)"))
	for _, step := range result.Steps {
		fmt.Fprintln(w, "  "+step)
	}

	var lines []string
	lines = append(lines, fmt.Sprintf("net property     £%s", result.NetProperty.StringFixed(2)))
	lines = append(lines, fmt.Sprintf("prescribed part  £%s", result.FinalAmount.StringFixed(2)))
	if result.CapApplied {
		lines = append(lines, fmt.Sprintf("statutory cap    £%s (applied)", result.Cap.StringFixed(2)))
	}
	lines = append(lines, SubtleStyle.Render(result.LegislativeBasis))
	fmt.Fprintln(w, BoxStyle.Render(strings.Join(lines, "\n")))
}

// RenderRunList writes the saved run history table.
func RenderRunList(w io.Writer, summaries []storage.RunSummary) {
	if len(summaries) == 0 {
		fmt.Fprintln(w, SubtleStyle.Render("no saved audit runs"))
		return
	}

	fmt.Fprintln(w, TitleStyle.Render("Audit Runs"))
	for _, s := range summaries {
		status := SuccessStyle.Render("clear")
		if !s.CanProceed {
			status = ErrorStyle.Render("blocked")
		}
		fmt.Fprintf(w, "%s  %s  %s  %d rows  %d blocking  %d advisory  %s\n",
			s.ID,
			s.CreatedAt.Format("2006-01-02 15:04"),
			status,
			s.TotalRows, s.BlockingCount, s.AdvisoryCount,
			SubtleStyle.Render(s.SourceFile))
		if s.VerificationCode != "" {
			fmt.Fprintf(w, "    %s %s\n", SubtleStyle.Render("certificate:"), s.VerificationCode)
		}
	}
}

func filterWarnings(warnings []model.Warning, severity model.Severity) []model.Warning {
	var filtered []model.Warning
	for _, w := range warnings {
		if w.Severity == severity {
			filtered = append(filtered, w)
		}
	}
	return filtered
}

func formatWarning(w model.Warning) string {
	var b strings.Builder
	if w.RowNumber > 0 {
		b.WriteString(fmt.Sprintf("row %d: ", w.RowNumber))
	}
	b.WriteString(fmt.Sprintf("[%s] %s", w.Code, w.Message))
	if w.StatutoryRef != "" {
		b.WriteString(fmt.Sprintf(" (ref %s)", w.StatutoryRef))
	}
	if w.Suggestion != "" {
		b.WriteString(SubtleStyle.Render(" (" + w.Suggestion + ")"))
	}
	return b.String()
}
