package report

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/gaslint/gaslint/internal/model"
	"github.com/gaslint/gaslint/internal/rules"
)

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display with clear section
// formatting and severity indicators.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// showEmpty controls whether sections with no findings are shown.
	showEmpty bool

	// verbose enables additional detail in the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowEmpty configures the writer to show empty sections.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		showEmpty:  false,
		verbose:    false,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the full report in human-readable format.
// It derives a ScanSummary from the report before formatting.
func (w *SimpleWriter) Write(report *model.ScanReport) (int, error) {
	return w.WriteSummary(model.NewScanSummary(report))
}

// WriteSummary outputs the scan summary in human-readable format.
func (w *SimpleWriter) WriteSummary(summary *model.ScanSummary) (int, error) {
	var sb strings.Builder

	// Header
	w.writeHeader(&sb, summary)

	// Severity summary
	w.writeSeveritySummary(&sb, summary)

	// Rule breakdown
	w.writeRuleBreakdown(&sb, summary)

	// Findings by severity
	w.writeFindings(&sb, summary)

	// Footer
	w.writeFooter(&sb, summary)

	// Write to output
	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report header with scan information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, summary *model.ScanSummary) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                            GASLINT REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Target:        %s\n", summary.Target))
	sb.WriteString(fmt.Sprintf("Scan Date:     %s\n", summary.DateScanned.Format("2006-01-02 15:04:05 MST")))
	if summary.FilesFailed > 0 {
		sb.WriteString(fmt.Sprintf("Files Scanned: %d (%d failed to parse)\n", summary.FilesScanned, summary.FilesFailed))
	} else {
		sb.WriteString(fmt.Sprintf("Files Scanned: %d\n", summary.FilesScanned))
	}
	sb.WriteString(fmt.Sprintf("Contracts:     %d\n", summary.ContractCount))
	sb.WriteString(fmt.Sprintf("Lines:         %d\n", summary.TotalLines))

	if summary.TimedOut {
		sb.WriteString("Status:        TIMED OUT (partial results)\n")
	} else if summary.Error != "" {
		sb.WriteString(fmt.Sprintf("Status:        ERROR - %s\n", summary.Error))
	} else {
		sb.WriteString("Status:        Complete\n")
	}

	sb.WriteString("\n")
}

// writeSeveritySummary writes the severity summary section.
func (w *SimpleWriter) writeSeveritySummary(sb *strings.Builder, summary *model.ScanSummary) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("SEVERITY SUMMARY\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	// Create a visual summary
	sb.WriteString(fmt.Sprintf("  CRITICAL: %d\n", summary.CriticalCount))
	sb.WriteString(fmt.Sprintf("  HIGH:     %d\n", summary.HighCount))
	sb.WriteString(fmt.Sprintf("  MEDIUM:   %d\n", summary.MediumCount))
	sb.WriteString(fmt.Sprintf("  LOW:      %d\n", summary.LowCount))
	sb.WriteString(fmt.Sprintf("  INFO:     %d\n", summary.InfoCount))
	sb.WriteString("\n")

	total := summary.TotalFindings()
	sb.WriteString(fmt.Sprintf("  TOTAL:    %d findings\n", total))
	sb.WriteString("\n")
}

// writeRuleBreakdown writes the per-rule tally section.
func (w *SimpleWriter) writeRuleBreakdown(sb *strings.Builder, summary *model.ScanSummary) {
	if len(summary.RuleStats) == 0 && !w.showEmpty {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("RULE BREAKDOWN\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	if len(summary.RuleStats) == 0 {
		sb.WriteString("  No rules triggered\n")
	} else {
		for _, stat := range summary.RuleStats {
			category := ""
			if tip, ok := rules.TipByRuleID(stat.RuleID); ok {
				category = categoryTitle(tip.Category)
			}
			sb.WriteString(fmt.Sprintf("  [%3dx] %-22s %-13s ~%d gas\n",
				stat.Count, stat.RuleID, category, stat.SavedGas))
		}
	}
	sb.WriteString("\n")
}

// writeFindings writes all findings grouped by severity.
func (w *SimpleWriter) writeFindings(sb *strings.Builder, summary *model.ScanSummary) {
	if !summary.HasFindings() && !w.showEmpty {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("FINDINGS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	// Write findings in order of severity (critical first)
	severities := []model.Severity{
		model.SeverityCritical,
		model.SeverityHigh,
		model.SeverityMedium,
		model.SeverityLow,
		model.SeverityInfo,
	}

	for _, severity := range severities {
		findings := summary.GetFindingsBySeverity(severity)
		if len(findings) == 0 && !w.showEmpty {
			continue
		}

		w.writeFindingsForSeverity(sb, severity, findings)
	}
}

// writeFindingsForSeverity writes findings of a specific severity level.
func (w *SimpleWriter) writeFindingsForSeverity(sb *strings.Builder, severity model.Severity, findings []model.Finding) {
	// Severity header with visual indicator
	indicator := w.getSeverityIndicator(severity)
	sb.WriteString(fmt.Sprintf("[%s] %s\n", indicator, severity.String()))

	if len(findings) == 0 {
		sb.WriteString("  No findings\n\n")
		return
	}

	for _, finding := range findings {
		sb.WriteString(fmt.Sprintf("  * %s\n", finding.Title))
		sb.WriteString(fmt.Sprintf("    Location: %s:%d\n", finding.File, finding.Line))
		if finding.Contract != "" {
			sb.WriteString(fmt.Sprintf("    Contract: %s\n", finding.Contract))
		}
		if finding.SavedGas > 0 {
			sb.WriteString(fmt.Sprintf("    Saves: ~%d gas\n", finding.SavedGas))
		}
		if w.verbose && finding.Description != "" {
			sb.WriteString(fmt.Sprintf("    Description: %s\n", finding.Description))
		}
		if w.verbose && finding.Recommendation != "" {
			sb.WriteString(fmt.Sprintf("    Recommendation: %s\n", finding.Recommendation))
		}
	}
	sb.WriteString("\n")
}

// getSeverityIndicator returns a visual indicator for the severity level.
func (w *SimpleWriter) getSeverityIndicator(severity model.Severity) string {
	switch severity {
	case model.SeverityCritical:
		return "!!!"
	case model.SeverityHigh:
		return "!!"
	case model.SeverityMedium:
		return "!"
	case model.SeverityLow:
		return "-"
	case model.SeverityInfo:
		return "i"
	default:
		return "?"
	}
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder, summary *model.ScanSummary) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	if summary.TotalSavedGas > 0 {
		sb.WriteString(fmt.Sprintf("Estimated savings if every finding is fixed: ~%d gas\n", summary.TotalSavedGas))
	}
	sb.WriteString("Report generated by gaslint\n")
	sb.WriteString("https://github.com/gaslint/gaslint\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}

// categoryTitle renders a catalog category name for display.
// Categories are stored lower-case ("storage", "calldata") and
// title-cased only at the presentation edge.
func categoryTitle(category string) string {
	return cases.Title(language.English).String(category)
}
