package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/gaslint/gaslint/internal/model"
	"github.com/gaslint/gaslint/internal/rules"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation, pull requests, and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the full report in Markdown format.
func (w *MarkdownWriter) Write(report *model.ScanReport) (int, error) {
	return w.WriteSummary(model.NewScanSummary(report))
}

// WriteSummary outputs the scan summary in Markdown format.
func (w *MarkdownWriter) WriteSummary(summary *model.ScanSummary) (int, error) {
	md := markdown.NewMarkdown(w.output)

	// Header
	w.writeHeader(md, summary)

	// Summary
	w.writeSummarySection(md, summary)

	// Rule breakdown
	w.writeRuleBreakdown(md, summary)

	// Findings by severity
	w.writeFindings(md, summary)

	// Footer
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with scan information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, summary *model.ScanSummary) {
	md.H1("Gaslint Report")
	md.PlainText("")

	filesScanned := strconv.Itoa(summary.FilesScanned)
	if summary.FilesFailed > 0 {
		filesScanned = fmt.Sprintf("%d (%d failed to parse)", summary.FilesScanned, summary.FilesFailed)
	}

	// Basic info table
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Target", "`" + summary.Target + "`"},
			{"Scan Date", summary.DateScanned.Format("2006-01-02 15:04:05 MST")},
			{"Files Scanned", filesScanned},
			{"Contracts", strconv.Itoa(summary.ContractCount)},
			{"Lines", strconv.Itoa(summary.TotalLines)},
			{"Status", w.getStatusText(summary)},
		},
	})
	md.PlainText("")
}

// getStatusText returns the status text based on summary state.
func (w *MarkdownWriter) getStatusText(summary *model.ScanSummary) string {
	if summary.TimedOut {
		return "⚠️ Timed Out (partial results)"
	}
	if summary.Error != "" {
		return "❌ Error - " + summary.Error
	}
	return "✅ Complete"
}

// writeSummarySection writes the severity summary section.
func (w *MarkdownWriter) writeSummarySection(md *markdown.Markdown, summary *model.ScanSummary) {
	md.H2("Severity Summary")
	md.PlainText("")

	// Summary table
	rows := [][]string{
		{"🔴 Critical", strconv.Itoa(summary.CriticalCount)},
		{"🟠 High", strconv.Itoa(summary.HighCount)},
		{"🟡 Medium", strconv.Itoa(summary.MediumCount)},
		{"🔵 Low", strconv.Itoa(summary.LowCount)},
		{"⚪ Info", strconv.Itoa(summary.InfoCount)},
		{"**Total**", "**" + strconv.Itoa(summary.TotalFindings()) + "**"},
	}
	if summary.TotalSavedGas > 0 {
		rows = append(rows, []string{"**Est. Savings**", fmt.Sprintf("**~%d gas**", summary.TotalSavedGas)})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Severity", "Count"},
		Rows:   rows,
	})
	md.PlainText("")

	// Add pie chart if there are findings
	if summary.HasFindings() {
		w.writePieChart(md, summary)
	}

	// Add alert based on severity
	w.writeAlert(md, summary)
}

// writePieChart writes a mermaid pie chart for severity distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, summary *model.ScanSummary) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Finding Severity Distribution"),
		piechart.WithShowData(true),
	)

	if summary.CriticalCount > 0 {
		chart.LabelAndIntValue("Critical", uint64(summary.CriticalCount))
	}
	if summary.HighCount > 0 {
		chart.LabelAndIntValue("High", uint64(summary.HighCount))
	}
	if summary.MediumCount > 0 {
		chart.LabelAndIntValue("Medium", uint64(summary.MediumCount))
	}
	if summary.LowCount > 0 {
		chart.LabelAndIntValue("Low", uint64(summary.LowCount))
	}
	if summary.InfoCount > 0 {
		chart.LabelAndIntValue("Info", uint64(summary.InfoCount))
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes an appropriate alert based on severity counts.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, summary *model.ScanSummary) {
	switch {
	case summary.CriticalCount > 0:
		md.Cautionf(
			"Critical gas waste detected! %d finding(s) point at structural storage costs.",
			summary.CriticalCount,
		)
	case summary.HighCount > 0:
		md.Warningf(
			"High-impact gas issues detected. %d finding(s) should be addressed before deployment.",
			summary.HighCount,
		)
	case summary.MediumCount > 0:
		md.Importantf(
			"Medium-impact issues found. %d finding(s) carry measurable per-call costs.",
			summary.MediumCount,
		)
	case summary.TotalFindings() > 0:
		md.Note("Only low-impact and informational findings detected.")
	default:
		md.Tip("No gas optimization issues detected.")
	}
	md.PlainText("")
}

// writeRuleBreakdown writes the per-rule tally section.
func (w *MarkdownWriter) writeRuleBreakdown(md *markdown.Markdown, summary *model.ScanSummary) {
	md.H2("Rule Breakdown")
	md.PlainText("")

	if len(summary.RuleStats) == 0 {
		md.PlainText("No rules triggered.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(summary.RuleStats))
	for i, stat := range summary.RuleStats {
		category := "-"
		if tip, ok := rules.TipByRuleID(stat.RuleID); ok {
			category = categoryTitle(tip.Category)
		}
		rows[i] = []string{
			"`" + stat.RuleID + "`",
			category,
			stat.Severity.String(),
			strconv.Itoa(stat.Count),
			fmt.Sprintf("~%d gas", stat.SavedGas),
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Rule", "Category", "Severity", "Count", "Est. Savings"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeFindings writes all findings grouped by severity.
func (w *MarkdownWriter) writeFindings(md *markdown.Markdown, summary *model.ScanSummary) {
	if !summary.HasFindings() {
		md.H2("Findings")
		md.PlainText("")
		md.PlainText("No gas optimization findings detected.")
		md.PlainText("")
		return
	}

	md.H2("Findings")
	md.PlainText("")

	severities := []struct {
		level  model.Severity
		header string
	}{
		{model.SeverityCritical, "### 🔴 Critical"},
		{model.SeverityHigh, "### 🟠 High"},
		{model.SeverityMedium, "### 🟡 Medium"},
		{model.SeverityLow, "### 🔵 Low"},
		{model.SeverityInfo, "### ⚪ Info"},
	}

	for _, sev := range severities {
		findings := summary.GetFindingsBySeverity(sev.level)
		if len(findings) == 0 {
			continue
		}

		md.PlainText(sev.header)
		md.PlainText("")
		w.writeFindingsTable(md, findings)
	}
}

// writeFindingsTable writes a table of findings with details.
func (w *MarkdownWriter) writeFindingsTable(md *markdown.Markdown, findings []model.Finding) {
	headers := []string{"Title", "Location", "Saves", "Recommendation"}

	rows := make([][]string, len(findings))
	for i, f := range findings {
		location := fmt.Sprintf("%s:%d", f.File, f.Line)
		saves := "-"
		if f.SavedGas > 0 {
			saves = fmt.Sprintf("~%d gas", f.SavedGas)
		}
		rec := f.Recommendation
		if rec == "" {
			rec = "-"
		}

		rows[i] = []string{
			f.Title,
			"`" + truncateString(location, 40) + "`",
			saves,
			truncateString(rec, 60),
		}
	}

	md.Table(markdown.TableSet{
		Header: headers,
		Rows:   rows,
	})
	md.PlainText("")

	// Add detailed descriptions for all findings
	for _, f := range findings {
		if f.Description != "" {
			md.Details(fmt.Sprintf("%s (%s:%d)", f.Title, f.File, f.Line), w.detailBody(f))
		}
	}
	md.PlainText("")
}

// detailBody builds the collapsible body for one finding. It carries the
// offending source line and the catalog's before/after fragments when the
// rule's tip has them.
func (w *MarkdownWriter) detailBody(f model.Finding) string {
	var sb strings.Builder
	sb.WriteString(f.Description)

	if f.Snippet != "" {
		sb.WriteString("\n\n```solidity\n")
		sb.WriteString(f.Snippet)
		sb.WriteString("\n```")
	}

	if tip, ok := rules.TipByRuleID(f.RuleID); ok && tip.Before != "" && tip.After != "" {
		sb.WriteString("\n\n**Before**\n\n```solidity\n")
		sb.WriteString(tip.Before)
		sb.WriteString("\n```\n\n**After**\n\n```solidity\n")
		sb.WriteString(tip.After)
		sb.WriteString("\n```")
	}

	return sb.String()
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [gaslint](https://github.com/gaslint/gaslint)*")
}

// truncateString truncates a string to maxLen characters with ellipsis.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
