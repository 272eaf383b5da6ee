package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gaslint/gaslint/internal/database"
	"github.com/gaslint/gaslint/internal/model"
)

// findingsNamed builds one medium finding per rule ID, each with a
// distinct location so their comparison keys differ.
func findingsNamed(ruleIDs ...string) []model.Finding {
	findings := make([]model.Finding, 0, len(ruleIDs))
	for i, id := range ruleIDs {
		findings = append(findings, model.Finding{
			RuleID:       id,
			Severity:     model.SeverityMedium,
			SeverityText: model.SeverityMedium.String(),
			Title:        "Finding " + id,
			File:         "contracts/Token.sol",
			Line:         10 + i,
			SavedGas:     100,
			Snippet:      id,
		})
	}
	return findings
}

// reportWithFindings builds a report containing the given findings.
func reportWithFindings(target string, findings []model.Finding) *model.ScanReport {
	scanReport := model.NewScanReport(target)
	for _, f := range findings {
		scanReport.AddFinding(f)
	}
	return scanReport
}

// captureStdout runs fn while capturing everything written to os.Stdout.
// Callers must not run in parallel with other stdout writers.
func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fnErr := fn()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatalf("failed to read captured output: %v", err)
	}

	return buf.String(), fnErr
}

// TestNewCompareCmd tests the compare command creation.
func TestNewCompareCmd(t *testing.T) {
	t.Parallel()

	cmd := NewCompareCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "compare [path]" {
			t.Errorf("expected use 'compare [path]', got %q", cmd.Use)
		}
	})

	t.Run("has short description", func(t *testing.T) {
		t.Parallel()
		if cmd.Short == "" {
			t.Error("expected non-empty short description")
		}
	})

	t.Run("has expected flags", func(t *testing.T) {
		t.Parallel()
		flagsWithShort := map[string]string{
			"list":         "l",
			"list-targets": "L",
			"with-scan-id": "i",
			"since":        "s",
			"json":         "j",
			"markdown":     "m",
		}
		for name, short := range flagsWithShort {
			flag := cmd.Flags().Lookup(name)
			if flag == nil {
				t.Errorf("expected %s flag", name)
				continue
			}
			if flag.Shorthand != short {
				t.Errorf("expected %s shorthand %q, got %q", name, short, flag.Shorthand)
			}
		}
	})
}

// TestCompareReports tests the comparison logic between two scan reports.
func TestCompareReports(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name              string
		previousFindings  []string
		currentFindings   []string
		wantNewCount      int
		wantResolvedCount int
		wantUnchanged     int
		wantDirection     string
	}{
		{
			name:              "new finding appears",
			previousFindings:  []string{"cache-array-length"},
			currentFindings:   []string{"cache-array-length", "prefix-increment"},
			wantNewCount:      1,
			wantResolvedCount: 0,
			wantUnchanged:     1,
			wantDirection:     directionWorsened,
		},
		{
			name:              "finding resolved",
			previousFindings:  []string{"cache-array-length", "prefix-increment"},
			currentFindings:   []string{"cache-array-length"},
			wantNewCount:      0,
			wantResolvedCount: 1,
			wantUnchanged:     1,
			wantDirection:     directionImproved,
		},
		{
			name:              "no changes",
			previousFindings:  []string{"cache-array-length", "prefix-increment"},
			currentFindings:   []string{"cache-array-length", "prefix-increment"},
			wantNewCount:      0,
			wantResolvedCount: 0,
			wantUnchanged:     2,
			wantDirection:     directionUnchanged,
		},
		{
			name:              "complete turnover with equal weight",
			previousFindings:  []string{"cache-array-length"},
			currentFindings:   []string{"prefix-increment"},
			wantNewCount:      1,
			wantResolvedCount: 1,
			wantUnchanged:     0,
			wantDirection:     directionUnchanged,
		},
		{
			name:              "both empty",
			previousFindings:  nil,
			currentFindings:   nil,
			wantNewCount:      0,
			wantResolvedCount: 0,
			wantUnchanged:     0,
			wantDirection:     directionUnchanged,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			previous := reportWithFindings("contracts", findingsNamed(tt.previousFindings...))
			current := reportWithFindings("contracts", findingsNamed(tt.currentFindings...))

			result := compareReports(previous, current)

			if len(result.NewFindings) != tt.wantNewCount {
				t.Errorf("expected %d new findings, got %d", tt.wantNewCount, len(result.NewFindings))
			}
			if len(result.ResolvedFindings) != tt.wantResolvedCount {
				t.Errorf("expected %d resolved findings, got %d", tt.wantResolvedCount, len(result.ResolvedFindings))
			}
			if result.UnchangedCount != tt.wantUnchanged {
				t.Errorf("expected %d unchanged findings, got %d", tt.wantUnchanged, result.UnchangedCount)
			}
			if result.GasChange.Direction != tt.wantDirection {
				t.Errorf("expected direction %q, got %q", tt.wantDirection, result.GasChange.Direction)
			}
			if result.Target != "contracts" {
				t.Errorf("expected target 'contracts', got %q", result.Target)
			}
		})
	}
}

// TestCalculateGasChange tests gas profile change calculation.
func TestCalculateGasChange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name              string
		previous          ScanMetadata
		current           ScanMetadata
		wantDirection     string
		wantSavedGasDelta int64
	}{
		{
			name:              "improved when critical resolved",
			previous:          ScanMetadata{CriticalCount: 2, TotalSavedGas: 40000},
			current:           ScanMetadata{CriticalCount: 1, TotalSavedGas: 20000},
			wantDirection:     directionImproved,
			wantSavedGasDelta: -20000,
		},
		{
			name:              "worsened when high appears",
			previous:          ScanMetadata{},
			current:           ScanMetadata{HighCount: 1, TotalSavedGas: 2600},
			wantDirection:     directionWorsened,
			wantSavedGasDelta: 2600,
		},
		{
			name:              "unchanged when counts match",
			previous:          ScanMetadata{MediumCount: 3},
			current:           ScanMetadata{MediumCount: 3},
			wantDirection:     directionUnchanged,
			wantSavedGasDelta: 0,
		},
		{
			name:              "trading high for low improves",
			previous:          ScanMetadata{HighCount: 1},
			current:           ScanMetadata{LowCount: 2},
			wantDirection:     directionImproved,
			wantSavedGasDelta: 0,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			change := calculateGasChange(tt.previous, tt.current)
			if change.Direction != tt.wantDirection {
				t.Errorf("expected direction %q, got %q", tt.wantDirection, change.Direction)
			}
			if change.SavedGasDelta != tt.wantSavedGasDelta {
				t.Errorf("expected saved gas delta %d, got %d", tt.wantSavedGasDelta, change.SavedGasDelta)
			}
		})
	}

	t.Run("calculates severity deltas", func(t *testing.T) {
		t.Parallel()

		previous := ScanMetadata{CriticalCount: 1, HighCount: 2, MediumCount: 3, LowCount: 4, InfoCount: 5}
		current := ScanMetadata{CriticalCount: 2, HighCount: 1, MediumCount: 3, LowCount: 6, InfoCount: 0}

		change := calculateGasChange(previous, current)
		if change.CriticalDelta != 1 {
			t.Errorf("expected critical delta 1, got %d", change.CriticalDelta)
		}
		if change.HighDelta != -1 {
			t.Errorf("expected high delta -1, got %d", change.HighDelta)
		}
		if change.MediumDelta != 0 {
			t.Errorf("expected medium delta 0, got %d", change.MediumDelta)
		}
		if change.LowDelta != 2 {
			t.Errorf("expected low delta 2, got %d", change.LowDelta)
		}
		if change.InfoDelta != -5 {
			t.Errorf("expected info delta -5, got %d", change.InfoDelta)
		}
	})
}

// TestFormatFindingSummary tests finding summary formatting.
func TestFormatFindingSummary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		summary map[string]int
		want    string
	}{
		{
			name:    "nil map",
			summary: nil,
			want:    "N/A",
		},
		{
			name:    "empty map",
			summary: map[string]int{},
			want:    "No findings",
		},
		{
			name:    "all zeros",
			summary: map[string]int{"critical": 0, "high": 0, "medium": 0},
			want:    "No findings",
		},
		{
			name:    "mixed severities",
			summary: map[string]int{"critical": 1, "high": 2, "medium": 3},
			want:    "C:1 H:2 M:3",
		},
		{
			name:    "skips zero counts",
			summary: map[string]int{"critical": 0, "high": 5, "low": 0, "info": 10},
			want:    "H:5 I:10",
		},
		{
			name:    "single severity",
			summary: map[string]int{"low": 4},
			want:    "L:4",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := formatFindingSummary(tt.summary)
			if got != tt.want {
				t.Errorf("formatFindingSummary(%v) = %q, want %q", tt.summary, got, tt.want)
			}
		})
	}
}

// TestFormatGas tests gas amount formatting.
func TestFormatGas(t *testing.T) {
	t.Parallel()

	if got := formatGas(0); got != "-" {
		t.Errorf("formatGas(0) = %q, want %q", got, "-")
	}
	if got := formatGas(2600); got != "~2600 gas" {
		t.Errorf("formatGas(2600) = %q, want %q", got, "~2600 gas")
	}
}

// TestFormatDelta tests numeric delta formatting.
func TestFormatDelta(t *testing.T) {
	t.Parallel()

	tests := []struct {
		delta int
		want  string
	}{
		{5, "+5"},
		{-3, "-3"},
		{0, "0"},
	}

	for _, tt := range tests {
		if got := formatDelta(tt.delta); got != tt.want {
			t.Errorf("formatDelta(%d) = %q, want %q", tt.delta, got, tt.want)
		}
	}
}

// TestFormatGasDelta tests gas delta formatting.
func TestFormatGasDelta(t *testing.T) {
	t.Parallel()

	tests := []struct {
		delta int64
		want  string
	}{
		{120, "+120 gas"},
		{-75, "-75 gas"},
		{0, "0"},
	}

	for _, tt := range tests {
		if got := formatGasDelta(tt.delta); got != tt.want {
			t.Errorf("formatGasDelta(%d) = %q, want %q", tt.delta, got, tt.want)
		}
	}
}

// TestFormatDirection tests gas profile direction formatting.
func TestFormatDirection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		direction string
		want      string
	}{
		{directionImproved, "IMPROVED (fewer costly findings)"},
		{directionWorsened, "WORSENED (more costly findings)"},
		{directionUnchanged, "UNCHANGED"},
		{"", "UNCHANGED"},
	}

	for _, tt := range tests {
		if got := formatDirection(tt.direction); got != tt.want {
			t.Errorf("formatDirection(%q) = %q, want %q", tt.direction, got, tt.want)
		}
	}
}

// sampleComparison builds a comparison with one new, one resolved, and
// one unchanged finding.
func sampleComparison() *ComparisonResult {
	previous := reportWithFindings("contracts", findingsNamed("cache-array-length", "prefix-increment"))
	current := reportWithFindings("contracts", findingsNamed("cache-array-length", "short-revert-strings"))
	return compareReports(previous, current)
}

// TestOutputComparisonText tests text output formatting.
// Not parallel because it captures os.Stdout.
func TestOutputComparisonText(t *testing.T) {
	output, err := captureStdout(t, func() error {
		return outputComparisonText(sampleComparison())
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expectedStrings := []string{
		"Scan Comparison: contracts",
		"Gas Profile:",
		"Findings Summary:",
		"Estimated savings:",
		"New Findings (1):",
		"Resolved Findings (1):",
		"Unchanged: 1 findings",
	}
	for _, want := range expectedStrings {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q", want)
		}
	}
}

// TestOutputComparisonJSON tests JSON output formatting.
// Not parallel because it captures os.Stdout.
func TestOutputComparisonJSON(t *testing.T) {
	output, err := captureStdout(t, func() error {
		return outputComparisonJSON(sampleComparison())
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded ComparisonResult
	if err := json.Unmarshal([]byte(output), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if decoded.Target != "contracts" {
		t.Errorf("expected target 'contracts', got %q", decoded.Target)
	}
	if len(decoded.NewFindings) != 1 {
		t.Errorf("expected 1 new finding, got %d", len(decoded.NewFindings))
	}
	if len(decoded.ResolvedFindings) != 1 {
		t.Errorf("expected 1 resolved finding, got %d", len(decoded.ResolvedFindings))
	}
	if decoded.UnchangedCount != 1 {
		t.Errorf("expected 1 unchanged finding, got %d", decoded.UnchangedCount)
	}
}

// TestOutputComparisonMarkdown tests Markdown output formatting.
// Not parallel because it captures os.Stdout.
func TestOutputComparisonMarkdown(t *testing.T) {
	output, err := captureStdout(t, func() error {
		return outputComparisonMarkdown(sampleComparison())
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expectedStrings := []string{
		"# Scan Comparison: contracts",
		"## Summary",
		"| Metric | Previous | Current | Change |",
		"## New Findings (1)",
		"## Resolved Findings (1)",
		"*1 findings unchanged*",
	}
	for _, want := range expectedStrings {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q", want)
		}
	}
}

// TestRunComparison tests comparison against a real database.
// Not parallel because comparisons print to os.Stdout.
func TestRunComparison(t *testing.T) {
	ctx := context.Background()

	setupDB := func(t *testing.T) *database.ScanDB {
		t.Helper()
		db, err := database.Open(t.TempDir(), database.DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		t.Cleanup(func() { db.Close() })
		return db
	}

	saveReport := func(t *testing.T, db *database.ScanDB, scanReport *model.ScanReport) {
		t.Helper()
		if _, err := db.SaveScanReport(ctx, scanReport); err != nil {
			t.Fatalf("failed to save report: %v", err)
		}
	}

	t.Run("errors without history", func(t *testing.T) {
		db := setupDB(t)

		err := runComparison(ctx, db, "contracts", 0, "", false, false)
		if err == nil {
			t.Fatal("expected error for empty history")
		}
		if !strings.Contains(err.Error(), "no scan history") {
			t.Errorf("expected 'no scan history' error, got %v", err)
		}
	})

	t.Run("errors with single scan", func(t *testing.T) {
		db := setupDB(t)
		saveReport(t, db, reportWithFindings("contracts", findingsNamed("cache-array-length")))

		err := runComparison(ctx, db, "contracts", 0, "", false, false)
		if err == nil {
			t.Fatal("expected error for single scan")
		}
		if !strings.Contains(err.Error(), "at least 2 scans are required") {
			t.Errorf("expected 'at least 2 scans are required' error, got %v", err)
		}
	})

	t.Run("compares latest two scans", func(t *testing.T) {
		db := setupDB(t)
		saveReport(t, db, reportWithFindings("contracts", findingsNamed("cache-array-length")))
		time.Sleep(10 * time.Millisecond)
		saveReport(t, db, reportWithFindings("contracts", findingsNamed("cache-array-length", "prefix-increment")))

		output, err := captureStdout(t, func() error {
			return runComparison(ctx, db, "contracts", 0, "", false, false)
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(output, "New Findings (1):") {
			t.Errorf("expected one new finding in output, got:\n%s", output)
		}
	})

	t.Run("compares with specific scan id", func(t *testing.T) {
		db := setupDB(t)
		saveReport(t, db, reportWithFindings("contracts", findingsNamed("cache-array-length")))
		time.Sleep(10 * time.Millisecond)
		saveReport(t, db, reportWithFindings("contracts", findingsNamed("cache-array-length", "prefix-increment")))
		time.Sleep(10 * time.Millisecond)
		saveReport(t, db, reportWithFindings("contracts", findingsNamed("cache-array-length", "prefix-increment", "short-revert-strings")))

		metadata, err := db.GetScanHistoryWithMetadata(ctx, "contracts")
		if err != nil {
			t.Fatalf("failed to get scan metadata: %v", err)
		}
		if len(metadata) != 3 {
			t.Fatalf("expected 3 scans, got %d", len(metadata))
		}

		// Metadata is newest-first, so the last entry is the oldest scan
		oldestID := metadata[len(metadata)-1].ID

		output, err := captureStdout(t, func() error {
			return runComparison(ctx, db, "contracts", oldestID, "", false, false)
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(output, "New Findings (2):") {
			t.Errorf("expected two new findings in output, got:\n%s", output)
		}
	})

	t.Run("errors for unknown scan id", func(t *testing.T) {
		db := setupDB(t)
		saveReport(t, db, reportWithFindings("contracts", findingsNamed("cache-array-length")))

		err := runComparison(ctx, db, "contracts", 9999, "", false, false)
		if err == nil {
			t.Fatal("expected error for unknown scan ID")
		}
		if !strings.Contains(err.Error(), "not found") {
			t.Errorf("expected 'not found' error, got %v", err)
		}
	})

	t.Run("rejects scan id from another target", func(t *testing.T) {
		db := setupDB(t)
		saveReport(t, db, reportWithFindings("other", findingsNamed("cache-array-length")))
		time.Sleep(10 * time.Millisecond)
		saveReport(t, db, reportWithFindings("contracts", findingsNamed("cache-array-length")))

		otherMetadata, err := db.GetScanHistoryWithMetadata(ctx, "other")
		if err != nil {
			t.Fatalf("failed to get scan metadata: %v", err)
		}
		if len(otherMetadata) != 1 {
			t.Fatalf("expected 1 scan for other, got %d", len(otherMetadata))
		}

		err = runComparison(ctx, db, "contracts", otherMetadata[0].ID, "", false, false)
		if err == nil {
			t.Fatal("expected error for mismatched target")
		}
		if !strings.Contains(err.Error(), "belongs to") {
			t.Errorf("expected 'belongs to' error, got %v", err)
		}
	})

	t.Run("compares since date", func(t *testing.T) {
		db := setupDB(t)
		saveReport(t, db, reportWithFindings("contracts", findingsNamed("cache-array-length")))
		time.Sleep(10 * time.Millisecond)
		saveReport(t, db, reportWithFindings("contracts", findingsNamed("cache-array-length", "prefix-increment")))

		output, err := captureStdout(t, func() error {
			return runComparison(ctx, db, "contracts", 0, "2000-01-01", false, false)
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(output, "New Findings (1):") {
			t.Errorf("expected one new finding in output, got:\n%s", output)
		}
	})

	t.Run("errors on bad since date", func(t *testing.T) {
		db := setupDB(t)
		saveReport(t, db, reportWithFindings("contracts", findingsNamed("cache-array-length")))

		err := runComparison(ctx, db, "contracts", 0, "not-a-date", false, false)
		if err == nil {
			t.Fatal("expected error for invalid date")
		}
		if !strings.Contains(err.Error(), "invalid date format") {
			t.Errorf("expected 'invalid date format' error, got %v", err)
		}
	})

	t.Run("errors when no scans since date", func(t *testing.T) {
		db := setupDB(t)
		saveReport(t, db, reportWithFindings("contracts", findingsNamed("cache-array-length")))
		time.Sleep(10 * time.Millisecond)
		saveReport(t, db, reportWithFindings("contracts", findingsNamed("cache-array-length")))

		err := runComparison(ctx, db, "contracts", 0, "2999-01-01", false, false)
		if err == nil {
			t.Fatal("expected error when no scans match the date")
		}
		if !strings.Contains(err.Error(), "no scans found since") {
			t.Errorf("expected 'no scans found since' error, got %v", err)
		}
	})
}

// TestListScannedTargets tests target listing output.
// Not parallel because it captures os.Stdout.
func TestListScannedTargets(t *testing.T) {
	ctx := context.Background()

	t.Run("empty database", func(t *testing.T) {
		db, err := database.Open(t.TempDir(), database.DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		output, err := captureStdout(t, func() error {
			return listScannedTargets(ctx, db)
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(output, "No scanned targets found") {
			t.Errorf("expected empty-database message, got:\n%s", output)
		}
	})

	t.Run("lists targets", func(t *testing.T) {
		db, err := database.Open(t.TempDir(), database.DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		if _, err := db.SaveScanReport(ctx, reportWithFindings("contracts", nil)); err != nil {
			t.Fatalf("failed to save report: %v", err)
		}
		if _, err := db.SaveScanReport(ctx, reportWithFindings("periphery", nil)); err != nil {
			t.Fatalf("failed to save report: %v", err)
		}

		output, err := captureStdout(t, func() error {
			return listScannedTargets(ctx, db)
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(output, "Scanned targets (2):") {
			t.Errorf("expected two targets, got:\n%s", output)
		}
		if !strings.Contains(output, "contracts") || !strings.Contains(output, "periphery") {
			t.Errorf("expected both targets in output, got:\n%s", output)
		}
	})
}

// TestListScanHistory tests scan history listing output.
// Not parallel because it captures os.Stdout.
func TestListScanHistory(t *testing.T) {
	ctx := context.Background()

	t.Run("no history", func(t *testing.T) {
		db, err := database.Open(t.TempDir(), database.DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		output, err := captureStdout(t, func() error {
			return listScanHistory(ctx, db, "contracts")
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(output, "No scan history found for contracts") {
			t.Errorf("expected no-history message, got:\n%s", output)
		}
	})

	t.Run("lists history rows", func(t *testing.T) {
		db, err := database.Open(t.TempDir(), database.DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		if _, err := db.SaveScanReport(ctx, reportWithFindings("contracts", findingsNamed("cache-array-length"))); err != nil {
			t.Fatalf("failed to save report: %v", err)
		}
		time.Sleep(10 * time.Millisecond)
		if _, err := db.SaveScanReport(ctx, reportWithFindings("contracts", findingsNamed("cache-array-length", "prefix-increment"))); err != nil {
			t.Fatalf("failed to save report: %v", err)
		}

		output, err := captureStdout(t, func() error {
			return listScanHistory(ctx, db, "contracts")
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(output, "Scan history for contracts (2 scans):") {
			t.Errorf("expected two history rows, got:\n%s", output)
		}
		if !strings.Contains(output, "M:1") || !strings.Contains(output, "M:2") {
			t.Errorf("expected finding summaries in output, got:\n%s", output)
		}
	})
}

// TestRunCompareCmdRequiresPath tests argument validation through the root command.
func TestRunCompareCmdRequiresPath(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()
	cmd.SetArgs([]string{"compare"})

	err := cmd.Execute()
	if err == nil {
		t.Fatal("expected error when no path is given")
	}
	if !strings.Contains(err.Error(), "target path is required") {
		t.Errorf("expected 'target path is required' error, got %v", err)
	}
}
