package model

import (
	"time"
)

// ScanReport is the main scan result structure.
// It contains all information collected while linting one target.
//
// Design decision: We use a single large struct rather than many small ones
// to simplify serialization and database storage. The ScanSummary sub-struct
// groups the aggregate view for human-readable output.
type ScanReport struct {
	// === Basic Information ===

	// Target is the scanned path as given on the command line.
	Target string `json:"target"`

	// DateScanned is the timestamp when the scan was performed.
	DateScanned time.Time `json:"date_scanned"`

	// === Source Inventory ===

	// Sources contains every Solidity file the walker discovered,
	// including files that failed to parse.
	Sources []SourceFile `json:"sources,omitempty"`

	// === Findings ===

	// Findings contains all rule violations, in discovery order.
	Findings []Finding `json:"findings,omitempty"`

	// === Severity Summary ===
	// Counts are maintained by AddFinding so they never drift from Findings.

	// CriticalCount is the number of critical findings.
	CriticalCount int `json:"critical_count"`

	// HighCount is the number of high severity findings.
	HighCount int `json:"high_count"`

	// MediumCount is the number of medium severity findings.
	MediumCount int `json:"medium_count"`

	// LowCount is the number of low severity findings.
	LowCount int `json:"low_count"`

	// InfoCount is the number of informational findings.
	InfoCount int `json:"info_count"`

	// TotalSavedGas is the sum of per-occurrence estimates over all findings.
	// It is a rough upper bound per transaction touching every site, not a
	// measured figure.
	TotalSavedGas uint64 `json:"total_saved_gas"`

	// === Scan State ===

	// PerformedChecks lists the rule IDs that actually ran.
	// Rules disabled by config or skipped by pragma gates are absent.
	PerformedChecks []string `json:"performed_checks,omitempty"`

	// Duration is how long the scan took.
	Duration time.Duration `json:"duration_ns"`

	// TimedOut is true if the scan was terminated by context cancellation.
	TimedOut bool `json:"timed_out"`

	// Error contains any error that occurred during scanning.
	// Only set if the scan failed or partially failed.
	Error error `json:"-"` // Excluded from JSON

	// ErrorMessage is the string representation of Error for serialization.
	ErrorMessage string `json:"error,omitempty"` //nolint:tagliatelle // error is conventional
}

// NewScanReport creates a new report for the given target path.
func NewScanReport(target string) *ScanReport {
	return &ScanReport{
		Target:      target,
		DateScanned: time.Now(),
	}
}

// AddSource records a discovered source file on the report.
func (r *ScanReport) AddSource(src SourceFile) {
	r.Sources = append(r.Sources, src)
}

// AddFinding appends a finding, skipping exact duplicates and keeping the
// severity counters and the savings total in sync.
//
// Design decision: Dedupe lives here rather than in each rule because:
// 1. Overlapping rules can report the same site independently
// 2. Import following can reach the same file through two paths
// 3. A single chokepoint keeps the counts trustworthy
func (r *ScanReport) AddFinding(finding Finding) {
	key := finding.Key()
	for _, f := range r.Findings {
		if f.Key() == key {
			return
		}
	}

	r.Findings = append(r.Findings, finding)
	r.TotalSavedGas += finding.SavedGas

	switch finding.Severity {
	case SeverityCritical:
		r.CriticalCount++
	case SeverityHigh:
		r.HighCount++
	case SeverityMedium:
		r.MediumCount++
	case SeverityLow:
		r.LowCount++
	case SeverityInfo:
		r.InfoCount++
	}
}

// TotalFindings returns the total number of findings.
func (r *ScanReport) TotalFindings() int {
	return len(r.Findings)
}

// HasFindings returns true if there are any findings.
func (r *ScanReport) HasFindings() bool {
	return len(r.Findings) > 0
}

// FindingsBySeverity returns findings filtered by severity.
func (r *ScanReport) FindingsBySeverity(severity Severity) []Finding {
	var result []Finding
	for _, f := range r.Findings {
		if f.Severity == severity {
			result = append(result, f)
		}
	}
	return result
}

// MaxSeverity returns the highest severity present among the findings.
// Returns SeverityInfo and false when there are no findings at all.
func (r *ScanReport) MaxSeverity() (Severity, bool) {
	if len(r.Findings) == 0 {
		return SeverityInfo, false
	}
	maxSev := SeverityInfo
	for _, f := range r.Findings {
		if f.Severity > maxSev {
			maxSev = f.Severity
		}
	}
	return maxSev, true
}

// ParsedFileCount returns how many sources parsed cleanly.
func (r *ScanReport) ParsedFileCount() int {
	n := 0
	for _, src := range r.Sources {
		if src.ParseError == "" {
			n++
		}
	}
	return n
}

// FailedFiles returns the paths of sources that failed to parse.
func (r *ScanReport) FailedFiles() []string {
	var failed []string
	for _, src := range r.Sources {
		if src.ParseError != "" {
			failed = append(failed, src.Path)
		}
	}
	return failed
}
