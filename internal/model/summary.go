package model

import (
	"sort"
	"time"
)

// ScanSummary is a summarized, human-readable report.
// It extracts key figures from the full scan report for quick review.
//
// Design decision: We create a separate summary rather than just printing
// parts of ScanReport because:
// 1. It provides a consistent, curated view of the most important findings
// 2. It can be serialized to JSON for tools that want structured but simple output
// 3. It separates presentation concerns from data collection
type ScanSummary struct {
	// Target is the scanned path.
	Target string `json:"target"`

	// DateScanned is when the scan was performed.
	DateScanned time.Time `json:"date_scanned"`

	// === Severity Summary ===

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

	// === Source Statistics ===

	// FilesScanned is the number of Solidity files discovered.
	FilesScanned int `json:"files_scanned"`

	// FilesFailed is the number of files that failed to parse.
	FilesFailed int `json:"files_failed"`

	// ContractCount is the number of contracts, libraries, and interfaces.
	ContractCount int `json:"contract_count"`

	// TotalLines is the number of source lines across all files.
	TotalLines int `json:"total_lines"`

	// === Gas Statistics ===

	// TotalSavedGas is the estimated gas saved by fixing every finding once.
	TotalSavedGas uint64 `json:"total_saved_gas"`

	// RuleStats tallies findings per rule, most frequent first.
	RuleStats []RuleStat `json:"rule_stats,omitempty"`

	// === Findings ===

	// Findings contains all findings, carried for detailed output.
	Findings []Finding `json:"findings,omitempty"`

	// TimedOut indicates if the scan was terminated early.
	TimedOut bool `json:"timed_out"`

	// Error contains any error message if the scan failed.
	Error string `json:"error,omitempty"`
}

// RuleStat aggregates the findings of one rule across a scan.
type RuleStat struct {
	// RuleID is the rule identifier.
	RuleID string `json:"rule_id"`

	// TipNumber is the catalog ordinal of the rule's tip.
	TipNumber int `json:"tip_number"`

	// Severity is the severity the rule reported at.
	Severity Severity `json:"severity"`

	// Count is how many findings the rule produced.
	Count int `json:"count"`

	// SavedGas is the summed estimate over the rule's findings.
	SavedGas uint64 `json:"saved_gas"`
}

// NewScanSummary creates a ScanSummary from a ScanReport.
func NewScanSummary(report *ScanReport) *ScanSummary {
	summary := &ScanSummary{
		Target:        report.Target,
		DateScanned:   report.DateScanned,
		CriticalCount: report.CriticalCount,
		HighCount:     report.HighCount,
		MediumCount:   report.MediumCount,
		LowCount:      report.LowCount,
		InfoCount:     report.InfoCount,
		FilesScanned:  len(report.Sources),
		TotalSavedGas: report.TotalSavedGas,
		Findings:      report.Findings,
		TimedOut:      report.TimedOut,
	}

	if report.Error != nil {
		summary.Error = report.Error.Error()
	}

	for _, src := range report.Sources {
		summary.TotalLines += src.Lines
		summary.ContractCount += len(src.Contracts)
		if src.ParseError != "" {
			summary.FilesFailed++
		}
	}

	summary.RuleStats = tallyRules(report.Findings)

	return summary
}

// tallyRules groups findings per rule and orders the tally by count,
// breaking ties by summed savings so the most expensive habit tops the list.
func tallyRules(findings []Finding) []RuleStat {
	byRule := make(map[string]*RuleStat)
	for _, f := range findings {
		stat, ok := byRule[f.RuleID]
		if !ok {
			stat = &RuleStat{RuleID: f.RuleID, TipNumber: f.TipNumber, Severity: f.Severity}
			byRule[f.RuleID] = stat
		}
		stat.Count++
		stat.SavedGas += f.SavedGas
	}

	stats := make([]RuleStat, 0, len(byRule))
	for _, stat := range byRule {
		stats = append(stats, *stat)
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		if stats[i].SavedGas != stats[j].SavedGas {
			return stats[i].SavedGas > stats[j].SavedGas
		}
		return stats[i].RuleID < stats[j].RuleID
	})
	return stats
}

// TotalFindings returns the total number of findings.
func (s *ScanSummary) TotalFindings() int {
	return len(s.Findings)
}

// HasFindings returns true if there are any findings.
func (s *ScanSummary) HasFindings() bool {
	return len(s.Findings) > 0
}

// GetFindingsBySeverity returns findings filtered by severity.
func (s *ScanSummary) GetFindingsBySeverity(severity Severity) []Finding {
	var result []Finding
	for _, f := range s.Findings {
		if f.Severity == severity {
			result = append(result, f)
		}
	}
	return result
}
