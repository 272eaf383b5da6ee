package model

import "fmt"

// Finding represents a single gas-optimization violation.
type Finding struct {
	// RuleID is the identifier of the rule that produced this finding,
	// e.g. "pack-storage-vars". It maps to a tip in the rules catalog.
	RuleID string `json:"rule_id"`

	// TipNumber is the ordinal of the tip in the catalog (1-31).
	TipNumber int `json:"tip_number"`

	// Severity is the gas-impact level.
	Severity Severity `json:"severity"`

	// SeverityText is the human-readable severity.
	SeverityText string `json:"severity_text"`

	// Title is a short description of the finding.
	Title string `json:"title"`

	// Description explains what was matched at this location.
	Description string `json:"description,omitempty"`

	// Impact explains why this pattern costs gas.
	Impact string `json:"impact,omitempty"`

	// Recommendation provides guidance on how to rewrite the code.
	Recommendation string `json:"recommendation,omitempty"`

	// SavedGas is the estimated gas saved per occurrence by fixing this.
	// Zero means the saving is situational and no figure is attached.
	SavedGas uint64 `json:"saved_gas"`

	// File is the path of the source file containing the finding.
	File string `json:"file"`

	// Line is the 1-based line number of the finding.
	Line int `json:"line"`

	// Column is the 1-based column of the finding, 0 when not tracked.
	Column int `json:"column,omitempty"`

	// Contract is the contract, library, or interface containing the finding.
	Contract string `json:"contract,omitempty"`

	// Snippet is the offending source fragment, single line, truncated.
	Snippet string `json:"snippet,omitempty"`
}

// Location returns the finding position in file:line form, with the column
// appended when tracked. This is the form editors and CI annotations expect.
func (f Finding) Location() string {
	if f.Column > 0 {
		return fmt.Sprintf("%s:%d:%d", f.File, f.Line, f.Column)
	}
	return fmt.Sprintf("%s:%d", f.File, f.Line)
}

// Key returns the deduplication key for the finding. Two findings with the
// same rule, position, and snippet are the same finding.
func (f Finding) Key() string {
	return fmt.Sprintf("%s|%s:%d|%s", f.RuleID, f.File, f.Line, f.Snippet)
}
