package model

import (
	"fmt"
	"strings"
)

// Severity represents how much gas a finding is expected to waste.
// This allows categorizing findings by their impact on transaction cost.
//
// Design decision: We use iota-based constants rather than string constants
// for efficiency in comparisons and sorting. The String() method provides
// human-readable output when needed.
type Severity int

const (
	// SeverityInfo indicates advisory findings with no fixed gas figure.
	// Examples: selector ordering, batch-operation opportunities.
	// These depend on call patterns the linter cannot see, so no estimate is attached.
	SeverityInfo Severity = iota

	// SeverityLow indicates small per-occurrence savings, typically under 100 gas.
	// Examples: prefix increment, redundant boolean comparison, default-value init.
	// Individually minor, but they add up inside loops.
	SeverityLow

	// SeverityMedium indicates savings in the hundreds of gas per occurrence.
	// Examples: cached array length, unchecked loop increments, shift arithmetic.
	SeverityMedium

	// SeverityHigh indicates savings in the thousands of gas per occurrence.
	// Examples: calldata instead of memory, custom errors, constant/immutable state.
	// These usually remove a cold storage read or significant deployment bytecode.
	SeverityHigh

	// SeverityCritical indicates savings of tens of thousands of gas.
	// Examples: storage-slot packing, redundant SSTOREs.
	// Each avoided storage slot write is worth roughly a full SSTORE (20000 gas).
	SeverityCritical
)

// Severity thresholds in estimated gas saved per occurrence.
// The bands follow the EVM gas schedule: 20000 is the cost of setting a
// storage slot, 2100 the cost of a cold SLOAD, 100 a warm storage access.
const (
	criticalSavingsThreshold = 20000
	highSavingsThreshold     = 2000
	mediumSavingsThreshold   = 100
)

// String returns a human-readable representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityLow:
		return "LOW"
	case SeverityMedium:
		return "MEDIUM"
	case SeverityHigh:
		return "HIGH"
	case SeverityCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// ParseSeverity converts a severity name to a Severity value.
// Matching is case-insensitive. Used for CLI flags and config overrides.
func ParseSeverity(name string) (Severity, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "INFO":
		return SeverityInfo, nil
	case "LOW":
		return SeverityLow, nil
	case "MEDIUM":
		return SeverityMedium, nil
	case "HIGH":
		return SeverityHigh, nil
	case "CRITICAL":
		return SeverityCritical, nil
	default:
		return SeverityInfo, fmt.Errorf("unknown severity %q", name)
	}
}

// SeverityFromSavings maps an estimated per-occurrence gas saving to a
// severity band. Zero means the saving is situational and the finding is
// advisory.
//
// Design decision: Severity derives from the gas schedule rather than from
// per-rule judgment calls because:
// 1. It keeps the ranking defensible: a slot saved outranks an opcode saved
// 2. Rules only need to estimate gas; severity follows automatically
// 3. Re-banding after a schedule change is a one-place edit
func SeverityFromSavings(savedGas uint64) Severity {
	switch {
	case savedGas >= criticalSavingsThreshold:
		return SeverityCritical
	case savedGas >= highSavingsThreshold:
		return SeverityHigh
	case savedGas >= mediumSavingsThreshold:
		return SeverityMedium
	case savedGas > 0:
		return SeverityLow
	default:
		return SeverityInfo
	}
}
