package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages. Errors that carry a dynamic value (a rule ID or
// severity name) are wrapped with fmt.Errorf("%w ...") so errors.Is still
// matches the sentinel.
var (
	// ErrNoTarget is returned when no scan target is specified.
	// This error occurs when no positional argument provides a path.
	ErrNoTarget = errors.New("no target specified: provide a Solidity file or directory")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	// A batch size of zero would mean no concurrent scans, effectively
	// stopping the scanning process.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidImportDepth is returned when the import depth is negative.
	// Use 0 to disable import following entirely.
	ErrInvalidImportDepth = errors.New("invalid import depth: must be non-negative")

	// ErrUnknownRule is returned when a disabled rule or severity override
	// names a rule ID that is not in the catalog. Usually a typo.
	ErrUnknownRule = errors.New("unknown rule")

	// ErrInvalidSeverity is returned when a severity name does not parse.
	// Severity names are matched case-insensitively.
	ErrInvalidSeverity = errors.New("invalid severity")
)
