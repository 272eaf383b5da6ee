package config

import (
	"fmt"
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/gaslint/gaslint/internal/model"
	"github.com/gaslint/gaslint/internal/rules"
)

// Default configuration values.
// These values are chosen for typical Solidity project layouts and can be
// overridden via CLI flags or the .gaslint.yaml configuration file.
const (
	// DefaultImportDepth of 3 follows local import chains far enough to cover
	// the base-contract hierarchies common in token and proxy projects without
	// pulling in a whole vendored dependency tree. Depth 0 means scan only the
	// files found under the target itself.
	DefaultImportDepth = 3

	// DefaultMaxFiles of 2000 bounds a scan on monorepos with huge vendored
	// node_modules-style trees. Projects legitimately larger than this should
	// raise the limit rather than the tool silently grinding through
	// generated code.
	DefaultMaxFiles = 2000

	// DefaultMaxFileSize of 2MB skips generated or concatenated Solidity
	// blobs (flattened verification bundles are the usual offenders). Real
	// hand-written contracts are orders of magnitude smaller.
	DefaultMaxFileSize = 2 * 1024 * 1024

	// DefaultBatchSize of 10 concurrent target scans balances throughput with
	// file-descriptor and memory usage. Each target holds its parsed sources
	// in memory during analysis.
	DefaultBatchSize = 10

	// AppName is the application name used for XDG directory paths.
	AppName = "gaslint"
)

// Config holds all configuration options for gaslint.
// This struct is designed to be populated from CLI flags and passed through
// the application via dependency injection rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., ScanConfig, ReportConfig) for simplicity. The number of options
// is manageable, and nesting would add complexity without significant benefit.
// If the configuration grows significantly, consider refactoring into sub-structs.
type Config struct {
	// Targets is the list of paths to scan. Each entry is a Solidity file
	// or a directory searched recursively for .sol files.
	Targets []string

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .gaslint.yaml in the current directory
	// and then in the user's home directory.
	ConfigFilePath string

	// ProjectConfigs holds per-project configurations loaded from the config
	// file. This is populated by LoadConfigFile and consulted per target.
	ProjectConfigs *File

	// ImportDepth is how many levels of local import statements to follow
	// beyond the files found under the target. Zero disables following.
	ImportDepth int

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// BatchSize is the number of concurrent scans when processing multiple
	// targets. Higher values increase throughput but hold more parsed
	// sources in memory at once.
	BatchSize int

	// JSONReport enables JSON report output instead of human-readable format.
	// When true, outputs the full report with all collected data.
	// When false, outputs the human-readable simple report (default).
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output instead of human-readable
	// format. When true, outputs GitHub Flavored Markdown with tables, alerts,
	// and pie charts. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	// Directories are created automatically if they don't exist.
	ReportFile string

	// MinSeverity drops findings below the named severity from the output.
	// Empty means report everything. Parsed with model.ParseSeverity.
	MinSeverity string

	// FailOn names the severity at or above which findings make the scan
	// exit non-zero, for CI gating. Empty means always exit zero on a
	// completed scan.
	FailOn string

	// DisabledRules lists rule IDs excluded from the scan.
	// Every entry must name a rule in the catalog.
	DisabledRules []string

	// SeverityOverrides re-bands individual rules, keyed by rule ID with a
	// severity name as the value. Useful to promote a pet rule to CI-blocking
	// or demote a noisy one.
	SeverityOverrides map[string]string

	// DBDir is the directory path for storing the SQLite database.
	// When set, scan results are saved to the database for historical
	// comparison. Defaults to the XDG data directory.
	DBDir string

	// SaveToDB indicates whether to save scan results to the database.
	// The --no-save flag clears it.
	SaveToDB bool
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults that work for most use cases.
// Users can override specific values after creation.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero (e.g., import depth,
// batch size). This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		ImportDepth: DefaultImportDepth,
		BatchSize:   DefaultBatchSize,
		DBDir:       XDGDataDir(),
		SaveToDB:    true,
	}
}

// XDGDataDir returns the XDG data directory for gaslint.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.local/share/gaslint
// On macOS: ~/Library/Application Support/gaslint
// On Windows: %LOCALAPPDATA%\gaslint
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for gaslint.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.config/gaslint
// On macOS: ~/Library/Application Support/gaslint
// On Windows: %APPDATA%\gaslint
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// XDGCacheDir returns the XDG cache directory for gaslint.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.cache/gaslint
// On macOS: ~/Library/Caches/gaslint
// On Windows: %LOCALAPPDATA%\gaslint\cache
func XDGCacheDir() string {
	return filepath.Join(xdg.CacheHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// This is called once after CLI parsing, before any scanning begins.
//
// We chose to return the first error found rather than collecting all errors
// because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	// We must have at least one target to scan
	if len(c.Targets) == 0 {
		return ErrNoTarget
	}

	// BatchSize must be positive; zero would mean no scanning
	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}

	// JSONReport and MarkdownReport are mutually exclusive
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	// ImportDepth must be non-negative; zero disables import following
	if c.ImportDepth < 0 {
		return ErrInvalidImportDepth
	}

	if err := validateRuleIDs(c.DisabledRules); err != nil {
		return err
	}
	if err := validateOverrides(c.SeverityOverrides); err != nil {
		return err
	}

	if err := validateSeverityName(c.MinSeverity); err != nil {
		return err
	}
	if err := validateSeverityName(c.FailOn); err != nil {
		return err
	}

	// Loaded file sections carry the same rule and severity names
	if c.ProjectConfigs != nil {
		if err := c.ProjectConfigs.validate(); err != nil {
			return err
		}
	}

	return nil
}

// validateRuleIDs checks every entry against the rule catalog.
func validateRuleIDs(ids []string) error {
	for _, id := range ids {
		if _, ok := rules.TipByRuleID(id); !ok {
			return fmt.Errorf("%w %q: see 'gaslint rules' for the catalog", ErrUnknownRule, id)
		}
	}
	return nil
}

// validateOverrides checks override keys against the catalog and values
// against the severity names.
func validateOverrides(overrides map[string]string) error {
	for id, severity := range overrides {
		if _, ok := rules.TipByRuleID(id); !ok {
			return fmt.Errorf("%w %q: see 'gaslint rules' for the catalog", ErrUnknownRule, id)
		}
		if err := validateSeverityName(severity); err != nil {
			return err
		}
	}
	return nil
}

// validateSeverityName rejects names ParseSeverity does not accept.
// The empty string is allowed and means "not set".
func validateSeverityName(name string) error {
	if name == "" {
		return nil
	}
	if _, err := model.ParseSeverity(name); err != nil {
		return fmt.Errorf("%w %q: use info, low, medium, high, or critical", ErrInvalidSeverity, name)
	}
	return nil
}
