package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gaslint/gaslint/internal/config"
	"github.com/gaslint/gaslint/internal/model"
	"github.com/gaslint/gaslint/internal/rules"
	"github.com/gaslint/gaslint/internal/solidity"
	"github.com/gaslint/gaslint/internal/walker"
)

// ScanState carries the in-memory artifacts steps hand to each other.
// The report records the serializable outcome; the state holds the raw
// and parsed sources, which die with the scan.
//
// Design decision: Steps share a state struct instead of stashing
// artifacts on the report because:
// 1. Raw contents and parse trees have no place in a serialized report
// 2. The model package stays free of parser dependencies
// 3. A fresh state per pipeline keeps batch scans isolated
type ScanState struct {
	// Files are the discovered sources, in discovery order.
	Files []*walker.File

	// Parsed are the sources that parsed cleanly.
	Parsed []ParsedFile
}

// ParsedFile pairs a discovered source with its parse tree.
type ParsedFile struct {
	// Source is the discovered file the tree was parsed from.
	Source *walker.File

	// File is the parse result.
	File *solidity.File
}

// NewScanState creates an empty state for one pipeline execution.
func NewScanState() *ScanState {
	return &ScanState{}
}

// DiscoverStep resolves the scan target into source files.
// This step walks directories or chases imports and records the file
// inventory on the report.
//
// Design decision: Discovery is a separate step because:
// 1. It's the foundation for everything downstream
// 2. Its limits (depth, count, size) are configured independently
// 3. Watch mode re-runs it alone to detect new files
type DiscoverStep struct {
	// state receives the discovered files.
	state *ScanState

	// importDepth limits import chasing for file targets.
	importDepth int

	// maxFiles limits the total number of files collected.
	maxFiles int

	// maxFileSize limits the size of files read, in bytes.
	maxFileSize int64

	// ignorePatterns are path patterns to skip during discovery.
	ignorePatterns []string

	// followPatterns are path patterns to restrict discovery to.
	followPatterns []string

	// logger for structured logging.
	logger *slog.Logger
}

// DiscoverStepOption configures a DiscoverStep.
type DiscoverStepOption func(*DiscoverStep)

// WithDiscoverImportDepth sets the maximum import depth for file targets.
func WithDiscoverImportDepth(depth int) DiscoverStepOption {
	return func(s *DiscoverStep) {
		s.importDepth = depth
	}
}

// WithDiscoverMaxFiles sets the maximum number of files to collect.
func WithDiscoverMaxFiles(maxFiles int) DiscoverStepOption {
	return func(s *DiscoverStep) {
		s.maxFiles = maxFiles
	}
}

// WithDiscoverMaxFileSize sets the maximum size of a file to read.
func WithDiscoverMaxFileSize(size int64) DiscoverStepOption {
	return func(s *DiscoverStep) {
		s.maxFileSize = size
	}
}

// WithDiscoverIgnorePatterns sets path patterns to skip during discovery.
func WithDiscoverIgnorePatterns(patterns []string) DiscoverStepOption {
	return func(s *DiscoverStep) {
		s.ignorePatterns = patterns
	}
}

// WithDiscoverFollowPatterns sets path patterns to restrict discovery to.
func WithDiscoverFollowPatterns(patterns []string) DiscoverStepOption {
	return func(s *DiscoverStep) {
		s.followPatterns = patterns
	}
}

// WithDiscoverLogger sets a custom logger for the discover step.
func WithDiscoverLogger(logger *slog.Logger) DiscoverStepOption {
	return func(s *DiscoverStep) {
		s.logger = logger
	}
}

// NewDiscoverStep creates a new discovery step writing into state.
func NewDiscoverStep(state *ScanState, opts ...DiscoverStepOption) *DiscoverStep {
	s := &DiscoverStep{
		state:       state,
		importDepth: config.DefaultImportDepth,
		maxFiles:    config.DefaultMaxFiles,
		maxFileSize: config.DefaultMaxFileSize,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *DiscoverStep) Name() string {
	return "discover"
}

// Do executes the discovery step. A target that yields no files at all
// is an error: every later step would silently no-op and the user would
// read an empty report as a clean bill of health.
func (s *DiscoverStep) Do(ctx context.Context, report *model.ScanReport) error {
	finderOpts := []walker.Option{
		walker.WithMaxDepth(s.importDepth),
		walker.WithMaxFiles(s.maxFiles),
		walker.WithMaxFileSize(s.maxFileSize),
	}

	// Add pattern filtering if configured
	if len(s.ignorePatterns) > 0 {
		finderOpts = append(finderOpts, walker.WithIgnorePatterns(s.ignorePatterns))
	}
	if len(s.followPatterns) > 0 {
		finderOpts = append(finderOpts, walker.WithFollowPatterns(s.followPatterns))
	}

	finder := walker.NewFinder(finderOpts...)

	files, err := finder.Discover(ctx, report.Target)
	if err != nil {
		return fmt.Errorf("discover %s: %w", report.Target, err)
	}
	if len(files) == 0 {
		return fmt.Errorf("discover %s: no Solidity files found", report.Target)
	}

	s.state.Files = files
	for _, file := range files {
		report.AddSource(model.NewSourceFile(file.Path, file.Content))
	}

	stats := finder.Stats()
	s.logger.Info("discovery completed",
		"files", stats.FilesCollected,
		"paths_seen", stats.PathsSeen,
	)

	return nil
}

// ParseStep parses every discovered file.
// Parse failures are recorded per file and never abort the scan: the
// remaining files still get analyzed.
//
// Design decision: Parsing is separate from analysis because:
// 1. Parse errors belong in the source inventory, not the findings
// 2. Watch mode reuses parse results across unchanged files
// 3. One tree per file feeds all thirty-one rules
type ParseStep struct {
	// state provides the raw files and receives the parse trees.
	state *ScanState

	// logger for structured logging.
	logger *slog.Logger
}

// ParseStepOption configures a ParseStep.
type ParseStepOption func(*ParseStep)

// WithParseLogger sets a custom logger for the parse step.
func WithParseLogger(logger *slog.Logger) ParseStepOption {
	return func(s *ParseStep) {
		s.logger = logger
	}
}

// NewParseStep creates a new parse step reading from state.
func NewParseStep(state *ScanState, opts ...ParseStepOption) *ParseStep {
	s := &ParseStep{
		state:  state,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *ParseStep) Name() string {
	return "parse"
}

// Do executes the parse step.
func (s *ParseStep) Do(ctx context.Context, report *model.ScanReport) error {
	failed := 0

	for _, file := range s.state.Files {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		entry := sourceEntry(report, file.Path)

		parsed, err := solidity.Parse(file.Path, file.Content)
		if err != nil {
			failed++
			s.logger.Debug("parse failed", "file", file.Path, "error", err)
			if entry != nil {
				entry.ParseError = err.Error()
			}
			continue
		}

		if entry != nil {
			for _, c := range parsed.Contracts {
				entry.Contracts = append(entry.Contracts, c.Name)
			}
			if parsed.Pragma != nil {
				entry.Pragma = parsed.Pragma.Raw
			}
		}

		s.state.Parsed = append(s.state.Parsed, ParsedFile{Source: file, File: parsed})
	}

	s.logger.Info("parsing completed",
		"parsed", len(s.state.Parsed),
		"failed", failed,
	)

	return nil
}

// sourceEntry finds the inventory entry for a path.
func sourceEntry(report *model.ScanReport, path string) *model.SourceFile {
	for i := range report.Sources {
		if report.Sources[i].Path == path {
			return &report.Sources[i]
		}
	}
	return nil
}

// AnalyzeStep runs the rule registry over every parsed file.
// This step produces the findings that are the point of the scan.
//
// Design decision: Analysis is a separate step because:
// 1. It operates on accumulated data from previous steps
// 2. It has its own configuration (which rules to run, severity overrides)
// 3. Results are the primary output
type AnalyzeStep struct {
	// state provides the parse trees.
	state *ScanState

	// registry is the rule coordinator.
	registry *rules.Registry

	// logger for structured logging.
	logger *slog.Logger
}

// AnalyzeStepOption configures an AnalyzeStep.
type AnalyzeStepOption func(*AnalyzeStep)

// WithAnalyzeRegistry sets a configured rule registry.
// If not set, the full built-in rule set runs.
func WithAnalyzeRegistry(registry *rules.Registry) AnalyzeStepOption {
	return func(s *AnalyzeStep) {
		s.registry = registry
	}
}

// WithAnalyzeLogger sets a custom logger for the analyze step.
func WithAnalyzeLogger(logger *slog.Logger) AnalyzeStepOption {
	return func(s *AnalyzeStep) {
		s.logger = logger
	}
}

// NewAnalyzeStep creates a new analysis step reading from state.
func NewAnalyzeStep(state *ScanState, opts ...AnalyzeStepOption) *AnalyzeStep {
	s := &AnalyzeStep{
		state:  state,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.registry == nil {
		s.registry = rules.NewRegistry()
	}

	return s
}

// Name returns the step name.
func (s *AnalyzeStep) Name() string {
	return "analyze"
}

// Do executes the analysis step.
func (s *AnalyzeStep) Do(ctx context.Context, report *model.ScanReport) error {
	// Skip if nothing parsed
	if len(s.state.Parsed) == 0 {
		s.logger.Debug("skipping analysis, no parsed files")
		return nil
	}

	for _, rule := range s.registry.Rules() {
		report.PerformedChecks = append(report.PerformedChecks, rule.ID())
	}

	total := 0
	for _, pf := range s.state.Parsed {
		findings, err := s.registry.Run(ctx, pf.File)

		// Partial findings still count: the registry returns what it
		// collected before cancellation.
		for _, f := range findings {
			report.AddFinding(f)
		}
		total += len(findings)

		if err != nil {
			return fmt.Errorf("analyze %s: %w", pf.Source.Path, err)
		}
	}

	s.logger.Info("analysis completed",
		"files", len(s.state.Parsed),
		"findings", total,
	)

	return nil
}

// SummarizeStep closes out the scan: it stamps the duration and logs
// the aggregate figures.
//
// Design decision: Summarization is a separate step because:
// 1. It must run last, after every producer of findings
// 2. Keeping aggregation out of Execute keeps the pipeline generic
// 3. Watch and batch modes reuse it per scan for consistent logs
type SummarizeStep struct {
	// logger for structured logging.
	logger *slog.Logger
}

// SummarizeStepOption configures a SummarizeStep.
type SummarizeStepOption func(*SummarizeStep)

// WithSummarizeLogger sets a custom logger for the summarize step.
func WithSummarizeLogger(logger *slog.Logger) SummarizeStepOption {
	return func(s *SummarizeStep) {
		s.logger = logger
	}
}

// NewSummarizeStep creates a new summarize step.
func NewSummarizeStep(opts ...SummarizeStepOption) *SummarizeStep {
	s := &SummarizeStep{
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *SummarizeStep) Name() string {
	return "summarize"
}

// Do executes the summarize step.
func (s *SummarizeStep) Do(_ context.Context, report *model.ScanReport) error {
	report.Duration = time.Since(report.DateScanned)

	summary := model.NewScanSummary(report)
	s.logger.Info("scan completed",
		"target", report.Target,
		"files_scanned", summary.FilesScanned,
		"files_failed", summary.FilesFailed,
		"findings", summary.TotalFindings(),
		"critical", summary.CriticalCount,
		"high", summary.HighCount,
		"medium", summary.MediumCount,
		"low", summary.LowCount,
		"info", summary.InfoCount,
		"estimated_saved_gas", summary.TotalSavedGas,
		"duration", report.Duration,
	)

	return nil
}

// ScanConfig holds configuration for the default pipeline.
type ScanConfig struct {
	// ImportDepth is the maximum import depth for file targets.
	ImportDepth int

	// MaxFiles is the maximum number of files to collect.
	MaxFiles int

	// MaxFileSize is the maximum size of a file to read, in bytes.
	MaxFileSize int64

	// IgnorePatterns are path patterns to skip during discovery.
	IgnorePatterns []string

	// FollowPatterns are path patterns to restrict discovery to.
	FollowPatterns []string

	// DisabledRules lists rule IDs excluded from the scan.
	DisabledRules []string

	// SeverityOverrides replaces the derived severity of specific rules.
	SeverityOverrides map[string]model.Severity
}

// ScanOption configures a ScanConfig.
type ScanOption func(*ScanConfig)

// WithScanImportDepth sets the import depth for the pipeline.
func WithScanImportDepth(depth int) ScanOption {
	return func(c *ScanConfig) {
		c.ImportDepth = depth
	}
}

// WithScanMaxFiles sets the maximum files to collect.
func WithScanMaxFiles(maxFiles int) ScanOption {
	return func(c *ScanConfig) {
		c.MaxFiles = maxFiles
	}
}

// WithScanMaxFileSize sets the maximum file size to read.
func WithScanMaxFileSize(size int64) ScanOption {
	return func(c *ScanConfig) {
		c.MaxFileSize = size
	}
}

// WithScanIgnorePatterns sets path patterns to skip during discovery.
func WithScanIgnorePatterns(patterns []string) ScanOption {
	return func(c *ScanConfig) {
		c.IgnorePatterns = patterns
	}
}

// WithScanFollowPatterns sets path patterns to restrict discovery to.
func WithScanFollowPatterns(patterns []string) ScanOption {
	return func(c *ScanConfig) {
		c.FollowPatterns = patterns
	}
}

// WithScanDisabledRules sets rule IDs to exclude from the scan.
func WithScanDisabledRules(ids []string) ScanOption {
	return func(c *ScanConfig) {
		c.DisabledRules = ids
	}
}

// WithScanSeverityOverrides sets per-rule severity overrides.
func WithScanSeverityOverrides(overrides map[string]model.Severity) ScanOption {
	return func(c *ScanConfig) {
		c.SeverityOverrides = overrides
	}
}

// DefaultPipeline creates a pipeline with all default steps configured.
// This is the standard pipeline for linting one target.
//
// Design decision: We provide a default pipeline because:
// 1. Most users want the full discover-parse-analyze-summarize run
// 2. Reduces boilerplate in CLI
// 3. Ensures consistent ordering
//
// The first variadic parameter accepts pipeline options (WithLogger, etc).
// The second accepts scan config options (WithScanImportDepth, etc).
//
// Each call builds a fresh ScanState, so a pipeline from this function
// must only be used for one Execute. Batch scanning gets its isolation
// by calling this as the pipeline factory.
func DefaultPipeline(pipelineOpts []Option, configOpts ...ScanOption) *Pipeline {
	p := New(pipelineOpts...)

	cfg := &ScanConfig{
		ImportDepth: config.DefaultImportDepth,
		MaxFiles:    config.DefaultMaxFiles,
		MaxFileSize: config.DefaultMaxFileSize,
	}
	for _, opt := range configOpts {
		opt(cfg)
	}

	// Build discover step options
	discoverOpts := []DiscoverStepOption{
		WithDiscoverImportDepth(cfg.ImportDepth),
		WithDiscoverMaxFiles(cfg.MaxFiles),
		WithDiscoverMaxFileSize(cfg.MaxFileSize),
	}
	if len(cfg.IgnorePatterns) > 0 {
		discoverOpts = append(discoverOpts, WithDiscoverIgnorePatterns(cfg.IgnorePatterns))
	}
	if len(cfg.FollowPatterns) > 0 {
		discoverOpts = append(discoverOpts, WithDiscoverFollowPatterns(cfg.FollowPatterns))
	}

	// Build the rule registry from the scan config
	registryOpts := []rules.Option{}
	if len(cfg.DisabledRules) > 0 {
		registryOpts = append(registryOpts, rules.WithDisabled(cfg.DisabledRules...))
	}
	if len(cfg.SeverityOverrides) > 0 {
		registryOpts = append(registryOpts, rules.WithSeverityOverrides(cfg.SeverityOverrides))
	}

	// Add steps in logical order, sharing one scan-scoped state
	state := NewScanState()
	p.AddSteps(
		NewDiscoverStep(state, discoverOpts...),
		NewParseStep(state),
		NewAnalyzeStep(state, WithAnalyzeRegistry(rules.NewRegistry(registryOpts...))),
		NewSummarizeStep(),
	)

	return p
}
