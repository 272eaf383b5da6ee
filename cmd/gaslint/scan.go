package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/gaslint/gaslint/internal/config"
	"github.com/gaslint/gaslint/internal/database"
	"github.com/gaslint/gaslint/internal/log"
	"github.com/gaslint/gaslint/internal/model"
	"github.com/gaslint/gaslint/internal/pipeline"
	"github.com/gaslint/gaslint/internal/report"
	"github.com/spf13/cobra"
)

// NewScanCmd creates the scan command.
func NewScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [path...]",
		Short: "Scan Solidity sources for gas-inefficient patterns",
		Long: `Scan analyzes Solidity sources for gas-inefficient patterns.

It discovers .sol files under each path, parses them, and checks every
contract against the optimization catalog:
- Storage layout (packing, data types, constants)
- Loops and local code (caching, increments, unchecked blocks)
- Calldata, custom errors, and function dispatch
- Deployment levers (optimizer runs, dead code, creation size)

Examples:
  # Scan a directory
  gaslint scan contracts/

  # Scan multiple projects
  gaslint scan contracts/core contracts/periphery

  # Output JSON report
  gaslint scan --json contracts/

  # Fail CI when high severity findings exist
  gaslint scan --fail-on high contracts/

  # Use a custom configuration file
  gaslint scan -c myconfig.yaml contracts/

Configuration file (.gaslint.yaml) example:
  projects:
    contracts/core:
      importDepth: 5
      disabledRules:
        - "modern-pragma"
    contracts/vendor:
      minSeverity: high`,
		Args: cobra.ArbitraryArgs,
		RunE: runScanCmd,
	}

	// Discovery flags
	cmd.Flags().IntP("import-depth", "d", config.DefaultImportDepth,
		"Levels of local imports to follow beyond the target")

	// Batch scanning flags
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of concurrent scans")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .gaslint.yaml in current or home directory)")

	// Rule selection flags
	cmd.Flags().StringSliceP("disable", "D", nil,
		"Rule IDs to exclude from the scan (repeatable)")
	cmd.Flags().StringP("min-severity", "s", "",
		"Drop findings below this severity from the report")
	cmd.Flags().String("fail-on", "",
		"Exit non-zero when findings at or above this severity exist")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	// Persistence flags
	cmd.Flags().Bool("no-save", false,
		"Do not save scan results to the local database")

	return cmd
}

// runScanCmd executes the scan command.
func runScanCmd(cmd *cobra.Command, args []string) error {
	// Build config from flags
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging
	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runScan(ctx, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	// Get flag values
	var err error

	cfg.ImportDepth, err = cmd.Flags().GetInt("import-depth")
	if err != nil {
		return nil, err
	}

	cfg.BatchSize, err = cmd.Flags().GetInt("batch")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	if err := loadProjectConfigs(cfg); err != nil {
		return nil, err
	}

	cfg.DisabledRules, err = cmd.Flags().GetStringSlice("disable")
	if err != nil {
		return nil, err
	}

	cfg.MinSeverity, err = cmd.Flags().GetString("min-severity")
	if err != nil {
		return nil, err
	}

	cfg.FailOn, err = cmd.Flags().GetString("fail-on")
	if err != nil {
		return nil, err
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	noSave, err := cmd.Flags().GetBool("no-save")
	if err != nil {
		return nil, err
	}
	cfg.SaveToDB = !noSave

	cfg.Verbose = getVerboseFlag(cmd)

	// Get positional arguments (paths to scan)
	cfg.Targets = args

	return cfg, nil
}

// loadProjectConfigs resolves and loads the per-project configuration file
// into cfg.ProjectConfigs.
// If the user explicitly specified a config file path, error if not found.
// If no path was specified, silently use an empty config when no file exists.
func loadProjectConfigs(cfg *config.Config) error {
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		projects, err := config.LoadConfigFile(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cfg.ProjectConfigs = projects
		return nil
	}

	if explicitConfigPath {
		// User explicitly specified a config file that doesn't exist
		return fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	// Empty config when no file was found and none was asked for
	cfg.ProjectConfigs = &config.File{
		Projects: make(map[string]config.ProjectConfig),
	}
	return nil
}

// setupLogger creates a structured logger based on verbosity setting.
// Logs go to stderr with home directory paths masked.
func setupLogger(verbose bool) *slog.Logger {
	return log.NewLogger(os.Stderr, verbose)
}

// runScan executes the scan.
func runScan(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	if len(cfg.Targets) == 0 {
		return errors.New("no targets provided (specify one or more paths as arguments)")
	}

	logger.Info("starting scan",
		"targets", cfg.Targets,
		"importDepth", cfg.ImportDepth,
		"batchSize", cfg.BatchSize,
		"saveToDB", cfg.SaveToDB,
	)

	// Open database connection if saving is enabled
	var db *database.ScanDB
	if cfg.SaveToDB {
		var err error
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		logger.Info("database opened", "dir", cfg.DBDir)
	}

	// Verify every target exists before scanning any of them. Cleaned
	// paths also keep project-prefix matching in the config consistent.
	for i, target := range cfg.Targets {
		cleaned := filepath.Clean(target)
		if _, err := os.Stat(cleaned); err != nil {
			return fmt.Errorf("invalid target %q: %w", target, err)
		}
		cfg.Targets[i] = cleaned
	}

	// Use batch processor for parallel scanning if multiple targets
	if len(cfg.Targets) > 1 && cfg.BatchSize > 1 {
		return runBatchScan(ctx, cfg, db, logger)
	}

	// Single target or sequential scanning
	return runSequentialScan(ctx, cfg, db, logger)
}

// runSequentialScan scans targets one at a time.
func runSequentialScan(ctx context.Context, cfg *config.Config, db *database.ScanDB, logger *slog.Logger) error {
	var failedCount, gateCount int

	for _, target := range cfg.Targets {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		// Get per-project configuration
		settings, err := settingsForTarget(cfg, target)
		if err != nil {
			return err
		}

		// Create pipeline with per-project options
		p := createPipelineForTarget(logger, settings)

		scanReport := model.NewScanReport(target)

		fmt.Printf("Scanning %s...\n", target)
		startTime := time.Now()

		// Execute the pipeline
		if err := p.Execute(ctx, scanReport); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			logger.Error("scan failed", "target", target, "error", err)
			fmt.Fprintf(os.Stderr, "Scan error for %s: %v\n", target, err)
			failedCount++
			continue
		}

		elapsed := time.Since(startTime)
		fmt.Printf("Scan completed in %s\n\n", elapsed.Round(time.Millisecond))

		// Generate and output report, honoring the display filter
		display, err := displayReport(scanReport, settings.MinSeverity)
		if err != nil {
			return err
		}
		if err := outputReport(cfg, display); err != nil {
			logger.Error("report failed", "target", target, "error", err)
		}

		// Save the unfiltered report so later comparisons see everything
		if err := saveScanReport(ctx, db, scanReport, logger); err != nil {
			logger.Error("failed to save scan report", "target", target, "error", err)
		}

		// The CI gate also checks the unfiltered report
		tripped, err := exceedsFailOn(scanReport, settings.FailOn)
		if err != nil {
			return err
		}
		if tripped {
			fmt.Fprintf(os.Stderr, "Fail-on gate: %s has findings at or above %s severity\n",
				target, settings.FailOn)
			gateCount++
		}
	}

	if failedCount > 0 {
		return fmt.Errorf("%d of %d scans failed", failedCount, len(cfg.Targets))
	}
	if gateCount > 0 {
		return fmt.Errorf("fail-on threshold exceeded for %d of %d targets", gateCount, len(cfg.Targets))
	}
	return nil
}

// runBatchScan scans multiple targets concurrently using BatchProcessor.
func runBatchScan(ctx context.Context, cfg *config.Config, db *database.ScanDB, logger *slog.Logger) error {
	fmt.Printf("Starting batch scan of %d targets (concurrency: %d)...\n\n",
		len(cfg.Targets), cfg.BatchSize)

	startTime := time.Now()

	// Warn user about batch processing limitation
	if cfg.ProjectConfigs != nil && len(cfg.ProjectConfigs.Projects) > 0 {
		logger.Warn("batch processing uses the defaults section only; per-project settings (depth, patterns, rules) are ignored",
			"projectCount", len(cfg.ProjectConfigs.Projects))
		fmt.Fprintf(os.Stderr, "Warning: Per-project configurations are ignored in batch mode. Use sequential mode (--batch 1) to apply per-project settings.\n\n")
	}

	// Batch mode shares one pipeline shape across all targets, so only
	// the defaults section of the config file applies.
	settings, err := defaultSettings(cfg)
	if err != nil {
		return err
	}

	// Create batch processor with pipeline factory
	bp := pipeline.NewBatchProcessor(
		func() *pipeline.Pipeline {
			return createPipelineForTarget(logger, settings)
		},
		pipeline.WithConcurrency(cfg.BatchSize),
		pipeline.WithBatchLogger(logger),
	)

	// Process with callback for streaming output
	var mu sync.Mutex
	var failedCount, gateCount int
	err = bp.ProcessBatchWithCallback(ctx, cfg.Targets, func(scanReport *model.ScanReport, index int) {
		mu.Lock()
		defer mu.Unlock()

		if scanReport.Error != nil {
			fmt.Fprintf(os.Stderr, "[%d/%d] Scan failed: %s: %v\n",
				index+1, len(cfg.Targets), scanReport.Target, scanReport.Error)
			failedCount++
			return
		}

		fmt.Printf("[%d/%d] Scan completed: %s\n", index+1, len(cfg.Targets), scanReport.Target)

		// Generate and output report, honoring the display filter
		display, derr := displayReport(scanReport, settings.MinSeverity)
		if derr != nil {
			logger.Error("report failed", "target", scanReport.Target, "error", derr)
			display = scanReport
		}
		if err := outputReport(cfg, display); err != nil {
			logger.Error("report failed", "target", scanReport.Target, "error", err)
		}

		// Save the unfiltered report so later comparisons see everything
		if err := saveScanReport(ctx, db, scanReport, logger); err != nil {
			logger.Error("failed to save scan report", "target", scanReport.Target, "error", err)
		}

		tripped, terr := exceedsFailOn(scanReport, settings.FailOn)
		if terr != nil {
			logger.Error("fail-on check failed", "target", scanReport.Target, "error", terr)
			return
		}
		if tripped {
			gateCount++
		}
	})

	elapsed := time.Since(startTime)
	fmt.Printf("\nBatch scan completed in %s\n", elapsed.Round(time.Millisecond))

	if err != nil {
		return err
	}
	if failedCount > 0 {
		return fmt.Errorf("%d of %d scans failed", failedCount, len(cfg.Targets))
	}
	if gateCount > 0 {
		return fmt.Errorf("fail-on threshold exceeded for %d of %d targets", gateCount, len(cfg.Targets))
	}
	return nil
}

// scanSettings is the effective per-target configuration after merging
// global flags with the matching project section of the config file.
type scanSettings struct {
	ImportDepth       int
	IgnorePatterns    []string
	FollowPatterns    []string
	DisabledRules     []string
	SeverityOverrides map[string]model.Severity
	MinSeverity       string
	FailOn            string
}

// settingsForTarget returns the effective settings for one target.
// The longest matching project section of the config file wins over the
// defaults section, which wins over global flags.
func settingsForTarget(cfg *config.Config, target string) (scanSettings, error) {
	var project config.ProjectConfig
	if cfg.ProjectConfigs != nil {
		project = cfg.ProjectConfigs.GetProjectConfig(target)
	}
	return mergeProjectSettings(cfg, project)
}

// defaultSettings returns the effective settings ignoring per-project
// sections. Batch mode uses this because its shared pipeline factory
// cannot vary per target.
func defaultSettings(cfg *config.Config) (scanSettings, error) {
	var project config.ProjectConfig
	if cfg.ProjectConfigs != nil {
		project = cfg.ProjectConfigs.Defaults
	}
	return mergeProjectSettings(cfg, project)
}

// mergeProjectSettings merges global flag values with a project config.
func mergeProjectSettings(cfg *config.Config, project config.ProjectConfig) (scanSettings, error) {
	settings := scanSettings{
		ImportDepth: cfg.ImportDepth,
		MinSeverity: cfg.MinSeverity,
		FailOn:      cfg.FailOn,
	}

	// Override with non-zero values
	if project.ImportDepth > 0 {
		settings.ImportDepth = project.ImportDepth
	}
	if len(project.IgnorePatterns) > 0 {
		settings.IgnorePatterns = project.IgnorePatterns
	}
	if len(project.FollowPatterns) > 0 {
		settings.FollowPatterns = project.FollowPatterns
	}
	if project.MinSeverity != "" {
		settings.MinSeverity = project.MinSeverity
	}
	if project.FailOn != "" {
		settings.FailOn = project.FailOn
	}

	// Disables accumulate: flags and config file both apply
	settings.DisabledRules = unionRules(cfg.DisabledRules, project.DisabledRules)

	// Severity overrides merge per rule, project entries winning
	overrides := make(map[string]model.Severity)
	for id, name := range cfg.SeverityOverrides {
		severity, err := model.ParseSeverity(name)
		if err != nil {
			return scanSettings{}, fmt.Errorf("severity override for rule %q: %w", id, err)
		}
		overrides[id] = severity
	}
	for id, name := range project.SeverityOverrides {
		severity, err := model.ParseSeverity(name)
		if err != nil {
			return scanSettings{}, fmt.Errorf("severity override for rule %q: %w", id, err)
		}
		overrides[id] = severity
	}
	if len(overrides) > 0 {
		settings.SeverityOverrides = overrides
	}

	return settings, nil
}

// unionRules combines two rule ID lists, preserving order and dropping
// duplicates.
func unionRules(base, extra []string) []string {
	if len(base) == 0 && len(extra) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(base)+len(extra))
	out := make([]string, 0, len(base)+len(extra))
	for _, id := range base {
		if !seen[id] {
			out = append(out, id)
			seen[id] = true
		}
	}
	for _, id := range extra {
		if !seen[id] {
			out = append(out, id)
			seen[id] = true
		}
	}
	return out
}

// createPipelineForTarget creates a pipeline with the given settings.
func createPipelineForTarget(logger *slog.Logger, settings scanSettings) *pipeline.Pipeline {
	pipelineOpts := []pipeline.Option{
		pipeline.WithLogger(logger),
	}

	configOpts := []pipeline.ScanOption{
		pipeline.WithScanImportDepth(settings.ImportDepth),
	}

	// Add path pattern filtering if configured
	if len(settings.IgnorePatterns) > 0 {
		configOpts = append(configOpts, pipeline.WithScanIgnorePatterns(settings.IgnorePatterns))
	}
	if len(settings.FollowPatterns) > 0 {
		configOpts = append(configOpts, pipeline.WithScanFollowPatterns(settings.FollowPatterns))
	}

	// Add rule selection if configured
	if len(settings.DisabledRules) > 0 {
		configOpts = append(configOpts, pipeline.WithScanDisabledRules(settings.DisabledRules))
	}
	if len(settings.SeverityOverrides) > 0 {
		configOpts = append(configOpts, pipeline.WithScanSeverityOverrides(settings.SeverityOverrides))
	}

	return pipeline.DefaultPipeline(pipelineOpts, configOpts...)
}

// displayReport returns the report narrowed to findings at or above the
// named minimum severity. An empty name returns the report unchanged.
// Filtering happens on a copy so the full report can still be saved.
func displayReport(scanReport *model.ScanReport, minSeverity string) (*model.ScanReport, error) {
	if minSeverity == "" {
		return scanReport, nil
	}

	threshold, err := model.ParseSeverity(minSeverity)
	if err != nil {
		return nil, err
	}

	filtered := model.NewScanReport(scanReport.Target)
	filtered.DateScanned = scanReport.DateScanned
	filtered.Sources = scanReport.Sources
	filtered.PerformedChecks = scanReport.PerformedChecks
	filtered.Duration = scanReport.Duration
	filtered.TimedOut = scanReport.TimedOut
	filtered.Error = scanReport.Error
	filtered.ErrorMessage = scanReport.ErrorMessage
	for _, f := range scanReport.Findings {
		if f.Severity >= threshold {
			filtered.AddFinding(f)
		}
	}
	return filtered, nil
}

// exceedsFailOn reports whether the report contains a finding at or above
// the named severity. An empty name disables the gate.
func exceedsFailOn(scanReport *model.ScanReport, failOn string) (bool, error) {
	if failOn == "" {
		return false, nil
	}

	threshold, err := model.ParseSeverity(failOn)
	if err != nil {
		return false, err
	}

	maxSeverity, ok := scanReport.MaxSeverity()
	if !ok {
		return false, nil
	}
	return maxSeverity >= threshold, nil
}

// outputReport outputs the scan report in the requested format.
func outputReport(cfg *config.Config, scanReport *model.ScanReport) error {
	// Determine output destination
	var output *os.File
	if cfg.ReportFile != "" {
		// Create directories if they don't exist
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		// Create/overwrite the output file with owner-only permissions,
		// matching how the database directory is treated
		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	} else {
		output = os.Stdout
	}

	// JSON output (full report wrapped with tool metadata)
	if cfg.JSONReport {
		writer := report.NewFullJSONWriter(output, getVersion(), report.WithPrettyPrint())
		_, err := writer.Write(scanReport)
		return err
	}

	// Markdown output
	if cfg.MarkdownReport {
		writer := report.NewMarkdownWriter(output)
		_, err := writer.Write(scanReport)
		return err
	}

	// Human-readable report (default)
	writer := report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	_, err := writer.Write(scanReport)
	return err
}

// saveScanReport saves the scan report to the database if enabled.
// If db is nil, this function is a no-op.
func saveScanReport(ctx context.Context, db *database.ScanDB, scanReport *model.ScanReport, logger *slog.Logger) error {
	if db == nil {
		return nil
	}

	id, err := db.SaveScanReport(ctx, scanReport)
	if err != nil {
		return fmt.Errorf("failed to save scan report: %w", err)
	}

	logger.Info("scan report saved to database", "target", scanReport.Target, "id", id)
	return nil
}
