package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/gaslint/gaslint/internal/config"
	"github.com/gaslint/gaslint/internal/model"
	"github.com/gaslint/gaslint/internal/report"
	"github.com/gaslint/gaslint/internal/watch"
	"github.com/spf13/cobra"
)

// NewWatchCmd creates the watch command.
func NewWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [path...]",
		Short: "Re-scan Solidity sources whenever they change",
		Long: `Watch one or more paths and re-scan them whenever a Solidity
source file is created, modified, or deleted.

Every target is scanned once at startup. After that, changes are
debounced so rapid saves trigger a single re-scan, and only the
targets containing the changed files are re-scanned. Each pass
prints a one-line summary; use --verbose for full finding lists.

Watch mode never writes to the scan database. Run 'gaslint scan'
for a scan worth keeping in history.

Examples:
  # Watch a contracts directory while editing
  gaslint watch ./contracts

  # Watch two projects with a longer settle time
  gaslint watch --debounce 2s ./contracts ./test

  # Watch with display filtered to the findings that matter
  gaslint watch --min-severity high ./contracts`,
		Args: cobra.ArbitraryArgs,
		RunE: runWatchCmd,
	}

	cmd.Flags().IntP("import-depth", "d", config.DefaultImportDepth, "Depth to follow import statements")
	cmd.Flags().StringP("config", "c", "", "Path to configuration file (default: .gaslint.yaml)")
	cmd.Flags().StringSliceP("disable", "D", nil, "Rule IDs to disable (repeatable or comma-separated)")
	cmd.Flags().StringP("min-severity", "s", "", "Hide findings below this severity (info, low, medium, high, critical)")
	cmd.Flags().Duration("debounce", watch.DefaultDebounce, "How long changes must settle before a re-scan")

	return cmd
}

// runWatchCmd is the entry point for the watch command.
func runWatchCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildWatchConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	debounce, err := cmd.Flags().GetDuration("debounce")
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		<-sigCh
		logger.Info("received shutdown signal, stopping watch...")
		cancel()
	}()

	return runWatch(ctx, cfg, debounce, logger)
}

// buildWatchConfig creates a Config from the watch command's flags.
// Watch shares the scan command's per-project settings but has no
// report, batch, or persistence flags.
func buildWatchConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.ImportDepth, err = cmd.Flags().GetInt("import-depth")
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

	// Design decision: watch mode never persists reports.
	// A database row per keystroke would drown the history that
	// 'gaslint compare' works from.
	cfg.SaveToDB = false

	cfg.Verbose = getVerboseFlag(cmd)
	cfg.Targets = args

	return cfg, nil
}

// runWatch scans every target once, then re-scans targets as their
// sources change until the context is cancelled.
func runWatch(ctx context.Context, cfg *config.Config, debounce time.Duration, logger *slog.Logger) error {
	if len(cfg.Targets) == 0 {
		return errors.New("no targets provided (specify one or more paths as arguments)")
	}

	// Verify every target exists before watching anything.
	// Cleaned paths keep project-prefix matching consistent with scan.
	for i, target := range cfg.Targets {
		cleaned := filepath.Clean(target)
		if _, err := os.Stat(cleaned); err != nil {
			return fmt.Errorf("invalid target %q: %w", target, err)
		}
		cfg.Targets[i] = cleaned
	}

	logger.Info("starting watch",
		"targets", cfg.Targets,
		"importDepth", cfg.ImportDepth,
		"debounce", debounce,
	)

	// Initial pass so the first summary does not wait for an edit
	for _, target := range cfg.Targets {
		if err := watchScan(ctx, cfg, target, logger); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			fmt.Fprintf(os.Stderr, "Scan error for %s: %v\n", target, err)
		}
	}

	onChange := func(ctx context.Context, paths []string) {
		for _, target := range affectedTargets(cfg.Targets, paths) {
			fmt.Printf("\n[%s] Change detected, re-scanning %s...\n",
				time.Now().Format("15:04:05"), target)
			if err := watchScan(ctx, cfg, target, logger); err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return
				}
				fmt.Fprintf(os.Stderr, "Scan error for %s: %v\n", target, err)
			}
		}
	}

	watcher, err := watch.NewWatcher(cfg.Targets, onChange,
		watch.WithDebounce(debounce),
		watch.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := watcher.Start(ctx); err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	fmt.Printf("\nWatching %d targets for changes. Press Ctrl+C to stop.\n", len(cfg.Targets))

	<-ctx.Done()
	watcher.Stop()

	stats := watcher.GetStats()
	fmt.Printf("\nStopped watching: %d re-scans over %d file changes.\n",
		stats.Rescans, stats.FilesCreated+stats.FilesModified+stats.FilesDeleted)

	return nil
}

// watchScan runs one pipeline pass over a target and prints a one-line
// summary with a timestamp, so the terminal reads as a log of passes.
func watchScan(ctx context.Context, cfg *config.Config, target string, logger *slog.Logger) error {
	settings, err := settingsForTarget(cfg, target)
	if err != nil {
		return err
	}

	p := createPipelineForTarget(logger, settings)

	scanReport := model.NewScanReport(target)
	startTime := time.Now()
	if err := p.Execute(ctx, scanReport); err != nil {
		return err
	}
	elapsed := time.Since(startTime)

	display, err := displayReport(scanReport, settings.MinSeverity)
	if err != nil {
		return err
	}

	summaryText := formatFindingSummary(map[string]int{
		"critical": display.CriticalCount,
		"high":     display.HighCount,
		"medium":   display.MediumCount,
		"low":      display.LowCount,
		"info":     display.InfoCount,
	})
	if display.TotalSavedGas > 0 {
		summaryText += fmt.Sprintf(", %s to save", formatGas(display.TotalSavedGas))
	}

	fmt.Printf("[%s] %s: %s (%d files, %s)\n",
		time.Now().Format("15:04:05"),
		target,
		summaryText,
		display.ParsedFileCount(),
		elapsed.Round(time.Millisecond),
	)

	if cfg.Verbose && display.HasFindings() {
		writer := report.NewSimpleWriter(os.Stdout, report.WithVerbose(true))
		if _, err := writer.Write(display); err != nil {
			logger.Error("failed to write findings", "error", err)
		}
	}

	return nil
}

// affectedTargets maps changed file paths back to the scan targets that
// contain them. Order follows cfg.Targets so re-scans are stable.
func affectedTargets(targets, paths []string) []string {
	affected := make([]string, 0, len(targets))
	for _, target := range targets {
		for _, p := range paths {
			if underTarget(target, p) {
				affected = append(affected, target)
				break
			}
		}
	}
	return affected
}

// underTarget reports whether path is the target itself or inside it.
// Both sides are filepath.Clean'd before they get here.
func underTarget(target, path string) bool {
	return path == target || strings.HasPrefix(path, target+string(filepath.Separator))
}
