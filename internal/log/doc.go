// Package log provides logging for gaslint with automatic masking of the
// user's home directory, built on top of the standard slog package.
//
// This package extends slog to provide:
//   - Home-directory masking in path-valued attributes
//   - Configurable log levels with verbose mode support
//   - Consistent log formatting across the application
//
// # Why mask paths
//
// Scan logs carry absolute filesystem paths: targets, config files, the
// findings database. Users paste those logs into bug reports and CI output.
// The PathHandler rewrites the home-directory prefix to "~" so a shared log
// never reveals the local username, and stays shorter to read.
//
// # Usage
//
//	// Create a logger
//	logger := log.NewLogger(os.Stderr, true) // verbose=true
//
//	// Use as a standard slog.Logger
//	logger.Info("scan started",
//	    "target", "/home/alice/contracts", // Logged as "~/contracts"
//	    "files", 12,
//	)
//
//	// Set as default logger
//	slog.SetDefault(logger)
package log
