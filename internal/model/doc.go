// Package model defines the core data structures used throughout gaslint.
//
// This package contains the following main types:
//   - SourceFile: Represents a scanned Solidity source file
//   - Finding: A single gas-optimization violation with its location
//   - ScanReport: The main scan result structure
//   - ScanSummary: A summarized, human-readable report
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (rules, pipeline, report, database) need to
// use these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output and
// database storage.
package model
