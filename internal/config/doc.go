// Package config provides configuration structures and utilities for gaslint.
// It defines the main options for scanning Solidity sources, per-project
// overrides loaded from .gaslint.yaml, and report generation preferences.
package config
