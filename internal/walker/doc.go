// Package walker discovers the Solidity files a scan should cover.
//
// # Architecture
//
// The package is designed around the Finder type, which turns one CLI
// target into the list of source files to analyze. A directory target
// is walked recursively; a file target is read and its relative imports
// are chased through a work queue with depth and visited tracking.
//
// Design decision: We implement discovery ourselves rather than using a
// third-party walker because:
//  1. Import chasing needs Solidity-aware extraction, not just globbing
//  2. Ignore and follow patterns must match the way users write them in
//     project config, so the matcher has to be ours either way
//  3. filepath.WalkDir already gives a deterministic lexicographic walk
//
// # Components
//
//   - Finder: coordinates discovery and enforces depth, count, and size limits
//   - File: one discovered source file with its raw contents
//   - sourceImports: lexer-backed import extraction for the chase queue
//
// # Limits
//
// Discovery is bounded on every axis so a stray target cannot stall a scan:
//   - Max files per discovery run
//   - Max bytes read per file
//   - Max import depth from a file target
//   - Symlinks are never followed
//
// # Usage
//
//	finder := walker.NewFinder(walker.WithMaxDepth(2))
//	files, err := finder.Discover(ctx, "contracts/")
package walker
