package walker

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
)

// DefaultIgnorePatterns are the directories a scan skips unless the
// project config says otherwise. Vendored dependencies are someone
// else's gas bill; test contracts stay in because they deploy and burn
// gas like any other contract.
var DefaultIgnorePatterns = []string{
	"node_modules/**",
	"lib/**",
	".git/**",
}

// File is one discovered source file with its raw contents. It is the
// in-memory artifact discovery hands to parsing; the serializable
// inventory entry derived from it is model.SourceFile.
type File struct {
	// Path is the file's path: relative to the target for directory
	// targets, the given path as written for file targets.
	Path string

	// Content is the raw source.
	Content []byte
}

// Finder discovers Solidity files from a scan target.
// It manages a queue of imports to chase and respects depth and count limits.
//
// Design decision: We call it "Finder" rather than "Walker" because:
//  1. Discovery covers both directory walks and import chasing
//  2. Distinguishes the component from the package name
//  3. Clearer in code: walker.NewFinder() vs walker.NewWalker()
type Finder struct {
	// maxDepth limits how far imports are chased from a file target.
	// 0 means only the named file, 1 means its direct imports, etc.
	maxDepth int

	// maxFiles limits the total number of files collected.
	// This prevents runaway discovery on large trees.
	maxFiles int

	// maxFileSize limits the size of files read, in bytes.
	maxFileSize int64

	// ignorePatterns are path patterns to skip during discovery.
	// Patterns use glob syntax (e.g., "legacy/**", "*.t.sol").
	ignorePatterns []string

	// followPatterns are path patterns to restrict discovery to.
	// If set, only paths matching these patterns are collected.
	// Empty means all paths are allowed (subject to ignorePatterns).
	followPatterns []string

	// visited tracks paths already seen to avoid duplicates.
	visited map[string]bool

	// mutex protects concurrent access to visited.
	mutex sync.Mutex

	// fileCount tracks files collected.
	fileCount int
}

// Option configures a Finder.
type Option func(*Finder)

// WithMaxDepth sets the maximum import depth for file targets.
// 0 = only the named file, 1 = the file plus its direct imports, etc.
func WithMaxDepth(depth int) Option {
	return func(f *Finder) {
		f.maxDepth = depth
	}
}

// WithMaxFiles sets the maximum number of files to collect.
func WithMaxFiles(maxFiles int) Option {
	return func(f *Finder) {
		f.maxFiles = maxFiles
	}
}

// WithMaxFileSize sets the maximum size of a file to read, in bytes.
// Larger files are skipped, not truncated.
func WithMaxFileSize(size int64) Option {
	return func(f *Finder) {
		f.maxFileSize = size
	}
}

// WithIgnorePatterns sets path patterns to skip during discovery.
// Patterns use glob syntax (e.g., "legacy/**", "mocks/*", "*.gen.sol").
// Paths matching any of these patterns are not collected.
func WithIgnorePatterns(patterns []string) Option {
	return func(f *Finder) {
		f.ignorePatterns = patterns
	}
}

// WithFollowPatterns sets path patterns to restrict discovery to.
// Patterns use glob syntax (e.g., "contracts/**", "src/*").
// If set, only paths matching at least one pattern are collected.
// Empty slice means all paths are allowed (default behavior).
func WithFollowPatterns(patterns []string) Option {
	return func(f *Finder) {
		f.followPatterns = patterns
	}
}

// NewFinder creates a new Finder.
func NewFinder(opts ...Option) *Finder {
	f := &Finder{
		maxDepth:       3,
		maxFiles:       2000,
		maxFileSize:    2 * 1024 * 1024, // 2MB
		ignorePatterns: DefaultIgnorePatterns,
		visited:        make(map[string]bool),
		fileCount:      0,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Discover resolves one target into the files to scan. A directory is
// walked recursively in lexicographic order; a file is read and its
// relative imports are chased breadth-first up to the depth limit.
//
// Design decision: We return a slice of files rather than using a
// callback because:
//  1. Simpler API for callers
//  2. Source files are small relative to total memory
//  3. Caller can process all at once or iterate as needed
func (f *Finder) Discover(ctx context.Context, target string) ([]*File, error) {
	info, err := os.Lstat(target)
	if err != nil {
		return nil, fmt.Errorf("stat target: %w", err)
	}
	if info.IsDir() {
		return f.walkDir(ctx, target)
	}
	return f.followImports(ctx, target)
}

// walkDir collects every .sol file under root, honoring the ignore and
// follow patterns. filepath.WalkDir visits entries in lexical order, so
// results are deterministic without an extra sort.
func (f *Finder) walkDir(ctx context.Context, root string) ([]*File, error) {
	files := make([]*File, 0)
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, walkErr error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if walkErr != nil {
			if p == root {
				return walkErr
			}
			// Unreadable entries are skipped - the rest of the tree
			// is still worth scanning.
			return nil
		}

		rel := relSlash(root, p)

		if d.IsDir() {
			if p != root && f.matchesIgnore(rel) {
				return fs.SkipDir
			}
			return nil
		}

		if f.fileCount >= f.maxFiles {
			return fs.SkipAll
		}

		// Symlinks are not followed: a link out of the tree could pull
		// in arbitrary files or loop.
		if !d.Type().IsRegular() {
			return nil
		}
		if filepath.Ext(p) != ".sol" {
			return nil
		}
		if !f.shouldCollect(rel) {
			return nil
		}

		content, err := f.readSource(p)
		if err != nil {
			return nil
		}
		f.markVisited(filepath.Clean(p))
		files = append(files, &File{Path: rel, Content: content})
		f.fileCount++
		return nil
	})
	if err != nil {
		return files, err
	}
	return files, nil
}

// followImports reads the named file and chases its relative imports
// breadth-first. The named file must be readable; imports that do not
// resolve are skipped, since vendored or remapped paths are invisible
// from the source alone.
func (f *Finder) followImports(ctx context.Context, start string) ([]*File, error) {
	startPath := filepath.Clean(start)
	files := make([]*File, 0)
	queue := []queueItem{{path: startPath, depth: 0}}

	for len(queue) > 0 && f.fileCount < f.maxFiles {
		select {
		case <-ctx.Done():
			return files, ctx.Err()
		default:
		}

		item := queue[0]
		queue = queue[1:]

		if f.isVisited(item.path) {
			continue
		}
		f.markVisited(item.path)

		content, err := f.readSource(item.path)
		if err != nil {
			if item.path == startPath {
				return nil, fmt.Errorf("read target: %w", err)
			}
			continue
		}

		files = append(files, &File{Path: filepath.ToSlash(item.path), Content: content})
		f.fileCount++

		if item.depth < f.maxDepth {
			for _, imp := range sourceImports(content) {
				resolved := resolveImport(item.path, imp)
				if resolved == "" || f.isVisited(resolved) {
					continue
				}
				queue = append(queue, queueItem{path: resolved, depth: item.depth + 1})
			}
		}
	}

	return files, nil
}

// queueItem represents an item in the import chase queue.
type queueItem struct {
	path  string
	depth int
}

// readSource reads a file, refusing symlinks and oversized files.
func (f *Finder) readSource(path string) ([]byte, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%s: not a regular file", path)
	}
	if f.maxFileSize > 0 && info.Size() > f.maxFileSize {
		return nil, fmt.Errorf("%s: exceeds size limit (%d bytes)", path, info.Size())
	}
	return os.ReadFile(path)
}

// isVisited checks if a path has been seen.
func (f *Finder) isVisited(path string) bool {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return f.visited[path]
}

// markVisited marks a path as seen.
func (f *Finder) markVisited(path string) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.visited[path] = true
}

// Reset clears the finder's state, allowing it to be reused.
func (f *Finder) Reset() {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.visited = make(map[string]bool)
	f.fileCount = 0
}

// Stats returns current discovery statistics.
func (f *Finder) Stats() FinderStats {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return FinderStats{
		FilesCollected: f.fileCount,
		PathsSeen:      len(f.visited),
	}
}

// FinderStats contains discovery statistics.
type FinderStats struct {
	// FilesCollected is the number of files successfully read.
	FilesCollected int

	// PathsSeen is the number of unique paths encountered.
	PathsSeen int
}

// matchesIgnore checks whether a path matches any ignore pattern.
func (f *Finder) matchesIgnore(rel string) bool {
	for _, pattern := range f.ignorePatterns {
		if matchPattern(pattern, rel) {
			return true
		}
	}
	return false
}

// shouldCollect checks if a path should be collected based on
// ignore/follow patterns.
//
// Logic:
//  1. If the path matches any ignorePattern, skip it (return false)
//  2. If followPatterns is set and the path matches none, skip it (return false)
//  3. Otherwise, collect it (return true)
func (f *Finder) shouldCollect(rel string) bool {
	if f.matchesIgnore(rel) {
		return false
	}

	// If follow patterns are set, the path must match at least one
	if len(f.followPatterns) > 0 {
		for _, pattern := range f.followPatterns {
			if matchPattern(pattern, rel) {
				return true
			}
		}
		// No follow pattern matched
		return false
	}

	// No follow patterns set, allow all (that weren't ignored)
	return true
}

// relSlash returns p relative to root in slash form, falling back to p
// itself when the paths do not share a prefix.
func relSlash(root, p string) string {
	rel, err := filepath.Rel(root, p)
	if err != nil {
		return filepath.ToSlash(p)
	}
	return filepath.ToSlash(rel)
}

// matchPattern checks if a slash-relative path matches a glob pattern.
// Patterns can use:
//   - a trailing /** or /* to match the whole subtree under a prefix
//   - * to match any sequence of non-separator characters
//   - ? to match any single character
//
// Examples:
//   - "node_modules/**" matches "node_modules" and everything under it
//   - "mocks/*" matches "mocks/Token.sol", "mocks/deep/Feed.sol"
//   - "*.t.sol" matches "test/Token.t.sol"
func matchPattern(pattern, rel string) bool {
	// Subtree patterns: "vendor/**" and "vendor/*" both mean the prefix
	// and everything below it.
	for _, suffix := range []string{"/**", "/*"} {
		if strings.HasSuffix(pattern, suffix) {
			prefix := strings.TrimSuffix(pattern, suffix)
			if rel == prefix || strings.HasPrefix(rel, prefix+"/") {
				return true
			}
		}
	}

	// Extension patterns like "*.t.sol" match anywhere in the tree.
	if strings.HasPrefix(pattern, "*.") {
		if strings.HasSuffix(rel, strings.TrimPrefix(pattern, "*")) {
			return true
		}
	}

	// Standard single-segment glob matching. path.Match does not treat
	// ** specially, so recursive patterns are handled above.
	if ok, err := path.Match(pattern, rel); err == nil && ok {
		return true
	}

	// Also try matching just the base name for patterns like "Migrations.sol"
	if !strings.Contains(pattern, "/") {
		if ok, err := path.Match(pattern, path.Base(rel)); err == nil && ok {
			return true
		}
	}

	return false
}
