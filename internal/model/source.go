package model

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// SourceFile records one discovered Solidity file and its parse outcome.
//
// Design decision: We store a content hash alongside the inventory data
// because:
// 1. Watch mode needs cheap change detection without re-reading files
// 2. Scan comparison can tell "file changed" from "rule changed"
// 3. The hash keys deduplication when import following revisits a file
type SourceFile struct {
	// Path is the file path relative to the scan target where possible.
	Path string `json:"path"`

	// Lines is the number of source lines in the file.
	Lines int `json:"lines"`

	// Contracts lists the contract, library, and interface names declared.
	Contracts []string `json:"contracts,omitempty"`

	// Pragma is the raw solidity version constraint, e.g. "^0.8.19".
	Pragma string `json:"pragma,omitempty"`

	// Hash is the hex SHA-256 of the file contents.
	Hash string `json:"hash,omitempty"`

	// ParseError is set when the file could not be parsed.
	// The file still counts as scanned; its rules simply never ran.
	ParseError string `json:"parse_error,omitempty"`
}

// NewSourceFile builds the inventory entry for a file's raw contents.
// Contracts, Pragma, and ParseError are filled in after parsing.
func NewSourceFile(path string, content []byte) SourceFile {
	return SourceFile{
		Path:  path,
		Lines: countLines(content),
		Hash:  HashContent(content),
	}
}

// HashContent returns the hex-encoded SHA-256 of the given bytes.
func HashContent(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// countLines counts source lines the way editors do: a trailing newline
// does not start an extra line, and an empty file has zero lines.
func countLines(content []byte) int {
	if len(content) == 0 {
		return 0
	}
	n := strings.Count(string(content), "\n")
	if content[len(content)-1] != '\n' {
		n++
	}
	return n
}
