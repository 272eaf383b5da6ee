package model

import "testing"

// TestNewSourceFile tests line counting and content hashing.
func TestNewSourceFile(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		content   string
		wantLines int
	}{
		{"empty file", "", 0},
		{"single line no newline", "pragma solidity ^0.8.0;", 1},
		{"single line with newline", "pragma solidity ^0.8.0;\n", 1},
		{"three lines", "a\nb\nc\n", 3},
		{"trailing content without newline", "a\nb\nc", 3},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			src := NewSourceFile("Token.sol", []byte(tc.content))
			if src.Lines != tc.wantLines {
				t.Errorf("got %d lines, expected %d", src.Lines, tc.wantLines)
			}
			if src.Path != "Token.sol" {
				t.Errorf("got path %q, expected Token.sol", src.Path)
			}
			if len(src.Hash) != 64 {
				t.Errorf("got hash length %d, expected 64 hex chars", len(src.Hash))
			}
		})
	}
}

// TestHashContentStable tests that identical content hashes identically.
func TestHashContentStable(t *testing.T) {
	t.Parallel()

	a := HashContent([]byte("contract A {}"))
	b := HashContent([]byte("contract A {}"))
	c := HashContent([]byte("contract B {}"))

	if a != b {
		t.Error("identical content produced different hashes")
	}
	if a == c {
		t.Error("different content produced the same hash")
	}
}

// TestFindingLocation tests location formatting.
func TestFindingLocation(t *testing.T) {
	t.Parallel()

	withCol := Finding{File: "a.sol", Line: 12, Column: 5}
	if got := withCol.Location(); got != "a.sol:12:5" {
		t.Errorf("got %q, expected a.sol:12:5", got)
	}

	noCol := Finding{File: "a.sol", Line: 12}
	if got := noCol.Location(); got != "a.sol:12" {
		t.Errorf("got %q, expected a.sol:12", got)
	}
}
