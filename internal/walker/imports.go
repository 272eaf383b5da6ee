package walker

import (
	"path/filepath"
	"strings"

	"github.com/gaslint/gaslint/internal/solidity"
)

// sourceImports extracts the import paths of a Solidity source.
//
// Design decision: We lex rather than regex-match because:
//  1. Import statements come in four syntactic forms, all sharing one
//     property: a single string literal before the closing semicolon
//  2. The lexer already knows how to skip comments and nested strings,
//     the exact places a regex would false-positive
//  3. Full parsing is the pipeline's job; discovery only needs the edges
func sourceImports(src []byte) []string {
	tokens := solidity.Lex(src)
	var imports []string
	for i := 0; i < len(tokens); i++ {
		if !tokens[i].IsKeyword("import") {
			continue
		}
		for j := i + 1; j < len(tokens) && !tokens[j].Is(";"); j++ {
			if tokens[j].Kind == solidity.TokenString {
				imports = append(imports, tokens[j].Text)
				break
			}
		}
	}
	return imports
}

// resolveImport resolves an import path against the importing file.
// Only relative imports resolve: bare paths like
// "@openzeppelin/contracts/token/ERC20.sol" need compiler remappings
// this tool does not have, so they return "" and are not chased.
func resolveImport(from, imp string) string {
	if !strings.HasPrefix(imp, "./") && !strings.HasPrefix(imp, "../") {
		return ""
	}
	return filepath.Clean(filepath.Join(filepath.Dir(from), filepath.FromSlash(imp)))
}
