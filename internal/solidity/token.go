package solidity

import "fmt"

// TokenKind classifies a lexed token.
type TokenKind int

const (
	// TokenEOF marks the end of the token stream.
	TokenEOF TokenKind = iota

	// TokenIdent is an identifier that is not a reserved word.
	TokenIdent

	// TokenKeyword is a reserved word or an elementary type name.
	TokenKeyword

	// TokenNumber is a decimal or hexadecimal number literal,
	// underscore separators included.
	TokenNumber

	// TokenString is a string literal, quotes stripped.
	TokenString

	// TokenPunct is an operator or punctuation token.
	// Text carries the exact operator, e.g. "<<" or "+=".
	TokenPunct

	// TokenComment is a line or block comment, markers stripped.
	TokenComment
)

// String returns the kind name for diagnostics.
func (k TokenKind) String() string {
	switch k {
	case TokenEOF:
		return "EOF"
	case TokenIdent:
		return "IDENT"
	case TokenKeyword:
		return "KEYWORD"
	case TokenNumber:
		return "NUMBER"
	case TokenString:
		return "STRING"
	case TokenPunct:
		return "PUNCT"
	case TokenComment:
		return "COMMENT"
	default:
		return "UNKNOWN"
	}
}

// Position is a 1-based source location.
type Position struct {
	Line   int
	Column int
}

// String renders the position in line:column form.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is one lexed unit of Solidity source.
type Token struct {
	Kind TokenKind
	Text string
	Pos  Position
}

// Is reports whether the token is punctuation with the given text.
func (t Token) Is(punct string) bool {
	return t.Kind == TokenPunct && t.Text == punct
}

// IsKeyword reports whether the token is the given keyword.
func (t Token) IsKeyword(word string) bool {
	return t.Kind == TokenKeyword && t.Text == word
}

// IsIdent reports whether the token is an identifier with the given name.
func (t Token) IsIdent(name string) bool {
	return t.Kind == TokenIdent && t.Text == name
}

// solidityKeywords holds reserved words the parser dispatches on.
// Elementary type names are recognized separately by isElementaryType.
var solidityKeywords = map[string]bool{
	"abstract": true, "anonymous": true, "as": true, "assembly": true,
	"break": true, "catch": true, "constant": true, "constructor": true,
	"continue": true, "contract": true, "delete": true, "do": true,
	"else": true, "emit": true, "enum": true, "error": true, "event": true,
	"external": true, "fallback": true, "false": true, "for": true,
	"function": true, "if": true, "immutable": true, "import": true,
	"indexed": true, "interface": true, "internal": true, "is": true,
	"library": true, "mapping": true, "memory": true, "modifier": true,
	"new": true, "override": true, "payable": true, "pragma": true,
	"private": true, "public": true, "pure": true, "receive": true,
	"return": true, "returns": true, "revert": true, "storage": true,
	"struct": true, "true": true, "try": true, "type": true,
	"unchecked": true, "using": true, "view": true, "virtual": true,
	"while": true,
}

// isElementaryType reports whether the identifier names a built-in value
// or reference type: address, bool, string, bytes, bytesN, uintN, intN,
// fixed, and ufixed.
func isElementaryType(name string) bool {
	switch name {
	case "address", "bool", "string", "bytes", "uint", "int", "fixed", "ufixed":
		return true
	}
	if sizedTypeBits(name, "uint") > 0 || sizedTypeBits(name, "int") > 0 {
		return true
	}
	if n := sizedTypeBytes(name, "bytes"); n >= 1 && n <= 32 {
		return true
	}
	return false
}

// sizedTypeBits returns the bit width of names like uint8..uint256 in steps
// of 8, or 0 when the name does not match the prefix or a valid width.
func sizedTypeBits(name, prefix string) int {
	if len(name) <= len(prefix) || name[:len(prefix)] != prefix {
		return 0
	}
	n := 0
	for _, c := range name[len(prefix):] {
		if c < '0' || c > '9' {
			return 0
		}
		n = n*10 + int(c-'0')
		if n > 256 {
			return 0
		}
	}
	if n == 0 || n%8 != 0 {
		return 0
	}
	return n
}

// sizedTypeBytes returns the byte width of names like bytes1..bytes32,
// or 0 when the name does not match.
func sizedTypeBytes(name, prefix string) int {
	if len(name) <= len(prefix) || name[:len(prefix)] != prefix {
		return 0
	}
	n := 0
	for _, c := range name[len(prefix):] {
		if c < '0' || c > '9' {
			return 0
		}
		n = n*10 + int(c-'0')
		if n > 32 {
			return 0
		}
	}
	return n
}
