package solidity

import "strings"

// multiCharOps lists multi-character operators, longest first so the lexer
// can take the longest match.
var multiCharOps = []string{
	">>>=", "<<=", ">>=", "**", "++", "--", "+=", "-=", "*=", "/=", "%=",
	"|=", "&=", "^=", "==", "!=", "<=", ">=", "&&", "||", "<<", ">>",
	"=>", "->",
}

// lexer tokenizes Solidity source byte by byte.
type lexer struct {
	src  []byte
	pos  int
	line int
	col  int
}

// Lex tokenizes the given source. It never fails: bytes it cannot classify
// become single-character punctuation tokens, and an unterminated string or
// comment runs to the end of input.
func Lex(src []byte) []Token {
	l := &lexer{src: src, line: 1, col: 1}
	var tokens []Token
	for {
		tok := l.next()
		tokens = append(tokens, tok)
		if tok.Kind == TokenEOF {
			return tokens
		}
	}
}

// next scans and returns the next token.
func (l *lexer) next() Token {
	l.skipWhitespace()
	if l.pos >= len(l.src) {
		return Token{Kind: TokenEOF, Pos: l.position()}
	}

	pos := l.position()
	c := l.src[l.pos]

	switch {
	case c == '/' && l.peekAt(1) == '/':
		return Token{Kind: TokenComment, Text: l.scanLineComment(), Pos: pos}
	case c == '/' && l.peekAt(1) == '*':
		return Token{Kind: TokenComment, Text: l.scanBlockComment(), Pos: pos}
	case c == '"' || c == '\'':
		return Token{Kind: TokenString, Text: l.scanString(c), Pos: pos}
	case c >= '0' && c <= '9':
		return Token{Kind: TokenNumber, Text: l.scanNumber(), Pos: pos}
	case isIdentStart(c):
		text := l.scanIdent()
		if solidityKeywords[text] || isElementaryType(text) {
			return Token{Kind: TokenKeyword, Text: text, Pos: pos}
		}
		return Token{Kind: TokenIdent, Text: text, Pos: pos}
	default:
		return Token{Kind: TokenPunct, Text: l.scanOperator(), Pos: pos}
	}
}

// position returns the current source position.
func (l *lexer) position() Position {
	return Position{Line: l.line, Column: l.col}
}

// peekAt returns the byte at the given offset from the cursor, or 0 at EOF.
func (l *lexer) peekAt(offset int) byte {
	if l.pos+offset >= len(l.src) {
		return 0
	}
	return l.src[l.pos+offset]
}

// advance moves the cursor one byte, tracking line and column.
func (l *lexer) advance() {
	if l.pos < len(l.src) {
		if l.src[l.pos] == '\n' {
			l.line++
			l.col = 1
		} else {
			l.col++
		}
		l.pos++
	}
}

// skipWhitespace consumes spaces, tabs, and newlines.
func (l *lexer) skipWhitespace() {
	for l.pos < len(l.src) {
		switch l.src[l.pos] {
		case ' ', '\t', '\r', '\n':
			l.advance()
		default:
			return
		}
	}
}

// scanLineComment consumes "//" up to the end of the line.
// The comment markers are stripped from the returned text.
func (l *lexer) scanLineComment() string {
	l.advance() // first '/'
	l.advance() // second '/'
	start := l.pos
	for l.pos < len(l.src) && l.src[l.pos] != '\n' {
		l.advance()
	}
	return strings.TrimSpace(string(l.src[start:l.pos]))
}

// scanBlockComment consumes from "/*" through the closing "*/".
func (l *lexer) scanBlockComment() string {
	l.advance() // '/'
	l.advance() // '*'
	start := l.pos
	for l.pos < len(l.src) {
		if l.src[l.pos] == '*' && l.peekAt(1) == '/' {
			text := string(l.src[start:l.pos])
			l.advance()
			l.advance()
			return strings.TrimSpace(text)
		}
		l.advance()
	}
	return strings.TrimSpace(string(l.src[start:l.pos]))
}

// scanString consumes a string literal delimited by the given quote.
// Escape sequences are kept verbatim; only the delimiters are dropped.
func (l *lexer) scanString(quote byte) string {
	l.advance() // opening quote
	start := l.pos
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if c == '\\' {
			l.advance()
			l.advance()
			continue
		}
		if c == quote || c == '\n' {
			text := string(l.src[start:l.pos])
			if c == quote {
				l.advance()
			}
			return text
		}
		l.advance()
	}
	return string(l.src[start:l.pos])
}

// scanNumber consumes a decimal or hex literal, including underscore
// separators, fractional parts, and exponents.
func (l *lexer) scanNumber() string {
	start := l.pos
	if l.src[l.pos] == '0' && (l.peekAt(1) == 'x' || l.peekAt(1) == 'X') {
		l.advance()
		l.advance()
		for l.pos < len(l.src) && (isHexDigit(l.src[l.pos]) || l.src[l.pos] == '_') {
			l.advance()
		}
		return string(l.src[start:l.pos])
	}

	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if (c >= '0' && c <= '9') || c == '_' || c == '.' {
			l.advance()
			continue
		}
		// Exponent part, possibly signed: 1e18, 2e-3.
		if c == 'e' || c == 'E' {
			next := l.peekAt(1)
			if next >= '0' && next <= '9' {
				l.advance()
				continue
			}
			if (next == '+' || next == '-') && l.peekAt(2) >= '0' && l.peekAt(2) <= '9' {
				l.advance()
				l.advance()
				continue
			}
		}
		break
	}
	return string(l.src[start:l.pos])
}

// scanIdent consumes an identifier or keyword.
func (l *lexer) scanIdent() string {
	start := l.pos
	for l.pos < len(l.src) && isIdentPart(l.src[l.pos]) {
		l.advance()
	}
	return string(l.src[start:l.pos])
}

// scanOperator consumes the longest matching operator, falling back to a
// single byte for anything unrecognized.
func (l *lexer) scanOperator() string {
	rest := l.src[l.pos:]
	for _, op := range multiCharOps {
		if len(rest) >= len(op) && string(rest[:len(op)]) == op {
			for range op {
				l.advance()
			}
			return op
		}
	}
	op := string(l.src[l.pos])
	l.advance()
	return op
}

func isIdentStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_' || c == '$'
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
