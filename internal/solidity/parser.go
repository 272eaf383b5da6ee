package solidity

import (
	"fmt"
	"strings"
)

// Parse lexes and parses one Solidity source file.
//
// Parsing is tolerant: unknown constructs are skipped over balanced
// delimiters rather than rejected. An error is returned only for damage the
// parser cannot recover from, such as an unterminated contract body.
func Parse(path string, src []byte) (*File, error) {
	raw := Lex(src)

	// Comments never influence any rule, so the parser works on a stream
	// with them removed.
	tokens := make([]Token, 0, len(raw))
	for _, tok := range raw {
		if tok.Kind != TokenComment {
			tokens = append(tokens, tok)
		}
	}

	p := &parser{tokens: tokens}
	file := &File{
		Path:  path,
		lines: strings.Split(string(src), "\n"),
	}

	if err := p.parseFile(file); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return file, nil
}

// parser walks a comment-free token stream.
type parser struct {
	tokens []Token
	pos    int
}

// peek returns the current token without consuming it.
func (p *parser) peek() Token {
	if p.pos >= len(p.tokens) {
		return Token{Kind: TokenEOF}
	}
	return p.tokens[p.pos]
}

// peekAt returns the token at the given lookahead offset.
func (p *parser) peekAt(offset int) Token {
	if p.pos+offset >= len(p.tokens) {
		return Token{Kind: TokenEOF}
	}
	return p.tokens[p.pos+offset]
}

// next consumes and returns the current token.
func (p *parser) next() Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

// skipTo consumes tokens up to and including the next top-level occurrence
// of the given punctuation, balancing all delimiter pairs on the way.
func (p *parser) skipTo(punct string) {
	depth := 0
	for {
		tok := p.next()
		switch {
		case tok.Kind == TokenEOF:
			return
		case tok.Is("(") || tok.Is("[") || tok.Is("{"):
			depth++
		case tok.Is(")") || tok.Is("]") || tok.Is("}"):
			depth--
		case tok.Is(punct) && depth <= 0:
			return
		}
	}
}

// collectBalanced consumes tokens until the next top-level occurrence of
// the given punctuation and returns them, terminator excluded.
func (p *parser) collectBalanced(punct string) []Token {
	var collected []Token
	depth := 0
	for {
		tok := p.peek()
		if tok.Kind == TokenEOF {
			return collected
		}
		if tok.Is(punct) && depth == 0 {
			p.next()
			return collected
		}
		switch {
		case tok.Is("(") || tok.Is("[") || tok.Is("{"):
			depth++
		case tok.Is(")") || tok.Is("]") || tok.Is("}"):
			depth--
		}
		collected = append(collected, p.next())
	}
}

// parseFile handles the top level: pragmas, imports, and contract scopes.
func (p *parser) parseFile(file *File) error {
	for {
		tok := p.peek()
		switch {
		case tok.Kind == TokenEOF:
			return nil

		case tok.IsKeyword("pragma"):
			p.next()
			directive := p.collectBalanced(";")
			if len(directive) > 0 && directive[0].IsIdent("solidity") {
				raw := TokensText(directive[1:])
				file.Pragma = ParsePragma(raw, tok.Pos)
			}

		case tok.IsKeyword("import"):
			p.next()
			stmt := p.collectBalanced(";")
			for _, t := range stmt {
				if t.Kind == TokenString {
					file.Imports = append(file.Imports, Import{Path: t.Text, Pos: tok.Pos})
					break
				}
			}

		case tok.IsKeyword("contract") || tok.IsKeyword("interface") || tok.IsKeyword("library"):
			contract, err := p.parseContract(false)
			if err != nil {
				return err
			}
			file.Contracts = append(file.Contracts, contract)

		case tok.IsKeyword("abstract") && p.peekAt(1).IsKeyword("contract"):
			p.next()
			contract, err := p.parseContract(true)
			if err != nil {
				return err
			}
			file.Contracts = append(file.Contracts, contract)

		case tok.IsKeyword("enum"):
			p.next()
			if name := p.peek(); name.Kind == TokenIdent {
				file.Enums = append(file.Enums, name.Text)
			}
			p.skipBlock()

		case tok.IsKeyword("struct") || tok.IsKeyword("function"):
			// File-level structs and free functions: skip their bodies.
			p.next()
			p.skipBlock()

		default:
			// Anything else at top level (using, error, constant) runs to
			// a semicolon.
			p.skipTo(";")
		}
	}
}

// skipBlock consumes through the next balanced { } block, or through a
// semicolon when no block opens first.
func (p *parser) skipBlock() {
	for {
		tok := p.next()
		switch {
		case tok.Kind == TokenEOF:
			return
		case tok.Is(";"):
			return
		case tok.Is("{"):
			depth := 1
			for depth > 0 {
				inner := p.next()
				switch {
				case inner.Kind == TokenEOF:
					return
				case inner.Is("{"):
					depth++
				case inner.Is("}"):
					depth--
				}
			}
			return
		}
	}
}

// parseContract parses a contract, interface, or library declaration.
func (p *parser) parseContract(abstract bool) (*Contract, error) {
	keyword := p.next()

	contract := &Contract{Abstract: abstract, Pos: keyword.Pos}
	switch keyword.Text {
	case "interface":
		contract.Kind = KindInterface
	case "library":
		contract.Kind = KindLibrary
	default:
		contract.Kind = KindContract
	}

	if name := p.peek(); name.Kind == TokenIdent {
		contract.Name = p.next().Text
	}

	// Inheritance list: is A, B(args), C.
	if p.peek().IsKeyword("is") {
		p.next()
		for {
			tok := p.peek()
			if tok.Kind == TokenEOF || tok.Is("{") {
				break
			}
			if tok.Kind == TokenIdent {
				contract.Inherits = append(contract.Inherits, tok.Text)
				p.next()
				// Constructor arguments on the parent.
				if p.peek().Is("(") {
					p.collectParenGroup()
				}
				continue
			}
			p.next()
		}
	}

	if !p.peek().Is("{") {
		return nil, fmt.Errorf("contract %s: expected body at %s", contract.Name, p.peek().Pos)
	}
	p.next()

	if err := p.parseContractBody(contract); err != nil {
		return nil, err
	}
	return contract, nil
}

// collectParenGroup consumes a balanced parenthesis group including both
// parentheses and returns the inner tokens.
func (p *parser) collectParenGroup() []Token {
	if !p.peek().Is("(") {
		return nil
	}
	p.next()
	var inner []Token
	depth := 1
	for depth > 0 {
		tok := p.next()
		switch {
		case tok.Kind == TokenEOF:
			return inner
		case tok.Is("("):
			depth++
		case tok.Is(")"):
			depth--
			if depth == 0 {
				return inner
			}
		}
		inner = append(inner, tok)
	}
	return inner
}

// parseContractBody parses member declarations until the closing brace.
func (p *parser) parseContractBody(contract *Contract) error {
	for {
		tok := p.peek()
		switch {
		case tok.Kind == TokenEOF:
			return fmt.Errorf("contract %s: unterminated body", contract.Name)

		case tok.Is("}"):
			p.next()
			return nil

		case tok.IsKeyword("function"), tok.IsKeyword("constructor"),
			tok.IsKeyword("fallback"), tok.IsKeyword("receive"):
			fn := p.parseFunction()
			contract.Functions = append(contract.Functions, fn)

		case tok.IsKeyword("modifier"):
			p.next()
			mod := &Modifier{Pos: tok.Pos}
			if name := p.peek(); name.Kind == TokenIdent {
				mod.Name = p.next().Text
			}
			if p.peek().Is("(") {
				p.collectParenGroup()
			}
			// Attributes (virtual, override) before the body.
			for !p.peek().Is("{") && !p.peek().Is(";") && p.peek().Kind != TokenEOF {
				p.next()
			}
			if p.peek().Is("{") {
				p.next()
				mod.Body = p.collectBlock()
			} else {
				p.next()
			}
			contract.Modifiers = append(contract.Modifiers, mod)

		case tok.IsKeyword("event"):
			p.next()
			def := &EventDef{Pos: tok.Pos}
			if name := p.peek(); name.Kind == TokenIdent {
				def.Name = p.next().Text
			}
			def.Params = parseParamList(p.collectParenGroup())
			p.skipTo(";")
			contract.Events = append(contract.Events, def)

		case tok.IsKeyword("error"):
			p.next()
			def := &ErrorDef{Pos: tok.Pos}
			if name := p.peek(); name.Kind == TokenIdent {
				def.Name = p.next().Text
			}
			def.Params = parseParamList(p.collectParenGroup())
			p.skipTo(";")
			contract.Errors = append(contract.Errors, def)

		case tok.IsKeyword("struct"):
			p.next()
			def := &StructDef{Pos: tok.Pos}
			if name := p.peek(); name.Kind == TokenIdent {
				def.Name = p.next().Text
			}
			if p.peek().Is("{") {
				p.next()
				def.Fields = parseStructFields(p.collectBlock())
			}
			contract.Structs = append(contract.Structs, def)

		case tok.IsKeyword("enum"):
			p.next()
			if name := p.peek(); name.Kind == TokenIdent {
				contract.Enums = append(contract.Enums, name.Text)
			}
			p.skipBlock()

		case tok.IsKeyword("using"):
			p.next()
			directive := p.collectBalanced(";")
			using := UsingDirective{Pos: tok.Pos}
			for i, t := range directive {
				if t.IsKeyword("for") {
					using.Library = TokensText(directive[:i])
					using.Target = TokensText(directive[i+1:])
					break
				}
			}
			if using.Library != "" {
				contract.UsingFor = append(contract.UsingFor, using)
			}

		default:
			// Anything else is a state variable declaration.
			stateVar := p.parseStateVar()
			if stateVar != nil {
				contract.StateVars = append(contract.StateVars, stateVar)
			}
		}
	}
}

// collectBlock consumes tokens through the brace that closes an already
// consumed "{" and returns the inner tokens.
func (p *parser) collectBlock() []Token {
	var inner []Token
	depth := 1
	for {
		tok := p.next()
		switch {
		case tok.Kind == TokenEOF:
			return inner
		case tok.Is("{"):
			depth++
		case tok.Is("}"):
			depth--
			if depth == 0 {
				return inner
			}
		}
		inner = append(inner, tok)
	}
}

// parseStateVar parses one state variable declaration ending in ";".
// Returns nil when the statement does not look like a declaration.
func (p *parser) parseStateVar() *StateVar {
	pos := p.peek().Pos
	stmt := p.collectBalanced(";")
	if len(stmt) == 0 {
		return nil
	}

	v := &StateVar{Pos: pos, Visibility: VisibilityDefault}

	// Split off the initializer at the first top-level "=".
	decl := stmt
	depth := 0
	for i, tok := range stmt {
		switch {
		case tok.Is("(") || tok.Is("[") || tok.Is("{"):
			depth++
		case tok.Is(")") || tok.Is("]") || tok.Is("}"):
			depth--
		case tok.Is("=") && depth == 0:
			decl = stmt[:i]
			v.Initializer = stmt[i+1:]
		}
		if v.Initializer != nil {
			break
		}
	}

	// The variable name is the last plain identifier of the declaration
	// part; everything before it that is not an attribute keyword is type.
	nameIdx := -1
	for i := len(decl) - 1; i >= 0; i-- {
		if decl[i].Kind == TokenIdent {
			if i > 0 && decl[i-1].Is(".") {
				continue
			}
			nameIdx = i
			break
		}
	}
	if nameIdx < 0 {
		return nil
	}
	v.Name = decl[nameIdx].Text

	var typeTokens []Token
	for i, tok := range decl {
		if i == nameIdx {
			continue
		}
		switch tok.Text {
		case "public":
			v.Visibility = VisibilityPublic
		case "private":
			v.Visibility = VisibilityPrivate
		case "internal":
			v.Visibility = VisibilityInternal
		case "constant":
			v.Mutability = VarConstant
		case "immutable":
			v.Mutability = VarImmutable
		case "override":
			// Carries no storage meaning.
		default:
			if i < nameIdx {
				typeTokens = append(typeTokens, tok)
			}
		}
	}
	v.Type = TokensText(typeTokens)
	if v.Type == "" {
		return nil
	}
	return v
}

// parseFunction parses a function, constructor, fallback, or receive
// declaration including attributes and body.
func (p *parser) parseFunction() *Function {
	keyword := p.next()

	fn := &Function{Pos: keyword.Pos, Visibility: VisibilityDefault}
	switch keyword.Text {
	case "constructor":
		fn.Kind = FnConstructor
	case "fallback":
		fn.Kind = FnFallback
		fn.Name = "fallback"
	case "receive":
		fn.Kind = FnReceive
		fn.Name = "receive"
	default:
		fn.Kind = FnFunction
		if name := p.peek(); name.Kind == TokenIdent {
			fn.Name = p.next().Text
		}
	}

	fn.Params = parseParamList(p.collectParenGroup())

	// Attribute section runs until the body opens or the declaration ends.
	for {
		tok := p.peek()
		if tok.Kind == TokenEOF || tok.Is("{") || tok.Is(";") {
			break
		}

		switch {
		case tok.IsKeyword("public"):
			fn.Visibility = VisibilityPublic
			p.next()
		case tok.IsKeyword("external"):
			fn.Visibility = VisibilityExternal
			p.next()
		case tok.IsKeyword("internal"):
			fn.Visibility = VisibilityInternal
			p.next()
		case tok.IsKeyword("private"):
			fn.Visibility = VisibilityPrivate
			p.next()
		case tok.IsKeyword("payable"):
			fn.Mutability = MutabilityPayable
			p.next()
		case tok.IsKeyword("view"):
			fn.Mutability = MutabilityView
			p.next()
		case tok.IsKeyword("pure"):
			fn.Mutability = MutabilityPure
			p.next()
		case tok.IsKeyword("virtual"):
			fn.Virtual = true
			p.next()
		case tok.IsKeyword("override"):
			fn.Override = true
			p.next()
			if p.peek().Is("(") {
				p.collectParenGroup()
			}
		case tok.IsKeyword("returns"):
			p.next()
			fn.Returns = parseParamList(p.collectParenGroup())
		case tok.Kind == TokenIdent:
			fn.ModifierCalls = append(fn.ModifierCalls, tok.Text)
			p.next()
			if p.peek().Is("(") {
				p.collectParenGroup()
			}
		default:
			p.next()
		}
	}

	if p.peek().Is("{") {
		p.next()
		fn.Body = p.collectBlock()
		fn.HasBody = true
		extractControlFlow(fn)
	} else if p.peek().Is(";") {
		p.next()
	}

	return fn
}

// parseParamList turns the inner tokens of a parameter list into Params.
func parseParamList(tokens []Token) []Param {
	var params []Param
	for _, arg := range splitArgs(tokens) {
		if len(arg) == 0 {
			continue
		}
		param := Param{Pos: arg[0].Pos}

		var typeTokens []Token
		for i, tok := range arg {
			switch {
			case tok.IsKeyword("memory"), tok.IsKeyword("calldata"), tok.IsKeyword("storage"):
				param.DataLocation = tok.Text
			case tok.IsKeyword("indexed"):
				param.Indexed = true
			case tok.Kind == TokenIdent && i == len(arg)-1 && i > 0:
				// A trailing identifier after at least one type token is
				// the parameter name.
				param.Name = tok.Text
			default:
				typeTokens = append(typeTokens, tok)
			}
		}
		param.Type = TokensText(typeTokens)
		if param.Type == "" && param.Name != "" {
			// Single identifier: a user-defined type with no name.
			param.Type = param.Name
			param.Name = ""
		}
		if param.Type != "" {
			params = append(params, param)
		}
	}
	return params
}

// parseStructFields parses "type name;" members from a struct body.
func parseStructFields(tokens []Token) []Param {
	var fields []Param
	start := 0
	for i, tok := range tokens {
		if !tok.Is(";") {
			continue
		}
		decl := tokens[start:i]
		start = i + 1
		if len(decl) < 2 {
			continue
		}
		name := decl[len(decl)-1]
		if name.Kind != TokenIdent {
			continue
		}
		fields = append(fields, Param{
			Type: TokensText(decl[:len(decl)-1]),
			Name: name.Text,
			Pos:  decl[0].Pos,
		})
	}
	return fields
}

// extractControlFlow walks a function body and records for loops, while
// loops, and unchecked block spans.
func extractControlFlow(fn *Function) {
	tokens := fn.Body
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		switch {
		case tok.IsKeyword("for") && i+1 < len(tokens) && tokens[i+1].Is("("):
			end := matchParen(tokens, i+1)
			if end < 0 {
				continue
			}
			loop := &ForLoop{Pos: tok.Pos}
			loop.Init, loop.Cond, loop.Post = splitForHeader(tokens[i+2 : end])
			loop.Body = statementSpan(tokens, end+1)
			fn.Loops = append(fn.Loops, loop)

		case tok.IsKeyword("while") && i+1 < len(tokens) && tokens[i+1].Is("("):
			// Skip the tail of a do-while: its body already ran.
			if i > 0 && tokens[i-1].Is("}") {
				prevIsDo := false
				for j := i - 1; j >= 0; j-- {
					if tokens[j].IsKeyword("do") {
						prevIsDo = true
						break
					}
					if tokens[j].Is(";") {
						break
					}
				}
				if prevIsDo {
					continue
				}
			}
			end := matchParen(tokens, i+1)
			if end < 0 {
				continue
			}
			loop := &WhileLoop{Pos: tok.Pos}
			loop.Cond = tokens[i+2 : end]
			loop.Body = statementSpan(tokens, end+1)
			fn.Whiles = append(fn.Whiles, loop)

		case tok.IsKeyword("unchecked") && i+1 < len(tokens) && tokens[i+1].Is("{"):
			end := matchBrace(tokens, i+1)
			if end < 0 {
				continue
			}
			fn.UncheckedSpans = append(fn.UncheckedSpans, Span{Start: i + 2, End: end})
		}
	}
}

// splitForHeader splits for-loop header tokens on the two top-level
// semicolons into init, condition, and post sections.
func splitForHeader(tokens []Token) (init, cond, post []Token) {
	var sections [][]Token
	depth := 0
	start := 0
	for i, tok := range tokens {
		switch {
		case tok.Is("(") || tok.Is("[") || tok.Is("{"):
			depth++
		case tok.Is(")") || tok.Is("]") || tok.Is("}"):
			depth--
		case tok.Is(";") && depth == 0:
			sections = append(sections, tokens[start:i])
			start = i + 1
		}
	}
	sections = append(sections, tokens[start:])

	if len(sections) > 0 {
		init = sections[0]
	}
	if len(sections) > 1 {
		cond = sections[1]
	}
	if len(sections) > 2 {
		post = sections[2]
	}
	return init, cond, post
}

// statementSpan returns the token span of the statement starting at the
// given index: a braced block, or a single statement through its semicolon.
func statementSpan(tokens []Token, start int) Span {
	if start >= len(tokens) {
		return Span{Start: start, End: start}
	}
	if tokens[start].Is("{") {
		end := matchBrace(tokens, start)
		if end < 0 {
			return Span{Start: start + 1, End: len(tokens)}
		}
		return Span{Start: start + 1, End: end}
	}
	depth := 0
	for i := start; i < len(tokens); i++ {
		switch {
		case tokens[i].Is("(") || tokens[i].Is("[") || tokens[i].Is("{"):
			depth++
		case tokens[i].Is(")") || tokens[i].Is("]") || tokens[i].Is("}"):
			depth--
		case tokens[i].Is(";") && depth == 0:
			return Span{Start: start, End: i + 1}
		}
	}
	return Span{Start: start, End: len(tokens)}
}
