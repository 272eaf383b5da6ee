package solidity

import "strings"

// File is the parse result for one Solidity source file.
type File struct {
	// Path is the file path as given to Parse.
	Path string

	// Pragma is the solidity version requirement, nil when the file has none.
	Pragma *Pragma

	// Imports lists the file's import paths in order.
	Imports []Import

	// Contracts holds every contract, interface, and library declared.
	Contracts []*Contract

	// Enums names file-level enum declarations. Contract-level enums live
	// on their contract. Needed for storage-layout sizing.
	Enums []string

	// lines holds the raw source split by line for snippet extraction.
	lines []string
}

// Import is one import directive.
type Import struct {
	// Path is the import string as written, e.g. "./interfaces/IERC20.sol".
	Path string
	Pos  Position
}

// Line returns the trimmed source text of the 1-based line number.
// Returns an empty string for out-of-range lines.
func (f *File) Line(n int) string {
	if n < 1 || n > len(f.lines) {
		return ""
	}
	return strings.TrimSpace(f.lines[n-1])
}

// LineCount returns the number of source lines.
func (f *File) LineCount() int {
	return len(f.lines)
}

// IsKnownContract reports whether the name is a contract, interface, or
// library declared in this file. Contract-typed variables occupy an
// address-sized storage footprint.
func (f *File) IsKnownContract(name string) bool {
	for _, c := range f.Contracts {
		if c.Name == name {
			return true
		}
	}
	return false
}

// IsKnownEnum reports whether the name is an enum declared at file level
// or inside any contract in this file.
func (f *File) IsKnownEnum(name string) bool {
	for _, e := range f.Enums {
		if e == name {
			return true
		}
	}
	for _, c := range f.Contracts {
		for _, e := range c.Enums {
			if e == name {
				return true
			}
		}
	}
	return false
}

// ContractKind distinguishes the declaration forms that introduce a
// contract scope.
type ContractKind int

const (
	// KindContract is a plain or abstract contract.
	KindContract ContractKind = iota
	// KindInterface is an interface declaration.
	KindInterface
	// KindLibrary is a library declaration.
	KindLibrary
)

// String returns the Solidity keyword for the kind.
func (k ContractKind) String() string {
	switch k {
	case KindInterface:
		return "interface"
	case KindLibrary:
		return "library"
	default:
		return "contract"
	}
}

// Contract is one contract, interface, or library declaration.
type Contract struct {
	Name string
	Kind ContractKind

	// Abstract is true for "abstract contract" declarations.
	Abstract bool

	// Inherits lists the parent names from the "is" clause.
	Inherits []string

	// UsingFor lists attached libraries, e.g. using SafeMath for uint256.
	UsingFor []UsingDirective

	StateVars []*StateVar
	Functions []*Function
	Modifiers []*Modifier
	Structs   []*StructDef
	Events    []*EventDef
	Errors    []*ErrorDef
	Enums     []string

	Pos Position
}

// UsingDirective records a "using Library for Type" attachment.
type UsingDirective struct {
	Library string
	Target  string
	Pos     Position
}

// EntryPoints returns the functions callable from outside the contract:
// public and external functions plus public state variable getters are the
// dispatch surface, but only declared functions are returned here.
func (c *Contract) EntryPoints() []*Function {
	var entries []*Function
	for _, fn := range c.Functions {
		if fn.Kind != FnFunction {
			continue
		}
		if fn.Visibility == VisibilityPublic || fn.Visibility == VisibilityExternal {
			entries = append(entries, fn)
		}
	}
	return entries
}

// StateVar returns the state variable with the given name, or nil.
func (c *Contract) StateVar(name string) *StateVar {
	for _, v := range c.StateVars {
		if v.Name == name {
			return v
		}
	}
	return nil
}

// Visibility is a function or state variable visibility.
type Visibility int

const (
	// VisibilityDefault means no explicit keyword was written.
	// State variables default to internal, pre-0.5 functions to public.
	VisibilityDefault Visibility = iota
	VisibilityPublic
	VisibilityExternal
	VisibilityInternal
	VisibilityPrivate
)

// String returns the Solidity keyword, empty for the default.
func (v Visibility) String() string {
	switch v {
	case VisibilityPublic:
		return "public"
	case VisibilityExternal:
		return "external"
	case VisibilityInternal:
		return "internal"
	case VisibilityPrivate:
		return "private"
	default:
		return ""
	}
}

// VarMutability distinguishes plain storage variables from compile-time
// and construction-time bindings.
type VarMutability int

const (
	// VarRegular occupies a storage slot.
	VarRegular VarMutability = iota
	// VarConstant is inlined at compile time; no storage.
	VarConstant
	// VarImmutable is set during construction and embedded in code; no storage.
	VarImmutable
)

// StateVar is one state variable declaration.
type StateVar struct {
	Name       string
	Type       string
	Visibility Visibility
	Mutability VarMutability

	// Initializer holds the tokens after "=" up to the semicolon,
	// empty when the declaration has no initializer.
	Initializer []Token

	Pos Position
}

// Mutability is a function state mutability.
type Mutability int

const (
	MutabilityNonPayable Mutability = iota
	MutabilityPayable
	MutabilityView
	MutabilityPure
)

// String returns the Solidity keyword, empty for nonpayable.
func (m Mutability) String() string {
	switch m {
	case MutabilityPayable:
		return "payable"
	case MutabilityView:
		return "view"
	case MutabilityPure:
		return "pure"
	default:
		return ""
	}
}

// FunctionKind distinguishes the function-like declaration forms.
type FunctionKind int

const (
	FnFunction FunctionKind = iota
	FnConstructor
	FnFallback
	FnReceive
)

// Param is one function parameter or return value.
type Param struct {
	Name string
	Type string

	// DataLocation is "memory", "calldata", "storage", or empty.
	DataLocation string

	// Indexed is set for indexed event parameters.
	Indexed bool

	Pos Position
}

// Function is one function, constructor, fallback, or receive declaration.
type Function struct {
	Name string
	Kind FunctionKind

	Params  []Param
	Returns []Param

	Visibility Visibility
	Mutability Mutability

	// ModifierCalls lists invoked modifier names, inherited constructors
	// included.
	ModifierCalls []string

	Virtual  bool
	Override bool

	// Body holds the tokens between the function's braces, exclusive.
	// Empty for bodyless declarations (interfaces, abstract functions).
	Body []Token

	// HasBody distinguishes an empty body {} from a missing one.
	HasBody bool

	// Loops holds the for loops found in the body, outermost first.
	Loops []*ForLoop

	// Whiles holds the while loops found in the body.
	Whiles []*WhileLoop

	// UncheckedSpans holds token ranges of unchecked blocks within Body.
	UncheckedSpans []Span

	Pos Position
}

// Span is a half-open token index range within a token slice.
type Span struct {
	Start int
	End   int
}

// Contains reports whether the token index falls inside the span.
func (s Span) Contains(i int) bool {
	return i >= s.Start && i < s.End
}

// ForLoop is one for statement, header split into its three sections.
type ForLoop struct {
	// Init, Cond, and Post hold the header tokens between the parentheses,
	// split on the two top-level semicolons.
	Init []Token
	Cond []Token
	Post []Token

	// Body is the loop body token range within the enclosing function body.
	Body Span

	Pos Position
}

// WhileLoop is one while statement.
type WhileLoop struct {
	Cond []Token
	Body Span
	Pos  Position
}

// Modifier is one modifier declaration.
type Modifier struct {
	Name string
	Body []Token
	Pos  Position
}

// StructDef is one struct declaration.
type StructDef struct {
	Name   string
	Fields []Param
	Pos    Position
}

// EventDef is one event declaration.
type EventDef struct {
	Name   string
	Params []Param
	Pos    Position
}

// ErrorDef is one custom error declaration.
type ErrorDef struct {
	Name   string
	Params []Param
	Pos    Position
}

// Call is one matched function-style invocation inside a token stream.
type Call struct {
	// Name is the called identifier, e.g. "require".
	Name string

	// Args holds the argument token slices, split on top-level commas.
	Args [][]Token

	// Index is the position of the name token in the searched stream.
	Index int

	Pos Position
}

// FindCalls returns every name(...) invocation in the token stream.
// Member calls like a.name(...) are included; the receiver is not captured.
func FindCalls(tokens []Token, name string) []Call {
	var calls []Call
	for i := 0; i+1 < len(tokens); i++ {
		if tokens[i].Text != name {
			continue
		}
		if tokens[i].Kind != TokenIdent && tokens[i].Kind != TokenKeyword {
			continue
		}
		if !tokens[i+1].Is("(") {
			continue
		}
		end := matchParen(tokens, i+1)
		if end < 0 {
			continue
		}
		calls = append(calls, Call{
			Name:  name,
			Args:  splitArgs(tokens[i+2 : end]),
			Index: i,
			Pos:   tokens[i].Pos,
		})
	}
	return calls
}

// matchParen returns the index of the ")" matching the "(" at open,
// or -1 when the stream ends first.
func matchParen(tokens []Token, open int) int {
	depth := 0
	for i := open; i < len(tokens); i++ {
		switch {
		case tokens[i].Is("("):
			depth++
		case tokens[i].Is(")"):
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// matchBrace returns the index of the "}" matching the "{" at open,
// or -1 when the stream ends first.
func matchBrace(tokens []Token, open int) int {
	depth := 0
	for i := open; i < len(tokens); i++ {
		switch {
		case tokens[i].Is("{"):
			depth++
		case tokens[i].Is("}"):
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// splitArgs splits argument tokens on top-level commas.
func splitArgs(tokens []Token) [][]Token {
	if len(tokens) == 0 {
		return nil
	}
	var args [][]Token
	depth := 0
	start := 0
	for i, tok := range tokens {
		switch {
		case tok.Is("(") || tok.Is("[") || tok.Is("{"):
			depth++
		case tok.Is(")") || tok.Is("]") || tok.Is("}"):
			depth--
		case tok.Is(",") && depth == 0:
			args = append(args, tokens[start:i])
			start = i + 1
		}
	}
	args = append(args, tokens[start:])
	return args
}

// CountIdent counts occurrences of the identifier in the token stream.
// Member accesses like x.name do not count: the identifier after a dot
// names a member, not the variable.
func CountIdent(tokens []Token, name string) int {
	n := 0
	for i, tok := range tokens {
		if !tok.IsIdent(name) {
			continue
		}
		if i > 0 && tokens[i-1].Is(".") {
			continue
		}
		n++
	}
	return n
}

// AssignmentsTo returns the indices of tokens that write the named
// variable: simple and compound assignment, increment, decrement, and
// delete. Reads like "x + 1" are not included.
func AssignmentsTo(tokens []Token, name string) []int {
	var writes []int
	for i, tok := range tokens {
		if !tok.IsIdent(name) {
			continue
		}
		if i > 0 && tokens[i-1].Is(".") {
			continue
		}
		if i > 0 && tokens[i-1].IsKeyword("delete") {
			writes = append(writes, i)
			continue
		}
		if i > 0 && (tokens[i-1].Is("++") || tokens[i-1].Is("--")) {
			writes = append(writes, i)
			continue
		}
		j := skipAccessors(tokens, i+1)
		if j < 0 || j >= len(tokens) || tokens[j].Kind != TokenPunct {
			continue
		}
		switch tokens[j].Text {
		case "=", "+=", "-=", "*=", "/=", "%=", "|=", "&=", "^=", "<<=", ">>=", "++", "--":
			writes = append(writes, i)
		}
	}
	return writes
}

// AssignedValue returns the right-hand side tokens of a simple assignment
// whose left-hand side starts at the identifier index: everything between
// "=" and the statement's top-level semicolon. Nil for compound
// assignments, increments, deletes, and plain reads.
func AssignedValue(tokens []Token, ident int) []Token {
	j := skipAccessors(tokens, ident+1)
	if j < 0 || j >= len(tokens) || !tokens[j].Is("=") {
		return nil
	}
	start := j + 1
	depth := 0
	for k := start; k < len(tokens); k++ {
		switch {
		case tokens[k].Is("(") || tokens[k].Is("[") || tokens[k].Is("{"):
			depth++
		case tokens[k].Is(")") || tokens[k].Is("]") || tokens[k].Is("}"):
			depth--
		case tokens[k].Is(";") && depth == 0:
			return tokens[start:k]
		}
	}
	return tokens[start:]
}

// skipAccessors advances past member access and index chains so that
// "balances[msg.sender] = x" resolves to the assignment operator.
// Returns -1 when an index bracket never closes.
func skipAccessors(tokens []Token, i int) int {
	for i < len(tokens) {
		switch {
		case tokens[i].Is("["):
			end := matchBracket(tokens, i)
			if end < 0 {
				return -1
			}
			i = end + 1
		case tokens[i].Is(".") && i+1 < len(tokens):
			i += 2
		default:
			return i
		}
	}
	return i
}

// matchBracket returns the index of the "]" matching the "[" at open.
func matchBracket(tokens []Token, open int) int {
	depth := 0
	for i := open; i < len(tokens); i++ {
		switch {
		case tokens[i].Is("["):
			depth++
		case tokens[i].Is("]"):
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// TokensText joins token texts with single spaces, for snippets and
// diagnostics.
func TokensText(tokens []Token) string {
	parts := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Kind == TokenString {
			parts = append(parts, `"`+tok.Text+`"`)
			continue
		}
		parts = append(parts, tok.Text)
	}
	return strings.Join(parts, " ")
}
