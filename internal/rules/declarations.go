package rules

import (
	"context"
	"fmt"
	"strings"

	"github.com/gaslint/gaslint/internal/model"
	"github.com/gaslint/gaslint/internal/solidity"
)

// Bytes32StringRule flags string state variables initialized with a
// literal that fits in 31 bytes. A bytes32 holds the same text in a
// single fixed slot and skips the length-word bookkeeping.
type Bytes32StringRule struct {
	tip Tip
}

// NewBytes32StringRule creates the bytes32-over-string rule.
func NewBytes32StringRule() *Bytes32StringRule {
	return &Bytes32StringRule{tip: tipBySlug("bytes32-over-string")}
}

// ID returns the rule's catalog slug.
func (r *Bytes32StringRule) ID() string { return r.tip.RuleID }

// Tip returns the catalog entry.
func (r *Bytes32StringRule) Tip() Tip { return r.tip }

// Check looks for string variables whose sole initializer is a short
// string literal and that are never reassigned. Dynamic or concatenated
// initializers are left alone since their final length is unknown here.
func (r *Bytes32StringRule) Check(_ context.Context, file *solidity.File) ([]model.Finding, error) {
	var findings []model.Finding
	for _, c := range file.Contracts {
		if c.Kind == solidity.KindInterface {
			continue
		}
		for _, v := range c.StateVars {
			if strings.TrimSpace(v.Type) != "string" {
				continue
			}
			if len(v.Initializer) != 1 || v.Initializer[0].Kind != solidity.TokenString {
				continue
			}
			if literalByteLen(v.Initializer[0].Text) > 31 {
				continue
			}
			if constructorWrites(c, v.Name)+writesOutsideConstructor(c, v.Name) > 0 {
				continue
			}
			f := newFinding(r.tip, file, v.Pos, c.Name, r.tip.SavedGas)
			f.Description = fmt.Sprintf(
				"%s holds the fixed literal %q which fits in a bytes32",
				v.Name, v.Initializer[0].Text)
			findings = append(findings, f)
		}
	}
	return findings, nil
}

// literalByteLen measures an unquoted string literal's content.
// Escape sequences count as one byte each.
func literalByteLen(body string) int {
	n := 0
	for i := 0; i < len(body); i++ {
		if body[i] == '\\' && i+1 < len(body) {
			i++
		}
		n++
	}
	return n
}

// FixedArrayRule flags in-memory dynamic array allocations with a
// literal size. A fixed-size array type avoids the runtime length word
// and bounds setup of `new T[](n)`.
type FixedArrayRule struct {
	tip Tip
}

// NewFixedArrayRule creates the fixed-size-arrays rule.
func NewFixedArrayRule() *FixedArrayRule {
	return &FixedArrayRule{tip: tipBySlug("fixed-size-arrays")}
}

// ID returns the rule's catalog slug.
func (r *FixedArrayRule) ID() string { return r.tip.RuleID }

// Tip returns the catalog entry.
func (r *FixedArrayRule) Tip() Tip { return r.tip }

// Check scans function bodies for the `new T[](<number>)` shape. Sizes
// that are expressions stay quiet because the count may genuinely vary.
func (r *FixedArrayRule) Check(_ context.Context, file *solidity.File) ([]model.Finding, error) {
	var findings []model.Finding
	for _, c := range file.Contracts {
		bodies(c, func(label string, body []solidity.Token) {
			for i, tok := range body {
				if !tok.IsKeyword("new") {
					continue
				}
				elem, rest := newArrayElem(body[i+1:])
				if elem == "" || len(rest) < 4 {
					continue
				}
				if !rest[0].Is("]") || !rest[1].Is("(") ||
					rest[2].Kind != solidity.TokenNumber || !rest[3].Is(")") {
					continue
				}
				f := newFinding(r.tip, file, tok.Pos, c.Name, r.tip.SavedGas)
				f.Description = fmt.Sprintf(
					"%s allocates new %s[](%s) with a constant size; a fixed %s[%s] is cheaper",
					label, elem, rest[2].Text, elem, rest[2].Text)
				findings = append(findings, f)
			}
		})
	}
	return findings, nil
}

// newArrayElem consumes the element type after a `new` keyword up to
// the opening bracket. It returns the joined type text and the tokens
// starting at the bracket's closing "]".
func newArrayElem(tokens []solidity.Token) (string, []solidity.Token) {
	var elem string
	for i, tok := range tokens {
		switch {
		case tok.Is("["):
			if elem == "" {
				return "", nil
			}
			return elem, tokens[i+1:]
		case tok.Kind == solidity.TokenIdent || tok.Kind == solidity.TokenKeyword:
			elem += tok.Text
		default:
			return "", nil
		}
	}
	return "", nil
}

// MappingLookupRule flags loops that scan a storage array comparing
// elements, the classic linear search a mapping replaces with one
// keyed load.
type MappingLookupRule struct {
	tip Tip
}

// NewMappingLookupRule creates the mapping-over-array rule.
func NewMappingLookupRule() *MappingLookupRule {
	return &MappingLookupRule{tip: tipBySlug("mapping-over-array")}
}

// ID returns the rule's catalog slug.
func (r *MappingLookupRule) ID() string { return r.tip.RuleID }

// Tip returns the catalog entry.
func (r *MappingLookupRule) Tip() Tip { return r.tip }

// Check pairs a loop bounded by a storage array's length with an
// equality test inside the body. The cost scales with the array, so
// the finding is advisory rather than priced.
func (r *MappingLookupRule) Check(_ context.Context, file *solidity.File) ([]model.Finding, error) {
	var findings []model.Finding
	for _, c := range file.Contracts {
		if c.Kind == solidity.KindInterface {
			continue
		}
		for _, fn := range c.Functions {
			if !fn.HasBody {
				continue
			}
			for _, loop := range fn.Loops {
				name := lengthBound(loop.Cond)
				if name == "" {
					continue
				}
				v := c.StateVar(name)
				if v == nil || !isArrayLike(v.Type) {
					continue
				}
				body := loopBody(fn, loop.Body)
				if !scansForMatch(body) {
					continue
				}
				f := newFinding(r.tip, file, loop.Pos, c.Name, 0)
				f.Description = fmt.Sprintf(
					"%s walks %s comparing elements; a mapping resolves the lookup in one keyed read",
					functionLabel(fn), name)
				findings = append(findings, f)
			}
		}
	}
	return findings, nil
}

// lengthBound extracts the array identifier from an `x.length` access
// in a loop condition.
func lengthBound(cond []solidity.Token) string {
	for i := 0; i+2 < len(cond); i++ {
		if cond[i].Kind == solidity.TokenIdent &&
			cond[i+1].Is(".") && cond[i+2].Kind == solidity.TokenIdent &&
			cond[i+2].Text == "length" {
			if i > 0 && cond[i-1].Is(".") {
				continue
			}
			return cond[i].Text
		}
	}
	return ""
}

// scansForMatch reports whether a loop body has the if-plus-equality
// shape of a linear search.
func scansForMatch(body []solidity.Token) bool {
	hasIf := false
	hasEq := false
	for _, tok := range body {
		if tok.IsKeyword("if") {
			hasIf = true
		}
		if tok.Is("==") {
			hasEq = true
		}
	}
	return hasIf && hasEq
}
