package rules

import (
	"context"
	"fmt"
	"math/bits"
	"strconv"
	"strings"

	"github.com/gaslint/gaslint/internal/model"
	"github.com/gaslint/gaslint/internal/solidity"
)

// parseNumeric parses a Solidity integer literal: decimal or 0x hex,
// underscore separators allowed. Scientific notation fails, which is
// fine: 1e18 is not a shift candidate anyway.
func parseNumeric(text string) (uint64, bool) {
	cleaned := strings.ReplaceAll(text, "_", "")
	v, err := strconv.ParseUint(cleaned, 0, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// isBoolLiteral reports whether the token is true or false.
func isBoolLiteral(tok solidity.Token) bool {
	return tok.IsKeyword("true") || tok.IsKeyword("false")
}

// identIsUnsigned reports whether the name resolves to a uint-typed
// function parameter or state variable. Unknown names resolve false.
func identIsUnsigned(fn *solidity.Function, c *solidity.Contract, name string) bool {
	for _, p := range fn.Params {
		if p.Name == name {
			return strings.HasPrefix(strings.TrimSpace(p.Type), "uint")
		}
	}
	if v := c.StateVar(name); v != nil {
		return strings.HasPrefix(strings.TrimSpace(v.Type), "uint")
	}
	return false
}

// ShiftMathRule flags multiplication and division by power-of-two
// literals. A shift does the same work for less gas.
type ShiftMathRule struct {
	tip Tip
}

// NewShiftMathRule creates the shift-math rule.
func NewShiftMathRule() *ShiftMathRule {
	return &ShiftMathRule{tip: tipBySlug("shift-math")}
}

// ID returns the rule's catalog slug.
func (r *ShiftMathRule) ID() string { return r.tip.RuleID }

// Tip returns the catalog entry.
func (r *ShiftMathRule) Tip() Tip { return r.tip }

// Check matches * and / followed by a power-of-two literal. Two adjacent
// literals are skipped: the compiler folds those at compile time.
func (r *ShiftMathRule) Check(_ context.Context, file *solidity.File) ([]model.Finding, error) {
	var findings []model.Finding
	for _, c := range file.Contracts {
		bodies(c, func(label string, body []solidity.Token) {
			for i := 1; i+1 < len(body); i++ {
				op := body[i]
				if !op.Is("*") && !op.Is("/") {
					continue
				}
				if body[i-1].Kind == solidity.TokenNumber {
					continue
				}
				if body[i+1].Kind != solidity.TokenNumber {
					continue
				}
				v, ok := parseNumeric(body[i+1].Text)
				if !ok || v < 2 || v&(v-1) != 0 {
					continue
				}
				shift := "<<"
				if op.Is("/") {
					shift = ">>"
				}
				f := newFinding(r.tip, file, op.Pos, c.Name, r.tip.SavedGas)
				f.Description = fmt.Sprintf(
					"%s %s in %s is a power-of-two operation; use %s %d",
					op.Text, body[i+1].Text, label, shift, bits.TrailingZeros64(v))
				findings = append(findings, f)
			}
		})
	}
	return findings, nil
}

// SafeMathRule flags SafeMath usage and always-true unsigned comparisons
// on compilers that check arithmetic natively.
type SafeMathRule struct {
	tip Tip
}

// NewSafeMathRule creates the redundant-safemath rule.
func NewSafeMathRule() *SafeMathRule {
	return &SafeMathRule{tip: tipBySlug("redundant-safemath")}
}

// ID returns the rule's catalog slug.
func (r *SafeMathRule) ID() string { return r.tip.RuleID }

// Tip returns the catalog entry.
func (r *SafeMathRule) Tip() Tip { return r.tip }

// Check matches SafeMath imports, using directives, and require(x >= 0)
// on identifiers whose declared type is unsigned. Gated on a pragma
// guaranteeing 0.8.0: below that SafeMath still earns its keep.
func (r *SafeMathRule) Check(_ context.Context, file *solidity.File) ([]model.Finding, error) {
	if !file.Pragma.GuaranteesAtLeast(0, 8, 0) {
		return nil, nil
	}
	var findings []model.Finding

	for _, imp := range file.Imports {
		if !strings.Contains(imp.Path, "SafeMath") {
			continue
		}
		f := newFinding(r.tip, file, imp.Pos, "", r.tip.SavedGas)
		f.Description = "the SafeMath import duplicates the compiler's native overflow checks"
		findings = append(findings, f)
	}

	for _, c := range file.Contracts {
		for _, using := range c.UsingFor {
			if using.Library != "SafeMath" {
				continue
			}
			f := newFinding(r.tip, file, using.Pos, c.Name, r.tip.SavedGas)
			f.Description = fmt.Sprintf(
				"using SafeMath for %s pays library-call overhead for checks the compiler already emits",
				using.Target)
			findings = append(findings, f)
		}

		for _, fn := range c.Functions {
			if !fn.HasBody {
				continue
			}
			for _, call := range solidity.FindCalls(fn.Body, "require") {
				if len(call.Args) == 0 {
					continue
				}
				arg := call.Args[0]
				if len(arg) != 3 || arg[0].Kind != solidity.TokenIdent ||
					!arg[1].Is(">=") || arg[2].Kind != solidity.TokenNumber || arg[2].Text != "0" {
					continue
				}
				if !identIsUnsigned(fn, c, arg[0].Text) {
					continue
				}
				f := newFinding(r.tip, file, call.Pos, c.Name, r.tip.SavedGas)
				f.Description = fmt.Sprintf(
					"require(%s >= 0) is always true: %s is unsigned",
					arg[0].Text, arg[0].Text)
				findings = append(findings, f)
			}
		}
	}
	return findings, nil
}

// BoolCompareRule flags comparisons of boolean expressions against true
// or false literals.
type BoolCompareRule struct {
	tip Tip
}

// NewBoolCompareRule creates the no-bool-compare rule.
func NewBoolCompareRule() *BoolCompareRule {
	return &BoolCompareRule{tip: tipBySlug("no-bool-compare")}
}

// ID returns the rule's catalog slug.
func (r *BoolCompareRule) ID() string { return r.tip.RuleID }

// Tip returns the catalog entry.
func (r *BoolCompareRule) Tip() Tip { return r.tip }

// Check matches == and != with a boolean literal on either side.
func (r *BoolCompareRule) Check(_ context.Context, file *solidity.File) ([]model.Finding, error) {
	var findings []model.Finding
	for _, c := range file.Contracts {
		bodies(c, func(label string, body []solidity.Token) {
			for i := 1; i+1 < len(body); i++ {
				op := body[i]
				if !op.Is("==") && !op.Is("!=") {
					continue
				}
				if !isBoolLiteral(body[i+1]) && !isBoolLiteral(body[i-1]) {
					continue
				}
				f := newFinding(r.tip, file, op.Pos, c.Name, r.tip.SavedGas)
				f.Description = fmt.Sprintf(
					"comparison against a boolean literal in %s; use the value directly", label)
				findings = append(findings, f)
			}
		})
	}
	return findings, nil
}
