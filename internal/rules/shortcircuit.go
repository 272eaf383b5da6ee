package rules

import (
	"context"
	"fmt"

	"github.com/gaslint/gaslint/internal/model"
	"github.com/gaslint/gaslint/internal/solidity"
)

// ShortCircuitRule flags require conditions that evaluate a storage read
// before a cheap comparison joined by && or ||. Swapping the operands
// lets the cheap side decide without touching storage.
type ShortCircuitRule struct {
	tip Tip
}

// NewShortCircuitRule creates the short-circuit-order rule.
func NewShortCircuitRule() *ShortCircuitRule {
	return &ShortCircuitRule{tip: tipBySlug("short-circuit-order")}
}

// ID returns the rule's catalog slug.
func (r *ShortCircuitRule) ID() string { return r.tip.RuleID }

// Tip returns the catalog entry.
func (r *ShortCircuitRule) Tip() Tip { return r.tip }

// Check splits require conditions on the first top-level boolean
// operator and compares the sides: a state-variable read on the left
// with a short state-free expression on the right is a swap candidate.
func (r *ShortCircuitRule) Check(_ context.Context, file *solidity.File) ([]model.Finding, error) {
	var findings []model.Finding
	for _, c := range file.Contracts {
		bodies(c, func(label string, body []solidity.Token) {
			for _, call := range solidity.FindCalls(body, "require") {
				if len(call.Args) == 0 {
					continue
				}
				left, op, right := splitBoolOp(call.Args[0])
				if op == "" {
					continue
				}
				if !readsState(left, c) || readsState(right, c) {
					continue
				}
				// A right side with calls or long expressions may not be
				// cheap after all.
				if len(right) > 5 || containsPunct(right, "(") {
					continue
				}
				f := newFinding(r.tip, file, call.Pos, c.Name, 0)
				f.Description = fmt.Sprintf(
					"the condition in %s reads storage before the cheap %q operand; evaluate the cheap side first",
					label, solidity.TokensText(right))
				findings = append(findings, f)
			}
		})
	}
	return findings, nil
}

// splitBoolOp splits tokens on the first top-level && or ||.
func splitBoolOp(tokens []solidity.Token) (left []solidity.Token, op string, right []solidity.Token) {
	depth := 0
	for i, tok := range tokens {
		switch {
		case tok.Is("(") || tok.Is("[") || tok.Is("{"):
			depth++
		case tok.Is(")") || tok.Is("]") || tok.Is("}"):
			depth--
		case depth == 0 && (tok.Is("&&") || tok.Is("||")):
			return tokens[:i], tok.Text, tokens[i+1:]
		}
	}
	return nil, "", nil
}

// readsState reports whether the tokens mention any state variable of
// the contract.
func readsState(tokens []solidity.Token, c *solidity.Contract) bool {
	for i, tok := range tokens {
		if tok.Kind != solidity.TokenIdent {
			continue
		}
		if i > 0 && tokens[i-1].Is(".") {
			continue
		}
		if v := c.StateVar(tok.Text); v != nil && v.Mutability == solidity.VarRegular {
			return true
		}
	}
	return false
}

// containsPunct reports whether any token is the given punctuation.
func containsPunct(tokens []solidity.Token, punct string) bool {
	for _, tok := range tokens {
		if tok.Is(punct) {
			return true
		}
	}
	return false
}
