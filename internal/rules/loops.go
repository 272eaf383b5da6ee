package rules

import (
	"context"
	"fmt"
	"strings"

	"github.com/gaslint/gaslint/internal/gas"
	"github.com/gaslint/gaslint/internal/model"
	"github.com/gaslint/gaslint/internal/solidity"
)

// isArrayLike reports whether the type has a storage-resident length:
// dynamic arrays, bytes, and string. Mappings have no length at all.
func isArrayLike(typ string) bool {
	compact := strings.ReplaceAll(typ, " ", "")
	if strings.HasPrefix(compact, "mapping") {
		return false
	}
	return strings.Contains(compact, "[") || compact == "bytes" || compact == "string"
}

// loopBody slices the loop's body span out of the function body.
func loopBody(fn *solidity.Function, span solidity.Span) []solidity.Token {
	if span.Start < 0 || span.End > len(fn.Body) || span.Start > span.End {
		return nil
	}
	return fn.Body[span.Start:span.End]
}

// mutatesArray reports whether the tokens push to, pop from, or assign
// the named array.
func mutatesArray(tokens []solidity.Token, name string) bool {
	if len(solidity.AssignmentsTo(tokens, name)) > 0 {
		return true
	}
	for i := 0; i+2 < len(tokens); i++ {
		if !tokens[i].IsIdent(name) || !tokens[i+1].Is(".") {
			continue
		}
		if tokens[i+2].IsIdent("push") || tokens[i+2].IsIdent("pop") {
			return true
		}
	}
	return false
}

// incrementTarget returns the counter a loop post section increments,
// matching i++, ++i, i--, --i, and i += 1. Empty when the section is
// anything else.
func incrementTarget(post []solidity.Token) string {
	if len(post) == 2 {
		if post[0].Kind == solidity.TokenIdent && (post[1].Is("++") || post[1].Is("--")) {
			return post[0].Text
		}
		if post[1].Kind == solidity.TokenIdent && (post[0].Is("++") || post[0].Is("--")) {
			return post[1].Text
		}
	}
	if len(post) == 3 && post[0].Kind == solidity.TokenIdent &&
		(post[1].Is("+=") || post[1].Is("-=")) &&
		post[2].Kind == solidity.TokenNumber && post[2].Text == "1" {
		return post[0].Text
	}
	return ""
}

// condBounds reports whether the loop condition bounds the counter from
// above with < or <=.
func condBounds(cond []solidity.Token, counter string) bool {
	for i := 0; i+1 < len(cond); i++ {
		if cond[i].IsIdent(counter) && (cond[i+1].Is("<") || cond[i+1].Is("<=")) {
			return true
		}
	}
	return false
}

// PrefixIncrementRule flags post-increment in loop post sections. The
// discarded pre-increment copy costs gas every iteration.
type PrefixIncrementRule struct {
	tip Tip
}

// NewPrefixIncrementRule creates the prefix-increment rule.
func NewPrefixIncrementRule() *PrefixIncrementRule {
	return &PrefixIncrementRule{tip: tipBySlug("prefix-increment")}
}

// ID returns the rule's catalog slug.
func (r *PrefixIncrementRule) ID() string { return r.tip.RuleID }

// Tip returns the catalog entry.
func (r *PrefixIncrementRule) Tip() Tip { return r.tip }

// Check matches i++ and i-- in for-loop post sections.
func (r *PrefixIncrementRule) Check(_ context.Context, file *solidity.File) ([]model.Finding, error) {
	var findings []model.Finding
	for _, c := range file.Contracts {
		for _, fn := range c.Functions {
			for _, loop := range fn.Loops {
				post := loop.Post
				if len(post) != 2 || post[0].Kind != solidity.TokenIdent {
					continue
				}
				if !post[1].Is("++") && !post[1].Is("--") {
					continue
				}
				f := newFinding(r.tip, file, post[0].Pos, c.Name, r.tip.SavedGas)
				f.Description = fmt.Sprintf(
					"%s%s discards the pre-increment value; use %s%s",
					post[0].Text, post[1].Text, post[1].Text, post[0].Text)
				findings = append(findings, f)
			}
		}
	}
	return findings, nil
}

// ArrayLengthRule flags loop conditions that re-read a storage array's
// length every iteration.
type ArrayLengthRule struct {
	tip Tip
}

// NewArrayLengthRule creates the cache-array-length rule.
func NewArrayLengthRule() *ArrayLengthRule {
	return &ArrayLengthRule{tip: tipBySlug("cache-array-length")}
}

// ID returns the rule's catalog slug.
func (r *ArrayLengthRule) ID() string { return r.tip.RuleID }

// Tip returns the catalog entry.
func (r *ArrayLengthRule) Tip() Tip { return r.tip }

// Check matches arr.length in for-loop conditions where arr is a storage
// array the loop body does not mutate. Memory arrays are skipped: their
// length read is already cheap.
func (r *ArrayLengthRule) Check(_ context.Context, file *solidity.File) ([]model.Finding, error) {
	var findings []model.Finding
	for _, c := range file.Contracts {
		for _, fn := range c.Functions {
			for _, loop := range fn.Loops {
				cond := loop.Cond
				for i := 0; i+2 < len(cond); i++ {
					if cond[i].Kind != solidity.TokenIdent || !cond[i+1].Is(".") || !cond[i+2].IsIdent("length") {
						continue
					}
					v := c.StateVar(cond[i].Text)
					if v == nil || !isArrayLike(v.Type) {
						continue
					}
					if mutatesArray(loopBody(fn, loop.Body), v.Name) {
						continue
					}
					f := newFinding(r.tip, file, cond[i].Pos, c.Name,
						gas.WarmStorageReadCost-gas.GasFastestStep)
					f.Description = fmt.Sprintf(
						"the loop re-reads %s.length from storage every iteration; hoist it into a local",
						v.Name)
					findings = append(findings, f)
				}
			}
		}
	}
	return findings, nil
}

// DefaultInitRule flags explicit zero initialization of loop counters and
// state variables.
type DefaultInitRule struct {
	tip Tip
}

// NewDefaultInitRule creates the no-default-init rule.
func NewDefaultInitRule() *DefaultInitRule {
	return &DefaultInitRule{tip: tipBySlug("no-default-init")}
}

// ID returns the rule's catalog slug.
func (r *DefaultInitRule) ID() string { return r.tip.RuleID }

// Tip returns the catalog entry.
func (r *DefaultInitRule) Tip() Tip { return r.tip }

// Check matches "= 0" and "= false" in for-loop init sections and state
// variable declarations.
func (r *DefaultInitRule) Check(_ context.Context, file *solidity.File) ([]model.Finding, error) {
	var findings []model.Finding
	for _, c := range file.Contracts {
		for _, v := range c.StateVars {
			if v.Mutability != solidity.VarRegular || !isZeroInit(v.Initializer) {
				continue
			}
			f := newFinding(r.tip, file, v.Pos, c.Name, r.tip.SavedGas)
			f.Description = fmt.Sprintf(
				"%s is explicitly initialized to its default value", v.Name)
			findings = append(findings, f)
		}
		for _, fn := range c.Functions {
			for _, loop := range fn.Loops {
				init := loop.Init
				if len(init) < 3 || !init[len(init)-2].Is("=") {
					continue
				}
				if !isZeroInit(init[len(init)-1:]) {
					continue
				}
				f := newFinding(r.tip, file, init[0].Pos, c.Name, r.tip.SavedGas)
				f.Description = "the loop counter is explicitly initialized to zero"
				findings = append(findings, f)
			}
		}
	}
	return findings, nil
}

// UncheckedIncrementRule flags bounded loop counter increments that pay
// the 0.8 overflow check. The condition already rules overflow out.
type UncheckedIncrementRule struct {
	tip Tip
}

// NewUncheckedIncrementRule creates the unchecked-increment rule.
func NewUncheckedIncrementRule() *UncheckedIncrementRule {
	return &UncheckedIncrementRule{tip: tipBySlug("unchecked-increment")}
}

// ID returns the rule's catalog slug.
func (r *UncheckedIncrementRule) ID() string { return r.tip.RuleID }

// Tip returns the catalog entry.
func (r *UncheckedIncrementRule) Tip() Tip { return r.tip }

// Check matches counter increments in loop headers whose condition bounds
// the counter with < or <=. Gated on a pragma guaranteeing 0.8.0: below
// that there is no check to remove, and an unknown pragma stays quiet.
func (r *UncheckedIncrementRule) Check(_ context.Context, file *solidity.File) ([]model.Finding, error) {
	if !file.Pragma.GuaranteesAtLeast(0, 8, 0) {
		return nil, nil
	}
	var findings []model.Finding
	for _, c := range file.Contracts {
		for _, fn := range c.Functions {
			for _, loop := range fn.Loops {
				counter := incrementTarget(loop.Post)
				if counter == "" || !condBounds(loop.Cond, counter) {
					continue
				}
				f := newFinding(r.tip, file, loop.Post[0].Pos, c.Name, r.tip.SavedGas)
				f.Description = fmt.Sprintf(
					"the bounded counter %s pays the overflow check every iteration; increment it in an unchecked block",
					counter)
				findings = append(findings, f)
			}
		}
	}
	return findings, nil
}
