package rules

import (
	"context"
	"fmt"

	"github.com/gaslint/gaslint/internal/gas"
	"github.com/gaslint/gaslint/internal/model"
	"github.com/gaslint/gaslint/internal/solidity"
)

// revertMessage extracts the string literal a require or revert call
// carries: the last argument of require, the only argument of revert.
// Returns false for calls without a message string.
func revertMessage(call solidity.Call) (string, bool) {
	var arg []solidity.Token
	switch call.Name {
	case "require":
		if len(call.Args) < 2 {
			return "", false
		}
		arg = call.Args[len(call.Args)-1]
	case "revert":
		if len(call.Args) != 1 {
			return "", false
		}
		arg = call.Args[0]
	default:
		return "", false
	}
	if len(arg) != 1 || arg[0].Kind != solidity.TokenString {
		return "", false
	}
	return arg[0].Text, true
}

// messageCalls visits every require and revert call with a string message
// in the contract's function and modifier bodies.
func messageCalls(c *solidity.Contract, visit func(label string, call solidity.Call, msg string)) {
	bodies(c, func(label string, body []solidity.Token) {
		for _, name := range []string{"require", "revert"} {
			for _, call := range solidity.FindCalls(body, name) {
				if msg, ok := revertMessage(call); ok {
					visit(label, call, msg)
				}
			}
		}
	})
}

// CustomErrorRule flags revert strings on compilers that support custom
// errors. The string costs deployed code and revert-path memory that a
// 4-byte error selector avoids.
type CustomErrorRule struct {
	tip Tip
}

// NewCustomErrorRule creates the custom-errors rule.
func NewCustomErrorRule() *CustomErrorRule {
	return &CustomErrorRule{tip: tipBySlug("custom-errors")}
}

// ID returns the rule's catalog slug.
func (r *CustomErrorRule) ID() string { return r.tip.RuleID }

// Tip returns the catalog entry.
func (r *CustomErrorRule) Tip() Tip { return r.tip }

// Check matches require and revert calls carrying message strings. Gated
// on a pragma guaranteeing 0.8.4, the release that introduced custom
// errors.
func (r *CustomErrorRule) Check(_ context.Context, file *solidity.File) ([]model.Finding, error) {
	if !file.Pragma.GuaranteesAtLeast(0, 8, 4) {
		return nil, nil
	}
	var findings []model.Finding
	for _, c := range file.Contracts {
		messageCalls(c, func(label string, call solidity.Call, msg string) {
			if len(msg) == 0 {
				return
			}
			f := newFinding(r.tip, file, call.Pos, c.Name, gas.StringStorageCost(len(msg)))
			f.Description = fmt.Sprintf(
				"%s in %s carries a %d-byte revert string; a custom error replaces it with a 4-byte selector",
				call.Name, label, len(msg))
			findings = append(findings, f)
		})
	}
	return findings, nil
}

// RevertStringRule flags revert strings that spill past one word. Each
// extra word costs deployed code and an extra store on the revert path.
type RevertStringRule struct {
	tip Tip
}

// NewRevertStringRule creates the short-revert-strings rule.
func NewRevertStringRule() *RevertStringRule {
	return &RevertStringRule{tip: tipBySlug("short-revert-strings")}
}

// ID returns the rule's catalog slug.
func (r *RevertStringRule) ID() string { return r.tip.RuleID }

// Tip returns the catalog entry.
func (r *RevertStringRule) Tip() Tip { return r.tip }

// Check measures every revert message against the one-word limit.
func (r *RevertStringRule) Check(_ context.Context, file *solidity.File) ([]model.Finding, error) {
	var findings []model.Finding
	for _, c := range file.Contracts {
		messageCalls(c, func(label string, call solidity.Call, msg string) {
			excess := gas.RevertStringExcessCost(len(msg))
			if excess == 0 {
				return
			}
			f := newFinding(r.tip, file, call.Pos, c.Name, excess)
			f.Description = fmt.Sprintf(
				"the revert string in %s is %d bytes; cut it to 32 or fewer",
				label, len(msg))
			findings = append(findings, f)
		})
	}
	return findings, nil
}

// AssertRule flags assert calls. Validation belongs to require; a failed
// assert is a Panic and, before 0.8, burned all remaining gas.
type AssertRule struct {
	tip Tip
}

// NewAssertRule creates the require-over-assert rule.
func NewAssertRule() *AssertRule {
	return &AssertRule{tip: tipBySlug("require-over-assert")}
}

// ID returns the rule's catalog slug.
func (r *AssertRule) ID() string { return r.tip.RuleID }

// Tip returns the catalog entry.
func (r *AssertRule) Tip() Tip { return r.tip }

// Check flags every assert call site.
func (r *AssertRule) Check(_ context.Context, file *solidity.File) ([]model.Finding, error) {
	var findings []model.Finding
	for _, c := range file.Contracts {
		bodies(c, func(label string, body []solidity.Token) {
			for _, call := range solidity.FindCalls(body, "assert") {
				f := newFinding(r.tip, file, call.Pos, c.Name, 0)
				f.Description = fmt.Sprintf(
					"assert in %s; use require for validation and reserve assert for invariants",
					label)
				findings = append(findings, f)
			}
		})
	}
	return findings, nil
}
