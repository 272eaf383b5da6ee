package rules

import (
	"context"
	"fmt"

	"github.com/gaslint/gaslint/internal/model"
	"github.com/gaslint/gaslint/internal/solidity"
)

// CalldataRule flags memory parameters of external functions that the
// body never assigns. Reading them straight from calldata skips the
// entry copy.
type CalldataRule struct {
	tip Tip
}

// NewCalldataRule creates the prefer-calldata rule.
func NewCalldataRule() *CalldataRule {
	return &CalldataRule{tip: tipBySlug("prefer-calldata")}
}

// ID returns the rule's catalog slug.
func (r *CalldataRule) ID() string { return r.tip.RuleID }

// Tip returns the catalog entry.
func (r *CalldataRule) Tip() Tip { return r.tip }

// Check looks for external functions with memory-located parameters never
// written in the body. A written parameter needs the memory copy.
func (r *CalldataRule) Check(_ context.Context, file *solidity.File) ([]model.Finding, error) {
	var findings []model.Finding
	for _, c := range file.Contracts {
		for _, fn := range c.Functions {
			if fn.Visibility != solidity.VisibilityExternal || !fn.HasBody {
				continue
			}
			for _, p := range fn.Params {
				if p.DataLocation != "memory" || p.Name == "" {
					continue
				}
				if len(solidity.AssignmentsTo(fn.Body, p.Name)) > 0 {
					continue
				}
				f := newFinding(r.tip, file, p.Pos, c.Name, r.tip.SavedGas)
				f.Description = fmt.Sprintf(
					"parameter %s of %s is copied to memory but never modified; declare it calldata",
					p.Name, functionLabel(fn))
				findings = append(findings, f)
			}
		}
	}
	return findings, nil
}

// ExternalVisibilityRule flags public functions no code in the contract
// calls internally. External visibility lets their parameters stay in
// calldata.
type ExternalVisibilityRule struct {
	tip Tip
}

// NewExternalVisibilityRule creates the prefer-external rule.
func NewExternalVisibilityRule() *ExternalVisibilityRule {
	return &ExternalVisibilityRule{tip: tipBySlug("prefer-external")}
}

// ID returns the rule's catalog slug.
func (r *ExternalVisibilityRule) ID() string { return r.tip.RuleID }

// Tip returns the catalog entry.
func (r *ExternalVisibilityRule) Tip() Tip { return r.tip }

// Check looks for public functions with parameters whose name appears in
// no function or modifier body of the contract. Virtual and overriding
// functions are skipped: a parent or child may call them internally.
func (r *ExternalVisibilityRule) Check(_ context.Context, file *solidity.File) ([]model.Finding, error) {
	var findings []model.Finding
	for _, c := range file.Contracts {
		for _, fn := range c.Functions {
			if fn.Kind != solidity.FnFunction || fn.Visibility != solidity.VisibilityPublic {
				continue
			}
			if !fn.HasBody || fn.Virtual || fn.Override || len(fn.Params) == 0 {
				continue
			}
			if referencedInContract(c, fn.Name) {
				continue
			}
			f := newFinding(r.tip, file, fn.Pos, c.Name, r.tip.SavedGas)
			f.Description = fmt.Sprintf(
				"%s is public but never called from inside the contract; declare it external",
				fn.Name)
			findings = append(findings, f)
		}
	}
	return findings, nil
}

// referencedInContract reports whether any function or modifier body
// mentions the name. Member accesses like this.name do not count: they
// dispatch externally.
func referencedInContract(c *solidity.Contract, name string) bool {
	found := false
	bodies(c, func(_ string, body []solidity.Token) {
		if solidity.CountIdent(body, name) > 0 {
			found = true
		}
	})
	return found
}
