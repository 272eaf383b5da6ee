package rules

import (
	"context"
	"fmt"

	"github.com/gaslint/gaslint/internal/model"
	"github.com/gaslint/gaslint/internal/solidity"
)

// PayableConstructorRule flags non-payable constructors. The compiler
// guards them with a callvalue check that deployment pays for once and
// every clone pays for again.
type PayableConstructorRule struct {
	tip Tip
}

// NewPayableConstructorRule creates the payable-constructor rule.
func NewPayableConstructorRule() *PayableConstructorRule {
	return &PayableConstructorRule{tip: tipBySlug("payable-constructor")}
}

// ID returns the rule's catalog slug.
func (r *PayableConstructorRule) ID() string { return r.tip.RuleID }

// Tip returns the catalog entry.
func (r *PayableConstructorRule) Tip() Tip { return r.tip }

// Check flags constructors in deployable contracts that are not marked
// payable. Abstract contracts are skipped: their constructors only run
// through a child's deployment.
func (r *PayableConstructorRule) Check(_ context.Context, file *solidity.File) ([]model.Finding, error) {
	var findings []model.Finding
	for _, c := range file.Contracts {
		if c.Kind != solidity.KindContract || c.Abstract {
			continue
		}
		for _, fn := range c.Functions {
			if fn.Kind != solidity.FnConstructor || fn.Mutability == solidity.MutabilityPayable {
				continue
			}
			f := newFinding(r.tip, file, fn.Pos, c.Name, r.tip.SavedGas)
			f.Description = fmt.Sprintf(
				"the constructor of %s is not payable, so deployment includes a callvalue guard it never needs",
				c.Name)
			findings = append(findings, f)
		}
	}
	return findings, nil
}
