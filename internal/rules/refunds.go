package rules

import (
	"context"
	"fmt"
	"strings"

	"github.com/gaslint/gaslint/internal/gas"
	"github.com/gaslint/gaslint/internal/model"
	"github.com/gaslint/gaslint/internal/solidity"
)

// DeleteRefundRule flags statements that clear a state variable by
// assigning zero. delete compiles to the same store with the clearing
// intent spelled out.
type DeleteRefundRule struct {
	tip Tip
}

// NewDeleteRefundRule creates the delete-for-refund rule.
func NewDeleteRefundRule() *DeleteRefundRule {
	return &DeleteRefundRule{tip: tipBySlug("delete-for-refund")}
}

// ID returns the rule's catalog slug.
func (r *DeleteRefundRule) ID() string { return r.tip.RuleID }

// Tip returns the catalog entry.
func (r *DeleteRefundRule) Tip() Tip { return r.tip }

// Check matches "= 0" assignments to state variables and their mapping
// or array entries.
func (r *DeleteRefundRule) Check(_ context.Context, file *solidity.File) ([]model.Finding, error) {
	var findings []model.Finding
	for _, c := range file.Contracts {
		for _, v := range c.StateVars {
			if v.Mutability != solidity.VarRegular {
				continue
			}
			name := v.Name
			bodies(c, func(label string, body []solidity.Token) {
				for _, idx := range solidity.AssignmentsTo(body, name) {
					rhs := solidity.AssignedValue(body, idx)
					if len(rhs) != 1 || rhs[0].Kind != solidity.TokenNumber || rhs[0].Text != "0" {
						continue
					}
					f := newFinding(r.tip, file, body[idx].Pos, c.Name, 0)
					f.Description = fmt.Sprintf(
						"%s assigns zero to %s; delete states the clearing intent and earns the same refund",
						label, name)
					findings = append(findings, f)
				}
			})
		}
	}
	return findings, nil
}

// ReentrancyFlagRule flags boolean lock variables toggled true and back
// to false in one body. The zero-to-one store on every entry is the most
// expensive SSTORE there is.
type ReentrancyFlagRule struct {
	tip Tip
}

// NewReentrancyFlagRule creates the uint-reentrancy-flag rule.
func NewReentrancyFlagRule() *ReentrancyFlagRule {
	return &ReentrancyFlagRule{tip: tipBySlug("uint-reentrancy-flag")}
}

// ID returns the rule's catalog slug.
func (r *ReentrancyFlagRule) ID() string { return r.tip.RuleID }

// Tip returns the catalog entry.
func (r *ReentrancyFlagRule) Tip() Tip { return r.tip }

// Check looks for bool state variables that some function or modifier
// sets true and later false: the shape of a reentrancy lock.
func (r *ReentrancyFlagRule) Check(_ context.Context, file *solidity.File) ([]model.Finding, error) {
	var findings []model.Finding
	for _, c := range file.Contracts {
		for _, v := range c.StateVars {
			if v.Mutability != solidity.VarRegular || strings.TrimSpace(v.Type) != "bool" {
				continue
			}
			name := v.Name
			var lockedIn string
			bodies(c, func(label string, body []solidity.Token) {
				var setTrue, setFalse bool
				for _, idx := range solidity.AssignmentsTo(body, name) {
					rhs := solidity.AssignedValue(body, idx)
					if len(rhs) != 1 {
						continue
					}
					switch {
					case rhs[0].IsKeyword("true"):
						setTrue = true
					case rhs[0].IsKeyword("false"):
						setFalse = true
					}
				}
				if setTrue && setFalse && lockedIn == "" {
					lockedIn = label
				}
			})
			if lockedIn == "" {
				continue
			}
			f := newFinding(r.tip, file, v.Pos, c.Name, gas.SstoreSetGas-gas.SstoreResetGas)
			f.Description = fmt.Sprintf(
				"bool %s is toggled true and back in %s; a uint256 flag switching between nonzero values avoids the zero-to-one store",
				name, lockedIn)
			findings = append(findings, f)
		}
	}
	return findings, nil
}
