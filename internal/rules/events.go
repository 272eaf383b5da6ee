package rules

import (
	"context"
	"fmt"

	"github.com/gaslint/gaslint/internal/model"
	"github.com/gaslint/gaslint/internal/solidity"
)

// WriteOnlyStorageRule flags private state variables the contract writes
// but never reads. Data that exists only for off-chain consumers belongs
// in an event.
type WriteOnlyStorageRule struct {
	tip Tip
}

// NewWriteOnlyStorageRule creates the events-over-storage rule.
func NewWriteOnlyStorageRule() *WriteOnlyStorageRule {
	return &WriteOnlyStorageRule{tip: tipBySlug("events-over-storage")}
}

// ID returns the rule's catalog slug.
func (r *WriteOnlyStorageRule) ID() string { return r.tip.RuleID }

// Tip returns the catalog entry.
func (r *WriteOnlyStorageRule) Tip() Tip { return r.tip }

// Check looks for private variables whose every mention is a plain
// assignment or delete. Private only: public variables have external
// getters and internal ones may be read by derived contracts. Compound
// assignments count as reads, so they clear the variable.
func (r *WriteOnlyStorageRule) Check(_ context.Context, file *solidity.File) ([]model.Finding, error) {
	var findings []model.Finding
	for _, c := range file.Contracts {
		for _, v := range c.StateVars {
			if v.Mutability != solidity.VarRegular || v.Visibility != solidity.VisibilityPrivate {
				continue
			}
			name := v.Name
			mentions := 0
			plainWrites := 0
			otherWrites := 0
			bodies(c, func(_ string, body []solidity.Token) {
				mentions += solidity.CountIdent(body, name)
				for _, idx := range solidity.AssignmentsTo(body, name) {
					if isPlainWrite(body, idx) {
						plainWrites++
					} else {
						otherWrites++
					}
				}
			})
			if plainWrites == 0 || otherWrites > 0 || mentions != plainWrites {
				continue
			}
			f := newFinding(r.tip, file, v.Pos, c.Name, r.tip.SavedGas)
			f.Description = fmt.Sprintf(
				"%s is written but never read on-chain; emit an event instead of storing it",
				name)
			findings = append(findings, f)
		}
	}
	return findings, nil
}

// isPlainWrite reports whether the write at the identifier index is a
// simple assignment or a delete: the forms that do not read the old
// value.
func isPlainWrite(body []solidity.Token, idx int) bool {
	if idx > 0 && body[idx-1].IsKeyword("delete") {
		return true
	}
	return solidity.AssignedValue(body, idx) != nil
}
