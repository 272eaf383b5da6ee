package rules

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/gaslint/gaslint/internal/model"
	"github.com/gaslint/gaslint/internal/solidity"
)

// Entry points below this count dispatch in a handful of comparisons
// either way, so selector ordering is not worth surfacing.
const dispatchMinEntryPoints = 8

// SelectorOrderRule reports the selector order of contracts with wide
// external surfaces. The dispatcher compares selectors in sorted order,
// so a hot function whose selector sorts late pays for every miss.
type SelectorOrderRule struct {
	tip Tip
}

// NewSelectorOrderRule creates the selector-ordering rule.
func NewSelectorOrderRule() *SelectorOrderRule {
	return &SelectorOrderRule{tip: tipBySlug("selector-ordering")}
}

// ID returns the rule's catalog slug.
func (r *SelectorOrderRule) ID() string { return r.tip.RuleID }

// Tip returns the catalog entry.
func (r *SelectorOrderRule) Tip() Tip { return r.tip }

// Check computes the dispatch order for contracts with at least eight
// entry points and reports it. Which functions are hot is a judgment
// call, so the finding is informational.
func (r *SelectorOrderRule) Check(_ context.Context, file *solidity.File) ([]model.Finding, error) {
	var findings []model.Finding
	for _, c := range file.Contracts {
		if c.Kind != solidity.KindContract {
			continue
		}
		entries := c.EntryPoints()
		if len(entries) < dispatchMinEntryPoints {
			continue
		}
		order := make([]dispatchSlot, 0, len(entries))
		for _, fn := range entries {
			sig := solidity.Signature(fn, file)
			order = append(order, dispatchSlot{
				selector: solidity.SelectorHex(sig),
				name:     fn.Name,
			})
		}
		sort.Slice(order, func(i, j int) bool { return order[i].selector < order[j].selector })

		last := order[len(order)-1]
		f := newFinding(r.tip, file, c.Pos, c.Name, 0)
		f.Description = fmt.Sprintf(
			"%s dispatches across %d selectors in order %s; %s (0x%s) resolves last, costing extra comparisons per call",
			c.Name, len(order), dispatchOrderText(order), last.name, last.selector)
		findings = append(findings, f)
	}
	return findings, nil
}

type dispatchSlot struct {
	selector string
	name     string
}

// dispatchOrderText renders the sorted selector list, elided past the
// first few so descriptions stay a single line.
func dispatchOrderText(order []dispatchSlot) string {
	const shown = 4
	parts := make([]string, 0, shown+1)
	for i, slot := range order {
		if i == shown {
			parts = append(parts, fmt.Sprintf("... %d more", len(order)-shown))
			break
		}
		parts = append(parts, "0x"+slot.selector+" "+slot.name)
	}
	return strings.Join(parts, ", ")
}

// BatchOperationsRule flags tiny single-write entry points. Callers
// updating many records through one pay the 21000 gas transaction base
// cost per record instead of once per batch.
type BatchOperationsRule struct {
	tip Tip
}

// NewBatchOperationsRule creates the batch-operations rule.
func NewBatchOperationsRule() *BatchOperationsRule {
	return &BatchOperationsRule{tip: tipBySlug("batch-operations")}
}

// ID returns the rule's catalog slug.
func (r *BatchOperationsRule) ID() string { return r.tip.RuleID }

// Tip returns the catalog entry.
func (r *BatchOperationsRule) Tip() Tip { return r.tip }

// Check looks for entry points whose whole body is one storage write.
// Functions that loop or already take array parameters are batches
// themselves and stay unflagged. Whether callers actually invoke the
// function repeatedly is unknowable statically, so the finding is
// informational.
func (r *BatchOperationsRule) Check(_ context.Context, file *solidity.File) ([]model.Finding, error) {
	var findings []model.Finding
	for _, c := range file.Contracts {
		if c.Kind != solidity.KindContract {
			continue
		}
		for _, fn := range c.EntryPoints() {
			if !batchCandidate(fn) {
				continue
			}
			if countStateWrites(c, fn.Body) != 1 {
				continue
			}
			f := newFinding(r.tip, file, fn.Pos, c.Name, 0)
			f.Description = fmt.Sprintf(
				"%s performs a single storage write per call; a batch variant would amortize the per-transaction base cost",
				functionLabel(fn))
			findings = append(findings, f)
		}
	}
	return findings, nil
}

// batchCandidate reports whether the entry point has the shape worth
// offering a batch variant for: a short loop-free body and at least one
// scalar parameter, none of them already array-typed.
func batchCandidate(fn *solidity.Function) bool {
	const maxBodyTokens = 24
	if !fn.HasBody || len(fn.Body) > maxBodyTokens {
		return false
	}
	if len(fn.Loops) > 0 || len(fn.Whiles) > 0 {
		return false
	}
	if len(fn.Params) == 0 {
		return false
	}
	for _, p := range fn.Params {
		if strings.Contains(p.Type, "[") {
			return false
		}
	}
	return true
}

// countStateWrites sums assignments to every state variable of the
// contract across the token span.
func countStateWrites(c *solidity.Contract, body []solidity.Token) int {
	n := 0
	for _, v := range c.StateVars {
		if v.Mutability != solidity.VarRegular {
			continue
		}
		n += len(solidity.AssignmentsTo(body, v.Name))
	}
	return n
}
