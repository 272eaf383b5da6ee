package rules

import (
	"context"
	"fmt"
	"strings"

	"github.com/gaslint/gaslint/internal/gas"
	"github.com/gaslint/gaslint/internal/model"
	"github.com/gaslint/gaslint/internal/solidity"
)

// valueStateVars returns the contract's plain value-type state variables:
// the ones whose reads are single SLOADs. Constants and immutables read
// from code, and reference types read per key or per element, so caching
// advice does not transfer to them.
func valueStateVars(c *solidity.Contract, file *solidity.File) []*solidity.StateVar {
	var vars []*solidity.StateVar
	for _, v := range c.StateVars {
		if v.Mutability != solidity.VarRegular {
			continue
		}
		if _, packable := solidity.ByteSize(v.Type, file); !packable {
			continue
		}
		vars = append(vars, v)
	}
	return vars
}

// bodies visits every function and modifier body in the contract.
func bodies(c *solidity.Contract, visit func(name string, body []solidity.Token)) {
	for _, fn := range c.Functions {
		if fn.HasBody {
			visit(functionLabel(fn), fn.Body)
		}
	}
	for _, m := range c.Modifiers {
		visit(m.Name, m.Body)
	}
}

// functionLabel names a function for diagnostics, covering the nameless
// declaration forms.
func functionLabel(fn *solidity.Function) string {
	switch fn.Kind {
	case solidity.FnConstructor:
		return "constructor"
	case solidity.FnFallback:
		return "fallback"
	case solidity.FnReceive:
		return "receive"
	default:
		return fn.Name
	}
}

// StorageCacheRule flags functions that read the same state variable
// repeatedly without writing it. Each repeated read is a warm SLOAD a
// local copy would avoid.
type StorageCacheRule struct {
	tip Tip
}

// NewStorageCacheRule creates the cache-storage-reads rule.
func NewStorageCacheRule() *StorageCacheRule {
	return &StorageCacheRule{tip: tipBySlug("cache-storage-reads")}
}

// ID returns the rule's catalog slug.
func (r *StorageCacheRule) ID() string { return r.tip.RuleID }

// Tip returns the catalog entry.
func (r *StorageCacheRule) Tip() Tip { return r.tip }

// Check counts per-function reads of each value-type state variable.
// Functions that also write the variable are skipped: a cached copy
// would need write-back reasoning this rule cannot do.
func (r *StorageCacheRule) Check(_ context.Context, file *solidity.File) ([]model.Finding, error) {
	var findings []model.Finding
	for _, c := range file.Contracts {
		vars := valueStateVars(c, file)
		for _, fn := range c.Functions {
			if !fn.HasBody {
				continue
			}
			for _, v := range vars {
				reads := solidity.CountIdent(fn.Body, v.Name)
				if reads < 2 {
					continue
				}
				if len(solidity.AssignmentsTo(fn.Body, v.Name)) > 0 {
					continue
				}
				f := newFinding(r.tip, file, fn.Pos, c.Name, gas.CachedReadSavings(reads))
				f.Description = fmt.Sprintf(
					"%s reads state variable %s %d times; cache it in a local variable",
					functionLabel(fn), v.Name, reads)
				findings = append(findings, f)
			}
		}
	}
	return findings, nil
}

// SingleStoreRule flags functions that write the same state variable more
// than once. Every write past the first pays a redundant SSTORE.
type SingleStoreRule struct {
	tip Tip
}

// NewSingleStoreRule creates the single-sstore rule.
func NewSingleStoreRule() *SingleStoreRule {
	return &SingleStoreRule{tip: tipBySlug("single-sstore")}
}

// ID returns the rule's catalog slug.
func (r *SingleStoreRule) ID() string { return r.tip.RuleID }

// Tip returns the catalog entry.
func (r *SingleStoreRule) Tip() Tip { return r.tip }

// Check counts per-function writes to each value-type state variable.
// Booleans are exempt: paired true/false writes are lock toggles, which
// the reentrancy-flag rule handles.
func (r *SingleStoreRule) Check(_ context.Context, file *solidity.File) ([]model.Finding, error) {
	var findings []model.Finding
	for _, c := range file.Contracts {
		for _, v := range valueStateVars(c, file) {
			if strings.TrimSpace(v.Type) == "bool" {
				continue
			}
			for _, fn := range c.Functions {
				if !fn.HasBody {
					continue
				}
				writes := solidity.AssignmentsTo(fn.Body, v.Name)
				if len(writes) < 2 {
					continue
				}
				pos := fn.Body[writes[1]].Pos
				f := newFinding(r.tip, file, pos, c.Name, uint64(len(writes)-1)*gas.WarmStorageReadCost)
				f.Description = fmt.Sprintf(
					"%s writes state variable %s %d times; accumulate locally and store once",
					functionLabel(fn), v.Name, len(writes))
				findings = append(findings, f)
			}
		}
	}
	return findings, nil
}
