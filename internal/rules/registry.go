package rules

import (
	"context"

	"github.com/gaslint/gaslint/internal/model"
	"github.com/gaslint/gaslint/internal/solidity"
)

// Rule is one gas-optimization check. Rules are pure over the parsed
// file: no I/O, no shared state, safe to run concurrently on different
// files.
type Rule interface {
	// ID returns the rule's catalog slug.
	ID() string

	// Tip returns the catalog entry the rule reports against.
	Tip() Tip

	// Check inspects one parsed file and returns its findings.
	Check(ctx context.Context, file *solidity.File) ([]model.Finding, error)
}

// Registry coordinates the rule set over parsed files. It aggregates
// findings from individual rules into a deduplicated list.
//
// Design decision: We use a coordinator pattern rather than running rules
// independently because:
//  1. Disable sets and severity overrides apply uniformly in one place
//  2. Findings deduplicate across rules that flag the same line
//  3. Consistent context and cancellation handling
type Registry struct {
	// rules is the list of registered rules in tip order.
	rules []Rule

	// disabled holds rule IDs excluded from Run.
	disabled map[string]bool

	// overrides maps rule IDs to configured severities that replace the
	// savings-derived one.
	overrides map[string]model.Severity
}

// Option configures a Registry.
type Option func(*Registry)

// WithDisabled excludes the given rule IDs from runs.
func WithDisabled(ids ...string) Option {
	return func(r *Registry) {
		for _, id := range ids {
			r.disabled[id] = true
		}
	}
}

// WithSeverityOverrides replaces the derived severity of the given rules'
// findings.
func WithSeverityOverrides(overrides map[string]model.Severity) Option {
	return func(r *Registry) {
		for id, sev := range overrides {
			r.overrides[id] = sev
		}
	}
}

// NewRegistry creates a Registry with all built-in rules registered in
// tip order.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		disabled:  make(map[string]bool),
		overrides: make(map[string]model.Severity),
	}
	for _, opt := range opts {
		opt(r)
	}

	r.Register(NewStoragePackingRule())
	r.Register(NewStorageCacheRule())
	r.Register(NewCalldataRule())
	r.Register(NewConstantRule())
	r.Register(NewImmutableRule())
	r.Register(NewCustomErrorRule())
	r.Register(NewRevertStringRule())
	r.Register(NewPrefixIncrementRule())
	r.Register(NewArrayLengthRule())
	r.Register(NewDefaultInitRule())
	r.Register(NewUncheckedIncrementRule())
	r.Register(NewShiftMathRule())
	r.Register(NewExternalVisibilityRule())
	r.Register(NewMappingLookupRule())
	r.Register(NewDeleteRefundRule())
	r.Register(NewWriteOnlyStorageRule())
	r.Register(NewShortCircuitRule())
	r.Register(NewSafeMathRule())
	r.Register(NewBytes32StringRule())
	r.Register(NewBatchOperationsRule())
	r.Register(NewSelectorOrderRule())
	r.Register(NewPayableConstructorRule())
	r.Register(NewPragmaVersionRule())
	r.Register(NewStructPackingRule())
	r.Register(NewFixedArrayRule())
	r.Register(NewPrivateConstantRule())
	r.Register(NewSingleStoreRule())
	r.Register(NewReentrancyFlagRule())
	r.Register(NewLoneSmallIntRule())
	r.Register(NewBoolCompareRule())
	r.Register(NewAssertRule())

	return r
}

// Register adds a rule to the registry.
func (r *Registry) Register(rule Rule) {
	r.rules = append(r.rules, rule)
}

// Rules returns the enabled rules in registration order.
func (r *Registry) Rules() []Rule {
	enabled := make([]Rule, 0, len(r.rules))
	for _, rule := range r.rules {
		if r.disabled[rule.ID()] {
			continue
		}
		enabled = append(enabled, rule)
	}
	return enabled
}

// Run executes the enabled rules against one parsed file and aggregates
// their findings.
func (r *Registry) Run(ctx context.Context, file *solidity.File) ([]model.Finding, error) {
	var all []model.Finding

	for _, rule := range r.Rules() {
		select {
		case <-ctx.Done():
			return all, ctx.Err()
		default:
		}

		findings, err := rule.Check(ctx, file)
		if err != nil {
			// A broken rule must not sink the scan. The remaining rules
			// still produce findings.
			continue
		}
		all = append(all, findings...)
	}

	for i := range all {
		if sev, ok := r.overrides[all[i].RuleID]; ok {
			all[i].Severity = sev
			all[i].SeverityText = sev.String()
		}
	}

	return deduplicateFindings(all), nil
}

// deduplicateFindings removes duplicate findings by location key.
//
// Design decision: We deduplicate by rule+location+snippet rather than
// location alone because:
//  1. Different rules legitimately flag the same line for different reasons
//  2. The same rule can reach one site through several declarations
//  3. When duplicates collide we keep the most severe instance
func deduplicateFindings(findings []model.Finding) []model.Finding {
	seen := make(map[string]int)
	result := make([]model.Finding, 0, len(findings))

	for _, f := range findings {
		key := f.Key()
		if idx, exists := seen[key]; exists {
			if f.Severity > result[idx].Severity {
				result[idx] = f
			}
			continue
		}
		seen[key] = len(result)
		result = append(result, f)
	}

	return result
}

// snippetMaxLen caps the source fragment carried by a finding.
const snippetMaxLen = 120

// newFinding assembles a finding for the tip at the given location. The
// severity derives from the saving estimate; the description defaults to
// the tip summary and rules overwrite it with site specifics.
func newFinding(tip Tip, file *solidity.File, pos solidity.Position, contract string, savedGas uint64) model.Finding {
	severity := model.SeverityFromSavings(savedGas)
	snippet := file.Line(pos.Line)
	if len(snippet) > snippetMaxLen {
		snippet = snippet[:snippetMaxLen-3] + "..."
	}
	return model.Finding{
		RuleID:         tip.RuleID,
		TipNumber:      tip.Number,
		Severity:       severity,
		SeverityText:   severity.String(),
		Title:          tip.Title,
		Description:    tip.Summary,
		Impact:         tip.Impact,
		Recommendation: tip.Recommendation,
		SavedGas:       savedGas,
		File:           file.Path,
		Line:           pos.Line,
		Column:         pos.Column,
		Contract:       contract,
		Snippet:        snippet,
	}
}
