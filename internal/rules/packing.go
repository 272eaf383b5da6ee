package rules

import (
	"context"
	"fmt"

	"github.com/gaslint/gaslint/internal/gas"
	"github.com/gaslint/gaslint/internal/model"
	"github.com/gaslint/gaslint/internal/solidity"
)

// StoragePackingRule flags contracts whose state variables occupy more
// slots in declaration order than a reordering would need.
type StoragePackingRule struct {
	tip Tip
}

// NewStoragePackingRule creates the pack-storage-vars rule.
func NewStoragePackingRule() *StoragePackingRule {
	return &StoragePackingRule{tip: tipBySlug("pack-storage-vars")}
}

// ID returns the rule's catalog slug.
func (r *StoragePackingRule) ID() string { return r.tip.RuleID }

// Tip returns the catalog entry.
func (r *StoragePackingRule) Tip() Tip { return r.tip }

// Check compares the sequential storage layout of each contract against
// the first-fit-decreasing optimum.
func (r *StoragePackingRule) Check(_ context.Context, file *solidity.File) ([]model.Finding, error) {
	var findings []model.Finding
	for _, c := range file.Contracts {
		if c.Kind != solidity.KindContract {
			continue
		}
		layout := solidity.StateVarLayout(c, file)
		saved := layout.SlotsSaved()
		if saved <= 0 {
			continue
		}
		f := newFinding(r.tip, file, c.Pos, c.Name, gas.SlotSavings(saved))
		f.Description = fmt.Sprintf(
			"state variables of %s occupy %d slots in declaration order; reordering packs them into %d",
			c.Name, layout.SequentialSlots, layout.OptimalSlots)
		findings = append(findings, f)
	}
	return findings, nil
}

// StructPackingRule flags struct definitions whose fields pack into fewer
// slots when reordered. The waste repeats for every stored instance.
type StructPackingRule struct {
	tip Tip
}

// NewStructPackingRule creates the pack-struct-fields rule.
func NewStructPackingRule() *StructPackingRule {
	return &StructPackingRule{tip: tipBySlug("pack-struct-fields")}
}

// ID returns the rule's catalog slug.
func (r *StructPackingRule) ID() string { return r.tip.RuleID }

// Tip returns the catalog entry.
func (r *StructPackingRule) Tip() Tip { return r.tip }

// Check computes the layout of every struct definition in the file.
func (r *StructPackingRule) Check(_ context.Context, file *solidity.File) ([]model.Finding, error) {
	var findings []model.Finding
	for _, c := range file.Contracts {
		for _, def := range c.Structs {
			layout := solidity.StructLayout(def, file)
			saved := layout.SlotsSaved()
			if saved <= 0 {
				continue
			}
			f := newFinding(r.tip, file, def.Pos, c.Name, gas.SlotSavings(saved))
			f.Description = fmt.Sprintf(
				"struct %s uses %d slots in field order, %d when reordered; the extra cost repeats per stored instance",
				def.Name, layout.SequentialSlots, layout.OptimalSlots)
			findings = append(findings, f)
		}
	}
	return findings, nil
}

// LoneSmallIntRule flags sub-word state variables that occupy a slot
// alone when no reordering would pack them. A lone uint8 saves no storage
// and adds masking work on every access.
type LoneSmallIntRule struct {
	tip Tip
}

// NewLoneSmallIntRule creates the lone-small-int rule.
func NewLoneSmallIntRule() *LoneSmallIntRule {
	return &LoneSmallIntRule{tip: tipBySlug("lone-small-int")}
}

// ID returns the rule's catalog slug.
func (r *LoneSmallIntRule) ID() string { return r.tip.RuleID }

// Tip returns the catalog entry.
func (r *LoneSmallIntRule) Tip() Tip { return r.tip }

// Check reports lone slot occupants, but only in contracts where
// reordering cannot help: when packing would save slots, the packing rule
// owns the report.
func (r *LoneSmallIntRule) Check(_ context.Context, file *solidity.File) ([]model.Finding, error) {
	var findings []model.Finding
	for _, c := range file.Contracts {
		if c.Kind != solidity.KindContract {
			continue
		}
		layout := solidity.StateVarLayout(c, file)
		if layout.SlotsSaved() > 0 {
			continue
		}
		for _, name := range layout.LoneSmallFields {
			v := c.StateVar(name)
			if v == nil {
				continue
			}
			f := newFinding(r.tip, file, v.Pos, c.Name, 0)
			f.Description = fmt.Sprintf(
				"%s %s occupies a storage slot alone; the narrow type saves nothing here",
				v.Type, v.Name)
			findings = append(findings, f)
		}
	}
	return findings, nil
}
