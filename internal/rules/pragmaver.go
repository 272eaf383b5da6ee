package rules

import (
	"context"
	"fmt"

	"github.com/gaslint/gaslint/internal/model"
	"github.com/gaslint/gaslint/internal/solidity"
)

// PragmaVersionRule flags pragmas that admit compilers older than
// 0.8.4. Newer compilers generate tighter code, check arithmetic
// without SafeMath, and support custom errors.
type PragmaVersionRule struct {
	tip Tip
}

// NewPragmaVersionRule creates the modern-pragma rule.
func NewPragmaVersionRule() *PragmaVersionRule {
	return &PragmaVersionRule{tip: tipBySlug("modern-pragma")}
}

// ID returns the rule's catalog slug.
func (r *PragmaVersionRule) ID() string { return r.tip.RuleID }

// Tip returns the catalog entry.
func (r *PragmaVersionRule) Tip() Tip { return r.tip }

// Check compares the pragma's lower bound against 0.8.4. Files without
// a pragma, or with one the parser cannot bound, stay quiet.
func (r *PragmaVersionRule) Check(_ context.Context, file *solidity.File) ([]model.Finding, error) {
	if file.Pragma == nil {
		return nil, nil
	}
	bound, ok := file.Pragma.LowerBound()
	if !ok || bound.Compare(solidity.Version{Major: 0, Minor: 8, Patch: 4}) >= 0 {
		return nil, nil
	}
	f := newFinding(r.tip, file, file.Pragma.Pos, "", 0)
	f.Description = fmt.Sprintf(
		"the pragma admits compilers down to %s; raising the floor to 0.8.4 or later unlocks cheaper codegen and custom errors",
		bound)
	return []model.Finding{f}, nil
}
