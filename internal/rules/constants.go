package rules

import (
	"context"
	"fmt"

	"github.com/gaslint/gaslint/internal/model"
	"github.com/gaslint/gaslint/internal/solidity"
)

// isLiteralInit reports whether the initializer tokens form a
// compile-time literal expression: numbers, strings, operators, and the
// boolean literals. Any identifier disqualifies it.
func isLiteralInit(tokens []solidity.Token) bool {
	if len(tokens) == 0 {
		return false
	}
	for _, tok := range tokens {
		switch tok.Kind {
		case solidity.TokenNumber, solidity.TokenString, solidity.TokenPunct:
		case solidity.TokenKeyword:
			if tok.Text != "true" && tok.Text != "false" {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// isZeroInit reports whether the initializer is the type's default value
// written out. Those belong to the default-initialization rule.
func isZeroInit(tokens []solidity.Token) bool {
	if len(tokens) != 1 {
		return false
	}
	tok := tokens[0]
	return (tok.Kind == solidity.TokenNumber && tok.Text == "0") || tok.IsKeyword("false")
}

// writesOutsideConstructor counts assignments to the variable in every
// non-constructor function and modifier body.
func writesOutsideConstructor(c *solidity.Contract, name string) int {
	n := 0
	for _, fn := range c.Functions {
		if !fn.HasBody || fn.Kind == solidity.FnConstructor {
			continue
		}
		n += len(solidity.AssignmentsTo(fn.Body, name))
	}
	for _, m := range c.Modifiers {
		n += len(solidity.AssignmentsTo(m.Body, name))
	}
	return n
}

// constructorWrites counts assignments to the variable in constructor
// bodies.
func constructorWrites(c *solidity.Contract, name string) int {
	n := 0
	for _, fn := range c.Functions {
		if fn.Kind == solidity.FnConstructor && fn.HasBody {
			n += len(solidity.AssignmentsTo(fn.Body, name))
		}
	}
	return n
}

// ConstantRule flags state variables initialized with a literal and never
// reassigned. Declaring them constant frees the slot and turns every read
// into a code constant.
type ConstantRule struct {
	tip Tip
}

// NewConstantRule creates the use-constant rule.
func NewConstantRule() *ConstantRule {
	return &ConstantRule{tip: tipBySlug("use-constant")}
}

// ID returns the rule's catalog slug.
func (r *ConstantRule) ID() string { return r.tip.RuleID }

// Tip returns the catalog entry.
func (r *ConstantRule) Tip() Tip { return r.tip }

// Check looks for literal-initialized variables with no writes anywhere
// in the contract. Zero initializers are left to the default-init rule.
func (r *ConstantRule) Check(_ context.Context, file *solidity.File) ([]model.Finding, error) {
	var findings []model.Finding
	for _, c := range file.Contracts {
		for _, v := range c.StateVars {
			if v.Mutability != solidity.VarRegular {
				continue
			}
			if !isLiteralInit(v.Initializer) || isZeroInit(v.Initializer) {
				continue
			}
			if constructorWrites(c, v.Name)+writesOutsideConstructor(c, v.Name) > 0 {
				continue
			}
			f := newFinding(r.tip, file, v.Pos, c.Name, r.tip.SavedGas)
			f.Description = fmt.Sprintf(
				"%s is initialized with a literal and never reassigned; declare it constant",
				v.Name)
			findings = append(findings, f)
		}
	}
	return findings, nil
}

// ImmutableRule flags value-type state variables assigned only during
// construction. Declaring them immutable embeds the value in code.
type ImmutableRule struct {
	tip Tip
}

// NewImmutableRule creates the use-immutable rule.
func NewImmutableRule() *ImmutableRule {
	return &ImmutableRule{tip: tipBySlug("use-immutable")}
}

// ID returns the rule's catalog slug.
func (r *ImmutableRule) ID() string { return r.tip.RuleID }

// Tip returns the catalog entry.
func (r *ImmutableRule) Tip() Tip { return r.tip }

// Check looks for uninitialized value-type variables written in the
// constructor and nowhere else.
func (r *ImmutableRule) Check(_ context.Context, file *solidity.File) ([]model.Finding, error) {
	var findings []model.Finding
	for _, c := range file.Contracts {
		for _, v := range valueStateVars(c, file) {
			if len(v.Initializer) > 0 {
				continue
			}
			if constructorWrites(c, v.Name) == 0 || writesOutsideConstructor(c, v.Name) > 0 {
				continue
			}
			f := newFinding(r.tip, file, v.Pos, c.Name, r.tip.SavedGas)
			f.Description = fmt.Sprintf(
				"%s is assigned only in the constructor; declare it immutable",
				v.Name)
			findings = append(findings, f)
		}
	}
	return findings, nil
}

// PrivateConstantRule flags public constants. The compiler-generated
// getter for each one is deployed bytecode nothing on-chain needs.
type PrivateConstantRule struct {
	tip Tip
}

// NewPrivateConstantRule creates the private-constants rule.
func NewPrivateConstantRule() *PrivateConstantRule {
	return &PrivateConstantRule{tip: tipBySlug("private-constants")}
}

// ID returns the rule's catalog slug.
func (r *PrivateConstantRule) ID() string { return r.tip.RuleID }

// Tip returns the catalog entry.
func (r *PrivateConstantRule) Tip() Tip { return r.tip }

// Check flags every public constant declaration.
func (r *PrivateConstantRule) Check(_ context.Context, file *solidity.File) ([]model.Finding, error) {
	var findings []model.Finding
	for _, c := range file.Contracts {
		for _, v := range c.StateVars {
			if v.Mutability != solidity.VarConstant || v.Visibility != solidity.VisibilityPublic {
				continue
			}
			f := newFinding(r.tip, file, v.Pos, c.Name, r.tip.SavedGas)
			f.Description = fmt.Sprintf(
				"public constant %s compiles to a getter in the deployed bytecode; make it private",
				v.Name)
			findings = append(findings, f)
		}
	}
	return findings, nil
}
