package rules

import (
	"context"
	"errors"
	"testing"

	"github.com/gaslint/gaslint/internal/model"
	"github.com/gaslint/gaslint/internal/solidity"
)

// parseFixture parses an inline Solidity fragment for rule tests.
func parseFixture(t *testing.T, src string) *solidity.File {
	t.Helper()
	file, err := solidity.Parse("fixture.sol", []byte(src))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return file
}

// TestRegistryCoversCatalog tests that the registered rules and the tip
// catalog describe the same set, in the same order.
func TestRegistryCoversCatalog(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	rules := reg.Rules()
	tips := Tips()

	if len(rules) != len(tips) {
		t.Fatalf("registry has %d rules, catalog has %d tips", len(rules), len(tips))
	}
	for i, rule := range rules {
		if rule.ID() != tips[i].RuleID {
			t.Errorf("rule %d is %s, catalog entry is %s", i, rule.ID(), tips[i].RuleID)
		}
		if rule.Tip().Number != i+1 {
			t.Errorf("rule %s reports tip %d, expected %d", rule.ID(), rule.Tip().Number, i+1)
		}
	}
}

// TestRegistryDisable tests rule exclusion.
func TestRegistryDisable(t *testing.T) {
	t.Parallel()

	t.Run("disabled rule is not listed", func(t *testing.T) {
		t.Parallel()

		reg := NewRegistry(WithDisabled("use-constant", "require-over-assert"))
		for _, rule := range reg.Rules() {
			if rule.ID() == "use-constant" || rule.ID() == "require-over-assert" {
				t.Errorf("disabled rule %s still listed", rule.ID())
			}
		}
		if got := len(reg.Rules()); got != 29 {
			t.Errorf("expected 29 enabled rules, got %d", got)
		}
	})

	t.Run("disabled rule produces no findings", func(t *testing.T) {
		t.Parallel()

		file := parseFixture(t, `
pragma solidity ^0.8.19;
contract Vault {
    uint256 fee = 25;
}`)

		full, err := NewRegistry().Run(context.Background(), file)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !hasRule(full, "use-constant") {
			t.Fatal("expected a use-constant finding before disabling")
		}

		reduced, err := NewRegistry(WithDisabled("use-constant")).Run(context.Background(), file)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if hasRule(reduced, "use-constant") {
			t.Error("disabled rule still produced findings")
		}
	})
}

// TestRegistrySeverityOverride tests configured severity replacement.
func TestRegistrySeverityOverride(t *testing.T) {
	t.Parallel()

	file := parseFixture(t, `
pragma solidity ^0.8.19;
contract Vault {
    uint256 fee = 25;
}`)

	reg := NewRegistry(WithSeverityOverrides(map[string]model.Severity{
		"use-constant": model.SeverityCritical,
	}))
	findings, err := reg.Run(context.Background(), file)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found := false
	for _, f := range findings {
		if f.RuleID != "use-constant" {
			continue
		}
		found = true
		if f.Severity != model.SeverityCritical {
			t.Errorf("expected overridden severity Critical, got %v", f.Severity)
		}
		if f.SeverityText != "CRITICAL" {
			t.Errorf("expected severity text CRITICAL, got %q", f.SeverityText)
		}
	}
	if !found {
		t.Fatal("expected a use-constant finding")
	}
}

// TestRegistryCancellation tests that a cancelled context stops the run.
func TestRegistryCancellation(t *testing.T) {
	t.Parallel()

	file := parseFixture(t, `
pragma solidity ^0.8.19;
contract Empty {}`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRegistry().Run(ctx, file)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

// TestDeduplicateFindings tests collision handling on the finding key.
func TestDeduplicateFindings(t *testing.T) {
	t.Parallel()

	base := model.Finding{
		RuleID:  "cache-storage-reads",
		File:    "a.sol",
		Line:    7,
		Snippet: "return baseRate + baseRate;",
	}
	low := base
	low.Severity = model.SeverityLow
	high := base
	high.Severity = model.SeverityHigh
	other := base
	other.Line = 12

	got := deduplicateFindings([]model.Finding{low, high, other})
	if len(got) != 2 {
		t.Fatalf("expected 2 findings after dedup, got %d", len(got))
	}
	if got[0].Severity != model.SeverityHigh {
		t.Errorf("expected the more severe duplicate to win, got %v", got[0].Severity)
	}
	if got[1].Line != 12 {
		t.Errorf("expected the distinct finding to survive, got line %d", got[1].Line)
	}
}

// TestRegistryRunAggregates tests a multi-issue contract end to end.
func TestRegistryRunAggregates(t *testing.T) {
	t.Parallel()

	file := parseFixture(t, `
pragma solidity ^0.8.19;

contract Market {
    uint256 public fee = 30;
    uint256 total;

    function sum(uint256[] memory ids) external {
        for (uint256 i = 0; i < ids.length; i++) {
            total += ids[i];
        }
    }
}`)

	findings, err := NewRegistry().Run(context.Background(), file)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []string{
		"use-constant", "prefix-increment", "no-default-init",
		"unchecked-increment", "prefer-calldata",
	}
	for _, id := range expected {
		if !hasRule(findings, id) {
			t.Errorf("expected a %s finding", id)
		}
	}

	for _, f := range findings {
		if f.File != "fixture.sol" {
			t.Errorf("finding %s carries file %q", f.RuleID, f.File)
		}
		if f.Line == 0 {
			t.Errorf("finding %s has no line", f.RuleID)
		}
		if f.SeverityText == "" {
			t.Errorf("finding %s has no severity text", f.RuleID)
		}
	}
}

// hasRule reports whether any finding carries the rule ID.
func hasRule(findings []model.Finding, id string) bool {
	for _, f := range findings {
		if f.RuleID == id {
			return true
		}
	}
	return false
}
