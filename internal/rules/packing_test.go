package rules

import (
	"context"
	"strings"
	"testing"

	"github.com/gaslint/gaslint/internal/gas"
)

// TestStoragePackingRule tests detection of reorderable state variables.
func TestStoragePackingRule(t *testing.T) {
	t.Parallel()

	t.Run("flags stranded small values", func(t *testing.T) {
		t.Parallel()

		file := parseFixture(t, `
pragma solidity ^0.8.19;
contract Vault {
    uint128 a;
    uint256 b;
    uint128 c;
}`)

		findings, err := NewStoragePackingRule().Check(context.Background(), file)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(findings) != 1 {
			t.Fatalf("expected 1 finding, got %d", len(findings))
		}
		f := findings[0]
		if f.Contract != "Vault" {
			t.Errorf("expected contract Vault, got %q", f.Contract)
		}
		if f.SavedGas != gas.SlotSavings(1) {
			t.Errorf("expected %d gas for one slot, got %d", gas.SlotSavings(1), f.SavedGas)
		}
		if !strings.Contains(f.Description, "3 slots") || !strings.Contains(f.Description, "into 2") {
			t.Errorf("description does not name the slot counts: %q", f.Description)
		}
	})

	t.Run("stays quiet when already packed", func(t *testing.T) {
		t.Parallel()

		file := parseFixture(t, `
pragma solidity ^0.8.19;
contract Packed {
    uint128 a;
    uint128 c;
    uint256 b;
}`)

		findings, err := NewStoragePackingRule().Check(context.Background(), file)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(findings) != 0 {
			t.Errorf("expected no findings, got %d", len(findings))
		}
	})

	t.Run("ignores interfaces", func(t *testing.T) {
		t.Parallel()

		file := parseFixture(t, `
pragma solidity ^0.8.19;
interface IVault {
    function deposit() external;
}`)

		findings, err := NewStoragePackingRule().Check(context.Background(), file)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(findings) != 0 {
			t.Errorf("expected no findings, got %d", len(findings))
		}
	})
}

// TestStructPackingRule tests detection of reorderable struct fields.
func TestStructPackingRule(t *testing.T) {
	t.Parallel()

	t.Run("flags loose structs", func(t *testing.T) {
		t.Parallel()

		file := parseFixture(t, `
pragma solidity ^0.8.19;
contract Registry {
    struct Order {
        uint128 amount;
        uint256 price;
        uint128 expiry;
    }
}`)

		findings, err := NewStructPackingRule().Check(context.Background(), file)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(findings) != 1 {
			t.Fatalf("expected 1 finding, got %d", len(findings))
		}
		if !strings.Contains(findings[0].Description, "struct Order") {
			t.Errorf("description does not name the struct: %q", findings[0].Description)
		}
	})

	t.Run("stays quiet for tight structs", func(t *testing.T) {
		t.Parallel()

		file := parseFixture(t, `
pragma solidity ^0.8.19;
contract Registry {
    struct Order {
        address maker;
        uint96 expiry;
        uint256 price;
    }
}`)

		findings, err := NewStructPackingRule().Check(context.Background(), file)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(findings) != 0 {
			t.Errorf("expected no findings, got %d", len(findings))
		}
	})
}

// TestLoneSmallIntRule tests the narrow-type advisory.
func TestLoneSmallIntRule(t *testing.T) {
	t.Parallel()

	t.Run("flags a lone narrow variable", func(t *testing.T) {
		t.Parallel()

		file := parseFixture(t, `
pragma solidity ^0.8.19;
contract Flags {
    uint8 level;
    uint256 cap;
}`)

		findings, err := NewLoneSmallIntRule().Check(context.Background(), file)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(findings) != 1 {
			t.Fatalf("expected 1 finding, got %d", len(findings))
		}
		if !strings.Contains(findings[0].Description, "level") {
			t.Errorf("description does not name the variable: %q", findings[0].Description)
		}
		if findings[0].SavedGas != 0 {
			t.Errorf("expected advisory finding with no saving, got %d", findings[0].SavedGas)
		}
	})

	t.Run("defers to the packing rule when reordering helps", func(t *testing.T) {
		t.Parallel()

		file := parseFixture(t, `
pragma solidity ^0.8.19;
contract Vault {
    uint128 a;
    uint256 b;
    uint128 c;
}`)

		findings, err := NewLoneSmallIntRule().Check(context.Background(), file)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(findings) != 0 {
			t.Errorf("expected no findings, got %d", len(findings))
		}
	})
}
