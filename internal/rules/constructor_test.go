package rules

import (
	"context"
	"strings"
	"testing"
)

// TestPayableConstructorRule tests constructor mutability detection.
func TestPayableConstructorRule(t *testing.T) {
	t.Parallel()

	t.Run("flags a non-payable constructor", func(t *testing.T) {
		t.Parallel()

		file := parseFixture(t, `
pragma solidity ^0.8.19;
contract Vault {
    address owner;

    constructor() {
        owner = msg.sender;
    }
}`)

		findings, err := NewPayableConstructorRule().Check(context.Background(), file)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(findings) != 1 {
			t.Fatalf("expected 1 finding, got %d", len(findings))
		}
		if !strings.Contains(findings[0].Description, "Vault") {
			t.Errorf("description does not name the contract: %q", findings[0].Description)
		}
	})

	t.Run("payable constructors pass", func(t *testing.T) {
		t.Parallel()

		file := parseFixture(t, `
pragma solidity ^0.8.19;
contract Vault {
    address owner;

    constructor() payable {
        owner = msg.sender;
    }
}`)

		findings, err := NewPayableConstructorRule().Check(context.Background(), file)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(findings) != 0 {
			t.Errorf("expected no findings, got %d", len(findings))
		}
	})

	t.Run("abstract contracts never deploy directly", func(t *testing.T) {
		t.Parallel()

		file := parseFixture(t, `
pragma solidity ^0.8.19;
abstract contract Base {
    address owner;

    constructor() {
        owner = msg.sender;
    }
}`)

		findings, err := NewPayableConstructorRule().Check(context.Background(), file)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(findings) != 0 {
			t.Errorf("expected no findings, got %d", len(findings))
		}
	})

	t.Run("contracts without a constructor pass", func(t *testing.T) {
		t.Parallel()

		file := parseFixture(t, `
pragma solidity ^0.8.19;
contract Stateless {
    function ping() external pure returns (uint256) {
        return 1;
    }
}`)

		findings, err := NewPayableConstructorRule().Check(context.Background(), file)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(findings) != 0 {
			t.Errorf("expected no findings, got %d", len(findings))
		}
	})
}
