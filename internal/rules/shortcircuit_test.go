package rules

import (
	"context"
	"strings"
	"testing"
)

// TestShortCircuitRule tests condition ordering detection.
func TestShortCircuitRule(t *testing.T) {
	t.Parallel()

	t.Run("flags a storage read ahead of a cheap check", func(t *testing.T) {
		t.Parallel()

		file := parseFixture(t, `
pragma solidity ^0.8.19;
contract Gate {
    uint256 supply;

    function claim(uint256 amount) external view {
        require(supply > 1000 && amount < 10);
    }
}`)

		findings, err := NewShortCircuitRule().Check(context.Background(), file)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(findings) != 1 {
			t.Fatalf("expected 1 finding, got %d", len(findings))
		}
		if !strings.Contains(findings[0].Description, "amount < 10") {
			t.Errorf("description does not quote the cheap operand: %q", findings[0].Description)
		}
	})

	t.Run("cheap check first is already right", func(t *testing.T) {
		t.Parallel()

		file := parseFixture(t, `
pragma solidity ^0.8.19;
contract Gate {
    uint256 supply;

    function claim(uint256 amount) external view {
        require(amount < 10 && supply > 1000);
    }
}`)

		findings, err := NewShortCircuitRule().Check(context.Background(), file)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(findings) != 0 {
			t.Errorf("expected no findings, got %d", len(findings))
		}
	})

	t.Run("stays quiet when the second operand calls out", func(t *testing.T) {
		t.Parallel()

		file := parseFixture(t, `
pragma solidity ^0.8.19;
contract Gate {
    uint256 supply;

    function eligible(uint256 amount) internal pure returns (bool) {
        return amount < 10;
    }

    function claim(uint256 amount) external view {
        require(supply > 1000 && eligible(amount));
    }
}`)

		findings, err := NewShortCircuitRule().Check(context.Background(), file)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(findings) != 0 {
			t.Errorf("expected no findings, got %d", len(findings))
		}
	})

	t.Run("single condition has no ordering", func(t *testing.T) {
		t.Parallel()

		file := parseFixture(t, `
pragma solidity ^0.8.19;
contract Gate {
    uint256 supply;

    function claim() external view {
        require(supply > 1000);
    }
}`)

		findings, err := NewShortCircuitRule().Check(context.Background(), file)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(findings) != 0 {
			t.Errorf("expected no findings, got %d", len(findings))
		}
	})
}
