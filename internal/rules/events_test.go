package rules

import (
	"context"
	"strings"
	"testing"
)

// TestWriteOnlyStorageRule tests write-only private variable detection.
func TestWriteOnlyStorageRule(t *testing.T) {
	t.Parallel()

	t.Run("flags a variable written but never read", func(t *testing.T) {
		t.Parallel()

		file := parseFixture(t, `
pragma solidity ^0.8.19;
contract Audit {
    uint256 private lastAmount;

    function deposit() external payable {
        lastAmount = msg.value;
    }
}`)

		findings, err := NewWriteOnlyStorageRule().Check(context.Background(), file)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(findings) != 1 {
			t.Fatalf("expected 1 finding, got %d", len(findings))
		}
		if !strings.Contains(findings[0].Description, "lastAmount") {
			t.Errorf("description does not name the variable: %q", findings[0].Description)
		}
	})

	t.Run("read variables are real state", func(t *testing.T) {
		t.Parallel()

		file := parseFixture(t, `
pragma solidity ^0.8.19;
contract Audit {
    uint256 private lastAmount;

    function deposit() external payable {
        lastAmount = msg.value;
    }

    function last() external view returns (uint256) {
        return lastAmount;
    }
}`)

		findings, err := NewWriteOnlyStorageRule().Check(context.Background(), file)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(findings) != 0 {
			t.Errorf("expected no findings, got %d", len(findings))
		}
	})

	t.Run("compound assignment reads the old value", func(t *testing.T) {
		t.Parallel()

		file := parseFixture(t, `
pragma solidity ^0.8.19;
contract Audit {
    uint256 private total;

    function deposit() external payable {
        total += msg.value;
    }
}`)

		findings, err := NewWriteOnlyStorageRule().Check(context.Background(), file)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(findings) != 0 {
			t.Errorf("expected no findings, got %d", len(findings))
		}
	})

	t.Run("public variables have getters", func(t *testing.T) {
		t.Parallel()

		file := parseFixture(t, `
pragma solidity ^0.8.19;
contract Audit {
    uint256 public lastAmount;

    function deposit() external payable {
        lastAmount = msg.value;
    }
}`)

		findings, err := NewWriteOnlyStorageRule().Check(context.Background(), file)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(findings) != 0 {
			t.Errorf("expected no findings, got %d", len(findings))
		}
	})
}
