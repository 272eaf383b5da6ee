package rules

import (
	"context"
	"strings"
	"testing"
)

// TestSelectorOrderRule tests dispatch order reporting.
func TestSelectorOrderRule(t *testing.T) {
	t.Parallel()

	t.Run("reports wide external surfaces", func(t *testing.T) {
		t.Parallel()

		file := parseFixture(t, `
pragma solidity ^0.8.19;
contract Router {
    function transfer(address to, uint256 amount) external {}
    function approve(address spender, uint256 amount) external {}
    function deposit() external payable {}
    function withdraw(uint256 amount) external {}
    function pause() external {}
    function resume() external {}
    function sweep(address token) external {}
    function rescue(address to) external {}
}`)

		findings, err := NewSelectorOrderRule().Check(context.Background(), file)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(findings) != 1 {
			t.Fatalf("expected 1 finding, got %d", len(findings))
		}
		desc := findings[0].Description
		if !strings.Contains(desc, "8 selectors") {
			t.Errorf("description does not count the surface: %q", desc)
		}
		if !strings.Contains(desc, "resolves last") {
			t.Errorf("description does not name the worst slot: %q", desc)
		}
		if !strings.Contains(desc, "0x") {
			t.Errorf("description renders no selectors: %q", desc)
		}
		if findings[0].SavedGas != 0 {
			t.Errorf("expected informational finding, got saved gas %d", findings[0].SavedGas)
		}
	})

	t.Run("narrow surfaces dispatch cheaply", func(t *testing.T) {
		t.Parallel()

		file := parseFixture(t, `
pragma solidity ^0.8.19;
contract Wallet {
    function deposit() external payable {}
    function withdraw(uint256 amount) external {}
    function balance() external view returns (uint256) {
        return address(this).balance;
    }
}`)

		findings, err := NewSelectorOrderRule().Check(context.Background(), file)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(findings) != 0 {
			t.Errorf("expected no findings, got %d", len(findings))
		}
	})
}

// TestBatchOperationsRule tests single-write setter detection.
func TestBatchOperationsRule(t *testing.T) {
	t.Parallel()

	t.Run("flags a one-write setter", func(t *testing.T) {
		t.Parallel()

		file := parseFixture(t, `
pragma solidity ^0.8.19;
contract Scores {
    mapping(address => uint256) scores;

    function setScore(address who, uint256 score) external {
        scores[who] = score;
    }
}`)

		findings, err := NewBatchOperationsRule().Check(context.Background(), file)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(findings) != 1 {
			t.Fatalf("expected 1 finding, got %d", len(findings))
		}
		if !strings.Contains(findings[0].Description, "setScore") {
			t.Errorf("description does not name the function: %q", findings[0].Description)
		}
	})

	t.Run("array parameters already batch", func(t *testing.T) {
		t.Parallel()

		file := parseFixture(t, `
pragma solidity ^0.8.19;
contract Scores {
    mapping(address => uint256) scores;

    function setScores(address[] calldata whos, uint256[] calldata values) external {
        for (uint256 i = 0; i < whos.length; ++i) {
            scores[whos[i]] = values[i];
        }
    }
}`)

		findings, err := NewBatchOperationsRule().Check(context.Background(), file)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(findings) != 0 {
			t.Errorf("expected no findings, got %d", len(findings))
		}
	})

	t.Run("multi-write bodies are not simple setters", func(t *testing.T) {
		t.Parallel()

		file := parseFixture(t, `
pragma solidity ^0.8.19;
contract Config {
    uint256 rate;
    uint256 cap;

    function tune(uint256 nextRate, uint256 nextCap) external {
        rate = nextRate;
        cap = nextCap;
    }
}`)

		findings, err := NewBatchOperationsRule().Check(context.Background(), file)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(findings) != 0 {
			t.Errorf("expected no findings, got %d", len(findings))
		}
	})
}
