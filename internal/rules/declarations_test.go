package rules

import (
	"context"
	"strings"
	"testing"
)

// TestBytes32StringRule tests short string literal detection.
func TestBytes32StringRule(t *testing.T) {
	t.Parallel()

	t.Run("flags a short fixed literal", func(t *testing.T) {
		t.Parallel()

		file := parseFixture(t, `
pragma solidity ^0.8.19;
contract Token {
    string symbol = "GAS";
}`)

		findings, err := NewBytes32StringRule().Check(context.Background(), file)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(findings) != 1 {
			t.Fatalf("expected 1 finding, got %d", len(findings))
		}
		if !strings.Contains(findings[0].Description, `"GAS"`) {
			t.Errorf("description does not quote the literal: %q", findings[0].Description)
		}
	})

	t.Run("long literals need a real string", func(t *testing.T) {
		t.Parallel()

		file := parseFixture(t, `
pragma solidity ^0.8.19;
contract Token {
    string description = "This token name is far too long to fit worthwhile";
}`)

		findings, err := NewBytes32StringRule().Check(context.Background(), file)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(findings) != 0 {
			t.Errorf("expected no findings, got %d", len(findings))
		}
	})

	t.Run("reassigned strings stay strings", func(t *testing.T) {
		t.Parallel()

		file := parseFixture(t, `
pragma solidity ^0.8.19;
contract Token {
    string symbol = "GAS";

    function rebrand(string calldata next) external {
        symbol = next;
    }
}`)

		findings, err := NewBytes32StringRule().Check(context.Background(), file)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(findings) != 0 {
			t.Errorf("expected no findings, got %d", len(findings))
		}
	})
}

// TestFixedArrayRule tests constant-sized allocation detection.
func TestFixedArrayRule(t *testing.T) {
	t.Parallel()

	t.Run("flags new with a literal size", func(t *testing.T) {
		t.Parallel()

		file := parseFixture(t, `
pragma solidity ^0.8.19;
contract Buffer {
    function slots() external pure returns (uint256[] memory) {
        uint256[] memory buf = new uint256[](4);
        return buf;
    }
}`)

		findings, err := NewFixedArrayRule().Check(context.Background(), file)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(findings) != 1 {
			t.Fatalf("expected 1 finding, got %d", len(findings))
		}
		if !strings.Contains(findings[0].Description, "uint256[4]") {
			t.Errorf("description does not suggest the fixed type: %q", findings[0].Description)
		}
	})

	t.Run("variable sizes genuinely vary", func(t *testing.T) {
		t.Parallel()

		file := parseFixture(t, `
pragma solidity ^0.8.19;
contract Buffer {
    function slots(uint256 n) external pure returns (uint256[] memory) {
        uint256[] memory buf = new uint256[](n);
        return buf;
    }
}`)

		findings, err := NewFixedArrayRule().Check(context.Background(), file)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(findings) != 0 {
			t.Errorf("expected no findings, got %d", len(findings))
		}
	})
}

// TestMappingLookupRule tests linear search detection.
func TestMappingLookupRule(t *testing.T) {
	t.Parallel()

	t.Run("flags a loop scanning for a match", func(t *testing.T) {
		t.Parallel()

		file := parseFixture(t, `
pragma solidity ^0.8.19;
contract Directory {
    address[] members;

    function isMember(address who) external view returns (bool) {
        for (uint256 i = 0; i < members.length; ++i) {
            if (members[i] == who) {
                return true;
            }
        }
        return false;
    }
}`)

		findings, err := NewMappingLookupRule().Check(context.Background(), file)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(findings) != 1 {
			t.Fatalf("expected 1 finding, got %d", len(findings))
		}
		if !strings.Contains(findings[0].Description, "members") {
			t.Errorf("description does not name the array: %q", findings[0].Description)
		}
		if findings[0].SavedGas != 0 {
			t.Errorf("expected advisory finding, got saved gas %d", findings[0].SavedGas)
		}
	})

	t.Run("aggregation loops are not lookups", func(t *testing.T) {
		t.Parallel()

		file := parseFixture(t, `
pragma solidity ^0.8.19;
contract Directory {
    uint256[] weights;

    function total() external view returns (uint256 sum) {
        for (uint256 i = 0; i < weights.length; ++i) {
            sum += weights[i];
        }
    }
}`)

		findings, err := NewMappingLookupRule().Check(context.Background(), file)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(findings) != 0 {
			t.Errorf("expected no findings, got %d", len(findings))
		}
	})
}
