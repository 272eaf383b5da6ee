package rules

import (
	"context"
	"strings"
	"testing"
)

// TestShiftMathRule tests power-of-two multiplication and division.
func TestShiftMathRule(t *testing.T) {
	t.Parallel()

	t.Run("flags multiplication by a power of two", func(t *testing.T) {
		t.Parallel()

		file := parseFixture(t, `
pragma solidity ^0.8.19;
contract Math {
    function double(uint256 x) external pure returns (uint256) {
        return x * 8;
    }
}`)

		findings, err := NewShiftMathRule().Check(context.Background(), file)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(findings) != 1 {
			t.Fatalf("expected 1 finding, got %d", len(findings))
		}
		if !strings.Contains(findings[0].Description, "<< 3") {
			t.Errorf("description does not suggest the shift: %q", findings[0].Description)
		}
	})

	t.Run("flags division by a power of two", func(t *testing.T) {
		t.Parallel()

		file := parseFixture(t, `
pragma solidity ^0.8.19;
contract Math {
    function quarter(uint256 x) external pure returns (uint256) {
        return x / 4;
    }
}`)

		findings, err := NewShiftMathRule().Check(context.Background(), file)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(findings) != 1 {
			t.Fatalf("expected 1 finding, got %d", len(findings))
		}
		if !strings.Contains(findings[0].Description, ">> 2") {
			t.Errorf("description does not suggest the shift: %q", findings[0].Description)
		}
	})

	t.Run("constant folding is left to the compiler", func(t *testing.T) {
		t.Parallel()

		file := parseFixture(t, `
pragma solidity ^0.8.19;
contract Math {
    function fixed32() external pure returns (uint256) {
        return 4 * 8;
    }
}`)

		findings, err := NewShiftMathRule().Check(context.Background(), file)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(findings) != 0 {
			t.Errorf("expected no findings, got %d", len(findings))
		}
	})

	t.Run("non-powers are fine", func(t *testing.T) {
		t.Parallel()

		file := parseFixture(t, `
pragma solidity ^0.8.19;
contract Math {
    function scale(uint256 x) external pure returns (uint256) {
        return x * 6;
    }
}`)

		findings, err := NewShiftMathRule().Check(context.Background(), file)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(findings) != 0 {
			t.Errorf("expected no findings, got %d", len(findings))
		}
	})
}

// TestSafeMathRule tests redundant overflow-library detection.
func TestSafeMathRule(t *testing.T) {
	t.Parallel()

	src := `
pragma solidity %s;
import "./SafeMath.sol";

contract Math {
    using SafeMath for uint256;

    function check(uint256 x) external pure {
        require(x >= 0);
    }
}`

	t.Run("flags import, using, and tautology on 0.8", func(t *testing.T) {
		t.Parallel()

		file := parseFixture(t, strings.Replace(src, "%s", "^0.8.19", 1))
		findings, err := NewSafeMathRule().Check(context.Background(), file)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(findings) != 3 {
			t.Fatalf("expected 3 findings, got %d", len(findings))
		}
	})

	t.Run("stays quiet below 0.8", func(t *testing.T) {
		t.Parallel()

		file := parseFixture(t, strings.Replace(src, "%s", "^0.7.0", 1))
		findings, err := NewSafeMathRule().Check(context.Background(), file)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(findings) != 0 {
			t.Errorf("expected no findings, got %d", len(findings))
		}
	})

	t.Run("signed lower bounds are real checks", func(t *testing.T) {
		t.Parallel()

		file := parseFixture(t, `
pragma solidity ^0.8.19;
contract Math {
    function check(int256 x) external pure {
        require(x >= 0);
    }
}`)

		findings, err := NewSafeMathRule().Check(context.Background(), file)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(findings) != 0 {
			t.Errorf("expected no findings, got %d", len(findings))
		}
	})
}

// TestBoolCompareRule tests literal boolean comparisons.
func TestBoolCompareRule(t *testing.T) {
	t.Parallel()

	t.Run("flags comparisons against literals", func(t *testing.T) {
		t.Parallel()

		file := parseFixture(t, `
pragma solidity ^0.8.19;
contract Auth {
    bool active;

    function check(bool flag) external view {
        require(active == true);
        require(flag != false);
    }
}`)

		findings, err := NewBoolCompareRule().Check(context.Background(), file)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(findings) != 2 {
			t.Fatalf("expected 2 findings, got %d", len(findings))
		}
	})

	t.Run("direct use is fine", func(t *testing.T) {
		t.Parallel()

		file := parseFixture(t, `
pragma solidity ^0.8.19;
contract Auth {
    bool active;

    function check(bool flag) external view {
        require(active);
        require(active == flag);
    }
}`)

		findings, err := NewBoolCompareRule().Check(context.Background(), file)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(findings) != 0 {
			t.Errorf("expected no findings, got %d", len(findings))
		}
	})
}
