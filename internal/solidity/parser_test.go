package solidity

import "testing"

// mustParse parses the source and fails the test on error.
func mustParse(t *testing.T, src string) *File {
	t.Helper()
	file, err := Parse("test.sol", []byte(src))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return file
}

// TestParsePragmaAndImports tests file-level directives.
func TestParsePragmaAndImports(t *testing.T) {
	t.Parallel()

	src := `// SPDX-License-Identifier: MIT
pragma solidity ^0.8.19;

import "./interfaces/IERC20.sol";
import {Ownable} from "@openzeppelin/contracts/access/Ownable.sol";

contract Empty {}
`
	file := mustParse(t, src)

	if file.Pragma == nil {
		t.Fatal("expected pragma to be parsed")
	}
	lower, ok := file.Pragma.LowerBound()
	if !ok {
		t.Fatal("expected a guaranteed lower bound")
	}
	if lower.String() != "0.8.19" {
		t.Errorf("got lower bound %s, expected 0.8.19", lower)
	}

	if len(file.Imports) != 2 {
		t.Fatalf("got %d imports, expected 2", len(file.Imports))
	}
	if file.Imports[0].Path != "./interfaces/IERC20.sol" {
		t.Errorf("got import %q, expected ./interfaces/IERC20.sol", file.Imports[0].Path)
	}
	if file.Imports[1].Path != "@openzeppelin/contracts/access/Ownable.sol" {
		t.Errorf("got import %q", file.Imports[1].Path)
	}

	if len(file.Contracts) != 1 || file.Contracts[0].Name != "Empty" {
		t.Fatalf("expected single contract Empty, got %v", file.Contracts)
	}
}

// TestParseContractKinds tests contract, interface, library, and abstract
// declarations with inheritance.
func TestParseContractKinds(t *testing.T) {
	t.Parallel()

	src := `pragma solidity ^0.8.0;
interface IThing { function poke() external; }
library MathLib { function add(uint256 a, uint256 b) internal pure returns (uint256) { return a + b; } }
abstract contract Base is IThing {}
contract Impl is Base, IThing {}
`
	file := mustParse(t, src)

	if len(file.Contracts) != 4 {
		t.Fatalf("got %d contracts, expected 4", len(file.Contracts))
	}

	if file.Contracts[0].Kind != KindInterface {
		t.Errorf("IThing kind = %v, expected interface", file.Contracts[0].Kind)
	}
	if file.Contracts[1].Kind != KindLibrary {
		t.Errorf("MathLib kind = %v, expected library", file.Contracts[1].Kind)
	}
	if !file.Contracts[2].Abstract {
		t.Error("Base should be abstract")
	}

	impl := file.Contracts[3]
	if len(impl.Inherits) != 2 || impl.Inherits[0] != "Base" || impl.Inherits[1] != "IThing" {
		t.Errorf("got inherits %v, expected [Base IThing]", impl.Inherits)
	}
}

// TestParseStateVars tests state variable declarations.
func TestParseStateVars(t *testing.T) {
	t.Parallel()

	src := `pragma solidity ^0.8.0;
contract Vault {
    uint256 public totalDeposits;
    address private owner;
    uint8 internal flags;
    bool locked;
    uint256 public constant MAX_SUPPLY = 1_000_000;
    address public immutable deployer;
    mapping(address => uint256) public balances;
    uint256[] public history;
}
`
	file := mustParse(t, src)
	vault := file.Contracts[0]

	if len(vault.StateVars) != 8 {
		t.Fatalf("got %d state vars, expected 8: %+v", len(vault.StateVars), vault.StateVars)
	}

	testCases := []struct {
		name       string
		typ        string
		visibility Visibility
		mutability VarMutability
	}{
		{"totalDeposits", "uint256", VisibilityPublic, VarRegular},
		{"owner", "address", VisibilityPrivate, VarRegular},
		{"flags", "uint8", VisibilityInternal, VarRegular},
		{"locked", "bool", VisibilityDefault, VarRegular},
		{"MAX_SUPPLY", "uint256", VisibilityPublic, VarConstant},
		{"deployer", "address", VisibilityPublic, VarImmutable},
		{"balances", "mapping ( address => uint256 )", VisibilityPublic, VarRegular},
		{"history", "uint256 [ ]", VisibilityPublic, VarRegular},
	}

	for i, tc := range testCases {
		v := vault.StateVars[i]
		if v.Name != tc.name {
			t.Errorf("var %d: got name %q, expected %q", i, v.Name, tc.name)
		}
		if v.Type != tc.typ {
			t.Errorf("var %s: got type %q, expected %q", tc.name, v.Type, tc.typ)
		}
		if v.Visibility != tc.visibility {
			t.Errorf("var %s: got visibility %v, expected %v", tc.name, v.Visibility, tc.visibility)
		}
		if v.Mutability != tc.mutability {
			t.Errorf("var %s: got mutability %v, expected %v", tc.name, v.Mutability, tc.mutability)
		}
	}

	if len(vault.StateVars[4].Initializer) == 0 {
		t.Error("MAX_SUPPLY should have an initializer")
	}
	if len(vault.StateVars[0].Initializer) != 0 {
		t.Error("totalDeposits should have no initializer")
	}
}

// TestParseFunctions tests function attribute parsing.
func TestParseFunctions(t *testing.T) {
	t.Parallel()

	src := `pragma solidity ^0.8.0;
contract Token {
    constructor(address owner_) {}
    receive() external payable {}
    fallback() external payable {}

    function transfer(address to, uint256 amount) external returns (bool) {
        return true;
    }

    function name() public view virtual returns (string memory) {
        return "Token";
    }

    function _mint(address to, uint256 amount) internal onlyMinter {
        total += amount;
    }

    function decimals() external pure returns (uint8);
}
`
	file := mustParse(t, src)
	token := file.Contracts[0]

	if len(token.Functions) != 7 {
		t.Fatalf("got %d functions, expected 7", len(token.Functions))
	}

	ctor := token.Functions[0]
	if ctor.Kind != FnConstructor {
		t.Errorf("got kind %v, expected constructor", ctor.Kind)
	}
	if len(ctor.Params) != 1 || ctor.Params[0].Name != "owner_" {
		t.Errorf("constructor params = %+v", ctor.Params)
	}

	if token.Functions[1].Kind != FnReceive || token.Functions[1].Mutability != MutabilityPayable {
		t.Error("receive should be payable")
	}
	if token.Functions[2].Kind != FnFallback {
		t.Error("expected fallback")
	}

	transfer := token.Functions[3]
	if transfer.Visibility != VisibilityExternal {
		t.Errorf("transfer visibility = %v, expected external", transfer.Visibility)
	}
	if len(transfer.Params) != 2 || transfer.Params[1].Type != "uint256" {
		t.Errorf("transfer params = %+v", transfer.Params)
	}
	if len(transfer.Returns) != 1 || transfer.Returns[0].Type != "bool" {
		t.Errorf("transfer returns = %+v", transfer.Returns)
	}
	if !transfer.HasBody {
		t.Error("transfer should have a body")
	}

	name := token.Functions[4]
	if !name.Virtual {
		t.Error("name should be virtual")
	}
	if name.Mutability != MutabilityView {
		t.Errorf("name mutability = %v, expected view", name.Mutability)
	}
	if name.Returns[0].DataLocation != "memory" {
		t.Errorf("name return location = %q, expected memory", name.Returns[0].DataLocation)
	}

	mint := token.Functions[5]
	if mint.Visibility != VisibilityInternal {
		t.Errorf("_mint visibility = %v, expected internal", mint.Visibility)
	}
	if len(mint.ModifierCalls) != 1 || mint.ModifierCalls[0] != "onlyMinter" {
		t.Errorf("_mint modifiers = %v, expected [onlyMinter]", mint.ModifierCalls)
	}

	decimals := token.Functions[6]
	if decimals.HasBody {
		t.Error("decimals is bodyless and should have HasBody false")
	}
}

// TestParseMembers tests struct, event, error, enum, and using parsing.
func TestParseMembers(t *testing.T) {
	t.Parallel()

	src := `pragma solidity ^0.8.4;
contract Market {
    using SafeMath for uint256;

    enum Status { Open, Closed }

    struct Listing {
        address seller;
        uint96 price;
        Status status;
    }

    event Listed(address indexed seller, uint256 price);
    error Unauthorized(address caller);

    modifier onlySeller() {
        _;
    }
}
`
	file := mustParse(t, src)
	market := file.Contracts[0]

	if len(market.UsingFor) != 1 || market.UsingFor[0].Library != "SafeMath" {
		t.Errorf("got using %+v, expected SafeMath", market.UsingFor)
	}
	if market.UsingFor[0].Target != "uint256" {
		t.Errorf("got using target %q, expected uint256", market.UsingFor[0].Target)
	}

	if len(market.Enums) != 1 || market.Enums[0] != "Status" {
		t.Errorf("got enums %v, expected [Status]", market.Enums)
	}
	if !file.IsKnownEnum("Status") {
		t.Error("IsKnownEnum(Status) should be true")
	}

	if len(market.Structs) != 1 {
		t.Fatalf("got %d structs, expected 1", len(market.Structs))
	}
	listing := market.Structs[0]
	if listing.Name != "Listing" || len(listing.Fields) != 3 {
		t.Fatalf("got struct %+v", listing)
	}
	if listing.Fields[1].Type != "uint96" || listing.Fields[1].Name != "price" {
		t.Errorf("got field %+v, expected uint96 price", listing.Fields[1])
	}

	if len(market.Events) != 1 || market.Events[0].Name != "Listed" {
		t.Errorf("got events %+v", market.Events)
	}
	if !market.Events[0].Params[0].Indexed {
		t.Error("seller event param should be indexed")
	}

	if len(market.Errors) != 1 || market.Errors[0].Name != "Unauthorized" {
		t.Errorf("got errors %+v", market.Errors)
	}

	if len(market.Modifiers) != 1 || market.Modifiers[0].Name != "onlySeller" {
		t.Errorf("got modifiers %+v", market.Modifiers)
	}
}

// TestParseControlFlow tests loop and unchecked-block extraction.
func TestParseControlFlow(t *testing.T) {
	t.Parallel()

	src := `pragma solidity ^0.8.0;
contract Looper {
    uint256[] public items;

    function sum() external view returns (uint256 total) {
        for (uint256 i = 0; i < items.length; i++) {
            total += items[i];
        }
        uint256 j = 0;
        while (j < 10) {
            j++;
        }
        unchecked {
            total += 1;
        }
    }
}
`
	file := mustParse(t, src)
	fn := file.Contracts[0].Functions[0]

	if len(fn.Loops) != 1 {
		t.Fatalf("got %d for loops, expected 1", len(fn.Loops))
	}
	loop := fn.Loops[0]
	if TokensText(loop.Init) != "uint256 i = 0" {
		t.Errorf("got init %q", TokensText(loop.Init))
	}
	if TokensText(loop.Cond) != "i < items . length" {
		t.Errorf("got cond %q", TokensText(loop.Cond))
	}
	if TokensText(loop.Post) != "i ++" {
		t.Errorf("got post %q", TokensText(loop.Post))
	}
	if loop.Body.End <= loop.Body.Start {
		t.Error("loop body span should be non-empty")
	}

	if len(fn.Whiles) != 1 {
		t.Fatalf("got %d while loops, expected 1", len(fn.Whiles))
	}
	if TokensText(fn.Whiles[0].Cond) != "j < 10" {
		t.Errorf("got while cond %q", TokensText(fn.Whiles[0].Cond))
	}

	if len(fn.UncheckedSpans) != 1 {
		t.Fatalf("got %d unchecked spans, expected 1", len(fn.UncheckedSpans))
	}
}

// TestParseToleratesUnknown tests that unknown constructs do not abort
// the parse.
func TestParseToleratesUnknown(t *testing.T) {
	t.Parallel()

	src := `pragma solidity ^0.8.0;
type Price is uint128;
function freeStanding(uint256 x) pure returns (uint256) { return x; }
contract Real { uint256 public kept; }
`
	file := mustParse(t, src)

	if len(file.Contracts) != 1 || file.Contracts[0].Name != "Real" {
		t.Fatalf("expected contract Real to survive, got %+v", file.Contracts)
	}
	if file.Contracts[0].StateVars[0].Name != "kept" {
		t.Error("expected state var kept")
	}
}

// TestFindCalls tests call matching inside token streams.
func TestFindCalls(t *testing.T) {
	t.Parallel()

	src := `pragma solidity ^0.8.0;
contract Guard {
    function check(uint256 x) external pure {
        require(x > 0, "x must be positive");
        require(x < 100);
    }
}
`
	file := mustParse(t, src)
	fn := file.Contracts[0].Functions[0]

	calls := FindCalls(fn.Body, "require")
	if len(calls) != 2 {
		t.Fatalf("got %d require calls, expected 2", len(calls))
	}
	if len(calls[0].Args) != 2 {
		t.Errorf("got %d args, expected 2", len(calls[0].Args))
	}
	if calls[0].Args[1][0].Kind != TokenString || calls[0].Args[1][0].Text != "x must be positive" {
		t.Errorf("got message arg %+v", calls[0].Args[1][0])
	}
	if len(calls[1].Args) != 1 {
		t.Errorf("got %d args for second call, expected 1", len(calls[1].Args))
	}
}

// TestAssignmentsTo tests write detection.
func TestAssignmentsTo(t *testing.T) {
	t.Parallel()

	src := `pragma solidity ^0.8.0;
contract Writes {
    uint256 total;
    mapping(address => uint256) balances;

    function touch(address who, uint256 amount) external {
        total = amount;
        total += 1;
        total++;
        balances[who] = amount;
        uint256 copied = total;
        delete total;
        copied;
    }
}
`
	file := mustParse(t, src)
	fn := file.Contracts[0].Functions[0]

	if got := len(AssignmentsTo(fn.Body, "total")); got != 4 {
		t.Errorf("got %d writes to total, expected 4", got)
	}
	if got := len(AssignmentsTo(fn.Body, "balances")); got != 1 {
		t.Errorf("got %d writes to balances, expected 1", got)
	}
	if got := len(AssignmentsTo(fn.Body, "copied")); got != 1 {
		t.Errorf("got %d writes to copied, expected 1 (declaration)", got)
	}
}

// TestCountIdent tests identifier counting with member-access exclusion.
func TestCountIdent(t *testing.T) {
	t.Parallel()

	tokens := Lex([]byte("total + obj.total + total"))
	// Drop EOF.
	tokens = tokens[:len(tokens)-1]

	if got := CountIdent(tokens, "total"); got != 2 {
		t.Errorf("got %d, expected 2 (member access excluded)", got)
	}
}
