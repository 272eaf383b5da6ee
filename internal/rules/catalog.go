package rules

import "github.com/gaslint/gaslint/internal/model"

// Tip is one catalog entry: a numbered gas-optimization recommendation
// with the prose and code examples the generated document carries.
type Tip struct {
	// Number is the tip's stable ordinal, 1 through 31.
	Number int

	// RuleID is the slug the rule engine and configuration use.
	RuleID string

	// Title is the tip headline.
	Title string

	// Category groups related tips in listings.
	Category string

	// Summary is the one-paragraph explanation of the tip.
	Summary string

	// Impact explains why the flagged pattern costs gas.
	Impact string

	// Recommendation explains how to fix it.
	Recommendation string

	// Before and After are illustrative Solidity fragments. Empty for
	// advisory tips without a mechanical rewrite.
	Before string
	After  string

	// SavedGas is a rough per-occurrence saving estimate. Zero means the
	// saving is situational and the tip is advisory.
	SavedGas uint64

	// MinVersion names the lowest compiler version the advice applies to,
	// empty when version-independent.
	MinVersion string
}

// Severity returns the severity band the tip's estimated saving falls in.
func (t Tip) Severity() model.Severity {
	return model.SeverityFromSavings(t.SavedGas)
}

// Credit is one attribution entry closing the generated document.
type Credit struct {
	// URL points at the referenced resource.
	URL string

	// Note says what the resource contributed.
	Note string
}

// Tips returns all catalog entries ordered by tip number.
func Tips() []Tip {
	out := make([]Tip, len(tips))
	copy(out, tips)
	return out
}

// TipByRuleID returns the tip with the given rule ID.
func TipByRuleID(id string) (Tip, bool) {
	for _, t := range tips {
		if t.RuleID == id {
			return t, true
		}
	}
	return Tip{}, false
}

// TipByNumber returns the tip with the given ordinal.
func TipByNumber(n int) (Tip, bool) {
	for _, t := range tips {
		if t.Number == n {
			return t, true
		}
	}
	return Tip{}, false
}

// Credits returns the attribution entries for the generated document.
func Credits() []Credit {
	out := make([]Credit, len(credits))
	copy(out, credits)
	return out
}

// tipBySlug is the internal lookup rule constructors use. The catalog
// test guarantees every registered rule resolves.
func tipBySlug(id string) Tip {
	t, _ := TipByRuleID(id)
	return t
}

var tips = []Tip{
	{
		Number:   1,
		RuleID:   "pack-storage-vars",
		Title:    "Pack storage variables",
		Category: "storage",
		Summary: "The EVM stores contract state in 32-byte slots, and every slot a contract " +
			"touches for the first time in a transaction costs thousands of gas. Adjacent " +
			"declarations narrower than 32 bytes share a slot, so ordering declarations by " +
			"size groups small values together and cuts the slot count.",
		Impact: "Each storage slot written from zero costs 20,000 gas (SSTORE set) and each " +
			"cold read costs 2,100 gas. A small value stranded between two full words " +
			"occupies a whole extra slot.",
		Recommendation: "Reorder state variable declarations so values narrower than 32 bytes " +
			"are adjacent and fill slots together.",
		Before: `uint128 a;
uint256 b;
uint128 c; // 3 slots: a and c cannot share across b`,
		After: `uint128 a;
uint128 c; // a and c share one slot
uint256 b; // 2 slots total`,
		SavedGas: 20000,
	},
	{
		Number:   2,
		RuleID:   "cache-storage-reads",
		Title:    "Cache storage reads in memory",
		Category: "storage",
		Summary: "Reading the same state variable repeatedly in one function pays the SLOAD " +
			"cost on every read. Copying the value into a local variable once turns every " +
			"following read into a 3-gas stack operation.",
		Impact: "After the first access in a transaction, each repeated SLOAD still costs " +
			"100 gas (warm access). A local copy costs 3 gas to read.",
		Recommendation: "Read the state variable into a local once, use the local, and write " +
			"back at the end if needed.",
		Before: `function fee() external view returns (uint256) {
    return baseRate + baseRate / 2;
}`,
		After: `function fee() external view returns (uint256) {
    uint256 rate = baseRate;
    return rate + rate / 2;
}`,
		SavedGas: 97,
	},
	{
		Number:   3,
		RuleID:   "prefer-calldata",
		Title:    "Use calldata for external function parameters",
		Category: "calldata",
		Summary: "Reference-type parameters of external functions declared memory are copied " +
			"from calldata into memory on entry. Declaring them calldata reads them in place " +
			"and skips the copy entirely.",
		Impact: "The memory copy costs 3 gas per word plus memory expansion, paid before the " +
			"function body runs, for data the function may never modify.",
		Recommendation: "Declare read-only array, bytes, string, and struct parameters of " +
			"external functions as calldata.",
		Before:   `function total(uint256[] memory xs) external pure returns (uint256) {`,
		After:    `function total(uint256[] calldata xs) external pure returns (uint256) {`,
		SavedGas: 300,
	},
	{
		Number:   4,
		RuleID:   "use-constant",
		Title:    "Declare unchanging state as constant",
		Category: "storage",
		Summary: "A state variable initialized with a literal and never reassigned still " +
			"occupies a storage slot and costs an SLOAD on every read. Declaring it constant " +
			"inlines the value into the bytecode and frees the slot.",
		Impact: "Every read of a non-constant value pays storage access gas: 2,100 cold or " +
			"100 warm, versus roughly 3 gas for an inlined constant.",
		Recommendation: "Add the constant keyword to state variables whose value is fixed at " +
			"compile time.",
		Before:   `uint256 public maxSupply = 10_000;`,
		After:    `uint256 public constant MAX_SUPPLY = 10_000;`,
		SavedGas: 2100,
	},
	{
		Number:   5,
		RuleID:   "use-immutable",
		Title:    "Use immutable for constructor-set values",
		Category: "storage",
		Summary: "Value-type state variables assigned only in the constructor can be declared " +
			"immutable. The value is embedded in the deployed code at construction time, so " +
			"reads never touch storage.",
		Impact: "Same as constants: each read of a storage-resident value costs 2,100 gas " +
			"cold or 100 warm instead of a code read.",
		Recommendation: "Declare state variables that are set once during construction as " +
			"immutable.",
		Before: `address public owner;
constructor() { owner = msg.sender; }`,
		After: `address public immutable owner;
constructor() { owner = msg.sender; }`,
		SavedGas: 2100,
	},
	{
		Number:   6,
		RuleID:   "custom-errors",
		Title:    "Replace revert strings with custom errors",
		Category: "reverts",
		Summary: "Every revert string is stored in the deployed bytecode and ABI-encoded into " +
			"memory on the failure path. Custom errors encode as a 4-byte selector plus " +
			"arguments, shrinking both the deployment and the revert.",
		Impact: "Each byte of deployed code costs 200 gas at deployment; a typical message " +
			"spends thousands of gas there and more at revert time for the memory encoding.",
		Recommendation: "Declare error types and revert with them instead of passing message " +
			"strings to require.",
		Before:   `require(msg.sender == owner, "caller is not the owner");`,
		After: `error NotOwner();
if (msg.sender != owner) revert NotOwner();`,
		SavedGas:   4800,
		MinVersion: "0.8.4",
	},
	{
		Number:   7,
		RuleID:   "short-revert-strings",
		Title:    "Keep revert strings under 32 bytes",
		Category: "reverts",
		Summary: "A revert string longer than 31 bytes needs more than one word, adding an " +
			"extra MSTORE on the failure path and an extra word of deployed code for every " +
			"word it spills into.",
		Impact: "Each extra 32-byte word costs roughly 6,400 gas of deployed code plus the " +
			"additional memory write when the revert fires.",
		Recommendation: "Shorten the message to 31 bytes or fewer, or switch to custom errors.",
		Before:   `require(ok, "this error message is much too long to fit in one word");`,
		After:    `require(ok, "unauthorized");`,
		SavedGas: 6406,
	},
	{
		Number:   8,
		RuleID:   "prefix-increment",
		Title:    "Prefer ++i over i++",
		Category: "loops",
		Summary: "Post-increment evaluates to the value before the increment, so the compiler " +
			"keeps a copy of the old value on the stack even when nothing uses it. " +
			"Pre-increment skips the copy.",
		Impact:         "About 5 gas per iteration, every iteration of every loop.",
		Recommendation: "Use ++i in loop headers and statements where the expression value is unused.",
		Before:         `for (uint256 i = 0; i < n; i++) {`,
		After:          `for (uint256 i = 0; i < n; ++i) {`,
		SavedGas:       5,
	},
	{
		Number:   9,
		RuleID:   "cache-array-length",
		Title:    "Cache array length before loops",
		Category: "loops",
		Summary: "A loop condition like i < items.length re-reads the storage array's length " +
			"on every iteration. Reading it once into a local before the loop replaces a " +
			"warm SLOAD per iteration with a 3-gas stack read.",
		Impact:         "About 97 gas per iteration for storage arrays.",
		Recommendation: "Hoist the length into a local variable before the loop.",
		Before:         `for (uint256 i = 0; i < items.length; ++i) {`,
		After: `uint256 len = items.length;
for (uint256 i = 0; i < len; ++i) {`,
		SavedGas: 97,
	},
	{
		Number:   10,
		RuleID:   "no-default-init",
		Title:    "Skip explicit default initialization",
		Category: "declarations",
		Summary: "Every variable starts at its type's zero value. Writing uint256 i = 0 or " +
			"bool ok = false spends code and execution on storing the value the variable " +
			"already has.",
		Impact: "A few gas per local; for state variables the explicit zero store also " +
			"bloats the constructor.",
		Recommendation: "Declare without an initializer when the intended initial value is zero.",
		Before:         `for (uint256 i = 0; i < n; ++i) {`,
		After:          `for (uint256 i; i < n; ++i) {`,
		SavedGas:       6,
	},
	{
		Number:   11,
		RuleID:   "unchecked-increment",
		Title:    "Wrap safe counter increments in unchecked",
		Category: "loops",
		Summary: "Solidity 0.8 checks every arithmetic operation for overflow. A loop counter " +
			"bounded by its condition cannot overflow, so the check is pure overhead that " +
			"unchecked removes.",
		Impact:         "Roughly 40 gas per iteration for the overflow branch.",
		Recommendation: "Increment bounded loop counters inside an unchecked block.",
		Before:         `for (uint256 i; i < n; ++i) {`,
		After: `for (uint256 i; i < n; ) {
    // body
    unchecked { ++i; }
}`,
		SavedGas:   40,
		MinVersion: "0.8.0",
	},
	{
		Number:   12,
		RuleID:   "shift-math",
		Title:    "Shift instead of multiplying by powers of two",
		Category: "arithmetic",
		Summary: "MUL and DIV cost 5 gas; SHL and SHR cost 3. Multiplication or division by a " +
			"power-of-two literal is a shift the compiler does not rewrite for you below " +
			"optimizer settings you control.",
		Impact:         "2 gas per operation, free to take.",
		Recommendation: "Replace x * 2 with x << 1 and x / 4 with x >> 2. Right shifts of signed values round differently, so shift unsigned values only.",
		Before:         `uint256 half = price / 2;`,
		After:          `uint256 half = price >> 1;`,
		SavedGas:       2,
	},
	{
		Number:   13,
		RuleID:   "prefer-external",
		Title:    "Mark public functions external when uncalled internally",
		Category: "calldata",
		Summary: "A public function supports internal calls, which forces its parameters " +
			"through memory. If no internal call exists, external lets parameters stay in " +
			"calldata.",
		Impact: "The memory copy of each argument word on every call, paid for a capability " +
			"nothing uses.",
		Recommendation: "Declare functions external unless the contract itself calls them.",
		Before:         `function register(bytes calldata data) public {`,
		After:          `function register(bytes calldata data) external {`,
		SavedGas:       200,
	},
	{
		Number:   14,
		RuleID:   "mapping-over-array",
		Title:    "Use mappings for lookups instead of array scans",
		Category: "storage",
		Summary: "Finding an element by scanning a storage array costs a warm SLOAD per " +
			"element visited and grows with the array. A mapping keyed by the lookup value " +
			"answers in one read at any size.",
		Impact: "Linear storage reads per lookup, unbounded as the array grows; a mapping " +
			"lookup is one hashed access.",
		Recommendation: "Keep a mapping from key to value (or to array index) alongside or " +
			"instead of the array.",
		Before: `for (uint256 i = 0; i < users.length; ++i) {
    if (users[i] == who) { return true; }
}`,
		After: `mapping(address => bool) isUser;
return isUser[who];`,
		SavedGas: 0,
	},
	{
		Number:   15,
		RuleID:   "delete-for-refund",
		Title:    "Delete storage you no longer need",
		Category: "storage",
		Summary: "Clearing a storage slot refunds 4,800 gas at the end of the transaction. " +
			"delete communicates the intent directly and compiles to the same zero store " +
			"as assigning zero.",
		Impact: "Unclaimed refunds on slots the contract will never read again; assignment " +
			"of zero hides the clearing intent from reviewers.",
		Recommendation: "Use delete on variables and mapping entries whose value is finished, " +
			"and clear finished state rather than leaving it set.",
		Before:   `balances[who] = 0;`,
		After:    `delete balances[who];`,
		SavedGas: 0,
	},
	{
		Number:   16,
		RuleID:   "events-over-storage",
		Title:    "Emit events instead of storing write-only data",
		Category: "storage",
		Summary: "State that the contract writes but never reads exists only for off-chain " +
			"consumers, and those consumers can read events. A LOG costs a fraction of an " +
			"SSTORE.",
		Impact: "An SSTORE to a fresh slot costs 20,000 gas; an event with one topic and a " +
			"word of data costs about 1,000.",
		Recommendation: "Emit an event carrying the data and drop the state variable when no " +
			"on-chain reader exists.",
		Before: `uint256 private lastDeposit;
function deposit() external payable { lastDeposit = msg.value; }`,
		After: `event Deposited(uint256 amount);
function deposit() external payable { emit Deposited(msg.value); }`,
		SavedGas: 18994,
	},
	{
		Number:   17,
		RuleID:   "short-circuit-order",
		Title:    "Order && and || operands cheapest first",
		Category: "arithmetic",
		Summary: "Boolean operators short-circuit: the right operand only runs when the left " +
			"does not decide the result. Putting the cheap check first lets it skip the " +
			"expensive one.",
		Impact: "When the cheap condition decides, the storage read or call on the other " +
			"side never executes.",
		Recommendation: "In conditions combining a cheap comparison with a storage read or " +
			"external call, evaluate the cheap comparison first.",
		Before:   `require(balances[msg.sender] >= amount && amount > 0);`,
		After:    `require(amount > 0 && balances[msg.sender] >= amount);`,
		SavedGas: 0,
	},
	{
		Number:   18,
		RuleID:   "redundant-safemath",
		Title:    "Drop SafeMath on Solidity 0.8+",
		Category: "arithmetic",
		Summary: "Solidity 0.8 reverts on overflow natively. SafeMath on 0.8 pays the " +
			"library-call overhead to duplicate a check the compiler already emits, and " +
			"unsigned comparisons against zero are always true.",
		Impact: "Library-call overhead on every arithmetic operation, plus dead require " +
			"checks that cost gas and imply protection they do not add.",
		Recommendation: "Remove the SafeMath import and using directive; use unchecked blocks " +
			"where wrap-around is intended. Delete x >= 0 checks on unsigned values.",
		Before: `using SafeMath for uint256;
total = total.add(amount);`,
		After:      `total = total + amount;`,
		SavedGas:   100,
		MinVersion: "0.8.0",
	},
	{
		Number:   19,
		RuleID:   "bytes32-over-string",
		Title:    "Use bytes32 for short fixed strings",
		Category: "declarations",
		Summary: "string is a dynamic type: it carries a length and, as an argument, an " +
			"offset word. A value that always fits 32 bytes can live in a single bytes32 " +
			"word with none of that bookkeeping.",
		Impact: "Extra calldata words when passed around, plus length handling on every " +
			"storage access.",
		Recommendation: "Store short fixed identifiers, symbols, and names as bytes32.",
		Before:   `string public symbol = "GAS";`,
		After:    `bytes32 public symbol = "GAS";`,
		SavedGas: 120,
	},
	{
		Number:   20,
		RuleID:   "batch-operations",
		Title:    "Batch small operations into one transaction",
		Category: "patterns",
		Summary: "Every transaction pays a 21,000 gas base fee before the first opcode runs. " +
			"An entry point that performs one small update invites callers to pay that base " +
			"fee per item; a batch variant amortizes it.",
		Impact: "21,000 gas per transaction regardless of work done; ten single-item calls " +
			"pay the base fee ten times.",
		Recommendation: "Offer an array-accepting variant of small single-item entry points.",
		Before: `function setScore(address who, uint256 score) external {
    scores[who] = score;
}`,
		After: `function setScores(address[] calldata who, uint256[] calldata score) external {
    for (uint256 i; i < who.length; ++i) { scores[who[i]] = score[i]; }
}`,
		SavedGas: 0,
	},
	{
		Number:   21,
		RuleID:   "selector-ordering",
		Title:    "Mind function selector ordering on hot paths",
		Category: "dispatch",
		Summary: "The dispatcher finds the target function by comparing the call's 4-byte " +
			"selector against the contract's selectors in ascending order. With many entry " +
			"points, functions whose selectors sort late pay extra comparisons on every call.",
		Impact: "Around 22 gas per comparison the dispatcher walks past before matching, on " +
			"every call to that function.",
		Recommendation: "On contracts with many entry points, check where the hot functions' " +
			"selectors fall; renaming a function changes its selector.",
		SavedGas: 0,
	},
	{
		Number:   22,
		RuleID:   "payable-constructor",
		Title:    "Make the constructor payable",
		Category: "deployment",
		Summary: "A non-payable constructor compiles in a check that reverts when value is " +
			"attached to the deployment. Marking it payable drops the check and its " +
			"bytecode. Deployment scripts simply send no value.",
		Impact:         "A handful of execution gas plus the check's bytes in the init code.",
		Recommendation: "Declare the constructor payable unless accidental value transfer at deployment must revert.",
		Before:         `constructor(address owner_) {`,
		After:          `constructor(address owner_) payable {`,
		SavedGas:       200,
	},
	{
		Number:   23,
		RuleID:   "modern-pragma",
		Title:    "Target a modern compiler version",
		Category: "deployment",
		Summary: "Newer compilers generate cheaper code: 0.8.0 made overflow checks native, " +
			"0.8.4 added custom errors, and later releases keep improving codegen. A pragma " +
			"pinned to an old version locks all of that out.",
		Impact: "Every optimization the pinned compiler predates, across the whole contract.",
		Recommendation: "Raise the pragma to at least 0.8.4 and re-run the test suite. Several " +
			"tips in this catalog only apply from 0.8.x on.",
		SavedGas: 0,
	},
	{
		Number:   24,
		RuleID:   "pack-struct-fields",
		Title:    "Pack struct fields",
		Category: "storage",
		Summary: "Struct fields pack into slots by declaration order exactly like state " +
			"variables, and the cost repeats for every stored instance. Field order matters " +
			"most in structs stored in mappings and arrays.",
		Impact: "One avoidable slot in a struct costs 20,000 gas for every instance ever " +
			"written.",
		Recommendation: "Order struct fields so sub-word values are adjacent.",
		Before: `struct Listing {
    uint128 price;
    uint256 id;
    uint64 expiry;
}`,
		After: `struct Listing {
    uint128 price;
    uint64 expiry;
    uint256 id;
}`,
		SavedGas: 20000,
	},
	{
		Number:   25,
		RuleID:   "fixed-size-arrays",
		Title:    "Prefer fixed-size arrays when the size is known",
		Category: "declarations",
		Summary: "new T[](n) with a constant n allocates a dynamic array: a length word plus " +
			"bounds bookkeeping. A fixed-size array bakes the length into the type and " +
			"skips both.",
		Impact:         "The length word's allocation and the per-access bounds handling.",
		Recommendation: "Use T[k] when the element count is a compile-time constant.",
		Before:         `uint256[] memory pair = new uint256[](2);`,
		After:          `uint256[2] memory pair;`,
		SavedGas:       50,
	},
	{
		Number:   26,
		RuleID:   "private-constants",
		Title:    "Keep constants private",
		Category: "deployment",
		Summary: "A public constant compiles to a getter function: dispatch entry, code to " +
			"push the value, and ABI encoding, all in the deployed bytecode. Private " +
			"constants cost nothing beyond their use sites.",
		Impact:         "Roughly 3,400 gas of deployment cost per public constant.",
		Recommendation: "Declare constants private unless external readers genuinely need the getter.",
		Before:         `uint256 public constant FEE_BPS = 30;`,
		After:          `uint256 private constant FEE_BPS = 30;`,
		SavedGas:       3400,
	},
	{
		Number:   27,
		RuleID:   "single-sstore",
		Title:    "Write each storage slot once per transaction",
		Category: "storage",
		Summary: "Several assignments to the same state variable in one function each pay an " +
			"SSTORE. Accumulating in a local and writing the final value once pays it a " +
			"single time.",
		Impact:         "At least 100 gas per redundant warm write, more when the slot is cold.",
		Recommendation: "Compute into a local variable and assign the state variable once at the end.",
		Before: `total = total + a;
total = total + b;`,
		After: `uint256 t = total;
t = t + a;
t = t + b;
total = t;`,
		SavedGas: 100,
	},
	{
		Number:   28,
		RuleID:   "uint-reentrancy-flag",
		Title:    "Use nonzero values for reentrancy flags",
		Category: "storage",
		Summary: "A bool reentrancy lock toggles its slot between zero and one, paying the " +
			"expensive zero-to-nonzero SSTORE on every entry. Toggling between 1 and 2 " +
			"keeps the slot nonzero so every write is a cheap reset.",
		Impact: "Setting a zeroed slot costs 20,000 gas; resetting a nonzero slot costs " +
			"2,900. The bool pattern pays the difference on every locked call.",
		Recommendation: "Use uint256 with two nonzero sentinel values (1 = unlocked, " +
			"2 = locked), as OpenZeppelin's ReentrancyGuard does.",
		Before: `bool private locked;
modifier nonReentrant() {
    require(!locked);
    locked = true;
    _;
    locked = false;
}`,
		After: `uint256 private locked = 1;
modifier nonReentrant() {
    require(locked == 1);
    locked = 2;
    _;
    locked = 1;
}`,
		SavedGas: 17100,
	},
	{
		Number:   29,
		RuleID:   "lone-small-int",
		Title:    "Avoid lone sub-word integers in storage",
		Category: "storage",
		Summary: "The EVM computes on 256-bit words, so a uint8 state variable sitting alone " +
			"in its slot saves nothing and adds masking work on every access. Narrow types " +
			"only pay off when packed with neighbors.",
		Impact: "Extra masking on each access, with no slot saved in return.",
		Recommendation: "Widen a lone small integer to uint256, or move another sub-word " +
			"variable next to it so the slot is shared.",
		Before:   `uint8 public decimals;`,
		After:    `uint256 public decimals;`,
		SavedGas: 0,
	},
	{
		Number:   30,
		RuleID:   "no-bool-compare",
		Title:    "Never compare booleans to literals",
		Category: "arithmetic",
		Summary: "x == true is x with an extra equality check, and x == false is !x with " +
			"one. The comparison buys nothing.",
		Impact:         "3 gas per comparison plus a constant push.",
		Recommendation: "Use the boolean directly, negated when needed.",
		Before:         `if (approved[msg.sender] == true) {`,
		After:          `if (approved[msg.sender]) {`,
		SavedGas:       3,
	},
	{
		Number:   31,
		RuleID:   "require-over-assert",
		Title:    "Use require for validation, assert for invariants",
		Category: "reverts",
		Summary: "assert signals a broken internal invariant and compiles to Panic. Before " +
			"Solidity 0.8 it consumed all remaining gas; it still produces a larger, less " +
			"informative failure than require. Input validation belongs to require.",
		Impact: "On pre-0.8 compilers a failed assert burns the transaction's entire gas " +
			"allowance. On any version it hides the failure reason from callers.",
		Recommendation: "Validate inputs and external conditions with require or custom " +
			"errors; reserve assert for conditions that can only fail on a contract bug.",
		Before:   `assert(msg.sender == owner);`,
		After:    `require(msg.sender == owner, "not owner");`,
		SavedGas: 0,
	},
}

var credits = []Credit{
	{URL: "https://docs.soliditylang.org/en/latest/internals/optimizer.html", Note: "Solidity optimizer internals"},
	{URL: "https://ethereum.org/en/developers/docs/gas/", Note: "gas and fees overview"},
	{URL: "https://eips.ethereum.org/EIPS/eip-2028", Note: "calldata gas cost reduction"},
	{URL: "https://eips.ethereum.org/EIPS/eip-2929", Note: "gas costs for state access opcodes"},
	{URL: "https://eips.ethereum.org/EIPS/eip-3529", Note: "reduction in storage refunds"},
	{URL: "https://github.com/wolflo/evm-opcodes", Note: "opcode-level gas reference"},
	{URL: "https://soliditylang.org/blog/2021/04/21/custom-errors/", Note: "custom errors announcement"},
	{URL: "https://github.com/crytic/slither", Note: "static-analysis prior art"},
}
