package gas

// EVM gas schedule, post-Berlin/London values.
const (
	// Per transaction not creating a contract.
	TxGas uint64 = 21000
	// Per transaction that creates a contract.
	TxGasContractCreation uint64 = 53000
	// Per byte of transaction data that equals zero.
	TxDataZeroGas uint64 = 4
	// Per byte of transaction data that is non-zero (EIP-2028).
	TxDataNonZeroGas uint64 = 16

	// Once per SSTORE operation from clean zero to non-zero (EIP-2200).
	SstoreSetGas uint64 = 20000
	// Once per SSTORE operation from clean non-zero to something else,
	// after the cold-access portion is split out (EIP-2929): 5000 - 2100.
	SstoreResetGas uint64 = 2900
	// Refund for clearing an originally existing storage slot (EIP-3529).
	SstoreClearsRefund uint64 = 4800

	// COLD_SLOAD_COST (EIP-2929).
	ColdSloadCost uint64 = 2100
	// WARM_STORAGE_READ_COST (EIP-2929).
	WarmStorageReadCost uint64 = 100
	// COLD_ACCOUNT_ACCESS_COST (EIP-2929).
	ColdAccountAccessCost uint64 = 2600

	// Once per KECCAK256 operation.
	Keccak256Gas uint64 = 30
	// Once per word of the KECCAK256 operation's data.
	Keccak256WordGas uint64 = 6

	// Per LOG* operation.
	LogGas uint64 = 375
	// Per topic of a LOG* operation.
	LogTopicGas uint64 = 375
	// Per byte in a LOG* operation's data.
	LogDataGas uint64 = 8

	// Per word when expanding memory, linear part.
	MemoryGas uint64 = 3
	// Divisor for the quadratic particle of the memory cost equation.
	QuadCoeffDiv uint64 = 512
	// Multiplied by the number of words copied for any *COPY operation.
	CopyGas uint64 = 3

	// Per byte of code stored when a contract is created.
	CreateDataGas uint64 = 200

	// Paid for CALL when the value transfer is non-zero.
	CallValueTransferGas uint64 = 9000
	// Free gas given at the beginning of a value-bearing call.
	CallStipend uint64 = 2300

	// Once per EXP instruction.
	ExpGas uint64 = 10
	// Times ceil(log256(exponent)) for the EXP instruction (EIP-160).
	ExpByteGas uint64 = 50

	// Once per JUMPDEST operation.
	JumpdestGas uint64 = 1
)

// Tiered costs for the arithmetic and stack opcodes.
const (
	// ADDRESS, ORIGIN, CALLER and friends.
	GasQuickStep uint64 = 2
	// ADD, SUB, NOT, LT, GT, EQ, ISZERO, AND, OR, XOR, SHL, SHR, POP, PUSH, DUP, SWAP.
	GasFastestStep uint64 = 3
	// MUL, DIV, SDIV, MOD, SMOD, SIGNEXTEND.
	GasFastStep uint64 = 5
	// ADDMOD, MULMOD, JUMP.
	GasMidStep uint64 = 8
	// JUMPI.
	GasSlowStep uint64 = 10
)

// Number of bytes in an EVM word.
const WordSize = 32

// Words returns the number of 32-byte words needed to hold n bytes.
func Words(n uint64) uint64 {
	return (n + WordSize - 1) / WordSize
}

// Keccak256Cost returns the cost of hashing n bytes of memory.
func Keccak256Cost(n uint64) uint64 {
	return Keccak256Gas + Keccak256WordGas*Words(n)
}

// MemoryExpansionCost returns the cost of the first expansion to n words.
func MemoryExpansionCost(words uint64) uint64 {
	return MemoryGas*words + words*words/QuadCoeffDiv
}

// LogCost returns the cost of a LOG operation with the given topic count
// and data length.
func LogCost(topics, dataLen uint64) uint64 {
	return LogGas + LogTopicGas*topics + LogDataGas*dataLen
}

// SlotSavings returns the deployment-transaction gas saved by packing away
// the given number of storage slots. Each avoided slot is one clean SSTORE
// that never happens.
func SlotSavings(slots int) uint64 {
	if slots <= 0 {
		return 0
	}
	return uint64(slots) * SstoreSetGas
}

// CachedReadSavings returns the gas saved by replacing n warm storage reads
// with stack or memory access. The first read always pays; each following
// read drops from a warm SLOAD to roughly one stack op.
func CachedReadSavings(reads int) uint64 {
	if reads < 2 {
		return 0
	}
	return uint64(reads-1) * (WarmStorageReadCost - GasFastestStep)
}

// RevertStringExcessCost returns the extra cost carried by a revert string
// longer than one word: per extra word, one more MSTORE plus the bytes held
// in the deployed code.
func RevertStringExcessCost(byteLen int) uint64 {
	if byteLen <= WordSize {
		return 0
	}
	extraWords := Words(uint64(byteLen)) - 1
	return extraWords * (GasFastestStep + MemoryGas + WordSize*CreateDataGas)
}

// StringStorageCost returns the deployed-code cost of embedding a string
// of the given length, used when comparing require strings to custom errors.
func StringStorageCost(byteLen int) uint64 {
	if byteLen <= 0 {
		return 0
	}
	return uint64(byteLen) * CreateDataGas
}
