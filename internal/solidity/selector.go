package solidity

import (
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/sha3"
)

// Signature builds the canonical ABI signature of a function:
// the name followed by the comma-joined canonical parameter types,
// e.g. "transfer(address,uint256)".
func Signature(fn *Function, file *File) string {
	types := make([]string, 0, len(fn.Params))
	for _, param := range fn.Params {
		types = append(types, CanonicalType(param.Type, file))
	}
	return fn.Name + "(" + strings.Join(types, ",") + ")"
}

// CanonicalType normalizes a parameter type to its ABI form: alias
// expansion (uint -> uint256), enums to uint8, and contract references to
// address. Array suffixes are preserved.
func CanonicalType(typ string, file *File) string {
	compact := strings.Map(func(r rune) rune {
		if r == ' ' {
			return -1
		}
		return r
	}, typ)

	// Peel the array suffix so the element type can be normalized.
	suffix := ""
	if idx := strings.Index(compact, "["); idx >= 0 {
		suffix = compact[idx:]
		compact = compact[:idx]
	}

	switch compact {
	case "uint":
		compact = "uint256"
	case "int":
		compact = "int256"
	case "addresspayable":
		compact = "address"
	case "fixed":
		compact = "fixed128x18"
	case "ufixed":
		compact = "ufixed128x18"
	default:
		if file != nil {
			if file.IsKnownEnum(compact) {
				compact = "uint8"
			} else if file.IsKnownContract(compact) {
				compact = "address"
			}
		}
	}

	return compact + suffix
}

// Selector returns the 4-byte function selector for a canonical signature:
// the first four bytes of the legacy Keccak-256 hash.
//
// Design decision: We compute real selectors rather than ordering entry
// points alphabetically because the dispatcher compares selector values,
// not names. Ordering advice is only correct in selector space.
func Selector(signature string) [4]byte {
	hash := sha3.NewLegacyKeccak256()
	hash.Write([]byte(signature))
	sum := hash.Sum(nil)

	var selector [4]byte
	copy(selector[:], sum[:4])
	return selector
}

// SelectorHex returns the selector as an 8-character lowercase hex string.
func SelectorHex(signature string) string {
	sel := Selector(signature)
	return hex.EncodeToString(sel[:])
}
