package solidity

import (
	"sort"
	"strings"
)

// slotBytes is the width of one storage slot.
const slotBytes = 32

// ByteSize returns the storage footprint of an elementary type in bytes
// and whether the type can share a slot with its neighbors. Reference
// types (mappings, arrays, string, bytes, structs) report a full slot and
// are never packable: each starts a slot of its own.
func ByteSize(typ string, file *File) (size int, packable bool) {
	typ = strings.TrimSpace(typ)
	compact := strings.Map(func(r rune) rune {
		if r == ' ' {
			return -1
		}
		return r
	}, typ)

	switch {
	case compact == "":
		return slotBytes, false
	case strings.HasPrefix(compact, "mapping"):
		return slotBytes, false
	case strings.Contains(compact, "["):
		return slotBytes, false
	case compact == "string" || compact == "bytes":
		return slotBytes, false
	case compact == "bool":
		return 1, true
	case compact == "address" || compact == "addresspayable":
		return 20, true
	case compact == "uint" || compact == "int":
		return slotBytes, true
	}

	if bits := sizedTypeBits(compact, "uint"); bits > 0 {
		return bits / 8, true
	}
	if bits := sizedTypeBits(compact, "int"); bits > 0 {
		return bits / 8, true
	}
	if n := sizedTypeBytes(compact, "bytes"); n >= 1 && n <= 32 {
		return n, true
	}

	if file != nil {
		if file.IsKnownEnum(compact) {
			return 1, true
		}
		if file.IsKnownContract(compact) {
			// Contract references are addresses under the hood.
			return 20, true
		}
	}

	// Unknown user type: assume a full unpackable slot. Structs really do
	// start a fresh slot, and assuming the worst keeps packing findings
	// honest.
	return slotBytes, false
}

// Layout is the outcome of laying out a field sequence into storage slots.
type Layout struct {
	// SequentialSlots is the slot count in declared order, the layout the
	// compiler actually produces.
	SequentialSlots int

	// OptimalSlots is the slot count after reordering fields first-fit
	// decreasing.
	OptimalSlots int

	// LoneSmallFields names fields narrower than a slot that ended up
	// occupying a slot alone in the declared order.
	LoneSmallFields []string
}

// SlotsSaved returns how many slots reordering would save.
func (l Layout) SlotsSaved() int {
	return l.SequentialSlots - l.OptimalSlots
}

// layoutField is one sized field fed to the layout computation.
type layoutField struct {
	name     string
	size     int
	packable bool
}

// computeLayout lays out state variables the way the compiler does:
// consecutive packable fields share a slot while their sizes fit in 32
// bytes; every reference type starts a new slot. Constants and immutables
// consume no storage and must be filtered by the caller.
func computeLayout(fields []layoutField) Layout {
	var layout Layout

	// Sequential order, tracking sharing so lone occupants can be named.
	used := 0
	occupants := 0
	var lastLone string
	closeSlot := func() {
		if used > 0 {
			layout.SequentialSlots++
			if occupants == 1 && lastLone != "" {
				layout.LoneSmallFields = append(layout.LoneSmallFields, lastLone)
			}
		}
		used = 0
		occupants = 0
		lastLone = ""
	}
	for _, f := range fields {
		if !f.packable {
			closeSlot()
			layout.SequentialSlots++
			continue
		}
		if used+f.size > slotBytes {
			closeSlot()
		}
		used += f.size
		occupants++
		if f.size < slotBytes {
			lastLone = f.name
		} else {
			lastLone = ""
		}
	}
	closeSlot()

	// Optimal order: full slots stay full, the rest pack first-fit
	// decreasing.
	var packSizes []int
	for _, f := range fields {
		if !f.packable || f.size == slotBytes {
			layout.OptimalSlots++
			continue
		}
		packSizes = append(packSizes, f.size)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(packSizes)))
	var bins []int
	for _, size := range packSizes {
		placed := false
		for i, fill := range bins {
			if fill+size <= slotBytes {
				bins[i] += size
				placed = true
				break
			}
		}
		if !placed {
			bins = append(bins, size)
		}
	}
	layout.OptimalSlots += len(bins)

	return layout
}

// StateVarLayout computes the storage layout of a contract's state
// variables. Constants and immutables are excluded: they consume no
// storage slots.
func StateVarLayout(contract *Contract, file *File) Layout {
	var fields []layoutField
	for _, v := range contract.StateVars {
		if v.Mutability != VarRegular {
			continue
		}
		size, packable := ByteSize(v.Type, file)
		fields = append(fields, layoutField{name: v.Name, size: size, packable: packable})
	}
	return computeLayout(fields)
}

// StructLayout computes the storage layout of a struct's fields.
func StructLayout(def *StructDef, file *File) Layout {
	var fields []layoutField
	for _, f := range def.Fields {
		size, packable := ByteSize(f.Type, file)
		fields = append(fields, layoutField{name: f.Name, size: size, packable: packable})
	}
	return computeLayout(fields)
}
