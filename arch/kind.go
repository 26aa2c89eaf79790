// Package arch describes the physical memory resources of the target FPGA
// architecture and the per-run configuration of those resources.
package arch

import "strconv"

// Kind identifies one class of physical memory resource.
type Kind int

// The physical memory kinds. The numeric values are the type ids written to
// mapping reports.
const (
	KindLUTRAM Kind = iota + 1
	KindM8K
	KindM128K
)

// Kinds lists all the kinds in evaluation order. Mappers visit the kinds in
// this order and keep the earlier kind when two candidates cost the same, so
// the order is part of the mapping result.
var Kinds = []Kind{KindLUTRAM, KindM8K, KindM128K}

// BlockRAMKinds lists the block-RAM kinds in evaluation order.
var BlockRAMKinds = []Kind{KindM8K, KindM128K}

// TypeID returns the numeric id of the kind used in mapping reports.
func (k Kind) TypeID() int {
	return int(k)
}

// IsBlockRAM returns true if the kind is a fixed-capacity block-RAM macro.
func (k Kind) IsBlockRAM() bool {
	return k == KindM8K || k == KindM128K
}

func (k Kind) String() string {
	switch k {
	case KindLUTRAM:
		return "LUTRAM"
	case KindM8K:
		return "M8K"
	case KindM128K:
		return "M128K"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// KindFromTypeID converts a report type id back to a Kind.
func KindFromTypeID(id int) (Kind, bool) {
	for _, k := range Kinds {
		if k.TypeID() == id {
			return k, true
		}
	}

	return 0, false
}

// ParseKind converts the name printed by String back to a Kind.
func ParseKind(name string) (Kind, bool) {
	for _, k := range Kinds {
		if k.String() == name {
			return k, true
		}
	}

	return 0, false
}
