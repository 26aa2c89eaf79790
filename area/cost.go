// Package area estimates the silicon area of physical memory realizations
// and of whole chips.
package area

import (
	"math"

	"github.com/sarchlab/rammap/arch"
)

// LogicBlockArea is the area of one logic-block tile, the average of the
// smallest and largest tile variants.
const LogicBlockArea = (35000.0 + 40000.0) / 2.0

// LUTsPerLogicBlock is the number of LUTs packed into one logic block.
const LUTsPerLogicBlock = 10

// MacroArea returns the area of one block-RAM macro that stores bits bits and
// supports ports up to maxWidth bits wide.
func MacroArea(bits, maxWidth int) float64 {
	b := float64(bits)

	return 9000.0 + 5.0*b + 90.0*math.Sqrt(b) + 600.0*2.0*float64(maxWidth)
}

// LogicBlocksForLUTs returns the number of logic blocks needed to host luts
// LUTs.
func LogicBlocksForLUTs(luts int) int {
	return (luts + LUTsPerLogicBlock - 1) / LUTsPerLogicBlock
}

// Footprint is the physical resource usage of a candidate realization, as
// far as the cost function cares.
type Footprint struct {
	PhysBlocks   int
	ExtraLUTs    int
	LogicalBits  int
	TrueDualPort bool
}

// MappingCost returns the cost used to rank candidate realizations on the
// given kind. The cost is the raw area scaled by a penalty that grows as the
// realization leaves more of its physical bits unused.
func MappingCost(fp Footprint, cfg arch.PhysConfig) float64 {
	extraLBs := LogicBlocksForLUTs(fp.ExtraLUTs)

	var base float64
	if cfg.Kind == arch.KindLUTRAM {
		base = float64(fp.PhysBlocks+extraLBs) * LogicBlockArea
	} else {
		macro := MacroArea(cfg.Bits, cfg.WidthLimit(fp.TrueDualPort))
		base = float64(extraLBs)*LogicBlockArea +
			float64(fp.PhysBlocks)*macro
	}

	u := Utilization(fp.LogicalBits, fp.PhysBlocks, cfg.Bits)
	penalty := 10.0 + penaltyStrength(cfg.Kind)*(10.0-u)

	return base * penalty
}

// Utilization returns the fraction of the physical bits that hold logical
// data, clamped to [0, 1]. No physical bits count as fully utilized.
func Utilization(logicalBits, physBlocks, bitsPerBlock int) float64 {
	physBits := float64(physBlocks) * float64(bitsPerBlock)
	if physBits <= 0 {
		return 1
	}

	u := float64(logicalBits) / physBits

	return math.Max(0, math.Min(1, u))
}

// Larger and scarcer memories are penalized harder for poor utilization.
func penaltyStrength(k arch.Kind) float64 {
	switch k {
	case arch.KindLUTRAM:
		return 1.6
	case arch.KindM8K:
		return 2.2
	case arch.KindM128K:
		return 5.0
	default:
		panic("unknown memory kind " + k.String())
	}
}
