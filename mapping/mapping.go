// Package mapping decides how each logical memory of a circuit is built from
// the physical memory resources of an architecture.
//
// For every logical memory the Mapper enumerates the legal shapes on every
// enabled kind and keeps the cheapest one. The Assigner maps all the memories
// of all the circuits and then merges pairs of half-full single-port
// mappings into shared true-dual-port blocks.
package mapping

import (
	"github.com/sarchlab/rammap/area"
	"github.com/sarchlab/rammap/arch"
	"github.com/sarchlab/rammap/circuit"
)

// MaxSeries is the longest chain of physical blocks allowed in the depth
// dimension.
const MaxSeries = 16

// A RamMapping records how one logical memory is realized.
type RamMapping struct {
	CircuitID    int
	LogicalRAMID int
	LogicalWidth int
	LogicalDepth int

	Kind arch.Kind

	// Mode is the access mode of the realization. Sharing upgrades it to
	// true-dual-port.
	Mode circuit.AccessMode

	// PhysWidth and PhysDepth are the configured shape of each physical
	// block.
	PhysWidth int
	PhysDepth int

	// Series is the number of blocks chained in depth and Parallel the
	// number of blocks side by side in width.
	Series     int
	Parallel   int
	PhysBlocks int

	// ExtraLUTs is the decode and output multiplexing logic of the chain.
	ExtraLUTs int

	// GroupID is unique per logical memory, except that two merged mappings
	// share the group id of the first.
	GroupID int
}

// LogicalBits returns the number of bits the logical memory stores.
func (m RamMapping) LogicalBits() int {
	return m.LogicalWidth * m.LogicalDepth
}

// Footprint returns the resource usage used by the cost model.
func (m RamMapping) Footprint() area.Footprint {
	return area.Footprint{
		PhysBlocks:   m.PhysBlocks,
		ExtraLUTs:    m.ExtraLUTs,
		LogicalBits:  m.LogicalBits(),
		TrueDualPort: m.Mode == circuit.ModeTrueDualPort,
	}
}

// SameShape returns true if both mappings use identically shaped physical
// blocks in the same arrangement.
func (m RamMapping) SameShape(o RamMapping) bool {
	return m.PhysWidth == o.PhysWidth &&
		m.PhysDepth == o.PhysDepth &&
		m.Series == o.Series &&
		m.Parallel == o.Parallel
}
