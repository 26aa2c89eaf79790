package arch

import (
	"errors"
	"fmt"
)

// ErrNoKindEnabled is returned when a run configuration disables every
// physical memory kind.
var ErrNoKindEnabled = errors.New(
	"at least one memory type (LUTRAM, M8K, or M128K) must be enabled")

// BlockRAM holds the run parameters of one block-RAM kind.
type BlockRAM struct {
	Enabled bool

	// Bits is the capacity of one macro.
	Bits int

	// LBsPerSite is the number of logic-block tiles that come with each
	// macro site on the chip.
	LBsPerSite int

	// MaxWidth is the widest non-true-dual-port data port. True-dual-port
	// mode supports half of it.
	MaxWidth int
}

// Architecture is the run configuration of the target chip. It is immutable
// for the duration of a run.
type Architecture struct {
	LUTRAMEnabled bool

	// LUTRAMFraction is the fraction of logic blocks that can act as LUTRAM.
	LUTRAMFraction float64

	M8K   BlockRAM
	M128K BlockRAM
}

// Enabled returns true if the run may use the given kind.
func (a Architecture) Enabled(k Kind) bool {
	switch k {
	case KindLUTRAM:
		return a.LUTRAMEnabled
	case KindM8K:
		return a.M8K.Enabled
	case KindM128K:
		return a.M128K.Enabled
	default:
		return false
	}
}

// EnabledKinds returns the enabled kinds in evaluation order.
func (a Architecture) EnabledKinds() []Kind {
	kinds := make([]Kind, 0, len(Kinds))
	for _, k := range Kinds {
		if a.Enabled(k) {
			kinds = append(kinds, k)
		}
	}

	return kinds
}

// BlockRAM returns the parameters of a block-RAM kind.
func (a Architecture) BlockRAM(k Kind) BlockRAM {
	switch k {
	case KindM8K:
		return a.M8K
	case KindM128K:
		return a.M128K
	default:
		panic(fmt.Sprintf("%s is not a block-RAM kind", k))
	}
}

// PhysConfig derives the physical configuration of a kind.
func (a Architecture) PhysConfig(k Kind) PhysConfig {
	if k == KindLUTRAM {
		return LUTRAM
	}

	b := a.BlockRAM(k)

	return PhysConfig{
		Kind:        k,
		Bits:        b.Bits,
		MaxWidth:    b.MaxWidth,
		MaxWidthTDP: b.MaxWidth / 2,
	}
}

// Validate checks that the configuration can drive a run.
func (a Architecture) Validate() error {
	if len(a.EnabledKinds()) == 0 {
		return ErrNoKindEnabled
	}

	if a.LUTRAMFraction < 0 || a.LUTRAMFraction > 1 {
		return fmt.Errorf("LUTRAM fraction %g is not between 0 and 1",
			a.LUTRAMFraction)
	}

	for _, k := range BlockRAMKinds {
		b := a.BlockRAM(k)
		if !b.Enabled {
			continue
		}

		if b.Bits <= 0 {
			return fmt.Errorf("%s capacity must be positive, got %d", k, b.Bits)
		}

		if b.MaxWidth <= 0 {
			return fmt.Errorf("%s max width must be positive, got %d",
				k, b.MaxWidth)
		}

		if b.LBsPerSite < 0 {
			return fmt.Errorf("%s logic blocks per site cannot be negative, "+
				"got %d", k, b.LBsPerSite)
		}
	}

	return nil
}
