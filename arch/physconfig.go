package arch

// PhysConfig is the immutable configuration of one physical memory kind for
// a run.
type PhysConfig struct {
	Kind Kind

	// Bits is the total bit capacity of one physical block.
	Bits int

	// MaxWidth is the widest data port allowed in ROM, single-port, and
	// simple-dual-port modes.
	MaxWidth int

	// MaxWidthTDP is the widest data port allowed in true-dual-port mode. A
	// value of 0 means the kind cannot run in true-dual-port mode.
	MaxWidthTDP int
}

// LUTRAM is the fixed configuration of the logic-based distributed RAM. One
// logic block can act as a 64x10 or a 32x20 memory.
var LUTRAM = PhysConfig{
	Kind:        KindLUTRAM,
	Bits:        64 * 10,
	MaxWidth:    20,
	MaxWidthTDP: 0,
}

// SupportsTrueDualPort returns true if the kind can run in true-dual-port
// mode.
func (c PhysConfig) SupportsTrueDualPort() bool {
	return c.MaxWidthTDP > 0
}

// WidthLimit returns the widest port allowed for the given port mode.
func (c PhysConfig) WidthLimit(trueDualPort bool) int {
	if trueDualPort {
		return c.MaxWidthTDP
	}

	return c.MaxWidth
}
