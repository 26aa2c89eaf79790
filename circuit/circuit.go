// Package circuit defines the circuits and logical memories that the mapper
// consumes, and reads them from the benchmark text files.
package circuit

import "fmt"

// AccessMode is the port configuration a logical memory requests.
type AccessMode int

// The access modes.
const (
	ModeROM AccessMode = iota
	ModeSinglePort
	ModeSimpleDualPort
	ModeTrueDualPort
)

func (m AccessMode) String() string {
	switch m {
	case ModeROM:
		return "ROM"
	case ModeSinglePort:
		return "SinglePort"
	case ModeSimpleDualPort:
		return "SimpleDualPort"
	case ModeTrueDualPort:
		return "TrueDualPort"
	default:
		return fmt.Sprintf("AccessMode(%d)", int(m))
	}
}

// ParseAccessMode converts the name used in the input files to an
// AccessMode.
func ParseAccessMode(s string) (AccessMode, bool) {
	switch s {
	case "ROM":
		return ModeROM, true
	case "SinglePort":
		return ModeSinglePort, true
	case "SimpleDualPort":
		return ModeSimpleDualPort, true
	case "TrueDualPort":
		return ModeTrueDualPort, true
	default:
		return 0, false
	}
}

// LogicalMemory is a memory instance requested by a circuit.
type LogicalMemory struct {
	ID    int
	Mode  AccessMode
	Depth int
	Width int
}

// Bits returns the number of bits the memory stores.
func (m LogicalMemory) Bits() int {
	return m.Width * m.Depth
}

// Circuit is one benchmark design.
type Circuit struct {
	ID int

	// LogicBlocks is the number of logic blocks the circuit needs for its
	// own logic, not counting memories.
	LogicBlocks int

	Memories []LogicalMemory
}
