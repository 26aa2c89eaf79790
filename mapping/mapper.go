package mapping

import (
	"errors"
	"fmt"

	"github.com/sarchlab/rammap/arch"
	"github.com/sarchlab/rammap/circuit"
)

// ErrNoLegalMapping is the error wrapped by UnmappableError.
var ErrNoLegalMapping = errors.New("no legal mapping")

// UnmappableError reports a logical memory that no enabled kind can realize.
type UnmappableError struct {
	CircuitID int
	RAMID     int
}

func (e *UnmappableError) Error() string {
	return fmt.Sprintf(
		"no legal mapping for logical RAM %d in circuit %d "+
			"under current memory config", e.RAMID, e.CircuitID)
}

// Unwrap returns ErrNoLegalMapping.
func (e *UnmappableError) Unwrap() error {
	return ErrNoLegalMapping
}

// A Mapper picks the cheapest realization of a logical memory across the
// enabled kinds of an architecture.
type Mapper struct {
	configs []arch.PhysConfig
}

// NewMapper creates a mapper for the enabled kinds of the architecture.
func NewMapper(a arch.Architecture) *Mapper {
	m := &Mapper{}

	for _, k := range a.EnabledKinds() {
		m.configs = append(m.configs, a.PhysConfig(k))
	}

	return m
}

// Map returns the cheapest realization of the memory. Kinds are evaluated in
// the order of arch.Kinds and a later kind must be strictly cheaper to win.
func (m *Mapper) Map(
	circuitID int,
	mem circuit.LogicalMemory,
	groupID int,
) (Candidate, error) {
	var (
		best  Candidate
		found bool
	)

	for _, cfg := range m.configs {
		c, ok := BestForKind(circuitID, mem, groupID, cfg)
		if !ok {
			continue
		}

		if !found || c.Cost < best.Cost {
			best = c
			found = true
		}
	}

	if !found {
		return Candidate{}, &UnmappableError{
			CircuitID: circuitID,
			RAMID:     mem.ID,
		}
	}

	return best, nil
}
