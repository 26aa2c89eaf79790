package mapping

import (
	"sort"

	"github.com/sarchlab/rammap/area"
	"github.com/sarchlab/rammap/arch"
	"github.com/sarchlab/rammap/circuit"
	"github.com/sarchlab/rammap/hooking"
)

// HookPosMapped is invoked after a logical memory is mapped. The item is the
// RamMapping and the detail is its cost.
var HookPosMapped = &hooking.HookPos{Name: "Mapped"}

// HookPosShared is invoked after two mappings are merged. The item is the
// SharedPair.
var HookPosShared = &hooking.HookPos{Name: "Shared"}

// CircuitUsage is the resource usage of one circuit after sharing.
type CircuitUsage struct {
	CircuitID int
	Tally     area.Tally
}

// Result is the outcome of a run.
type Result struct {
	// Mappings holds one mapping per logical memory, in mapping order:
	// circuits by id, memories in input order.
	Mappings []RamMapping

	// Circuits holds the usage of every circuit, sorted by id.
	Circuits []CircuitUsage

	// Total is the usage of the whole design. Its block counts account for
	// the blocks saved by sharing.
	Total area.Tally

	// Shared lists the merged pairs in merge order.
	Shared []SharedPair
}

// ExtraLUTs returns the decode and multiplexing LUTs of the whole design.
func (r *Result) ExtraLUTs() int {
	return r.Total.ExtraLUTs
}

// Blocks returns the number of physical blocks of a kind used by the whole
// design.
func (r *Result) Blocks(k arch.Kind) int {
	return r.Total.Blocks(k)
}

// SortedMappings returns a copy of the mappings ordered by circuit id and
// logical RAM id.
func (r *Result) SortedMappings() []RamMapping {
	sorted := make([]RamMapping, len(r.Mappings))
	copy(sorted, r.Mappings)

	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].CircuitID != sorted[j].CircuitID {
			return sorted[i].CircuitID < sorted[j].CircuitID
		}

		return sorted[i].LogicalRAMID < sorted[j].LogicalRAMID
	})

	return sorted
}

// Find returns the mapping of a logical memory.
func (r *Result) Find(circuitID, ramID int) (RamMapping, bool) {
	for _, m := range r.Mappings {
		if m.CircuitID == circuitID && m.LogicalRAMID == ramID {
			return m, true
		}
	}

	return RamMapping{}, false
}

// Usage returns the usage of one circuit.
func (r *Result) Usage(circuitID int) (CircuitUsage, bool) {
	i := sort.Search(len(r.Circuits), func(i int) bool {
		return r.Circuits[i].CircuitID >= circuitID
	})

	if i < len(r.Circuits) && r.Circuits[i].CircuitID == circuitID {
		return r.Circuits[i], true
	}

	return CircuitUsage{}, false
}

// An Assigner maps every logical memory of a set of circuits.
type Assigner struct {
	hooking.HookableBase

	arch   arch.Architecture
	mapper *Mapper
}

// Assign maps all memories of the circuits and merges what can share a
// block. It fails on the first memory that no enabled kind can realize.
// Circuit ids must be unique; circuit.Assemble produces such a slice.
func (a *Assigner) Assign(circuits []circuit.Circuit) (*Result, error) {
	if err := a.arch.Validate(); err != nil {
		return nil, err
	}

	ordered := make([]circuit.Circuit, len(circuits))
	copy(ordered, circuits)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].ID < ordered[j].ID
	})

	r := &Result{}
	usage := make(map[int]*area.Tally, len(ordered))
	nextGroupID := 0

	for _, c := range ordered {
		t := &area.Tally{LogicBlocks: c.LogicBlocks}
		usage[c.ID] = t

		for _, mem := range c.Memories {
			cand, err := a.mapper.Map(c.ID, mem, nextGroupID)
			if err != nil {
				return nil, err
			}
			nextGroupID++

			m := cand.Mapping
			t.ExtraLUTs += m.ExtraLUTs
			t.AddBlocks(m.Kind, m.PhysBlocks)
			r.Mappings = append(r.Mappings, m)

			a.InvokeHook(hooking.HookCtx{
				Domain: a,
				Pos:    HookPosMapped,
				Item:   m,
				Detail: cand.Cost,
			})
		}
	}

	a.share(r, usage)

	for _, c := range ordered {
		r.Circuits = append(r.Circuits, CircuitUsage{
			CircuitID: c.ID,
			Tally:     *usage[c.ID],
		})
	}

	for _, cu := range r.Circuits {
		r.Total = r.Total.Plus(cu.Tally)
	}

	return r, nil
}

func (a *Assigner) share(r *Result, usage map[int]*area.Tally) {
	for _, k := range arch.BlockRAMKinds {
		if !a.arch.Enabled(k) {
			continue
		}

		pairs := Share(r.Mappings, a.arch.PhysConfig(k))

		for _, p := range pairs {
			usage[p.First.CircuitID].AddBlocks(k, -1)
			r.Shared = append(r.Shared, p)

			a.InvokeHook(hooking.HookCtx{
				Domain: a,
				Pos:    HookPosShared,
				Item:   p,
			})
		}
	}
}
