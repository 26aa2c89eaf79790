package report

import (
	"github.com/sarchlab/rammap/arch"
	"github.com/sarchlab/rammap/datarecording"
	"github.com/sarchlab/rammap/hooking"
	"github.com/sarchlab/rammap/mapping"
)

// The tables written by a RecorderHook.
const (
	RAMMappingTable   = "ram_mapping"
	CircuitUsageTable = "circuit_usage"
	MappingCostTable  = "mapping_cost"
	SharedPairTable   = "shared_pair"
	ArchitectureTable = "architecture"
)

// RAMMappingRow is one row of the ram_mapping table.
type RAMMappingRow struct {
	CircuitID    int
	LogicalRAMID int
	LogicalWidth int
	LogicalDepth int
	Kind         string
	Mode         string
	PhysWidth    int
	PhysDepth    int
	Series       int
	Parallel     int
	PhysBlocks   int
	ExtraLUTs    int
	GroupID      int
}

// CircuitUsageRow is one row of the circuit_usage table.
type CircuitUsageRow struct {
	CircuitID    int
	LogicBlocks  int
	ExtraLUTs    int
	LUTRAMBlocks int
	M8KBlocks    int
	M128KBlocks  int
	RegularLBs   int
	Tiles        int
	Area         float64
}

// MappingCostRow is one row of the mapping_cost table, written as each
// memory is mapped.
type MappingCostRow struct {
	CircuitID    int
	LogicalRAMID int
	Kind         string
	Cost         float64
}

// SharedPairRow is one row of the shared_pair table.
type SharedPairRow struct {
	CircuitID   int
	Kind        string
	GroupID     int
	FirstRAMID  int
	SecondRAMID int
}

// ArchitectureRow is the single row of the architecture table.
type ArchitectureRow struct {
	LUTRAMEnabled   bool
	LUTRAMFraction  float64
	M8KEnabled      bool
	M8KBits         int
	M8KLBsPerSite   int
	M8KMaxWidth     int
	M128KEnabled    bool
	M128KBits       int
	M128KLBsPerSite int
	M128KMaxWidth   int
}

func newArchitectureRow(a arch.Architecture) ArchitectureRow {
	return ArchitectureRow{
		LUTRAMEnabled:   a.LUTRAMEnabled,
		LUTRAMFraction:  a.LUTRAMFraction,
		M8KEnabled:      a.M8K.Enabled,
		M8KBits:         a.M8K.Bits,
		M8KLBsPerSite:   a.M8K.LBsPerSite,
		M8KMaxWidth:     a.M8K.MaxWidth,
		M128KEnabled:    a.M128K.Enabled,
		M128KBits:       a.M128K.Bits,
		M128KLBsPerSite: a.M128K.LBsPerSite,
		M128KMaxWidth:   a.M128K.MaxWidth,
	}
}

// Architecture converts the row back.
func (r ArchitectureRow) Architecture() arch.Architecture {
	return arch.Architecture{
		LUTRAMEnabled:  r.LUTRAMEnabled,
		LUTRAMFraction: r.LUTRAMFraction,
		M8K: arch.BlockRAM{
			Enabled:    r.M8KEnabled,
			Bits:       r.M8KBits,
			LBsPerSite: r.M8KLBsPerSite,
			MaxWidth:   r.M8KMaxWidth,
		},
		M128K: arch.BlockRAM{
			Enabled:    r.M128KEnabled,
			Bits:       r.M128KBits,
			LBsPerSite: r.M128KLBsPerSite,
			MaxWidth:   r.M128KMaxWidth,
		},
	}
}

// A RecorderHook stores the decisions of an assigner and the final result of
// a run in a DataRecorder.
type RecorderHook struct {
	recorder datarecording.DataRecorder
}

// NewRecorderHook creates the tables on the recorder.
func NewRecorderHook(recorder datarecording.DataRecorder) *RecorderHook {
	h := &RecorderHook{recorder: recorder}

	recorder.CreateTable(RAMMappingTable, RAMMappingRow{})
	recorder.CreateTable(CircuitUsageTable, CircuitUsageRow{})
	recorder.CreateTable(MappingCostTable, MappingCostRow{})
	recorder.CreateTable(SharedPairTable, SharedPairRow{})
	recorder.CreateTable(ArchitectureTable, ArchitectureRow{})

	return h
}

// Func records mapping costs and merges.
func (h *RecorderHook) Func(ctx hooking.HookCtx) {
	switch ctx.Pos {
	case mapping.HookPosMapped:
		m := ctx.Item.(mapping.RamMapping)
		cost, _ := ctx.Detail.(float64)

		h.recorder.InsertData(MappingCostTable, MappingCostRow{
			CircuitID:    m.CircuitID,
			LogicalRAMID: m.LogicalRAMID,
			Kind:         m.Kind.String(),
			Cost:         cost,
		})
	case mapping.HookPosShared:
		p := ctx.Item.(mapping.SharedPair)

		h.recorder.InsertData(SharedPairTable, SharedPairRow{
			CircuitID:   p.First.CircuitID,
			Kind:        p.Kind.String(),
			GroupID:     p.First.GroupID,
			FirstRAMID:  p.First.LogicalRAMID,
			SecondRAMID: p.Second.LogicalRAMID,
		})
	}
}

// Record stores the final mappings, the circuit usage and the architecture
// of the summary, then flushes.
func (h *RecorderHook) Record(r *mapping.Result, s Summary) {
	h.recorder.InsertData(ArchitectureTable, newArchitectureRow(s.Arch))

	for _, m := range r.SortedMappings() {
		h.recorder.InsertData(RAMMappingTable, RAMMappingRow{
			CircuitID:    m.CircuitID,
			LogicalRAMID: m.LogicalRAMID,
			LogicalWidth: m.LogicalWidth,
			LogicalDepth: m.LogicalDepth,
			Kind:         m.Kind.String(),
			Mode:         m.Mode.String(),
			PhysWidth:    m.PhysWidth,
			PhysDepth:    m.PhysDepth,
			Series:       m.Series,
			Parallel:     m.Parallel,
			PhysBlocks:   m.PhysBlocks,
			ExtraLUTs:    m.ExtraLUTs,
			GroupID:      m.GroupID,
		})
	}

	for _, c := range s.Circuits {
		h.recorder.InsertData(CircuitUsageTable, CircuitUsageRow{
			CircuitID:    c.CircuitID,
			LogicBlocks:  c.Usage.LogicBlocks,
			ExtraLUTs:    c.Usage.ExtraLUTs,
			LUTRAMBlocks: c.Usage.LUTRAMBlocks,
			M8KBlocks:    c.Usage.M8KBlocks,
			M128KBlocks:  c.Usage.M128KBlocks,
			RegularLBs:   c.Area.RegularLBs,
			Tiles:        c.Area.Tiles,
			Area:         c.Area.Total,
		})
	}

	h.recorder.Flush()
}
