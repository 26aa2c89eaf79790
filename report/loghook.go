package report

import (
	"io"
	"log"

	"github.com/sarchlab/rammap/hooking"
	"github.com/sarchlab/rammap/mapping"
)

// LogHook prints every mapping decision and merge.
type LogHook struct {
	logger *log.Logger
}

// NewLogHook creates a LogHook that writes to the logger. A nil logger
// discards everything.
func NewLogHook(logger *log.Logger) *LogHook {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	return &LogHook{logger: logger}
}

// Func writes the decision into the logger.
func (h *LogHook) Func(ctx hooking.HookCtx) {
	switch ctx.Pos {
	case mapping.HookPosMapped:
		m := ctx.Item.(mapping.RamMapping)
		h.logger.Printf("map c%d r%d %s %dx%d -> %s %dx%d S %d P %d, cost %.1f",
			m.CircuitID, m.LogicalRAMID, m.Mode,
			m.LogicalWidth, m.LogicalDepth,
			m.Kind, m.PhysWidth, m.PhysDepth,
			m.Series, m.Parallel, ctx.Detail)
	case mapping.HookPosShared:
		p := ctx.Item.(mapping.SharedPair)
		h.logger.Printf("share c%d r%d + r%d in one %s, group %d",
			p.First.CircuitID, p.First.LogicalRAMID, p.Second.LogicalRAMID,
			p.Kind, p.First.GroupID)
	}
}
