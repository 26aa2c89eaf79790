package mapping

import (
	"github.com/sarchlab/rammap/area"
	"github.com/sarchlab/rammap/arch"
	"github.com/sarchlab/rammap/circuit"
)

// Candidate is a legal realization and its cost.
type Candidate struct {
	Mapping RamMapping
	Cost    float64
}

type shape struct {
	width, depth int
}

// A logic block used as LUTRAM is either 64x10 or 32x20.
var lutramShapes = []shape{{width: 10, depth: 64}, {width: 20, depth: 32}}

// shapes lists the physical block shapes of the kind that fit the width
// limit, in enumeration order.
func shapes(cfg arch.PhysConfig, widthLimit int) []shape {
	if cfg.Kind == arch.KindLUTRAM {
		var out []shape

		for _, s := range lutramShapes {
			if s.width <= widthLimit {
				out = append(out, s)
			}
		}

		return out
	}

	var out []shape

	for w := 1; w <= widthLimit; w *= 2 {
		if cfg.Bits%w != 0 {
			continue
		}

		out = append(out, shape{width: w, depth: cfg.Bits / w})
	}

	return out
}

// Candidates lists every legal realization of the memory on the kind, in
// enumeration order.
func Candidates(
	circuitID int,
	mem circuit.LogicalMemory,
	groupID int,
	cfg arch.PhysConfig,
) []Candidate {
	tdp := mem.Mode == circuit.ModeTrueDualPort
	if tdp && !cfg.SupportsTrueDualPort() {
		return nil
	}

	widthLimit := cfg.WidthLimit(tdp)
	if widthLimit <= 0 {
		return nil
	}

	var candidates []Candidate

	for _, s := range shapes(cfg, widthLimit) {
		if s.depth <= 0 {
			continue
		}

		parallel := ceilDiv(mem.Width, s.width)
		series := ceilDiv(mem.Depth, s.depth)

		if parallel <= 0 || series <= 0 || series > MaxSeries {
			continue
		}

		extraLUTs := area.DecodeOverhead(series) +
			area.MuxOverhead(series, mem.Width)
		if series > 1 && tdp {
			// Each port needs its own decoder and output mux.
			extraLUTs *= 2
		}

		m := RamMapping{
			CircuitID:    circuitID,
			LogicalRAMID: mem.ID,
			LogicalWidth: mem.Width,
			LogicalDepth: mem.Depth,
			Kind:         cfg.Kind,
			Mode:         mem.Mode,
			PhysWidth:    s.width,
			PhysDepth:    s.depth,
			Series:       series,
			Parallel:     parallel,
			PhysBlocks:   series * parallel,
			ExtraLUTs:    extraLUTs,
			GroupID:      groupID,
		}

		candidates = append(candidates, Candidate{
			Mapping: m,
			Cost:    area.MappingCost(m.Footprint(), cfg),
		})
	}

	return candidates
}

// BestForKind returns the cheapest realization of the memory on the kind.
// On equal cost the first candidate in enumeration order wins. It returns
// false if the kind cannot realize the memory.
func BestForKind(
	circuitID int,
	mem circuit.LogicalMemory,
	groupID int,
	cfg arch.PhysConfig,
) (Candidate, bool) {
	var (
		best  Candidate
		found bool
	)

	for _, c := range Candidates(circuitID, mem, groupID, cfg) {
		if !found || c.Cost < best.Cost {
			best = c
			found = true
		}
	}

	return best, found
}

func ceilDiv(a, b int) int {
	q := a / b
	if a%b != 0 {
		q++
	}

	return q
}
