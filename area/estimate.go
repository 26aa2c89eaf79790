package area

import (
	"math"

	"github.com/sarchlab/rammap/arch"
)

// A Tally counts the resources that a circuit, or a whole design, needs.
type Tally struct {
	LogicBlocks  int
	ExtraLUTs    int
	LUTRAMBlocks int
	M8KBlocks    int
	M128KBlocks  int
}

// Blocks returns the number of physical blocks of the given kind.
func (t Tally) Blocks(k arch.Kind) int {
	switch k {
	case arch.KindLUTRAM:
		return t.LUTRAMBlocks
	case arch.KindM8K:
		return t.M8KBlocks
	case arch.KindM128K:
		return t.M128KBlocks
	default:
		return 0
	}
}

// AddBlocks adds n physical blocks of the given kind.
func (t *Tally) AddBlocks(k arch.Kind, n int) {
	switch k {
	case arch.KindLUTRAM:
		t.LUTRAMBlocks += n
	case arch.KindM8K:
		t.M8KBlocks += n
	case arch.KindM128K:
		t.M128KBlocks += n
	}
}

// Plus returns the sum of two tallies.
func (t Tally) Plus(o Tally) Tally {
	return Tally{
		LogicBlocks:  t.LogicBlocks + o.LogicBlocks,
		ExtraLUTs:    t.ExtraLUTs + o.ExtraLUTs,
		LUTRAMBlocks: t.LUTRAMBlocks + o.LUTRAMBlocks,
		M8KBlocks:    t.M8KBlocks + o.M8KBlocks,
		M128KBlocks:  t.M128KBlocks + o.M128KBlocks,
	}
}

// Breakdown is the area estimate of a chip sized to fit a tally.
type Breakdown struct {
	// RegularLBs is the number of logic blocks used as logic, including the
	// blocks that host the decode and multiplexing LUTs.
	RegularLBs int

	// UsedTiles is RegularLBs plus the logic blocks used as LUTRAM.
	UsedTiles int

	// Tiles is the number of logic-block tiles the chip needs so that it
	// also has enough block-RAM sites and LUTRAM-capable blocks.
	Tiles int

	M8KSites   int
	M128KSites int

	LogicArea    float64
	BlockRAMArea float64
	Total        float64
}

// Sites returns the number of macro sites of a block-RAM kind on the chip.
func (b Breakdown) Sites(k arch.Kind) int {
	switch k {
	case arch.KindM8K:
		return b.M8KSites
	case arch.KindM128K:
		return b.M128KSites
	default:
		return 0
	}
}

// Estimate sizes the smallest chip of the given architecture that fits the
// tally and returns its area. Block-RAM sites come with a fixed number of
// logic-block tiles each, so the tile count grows until every block fits a
// site.
func Estimate(t Tally, a arch.Architecture) Breakdown {
	b := Breakdown{
		RegularLBs: t.LogicBlocks + LogicBlocksForLUTs(t.ExtraLUTs),
	}
	b.UsedTiles = b.RegularLBs + t.LUTRAMBlocks
	b.Tiles = b.UsedTiles

	for _, k := range arch.BlockRAMKinds {
		bram := a.BlockRAM(k)
		blocks := t.Blocks(k)

		if bram.Enabled && blocks > 0 && bram.LBsPerSite > 0 {
			b.Tiles = max(b.Tiles, blocks*bram.LBsPerSite)
		}
	}

	if a.LUTRAMEnabled && a.LUTRAMFraction > 0 {
		needed := int(math.Ceil(float64(t.LUTRAMBlocks) / a.LUTRAMFraction))
		b.Tiles = max(b.Tiles, needed)
	}

	b.LogicArea = float64(b.Tiles) * LogicBlockArea

	for _, k := range arch.BlockRAMKinds {
		bram := a.BlockRAM(k)
		if !bram.Enabled || bram.LBsPerSite <= 0 {
			continue
		}

		sites := b.Tiles / bram.LBsPerSite
		if k == arch.KindM8K {
			b.M8KSites = sites
		} else {
			b.M128KSites = sites
		}

		b.BlockRAMArea += float64(sites) * MacroArea(bram.Bits, bram.MaxWidth)
	}

	b.Total = b.LogicArea + b.BlockRAMArea

	return b
}

// geometricScale keeps the running product of chip areas in range.
const geometricScale = 1.0e7

// GeometricMean returns the geometric mean of the areas, or 0 if there are
// none.
func GeometricMean(areas []float64) float64 {
	if len(areas) == 0 {
		return 0
	}

	product := 1.0
	for _, a := range areas {
		product *= a / geometricScale
	}

	return math.Pow(product, 1.0/float64(len(areas))) * geometricScale
}
