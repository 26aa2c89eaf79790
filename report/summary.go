package report

import (
	"fmt"
	"io"

	"github.com/sarchlab/rammap/area"
	"github.com/sarchlab/rammap/arch"
	"github.com/sarchlab/rammap/mapping"
)

// CircuitArea is the usage and the estimated chip of one circuit.
type CircuitArea struct {
	CircuitID int
	Usage     area.Tally
	Area      area.Breakdown
}

// Summary holds the area figures of a run.
type Summary struct {
	// Arch is the architecture the figures were estimated for.
	Arch arch.Architecture

	Circuits []CircuitArea

	// Chip is the estimate for one chip that holds every circuit.
	Chip area.Breakdown

	// GeometricMean is the geometric mean of the per-circuit chip areas.
	GeometricMean float64
}

// Summarize estimates the area of every circuit and of the whole design.
func Summarize(r *mapping.Result, a arch.Architecture) Summary {
	s := Summary{
		Arch: a,
		Chip: area.Estimate(r.Total, a),
	}

	areas := make([]float64, 0, len(r.Circuits))

	for _, cu := range r.Circuits {
		b := area.Estimate(cu.Tally, a)
		s.Circuits = append(s.Circuits, CircuitArea{
			CircuitID: cu.CircuitID,
			Usage:     cu.Tally,
			Area:      b,
		})
		areas = append(areas, b.Total)
	}

	s.GeometricMean = area.GeometricMean(areas)

	return s
}

// WriteCSV writes one row per circuit.
func WriteCSV(w io.Writer, s Summary) error {
	_, err := fmt.Fprintf(w, "Circuit,LUTRAM_Blocks_Used,8K_BRAMs_Used,"+
		"128K_BRAMs_Used,Regular_LBs_Used,Required_LB_Tiles_In_Chip,"+
		"Total_FPGA_Area\n")
	if err != nil {
		return err
	}

	for _, c := range s.Circuits {
		_, err := fmt.Fprintf(w, "%d,%d,%d,%d,%d,%d,%.3f\n",
			c.CircuitID,
			c.Usage.LUTRAMBlocks,
			c.Usage.M8KBlocks,
			c.Usage.M128KBlocks,
			c.Area.RegularLBs,
			c.Area.Tiles,
			c.Area.Total,
		)
		if err != nil {
			return err
		}
	}

	return nil
}
