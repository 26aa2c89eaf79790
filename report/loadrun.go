package report

import (
	"context"

	"github.com/pkg/errors"

	"github.com/sarchlab/rammap/area"
	"github.com/sarchlab/rammap/arch"
	"github.com/sarchlab/rammap/circuit"
	"github.com/sarchlab/rammap/datarecording"
	"github.com/sarchlab/rammap/mapping"
)

// LoadRun rebuilds the result and the architecture of a run that a
// RecorderHook recorded. The mappings come back ordered by circuit and RAM
// id rather than in mapping order.
func LoadRun(
	ctx context.Context,
	reader datarecording.DataReader,
) (*mapping.Result, arch.Architecture, error) {
	archRows, err := datarecording.QueryAll[ArchitectureRow](
		ctx, reader, ArchitectureTable, datarecording.QueryParams{})
	if err != nil {
		return nil, arch.Architecture{}, errors.Wrap(err, "load architecture")
	}

	if len(archRows) != 1 {
		return nil, arch.Architecture{}, errors.Errorf(
			"expected 1 architecture row, got %d", len(archRows))
	}

	r := &mapping.Result{}

	if err := loadMappings(ctx, reader, r); err != nil {
		return nil, arch.Architecture{}, err
	}

	if err := loadUsage(ctx, reader, r); err != nil {
		return nil, arch.Architecture{}, err
	}

	if err := loadSharedPairs(ctx, reader, r); err != nil {
		return nil, arch.Architecture{}, err
	}

	return r, archRows[0].Architecture(), nil
}

func loadMappings(
	ctx context.Context,
	reader datarecording.DataReader,
	r *mapping.Result,
) error {
	rows, err := datarecording.QueryAll[RAMMappingRow](
		ctx, reader, RAMMappingTable,
		datarecording.QueryParams{OrderBy: "CircuitID, LogicalRAMID"})
	if err != nil {
		return errors.Wrap(err, "load mappings")
	}

	for _, row := range rows {
		m, err := row.mapping()
		if err != nil {
			return errors.Wrapf(err, "circuit %d ram %d",
				row.CircuitID, row.LogicalRAMID)
		}

		r.Mappings = append(r.Mappings, m)
	}

	return nil
}

func (row RAMMappingRow) mapping() (mapping.RamMapping, error) {
	kind, ok := arch.ParseKind(row.Kind)
	if !ok {
		return mapping.RamMapping{}, errors.Errorf("unknown kind %q", row.Kind)
	}

	mode, ok := circuit.ParseAccessMode(row.Mode)
	if !ok {
		return mapping.RamMapping{}, errors.Errorf("unknown mode %q", row.Mode)
	}

	return mapping.RamMapping{
		CircuitID:    row.CircuitID,
		LogicalRAMID: row.LogicalRAMID,
		LogicalWidth: row.LogicalWidth,
		LogicalDepth: row.LogicalDepth,
		Kind:         kind,
		Mode:         mode,
		PhysWidth:    row.PhysWidth,
		PhysDepth:    row.PhysDepth,
		Series:       row.Series,
		Parallel:     row.Parallel,
		PhysBlocks:   row.PhysBlocks,
		ExtraLUTs:    row.ExtraLUTs,
		GroupID:      row.GroupID,
	}, nil
}

func loadUsage(
	ctx context.Context,
	reader datarecording.DataReader,
	r *mapping.Result,
) error {
	rows, err := datarecording.QueryAll[CircuitUsageRow](
		ctx, reader, CircuitUsageTable,
		datarecording.QueryParams{OrderBy: "CircuitID"})
	if err != nil {
		return errors.Wrap(err, "load circuit usage")
	}

	for _, row := range rows {
		t := area.Tally{
			LogicBlocks:  row.LogicBlocks,
			ExtraLUTs:    row.ExtraLUTs,
			LUTRAMBlocks: row.LUTRAMBlocks,
			M8KBlocks:    row.M8KBlocks,
			M128KBlocks:  row.M128KBlocks,
		}

		r.Circuits = append(r.Circuits, mapping.CircuitUsage{
			CircuitID: row.CircuitID,
			Tally:     t,
		})
		r.Total = r.Total.Plus(t)
	}

	return nil
}

func loadSharedPairs(
	ctx context.Context,
	reader datarecording.DataReader,
	r *mapping.Result,
) error {
	rows, err := datarecording.QueryAll[SharedPairRow](
		ctx, reader, SharedPairTable,
		datarecording.QueryParams{OrderBy: "rowid"})
	if err != nil {
		return errors.Wrap(err, "load shared pairs")
	}

	for _, row := range rows {
		kind, ok := arch.ParseKind(row.Kind)
		if !ok {
			return errors.Errorf("shared pair: unknown kind %q", row.Kind)
		}

		first, ok := r.Find(row.CircuitID, row.FirstRAMID)
		if !ok {
			return errors.Errorf("shared pair: no mapping for circuit %d ram %d",
				row.CircuitID, row.FirstRAMID)
		}

		second, ok := r.Find(row.CircuitID, row.SecondRAMID)
		if !ok {
			return errors.Errorf("shared pair: no mapping for circuit %d ram %d",
				row.CircuitID, row.SecondRAMID)
		}

		r.Shared = append(r.Shared, mapping.SharedPair{
			Kind:   kind,
			First:  first,
			Second: second,
		})
	}

	return nil
}
