// Package report writes the results of a mapping run: the mapping file, the
// per-circuit CSV, database records, and log lines.
package report

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/sarchlab/rammap/arch"
	"github.com/sarchlab/rammap/circuit"
	"github.com/sarchlab/rammap/mapping"
)

// WriteMappings writes one line per mapping, ordered by circuit and logical
// RAM id.
func WriteMappings(w io.Writer, r *mapping.Result) error {
	bw := bufio.NewWriter(w)

	for _, m := range r.SortedMappings() {
		_, err := fmt.Fprintf(bw,
			"%d %d %d LW %d LD %d ID %d S %d P %d Type %d Mode %s W %d D %d\n",
			m.CircuitID,
			m.LogicalRAMID,
			m.ExtraLUTs,
			m.LogicalWidth,
			m.LogicalDepth,
			m.GroupID,
			m.Series,
			m.Parallel,
			m.Kind.TypeID(),
			m.Mode,
			m.PhysWidth,
			m.PhysDepth,
		)
		if err != nil {
			return err
		}
	}

	return bw.Flush()
}

const mappingFields = 21

// ReadMappings parses the output of WriteMappings. Blank lines are skipped.
func ReadMappings(r io.Reader) ([]mapping.RamMapping, error) {
	var mappings []mapping.RamMapping

	scanner := bufio.NewScanner(r)
	lineNum := 0

	for scanner.Scan() {
		lineNum++

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		m, err := parseMapping(strings.Fields(line))
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNum)
		}

		mappings = append(mappings, m)
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading mappings")
	}

	return mappings, nil
}

func parseMapping(fields []string) (mapping.RamMapping, error) {
	if len(fields) != mappingFields {
		return mapping.RamMapping{}, errors.Errorf(
			"expected %d fields, got %d", mappingFields, len(fields))
	}

	labels := map[int]string{
		3: "LW", 5: "LD", 7: "ID", 9: "S", 11: "P",
		13: "Type", 15: "Mode", 17: "W", 19: "D",
	}
	for i, label := range labels {
		if fields[i] != label {
			return mapping.RamMapping{}, errors.Errorf(
				"expected %q at field %d, got %q", label, i, fields[i])
		}
	}

	ints := make(map[int]int)
	for _, i := range []int{0, 1, 2, 4, 6, 8, 10, 12, 14, 18, 20} {
		v, err := strconv.Atoi(fields[i])
		if err != nil {
			return mapping.RamMapping{}, errors.Wrapf(err, "field %d", i)
		}

		ints[i] = v
	}

	kind, ok := arch.KindFromTypeID(ints[14])
	if !ok {
		return mapping.RamMapping{}, errors.Errorf("unknown type %d", ints[14])
	}

	mode, ok := circuit.ParseAccessMode(fields[16])
	if !ok {
		return mapping.RamMapping{}, errors.Errorf("unknown mode %q", fields[16])
	}

	return mapping.RamMapping{
		CircuitID:    ints[0],
		LogicalRAMID: ints[1],
		ExtraLUTs:    ints[2],
		LogicalWidth: ints[4],
		LogicalDepth: ints[6],
		GroupID:      ints[8],
		Series:       ints[10],
		Parallel:     ints[12],
		PhysBlocks:   ints[10] * ints[12],
		Kind:         kind,
		Mode:         mode,
		PhysWidth:    ints[18],
		PhysDepth:    ints[20],
	}, nil
}
