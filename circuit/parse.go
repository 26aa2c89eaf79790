package circuit

import (
	"bufio"
	"context"
	"io"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Number of header lines at the top of each input file.
const (
	logicBlockHeaderLines = 1
	logicalRAMHeaderLines = 2
)

// RAMRecord is one line of the logical-RAM file.
type RAMRecord struct {
	CircuitID int
	Memory    LogicalMemory
}

// LogicBlockRecord is one line of the logic-block file.
type LogicBlockRecord struct {
	CircuitID   int
	LogicBlocks int
}

// A Parser reads the benchmark input files. Malformed lines are skipped and
// reported to the logger.
type Parser struct {
	logger *log.Logger
}

// NewParser creates a parser that reports skipped lines to logger. A nil
// logger discards the reports.
func NewParser(logger *log.Logger) *Parser {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	return &Parser{logger: logger}
}

// ReadLogicBlocks reads the logic-block file, whose lines have the form
// "<circuit_id> <logic_blocks>" after one header line.
func (p *Parser) ReadLogicBlocks(r io.Reader) ([]LogicBlockRecord, error) {
	var records []LogicBlockRecord

	err := p.scan(r, logicBlockHeaderLines, func(lineNo int, fields []string) {
		if len(fields) < 2 {
			p.logger.Printf("logic blocks line %d: expected 2 fields, got %d",
				lineNo, len(fields))
			return
		}

		id, err := strconv.Atoi(fields[0])
		if err != nil {
			p.logger.Printf("logic blocks line %d: bad circuit id: %s",
				lineNo, fields[0])
			return
		}

		n, err := strconv.Atoi(fields[1])
		if err != nil {
			p.logger.Printf("logic blocks line %d: bad logic block count: %s",
				lineNo, fields[1])
			return
		}

		records = append(records, LogicBlockRecord{
			CircuitID:   id,
			LogicBlocks: n,
		})
	})
	if err != nil {
		return nil, errors.Wrap(err, "read logic blocks")
	}

	return records, nil
}

// ReadLogicalRAMs reads the logical-RAM file, whose lines have the form
// "<circuit_id> <ram_id> <mode> <depth> <width>" after two header lines.
func (p *Parser) ReadLogicalRAMs(r io.Reader) ([]RAMRecord, error) {
	var records []RAMRecord

	err := p.scan(r, logicalRAMHeaderLines, func(lineNo int, fields []string) {
		if len(fields) < 5 {
			p.logger.Printf("logical RAMs line %d: expected 5 fields, got %d",
				lineNo, len(fields))
			return
		}

		rec, err := parseRAMRecord(fields)
		if err != nil {
			p.logger.Printf("logical RAMs line %d: %v", lineNo, err)
			return
		}

		records = append(records, rec)
	})
	if err != nil {
		return nil, errors.Wrap(err, "read logical RAMs")
	}

	return records, nil
}

func parseRAMRecord(fields []string) (RAMRecord, error) {
	var rec RAMRecord
	var err error

	rec.CircuitID, err = strconv.Atoi(fields[0])
	if err != nil {
		return rec, errors.Errorf("bad circuit id: %s", fields[0])
	}

	rec.Memory.ID, err = strconv.Atoi(fields[1])
	if err != nil {
		return rec, errors.Errorf("bad ram id: %s", fields[1])
	}

	mode, ok := ParseAccessMode(fields[2])
	if !ok {
		return rec, errors.Errorf("unknown RAM mode: %s", fields[2])
	}
	rec.Memory.Mode = mode

	rec.Memory.Depth, err = strconv.Atoi(fields[3])
	if err != nil {
		return rec, errors.Errorf("bad depth: %s", fields[3])
	}

	rec.Memory.Width, err = strconv.Atoi(fields[4])
	if err != nil {
		return rec, errors.Errorf("bad width: %s", fields[4])
	}

	return rec, nil
}

// scan calls fn with the 1-based line number and the fields of every
// non-empty line after the header.
func (p *Parser) scan(
	r io.Reader,
	headerLines int,
	fn func(lineNo int, fields []string),
) error {
	scanner := bufio.NewScanner(r)

	for lineIdx := 0; scanner.Scan(); lineIdx++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || lineIdx < headerLines {
			continue
		}

		fn(lineIdx+1, strings.Fields(line))
	}

	return scanner.Err()
}

// Assemble builds the circuits from the records of both files. Memories keep
// the order of the RAM file. A RAM that names a circuit missing from the
// logic-block file creates that circuit with no logic blocks. When the
// logic-block file lists a circuit twice, the last count wins. The circuits
// are sorted by id.
func Assemble(lbs []LogicBlockRecord, rams []RAMRecord) []Circuit {
	byID := make(map[int]*Circuit)

	for _, lb := range lbs {
		c, ok := byID[lb.CircuitID]
		if !ok {
			c = &Circuit{ID: lb.CircuitID}
			byID[lb.CircuitID] = c
		}

		c.LogicBlocks = lb.LogicBlocks
	}

	for _, rec := range rams {
		c, ok := byID[rec.CircuitID]
		if !ok {
			c = &Circuit{ID: rec.CircuitID}
			byID[rec.CircuitID] = c
		}

		c.Memories = append(c.Memories, rec.Memory)
	}

	circuits := make([]Circuit, 0, len(byID))
	for _, c := range byID {
		circuits = append(circuits, *c)
	}

	sort.Slice(circuits, func(i, j int) bool {
		return circuits[i].ID < circuits[j].ID
	})

	return circuits
}

// Load reads both input files concurrently and assembles the circuits.
func (p *Parser) Load(
	ctx context.Context,
	logicBlockPath, logicalRAMPath string,
) ([]Circuit, error) {
	var (
		lbs  []LogicBlockRecord
		rams []RAMRecord
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		lbs, err = readFile(gctx, logicBlockPath, p.ReadLogicBlocks)

		return err
	})

	g.Go(func() error {
		var err error
		rams, err = readFile(gctx, logicalRAMPath, p.ReadLogicalRAMs)

		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return Assemble(lbs, rams), nil
}

func readFile[T any](
	ctx context.Context,
	path string,
	read func(io.Reader) ([]T, error),
) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := read(f)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}

	return records, nil
}
