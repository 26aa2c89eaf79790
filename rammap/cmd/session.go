package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/sarchlab/rammap/circuit"
	"github.com/sarchlab/rammap/datarecording"
	"github.com/sarchlab/rammap/hooking"
	"github.com/sarchlab/rammap/mapping"
	"github.com/sarchlab/rammap/report"
)

// The files written into the output directory.
const (
	resultsFileName = "results.csv"
	mappingFileName = "ram_mapped.txt"
)

// A session is one mapping run driven from the command line.
type session struct {
	cfg    runConfig
	stderr io.Writer
	start  time.Time

	circuits []circuit.Circuit
	hooks    []hooking.Hook

	recorder     datarecording.DataRecorder
	recorderHook *report.RecorderHook
	execRecorder *datarecording.ExecRecorder
}

func newSession(cfg runConfig, stderr io.Writer) *session {
	s := &session{
		cfg:    cfg,
		stderr: stderr,
		start:  time.Now(),
	}

	if cfg.Verbose {
		s.addHook(report.NewLogHook(log.New(stderr, "", 0)))
	}

	if cfg.Record {
		s.recorder = datarecording.New(cfg.DBName)
		s.execRecorder = datarecording.NewExecRecorder(s.recorder)
		s.execRecorder.Start()
		s.recorderHook = report.NewRecorderHook(s.recorder)
		s.addHook(s.recorderHook)
	}

	return s
}

func (s *session) addHook(h hooking.Hook) {
	s.hooks = append(s.hooks, h)
}

func (s *session) load(ctx context.Context) error {
	parser := circuit.NewParser(log.New(s.stderr, "", 0))

	circuits, err := parser.Load(ctx, s.cfg.LogicBlockFile, s.cfg.LogicalRAMFile)
	if err != nil {
		return err
	}

	s.circuits = circuits

	return nil
}

func (s *session) numMemories() int {
	n := 0
	for _, c := range s.circuits {
		n += len(c.Memories)
	}

	return n
}

func (s *session) assign() (*mapping.Result, report.Summary, error) {
	b := mapping.MakeBuilder().WithArchitecture(s.cfg.Arch)
	for _, h := range s.hooks {
		b = b.WithHook(h)
	}

	r, err := b.Build().Assign(s.circuits)
	if err != nil {
		return nil, report.Summary{}, err
	}

	sum := report.Summarize(r, s.cfg.Arch)

	if s.recorderHook != nil {
		s.recorderHook.Record(r, sum)
		s.execRecorder.Add("Circuits", strconv.Itoa(len(s.circuits)))
		s.execRecorder.Add("Chip Area", fmt.Sprintf("%.3f", sum.Chip.Total))
	}

	return r, sum, nil
}

func (s *session) writeOutputs(r *mapping.Result, sum report.Summary) error {
	dir := s.cfg.OutputDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "create output directory %s", dir)
	}

	err := writeFile(filepath.Join(dir, resultsFileName), func(w io.Writer) error {
		return report.WriteCSV(w, sum)
	})
	if err != nil {
		return err
	}

	return writeFile(filepath.Join(dir, mappingFileName), func(w io.Writer) error {
		return report.WriteMappings(w, r)
	})
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}

	if err := write(f); err != nil {
		f.Close()
		return errors.Wrapf(err, "write %s", path)
	}

	return errors.Wrapf(f.Close(), "close %s", path)
}

func (s *session) printSummary(sum report.Summary) {
	fmt.Fprintf(s.stderr, "Program runtime: %s\n",
		time.Since(s.start).Round(time.Microsecond))
	summaryColor.Fprintf(s.stderr, "Total FPGA area = %.5e\n", sum.Chip.Total)
	summaryColor.Fprintf(s.stderr, "Geometric mean FPGA area = %.5e\n",
		sum.GeometricMean)
}

func (s *session) close() error {
	if s.recorder == nil {
		return nil
	}

	s.execRecorder.End()

	return s.recorder.Close()
}
