package cmd

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"fortio.org/safecast"
	"github.com/pkg/browser"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/sarchlab/rammap/arch"
	"github.com/sarchlab/rammap/datarecording"
	"github.com/sarchlab/rammap/mapping"
	"github.com/sarchlab/rammap/monitoring"
	"github.com/sarchlab/rammap/report"
)

type serveOptions struct {
	port   int
	open   bool
	fromDB string
}

func newServeCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "serve [logic_block_file logical_ram_file]",
		Short: "Map every logical RAM and serve the result over HTTP.",
		Long: `serve starts the monitoring server, maps the logical RAMs, ` +
			`and keeps serving the result until interrupted. With --from-db ` +
			`it serves a run recorded by "run --db" instead.`,
		Args: inputFilesArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, args)
			if err != nil {
				return err
			}

			var opts serveOptions
			opts.port, _ = cmd.Flags().GetInt("port")
			opts.open, _ = cmd.Flags().GetBool("open")
			opts.fromDB, _ = cmd.Flags().GetString("from-db")

			if opts.fromDB != "" && cfg.Record {
				return errors.New("--from-db cannot be combined with --db")
			}

			return serve(cmd, cfg, opts)
		},
	}

	addArchFlags(c)
	addRunFlags(c)
	c.Flags().Int("port", 0,
		"port of the monitoring server; values below 1000 pick a random port")
	c.Flags().Bool("open", false, "open the summary in a browser")
	c.Flags().String("from-db", "",
		"serve the run recorded in <from-db>.sqlite3 instead of mapping")

	return c
}

func serve(cmd *cobra.Command, cfg runConfig, opts serveOptions) (err error) {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	mon := monitoring.NewMonitor().WithPortNumber(opts.port)

	url, err := mon.StartServer()
	if err != nil {
		return err
	}

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(
			context.Background(), 5*time.Second)
		defer cancel()

		if shutdownErr := mon.Shutdown(shutdownCtx); err == nil {
			err = shutdownErr
		}
	}()

	s := newSession(cfg, cmd.ErrOrStderr())
	defer func() {
		if closeErr := s.close(); err == nil {
			err = closeErr
		}
	}()

	var (
		r *mapping.Result
		a arch.Architecture
	)

	if opts.fromDB != "" {
		r, a, err = loadRecordedRun(ctx, opts.fromDB)
	} else {
		r, err = mapWithProgress(ctx, s, mon)
		a = cfg.Arch
	}

	if err != nil {
		return err
	}

	mon.RegisterResult(r, a)
	s.printSummary(report.Summarize(r, a))

	if opts.open {
		if err := browser.OpenURL(url + "/api/summary"); err != nil {
			printWarning(cmd.ErrOrStderr(), err.Error())
		}
	}

	<-ctx.Done()

	return nil
}

// mapWithProgress maps the input files of the session and reports every
// mapped memory on a progress bar of the monitor.
func mapWithProgress(
	ctx context.Context,
	s *session,
	mon *monitoring.Monitor,
) (*mapping.Result, error) {
	if err := s.load(ctx); err != nil {
		return nil, err
	}

	total, err := safecast.Conv[uint64](s.numMemories())
	if err != nil {
		return nil, err
	}

	bar := mon.CreateProgressBar("Mapping", total)
	s.addHook(bar)

	r, _, err := s.assign()

	return r, err
}

// loadRecordedRun reads a run from a database written by "run --db". The
// ".sqlite3" extension may be left out.
func loadRecordedRun(
	ctx context.Context,
	name string,
) (*mapping.Result, arch.Architecture, error) {
	filename := name
	if filepath.Ext(filename) != ".sqlite3" {
		filename += ".sqlite3"
	}

	reader, err := datarecording.NewReader(filename)
	if err != nil {
		return nil, arch.Architecture{}, err
	}
	defer reader.Close()

	r, a, err := report.LoadRun(ctx, reader)
	if err != nil {
		return nil, arch.Architecture{}, errors.Wrap(err, filename)
	}

	return r, a, nil
}
