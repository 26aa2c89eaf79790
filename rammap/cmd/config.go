package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sarchlab/rammap/arch"
)

// The environment variables read by the run commands. They can also be set
// in a .env file.
const (
	envLogicBlocks = "RAMMAP_LOGIC_BLOCKS"
	envLogicalRAMs = "RAMMAP_LOGICAL_RAMS"
	envArch        = "RAMMAP_ARCH"
	envOutputDir   = "RAMMAP_OUTPUT_DIR"
)

const (
	defaultLogicBlockFile = "logic_block_count.txt"
	defaultLogicalRAMFile = "logical_rams.txt"
)

type runConfig struct {
	LogicBlockFile string
	LogicalRAMFile string
	OutputDir      string
	Arch           arch.Architecture
	Verbose        bool

	// Record is set when the run is recorded into the database DBName.
	Record bool
	DBName string
}

func addArchFlags(cmd *cobra.Command) {
	f := cmd.Flags()

	f.String("arch", "", "architecture TOML file (default $"+envArch+")")
	f.Bool("lutram", true, "enable LUTRAM")
	f.Float64("lutram-fraction", 0.5,
		"fraction of logic blocks that can act as LUTRAM")
	f.Bool("m8k", true, "enable M8K block RAMs")
	f.Int("m8k-bits", 8192, "capacity of an M8K block in bits")
	f.Int("m8k-lbs", 10, "logic blocks per M8K site")
	f.Int("m8k-max-width", 32, "widest M8K port")
	f.Bool("m128k", true, "enable M128K block RAMs")
	f.Int("m128k-bits", 131072, "capacity of an M128K block in bits")
	f.Int("m128k-lbs", 300, "logic blocks per M128K site")
	f.Int("m128k-max-width", 128, "widest M128K port")
	f.String("params", "",
		"the ten classic architecture values: "+arch.ParamsUsage)
}

func addRunFlags(cmd *cobra.Command) {
	f := cmd.Flags()

	f.StringP("output-dir", "o", "",
		"directory of the output files (default $"+envOutputDir+" or .)")
	f.BoolP("verbose", "v", false, "log every mapping decision")
	f.String("db", "",
		"record the run into <db>.sqlite3; an empty name picks one")
}

func inputFilesArgs(_ *cobra.Command, args []string) error {
	if len(args) != 0 && len(args) != 2 {
		return fmt.Errorf(
			"expected no arguments or <logic_block_file> <logical_ram_file>, "+
				"got %d arguments", len(args))
	}

	return nil
}

func resolveConfig(cmd *cobra.Command, args []string) (runConfig, error) {
	cfg := runConfig{
		LogicBlockFile: envOr(envLogicBlocks, defaultLogicBlockFile),
		LogicalRAMFile: envOr(envLogicalRAMs, defaultLogicalRAMFile),
	}

	if len(args) == 2 {
		cfg.LogicBlockFile = args[0]
		cfg.LogicalRAMFile = args[1]
	}

	a, err := resolveArch(cmd)
	if err != nil {
		return runConfig{}, err
	}

	cfg.Arch = a

	f := cmd.Flags()
	if f.Lookup("output-dir") == nil {
		return cfg, nil
	}

	cfg.OutputDir, _ = f.GetString("output-dir")
	if cfg.OutputDir == "" {
		cfg.OutputDir = envOr(envOutputDir, ".")
	}

	cfg.Verbose, _ = f.GetBool("verbose")
	cfg.Record = f.Changed("db")
	cfg.DBName, _ = f.GetString("db")
	cfg.DBName = strings.TrimSpace(cfg.DBName)

	return cfg, nil
}

// resolveArch layers the built-in defaults, the architecture file, the
// architecture flags, and the classic parameters, in that order.
func resolveArch(cmd *cobra.Command) (arch.Architecture, error) {
	f := cmd.Flags()
	a := arch.MakeBuilder().Build()

	path, _ := f.GetString("arch")
	if path == "" {
		path = os.Getenv(envArch)
	}

	if path != "" {
		var err error

		a, err = arch.LoadFile(path, a)
		if err != nil {
			return arch.Architecture{}, err
		}
	}

	b := arch.MakeBuilderFrom(a)

	if f.Changed("lutram") {
		v, _ := f.GetBool("lutram")
		b = b.WithLUTRAM(v)
	}

	if f.Changed("lutram-fraction") {
		v, _ := f.GetFloat64("lutram-fraction")
		b = b.WithLUTRAMFraction(v)
	}

	b = applyBlockRAMFlags(cmd, b, "m8k",
		arch.Builder.WithM8K,
		arch.Builder.WithM8KBits,
		arch.Builder.WithM8KLBsPerSite,
		arch.Builder.WithM8KMaxWidth)
	b = applyBlockRAMFlags(cmd, b, "m128k",
		arch.Builder.WithM128K,
		arch.Builder.WithM128KBits,
		arch.Builder.WithM128KLBsPerSite,
		arch.Builder.WithM128KMaxWidth)

	a = b.Build()

	if f.Changed("params") {
		params, _ := f.GetString("params")

		var err error

		a, err = arch.ApplyParams(a, splitParams(params),
			func(msg string) { printWarning(cmd.ErrOrStderr(), msg) })
		if err != nil {
			return arch.Architecture{}, err
		}
	}

	if err := a.Validate(); err != nil {
		return arch.Architecture{}, err
	}

	return a, nil
}

func applyBlockRAMFlags(
	cmd *cobra.Command,
	b arch.Builder,
	prefix string,
	withEnabled func(arch.Builder, bool) arch.Builder,
	withBits, withLBs, withMaxWidth func(arch.Builder, int) arch.Builder,
) arch.Builder {
	f := cmd.Flags()

	if f.Changed(prefix) {
		v, _ := f.GetBool(prefix)
		b = withEnabled(b, v)
	}

	ints := []struct {
		suffix string
		with   func(arch.Builder, int) arch.Builder
	}{
		{"-bits", withBits},
		{"-lbs", withLBs},
		{"-max-width", withMaxWidth},
	}

	for _, i := range ints {
		if f.Changed(prefix + i.suffix) {
			v, _ := f.GetInt(prefix + i.suffix)
			b = i.with(b, v)
		}
	}

	return b
}

// splitParams accepts the values separated by spaces or commas.
func splitParams(s string) []string {
	return strings.Fields(strings.ReplaceAll(s, ",", " "))
}

func envOr(name, def string) string {
	if v, ok := os.LookupEnv(name); ok && v != "" {
		return v
	}

	return def
}
