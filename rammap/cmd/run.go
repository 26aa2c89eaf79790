package cmd

import (
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "run [logic_block_file logical_ram_file]",
		Short: "Map every logical RAM and write the reports.",
		Long: `run reads the circuits, maps their logical RAMs, and writes ` +
			resultsFileName + ` and ` + mappingFileName + ` into the output ` +
			`directory. Without arguments the input files come from $` +
			envLogicBlocks + ` and $` + envLogicalRAMs + `, or default to ` +
			defaultLogicBlockFile + ` and ` + defaultLogicalRAMFile + `.`,
		Args: inputFilesArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, args)
			if err != nil {
				return err
			}

			return runMapping(cmd, cfg)
		},
	}

	addArchFlags(c)
	addRunFlags(c)

	return c
}

func runMapping(cmd *cobra.Command, cfg runConfig) (err error) {
	s := newSession(cfg, cmd.ErrOrStderr())
	defer func() {
		if closeErr := s.close(); err == nil {
			err = closeErr
		}
	}()

	if err := s.load(cmd.Context()); err != nil {
		return err
	}

	r, sum, err := s.assign()
	if err != nil {
		return err
	}

	if err := s.writeOutputs(r, sum); err != nil {
		return err
	}

	s.printSummary(sum)

	return nil
}
