// Package cmd provides the command-line interface of rammap.
package cmd

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
	"golang.org/x/term"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow)
	summaryColor = color.New(color.FgCyan)
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "rammap",
		Short: "Map logical RAMs onto the memory resources of an FPGA.",
		Long: `rammap chooses how every logical memory of a set of benchmark ` +
			`circuits is built from LUTRAM, M8K and M128K blocks, merges ` +
			`half-full memories into shared dual-port blocks, and estimates ` +
			`the area of the resulting chips.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return loadEnv(".env")
		},
	}

	root.AddCommand(newRunCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newVersionCmd())

	return root
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		color.NoColor = true
	}

	err := rootCmd.ExecuteContext(context.Background())
	if err != nil {
		printError(os.Stderr, err)
		atexit.Exit(1)
	}

	atexit.Exit(0)
}

// loadEnv reads variables from a dotenv file. Variables that are already set
// win. A missing file is not an error.
func loadEnv(path string) error {
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errors.Wrapf(err, "loading %s", path)
	}

	return nil
}

func printError(w io.Writer, err error) {
	errorColor.Fprint(w, "Error: ")
	fmt.Fprintln(w, err)
}

func printWarning(w io.Writer, msg string) {
	warningColor.Fprintf(w, "Warning: %s\n", msg)
}
