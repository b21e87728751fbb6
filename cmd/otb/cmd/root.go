package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceBoards/pkg/boards"
	"github.com/OpenTraceLab/OpenTraceBoards/pkg/platform"
)

var (
	// Global flags
	verbose bool

	// Platform selection, shared by the board subcommands
	toolchainName  string
	programmerName string
	flashPart      string
)

var rootCmd = &cobra.Command{
	Use:   "otb",
	Short: "OpenTraceBoards - Numato FPGA board descriptions and programming",
	Long: `OpenTraceBoards (otb) describes the Numato Mimas A7 Mini and Narvi FPGA
boards: pin tables, Vivado constraints and the commands used to program them.

Examples:
  otb list                                      # Supported boards
  otb info narvi                                # Device, clock, flash, programmer
  otb xdc mimas_a7_mini > mimas.xdc             # Vivado constraints
  otb check mimas_a7_mini --xdc mimas.xdc       # Compare a constraint file
  otb program narvi --bitstream top.bit --dry-run
  otb ballmap mimas_a7_mini --svg balls.svg     # Ball map as SVG`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func logf(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}

func addPlatformFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&toolchainName, "toolchain", string(platform.ToolchainVivado), "toolchain (vivado, symbiflow)")
	cmd.Flags().StringVar(&programmerName, "programmer", "openocd", "programmer (openocd, xc3sprog, vivado)")
	cmd.Flags().StringVar(&flashPart, "flash-part", "", "override the Vivado cfgmem flash part")
}

func openBoard(name string) (*platform.Platform, error) {
	opts := []platform.Option{
		platform.WithToolchain(toolchainName),
		platform.WithProgrammer(programmerName),
	}
	if flashPart != "" {
		opts = append(opts, platform.WithFlashPart(flashPart))
	}
	p, err := boards.New(name, opts...)
	if err != nil {
		return nil, err
	}
	logf("board %s: device %s, toolchain %s, programmer %s", p.Name, p.Device, p.Toolchain, p.Programmer)
	return p, nil
}
