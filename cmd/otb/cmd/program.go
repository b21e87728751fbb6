package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceBoards/pkg/programmer"
)

var (
	programBitstream string
	programFlash     bool
	programAddress   uint32
	programDryRun    bool
)

var programCmd = &cobra.Command{
	Use:   "program <board>",
	Short: "Load or flash a bitstream",
	Long: `Load a bitstream into the FPGA over JTAG, or write an image to the
configuration flash with --flash. The external tool is chosen with
--programmer; --dry-run prints the commands instead of running them.

Examples:
  otb program narvi --bitstream build/top.bit
  otb program mimas_a7_mini --flash --bitstream build/top.bin --dry-run
  otb program mimas_a7_mini --programmer vivado --flash --bitstream top.bin \
      --flash-part s25fl256sxxxxxx0-spi-x1_x2_x4`,
	Args: cobra.ExactArgs(1),
	RunE: runProgram,
}

func init() {
	rootCmd.AddCommand(programCmd)
	addPlatformFlags(programCmd)
	programCmd.Flags().StringVar(&programBitstream, "bitstream", "", "bitstream (.bit) or flash image (.bin)")
	programCmd.Flags().BoolVar(&programFlash, "flash", false, "write the configuration flash instead of loading the FPGA")
	programCmd.Flags().Uint32Var(&programAddress, "address", 0, "flash address")
	programCmd.Flags().BoolVar(&programDryRun, "dry-run", false, "print the commands without running them")
	programCmd.MarkFlagRequired("bitstream")
}

func runProgram(cmd *cobra.Command, args []string) error {
	p, err := openBoard(args[0])
	if err != nil {
		return err
	}
	prog, err := p.CreateProgrammer()
	if err != nil {
		return err
	}

	var plan programmer.Plan
	if programFlash {
		plan, err = prog.Flash(programAddress, programBitstream)
	} else {
		plan, err = prog.LoadBitstream(programBitstream)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", prog.Name(), err)
	}
	logf("%s: %d step(s)", prog.Name(), len(plan.Steps))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runner := &programmer.Runner{Stdout: os.Stdout, Stderr: os.Stderr, DryRun: programDryRun}
	return runner.Run(ctx, plan)
}
