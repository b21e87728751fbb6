package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceBoards/pkg/xdc"
)

var xdcOutput string

var xdcCmd = &cobra.Command{
	Use:   "xdc <board>",
	Short: "Write the Vivado constraints of a board",
	Args:  cobra.ExactArgs(1),
	RunE:  runXDC,
}

func init() {
	rootCmd.AddCommand(xdcCmd)
	addPlatformFlags(xdcCmd)
	xdcCmd.Flags().StringVarP(&xdcOutput, "output", "o", "", "write to file instead of stdout")
}

func runXDC(cmd *cobra.Command, args []string) error {
	p, err := openBoard(args[0])
	if err != nil {
		return err
	}

	if xdcOutput == "" {
		if err := xdc.Write(os.Stdout, p); err != nil {
			return err
		}
		logf("wrote %d constraints", len(p.Constraints()))
		return nil
	}

	f, err := os.Create(xdcOutput)
	if err != nil {
		return fmt.Errorf("xdc: %w", err)
	}
	if err := xdc.Write(f, p); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("xdc: %w", err)
	}
	logf("wrote %d constraints", len(p.Constraints()))
	return nil
}
