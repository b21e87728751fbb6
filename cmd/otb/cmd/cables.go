package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/OpenTraceLab/OpenTraceBoards/pkg/cable"
)

var cablesD2XX bool

var cablesCmd = &cobra.Command{
	Use:   "cables",
	Short: "List connected JTAG cables",
	Long: `Scan USB for known JTAG cables (the FT2232H on the Numato boards, Digilent
and Xilinx cables) and suggest the --programmer able to drive each one.
With --d2xx, FTDI cables are also listed through the vendor D2XX driver.`,
	Args: cobra.NoArgs,
	RunE: runCables,
}

func init() {
	rootCmd.AddCommand(cablesCmd)
	cablesCmd.Flags().BoolVar(&cablesD2XX, "d2xx", false, "also query the FTDI D2XX driver")
}

func runCables(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var (
		grp      errgroup.Group
		usbInfos []cable.Info
		ftdInfos []cable.Info
	)
	grp.Go(func() error {
		infos, err := cable.Discover(ctx)
		if err != nil {
			return fmt.Errorf("discover cables: %w", err)
		}
		usbInfos = infos
		return nil
	})
	if cablesD2XX {
		grp.Go(func() error {
			if !cable.D2XXAvailable() {
				logf("d2xx driver not available")
				return nil
			}
			infos, err := cable.DiscoverD2XX()
			if err != nil {
				// Cables already claimed by another tool are not fatal.
				logf("%v", err)
			}
			ftdInfos = infos
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return err
	}

	infos := append(usbInfos, ftdInfos...)
	if len(infos) == 0 {
		fmt.Println("No cables found.")
		return nil
	}

	fmt.Println("Detected JTAG cables:")
	for _, info := range infos {
		suggestion := "-"
		if k, ok := cable.Suggest(info.Kind); ok {
			suggestion = string(k)
		}
		where := fmt.Sprintf("bus %d addr %d", info.Bus, info.Address)
		if info.Bus < 0 {
			where = fmt.Sprintf("d2xx #%d", info.Address)
		}
		fmt.Printf("  - %s [%s] %s, TCK up to %s, use --programmer %s\n", info.Label(), info.Kind, where, info.MaxClock, suggestion)
	}
	return nil
}
