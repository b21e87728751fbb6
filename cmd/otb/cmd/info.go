package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"periph.io/x/conn/v3/physic"

	"github.com/OpenTraceLab/OpenTraceBoards/pkg/xilinx"
)

var infoCmd = &cobra.Command{
	Use:   "info <board>",
	Short: "Show a board's device, clock, flash and programmer",
	Long: `Print the platform descriptor of a board: FPGA device and its JTAG
identity, default clock, SPI flash geometry, the selected programmer with its
configuration, the build commands and any package ball shared by several
signals.

Examples:
  otb info narvi
  otb info mimas_a7_mini --programmer vivado --flash-part s25fl256sxxxxxx0-spi-x1_x2_x4`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
	addPlatformFlags(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	p, err := openBoard(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Board:        %s\n", p.Name)
	fmt.Printf("Device:       %s\n", p.Device)
	if part, err := xilinx.LookupPart(p.Device); err == nil {
		fmt.Printf("Part:         %s %s, IDCODE %s, IR length %d\n", part.Family, part.Name, part.Identity(), part.IRLength)
	}
	if pkg, err := xilinx.LookupPackage(p.Device); err == nil {
		fmt.Printf("Package:      %s (%dx%d balls)\n", pkg.Name, pkg.Rows, pkg.Cols)
	}
	fmt.Printf("Toolchain:    %s\n", p.Toolchain)
	clock := physic.Frequency(p.DefaultClockFrequency()) * physic.Hertz
	fmt.Printf("Clock:        %s, %.1f ns (%s)\n", p.DefaultClockName, p.DefaultClockPeriod, clock)
	fmt.Printf("Gateware:     0x%X bytes\n", p.GatewareSize)
	fmt.Printf("Flash:        %s, %d bytes, page %d, sector %d\n", p.Flash.Model, p.Flash.TotalSize, p.Flash.PageSize, p.Flash.SectorSize)

	prog, err := p.CreateProgrammer()
	if err != nil {
		return err
	}
	fmt.Printf("Programmer:   %s\n", prog.Name())
	fmt.Printf("  openocd:    %s\n", p.Programming.OpenOCDConfig)
	fmt.Printf("  xc3sprog:   %s\n", p.Programming.XC3SProgCable)
	fmt.Printf("  flash part: %s\n", p.Programming.FlashPart)

	fmt.Println("Commands:")
	for _, c := range p.BitstreamCommands {
		fmt.Printf("  %s\n", c)
	}
	for _, c := range p.ExpandCommands(p.Name) {
		fmt.Printf("  %s\n", c)
	}
	for _, c := range p.PlatformCommands {
		fmt.Printf("  %s\n", c)
	}

	shared := p.IO.SharedPins()
	if len(shared) > 0 {
		pins := make([]string, 0, len(shared))
		for pin := range shared {
			pins = append(pins, pin)
		}
		sort.Strings(pins)
		fmt.Println("Shared balls:")
		for _, pin := range pins {
			fmt.Printf("  %-4s %s\n", pin, strings.Join(shared[pin], ", "))
		}
	}
	return nil
}
