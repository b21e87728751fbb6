package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceBoards/pkg/bsdl"
	"github.com/OpenTraceLab/OpenTraceBoards/pkg/kicadnet"
	"github.com/OpenTraceLab/OpenTraceBoards/pkg/platform"
	"github.com/OpenTraceLab/OpenTraceBoards/pkg/xdc"
	"github.com/OpenTraceLab/OpenTraceBoards/pkg/xilinx"
)

var (
	checkXDC     string
	checkBSDL    string
	checkNetlist string
	checkRef     string
)

var checkCmd = &cobra.Command{
	Use:   "check <board>",
	Short: "Cross-check a board's pin table",
	Long: `Check the pin table of a board. Every location is always checked against
the ball grid of the device package. Optional sources add further checks:

  --xdc      compare LOC and IOSTANDARD with an existing constraint file
  --bsdl     reject balls the device's BSDL pin map does not bond out
  --netlist  report balls of component --ref that KiCad leaves unconnected

Examples:
  otb check mimas_a7_mini --xdc mimas.xdc
  otb check narvi --bsdl xc7s50_csga324.bsd
  otb check narvi --netlist narvi.net --ref U1`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVar(&checkXDC, "xdc", "", "Vivado constraint file to compare")
	checkCmd.Flags().StringVar(&checkBSDL, "bsdl", "", "BSDL file of the device")
	checkCmd.Flags().StringVar(&checkNetlist, "netlist", "", "KiCad netlist export")
	checkCmd.Flags().StringVar(&checkRef, "ref", "U1", "reference designator of the FPGA in the netlist")
}

func runCheck(cmd *cobra.Command, args []string) error {
	p, err := openBoard(args[0])
	if err != nil {
		return err
	}
	constraints := p.Constraints()
	problems := 0
	report := func(format string, args ...any) {
		problems++
		fmt.Printf("  "+format+"\n", args...)
	}

	pkg, err := xilinx.LookupPackage(p.Device)
	if err != nil {
		return err
	}
	fmt.Printf("Package %s:\n", pkg.Name)
	for _, c := range constraints {
		if !pkg.Contains(c.Pin) {
			report("%s: %s is not a ball of %s", c.Port, c.Pin, pkg.Name)
		}
	}

	if checkXDC != "" {
		if err := checkAgainstXDC(constraints, report); err != nil {
			return err
		}
	}
	if checkBSDL != "" {
		if err := checkAgainstBSDL(constraints, report); err != nil {
			return err
		}
	}
	if checkNetlist != "" {
		nl, err := kicadnet.ParseFile(checkNetlist)
		if err != nil {
			return err
		}
		if _, ok := nl.Component(checkRef); !ok {
			return fmt.Errorf("check: %s has no component %s", checkNetlist, checkRef)
		}
		fmt.Printf("Netlist %s (%s):\n", checkNetlist, checkRef)
		for _, issue := range kicadnet.Check(p.IO, nl, checkRef) {
			report("%s", issue)
		}
	}

	if problems > 0 {
		return fmt.Errorf("check: %d problem(s) in %s", problems, p.Name)
	}
	fmt.Printf("%s: %d locations OK\n", p.Name, len(constraints))
	return nil
}

func checkAgainstXDC(constraints []platform.Constraint, report func(string, ...any)) error {
	parser, err := xdc.NewParser()
	if err != nil {
		return err
	}
	f, err := parser.ParseFile(checkXDC)
	if err != nil {
		return err
	}
	assignments := f.Assignments()
	logf("%s: %d constrained ports", checkXDC, len(assignments))
	fmt.Printf("Constraints %s:\n", checkXDC)
	for _, m := range xdc.Compare(constraints, assignments) {
		report("%s", m)
	}
	return nil
}

func checkAgainstBSDL(constraints []platform.Constraint, report func(string, ...any)) error {
	parser, err := bsdl.NewParser()
	if err != nil {
		return err
	}
	f, err := parser.ParseFile(checkBSDL)
	if err != nil {
		return err
	}
	pm, err := bsdl.ExtractPinMap(f)
	if err != nil {
		return err
	}
	logf("%s: pin map %s with %d ports", checkBSDL, pm.Name, len(pm.Ports))
	fmt.Printf("BSDL pin map %s:\n", pm.Name)

	locations := make([]string, 0, len(constraints))
	for _, c := range constraints {
		locations = append(locations, c.Pin)
	}
	for _, ball := range pm.Unknown(locations) {
		report("%s is not bonded out in %s", ball, pm.Name)
	}
	return nil
}
