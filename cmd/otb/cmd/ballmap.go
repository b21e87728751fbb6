package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceBoards/pkg/ballmap"
)

var ballmapSVG string

var ballmapCmd = &cobra.Command{
	Use:   "ballmap <board>",
	Short: "Show which package balls a board uses",
	Long: `Lay out the device package and list the balls bound by the pin table,
grouped by row. With --svg the map is written as an SVG image, balls
coloured by IOStandard and shared balls in red.`,
	Args: cobra.ExactArgs(1),
	RunE: runBallmap,
}

func init() {
	rootCmd.AddCommand(ballmapCmd)
	ballmapCmd.Flags().StringVar(&ballmapSVG, "svg", "", "write an SVG image to this file")
}

func runBallmap(cmd *cobra.Command, args []string) error {
	p, err := openBoard(args[0])
	if err != nil {
		return err
	}
	r, err := ballmap.New(p, nil)
	if err != nil {
		return err
	}

	if ballmapSVG != "" {
		f, err := os.Create(ballmapSVG)
		if err != nil {
			return fmt.Errorf("ballmap: %w", err)
		}
		if err := ballmap.SVG(f, r); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("ballmap: %w", err)
		}
		fmt.Printf("Wrote %s\n", ballmapSVG)
		return nil
	}

	fmt.Println(r.Title)
	used := 0
	for _, pad := range r.Pads {
		if len(pad.Ports) == 0 {
			continue
		}
		used++
		fmt.Printf("  %-4s %-10s %s\n", pad.Ball, pad.IOStandard, strings.Join(pad.Ports, ", "))
	}
	counts := make(map[string]int)
	for _, pad := range r.Pads {
		if pad.IOStandard != "" {
			counts[pad.IOStandard]++
		}
	}
	stds := make([]string, 0, len(counts))
	for std := range counts {
		stds = append(stds, std)
	}
	sort.Strings(stds)
	fmt.Printf("%d of %d balls used", used, len(r.Pads))
	for _, std := range stds {
		fmt.Printf(", %s %d", std, counts[std])
	}
	fmt.Println()
	return nil
}
