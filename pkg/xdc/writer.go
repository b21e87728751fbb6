package xdc

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/OpenTraceLab/OpenTraceBoards/pkg/platform"
)

// Write renders the pin constraints, the default clock and the platform
// commands of p in the layout Vivado expects.
func Write(w io.Writer, p *platform.Platform) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# %s (%s)\n", p.Name, p.Device)

	var last string
	for _, c := range p.Constraints() {
		group := fmt.Sprintf("%s:%d", c.Signal, c.Index)
		if c.Subsignal != "" {
			group += "." + c.Subsignal
		}
		if group != last {
			fmt.Fprintf(bw, "\n## %s\n", group)
			last = group
		}
		port := portRef(c.Port)
		fmt.Fprintf(bw, "set_property LOC %s %s\n", c.Pin, port)
		if c.IOStandard != "" {
			fmt.Fprintf(bw, "set_property IOSTANDARD %s %s\n", c.IOStandard, port)
		}
		for _, m := range c.Misc {
			name, value, ok := strings.Cut(m, "=")
			if !ok {
				return fmt.Errorf("xdc: %s: misc attribute %q is not NAME=VALUE", c.Port, m)
			}
			fmt.Fprintf(bw, "set_property %s %s %s\n", name, value, port)
		}
	}

	if p.DefaultClockName != "" && p.DefaultClockPeriod > 0 {
		clk, err := p.Request(p.DefaultClockName, 0)
		if err != nil {
			return fmt.Errorf("xdc: default clock: %w", err)
		}
		fmt.Fprintf(bw, "\n## clocks\n")
		fmt.Fprintf(bw, "create_clock -name %s -period %s %s\n",
			p.DefaultClockName, formatPeriod(p.DefaultClockPeriod), portRef(clk[0].Port))
	}

	if len(p.PlatformCommands) > 0 {
		fmt.Fprintf(bw, "\n## platform\n")
		for _, cmd := range p.PlatformCommands {
			fmt.Fprintln(bw, cmd)
		}
	}
	return bw.Flush()
}

func portRef(port string) string {
	return "[get_ports {" + port + "}]"
}

func formatPeriod(ns float64) string {
	s := fmt.Sprintf("%.3f", ns)
	s = strings.TrimRight(s, "0")
	if strings.HasSuffix(s, ".") {
		s += "0"
	}
	return s
}
