package kicadnet

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/OpenTraceLab/OpenTraceBoards/pkg/platform"
)

const sampleNetlist = `(export (version "E")
  (design
    (source "/home/hw/mimas/mimas.kicad_sch")
    (tool "Eeschema 7.0.1"))
  (components
    (comp (ref "U1")
      (value "XC7A35T-1FTG256C")
      (footprint "Package_BGA:Xilinx_FTG256"))
    (comp (ref "X1")
      (value "100MHz")
      (footprint "Oscillator:Oscillator_SMD_3225")))
  (nets
    (net (code "1") (name "/CLK100")
      (node (ref "U1") (pin "N14") (pinfunction "IO_L12P_T1_MRCC_14"))
      (node (ref "X1") (pin "3")))
    (net (code "2") (name "/LED0")
      (node (ref "U1") (pin "K12"))
      (node (ref "R10") (pin "1")))
    (net (code "3") (name "unconnected-(U1-L14-Pad1)")
      (node (ref "U1") (pin "L14")))
    (net (code "4") (name "Net-(U1-M12)")
      (node (ref "U1") (pin "M12")))))
`

func TestParse(t *testing.T) {
	nl, err := Parse(strings.NewReader(sampleNetlist))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if nl.Source != "/home/hw/mimas/mimas.kicad_sch" {
		t.Errorf("Source = %q", nl.Source)
	}
	if len(nl.Components) != 2 || len(nl.Nets) != 4 {
		t.Fatalf("components=%d nets=%d", len(nl.Components), len(nl.Nets))
	}
	u1, ok := nl.Component("U1")
	if !ok || u1.Footprint != "Package_BGA:Xilinx_FTG256" {
		t.Errorf("U1 = %+v, %v", u1, ok)
	}

	nets := nl.PinNets("U1")
	want := map[string]string{
		"N14": "/CLK100",
		"K12": "/LED0",
		"L14": "unconnected-(U1-L14-Pad1)",
		"M12": "Net-(U1-M12)",
	}
	if len(nets) != len(want) {
		t.Fatalf("PinNets = %v", nets)
	}
	for pin, net := range want {
		if nets[pin] != net {
			t.Errorf("pin %s on %q, want %q", pin, nets[pin], net)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"not export", `(kicad_pcb (version 20221018))`},
		{"unclosed", `(export (nets (net (code 1))`},
		{"stray close", `)`},
		{"no nets", `(export (version "E"))`},
		{"node without pin", `(export (nets (net (code 1) (name a) (node (ref U1)))))`},
		{"unterminated string", `(export (design (source "abc`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(strings.NewReader(tt.input)); err == nil {
				t.Errorf("expected error")
			}
		})
	}
}

func TestCheck(t *testing.T) {
	table := platform.Table{
		{Name: "clk100", Pins: platform.Pins("N14"), IOStandard: platform.LVCMOS33},
		{Name: "user_led", Index: 0, Pins: platform.Pins("K12"), IOStandard: platform.LVCMOS33},
		{Name: "user_led", Index: 1, Pins: platform.Pins("L14"), IOStandard: platform.LVCMOS33},
		{Name: "user_led", Index: 2, Pins: platform.Pins("M12"), IOStandard: platform.LVCMOS33},
		{Name: "user_led", Index: 3, Pins: platform.Pins("P15"), IOStandard: platform.LVCMOS33},
	}
	nl, err := Parse(strings.NewReader(sampleNetlist))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	issues := Check(table, nl, "U1")
	if len(issues) != 3 {
		t.Fatalf("issues = %v", issues)
	}
	want := []struct{ port, reason string }{
		{"user_led1", "unconnected"},
		{"user_led2", "unconnected"},
		{"user_led3", "pin not in netlist"},
	}
	for i, w := range want {
		if issues[i].Port != w.port || issues[i].Reason != w.reason {
			t.Errorf("issue %d = %+v, want %s %s", i, issues[i], w.port, w.reason)
		}
	}
	if got := issues[2].String(); got != "user_led3 (P15): pin not in netlist" {
		t.Errorf("String = %q", got)
	}
}

func TestProbe(t *testing.T) {
	if err := Probe(`(export (version D) (nets (net (code 1) (name GND))))`); err != nil {
		t.Errorf("Probe: %v", err)
	}
	for _, in := range []string{"(export (nets)))", ")"} {
		if err := Probe(in); err == nil {
			t.Errorf("Probe(%q): expected error", in)
		}
	}
}

func writeNetlist(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "board.net")
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseFile(t *testing.T) {
	nl, err := ParseFile(writeNetlist(t, sampleNetlist))
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if len(nl.Nets) != 4 {
		t.Errorf("got %d nets", len(nl.Nets))
	}

	// Parentheses inside quoted names are not structure.
	quoted := `(export (nets (net (code "1") (name "/LED(0")
  (node (ref "U1") (pin "K12")) (node (ref "R10") (pin "1")))))`
	nl, err = ParseFile(writeNetlist(t, quoted))
	if err != nil {
		t.Fatalf("ParseFile quoted: %v", err)
	}
	if got := nl.PinNets("U1")["K12"]; got != "/LED(0" {
		t.Errorf("K12 net = %q", got)
	}

	if _, err := ParseFile(writeNetlist(t, "(export (nets)))")); err == nil {
		t.Errorf("expected error for stray ')'")
	}
}
