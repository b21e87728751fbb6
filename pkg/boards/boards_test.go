package boards

import (
	"errors"
	"reflect"
	"testing"

	"github.com/OpenTraceLab/OpenTraceBoards/pkg/platform"
	"github.com/OpenTraceLab/OpenTraceBoards/pkg/programmer"
	"github.com/OpenTraceLab/OpenTraceBoards/pkg/xilinx"
)

func TestNames(t *testing.T) {
	want := []string{"mimas_a7_mini", "narvi"}
	if got := Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names = %q, want %q", got, want)
	}
	if all := All(); len(all) != 2 || all[0].Name != "mimas_a7_mini" || all[1].Device != "xc7s50csga324-1" {
		t.Errorf("All = %+v", all)
	}
	if _, err := Lookup("arty"); err == nil {
		t.Errorf("expected error for unknown board")
	}
}

func TestTablesValidate(t *testing.T) {
	for _, name := range Names() {
		def, _ := Lookup(name)
		if err := def.IO.Validate(); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
}

func TestSignalPairsUnique(t *testing.T) {
	type key struct {
		name  string
		index int
	}
	for _, name := range Names() {
		def, _ := Lookup(name)
		seen := make(map[key]bool)
		for _, r := range def.IO {
			k := key{r.Name, r.Index}
			if seen[k] {
				t.Errorf("%s: duplicate %s %d", name, r.Name, r.Index)
			}
			seen[k] = true
		}
	}
}

func TestDDRWidths(t *testing.T) {
	widths := map[string]int{
		"a":       14,
		"ba":      3,
		"dq":      16,
		"dm":      2,
		"dqs_p":   2,
		"dqs_n":   2,
		"clk_p":   1,
		"clk_n":   1,
		"reset_n": 1,
	}
	for _, name := range Names() {
		def, _ := Lookup(name)
		for sub, want := range widths {
			if got := def.IO.Width("ddram", 0, sub); got != want {
				t.Errorf("%s ddram %s width = %d, want %d", name, sub, got, want)
			}
		}
	}
}

func TestDDRStandards(t *testing.T) {
	for _, name := range Names() {
		p, err := New(name)
		if err != nil {
			t.Fatalf("New(%s): %v", name, err)
		}
		ddr, err := p.Request("ddram", 0)
		if err != nil {
			t.Fatalf("Request: %v", err)
		}
		for _, c := range ddr {
			diff := c.Subsignal == "dqs_p" || c.Subsignal == "dqs_n" || c.Subsignal == "clk_p" || c.Subsignal == "clk_n"
			want := platform.SSTL15
			if diff {
				want = platform.DiffSSTL15
			}
			if c.IOStandard != want {
				t.Errorf("%s %s: %s, want %s", name, c.Port, c.IOStandard, want)
			}
		}
	}
}

func TestMimasSharedResetButton(t *testing.T) {
	shared := MimasA7Mini.IO.SharedPins()
	want := []string{"cpu_reset", "user_btn3"}
	if got := shared["N6"]; !reflect.DeepEqual(got, want) {
		t.Errorf("N6 users = %q, want %q", got, want)
	}
	if MimasA7Mini.IO.Count("user_led") != 8 || MimasA7Mini.IO.Count("user_btn") != 4 {
		t.Errorf("unexpected LED/button count")
	}
	if Narvi.IO.Count("user_led") != 1 || Narvi.IO.Count("user_btn") != 0 {
		t.Errorf("unexpected Narvi LED/button count")
	}
}

func TestLocationsFitPackage(t *testing.T) {
	for _, name := range Names() {
		def, _ := Lookup(name)
		pkg, err := xilinx.LookupPackage(def.Device)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		for _, c := range def.IO.Resolve() {
			if !pkg.Contains(c.Pin) {
				t.Errorf("%s: %s on %s outside %s", name, c.Port, c.Pin, pkg.Name)
			}
		}
	}
}

func TestCreateProgrammer(t *testing.T) {
	tests := []struct {
		board string
		proxy string
		cfg   string
	}{
		{"mimas_a7_mini", "bscan_spi_xc7a35t.bit", "board/numato_mimas_a7_mini.cfg"},
		{"narvi", "bscan_spi_xc7s50csga324.bit", "board/numato_narvi.cfg"},
	}
	for _, tt := range tests {
		t.Run(tt.board, func(t *testing.T) {
			p, err := New(tt.board)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			prog, err := p.CreateProgrammer()
			if err != nil {
				t.Fatalf("CreateProgrammer: %v", err)
			}
			o := prog.(*programmer.OpenOCD)
			if o.FlashProxyBasename != tt.proxy || o.Config != tt.cfg {
				t.Errorf("got %+v", o)
			}

			p, _ = New(tt.board, platform.WithProgrammer("xc3sprog"))
			prog, _ = p.CreateProgrammer()
			if x := prog.(*programmer.XC3SProg); x.Cable != "nexys4" {
				t.Errorf("cable = %q", x.Cable)
			}

			p, _ = New(tt.board, platform.WithProgrammer("vivado"))
			prog, _ = p.CreateProgrammer()
			if v := prog.(*programmer.VivadoProgrammer); v.FlashPart != DefaultFlashPart {
				t.Errorf("flash part = %q", v.FlashPart)
			}

			if _, err := New(tt.board, platform.WithProgrammer("bogus")); !errors.Is(err, programmer.ErrUnsupportedProgrammer) {
				t.Errorf("expected ErrUnsupportedProgrammer, got %v", err)
			}
		})
	}
}

func TestDescriptorFields(t *testing.T) {
	for _, name := range Names() {
		a, err := New(name)
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		b, _ := New(name)
		if a.Flash != b.Flash || a.DefaultClockPeriod != b.DefaultClockPeriod || a.DefaultClockName != b.DefaultClockName {
			t.Errorf("%s: descriptors differ", name)
		}
		if a.Flash.TotalSize != 16*1024*1024 || a.Flash.Model != "n25q128" {
			t.Errorf("%s: flash = %+v", name, a.Flash)
		}
		if a.GatewareSize != 0x220000 || a.DefaultClockName != "clk100" || a.DefaultClockPeriod != 10.0 {
			t.Errorf("%s: unexpected descriptor %+v", name, a)
		}
	}
}
