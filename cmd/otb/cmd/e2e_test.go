package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/OpenTraceLab/OpenTraceBoards/pkg/programmer"
)

// resetFlags puts every flag of c and its subcommands back to its default so
// values do not leak from one test case into the next.
func resetFlags(c *cobra.Command) {
	c.Flags().VisitAll(func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	})
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// execute runs the root command with args and returns captured stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	// Read in background so a large output cannot fill the pipe
	var buf bytes.Buffer
	done := make(chan struct{})
	go func() {
		buf.ReadFrom(r)
		close(done)
	}()

	resetFlags(rootCmd)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()

	w.Close()
	os.Stdout = old
	<-done
	return buf.String(), err
}

func TestCommandsE2E(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		wantErr     bool
		wantContain []string
	}{
		{
			name:        "list",
			args:        []string{"list"},
			wantContain: []string{"mimas_a7_mini", "xc7a35t-ftg256-1", "narvi", "xc7s50csga324-1"},
		},
		{
			name: "info narvi",
			args: []string{"info", "narvi"},
			wantContain: []string{
				"Device:       xc7s50csga324-1",
				"0x03622093",
				"Xilinx",
				"csga324 (18x18 balls)",
				"clk100, 10.0 ns (100MHz)",
				"Programmer:   openocd",
				"board/numato_narvi.cfg",
				"nexys4",
				"n25q128-3.3v-spi-x1_x2_x4",
				"set_property BITSTREAM.CONFIG.SPI_BUSWIDTH 4 [current_design]",
				`-loadbit "up 0x0 narvi.bit" -file narvi.bin`,
				"set_property INTERNAL_VREF 0.750 [get_iobanks 34]",
			},
		},
		{
			name: "info mimas shared ball",
			args: []string{"info", "mimas_a7_mini"},
			wantContain: []string{
				"0x0362D093",
				"set_property INTERNAL_VREF 0.750 [get_iobanks 35]",
				"Shared balls:",
				"N6   cpu_reset, user_btn3",
			},
		},
		{
			name:        "info flash part override",
			args:        []string{"info", "mimas_a7_mini", "--programmer", "vivado", "--flash-part", "s25fl256sxxxxxx0-spi-x1_x2_x4"},
			wantContain: []string{"Programmer:   vivado", "flash part: s25fl256sxxxxxx0-spi-x1_x2_x4"},
		},
		{
			name:    "info unknown board",
			args:    []string{"info", "arty"},
			wantErr: true,
		},
		{
			name:    "info unknown toolchain",
			args:    []string{"info", "narvi", "--toolchain", "quartus"},
			wantErr: true,
		},
		{
			name: "xdc",
			args: []string{"xdc", "mimas_a7_mini"},
			wantContain: []string{
				"set_property LOC K12 [get_ports {user_led0}]",
				"set_property IOSTANDARD SSTL15 [get_ports {ddram_a[13]}]",
				"set_property IN_TERM UNTUNED_SPLIT_40 [get_ports {ddram_dq[15]}]",
				"create_clock -name clk100 -period 10.0 [get_ports {clk100}]",
			},
		},
		{
			name: "program load dry run",
			args: []string{"program", "narvi", "--bitstream", "top.bit", "--dry-run"},
			wantContain: []string{
				"openocd -f board/numato_narvi.cfg -c",
				"pld load 0 {top.bit}",
			},
		},
		{
			name: "program flash dry run",
			args: []string{"program", "narvi", "--flash", "--bitstream", "top.bin", "--address", "0x400000", "--dry-run"},
			wantContain: []string{
				"jtagspi_init 0 {bscan_spi_xc7s50csga324.bit}",
				"jtagspi_program {top.bin} 0x400000",
			},
		},
		{
			name: "program xc3sprog",
			args: []string{"program", "mimas_a7_mini", "--programmer", "xc3sprog", "--bitstream", "top.bit", "--dry-run"},
			wantContain: []string{"xc3sprog -v -c nexys4 -p 0 top.bit"},
		},
		{
			name: "program vivado flash",
			args: []string{"program", "mimas_a7_mini", "--programmer", "vivado", "--flash", "--bitstream", "top.bin", "--dry-run"},
			wantContain: []string{
				"# flash.tcl",
				"get_cfgmem_parts {n25q128-3.3v-spi-x1_x2_x4}",
				"vivado -mode batch -nojournal -nolog -source flash.tcl",
			},
		},
		{
			name:    "program xc3sprog flash without proxy",
			args:    []string{"program", "narvi", "--programmer", "xc3sprog", "--flash", "--bitstream", "top.bin", "--dry-run"},
			wantErr: true,
		},
		{
			name:    "program missing bitstream",
			args:    []string{"program", "narvi", "--dry-run"},
			wantErr: true,
		},
		{
			name: "ballmap",
			args: []string{"ballmap", "mimas_a7_mini"},
			wantContain: []string{
				"mimas_a7_mini ftg256 (16x16)",
				"K12  LVCMOS33   user_led0",
				"N6   LVCMOS33   cpu_reset, user_btn3",
				"of 256 balls used",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := execute(t, tt.args...)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error but got none")
				}
				return
			}
			if err != nil {
				t.Errorf("Unexpected error: %v\nOutput: %s", err, output)
				return
			}
			for _, want := range tt.wantContain {
				if !strings.Contains(output, want) {
					t.Errorf("Output missing expected string: %q\nGot:\n%s", want, output)
				}
			}
		})
	}
}

func TestUnsupportedProgrammerE2E(t *testing.T) {
	_, err := execute(t, "info", "narvi", "--programmer", "impact")
	if !errors.Is(err, programmer.ErrUnsupportedProgrammer) {
		t.Fatalf("err = %v, want ErrUnsupportedProgrammer", err)
	}
	var perr *programmer.UnsupportedProgrammerError
	if !errors.As(err, &perr) || perr.Value != "impact" {
		t.Errorf("err = %#v", err)
	}
}

func TestCheckE2E(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "mimas.xdc")

	if _, err := execute(t, "xdc", "mimas_a7_mini", "-o", good); err != nil {
		t.Fatalf("xdc: %v", err)
	}
	output, err := execute(t, "check", "mimas_a7_mini", "--xdc", good)
	if err != nil {
		t.Fatalf("check: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(output, "locations OK") {
		t.Errorf("Output missing OK line:\n%s", output)
	}

	// A constraint file for the other board disagrees on nearly every port
	other := filepath.Join(dir, "narvi.xdc")
	if _, err := execute(t, "xdc", "narvi", "-o", other); err != nil {
		t.Fatalf("xdc: %v", err)
	}
	output, err = execute(t, "check", "mimas_a7_mini", "--xdc", other)
	if err == nil {
		t.Fatalf("expected check to fail\nOutput: %s", output)
	}
	if !strings.Contains(output, "clk100: pin is D14, table has N11") {
		t.Errorf("Output missing clock mismatch:\n%s", output)
	}
}

func TestXDCOutputE2E(t *testing.T) {
	out := filepath.Join(t.TempDir(), "narvi.xdc")
	if _, err := execute(t, "xdc", "narvi", "-o", out); err != nil {
		t.Fatalf("xdc: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "create_clock -name clk100") {
		t.Errorf("xdc file:\n%s", data)
	}

	missing := filepath.Join(t.TempDir(), "nope", "narvi.xdc")
	if _, err := execute(t, "xdc", "narvi", "-o", missing); err == nil {
		t.Errorf("expected error writing into a missing directory")
	}
}

func TestBallmapSVGE2E(t *testing.T) {
	out := filepath.Join(t.TempDir(), "narvi.svg")
	output, err := execute(t, "ballmap", "narvi", "--svg", out)
	if err != nil {
		t.Fatalf("ballmap: %v", err)
	}
	if !strings.Contains(output, "Wrote "+out) {
		t.Errorf("Output = %q", output)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read svg: %v", err)
	}
	if !bytes.Contains(data, []byte(`id="G13"`)) {
		t.Errorf("svg has no G13 ball")
	}
}
