package programmer

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

var testBoard = Board{
	OpenOCDConfig: "board/numato_mimas_a7_mini.cfg",
	FlashPart:     "n25q128-3.3v-spi-x1_x2_x4",
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds {
		got, err := ParseKind(string(k))
		if err != nil || got != k {
			t.Errorf("ParseKind(%q) = %q, %v", k, got, err)
		}
	}

	_, err := ParseKind("bogus")
	if !errors.Is(err, ErrUnsupportedProgrammer) {
		t.Fatalf("expected ErrUnsupportedProgrammer, got %v", err)
	}
	var perr *UnsupportedProgrammerError
	if !errors.As(err, &perr) || perr.Value != "bogus" {
		t.Fatalf("error does not carry the offending value: %v", err)
	}
	if err.Error() != "bogus programmer is not supported" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestResolveOpenOCD(t *testing.T) {
	tests := []struct {
		device string
		proxy  string
	}{
		{"xc7a35t-ftg256-1", "bscan_spi_xc7a35t.bit"},
		{"xc7s50csga324-1", "bscan_spi_xc7s50csga324.bit"},
	}
	for _, tt := range tests {
		p, err := Resolve(KindOpenOCD, tt.device, testBoard)
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		o, ok := p.(*OpenOCD)
		if !ok {
			t.Fatalf("got %T, want *OpenOCD", p)
		}
		if o.FlashProxyBasename != tt.proxy {
			t.Errorf("proxy = %q, want %q", o.FlashProxyBasename, tt.proxy)
		}
		if o.Config != testBoard.OpenOCDConfig {
			t.Errorf("config = %q", o.Config)
		}
	}
}

func TestResolveXC3SProgIgnoresBoard(t *testing.T) {
	for _, b := range []Board{testBoard, {OpenOCDConfig: "board/numato_narvi.cfg"}} {
		p, err := Resolve(KindXC3SProg, "xc7s50csga324-1", b)
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		if x := p.(*XC3SProg); x.Cable != "nexys4" {
			t.Errorf("cable = %q, want nexys4", x.Cable)
		}
	}
}

func TestResolveVivado(t *testing.T) {
	p, err := Resolve(KindVivado, "xc7a35t-ftg256-1", testBoard)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if v := p.(*VivadoProgrammer); v.FlashPart != "n25q128-3.3v-spi-x1_x2_x4" {
		t.Errorf("flash part = %q", v.FlashPart)
	}

	if _, err := Resolve(KindVivado, "xc7a35t-ftg256-1", Board{}); err == nil {
		t.Errorf("expected error without flash part")
	}
}

func TestResolveBogus(t *testing.T) {
	p, err := Resolve(Kind("bogus"), "xc7a35t-ftg256-1", testBoard)
	if p != nil {
		t.Fatalf("no handle should be constructed, got %T", p)
	}
	if !errors.Is(err, ErrUnsupportedProgrammer) {
		t.Fatalf("expected ErrUnsupportedProgrammer, got %v", err)
	}
}

func TestOpenOCDPlans(t *testing.T) {
	o := &OpenOCD{Config: "board/numato_narvi.cfg", FlashProxyBasename: "bscan_spi_xc7s50csga324.bit"}

	load, _ := o.LoadBitstream("build/top.bit")
	want := []string{"-f", "board/numato_narvi.cfg", "-c", "init; pld load 0 {build/top.bit}; exit"}
	if got := load.Steps[0].Args; strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("load args = %q, want %q", got, want)
	}

	flash, err := o.Flash(0x220000, "build/top.bin")
	if err != nil {
		t.Fatalf("Flash: %v", err)
	}
	script := flash.Steps[0].Args[3]
	for _, part := range []string{
		"jtagspi_init 0 {bscan_spi_xc7s50csga324.bit}",
		"jtagspi_program {build/top.bin} 0x220000",
		"fpga_program",
	} {
		if !strings.Contains(script, part) {
			t.Errorf("flash script %q missing %q", script, part)
		}
	}

	if _, err := (&OpenOCD{}).Flash(0, "x.bin"); !errors.Is(err, ErrNoFlashProxy) {
		t.Errorf("expected ErrNoFlashProxy, got %v", err)
	}
}

func TestXC3SProgPlans(t *testing.T) {
	x := &XC3SProg{Cable: "nexys4"}
	load, _ := x.LoadBitstream("top.bit")
	if got := load.Steps[0].String(); got != "xc3sprog -v -c nexys4 -p 0 top.bit" {
		t.Errorf("load = %q", got)
	}
	if _, err := x.Flash(0, "top.bin"); !errors.Is(err, ErrNoFlashProxy) {
		t.Errorf("expected ErrNoFlashProxy, got %v", err)
	}
	x.FlashProxyBasename = "bscan_spi_xc7a35t.bit"
	flash, err := x.Flash(0x10, "top.bin")
	if err != nil {
		t.Fatalf("Flash: %v", err)
	}
	if got := flash.Steps[0].String(); got != "xc3sprog -v -c nexys4 -p 0 -Ibscan_spi_xc7a35t.bit top.bin:w:0x10:BIN" {
		t.Errorf("flash = %q", got)
	}
}

func TestVivadoPlans(t *testing.T) {
	v := &VivadoProgrammer{FlashPart: "s25fl256sxxxxxx0-spi-x1_x2_x4"}
	flash, err := v.Flash(0, "top.bin")
	if err != nil {
		t.Fatalf("Flash: %v", err)
	}
	step := flash.Steps[0]
	if step.Program != "vivado" || step.Script == nil {
		t.Fatalf("unexpected step %+v", step)
	}
	if !strings.Contains(step.Script.Body, "get_cfgmem_parts {s25fl256sxxxxxx0-spi-x1_x2_x4}") {
		t.Errorf("script does not select the flash part:\n%s", step.Script.Body)
	}
	if _, err := v.Flash(0x1000, "top.bin"); err == nil {
		t.Errorf("expected error for non-zero address")
	}
}

func TestRunnerDryRun(t *testing.T) {
	var buf bytes.Buffer
	r := &Runner{Stdout: &buf, DryRun: true}
	plan, _ := (&VivadoProgrammer{FlashPart: "p"}).LoadBitstream("top.bit")
	if err := r.Run(context.Background(), plan); err != nil {
		t.Fatalf("Run: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "# load.tcl") || !strings.Contains(out, "vivado -mode batch") {
		t.Errorf("dry run output:\n%s", out)
	}
}

// fakeTool writes an executable shell script into dir and returns its path.
func fakeTool(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

// chdir switches to dir for the rest of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(old) })
}

func TestRunnerRelativePaths(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts")
	}
	bin := t.TempDir()
	work := t.TempDir()
	if err := os.MkdirAll(filepath.Join(work, "build"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(work, "build", "top.bit"), []byte("bit"), 0o644); err != nil {
		t.Fatal(err)
	}
	chdir(t, work)

	tests := []struct {
		name string
		plan func() (Plan, error)
	}{
		{
			name: "openocd",
			plan: func() (Plan, error) {
				tool := fakeTool(t, bin, "openocd", `for a in "$@"; do
  case "$a" in *build/top.bit*) [ -f build/top.bit ] && exit 0;; esac
done
echo "build/top.bit not found in $(pwd)" >&2
exit 1
`)
				o := &OpenOCD{Config: testBoard.OpenOCDConfig, Binary: tool}
				return o.LoadBitstream("build/top.bit")
			},
		},
		{
			name: "vivado",
			plan: func() (Plan, error) {
				tool := fakeTool(t, bin, "vivado", `script="$6"
[ -f "$script" ] || { echo "no script $script" >&2; exit 1; }
grep -q "build/top.bit" "$script" || exit 1
[ -f build/top.bit ] || { echo "build/top.bit not found in $(pwd)" >&2; exit 1; }
`)
				v := &VivadoProgrammer{Binary: tool}
				return v.LoadBitstream("build/top.bit")
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := tt.plan()
			if err != nil {
				t.Fatalf("plan: %v", err)
			}
			var stderr bytes.Buffer
			r := &Runner{Stdout: &bytes.Buffer{}, Stderr: &stderr}
			if err := r.Run(context.Background(), plan); err != nil {
				t.Fatalf("Run: %v\n%s", err, stderr.String())
			}
		})
	}
}

func TestRunnerStepFailure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts")
	}
	tool := fakeTool(t, t.TempDir(), "fail", "exit 3\n")
	plan := Plan{Steps: []Step{{Program: tool}}}
	err := (&Runner{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}).Run(context.Background(), plan)
	if err == nil || !strings.Contains(err.Error(), "exit status 3") {
		t.Errorf("Run error = %v", err)
	}
}
