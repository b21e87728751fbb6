// Package platform describes an FPGA board: its pin table and the descriptor
// handed to the build and programming tools.
package platform

import (
	"fmt"
	"strings"

	"github.com/OpenTraceLab/OpenTraceBoards/pkg/programmer"
)

// FlashGeometry describes the configuration SPI flash as seen by a flash
// controller generator.
type FlashGeometry struct {
	ReadDummyBits int
	ClockDiv      int
	TotalSize     int // bytes
	PageSize      int
	SectorSize    int
	Model         string
}

// Definition is the static description of a board.
type Definition struct {
	Name               string
	Device             string
	IO                 Table
	DefaultClockName   string
	DefaultClockPeriod float64 // ns
	GatewareSize       int     // bytes reserved for the bitstream in flash
	Flash              FlashGeometry
	PlatformCommands   []string
	Programming        programmer.Board
}

// BitstreamCommand enables quad SPI configuration.
const BitstreamCommand = "set_property BITSTREAM.CONFIG.SPI_BUSWIDTH 4 [current_design]"

// CfgmemCommand converts the bitstream to a quad SPI flash image.
const CfgmemCommand = "write_cfgmem -force -format bin -interface spix4 -size 16 " +
	"-loadbit \"up 0x0 {build_name}.bit\" -file {build_name}.bin"

// Platform is a board descriptor configured for one build. It is built once
// and not modified afterwards, apart from AddPlatformCommand during setup.
type Platform struct {
	Name               string
	Device             string
	DefaultClockName   string
	DefaultClockPeriod float64
	GatewareSize       int
	Flash              FlashGeometry
	IO                 Table

	Toolchain          Toolchain
	BitstreamCommands  []string
	AdditionalCommands []string
	PlatformCommands   []string

	Programmer  programmer.Kind
	Programming programmer.Board
}

type options struct {
	toolchain  string
	programmer string
	flashPart  string
}

// Option customizes New.
type Option func(*options)

// WithToolchain selects the toolchain ("vivado" by default).
func WithToolchain(name string) Option {
	return func(o *options) { o.toolchain = name }
}

// WithProgrammer selects the programmer ("openocd" by default).
func WithProgrammer(name string) Option {
	return func(o *options) { o.programmer = name }
}

// WithFlashPart overrides the Vivado cfgmem part of the board definition.
func WithFlashPart(part string) Option {
	return func(o *options) { o.flashPart = part }
}

// New validates def and builds a descriptor from it. An unsupported
// toolchain or programmer selection aborts construction.
func New(def Definition, opts ...Option) (*Platform, error) {
	o := options{
		toolchain:  string(ToolchainVivado),
		programmer: string(programmer.KindOpenOCD),
	}
	for _, opt := range opts {
		opt(&o)
	}

	if def.Name == "" || def.Device == "" {
		return nil, fmt.Errorf("platform: definition needs a name and a device")
	}
	if err := def.IO.Validate(); err != nil {
		return nil, fmt.Errorf("platform %s: %w", def.Name, err)
	}
	if def.DefaultClockName != "" && def.IO.Count(def.DefaultClockName) == 0 {
		return nil, fmt.Errorf("platform %s: default clock %s not in pin table", def.Name, def.DefaultClockName)
	}

	tc, err := ParseToolchain(o.toolchain)
	if err != nil {
		return nil, err
	}
	kind, err := programmer.ParseKind(o.programmer)
	if err != nil {
		return nil, err
	}

	prog := def.Programming
	if o.flashPart != "" {
		prog.FlashPart = o.flashPart
	}

	return &Platform{
		Name:               def.Name,
		Device:             def.Device,
		DefaultClockName:   def.DefaultClockName,
		DefaultClockPeriod: def.DefaultClockPeriod,
		GatewareSize:       def.GatewareSize,
		Flash:              def.Flash,
		IO:                 def.IO.Clone(),
		Toolchain:          tc,
		BitstreamCommands:  []string{BitstreamCommand},
		AdditionalCommands: []string{CfgmemCommand},
		PlatformCommands:   append([]string(nil), def.PlatformCommands...),
		Programmer:         kind,
		Programming:        prog,
	}, nil
}

// AddPlatformCommand appends a raw constraint command emitted after the pin
// constraints.
func (p *Platform) AddPlatformCommand(cmd string) {
	p.PlatformCommands = append(p.PlatformCommands, cmd)
}

// ExpandCommands returns the post-bitstream commands with {build_name}
// substituted.
func (p *Platform) ExpandCommands(buildName string) []string {
	out := make([]string, len(p.AdditionalCommands))
	for i, c := range p.AdditionalCommands {
		out[i] = strings.ReplaceAll(c, "{build_name}", buildName)
	}
	return out
}

// CreateProgrammer returns the programmer handle for the selection made at
// construction time.
func (p *Platform) CreateProgrammer() (programmer.Programmer, error) {
	return programmer.Resolve(p.Programmer, p.Device, p.Programming)
}

// Constraints returns the resolved pin constraints of the whole table.
func (p *Platform) Constraints() []Constraint {
	return p.IO.Resolve()
}

// Request returns the resolved constraints of one record.
func (p *Platform) Request(name string, index int) ([]Constraint, error) {
	return p.IO.Request(name, index)
}

// DefaultClockFrequency returns the default clock in Hz, or 0 if the
// platform has no default clock.
func (p *Platform) DefaultClockFrequency() float64 {
	if p.DefaultClockPeriod <= 0 {
		return 0
	}
	return 1e9 / p.DefaultClockPeriod
}
