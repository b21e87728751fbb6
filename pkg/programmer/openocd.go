package programmer

import (
	"fmt"
	"strings"
)

// OpenOCD drives the board through an OpenOCD board configuration file.
// Flashing goes through a JTAG-to-SPI bridge bitstream.
type OpenOCD struct {
	Config             string
	FlashProxyBasename string
	// Binary is the openocd executable; "openocd" when empty.
	Binary string
}

func (o *OpenOCD) Name() string { return string(KindOpenOCD) }

func (o *OpenOCD) LoadBitstream(bitstream string) (Plan, error) {
	return o.plan(
		"init",
		fmt.Sprintf("pld load 0 {%s}", bitstream),
		"exit",
	), nil
}

func (o *OpenOCD) Flash(address uint32, data string) (Plan, error) {
	if o.FlashProxyBasename == "" {
		return Plan{}, ErrNoFlashProxy
	}
	return o.plan(
		"init",
		fmt.Sprintf("jtagspi_init 0 {%s}", o.FlashProxyBasename),
		fmt.Sprintf("jtagspi_program {%s} 0x%x", data, address),
		"fpga_program",
		"exit",
	), nil
}

func (o *OpenOCD) plan(script ...string) Plan {
	bin := o.Binary
	if bin == "" {
		bin = "openocd"
	}
	return Plan{Steps: []Step{{
		Program: bin,
		Args:    []string{"-f", o.Config, "-c", strings.Join(script, "; ")},
	}}}
}
