package programmer

import (
	"fmt"
	"strings"
)

// VivadoProgrammer drives the Vivado hardware manager in batch mode.
type VivadoProgrammer struct {
	FlashPart string
	// Binary is the vivado executable; "vivado" when empty.
	Binary string
}

func (v *VivadoProgrammer) Name() string { return string(KindVivado) }

const hwDevice = "[lindex [get_hw_devices] 0]"

func (v *VivadoProgrammer) LoadBitstream(bitstream string) (Plan, error) {
	tcl := []string{
		"open_hw",
		"connect_hw_server",
		"open_hw_target",
		fmt.Sprintf("set_property PROGRAM.FILE {%s} %s", bitstream, hwDevice),
		"program_hw_devices " + hwDevice,
		"refresh_hw_device " + hwDevice,
		"quit",
	}
	return v.plan("load.tcl", tcl), nil
}

// Flash writes data to the configuration memory. The hardware manager
// places the image according to the file, so only address 0 is accepted.
func (v *VivadoProgrammer) Flash(address uint32, data string) (Plan, error) {
	if address != 0 {
		return Plan{}, fmt.Errorf("programmer: vivado flashes at offset 0 only, got 0x%x", address)
	}
	cfgmem := fmt.Sprintf("[get_property PROGRAM.HW_CFGMEM %s]", hwDevice)
	tcl := []string{
		"open_hw",
		"connect_hw_server",
		"open_hw_target",
		fmt.Sprintf("create_hw_cfgmem -hw_device %s -mem_dev [lindex [get_cfgmem_parts {%s}] 0]", hwDevice, v.FlashPart),
		"set_property PROGRAM.BLANK_CHECK 0 " + cfgmem,
		"set_property PROGRAM.ERASE 1 " + cfgmem,
		"set_property PROGRAM.CFG_PROGRAM 1 " + cfgmem,
		"set_property PROGRAM.VERIFY 1 " + cfgmem,
		"refresh_hw_device " + hwDevice,
		"set_property PROGRAM.ADDRESS_RANGE {use_file} " + cfgmem,
		fmt.Sprintf("set_property PROGRAM.FILES [list {%s}] %s", data, cfgmem),
		"set_property PROGRAM.UNUSED_PIN_TERMINATION {pull-none} " + cfgmem,
		fmt.Sprintf("create_hw_bitstream -hw_device %s [get_property PROGRAM.HW_CFGMEM_BITFILE %s]", hwDevice, hwDevice),
		"program_hw_devices " + hwDevice,
		"refresh_hw_device " + hwDevice,
		"program_hw_cfgmem -hw_cfgmem " + cfgmem,
		"quit",
	}
	return v.plan("flash.tcl", tcl), nil
}

func (v *VivadoProgrammer) plan(script string, tcl []string) Plan {
	bin := v.Binary
	if bin == "" {
		bin = "vivado"
	}
	return Plan{Steps: []Step{{
		Program: bin,
		Args:    []string{"-mode", "batch", "-nojournal", "-nolog", "-source", script},
		Script:  &Script{Name: script, Body: strings.Join(tcl, "\n") + "\n"},
	}}}
}
