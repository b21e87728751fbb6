package idcode

import "fmt"

// Manufacturers seen on FPGA boards and their configuration flash parts.
var manufacturers = map[uint16]Manufacturer{
	0x001: {Code: 0x001, Name: "AMD/Spansion"},
	0x020: {Code: 0x020, Name: "STMicroelectronics"},
	0x049: {Code: 0x049, Name: "Xilinx"},
	0x06E: {Code: 0x06E, Name: "Altera"},
	0x0C2: {Code: 0x0C2, Name: "Macronix"},
	0x089: {Code: 0x089, Name: "Intel"},
	0x0EF: {Code: 0x0EF, Name: "Winbond"},
	0x10E: {Code: 0x10E, Name: "Lattice"},
	0x15E: {Code: 0x15E, Name: "Microchip"},
}

// LookupManufacturer returns the JEP106 entry for code. Unknown codes get a
// placeholder name and ok == false.
func LookupManufacturer(code uint16) (Manufacturer, bool) {
	m, ok := manufacturers[code]
	if !ok {
		return Manufacturer{Code: code, Name: fmt.Sprintf("Unknown (0x%03X)", code)}, false
	}
	return m, true
}
