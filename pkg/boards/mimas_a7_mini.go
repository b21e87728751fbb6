package boards

import (
	"github.com/OpenTraceLab/OpenTraceBoards/pkg/platform"
	"github.com/OpenTraceLab/OpenTraceBoards/pkg/programmer"
)

var mimasA7MiniIO = platform.Table{
	{Name: "user_led", Index: 0, Pins: platform.Pins("K12"), IOStandard: platform.LVCMOS33},
	{Name: "user_led", Index: 1, Pins: platform.Pins("K13"), IOStandard: platform.LVCMOS33},
	{Name: "user_led", Index: 2, Pins: platform.Pins("R10"), IOStandard: platform.LVCMOS33},
	{Name: "user_led", Index: 3, Pins: platform.Pins("R13"), IOStandard: platform.LVCMOS33},
	{Name: "user_led", Index: 4, Pins: platform.Pins("T13"), IOStandard: platform.LVCMOS33},
	{Name: "user_led", Index: 5, Pins: platform.Pins("R12"), IOStandard: platform.LVCMOS33},
	{Name: "user_led", Index: 6, Pins: platform.Pins("T12"), IOStandard: platform.LVCMOS33},
	{Name: "user_led", Index: 7, Pins: platform.Pins("R11"), IOStandard: platform.LVCMOS33},

	{Name: "user_btn", Index: 0, Pins: platform.Pins("F5"), IOStandard: platform.LVCMOS33},
	{Name: "user_btn", Index: 1, Pins: platform.Pins("J4"), IOStandard: platform.LVCMOS33},
	{Name: "user_btn", Index: 2, Pins: platform.Pins("M6"), IOStandard: platform.LVCMOS33},
	{Name: "user_btn", Index: 3, Pins: platform.Pins("N6"), IOStandard: platform.LVCMOS33},

	{Name: "clk100", Index: 0, Pins: platform.Pins("N11"), IOStandard: platform.LVCMOS33},

	// Same ball as user_btn 3. This is how the board is wired.
	{Name: "cpu_reset", Index: 0, Pins: platform.Pins("N6"), IOStandard: platform.LVCMOS33},

	// J13 QSPI_DQ0 MOSI, J14 QSPI_DQ1 MISO, K15 QSPI_DQ2 ~WP,
	// K16 QSPI_DQ3 ~HOLD, L12 QSPI_CS ~CS, E8 CCLK.
	// The clock is only reachable through STARTUPE2.
	{Name: "spiflash_4x", Index: 0, IOStandard: platform.LVCMOS33, Subsignals: []platform.Subsignal{
		platform.Sub("cs_n", platform.Pins("L12"), ""),
		platform.Sub("dq", platform.Pins("J13", "J14", "K15", "K16"), ""),
	}},
	{Name: "spiflash_1x", Index: 0, IOStandard: platform.LVCMOS33, Subsignals: []platform.Subsignal{
		platform.Sub("cs_n", platform.Pins("L12"), ""),
		platform.Sub("mosi", platform.Pins("J13"), ""),
		platform.Sub("miso", platform.Pins("J14"), ""),
		platform.Sub("wp", platform.Pins("K15"), ""),
		platform.Sub("hold", platform.Pins("K16"), ""),
	}},

	{Name: "serial", Index: 0, IOStandard: platform.LVCMOS33, Subsignals: []platform.Subsignal{
		platform.Sub("tx", platform.Pins("N16"), ""),
		platform.Sub("rx", platform.Pins("M16"), ""),
	}},

	{Name: "ddram", Index: 0, Misc: []string{"SLEW=FAST"}, Subsignals: []platform.Subsignal{
		platform.Sub("a", platform.Pins(
			"C7 B1 C1 D6 A3 C6 A2 B6",
			"B2 B5 E2 C2 C3 B4"), platform.SSTL15),
		platform.Sub("ba", platform.Pins("D3 E3 D1"), platform.SSTL15),
		platform.Sub("ras_n", platform.Pins("D4"), platform.SSTL15),
		platform.Sub("cas_n", platform.Pins("C4"), platform.SSTL15),
		platform.Sub("we_n", platform.Pins("B7"), platform.SSTL15),
		platform.Sub("dm", platform.Pins("E5 J5"), platform.SSTL15),
		platform.Sub("dq", platform.Pins(
			"G2  F3  H4   G5  G1  F4  H5  G4",
			"H2  H1  K1  J1  L3  L2  K3  K2"), platform.SSTL15,
			"IN_TERM=UNTUNED_SPLIT_40"),
		platform.Sub("dqs_p", platform.Pins("F2 J3"), platform.DiffSSTL15),
		platform.Sub("dqs_n", platform.Pins("E1 H3"), platform.DiffSSTL15),
		platform.Sub("clk_p", platform.Pins("A5"), platform.DiffSSTL15),
		platform.Sub("clk_n", platform.Pins("A4"), platform.DiffSSTL15),
		platform.Sub("cke", platform.Pins("D5"), platform.SSTL15),
		platform.Sub("odt", platform.Pins("A7"), platform.SSTL15),
		platform.Sub("cs_n", platform.Pins("E6"), platform.SSTL15),
		platform.Sub("reset_n", platform.Pins("K5"), platform.SSTL15),
	}},
}

// MimasA7Mini is the Numato Mimas A7 Mini (Artix-7 35T, FTG256).
//
// The populated flash is a Spansion S25FL256S (ID 0x00190201) while the
// Vivado cfgmem part below names a Micron N25Q128. Override it with
// platform.WithFlashPart once checked against the board in hand.
var MimasA7Mini = platform.Definition{
	Name:               "mimas_a7_mini",
	Device:             "xc7a35t-ftg256-1",
	IO:                 mimasA7MiniIO,
	DefaultClockName:   "clk100",
	DefaultClockPeriod: 10.0,

	// UG470: 17,536,096 bits = 2,192,012 bytes (0x21728C), rounded up.
	GatewareSize: 0x220000,

	Flash: platform.FlashGeometry{
		ReadDummyBits: 10,
		ClockDiv:      4,
		TotalSize:     (128 / 8) * 1024 * 1024,
		PageSize:      256,
		SectorSize:    0x10000,
		Model:         "n25q128",
	},
	PlatformCommands: []string{"set_property INTERNAL_VREF 0.750 [get_iobanks 35]"},
	Programming: programmer.Board{
		OpenOCDConfig: "board/numato_mimas_a7_mini.cfg",
		XC3SProgCable: programmer.DefaultXC3SProgCable,
		FlashPart:     DefaultFlashPart,
	},
}
