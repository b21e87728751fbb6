package boards

import (
	"github.com/OpenTraceLab/OpenTraceBoards/pkg/platform"
	"github.com/OpenTraceLab/OpenTraceBoards/pkg/programmer"
)

var narviIO = platform.Table{
	{Name: "user_led", Index: 0, Pins: platform.Pins("G13"), IOStandard: platform.LVCMOS33},

	{Name: "clk100", Index: 0, Pins: platform.Pins("D14"), IOStandard: platform.LVCMOS33},

	{Name: "cpu_reset", Index: 0, Pins: platform.Pins("T14"), IOStandard: platform.LVCMOS33},

	// K17 QSPI_DQ0 MOSI, K18 QSPI_DQ1 MISO, L14 QSPI_DQ2 ~WP,
	// M15 QSPI_DQ3 ~HOLD, M13 QSPI_CS ~CS, C8 CCLK.
	// The clock is only reachable through STARTUPE2.
	{Name: "spiflash_4x", Index: 0, IOStandard: platform.LVCMOS33, Subsignals: []platform.Subsignal{
		platform.Sub("cs_n", platform.Pins("M13"), ""),
		platform.Sub("dq", platform.Pins("K17", "K18", "L14", "M15"), ""),
	}},
	{Name: "spiflash_1x", Index: 0, IOStandard: platform.LVCMOS33, Subsignals: []platform.Subsignal{
		platform.Sub("cs_n", platform.Pins("M13"), ""),
		platform.Sub("mosi", platform.Pins("K17"), ""),
		platform.Sub("miso", platform.Pins("K18"), ""),
		platform.Sub("wp", platform.Pins("L14"), ""),
		platform.Sub("hold", platform.Pins("M15"), ""),
	}},

	{Name: "serial", Index: 0, IOStandard: platform.LVCMOS33, Subsignals: []platform.Subsignal{
		platform.Sub("tx", platform.Pins("N13"), ""),
		platform.Sub("rx", platform.Pins("L13"), ""),
	}},

	{Name: "ddram", Index: 0, Misc: []string{"SLEW=FAST"}, Subsignals: []platform.Subsignal{
		platform.Sub("a", platform.Pins(
			"P5 P6 T3 R4 V4 V5 V2 V3",
			"U2 U3 U1 T1 T2 R3"), platform.SSTL15),
		platform.Sub("ba", platform.Pins("T6 V6 V7"), platform.SSTL15),
		platform.Sub("ras_n", platform.Pins("T5"), platform.SSTL15),
		platform.Sub("cas_n", platform.Pins("R7"), platform.SSTL15),
		platform.Sub("we_n", platform.Pins("R6"), platform.SSTL15),
		platform.Sub("dm", platform.Pins("K4 M3"), platform.SSTL15),
		platform.Sub("dq", platform.Pins(
			"L4  K3  K2  K6  L6  L5  M4  M6",
			"M2  M1  N1  N5  N4  P2  P1  R2"), platform.SSTL15,
			"IN_TERM=UNTUNED_SPLIT_40"),
		platform.Sub("dqs_p", platform.Pins("K1 N3"), platform.DiffSSTL15),
		platform.Sub("dqs_n", platform.Pins("L1 N2"), platform.DiffSSTL15),
		platform.Sub("clk_p", platform.Pins("R5"), platform.DiffSSTL15),
		platform.Sub("clk_n", platform.Pins("T4"), platform.DiffSSTL15),
		platform.Sub("cke", platform.Pins("U6"), platform.SSTL15),
		platform.Sub("odt", platform.Pins("P7"), platform.SSTL15),
		platform.Sub("cs_n", platform.Pins("U7"), platform.SSTL15),
		platform.Sub("reset_n", platform.Pins("M5"), platform.SSTL15),
	}},
}

// Narvi is the Numato Narvi (Spartan-7 50, CSGA324) with a Numonyx N25Q128A
// configuration flash.
var Narvi = platform.Definition{
	Name:               "narvi",
	Device:             "xc7s50csga324-1",
	IO:                 narviIO,
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
	PlatformCommands: []string{"set_property INTERNAL_VREF 0.750 [get_iobanks 34]"},
	Programming: programmer.Board{
		OpenOCDConfig: "board/numato_narvi.cfg",
		XC3SProgCable: programmer.DefaultXC3SProgCable,
		FlashPart:     DefaultFlashPart,
	},
}
