// Package cable finds USB JTAG cables that can program the supported boards.
package cable

import (
	"context"
	"fmt"

	"github.com/google/gousb"
	"periph.io/x/conn/v3/physic"

	"github.com/OpenTraceLab/OpenTraceBoards/pkg/programmer"
)

// Kind groups cables by the tools able to drive them.
type Kind string

const (
	KindFTDI     Kind = "ftdi"     // FT2232H/FT232H MPSSE, OpenOCD or xc3sprog
	KindDigilent Kind = "digilent" // Digilent HS2/HS3 and onboard JTAG, all three tools
	KindXilinx   Kind = "xilinx"   // Platform Cable USB, Vivado only
)

// Info describes a detected cable.
type Info struct {
	Kind        Kind
	Description string
	VendorID    uint16
	ProductID   uint16
	MaxClock    physic.Frequency // highest TCK the cable supports
	Bus         int
	Address     int
}

// Label returns a one-line description of the cable.
func (i Info) Label() string {
	if i.Description != "" {
		return fmt.Sprintf("%s (%04X:%04X)", i.Description, i.VendorID, i.ProductID)
	}
	return fmt.Sprintf("%s (%04X:%04X)", i.Kind, i.VendorID, i.ProductID)
}

type knownCable struct {
	VendorID    uint16
	ProductID   uint16
	Kind        Kind
	Description string
	MaxClock    physic.Frequency
}

// MPSSE runs TCK at up to 30MHz (60MHz base clock divided by two).
var knownCables = []knownCable{
	{VendorID: 0x0403, ProductID: 0x6010, Kind: KindFTDI, Description: "FTDI FT2232H (Numato onboard JTAG)", MaxClock: 30 * physic.MegaHertz},
	{VendorID: 0x0403, ProductID: 0x6014, Kind: KindFTDI, Description: "FTDI FT232H", MaxClock: 30 * physic.MegaHertz},
	{VendorID: 0x0403, ProductID: 0x6011, Kind: KindFTDI, Description: "FTDI FT4232H", MaxClock: 30 * physic.MegaHertz},
	{VendorID: 0x1443, ProductID: 0x0007, Kind: KindDigilent, Description: "Digilent Adept USB", MaxClock: 30 * physic.MegaHertz},
	{VendorID: 0x03FD, ProductID: 0x0008, Kind: KindXilinx, Description: "Xilinx Platform Cable USB II", MaxClock: 12 * physic.MegaHertz},
	{VendorID: 0x03FD, ProductID: 0x0013, Kind: KindXilinx, Description: "Xilinx Platform Cable USB", MaxClock: 6 * physic.MegaHertz},
}

// Classify matches a VID/PID pair against the known cables.
func Classify(vid, pid uint16) (Info, bool) {
	for _, k := range knownCables {
		if k.VendorID == vid && k.ProductID == pid {
			return Info{
				Kind:        k.Kind,
				Description: k.Description,
				VendorID:    vid,
				ProductID:   pid,
				MaxClock:    k.MaxClock,
			}, true
		}
	}
	return Info{}, false
}

// Discover enumerates connected USB devices and returns the known JTAG
// cables among them. Devices are only inspected, never opened.
func Discover(ctx context.Context) ([]Info, error) {
	var found []Info
	usb := gousb.NewContext()
	defer usb.Close()

	_, err := usb.OpenDevices(func(desc *gousb.DeviceDesc) bool {
		select {
		case <-ctx.Done():
			return false
		default:
		}
		if info, ok := Classify(uint16(desc.Vendor), uint16(desc.Product)); ok {
			info.Bus = desc.Bus
			info.Address = desc.Address
			found = append(found, info)
		}
		return false
	})
	if err != nil && err != gousb.ErrorAccess {
		return found, fmt.Errorf("cable: enumerate: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return found, err
	}
	return found, nil
}

// Programmers returns the programmer selections able to drive a cable kind,
// preferred first.
func Programmers(k Kind) []programmer.Kind {
	switch k {
	case KindFTDI:
		return []programmer.Kind{programmer.KindOpenOCD, programmer.KindXC3SProg}
	case KindDigilent:
		return []programmer.Kind{programmer.KindVivado, programmer.KindOpenOCD, programmer.KindXC3SProg}
	case KindXilinx:
		return []programmer.Kind{programmer.KindVivado}
	}
	return nil
}

// Suggest returns the preferred programmer for a cable kind.
func Suggest(k Kind) (programmer.Kind, bool) {
	p := Programmers(k)
	if len(p) == 0 {
		return "", false
	}
	return p[0], true
}

// Supports reports whether selection can drive a cable of kind k.
func Supports(k Kind, selection programmer.Kind) bool {
	for _, p := range Programmers(k) {
		if p == selection {
			return true
		}
	}
	return false
}
