// Package programmer resolves a programmer selection into a configured
// handle and turns load/flash requests into command plans for the external
// tools (OpenOCD, xc3sprog, Vivado hardware manager).
package programmer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/OpenTraceLab/OpenTraceBoards/pkg/xilinx"
)

// Kind is one of the supported programmer selections.
type Kind string

const (
	KindOpenOCD  Kind = "openocd"
	KindXC3SProg Kind = "xc3sprog"
	KindVivado   Kind = "vivado"
)

// Kinds lists every supported selection in display order.
var Kinds = []Kind{KindOpenOCD, KindXC3SProg, KindVivado}

// ErrUnsupportedProgrammer matches any *UnsupportedProgrammerError.
var ErrUnsupportedProgrammer = errors.New("programmer: unsupported selection")

// ErrNoFlashProxy is returned when a flash operation needs a bitstream proxy
// and the programmer has none configured.
var ErrNoFlashProxy = errors.New("programmer: no flash proxy configured")

// UnsupportedProgrammerError reports a selection outside Kinds.
type UnsupportedProgrammerError struct {
	Value string
}

func (e *UnsupportedProgrammerError) Error() string {
	return fmt.Sprintf("%s programmer is not supported", e.Value)
}

// Is makes errors.Is(err, ErrUnsupportedProgrammer) work.
func (e *UnsupportedProgrammerError) Is(target error) bool {
	return target == ErrUnsupportedProgrammer
}

// ParseKind maps a selection string onto a Kind.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", &UnsupportedProgrammerError{Value: s}
}

// Board holds the per-board inputs of programmer resolution.
type Board struct {
	OpenOCDConfig string // e.g. "board/numato_narvi.cfg"
	XC3SProgCable string
	FlashPart     string // Vivado cfgmem part
}

// DefaultXC3SProgCable is the cable identifier used for every board.
const DefaultXC3SProgCable = "nexys4"

// Programmer is a configured handle for one external programming tool.
type Programmer interface {
	Name() string
	LoadBitstream(bitstream string) (Plan, error)
	Flash(address uint32, data string) (Plan, error)
}

// Resolve builds the programmer handle for kind. It has no side effects.
func Resolve(kind Kind, device string, b Board) (Programmer, error) {
	switch kind {
	case KindOpenOCD:
		return &OpenOCD{
			Config:             b.OpenOCDConfig,
			FlashProxyBasename: ProxyBasename(device),
		}, nil
	case KindXC3SProg:
		cable := b.XC3SProgCable
		if cable == "" {
			cable = DefaultXC3SProgCable
		}
		return &XC3SProg{Cable: cable}, nil
	case KindVivado:
		if strings.TrimSpace(b.FlashPart) == "" {
			return nil, fmt.Errorf("programmer: vivado needs a flash part")
		}
		return &VivadoProgrammer{FlashPart: b.FlashPart}, nil
	default:
		return nil, &UnsupportedProgrammerError{Value: string(kind)}
	}
}

// ProxyBasename returns the JTAG-to-SPI bridge bitstream name for a device.
func ProxyBasename(device string) string {
	return fmt.Sprintf("bscan_spi_%s.bit", xilinx.Family(device))
}
