// Package xilinx knows the naming scheme of Xilinx 7-series part numbers and
// the identification data of the parts used by the supported boards.
package xilinx

import (
	"fmt"
	"regexp"
	"strings"
)

// Device is a parsed Xilinx part number.
type Device struct {
	ID      string // as written, e.g. "xc7a35t-ftg256-1"
	Part    string // "xc7a35t"
	Package string // "ftg256"
	Speed   string // "-1"
}

// Family returns the prefix of a device id before its first hyphen. This is
// what bitstream proxy images are named after ("xc7a35t-ftg256-1" gives
// "xc7a35t", "xc7s50csga324-1" gives "xc7s50csga324").
func Family(id string) string {
	if i := strings.IndexByte(id, '-'); i >= 0 {
		return id[:i]
	}
	return id
}

var deviceRe = regexp.MustCompile(`^(xc7[aksvz]\d+t?)-?([a-z]+\d+)-?(\d+[a-z]?)$`)

// ParseDevice splits a 7-series part id into part, package and speed grade.
// Both the hyphenated ("xc7a35t-ftg256-1") and the compact
// ("xc7s50csga324-1") spellings are accepted.
func ParseDevice(id string) (Device, error) {
	m := deviceRe.FindStringSubmatch(strings.ToLower(id))
	if m == nil {
		return Device{}, fmt.Errorf("xilinx: unrecognized device %q", id)
	}
	return Device{
		ID:      id,
		Part:    m[1],
		Package: m[2],
		Speed:   "-" + m[3],
	}, nil
}

func (d Device) String() string {
	return fmt.Sprintf("%s (part %s, package %s, speed %s)", d.ID, d.Part, d.Package, d.Speed)
}
