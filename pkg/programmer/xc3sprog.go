package programmer

import (
	"fmt"
	"strconv"
)

// XC3SProg drives the board through xc3sprog with a fixed cable.
type XC3SProg struct {
	Cable              string
	FlashProxyBasename string
	Position           int
}

func (x *XC3SProg) Name() string { return string(KindXC3SProg) }

func (x *XC3SProg) LoadBitstream(bitstream string) (Plan, error) {
	return Plan{Steps: []Step{{
		Program: "xc3sprog",
		Args:    []string{"-v", "-c", x.Cable, "-p", strconv.Itoa(x.Position), bitstream},
	}}}, nil
}

// Flash requires FlashProxyBasename; xc3sprog reaches SPI flash only through
// a proxy bitstream.
func (x *XC3SProg) Flash(address uint32, data string) (Plan, error) {
	if x.FlashProxyBasename == "" {
		return Plan{}, ErrNoFlashProxy
	}
	return Plan{Steps: []Step{{
		Program: "xc3sprog",
		Args: []string{
			"-v", "-c", x.Cable, "-p", strconv.Itoa(x.Position),
			"-I" + x.FlashProxyBasename,
			fmt.Sprintf("%s:w:0x%x:BIN", data, address),
		},
	}}}, nil
}
