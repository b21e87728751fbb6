package ballmap

import "image/color"

// Vec is a 2D position or size in logical pixels.
type Vec struct {
	X float32
	Y float32
}

// RectShape is a filled, optionally stroked rectangle.
type RectShape struct {
	Position    Vec
	Size        Vec
	Fill        color.NRGBA
	Stroke      color.NRGBA
	StrokeWidth float32
}

// CircleShape is a filled circle.
type CircleShape struct {
	Center Vec
	Radius float32
	Fill   color.NRGBA
}

// Align is the horizontal anchoring of a label relative to its position.
type Align int

const (
	AlignStart Align = iota
	AlignCenter
	AlignEnd
)

// LabelShape is a line of text.
type LabelShape struct {
	Position Vec
	Text     string
	Color    color.NRGBA
	Size     float32
	Align    Align
}

// PadArea is the hit box of one ball, with what is bound to it.
type PadArea struct {
	Ball       string
	Position   Vec
	Size       Vec
	Ports      []string
	IOStandard string
	Shared     bool // bound to more than one distinct signal
}

var (
	colorBody     = color.NRGBA{R: 25, G: 30, B: 40, A: 230}
	colorOutline  = color.NRGBA{R: 215, G: 222, B: 233, A: 255}
	colorUnused   = color.NRGBA{R: 90, G: 96, B: 110, A: 255}
	colorShared   = color.NRGBA{R: 220, G: 68, B: 68, A: 255}
	colorFallback = color.NRGBA{R: 200, G: 200, B: 210, A: 255}
	colorMarker   = color.NRGBA{R: 250, G: 250, B: 250, A: 255}
)

var standardColors = map[string]color.NRGBA{
	"LVCMOS33":    {R: 66, G: 135, B: 245, A: 255},
	"SSTL15":      {R: 235, G: 138, B: 52, A: 255},
	"DIFF_SSTL15": {R: 245, G: 196, B: 66, A: 255},
}

// ColorFor returns the fill used for balls of the given IOStandard.
func ColorFor(std string) color.NRGBA {
	if c, ok := standardColors[std]; ok {
		return c
	}
	return colorFallback
}

// contrastColor picks black or white text for a background (BT.709 luma).
func contrastColor(bg color.NRGBA) color.NRGBA {
	r := float32(bg.R) / 255
	g := float32(bg.G) / 255
	b := float32(bg.B) / 255
	if 0.2126*r+0.7152*g+0.0722*b < 0.5 {
		return color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	}
	return color.NRGBA{A: 255}
}
