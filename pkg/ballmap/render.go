// Package ballmap lays out the package balls of a platform and colours the
// ones its pin table uses.
package ballmap

import (
	"fmt"
	"sort"

	"github.com/OpenTraceLab/OpenTraceBoards/pkg/platform"
	"github.com/OpenTraceLab/OpenTraceBoards/pkg/xilinx"
)

// Options control the layout scale.
type Options struct {
	Scale float32
}

func normalize(opts *Options) Options {
	cfg := Options{Scale: 1}
	if opts != nil && opts.Scale > 0 {
		cfg.Scale = opts.Scale
	}
	return cfg
}

func (o Options) size(v float32) float32 { return v * o.Scale }

func (o Options) text(v float32) float32 {
	if s := v * o.Scale; s >= 6 {
		return s
	}
	return 6
}

// Render is a drawable ball map.
type Render struct {
	Title      string
	Package    xilinx.Package
	Size       Vec
	Rectangles []RectShape
	Circles    []CircleShape
	Labels     []LabelShape
	Pads       []PadArea
	Legend     []string // IOStandards in use, sorted
}

// Pad returns the pad of the named ball.
func (r *Render) Pad(ball string) (PadArea, bool) {
	for _, p := range r.Pads {
		if p.Ball == ball {
			return p, true
		}
	}
	return PadArea{}, false
}

// PadAt returns the pad under the point, if any.
func (r *Render) PadAt(pt Vec) (PadArea, bool) {
	for _, p := range r.Pads {
		if pt.X >= p.Position.X && pt.X < p.Position.X+p.Size.X &&
			pt.Y >= p.Position.Y && pt.Y < p.Position.Y+p.Size.Y {
			return p, true
		}
	}
	return PadArea{}, false
}

type binding struct {
	ports []string
	std   string
}

// New lays out the package of p. Balls used by the pin table are coloured by
// IOStandard, balls bound to more than one distinct signal are drawn in red.
func New(p *platform.Platform, opts *Options) (*Render, error) {
	pkg, err := xilinx.LookupPackage(p.Device)
	if err != nil {
		return nil, fmt.Errorf("ballmap: %w", err)
	}
	cfg := normalize(opts)

	bound := make(map[string]*binding)
	legend := make(map[string]bool)
	for _, c := range p.Constraints() {
		b := bound[c.Pin]
		if b == nil {
			b = &binding{std: string(c.IOStandard)}
			bound[c.Pin] = b
		}
		b.ports = append(b.ports, c.Port)
		legend[string(c.IOStandard)] = true
	}
	shared := p.IO.SharedPins()
	for ball := range bound {
		if !pkg.Contains(ball) {
			return nil, fmt.Errorf("ballmap: %s is outside package %s", ball, pkg.Name)
		}
	}

	cell := cfg.size(28)
	margin := cfg.size(30)
	radius := cfg.size(10)
	width := float32(pkg.Cols)*cell + 2*margin
	height := float32(pkg.Rows)*cell + 2*margin

	r := &Render{
		Title:   fmt.Sprintf("%s %s (%dx%d)", p.Name, pkg.Name, pkg.Rows, pkg.Cols),
		Package: pkg,
		Size:    Vec{X: width, Y: height},
	}
	r.Rectangles = append(r.Rectangles, RectShape{
		Size:        r.Size,
		Fill:        colorBody,
		Stroke:      colorOutline,
		StrokeWidth: 2,
	})
	// A1 corner marker
	r.Circles = append(r.Circles, CircleShape{
		Center: Vec{X: margin - cfg.size(10), Y: margin - cfg.size(10)},
		Radius: cfg.size(5),
		Fill:   colorMarker,
	})

	for col := 0; col < pkg.Cols; col++ {
		r.Labels = append(r.Labels, LabelShape{
			Text:     fmt.Sprint(col + 1),
			Color:    colorOutline,
			Size:     cfg.text(8),
			Align:    AlignCenter,
			Position: Vec{X: margin + float32(col)*cell + radius, Y: margin / 2},
		})
	}

	for row := 0; row < pkg.Rows; row++ {
		r.Labels = append(r.Labels, LabelShape{
			Text:     xilinx.RowName(row),
			Color:    colorOutline,
			Size:     cfg.text(8),
			Align:    AlignCenter,
			Position: Vec{X: margin / 2, Y: margin + float32(row)*cell + radius},
		})
		for col := 0; col < pkg.Cols; col++ {
			ball := xilinx.Ball(row, col)
			pos := Vec{X: margin + float32(col)*cell, Y: margin + float32(row)*cell}
			fill := colorUnused
			pad := PadArea{Ball: ball, Position: pos, Size: Vec{X: 2 * radius, Y: 2 * radius}}
			if b, ok := bound[ball]; ok {
				fill = ColorFor(b.std)
				if _, ok := shared[ball]; ok {
					fill = colorShared
					pad.Shared = true
				}
				pad.Ports = append([]string(nil), b.ports...)
				sort.Strings(pad.Ports)
				pad.IOStandard = b.std
			}
			center := Vec{X: pos.X + radius, Y: pos.Y + radius}
			r.Circles = append(r.Circles, CircleShape{Center: center, Radius: radius, Fill: fill})
			r.Labels = append(r.Labels, LabelShape{
				Text:     ball,
				Color:    contrastColor(fill),
				Size:     cfg.text(6),
				Align:    AlignCenter,
				Position: center,
			})
			r.Pads = append(r.Pads, pad)
		}
	}

	for std := range legend {
		r.Legend = append(r.Legend, std)
	}
	sort.Strings(r.Legend)
	return r, nil
}
