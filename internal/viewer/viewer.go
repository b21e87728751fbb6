// Package viewer shows a ball map in a Gio window.
package viewer

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"strings"

	"gioui.org/app"
	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"github.com/oligo/gioview/theme"
	"golang.org/x/exp/shiny/materialdesign/icons"

	"github.com/OpenTraceLab/OpenTraceBoards/pkg/ballmap"
)

// Viewer draws one ball map and reports the ball under the pointer.
type Viewer struct {
	window *app.Window
	render *ballmap.Render
	th     *theme.Theme
	icon   *widget.Icon
	ops    op.Ops

	scale   float32
	origin  image.Point
	hovered string
}

// New creates a viewer for r in window w.
func New(w *app.Window, r *ballmap.Render) *Viewer {
	w.Option(app.Title("OpenTraceBoards - "+r.Title), app.Size(unit.Dp(900), unit.Dp(960)))
	v := &Viewer{
		window: w,
		render: r,
		th:     theme.NewTheme("", nil, true),
		scale:  1,
	}
	icon, err := widget.NewIcon(icons.HardwareDeveloperBoard)
	if err != nil {
		log.Printf("viewer: failed to load board icon: %v", err)
	} else {
		v.icon = icon
	}
	return v
}

// Run processes window events until the window is closed.
func (v *Viewer) Run() error {
	for {
		switch e := v.window.Event().(type) {
		case app.DestroyEvent:
			return e.Err
		case app.FrameEvent:
			gtx := app.NewContext(&v.ops, e)
			v.layout(gtx)
			e.Frame(gtx.Ops)
		}
	}
}

func (v *Viewer) layout(gtx layout.Context) layout.Dimensions {
	paint.FillShape(gtx.Ops, v.th.Palette.Bg, clip.Rect{Max: gtx.Constraints.Max}.Op())
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(v.header),
		layout.Flexed(1, v.board),
	)
}

func (v *Viewer) header(gtx layout.Context) layout.Dimensions {
	return layout.UniformInset(unit.Dp(12)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				if v.icon == nil {
					return layout.Dimensions{}
				}
				gtx.Constraints.Min = image.Pt(gtx.Dp(unit.Dp(28)), 0)
				gtx.Constraints.Max.X = gtx.Constraints.Min.X
				return v.icon.Layout(gtx, v.th.Palette.Fg)
			}),
			layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
			layout.Rigid(material.H6(v.th.Theme, v.render.Title).Layout),
			layout.Rigid(layout.Spacer{Width: unit.Dp(16)}.Layout),
			layout.Flexed(1, material.Body1(v.th.Theme, v.status()).Layout),
		)
	})
}

func (v *Viewer) status() string {
	if v.hovered == "" {
		return strings.Join(v.render.Legend, "  ")
	}
	pad, ok := v.render.Pad(v.hovered)
	if !ok || len(pad.Ports) == 0 {
		return v.hovered + ": unused"
	}
	return fmt.Sprintf("%s: %s (%s)", pad.Ball, strings.Join(pad.Ports, ", "), pad.IOStandard)
}

func (v *Viewer) board(gtx layout.Context) layout.Dimensions {
	size := gtx.Constraints.Max
	sx := float32(size.X) / v.render.Size.X
	sy := float32(size.Y) / v.render.Size.Y
	v.scale = min(sx, sy)
	v.origin = image.Pt(
		(size.X-int(v.render.Size.X*v.scale))/2,
		(size.Y-int(v.render.Size.Y*v.scale))/2,
	)

	v.handlePointer(gtx)

	for _, s := range v.render.Rectangles {
		lo, hi := v.pt(s.Position), v.pt(ballmap.Vec{X: s.Position.X + s.Size.X, Y: s.Position.Y + s.Size.Y})
		w := int(s.StrokeWidth * v.scale)
		if w > 0 {
			paint.FillShape(gtx.Ops, s.Stroke, clip.Rect{Min: lo, Max: hi}.Op())
		}
		paint.FillShape(gtx.Ops, s.Fill, clip.Rect{Min: lo.Add(image.Pt(w, w)), Max: hi.Sub(image.Pt(w, w))}.Op())
	}
	for _, c := range v.render.Circles {
		center := v.pt(c.Center)
		rad := int(c.Radius * v.scale)
		paint.FillShape(gtx.Ops, c.Fill, clip.Ellipse{
			Min: center.Sub(image.Pt(rad, rad)),
			Max: center.Add(image.Pt(rad, rad)),
		}.Op(gtx.Ops))
	}
	if pad, ok := v.render.Pad(v.hovered); ok {
		lo := v.pt(pad.Position)
		hi := v.pt(ballmap.Vec{X: pad.Position.X + pad.Size.X, Y: pad.Position.Y + pad.Size.Y})
		paint.FillShape(gtx.Ops, color.NRGBA{R: 255, G: 255, B: 255, A: 90}, clip.Ellipse{Min: lo, Max: hi}.Op(gtx.Ops))
	}
	for _, l := range v.render.Labels {
		v.label(gtx, l)
	}

	area := clip.Rect{Max: size}.Push(gtx.Ops)
	event.Op(gtx.Ops, v)
	area.Pop()
	return layout.Dimensions{Size: size}
}

func (v *Viewer) handlePointer(gtx layout.Context) {
	for {
		ev, ok := gtx.Event(pointer.Filter{Target: v, Kinds: pointer.Move | pointer.Leave})
		if !ok {
			return
		}
		pev, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		v.hovered = ""
		if pev.Kind == pointer.Move {
			pt := ballmap.Vec{
				X: (pev.Position.X - float32(v.origin.X)) / v.scale,
				Y: (pev.Position.Y - float32(v.origin.Y)) / v.scale,
			}
			if pad, ok := v.render.PadAt(pt); ok {
				v.hovered = pad.Ball
			}
		}
		v.window.Invalidate()
	}
}

func (v *Viewer) pt(p ballmap.Vec) image.Point {
	return image.Pt(v.origin.X+int(p.X*v.scale), v.origin.Y+int(p.Y*v.scale))
}

func (v *Viewer) label(gtx layout.Context, l ballmap.LabelShape) {
	size := l.Size * v.scale
	if size < 5 {
		return
	}
	box := image.Pt(int(size*4), int(size*1.6))
	at := v.pt(l.Position)
	switch l.Align {
	case ballmap.AlignCenter:
		at = at.Sub(image.Pt(box.X/2, box.Y/2))
	case ballmap.AlignEnd:
		at = at.Sub(image.Pt(box.X, box.Y/2))
	default:
		at = at.Sub(image.Pt(0, box.Y/2))
	}

	defer op.Offset(at).Push(gtx.Ops).Pop()
	gtx.Constraints = layout.Exact(box)
	lbl := material.Label(v.th.Theme, unit.Sp(size/gtx.Metric.PxPerSp), l.Text)
	lbl.Color = l.Color
	lbl.MaxLines = 1
	switch l.Align {
	case ballmap.AlignCenter:
		lbl.Alignment = text.Middle
	case ballmap.AlignEnd:
		lbl.Alignment = text.End
	}
	layout.W.Layout(gtx, lbl.Layout)
}
