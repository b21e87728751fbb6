package ballmap

import (
	"bufio"
	"fmt"
	"html"
	"image/color"
	"io"
	"strings"
)

func hex(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func opacity(c color.NRGBA) string {
	return fmt.Sprintf("%.2f", float32(c.A)/255)
}

var anchors = map[Align]string{
	AlignStart:  "start",
	AlignCenter: "middle",
	AlignEnd:    "end",
}

// SVG writes r as a standalone SVG document. Balls carry a <title> listing
// the ports bound to them.
func SVG(w io.Writer, r *Render) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, `<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">`+"\n",
		r.Size.X, r.Size.Y, r.Size.X, r.Size.Y)
	fmt.Fprintf(bw, "<title>%s</title>\n", html.EscapeString(r.Title))

	for _, s := range r.Rectangles {
		fmt.Fprintf(bw, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" fill-opacity="%s" stroke="%s" stroke-width="%.1f"/>`+"\n",
			s.Position.X, s.Position.Y, s.Size.X, s.Size.Y, hex(s.Fill), opacity(s.Fill), hex(s.Stroke), s.StrokeWidth)
	}

	pads := make(map[Vec]PadArea, len(r.Pads))
	for _, p := range r.Pads {
		pads[Vec{X: p.Position.X + p.Size.X/2, Y: p.Position.Y + p.Size.Y/2}] = p
	}
	for _, c := range r.Circles {
		p, ok := pads[c.Center]
		if !ok {
			fmt.Fprintf(bw, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>`+"\n", c.Center.X, c.Center.Y, c.Radius, hex(c.Fill))
			continue
		}
		title := p.Ball
		if len(p.Ports) > 0 {
			title += ": " + strings.Join(p.Ports, ", ") + " (" + p.IOStandard + ")"
		}
		fmt.Fprintf(bw, `<circle id="%s" cx="%.1f" cy="%.1f" r="%.1f" fill="%s"><title>%s</title></circle>`+"\n",
			p.Ball, c.Center.X, c.Center.Y, c.Radius, hex(c.Fill), html.EscapeString(title))
	}

	for _, l := range r.Labels {
		fmt.Fprintf(bw, `<text x="%.1f" y="%.1f" font-family="sans-serif" font-size="%.1f" fill="%s" text-anchor="%s" dominant-baseline="middle">%s</text>`+"\n",
			l.Position.X, l.Position.Y, l.Size, hex(l.Color), anchors[l.Align], html.EscapeString(l.Text))
	}

	fmt.Fprintln(bw, "</svg>")
	return bw.Flush()
}
