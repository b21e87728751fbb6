package bsdl

import (
	"fmt"
	"sort"
	"strings"
)

// PinMap maps port names to the package balls they are bonded to.
type PinMap struct {
	Name  string // pin map constant, usually the package name
	Ports map[string][]string
}

// ExtractPinMap returns the pin map selected by the PHYSICAL_PIN_MAP
// generic, or the only PIN_MAP_STRING constant when the generic has no
// default.
func ExtractPinMap(f *File) (*PinMap, error) {
	if f == nil || f.Entity == nil {
		return nil, fmt.Errorf("bsdl: empty file")
	}
	e := f.Entity

	selected := ""
	for _, g := range e.Generic {
		if strings.EqualFold(g.Name, "PHYSICAL_PIN_MAP") {
			selected = strings.Trim(g.Default, `"`)
		}
	}

	var candidates []*Constant
	for _, d := range e.Decls {
		if d.Constant != nil && strings.EqualFold(d.Constant.Type, "PIN_MAP_STRING") {
			candidates = append(candidates, d.Constant)
		}
	}

	var c *Constant
	for _, cand := range candidates {
		if selected != "" && strings.EqualFold(cand.Name, selected) {
			c = cand
		}
	}
	if c == nil {
		if len(candidates) != 1 {
			return nil, fmt.Errorf("bsdl: %s: cannot select a pin map (%d candidates, generic %q)", e.Name, len(candidates), selected)
		}
		c = candidates[0]
	}

	ports, err := parsePinMapString(c.Value.Text())
	if err != nil {
		return nil, fmt.Errorf("bsdl: %s: %w", c.Name, err)
	}
	return &PinMap{Name: c.Name, Ports: ports}, nil
}

// parsePinMapString splits "A:E8, B:(A1,A2)" style pin map strings.
func parsePinMapString(s string) (map[string][]string, error) {
	ports := make(map[string][]string)
	depth := 0
	start := 0
	flush := func(entry string) error {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			return nil
		}
		name, balls, ok := strings.Cut(entry, ":")
		if !ok {
			return fmt.Errorf("malformed pin map entry %q", entry)
		}
		balls = strings.Trim(strings.TrimSpace(balls), "()")
		for _, b := range strings.Split(balls, ",") {
			if b = strings.TrimSpace(b); b != "" {
				ports[strings.TrimSpace(name)] = append(ports[strings.TrimSpace(name)], b)
			}
		}
		return nil
	}
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				if err := flush(s[start:i]); err != nil {
					return nil, err
				}
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("unbalanced parentheses")
	}
	if err := flush(s[start:]); err != nil {
		return nil, err
	}
	return ports, nil
}

// Balls returns the reverse mapping, ball to port name.
func (m *PinMap) Balls() map[string]string {
	balls := make(map[string]string)
	for port, bs := range m.Ports {
		for _, b := range bs {
			balls[strings.ToUpper(b)] = port
		}
	}
	return balls
}

// PortFor returns the port bonded to ball.
func (m *PinMap) PortFor(ball string) (string, bool) {
	port, ok := m.Balls()[strings.ToUpper(ball)]
	return port, ok
}

// Unknown returns the balls from locations that the pin map does not
// contain, sorted and without duplicates.
func (m *PinMap) Unknown(locations []string) []string {
	balls := m.Balls()
	seen := make(map[string]bool)
	var out []string
	for _, l := range locations {
		l = strings.ToUpper(l)
		if _, ok := balls[l]; ok || seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}
