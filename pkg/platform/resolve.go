package platform

import (
	"fmt"
	"regexp"
	"sort"
)

// Constraint is one physical pin binding as handed to the vendor toolchain.
type Constraint struct {
	Signal     string // record name
	Index      int    // record index
	Subsignal  string // empty for plain records
	Bit        int    // bit within the signal, -1 for single-pin signals
	Port       string // top-level port name, e.g. "ddram_dq[3]"
	Pin        string
	IOStandard IOStandard
	Misc       []string

	base string
}

// PortBase returns the port name without the bit suffix.
func (c Constraint) PortBase() string {
	return c.base
}

// Resolve flattens the table into one constraint per physical location.
// Subsignals inherit the record IOStandard when they have none and the
// record misc attributes are appended to theirs.
func (t Table) Resolve() []Constraint {
	var out []Constraint
	for _, r := range t {
		out = append(out, t.resolveRecord(r)...)
	}
	return out
}

// Request returns the resolved constraints of a single record.
func (t Table) Request(name string, index int) ([]Constraint, error) {
	r, ok := t.Lookup(name, index)
	if !ok {
		return nil, fmt.Errorf("platform: no signal %s %d", name, index)
	}
	return t.resolveRecord(r), nil
}

func (t Table) resolveRecord(r Record) []Constraint {
	indexed := t.Count(r.Name) > 1
	if len(r.Subsignals) == 0 {
		return expand(r.Name, r.Index, "", indexed, r.Pins, r.IOStandard, r.Misc)
	}
	var out []Constraint
	for _, s := range r.Subsignals {
		std := s.IOStandard
		if std == "" {
			std = r.IOStandard
		}
		misc := append(append([]string(nil), s.Misc...), r.Misc...)
		out = append(out, expand(r.Name, r.Index, s.Name, indexed, s.Pins, std, misc)...)
	}
	return out
}

func expand(name string, index int, sub string, indexed bool, pins []string, std IOStandard, misc []string) []Constraint {
	base := portBase(name, index, sub, indexed)
	out := make([]Constraint, 0, len(pins))
	for i, pin := range pins {
		c := Constraint{
			Signal:     name,
			Index:      index,
			Subsignal:  sub,
			Bit:        -1,
			Port:       base,
			Pin:        pin,
			IOStandard: std,
			Misc:       misc,
			base:       base,
		}
		if len(pins) > 1 {
			c.Bit = i
			c.Port = fmt.Sprintf("%s[%d]", base, i)
		}
		out = append(out, c)
	}
	return out
}

func portBase(name string, index int, sub string, indexed bool) string {
	base := name
	if indexed {
		base = fmt.Sprintf("%s%d", name, index)
	}
	if sub != "" {
		base += "_" + sub
	}
	return base
}

var widthSuffix = regexp.MustCompile(`_\d+x$`)

// wiring strips the bus width suffix of alternative views of the same
// wiring, so spiflash_4x and spiflash_1x both give spiflash.
func wiring(name string) string {
	return widthSuffix.ReplaceAllString(name, "")
}

// SharedPins returns, for every location bound to more than one distinct
// signal, the sorted list of ports using it. Records that are alternative
// views of the same wiring (spiflash_4x and spiflash_1x) do not conflict.
func (t Table) SharedPins() map[string][]string {
	byPin := make(map[string][]string)
	users := make(map[string]map[string]bool)
	for _, c := range t.Resolve() {
		byPin[c.Pin] = append(byPin[c.Pin], c.Port)
		if users[c.Pin] == nil {
			users[c.Pin] = make(map[string]bool)
		}
		users[c.Pin][wiring(c.Signal)] = true
	}
	shared := make(map[string][]string)
	for pin, ports := range byPin {
		if len(users[pin]) > 1 {
			sort.Strings(ports)
			shared[pin] = ports
		}
	}
	return shared
}
