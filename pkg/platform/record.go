package platform

import (
	"errors"
	"fmt"
	"strings"
)

// IOStandard names the electrical signaling standard of a pin.
type IOStandard string

const (
	LVCMOS33   IOStandard = "LVCMOS33"
	SSTL15     IOStandard = "SSTL15"
	DiffSSTL15 IOStandard = "DIFF_SSTL15"
)

// Differential reports whether the standard is used on p/n pairs.
func (s IOStandard) Differential() bool {
	return strings.HasPrefix(string(s), "DIFF_")
}

// Subsignal is a named component of a composite record (e.g. "tx" within
// "serial").
type Subsignal struct {
	Name       string
	Pins       []string
	IOStandard IOStandard
	Misc       []string
}

// Record binds a logical signal to physical package pins.
// A record carries either Pins or Subsignals, never both.
type Record struct {
	Name       string
	Index      int
	Pins       []string
	Subsignals []Subsignal
	IOStandard IOStandard
	Misc       []string
}

// Pins splits each group on whitespace, so Pins("C7 B1", "B2") returns
// three locations.
func Pins(groups ...string) []string {
	var pins []string
	for _, g := range groups {
		pins = append(pins, strings.Fields(g)...)
	}
	return pins
}

// Sub is shorthand for building a Subsignal.
func Sub(name string, pins []string, std IOStandard, misc ...string) Subsignal {
	return Subsignal{Name: name, Pins: pins, IOStandard: std, Misc: misc}
}

// Subsignal returns the named subsignal of the record.
func (r Record) Subsignal(name string) (Subsignal, bool) {
	for _, s := range r.Subsignals {
		if s.Name == name {
			return s, true
		}
	}
	return Subsignal{}, false
}

// ErrDuplicateSignal is returned when two records share a (name, index) pair.
var ErrDuplicateSignal = errors.New("platform: duplicate signal")

// Table is the ordered pin table of one board revision.
type Table []Record

type signalKey struct {
	name  string
	index int
}

// Validate checks the structural invariants of the table. Physical pins
// shared between unrelated signals are allowed: the board wiring is
// authoritative.
func (t Table) Validate() error {
	seen := make(map[signalKey]bool, len(t))
	for _, r := range t {
		if r.Name == "" {
			return fmt.Errorf("platform: record with empty name at index %d", r.Index)
		}
		k := signalKey{r.Name, r.Index}
		if seen[k] {
			return fmt.Errorf("%w: %s %d", ErrDuplicateSignal, r.Name, r.Index)
		}
		seen[k] = true

		hasPins := len(r.Pins) > 0
		hasSubs := len(r.Subsignals) > 0
		switch {
		case hasPins && hasSubs:
			return fmt.Errorf("platform: %s %d has both pins and subsignals", r.Name, r.Index)
		case !hasPins && !hasSubs:
			return fmt.Errorf("platform: %s %d has no pins", r.Name, r.Index)
		}
		if err := checkPins(r.Pins); err != nil {
			return fmt.Errorf("platform: %s %d: %w", r.Name, r.Index, err)
		}

		subs := make(map[string]bool, len(r.Subsignals))
		for _, s := range r.Subsignals {
			if subs[s.Name] {
				return fmt.Errorf("%w: %s %d subsignal %s", ErrDuplicateSignal, r.Name, r.Index, s.Name)
			}
			subs[s.Name] = true
			if len(s.Pins) == 0 {
				return fmt.Errorf("platform: %s %d subsignal %s has no pins", r.Name, r.Index, s.Name)
			}
			if err := checkPins(s.Pins); err != nil {
				return fmt.Errorf("platform: %s %d subsignal %s: %w", r.Name, r.Index, s.Name, err)
			}
		}
	}
	return nil
}

func checkPins(pins []string) error {
	for i, p := range pins {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("empty location at bit %d", i)
		}
	}
	return nil
}

// Clone returns a deep copy of the table.
func (t Table) Clone() Table {
	if t == nil {
		return nil
	}
	out := make(Table, len(t))
	for i, r := range t {
		r.Pins = append([]string(nil), r.Pins...)
		r.Misc = append([]string(nil), r.Misc...)
		if r.Subsignals != nil {
			subs := make([]Subsignal, len(r.Subsignals))
			for j, s := range r.Subsignals {
				s.Pins = append([]string(nil), s.Pins...)
				s.Misc = append([]string(nil), s.Misc...)
				subs[j] = s
			}
			r.Subsignals = subs
		}
		out[i] = r
	}
	return out
}

// Lookup returns the record registered under name and index.
func (t Table) Lookup(name string, index int) (Record, bool) {
	for _, r := range t {
		if r.Name == name && r.Index == index {
			return r, true
		}
	}
	return Record{}, false
}

// Width returns the number of locations of a record, or of one of its
// subsignals when sub is non-empty. It returns 0 if nothing matches.
func (t Table) Width(name string, index int, sub string) int {
	r, ok := t.Lookup(name, index)
	if !ok {
		return 0
	}
	if sub == "" {
		return len(r.Pins)
	}
	s, ok := r.Subsignal(sub)
	if !ok {
		return 0
	}
	return len(s.Pins)
}

// Count returns how many records carry the given name.
func (t Table) Count(name string) int {
	n := 0
	for _, r := range t {
		if r.Name == name {
			n++
		}
	}
	return n
}
