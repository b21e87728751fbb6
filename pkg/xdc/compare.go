package xdc

import (
	"fmt"
	"sort"

	"github.com/OpenTraceLab/OpenTraceBoards/pkg/platform"
)

// Mismatch is one difference between a pin table and a constraint file.
type Mismatch struct {
	Port  string
	Field string // "pin", "iostandard", "missing" or "extra"
	Want  string // from the pin table
	Got   string // from the constraint file
}

func (m Mismatch) String() string {
	switch m.Field {
	case "missing":
		return fmt.Sprintf("%s: not constrained (table has %s)", m.Port, m.Want)
	case "extra":
		return fmt.Sprintf("%s: not in table (file has %s)", m.Port, m.Got)
	}
	return fmt.Sprintf("%s: %s is %s, table has %s", m.Port, m.Field, m.Got, m.Want)
}

// Compare checks resolved table constraints against file assignments.
// Ports without a pin in the file (e.g. only a misc property) are ignored
// on the extra side.
func Compare(table []platform.Constraint, file []Assignment) []Mismatch {
	byPort := make(map[string]Assignment, len(file))
	for _, a := range file {
		byPort[a.Port] = a
	}

	var out []Mismatch
	seen := make(map[string]bool, len(table))
	for _, c := range table {
		seen[c.Port] = true
		a, ok := byPort[c.Port]
		if !ok || a.Pin == "" {
			out = append(out, Mismatch{Port: c.Port, Field: "missing", Want: c.Pin})
			continue
		}
		if a.Pin != c.Pin {
			out = append(out, Mismatch{Port: c.Port, Field: "pin", Want: c.Pin, Got: a.Pin})
		}
		if c.IOStandard != "" && a.IOStandard != string(c.IOStandard) {
			out = append(out, Mismatch{Port: c.Port, Field: "iostandard", Want: string(c.IOStandard), Got: a.IOStandard})
		}
	}
	for _, a := range file {
		if !seen[a.Port] && a.Pin != "" {
			out = append(out, Mismatch{Port: a.Port, Field: "extra", Got: a.Pin})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Port < out[j].Port })
	return out
}
