package xilinx

import (
	"fmt"

	"github.com/OpenTraceLab/OpenTraceBoards/pkg/idcode"
)

// PartInfo describes the JTAG identity of a 7-series die.
type PartInfo struct {
	Name     string
	Family   string // "Artix-7", "Spartan-7"
	IDCode   uint32
	IRLength int
}

// Identity returns the decoded IDCODE of the part.
func (p PartInfo) Identity() idcode.IDCode {
	return idcode.Parse(p.IDCode)
}

var parts = map[string]PartInfo{
	"xc7a35t":  {Name: "xc7a35t", Family: "Artix-7", IDCode: 0x0362D093, IRLength: 6},
	"xc7a50t":  {Name: "xc7a50t", Family: "Artix-7", IDCode: 0x0362C093, IRLength: 6},
	"xc7a75t":  {Name: "xc7a75t", Family: "Artix-7", IDCode: 0x03632093, IRLength: 6},
	"xc7a100t": {Name: "xc7a100t", Family: "Artix-7", IDCode: 0x03631093, IRLength: 6},
	"xc7a200t": {Name: "xc7a200t", Family: "Artix-7", IDCode: 0x03636093, IRLength: 6},
	"xc7s50":   {Name: "xc7s50", Family: "Spartan-7", IDCode: 0x03622093, IRLength: 6},
}

// LookupPart returns the identity of the die used by device id.
func LookupPart(id string) (PartInfo, error) {
	d, err := ParseDevice(id)
	if err != nil {
		return PartInfo{}, err
	}
	p, ok := parts[d.Part]
	if !ok {
		return PartInfo{}, fmt.Errorf("xilinx: no IDCODE known for %s", d.Part)
	}
	return p, nil
}

// Package is the ball grid of a BGA package. Row letters skip I, O, Q, S, X
// and Z as on all Xilinx BGAs.
type Package struct {
	Name string
	Rows int
	Cols int
}

var packages = map[string]Package{
	"ftg256":  {Name: "ftg256", Rows: 16, Cols: 16},
	"csga324": {Name: "csga324", Rows: 18, Cols: 18},
	"cpg236":  {Name: "cpg236", Rows: 19, Cols: 19},
	"csg324":  {Name: "csg324", Rows: 18, Cols: 18},
	"fgg484":  {Name: "fgg484", Rows: 22, Cols: 22},
}

// LookupPackage returns the ball grid of the package used by device id.
func LookupPackage(id string) (Package, error) {
	d, err := ParseDevice(id)
	if err != nil {
		return Package{}, err
	}
	p, ok := packages[d.Package]
	if !ok {
		return Package{}, fmt.Errorf("xilinx: unknown package %s", d.Package)
	}
	return p, nil
}

const rowLetters = "ABCDEFGHJKLMNPRTUVWY"

// RowName returns the letter(s) naming the zero-based row. Packages with more
// than twenty rows continue with AA, AB, ...
func RowName(row int) string {
	n := len(rowLetters)
	if row < n {
		return string(rowLetters[row])
	}
	return string(rowLetters[row/n-1]) + string(rowLetters[row%n])
}

// Ball returns the ball name for zero-based row and column, e.g. (9, 11) is
// "K12".
func Ball(row, col int) string {
	return fmt.Sprintf("%s%d", RowName(row), col+1)
}

// ParseBall is the inverse of Ball.
func ParseBall(name string) (row, col int, err error) {
	i := 0
	for i < len(name) && name[i] >= 'A' && name[i] <= 'Z' {
		i++
	}
	if i == 0 || i > 2 || i == len(name) {
		return 0, 0, fmt.Errorf("xilinx: invalid ball %q", name)
	}
	letters := name[:i]
	var n int
	if _, err := fmt.Sscanf(name[i:], "%d", &n); err != nil || n < 1 {
		return 0, 0, fmt.Errorf("xilinx: invalid ball %q", name)
	}
	idx := func(c byte) int {
		for j := 0; j < len(rowLetters); j++ {
			if rowLetters[j] == c {
				return j
			}
		}
		return -1
	}
	if len(letters) == 1 {
		row = idx(letters[0])
	} else {
		hi, lo := idx(letters[0]), idx(letters[1])
		if hi < 0 || lo < 0 {
			row = -1
		} else {
			row = (hi+1)*len(rowLetters) + lo
		}
	}
	if row < 0 {
		return 0, 0, fmt.Errorf("xilinx: invalid row in ball %q", name)
	}
	return row, n - 1, nil
}

// Contains reports whether ball lies inside the package grid.
func (p Package) Contains(ball string) bool {
	r, c, err := ParseBall(ball)
	if err != nil {
		return false
	}
	return r < p.Rows && c < p.Cols
}
