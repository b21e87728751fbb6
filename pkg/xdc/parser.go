// Package xdc writes Vivado XDC constraints for a platform and reads them
// back so existing constraint files can be compared against a pin table.
package xdc

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
)

// Parser reads XDC files.
type Parser struct {
	parser *participle.Parser[File]
}

// NewParser builds the participle parser.
func NewParser() (*Parser, error) {
	parser, err := participle.Build[File](
		participle.Lexer(XDCLexer),
		participle.Elide("Comment", "Whitespace", "Continuation"),
	)
	if err != nil {
		return nil, fmt.Errorf("xdc: build parser: %w", err)
	}
	return &Parser{parser: parser}, nil
}

// Parse parses constraints from r.
func (p *Parser) Parse(r io.Reader) (*File, error) {
	f, err := p.parser.Parse("", r)
	if err != nil {
		return nil, fmt.Errorf("xdc: %w", err)
	}
	return f, nil
}

// ParseString parses constraints from a string.
func (p *Parser) ParseString(input string) (*File, error) {
	f, err := p.parser.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("xdc: %w", err)
	}
	return f, nil
}

// ParseFile parses the constraint file at path.
func (p *Parser) ParseFile(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("xdc: open: %w", err)
	}
	defer fh.Close()
	return p.Parse(fh)
}

// Property is one property assignment to one or more ports.
type Property struct {
	Name  string
	Value string
	Ports []string
	Line  int
}

// Clock is a create_clock constraint.
type Clock struct {
	Name   string
	Period float64
	Ports  []string
	Line   int
}

// Properties returns every port property set by the file, expanding -dict
// forms. Properties applied to anything other than get_ports are skipped.
func (f *File) Properties() []Property {
	var props []Property
	for _, cmd := range f.Commands {
		if cmd.Name != "set_property" {
			continue
		}
		ports, rest := portsOf(cmd.Args)
		if ports == nil {
			continue
		}
		if len(rest) >= 2 && rest[0].Flag != nil && *rest[0].Flag == "-dict" {
			kv := rest[1].Fields()
			for i := 0; i+1 < len(kv); i += 2 {
				props = append(props, Property{Name: strings.ToUpper(kv[i]), Value: kv[i+1], Ports: ports, Line: cmd.Pos.Line})
			}
			continue
		}
		if len(rest) >= 2 {
			props = append(props, Property{Name: strings.ToUpper(rest[0].Text()), Value: rest[1].Text(), Ports: ports, Line: cmd.Pos.Line})
		}
	}
	return props
}

// Clocks returns the create_clock constraints of the file.
func (f *File) Clocks() ([]Clock, error) {
	var clocks []Clock
	for _, cmd := range f.Commands {
		if cmd.Name != "create_clock" {
			continue
		}
		c := Clock{Line: cmd.Pos.Line}
		ports, rest := portsOf(cmd.Args)
		c.Ports = ports
		for i := 0; i < len(rest); i++ {
			if rest[i].Flag == nil || i+1 >= len(rest) {
				continue
			}
			switch *rest[i].Flag {
			case "-name":
				c.Name = rest[i+1].Text()
				i++
			case "-period":
				v, err := strconv.ParseFloat(rest[i+1].Text(), 64)
				if err != nil {
					return nil, fmt.Errorf("xdc: line %d: bad period: %w", cmd.Pos.Line, err)
				}
				c.Period = v
				i++
			}
		}
		if c.Name == "" && len(c.Ports) > 0 {
			c.Name = c.Ports[0]
		}
		clocks = append(clocks, c)
	}
	return clocks, nil
}

func portsOf(args []*Arg) ([]string, []*Arg) {
	var ports []string
	var rest []*Arg
	for _, a := range args {
		if a.Call != nil && a.Call.Name == "get_ports" {
			for _, ca := range a.Call.Args {
				ports = append(ports, ca.Fields()...)
			}
			continue
		}
		rest = append(rest, a)
	}
	return ports, rest
}

// Assignment is the folded view of all properties applied to one port.
type Assignment struct {
	Port       string
	Pin        string
	IOStandard string
	Misc       []string // "NAME=VALUE", in file order
}

// Assignments folds the file's port properties by port, sorted by port
// name. PACKAGE_PIN and LOC both set the pin.
func (f *File) Assignments() []Assignment {
	byPort := make(map[string]*Assignment)
	for _, p := range f.Properties() {
		for _, port := range p.Ports {
			a, ok := byPort[port]
			if !ok {
				a = &Assignment{Port: port}
				byPort[port] = a
			}
			switch p.Name {
			case "PACKAGE_PIN", "LOC":
				a.Pin = p.Value
			case "IOSTANDARD":
				a.IOStandard = p.Value
			default:
				a.Misc = append(a.Misc, p.Name+"="+p.Value)
			}
		}
	}
	out := make([]Assignment, 0, len(byPort))
	for _, a := range byPort {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Port < out[j].Port })
	return out
}
