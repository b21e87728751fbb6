// Package kicadnet reads KiCad netlist exports and cross-checks them
// against a board pin table.
package kicadnet

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/chewxy/sexp"

	"github.com/OpenTraceLab/OpenTraceBoards/pkg/platform"
)

// Node is one component pin attached to a net.
type Node struct {
	Ref string
	Pin string
}

// Net is a named electrical connection.
type Net struct {
	Code  string
	Name  string
	Nodes []Node
}

// Component is a placed part from the (components ...) section.
type Component struct {
	Ref       string
	Value     string
	Footprint string
}

// Netlist is the subset of a KiCad export used for pin checks.
type Netlist struct {
	Source     string
	Components []Component
	Nets       []Net
}

// Probe checks that data is a single well-formed s-expression list. It does
// not understand quoted strings, so ParseFile only uses it to explain input
// the netlist reader rejected.
func Probe(data string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("kicadnet: malformed s-expression: %v", r)
		}
	}()
	exprs, err := sexp.ParseString(data)
	if err != nil {
		return fmt.Errorf("kicadnet: %w", err)
	}
	if len(exprs) != 1 {
		return fmt.Errorf("kicadnet: expected one top-level expression, got %d", len(exprs))
	}
	if exprs[0].IsLeaf() {
		return fmt.Errorf("kicadnet: top-level expression is not a list")
	}
	return nil
}

// Parse reads a netlist export.
func Parse(r io.Reader) (*Netlist, error) {
	exprs, err := readAll(r)
	if err != nil {
		return nil, fmt.Errorf("kicadnet: %w", err)
	}
	if len(exprs) == 0 {
		return nil, fmt.Errorf("kicadnet: empty input")
	}
	root := exprs[0]
	if root.head() != "export" {
		return nil, fmt.Errorf("kicadnet: line %d: expected (export ...), got %q", root.line, root.head())
	}

	nl := &Netlist{}
	if design := root.child("design"); design != nil {
		nl.Source = design.value("source")
	}
	if comps := root.child("components"); comps != nil {
		for _, c := range comps.children("comp") {
			nl.Components = append(nl.Components, Component{
				Ref:       c.value("ref"),
				Value:     c.value("value"),
				Footprint: c.value("footprint"),
			})
		}
	}
	nets := root.child("nets")
	if nets == nil {
		return nil, fmt.Errorf("kicadnet: no (nets ...) section")
	}
	for _, n := range nets.children("net") {
		net := Net{Code: n.value("code"), Name: n.value("name")}
		for _, nd := range n.children("node") {
			ref, pin := nd.value("ref"), nd.value("pin")
			if ref == "" || pin == "" {
				return nil, fmt.Errorf("kicadnet: line %d: node without ref or pin", nd.line)
			}
			net.Nodes = append(net.Nodes, Node{Ref: ref, Pin: pin})
		}
		nl.Nets = append(nl.Nets, net)
	}
	return nl, nil
}

// ParseFile parses the netlist at path. When parsing fails and the file is
// not even a single balanced expression, that is reported alongside.
func ParseFile(path string) (*Netlist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("kicadnet: %w", err)
	}
	nl, err := Parse(strings.NewReader(string(data)))
	if err != nil {
		if perr := Probe(string(data)); perr != nil {
			return nil, fmt.Errorf("%s: %w (%v)", path, err, perr)
		}
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return nl, nil
}

// Component returns the component with the given reference designator.
func (nl *Netlist) Component(ref string) (Component, bool) {
	for _, c := range nl.Components {
		if c.Ref == ref {
			return c, true
		}
	}
	return Component{}, false
}

// PinNets maps each pin of component ref to the net it is attached to.
func (nl *Netlist) PinNets(ref string) map[string]string {
	out := make(map[string]string)
	for _, n := range nl.Nets {
		for _, nd := range n.Nodes {
			if nd.Ref == ref {
				out[nd.Pin] = n.Name
			}
		}
	}
	return out
}

// Issue is a table location the netlist disagrees with.
type Issue struct {
	Port   string
	Pin    string
	Net    string
	Reason string
}

func (i Issue) String() string {
	if i.Net != "" {
		return fmt.Sprintf("%s (%s) on net %s: %s", i.Port, i.Pin, i.Net, i.Reason)
	}
	return fmt.Sprintf("%s (%s): %s", i.Port, i.Pin, i.Reason)
}

// Check reports table locations of component ref that are missing from the
// netlist or sit on an unconnected net. KiCad names floating pins
// "unconnected-(...)" or "Net-(...)" with a single node.
func Check(t platform.Table, nl *Netlist, ref string) []Issue {
	nets := nl.PinNets(ref)
	members := make(map[string]int, len(nl.Nets))
	for _, n := range nl.Nets {
		members[n.Name] = len(n.Nodes)
	}

	var issues []Issue
	for _, c := range t.Resolve() {
		net, ok := nets[c.Pin]
		switch {
		case !ok:
			issues = append(issues, Issue{Port: c.Port, Pin: c.Pin, Reason: "pin not in netlist"})
		case strings.HasPrefix(net, "unconnected-") || members[net] < 2:
			issues = append(issues, Issue{Port: c.Port, Pin: c.Pin, Net: net, Reason: "unconnected"})
		}
	}
	sort.SliceStable(issues, func(i, j int) bool { return issues[i].Port < issues[j].Port })
	return issues
}
