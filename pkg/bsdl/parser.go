// Package bsdl reads the pin map of vendor BSDL files so board pin tables
// can be checked against the balls that actually exist on a package.
package bsdl

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/participle/v2"
)

// Parser reads BSDL files.
type Parser struct {
	parser *participle.Parser[File]
}

// NewParser builds the participle parser.
func NewParser() (*Parser, error) {
	parser, err := participle.Build[File](
		participle.Lexer(Lexer),
		participle.Elide("Comment", "Whitespace"),
		participle.UseLookahead(2),
	)
	if err != nil {
		return nil, fmt.Errorf("bsdl: build parser: %w", err)
	}
	return &Parser{parser: parser}, nil
}

// Parse parses a BSDL description from r.
func (p *Parser) Parse(r io.Reader) (*File, error) {
	f, err := p.parser.Parse("", r)
	if err != nil {
		return nil, fmt.Errorf("bsdl: %w", err)
	}
	return f, nil
}

// ParseString parses a BSDL description from a string.
func (p *Parser) ParseString(input string) (*File, error) {
	f, err := p.parser.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("bsdl: %w", err)
	}
	return f, nil
}

// ParseFile parses the BSDL file at path.
func (p *Parser) ParseFile(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("bsdl: open: %w", err)
	}
	defer fh.Close()
	return p.Parse(fh)
}
