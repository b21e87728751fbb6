package kicadnet

import (
	"bufio"
	"fmt"
	"io"
	"unicode"
)

type tokenType int

const (
	tokenEOF tokenType = iota
	tokenOpen
	tokenClose
	tokenAtom
)

type token struct {
	typ   tokenType
	value string
	line  int
}

type lexer struct {
	r      *bufio.Reader
	peeked *rune
	line   int
}

func newLexer(r io.Reader) *lexer {
	return &lexer{r: bufio.NewReader(r), line: 1}
}

func (l *lexer) peek() (rune, error) {
	if l.peeked != nil {
		return *l.peeked, nil
	}
	ch, _, err := l.r.ReadRune()
	if err != nil {
		return 0, err
	}
	l.peeked = &ch
	return ch, nil
}

func (l *lexer) read() (rune, error) {
	if l.peeked != nil {
		ch := *l.peeked
		l.peeked = nil
		if ch == '\n' {
			l.line++
		}
		return ch, nil
	}
	ch, _, err := l.r.ReadRune()
	if err == nil && ch == '\n' {
		l.line++
	}
	return ch, err
}

func (l *lexer) next() (token, error) {
	for {
		ch, err := l.peek()
		if err == io.EOF {
			return token{typ: tokenEOF, line: l.line}, nil
		}
		if err != nil {
			return token{}, err
		}
		if !unicode.IsSpace(ch) {
			break
		}
		l.read()
	}

	ch, _ := l.peek()
	line := l.line
	switch ch {
	case '(':
		l.read()
		return token{typ: tokenOpen, line: line}, nil
	case ')':
		l.read()
		return token{typ: tokenClose, line: line}, nil
	case '"':
		s, err := l.quoted()
		return token{typ: tokenAtom, value: s, line: line}, err
	}

	var atom []rune
	for {
		ch, err := l.peek()
		if err == io.EOF {
			break
		}
		if err != nil {
			return token{}, err
		}
		if unicode.IsSpace(ch) || ch == '(' || ch == ')' || ch == '"' {
			break
		}
		l.read()
		atom = append(atom, ch)
	}
	return token{typ: tokenAtom, value: string(atom), line: line}, nil
}

func (l *lexer) quoted() (string, error) {
	l.read()
	var out []rune
	for {
		ch, err := l.read()
		if err != nil {
			return "", fmt.Errorf("line %d: unterminated string", l.line)
		}
		switch ch {
		case '"':
			return string(out), nil
		case '\\':
			next, err := l.read()
			if err != nil {
				return "", fmt.Errorf("line %d: unterminated string", l.line)
			}
			switch next {
			case 'n':
				out = append(out, '\n')
			case 't':
				out = append(out, '\t')
			default:
				out = append(out, next)
			}
		default:
			out = append(out, ch)
		}
	}
}

// node is either an atom or a list.
type node struct {
	atom   string
	list   []*node
	isList bool
	line   int
}

// head returns the first atom of a list, "" otherwise.
func (n *node) head() string {
	if !n.isList || len(n.list) == 0 || n.list[0].isList {
		return ""
	}
	return n.list[0].atom
}

// children returns the list elements whose head is name.
func (n *node) children(name string) []*node {
	var out []*node
	for _, c := range n.list {
		if c.head() == name {
			out = append(out, c)
		}
	}
	return out
}

func (n *node) child(name string) *node {
	for _, c := range n.list {
		if c.head() == name {
			return c
		}
	}
	return nil
}

// value returns the atom following the head of the named child, as in
// (ref "U1").
func (n *node) value(name string) string {
	c := n.child(name)
	if c == nil || len(c.list) < 2 || c.list[1].isList {
		return ""
	}
	return c.list[1].atom
}

func readAll(r io.Reader) ([]*node, error) {
	l := newLexer(r)
	var out []*node
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		if tok.typ == tokenEOF {
			return out, nil
		}
		n, err := readExpr(l, tok)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
}

func readExpr(l *lexer, tok token) (*node, error) {
	switch tok.typ {
	case tokenAtom:
		return &node{atom: tok.value, line: tok.line}, nil
	case tokenClose:
		return nil, fmt.Errorf("line %d: unexpected ')'", tok.line)
	case tokenEOF:
		return nil, fmt.Errorf("line %d: unexpected end of input", tok.line)
	}

	n := &node{isList: true, line: tok.line}
	for {
		t, err := l.next()
		if err != nil {
			return nil, err
		}
		if t.typ == tokenClose {
			return n, nil
		}
		if t.typ == tokenEOF {
			return nil, fmt.Errorf("line %d: list not closed", tok.line)
		}
		c, err := readExpr(l, t)
		if err != nil {
			return nil, err
		}
		n.list = append(n.list, c)
	}
}
