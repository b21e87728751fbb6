package xdc

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// File is a parsed constraint file.
type File struct {
	Commands []*Command `EOL* ( @@ EOL* )*`
}

// Command is one Tcl command, e.g. set_property LOC K12 [get_ports x].
type Command struct {
	Pos  lexer.Position
	Name string `@Word`
	Args []*Arg `@@*`
}

// Arg is a single command argument.
type Arg struct {
	Flag   *string `  @Flag`
	Braced *string `| @Braced`
	Call   *Call   `| "[" @@ "]"`
	Word   *string `| @Word`
}

// Call is a bracketed command substitution such as [get_ports {a b}].
type Call struct {
	Name string `@Word`
	Args []*Arg `@@*`
}

// Text returns the literal value of a word or braced argument, braces
// stripped. Calls and flags yield "".
func (a *Arg) Text() string {
	switch {
	case a.Word != nil:
		return *a.Word
	case a.Braced != nil:
		return strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(*a.Braced, "{"), "}"))
	}
	return ""
}

// Fields splits the argument text on whitespace.
func (a *Arg) Fields() []string {
	return strings.Fields(a.Text())
}
