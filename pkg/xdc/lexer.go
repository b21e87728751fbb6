package xdc

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// XDCLexer tokenizes the Tcl subset used by Vivado constraint files.
// Newlines and semicolons end a command; a trailing backslash continues it.
var XDCLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Continuation", Pattern: `\\\r?\n`},
	{Name: "EOL", Pattern: `[\n;]+`},
	{Name: "Whitespace", Pattern: `[ \t\r]+`},

	// {...} is kept whole; dict and port lists are split afterwards.
	{Name: "Braced", Pattern: `\{[^{}]*\}`},
	{Name: "Punct", Pattern: `[\[\]]`},

	{Name: "Flag", Pattern: `-[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Word", Pattern: `[^\s\[\]{};#\\]+`},
})
