package bsdl

import "strings"

// File is a parsed BSDL description.
type File struct {
	Entity *Entity `@@`
}

// Entity is the single entity declared by a BSDL file.
type Entity struct {
	Name    string     `KwEntity @Ident KwIs`
	Generic []*Generic `( KwGeneric "(" @@ ( ";" @@ )* ")" ";" )?`
	Ports   []*Port    `( KwPort "(" @@ ( ";" @@ )* ";"? ")" ";" )?`
	Decls   []*Decl    `@@*`
	EndName string     `KwEnd KwEntity? @Ident? ";"`
}

// Generic is a generic parameter, e.g. PHYSICAL_PIN_MAP : string := "FTG256".
type Generic struct {
	Name    string `@Ident ":"`
	Type    string `@Ident`
	Default string `( Assign @String )?`
}

// Port is a port declaration. Vector ports carry a range.
type Port struct {
	Names []string `@Ident ( "," @Ident )* ":"`
	Mode  string   `@Mode`
	Type  string   `@Ident`
	Range *Range   `@@?`
}

// Range is a bit_vector bound such as (1 to 20).
type Range struct {
	From int    `"(" @Integer`
	Dir  string `@Ident`
	To   int    `@Integer ")"`
}

// Width returns the number of elements covered by the range.
func (r *Range) Width() int {
	if r == nil {
		return 1
	}
	if r.To >= r.From {
		return r.To - r.From + 1
	}
	return r.From - r.To + 1
}

// Decl is a use clause, an attribute or a constant.
type Decl struct {
	Use       *Use       `  @@`
	Attribute *Attribute `| @@`
	Constant  *Constant  `| @@`
}

// Use is a use clause such as use STD_1149_1_2001.all;.
type Use struct {
	Package string `KwUse @Ident "." Ident ";"`
}

// Attribute is an attribute specification.
type Attribute struct {
	Name  string      `KwAttribute @Ident KwOf`
	Of    string      `@Ident ":"`
	Class string      `( @KwEntity | @KwConstant | @Ident ) KwIs`
	Value *Expression `@@ ";"`
}

// Constant is a constant declaration, used for pin maps.
type Constant struct {
	Name  string      `KwConstant @Ident ":"`
	Type  string      `@Ident Assign`
	Value *Expression `@@ ";"`
}

// Expression is one or more terms joined by &.
type Expression struct {
	Terms []*Term `@@ ( "&" @@ )*`
}

// Term is a single expression operand.
type Term struct {
	String  *string       `  @String`
	Real    *float64      `| @Real`
	Integer *int          `| @Integer`
	Ident   *string       `| @Ident`
	Tuple   []*Expression `| "(" @@ ( "," @@ )* ")"`
}

// Text concatenates the string terms of the expression without quotes.
func (e *Expression) Text() string {
	var b strings.Builder
	for _, t := range e.Terms {
		if t.String != nil {
			b.WriteString(strings.Trim(*t.String, `"`))
		}
	}
	return b.String()
}

// Ident returns the identifier of a single-identifier expression.
func (e *Expression) Ident() (string, bool) {
	if len(e.Terms) == 1 && e.Terms[0].Ident != nil {
		return *e.Terms[0].Ident, true
	}
	return "", false
}
