package godice

import (
	"errors"
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var ErrSyntax = errors.New("syntax error")

var rollLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Dice", Pattern: `(?i)\d*d(?:\d+|f)`},
	{Name: "Directive", Pattern: `(?i)[kd][hl]\d+`},
	{Name: "Int", Pattern: `\d+`},
	{Name: "Op", Pattern: `[-+*/]`},
	{Name: "Punct", Pattern: `[(),]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

// Tree is the parse tree produced by the grammar engine. It encodes the
// textual syntax only; Transform turns it into an evaluation tree and
// performs all semantic checks.
type Tree struct {
	Lists []*ListExpr `parser:"@@ (',' @@)*"`
}

// ListExpr is either a plain expression or a repeat count followed by the
// rest of the list ("2 2d20 kh1 + 8").
type ListExpr struct {
	First *AddExpr  `parser:"@@"`
	Rest  *ListExpr `parser:"@@?"`
}

type AddExpr struct {
	Left  *MulExpr   `parser:"@@"`
	Terms []*AddTerm `parser:"@@*"`
}

type AddTerm struct {
	Op   string   `parser:"@('+' | '-')"`
	Term *MulExpr `parser:"@@"`
}

type MulExpr struct {
	Left    *Factor      `parser:"@@"`
	Factors []*MulFactor `parser:"@@*"`
}

type MulFactor struct {
	Op     string  `parser:"@('*' | '/')"`
	Factor *Factor `parser:"@@"`
}

type Factor struct {
	Dice   *DiceFactor `parser:"  @@"`
	Number *string     `parser:"| @('-'? Int)"`
	Paren  *AddExpr    `parser:"| '(' @@ ')'"`
}

// DiceFactor is a dice token with trailing keep/drop directives, e.g.
// "10d10 dh2 kl2".
type DiceFactor struct {
	Tok        string   `parser:"@Dice"`
	Directives []string `parser:"@Directive*"`
}

var rollParser = participle.MustBuild[Tree](
	participle.Lexer(rollLexer),
	participle.Elide("Whitespace"),
)

// Parse parses a roll string into its parse tree.
func Parse(src string) (*Tree, error) {
	tree, err := rollParser.ParseString("", src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	return tree, nil
}
