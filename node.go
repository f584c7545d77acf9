// Package godice evaluates dice-notation expressions such as
// "2 2d20 kh1 + 8", producing both a numeric result and a readable
// trace of every intermediate step.
package godice

import (
	"bytes"
	"fmt"
	"strconv"
)

type Op int

const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
)

func (o Op) String() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	}
	return "?"
}

type ModKind int

const (
	KeepHighest ModKind = iota
	KeepLowest
	DropHighest
	DropLowest
)

func (k ModKind) String() string {
	switch k {
	case KeepHighest:
		return "kh"
	case KeepLowest:
		return "kl"
	case DropHighest:
		return "dh"
	case DropLowest:
		return "dl"
	}
	return "??"
}

// Expr is a node of the evaluation tree. Expressions are immutable once
// built by Transform and may be evaluated any number of times; sharing an
// Expr across concurrent evaluations is safe as long as each evaluation
// uses its own Roller.
type Expr interface {
	String() string
	Eval(rl Roller) (Result, error)
}

// Number is an integer literal.
type Number struct {
	Value int
}

func (n *Number) String() string {
	return strconv.Itoa(n.Value)
}

// Dice rolls Count dice, each uniform over [1, Sides]. Fudge dice roll
// over {-1, 0, 1} instead and report Sides == 3.
type Dice struct {
	Count int
	Sides int
	Fudge bool
}

func (d *Dice) String() string {
	sides := strconv.Itoa(d.Sides)
	if d.Fudge {
		sides = "F"
	}
	if d.Count == 1 {
		return "d" + sides
	}
	return strconv.Itoa(d.Count) + "d" + sides
}

// Modifier selects a subset of its child's rolls. Child is a *Dice or
// another *Modifier; chained directives apply innermost first, each to the
// rolls surviving the previous one.
type Modifier struct {
	Kind  ModKind
	N     int
	Child Expr
}

func (m *Modifier) String() string {
	return fmt.Sprintf("%v %v%d", m.Child, m.Kind, m.N)
}

// Binary applies Op to two scalar operands. Division is integer division
// truncating toward zero.
type Binary struct {
	Op    Op
	Left  Expr
	Right Expr
}

func (b *Binary) String() string {
	return fmt.Sprintf("(%v %v %v)", b.Left, b.Op, b.Right)
}

// List evaluates Body independently Count times, yielding a list of
// results instead of one scalar.
type List struct {
	Count int
	Body  Expr
}

func (l *List) String() string {
	return fmt.Sprintf("%d %v", l.Count, l.Body)
}

// Sequence holds comma-separated expressions, each evaluated once.
type Sequence struct {
	Exprs []Expr
}

func (s *Sequence) String() string {
	var buf bytes.Buffer
	for i, e := range s.Exprs {
		if i > 0 {
			buf.WriteString(", ")
		}
		fmt.Fprintf(&buf, "%v", e)
	}
	return buf.String()
}
