package godice

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var ErrSemantic = errors.New("semantic error")

var diceTokenRe = regexp.MustCompile(`(?i)^(\d*)d(\d+|f)$`)

// Compile parses and transforms a roll string in one step.
func Compile(src string) (Expr, error) {
	tree, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return Transform(tree)
}

// Transform turns a parse tree into an evaluation tree. All value checks
// happen here, before any randomness is drawn: counts, sides and directive
// arguments must be positive, and a directive may not select more rolls
// than its dice term still has.
func Transform(tree *Tree) (Expr, error) {
	if len(tree.Lists) == 1 {
		return transformList(tree.Lists[0])
	}
	exprs := make([]Expr, len(tree.Lists))
	for i, l := range tree.Lists {
		e, err := transformList(l)
		if err != nil {
			return nil, err
		}
		exprs[i] = e
	}
	return &Sequence{Exprs: exprs}, nil
}

func transformList(l *ListExpr) (Expr, error) {
	first, err := transformAdd(l.First)
	if err != nil {
		return nil, err
	}
	if l.Rest == nil {
		return first, nil
	}
	num, ok := first.(*Number)
	if !ok {
		return nil, fmt.Errorf("%w: repeat count must be an integer literal, got %v", ErrSemantic, first)
	}
	if num.Value < 1 {
		return nil, fmt.Errorf("%w: repeat count must be positive, got %d", ErrSemantic, num.Value)
	}
	body, err := transformList(l.Rest)
	if err != nil {
		return nil, err
	}
	return &List{Count: num.Value, Body: body}, nil
}

func transformAdd(a *AddExpr) (Expr, error) {
	left, err := transformMul(a.Left)
	if err != nil {
		return nil, err
	}
	for _, t := range a.Terms {
		right, err := transformMul(t.Term)
		if err != nil {
			return nil, err
		}
		op := OpAdd
		if t.Op == "-" {
			op = OpSub
		}
		left = &Binary{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func transformMul(m *MulExpr) (Expr, error) {
	left, err := transformFactor(m.Left)
	if err != nil {
		return nil, err
	}
	for _, f := range m.Factors {
		right, err := transformFactor(f.Factor)
		if err != nil {
			return nil, err
		}
		op := OpMul
		if f.Op == "/" {
			op = OpDiv
		}
		left = &Binary{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func transformFactor(f *Factor) (Expr, error) {
	switch {
	case f.Dice != nil:
		return transformDice(f.Dice)
	case f.Number != nil:
		v, err := strconv.Atoi(*f.Number)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid integer %q", ErrSemantic, *f.Number)
		}
		return &Number{Value: v}, nil
	default:
		return transformAdd(f.Paren)
	}
}

func transformDice(d *DiceFactor) (Expr, error) {
	m := diceTokenRe.FindStringSubmatch(d.Tok)
	if m == nil {
		return nil, fmt.Errorf("%w: invalid dice term %q", ErrSemantic, d.Tok)
	}
	count := 1
	if m[1] != "" {
		var err error
		count, err = strconv.Atoi(m[1])
		if err != nil {
			return nil, fmt.Errorf("%w: invalid dice term %q", ErrSemantic, d.Tok)
		}
	}
	if count < 1 {
		return nil, fmt.Errorf("%w: dice count must be positive in %q", ErrSemantic, d.Tok)
	}
	dice := &Dice{Count: count}
	if strings.EqualFold(m[2], "f") {
		dice.Fudge = true
		dice.Sides = 3
	} else {
		sides, err := strconv.Atoi(m[2])
		if err != nil {
			return nil, fmt.Errorf("%w: invalid dice term %q", ErrSemantic, d.Tok)
		}
		if sides < 1 {
			return nil, fmt.Errorf("%w: dice sides must be positive in %q", ErrSemantic, d.Tok)
		}
		dice.Sides = sides
	}

	var expr Expr = dice
	remaining := count
	for _, dir := range d.Directives {
		kind, n, err := parseDirective(dir)
		if err != nil {
			return nil, err
		}
		if n > remaining {
			return nil, fmt.Errorf("%w: directive %q selects %d of %d rolls", ErrSemantic, dir, n, remaining)
		}
		switch kind {
		case KeepHighest, KeepLowest:
			remaining = n
		case DropHighest, DropLowest:
			remaining -= n
		}
		expr = &Modifier{Kind: kind, N: n, Child: expr}
	}
	return expr, nil
}

func parseDirective(s string) (ModKind, int, error) {
	lower := strings.ToLower(s)
	var kind ModKind
	switch lower[:2] {
	case "kh":
		kind = KeepHighest
	case "kl":
		kind = KeepLowest
	case "dh":
		kind = DropHighest
	case "dl":
		kind = DropLowest
	default:
		return 0, 0, fmt.Errorf("%w: unknown directive %q", ErrSemantic, s)
	}
	n, err := strconv.Atoi(lower[2:])
	if err != nil || n < 1 {
		return 0, 0, fmt.Errorf("%w: directive %q must select at least one roll", ErrSemantic, s)
	}
	return kind, n, nil
}
