package godice

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// Roll records a single die outcome.
type Roll struct {
	Value int
	Sides int
}

// Result is a node of the result tree, mirroring the shape of the Expr
// that produced it. Result trees are built fresh by every evaluation and
// never mutated afterwards; rendering only reads them. The variant set is
// closed: each Expr variant produces exactly one Result variant.
type Result interface {
	// Source is the expression this result was evaluated from.
	Source() Expr
	// Text is the final value, e.g. "21" or "[21, 26]".
	Text() string
	// Render formats the full computation trace.
	Render() string

	render(buf *bytes.Buffer, indent int)
}

// Scalar is a Result with a single numeric value. Every result except
// list expansions and sequences is a Scalar.
type Scalar interface {
	Result
	Total() int

	subst() string
	reduced() string
}

type NumberResult struct {
	Src *Number
}

func (r *NumberResult) Source() Expr { return r.Src }
func (r *NumberResult) Total() int { return r.Src.Value }
func (r *NumberResult) Text() string { return strconv.Itoa(r.Src.Value) }
func (r *NumberResult) subst() string { return r.Src.String() }
func (r *NumberResult) reduced() string { return r.Text() }
func (r *NumberResult) Render() string { return renderTree(r) }
func (r *NumberResult) render(buf *bytes.Buffer, indent int) {
	writeTraceLine(buf, indent, r)
}

type DiceResult struct {
	Src   *Dice
	Rolls []Roll
}

func (r *DiceResult) Source() Expr { return r.Src }

func (r *DiceResult) Total() int {
	sum := 0
	for _, roll := range r.Rolls {
		sum += roll.Value
	}
	return sum
}

func (r *DiceResult) Text() string { return strconv.Itoa(r.Total()) }
func (r *DiceResult) subst() string { return rollsText(r.Rolls) }
func (r *DiceResult) reduced() string { return r.Text() }
func (r *DiceResult) Render() string { return renderTree(r) }
func (r *DiceResult) render(buf *bytes.Buffer, indent int) {
	writeTraceLine(buf, indent, r)
}

type ModifierResult struct {
	Src   *Modifier
	Child Scalar
	// Kept holds the surviving rolls in original roll order.
	Kept []Roll
}

func (r *ModifierResult) Source() Expr { return r.Src }

func (r *ModifierResult) Total() int {
	sum := 0
	for _, roll := range r.Kept {
		sum += roll.Value
	}
	return sum
}

func (r *ModifierResult) Text() string { return strconv.Itoa(r.Total()) }
func (r *ModifierResult) subst() string { return r.Child.subst() }
func (r *ModifierResult) reduced() string { return r.Text() }
func (r *ModifierResult) Render() string { return renderTree(r) }
func (r *ModifierResult) render(buf *bytes.Buffer, indent int) {
	writeTraceLine(buf, indent, r)
}

type BinaryResult struct {
	Src   *Binary
	Left  Scalar
	Right Scalar
	Value int
}

func (r *BinaryResult) Source() Expr { return r.Src }
func (r *BinaryResult) Total() int { return r.Value }
func (r *BinaryResult) Text() string { return strconv.Itoa(r.Value) }

func (r *BinaryResult) subst() string {
	return fmt.Sprintf("(%s %v %s)", r.Left.subst(), r.Src.Op, r.Right.subst())
}

func (r *BinaryResult) reduced() string {
	return fmt.Sprintf("%d %v %d", r.Left.Total(), r.Src.Op, r.Right.Total())
}

func (r *BinaryResult) Render() string { return renderTree(r) }
func (r *BinaryResult) render(buf *bytes.Buffer, indent int) {
	writeTraceLine(buf, indent, r)
}

type ListResult struct {
	Src  *List
	Reps []Result
}

func (r *ListResult) Source() Expr { return r.Src }

func (r *ListResult) Text() string {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, rep := range r.Reps {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(rep.Text())
	}
	buf.WriteByte(']')
	return buf.String()
}

func (r *ListResult) Render() string { return renderTree(r) }

func (r *ListResult) render(buf *bytes.Buffer, indent int) {
	pad := strings.Repeat(" ", indent)
	fmt.Fprintf(buf, "%sList Expansion: %v\n", pad, r.Src)
	fmt.Fprintf(buf, "%s  Count: %d => %d\n", pad, r.Src.Count, r.Src.Count)
	fmt.Fprintf(buf, "%s  Expression: %v\n", pad, r.Src.Body)
	fmt.Fprintf(buf, "%s  Results: %s\n", pad, r.Text())
	for i, rep := range r.Reps {
		fmt.Fprintf(buf, "%s  %d: \n", pad, i)
		rep.render(buf, indent+4)
	}
}

type SequenceResult struct {
	Src     *Sequence
	Results []Result
}

func (r *SequenceResult) Source() Expr { return r.Src }

func (r *SequenceResult) Text() string {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, res := range r.Results {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(res.Text())
	}
	buf.WriteByte(']')
	return buf.String()
}

func (r *SequenceResult) Render() string { return renderTree(r) }

func (r *SequenceResult) render(buf *bytes.Buffer, indent int) {
	pad := strings.Repeat(" ", indent)
	fmt.Fprintf(buf, "%sSequence: %v\n", pad, r.Src)
	fmt.Fprintf(buf, "%s  Results: %s\n", pad, r.Text())
	for i, res := range r.Results {
		fmt.Fprintf(buf, "%s  %d: \n", pad, i)
		res.render(buf, indent+4)
	}
}

func renderTree(r Result) string {
	var buf bytes.Buffer
	r.render(&buf, 0)
	return strings.TrimSuffix(buf.String(), "\n")
}

// writeTraceLine writes one scalar trace of the shape
//
//	expr => substituted-with-rolls => reduced = value
//
// collapsing layers that add nothing over the previous one.
func writeTraceLine(buf *bytes.Buffer, indent int, s Scalar) {
	parts := []string{s.Source().String()}
	if sub := s.subst(); sub != parts[len(parts)-1] {
		parts = append(parts, sub)
	}
	text := s.Text()
	if red := s.reduced(); red != parts[len(parts)-1] && red != text {
		parts = append(parts, red)
	}
	fmt.Fprintf(buf, "%s%s = %s\n", strings.Repeat(" ", indent), strings.Join(parts, " => "), text)
}

func rollsText(rolls []Roll) string {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, roll := range rolls {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(strconv.Itoa(roll.Value))
	}
	buf.WriteByte(']')
	return buf.String()
}
