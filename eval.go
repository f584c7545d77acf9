package godice

import (
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"math/rand"
	"sort"
)

var ErrEval = errors.New("evaluation error")

// Roller is the source of randomness threaded through every evaluation.
// A Roller is not safe for concurrent use; concurrent evaluations of the
// same Expr must each use their own.
type Roller interface {
	// Roll returns a uniform value in [1, sides].
	Roll(sides int) int
}

type randRoller struct {
	rng *rand.Rand
}

func (r *randRoller) Roll(sides int) int {
	return r.rng.Intn(sides) + 1
}

// NewRoller returns a Roller drawing from a seeded source. The same seed
// always produces the same sequence of rolls.
func NewRoller(seed int64) Roller {
	return &randRoller{rng: rand.New(rand.NewSource(seed))}
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

func (n *Number) Eval(rl Roller) (Result, error) {
	return &NumberResult{Src: n}, nil
}

func (d *Dice) Eval(rl Roller) (Result, error) {
	rolls := make([]Roll, d.Count)
	for i := range rolls {
		if d.Fudge {
			rolls[i] = Roll{Value: rl.Roll(3) - 2, Sides: 3}
		} else {
			rolls[i] = Roll{Value: rl.Roll(d.Sides), Sides: d.Sides}
		}
	}
	return &DiceResult{Src: d, Rolls: rolls}, nil
}

func (m *Modifier) Eval(rl Roller) (Result, error) {
	res, err := m.Child.Eval(rl)
	if err != nil {
		return nil, err
	}
	var pool []Roll
	switch c := res.(type) {
	case *DiceResult:
		pool = c.Rolls
	case *ModifierResult:
		pool = c.Kept
	default:
		return nil, fmt.Errorf("%w: %v cannot be modified", ErrEval, m.Child)
	}
	return &ModifierResult{Src: m, Child: res.(Scalar), Kept: pickRolls(m.Kind, m.N, pool)}, nil
}

// pickRolls selects the rolls surviving one directive. Ties are broken by
// original roll position, and the survivors come back in original order.
func pickRolls(kind ModKind, n int, pool []Roll) []Roll {
	idx := make([]int, len(pool))
	for i := range idx {
		idx[i] = i
	}
	desc := kind == KeepHighest || kind == DropHighest
	sort.SliceStable(idx, func(i, j int) bool {
		if desc {
			return pool[idx[i]].Value > pool[idx[j]].Value
		}
		return pool[idx[i]].Value < pool[idx[j]].Value
	})
	var chosen []int
	switch kind {
	case KeepHighest, KeepLowest:
		chosen = idx[:n]
	case DropHighest, DropLowest:
		chosen = idx[n:]
	}
	sort.Ints(chosen)
	kept := make([]Roll, len(chosen))
	for i, j := range chosen {
		kept[i] = pool[j]
	}
	return kept
}

func (b *Binary) Eval(rl Roller) (Result, error) {
	left, err := evalScalar(b.Left, rl)
	if err != nil {
		return nil, err
	}
	right, err := evalScalar(b.Right, rl)
	if err != nil {
		return nil, err
	}
	var v int
	switch b.Op {
	case OpAdd:
		v = left.Total() + right.Total()
	case OpSub:
		v = left.Total() - right.Total()
	case OpMul:
		v = left.Total() * right.Total()
	case OpDiv:
		if right.Total() == 0 {
			return nil, fmt.Errorf("%w: division by zero in %v", ErrEval, b)
		}
		v = left.Total() / right.Total()
	}
	return &BinaryResult{Src: b, Left: left, Right: right, Value: v}, nil
}

func evalScalar(e Expr, rl Roller) (Scalar, error) {
	res, err := e.Eval(rl)
	if err != nil {
		return nil, err
	}
	sc, ok := res.(Scalar)
	if !ok {
		return nil, fmt.Errorf("%w: %v is not a scalar", ErrEval, e)
	}
	return sc, nil
}

func (l *List) Eval(rl Roller) (Result, error) {
	reps := make([]Result, l.Count)
	for i := range reps {
		res, err := l.Body.Eval(rl)
		if err != nil {
			return nil, err
		}
		reps[i] = res
	}
	return &ListResult{Src: l, Reps: reps}, nil
}

func (s *Sequence) Eval(rl Roller) (Result, error) {
	results := make([]Result, len(s.Exprs))
	for i, e := range s.Exprs {
		res, err := e.Eval(rl)
		if err != nil {
			return nil, err
		}
		results[i] = res
	}
	return &SequenceResult{Src: s, Results: results}, nil
}
