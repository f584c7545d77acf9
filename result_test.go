package godice

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRenderScalar(t *testing.T) {
	tests := []struct {
		input string
		vals  []int
		want  string
	}{
		{
			input: "7",
			want:  "7 = 7",
		},
		{
			input: "3 * 4",
			want:  "(3 * 4) => 3 * 4 = 12",
		},
		{
			input: "3d6",
			vals:  []int{4, 2, 5},
			want:  "3d6 => [4, 2, 5] = 11",
		},
		{
			input: "4dF",
			vals:  []int{1, 2, 3, 1},
			want:  "4dF => [-1, 0, 1, -1] = -1",
		},
		{
			input: "2d20 kh1",
			vals:  []int{13, 8},
			want:  "2d20 kh1 => [13, 8] = 13",
		},
		{
			input: "2d20 kh1 + 8",
			vals:  []int{13, 8},
			want:  "(2d20 kh1 + 8) => ([13, 8] + 8) => 13 + 8 = 21",
		},
		{
			input: "(1d4 + 2) * 3",
			vals:  []int{3},
			want:  "((d4 + 2) * 3) => (([3] + 2) * 3) => 5 * 3 = 15",
		},
	}
	for _, test := range tests {
		res := evalString(t, test.input, test.vals)
		if got := res.Render(); got != test.want {
			t.Errorf("want %q for %q but got %q", test.want, test.input, got)
		}
	}
}

func TestRenderListExpansion(t *testing.T) {
	res := evalString(t, "2 2d20 kh1 + 8", []int{13, 8, 6, 18})
	want := strings.Join([]string{
		"List Expansion: 2 (2d20 kh1 + 8)",
		"  Count: 2 => 2",
		"  Expression: (2d20 kh1 + 8)",
		"  Results: [21, 26]",
		"  0: ",
		"    (2d20 kh1 + 8) => ([13, 8] + 8) => 13 + 8 = 21",
		"  1: ",
		"    (2d20 kh1 + 8) => ([6, 18] + 8) => 18 + 8 = 26",
	}, "\n")
	if diff := cmp.Diff(want, res.Render()); diff != "" {
		t.Error(diff)
	}
}

func TestRenderSequence(t *testing.T) {
	res := evalString(t, "1d20+10, d6+5", []int{15, 4})
	want := strings.Join([]string{
		"Sequence: (d20 + 10), (d6 + 5)",
		"  Results: [25, 9]",
		"  0: ",
		"    (d20 + 10) => ([15] + 10) => 15 + 10 = 25",
		"  1: ",
		"    (d6 + 5) => ([4] + 5) => 4 + 5 = 9",
	}, "\n")
	if diff := cmp.Diff(want, res.Render()); diff != "" {
		t.Error(diff)
	}
}

func TestRenderNestedExpansion(t *testing.T) {
	res := evalString(t, "2 2 d6", []int{3, 5, 2, 6})
	want := strings.Join([]string{
		"List Expansion: 2 2 d6",
		"  Count: 2 => 2",
		"  Expression: 2 d6",
		"  Results: [[3, 5], [2, 6]]",
		"  0: ",
		"    List Expansion: 2 d6",
		"      Count: 2 => 2",
		"      Expression: d6",
		"      Results: [3, 5]",
		"      0: ",
		"        d6 => [3] = 3",
		"      1: ",
		"        d6 => [5] = 5",
		"  1: ",
		"    List Expansion: 2 d6",
		"      Count: 2 => 2",
		"      Expression: d6",
		"      Results: [2, 6]",
		"      0: ",
		"        d6 => [2] = 2",
		"      1: ",
		"        d6 => [6] = 6",
	}, "\n")
	if diff := cmp.Diff(want, res.Render()); diff != "" {
		t.Error(diff)
	}
}

func TestGolden(t *testing.T) {
	fns, err := filepath.Glob("testdir/*.roll")
	if err != nil {
		t.Fatal(err)
	}
	if len(fns) == 0 {
		t.Fatal("no golden cases found")
	}

	for _, fn := range fns {
		t.Log(fn)
		b, err := os.ReadFile(fn)
		if err != nil {
			t.Fatal(err)
		}
		input := strings.TrimSpace(string(b))
		base := strings.TrimSuffix(fn, ".roll")

		res, evalErr := goldenEval(base, input)
		if evalErr != nil {
			b, err := os.ReadFile(base + ".err")
			if err != nil || evalErr.Error() != strings.TrimSpace(string(b)) {
				t.Error(evalErr)
			}
			continue
		}

		b, err = os.ReadFile(base + ".out")
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(string(b), res.Render()+"\n"); diff != "" {
			t.Errorf("%s: %s", fn, diff)
		}
	}
}

func goldenEval(base, input string) (Result, error) {
	expr, err := Compile(input)
	if err != nil {
		return nil, err
	}
	var vals []int
	if b, err := os.ReadFile(base + ".dice"); err == nil {
		for _, f := range strings.Fields(string(b)) {
			v, err := strconv.Atoi(f)
			if err != nil {
				return nil, err
			}
			vals = append(vals, v)
		}
	}
	return expr.Eval(&scriptRoller{vals: vals})
}
