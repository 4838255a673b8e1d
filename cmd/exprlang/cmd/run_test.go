package cmd

import (
	"testing"

	"github.com/exprlang/exprlang/internal/evaluator"
	"github.com/gkampitakis/go-snaps/snaps"
)

// evalString runs the full pipeline and returns the canonical printed
// form of the result, the same string runRun would print to stdout.
func evalString(t *testing.T, src string) string {
	t.Helper()
	prog, errs := parseProgram(src)
	if len(errs) > 0 {
		t.Fatalf("unexpected parse errors for %q: %v", src, errs)
	}
	ctx := evaluator.New()
	v, err := ctx.Run(prog)
	if err != nil {
		t.Fatalf("unexpected eval error for %q: %v", src, err)
	}
	return v.String()
}

func TestRunCLIGolden(t *testing.T) {
	cases := []string{
		"2 + 3 * 4^2",
		"2^3^2",
		"1/3 + 1/3 + 1/3",
		"{1,2,3} * 2",
		"[1,2;3,4] @ [5,6;7,8]",
		"fact(n) := if(n <= 1, 1, n * fact(n-1)); fact(5)",
		"{x^2 for x in 1..5}",
		"100 + 10%",
	}
	for _, src := range cases {
		snaps.MatchSnapshot(t, src, evalString(t, src))
	}
}
