package evaluator

import (
	"math"
	"testing"

	"github.com/exprlang/exprlang/internal/constants"
	"github.com/exprlang/exprlang/internal/errors"
	"github.com/exprlang/exprlang/internal/functions"
	"github.com/exprlang/exprlang/internal/keywords"
	"github.com/exprlang/exprlang/internal/lexer"
	"github.com/exprlang/exprlang/internal/parser"
	"github.com/exprlang/exprlang/internal/units"
	"github.com/exprlang/exprlang/internal/value"
)

func run(t *testing.T, ctx *Context, src string) value.Value {
	t.Helper()
	s := lexer.New(src)
	raw, lexErrs := s.Scan()
	if len(lexErrs) != 0 {
		t.Fatalf("lexer errors for %q: %v", src, lexErrs)
	}
	proc := lexer.NewProcessor(ctx.Functions, ctx.Keywords, ctx.Constants, ctx.Units)
	toks := proc.Process(raw)
	p := parser.New(toks)
	prog, parseErrs := p.Parse()
	if len(parseErrs) != 0 {
		t.Fatalf("parser errors for %q: %v", src, parseErrs)
	}
	v, err := ctx.Run(prog)
	if err != nil {
		t.Fatalf("eval error for %q: %v", src, err)
	}
	return v
}

func TestScenario1Precedence(t *testing.T) {
	v := run(t, New(), "2 + 3 * 4^2")
	r, ok := v.(value.Rational)
	if !ok || r.String() != "50" {
		t.Fatalf("got %v", v)
	}
}

func TestScenario2RightAssocPower(t *testing.T) {
	v := run(t, New(), "2^3^2")
	r, ok := v.(value.Rational)
	if !ok || r.String() != "512" {
		t.Fatalf("got %v", v)
	}
}

func TestScenario3ExactRationals(t *testing.T) {
	v := run(t, New(), "1/3 + 1/3 + 1/3")
	r, ok := v.(value.Rational)
	if !ok || r.String() != "1" {
		t.Fatalf("got %v", v)
	}
}

func TestScenario4VectorBroadcast(t *testing.T) {
	v := run(t, New(), "{1,2,3} * 2")
	vec, ok := v.(value.Vector)
	if !ok || len(vec.Elements) != 3 {
		t.Fatalf("got %v", v)
	}
	want := []string{"2", "4", "6"}
	for i, e := range vec.Elements {
		if e.String() != want[i] {
			t.Fatalf("element %d: got %s want %s", i, e.String(), want[i])
		}
	}
}

func TestScenario5MatrixMultiply(t *testing.T) {
	v := run(t, New(), "[1,2;3,4] @ [5,6;7,8]")
	m, ok := v.(value.Matrix)
	if !ok {
		t.Fatalf("got %T", v)
	}
	want := [][]string{{"19", "22"}, {"43", "50"}}
	for i, row := range m.Rows {
		for j, e := range row {
			if e.String() != want[i][j] {
				t.Fatalf("[%d][%d]: got %s want %s", i, j, e.String(), want[i][j])
			}
		}
	}
}

func TestMatrixPowerIsRepeatedMultiplication(t *testing.T) {
	v := run(t, New(), "[1,2;3,4] ^ 2")
	m, ok := v.(value.Matrix)
	if !ok {
		t.Fatalf("got %T", v)
	}
	want := [][]string{{"7", "10"}, {"15", "22"}}
	for i, row := range m.Rows {
		for j, e := range row {
			if e.String() != want[i][j] {
				t.Fatalf("[%d][%d]: got %s want %s", i, j, e.String(), want[i][j])
			}
		}
	}
}

func TestMatrixPowerZeroIsIdentity(t *testing.T) {
	v := run(t, New(), "[1,2;3,4] ^ 0")
	m, ok := v.(value.Matrix)
	if !ok {
		t.Fatalf("got %T", v)
	}
	want := [][]string{{"1", "0"}, {"0", "1"}}
	for i, row := range m.Rows {
		for j, e := range row {
			if e.String() != want[i][j] {
				t.Fatalf("[%d][%d]: got %s want %s", i, j, e.String(), want[i][j])
			}
		}
	}
}

func TestMatrixPowerNegativeUsesInverse(t *testing.T) {
	v := run(t, New(), "[2,0;0,2] ^ -1")
	m, ok := v.(value.Matrix)
	if !ok {
		t.Fatalf("got %T", v)
	}
	want := [][]string{{"1/2", "0"}, {"0", "1/2"}}
	for i, row := range m.Rows {
		for j, e := range row {
			if e.String() != want[i][j] {
				t.Fatalf("[%d][%d]: got %s want %s", i, j, e.String(), want[i][j])
			}
		}
	}
}

func TestScenario6RecursionAndSequence(t *testing.T) {
	v := run(t, New(), "fact(n) := if(n <= 1, 1, n * fact(n-1)); fact(5)")
	r, ok := v.(value.Rational)
	if !ok || r.String() != "120" {
		t.Fatalf("got %v", v)
	}
}

func TestScenario7Comprehension(t *testing.T) {
	v := run(t, New(), "{x^2 for x in 1..5}")
	vec, ok := v.(value.Vector)
	if !ok || len(vec.Elements) != 5 {
		t.Fatalf("got %v", v)
	}
	want := []string{"1", "4", "9", "16", "25"}
	for i, e := range vec.Elements {
		if e.String() != want[i] {
			t.Fatalf("element %d: got %s want %s", i, e.String(), want[i])
		}
	}
}

func TestScenario8NumberPlusPercent(t *testing.T) {
	v := run(t, New(), "100 + 10%")
	d, ok := v.(value.Double)
	if !ok || float64(d) != 110 {
		t.Fatalf("got %v", v)
	}
}

func TestScenario9UnitConversion(t *testing.T) {
	v := run(t, New(), "100 meters in feet")
	u, ok := v.(value.Unit)
	if !ok || u.UnitName != "feet" {
		t.Fatalf("got %v", v)
	}
	f, ok := toNumericFloat(u.Magnitude)
	if !ok || math.Abs(f-328.084) > 1e-2 {
		t.Fatalf("got %v", u.Magnitude)
	}
}

func TestScenario10HigherOrderLambdaRange(t *testing.T) {
	v := run(t, New(), "sum(filter(x -> x mod 2 == 0, 1..10))")
	r, ok := v.(value.Rational)
	if !ok || r.String() != "30" {
		t.Fatalf("got %v", v)
	}
}

func TestScenario11ShadowingAndExplicitConstRef(t *testing.T) {
	v := run(t, New(), "pi := 100; pi + #pi")
	d, ok := v.(value.Double)
	if !ok || math.Abs(float64(d)-103.14159) > 1e-4 {
		t.Fatalf("got %v", v)
	}
}

func TestScenario12IncompleteExpressionIsParseError(t *testing.T) {
	s := lexer.New("2 +")
	raw, _ := s.Scan()
	proc := lexer.NewProcessor(functions.NewDefault(), keywords.NewDefault(), constants.NewDefault(), units.NewDefault())
	toks := proc.Process(raw)
	p := parser.New(toks)
	_, errs := p.Parse()
	if len(errs) == 0 {
		t.Fatalf("expected a parse error")
	}
}

func TestShortCircuitNeverEvaluatesRHS(t *testing.T) {
	v := run(t, New(), "false && (1/0 == 1/0)")
	b, ok := v.(value.Bool)
	if !ok || bool(b) {
		t.Fatalf("got %v", v)
	}
}

func TestOrShortCircuit(t *testing.T) {
	v := run(t, New(), "true || (1/0 == 1/0)")
	b, ok := v.(value.Bool)
	if !ok || !bool(b) {
		t.Fatalf("got %v", v)
	}
}

func TestTypePreservationUnitArithmetic(t *testing.T) {
	v := run(t, New(), "(5 meters + 2 meters) * 3")
	u, ok := v.(value.Unit)
	if !ok || u.UnitName != "meters" {
		t.Fatalf("got %v", v)
	}
}

func TestMatrixShapeMismatchIsTypeError(t *testing.T) {
	ctx := New()
	s := lexer.New("[1,2,3] @ [1,2]")
	raw, _ := s.Scan()
	proc := lexer.NewProcessor(ctx.Functions, ctx.Keywords, ctx.Constants, ctx.Units)
	toks := proc.Process(raw)
	p := parser.New(toks)
	prog, errs := p.Parse()
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	_, err := ctx.Run(prog)
	if err == nil {
		t.Fatalf("expected a TypeError for mismatched matrix shapes")
	}
	if ee, ok := err.(*errors.EngineError); !ok || ee.Kind != errors.KindType {
		t.Fatalf("expected a TypeError for mismatched matrix shapes, got %v", err)
	}
}

func TestRecursionBoundRaisesStackOverflow(t *testing.T) {
	ctx := New(WithMaxRecursionDepth(50))
	s := lexer.New("loop(n) := loop(n+1); loop(0)")
	raw, _ := s.Scan()
	proc := lexer.NewProcessor(ctx.Functions, ctx.Keywords, ctx.Constants, ctx.Units)
	toks := proc.Process(raw)
	p := parser.New(toks)
	prog, errs := p.Parse()
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	_, err := ctx.Run(prog)
	if err == nil {
		t.Fatalf("expected a StackOverflowError")
	}
	if ee, ok := err.(*errors.EngineError); !ok || ee.Kind != errors.KindStackOverflow {
		t.Fatalf("expected a StackOverflowError, got %v", err)
	}
}

func TestIdempotentReEvaluation(t *testing.T) {
	ctx := New()
	s := lexer.New("2 + 3 * 4")
	raw, _ := s.Scan()
	proc := lexer.NewProcessor(ctx.Functions, ctx.Keywords, ctx.Constants, ctx.Units)
	toks := proc.Process(raw)
	p := parser.New(toks)
	prog, errs := p.Parse()
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	v1, err := ctx.Run(prog)
	if err != nil {
		t.Fatalf("first eval: %v", err)
	}
	v2, err := ctx.Run(prog)
	if err != nil {
		t.Fatalf("second eval: %v", err)
	}
	if v1.String() != v2.String() {
		t.Fatalf("expected idempotent results, got %v then %v", v1, v2)
	}
}

func TestSubscriptNegativeIndexAndSlice(t *testing.T) {
	v := run(t, New(), "{10,20,30,40,50}[-1]")
	if v.String() != "50" {
		t.Fatalf("got %v", v)
	}
	v2 := run(t, New(), "{10,20,30,40,50}[1:3]")
	vec, ok := v2.(value.Vector)
	if !ok || len(vec.Elements) != 2 || vec.Elements[0].String() != "20" {
		t.Fatalf("got %v", v2)
	}
}

func TestMatrixRowAndColumnSubscript(t *testing.T) {
	v := run(t, New(), "[1,2,3;4,5,6][0]")
	row, ok := v.(value.Vector)
	if !ok || len(row.Elements) != 3 || row.Elements[2].String() != "3" {
		t.Fatalf("got %v", v)
	}
	v2 := run(t, New(), "[1,2,3;4,5,6][:, 1]")
	col, ok := v2.(value.Vector)
	if !ok || len(col.Elements) != 2 || col.Elements[1].String() != "5" {
		t.Fatalf("got %v", v2)
	}
}

func TestLambdaClosureCapturesLexicalScope(t *testing.T) {
	v := run(t, New(), "k := 10; addK := x -> x + k; addK(5)")
	r, ok := v.(value.Rational)
	if !ok || r.String() != "15" {
		t.Fatalf("got %v", v)
	}
}

func TestFunctionLateBindingAgainstGlobals(t *testing.T) {
	v := run(t, New(), "helper(x) := x + offset; offset := 100; helper(1)")
	d, ok := v.(value.Rational)
	if !ok || d.String() != "101" {
		t.Fatalf("got %v", v)
	}
}

func TestPostfixFactorial(t *testing.T) {
	v := run(t, New(), "5!")
	if v.String() != "120" {
		t.Fatalf("got %v", v)
	}
}

func TestPostfixPercent(t *testing.T) {
	v := run(t, New(), "25%")
	p, ok := v.(value.Percent)
	if !ok || p.Fraction != 0.25 {
		t.Fatalf("got %v", v)
	}
}
