package parser

import (
	"testing"

	"github.com/exprlang/exprlang/internal/ast"
	"github.com/exprlang/exprlang/internal/constants"
	"github.com/exprlang/exprlang/internal/functions"
	"github.com/exprlang/exprlang/internal/keywords"
	"github.com/exprlang/exprlang/internal/lexer"
	"github.com/exprlang/exprlang/internal/units"
)

func parseSrc(t *testing.T, src string) *ast.Program {
	t.Helper()
	s := lexer.New(src)
	raw, lexErrs := s.Scan()
	if len(lexErrs) != 0 {
		t.Fatalf("lexer errors for %q: %v", src, lexErrs)
	}
	proc := lexer.NewProcessor(functions.NewDefault(), keywords.NewDefault(), constants.NewDefault(), units.NewDefault())
	toks := proc.Process(raw)
	p := New(toks)
	prog, errs := p.Parse()
	if len(errs) != 0 {
		t.Fatalf("parser errors for %q: %v", src, errs)
	}
	return prog
}

func lastStmt(t *testing.T, src string) ast.Node {
	t.Helper()
	prog := parseSrc(t, src)
	if len(prog.Statements) == 0 {
		t.Fatalf("no statements parsed for %q", src)
	}
	return prog.Statements[len(prog.Statements)-1]
}

func TestPrecedencePlusTimesPower(t *testing.T) {
	stmt := lastStmt(t, "2 + 3 * 4^2")
	be, ok := stmt.(*ast.BinaryExpr)
	if !ok || be.Operator != "+" {
		t.Fatalf("got %s", stmt.String())
	}
}

func TestRightAssociativePower(t *testing.T) {
	stmt := lastStmt(t, "2^3^2")
	be, ok := stmt.(*ast.BinaryExpr)
	if !ok || be.Operator != "^" {
		t.Fatalf("got %s", stmt.String())
	}
	rightBE, ok := be.Right.(*ast.BinaryExpr)
	if !ok || rightBE.Operator != "^" {
		t.Fatalf("expected right-associative grouping, got %s", stmt.String())
	}
}

func TestRationalLiteralParsesAsNumberLiteral(t *testing.T) {
	stmt := lastStmt(t, "1/3 + 1/3")
	be := stmt.(*ast.BinaryExpr)
	nl, ok := be.Left.(*ast.NumberLiteral)
	if !ok || nl.NumKind != ast.NumberRational {
		t.Fatalf("got %T", be.Left)
	}
}

func TestVectorLiteralScalarMultiply(t *testing.T) {
	stmt := lastStmt(t, "{1,2,3} * 2")
	be, ok := stmt.(*ast.BinaryExpr)
	if !ok || be.Operator != "*" {
		t.Fatalf("got %s", stmt.String())
	}
	if _, ok := be.Left.(*ast.VectorLiteral); !ok {
		t.Fatalf("expected vector literal, got %T", be.Left)
	}
}

func TestMatrixLiteralSemicolonRows(t *testing.T) {
	stmt := lastStmt(t, "[1,2;3,4] @ [5,6;7,8]")
	be, ok := stmt.(*ast.BinaryExpr)
	if !ok || be.Operator != "@" {
		t.Fatalf("got %s", stmt.String())
	}
	ml, ok := be.Left.(*ast.MatrixLiteral)
	if !ok || len(ml.Rows) != 2 || len(ml.Rows[0]) != 2 {
		t.Fatalf("got %T", be.Left)
	}
}

func TestFunctionDefAndSequence(t *testing.T) {
	prog := parseSrc(t, "fact(n) := if(n <= 1, 1, n * fact(n-1)); fact(5)")
	if len(prog.Statements) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(prog.Statements))
	}
	fd, ok := prog.Statements[0].(*ast.FunctionDef)
	if !ok || fd.Name != "fact" || len(fd.Params) != 1 {
		t.Fatalf("got %T", prog.Statements[0])
	}
	call, ok := fd.Body.(*ast.CallExpr)
	if !ok {
		t.Fatalf("expected if(...) to parse as a call, got %T", fd.Body)
	}
	callee, ok := call.Callee.(*ast.Identifier)
	if !ok || callee.Name != "if" {
		t.Fatalf("got %T", call.Callee)
	}
}

func TestComprehension(t *testing.T) {
	stmt := lastStmt(t, "{x^2 for x in 1..5}")
	comp, ok := stmt.(*ast.ComprehensionExpr)
	if !ok {
		t.Fatalf("got %T", stmt)
	}
	if len(comp.Iterators) != 1 || comp.Iterators[0].VarName != "x" {
		t.Fatalf("got %+v", comp.Iterators)
	}
	if _, ok := comp.Iterators[0].Iterable.(*ast.RangeExpr); !ok {
		t.Fatalf("expected range iterable, got %T", comp.Iterators[0].Iterable)
	}
}

func TestComprehensionWithPredicate(t *testing.T) {
	stmt := lastStmt(t, "{x for x in 1..10 if x mod 2 == 0}")
	comp := stmt.(*ast.ComprehensionExpr)
	if comp.Predicate == nil {
		t.Fatalf("expected predicate to be parsed")
	}
}

func TestUnitConversionBindsBetweenAdditiveAndMultiplicative(t *testing.T) {
	stmt := lastStmt(t, "100 meters in feet")
	uc, ok := stmt.(*ast.UnitConversion)
	if !ok || uc.TargetUnit != "feet" {
		t.Fatalf("got %T %v", stmt, stmt)
	}
	be, ok := uc.Expr.(*ast.BinaryExpr)
	if !ok || be.Operator != "*" {
		t.Fatalf("expected implicit multiply under conversion, got %T", uc.Expr)
	}
}

func TestLambdaSingleParam(t *testing.T) {
	stmt := lastStmt(t, "sum(filter(x -> x mod 2 == 0, 1..10))")
	call, ok := stmt.(*ast.CallExpr)
	if !ok {
		t.Fatalf("got %T", stmt)
	}
	inner := call.Args[0].(*ast.CallExpr)
	lambda, ok := inner.Args[0].(*ast.LambdaLiteral)
	if !ok || len(lambda.Params) != 1 || lambda.Params[0] != "x" {
		t.Fatalf("got %T", inner.Args[0])
	}
}

func TestLambdaMultiParam(t *testing.T) {
	stmt := lastStmt(t, "(a, b) -> a + b")
	lambda, ok := stmt.(*ast.LambdaLiteral)
	if !ok || len(lambda.Params) != 2 {
		t.Fatalf("got %T", stmt)
	}
}

func TestParenthesizedExpressionIsNotLambda(t *testing.T) {
	stmt := lastStmt(t, "(1 + 2) * 3")
	be, ok := stmt.(*ast.BinaryExpr)
	if !ok || be.Operator != "*" {
		t.Fatalf("got %T", stmt)
	}
}

func TestShadowingAndExplicitConstRef(t *testing.T) {
	prog := parseSrc(t, "pi := 100; pi + #pi")
	if len(prog.Statements) != 2 {
		t.Fatalf("expected 2 statements")
	}
	assign, ok := prog.Statements[0].(*ast.Assignment)
	if !ok || assign.Name != "pi" {
		t.Fatalf("got %T", prog.Statements[0])
	}
	be, ok := prog.Statements[1].(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("got %T", prog.Statements[1])
	}
	ref, ok := be.Right.(*ast.ExplicitRef)
	if !ok || ref.Namespace != ast.RefConst {
		t.Fatalf("got %T", be.Right)
	}
}

func TestIncompleteExpressionIsParseError(t *testing.T) {
	s := lexer.New("2 +")
	raw, _ := s.Scan()
	proc := lexer.NewProcessor(functions.NewDefault(), keywords.NewDefault(), constants.NewDefault(), units.NewDefault())
	toks := proc.Process(raw)
	p := New(toks)
	_, errs := p.Parse()
	if len(errs) == 0 {
		t.Fatalf("expected a parse error for incomplete expression")
	}
}

func TestSubscriptSlice(t *testing.T) {
	stmt := lastStmt(t, "v[1:3]")
	sub, ok := stmt.(*ast.SubscriptExpr)
	if !ok || len(sub.Args) != 1 || !sub.Args[0].IsSlice {
		t.Fatalf("got %T", stmt)
	}
}

func TestMatrixRowLengthMismatchIsParseError(t *testing.T) {
	s := lexer.New("[1,2;3]")
	raw, _ := s.Scan()
	proc := lexer.NewProcessor(functions.NewDefault(), keywords.NewDefault(), constants.NewDefault(), units.NewDefault())
	toks := proc.Process(raw)
	p := New(toks)
	_, errs := p.Parse()
	if len(errs) == 0 {
		t.Fatalf("expected a parse error for ragged matrix rows")
	}
}
