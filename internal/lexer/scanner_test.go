package lexer

import "testing"

func scanTypes(t *testing.T, src string) []TokenType {
	t.Helper()
	s := New(src)
	toks, errs := s.Scan()
	if len(errs) != 0 {
		t.Fatalf("unexpected lexer errors for %q: %v", src, errs)
	}
	var types []TokenType
	for _, tok := range toks {
		types = append(types, tok.Type)
	}
	return types
}

func TestIntegerFollowedByRangeLeavesDotsUnconsumed(t *testing.T) {
	toks := scanTypes(t, "1..5")
	want := []TokenType{INTEGER, DOTDOT, INTEGER, EOF}
	assertTypes(t, toks, want)
}

func TestDecimalLiteral(t *testing.T) {
	s := New("3.14")
	toks, errs := s.Scan()
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if toks[0].Type != DECIMAL || toks[0].Literal != "3.14" {
		t.Fatalf("got %+v", toks[0])
	}
}

func TestRationalLiteral(t *testing.T) {
	s := New("1/3")
	toks, errs := s.Scan()
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if toks[0].Type != RATIONAL || toks[0].Literal != "1/3" {
		t.Fatalf("got %+v", toks[0])
	}
}

func TestScientificLiteral(t *testing.T) {
	s := New("1.5e10")
	toks, _ := s.Scan()
	if toks[0].Type != SCIENTIFIC || toks[0].Literal != "1.5e10" {
		t.Fatalf("got %+v", toks[0])
	}
}

func TestScientificLiteralWithSignedExponent(t *testing.T) {
	s := New("2e-3")
	toks, _ := s.Scan()
	if toks[0].Type != SCIENTIFIC || toks[0].Literal != "2e-3" {
		t.Fatalf("got %+v", toks[0])
	}
}

func TestForceDoubleSuffix(t *testing.T) {
	s := New("2d")
	toks, _ := s.Scan()
	if toks[0].Type != INTEGER || !toks[0].ForceDouble {
		t.Fatalf("got %+v", toks[0])
	}
}

func TestForceDoubleSuffixNotConfusedWithIdentifier(t *testing.T) {
	toks := scanTypes(t, "2days")
	// "2" then identifier "days" (d is not a standalone suffix here)
	if toks[0] != INTEGER || toks[1] != IDENT_RAW {
		t.Fatalf("got %v", toks)
	}
}

func TestStringEscapes(t *testing.T) {
	s := New(`"a\nb\tc\\d"`)
	toks, errs := s.Scan()
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if toks[0].Literal != "a\nb\tc\\d" {
		t.Fatalf("got %q", toks[0].Literal)
	}
}

func TestUnterminatedStringIsLexerError(t *testing.T) {
	s := New(`"abc`)
	_, errs := s.Scan()
	if len(errs) != 1 {
		t.Fatalf("expected one error, got %v", errs)
	}
}

func TestExplicitReferences(t *testing.T) {
	toks := scanTypes(t, `@meters $x #pi`)
	want := []TokenType{UNIT_REF, VAR_REF, CONST_REF, EOF}
	assertTypes(t, toks, want)
}

func TestBareAtIsMatMulOperator(t *testing.T) {
	toks := scanTypes(t, "a @ b")
	want := []TokenType{IDENT_RAW, AT, IDENT_RAW, EOF}
	assertTypes(t, toks, want)
}

func TestDollarWithoutNameIsMalformed(t *testing.T) {
	s := New("$ 1")
	_, errs := s.Scan()
	if len(errs) != 1 {
		t.Fatalf("expected malformed reference error, got %v", errs)
	}
}

func TestGreedyMultiCharOperators(t *testing.T) {
	toks := scanTypes(t, "a == b != c -> d := e !! f")
	want := []TokenType{
		IDENT_RAW, EQEQ, IDENT_RAW, NOTEQ, IDENT_RAW, ARROW, IDENT_RAW,
		ASSIGN, IDENT_RAW, BANGBANG, IDENT_RAW, EOF,
	}
	assertTypes(t, toks, want)
}

func TestPercentPostfixOperator(t *testing.T) {
	toks := scanTypes(t, "50%")
	want := []TokenType{INTEGER, PERCENT_OP, EOF}
	assertTypes(t, toks, want)
}

func assertTypes(t *testing.T, got, want []TokenType) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %v want %v (full: %v)", i, got[i], want[i], got)
		}
	}
}
