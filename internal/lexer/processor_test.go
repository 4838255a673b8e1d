package lexer

import (
	"testing"

	"github.com/exprlang/exprlang/internal/constants"
	"github.com/exprlang/exprlang/internal/functions"
	"github.com/exprlang/exprlang/internal/keywords"
	"github.com/exprlang/exprlang/internal/units"
)

func process(t *testing.T, src string) []Token {
	t.Helper()
	s := New(src)
	raw, errs := s.Scan()
	if len(errs) != 0 {
		t.Fatalf("unexpected lexer errors for %q: %v", src, errs)
	}
	p := NewProcessor(functions.NewDefault(), keywords.NewDefault(), constants.NewDefault(), units.NewDefault())
	return p.Process(raw)
}

func typesOf(toks []Token) []TokenType {
	out := make([]TokenType, len(toks))
	for i, tok := range toks {
		out[i] = tok.Type
	}
	return out
}

func TestClassifiesKeyword(t *testing.T) {
	toks := process(t, "if")
	if toks[0].Type != KEYWORD {
		t.Fatalf("got %+v", toks[0])
	}
}

func TestClassifiesKeywordOperator(t *testing.T) {
	toks := process(t, "a and b")
	if toks[1].Type != AND_OP {
		t.Fatalf("got %+v", toks[1])
	}
}

func TestClassifiesFunctionName(t *testing.T) {
	toks := process(t, "sqrt(4)")
	if toks[0].Type != FUNCTION {
		t.Fatalf("got %+v", toks[0])
	}
	// no implicit multiply inserted before a function call's own paren
	if toks[1].Type != LPAREN {
		t.Fatalf("expected LPAREN right after FUNCTION, got %+v", toks[1])
	}
}

func TestClassifiesPlainIdentifier(t *testing.T) {
	toks := process(t, "xyz")
	if toks[0].Type != IDENTIFIER {
		t.Fatalf("got %+v", toks[0])
	}
}

func TestImplicitMultiplicationNumberIdentifier(t *testing.T) {
	toks := process(t, "2x")
	want := []TokenType{INTEGER, STAR, IDENTIFIER, EOF}
	assertTypes(t, typesOf(toks), want)
	if !toks[1].Synthetic {
		t.Fatalf("expected synthesized STAR, got %+v", toks[1])
	}
}

func TestImplicitMultiplicationNumberParen(t *testing.T) {
	toks := process(t, "2(x+1)")
	if toks[1].Type != STAR {
		t.Fatalf("got %+v", toks)
	}
}

func TestImplicitMultiplicationClosingParenThenOpenParen(t *testing.T) {
	toks := process(t, "(a)(b)")
	// LPAREN a RPAREN STAR LPAREN b RPAREN EOF
	found := false
	for i, tok := range toks {
		if tok.Type == STAR && i > 0 && toks[i-1].Type == RPAREN {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected implicit STAR between adjacent parens, got %v", toks)
	}
}

func TestImplicitMultiplicationBeforeFunctionNameButNotItsCallParen(t *testing.T) {
	toks := process(t, "2 sqrt(4)")
	for i, tok := range toks {
		if tok.Type == FUNCTION {
			if i == 0 || toks[i-1].Type != STAR {
				t.Fatalf("expected implicit multiply before function name, got %v", toks)
			}
			if toks[i+1].Type != LPAREN {
				t.Fatalf("expected function's own call paren directly after it, got %v", toks)
			}
		}
	}
}

func TestReferenceFollowedByIdentifierGetsImplicitMultiply(t *testing.T) {
	toks := process(t, "$x y")
	want := []TokenType{VAR_REF, STAR, IDENTIFIER, EOF}
	assertTypes(t, typesOf(toks), want)
}

func TestConstantRegistryOverlayIsAvailable(t *testing.T) {
	c := constants.NewDefault()
	if !c.IsConstant("pi") {
		t.Fatalf("expected pi to be a default constant")
	}
}

func TestDigitBoundarySplit(t *testing.T) {
	toks := process(t, "pi2e")
	// the split parts are juxtaposed, so implicit multiplication joins them
	want := []TokenType{IDENTIFIER, STAR, INTEGER, STAR, IDENTIFIER, EOF}
	assertTypes(t, typesOf(toks), want)
	if toks[0].Literal != "pi" || toks[2].Literal != "2" || toks[4].Literal != "e" {
		t.Fatalf("expected pi, 2, e; got %+v", toks[:5])
	}
}

func TestFunctionSuffixSplit(t *testing.T) {
	toks := process(t, "xsin(1)")
	if toks[0].Type != IDENTIFIER || toks[0].Literal != "x" {
		t.Fatalf("expected leading identifier x, got %+v", toks[0])
	}
	// toks[1] is the implicit multiply between x and sin
	if toks[2].Type != FUNCTION || toks[2].Literal != "sin" {
		t.Fatalf("expected sin split out as a function, got %+v", toks[2])
	}
}

func TestUnsplitMultiLetterIdentifierSurvives(t *testing.T) {
	// "cousin" ends in the function name "sin", but its prefix "cou" is
	// not a single char, constant, or unit, so nothing licenses splitting it.
	toks := process(t, "cousin")
	want := []TokenType{IDENTIFIER, EOF}
	assertTypes(t, typesOf(toks), want)
	if toks[0].Literal != "cousin" {
		t.Fatalf("expected cousin left unsplit, got %+v", toks[0])
	}
}

func TestDefinitionTargetIsNotSplit(t *testing.T) {
	toks := process(t, "pi2e := 1")
	if toks[0].Type != IDENTIFIER || toks[0].Literal != "pi2e" {
		t.Fatalf("expected assignment target left unsplit, got %+v", toks[0])
	}
}

func TestFunctionDefinitionTargetIsNotSplit(t *testing.T) {
	toks := process(t, "xsin(n) := n")
	if toks[0].Type != IDENTIFIER || toks[0].Literal != "xsin" {
		t.Fatalf("expected function-def target left unsplit, got %+v", toks[0])
	}
}
