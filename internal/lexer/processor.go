package lexer

import (
	"strings"

	"github.com/exprlang/exprlang/internal/errors"
	"github.com/exprlang/exprlang/internal/registry"
)

// Processor is Pass 2 of the lexer pipeline. It consumes the raw token
// stream Scan produced and:
//   - re-splits IDENT_RAW tokens whose spelling runs two known names
//     together without whitespace (a digit boundary, or an identifier
//     with a known function name as its tail);
//   - classifies every surviving IDENT_RAW token into KEYWORD, a
//     keyword-operator (AND_OP/OR_OP/XOR_OP/NOT_OP/MOD_OP/OF_OP),
//     FUNCTION, or plain IDENTIFIER by consulting the registries;
//   - synthesizes implicit multiplication tokens at juxtaposition
//     boundaries.
//
// Splitting and classification are deliberately deferred to this pass
// rather than done during scanning: a name's registry membership can
// only be resolved once the full registries (which may themselves be
// overlaid by user-defined functions/constants) are known.
type Processor struct {
	functions registry.FunctionRegistry
	keywords  registry.KeywordRegistry
	constants registry.ConstantRegistry
	units     registry.UnitRegistry
	cfg       config
}

// NewProcessor builds a Pass 2 processor over the given registries.
func NewProcessor(functions registry.FunctionRegistry, keywords registry.KeywordRegistry, constants registry.ConstantRegistry, units registry.UnitRegistry, opts ...Option) *Processor {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Processor{functions: functions, keywords: keywords, constants: constants, units: units, cfg: cfg}
}

// Process re-splits, classifies, and inserts implicit-multiplication
// tokens, returning the final stream the parser consumes. Running
// Process again on its own output is a no-op: split and classified
// tokens no longer carry type IDENT_RAW, and an already-inserted
// synthetic multiply is never itself a multiplication operand.
func (p *Processor) Process(raw []Token) []Token {
	split := p.splitTokens(raw)
	classified := make([]Token, 0, len(split))
	for _, tok := range split {
		classified = append(classified, p.classify(tok))
	}
	if !p.cfg.implicitMultiplicationEnabled {
		return classified
	}
	return p.insertImplicitMultiplication(classified)
}

// splitTokens re-splits each IDENT_RAW token whose spelling runs two
// known names together, skipping any token that is an assignment or
// function-definition target (its name must remain intact so it can be
// bound, even if it collides with a built-in's spelling).
func (p *Processor) splitTokens(raw []Token) []Token {
	out := make([]Token, 0, len(raw))
	for i, tok := range raw {
		if tok.Type != IDENT_RAW || p.isDefinitionTarget(raw, i) {
			out = append(out, tok)
			continue
		}
		out = append(out, p.splitIdentifierToken(tok)...)
	}
	return out
}

// isDefinitionTarget reports whether tokens[i] is immediately followed
// by `:=`, or by a parenthesized argument list whose matching `)` is
// itself immediately followed by `:=` — a variable or function
// definition target, which is never split or reclassified.
func (p *Processor) isDefinitionTarget(tokens []Token, i int) bool {
	if i+1 >= len(tokens) {
		return false
	}
	next := tokens[i+1]
	if next.Type == ASSIGN {
		return true
	}
	if next.Type != LPAREN {
		return false
	}
	depth := 0
	for j := i + 1; j < len(tokens); j++ {
		switch tokens[j].Type {
		case LPAREN:
			depth++
		case RPAREN:
			depth--
			if depth == 0 {
				return j+1 < len(tokens) && tokens[j+1].Type == ASSIGN
			}
		}
	}
	return false
}

// splitPart is one identifier or digit-run produced by splitIdentifier.
type splitPart struct {
	text     string
	isNumber bool
}

// splitIdentifierToken applies splitIdentifier to tok's literal and
// rebuilds the resulting parts as tokens positioned at their original
// column/offset within tok.
func (p *Processor) splitIdentifierToken(tok Token) []Token {
	parts := p.splitIdentifier(tok.Literal)
	if len(parts) == 1 {
		return []Token{tok}
	}
	out := make([]Token, 0, len(parts))
	delta := 0
	for _, part := range parts {
		pos := errors.Position{
			Line:   tok.Pos.Line,
			Column: tok.Pos.Column + delta,
			Offset: tok.Pos.Offset + delta,
		}
		typ := IDENT_RAW
		if part.isNumber {
			typ = INTEGER
		}
		out = append(out, Token{Type: typ, Literal: part.text, Pos: pos})
		delta += len(part.text)
	}
	return out
}

// splitIdentifier applies the re-splitting rules in order, first match
// wins:
//  1. the name as-is is a known function, unit, or constant — unchanged.
//  2. digit-boundary split: the name contains a digit, and the prefix
//     before the first digit is a known function/unit/constant — split
//     into (prefix, integer-run, rest) and recursively split rest.
//     Example: "pi2e" -> "pi", "2", "e".
//  3. function-suffix split: for the first prefix length k = 1..len-1
//     whose suffix is a known function and whose prefix is a single
//     character or a known constant/unit, split into (prefix, suffix).
//  4. otherwise the name is left unchanged.
func (p *Processor) splitIdentifier(name string) []splitPart {
	if p.isKnownName(name) {
		return []splitPart{{text: name}}
	}
	if parts, ok := p.digitBoundarySplit(name); ok {
		return parts
	}
	if parts, ok := p.functionSuffixSplit(name); ok {
		return parts
	}
	return []splitPart{{text: name}}
}

func (p *Processor) isKnownName(name string) bool {
	return p.functions.IsFunction(name) || p.constants.IsConstant(name) || p.units.IsUnit(name)
}

func (p *Processor) digitBoundarySplit(name string) ([]splitPart, bool) {
	digitAt := strings.IndexFunc(name, isAsciiDigit)
	if digitAt <= 0 {
		return nil, false
	}
	prefix := name[:digitAt]
	if !p.isKnownName(prefix) {
		return nil, false
	}
	rest := name[digitAt:]
	digitEnd := 0
	for digitEnd < len(rest) && isAsciiDigit(rune(rest[digitEnd])) {
		digitEnd++
	}
	parts := []splitPart{{text: prefix}, {text: rest[:digitEnd], isNumber: true}}
	if tail := rest[digitEnd:]; tail != "" {
		parts = append(parts, p.splitIdentifier(tail)...)
	}
	return parts, true
}

func (p *Processor) functionSuffixSplit(name string) ([]splitPart, bool) {
	for k := 1; k < len(name); k++ {
		prefix, suffix := name[:k], name[k:]
		if !p.functions.IsFunction(suffix) {
			continue
		}
		if len(prefix) == 1 || p.constants.IsConstant(prefix) || p.units.IsUnit(prefix) {
			return []splitPart{{text: prefix}, {text: suffix}}, true
		}
	}
	return nil, false
}

func isAsciiDigit(r rune) bool { return r >= '0' && r <= '9' }

func (p *Processor) classify(tok Token) Token {
	if tok.Type != IDENT_RAW {
		return tok
	}

	if opKind, ok := p.keywords.KeywordOperatorKindFor(tok.Literal); ok {
		return tok.WithType(keywordOperatorTokenType(opKind))
	}
	if p.keywords.IsKeyword(tok.Literal) {
		return tok.WithType(KEYWORD)
	}
	if p.functions.IsFunction(tok.Literal) {
		return tok.WithType(FUNCTION)
	}
	return tok.WithType(IDENTIFIER)
}

func keywordOperatorTokenType(k registry.OperatorKind) TokenType {
	switch k {
	case registry.OpAnd:
		return AND_OP
	case registry.OpOr:
		return OR_OP
	case registry.OpXor:
		return XOR_OP
	case registry.OpNot:
		return NOT_OP
	case registry.OpMod:
		return MOD_OP
	case registry.OpOf:
		return OF_OP
	}
	return IDENTIFIER
}

// insertImplicitMultiplication walks the classified stream and inserts a
// synthetic STAR token wherever two adjacent tokens imply multiplication
// without an explicit operator between them:
//
//  1. number immediately followed by an identifier, unit reference,
//     const/var reference, or `(` — "2x", "2@m", "2(x+1)"
//  2. `)`, `]`, identifier, or literal followed by `(` that is NOT a
//     function call (a FUNCTION token is never preceded by an implicit
//     multiply; its own `(` belongs to the call)
//  3. closing bracket/paren followed by an opening paren or an
//     identifier — "(a+b)(c+d)", "[1,2](3,4)"; an opening `[` is never
//     preceded by an implicit multiply, since it starts a subscript
//  4. a var/const/unit reference immediately followed by another
//     reference or identifier
//
// Implicit multiplication is never inserted across a line boundary and
// never before a FUNCTION token's own call parenthesis.
func (p *Processor) insertImplicitMultiplication(tokens []Token) []Token {
	if len(tokens) == 0 {
		return tokens
	}
	out := make([]Token, 0, len(tokens)+4)
	for i, tok := range tokens {
		out = append(out, tok)
		if i+1 >= len(tokens) {
			continue
		}
		next := tokens[i+1]
		if next.Pos.Line != tok.Pos.Line {
			continue
		}
		if shouldInsertImplicitStar(tok, next) {
			out = append(out, Token{
				Type:      STAR,
				Literal:   "*",
				Pos:       next.Pos,
				Synthetic: true,
			})
		}
	}
	return out
}

func shouldInsertImplicitStar(left, right Token) bool {
	if !endsValue(left) {
		return false
	}
	if right.Type == LPAREN {
		// A FUNCTION token owns the following `(` as its call; never
		// insert a multiply there.
		return left.Type != FUNCTION
	}
	return startsValue(right)
}

// endsValue reports whether tok can be the last token of a complete
// value expression (number, identifier, reference, or closing bracket).
func endsValue(tok Token) bool {
	switch tok.Type {
	case INTEGER, DECIMAL, SCIENTIFIC, RATIONAL, STRING,
		IDENTIFIER, UNIT_REF, VAR_REF, CONST_REF,
		RPAREN, RBRACKET, RBRACE, BANG, BANGBANG, PERCENT_OP:
		return true
	}
	return false
}

// startsValue reports whether tok can begin a new value expression when
// juxtaposed against a preceding one.
func startsValue(tok Token) bool {
	switch tok.Type {
	case INTEGER, DECIMAL, SCIENTIFIC, RATIONAL, STRING,
		IDENTIFIER, UNIT_REF, VAR_REF, CONST_REF, FUNCTION, LPAREN:
		return true
	}
	return false
}
