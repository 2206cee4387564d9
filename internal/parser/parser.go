// Package parser compiles patterns into automata with a recursive-descent
// parser that applies Thompson's construction as each rule completes.
//
// Grammar, lowest precedence first:
//
//	expr   := conn ('|' conn)*
//	conn   := factor factor*
//	factor := term ('*' | '+' | '?')?
//	term   := <literal character>
package parser

import (
	"unicode/utf8"

	"github.com/KromDaniel/tinyre/internal/lexer"
	"github.com/KromDaniel/tinyre/internal/logger"
	"github.com/KromDaniel/tinyre/internal/nfa"
)

type parser struct {
	pattern string
	lex     *lexer.Lexer
	b       *nfa.Builder
	log     *logger.Logger
}

// Parse compiles pattern into an automaton. log may be nil.
func Parse(pattern string, log *logger.Logger) (*nfa.Automaton, error) {
	log.Section("Parse")
	log.Log("Pattern: %s", pattern)

	if pattern == "" {
		return nil, &Error{Code: ErrEmptyPattern, Pattern: pattern}
	}
	if pos, ok := invalidRune(pattern); ok {
		return nil, &Error{Code: ErrUnexpectedCharacter, Pattern: pattern, Pos: pos}
	}

	p := &parser{
		pattern: pattern,
		lex:     lexer.New(pattern),
		b:       nfa.NewBuilder(),
		log:     log,
	}
	p.lex.Advance()

	f, err := p.expr()
	if err != nil {
		return nil, err
	}

	// expr stops at the first token it cannot consume; anything but End is an error.
	if !p.lex.Match(lexer.End) {
		return nil, p.unexpected()
	}

	log.Log("States: %d, start: %d, accept: %d", p.b.Len(), f.Start, f.End)
	return p.b.Finish(f), nil
}

// invalidRune returns the rune offset of the first invalid UTF-8 sequence in
// pattern. A literal U+FFFD is valid.
func invalidRune(pattern string) (int, bool) {
	pos := 0
	for i := 0; i < len(pattern); pos++ {
		r, size := utf8.DecodeRuneInString(pattern[i:])
		if r == utf8.RuneError && size == 1 {
			return pos, true
		}
		i += size
	}
	return 0, false
}

func (p *parser) errorf(code ErrorCode) error {
	return &Error{Code: code, Pattern: p.pattern, Pos: p.lex.Pos()}
}

// unexpected builds the error for a token that cannot start or continue a
// factor at the current position.
func (p *parser) unexpected() error {
	tok := p.lex.Current()
	switch {
	case tok.Kind.IsQuantifier():
		return p.errorf(ErrDanglingQuantifier)
	case tok.Kind == lexer.Alternation, tok.Kind == lexer.End:
		return p.errorf(ErrEmptyAlternationBranch)
	}
	return p.errorf(ErrUnexpectedCharacter)
}

// expr folds alternatives from the left: a|b|c is (a|b)|c.
func (p *parser) expr() (nfa.Fragment, error) {
	defer p.log.Enter("expr")()

	f, err := p.conn()
	if err != nil {
		return nfa.Fragment{}, err
	}

	for p.lex.Match(lexer.Alternation) {
		p.lex.Advance()

		next, err := p.conn()
		if err != nil {
			return nfa.Fragment{}, err
		}
		f = p.b.Alternate(f, next)
		p.log.Log("alternation -> %d..%d", f.Start, f.End)
	}

	return f, nil
}

// conn parses a sequence of factors and chains them end to start.
func (p *parser) conn() (nfa.Fragment, error) {
	defer p.log.Enter("conn")()

	if !p.lex.Match(lexer.Literal) {
		return nfa.Fragment{}, p.unexpected()
	}

	f := p.factor()
	for p.lex.Match(lexer.Literal) {
		f = p.b.Concat(f, p.factor())
		p.log.Log("concat -> %d..%d", f.Start, f.End)
	}

	return f, nil
}

// factor parses a term and at most one quantifier applied to it. The caller
// guarantees the current token is a literal.
func (p *parser) factor() nfa.Fragment {
	f := p.term()

	switch p.lex.Current().Kind {
	case lexer.ZeroOrMore:
		f = p.b.ZeroOrMore(f)
	case lexer.ZeroOrOne:
		f = p.b.ZeroOrOne(f)
	case lexer.OneOrMore:
		f = p.b.OneOrMore(f)
	default:
		return f
	}

	p.log.Log("%s -> %d..%d", p.lex.Current().Kind, f.Start, f.End)
	p.lex.Advance()
	return f
}

func (p *parser) term() nfa.Fragment {
	f := p.b.Literal(p.lex.Lexeme())
	p.log.Log("term %q -> %d..%d", p.lex.Lexeme(), f.Start, f.End)
	p.lex.Advance()
	return f
}
