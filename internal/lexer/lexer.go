// Package lexer scans pattern text into the token stream consumed by the parser.
package lexer

import (
	"regexp"
	"strings"
)

// Kind identifies the type of a token.
type Kind int

const (
	// End is returned once the pattern is exhausted, and on every call after that.
	End Kind = iota
	Literal
	Alternation // |
	ZeroOrOne   // ?
	ZeroOrMore  // *
	OneOrMore   // +
)

func (k Kind) String() string {
	switch k {
	case End:
		return "End"
	case Literal:
		return "Literal"
	case Alternation:
		return "Alternation"
	case ZeroOrOne:
		return "ZeroOrOne"
	case ZeroOrMore:
		return "ZeroOrMore"
	case OneOrMore:
		return "OneOrMore"
	}
	return "Unknown"
}

// IsQuantifier reports whether the kind is one of *, + or ?.
func (k Kind) IsQuantifier() bool {
	return k == ZeroOrOne || k == ZeroOrMore || k == OneOrMore
}

// Token is a single scanned symbol. Char is the source character for every
// kind except End, operators included.
type Token struct {
	Kind Kind
	Char rune
}

func (t Token) String() string {
	if t.Kind == Literal {
		return "Literal(" + string(t.Char) + ")"
	}
	return t.Kind.String()
}

// kindOf maps a source character to its token kind. Every character that is
// not an operator is a literal; there is no escape mechanism.
func kindOf(r rune) Kind {
	switch r {
	case '|':
		return Alternation
	case '?':
		return ZeroOrOne
	case '*':
		return ZeroOrMore
	case '+':
		return OneOrMore
	}
	return Literal
}

// Lexer holds the pattern and a cursor over its runes.
type Lexer struct {
	pattern []rune
	pos     int

	current Token
	lexeme  rune
	start   int // rune offset of the current token
}

// New creates a lexer for the given pattern. No token is scanned until the
// first call to Advance. Invalid UTF-8 is scanned as utf8.RuneError; the
// parser rejects such patterns before lexing.
func New(pattern string) *Lexer {
	return &Lexer{pattern: []rune(pattern)}
}

// Advance scans the next token, stores it as the current token and returns it.
// The raw character consumed is kept as the lexeme.
func (l *Lexer) Advance() Token {
	if l.pos >= len(l.pattern) {
		l.current = Token{Kind: End}
		l.start = len(l.pattern)
		return l.current
	}

	r := l.pattern[l.pos]
	l.current = Token{Kind: kindOf(r), Char: r}
	l.lexeme = r
	l.start = l.pos
	l.pos++

	return l.current
}

// Current returns the most recently scanned token.
func (l *Lexer) Current() Token {
	return l.current
}

// Match reports whether the current token has the given kind.
func (l *Lexer) Match(kind Kind) bool {
	return l.current.Kind == kind
}

// Lexeme returns the raw character of the most recently scanned non-End token.
func (l *Lexer) Lexeme() rune {
	return l.lexeme
}

// Pos returns the rune offset of the current token within the pattern.
func (l *Lexer) Pos() int {
	return l.start
}

// Tokens scans the whole pattern and returns its tokens, terminated by End.
func Tokens(pattern string) []Token {
	l := New(pattern)
	var tokens []Token
	for {
		tok := l.Advance()
		tokens = append(tokens, tok)
		if tok.Kind == End {
			return tokens
		}
	}
}

// ToGoSyntax rewrites a pattern into an anchored expression for the standard
// regexp package that accepts exactly the same strings. Literals are quoted
// and operators keep their meaning and precedence.
func ToGoSyntax(pattern string) string {
	var b strings.Builder
	b.WriteString(`^(?:`)
	for _, tok := range Tokens(pattern) {
		switch tok.Kind {
		case Literal:
			b.WriteString(regexp.QuoteMeta(string(tok.Char)))
		case Alternation, ZeroOrOne, ZeroOrMore, OneOrMore:
			b.WriteRune(tok.Char)
		}
	}
	b.WriteString(`)$`)
	return b.String()
}
