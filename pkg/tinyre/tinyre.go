// Package tinyre compiles a small regular-expression language into a
// nondeterministic finite automaton and matches whole strings against it.
//
// The syntax has literal characters, concatenation, alternation (|) and the
// quantifiers *, + and ?. Every other character, parentheses and backslash
// included, is a literal. Matching is anchored at both ends.
//
// Example:
//
//	re, err := tinyre.Compile("ab*c")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	re.MatchString("abbbc") // true
//	re.MatchString("abbbd") // false
package tinyre

import (
	"strconv"
	"unicode/utf8"

	"github.com/KromDaniel/tinyre/internal/charset"
	"github.com/KromDaniel/tinyre/internal/nfa"
	"github.com/KromDaniel/tinyre/internal/parser"
)

// Error is returned by Compile for malformed patterns.
type Error = parser.Error

// ErrorCode identifies the kind of compile error. Use errors.Is to test for a
// specific code.
type ErrorCode = parser.ErrorCode

// Compile error codes.
const (
	ErrEmptyPattern           = parser.ErrEmptyPattern
	ErrDanglingQuantifier     = parser.ErrDanglingQuantifier
	ErrEmptyAlternationBranch = parser.ErrEmptyAlternationBranch
	ErrUnexpectedCharacter    = parser.ErrUnexpectedCharacter
)

// Regexp is a compiled pattern. It is immutable and safe for concurrent use.
type Regexp struct {
	pattern  string
	nfa      *nfa.Automaton
	alphabet charset.Set
}

// Compile parses pattern and builds its automaton.
func Compile(pattern string) (*Regexp, error) {
	a, err := parser.Parse(pattern, nil)
	if err != nil {
		return nil, err
	}
	return newRegexp(pattern, a), nil
}

// MustCompile is like Compile but panics if the pattern cannot be compiled.
func MustCompile(pattern string) *Regexp {
	re, err := Compile(pattern)
	if err != nil {
		panic(`tinyre: Compile(` + strconv.Quote(pattern) + `): ` + err.Error())
	}
	return re
}

func newRegexp(pattern string, a *nfa.Automaton) *Regexp {
	return &Regexp{
		pattern:  pattern,
		nfa:      a,
		alphabet: a.Alphabet(),
	}
}

// IsMatch reports whether re accepts the whole of input.
func IsMatch(re *Regexp, input string) bool {
	return re.MatchString(input)
}

// MatchString reports whether re accepts the whole of s.
func (re *Regexp) MatchString(s string) bool {
	// A character outside the alphabet empties the active set, so there is
	// no need to simulate.
	if !re.alphabet.ContainsAll(s) {
		return false
	}
	return re.nfa.Match(s)
}

// Match reports whether re accepts the whole of b, decoded as UTF-8.
func (re *Regexp) Match(b []byte) bool {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if !re.alphabet.Contains(r) {
			return false
		}
		i += size
	}
	return re.nfa.MatchBytes(b)
}

// String returns the source pattern.
func (re *Regexp) String() string {
	return re.pattern
}

// NumStates returns the number of automaton states.
func (re *Regexp) NumStates() int {
	return re.nfa.Len()
}

// Alphabet returns the literal characters the pattern can match in bracket
// notation, e.g. "[a-cz]". Inputs with any other character never match.
func (re *Regexp) Alphabet() string {
	return re.alphabet.String()
}

// Dump returns the automaton's state table, for debugging.
func (re *Regexp) Dump() string {
	return re.nfa.String()
}
