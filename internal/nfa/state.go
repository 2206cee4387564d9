// Package nfa implements the automaton graph built by Thompson's construction
// and the subset simulation that matches input against it.
//
// States live in a single arena owned by one Automaton and are addressed by
// StateID, so the cycles introduced by * and + need no special ownership.
package nfa

import "fmt"

// StateID is the index of a state in its automaton's arena. IDs are assigned
// in allocation order starting at 0 for every automaton.
type StateID int

// LabelKind distinguishes epsilon labels from literal ones.
type LabelKind uint8

const (
	KindEpsilon LabelKind = iota
	KindLiteral
)

// Label is the character a state matches when it is entered. Epsilon states
// consume no input.
type Label struct {
	Kind LabelKind
	Char rune
}

// Epsilon is the label of states that consume no input.
var Epsilon = Label{Kind: KindEpsilon}

// Literal returns the label matching exactly r.
func Literal(r rune) Label {
	return Label{Kind: KindLiteral, Char: r}
}

// IsEpsilon reports whether the label consumes no input.
func (l Label) IsEpsilon() bool {
	return l.Kind == KindEpsilon
}

// Matches reports whether the label is the literal r.
func (l Label) Matches(r rune) bool {
	return l.Kind == KindLiteral && l.Char == r
}

func (l Label) String() string {
	if l.IsEpsilon() {
		return "ε"
	}
	return fmt.Sprintf("%q", l.Char)
}

// State is a node of the automaton graph. A state with no outgoing
// transitions is accepting.
type State struct {
	ID    StateID
	Label Label
	Nexts []StateID
}

// IsAccepting reports whether the state has no outgoing transitions.
func (s *State) IsAccepting() bool {
	return len(s.Nexts) == 0
}

// Fragment is an automaton under construction, entered at Start and left at End.
type Fragment struct {
	Start StateID
	End   StateID
}
