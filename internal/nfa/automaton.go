package nfa

import (
	"fmt"
	"strings"

	"github.com/KromDaniel/tinyre/internal/charset"
)

// Automaton is a compiled NFA. It is read-only once built and safe for
// concurrent matching.
type Automaton struct {
	states []State
	start  StateID
}

// Start returns the start state.
func (a *Automaton) Start() StateID {
	return a.start
}

// Len returns the number of states.
func (a *Automaton) Len() int {
	return len(a.states)
}

// State returns the state with the given ID. The returned state must not be
// modified.
func (a *Automaton) State(id StateID) *State {
	return &a.states[id]
}

// Accepting returns the IDs of all accepting states. A well formed automaton
// has exactly one.
func (a *Automaton) Accepting() []StateID {
	var ids []StateID
	for i := range a.states {
		if a.states[i].IsAccepting() {
			ids = append(ids, StateID(i))
		}
	}
	return ids
}

// Alphabet returns the set of literal characters labelling states. Any input
// character outside it cannot be matched.
func (a *Automaton) Alphabet() charset.Set {
	seen := make(map[rune]bool)
	var runes []rune
	for i := range a.states {
		l := a.states[i].Label
		if l.IsEpsilon() || seen[l.Char] {
			continue
		}
		seen[l.Char] = true
		runes = append(runes, l.Char)
	}
	return charset.Of(runes...)
}

// String dumps the state table, one state per line:
//
//	0 'a' -> 1
//	1 ε -> 0 3
func (a *Automaton) String() string {
	var b strings.Builder
	for i := range a.states {
		s := &a.states[i]
		marker := " "
		if s.ID == a.start {
			marker = ">"
		}
		fmt.Fprintf(&b, "%s%d %s ->", marker, s.ID, s.Label)
		if s.IsAccepting() {
			b.WriteString(" (accept)")
		}
		for _, n := range s.Nexts {
			fmt.Fprintf(&b, " %d", n)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
