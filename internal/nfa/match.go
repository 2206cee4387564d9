package nfa

import "unicode/utf8"

// Closure returns the epsilon-closure of ids: the states themselves plus every
// state reachable from them through epsilon-labelled states. Literal states
// are included but not expanded, since leaving them consumes a character.
func (a *Automaton) Closure(ids []StateID) []StateID {
	set := newStateSet(len(a.states))
	a.closure(ids, set, nil)
	return append([]StateID(nil), set.dense...)
}

// closure adds the epsilon-closure of ids to set. stack is scratch space and
// is returned for reuse.
func (a *Automaton) closure(ids []StateID, set *stateSet, stack []StateID) []StateID {
	stack = stack[:0]
	for _, id := range ids {
		if set.add(id) {
			stack = append(stack, id)
		}
	}

	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		s := &a.states[id]
		if !s.Label.IsEpsilon() {
			continue
		}
		for _, n := range s.Nexts {
			if set.add(n) {
				stack = append(stack, n)
			}
		}
	}

	return stack
}

// Move returns the successors of every state in ids labelled r. The result is
// not closed and may contain duplicates.
func (a *Automaton) Move(ids []StateID, r rune) []StateID {
	return a.move(ids, r, nil)
}

func (a *Automaton) move(ids []StateID, r rune, raw []StateID) []StateID {
	raw = raw[:0]
	for _, id := range ids {
		s := &a.states[id]
		if s.Label.Matches(r) {
			raw = append(raw, s.Nexts...)
		}
	}
	return raw
}

// Accepts reports whether any state in ids is accepting.
func (a *Automaton) Accepts(ids []StateID) bool {
	for _, id := range ids {
		if a.states[id].IsAccepting() {
			return true
		}
	}
	return false
}

// matcher holds the scratch sets of one simulation run.
type matcher struct {
	a       *Automaton
	current *stateSet
	next    *stateSet
	raw     []StateID
	stack   []StateID
}

func (a *Automaton) newMatcher() *matcher {
	m := &matcher{
		a:       a,
		current: newStateSet(len(a.states)),
		next:    newStateSet(len(a.states)),
	}
	m.stack = a.closure([]StateID{a.start}, m.current, m.stack)
	return m
}

// step advances the active set over r and reports whether any state survived.
func (m *matcher) step(r rune) bool {
	m.raw = m.a.move(m.current.dense, r, m.raw)
	m.next.clear()
	m.stack = m.a.closure(m.raw, m.next, m.stack)
	m.current, m.next = m.next, m.current
	return m.current.len() > 0
}

func (m *matcher) accepts() bool {
	return m.a.Accepts(m.current.dense)
}

// Match reports whether the automaton accepts the whole of input. The
// simulation stops as soon as no state is active; the empty input is accepted
// iff the start closure contains an accepting state. Invalid UTF-8 never
// matches, not even a literal U+FFFD.
func (a *Automaton) Match(input string) bool {
	m := a.newMatcher()
	for len(input) > 0 {
		r, size := utf8.DecodeRuneInString(input)
		input = input[size:]
		if !m.stepValid(r, size) {
			return false
		}
	}
	return m.accepts()
}

// MatchBytes is like Match but decodes input as UTF-8 from a byte slice.
func (a *Automaton) MatchBytes(input []byte) bool {
	m := a.newMatcher()
	for len(input) > 0 {
		r, size := utf8.DecodeRune(input)
		input = input[size:]
		if !m.stepValid(r, size) {
			return false
		}
	}
	return m.accepts()
}

// stepValid is step for a decoded rune, failing on an invalid encoding.
func (m *matcher) stepValid(r rune, size int) bool {
	if r == utf8.RuneError && size == 1 {
		return false
	}
	return m.step(r)
}
