package nfa

// Builder allocates states for one automaton and applies Thompson's
// construction rules to fragments. Rules only ever add states and
// transitions; existing labels and transitions are never changed.
type Builder struct {
	states []State
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Len returns the number of states allocated so far.
func (b *Builder) Len() int {
	return len(b.states)
}

// newState allocates a state with the given label and no transitions.
func (b *Builder) newState(label Label) StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State{ID: id, Label: label})
	return id
}

// connect adds a transition from -> to.
func (b *Builder) connect(from, to StateID) {
	b.states[from].Nexts = append(b.states[from].Nexts, to)
}

// Literal builds the fragment for a single character: the start state is
// labelled r and has one transition to the end state.
func (b *Builder) Literal(r rune) Fragment {
	start := b.newState(Literal(r))
	end := b.newState(Epsilon)
	b.connect(start, end)
	return Fragment{Start: start, End: end}
}

// ZeroOrMore applies *. The new start may skip straight to the new end, and
// the old end may loop back to the old start or leave.
func (b *Builder) ZeroOrMore(f Fragment) Fragment {
	start := b.newState(Epsilon)
	end := b.newState(Epsilon)

	b.connect(start, f.Start)
	b.connect(start, end)

	b.connect(f.End, f.Start)
	b.connect(f.End, end)

	return Fragment{Start: start, End: end}
}

// ZeroOrOne applies ?. Like ZeroOrMore without the loop back.
func (b *Builder) ZeroOrOne(f Fragment) Fragment {
	start := b.newState(Epsilon)
	end := b.newState(Epsilon)

	b.connect(start, f.Start)
	b.connect(start, end)

	b.connect(f.End, end)

	return Fragment{Start: start, End: end}
}

// OneOrMore applies +. Like ZeroOrMore without the skip path, so the
// fragment is passed at least once.
func (b *Builder) OneOrMore(f Fragment) Fragment {
	start := b.newState(Epsilon)
	end := b.newState(Epsilon)

	b.connect(start, f.Start)

	b.connect(f.End, f.Start)
	b.connect(f.End, end)

	return Fragment{Start: start, End: end}
}

// Concat links the end of f to the start of g.
func (b *Builder) Concat(f, g Fragment) Fragment {
	b.connect(f.End, g.Start)
	return Fragment{Start: f.Start, End: g.End}
}

// Alternate joins two fragments under a new start state and a new shared end
// state. The new start lists next's entry before running's.
func (b *Builder) Alternate(running, next Fragment) Fragment {
	start := b.newState(Epsilon)
	b.connect(start, next.Start)
	b.connect(start, running.Start)

	end := b.newState(Epsilon)
	b.connect(next.End, end)
	b.connect(running.End, end)

	return Fragment{Start: start, End: end}
}

// Finish hands the arena over to an Automaton starting at f.Start. The
// builder must not be used afterwards.
func (b *Builder) Finish(f Fragment) *Automaton {
	a := &Automaton{states: b.states, start: f.Start}
	b.states = nil
	return a
}
