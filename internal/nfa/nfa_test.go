package nfa

import (
	"reflect"
	"sort"
	"strings"
	"testing"
)

func sorted(ids []StateID) []StateID {
	out := append([]StateID(nil), ids...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func TestLiteralFragment(t *testing.T) {
	b := NewBuilder()
	f := b.Literal('a')
	a := b.Finish(f)

	if a.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", a.Len())
	}
	start := a.State(f.Start)
	if !start.Label.Matches('a') {
		t.Errorf("start label = %v, want 'a'", start.Label)
	}
	if !reflect.DeepEqual(start.Nexts, []StateID{f.End}) {
		t.Errorf("start nexts = %v, want [%d]", start.Nexts, f.End)
	}
	if !a.State(f.End).IsAccepting() || !a.State(f.End).Label.IsEpsilon() {
		t.Errorf("end state should be an accepting epsilon state")
	}
}

func TestQuantifierWiring(t *testing.T) {
	tests := []struct {
		name      string
		apply     func(*Builder, Fragment) Fragment
		wantStart []StateID // transitions of the new start
		wantOld   []StateID // transitions added to the old end
	}{
		// literal occupies 0 (start) and 1 (end); the rule allocates 2 and 3
		{"zero or more", (*Builder).ZeroOrMore, []StateID{0, 3}, []StateID{0, 3}},
		{"zero or one", (*Builder).ZeroOrOne, []StateID{0, 3}, []StateID{3}},
		{"one or more", (*Builder).OneOrMore, []StateID{0}, []StateID{0, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder()
			lit := b.Literal('a')
			f := tt.apply(b, lit)
			a := b.Finish(f)

			if f.Start != 2 || f.End != 3 {
				t.Fatalf("fragment = %+v, want {2 3}", f)
			}
			if got := a.State(f.Start).Nexts; !reflect.DeepEqual(got, tt.wantStart) {
				t.Errorf("new start nexts = %v, want %v", got, tt.wantStart)
			}
			if got := a.State(lit.End).Nexts; !reflect.DeepEqual(got, tt.wantOld) {
				t.Errorf("old end nexts = %v, want %v", got, tt.wantOld)
			}
			if !a.State(f.End).IsAccepting() {
				t.Error("new end should have no transitions")
			}
			if !a.State(lit.Start).Label.Matches('a') {
				t.Error("composition must not relabel the literal state")
			}
		})
	}
}

func TestConcatAndAlternate(t *testing.T) {
	b := NewBuilder()
	x := b.Literal('x')
	y := b.Literal('y')
	cat := b.Concat(x, y)
	if cat.Start != x.Start || cat.End != y.End {
		t.Fatalf("Concat = %+v, want {%d %d}", cat, x.Start, y.End)
	}

	z := b.Literal('z')
	alt := b.Alternate(cat, z)
	a := b.Finish(alt)

	if got := a.State(x.End).Nexts; !reflect.DeepEqual(got, []StateID{y.Start}) {
		t.Errorf("x end nexts = %v, want [%d]", got, y.Start)
	}
	if got := a.State(alt.Start).Nexts; !reflect.DeepEqual(got, []StateID{z.Start, cat.Start}) {
		t.Errorf("alternation start nexts = %v, want [%d %d]", got, z.Start, cat.Start)
	}
	for _, end := range []StateID{cat.End, z.End} {
		if got := a.State(end).Nexts; !reflect.DeepEqual(got, []StateID{alt.End}) {
			t.Errorf("branch end %d nexts = %v, want [%d]", end, got, alt.End)
		}
	}
	if got := a.Accepting(); !reflect.DeepEqual(got, []StateID{alt.End}) {
		t.Errorf("Accepting() = %v, want [%d]", got, alt.End)
	}

	for _, tc := range []struct {
		input string
		want  bool
	}{
		{"xy", true},
		{"z", true},
		{"x", false},
		{"xyz", false},
		{"", false},
	} {
		if got := a.Match(tc.input); got != tc.want {
			t.Errorf("Match(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestClosure(t *testing.T) {
	b := NewBuilder()
	f := b.ZeroOrMore(b.Literal('a')) // 0 'a' -> 1; 1 -> 0 3; 2 -> 0 3
	a := b.Finish(f)

	if got := sorted(a.Closure([]StateID{a.Start()})); !reflect.DeepEqual(got, []StateID{0, 2, 3}) {
		t.Errorf("Closure(start) = %v, want [0 2 3]", got)
	}
	// literal states are kept but not expanded
	if got := a.Closure([]StateID{0}); !reflect.DeepEqual(got, []StateID{0}) {
		t.Errorf("Closure([0]) = %v, want [0]", got)
	}
	if got := sorted(a.Closure([]StateID{1})); !reflect.DeepEqual(got, []StateID{0, 1, 3}) {
		t.Errorf("Closure([1]) = %v, want [0 1 3]", got)
	}
	if got := a.Closure(nil); len(got) != 0 {
		t.Errorf("Closure(nil) = %v, want empty", got)
	}
	if got := a.Move([]StateID{0, 2, 3}, 'a'); !reflect.DeepEqual(got, []StateID{1}) {
		t.Errorf("Move('a') = %v, want [1]", got)
	}
	if got := a.Move([]StateID{0, 2, 3}, 'b'); len(got) != 0 {
		t.Errorf("Move('b') = %v, want empty", got)
	}
}

func TestClosureTerminatesOnEpsilonCycle(t *testing.T) {
	b := NewBuilder()
	inner := b.ZeroOrMore(b.Literal('a'))
	outer := b.ZeroOrMore(inner) // inner end -> inner start -> inner end is an epsilon loop
	a := b.Finish(outer)

	got := a.Closure([]StateID{a.Start()})
	if len(got) != a.Len()-1 {
		t.Errorf("Closure(start) has %d states, want %d", len(got), a.Len()-1)
	}
	for _, in := range []string{"", "a", "aaaa"} {
		if !a.Match(in) {
			t.Errorf("Match(%q) = false, want true", in)
		}
	}
	if a.Match("ab") {
		t.Error("Match(ab) = true, want false")
	}
}

func TestMatchEmptyInput(t *testing.T) {
	tests := []struct {
		name  string
		build func(*Builder) Fragment
		want  bool
	}{
		{"literal", func(b *Builder) Fragment { return b.Literal('a') }, false},
		{"star", func(b *Builder) Fragment { return b.ZeroOrMore(b.Literal('a')) }, true},
		{"optional", func(b *Builder) Fragment { return b.ZeroOrOne(b.Literal('a')) }, true},
		{"plus", func(b *Builder) Fragment { return b.OneOrMore(b.Literal('a')) }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder()
			a := b.Finish(tt.build(b))
			if got := a.Match(""); got != tt.want {
				t.Errorf("Match(\"\") = %v, want %v", got, tt.want)
			}
			if got := a.MatchBytes(nil); got != tt.want {
				t.Errorf("MatchBytes(nil) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatchBytesMultibyte(t *testing.T) {
	b := NewBuilder()
	a := b.Finish(b.Concat(b.Literal('日'), b.OneOrMore(b.Literal('本'))))

	for _, tc := range []struct {
		input string
		want  bool
	}{
		{"日本", true},
		{"日本本本", true},
		{"日", false},
		{"本", false},
		{"\xe6", false},
	} {
		if got := a.MatchBytes([]byte(tc.input)); got != tc.want {
			t.Errorf("MatchBytes(%q) = %v, want %v", tc.input, got, tc.want)
		}
		if got := a.Match(tc.input); got != tc.want {
			t.Errorf("Match(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestAlphabetAndString(t *testing.T) {
	b := NewBuilder()
	a := b.Finish(b.Alternate(b.Concat(b.Literal('b'), b.Literal('a')), b.Literal('b')))

	if got := a.Alphabet().String(); got != "[ab]" {
		t.Errorf("Alphabet() = %s, want [ab]", got)
	}

	dump := a.String()
	if lines := strings.Count(dump, "\n"); lines != a.Len() {
		t.Errorf("String() has %d lines, want %d", lines, a.Len())
	}
	if !strings.Contains(dump, "(accept)") {
		t.Errorf("String() does not mark the accepting state:\n%s", dump)
	}
	if !strings.HasPrefix(strings.Split(dump, "\n")[a.Start()], ">") {
		t.Errorf("String() does not mark the start state:\n%s", dump)
	}
}

func TestInvalidUTF8NeverMatches(t *testing.T) {
	b := NewBuilder()
	a := b.Finish(b.ZeroOrMore(b.Literal('�')))

	for _, tc := range []struct {
		input string
		want  bool
	}{
		{"", true},
		{"�", true},
		{"��", true},
		{"\xff", false},
		{"�\x80", false},
		{"\xef\xbf", false},
	} {
		if got := a.Match(tc.input); got != tc.want {
			t.Errorf("Match(%q) = %v, want %v", tc.input, got, tc.want)
		}
		if got := a.MatchBytes([]byte(tc.input)); got != tc.want {
			t.Errorf("MatchBytes(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}
