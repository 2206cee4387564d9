package compiler

import (
	"fmt"
	"sort"

	"github.com/KromDaniel/tinyre/internal/codegen"
	"github.com/KromDaniel/tinyre/internal/logger"
	"github.com/KromDaniel/tinyre/internal/nfa"
	"github.com/dave/jennifer/jen"
)

// bitset is a state set packed into 64-bit words.
type bitset []uint64

func newBitset(words int) bitset {
	return make(bitset, words)
}

func (b bitset) set(id nfa.StateID) {
	b[id/64] |= 1 << (uint(id) % 64)
}

func bitsetOf(words int, ids []nfa.StateID) bitset {
	b := newBitset(words)
	for _, id := range ids {
		b.set(id)
	}
	return b
}

// simulation precomputes everything the generated subset simulation needs:
// epsilon closures become constant bitsets, so the generated code only ORs
// words together.
type simulation struct {
	a     *nfa.Automaton
	words int

	startClosure bitset
	acceptMask   bitset

	// successor closure of every literal state, grouped by label
	labels    []rune
	byLabel   map[rune][]nfa.StateID
	successor map[nfa.StateID]bitset
}

func newSimulation(a *nfa.Automaton, log *logger.Logger) *simulation {
	words := (a.Len() + 63) / 64
	if words == 0 {
		words = 1
	}

	s := &simulation{
		a:            a,
		words:        words,
		startClosure: bitsetOf(words, a.Closure([]nfa.StateID{a.Start()})),
		acceptMask:   bitsetOf(words, a.Accepting()),
		byLabel:      make(map[rune][]nfa.StateID),
		successor:    make(map[nfa.StateID]bitset),
	}

	for i := 0; i < a.Len(); i++ {
		st := a.State(nfa.StateID(i))
		if st.Label.IsEpsilon() {
			continue
		}
		r := st.Label.Char
		if _, ok := s.byLabel[r]; !ok {
			s.labels = append(s.labels, r)
		}
		s.byLabel[r] = append(s.byLabel[r], st.ID)
		s.successor[st.ID] = bitsetOf(words, a.Closure(st.Nexts))
	}
	sort.Slice(s.labels, func(i, j int) bool { return s.labels[i] < s.labels[j] })

	log.Log("NFA states: %d (%d word(s) per state set)", a.Len(), words)
	log.Log("Alphabet: %s", a.Alphabet())
	log.Log("Start closure: %d state(s)", len(a.Closure([]nfa.StateID{a.Start()})))
	log.Log("Accepts empty input: %v", s.acceptsEmpty())

	return s
}

// acceptsEmpty reports whether the start closure contains an accepting state.
func (s *simulation) acceptsEmpty() bool {
	for i := range s.startClosure {
		if s.startClosure[i]&s.acceptMask[i] != 0 {
			return true
		}
	}
	return false
}

// setType returns the [W]uint64 type used for state sets.
func (s *simulation) setType() *jen.Statement {
	return jen.Index(jen.Lit(s.words)).Uint64()
}

func hex(v uint64) jen.Code {
	return jen.Op(fmt.Sprintf("%#x", v))
}

func (s *simulation) setValue(b bitset) *jen.Statement {
	values := make([]jen.Code, len(b))
	for i, w := range b {
		values[i] = hex(w)
	}
	return s.setType().Values(values...)
}

// generateTables emits the start closure and the accept mask.
func (s *simulation) generateTables(f *jen.File, name string) {
	f.Comment(fmt.Sprintf("%s is the epsilon-closure of the start state.", codegen.HelperName(name, codegen.StartSuffix)))
	f.Var().Id(codegen.HelperName(name, codegen.StartSuffix)).Op("=").Add(s.setValue(s.startClosure))
	f.Line()
	f.Comment(fmt.Sprintf("%s marks the accepting states.", codegen.HelperName(name, codegen.AcceptSuffix)))
	f.Var().Id(codegen.HelperName(name, codegen.AcceptSuffix)).Op("=").Add(s.setValue(s.acceptMask))
	f.Line()
}

// generateStep emits the function advancing a state set over one character.
// Every active state labelled c contributes the closure of its successors.
func (s *simulation) generateStep(f *jen.File, name string) {
	cases := make([]jen.Code, 0, len(s.labels))
	for _, r := range s.labels {
		var body []jen.Code
		for _, id := range s.byLabel[r] {
			body = append(body, s.stateTransition(id)...)
		}
		cases = append(cases, jen.Case(jen.LitRune(r)).Block(body...))
	}

	f.Func().Id(codegen.HelperName(name, codegen.StepSuffix)).
		Params(jen.Id(codegen.CurrentName).Add(s.setType()), jen.Id(codegen.CharName).Rune()).
		Add(s.setType()).
		Block(
			jen.Var().Id(codegen.NextName).Add(s.setType()),
			jen.Switch(jen.Id(codegen.CharName)).Block(cases...),
			jen.Return(jen.Id(codegen.NextName)),
		)
	f.Line()
}

func (s *simulation) stateTransition(id nfa.StateID) []jen.Code {
	word, bit := int(id)/64, uint64(1)<<(uint(id)%64)

	var body []jen.Code
	for i, w := range s.successor[id] {
		if w == 0 {
			continue
		}
		body = append(body, jen.Id(codegen.NextName).Index(jen.Lit(i)).Op("|=").Add(hex(w)))
	}

	return []jen.Code{
		jen.Comment(codegen.StateName(int(id))),
		jen.If(jen.Id(codegen.CurrentName).Index(jen.Lit(word)).Op("&").Add(hex(bit)).Op("!=").Lit(0)).Block(body...),
	}
}

// generateAccepts emits the function reporting whether a set contains an
// accepting state.
func (s *simulation) generateAccepts(f *jen.File, name string) {
	f.Func().Id(codegen.HelperName(name, codegen.AcceptsSuffix)).
		Params(jen.Id(codegen.SetName).Add(s.setType())).
		Bool().
		Block(
			jen.For(jen.Id("i").Op(":=").Range().Id(codegen.SetName)).Block(
				jen.If(
					jen.Id(codegen.SetName).Index(jen.Id("i")).Op("&").
						Id(codegen.HelperName(name, codegen.AcceptSuffix)).Index(jen.Id("i")).Op("!=").Lit(0),
				).Block(jen.Return(jen.True())),
			),
			jen.Return(jen.False()),
		)
	f.Line()
}

// advance returns the statements applied per input character: step, then
// stop as soon as no state is active.
func (s *simulation) advance(name string) []jen.Code {
	return []jen.Code{
		jen.Id(codegen.CurrentName).Op("=").Id(codegen.HelperName(name, codegen.StepSuffix)).Call(
			jen.Id(codegen.CurrentName), jen.Id(codegen.CharName),
		),
		jen.If(jen.Id(codegen.CurrentName).Op("==").Parens(s.setType().Values())).Block(
			jen.Return(jen.False()),
		),
	}
}

// decodeLoop returns the body of a matcher whose input is decoded with the
// given unicode/utf8 function. Invalid encodings reject, since no pattern
// contains one.
func (s *simulation) decodeLoop(name, decode string) []jen.Code {
	loop := append([]jen.Code{
		jen.List(jen.Id(codegen.CharName), jen.Id(codegen.SizeName)).Op(":=").
			Qual("unicode/utf8", decode).Call(jen.Id(codegen.InputName)),
		jen.Id(codegen.InputName).Op("=").Id(codegen.InputName).Index(jen.Id(codegen.SizeName).Op(":")),
		jen.If(
			jen.Id(codegen.CharName).Op("==").Qual("unicode/utf8", "RuneError").
				Op("&&").Id(codegen.SizeName).Op("==").Lit(1),
		).Block(jen.Return(jen.False())),
	}, s.advance(name)...)

	return []jen.Code{
		jen.Id(codegen.CurrentName).Op(":=").Id(codegen.HelperName(name, codegen.StartSuffix)),
		jen.For(jen.Len(jen.Id(codegen.InputName)).Op(">").Lit(0)).Block(loop...),
		jen.Return(jen.Id(codegen.HelperName(name, codegen.AcceptsSuffix)).Call(jen.Id(codegen.CurrentName))),
	}
}

func (s *simulation) matchStringBody(name string) []jen.Code {
	return s.decodeLoop(name, "DecodeRuneInString")
}

func (s *simulation) matchBytesBody(name string) []jen.Code {
	return s.decodeLoop(name, "DecodeRune")
}
