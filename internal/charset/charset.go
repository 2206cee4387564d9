// Package charset describes finite sets of characters as sorted, merged
// ranges of runes.
package charset

import (
	"sort"
	"strings"
)

type span struct{ from, to rune }

// Set is an immutable set of runes. The zero value is the empty set.
type Set struct {
	spans []span
}

// Of returns the set of the given runes.
func Of(runes ...rune) Set {
	sorted := append([]rune(nil), runes...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var spans []span
	for _, r := range sorted {
		if n := len(spans); n > 0 && r <= spans[n-1].to+1 {
			if r > spans[n-1].to {
				spans[n-1].to = r
			}
			continue
		}
		spans = append(spans, span{r, r})
	}
	return Set{spans: spans}
}

// Contains reports whether r is a member of the set.
func (s Set) Contains(r rune) bool {
	i := sort.Search(len(s.spans), func(i int) bool { return s.spans[i].to >= r })
	return i < len(s.spans) && s.spans[i].from <= r
}

// ContainsAll reports whether every rune of str is a member of the set.
func (s Set) ContainsAll(str string) bool {
	for _, r := range str {
		if !s.Contains(r) {
			return false
		}
	}
	return true
}

// String renders the set in bracket notation, e.g. [0-9a-z].
func (s Set) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for _, sp := range s.spans {
		writeRune(&b, sp.from)
		switch {
		case sp.to == sp.from+1:
			writeRune(&b, sp.to)
		case sp.to != sp.from:
			b.WriteByte('-')
			writeRune(&b, sp.to)
		}
	}
	b.WriteByte(']')
	return b.String()
}

func writeRune(b *strings.Builder, r rune) {
	switch {
	case r == '-' || r == ']' || r == '\\' || r == '^':
		b.WriteByte('\\')
		b.WriteRune(r)
	case r < ' ':
		b.WriteString(quoteRune(r))
	default:
		b.WriteRune(r)
	}
}

func quoteRune(r rune) string {
	switch r {
	case '\t':
		return `\t`
	case '\n':
		return `\n`
	case '\r':
		return `\r`
	case '\f':
		return `\f`
	case '\v':
		return `\v`
	}
	const hex = "0123456789abcdef"
	return `\x` + string(hex[(r>>4)&0xf]) + string(hex[r&0xf])
}
