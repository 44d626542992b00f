package althtml

import "github.com/titpetric/althtml/internal/helpers"

// SpanChunk is one piece of a TextSpan: either a literal run or a reference
// to a bound name, resolved against the Environment at emission time (§4.3).
type SpanChunk struct {
	Literal string
	Var     string // non-empty for a variable reference; Literal is empty then
}

// TextSpan is a sequence of literal and variable chunks, the uniform shape
// used for text, attribute values and id fragments (§3).
type TextSpan struct {
	Chunks []SpanChunk
}

// Plain reports whether the span carries no variable references.
func (s TextSpan) Plain() bool {
	for _, c := range s.Chunks {
		if c.Var != "" {
			return false
		}
	}
	return true
}

// Raw concatenates the span's literal content, ignoring variable resolution.
// Used only where a span is known to contain no references (e.g. raw blocks).
func (s TextSpan) Raw() string {
	var out string
	for _, c := range s.Chunks {
		out += c.Literal
	}
	return out
}

// ParseSpan segments a string into literal and identifier chunks. There is
// no `${...}` sigil in Althtml (§4.3): any maximal identifier run is a
// candidate variable reference, resolved against the environment later by
// the expander — whether it is actually bound is not decided here.
func ParseSpan(s string) TextSpan {
	var span TextSpan
	var literal []byte

	flush := func() {
		if len(literal) > 0 {
			span.Chunks = append(span.Chunks, SpanChunk{Literal: string(literal)})
			literal = literal[:0]
		}
	}

	runes := []rune(s)
	i := 0
	for i < len(runes) {
		ch := runes[i]
		if helpers.IsIdentifierStart(ch) {
			j := i + 1
			for j < len(runes) && helpers.IsIdentifierChar(runes[j]) {
				j++
			}
			flush()
			span.Chunks = append(span.Chunks, SpanChunk{Var: string(runes[i:j])})
			i = j
			continue
		}
		literal = append(literal, string(ch)...)
		i++
	}
	flush()
	return span
}
