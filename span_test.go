package althtml

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseSpanPlainLiteral(t *testing.T) {
	span := ParseSpan("hello world")
	require.True(t, span.Plain())
	require.Equal(t, "hello world", span.Raw())
}

func TestParseSpanSplitsIdentifierRuns(t *testing.T) {
	span := ParseSpan("Hi user!")
	require.False(t, span.Plain())
	require.Equal(t, []SpanChunk{
		{Literal: "Hi "},
		{Var: "user"},
		{Literal: "!"},
	}, span.Chunks)
}

func TestParseSpanLeadingAndTrailingVar(t *testing.T) {
	span := ParseSpan("user")
	require.Equal(t, []SpanChunk{{Var: "user"}}, span.Chunks)
}

func TestParseSpanAdjacentIdentifiers(t *testing.T) {
	span := ParseSpan("a_b 1c")
	// "a_b" is one identifier run (underscore continues); "1" is literal
	// since a digit cannot start an identifier, then "c" is its own run.
	require.Equal(t, []SpanChunk{
		{Var: "a_b"},
		{Literal: " 1"},
		{Var: "c"},
	}, span.Chunks)
}

func TestParseSpanEmpty(t *testing.T) {
	span := ParseSpan("")
	require.Empty(t, span.Chunks)
	require.True(t, span.Plain())
	require.Equal(t, "", span.Raw())
}

func TestTextSpanRawIgnoresVarNames(t *testing.T) {
	span := TextSpan{Chunks: []SpanChunk{{Literal: "a"}, {Var: "b"}, {Literal: "c"}}}
	require.Equal(t, "ac", span.Raw())
}
