package althtml

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// spanText reconstructs a span's original source substring regardless of
// whether each chunk was classified Literal or Var — .Raw() only
// concatenates literal chunks, which is the wrong tool for inspecting a
// pre-expansion span that may contain identifier-shaped substrings.
func spanText(s TextSpan) string {
	var b strings.Builder
	for _, c := range s.Chunks {
		if c.Var != "" {
			b.WriteString(c.Var)
		} else {
			b.WriteString(c.Literal)
		}
	}
	return b.String()
}

func TestTokenizeAttrsBareClassWords(t *testing.T) {
	list, text, explicit, err := tokenizeAttrs("btn theme")
	require.Nil(t, err)
	require.False(t, explicit)
	require.Equal(t, TextSpan{}, text)
	require.Equal(t, AttrList{
		{Kind: AttrClass, Word: "btn"},
		{Kind: AttrClass, Word: "theme"},
	}, list)
}

func TestTokenizeAttrsIDFragment(t *testing.T) {
	list, _, _, err := tokenizeAttrs("#user-")
	require.Nil(t, err)
	require.Len(t, list, 1)
	require.Equal(t, AttrIDFragment, list[0].Kind)
	require.Equal(t, "user-", spanText(list[0].Value))
}

func TestTokenizeAttrsPairAndExplicitClass(t *testing.T) {
	list, _, _, err := tokenizeAttrs(`class="extra" data-value="some \"quoted\" data"`)
	require.Nil(t, err)
	require.Len(t, list, 2)
	require.Equal(t, AttrExplicitClass, list[0].Kind)
	require.Equal(t, "extra", spanText(list[0].Value))
	require.Equal(t, AttrPair, list[1].Kind)
	require.Equal(t, "data-value", list[1].Name)
	require.Equal(t, `some "quoted" data`, spanText(list[1].Value))
}

func TestTokenizeAttrsUnquotedValue(t *testing.T) {
	list, _, _, err := tokenizeAttrs("src=logo.png")
	require.Nil(t, err)
	require.Len(t, list, 1)
	require.Equal(t, AttrPair, list[0].Kind)
	require.Equal(t, "src", list[0].Name)
	require.Equal(t, "logo.png", spanText(list[0].Value))
}

func TestTokenizeAttrsPipeEndsAttributes(t *testing.T) {
	list, text, explicit, err := tokenizeAttrs("btn | Click Me")
	require.Nil(t, err)
	require.True(t, explicit)
	require.Equal(t, "Click Me", spanText(text))
	require.Len(t, list, 1)
}

func TestTokenizeAttrsUnterminatedQuoteErrors(t *testing.T) {
	list, _, _, err := tokenizeAttrs(`data-x="unterminated`)
	require.Nil(t, list)
	require.NotNil(t, err)
	require.Equal(t, MalformedAttribute, err.Kind)
}

func TestTokenizeAttrsEqualsWithoutNameErrors(t *testing.T) {
	_, _, _, err := tokenizeAttrs(`="value"`)
	require.NotNil(t, err)
	require.Equal(t, MalformedAttribute, err.Kind)
}

func TestTokenizeAttrsEmptyInput(t *testing.T) {
	list, text, explicit, err := tokenizeAttrs("")
	require.Nil(t, err)
	require.False(t, explicit)
	require.Empty(t, list)
	require.Equal(t, TextSpan{}, text)
}

func TestUnquoteTokenHandlesEscapes(t *testing.T) {
	require.Equal(t, `a "b" c`, unquoteToken(`"a \"b\" c"`))
	require.Equal(t, `back\slash`, unquoteToken(`"back\\slash"`))
	require.Equal(t, "bare", unquoteToken("bare"))
}
