package althtml

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsLessStyleElementMatchesTypeAttribute(t *testing.T) {
	match := &Node{Kind: NodeElement, Name: "style", Attrs: AttrList{
		{Kind: AttrPair, Name: "type", Value: literalSpan("text/css+less")},
	}}
	require.True(t, isLessStyleElement(match))

	wrongType := &Node{Kind: NodeElement, Name: "style", Attrs: AttrList{
		{Kind: AttrPair, Name: "type", Value: literalSpan("text/css")},
	}}
	require.False(t, isLessStyleElement(wrongType))

	notStyle := &Node{Kind: NodeElement, Name: "div"}
	require.False(t, isLessStyleElement(notStyle))
}

func TestLessStylePostProcessorCompilesMatchingStyleBody(t *testing.T) {
	nodes := []*Node{
		{
			Kind: NodeElement,
			Name: "style",
			Attrs: AttrList{
				{Kind: AttrPair, Name: "type", Value: literalSpan("text/css+less")},
			},
			Children: []*Node{
				{Kind: NodeText, Span: literalSpan(".btn { color: red; }")},
			},
		},
	}
	out := LessStylePostProcessor{}.Process(nodes)
	require.Len(t, out, 1)
	style := out[0]

	// type="text/css+less" is stripped once compiled.
	for _, a := range style.Attrs {
		require.NotEqual(t, "type", a.Name)
	}
	require.Len(t, style.Children, 1)
	require.Equal(t, NodeRawBlock, style.Children[0].Kind)
	css := style.Children[0].RawLines[0]
	require.Contains(t, css, ".btn")
	require.Contains(t, css, "color")
	require.Contains(t, css, "red")
}

func TestLessStylePostProcessorLeavesNonLessStyleUntouched(t *testing.T) {
	original := &Node{
		Kind: NodeElement,
		Name: "style",
		Children: []*Node{
			{Kind: NodeText, Span: literalSpan("body { margin: 0; }")},
		},
	}
	out := LessStylePostProcessor{}.Process([]*Node{original})
	require.Same(t, original, out[0])
	require.Equal(t, NodeText, out[0].Children[0].Kind)
	require.Equal(t, "body { margin: 0; }", out[0].Children[0].Span.Raw())
}

func TestLessStylePostProcessorRecursesIntoChildren(t *testing.T) {
	inner := &Node{
		Kind: NodeElement,
		Name: "style",
		Attrs: AttrList{
			{Kind: AttrPair, Name: "type", Value: literalSpan("text/css+less")},
		},
		Children: []*Node{
			{Kind: NodeText, Span: literalSpan(".a { color: blue; }")},
		},
	}
	root := &Node{Kind: NodeElement, Name: "head", Children: []*Node{inner}}
	LessStylePostProcessor{}.Process([]*Node{root})
	require.Equal(t, NodeRawBlock, inner.Children[0].Kind)
}

func TestCompilerWithLessStylePostProcessorEndToEnd(t *testing.T) {
	source := "style type=\"text/css+less\"\n  raw\n    .nav { .item { color: green; } }\n"
	c := New(WithPostProcessor(LessStylePostProcessor{}))
	html, errs := c.Compile(source, "f")
	require.Empty(t, errs)
	require.NotContains(t, html, "text/css+less")
	require.Contains(t, html, "color")
	require.Contains(t, html, "green")
}
