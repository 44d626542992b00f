package althtml

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func expandSource(t *testing.T, source string) ([]*Node, ErrorList) {
	t.Helper()
	lines, rawBodies, errs := buildLines(source, "f")
	root := buildTree(lines, rawBodies, "f", &errs)
	ctx := &expandCtx{env: newEnvironment(), filename: "f", errs: &errs}
	nodes := ctx.expandNodes(root.Children)
	return nodes, errs
}

func TestExpandSpanSubstitutesBoundWord(t *testing.T) {
	nodes, errs := expandSource(t, "set user = \"Ada\"\np | Hi user\n")
	require.Empty(t, errs)
	require.Len(t, nodes, 1)
	require.Equal(t, "Hi Ada", nodes[0].TextAfterPipe.Raw())
}

func TestExpandSpanLeavesUnboundWordLiteral(t *testing.T) {
	nodes, errs := expandSource(t, "p | Hello world\n")
	require.Empty(t, errs)
	require.Equal(t, "Hello world", nodes[0].TextAfterPipe.Raw())
}

func TestExpandEscapesLiteralBindingInText(t *testing.T) {
	nodes, errs := expandSource(t, "set x = \"<b>&</b>\"\np | see x\n")
	require.Empty(t, errs)
	require.Equal(t, "see &lt;b&gt;&amp;&lt;/b&gt;", nodes[0].TextAfterPipe.Raw())
}

func TestExpandAttributeValueEscapesQuotes(t *testing.T) {
	nodes, errs := expandSource(t, "set x = \"a\\\"b\"\ndiv data-v=x\n")
	require.Empty(t, errs)
	require.Equal(t, "a&quot;b", nodes[0].Attrs[0].Value.Raw())
}

func TestExpandRawStringInsertedUnescaped(t *testing.T) {
	nodes, errs := expandSource(t, "set x\n  raw\n    <b>&raw</b>\np | before x after\n")
	require.Empty(t, errs)
	require.Equal(t, "before <b>&raw</b> after", nodes[0].TextAfterPipe.Raw())
}

func TestExpandSubtreeBindingInSpanErrors(t *testing.T) {
	source := "set thing\n  p\n    | hi\ndiv | use thing\n"
	_, errs := expandSource(t, source)
	require.Len(t, errs, 1)
	require.Equal(t, BindingKindMismatch, errs[0].Kind)
}

func TestExpandVarInsertionSplicesSubtree(t *testing.T) {
	// The subtree's own content must come through fully expanded: a bound
	// word inside its text is resolved, not dropped, and an element nested
	// inside it keeps its children (§4.6). TextSpan.Raw() only concatenates
	// literal chunks, so an unexpanded clone would silently lose "world"
	// from the output text entirely.
	source := "set greeting = \"world\"\n" +
		"set thing\n" +
		"  p\n" +
		"    | hello greeting\n" +
		"  span\n" +
		"    | inner\n" +
		"thing\n"
	nodes, errs := expandSource(t, source)
	require.Empty(t, errs)
	require.Len(t, nodes, 2)
	require.Equal(t, "p", nodes[0].Name)
	require.Len(t, nodes[0].Children, 1)
	require.Equal(t, "hello world", nodes[0].Children[0].Span.Raw())
	require.Equal(t, "span", nodes[1].Name)
	require.Len(t, nodes[1].Children, 1)
	require.Equal(t, "inner", nodes[1].Children[0].Span.Raw())
}

func TestExpandBareUnboundIdentifierStaysElement(t *testing.T) {
	nodes, errs := expandSource(t, "widget\n")
	require.Empty(t, errs)
	require.Len(t, nodes, 1)
	require.Equal(t, NodeElement, nodes[0].Kind)
	require.Equal(t, "widget", nodes[0].Name)
}

func TestExpandVarInsertionRawStringBecomesRawBlock(t *testing.T) {
	source := "set x\n  raw\n    <i>raw</i>\nx\n"
	nodes, errs := expandSource(t, source)
	require.Empty(t, errs)
	require.Len(t, nodes, 1)
	require.Equal(t, NodeRawBlock, nodes[0].Kind)
	require.Equal(t, "<i>raw</i>", nodes[0].RawLines[0])
}

func TestExpandImplicitTextCollapsesWhitespace(t *testing.T) {
	// A line led by an identifier parses as a tag, so the implicit text line
	// here starts with a digit.
	nodes, errs := expandSource(t, "div\n  1   lots   of   whitespace  \n")
	require.Empty(t, errs)
	text := nodes[0].Children[0]
	require.Equal(t, NodeText, text.Kind)
	require.Equal(t, "1 lots of whitespace", text.Span.Raw())
}

func TestExpandImplicitClassWordResolvesBinding(t *testing.T) {
	source := "set theme = \"dark\"\ndiv theme\n"
	nodes, errs := expandSource(t, source)
	require.Empty(t, errs)
	require.Len(t, nodes[0].ClassesImplicit, 1)
	require.Equal(t, "dark", nodes[0].ClassesImplicit[0].Raw())
}

func TestCollapseWhitespace(t *testing.T) {
	require.Equal(t, "a b c", collapseWhitespace("a   b\tc"))
	require.Equal(t, " a ", collapseWhitespace(" a "))
}

func TestEscapeText(t *testing.T) {
	require.Equal(t, "&lt;a&gt;&amp;&quot;b&quot;", escapeText(`<a>&"b"`, true))
	require.Equal(t, `&lt;a&gt;&amp;"b"`, escapeText(`<a>&"b"`, false))
}
