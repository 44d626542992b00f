package althtml

import (
	"strconv"
	"strings"
)

const maxMacroDepth = 1000

// expandCtx threads the shared, mutable state of one compilation's
// expansion walk: the Environment, error collection and the current macro
// recursion depth. Mirrors how stack.go threads a single VueContext through
// vuego's whole render walk instead of passing each piece separately.
type expandCtx struct {
	env      *Environment
	filename string
	errs     *ErrorList
	depth    int
	maxDepth int

	// argsStack holds the call-by-value-expanded positional arguments of
	// every parameterized macro invocation currently being expanded, innermost
	// last. expandNode consults the top frame when it reaches a NodeMacroArg
	// placeholder, splicing in a fresh clone rather than re-expanding it —
	// the argument was already expanded once, in the caller's environment,
	// before the frame was pushed (§4.6's call-by-value rule).
	argsStack [][][]*Node
}

func (c *expandCtx) depthLimit() int {
	if c.maxDepth > 0 {
		return c.maxDepth
	}
	return maxMacroDepth
}

// expandNodes walks nodes top-down in document order, mutating env as
// bindings are encountered and replacing macro invocations / var insertions
// with their resolved content (§4.6). Bindings are invisible in the output;
// everything else is returned as a (possibly longer or shorter) node list.
func (c *expandCtx) expandNodes(nodes []*Node) []*Node {
	var out []*Node
	for _, n := range nodes {
		out = append(out, c.expandNode(n)...)
	}
	return out
}

// expandNode returns the zero-or-more nodes that n expands to.
func (c *expandCtx) expandNode(n *Node) []*Node {
	switch n.Kind {
	case NodeSetBinding:
		c.env.defineSet(n.BindName, n.Bound, c.filename, n.Line, c.errs)
		return nil

	case NodeMacroBinding:
		c.env.defineMacro(n.MacroName, &macroDef{
			parameterized: n.MacroParameterized,
			body:          n.MacroBody,
			line:          n.Line,
		}, c.filename, c.errs)
		return nil

	case NodeVarInsertion:
		return c.expandVarInsertion(n)

	case NodeMacroInvocation:
		return c.expandInvocation(n)

	case NodeElement:
		if name, isRef := bareVarInsertionName(n); isRef {
			if _, bound := c.env.lookup(name); bound {
				return c.expandVarInsertion(&Node{Kind: NodeVarInsertion, Line: n.Line, Col: n.Col, InsertName: name})
			}
		}
		return []*Node{c.expandElement(n)}

	case NodeText:
		span := n.Span
		if !n.PreserveWhitespace {
			span = normalizeImplicitSpan(span)
		}
		resolved, ok := c.resolveSpan(span, n.Line, false)
		if !ok {
			return nil
		}
		clone := *n
		clone.Span = literalSpan(resolved)
		return []*Node{&clone}

	case NodeRawBlock:
		text := joinRawLines(n.RawLines)
		if n.RawSubst {
			resolved, ok := c.resolveSpanRaw(ParseSpan(text), n.Line)
			if !ok {
				return nil
			}
			text = resolved
		}
		clone := *n
		clone.RawLines = []string{text}
		return []*Node{&clone}

	case NodeMacroArg:
		if len(c.argsStack) == 0 {
			// Unreachable: the tree builder already rejects @N outside a
			// parameterized macro body. Kept as a defensive fallback.
			c.errs.add(MacroArityError, c.filename, n.Line, n.Col, "unresolved macro argument placeholder")
			return nil
		}
		args := c.argsStack[len(c.argsStack)-1]
		if n.ArgIndex < 0 || n.ArgIndex >= len(args) {
			c.errs.add(MacroArityError, c.filename, n.Line, n.Col, "macro argument @"+strconv.Itoa(n.ArgIndex)+" out of range")
			return nil
		}
		// args[n.ArgIndex] was already expanded once, call-by-value, in the
		// caller's environment (expandInvocation); clone it per use site so
		// two occurrences of the same @N never alias the same nodes.
		return cloneNodes(args[n.ArgIndex])
	}
	return nil
}

// expandElement resolves an element's id/class/attribute spans and its
// pipe-text, then recursively expands its children.
func (c *expandCtx) expandElement(n *Node) *Node {
	out := &Node{
		Kind:        NodeElement,
		Line:        n.Line,
		Col:         n.Col,
		Name:        n.Name,
		SelfClosing: n.SelfClosing,
	}

	for _, part := range n.IDParts {
		if resolved, ok := c.resolveSpan(part, n.Line, false); ok {
			out.IDParts = append(out.IDParts, literalSpan(resolved))
		}
	}
	for _, im := range n.ClassesImplicit {
		if resolved, ok := c.resolveSpan(im, n.Line, false); ok {
			out.ClassesImplicit = append(out.ClassesImplicit, literalSpan(resolved))
		}
	}
	for _, ex := range n.ClassesExplicit {
		if resolved, ok := c.resolveSpan(ex, n.Line, false); ok {
			out.ClassesExplicit = append(out.ClassesExplicit, literalSpan(resolved))
		}
	}
	for _, a := range n.Attrs {
		if resolved, ok := c.resolveSpan(a.Value, n.Line, true); ok {
			out.Attrs = append(out.Attrs, AttrPart{Kind: AttrPair, Name: a.Name, Value: literalSpan(resolved)})
		}
	}

	if n.TextAfterPipe != nil {
		if resolved, ok := c.resolveSpan(*n.TextAfterPipe, n.Line, false); ok {
			span := literalSpan(resolved)
			out.TextAfterPipe = &span
		}
	}

	if n.SelfClosing {
		return out
	}
	out.Children = c.expandNodes(n.Children)
	return out
}

// expandVarInsertion replaces a bare name reference with its bound content
// (§4.6): a Subtree splices its nodes, a Literal becomes escaped text, a
// RawString becomes a verbatim block.
func (c *expandCtx) expandVarInsertion(n *Node) []*Node {
	bound, ok := c.env.lookup(n.InsertName)
	if !ok {
		c.errs.add(UnknownBinding, c.filename, n.Line, n.Col, "unbound name '"+n.InsertName+"'")
		return nil
	}
	switch bound.Kind {
	case BoundSubtree:
		return c.expandNodes(cloneNodes(bound.Subtree))
	case BoundLiteral:
		return []*Node{{Kind: NodeText, Line: n.Line, Span: literalSpan(escapeText(bound.Literal, false)), PreserveWhitespace: false}}
	case BoundRawString:
		return []*Node{{Kind: NodeRawBlock, Line: n.Line, RawLines: []string{bound.Raw}, RawSubst: false}}
	}
	return nil
}

// bareVarInsertionName reports whether n is syntactically indistinguishable
// from a bare name reference: a plain identifier line with no attributes,
// id/class fragments, pipe text, explicit self-closing marker or block body.
// Parsing cannot tell such a line apart from an intentionally empty custom
// element (§4.3's tag dispatch is binding-blind); the expander resolves the
// ambiguity once the environment is known, per §9's guidance to decide
// binding-vs-literal at emission time rather than at parse time.
func bareVarInsertionName(n *Node) (string, bool) {
	if n.SelfClosing || len(n.Attrs) > 0 || len(n.IDParts) > 0 ||
		len(n.ClassesImplicit) > 0 || len(n.ClassesExplicit) > 0 ||
		n.TextAfterPipe != nil || len(n.Children) > 0 {
		return "", false
	}
	return n.Name, true
}

func literalSpan(s string) TextSpan {
	return TextSpan{Chunks: []SpanChunk{{Literal: s}}}
}

// resolveSpan resolves every chunk of span against the environment and
// returns an HTML-ready string: literal text and string-bound variables are
// escaped, raw-string-bound variables are inserted verbatim (§4.6's
// "deliberate escape hatch"). escapeQuotes controls whether `"` is escaped
// (attribute-value context) or left alone (text context, per §4.7).
//
// There is no `${...}` sigil (§4.3): an identifier-looking chunk is a
// variable reference only if it is currently bound. An unbound chunk is
// "just a word" and passes through as literal text rather than failing —
// UnknownBinding applies to VarInsertion, not to word-shaped text (§4.6).
func (c *expandCtx) resolveSpan(span TextSpan, line int, escapeQuotes bool) (string, bool) {
	var b strings.Builder
	ok := true
	for _, chunk := range span.Chunks {
		if chunk.Var == "" {
			b.WriteString(escapeText(chunk.Literal, escapeQuotes))
			continue
		}
		bound, found := c.env.lookup(chunk.Var)
		if !found {
			b.WriteString(escapeText(chunk.Var, escapeQuotes))
			continue
		}
		switch bound.Kind {
		case BoundLiteral:
			b.WriteString(escapeText(bound.Literal, escapeQuotes))
		case BoundRawString:
			b.WriteString(bound.Raw)
		case BoundSubtree:
			c.errs.add(BindingKindMismatch, c.filename, line, 1, "'"+chunk.Var+"' is a subtree binding and cannot appear in a span")
			ok = false
		}
	}
	if !ok {
		return "", false
	}
	return b.String(), true
}

// normalizeImplicitSpan collapses whitespace runs to a single space within
// each literal chunk and trims the overall span's leading/trailing
// whitespace, matching implicit text's emission rule (§4.7). Variable
// chunks are left untouched; only the literal surrounding text is affected.
func normalizeImplicitSpan(span TextSpan) TextSpan {
	out := TextSpan{Chunks: make([]SpanChunk, len(span.Chunks))}
	copy(out.Chunks, span.Chunks)
	for i, c := range out.Chunks {
		if c.Var == "" {
			out.Chunks[i].Literal = collapseWhitespace(c.Literal)
		}
	}
	if len(out.Chunks) > 0 && out.Chunks[0].Var == "" {
		out.Chunks[0].Literal = strings.TrimLeft(out.Chunks[0].Literal, " ")
	}
	if last := len(out.Chunks) - 1; last >= 0 && out.Chunks[last].Var == "" {
		out.Chunks[last].Literal = strings.TrimRight(out.Chunks[last].Literal, " ")
	}
	return out
}

func collapseWhitespace(s string) string {
	var b strings.Builder
	prevSpace := false
	for _, ch := range s {
		if ch == ' ' || ch == '\t' || ch == '\n' {
			if !prevSpace {
				b.WriteByte(' ')
			}
			prevSpace = true
			continue
		}
		prevSpace = false
		b.WriteRune(ch)
	}
	return b.String()
}

// resolveSpanRaw resolves a span's variable references without any HTML
// escaping, for text living inside a `raw@` block that still gets
// substitution but never escaping.
func (c *expandCtx) resolveSpanRaw(span TextSpan, line int) (string, bool) {
	var b strings.Builder
	ok := true
	for _, chunk := range span.Chunks {
		if chunk.Var == "" {
			b.WriteString(chunk.Literal)
			continue
		}
		bound, found := c.env.lookup(chunk.Var)
		if !found {
			b.WriteString(chunk.Var)
			continue
		}
		switch bound.Kind {
		case BoundLiteral:
			b.WriteString(bound.Literal)
		case BoundRawString:
			b.WriteString(bound.Raw)
		case BoundSubtree:
			c.errs.add(BindingKindMismatch, c.filename, line, 1, "'"+chunk.Var+"' is a subtree binding and cannot appear in a span")
			ok = false
		}
	}
	if !ok {
		return "", false
	}
	return b.String(), true
}

func escapeText(s string, escapeQuotes bool) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	s = r.Replace(s)
	if escapeQuotes {
		s = strings.ReplaceAll(s, "\"", "&quot;")
	}
	return s
}
