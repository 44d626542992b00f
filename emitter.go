package althtml

import (
	"strings"

	"golang.org/x/net/html/atom"
)

// voidElements are always self-closing regardless of source syntax (§4.7).
// Built from golang.org/x/net/html/atom's canonical tag atoms rather than a
// second hand-maintained string list, so the set tracks the same HTML
// vocabulary the project's own HTML parser recognizes.
var voidElements = buildVoidElements()

func buildVoidElements() map[string]bool {
	names := []atom.Atom{
		atom.Img, atom.Br, atom.Meta, atom.Input, atom.Link, atom.Hr,
		atom.Area, atom.Base, atom.Col, atom.Embed, atom.Source, atom.Track, atom.Wbr,
	}
	set := make(map[string]bool, len(names))
	for _, a := range names {
		set[a.String()] = true
	}
	return set
}

// buildVoidElementSet lower-cases an embedder-supplied tag list (§10.2) into
// the same shape as the default voidElements set.
func buildVoidElementSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[strings.ToLower(n)] = true
	}
	return set
}

// emit walks the expanded tree and produces HTML (§4.7). void is the set of
// tag names always self-closed; pass nil to fall back to the default
// HTML5 void-element set.
func emit(nodes []*Node, void map[string]bool) string {
	if void == nil {
		void = voidElements
	}
	var b strings.Builder
	for _, n := range nodes {
		emitNode(n, &b, void)
	}
	return b.String()
}

func emitNode(n *Node, b *strings.Builder, void map[string]bool) {
	switch n.Kind {
	case NodeElement:
		emitElement(n, b, void)
	case NodeText:
		b.WriteString(n.Span.Raw())
	case NodeRawBlock:
		b.WriteString(joinRawLines(n.RawLines))
	}
}

func emitElement(n *Node, b *strings.Builder, void map[string]bool) {
	if strings.EqualFold(n.Name, "!DOCTYPE") {
		emitDoctype(n, b)
		return
	}

	selfClosing := n.SelfClosing || void[strings.ToLower(n.Name)]

	b.WriteByte('<')
	b.WriteString(n.Name)
	emitID(n, b)
	emitClass(n, b)
	for _, a := range n.Attrs {
		b.WriteByte(' ')
		b.WriteString(a.Name)
		b.WriteString(`="`)
		b.WriteString(a.Value.Raw())
		b.WriteByte('"')
	}

	if selfClosing {
		b.WriteString(" />")
		return
	}
	b.WriteByte('>')

	if n.TextAfterPipe != nil {
		b.WriteString(n.TextAfterPipe.Raw())
	}
	for _, c := range n.Children {
		emitNode(c, b, void)
	}

	b.WriteString("</")
	b.WriteString(n.Name)
	b.WriteByte('>')
}

func emitID(n *Node, b *strings.Builder) {
	if len(n.IDParts) == 0 {
		return
	}
	b.WriteString(` id="`)
	for _, part := range n.IDParts {
		b.WriteString(part.Raw())
	}
	b.WriteByte('"')
}

func emitClass(n *Node, b *strings.Builder) {
	if len(n.ClassesImplicit) == 0 && len(n.ClassesExplicit) == 0 {
		return
	}
	seen := make(map[string]bool)
	var classes []string
	add := func(word string) {
		if word == "" || seen[word] {
			return
		}
		seen[word] = true
		classes = append(classes, word)
	}
	for _, w := range n.ClassesImplicit {
		add(w.Raw())
	}
	for _, ex := range n.ClassesExplicit {
		for _, w := range strings.Fields(ex.Raw()) {
			add(w)
		}
	}
	if len(classes) == 0 {
		return
	}
	b.WriteString(` class="`)
	b.WriteString(strings.Join(classes, " "))
	b.WriteByte('"')
}

func emitDoctype(n *Node, b *strings.Builder) {
	if len(n.Attrs) == 0 {
		b.WriteString("<!DOCTYPE html>")
		return
	}
	b.WriteString("<!DOCTYPE")
	for _, a := range n.Attrs {
		b.WriteByte(' ')
		b.WriteString(a.Name)
		b.WriteString(`="`)
		b.WriteString(a.Value.Raw())
		b.WriteByte('"')
	}
	b.WriteString(">")
}
