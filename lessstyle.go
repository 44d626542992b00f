package althtml

import (
	"bytes"
	"strings"

	"github.com/titpetric/lessgo/dst"
	"github.com/titpetric/lessgo/renderer"
)

// LessStylePostProcessor compiles the body of any <style type="text/css+less">
// element with github.com/titpetric/lessgo before emission (§11.3). It is
// strictly opt-in (WithPostProcessor) — default compilation never touches
// style bodies, keeping the core emitter free of the Non-goal "HTML
// validation/formatting".
type LessStylePostProcessor struct{}

func (LessStylePostProcessor) Process(nodes []*Node) []*Node {
	for _, n := range nodes {
		processLessNode(n)
	}
	return nodes
}

func processLessNode(n *Node) {
	if n.Kind == NodeElement {
		if isLessStyleElement(n) {
			compileLessChildren(n)
		}
		for _, c := range n.Children {
			processLessNode(c)
		}
	}
}

func isLessStyleElement(n *Node) bool {
	if n.Name != "style" {
		return false
	}
	for _, a := range n.Attrs {
		if a.Name == "type" && a.Value.Raw() == "text/css+less" {
			return true
		}
	}
	return false
}

// compileLessChildren collapses a <style> element's text content into a
// single raw block of compiled CSS, using lessgo's parser (dst) and renderer.
func compileLessChildren(n *Node) {
	var source string
	for _, c := range n.Children {
		if c.Kind == NodeText || c.Kind == NodeRawBlock {
			source += c.Span.Raw() + joinRawLines(c.RawLines)
		}
	}
	if n.TextAfterPipe != nil {
		source = n.TextAfterPipe.Raw() + source
	}
	if source == "" {
		return
	}

	parser := dst.NewParser(bytes.NewReader([]byte(source)))
	file, err := parser.Parse()
	if err != nil {
		n.Children = []*Node{{Kind: NodeRawBlock, RawLines: []string{"/* less error: " + err.Error() + " */"}}}
		return
	}

	r := renderer.NewRenderer()
	css, err := r.Render(file)
	if err != nil {
		n.Children = []*Node{{Kind: NodeRawBlock, RawLines: []string{"/* less error: " + err.Error() + " */"}}}
		return
	}

	var kept AttrList
	for _, a := range n.Attrs {
		if a.Name != "type" {
			kept = append(kept, a)
		}
	}
	n.Attrs = kept
	n.TextAfterPipe = nil
	n.Children = []*Node{{Kind: NodeRawBlock, RawLines: []string{strings.TrimSpace(css)}}}
}
