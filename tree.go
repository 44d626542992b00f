package althtml

import "strings"

// Line is one surviving, classified source line (§3): a level plus its
// parsed form and source position.
type Line struct {
	Level  int
	Form   LineForm
	Line   int
	Column int
}

// buildLines runs the scanner, indentation tracker and line parser in
// sequence, producing the flat []Line the tree builder consumes, plus a
// side table of verbatim raw-block bodies keyed by the owning `raw`/`raw@`
// line's source line number (§4.4: raw bodies bypass the line parser
// entirely and are reconstructed from the original leading whitespace).
func buildLines(source, filename string) ([]Line, map[int][]string, ErrorList) {
	var errs ErrorList
	raws := scanSource(source)
	rawBodies := make(map[int][]string)

	tracker := &indentTracker{}
	lines := make([]Line, 0, len(raws))
	prevLevel := -1

	// captureLevel >= 0 while consuming a raw body; captureLine identifies
	// the owning raw directive.
	captureLevel := -1
	captureLine := 0

	i := 0
	for i < len(raws) {
		raw := raws[i]

		if captureLevel >= 0 {
			depth, ok := tracker.rawDepth(raw.Leading)
			if ok && depth > captureLevel {
				rawBodies[captureLine] = append(rawBodies[captureLine], tracker.stripUnits(raw.Leading, captureLevel+1)+raw.Content)
				i++
				continue
			}
			captureLevel = -1
		}

		level, ok := tracker.level(raw.Leading, filename, raw.LineNumber, &errs)
		if !ok {
			i++
			continue
		}
		if prevLevel >= 0 && !validateTransition(prevLevel, level, filename, raw.LineNumber, &errs) {
			i++
			continue
		}

		form, ok := parseLine(raw, filename, &errs)
		if !ok {
			i++
			continue
		}

		lines = append(lines, Line{Level: level, Form: form, Line: raw.LineNumber, Column: 1})
		prevLevel = level

		if form.Kind == FormRaw {
			captureLevel = level
			captureLine = raw.LineNumber
		}
		i++
	}

	return lines, rawBodies, errs
}

// openFrame tracks one entry of the tree builder's level-keyed stack of
// currently-open parents (§4.4), mirroring the scope-stack discipline
// stack.go uses for nested template scopes, here applied to indentation
// levels instead.
type openFrame struct {
	level int
	node  *Node // nil for the synthetic root
}

// buildTree threads Lines into a forest of Nodes rooted at a synthetic
// container (§4.4).
func buildTree(lines []Line, rawBodies map[int][]string, filename string, errs *ErrorList) *Node {
	root := &Node{Kind: NodeElement, Name: ""}
	stack := []openFrame{{level: -1, node: root}}
	selfClosingLevel := -2
	var selfClosingName string

	for _, ln := range lines {
		if selfClosingLevel >= 0 && ln.Level > selfClosingLevel {
			errs.add(SelfClosingHasChildren, filename, ln.Line, ln.Column, "self-closing element "+selfClosingName+" has a block body")
			continue
		}
		selfClosingLevel = -2

		for len(stack) > 1 && stack[len(stack)-1].level >= ln.Level {
			stack = stack[:len(stack)-1]
		}
		parent := stack[len(stack)-1].node

		node, attach := lineToNode(ln, filename, errs)
		if node == nil {
			continue
		}

		if node.Kind == NodeRawBlock {
			node.RawLines = rawBodies[ln.Line]
			attach = false
		}

		if node.Kind == NodeMacroArg && !insideParameterizedMacroBody(stack) {
			errs.add(MacroArityError, filename, ln.Line, ln.Column, "@N placeholder outside a parameterized macro body")
			continue
		}

		parent.Children = append(parent.Children, node)
		if attach {
			stack = append(stack, openFrame{level: ln.Level, node: node})
		} else if node.Kind == NodeElement && node.SelfClosing {
			selfClosingLevel = ln.Level
			selfClosingName = node.Name
		}
	}

	finalizeInvocationArgs(root)
	return root
}

// finalizeInvocationArgs converts a parameterized MacroInvocation's direct
// children into positional Args, one argument per child line and its
// subtree (§3), and recurses into every node's children and macro bodies.
func finalizeInvocationArgs(n *Node) {
	if n.Kind == NodeMacroInvocation && n.InvokeParameterized && n.Args == nil {
		n.Args = make([][]*Node, len(n.Children))
		for i, c := range n.Children {
			n.Args[i] = []*Node{c}
		}
		n.Children = nil
	}
	if n.Kind == NodeMacroBinding && n.MacroBody == nil {
		n.MacroBody = n.Children
		n.Children = nil
	}
	if n.Kind == NodeSetBinding && !n.HasInlineValue && len(n.Children) > 0 {
		if len(n.Children) == 1 && n.Children[0].Kind == NodeRawBlock {
			n.Bound = BoundValue{Kind: BoundRawString, Raw: joinRawLines(n.Children[0].RawLines)}
		} else {
			n.Bound = BoundValue{Kind: BoundSubtree, Subtree: n.Children}
		}
		n.Children = nil
	}
	for _, c := range n.Children {
		finalizeInvocationArgs(c)
	}
	for _, c := range n.MacroBody {
		finalizeInvocationArgs(c)
	}
	for _, arg := range n.Args {
		for _, c := range arg {
			finalizeInvocationArgs(c)
		}
	}
}

// lineToNode converts one classified Line into a Node and reports whether
// it can accept a block body (i.e. should be pushed onto the open-frame
// stack as a potential parent).
func lineToNode(ln Line, filename string, errs *ErrorList) (*Node, bool) {
	switch ln.Form.Kind {
	case FormTag:
		f := ln.Form
		n := &Node{
			Kind:        NodeElement,
			Line:        ln.Line,
			Col:         ln.Column,
			Name:        f.TagName,
			SelfClosing: f.SelfClosing,
		}
		for _, a := range f.Attrs {
			switch a.Kind {
			case AttrIDFragment:
				n.IDParts = append(n.IDParts, a.Value)
			case AttrExplicitClass:
				n.ClassesExplicit = append(n.ClassesExplicit, a.Value)
			case AttrClass:
				n.ClassesImplicit = append(n.ClassesImplicit, ParseSpan(a.Word))
			case AttrPair:
				n.Attrs = append(n.Attrs, a)
			}
		}
		if f.TagText != nil {
			n.TextAfterPipe = f.TagText
		}
		if n.SelfClosing {
			return n, false
		}
		return n, true

	case FormText:
		f := ln.Form
		return &Node{
			Kind:               NodeText,
			Line:               ln.Line,
			Span:               f.Span,
			PreserveWhitespace: f.Explicit,
		}, false

	case FormSet:
		f := ln.Form
		n := &Node{Kind: NodeSetBinding, Line: ln.Line, BindName: f.SetName}
		if f.SetInlineValue != nil {
			n.Bound = BoundValue{Kind: BoundLiteral, Literal: *f.SetInlineValue}
			n.HasInlineValue = true
			return n, false
		}
		return n, true

	case FormMacroDef:
		f := ln.Form
		return &Node{
			Kind:               NodeMacroBinding,
			Line:               ln.Line,
			MacroName:          f.MacroName,
			MacroParameterized: f.MacroParameterized,
		}, true

	case FormMacroRef:
		f := ln.Form
		n := &Node{
			Kind:                NodeMacroInvocation,
			Line:                ln.Line,
			InvokeName:          f.MacroName,
			InvokeParameterized: f.MacroParameterized,
		}
		return n, f.MacroParameterized

	case FormRaw:
		f := ln.Form
		return &Node{Kind: NodeRawBlock, Line: ln.Line, RawSubst: f.RawSubstitute}, true

	case FormMacroArg:
		f := ln.Form
		return &Node{Kind: NodeMacroArg, Line: ln.Line, ArgIndex: f.ArgIndex}, false
	}
	return nil, false
}

// insideParameterizedMacroBody reports whether any currently open frame is
// the body of a parameterized macro definition.
func insideParameterizedMacroBody(stack []openFrame) bool {
	for _, f := range stack {
		if f.node != nil && f.node.Kind == NodeMacroBinding && f.node.MacroParameterized {
			return true
		}
	}
	return false
}

// rawDepth computes how many indentation units the given leading whitespace
// represents, without the strict jump/mix validation used outside raw
// bodies — verbatim content may carry arbitrary internal whitespace.
func (t *indentTracker) rawDepth(leading string) (int, bool) {
	if !t.detected {
		if len(leading) == 0 {
			return 0, true
		}
		// A raw body line may be the first indented line of the source; it
		// then establishes the unit, as any first indented line does (§4.2).
		t.detected = true
		if leading[0] == '\t' {
			t.tabMode = true
		} else {
			for t.unitWidth < len(leading) && leading[t.unitWidth] == ' ' {
				t.unitWidth++
			}
		}
	}
	if t.tabMode {
		n := 0
		for n < len(leading) && leading[n] == '\t' {
			n++
		}
		return n, true
	}
	if t.unitWidth == 0 {
		return 0, true
	}
	n := 0
	for n < len(leading) && leading[n] == ' ' {
		n++
	}
	return n / t.unitWidth, true
}

func joinRawLines(lines []string) string {
	return strings.Join(lines, "\n")
}

// stripUnits removes n indentation units from the front of leading and
// returns the remainder, reconstructing a raw body line's true content.
func (t *indentTracker) stripUnits(leading string, n int) string {
	if t.tabMode {
		return strings.TrimPrefix(leading, strings.Repeat("\t", n))
	}
	width := n * t.unitWidth
	if width > len(leading) {
		width = len(leading)
	}
	return leading[width:]
}
