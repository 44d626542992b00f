package althtml

// NodeKind discriminates the variants of the built tree (§3), mirroring the
// Type-tagged-struct shape used throughout the dependency graph for HTML
// nodes, generalized to Althtml's own tree.
type NodeKind int

const (
	NodeElement NodeKind = iota
	NodeText
	NodeRawBlock
	NodeSetBinding
	NodeMacroBinding
	NodeMacroInvocation
	NodeVarInsertion
	NodeMacroArg
)

// Node is one entry in the built tree. Only the fields relevant to Kind are
// populated; this keeps a single concrete type for the whole tree instead of
// an interface hierarchy, matching how LineForm is modeled (§3).
type Node struct {
	Kind NodeKind
	Line int
	Col  int

	// NodeElement
	Name            string
	SelfClosing     bool
	Attrs           AttrList
	IDParts         []TextSpan
	ClassesImplicit []TextSpan
	ClassesExplicit []TextSpan
	Children        []*Node
	TextAfterPipe   *TextSpan

	// NodeText
	Span               TextSpan
	PreserveWhitespace bool

	// NodeRawBlock
	RawLines []string
	RawSubst bool

	// NodeSetBinding
	BindName       string
	Bound          BoundValue
	HasInlineValue bool

	// NodeMacroBinding
	MacroName          string
	MacroParameterized bool
	MacroBody          []*Node

	// NodeMacroInvocation
	InvokeName          string
	InvokeParameterized bool
	Args                [][]*Node

	// NodeVarInsertion
	InsertName string

	// NodeMacroArg
	ArgIndex int
}

// BoundValueKind discriminates BoundValue (§3).
type BoundValueKind int

const (
	BoundLiteral BoundValueKind = iota
	BoundRawString
	BoundSubtree
)

// BoundValue is what a `set` name resolves to in the Environment.
type BoundValue struct {
	Kind    BoundValueKind
	Literal string
	Raw     string
	Subtree []*Node
}

// cloneNodes deep-copies a node list, used when expanding a macro invocation
// so that each call site gets its own independent copy of the macro body
// (§4.6: "replace node with a deep copy of the macro body") and siblings in
// one invocation never alias another's nodes.
func cloneNodes(nodes []*Node) []*Node {
	out := make([]*Node, len(nodes))
	for i, n := range nodes {
		out[i] = cloneNode(n)
	}
	return out
}

func cloneNode(n *Node) *Node {
	if n == nil {
		return nil
	}
	clone := *n
	clone.Children = cloneNodes(n.Children)
	clone.MacroBody = cloneNodes(n.MacroBody)
	if n.Args != nil {
		clone.Args = make([][]*Node, len(n.Args))
		for i, arg := range n.Args {
			clone.Args[i] = cloneNodes(arg)
		}
	}
	if n.Bound.Subtree != nil {
		clone.Bound.Subtree = cloneNodes(n.Bound.Subtree)
	}
	return &clone
}
