package althtml

// expandInvocation resolves a MacroInvocation node into its expanded
// content (§4.6): nullary invocations deep-copy the macro body; parameterized
// invocations expand each argument call-by-value in the caller's environment,
// then expand the macro body once with those arguments available on
// argsStack, substituting each `@N` placeholder with a fresh clone as it is
// reached. Grounded on eval_slot.go's named-slot splicing, generalized to
// positional arguments.
func (c *expandCtx) expandInvocation(n *Node) []*Node {
	def, ok := c.env.lookupMacro(n.InvokeName)
	if !ok {
		c.errs.add(UnknownBinding, c.filename, n.Line, n.Col, "unbound macro '"+n.InvokeName+"'")
		return nil
	}
	if def.parameterized != n.InvokeParameterized {
		c.errs.add(BindingKindMismatch, c.filename, n.Line, n.Col, "macro '"+n.InvokeName+"' invoked with the wrong call form")
		return nil
	}

	c.depth++
	defer func() { c.depth-- }()
	if c.depth > c.depthLimit() {
		c.errs.add(MacroRecursion, c.filename, n.Line, n.Col, "macro expansion exceeded depth limit")
		return nil
	}

	if !n.InvokeParameterized {
		return c.expandNodes(cloneNodes(def.body))
	}

	// Call-by-value: expand each argument in the invocation's own (calling)
	// environment, before the macro body's args frame is pushed, so the
	// macro body can never observe the call site's environment directly —
	// only the already-resolved argument node lists.
	args := make([][]*Node, len(n.Args))
	for i, arg := range n.Args {
		args[i] = c.expandNodes(cloneNodes(arg))
	}

	c.argsStack = append(c.argsStack, args)
	expanded := c.expandNodes(cloneNodes(def.body))
	c.argsStack = c.argsStack[:len(c.argsStack)-1]
	return expanded
}
