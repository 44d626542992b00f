// Package althtml compiles an indentation-structured source into HTML at
// compile time: no runtime expressions, loops or conditionals, only
// bindings, macros and textual substitution resolved once, ahead of output.
package althtml

import "sync"

// Options configures a Compiler. The zero value is ready to use.
type Options struct {
	// MacroMaxDepth overrides the default macro recursion cap (§4.6).
	MacroMaxDepth int
	// PostProcessor, if set, runs against the expanded tree before
	// emission (§11.3); nil by default, so default compilation never
	// touches anything beyond the core pipeline.
	PostProcessor PostProcessor
	// VoidElements, if non-nil, replaces the default HTML5 void-element set
	// (§4.7, §10.2) for embedders targeting a stricter or extended tag
	// vocabulary. Matching is case-insensitive.
	VoidElements []string
}

// LoadOption mutates Options, following vuego's functional-options pattern
// (loader.go's LoadOption) for configuring a Compiler without a constructor
// explosion.
type LoadOption func(*Options)

// WithMacroMaxDepth overrides the macro recursion limit.
func WithMacroMaxDepth(n int) LoadOption {
	return func(o *Options) { o.MacroMaxDepth = n }
}

// WithPostProcessor registers an optional tree post-processor (§11.3).
func WithPostProcessor(p PostProcessor) LoadOption {
	return func(o *Options) { o.PostProcessor = p }
}

// WithVoidElements overrides the default void-element set (§4.7, §10.2).
func WithVoidElements(names []string) LoadOption {
	return func(o *Options) { o.VoidElements = names }
}

// PostProcessor mutates an expanded node list before emission and returns
// the list to emit.
type PostProcessor interface {
	Process(nodes []*Node) []*Node
}

// Compiler compiles Althtml sources. It holds no per-compilation state —
// every field is immutable configuration — so a single Compiler is safe to
// reuse (and to share across goroutines, §5).
type Compiler struct {
	opts Options
}

// New constructs a Compiler from the given options.
func New(opts ...LoadOption) *Compiler {
	c := &Compiler{}
	for _, opt := range opts {
		opt(&c.opts)
	}
	return c
}

// Compile translates a single source string into HTML or a structured error
// list (§1, §6). filename is used only for error positions.
func (c *Compiler) Compile(source, filename string) (string, ErrorList) {
	return c.CompileWithPrelude(nil, Source{Name: filename, Text: source})
}

// Compile is the package-level convenience entry point using default
// options, equivalent to New().Compile(source, filename).
func Compile(source, filename string) (string, ErrorList) {
	return New().Compile(source, filename)
}

// Source is one named compilation input, used by CompileFiles and
// CompileWithPrelude.
type Source struct {
	Name string
	Text string
}

// CompileWithPrelude evaluates zero or more prelude sources' `set`/`:macro`
// bindings into a shared Environment before building and expanding main
// (§11.2). A plain Compile is CompileWithPrelude(nil, main).
func (c *Compiler) CompileWithPrelude(preludes []Source, main Source) (string, ErrorList) {
	var errs ErrorList
	env := newEnvironment()

	for _, p := range preludes {
		lines, rawBodies, perrs := buildLines(p.Text, p.Name)
		errs = append(errs, perrs...)
		root := buildTree(lines, rawBodies, p.Name, &errs)
		ctx := &expandCtx{env: env, filename: p.Name, errs: &errs, maxDepth: c.opts.MacroMaxDepth}
		ctx.expandNodes(root.Children) // discard output, keep only bindings
	}

	lines, rawBodies, lerrs := buildLines(main.Text, main.Name)
	errs = append(errs, lerrs...)
	root := buildTree(lines, rawBodies, main.Name, &errs)

	ctx := &expandCtx{env: env, filename: main.Name, errs: &errs, maxDepth: c.opts.MacroMaxDepth}
	nodes := ctx.expandNodes(root.Children)

	if c.opts.PostProcessor != nil {
		nodes = c.opts.PostProcessor.Process(nodes)
	}

	if len(errs) > 0 {
		return "", errs
	}

	var void map[string]bool
	if c.opts.VoidElements != nil {
		void = buildVoidElementSet(c.opts.VoidElements)
	}
	return emit(nodes, void), nil
}

// CompileFiles compiles each source independently — its own Environment, its
// own tree — in parallel (§5, §11.1): implementations may parallelize
// across independent source files, never within a single compilation.
func (c *Compiler) CompileFiles(sources map[string]string) map[string]Result {
	results := make(map[string]Result, len(sources))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for name, text := range sources {
		wg.Add(1)
		go func(name, text string) {
			defer wg.Done()
			html, errs := c.Compile(text, name)
			mu.Lock()
			results[name] = Result{HTML: html, Errors: errs}
			mu.Unlock()
		}(name, text)
	}
	wg.Wait()
	return results
}

// Result is one file's outcome from CompileFiles.
type Result struct {
	HTML   string
	Errors ErrorList
}
