package althtml

// macroDef is a registered `:macro` body, keyed by name in the Environment.
type macroDef struct {
	parameterized bool
	body          []*Node
	line          int
}

// Environment is the per-compilation mapping from names to bound values and
// macro definitions (§4.5). It has no lexical scoping: a later definition
// simply replaces an earlier one for the remainder of the walk, matching
// vuego's flat template/partial registry in loader.go.
type Environment struct {
	values map[string]BoundValue
	macros map[string]*macroDef
	isSet  map[string]bool // true if the name's most recent definition was `set`
}

func newEnvironment() *Environment {
	return &Environment{
		values: make(map[string]BoundValue),
		macros: make(map[string]*macroDef),
		isSet:  make(map[string]bool),
	}
}

// defineSet registers a `set` binding. Redefining a name previously bound as
// a macro is a NameConflict (§4.5, §9).
func (e *Environment) defineSet(name string, value BoundValue, filename string, line int, errs *ErrorList) {
	if used, ok := e.isSet[name]; ok && !used {
		errs.add(NameConflict, filename, line, 1, "name '"+name+"' already bound as a macro")
		return
	}
	e.values[name] = value
	e.isSet[name] = true
	delete(e.macros, name)
}

// defineMacro registers a `:macro` definition. Redefining a name previously
// bound by `set` is a NameConflict.
func (e *Environment) defineMacro(name string, def *macroDef, filename string, errs *ErrorList) {
	if used, ok := e.isSet[name]; ok && used {
		errs.add(NameConflict, filename, def.line, 1, "name '"+name+"' already bound by set")
		return
	}
	e.macros[name] = def
	e.isSet[name] = false
	delete(e.values, name)
}

func (e *Environment) lookup(name string) (BoundValue, bool) {
	v, ok := e.values[name]
	return v, ok
}

func (e *Environment) lookupMacro(name string) (*macroDef, bool) {
	m, ok := e.macros[name]
	return m, ok
}
