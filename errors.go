package althtml

import (
	"strconv"
	"strings"
)

// ErrorKind classifies a compile-time failure.
type ErrorKind string

const (
	IndentationUnitConflict ErrorKind = "IndentationUnitConflict"
	IndentationJump         ErrorKind = "IndentationJump"
	UnknownDirective        ErrorKind = "UnknownDirective"
	MalformedAttribute      ErrorKind = "MalformedAttribute"
	UnknownBinding          ErrorKind = "UnknownBinding"
	BindingKindMismatch     ErrorKind = "BindingKindMismatch"
	MacroArityError         ErrorKind = "MacroArityError"
	MacroRecursion          ErrorKind = "MacroRecursion"
	NameConflict            ErrorKind = "NameConflict"
	RawBlockMisuse          ErrorKind = "RawBlockMisuse"
	SelfClosingHasChildren  ErrorKind = "SelfClosingHasChildren"
)

// CompileError is a single positioned compile failure.
type CompileError struct {
	Kind     ErrorKind
	Filename string
	Line     int
	Column   int
	Message  string
}

func (e *CompileError) Error() string {
	filename := e.Filename
	if filename == "" {
		filename = "<input>"
	}
	return filename + ":" + strconv.Itoa(e.Line) + ":" + strconv.Itoa(e.Column) + ": " + string(e.Kind) + ": " + e.Message
}

// ErrorList aggregates every CompileError collected during one compilation.
// Compilation is non-fatal at the top level (§7): it keeps going after a
// failure so independent errors elsewhere in the source are still reported.
type ErrorList []*CompileError

func (l ErrorList) Error() string {
	parts := make([]string, len(l))
	for i, e := range l {
		parts[i] = e.Error()
	}
	return strings.Join(parts, "\n")
}

func (l *ErrorList) add(kind ErrorKind, filename string, line, column int, message string) {
	*l = append(*l, &CompileError{
		Kind:     kind,
		Filename: filename,
		Line:     line,
		Column:   column,
		Message:  message,
	})
}
