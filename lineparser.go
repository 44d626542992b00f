package althtml

import (
	"strconv"
	"strings"

	"github.com/titpetric/althtml/internal/helpers"
)

// parseLine classifies one RawLine's content into a LineForm (§4.3),
// dispatching on the first significant token the same way eval_core.go
// dispatches vuego's own directive switch on a node's tag/attribute name.
func parseLine(raw RawLine, filename string, errs *ErrorList) (LineForm, bool) {
	content := raw.Content
	trimmed := strings.TrimLeft(content, " ")

	switch {
	case strings.HasPrefix(trimmed, "set "):
		return parseSet(trimmed[len("set "):], raw, filename, errs)

	case strings.HasPrefix(trimmed, ":macro "):
		name := strings.TrimSpace(trimmed[len(":macro "):])
		param := strings.HasPrefix(name, "!")
		name = strings.TrimPrefix(name, "!")
		if name == "" || !validIdentifier(name) {
			errs.add(UnknownDirective, filename, raw.LineNumber, 1, "malformed :macro name")
			return LineForm{}, false
		}
		return LineForm{Kind: FormMacroDef, Line: raw.LineNumber, MacroName: name, MacroParameterized: param}, true

	case trimmed == "raw" || trimmed == "raw@":
		return LineForm{Kind: FormRaw, Line: raw.LineNumber, RawSubstitute: trimmed == "raw@"}, true

	case strings.HasPrefix(trimmed, "raw") && (strings.HasPrefix(trimmed, "raw ") || strings.HasPrefix(trimmed, "raw@ ")):
		errs.add(RawBlockMisuse, filename, raw.LineNumber, 1, "raw directive has inline content")
		return LineForm{}, false

	case strings.HasPrefix(trimmed, "@"):
		rest := trimmed[1:]
		if idx, err := strconv.Atoi(rest); err == nil && idx >= 0 {
			return LineForm{Kind: FormMacroArg, Line: raw.LineNumber, ArgIndex: idx}, true
		}
		if rest == "" || !validIdentifier(rest) {
			errs.add(UnknownDirective, filename, raw.LineNumber, 1, "malformed macro reference")
			return LineForm{}, false
		}
		return LineForm{Kind: FormMacroRef, Line: raw.LineNumber, MacroName: rest, MacroParameterized: false}, true

	case isDoctypeLine(trimmed):
		return parseDoctype(trimmed, raw, filename, errs)

	case strings.HasPrefix(trimmed, "!"):
		rest := trimmed[1:]
		if rest == "" || !validIdentifier(rest) {
			errs.add(UnknownDirective, filename, raw.LineNumber, 1, "malformed macro reference")
			return LineForm{}, false
		}
		return LineForm{Kind: FormMacroRef, Line: raw.LineNumber, MacroName: rest, MacroParameterized: true}, true

	case strings.HasPrefix(trimmed, "|"):
		text := trimmed[1:]
		if strings.HasPrefix(text, " ") {
			text = text[1:]
		}
		return LineForm{Kind: FormText, Line: raw.LineNumber, Span: ParseSpan(text), Explicit: true}, true

	case strings.HasPrefix(trimmed, "<") && len(trimmed) > 1 && helpers.IsIdentifierStart(rune(trimmed[1])):
		return parseTag(trimmed[1:], raw, filename, errs)

	case len(trimmed) > 0 && helpers.IsIdentifierStart(rune(trimmed[0])):
		return parseTag(trimmed, raw, filename, errs)

	default:
		return LineForm{Kind: FormText, Line: raw.LineNumber, Span: ParseSpan(trimmed), Explicit: false}, true
	}
}

func parseSet(rest string, raw RawLine, filename string, errs *ErrorList) (LineForm, bool) {
	rest = strings.TrimLeft(rest, " ")
	name := rest
	var inline *string

	// The inline value is a plain Literal(String) (§3) — it is never itself
	// tokenized into a span, so a value that happens to look like an
	// identifier (e.g. `set user = "Ada"`) is kept verbatim, not re-parsed
	// for variable references.
	if idx := strings.IndexByte(rest, '='); idx >= 0 {
		name = strings.TrimSpace(rest[:idx])
		value := strings.TrimSpace(rest[idx+1:])
		value = unquoteToken(value)
		inline = &value
	} else {
		name = strings.TrimSpace(rest)
	}

	if name == "" || !validIdentifier(name) {
		errs.add(UnknownDirective, filename, raw.LineNumber, 1, "malformed set name")
		return LineForm{}, false
	}
	return LineForm{Kind: FormSet, Line: raw.LineNumber, SetName: name, SetInlineValue: inline}, true
}

func parseTag(rest string, raw RawLine, filename string, errs *ErrorList) (LineForm, bool) {
	i := 0
	for i < len(rest) && helpers.IsIdentifierChar(rune(rest[i])) {
		i++
	}
	name := rest[:i]
	if name == "" {
		errs.add(UnknownDirective, filename, raw.LineNumber, 1, "malformed tag")
		return LineForm{}, false
	}

	selfClosing := false
	if i < len(rest) && rest[i] == '>' {
		selfClosing = true
		i++
	}

	attrRegion := rest[i:]
	attrs, text, explicit, attrErr := tokenizeAttrs(attrRegion)
	if attrErr != nil {
		attrErr.Filename = filename
		attrErr.Line = raw.LineNumber
		attrErr.Column = 1
		*errs = append(*errs, attrErr)
		return LineForm{}, false
	}

	form := LineForm{
		Kind:        FormTag,
		Line:        raw.LineNumber,
		TagName:     name,
		SelfClosing: selfClosing,
		Attrs:       attrs,
	}
	if explicit {
		form.TagText = &text
	}
	return form, true
}

// isDoctypeLine reports whether trimmed opens with the literal "!DOCTYPE"
// directive (case-insensitive), which would otherwise be indistinguishable
// from a parameterized macro reference (`!name`) under the general `!`
// dispatch (§4.7's DOCTYPE handling).
func isDoctypeLine(trimmed string) bool {
	const kw = "!DOCTYPE"
	if len(trimmed) < len(kw) || !strings.EqualFold(trimmed[:len(kw)], kw) {
		return false
	}
	rest := trimmed[len(kw):]
	return rest == "" || rest[0] == ' ' || rest[0] == '>'
}

// parseDoctype parses a `!DOCTYPE` line as an ordinary Tag whose name is the
// literal "!DOCTYPE", so it carries attributes and self-closing the same way
// any other tag does; the emitter recognizes the name specially (§4.7).
func parseDoctype(trimmed string, raw RawLine, filename string, errs *ErrorList) (LineForm, bool) {
	rest := trimmed[len("!DOCTYPE"):]
	selfClosing := false
	if len(rest) > 0 && rest[0] == '>' {
		selfClosing = true
		rest = rest[1:]
	}

	attrs, text, explicit, attrErr := tokenizeAttrs(rest)
	if attrErr != nil {
		attrErr.Filename = filename
		attrErr.Line = raw.LineNumber
		attrErr.Column = 1
		*errs = append(*errs, attrErr)
		return LineForm{}, false
	}

	form := LineForm{
		Kind:        FormTag,
		Line:        raw.LineNumber,
		TagName:     "!DOCTYPE",
		SelfClosing: selfClosing,
		Attrs:       attrs,
	}
	if explicit {
		form.TagText = &text
	}
	return form, true
}

func validIdentifier(s string) bool {
	if s == "" || !helpers.IsIdentifierStart(rune(s[0])) {
		return false
	}
	for _, ch := range s[1:] {
		if !helpers.IsIdentifierChar(ch) {
			return false
		}
	}
	return true
}

