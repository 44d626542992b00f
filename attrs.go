package althtml

import "github.com/titpetric/althtml/internal/helpers"

// AttrPartKind discriminates the variants of AttrList (§3).
type AttrPartKind int

const (
	AttrPair AttrPartKind = iota
	AttrClass
	AttrIDFragment
	AttrExplicitClass
)

// AttrPart is one entry accumulated while tokenizing a tag's attribute
// region. A single element may receive several of these from different
// syntactic forms (bare words, #id fragments, class="...", name=value
// pairs), which the emitter later merges (§4.7).
type AttrPart struct {
	Kind  AttrPartKind
	Name  string // AttrPair only
	Word  string // AttrClass only
	Value TextSpan
}

// AttrList is the ordered sequence of AttrPart produced by tokenizeAttrs.
type AttrList []AttrPart

// tokenizeAttrs scans the region between a tag head and a `|` or end of
// line, producing attribute parts per §4.3. It tracks a single quote state
// toggled by unescaped `"`, mirroring the scanner's comment-stripping scan
// (scanner.go) and the same escaping rule used there.
func tokenizeAttrs(s string) (AttrList, TextSpan, bool, *CompileError) {
	var list AttrList
	i := 0
	n := len(s)

	skipSpace := func() {
		for i < n && s[i] == ' ' {
			i++
		}
	}

	for {
		skipSpace()
		if i >= n {
			return list, TextSpan{}, false, nil
		}
		if s[i] == '|' {
			rest := s[i+1:]
			if len(rest) > 0 && rest[0] == ' ' {
				rest = rest[1:]
			}
			return list, ParseSpan(rest), true, nil
		}

		start := i
		for i < n && s[i] != ' ' {
			if s[i] == '"' {
				i++
				for i < n && s[i] != '"' {
					if s[i] == '\\' && i+1 < n {
						i++
					}
					i++
				}
				if i >= n {
					return nil, TextSpan{}, false, &CompileError{Kind: MalformedAttribute, Message: "unterminated quoted value"}
				}
			}
			i++
		}
		token := s[start:i]
		if token == "" {
			continue
		}

		switch {
		case token[0] == '#':
			list = append(list, AttrPart{Kind: AttrIDFragment, Value: ParseSpan(unquoteToken(token[1:]))})
		case containsEq(token):
			name, value, ok := splitEq(token)
			if !ok {
				return nil, TextSpan{}, false, &CompileError{Kind: MalformedAttribute, Message: "malformed attribute token: " + token}
			}
			if name == "" || !helpers.IsIdentifierStart(rune(name[0])) {
				return nil, TextSpan{}, false, &CompileError{Kind: MalformedAttribute, Message: "attribute name missing before '=': " + token}
			}
			value = unquoteToken(value)
			if name == "class" {
				list = append(list, AttrPart{Kind: AttrExplicitClass, Value: ParseSpan(value)})
			} else {
				list = append(list, AttrPart{Kind: AttrPair, Name: name, Value: ParseSpan(value)})
			}
		default:
			list = append(list, AttrPart{Kind: AttrClass, Word: token})
		}
	}
}

func containsEq(s string) bool {
	quoted := false
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			quoted = !quoted
		case '=':
			if !quoted {
				return true
			}
		}
	}
	return false
}

func splitEq(s string) (name, value string, ok bool) {
	idx := -1
	quoted := false
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			quoted = !quoted
		case '=':
			if !quoted {
				idx = i
			}
		}
	}
	if idx < 0 {
		return "", "", false
	}
	return s[:idx], s[idx+1:], true
}

// unquoteToken strips a single matching pair of double quotes and resolves
// \" and \\ escapes, leaving an unquoted value untouched.
func unquoteToken(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
		var out []byte
		for i := 0; i < len(s); i++ {
			if s[i] == '\\' && i+1 < len(s) && (s[i+1] == '"' || s[i+1] == '\\') {
				i++
			}
			out = append(out, s[i])
		}
		return string(out)
	}
	return s
}
