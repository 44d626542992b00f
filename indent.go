package althtml

import "strings"

// indentTracker converts RawLine.Leading prefixes into levels (§4.2). The
// first indented line establishes the unit (a tab, or N spaces); every
// subsequent line's level is checked against it.
type indentTracker struct {
	tabMode   bool
	unitWidth int // space mode only
	detected  bool
}

// level computes the level for one line's leading whitespace, detecting the
// unit lazily from the first non-empty leading prefix seen.
func (t *indentTracker) level(leading string, filename string, line int, errs *ErrorList) (int, bool) {
	if leading == "" {
		return 0, true
	}

	hasTab := strings.ContainsRune(leading, '\t')
	hasSpace := strings.ContainsRune(leading, ' ')
	if hasTab && hasSpace {
		errs.add(IndentationUnitConflict, filename, line, 1, "leading whitespace mixes tabs and spaces")
		return 0, false
	}

	if !t.detected {
		t.detected = true
		if hasTab {
			t.tabMode = true
		} else {
			t.unitWidth = len(leading)
		}
	}

	if t.tabMode {
		if !hasTab {
			errs.add(IndentationUnitConflict, filename, line, 1, "expected tab-indented line")
			return 0, false
		}
		return len(leading), true
	}

	if hasTab {
		errs.add(IndentationUnitConflict, filename, line, 1, "expected space-indented line")
		return 0, false
	}
	if t.unitWidth == 0 || len(leading)%t.unitWidth != 0 {
		errs.add(IndentationUnitConflict, filename, line, 1, "leading whitespace is not a multiple of the detected indentation unit")
		return 0, false
	}
	return len(leading) / t.unitWidth, true
}

// validateTransition enforces §4.2's transition rule: any decrease is legal,
// an increase is legal only by exactly one level.
func validateTransition(prevLevel, level int, filename string, line int, errs *ErrorList) bool {
	if level <= prevLevel {
		return true
	}
	if level == prevLevel+1 {
		return true
	}
	errs.add(IndentationJump, filename, line, 1, "indentation increased by more than one level")
	return false
}
