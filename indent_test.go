package althtml

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIndentTrackerDetectsSpaceUnit(t *testing.T) {
	var errs ErrorList
	tr := &indentTracker{}

	lvl, ok := tr.level("", "f", 1, &errs)
	require.True(t, ok)
	require.Equal(t, 0, lvl)

	lvl, ok = tr.level("  ", "f", 2, &errs)
	require.True(t, ok)
	require.Equal(t, 1, lvl)

	lvl, ok = tr.level("    ", "f", 3, &errs)
	require.True(t, ok)
	require.Equal(t, 2, lvl)
	require.Empty(t, errs)
}

func TestIndentTrackerDetectsTabUnit(t *testing.T) {
	var errs ErrorList
	tr := &indentTracker{}

	lvl, ok := tr.level("\t", "f", 1, &errs)
	require.True(t, ok)
	require.Equal(t, 1, lvl)

	lvl, ok = tr.level("\t\t", "f", 2, &errs)
	require.True(t, ok)
	require.Equal(t, 2, lvl)
	require.Empty(t, errs)
}

func TestIndentTrackerRejectsMixedTabsAndSpaces(t *testing.T) {
	var errs ErrorList
	tr := &indentTracker{}
	_, ok := tr.level(" \t", "f", 1, &errs)
	require.False(t, ok)
	require.Len(t, errs, 1)
	require.Equal(t, IndentationUnitConflict, errs[0].Kind)
}

func TestIndentTrackerRejectsNonMultipleWidth(t *testing.T) {
	var errs ErrorList
	tr := &indentTracker{}
	_, ok := tr.level("  ", "f", 1, &errs)
	require.True(t, ok)

	_, ok = tr.level("   ", "f", 2, &errs)
	require.False(t, ok)
	require.Len(t, errs, 1)
	require.Equal(t, IndentationUnitConflict, errs[0].Kind)
}

func TestIndentTrackerRejectsUnitSwitch(t *testing.T) {
	var errs ErrorList
	tr := &indentTracker{}
	_, ok := tr.level("\t", "f", 1, &errs)
	require.True(t, ok)

	_, ok = tr.level("  ", "f", 2, &errs)
	require.False(t, ok)
	require.Equal(t, IndentationUnitConflict, errs[0].Kind)
}

func TestValidateTransitionAllowsDecreaseAndSingleIncrease(t *testing.T) {
	var errs ErrorList
	require.True(t, validateTransition(2, 0, "f", 1, &errs))
	require.True(t, validateTransition(0, 1, "f", 2, &errs))
	require.True(t, validateTransition(1, 1, "f", 3, &errs))
	require.Empty(t, errs)
}

func TestValidateTransitionRejectsJump(t *testing.T) {
	var errs ErrorList
	require.False(t, validateTransition(0, 2, "f", 1, &errs))
	require.Len(t, errs, 1)
	require.Equal(t, IndentationJump, errs[0].Kind)
}

func TestIndentTrackerDoublingUnitProducesSameTree(t *testing.T) {
	// §8 invariant: indentation-unit detection is stable under doubling.
	var errsA, errsB ErrorList
	trA := &indentTracker{}
	trB := &indentTracker{}

	lvlA1, _ := trA.level("  ", "f", 1, &errsA)
	lvlA2, _ := trA.level("    ", "f", 2, &errsA)

	lvlB1, _ := trB.level("    ", "f", 1, &errsB)
	lvlB2, _ := trB.level("        ", "f", 2, &errsB)

	require.Equal(t, lvlA1, lvlB1)
	require.Equal(t, lvlA2, lvlB2)
}
