package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intEq(a, b int) bool { return a == b }

func set(v int) func(int) int { return func(int) int { return v } }

func TestSetStateAppendsAndUndoes(t *testing.T) {
	s := New(0, intEq)
	s.SetState(set(1), false)
	s.SetState(set(2), false)
	require.Equal(t, 3, s.Len())
	assert.Equal(t, 2, s.State())
	assert.True(t, s.CanUndo())
	assert.False(t, s.CanRedo())

	s.Undo()
	assert.Equal(t, 1, s.State())
	s.Undo()
	assert.Equal(t, 0, s.State())
	s.Undo()
	assert.Equal(t, 0, s.State(), "undo at the oldest entry is a no-op")

	s.Redo()
	s.Redo()
	s.Redo()
	assert.Equal(t, 2, s.State(), "redo clamps at the newest entry")
}

func TestSetStateDedupesEqualStates(t *testing.T) {
	s := New(5, intEq)
	s.SetState(set(5), false)
	assert.Equal(t, 1, s.Len())
	assert.False(t, s.CanUndo())
}

func TestSetStateTruncatesRedoTail(t *testing.T) {
	s := New(0, intEq)
	s.SetState(set(1), false)
	s.SetState(set(2), false)
	s.Undo()
	s.Undo()
	s.SetState(set(9), false)
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 9, s.State())
	assert.False(t, s.CanRedo())

	s.Undo()
	assert.Equal(t, 0, s.State())
}

func TestOverwriteKeepsHistoryShape(t *testing.T) {
	s := New(0, intEq)
	s.SetState(set(1), false)
	s.SetState(set(2), false)
	s.Undo()

	s.SetState(set(7), true)
	assert.Equal(t, 3, s.Len(), "overwrite never grows or truncates")
	assert.Equal(t, 7, s.State())
	assert.True(t, s.CanRedo())

	s.Redo()
	assert.Equal(t, 2, s.State())
	s.Undo()
	assert.Equal(t, 7, s.State())
}

func TestOverwriteWithEqualValueIsStillApplied(t *testing.T) {
	s := New(3, intEq)
	s.SetState(set(3), true)
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 3, s.State())
}

func TestResetDiscardsStack(t *testing.T) {
	s := New(0, intEq)
	s.SetState(set(1), false)
	s.SetState(set(2), false)
	s.Undo()
	s.Reset(42)
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 0, s.Index())
	assert.Equal(t, 42, s.State())
	assert.False(t, s.CanUndo())
	assert.False(t, s.CanRedo())
}

func TestSliceStatesDoNotAlias(t *testing.T) {
	eq := func(a, b []int) bool { return assert.ObjectsAreEqual(a, b) }
	s := New([]int{1}, eq)
	s.SetState(func(cur []int) []int { return append(cur[:len(cur):len(cur)], 2) }, false)
	s.Undo()
	s.SetState(func(cur []int) []int { return append(cur[:len(cur):len(cur)], 3) }, false)
	assert.Equal(t, []int{1, 3}, s.State())
	s.Undo()
	assert.Equal(t, []int{1}, s.State())
}
