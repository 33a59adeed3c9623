package exprgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArrayVariable_ActivateAllocatesFromMaxSize(t *testing.T) {
	size := NewConstant("three", IntValue(3))
	av := NewArrayVariable("a", "node", Integer, size, nil)
	av.Activate()
	defer av.Deactivate()

	require.Equal(t, 3, av.Size())
	assert.False(t, av.ElementIsKnown(0), "freshly allocated elements should start unknown")
}

func TestArrayVariable_NegativeMaxSizeIsPlanError(t *testing.T) {
	size := NewConstant("neg", IntValue(-1))
	av := NewArrayVariable("a", "node", Integer, size, nil)
	av.Activate()
	defer av.Deactivate()

	assert.Error(t, av.ActivationError(), "expected PlanError for negative max size")
	assert.False(t, av.Value().IsKnown(), "array should be unknown after a sizing error")
}

func TestArrayVariable_InitializerOversizedIsPlanError(t *testing.T) {
	size := NewConstant("two", IntValue(2))
	init := NewConstant("init", ArrayValue(IntegerArray, func() Array {
		a := NewIntegerArray(3)
		a.SetValue(0, IntValue(1))
		return a
	}()))
	av := NewArrayVariable("a", "node", Integer, size, init)
	av.Activate()
	defer av.Deactivate()

	assert.Error(t, av.ActivationError(), "expected PlanError for oversized initializer")
}

func TestArrayVariable_SetElementPublishesOnChange(t *testing.T) {
	size := NewConstant("two", IntValue(2))
	av := NewArrayVariable("a", "node", Integer, size, nil)
	av.Activate()
	defer av.Deactivate()

	notified := 0
	av.AddListener(listenerFunc(func(Expression) { notified++ }))

	require.NoError(t, av.SetElement(0, IntValue(7)))
	assert.Equal(t, 1, notified)

	require.NoError(t, av.SetElement(0, IntValue(7)))
	assert.Equal(t, 1, notified, "redundant set should not notify again")
}

func TestArrayVariable_SetElementOutOfRangeErrors(t *testing.T) {
	size := NewConstant("one", IntValue(1))
	av := NewArrayVariable("a", "node", Integer, size, nil)
	av.Activate()
	defer av.Deactivate()

	assert.Error(t, av.SetElement(5, IntValue(1)), "expected PlanError for out-of-range SetElement")
}

func TestArrayVariable_SaveRestoreWholeArray(t *testing.T) {
	size := NewConstant("two", IntValue(2))
	av := NewArrayVariable("a", "node", Integer, size, nil)
	av.Activate()
	defer av.Deactivate()

	_ = av.SetElement(0, IntValue(1))
	av.SaveCurrent()
	_ = av.SetElement(0, IntValue(2))
	av.RestoreSaved()

	got, _ := av.GetElement(0)
	v, known := got.IntVal()
	require.True(t, known)
	assert.Equal(t, int64(1), v)
}
