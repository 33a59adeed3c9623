package ops

import (
	"testing"

	"github.com/plexcore/exprgraph"
)

func TestSize_ReportsElementCount(t *testing.T) {
	arr := exprgraph.NewIntegerArray(3)
	got := Size.Apply([]exprgraph.Value{exprgraph.ArrayValue(exprgraph.IntegerArray, arr)})
	v, known := got.IntVal()
	if !known || v != 3 {
		t.Errorf("expected 3, got %v known=%v", v, known)
	}
}

func TestAllKnown_FalseUntilEveryElementSet(t *testing.T) {
	arr := exprgraph.NewIntegerArray(2)
	arr.SetValue(0, exprgraph.IntValue(1))
	got := AllKnown.Apply([]exprgraph.Value{exprgraph.ArrayValue(exprgraph.IntegerArray, arr)})
	if v, known := got.BoolVal(); !known || v {
		t.Errorf("expected false, got %v known=%v", v, known)
	}
	arr.SetValue(1, exprgraph.IntValue(2))
	got = AllKnown.Apply([]exprgraph.Value{exprgraph.ArrayValue(exprgraph.IntegerArray, arr)})
	if v, known := got.BoolVal(); !known || !v {
		t.Errorf("expected true, got %v known=%v", v, known)
	}
}

func TestIsKnown_NeverUnknown(t *testing.T) {
	got := IsKnown.Apply([]exprgraph.Value{exprgraph.UnknownValue(exprgraph.Integer)})
	if !got.IsKnown() {
		t.Error("IsKnown's own result must always be known")
	}
	if v, _ := got.BoolVal(); v {
		t.Error("expected IsKnown(unknown) == false")
	}
}
