package ops

import (
	"testing"

	"github.com/plexcore/exprgraph"
)

func TestAnd_KnownFalseShortCircuitsEvenWithUnknowns(t *testing.T) {
	args := []exprgraph.Value{exprgraph.BoolValue(false), exprgraph.UnknownValue(exprgraph.Boolean)}
	got := And.Apply(args)
	if v, known := got.BoolVal(); !known || v {
		t.Errorf("expected known false, got %v known=%v", v, known)
	}
}

func TestAnd_UnknownWithNoFalseIsUnknown(t *testing.T) {
	args := []exprgraph.Value{exprgraph.BoolValue(true), exprgraph.UnknownValue(exprgraph.Boolean)}
	got := And.Apply(args)
	if got.IsKnown() {
		t.Error("expected unknown when no argument is known-false and at least one is unknown")
	}
}

func TestOr_KnownTrueShortCircuits(t *testing.T) {
	args := []exprgraph.Value{exprgraph.BoolValue(true), exprgraph.UnknownValue(exprgraph.Boolean)}
	got := Or.Apply(args)
	if v, known := got.BoolVal(); !known || !v {
		t.Errorf("expected known true, got %v known=%v", v, known)
	}
}

func TestNot_UnknownStaysUnknown(t *testing.T) {
	got := Not.Apply([]exprgraph.Value{exprgraph.UnknownValue(exprgraph.Boolean)})
	if got.IsKnown() {
		t.Error("expected NOT(unknown) to remain unknown")
	}
}

func TestXor_RequiresExactlyTwoArgs(t *testing.T) {
	if err := Xor.CheckArgCount(1); err == nil {
		t.Error("expected error for XOR with 1 argument")
	}
	if err := Xor.CheckArgCount(2); err != nil {
		t.Errorf("unexpected error for XOR with 2 arguments: %v", err)
	}
}
