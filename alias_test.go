package exprgraph

import "testing"

func TestAlias_ForwardsValueWhileActive(t *testing.T) {
	v := NewVariable("x", "node", Integer, nil, false)
	v.Activate()
	defer v.Deactivate()
	_ = v.SetValue(IntValue(9))

	a := NewAlias("alias_x", v, false)
	a.Activate()
	defer a.Deactivate()

	got, known := a.Value().IntVal()
	if !known || got != 9 {
		t.Errorf("expected forwarded value 9, got %v known=%v", got, known)
	}
}

func TestAlias_UnknownWhenInactiveEvenIfOriginalActive(t *testing.T) {
	v := NewVariable("x", "node", Integer, nil, false)
	v.Activate()
	defer v.Deactivate()
	_ = v.SetValue(IntValue(9))

	a := NewAlias("alias_x", v, false)
	// a never activated.
	if a.Value().IsKnown() {
		t.Error("an inactive Alias must report unknown regardless of the original's state")
	}
}

func TestAlias_GarbageOwnsActivation(t *testing.T) {
	v := NewVariable("x", "node", Integer, nil, false)
	a := NewAlias("alias_x", v, true)

	a.Activate()
	if !v.IsActive() {
		t.Error("a garbage Alias should activate its original")
	}
	a.Deactivate()
	if v.IsActive() {
		t.Error("a garbage Alias should deactivate its original")
	}
}

func TestInOutAlias_SetValueForwardsToOriginal(t *testing.T) {
	v := NewVariable("x", "node", Integer, nil, false)
	v.Activate()
	defer v.Deactivate()

	a := NewInOutAlias("alias_x", v, false)
	a.Activate()
	defer a.Deactivate()

	if err := a.SetValue(IntValue(3)); err != nil {
		t.Fatalf("SetValue: %v", err)
	}
	got, known := v.Value().IntVal()
	if !known || got != 3 {
		t.Errorf("expected original updated to 3, got %v known=%v", got, known)
	}
}

func TestInOutAlias_NonAssignableOriginalErrors(t *testing.T) {
	c := NewConstant("c", IntValue(1))
	a := NewInOutAlias("alias_c", c, false)
	a.Activate()
	defer a.Deactivate()

	if err := a.SetValue(IntValue(2)); err == nil {
		t.Error("expected PlanError assigning through an alias of a non-assignable original")
	}
}
