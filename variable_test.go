package exprgraph

import "testing"

func TestVariable_UnknownUntilActivated(t *testing.T) {
	v := NewVariable("x", "node", Integer, nil, false)
	if v.Value().IsKnown() {
		t.Error("inactive Variable should report unknown")
	}
	v.Activate()
	defer v.Deactivate()
	if v.Value().IsKnown() {
		t.Error("Variable with no initializer should start unknown")
	}
}

func TestVariable_SetValuePublishesOnChange(t *testing.T) {
	v := NewVariable("x", "node", Integer, nil, false)
	v.Activate()
	defer v.Deactivate()

	notified := 0
	l := listenerFunc(func(Expression) { notified++ })
	v.AddListener(l)

	if err := v.SetValue(IntValue(5)); err != nil {
		t.Fatalf("SetValue: %v", err)
	}
	if notified != 1 {
		t.Errorf("expected 1 notification, got %d", notified)
	}

	// Setting the same value again must not publish (Same-based dedup).
	if err := v.SetValue(IntValue(5)); err != nil {
		t.Fatalf("SetValue: %v", err)
	}
	if notified != 1 {
		t.Errorf("expected still 1 notification after redundant set, got %d", notified)
	}
}

func TestVariable_SetValueTypeMismatchErrors(t *testing.T) {
	v := NewVariable("x", "node", Integer, nil, false)
	v.Activate()
	defer v.Deactivate()

	if err := v.SetValue(StringValue("oops")); err == nil {
		t.Error("expected PlanError on type mismatch")
	}
}

func TestVariable_SaveRestore(t *testing.T) {
	v := NewVariable("x", "node", Integer, nil, false)
	v.Activate()
	defer v.Deactivate()

	_ = v.SetValue(IntValue(1))
	v.SaveCurrent()
	_ = v.SetValue(IntValue(2))
	v.RestoreSaved()

	got, known := v.Value().IntVal()
	if !known || got != 1 {
		t.Errorf("expected restored value 1, got %v known=%v", got, known)
	}
}

func TestVariable_ActivationUnderflowErrors(t *testing.T) {
	v := NewVariable("x", "node", Integer, nil, false)
	if err := v.DeactivateWith(v.Name(), "Variable", func() {}); err == nil {
		t.Error("expected PlanError deactivating an already-inactive Variable")
	}
}

// listenerFunc adapts a plain function to the Listener interface for tests.
type listenerFunc func(Expression)

func (f listenerFunc) NotifyChanged(source Expression) { f(source) }
