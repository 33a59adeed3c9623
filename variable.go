package exprgraph

// Variable is a mutable scalar leaf expression with an optional
// initializer and save/restore support, per spec.md §4.3.
type Variable struct {
	Notifier
	name        string
	nodeName    string
	valueType   ValueType
	current     Value
	initializer Expression
	initOwned   bool
	saved       Value
	wasSaved    bool
	deactivationErr error
}

// NewVariable builds a Variable of the given type, owned by nodeName (used
// only for diagnostics), with an optional initializer expression.
// initOwned is stored as the "garbage-tagged" ownership flag of spec.md §3;
// the initializer is activated and deactivated along with this Variable
// whether or not it is owned.
func NewVariable(name, nodeName string, t ValueType, initializer Expression, initOwned bool) *Variable {
	return &Variable{
		Notifier:    NewNotifier(true),
		name:        name,
		nodeName:    nodeName,
		valueType:   t,
		current:     UnknownValue(t),
		initializer: initializer,
		initOwned:   initOwned,
	}
}

func (v *Variable) Name() string         { return v.name }
func (v *Variable) ExprClass() string    { return "Variable" }
func (v *Variable) ValueType() ValueType { return v.valueType }
func (v *Variable) IsConstant() bool     { return false }
func (v *Variable) IsAssignable() bool   { return true }

// Value returns the current value if active, else unknown (spec.md
// invariant 3).
func (v *Variable) Value() Value {
	if !v.IsActive() {
		return UnknownValue(v.valueType)
	}
	return v.current
}

func (v *Variable) Subexpressions(f func(Expression)) {
	if v.initializer != nil {
		f(v.initializer)
	}
}

func (v *Variable) Activate() {
	v.ActivateWith(v, func() {
		if v.initializer != nil {
			v.initializer.Activate()
			v.current = v.initializer.Value()
		}
	})
}

func (v *Variable) Deactivate() {
	v.deactivationErr = v.DeactivateWith(v.name, "Variable", func() {
		v.wasSaved = false
		v.saved = Value{}
		if v.initializer != nil {
			v.initializer.Deactivate()
		}
	})
}

// DeactivationError returns the activation-count-underflow PlanError (if
// any) raised by the most recent Deactivate call. Expression.Deactivate has
// no error return per spec.md's void signature, so a caller that must abort
// the plan step on underflow (spec.md §7) consults this accessor
// afterward, the same pattern ArrayVariable.ActivationError uses.
func (v *Variable) DeactivationError() error { return v.deactivationErr }

// NotifyChanged re-reads the initializer on the next activation; while
// active it is irrelevant because SetValue/initializer assignment already
// happened eagerly per spec.md §4.3 (the initializer is only consulted on
// activation, not on every change).
func (v *Variable) NotifyChanged(Expression) {}

// SetValue implements Assignable. Legal only while active.
func (v *Variable) SetValue(val Value) error {
	if !v.IsActive() {
		return NewPlanError(v.name, v.nodeName, "Variable", "SetValue called while inactive")
	}
	if val.Type() != v.valueType && val.IsKnown() {
		return NewPlanError(v.name, v.nodeName, "Variable", "type mismatch: variable is %s, assigned %s", v.valueType, val.Type())
	}
	if v.current.Same(val) {
		return nil
	}
	v.current = val
	v.PublishChanged(v)
	return nil
}

func (v *Variable) SetUnknown() {
	unk := UnknownValue(v.valueType)
	if v.current.Same(unk) {
		return
	}
	v.current = unk
	v.PublishChanged(v)
}

func (v *Variable) SaveCurrent() {
	v.saved = v.current
	v.wasSaved = true
}

func (v *Variable) RestoreSaved() {
	if !v.wasSaved {
		return
	}
	if v.current.Same(v.saved) {
		return
	}
	v.current = v.saved
	v.PublishChanged(v)
}

func (v *Variable) SavedValue() Value { return v.saved }

func (v *Variable) BaseVariable() Assignable { return v }

// Reset clears current and saved to unknown. Legal only while inactive,
// per spec.md §4.3.
func (v *Variable) Reset() error {
	if v.IsActive() {
		return NewPlanError(v.name, v.nodeName, "Variable", "Reset called while active")
	}
	v.current = UnknownValue(v.valueType)
	v.saved = Value{}
	v.wasSaved = false
	return nil
}
