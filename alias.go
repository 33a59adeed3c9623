package exprgraph

// Alias is a read-only proxy for another expression, letting a library
// node reference a caller's actual argument under a local name without
// owning it. Per original_source's Alias.hh, the aliased expression is
// not activated/deactivated by the Alias's own activation unless the
// Alias was constructed as the owner (garbage); it forwards reads but
// reports unknown while the Alias itself is inactive, per spec.md §4.6.
type Alias struct {
	Notifier
	name     string
	original Expression
	garbage  bool
	deactivationErr error
}

// NewAlias builds an Alias named name over original. If garbage is true,
// the Alias owns original's activation lifecycle (activating/deactivating
// it along with itself); otherwise original is assumed to be activated
// independently by its true owner.
func NewAlias(name string, original Expression, garbage bool) *Alias {
	return &Alias{Notifier: NewNotifier(false), name: name, original: original, garbage: garbage}
}

func (a *Alias) Name() string         { return a.name }
func (a *Alias) ExprClass() string    { return "Alias" }
func (a *Alias) ValueType() ValueType { return a.original.ValueType() }
func (a *Alias) IsConstant() bool     { return a.original.IsConstant() }
func (a *Alias) IsAssignable() bool   { return false }

// Value forwards to the aliased expression, but only while the Alias
// itself is active: an inactive Alias reports unknown even if the
// underlying expression remains active under its true owner.
func (a *Alias) Value() Value {
	if !a.IsActive() {
		return UnknownValue(a.ValueType())
	}
	return a.original.Value()
}

func (a *Alias) Subexpressions(f func(Expression)) { f(a.original) }

func (a *Alias) Activate() {
	a.ActivateWith(a, func() {
		if a.garbage {
			a.original.Activate()
		}
		a.original.AddListener(a)
	})
}

func (a *Alias) Deactivate() {
	a.deactivationErr = a.DeactivateWith(a.name, "Alias", func() {
		a.original.RemoveListener(a)
		if a.garbage {
			a.original.Deactivate()
		}
	})
}

// DeactivationError returns the activation-count-underflow PlanError (if
// any) raised by the most recent Deactivate call. InOutAlias inherits this
// accessor along with Deactivate itself.
func (a *Alias) DeactivationError() error { return a.deactivationErr }

// NotifyChanged republishes the underlying change under this Alias's own
// identity, so listeners that only know the Alias still see it.
func (a *Alias) NotifyChanged(Expression) {
	if a.IsActive() {
		a.PublishChanged(a)
	}
}

// BaseExpression returns the expression this Alias proxies, mirroring
// original_source's getBaseExpression.
func (a *Alias) BaseExpression() Expression { return a.original }

// InOutAlias is the writable counterpart of Alias: it forwards reads the
// same way, and forwards writes/save/restore to the aliased expression's
// Assignable interface when the original is itself assignable. It is
// used for InOut library node interfaces, per spec.md §4.6.
type InOutAlias struct {
	Alias
}

// NewInOutAlias builds a writable alias. original must implement
// Assignable for SetValue/SetUnknown/SaveCurrent/RestoreSaved/SavedValue
// to take effect; with a non-assignable original SetValue returns a
// PlanError, SetUnknown/SaveCurrent/RestoreSaved do nothing, and
// SavedValue reports unknown.
func NewInOutAlias(name string, original Expression, garbage bool) *InOutAlias {
	return &InOutAlias{Alias: Alias{Notifier: NewNotifier(false), name: name, original: original, garbage: garbage}}
}

func (a *InOutAlias) ExprClass() string  { return "InOutAlias" }
func (a *InOutAlias) IsAssignable() bool { return true }

func (a *InOutAlias) assignableOriginal() (Assignable, error) {
	if asg, ok := a.original.(Assignable); ok {
		return asg, nil
	}
	return nil, NewPlanError(a.name, "", a.ExprClass(), "aliased expression %q is not assignable", a.original.Name())
}

func (a *InOutAlias) SetValue(v Value) error {
	asg, err := a.assignableOriginal()
	if err != nil {
		return err
	}
	return asg.SetValue(v)
}

func (a *InOutAlias) SetUnknown() {
	if asg, err := a.assignableOriginal(); err == nil {
		asg.SetUnknown()
	}
}

func (a *InOutAlias) SaveCurrent() {
	if asg, err := a.assignableOriginal(); err == nil {
		asg.SaveCurrent()
	}
}

func (a *InOutAlias) RestoreSaved() {
	if asg, err := a.assignableOriginal(); err == nil {
		asg.RestoreSaved()
	}
}

func (a *InOutAlias) SavedValue() Value {
	if asg, err := a.assignableOriginal(); err == nil {
		return asg.SavedValue()
	}
	return UnknownValue(a.ValueType())
}

// BaseVariable peels to the ultimate underlying storage, the same way
// ArrayVariable/Variable terminate the chain by returning themselves.
func (a *InOutAlias) BaseVariable() Assignable {
	if asg, err := a.assignableOriginal(); err == nil {
		return asg.BaseVariable()
	}
	return a
}
