package exprgraph

// ArrayVariable is a mutable array-valued leaf expression: a max-size
// allocation with per-element known-flags, element-level read/write, and
// whole-array assignment, per spec.md §4.4.
type ArrayVariable struct {
	Notifier
	name        string
	nodeName    string
	elemType    ValueType
	maxSizeExpr Expression // Integer-valued, optional
	maxSize     int
	hasMaxSize  bool
	current     Array
	known       bool
	initializer Expression
	saved       Array
	savedKnown  bool
	activationErr error
	deactivationErr error
}

// NewArrayVariable builds an ArrayVariable of elemType, owned by nodeName,
// with an optional max-size expression and an optional initializer
// expression (array-typed).
func NewArrayVariable(name, nodeName string, elemType ValueType, maxSizeExpr, initializer Expression) *ArrayVariable {
	return &ArrayVariable{
		Notifier:    NewNotifier(true),
		name:        name,
		nodeName:    nodeName,
		elemType:    elemType,
		maxSizeExpr: maxSizeExpr,
		initializer: initializer,
	}
}

func (a *ArrayVariable) Name() string         { return a.name }
func (a *ArrayVariable) ExprClass() string    { return "ArrayVariable" }
func (a *ArrayVariable) ValueType() ValueType { return ArrayValueType(a.elemType) }
func (a *ArrayVariable) IsConstant() bool     { return false }
func (a *ArrayVariable) IsAssignable() bool   { return true }
func (a *ArrayVariable) ElementType() ValueType { return a.elemType }

func (a *ArrayVariable) Value() Value {
	if !a.IsActive() || !a.known {
		return UnknownValue(a.ValueType())
	}
	return ArrayValue(a.ValueType(), a.current)
}

func (a *ArrayVariable) Subexpressions(f func(Expression)) {
	if a.maxSizeExpr != nil {
		f(a.maxSizeExpr)
	}
	if a.initializer != nil {
		f(a.initializer)
	}
}

// Activate resolves max_size (error if the size expression evaluates to a
// negative number), copies the initializer, and resizes/reserves per
// spec.md §4.4.
func (a *ArrayVariable) Activate() {
	var activationErr error
	a.ActivateWith(a, func() {
		a.hasMaxSize = false
		a.maxSize = 0
		if a.maxSizeExpr != nil {
			a.maxSizeExpr.Activate()
			sizeVal := a.maxSizeExpr.Value()
			if n, known := sizeVal.IntVal(); known {
				if n < 0 {
					activationErr = NewPlanError(a.name, a.nodeName, "ArrayVariable", "negative max size %d", n)
					return
				}
				a.maxSize = int(n)
				a.hasMaxSize = true
			}
		}

		if a.initializer != nil {
			a.initializer.Activate()
			initVal := a.initializer.Value()
			if arr, known := initVal.ArrVal(); known && arr != nil {
				if a.hasMaxSize && arr.Size() > a.maxSize {
					activationErr = NewPlanError(a.name, a.nodeName, "ArrayVariable", "initializer size %d exceeds max size %d", arr.Size(), a.maxSize)
					return
				}
				a.current = arr.Clone()
				if a.hasMaxSize && a.current.Size() < a.maxSize {
					a.current.Resize(a.maxSize)
				}
				a.known = true
				return
			}
		}

		if a.hasMaxSize {
			a.current = NewArrayOf(a.elemType, a.maxSize)
			a.known = true
		}
	})
	a.activationErr = activationErr
	if activationErr != nil {
		a.known = false
	}
}

// ActivationError returns the PlanError (negative max size, or an
// initializer larger than the max size) raised by the most recent Activate
// call, or nil. Expression
// .Activate has no error return per spec.md's void activation signature,
// so callers that need to fail the plan step on a sizing error consult
// this accessor after activating.
func (a *ArrayVariable) ActivationError() error { return a.activationErr }

func (a *ArrayVariable) Deactivate() {
	a.deactivationErr = a.DeactivateWith(a.name, "ArrayVariable", func() {
		a.saved = nil
		a.savedKnown = false
		if a.maxSizeExpr != nil {
			a.maxSizeExpr.Deactivate()
		}
		if a.initializer != nil {
			a.initializer.Deactivate()
		}
	})
}

// DeactivationError returns the activation-count-underflow PlanError (if
// any) raised by the most recent Deactivate call.
func (a *ArrayVariable) DeactivationError() error { return a.deactivationErr }

func (a *ArrayVariable) NotifyChanged(Expression) {}

// MaxSize returns the cached max size (0 if none was declared).
func (a *ArrayVariable) MaxSize() (int, bool) { return a.maxSize, a.hasMaxSize }

// SetValue implements Assignable for whole-array assignment.
func (a *ArrayVariable) SetValue(v Value) error {
	if !a.IsActive() {
		return NewPlanError(a.name, a.nodeName, "ArrayVariable", "SetValue called while inactive")
	}
	if !v.IsKnown() {
		a.SetUnknown()
		return nil
	}
	arr, _ := v.ArrVal()
	if arr == nil || arr.ElementType() != a.elemType {
		return NewPlanError(a.name, a.nodeName, "ArrayVariable", "type mismatch assigning array")
	}
	if a.hasMaxSize && arr.Size() > a.maxSize {
		return NewPlanError(a.name, a.nodeName, "ArrayVariable", "array assignment size %d exceeds max size %d", arr.Size(), a.maxSize)
	}
	next := arr.Clone()
	if a.hasMaxSize && next.Size() < a.maxSize {
		next.Resize(a.maxSize)
	}
	changed := !a.known || !arraysEqual(a.current, next)
	a.current = next
	a.known = true
	if changed {
		a.PublishChanged(a)
	}
	return nil
}

func (a *ArrayVariable) SetUnknown() {
	if !a.known {
		return
	}
	a.known = false
	a.current = nil
	a.PublishChanged(a)
}

func (a *ArrayVariable) SaveCurrent() {
	if a.known && a.current != nil {
		a.saved = a.current.Clone()
	} else {
		a.saved = nil
	}
	a.savedKnown = a.known
}

func (a *ArrayVariable) RestoreSaved() {
	changed := a.known != a.savedKnown || !arraysEqual(a.current, a.saved)
	a.known = a.savedKnown
	a.current = a.saved
	if changed {
		a.PublishChanged(a)
	}
}

func (a *ArrayVariable) SavedValue() Value {
	if !a.savedKnown {
		return UnknownValue(a.ValueType())
	}
	return ArrayValue(a.ValueType(), a.saved)
}

func (a *ArrayVariable) BaseVariable() Assignable { return a }

// GetElement reads element i. Out-of-range access is a PlanError.
func (a *ArrayVariable) GetElement(i int) (Value, error) {
	if !a.IsActive() || !a.known || a.current == nil {
		return UnknownValue(a.elemType), nil
	}
	if i < 0 || i >= a.current.Size() {
		return Value{}, NewPlanError(a.name, a.nodeName, "ArrayVariable", "index %d out of range [0,%d)", i, a.current.Size())
	}
	return a.current.GetValue(i), nil
}

// SetElement writes element i, publishing a changed notification if the
// element's value actually differs from before.
func (a *ArrayVariable) SetElement(i int, v Value) error {
	if !a.IsActive() || !a.known || a.current == nil {
		return NewPlanError(a.name, a.nodeName, "ArrayVariable", "SetElement called on unknown/inactive array")
	}
	if i < 0 || i >= a.current.Size() {
		return NewPlanError(a.name, a.nodeName, "ArrayVariable", "index %d out of range [0,%d)", i, a.current.Size())
	}
	before := a.current.GetValue(i)
	if !a.current.SetValue(i, v) {
		return NewPlanError(a.name, a.nodeName, "ArrayVariable", "element type mismatch at index %d", i)
	}
	after := a.current.GetValue(i)
	if !before.Same(after) {
		a.PublishChanged(a)
	}
	return nil
}

// SetElementUnknown marks element i unknown.
func (a *ArrayVariable) SetElementUnknown(i int) error {
	return a.SetElement(i, UnknownValue(a.elemType))
}

// ElementIsKnown reports whether element i currently carries a value.
func (a *ArrayVariable) ElementIsKnown(i int) bool {
	if !a.IsActive() || !a.known || a.current == nil || i < 0 || i >= a.current.Size() {
		return false
	}
	return a.current.KnownAt(i)
}

// Size returns the current element count, 0 if unknown/inactive.
func (a *ArrayVariable) Size() int {
	if !a.IsActive() || !a.known || a.current == nil {
		return 0
	}
	return a.current.Size()
}
