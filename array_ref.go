package exprgraph

// ArrayRef is a read-only proxy to one element of an array-valued
// expression, per spec.md §4.5. It holds the array expression and an
// Integer-valued index expression.
type ArrayRef struct {
	Notifier
	name     string
	nodeName string
	array    Expression
	index    Expression
	lastErr  error
	deactivationErr error
}

// NewArrayRef builds a read-only array element reference.
func NewArrayRef(name, nodeName string, array, index Expression) *ArrayRef {
	return &ArrayRef{Notifier: NewNotifier(false), name: name, nodeName: nodeName, array: array, index: index}
}

func (r *ArrayRef) Name() string      { return r.name }
func (r *ArrayRef) ExprClass() string { return "ArrayReference" }
func (r *ArrayRef) ValueType() ValueType {
	return r.array.ValueType().ElementType()
}
func (r *ArrayRef) IsConstant() bool   { return false }
func (r *ArrayRef) IsAssignable() bool { return false }

// selfCheck resolves the array and index, returning the resolved Array
// and integer index. ok is false whenever the value is simply unknown
// (not an error); err is non-nil only for the PlanError case of an
// out-of-range index, per spec.md §4.5/§7.
func (r *ArrayRef) selfCheck() (arr Array, idx int, ok bool, err error) {
	if !r.IsActive() {
		return nil, 0, false, nil
	}
	arrVal := r.array.Value()
	idxVal := r.index.Value()
	a, arrKnown := arrVal.ArrVal()
	i, idxKnown := idxVal.IntVal()
	if !arrKnown || !idxKnown || a == nil {
		return nil, 0, false, nil
	}
	if i < 0 || int(i) >= a.Size() {
		return nil, 0, false, NewPlanError(r.name, r.nodeName, r.ExprClass(), "index %d out of range [0,%d)", i, a.Size())
	}
	return a, int(i), true, nil
}

// Value reads the referenced element. Per spec.md §4.5, an out-of-range
// index raises a PlanError on read rather than silently returning
// unknown; since Expression.Value has no error return, the error is
// stashed for retrieval via LastError, mirroring ArrayVariable's
// ActivationError pattern.
func (r *ArrayRef) Value() Value {
	arr, idx, ok, err := r.selfCheck()
	r.lastErr = err
	if err != nil || !ok {
		return UnknownValue(r.ValueType())
	}
	return arr.GetValue(idx)
}

// LastError returns the PlanError (if any) raised by the most recent
// Value() read.
func (r *ArrayRef) LastError() error { return r.lastErr }

func (r *ArrayRef) Subexpressions(f func(Expression)) {
	f(r.array)
	f(r.index)
}

func (r *ArrayRef) Activate() {
	r.ActivateWith(r, func() {
		r.array.Activate()
		r.index.Activate()
		r.array.AddListener(r)
		r.index.AddListener(r)
	})
}

func (r *ArrayRef) Deactivate() {
	r.deactivationErr = r.DeactivateWith(r.name, r.ExprClass(), func() {
		r.array.RemoveListener(r)
		r.index.RemoveListener(r)
		r.array.Deactivate()
		r.index.Deactivate()
	})
}

// DeactivationError returns the activation-count-underflow PlanError (if
// any) raised by the most recent Deactivate call, distinct from LastError
// (which reports Value-read errors). MutableArrayRef inherits this
// accessor along with Deactivate itself.
func (r *ArrayRef) DeactivationError() error { return r.deactivationErr }

// NotifyChanged forwards the array/index change upward: the reference
// itself has no cached value to invalidate (it always re-derives on
// Value()), so it simply republishes.
func (r *ArrayRef) NotifyChanged(Expression) {
	if r.IsActive() {
		r.PublishChanged(r)
	}
}
