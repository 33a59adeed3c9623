// Package ops implements the operator families and the N-ary Function
// expression that composes them, per spec.md §4.7. Operators are stateless
// value transforms; Function is the Expression that owns argument
// activation, listener wiring, and re-derivation on demand.
package ops

import (
	"fmt"

	"github.com/plexcore/exprgraph"
)

// Operator is a stateless n-ary value transform. Implementations validate
// their own argument count and types before applying, so Function stays
// generic across all operator families.
type Operator interface {
	Name() string
	ValueType(argTypes []exprgraph.ValueType) exprgraph.ValueType
	CheckArgCount(n int) error
	CheckArgTypes(argTypes []exprgraph.ValueType) error
	Apply(args []exprgraph.Value) exprgraph.Value
}

// Function is the Expression produced by composing an Operator over N
// argument expressions, with per-argument ownership flags mirroring
// spec.md §3's "garbage" ownership tag.
type Function struct {
	exprgraph.Notifier
	name     string
	nodeName string
	op       Operator
	args     []exprgraph.Expression
	owned    []bool
	lastErr  error
	deactivationErr error
}

// NewFunction builds a Function named name applying op over args. owned[i]
// true means this Function deactivates/releases args[i] itself; when nil,
// no argument is treated as owned (the common case of referencing an
// existing subexpression of a containing node).
func NewFunction(name, nodeName string, op Operator, args []exprgraph.Expression, owned []bool) *Function {
	if owned == nil {
		owned = make([]bool, len(args))
	}
	return &Function{Notifier: exprgraph.NewNotifier(true), name: name, nodeName: nodeName, op: op, args: args, owned: owned}
}

func (fn *Function) Name() string      { return fn.name }
func (fn *Function) ExprClass() string { return "Function:" + fn.op.Name() }
func (fn *Function) ValueType() exprgraph.ValueType {
	return fn.op.ValueType(fn.argTypes())
}
func (fn *Function) IsConstant() bool {
	for _, a := range fn.args {
		if !a.IsConstant() {
			return false
		}
	}
	return true
}
func (fn *Function) IsAssignable() bool { return false }

func (fn *Function) argTypes() []exprgraph.ValueType {
	types := make([]exprgraph.ValueType, len(fn.args))
	for i, a := range fn.args {
		types[i] = a.ValueType()
	}
	return types
}

// Value re-derives the function's value from its current argument values.
// A PlanError from CheckArgTypes (a mismatch the parser could not catch,
// e.g. a polymorphic library node binding) is stashed and reported as
// unknown, mirroring ArrayRef.LastError/ArrayVariable.ActivationError.
func (fn *Function) Value() exprgraph.Value {
	if !fn.IsActive() {
		return exprgraph.UnknownValue(fn.ValueType())
	}
	if err := fn.op.CheckArgTypes(fn.argTypes()); err != nil {
		fn.lastErr = exprgraph.NewPlanError(fn.name, fn.nodeName, fn.ExprClass(), "%s", err)
		return exprgraph.UnknownValue(fn.ValueType())
	}
	fn.lastErr = nil
	args := make([]exprgraph.Value, len(fn.args))
	for i, a := range fn.args {
		args[i] = a.Value()
	}
	return fn.op.Apply(args)
}

// LastError returns the PlanError (if any) raised by the most recent Value
// call.
func (fn *Function) LastError() error { return fn.lastErr }

func (fn *Function) Subexpressions(f func(exprgraph.Expression)) {
	for _, a := range fn.args {
		f(a)
	}
}

func (fn *Function) Activate() {
	fn.ActivateWith(fn, func() {
		for i, a := range fn.args {
			if fn.owned[i] {
				a.Activate()
			}
			a.AddListener(fn)
		}
	})
}

func (fn *Function) Deactivate() {
	fn.deactivationErr = fn.DeactivateWith(fn.name, fn.ExprClass(), func() {
		for i, a := range fn.args {
			a.RemoveListener(fn)
			if fn.owned[i] {
				a.Deactivate()
			}
		}
	})
}

// DeactivationError returns the activation-count-underflow PlanError (if
// any) raised by the most recent Deactivate call, distinct from LastError
// (which reports argument type-check errors from Value).
func (fn *Function) DeactivationError() error { return fn.deactivationErr }

// NotifyChanged republishes whenever any argument changes; Function has no
// cached value to invalidate since Value() always re-derives.
func (fn *Function) NotifyChanged(exprgraph.Expression) {
	if fn.IsActive() {
		fn.PublishChanged(fn)
	}
}

func argCountError(op string, want string, got int) error {
	return fmt.Errorf("operator %s expects %s arguments, got %d", op, want, got)
}

func argTypeError(op string, index int, want, got exprgraph.ValueType) error {
	return fmt.Errorf("operator %s argument %d: expected %s, got %s", op, index, want, got)
}
