// Package exprgraph implements the expression graph engine at the core of
// an autonomy plan executive: a reactive dataflow of typed expressions
// (constants, variables, array variables, references, functions, and
// lookups) that propagates change notifications through a listener graph
// and bridges to an external-world Interface for sampled and
// change-driven state.
package exprgraph

// Listener is anything that can be notified that a source expression may
// have changed, and that can be walked as part of a subexpression tour.
// Concrete listeners are almost always themselves Expressions (a Function
// listens on its arguments; an Alias listens on its wrapped expression),
// but host collaborators (e.g. a plan node watching a condition) may
// implement Listener directly.
type Listener interface {
	// NotifyChanged is called by a source's PublishChanged. Implementations
	// must not recompute eagerly — they only need to remember that a
	// re-read is warranted and forward the notification to their own
	// listeners, per spec.md §4.1.
	NotifyChanged(source Expression)
}

// Expression is the core polymorphic entity of the graph: a node that
// produces a typed value, possibly unknown, and that can be activated,
// deactivated, and listened to.
type Expression interface {
	Listener

	// Name returns the expression's name, typically assigned by its
	// NodeConnector-resolved declaration, or "" if anonymous.
	Name() string
	// ExprClass returns the class tag used in diagnostics (e.g. "Constant",
	// "Alias", "ArrayReference").
	ExprClass() string
	// ValueType returns the type of value this expression produces.
	ValueType() ValueType
	// IsConstant reports whether the expression can never change value.
	IsConstant() bool
	// IsAssignable reports whether the expression supports Assignable's
	// mutation API (a type assertion to Assignable should then succeed).
	IsAssignable() bool
	// IsActive reports whether the expression's activation count is > 0.
	IsActive() bool

	// Value reads the expression's current value. Per spec.md invariant 3,
	// reading an inactive expression always yields an unknown Value of
	// this expression's ValueType.
	Value() Value

	// Activate increments the activation count; on the 0→1 transition it
	// invokes the subclass's activation hook (walking and activating
	// subexpressions, then publishing a changed notification if the
	// expression is a known propagation source).
	Activate()
	// Deactivate decrements the activation count; on the 1→0 transition it
	// invokes the subclass's deactivation hook (walking and deactivating
	// subexpressions). Deactivating an inactive expression is a PlanError
	// (activation-count underflow).
	Deactivate()

	// AddListener registers l to receive NotifyChanged callbacks. Adding
	// the same listener twice is a no-op (spec.md invariant 7).
	AddListener(l Listener)
	// RemoveListener unregisters l. Removal is idempotent.
	RemoveListener(l Listener)

	// Subexpressions invokes f on every expression this one directly
	// references, for listener wiring and cycle-safe activation walks.
	Subexpressions(f func(Expression))
}

// Assignable is the subset of Expression that supports in-place mutation
// with save/restore for transactional assignment.
type Assignable interface {
	Expression

	// SetValue assigns v. Legal only while active; type-mismatch is a
	// PlanError. Publishes a changed notification iff the bitwise value
	// differs from the prior one.
	SetValue(v Value) error
	// SetUnknown assigns the unknown value of this expression's type.
	SetUnknown()
	// SaveCurrent copies the current value (and known-flag) aside.
	SaveCurrent()
	// RestoreSaved overwrites the current value from the last SaveCurrent,
	// publishing a changed notification iff different. Never raises.
	RestoreSaved()
	// SavedValue returns the value last captured by SaveCurrent.
	SavedValue() Value
	// BaseVariable peels any proxying (array reference, alias) down to
	// the underlying storage-owning Assignable.
	BaseVariable() Assignable
}

// Notifier is the embeddable implementation of the listener graph shared
// by every concrete expression type: activation counting, a deferred-
// removal listener set, and re-entrancy-safe change propagation. It
// intentionally carries no synchronization — spec.md §5 mandates that all
// graph operations happen on a single exec "thread" (goroutine), so a
// mutex here would only hide bugs rather than prevent them.
type Notifier struct {
	activeCount  int
	listeners    []listenerSlot
	propagating  bool
	isPropSource bool
}

type listenerSlot struct {
	l        Listener
	removed  bool
}

// NewNotifier builds a Notifier. isPropagationSource controls whether
// Activate publishes a changed notification on the 0→1 transition when the
// owner is already known (variables, array variables, functions and
// LookupOnChange are propagation sources; constants, aliases, array
// references and LookupNow are not; see spec.md §4.1).
func NewNotifier(isPropagationSource bool) Notifier {
	return Notifier{isPropSource: isPropagationSource}
}

// IsActive reports active_count > 0 (spec.md invariant 2).
func (n *Notifier) IsActive() bool { return n.activeCount > 0 }

// ActiveCount exposes the raw counter, mostly for tests.
func (n *Notifier) ActiveCount() int { return n.activeCount }

// AddListener registers l if it is not already present (spec.md
// invariant 7). A tombstoned slot for the same listener is revived rather
// than duplicated.
func (n *Notifier) AddListener(l Listener) {
	for i := range n.listeners {
		if n.listeners[i].l == l {
			n.listeners[i].removed = false
			return
		}
	}
	n.listeners = append(n.listeners, listenerSlot{l: l})
}

// RemoveListener tombstones l's slot if present. Removal during
// PublishChanged's own iteration is safe: the slot is marked removed and
// swept lazily, the same memory-leak fix the teacher's effect.go describes
// for "unsubscribe from old signals before re-tracking."
func (n *Notifier) RemoveListener(l Listener) {
	for i := range n.listeners {
		if n.listeners[i].l == l && !n.listeners[i].removed {
			n.listeners[i].removed = true
			return
		}
	}
}

func (n *Notifier) sweep() {
	if n.propagating {
		return
	}
	live := n.listeners[:0]
	for _, s := range n.listeners {
		if !s.removed {
			live = append(live, s)
		}
	}
	n.listeners = live
}

// PublishChanged notifies every live listener that source may have
// changed. Re-entrant calls on the same Notifier (a cycle slipping past
// construction-time checks, or a pathological handler) are dropped rather
// than recursed into, per spec.md §4.1's cycle-safety requirement.
func (n *Notifier) PublishChanged(source Expression) {
	if n.propagating {
		return
	}
	n.propagating = true
	// Snapshot so a listener added/removed mid-publish doesn't corrupt
	// this iteration.
	slots := n.listeners
	for _, s := range slots {
		if s.removed {
			continue
		}
		s.l.NotifyChanged(source)
	}
	n.propagating = false
	n.sweep()
}

// ActivateWith increments the activation count and, on the 0→1 transition,
// calls handleActivate. If the expression is known and a propagation
// source after activation, it publishes a changed notification — the
// "first listener gets caught up" behavior spec.md §4.1 requires.
func (n *Notifier) ActivateWith(self Expression, handleActivate func()) {
	n.activeCount++
	if n.activeCount == 1 {
		if handleActivate != nil {
			handleActivate()
		}
		if n.isPropSource && self.Value().IsKnown() {
			n.PublishChanged(self)
		}
	}
}

// DeactivateWith decrements the activation count and, on the 1→0
// transition, calls handleDeactivate. Decrementing below zero is an
// activation-count underflow and raises a PlanError, never silently
// clamped, matching spec.md §9's explicit call-out.
func (n *Notifier) DeactivateWith(exprName, class string, handleDeactivate func()) error {
	if n.activeCount == 0 {
		return NewPlanError(exprName, "", class, "activation count underflow: Deactivate called while already inactive")
	}
	n.activeCount--
	if n.activeCount == 0 && handleDeactivate != nil {
		handleDeactivate()
	}
	return nil
}

// WalkActivate activates every subexpression yielded by subexprs.
func WalkActivate(subexprs func(func(Expression))) {
	subexprs(func(e Expression) { e.Activate() })
}

// WalkDeactivate deactivates every subexpression yielded by subexprs.
func WalkDeactivate(subexprs func(func(Expression))) {
	subexprs(func(e Expression) { e.Deactivate() })
}
