package lookup

import "github.com/plexcore/exprgraph"

// LookupOnChange is a leaf expression that subscribes to an external State
// for the duration of its activation and publishes a change only once a new
// sample differs from the value it last reported by at least its own
// latched tolerance, per spec.md §4.8's per-subscriber latching rule. This
// deadband is evaluated independently for every subscriber of the same
// State: the shared StateCache/Interface threshold band (computed by
// recomputeThresholds from the tightest tolerance among all subscribers)
// only controls how eagerly the Interface delivers samples upstream, it is
// not itself the gate a subscriber reports through. toleranceExpr is
// optional; when present it is re-evaluated on activation and again any
// time it changes while subscribed (spec.md §9: "add/remove/change of one
// subscriber's tolerance yields ... recomputation").
type LookupOnChange struct {
	exprgraph.Notifier
	name          string
	nodeName      string
	valueType     exprgraph.ValueType
	state         State
	toleranceExpr exprgraph.Expression // Real- or Integer-valued, optional
	cache         *StateCache
	current       exprgraph.Value
	latchedTol    float64
	haveTol       bool
	deactivationErr error
}

// NewLookupOnChange builds a LookupOnChange of valueType for state s,
// with an optional tolerance expression.
func NewLookupOnChange(name, nodeName string, valueType exprgraph.ValueType, s State, toleranceExpr exprgraph.Expression, cache *StateCache) *LookupOnChange {
	return &LookupOnChange{
		Notifier:      exprgraph.NewNotifier(true),
		name:          name,
		nodeName:      nodeName,
		valueType:     valueType,
		state:         s,
		toleranceExpr: toleranceExpr,
		cache:         cache,
		current:       exprgraph.UnknownValue(valueType),
	}
}

func (l *LookupOnChange) Name() string                   { return l.name }
func (l *LookupOnChange) ExprClass() string               { return "LookupOnChange" }
func (l *LookupOnChange) ValueType() exprgraph.ValueType { return l.valueType }
func (l *LookupOnChange) IsConstant() bool               { return false }
func (l *LookupOnChange) IsAssignable() bool             { return false }

func (l *LookupOnChange) Value() exprgraph.Value {
	if !l.IsActive() {
		return exprgraph.UnknownValue(l.valueType)
	}
	return l.current
}

func (l *LookupOnChange) Subexpressions(f func(exprgraph.Expression)) {
	if l.toleranceExpr != nil {
		f(l.toleranceExpr)
	}
}

// tolerance returns the latched tolerance value and whether one is in
// effect. Consumed both by deliver's own deadband check and by
// StateCache.recomputeThresholds's tightest-tolerance-wins computation.
func (l *LookupOnChange) tolerance() (float64, bool) {
	return l.latchedTol, l.haveTol
}

// refreshTolerance re-reads toleranceExpr's current value into the latched
// tolerance. Called on activation and again whenever toleranceExpr
// publishes a change while this subscription is active.
func (l *LookupOnChange) refreshTolerance() {
	l.haveTol = false
	if l.toleranceExpr == nil {
		return
	}
	if tol, known := l.toleranceExpr.Value().RealVal(); known {
		l.latchedTol = tol
		l.haveTol = true
	}
}

func (l *LookupOnChange) Activate() {
	l.ActivateWith(l, func() {
		if l.toleranceExpr != nil {
			l.toleranceExpr.Activate()
			l.toleranceExpr.AddListener(l)
		}
		l.refreshTolerance()
		_ = l.cache.Subscribe(l)
	})
}

func (l *LookupOnChange) Deactivate() {
	l.deactivationErr = l.DeactivateWith(l.name, "LookupOnChange", func() {
		_ = l.cache.Unsubscribe(l)
		if l.toleranceExpr != nil {
			l.toleranceExpr.RemoveListener(l)
			l.toleranceExpr.Deactivate()
		}
	})
}

// DeactivationError returns the activation-count-underflow PlanError (if
// any) raised by the most recent Deactivate call.
func (l *LookupOnChange) DeactivationError() error { return l.deactivationErr }

// deliver is called by StateCache.apply/Drain on the single exec thread
// when a new sample for this subscription's state arrives. It reports the
// change only once exceedsOwnTolerance says the sample has moved far enough
// from the value this subscriber last reported.
func (l *LookupOnChange) deliver(v exprgraph.Value) {
	if !l.IsActive() {
		return
	}
	if !l.exceedsOwnTolerance(v) {
		return
	}
	l.current = v
	l.PublishChanged(l)
}

// exceedsOwnTolerance implements spec.md §4.8's per-subscriber latching: a
// new sample is reported only once it differs from the value this
// subscriber last reported by at least its own latched tolerance
// (|new - last_reported| >= tolerance), independent of whatever band the
// shared StateCache negotiated with the Interface. Non-numeric types, or a
// subscription with no tolerance expression, fall back to plain bitwise
// change detection.
func (l *LookupOnChange) exceedsOwnTolerance(v exprgraph.Value) bool {
	tol, haveTol := l.tolerance()
	if !haveTol {
		return !l.current.Same(v)
	}
	oldNum, oldKnown := l.current.RealVal()
	newNum, newKnown := v.RealVal()
	if !oldKnown || !newKnown || !l.current.Type().IsNumeric() || !v.Type().IsNumeric() {
		return !l.current.Same(v)
	}
	diff := newNum - oldNum
	if diff < 0 {
		diff = -diff
	}
	return diff >= tol
}

// NotifyChanged reacts to the tolerance expression changing while this
// subscription is active: both the deadband used by deliver and the
// Interface-facing threshold band StateCache maintains must reflect the new
// tolerance immediately, per spec.md §9.
func (l *LookupOnChange) NotifyChanged(source exprgraph.Expression) {
	if l.toleranceExpr == nil || source != l.toleranceExpr {
		return
	}
	l.refreshTolerance()
	_ = l.cache.RefreshTolerance(l)
}
