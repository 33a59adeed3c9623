package lookup

import "github.com/plexcore/exprgraph"

// LookupNow is a leaf expression that performs an immediate external
// query on activation, caching nothing between activations, per
// spec.md §6. It never changes value between activations and so never
// publishes; re-activating re-queries.
type LookupNow struct {
	exprgraph.Notifier
	name      string
	nodeName  string
	valueType exprgraph.ValueType
	state     State
	cache     *StateCache
	current   exprgraph.Value
	lastErr   error
	deactivationErr error
}

// NewLookupNow builds a LookupNow expression of valueType for state s,
// querying through cache.
func NewLookupNow(name, nodeName string, valueType exprgraph.ValueType, s State, cache *StateCache) *LookupNow {
	return &LookupNow{
		Notifier:  exprgraph.NewNotifier(false),
		name:      name,
		nodeName:  nodeName,
		valueType: valueType,
		state:     s,
		cache:     cache,
		current:   exprgraph.UnknownValue(valueType),
	}
}

func (l *LookupNow) Name() string                   { return l.name }
func (l *LookupNow) ExprClass() string               { return "LookupNow" }
func (l *LookupNow) ValueType() exprgraph.ValueType { return l.valueType }
func (l *LookupNow) IsConstant() bool     { return false }
func (l *LookupNow) IsAssignable() bool   { return false }
func (l *LookupNow) Value() exprgraph.Value {
	if !l.IsActive() {
		return exprgraph.UnknownValue(l.ValueType())
	}
	return l.current
}

// LastError returns the error (if any) the most recent external query
// raised.
func (l *LookupNow) LastError() error { return l.lastErr }

func (l *LookupNow) Subexpressions(func(exprgraph.Expression)) {}

func (l *LookupNow) Activate() {
	l.ActivateWith(l, func() {
		v, err := l.cache.LookupNow(l.state)
		l.lastErr = err
		if err == nil {
			l.current = v
		}
	})
}

func (l *LookupNow) Deactivate() {
	l.deactivationErr = l.DeactivateWith(l.name, "LookupNow", func() {})
}

// DeactivationError returns the activation-count-underflow PlanError (if
// any) raised by the most recent Deactivate call, distinct from LastError
// (which reports external-query errors).
func (l *LookupNow) DeactivationError() error { return l.deactivationErr }

func (l *LookupNow) NotifyChanged(exprgraph.Expression) {}
