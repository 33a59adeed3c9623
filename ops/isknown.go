package ops

import "github.com/plexcore/exprgraph"

type isKnownOp struct{}

func (isKnownOp) Name() string { return "IsKnown" }
func (isKnownOp) ValueType([]exprgraph.ValueType) exprgraph.ValueType { return exprgraph.Boolean }

func (isKnownOp) CheckArgCount(n int) error {
	if n != 1 {
		return argCountError("IsKnown", fmtExactly(1), n)
	}
	return nil
}

func (isKnownOp) CheckArgTypes([]exprgraph.ValueType) error { return nil }

// Apply always returns a known Boolean: IsKnown is the one operator that
// is never itself unknown, per spec.md §4.7.
func (isKnownOp) Apply(args []exprgraph.Value) exprgraph.Value {
	return exprgraph.BoolValue(args[0].IsKnown())
}

// IsKnown reports whether its single argument currently carries a value.
var IsKnown Operator = isKnownOp{}
