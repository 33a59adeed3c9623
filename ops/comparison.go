package ops

import "github.com/plexcore/exprgraph"

// comparisonOp implements EQ/NE/LT/LE/GT/GE across Integer, Real, String,
// Boolean and the internal enumeration types, per spec.md §4.7. EQ/NE use
// Value.Equal (which already returns unknown for any-unknown operand);
// ordering comparisons require both operands known and comparable.
type comparisonOp struct {
	name     string
	ordering bool // true for LT/LE/GT/GE, false for EQ/NE
	cmp      func(a, b float64) bool
	strCmp   func(a, b string) bool
	wantEq   bool // for EQ/NE: true means report eq, false means report !eq
}

func (o *comparisonOp) Name() string { return o.name }

func (o *comparisonOp) ValueType([]exprgraph.ValueType) exprgraph.ValueType { return exprgraph.Boolean }

func (o *comparisonOp) CheckArgCount(n int) error {
	if n != 2 {
		return argCountError(o.name, fmtExactly(2), n)
	}
	return nil
}

func (o *comparisonOp) CheckArgTypes(argTypes []exprgraph.ValueType) error {
	a, b := argTypes[0], argTypes[1]
	if o.ordering {
		if (a.IsNumeric() && b.IsNumeric()) || (a == exprgraph.String && b == exprgraph.String) {
			return nil
		}
		return argTypeError(o.name, 1, a, b)
	}
	return nil
}

func (o *comparisonOp) Apply(args []exprgraph.Value) exprgraph.Value {
	a, b := args[0], args[1]
	if !o.ordering {
		eq, known := a.Equal(b)
		if !known {
			return exprgraph.UnknownValue(exprgraph.Boolean)
		}
		return exprgraph.BoolValue(eq == o.wantEq)
	}
	if !a.IsKnown() || !b.IsKnown() {
		return exprgraph.UnknownValue(exprgraph.Boolean)
	}
	if a.Type() == exprgraph.String {
		sa, _ := a.StrVal()
		sb, _ := b.StrVal()
		return exprgraph.BoolValue(o.strCmp(sa, sb))
	}
	ra, _ := a.RealVal()
	rb, _ := b.RealVal()
	return exprgraph.BoolValue(o.cmp(ra, rb))
}

var Eq Operator = &comparisonOp{name: "EQ", wantEq: true}
var Ne Operator = &comparisonOp{name: "NE", wantEq: false}

var Lt Operator = &comparisonOp{name: "LT", ordering: true,
	cmp: func(a, b float64) bool { return a < b }, strCmp: func(a, b string) bool { return a < b }}
var Le Operator = &comparisonOp{name: "LE", ordering: true,
	cmp: func(a, b float64) bool { return a <= b }, strCmp: func(a, b string) bool { return a <= b }}
var Gt Operator = &comparisonOp{name: "GT", ordering: true,
	cmp: func(a, b float64) bool { return a > b }, strCmp: func(a, b string) bool { return a > b }}
var Ge Operator = &comparisonOp{name: "GE", ordering: true,
	cmp: func(a, b float64) bool { return a >= b }, strCmp: func(a, b string) bool { return a >= b }}
