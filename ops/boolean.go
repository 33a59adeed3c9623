package ops

import "github.com/plexcore/exprgraph"

// boolNaryOp implements AND/OR over 1+ Boolean arguments and XOR over
// exactly 2; NOT is handled separately as a strict unary.
type boolNaryOp struct {
	name    string
	minArgs int
	maxArgs int // 0 means unbounded
	apply   func(args []exprgraph.Value) exprgraph.Value
}

func (o *boolNaryOp) Name() string { return o.name }

func (o *boolNaryOp) ValueType([]exprgraph.ValueType) exprgraph.ValueType { return exprgraph.Boolean }

func (o *boolNaryOp) CheckArgCount(n int) error {
	if n < o.minArgs || (o.maxArgs > 0 && n > o.maxArgs) {
		return argCountError(o.name, wantRange(o.minArgs, o.maxArgs), n)
	}
	return nil
}

func (o *boolNaryOp) CheckArgTypes(argTypes []exprgraph.ValueType) error {
	for i, t := range argTypes {
		if t != exprgraph.Boolean {
			return argTypeError(o.name, i, exprgraph.Boolean, t)
		}
	}
	return nil
}

func (o *boolNaryOp) Apply(args []exprgraph.Value) exprgraph.Value { return o.apply(args) }

func wantRange(min, max int) string {
	if max == 0 {
		return fmtAtLeast(min)
	}
	if min == max {
		return fmtExactly(min)
	}
	return fmtBetween(min, max)
}

func fmtAtLeast(n int) string     { return "at least " + itoa(n) }
func fmtExactly(n int) string     { return "exactly " + itoa(n) }
func fmtBetween(a, b int) string  { return "between " + itoa(a) + " and " + itoa(b) }

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// And implements three-valued logical AND: any known-false argument makes
// the result false regardless of unknowns; otherwise any unknown argument
// makes the result unknown; otherwise all arguments are known true.
var And Operator = &boolNaryOp{name: "AND", minArgs: 1, apply: func(args []exprgraph.Value) exprgraph.Value {
	anyUnknown := false
	for _, a := range args {
		if !a.IsKnown() {
			anyUnknown = true
			continue
		}
		if b, _ := a.BoolVal(); !b {
			return exprgraph.BoolValue(false)
		}
	}
	if anyUnknown {
		return exprgraph.UnknownValue(exprgraph.Boolean)
	}
	return exprgraph.BoolValue(true)
}}

// Or implements three-valued logical OR, the dual of And.
var Or Operator = &boolNaryOp{name: "OR", minArgs: 1, apply: func(args []exprgraph.Value) exprgraph.Value {
	anyUnknown := false
	for _, a := range args {
		if !a.IsKnown() {
			anyUnknown = true
			continue
		}
		if b, _ := a.BoolVal(); b {
			return exprgraph.BoolValue(true)
		}
	}
	if anyUnknown {
		return exprgraph.UnknownValue(exprgraph.Boolean)
	}
	return exprgraph.BoolValue(false)
}}

// Xor is strictly binary: unknown if either argument is unknown.
var Xor Operator = &boolNaryOp{name: "XOR", minArgs: 2, maxArgs: 2, apply: func(args []exprgraph.Value) exprgraph.Value {
	if !args[0].IsKnown() || !args[1].IsKnown() {
		return exprgraph.UnknownValue(exprgraph.Boolean)
	}
	a, _ := args[0].BoolVal()
	b, _ := args[1].BoolVal()
	return exprgraph.BoolValue(a != b)
}}

type notOp struct{}

func (notOp) Name() string                                           { return "NOT" }
func (notOp) ValueType([]exprgraph.ValueType) exprgraph.ValueType    { return exprgraph.Boolean }
func (notOp) CheckArgCount(n int) error {
	if n != 1 {
		return argCountError("NOT", fmtExactly(1), n)
	}
	return nil
}
func (notOp) CheckArgTypes(argTypes []exprgraph.ValueType) error {
	if argTypes[0] != exprgraph.Boolean {
		return argTypeError("NOT", 0, exprgraph.Boolean, argTypes[0])
	}
	return nil
}
func (notOp) Apply(args []exprgraph.Value) exprgraph.Value {
	if !args[0].IsKnown() {
		return exprgraph.UnknownValue(exprgraph.Boolean)
	}
	b, _ := args[0].BoolVal()
	return exprgraph.BoolValue(!b)
}

// Not is the unary logical negation operator.
var Not Operator = notOp{}
