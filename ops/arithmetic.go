package ops

import (
	"math"

	"github.com/plexcore/exprgraph"
)

// numericBinOp implements the arithmetic binary family (ADD/SUB/MUL/DIV/
// MOD/MAX/MIN): Integer if both arguments are Integer, Real otherwise per
// spec.md §4.7's promotion rule. Division and modulo by zero yield
// unknown rather than a runtime error.
type numericBinOp struct {
	name      string
	variadic  bool // ADD/SUB/MUL/MAX/MIN accept 2+ args; DIV/MOD are strictly binary
	intApply  func(a, b int64) (int64, bool)
	realApply func(a, b float64) float64
}

func (o *numericBinOp) Name() string { return o.name }

func (o *numericBinOp) ValueType(argTypes []exprgraph.ValueType) exprgraph.ValueType {
	for _, t := range argTypes {
		if t != exprgraph.Integer {
			return exprgraph.Real
		}
	}
	return exprgraph.Integer
}

func (o *numericBinOp) CheckArgCount(n int) error {
	if o.variadic {
		if n < 2 {
			return argCountError(o.name, fmtAtLeast(2), n)
		}
		return nil
	}
	if n != 2 {
		return argCountError(o.name, fmtExactly(2), n)
	}
	return nil
}

func (o *numericBinOp) CheckArgTypes(argTypes []exprgraph.ValueType) error {
	for i, t := range argTypes {
		if !t.IsNumeric() {
			return argTypeError(o.name, i, exprgraph.Real, t)
		}
	}
	return nil
}

func (o *numericBinOp) Apply(args []exprgraph.Value) exprgraph.Value {
	allInt := true
	for _, a := range args {
		if a.Type() != exprgraph.Integer {
			allInt = false
		}
		if !a.IsKnown() {
			return exprgraph.UnknownValue(o.ValueType(typesOf(args)))
		}
	}
	if allInt && o.intApply != nil {
		acc, _ := args[0].IntVal()
		for _, a := range args[1:] {
			v, _ := a.IntVal()
			var ok bool
			acc, ok = o.intApply(acc, v)
			if !ok {
				return exprgraph.UnknownValue(exprgraph.Integer)
			}
		}
		return exprgraph.IntValue(acc)
	}
	acc, _ := args[0].RealVal()
	for _, a := range args[1:] {
		v, _ := a.RealVal()
		acc = o.realApply(acc, v)
		if math.IsNaN(acc) {
			return exprgraph.UnknownValue(exprgraph.Real)
		}
	}
	return exprgraph.RealValue(acc)
}

func typesOf(args []exprgraph.Value) []exprgraph.ValueType {
	types := make([]exprgraph.ValueType, len(args))
	for i, a := range args {
		types[i] = a.Type()
	}
	return types
}

var Add Operator = &numericBinOp{name: "ADD", variadic: true,
	intApply:  func(a, b int64) (int64, bool) { return a + b, true },
	realApply: func(a, b float64) float64 { return a + b },
}

var Sub Operator = &numericBinOp{name: "SUB", variadic: true,
	intApply:  func(a, b int64) (int64, bool) { return a - b, true },
	realApply: func(a, b float64) float64 { return a - b },
}

var Mul Operator = &numericBinOp{name: "MUL", variadic: true,
	intApply:  func(a, b int64) (int64, bool) { return a * b, true },
	realApply: func(a, b float64) float64 { return a * b },
}

var Max Operator = &numericBinOp{name: "MAX", variadic: true,
	intApply:  func(a, b int64) (int64, bool) { if b > a { return b, true }; return a, true },
	realApply: func(a, b float64) float64 { return math.Max(a, b) },
}

var Min Operator = &numericBinOp{name: "MIN", variadic: true,
	intApply:  func(a, b int64) (int64, bool) { if b < a { return b, true }; return a, true },
	realApply: func(a, b float64) float64 { return math.Min(a, b) },
}

// Div and Mod are strictly binary; division/modulo by zero is unknown, not
// a PlanError, per spec.md §4.7.
var Div Operator = &numericBinOp{name: "DIV",
	intApply: func(a, b int64) (int64, bool) {
		if b == 0 {
			return 0, false
		}
		return a / b, true
	},
	realApply: func(a, b float64) float64 {
		if b == 0 {
			return math.NaN()
		}
		return a / b
	},
}

var Mod Operator = &numericBinOp{name: "MOD",
	intApply: func(a, b int64) (int64, bool) {
		if b == 0 {
			return 0, false
		}
		return a % b, true
	},
	realApply: func(a, b float64) float64 {
		if b == 0 {
			return math.NaN()
		}
		return math.Mod(a, b)
	},
}

// unaryNumericOp implements ABS/CEIL/FLOOR/ROUND/TRUNC/SQRT/REAL_TO_INT.
type unaryNumericOp struct {
	name       string
	resultType exprgraph.ValueType // Integer, Real, or 0 to mean "same as argument"
	intApply   func(a int64) (int64, bool)
	realApply  func(a float64) (float64, bool)
}

func (o *unaryNumericOp) Name() string { return o.name }

func (o *unaryNumericOp) ValueType(argTypes []exprgraph.ValueType) exprgraph.ValueType {
	if o.resultType != exprgraph.Unknown {
		return o.resultType
	}
	if len(argTypes) > 0 && argTypes[0] == exprgraph.Integer {
		return exprgraph.Integer
	}
	return exprgraph.Real
}

func (o *unaryNumericOp) CheckArgCount(n int) error {
	if n != 1 {
		return argCountError(o.name, fmtExactly(1), n)
	}
	return nil
}

func (o *unaryNumericOp) CheckArgTypes(argTypes []exprgraph.ValueType) error {
	if !argTypes[0].IsNumeric() {
		return argTypeError(o.name, 0, exprgraph.Real, argTypes[0])
	}
	return nil
}

func (o *unaryNumericOp) Apply(args []exprgraph.Value) exprgraph.Value {
	a := args[0]
	if !a.IsKnown() {
		return exprgraph.UnknownValue(o.ValueType(typesOf(args)))
	}
	if a.Type() == exprgraph.Integer && o.intApply != nil {
		i, _ := a.IntVal()
		v, ok := o.intApply(i)
		if !ok {
			return exprgraph.UnknownValue(exprgraph.Integer)
		}
		return exprgraph.IntValue(v)
	}
	r, _ := a.RealVal()
	v, ok := o.realApply(r)
	if !ok {
		return exprgraph.UnknownValue(exprgraph.Real)
	}
	if o.resultType == exprgraph.Integer {
		return exprgraph.IntValue(int64(v))
	}
	return exprgraph.RealValue(v)
}

var Abs Operator = &unaryNumericOp{name: "ABS",
	intApply:  func(a int64) (int64, bool) { if a < 0 { return -a, true }; return a, true },
	realApply: func(a float64) (float64, bool) { return math.Abs(a), true },
}

var Sqrt Operator = &unaryNumericOp{name: "SQRT", resultType: exprgraph.Real,
	realApply: func(a float64) (float64, bool) {
		if a < 0 {
			return 0, false
		}
		return math.Sqrt(a), true
	},
}

var Ceil Operator = &unaryNumericOp{name: "CEIL", resultType: exprgraph.Real,
	realApply: func(a float64) (float64, bool) { return math.Ceil(a), true },
}

var Floor Operator = &unaryNumericOp{name: "FLOOR", resultType: exprgraph.Real,
	realApply: func(a float64) (float64, bool) { return math.Floor(a), true },
}

var Round Operator = &unaryNumericOp{name: "ROUND", resultType: exprgraph.Real,
	realApply: func(a float64) (float64, bool) { return math.Round(a), true },
}

var Trunc Operator = &unaryNumericOp{name: "TRUNC", resultType: exprgraph.Real,
	realApply: func(a float64) (float64, bool) { return math.Trunc(a), true },
}

// RealToInt truncates a Real to Integer, per spec.md §4.7.
var RealToInt Operator = &unaryNumericOp{name: "REAL_TO_INT", resultType: exprgraph.Integer,
	realApply: func(a float64) (float64, bool) { return math.Trunc(a), true },
}
