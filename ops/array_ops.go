package ops

import "github.com/plexcore/exprgraph"

type arrayUnaryOp struct {
	name      string
	resultTy  exprgraph.ValueType
	applyArr  func(a exprgraph.Array) exprgraph.Value
}

func (o *arrayUnaryOp) Name() string { return o.name }
func (o *arrayUnaryOp) ValueType([]exprgraph.ValueType) exprgraph.ValueType { return o.resultTy }

func (o *arrayUnaryOp) CheckArgCount(n int) error {
	if n != 1 {
		return argCountError(o.name, fmtExactly(1), n)
	}
	return nil
}

func (o *arrayUnaryOp) CheckArgTypes(argTypes []exprgraph.ValueType) error {
	if !argTypes[0].IsArray() {
		return argTypeError(o.name, 0, exprgraph.ArrayType, argTypes[0])
	}
	return nil
}

func (o *arrayUnaryOp) Apply(args []exprgraph.Value) exprgraph.Value {
	arr, known := args[0].ArrVal()
	if !known || arr == nil {
		return exprgraph.UnknownValue(o.resultTy)
	}
	return o.applyArr(arr)
}

// Size returns the element count of an array-valued argument.
var Size Operator = &arrayUnaryOp{name: "SIZE", resultTy: exprgraph.Integer,
	applyArr: func(a exprgraph.Array) exprgraph.Value { return exprgraph.IntValue(int64(a.Size())) },
}

// AllKnown reports whether every element of an array-valued argument is
// known.
var AllKnown Operator = &arrayUnaryOp{name: "ALL_KNOWN", resultTy: exprgraph.Boolean,
	applyArr: func(a exprgraph.Array) exprgraph.Value { return exprgraph.BoolValue(a.AllKnown()) },
}

// AnyKnown reports whether any element of an array-valued argument is
// known.
var AnyKnown Operator = &arrayUnaryOp{name: "ANY_KNOWN", resultTy: exprgraph.Boolean,
	applyArr: func(a exprgraph.Array) exprgraph.Value { return exprgraph.BoolValue(a.AnyKnown()) },
}
