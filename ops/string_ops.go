package ops

import "github.com/plexcore/exprgraph"

type concatOp struct{}

func (concatOp) Name() string { return "CONCAT" }
func (concatOp) ValueType([]exprgraph.ValueType) exprgraph.ValueType { return exprgraph.String }

func (concatOp) CheckArgCount(n int) error {
	if n < 1 {
		return argCountError("CONCAT", fmtAtLeast(1), n)
	}
	return nil
}

func (concatOp) CheckArgTypes(argTypes []exprgraph.ValueType) error {
	for i, t := range argTypes {
		if t != exprgraph.String {
			return argTypeError("CONCAT", i, exprgraph.String, t)
		}
	}
	return nil
}

func (concatOp) Apply(args []exprgraph.Value) exprgraph.Value {
	var sb []byte
	for _, a := range args {
		if !a.IsKnown() {
			return exprgraph.UnknownValue(exprgraph.String)
		}
		s, _ := a.StrVal()
		sb = append(sb, s...)
	}
	return exprgraph.StringValue(string(sb))
}

// Concat joins 1+ String arguments; unknown if any argument is unknown.
var Concat Operator = concatOp{}

type strlenOp struct{}

func (strlenOp) Name() string { return "STRLEN" }
func (strlenOp) ValueType([]exprgraph.ValueType) exprgraph.ValueType { return exprgraph.Integer }

func (strlenOp) CheckArgCount(n int) error {
	if n != 1 {
		return argCountError("STRLEN", fmtExactly(1), n)
	}
	return nil
}

func (strlenOp) CheckArgTypes(argTypes []exprgraph.ValueType) error {
	if argTypes[0] != exprgraph.String {
		return argTypeError("STRLEN", 0, exprgraph.String, argTypes[0])
	}
	return nil
}

func (strlenOp) Apply(args []exprgraph.Value) exprgraph.Value {
	s, known := args[0].StrVal()
	if !known {
		return exprgraph.UnknownValue(exprgraph.Integer)
	}
	return exprgraph.IntValue(int64(len([]rune(s))))
}

// Strlen returns the rune length of a String argument.
var Strlen Operator = strlenOp{}
