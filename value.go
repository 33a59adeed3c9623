package exprgraph

import (
	"fmt"
	"strconv"
	"strings"
)

// ValueType is the closed enumeration of types a Value may carry.
type ValueType int

const (
	Unknown ValueType = iota
	Boolean
	Integer
	Real
	String
	Date
	Duration
	NodeState
	NodeOutcome
	FailureType
	CommandHandle
	BooleanArray
	IntegerArray
	RealArray
	StringArray
	ArrayType
)

// String renders the type tag for diagnostics. Date and Duration print
// distinctly even though both are Real at the value level.
func (t ValueType) String() string {
	switch t {
	case Unknown:
		return "Unknown"
	case Boolean:
		return "Boolean"
	case Integer:
		return "Integer"
	case Real:
		return "Real"
	case String:
		return "String"
	case Date:
		return "Date"
	case Duration:
		return "Duration"
	case NodeState:
		return "NodeState"
	case NodeOutcome:
		return "NodeOutcome"
	case FailureType:
		return "FailureType"
	case CommandHandle:
		return "CommandHandle"
	case BooleanArray:
		return "BooleanArray"
	case IntegerArray:
		return "IntegerArray"
	case RealArray:
		return "RealArray"
	case StringArray:
		return "StringArray"
	case ArrayType:
		return "Array"
	default:
		return "Unknown"
	}
}

// IsNumeric reports whether the type participates in arithmetic promotion.
func (t ValueType) IsNumeric() bool {
	switch t {
	case Integer, Real, Date, Duration:
		return true
	default:
		return false
	}
}

// IsArray reports whether the type is one of the array types.
func (t ValueType) IsArray() bool {
	switch t {
	case BooleanArray, IntegerArray, RealArray, StringArray, ArrayType:
		return true
	default:
		return false
	}
}

// ElementType returns the element ValueType for an array type, or Unknown
// if t is not an array type.
func (t ValueType) ElementType() ValueType {
	switch t {
	case BooleanArray:
		return Boolean
	case IntegerArray:
		return Integer
	case RealArray:
		return Real
	case StringArray:
		return String
	default:
		return Unknown
	}
}

// Value is a tagged variant over every supported ValueType plus the
// distinguished unknown case. Equality between two unknowns is "unknown"
// for semantic (==) comparisons; Same performs the bitwise comparison used
// for change detection.
type Value struct {
	typ     ValueType
	known   bool
	boolVal bool
	intVal  int64
	realVal float64
	strVal  string
	arrVal  Array
}

// UnknownValue returns an unknown value of the given type.
func UnknownValue(t ValueType) Value { return Value{typ: t} }

// BoolValue constructs a known Boolean value.
func BoolValue(b bool) Value { return Value{typ: Boolean, known: true, boolVal: b} }

// IntValue constructs a known Integer value.
func IntValue(i int64) Value { return Value{typ: Integer, known: true, intVal: i} }

// RealValue constructs a known Real value.
func RealValue(r float64) Value { return Value{typ: Real, known: true, realVal: r} }

// DateValue constructs a known Date value (stored as Real at the value level).
func DateValue(r float64) Value { return Value{typ: Date, known: true, realVal: r} }

// DurationValue constructs a known Duration value (stored as Real at the value level).
func DurationValue(r float64) Value { return Value{typ: Duration, known: true, realVal: r} }

// StringValue constructs a known String value.
func StringValue(s string) Value { return Value{typ: String, known: true, strVal: s} }

// EnumValue constructs a known value of one of the internal enumeration
// types (NodeState, NodeOutcome, FailureType, CommandHandle), represented
// internally as an integer ordinal.
func EnumValue(t ValueType, ordinal int64) Value {
	return Value{typ: t, known: true, intVal: ordinal}
}

// ArrayValue constructs a known array-typed value wrapping arr.
func ArrayValue(t ValueType, arr Array) Value {
	return Value{typ: t, known: arr != nil, arrVal: arr}
}

// Type returns the value's ValueType tag.
func (v Value) Type() ValueType { return v.typ }

// IsKnown reports whether the value carries a concrete payload.
func (v Value) IsKnown() bool { return v.known }

// BoolVal returns the boolean payload and whether it was known.
func (v Value) BoolVal() (bool, bool) { return v.boolVal, v.known }

// IntVal returns the integer payload and whether it was known.
func (v Value) IntVal() (int64, bool) { return v.intVal, v.known }

// RealVal returns the real payload (widening Integer if necessary) and
// whether it was known.
func (v Value) RealVal() (float64, bool) {
	if !v.known {
		return 0, false
	}
	if v.typ == Integer {
		return float64(v.intVal), true
	}
	return v.realVal, true
}

// StrVal returns the string payload and whether it was known.
func (v Value) StrVal() (string, bool) { return v.strVal, v.known }

// ArrVal returns the array payload and whether it was known.
func (v Value) ArrVal() (Array, bool) { return v.arrVal, v.known }

// Same performs bitwise-equal comparison, the kind used for change
// detection rather than semantic equality. Two unknowns of the same type
// are Same; unknowns of different types are not.
func (v Value) Same(other Value) bool {
	if v.typ != other.typ {
		return false
	}
	if v.known != other.known {
		return false
	}
	if !v.known {
		return true
	}
	switch v.typ {
	case Boolean:
		return v.boolVal == other.boolVal
	case Integer, NodeState, NodeOutcome, FailureType, CommandHandle:
		return v.intVal == other.intVal
	case Real, Date, Duration:
		return v.realVal == other.realVal
	case String:
		return v.strVal == other.strVal
	case BooleanArray, IntegerArray, RealArray, StringArray, ArrayType:
		return arraysEqual(v.arrVal, other.arrVal)
	default:
		return true
	}
}

// Equal performs semantic equality: unknown compared against anything
// (including another unknown) yields unknown, signalled by the second
// return value being false.
func (v Value) Equal(other Value) (bool, bool) {
	if !v.known || !other.known {
		return false, false
	}
	switch v.typ {
	case Boolean:
		if other.typ != Boolean {
			return false, false
		}
		return v.boolVal == other.boolVal, true
	case Integer, Real, Date, Duration:
		if !other.typ.IsNumeric() {
			return false, false
		}
		a, _ := v.RealVal()
		b, _ := other.RealVal()
		return a == b, true
	case String:
		if other.typ != String {
			return false, false
		}
		return v.strVal == other.strVal, true
	case NodeState, NodeOutcome, FailureType, CommandHandle:
		if other.typ != v.typ {
			return false, false
		}
		return v.intVal == other.intVal, true
	default:
		return false, false
	}
}

// String renders the value for diagnostics, matching the teacher's
// print-name-per-type convention (e.g. a Boolean prints as "true"/"false").
func (v Value) String() string {
	if !v.known {
		return "UNKNOWN"
	}
	switch v.typ {
	case Boolean:
		if v.boolVal {
			return "true"
		}
		return "false"
	case Integer, NodeState, NodeOutcome, FailureType, CommandHandle:
		return strconv.FormatInt(v.intVal, 10)
	case Real, Date, Duration:
		return strconv.FormatFloat(v.realVal, 'g', -1, 64)
	case String:
		return v.strVal
	case BooleanArray, IntegerArray, RealArray, StringArray, ArrayType:
		if v.arrVal == nil {
			return "[]"
		}
		return v.arrVal.String()
	default:
		return "UNKNOWN"
	}
}

// ParseValue parses text into a known Value of the requested type. An
// empty text yields an unknown value of that type, per spec.md §6's AST
// intake rule for Value literals.
func ParseValue(t ValueType, text string) (Value, error) {
	if text == "" {
		return UnknownValue(t), nil
	}
	switch t {
	case Boolean:
		b, err := strconv.ParseBool(strings.TrimSpace(text))
		if err != nil {
			return Value{}, fmt.Errorf("invalid Boolean literal %q: %w", text, err)
		}
		return BoolValue(b), nil
	case Integer:
		i, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
		if err != nil {
			return Value{}, fmt.Errorf("invalid Integer literal %q: %w", text, err)
		}
		return IntValue(i), nil
	case Real, Date, Duration:
		r, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			return Value{}, fmt.Errorf("invalid Real literal %q: %w", text, err)
		}
		return Value{typ: t, known: true, realVal: r}, nil
	case String:
		return StringValue(text), nil
	default:
		return Value{}, fmt.Errorf("cannot parse literal of type %s", t)
	}
}
