package exprgraph

import "strings"

// Array is the polymorphic, type-erased view over a homogeneous typed
// array with per-slot known-flags. Concrete implementations are
// BooleanArrayT, IntegerArrayT, RealArrayT, StringArrayT (one per
// spec.md-ArrayType). The T suffix keeps these per-element-type containers
// apart from the ValueType constants BooleanArray, IntegerArray, ..., which
// tag a Value as holding one of them.
type Array interface {
	// Size returns the number of slots.
	Size() int
	// Resize changes the slot count; new slots (when growing) start
	// unknown; existing slots are preserved.
	Resize(n int)
	// KnownAt reports whether the slot at i carries a concrete value.
	KnownAt(i int) bool
	// SetUnknownAt marks the slot at i as unknown.
	SetUnknownAt(i int)
	// AllKnown reports whether every slot is known.
	AllKnown() bool
	// AnyKnown reports whether at least one slot is known.
	AnyKnown() bool
	// ElementType returns the ValueType of one element.
	ElementType() ValueType
	// GetValue returns the element at i as a Value (unknown if that slot
	// is unknown or i is out of range).
	GetValue(i int) Value
	// SetValue stores v at slot i. Returns false if i is out of range or
	// v's type does not match ElementType() (RealArrayT also accepts
	// Integer, Date and Duration values).
	SetValue(i int, v Value) bool
	// Clone returns an independent deep copy.
	Clone() Array
	// String renders the array for diagnostics.
	String() string
}

func joinElements(n int, elemAt func(int) string) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i := 0; i < n; i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(elemAt(i))
	}
	sb.WriteByte(']')
	return sb.String()
}

func arraysEqual(a, b Array) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.ElementType() != b.ElementType() || a.Size() != b.Size() {
		return false
	}
	for i := 0; i < a.Size(); i++ {
		ak, bk := a.KnownAt(i), b.KnownAt(i)
		if ak != bk {
			return false
		}
		if !ak {
			continue
		}
		va, vb := a.GetValue(i), b.GetValue(i)
		if !va.Same(vb) {
			return false
		}
	}
	return true
}

func resizeKnownFlags(known []bool, n int) []bool {
	if n <= len(known) {
		return known[:n]
	}
	out := make([]bool, n)
	copy(out, known)
	return out
}

// BooleanArrayT is the Boolean-element array container.
type BooleanArrayT struct {
	elems []bool
	known []bool
}

// NewBooleanArray builds a BooleanArrayT with n unknown slots.
func NewBooleanArray(n int) *BooleanArrayT {
	return &BooleanArrayT{elems: make([]bool, n), known: make([]bool, n)}
}

func (a *BooleanArrayT) Size() int { return len(a.elems) }

func (a *BooleanArrayT) Resize(n int) {
	if n <= len(a.elems) {
		a.elems = a.elems[:n]
	} else {
		grown := make([]bool, n)
		copy(grown, a.elems)
		a.elems = grown
	}
	a.known = resizeKnownFlags(a.known, n)
}

func (a *BooleanArrayT) KnownAt(i int) bool {
	return i >= 0 && i < len(a.known) && a.known[i]
}

func (a *BooleanArrayT) SetUnknownAt(i int) {
	if i >= 0 && i < len(a.known) {
		a.known[i] = false
	}
}

func (a *BooleanArrayT) AllKnown() bool {
	for _, k := range a.known {
		if !k {
			return false
		}
	}
	return true
}

func (a *BooleanArrayT) AnyKnown() bool {
	for _, k := range a.known {
		if k {
			return true
		}
	}
	return false
}

func (a *BooleanArrayT) ElementType() ValueType { return Boolean }

func (a *BooleanArrayT) GetValue(i int) Value {
	if !a.KnownAt(i) {
		return UnknownValue(Boolean)
	}
	return BoolValue(a.elems[i])
}

func (a *BooleanArrayT) SetValue(i int, v Value) bool {
	if i < 0 || i >= len(a.elems) || v.Type() != Boolean {
		return false
	}
	if !v.IsKnown() {
		a.known[i] = false
		return true
	}
	b, _ := v.BoolVal()
	a.elems[i] = b
	a.known[i] = true
	return true
}

func (a *BooleanArrayT) Clone() Array {
	out := &BooleanArrayT{elems: make([]bool, len(a.elems)), known: make([]bool, len(a.known))}
	copy(out.elems, a.elems)
	copy(out.known, a.known)
	return out
}

func (a *BooleanArrayT) String() string {
	return joinElements(len(a.elems), func(i int) string { return a.GetValue(i).String() })
}

// IntegerArrayT is the Integer-element array container.
type IntegerArrayT struct {
	elems []int64
	known []bool
}

// NewIntegerArray builds an IntegerArrayT with n unknown slots.
func NewIntegerArray(n int) *IntegerArrayT {
	return &IntegerArrayT{elems: make([]int64, n), known: make([]bool, n)}
}

func (a *IntegerArrayT) Size() int { return len(a.elems) }

func (a *IntegerArrayT) Resize(n int) {
	if n <= len(a.elems) {
		a.elems = a.elems[:n]
	} else {
		grown := make([]int64, n)
		copy(grown, a.elems)
		a.elems = grown
	}
	a.known = resizeKnownFlags(a.known, n)
}

func (a *IntegerArrayT) KnownAt(i int) bool {
	return i >= 0 && i < len(a.known) && a.known[i]
}

func (a *IntegerArrayT) SetUnknownAt(i int) {
	if i >= 0 && i < len(a.known) {
		a.known[i] = false
	}
}

func (a *IntegerArrayT) AllKnown() bool {
	for _, k := range a.known {
		if !k {
			return false
		}
	}
	return true
}

func (a *IntegerArrayT) AnyKnown() bool {
	for _, k := range a.known {
		if k {
			return true
		}
	}
	return false
}

func (a *IntegerArrayT) ElementType() ValueType { return Integer }

func (a *IntegerArrayT) GetValue(i int) Value {
	if !a.KnownAt(i) {
		return UnknownValue(Integer)
	}
	return IntValue(a.elems[i])
}

func (a *IntegerArrayT) SetValue(i int, v Value) bool {
	if i < 0 || i >= len(a.elems) || v.Type() != Integer {
		return false
	}
	if !v.IsKnown() {
		a.known[i] = false
		return true
	}
	n, _ := v.IntVal()
	a.elems[i] = n
	a.known[i] = true
	return true
}

func (a *IntegerArrayT) Clone() Array {
	out := &IntegerArrayT{elems: make([]int64, len(a.elems)), known: make([]bool, len(a.known))}
	copy(out.elems, a.elems)
	copy(out.known, a.known)
	return out
}

func (a *IntegerArrayT) String() string {
	return joinElements(len(a.elems), func(i int) string { return a.GetValue(i).String() })
}

// RealArrayT is the Real-element array container.
type RealArrayT struct {
	elems []float64
	known []bool
}

// NewRealArray builds a RealArrayT with n unknown slots.
func NewRealArray(n int) *RealArrayT {
	return &RealArrayT{elems: make([]float64, n), known: make([]bool, n)}
}

func (a *RealArrayT) Size() int { return len(a.elems) }

func (a *RealArrayT) Resize(n int) {
	if n <= len(a.elems) {
		a.elems = a.elems[:n]
	} else {
		grown := make([]float64, n)
		copy(grown, a.elems)
		a.elems = grown
	}
	a.known = resizeKnownFlags(a.known, n)
}

func (a *RealArrayT) KnownAt(i int) bool {
	return i >= 0 && i < len(a.known) && a.known[i]
}

func (a *RealArrayT) SetUnknownAt(i int) {
	if i >= 0 && i < len(a.known) {
		a.known[i] = false
	}
}

func (a *RealArrayT) AllKnown() bool {
	for _, k := range a.known {
		if !k {
			return false
		}
	}
	return true
}

func (a *RealArrayT) AnyKnown() bool {
	for _, k := range a.known {
		if k {
			return true
		}
	}
	return false
}

func (a *RealArrayT) ElementType() ValueType { return Real }

func (a *RealArrayT) GetValue(i int) Value {
	if !a.KnownAt(i) {
		return UnknownValue(Real)
	}
	return RealValue(a.elems[i])
}

func (a *RealArrayT) SetValue(i int, v Value) bool {
	if i < 0 || i >= len(a.elems) || !v.Type().IsNumeric() {
		return false
	}
	if !v.IsKnown() {
		a.known[i] = false
		return true
	}
	r, _ := v.RealVal()
	a.elems[i] = r
	a.known[i] = true
	return true
}

func (a *RealArrayT) Clone() Array {
	out := &RealArrayT{elems: make([]float64, len(a.elems)), known: make([]bool, len(a.known))}
	copy(out.elems, a.elems)
	copy(out.known, a.known)
	return out
}

func (a *RealArrayT) String() string {
	return joinElements(len(a.elems), func(i int) string { return a.GetValue(i).String() })
}

// StringArrayT is the String-element array container.
type StringArrayT struct {
	elems []string
	known []bool
}

// NewStringArray builds a StringArrayT with n unknown slots.
func NewStringArray(n int) *StringArrayT {
	return &StringArrayT{elems: make([]string, n), known: make([]bool, n)}
}

func (a *StringArrayT) Size() int { return len(a.elems) }

func (a *StringArrayT) Resize(n int) {
	if n <= len(a.elems) {
		a.elems = a.elems[:n]
	} else {
		grown := make([]string, n)
		copy(grown, a.elems)
		a.elems = grown
	}
	a.known = resizeKnownFlags(a.known, n)
}

func (a *StringArrayT) KnownAt(i int) bool {
	return i >= 0 && i < len(a.known) && a.known[i]
}

func (a *StringArrayT) SetUnknownAt(i int) {
	if i >= 0 && i < len(a.known) {
		a.known[i] = false
	}
}

func (a *StringArrayT) AllKnown() bool {
	for _, k := range a.known {
		if !k {
			return false
		}
	}
	return true
}

func (a *StringArrayT) AnyKnown() bool {
	for _, k := range a.known {
		if k {
			return true
		}
	}
	return false
}

func (a *StringArrayT) ElementType() ValueType { return String }

func (a *StringArrayT) GetValue(i int) Value {
	if !a.KnownAt(i) {
		return UnknownValue(String)
	}
	return StringValue(a.elems[i])
}

func (a *StringArrayT) SetValue(i int, v Value) bool {
	if i < 0 || i >= len(a.elems) || v.Type() != String {
		return false
	}
	if !v.IsKnown() {
		a.known[i] = false
		return true
	}
	s, _ := v.StrVal()
	a.elems[i] = s
	a.known[i] = true
	return true
}

func (a *StringArrayT) Clone() Array {
	out := &StringArrayT{elems: make([]string, len(a.elems)), known: make([]bool, len(a.known))}
	copy(out.elems, a.elems)
	copy(out.known, a.known)
	return out
}

func (a *StringArrayT) String() string {
	return joinElements(len(a.elems), func(i int) string {
		if !a.KnownAt(i) {
			return "UNKNOWN"
		}
		return "\"" + a.elems[i] + "\""
	})
}

// NewArrayOf builds an empty (all-unknown) Array of n slots for the given
// element ValueType.
func NewArrayOf(elemType ValueType, n int) Array {
	switch elemType {
	case Boolean:
		return NewBooleanArray(n)
	case Integer:
		return NewIntegerArray(n)
	case Real, Date, Duration:
		return NewRealArray(n)
	case String:
		return NewStringArray(n)
	default:
		return nil
	}
}

// ArrayValueType maps an array element ValueType to its array-of-T ValueType tag.
func ArrayValueType(elemType ValueType) ValueType {
	switch elemType {
	case Boolean:
		return BooleanArray
	case Integer:
		return IntegerArray
	case Real, Date, Duration:
		return RealArray
	case String:
		return StringArray
	default:
		return ArrayType
	}
}
