package exprgraph

// MutableArrayRef is the writable variant of ArrayRef: it proxies reads
// and writes to one element of an underlying ArrayVariable by index. Per
// spec.md §4.5, save/restore capture the index at save time, so a restore
// writes back to that index even if the live index has since changed.
type MutableArrayRef struct {
	ArrayRef
	savedIdx   int
	savedVal   Value
	savedValid bool
}

// NewMutableArrayRef builds a writable array element reference. array must
// resolve (directly or through an InOutAlias) to an *ArrayVariable at Value-
// mutation time; this is checked lazily, matching spec.md's "peeling
// proxies to the underlying storage" description of BaseVariable.
func NewMutableArrayRef(name, nodeName string, array, index Expression) *MutableArrayRef {
	return &MutableArrayRef{
		ArrayRef: ArrayRef{Notifier: NewNotifier(false), name: name, nodeName: nodeName, array: array, index: index},
	}
}

func (m *MutableArrayRef) ExprClass() string  { return "MutableArrayReference" }
func (m *MutableArrayRef) IsAssignable() bool { return true }

// baseArrayVariable peels through aliases to find the underlying
// *ArrayVariable, matching spec.md §4.6's description of proxies not
// owning storage themselves.
func (m *MutableArrayRef) baseArrayVariable() (*ArrayVariable, error) {
	e := m.array
	for {
		if av, ok := e.(*ArrayVariable); ok {
			return av, nil
		}
		if asg, ok := e.(Assignable); ok {
			if base := asg.BaseVariable(); base != nil && base != asg {
				e = base
				continue
			}
		}
		return nil, NewPlanError(m.name, m.nodeName, m.ExprClass(), "array expression does not resolve to a mutable ArrayVariable")
	}
}

func (m *MutableArrayRef) resolveIndex() (int, error) {
	idxVal := m.index.Value()
	i, known := idxVal.IntVal()
	if !known {
		return 0, NewPlanError(m.name, m.nodeName, m.ExprClass(), "index is unknown")
	}
	return int(i), nil
}

// SetValue writes the element at the current index.
func (m *MutableArrayRef) SetValue(v Value) error {
	av, err := m.baseArrayVariable()
	if err != nil {
		return err
	}
	idx, err := m.resolveIndex()
	if err != nil {
		return err
	}
	return av.SetElement(idx, v)
}

// SetUnknown marks the element at the current index unknown.
func (m *MutableArrayRef) SetUnknown() {
	av, err := m.baseArrayVariable()
	if err != nil {
		m.lastErr = err
		return
	}
	idx, err := m.resolveIndex()
	if err != nil {
		m.lastErr = err
		return
	}
	m.lastErr = av.SetElementUnknown(idx)
}

// SaveCurrent captures (index, value) as of now.
func (m *MutableArrayRef) SaveCurrent() {
	av, err := m.baseArrayVariable()
	if err != nil {
		m.savedValid = false
		return
	}
	idx, err := m.resolveIndex()
	if err != nil {
		m.savedValid = false
		return
	}
	m.savedIdx = idx
	m.savedVal, _ = av.GetElement(idx)
	m.savedValid = true
}

// RestoreSaved writes the saved value back to the saved index, even if
// the live index has since changed (spec.md §4.5).
func (m *MutableArrayRef) RestoreSaved() {
	if !m.savedValid {
		return
	}
	av, err := m.baseArrayVariable()
	if err != nil {
		return
	}
	_ = av.SetElement(m.savedIdx, m.savedVal)
}

func (m *MutableArrayRef) SavedValue() Value {
	if !m.savedValid {
		return UnknownValue(m.ValueType())
	}
	return m.savedVal
}

func (m *MutableArrayRef) BaseVariable() Assignable {
	if av, err := m.baseArrayVariable(); err == nil {
		return av
	}
	return m
}
