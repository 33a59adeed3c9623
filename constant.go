package exprgraph

// Constant is an immutable leaf expression. It reports IsConstant() true,
// IsAssignable() false, and never changes value. A Constant with no
// assigned value reports unknown forever. Constants ignore
// Activate/Deactivate (there is nothing to walk and nothing that could
// ever need publishing) but remain legal to listen to, per spec.md §4.2.
type Constant struct {
	Notifier
	name  string
	value Value
}

// NewConstant builds a Constant carrying value v.
func NewConstant(name string, v Value) *Constant {
	return &Constant{Notifier: NewNotifier(false), name: name, value: v}
}

// Boolean constant singletons, canonicalized per spec.md §4.2: the
// literal true, false, and unknown Boolean constants are shared.
var (
	TrueConstant   = NewConstant("true", BoolValue(true))
	FalseConstant  = NewConstant("false", BoolValue(false))
	UnknownBoolean = NewConstant("UNKNOWN", UnknownValue(Boolean))
)

func (c *Constant) Name() string       { return c.name }
func (c *Constant) ExprClass() string  { return "Constant" }
func (c *Constant) ValueType() ValueType { return c.value.Type() }
func (c *Constant) IsConstant() bool   { return true }
func (c *Constant) IsAssignable() bool { return false }
func (c *Constant) Value() Value       { return c.value }

func (c *Constant) Activate()   {}
func (c *Constant) Deactivate() {}

// IsActive always reports true: constants are "always-active-equivalent"
// per spec.md §4.2 and never depend on an owner's activation state.
func (c *Constant) IsActive() bool { return true }

func (c *Constant) Subexpressions(func(Expression)) {}

// NotifyChanged is a no-op: a Constant is never itself a listener that
// needs to react to anything, but it must satisfy Listener to be usable
// anywhere an Expression is expected.
func (c *Constant) NotifyChanged(Expression) {}
