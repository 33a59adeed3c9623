// Package lookup implements the external Interface-backed state cache:
// State identity, LookupNow/LookupOnChange expressions, tolerance-based
// subscription thresholds, and an in-memory reference Interface for tests
// and examples, per spec.md §4.8 and §6.
package lookup

import (
	"strings"

	"github.com/plexcore/exprgraph"
)

// State identifies an external state by name and parameter values, e.g.
// "battery_level" or "distance(rover1, rover2)".
type State struct {
	Name   string
	Params []exprgraph.Value
}

// NewState builds a State with the given name and parameters.
func NewState(name string, params ...exprgraph.Value) State {
	return State{Name: name, Params: append([]exprgraph.Value(nil), params...)}
}

// Key renders a canonical cache key for this state. Two States with the
// same name and Same (bitwise-equal) parameters render identically.
func (s State) Key() string {
	var b strings.Builder
	b.WriteString(s.Name)
	for _, p := range s.Params {
		b.WriteByte('|')
		b.WriteString(p.String())
	}
	return b.String()
}

// Equal reports whether two States name the same external value.
func (s State) Equal(other State) bool {
	if s.Name != other.Name || len(s.Params) != len(other.Params) {
		return false
	}
	for i, p := range s.Params {
		if !p.Same(other.Params[i]) {
			return false
		}
	}
	return true
}
