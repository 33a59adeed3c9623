// Package connector resolves the named variable/node references an AST
// intake produces into live Expression/Assignable instances, the way
// germtb-goli's Owner resolves reactive primitives against the current
// root. A NodeConnector is scoped per plan node; library node calls chain
// connectors so an inner node's unresolved names fall through to its
// caller's bindings.
package connector

import "github.com/plexcore/exprgraph"

// NodeConnector resolves a name to the Expression bound to it within a
// node's scope, per spec.md §4.9.
type NodeConnector interface {
	Resolve(name string) (exprgraph.Expression, bool)
}

// Map is an in-memory NodeConnector backed by a plain map, optionally
// falling through to a parent connector for names it does not bind
// itself (mirroring how a library-node call's formal parameters shadow,
// but do not hide, the caller's own bindings for names it does not use).
type Map struct {
	bindings map[string]exprgraph.Expression
	parent   NodeConnector
}

// NewMap builds an empty Map, optionally chained to parent.
func NewMap(parent NodeConnector) *Map {
	return &Map{bindings: make(map[string]exprgraph.Expression), parent: parent}
}

// Bind registers name to resolve to expr in this scope.
func (m *Map) Bind(name string, expr exprgraph.Expression) {
	m.bindings[name] = expr
}

// Resolve looks up name in this scope, falling through to the parent
// connector (if any) when unbound here.
func (m *Map) Resolve(name string) (exprgraph.Expression, bool) {
	if expr, ok := m.bindings[name]; ok {
		return expr, true
	}
	if m.parent != nil {
		return m.parent.Resolve(name)
	}
	return nil, false
}

// Names returns the names bound directly in this scope (not including
// the parent chain), for diagnostics.
func (m *Map) Names() []string {
	names := make([]string, 0, len(m.bindings))
	for n := range m.bindings {
		names = append(names, n)
	}
	return names
}
