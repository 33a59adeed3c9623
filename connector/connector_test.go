package connector

import (
	"testing"

	"github.com/plexcore/exprgraph"
)

func TestMap_ResolvesOwnBinding(t *testing.T) {
	m := NewMap(nil)
	c := exprgraph.NewConstant("c", exprgraph.IntValue(42))
	m.Bind("x", c)

	got, ok := m.Resolve("x")
	if !ok || got != c {
		t.Fatalf("expected x to resolve to bound constant, got %v ok=%v", got, ok)
	}
}

func TestMap_UnboundNameFails(t *testing.T) {
	m := NewMap(nil)
	if _, ok := m.Resolve("missing"); ok {
		t.Error("expected unbound name to fail resolution")
	}
}

func TestMap_FallsThroughToParent(t *testing.T) {
	parent := NewMap(nil)
	parentVar := exprgraph.NewConstant("c", exprgraph.IntValue(1))
	parent.Bind("outer", parentVar)

	child := NewMap(parent)
	got, ok := child.Resolve("outer")
	if !ok || got != parentVar {
		t.Fatalf("expected child to fall through to parent binding, got %v ok=%v", got, ok)
	}
}

func TestMap_OwnBindingShadowsParent(t *testing.T) {
	parent := NewMap(nil)
	parentVar := exprgraph.NewConstant("c", exprgraph.IntValue(1))
	parent.Bind("x", parentVar)

	child := NewMap(parent)
	childVar := exprgraph.NewConstant("c", exprgraph.IntValue(2))
	child.Bind("x", childVar)

	got, ok := child.Resolve("x")
	if !ok || got != childVar {
		t.Fatalf("expected child's own binding to shadow parent's, got %v ok=%v", got, ok)
	}
}

func TestMap_NamesListsOnlyOwnBindings(t *testing.T) {
	parent := NewMap(nil)
	parent.Bind("outer", exprgraph.NewConstant("c", exprgraph.IntValue(1)))

	child := NewMap(parent)
	child.Bind("inner", exprgraph.NewConstant("c", exprgraph.IntValue(2)))

	names := child.Names()
	if len(names) != 1 || names[0] != "inner" {
		t.Errorf("expected Names() to list only [\"inner\"], got %v", names)
	}
}
