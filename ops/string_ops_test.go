package ops

import (
	"testing"

	"github.com/plexcore/exprgraph"
)

func TestConcat_JoinsArguments(t *testing.T) {
	got := Concat.Apply([]exprgraph.Value{exprgraph.StringValue("foo"), exprgraph.StringValue("bar")})
	s, known := got.StrVal()
	if !known || s != "foobar" {
		t.Errorf("expected \"foobar\", got %q known=%v", s, known)
	}
}

func TestConcat_UnknownArgumentIsUnknown(t *testing.T) {
	got := Concat.Apply([]exprgraph.Value{exprgraph.StringValue("foo"), exprgraph.UnknownValue(exprgraph.String)})
	if got.IsKnown() {
		t.Error("expected unknown when any argument is unknown")
	}
}

func TestStrlen_CountsRunes(t *testing.T) {
	got := Strlen.Apply([]exprgraph.Value{exprgraph.StringValue("héllo")})
	v, known := got.IntVal()
	if !known || v != 5 {
		t.Errorf("expected 5, got %v known=%v", v, known)
	}
}
