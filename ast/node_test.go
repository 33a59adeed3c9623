package ast

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

func TestDecode_RejectsInvalidJSON(t *testing.T) {
	if _, err := Decode([]byte("not json")); err == nil {
		t.Error("expected an error decoding malformed JSON")
	}
}

func TestDecode_RequiresClassField(t *testing.T) {
	if _, err := Decode([]byte(`{"name":"x"}`)); err == nil {
		t.Error("expected an error for a node missing \"class\"")
	}
}

func TestDecode_ParsesLeafNode(t *testing.T) {
	n, err := Decode([]byte(`{"class":"Constant","name":"c","type":"Integer","value":"3"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.Class != "Constant" || n.Name != "c" || n.Type != "Integer" || n.Value != "3" {
		t.Errorf("unexpected node: %+v", n)
	}
	if len(n.Args) != 0 {
		t.Errorf("expected no args, got %d", len(n.Args))
	}
}

func TestDecode_ParsesNestedArgs(t *testing.T) {
	n, err := Decode([]byte(`{
		"class":"Function:ADD",
		"name":"sum",
		"type":"Integer",
		"args":[
			{"class":"Constant","type":"Integer","value":"1"},
			{"class":"Constant","type":"Integer","value":"2"}
		]
	}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(n.Args) != 2 {
		t.Fatalf("expected 2 args, got %d", len(n.Args))
	}
	if n.Args[0].Value != "1" || n.Args[1].Value != "2" {
		t.Errorf("unexpected arg values: %+v", n.Args)
	}
}

func TestDecode_ParsesLookupParams(t *testing.T) {
	n, err := Decode([]byte(`{
		"class":"LookupNow",
		"name":"lk",
		"type":"Real",
		"params":[{"class":"Constant","type":"String","value":"rover1"}]
	}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(n.Params) != 1 || n.Params[0].Value != "rover1" {
		t.Errorf("unexpected params: %+v", n.Params)
	}
}

func TestEncodeDecode_RoundTrips(t *testing.T) {
	original := &Node{
		Class: "Function:ADD",
		Name:  "sum",
		Type:  "Integer",
		Args: []Node{
			{Class: "Constant", Type: "Integer", Value: "1"},
			{Class: "Constant", Type: "Integer", Value: "2"},
		},
	}
	encoded, err := Encode(original)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	decoded, err := Decode(encoded)
	if err != nil {
		t.Fatalf("unexpected error decoding own output: %v", err)
	}
	if decoded.Class != original.Class || decoded.Name != original.Name || decoded.Type != original.Type {
		t.Errorf("round trip mismatch: got %+v, want %+v", decoded, original)
	}
	if len(decoded.Args) != len(original.Args) {
		t.Fatalf("expected %d args, got %d", len(original.Args), len(decoded.Args))
	}
	for i := range original.Args {
		if decoded.Args[i].Value != original.Args[i].Value {
			t.Errorf("arg %d mismatch: got %+v, want %+v", i, decoded.Args[i], original.Args[i])
		}
	}
}

func TestEncode_MatchesSnapshot(t *testing.T) {
	n := &Node{
		Class: "LookupOnChange",
		Name:  "battery",
		Type:  "Real",
		Params: []Node{
			{Class: "Constant", Type: "String", Value: "rover1"},
		},
	}
	encoded, err := Encode(n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	snaps.MatchSnapshot(t, "battery_lookup_node", string(encoded))
}
