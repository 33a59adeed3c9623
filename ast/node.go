// Package ast decodes the JSON-shaped AST intake format described in
// spec.md §6: a tree of {class, name, type, value, args} nodes that a
// plan parser walks to construct the live expression graph. Decoding
// uses gjson for its no-allocation-on-miss path walking; the package's
// debug re-encode path uses sjson to build JSON without hand-rolled
// string concatenation.
package ast

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Node is one AST-intake node. Class names the expression kind
// ("Constant", "Variable", "ArrayVariable", "ArrayReference", "Alias",
// "Function:ADD", "LookupNow", "LookupOnChange", ...); Type is the
// declared ValueType name; Value carries a literal's text (per
// spec.md §6, parsed with exprgraph.ParseValue); Args holds
// subexpression nodes for composite classes.
type Node struct {
	Class    string
	Name     string
	NodeName string
	Type     string
	Value    string
	Params   []Node // State parameters for Lookup* classes
	Args     []Node
}

// Decode parses a single JSON AST-intake node from data.
func Decode(data []byte) (*Node, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("ast: invalid JSON")
	}
	root := gjson.ParseBytes(data)
	return decodeValue(root)
}

func decodeValue(v gjson.Result) (*Node, error) {
	if !v.IsObject() {
		return nil, fmt.Errorf("ast: expected object, got %s", v.Type)
	}
	n := &Node{
		Class:    v.Get("class").String(),
		Name:     v.Get("name").String(),
		NodeName: v.Get("nodeName").String(),
		Type:     v.Get("type").String(),
		Value:    v.Get("value").String(),
	}
	if n.Class == "" {
		return nil, fmt.Errorf("ast: node missing required \"class\" field")
	}
	for _, argVal := range v.Get("args").Array() {
		arg, err := decodeValue(argVal)
		if err != nil {
			return nil, fmt.Errorf("ast: decoding arg of %q: %w", n.Class, err)
		}
		n.Args = append(n.Args, *arg)
	}
	for _, paramVal := range v.Get("params").Array() {
		param, err := decodeValue(paramVal)
		if err != nil {
			return nil, fmt.Errorf("ast: decoding param of %q: %w", n.Class, err)
		}
		n.Params = append(n.Params, *param)
	}
	return n, nil
}

// Encode renders n back to JSON, primarily for debug dumps and golden-file
// snapshot comparisons.
func Encode(n *Node) ([]byte, error) {
	json := `{}`
	var err error
	set := func(path, value string) {
		if err != nil || value == "" {
			return
		}
		json, err = sjson.Set(json, path, value)
	}
	set("class", n.Class)
	set("name", n.Name)
	set("nodeName", n.NodeName)
	set("type", n.Type)
	set("value", n.Value)
	if err != nil {
		return nil, err
	}
	for i, arg := range n.Args {
		encodedArg, aerr := Encode(&arg)
		if aerr != nil {
			return nil, aerr
		}
		json, err = sjson.SetRaw(json, fmt.Sprintf("args.%d", i), string(encodedArg))
		if err != nil {
			return nil, err
		}
	}
	for i, p := range n.Params {
		encodedParam, perr := Encode(&p)
		if perr != nil {
			return nil, perr
		}
		json, err = sjson.SetRaw(json, fmt.Sprintf("params.%d", i), string(encodedParam))
		if err != nil {
			return nil, err
		}
	}
	return []byte(json), nil
}
