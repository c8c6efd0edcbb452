// Package binding is the script-facing surface of the value engine. Every
// entry point takes text and list arguments, parses a fresh tree, and answers
// with text or a list. Failures of any kind come back as sentinel.Invalid.
package binding

import (
	"errors"
	"strings"

	"github.com/jacoelho/jsonlist/internal/list"
	"github.com/jacoelho/jsonlist/internal/path"
	"github.com/jacoelho/jsonlist/internal/render"
	"github.com/jacoelho/jsonlist/internal/sentinel"
	"github.com/jacoelho/jsonlist/internal/sniff"
	"github.com/jacoelho/jsonlist/internal/value"
)

// ErrReserved indicates a document or literal holding the invalid token as a
// string or key, which could not be told apart from a failure once returned.
var ErrReserved = errors.New("binding: value holds the invalid token")

// GetValue returns the value at p in doc, rendered for a single-string caller.
func GetValue(doc string, p []list.Element) string {
	v, err := Get(doc, p)
	if err != nil {
		return sentinel.Invalid
	}
	return render.Scalar(v)
}

// SetValue returns doc with literal installed at p, or the element at p
// removed when literal is sentinel.Delete.
func SetValue(doc string, p []list.Element, literal string) string {
	v, err := Set(doc, p, literal)
	if err != nil {
		return sentinel.Invalid
	}
	return render.Nested(v)
}

// ValueType names the kind of value at p with one of the reserved type tokens.
func ValueType(doc string, p []list.Element) string {
	v, err := Get(doc, p)
	if err != nil {
		return sentinel.Invalid
	}
	return TypeToken(v)
}

// ListToJSON builds JSON text from a flat list. shape is sentinel.Array or
// sentinel.Object.
func ListToJSON(shape string, elems []list.Element) string {
	s, err := list.ParseShape(shape)
	if err != nil {
		return sentinel.Invalid
	}
	v, err := list.FromList(s, elems)
	if err != nil {
		return sentinel.Invalid
	}
	return render.Nested(v)
}

// JSONToList flattens one level of doc. Text that is not JSON-like comes back
// as a single string element; empty text gives an empty list.
func JSONToList(doc string) []list.Element {
	if strings.TrimSpace(doc) == "" {
		return []list.Element{}
	}
	v, err := parse(doc)
	if errors.Is(err, ErrReserved) {
		return []list.Element{list.String(sentinel.Invalid)}
	}
	if err != nil {
		return []list.Element{list.String(doc)}
	}
	return list.ToList(v)
}

// Get parses doc and resolves p without modifying anything.
func Get(doc string, p []list.Element) (value.Value, error) {
	root, err := parse(doc)
	if err != nil {
		return value.Value{}, err
	}
	steps, err := list.Path(p)
	if err != nil {
		return value.Value{}, err
	}
	return path.Get(root, steps)
}

// Set parses doc, applies the mutation and returns the new root. Empty doc
// starts from null so that a path can build a document from nothing.
func Set(doc string, p []list.Element, literal string) (value.Value, error) {
	root, err := parse(doc)
	if errors.Is(err, sniff.ErrEmpty) {
		root, err = value.Null(), nil
	}
	if err != nil {
		return value.Value{}, err
	}
	steps, err := list.Path(p)
	if err != nil {
		return value.Value{}, err
	}
	if literal == sentinel.Delete {
		return path.Delete(root, steps)
	}
	v, err := path.Set(root, steps, literal)
	if err != nil {
		return value.Value{}, err
	}
	// covers the literal and any new key taken from p
	if v.HasText(sentinel.Invalid) {
		return value.Value{}, ErrReserved
	}
	return v, nil
}

// parse sniffs doc, refusing documents that carry the invalid token.
func parse(doc string) (value.Value, error) {
	v, err := sniff.Sniff(doc)
	if err != nil {
		return value.Value{}, err
	}
	if v.HasText(sentinel.Invalid) {
		return value.Value{}, ErrReserved
	}
	return v, nil
}

// TypeToken maps a value kind to its reserved type token.
func TypeToken(v value.Value) string {
	switch v.Kind() {
	case value.KindNull:
		return sentinel.Null
	case value.KindBool:
		b, _ := v.AsBool()
		return render.BoolToken(b)
	case value.KindInt, value.KindReal:
		return sentinel.Number
	case value.KindStr:
		return sentinel.String
	case value.KindArray:
		return sentinel.Array
	case value.KindObject:
		return sentinel.Object
	default:
		return sentinel.Invalid
	}
}
