// Package list bridges value trees and the flat, mixed-type lists that script
// callers pass around.
package list

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

// Kind identifies the host type of an Element.
type Kind uint8

const (
	KindInteger Kind = iota
	KindFloat
	KindString
	KindKey
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindKey:
		return "key"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Element is one entry of a host list.
type Element struct {
	kind Kind
	i    int32
	f    float64
	s    string
	key  uuid.UUID
}

func Integer(n int32) Element { return Element{kind: KindInteger, i: n} }

func Float(f float64) Element { return Element{kind: KindFloat, f: f} }

func String(s string) Element { return Element{kind: KindString, s: s} }

// Key wraps an opaque identifier.
func Key(id uuid.UUID) Element { return Element{kind: KindKey, key: id} }

func (e Element) Kind() Kind { return e.kind }

func (e Element) AsInteger() (int32, bool) { return e.i, e.kind == KindInteger }

func (e Element) AsFloat() (float64, bool) { return e.f, e.kind == KindFloat }

func (e Element) AsString() (string, bool) { return e.s, e.kind == KindString }

func (e Element) AsKey() (uuid.UUID, bool) { return e.key, e.kind == KindKey }

// Text is the element's string form as a script would see it after a cast.
func (e Element) Text() string {
	switch e.kind {
	case KindInteger:
		return strconv.FormatInt(int64(e.i), 10)
	case KindFloat:
		return strconv.FormatFloat(e.f, 'f', 6, 64)
	case KindKey:
		return e.key.String()
	default:
		return e.s
	}
}

func (e Element) Equal(other Element) bool {
	if e.kind != other.kind {
		return false
	}
	switch e.kind {
	case KindInteger:
		return e.i == other.i
	case KindFloat:
		return e.f == other.f
	case KindKey:
		return e.key == other.key
	default:
		return e.s == other.s
	}
}

func (e Element) GoString() string {
	switch e.kind {
	case KindInteger:
		return fmt.Sprintf("Integer(%d)", e.i)
	case KindFloat:
		return fmt.Sprintf("Float(%g)", e.f)
	case KindKey:
		return fmt.Sprintf("Key(%s)", e.key)
	default:
		return fmt.Sprintf("String(%q)", e.s)
	}
}

func (e Element) String() string { return e.GoString() }

// Equal compares two lists element-wise.
func Equal(a, b []Element) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
