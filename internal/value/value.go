// Package value defines the tree model shared by the sniffer, the renderer and
// the path engine: a tagged union of null, booleans, numbers, strings, arrays
// and insertion-ordered objects.
package value

import "fmt"

// Kind identifies the active variant of a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindReal
	KindStr
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindReal:
		return "real"
	case KindStr:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Value is one node of a tree. The zero Value is Null.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	arr  []Value
	obj  *Object
}

func Null() Value { return Value{} }

func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

func Int(n int64) Value { return Value{kind: KindInt, i: n} }

func Real(f float64) Value { return Value{kind: KindReal, f: f} }

func Str(s string) Value { return Value{kind: KindStr, s: s} }

// Array builds an array value owning items.
func Array(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: KindArray, arr: items}
}

// FromObject wraps o. A nil o yields an empty object.
func FromObject(o *Object) Value {
	if o == nil {
		o = NewObject()
	}
	return Value{kind: KindObject, obj: o}
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool { return v.kind == KindNull }

// IsContainer reports whether v is an array or an object.
func (v Value) IsContainer() bool {
	return v.kind == KindArray || v.kind == KindObject
}

func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

func (v Value) AsInt() (int64, bool) { return v.i, v.kind == KindInt }

func (v Value) AsReal() (float64, bool) { return v.f, v.kind == KindReal }

func (v Value) AsStr() (string, bool) { return v.s, v.kind == KindStr }

// Items returns the array elements. The slice is owned by v and must not be
// modified by the caller.
func (v Value) Items() ([]Value, bool) { return v.arr, v.kind == KindArray }

// Object returns the object payload. It is owned by v.
func (v Value) Object() (*Object, bool) { return v.obj, v.kind == KindObject }

// Len is the number of children of a container and 0 for scalars.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindObject:
		return v.obj.Len()
	default:
		return 0
	}
}

// Depth is the number of nested container levels in v: 0 for a scalar, 1 for
// a flat array or object.
func (v Value) Depth() int {
	deepest := 0
	switch v.kind {
	case KindArray:
		for _, item := range v.arr {
			deepest = max(deepest, item.Depth())
		}
	case KindObject:
		for _, m := range v.obj.Members() {
			deepest = max(deepest, m.Value.Depth())
		}
	default:
		return 0
	}
	return deepest + 1
}

// HasText reports whether s occurs anywhere in v as a string or object key.
func (v Value) HasText(s string) bool {
	switch v.kind {
	case KindStr:
		return v.s == s
	case KindArray:
		for _, item := range v.arr {
			if item.HasText(s) {
				return true
			}
		}
	case KindObject:
		for _, m := range v.obj.Members() {
			if m.Key == s || m.Value.HasText(s) {
				return true
			}
		}
	}
	return false
}

// Equal compares two trees structurally. Object member order is significant.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindInt:
		return v.i == other.i
	case KindReal:
		return v.f == other.f
	case KindStr:
		return v.s == other.s
	case KindArray:
		if len(v.arr) != len(other.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(other.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		return v.obj.Equal(other.obj)
	default:
		return false
	}
}

// Clone returns a deep copy of v.
func (v Value) Clone() Value {
	switch v.kind {
	case KindArray:
		items := make([]Value, len(v.arr))
		for i, item := range v.arr {
			items[i] = item.Clone()
		}
		return Value{kind: KindArray, arr: items}
	case KindObject:
		return Value{kind: KindObject, obj: v.obj.Clone()}
	default:
		return v
	}
}

// GoString renders a debugging form used in test failure output.
func (v Value) GoString() string {
	switch v.kind {
	case KindNull:
		return "Null"
	case KindBool:
		return fmt.Sprintf("Bool(%t)", v.b)
	case KindInt:
		return fmt.Sprintf("Int(%d)", v.i)
	case KindReal:
		return fmt.Sprintf("Real(%g)", v.f)
	case KindStr:
		return fmt.Sprintf("Str(%q)", v.s)
	case KindArray:
		out := "Array["
		for i, item := range v.arr {
			if i > 0 {
				out += ", "
			}
			out += item.GoString()
		}
		return out + "]"
	case KindObject:
		out := "Object{"
		for i, m := range v.obj.Members() {
			if i > 0 {
				out += ", "
			}
			out += fmt.Sprintf("%q: %s", m.Key, m.Value.GoString())
		}
		return out + "}"
	default:
		return v.kind.String()
	}
}

func (v Value) String() string { return v.GoString() }
