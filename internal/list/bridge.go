package list

import (
	"errors"
	"fmt"
	"math"

	"github.com/jacoelho/jsonlist/internal/path"
	"github.com/jacoelho/jsonlist/internal/render"
	"github.com/jacoelho/jsonlist/internal/sentinel"
	"github.com/jacoelho/jsonlist/internal/sniff"
	"github.com/jacoelho/jsonlist/internal/value"
)

var (
	// ErrShape indicates an unknown target shape token.
	ErrShape = errors.New("list: unknown shape")

	// ErrOddLength indicates an object list without a value for its last key.
	ErrOddLength = errors.New("list: object list needs key/value pairs")

	// ErrKeyType indicates an object key element that is not text.
	ErrKeyType = errors.New("list: object key must be a string")

	// ErrPathElement indicates a list element that is not a valid path step.
	ErrPathElement = errors.New("list: invalid path element")

	// ErrTooDeep indicates an element nested so deep that the built container
	// would exceed sniff.MaxDepth.
	ErrTooDeep = errors.New("list: element nested too deep")

	// ErrReserved indicates an element or key equal to the invalid token.
	ErrReserved = errors.New("list: element holds the invalid token")
)

// Shape is the container FromList builds.
type Shape uint8

const (
	ShapeArray Shape = iota
	ShapeObject
)

// ParseShape maps the reserved array/object tokens to a Shape.
func ParseShape(token string) (Shape, error) {
	switch token {
	case sentinel.Array:
		return ShapeArray, nil
	case sentinel.Object:
		return ShapeObject, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrShape, token)
	}
}

// ToList flattens one level of v. A scalar becomes a single element; array
// items become elements; object members become key, value pairs. Nested
// containers are carried as JSON text.
func ToList(v value.Value) []Element {
	switch v.Kind() {
	case value.KindArray:
		items, _ := v.Items()
		out := make([]Element, 0, len(items))
		for _, item := range items {
			out = append(out, Flat(item))
		}
		return out
	case value.KindObject:
		obj, _ := v.Object()
		out := make([]Element, 0, 2*obj.Len())
		for _, m := range obj.Members() {
			out = append(out, String(m.Key), Flat(m.Value))
		}
		return out
	default:
		return []Element{Flat(v)}
	}
}

// Flat converts a single value to a list element.
func Flat(v value.Value) Element {
	switch v.Kind() {
	case value.KindInt:
		n, _ := v.AsInt()
		if n < math.MinInt32 || n > math.MaxInt32 {
			return Float(float64(n))
		}
		return Integer(int32(n))
	case value.KindReal:
		f, _ := v.AsReal()
		return Float(f)
	case value.KindStr:
		s, _ := v.AsStr()
		return String(s)
	case value.KindArray, value.KindObject:
		return String(render.Nested(v))
	default:
		return String(render.Scalar(v))
	}
}

// FromList builds a container of the given shape. String elements are
// sniffed, so "12" becomes a number and "[1]" a nested array.
func FromList(shape Shape, elems []Element) (value.Value, error) {
	v, err := build(shape, elems)
	if err != nil {
		return value.Value{}, err
	}
	if v.Depth() > sniff.MaxDepth {
		return value.Value{}, ErrTooDeep
	}
	if v.HasText(sentinel.Invalid) {
		return value.Value{}, ErrReserved
	}
	return v, nil
}

func build(shape Shape, elems []Element) (value.Value, error) {
	switch shape {
	case ShapeArray:
		items := make([]value.Value, 0, len(elems))
		for _, e := range elems {
			items = append(items, toValue(e))
		}
		return value.Array(items...), nil
	case ShapeObject:
		if len(elems)%2 != 0 {
			return value.Value{}, fmt.Errorf("%w: got %d elements", ErrOddLength, len(elems))
		}
		obj := value.NewObject()
		for i := 0; i < len(elems); i += 2 {
			key, err := keyText(elems[i])
			if err != nil {
				return value.Value{}, fmt.Errorf("element %d: %w", i, err)
			}
			obj.Set(key, toValue(elems[i+1]))
		}
		return value.FromObject(obj), nil
	default:
		return value.Value{}, fmt.Errorf("%w: %d", ErrShape, shape)
	}
}

func toValue(e Element) value.Value {
	switch e.kind {
	case KindInteger:
		return value.Int(int64(e.i))
	case KindFloat:
		return value.Real(e.f)
	case KindKey:
		return value.Str(e.key.String())
	default:
		return sniff.SniffOrString(e.s)
	}
}

func keyText(e Element) (string, error) {
	switch e.kind {
	case KindString:
		return e.s, nil
	case KindKey:
		return e.key.String(), nil
	default:
		return "", fmt.Errorf("%w, got %s", ErrKeyType, e.kind)
	}
}

// Path converts list elements to path steps: non-negative integers are
// indexes, sentinel.Append is the append marker, text is an object key.
func Path(elems []Element) ([]path.Specifier, error) {
	out := make([]path.Specifier, 0, len(elems))
	for i, e := range elems {
		switch e.kind {
		case KindInteger:
			switch {
			case e.i == sentinel.Append:
				out = append(out, path.Append)
			case e.i >= 0:
				out = append(out, path.Index(int(e.i)))
			default:
				return nil, fmt.Errorf("%w at %d: negative index %d", ErrPathElement, i, e.i)
			}
		case KindString:
			out = append(out, path.Key(e.s))
		case KindKey:
			out = append(out, path.Key(e.key.String()))
		default:
			return nil, fmt.Errorf("%w at %d: %s", ErrPathElement, i, e.kind)
		}
	}
	return out, nil
}
