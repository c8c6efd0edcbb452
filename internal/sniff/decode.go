package sniff

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jacoelho/jsonlist/internal/stack"
	"github.com/jacoelho/jsonlist/internal/value"
)

// frame is an open container while decoding.
type frame struct {
	kind    value.Kind
	items   []value.Value
	obj     *value.Object
	key     string
	haveKey bool
}

func (f *frame) add(v value.Value) {
	if f.kind == value.KindArray {
		f.items = append(f.items, v)
		return
	}
	f.obj.Set(f.key, v)
	f.haveKey = false
}

func (f *frame) value() value.Value {
	if f.kind == value.KindArray {
		return value.Array(f.items...)
	}
	return value.FromObject(f.obj)
}

// decodeContainer reads a JSON array or object from s. Containers are
// tracked on a bounded stack instead of the call stack, so hostile nesting
// ends in ErrTooDeep rather than stack growth.
func decodeContainer(s string) (value.Value, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()

	frames := stack.NewBounded[frame](MaxDepth)

	for {
		tok, err := dec.Token()
		if err != nil {
			return value.Value{}, fmt.Errorf("%w: %v", ErrSyntax, err)
		}

		var current value.Value
		switch t := tok.(type) {
		case json.Delim:
			switch t {
			case '[':
				if err := frames.Push(frame{kind: value.KindArray}); err != nil {
					return value.Value{}, ErrTooDeep
				}
				continue
			case '{':
				if err := frames.Push(frame{kind: value.KindObject, obj: value.NewObject()}); err != nil {
					return value.Value{}, ErrTooDeep
				}
				continue
			default:
				closed, _ := frames.Pop()
				current = closed.value()
			}
		case string:
			if top := frames.PeekRef(); top != nil && top.kind == value.KindObject && !top.haveKey {
				top.key = t
				top.haveKey = true
				continue
			}
			current = value.Str(t)
		case json.Number:
			if current, err = parseNumber(t); err != nil {
				return value.Value{}, err
			}
		case bool:
			current = value.Bool(t)
		case nil:
			current = value.Null()
		default:
			return value.Value{}, fmt.Errorf("%w: unexpected token %v", ErrSyntax, tok)
		}

		top := frames.PeekRef()
		if top == nil {
			if _, err := dec.Token(); !errors.Is(err, io.EOF) {
				return value.Value{}, fmt.Errorf("%w: trailing data after %s", ErrSyntax, current.Kind())
			}
			return current, nil
		}
		top.add(current)
	}
}

// parseNumber keeps integer literals as 64-bit Int so that documents pass
// through a mutation unchanged. Wider integers become Real; numbers beyond
// the float range are rejected.
func parseNumber(n json.Number) (value.Value, error) {
	s := string(n)
	if !strings.ContainsAny(s, ".eE") {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return value.Int(i), nil
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return value.Value{}, fmt.Errorf("%w: number %s out of range", ErrSyntax, truncate(s))
	}
	return value.Real(f), nil
}
