package path

import (
	"fmt"

	"github.com/jacoelho/jsonlist/internal/sniff"
	"github.com/jacoelho/jsonlist/internal/value"
)

// mutation is what happens at the last step of a path.
type mutation struct {
	remove bool
	v      value.Value
}

// Set installs the sniffed literal at p and returns the new root. Missing
// containers along the way are created; a node whose kind does not match the
// next step is replaced by a fresh container of the right kind. Unclassifiable
// literals are stored as strings. root itself is left untouched.
func Set(root value.Value, p []Specifier, literal string) (value.Value, error) {
	return mutate(root, p, mutation{v: sniff.SniffOrString(literal)})
}

// Delete removes the element or member at p and returns the new root.
func Delete(root value.Value, p []Specifier) (value.Value, error) {
	return mutate(root, p, mutation{remove: true})
}

func mutate(root value.Value, p []Specifier, m mutation) (value.Value, error) {
	if len(p) > MaxDepth {
		return value.Value{}, ErrTooLong
	}
	// every step is a container above the new value
	if !m.remove && len(p)+m.v.Depth() > MaxDepth {
		return value.Value{}, fmt.Errorf("%w: %d steps above %d levels", ErrTooDeep, len(p), m.v.Depth())
	}
	if len(p) == 0 {
		if m.remove {
			return value.Value{}, ErrNotFound
		}
		return m.v, nil
	}
	if !root.IsNull() && !root.IsContainer() {
		return value.Value{}, ErrNotContainer
	}
	return apply(root, p, 0, m)
}

// apply treats node as the container addressed by p[depth] and returns its
// replacement.
func apply(node value.Value, p []Specifier, depth int, m mutation) (value.Value, error) {
	step := p[depth]
	if !fits(node, step) {
		node = emptyFor(step)
	}

	if step.kind == stepKey {
		return applyKey(node, p, depth, m)
	}
	return applyIndex(node, p, depth, m)
}

func applyIndex(node value.Value, p []Specifier, depth int, m mutation) (value.Value, error) {
	step := p[depth]
	items, _ := node.Items()

	index := step.index
	if step.kind == stepAppend {
		index = len(items)
	}
	if index < 0 || index > len(items) {
		return value.Value{}, stepError(ErrIndexOutOfRange, p, depth)
	}
	appending := index == len(items)

	if depth == len(p)-1 && m.remove {
		if appending {
			return value.Value{}, stepError(ErrNotFound, p, depth)
		}
		out := make([]value.Value, 0, len(items)-1)
		out = append(out, items[:index]...)
		out = append(out, items[index+1:]...)
		return value.Array(out...), nil
	}

	var child value.Value
	if depth == len(p)-1 {
		child = m.v
	} else {
		var existing value.Value
		if !appending {
			existing = items[index]
		}
		var err error
		if child, err = apply(existing, p, depth+1, m); err != nil {
			return value.Value{}, err
		}
	}

	out := make([]value.Value, len(items), len(items)+1)
	copy(out, items)
	if appending {
		out = append(out, child)
	} else {
		out[index] = child
	}
	return value.Array(out...), nil
}

func applyKey(node value.Value, p []Specifier, depth int, m mutation) (value.Value, error) {
	step := p[depth]
	obj, _ := node.Object()
	existing, present := obj.Get(step.key)

	if depth == len(p)-1 && m.remove {
		if !present {
			return value.Value{}, stepError(ErrNotFound, p, depth)
		}
		out := obj.ShallowCopy()
		out.Delete(step.key)
		return value.FromObject(out), nil
	}

	var child value.Value
	if depth == len(p)-1 {
		child = m.v
	} else {
		var err error
		if child, err = apply(existing, p, depth+1, m); err != nil {
			return value.Value{}, err
		}
	}

	out := obj.ShallowCopy()
	out.Set(step.key, child)
	return value.FromObject(out), nil
}

func fits(node value.Value, step Specifier) bool {
	if step.kind == stepKey {
		return node.Kind() == value.KindObject
	}
	return node.Kind() == value.KindArray
}

func emptyFor(step Specifier) value.Value {
	if step.kind == stepKey {
		return value.FromObject(nil)
	}
	return value.Array()
}
