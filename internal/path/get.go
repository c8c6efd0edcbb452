package path

import (
	"github.com/jacoelho/jsonlist/internal/sniff"
	"github.com/jacoelho/jsonlist/internal/value"
)

// MaxDepth bounds the number of steps in a path.
const MaxDepth = sniff.MaxDepth

// Get follows p from root without modifying anything. Wrong container kinds,
// missing keys, out of range indexes and the append marker all yield
// ErrNotFound; an explicit null at the end of the path is returned as Null.
func Get(root value.Value, p []Specifier) (value.Value, error) {
	if len(p) > MaxDepth {
		return value.Value{}, ErrTooLong
	}

	current := root
	for depth, step := range p {
		switch step.kind {
		case stepIndex:
			items, ok := current.Items()
			if !ok || step.index < 0 || step.index >= len(items) {
				return value.Value{}, stepError(ErrNotFound, p, depth)
			}
			current = items[step.index]
		case stepKey:
			obj, ok := current.Object()
			if !ok {
				return value.Value{}, stepError(ErrNotFound, p, depth)
			}
			child, ok := obj.Get(step.key)
			if !ok {
				return value.Value{}, stepError(ErrNotFound, p, depth)
			}
			current = child
		default:
			return value.Value{}, stepError(ErrNotFound, p, depth)
		}
	}

	return current, nil
}
