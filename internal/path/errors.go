package path

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates a path that does not resolve, or a delete of
	// something that is not there.
	ErrNotFound = errors.New("path: not found")

	// ErrIndexOutOfRange indicates an array index past the append position.
	ErrIndexOutOfRange = errors.New("path: index out of range")

	// ErrNotContainer indicates a scalar root addressed with a non-empty path.
	ErrNotContainer = errors.New("path: root is not a container")

	// ErrTooLong indicates a path longer than MaxDepth.
	ErrTooLong = errors.New("path: too many steps")

	// ErrTooDeep indicates a set whose result would nest beyond MaxDepth.
	ErrTooDeep = errors.New("path: result nested too deep")
)

func stepError(err error, p []Specifier, depth int) error {
	return fmt.Errorf("%w at %s", err, Format(p[:depth+1]))
}
