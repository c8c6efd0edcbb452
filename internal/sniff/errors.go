package sniff

import "errors"

var (
	// ErrEmpty indicates the input was empty or whitespace only.
	ErrEmpty = errors.New("sniff: empty input")

	// ErrSyntax indicates bracketed input that is not a well-formed array or object.
	ErrSyntax = errors.New("sniff: syntax error")

	// ErrUnclassified indicates input that matches no literal form.
	ErrUnclassified = errors.New("sniff: unclassified literal")

	// ErrTooDeep indicates nesting beyond MaxDepth.
	ErrTooDeep = errors.New("sniff: nesting too deep")
)
