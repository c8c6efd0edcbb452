// Package path navigates and mutates value trees along a sequence of steps.
package path

import (
	"strconv"
	"strings"
)

type stepKind uint8

const (
	stepIndex stepKind = iota
	stepKey
	stepAppend
)

// Specifier is one path step: an array index, an object key, or the append
// marker that addresses the slot after the last array element.
type Specifier struct {
	kind  stepKind
	index int
	key   string
}

// Index addresses array element n.
func Index(n int) Specifier { return Specifier{kind: stepIndex, index: n} }

// Key addresses object member k.
func Key(k string) Specifier { return Specifier{kind: stepKey, key: k} }

// Append addresses the slot after the last array element. Only mutation
// accepts it.
var Append = Specifier{kind: stepAppend}

func (s Specifier) String() string {
	switch s.kind {
	case stepIndex:
		return "[" + strconv.Itoa(s.index) + "]"
	case stepAppend:
		return "[+]"
	default:
		return "[" + strconv.Quote(s.key) + "]"
	}
}

// Format renders a whole path for diagnostics, e.g. ["a"][0][+].
func Format(p []Specifier) string {
	var sb strings.Builder
	for _, s := range p {
		sb.WriteString(s.String())
	}
	if sb.Len() == 0 {
		return "<root>"
	}
	return sb.String()
}
