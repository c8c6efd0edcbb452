// Package sniff classifies untyped text into a value.Value.
//
// Primitives do not need JSON framing: bare digits, bare reals, quoted text and
// the reserved boolean tokens are all recognised. Only text framed by brackets
// or braces goes through the JSON grammar.
package sniff

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jacoelho/jsonlist/internal/sentinel"
	"github.com/jacoelho/jsonlist/internal/value"
)

// MaxDepth bounds container nesting accepted by the decoder. The path engine
// uses the same limit for path length.
const MaxDepth = 100

const realChars = "-0123456789.eE+"

// Sniff classifies text, first match wins:
//
//	empty                     → ErrEmpty
//	[...] or {...}            → JSON array/object
//	reserved true/false/null  → Bool/Null
//	"..."                     → Str with the quotes stripped
//	digits only               → Int, or Real on 32-bit overflow
//	chars of -0123456789.eE+  → Real
//	true, false, null         → Bool/Null
//	anything else             → ErrUnclassified
func Sniff(text string) (value.Value, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return value.Value{}, ErrEmpty
	}

	if isFramed(s, '[', ']') || isFramed(s, '{', '}') {
		return decodeContainer(s)
	}

	switch s {
	case sentinel.True:
		return value.Bool(true), nil
	case sentinel.False:
		return value.Bool(false), nil
	case sentinel.Null:
		return value.Null(), nil
	}

	if isFramed(s, '"', '"') {
		return value.Str(s[1 : len(s)-1]), nil
	}

	if allDigits(s) {
		if v, ok := parseInteger(s); ok {
			return v, nil
		}
		return value.Value{}, fmt.Errorf("%w: %q out of range", ErrUnclassified, truncate(s))
	}

	if onlyChars(s, realChars) {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return value.Real(f), nil
		}
	}

	switch s {
	case "true":
		return value.Bool(true), nil
	case "false":
		return value.Bool(false), nil
	case "null":
		return value.Null(), nil
	}

	return value.Value{}, fmt.Errorf("%w: %q", ErrUnclassified, truncate(s))
}

// SniffOrString falls back to the raw text when it cannot be classified.
// Malformed brackets and empty input also become strings.
func SniffOrString(text string) value.Value {
	v, err := Sniff(text)
	if err != nil {
		return value.Str(text)
	}
	return v
}

// parseInteger handles bare digits, which follow the 32-bit host integer.
// Digits beyond the float range are not a number at all, the same as 1e400.
func parseInteger(s string) (value.Value, bool) {
	if n, err := strconv.ParseInt(s, 10, 32); err == nil {
		return value.Int(n), true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return value.Value{}, false
	}
	return value.Real(f), true
}

func isFramed(s string, open, close byte) bool {
	return len(s) >= 2 && s[0] == open && s[len(s)-1] == close
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func onlyChars(s, set string) bool {
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(set, s[i]) < 0 {
			return false
		}
	}
	return true
}

func truncate(s string) string {
	const limit = 32
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
