// Package render turns values back into text.
//
// Scalar output is what a script receives for a single value. Nested output is
// JSON text that the sniffer reads back into an equal tree.
package render

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/jacoelho/jsonlist/internal/sentinel"
	"github.com/jacoelho/jsonlist/internal/value"
)

// Scalar renders v for a caller expecting one string.
func Scalar(v value.Value) string {
	switch v.Kind() {
	case value.KindNull:
		return sentinel.Null
	case value.KindBool:
		b, _ := v.AsBool()
		return BoolToken(b)
	case value.KindInt:
		n, _ := v.AsInt()
		return strconv.FormatInt(n, 10)
	case value.KindReal:
		f, _ := v.AsReal()
		return FixedReal(f)
	case value.KindStr:
		s, _ := v.AsStr()
		return s
	default:
		return Nested(v)
	}
}

// BoolToken returns the reserved token for b.
func BoolToken(b bool) string {
	if b {
		return sentinel.True
	}
	return sentinel.False
}

// FixedReal formats f with at most six decimals. Trailing zeros are trimmed
// but one fractional digit is kept, so the text still reads back as a real.
func FixedReal(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', 6, 64)
	s = strings.TrimRight(s, "0")
	if strings.HasSuffix(s, ".") {
		s += "0"
	}
	if s == "-0.0" {
		return "0.0"
	}
	return s
}

// Nested renders v as compact JSON text.
func Nested(v value.Value) string {
	var sb strings.Builder
	writeNested(&sb, v)
	return sb.String()
}

func writeNested(sb *strings.Builder, v value.Value) {
	switch v.Kind() {
	case value.KindNull:
		sb.WriteString("null")
	case value.KindBool:
		b, _ := v.AsBool()
		sb.WriteString(strconv.FormatBool(b))
	case value.KindInt:
		n, _ := v.AsInt()
		sb.WriteString(strconv.FormatInt(n, 10))
	case value.KindReal:
		f, _ := v.AsReal()
		sb.WriteString(nestedReal(f))
	case value.KindStr:
		s, _ := v.AsStr()
		writeQuoted(sb, s)
	case value.KindArray:
		items, _ := v.Items()
		sb.WriteByte('[')
		for i, item := range items {
			if i > 0 {
				sb.WriteByte(',')
			}
			writeNested(sb, item)
		}
		sb.WriteByte(']')
	case value.KindObject:
		obj, _ := v.Object()
		sb.WriteByte('{')
		for i, m := range obj.Members() {
			if i > 0 {
				sb.WriteByte(',')
			}
			writeQuoted(sb, m.Key)
			sb.WriteByte(':')
			writeNested(sb, m.Value)
		}
		sb.WriteByte('}')
	}
}

// nestedReal always carries a '.' or an exponent so the JSON grammar reads
// the number back as a real. JSON has no spelling for NaN or infinities.
func nestedReal(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "null"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

const hexDigits = "0123456789abcdef"

func writeQuoted(sb *strings.Builder, s string) {
	sb.WriteByte('"')
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			switch {
			case c == '"' || c == '\\':
				sb.WriteByte('\\')
				sb.WriteByte(c)
			case c == '\n':
				sb.WriteString(`\n`)
			case c == '\r':
				sb.WriteString(`\r`)
			case c == '\t':
				sb.WriteString(`\t`)
			case c < 0x20:
				sb.WriteString(`\u00`)
				sb.WriteByte(hexDigits[c>>4])
				sb.WriteByte(hexDigits[c&0xf])
			default:
				sb.WriteByte(c)
			}
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			sb.WriteString(`\ufffd`)
		} else {
			sb.WriteString(s[i : i+size])
		}
		i += size
	}
	sb.WriteByte('"')
}
