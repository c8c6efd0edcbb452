// Package template renders scenario fields with text/template, exposing
// captured values and the reserved boundary tokens to scenario authors.
package template

import (
	"encoding/base64"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/google/uuid"

	"github.com/jacoelho/jsonlist/internal/render"
	"github.com/jacoelho/jsonlist/internal/sentinel"
	"github.com/jacoelho/jsonlist/internal/value"
)

func FuncMap() template.FuncMap {
	return template.FuncMap{
		"uuidv4": generateUUIDv4,
		"uuid":   generateUUIDv4, // Alias for uuidv4

		"now":       timeNow,
		"timestamp": timeUnix,

		"upper": strings.ToUpper,
		"lower": strings.ToLower,
		"trim":  strings.TrimSpace,

		"randomInt":    randomInt,
		"randomString": randomString,

		"base64": base64Encode,
		"quote":  quoteJSON,
		"repeat": repeatText,

		// Reserved tokens. true and false are template keywords, so those two
		// are only reachable through token.
		"token":   token,
		"invalid": constant(sentinel.Invalid),
		"delete":  constant(sentinel.Delete),
		"null":    constant(sentinel.Null),
		"array":   constant(sentinel.Array),
		"object":  constant(sentinel.Object),
		"number":  constant(sentinel.Number),
		"string":  constant(sentinel.String),
		"append":  func() int { return sentinel.Append },
	}
}

func generateUUIDv4() string {
	return uuid.New().String()
}

func timeNow() string {
	return time.Now().Format(time.RFC3339)
}

func timeUnix() string {
	return strconv.FormatInt(time.Now().Unix(), 10)
}

// randomInt swaps parameters if min > max.
func randomInt(min, max int) int {
	if min > max {
		min, max = max, min
	}

	if min == max {
		return min
	}

	return rand.IntN(max-min+1) + min
}

func randomString(length int) string {
	if length <= 0 {
		return ""
	}

	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	buf := make([]byte, length)
	for i := range buf {
		buf[i] = charset[rand.IntN(len(charset))]
	}

	return string(buf)
}

func base64Encode(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

// quoteJSON renders s as a JSON string literal, the form the nested
// stringifier uses.
func quoteJSON(s string) string {
	return render.Nested(value.Str(s))
}

// repeatText builds deeply nested documents for depth tests, e.g.
// {{ repeat "[" 101 }}.
func repeatText(s string, n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(s, n)
}

func token(name string) (string, error) {
	t, ok := sentinel.Lookup(name)
	if !ok {
		return "", fmt.Errorf("unknown token %q", name)
	}
	return t, nil
}

func constant(s string) func() string {
	return func() string { return s }
}

func NewTemplate(name string) *template.Template {
	return template.New(name).Option("missingkey=error").Funcs(FuncMap())
}

// MustParse panics if the template cannot be parsed.
func MustParse(name, text string) *template.Template {
	return template.Must(NewTemplate(name).Parse(text))
}

func Apply(tmplStr string, data any) (string, error) {
	return ApplyWithName("", tmplStr, data)
}

// ApplyWithName is useful for debugging template errors.
func ApplyWithName(name, tmplStr string, data any) (string, error) {
	if !strings.Contains(tmplStr, "{{") {
		return tmplStr, nil
	}

	tmpl, err := NewTemplate(name).Parse(tmplStr)
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}
