package render

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jacoelho/jsonlist/internal/sentinel"
	"github.com/jacoelho/jsonlist/internal/sniff"
	"github.com/jacoelho/jsonlist/internal/value"
)

func TestScalar(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input value.Value
		want  string
	}{
		{name: "null", input: value.Null(), want: sentinel.Null},
		{name: "true", input: value.Bool(true), want: sentinel.True},
		{name: "false", input: value.Bool(false), want: sentinel.False},
		{name: "int", input: value.Int(-42), want: "-42"},
		{name: "real_whole", input: value.Real(12), want: "12.0"},
		{name: "real_fraction", input: value.Real(0.5), want: "0.5"},
		{name: "real_rounded", input: value.Real(math.Pi), want: "3.141593"},
		{name: "real_tiny", input: value.Real(0.0000001), want: "0.0"},
		{name: "real_negative_zero", input: value.Real(-0.0000001), want: "0.0"},
		{name: "string_raw", input: value.Str(`he said "hi"`), want: `he said "hi"`},
		{name: "empty_string", input: value.Str(""), want: ""},
		{name: "array_nested", input: value.Array(value.Int(1), value.Str("a")), want: `[1,"a"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Scalar(tt.input); got != tt.want {
				t.Errorf("Scalar(%#v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNested(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input value.Value
		want  string
	}{
		{name: "null", input: value.Null(), want: "null"},
		{name: "bools", input: value.Array(value.Bool(true), value.Bool(false)), want: "[true,false]"},
		{name: "real_keeps_point", input: value.Real(12), want: "12.0"},
		{name: "real_exponent", input: value.Real(1e21), want: "1e+21"},
		{name: "real_nan", input: value.Real(math.NaN()), want: "null"},
		{name: "string_escapes", input: value.Str("a\"b\\c\nd\x01"), want: `"a\"b\\c\nd\u0001"`},
		{name: "unicode_passthrough", input: value.Str("héllo ✓"), want: `"héllo ✓"`},
		{name: "invalid_utf8", input: value.Str("a\xffb"), want: `"a\ufffdb"`},
		{
			name: "object",
			input: value.ObjectOf(
				value.Member{Key: "z", Value: value.Int(1)},
				value.Member{Key: "a", Value: value.Array(value.Null(), value.FromObject(nil))},
			),
			want: `{"z":1,"a":[null,{}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Nested(tt.input); got != tt.want {
				t.Errorf("Nested(%#v) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestNestedReparses(t *testing.T) {
	t.Parallel()

	trees := []value.Value{
		value.Array(value.Int(1), value.Real(2), value.Real(0.25), value.Str(`q"uote`)),
		value.ObjectOf(
			value.Member{Key: "nested", Value: value.ObjectOf(
				value.Member{Key: "list", Value: value.Array(value.Bool(true), value.Null())},
			)},
			value.Member{Key: "tab\tkey", Value: value.Str("line\nbreak")},
		),
		value.Array(),
	}

	for _, tree := range trees {
		text := Nested(tree)
		got, err := sniff.Sniff(text)
		if err != nil {
			t.Fatalf("Sniff(%s) error = %v", text, err)
		}
		if diff := cmp.Diff(tree, got); diff != "" {
			t.Errorf("round trip of %s mismatch (-want +got):\n%s", text, diff)
		}
	}
}
