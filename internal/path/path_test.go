package path

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jacoelho/jsonlist/internal/sniff"
	"github.com/jacoelho/jsonlist/internal/value"
)

func mustSniff(t *testing.T, text string) value.Value {
	t.Helper()
	v, err := sniff.Sniff(text)
	if err != nil {
		t.Fatalf("Sniff(%q) error = %v", text, err)
	}
	return v
}

func TestGet(t *testing.T) {
	t.Parallel()

	doc := `{"a":[10,{"b":null,"c":"x"}],"d":true}`

	tests := []struct {
		name    string
		path    []Specifier
		want    string
		wantErr error
	}{
		{name: "empty_path", path: nil, want: doc},
		{name: "key", path: []Specifier{Key("d")}, want: "true"},
		{name: "index", path: []Specifier{Key("a"), Index(0)}, want: "10"},
		{name: "deep", path: []Specifier{Key("a"), Index(1), Key("c")}, want: `"x"`},
		{name: "explicit_null", path: []Specifier{Key("a"), Index(1), Key("b")}, want: "null"},
		{name: "missing_key", path: []Specifier{Key("zzz")}, wantErr: ErrNotFound},
		{name: "out_of_range", path: []Specifier{Key("a"), Index(2)}, wantErr: ErrNotFound},
		{name: "negative_index", path: []Specifier{Key("a"), Index(-1)}, wantErr: ErrNotFound},
		{name: "index_on_object", path: []Specifier{Index(0)}, wantErr: ErrNotFound},
		{name: "key_on_array", path: []Specifier{Key("a"), Key("0")}, wantErr: ErrNotFound},
		{name: "through_scalar", path: []Specifier{Key("d"), Key("x")}, wantErr: ErrNotFound},
		{name: "append_marker", path: []Specifier{Key("a"), Append}, wantErr: ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			root := mustSniff(t, doc)
			got, err := Get(root, tt.path)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Get(%s) error = %v, want %v", Format(tt.path), err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Get(%s) unexpected error: %v", Format(tt.path), err)
			}

			want := mustSniff(t, tt.want)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("Get(%s) mismatch (-want +got):\n%s", Format(tt.path), diff)
			}
		})
	}
}

func TestGetIsIdempotent(t *testing.T) {
	t.Parallel()

	root := mustSniff(t, `{"a":[1,2,3]}`)
	before := root.Clone()
	p := []Specifier{Key("a"), Index(1)}

	first, err1 := Get(root, p)
	second, err2 := Get(root, p)
	if err1 != nil || err2 != nil {
		t.Fatalf("Get errors = %v, %v", err1, err2)
	}
	if !first.Equal(second) {
		t.Fatalf("Get results differ: %#v vs %#v", first, second)
	}
	if diff := cmp.Diff(before, root); diff != "" {
		t.Fatalf("Get mutated root (-before +after):\n%s", diff)
	}
}

func TestSet(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		doc     string
		path    []Specifier
		literal string
		want    string
		wantErr error
	}{
		{name: "overwrite_key", doc: `{"a":1,"b":2}`, path: []Specifier{Key("a")}, literal: "9", want: `{"a":9,"b":2}`},
		{name: "insert_key_at_end", doc: `{"a":1}`, path: []Specifier{Key("z")}, literal: `"s"`, want: `{"a":1,"z":"s"}`},
		{name: "replace_index", doc: `[1,2,3]`, path: []Specifier{Index(1)}, literal: "true", want: `[1,true,3]`},
		{name: "append_marker", doc: `[1]`, path: []Specifier{Append}, literal: "2", want: `[1,2]`},
		{name: "index_at_length_appends", doc: `[1]`, path: []Specifier{Index(1)}, literal: "2", want: `[1,2]`},
		{name: "sparse_rejected", doc: `[1]`, path: []Specifier{Index(2)}, literal: "2", wantErr: ErrIndexOutOfRange},
		{name: "sparse_rejected_midpath", doc: `[1]`, path: []Specifier{Index(3), Key("a")}, literal: "2", wantErr: ErrIndexOutOfRange},
		{name: "autovivify_object", doc: `{}`, path: []Specifier{Key("a"), Key("b")}, literal: "1", want: `{"a":{"b":1}}`},
		{name: "autovivify_array", doc: `{}`, path: []Specifier{Key("a"), Index(0)}, literal: "1", want: `{"a":[1]}`},
		{name: "autovivify_from_null_root", doc: "null", path: []Specifier{Key("a"), Index(0), Key("b")}, literal: "5", want: `{"a":[{"b":5}]}`},
		{name: "append_creates_container", doc: `[]`, path: []Specifier{Append, Key("k")}, literal: "1", want: `[{"k":1}]`},
		{name: "type_overwrite_object_to_array", doc: `{"a":{"x":1}}`, path: []Specifier{Key("a"), Index(0)}, literal: "7", want: `{"a":[7]}`},
		{name: "type_overwrite_array_to_object", doc: `{"a":[1,2]}`, path: []Specifier{Key("a"), Key("k")}, literal: "7", want: `{"a":{"k":7}}`},
		{name: "type_overwrite_scalar_child", doc: `{"a":5}`, path: []Specifier{Key("a"), Key("b")}, literal: "1", want: `{"a":{"b":1}}`},
		{name: "type_overwrite_root", doc: `{"a":1}`, path: []Specifier{Index(0)}, literal: "1", want: `[1]`},
		{name: "type_overwrite_then_sparse", doc: `{"a":{"x":1}}`, path: []Specifier{Key("a"), Index(1)}, literal: "7", wantErr: ErrIndexOutOfRange},
		{name: "scalar_root_rejected", doc: `5`, path: []Specifier{Key("a")}, literal: "1", wantErr: ErrNotContainer},
		{name: "string_root_rejected", doc: `"s"`, path: []Specifier{Index(0)}, literal: "1", wantErr: ErrNotContainer},
		{name: "empty_path_replaces_root", doc: `{"a":1}`, path: nil, literal: "[2]", want: `[2]`},
		{name: "unclassified_literal_is_string", doc: `{}`, path: []Specifier{Key("a")}, literal: "hello", want: `{"a":"hello"}`},
		{name: "framed_literal_nests", doc: `{}`, path: []Specifier{Key("a")}, literal: `{"b":[1]}`, want: `{"a":{"b":[1]}}`},
		{name: "order_preserved_on_overwrite", doc: `{"a":1,"b":{"c":1},"d":3}`, path: []Specifier{Key("b"), Key("c")}, literal: "2", want: `{"a":1,"b":{"c":2},"d":3}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			root := mustSniff(t, tt.doc)
			before := root.Clone()

			got, err := Set(root, tt.path, tt.literal)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Set(%s) error = %v, want %v", Format(tt.path), err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Set(%s) unexpected error: %v", Format(tt.path), err)
			}
			if diff := cmp.Diff(mustSniff(t, tt.want), got); diff != "" {
				t.Errorf("Set(%s) mismatch (-want +got):\n%s", Format(tt.path), diff)
			}
			if diff := cmp.Diff(before, root); diff != "" {
				t.Errorf("Set(%s) mutated its input (-before +after):\n%s", Format(tt.path), diff)
			}
		})
	}
}

func TestDelete(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		doc     string
		path    []Specifier
		want    string
		wantErr error
	}{
		{name: "object_key", doc: `{"a":1,"b":2,"c":3}`, path: []Specifier{Key("b")}, want: `{"a":1,"c":3}`},
		{name: "array_index_shifts", doc: `[1,2,3]`, path: []Specifier{Index(0)}, want: `[2,3]`},
		{name: "nested", doc: `{"a":[{"x":1,"y":2}]}`, path: []Specifier{Key("a"), Index(0), Key("x")}, want: `{"a":[{"y":2}]}`},
		{name: "missing_key", doc: `{"a":1}`, path: []Specifier{Key("b")}, wantErr: ErrNotFound},
		{name: "index_at_length", doc: `[1]`, path: []Specifier{Index(1)}, wantErr: ErrNotFound},
		{name: "append_marker", doc: `[1]`, path: []Specifier{Append}, wantErr: ErrNotFound},
		{name: "index_past_length", doc: `[1]`, path: []Specifier{Index(5)}, wantErr: ErrIndexOutOfRange},
		{name: "missing_intermediate", doc: `{}`, path: []Specifier{Key("a"), Key("b")}, wantErr: ErrNotFound},
		{name: "empty_path", doc: `{}`, path: nil, wantErr: ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Delete(mustSniff(t, tt.doc), tt.path)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Delete(%s) error = %v, want %v", Format(tt.path), err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Delete(%s) unexpected error: %v", Format(tt.path), err)
			}
			if diff := cmp.Diff(mustSniff(t, tt.want), got); diff != "" {
				t.Errorf("Delete(%s) mismatch (-want +got):\n%s", Format(tt.path), diff)
			}
		})
	}
}

func TestAppendMatchesIndexAtLength(t *testing.T) {
	t.Parallel()

	root := mustSniff(t, `[1,"two",{"three":3}]`)

	viaAppend, err := Set(root, []Specifier{Append}, "[4]")
	if err != nil {
		t.Fatalf("Set(append) error = %v", err)
	}
	viaIndex, err := Set(root, []Specifier{Index(root.Len())}, "[4]")
	if err != nil {
		t.Fatalf("Set(index %d) error = %v", root.Len(), err)
	}
	if diff := cmp.Diff(viaAppend, viaIndex); diff != "" {
		t.Fatalf("append and index-at-length differ (-append +index):\n%s", diff)
	}
}

func TestInsertThenDeleteRestoresObject(t *testing.T) {
	t.Parallel()

	root := mustSniff(t, `{"a":1,"b":[true]}`)

	inserted, err := Set(root, []Specifier{Key("k")}, `{"deep":1}`)
	if err != nil {
		t.Fatalf("Set error = %v", err)
	}
	restored, err := Delete(inserted, []Specifier{Key("k")})
	if err != nil {
		t.Fatalf("Delete error = %v", err)
	}
	if diff := cmp.Diff(root, restored); diff != "" {
		t.Fatalf("insert+delete mismatch (-want +got):\n%s", diff)
	}
}

func TestPathTooLong(t *testing.T) {
	t.Parallel()

	p := make([]Specifier, MaxDepth+1)
	for i := range p {
		p[i] = Key("k")
	}

	if _, err := Set(value.Null(), p, "1"); !errors.Is(err, ErrTooLong) {
		t.Fatalf("Set error = %v, want ErrTooLong", err)
	}
	if _, err := Get(value.Null(), p); !errors.Is(err, ErrTooLong) {
		t.Fatalf("Get error = %v, want ErrTooLong", err)
	}
}

func TestSetNestingLimit(t *testing.T) {
	t.Parallel()

	nested := func(levels int) string {
		return strings.Repeat("[", levels) + strings.Repeat("]", levels)
	}
	indexes := func(n int) []Specifier {
		p := make([]Specifier, n)
		for i := range p {
			p[i] = Index(0)
		}
		return p
	}

	tests := []struct {
		name    string
		steps   int
		literal string
		wantErr error
	}{
		{name: "full_path_scalar", steps: MaxDepth, literal: "1"},
		{name: "full_path_container", steps: MaxDepth, literal: "[]", wantErr: ErrTooDeep},
		{name: "split_at_limit", steps: MaxDepth / 2, literal: nested(MaxDepth / 2)},
		{name: "split_over_limit", steps: MaxDepth/2 + 1, literal: nested(MaxDepth / 2), wantErr: ErrTooDeep},
		{name: "empty_path_at_limit", steps: 0, literal: nested(MaxDepth)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Set(value.Null(), indexes(tt.steps), tt.literal)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Set error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Set unexpected error: %v", err)
			}
			if got.Depth() > MaxDepth {
				t.Fatalf("Set result depth = %d, want <= %d", got.Depth(), MaxDepth)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()

	got := Format([]Specifier{Key("a"), Index(0), Append})
	if want := `["a"][0][+]`; got != want {
		t.Fatalf("Format = %s, want %s", got, want)
	}
	if got := Format(nil); !strings.Contains(got, "root") {
		t.Fatalf("Format(nil) = %s, want root marker", got)
	}
}
