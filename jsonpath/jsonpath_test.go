package jsonpath_test

import (
	"strings"
	"testing"

	"github.com/midbel/jpp/jsonpath"
)

// compactQuery decodes doc, evaluates query against it, and renders the
// matched nodes as a single compact JSON array for easy comparison.
func compactQuery(t *testing.T, doc, query string) string {
	t.Helper()
	root, err := jsonpath.Decode(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	jp, perr := jsonpath.Compile(query)
	if perr != nil {
		t.Fatalf("compile %q: %v", query, perr)
	}
	nodes := jp.Query(&root)

	arr := jsonpath.NewArray()
	for _, n := range nodes {
		arr.Items = append(arr.Items, *n)
	}
	var sb strings.Builder
	ws := jsonpath.NewWriter(&sb)
	ws.Compact = true
	if err := ws.Write(jsonpath.FromArray(arr)); err != nil {
		t.Fatalf("write: %v", err)
	}
	return sb.String()
}

func TestEndToEndScenarios(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		query string
		want  string
	}{
		{
			name:  "nested author wildcard",
			doc:   `{"store":{"book":[{"author":"A"},{"author":"B"}]}}`,
			query: `$.store.book[*].author`,
			want:  `["A","B"]`,
		},
		{
			name:  "slice",
			doc:   `{"items":[1,2,3,4,5]}`,
			query: `$.items[1:4]`,
			want:  `[2,3,4]`,
		},
		{
			name:  "reverse slice",
			doc:   `{"items":[1,2,3,4,5]}`,
			query: `$.items[::-1]`,
			want:  `[5,4,3,2,1]`,
		},
		{
			name:  "descendant name",
			doc:   `{"a":{"b":{"c":1}},"x":{"c":2}}`,
			query: `$..c`,
			want:  `[1,2]`,
		},
		{
			name:  "filter comparison",
			doc:   `{"xs":[{"p":5},{"p":15},{"p":10}]}`,
			query: `$.xs[?@.p < 10]`,
			want:  `[{"p":5}]`,
		},
		{
			name:  "filter match function",
			doc:   `{"xs":[{"n":"Alice"},{"n":"Bob"}]}`,
			query: `$.xs[?match(@.n,"A.*")]`,
			want:  `[{"n":"Alice"}]`,
		},
		{
			name:  "keyword-shaped member name",
			doc:   `{"true":1,"false":2}`,
			query: `$.true`,
			want:  `[1]`,
		},
		{
			name:  "existence test on null value",
			doc:   `{"a":null}`,
			query: `$[?@.a]`,
			want:  `[{"a":null}]`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := compactQuery(t, tc.doc, tc.query)
			if got != tc.want {
				t.Fatalf("got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestNegativeParseScenarios(t *testing.T) {
	queries := []string{
		`$.`,
		`$[01]`,
		`$[-0]`,
		`$[1.5]`,
		`$[?match(@.n,"A")<1]`,
		`$[?value(@)]`,
		`$[?!length(@.a)]`,
		`$[?!1]`,
		`$.a `,
		`$..`,
		`$[?nosuch(@)]`,
	}
	for _, q := range queries {
		t.Run(q, func(t *testing.T) {
			_, err := jsonpath.Compile(q)
			if err == nil {
				t.Fatalf("expected parse error for %q", q)
			}
			if err.Pos < 0 {
				t.Fatalf("expected a byte position for %q", q)
			}
		})
	}
}

func TestDescendantEnumerationOrder(t *testing.T) {
	doc := `{"a":1,"b":[2,3],"c":{"d":4}}`
	root, err := jsonpath.Decode(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}
	jp, perr := jsonpath.Compile(`$..*`)
	if perr != nil {
		t.Fatal(perr)
	}
	nodes := jp.Query(&root)
	var got []float64
	for _, n := range nodes {
		if f, ok := n.Number(); ok {
			got = append(got, f)
		}
	}
	// $..* over {"a":1,"b":[2,3],"c":{"d":4}} visits a, b, b[0], b[1],
	// c, c.d in pre-order; only the numeric leaves (a, b[0], b[1], c.d)
	// are asserted here, in that order.
	want := []float64{1, 2, 3, 4}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestNegativeIndexing(t *testing.T) {
	doc := `{"xs":["A","B","C","D","E"]}`
	cases := []struct {
		query string
		want  string
	}{
		{`$.xs[-1]`, `["E"]`},
		{`$.xs[-5]`, `["A"]`},
		{`$.xs[-6]`, `[]`},
	}
	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			got := compactQuery(t, doc, tc.query)
			if got != tc.want {
				t.Fatalf("got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestNullVsAbsent(t *testing.T) {
	doc := `{"a":null}`
	if got := compactQuery(t, doc, `$[?@.a]`); got != `[{"a":null}]` {
		t.Fatalf("null member should be selected, got %s", got)
	}
	if got := compactQuery(t, doc, `$[?@.b]`); got != `[]` {
		t.Fatalf("absent member should select nothing, got %s", got)
	}
}

func TestTotalityNeverPanics(t *testing.T) {
	docs := []string{
		`null`,
		`1`,
		`"s"`,
		`[]`,
		`{}`,
		`[[[]]]`,
		`{"a":{"a":{"a":1}}}`,
	}
	queries := []string{
		`$`,
		`$.a`,
		`$[0]`,
		`$[*]`,
		`$..*`,
		`$[?@.a == 1]`,
		`$[0:2:-1]`,
	}
	for _, d := range docs {
		root, err := jsonpath.Decode(strings.NewReader(d))
		if err != nil {
			t.Fatalf("decode %q: %v", d, err)
		}
		for _, q := range queries {
			jp, perr := jsonpath.Compile(q)
			if perr != nil {
				t.Fatalf("compile %q: %v", q, perr)
			}
			_ = jp.Query(&root)
		}
	}
}

func TestReferenceStability(t *testing.T) {
	root, err := jsonpath.Decode(strings.NewReader(`{"a":[1,2,3]}`))
	if err != nil {
		t.Fatal(err)
	}
	jp, perr := jsonpath.Compile(`$.a[*]`)
	if perr != nil {
		t.Fatal(perr)
	}
	nodes := jp.Query(&root)
	obj, _ := root.Object()
	arrVal, _ := obj.Get("a")
	arr, _ := arrVal.Array()
	for i, n := range nodes {
		if n != &arr.Items[i] {
			t.Fatalf("node %d is not pointer-equal to the source array element", i)
		}
	}
}

func TestWithMaxDepth(t *testing.T) {
	root, err := jsonpath.Decode(strings.NewReader(`{"a":{"a":{"a":{"a":1}}}}`))
	if err != nil {
		t.Fatal(err)
	}
	jp, perr := jsonpath.Compile(`$..a`, jsonpath.WithMaxDepth(1))
	if perr != nil {
		t.Fatal(perr)
	}
	nodes := jp.Query(&root)
	if len(nodes) == 0 {
		t.Fatal("expected at least the first-level match")
	}
}

func TestWithFunctionExtension(t *testing.T) {
	upper := jsonpath.Function{
		Params: []jsonpath.Role{jsonpath.RoleValue},
		Return: jsonpath.RoleLogical,
		Call: func(args []any) (jsonpath.Value, bool) {
			v, ok := args[0].(jsonpath.Value)
			if !ok {
				return jsonpath.Bool(false), true
			}
			s, ok := v.Str()
			if !ok {
				return jsonpath.Bool(false), true
			}
			return jsonpath.Bool(s == strings.ToUpper(s)), true
		},
	}

	root, err := jsonpath.Decode(strings.NewReader(`{"xs":["AB","cd"]}`))
	if err != nil {
		t.Fatal(err)
	}
	jp, perr := jsonpath.Compile(`$.xs[?isupper(@)]`, jsonpath.WithFunctionExtension("isupper", upper))
	if perr != nil {
		t.Fatal(perr)
	}
	nodes := jp.Query(&root)
	if len(nodes) != 1 {
		t.Fatalf("expected 1 match, got %d", len(nodes))
	}
	s, _ := nodes[0].Str()
	if s != "AB" {
		t.Fatalf("expected AB, got %s", s)
	}
}
