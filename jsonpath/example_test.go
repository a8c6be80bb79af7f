package jsonpath_test

import (
	"fmt"
	"strings"

	"github.com/midbel/jpp/jsonpath"
)

func ExampleCompile() {
	root, _ := jsonpath.Decode(strings.NewReader(`{"store":{"book":[{"title":"A"},{"title":"B"}]}}`))

	jp, err := jsonpath.Compile("$.store.book[*].title")
	if err != nil {
		fmt.Println(err)
		return
	}

	for _, n := range jp.Query(&root) {
		s, _ := n.Str()
		fmt.Println(s)
	}
	// Output:
	// A
	// B
}

func ExampleQuery() {
	root, _ := jsonpath.Decode(strings.NewReader(`{"xs":[1,2,3,4,5]}`))

	nodes, err := jsonpath.Query("$.xs[1:4]", &root)
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, n := range nodes {
		f, _ := n.Number()
		fmt.Println(f)
	}
	// Output:
	// 2
	// 3
	// 4
}

func ExampleCompile_error() {
	_, err := jsonpath.Compile("$[01]")
	fmt.Println(err)
	// Output:
	// malformed number: redundant leading zero (at byte 2)
}
