// Package bench holds the representative documents and queries the
// jsonpath package's benchmarks run against, grounded on the original
// implementation's jpp_bench/benches/jsonpath.rs scenario groups
// (basic selectors, advanced selectors, filters, functions, JSON size
// scaling, and descendant-chain depth).
package bench

import "fmt"

// Small is a small bookstore-shaped document, the same shape used
// throughout the original benchmark's "basic_selectors"/"filters"/
// "functions" groups.
const Small = `{
  "store": {
    "book": [
      {"category": "reference", "author": "Nigel Rees", "title": "Sayings of the Century", "price": 8.95},
      {"category": "fiction", "author": "Evelyn Waugh", "title": "Sword of Honour", "price": 12.99, "isbn": "0-553-21311-3"},
      {"category": "fiction", "author": "Herman Melville", "title": "Moby Dick", "price": 8.99, "isbn": "0-553-21311-4"},
      {"category": "fiction", "author": "J. R. R. Tolkien", "title": "The Lord of the Rings", "price": 22.99, "isbn": "0-395-19395-8"}
    ],
    "bicycle": {"color": "red", "price": 19.95}
  }
}`

// Medium and Large are generated rather than hand-written literals, so
// that doubling their size is a one-line change rather than a rewrite.
var Medium = generateCatalog(200)
var Large = generateCatalog(5000)

func generateCatalog(n int) string {
	out := `{"catalog":{"items":[`
	for i := 0; i < n; i++ {
		if i > 0 {
			out += ","
		}
		out += fmt.Sprintf(`{"id":%d,"name":"item-%d","price":%d.50,"tags":["a","b","c"]}`, i, i, i%100)
	}
	out += `]}}`
	return out
}

// Deep is a document nesting an "a" object n levels before bottoming
// out at a "value" leaf, matching the original benchmark's
// bench_descendant_chains ("$..value", "$..a..value", "$..a..a..value").
var Deep = generateDeep(50)

func generateDeep(n int) string {
	out := `{"value":0}`
	for i := 1; i <= n; i++ {
		out = fmt.Sprintf(`{"a":%s,"value":%d}`, out, i)
	}
	return out
}

// BasicSelectors, AdvancedSelectors, Filters, Functions, and
// DescendantChains are named query groups mirroring the original
// benchmark's own benchmark_group names.
var BasicSelectors = []struct{ Name, Query string }{
	{"root", "$"},
	{"property", "$.store"},
	{"nested", "$.store.book"},
	{"index", "$.store.book[0]"},
	{"negative_index", "$.store.book[-1]"},
	{"wildcard", "$.store.book[*]"},
}

var AdvancedSelectors = []struct{ Name, Query string }{
	{"slice", "$.store.book[0:2]"},
	{"descendant", "$..author"},
	{"compound", "$.store.book[*].author"},
}

var Filters = []struct{ Name, Query string }{
	{"existence", "$.store.book[?@.isbn]"},
	{"comparison", "$.store.book[?@.price < 10]"},
	{"logical", `$.store.book[?@.price < 10 && @.category == "fiction"]`},
}

var Functions = []struct{ Name, Query string }{
	{"length", "$.store.book[?length(@.title) > 10]"},
	{"match", `$.store.book[?match(@.author, "^J")]`},
	{"search", `$.store.book[?search(@.title, "the")]`},
}

var DescendantChains = []struct{ Name, Query string }{
	{"single", "$..value"},
	{"double", "$..a..value"},
	{"triple", "$..a..a..value"},
}
