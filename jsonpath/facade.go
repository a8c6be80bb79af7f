// Package jsonpath implements RFC 9535 JSONPath: query parsing against
// an ordered JSON value model, and evaluation of a compiled query
// against such a value.
package jsonpath

import "strings"

// DefaultMaxDepth bounds both descendant-segment recursion into the
// JSON tree and nested filter-expression evaluation, guarding against
// unbounded input driving the evaluator into a stack/heap blowup.
const DefaultMaxDepth = 10000

// Role is the static type a custom function's parameter or return value
// carries, mirroring RFC 9535 §2.4.1's ValueType/LogicalType/NodesType.
type Role int

const (
	RoleValue Role = iota
	RoleLogical
	RoleNodes
)

// Function is a named extension to the five built-in filter functions.
// Call receives one resolved argument per declared Params entry: a
// Value for RoleValue (nil interface when the argument reduced to
// Nothing), a []*Value for RoleNodes, or a bool for RoleLogical. When
// Return is RoleValue, a false second result means the call itself
// produced Nothing; when Return is RoleLogical, ok is ignored and only
// the boolean value of the returned Value matters.
type Function struct {
	Params []Role
	Return Role
	Call   func(args []any) (Value, bool)
}

// Option configures a Compile call.
type Option func(*compileConfig)

type compileConfig struct {
	maxDepth int
	funcs    map[string]Function
}

// WithMaxDepth overrides DefaultMaxDepth.
func WithMaxDepth(n int) Option {
	return func(c *compileConfig) { c.maxDepth = n }
}

// WithFunctionExtension registers a named function available to filter
// expressions in the query being compiled, in addition to the five
// built-ins. Registering under a built-in's name is rejected by Compile.
func WithFunctionExtension(name string, fn Function) Option {
	return func(c *compileConfig) {
		if c.funcs == nil {
			c.funcs = make(map[string]Function)
		}
		c.funcs[name] = fn
	}
}

// Compile parses query and returns a reusable JsonPath. Per RFC 9535
// §2.1, a query must not carry leading or trailing whitespace; that is
// checked here rather than inside the lexer/parser, which operate only
// on the space already permitted between tokens.
func Compile(query string, opts ...Option) (*JsonPath, *Error) {
	cfg := compileConfig{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&cfg)
	}

	trimmed := strings.TrimFunc(query, isJSONPathSpace)
	if trimmed != query {
		return nil, errAt(0, "query must not have leading or trailing whitespace")
	}

	var custom map[string]funcSig
	if len(cfg.funcs) > 0 {
		custom = make(map[string]funcSig, len(cfg.funcs))
		for name, fn := range cfg.funcs {
			if _, builtin := builtinFuncs[name]; builtin {
				return nil, errAt(0, "function extension %q shadows a built-in function", name)
			}
			params := make([]role, len(fn.Params))
			for i, r := range fn.Params {
				params[i] = role(r)
			}
			custom[name] = funcSig{params: params, ret: role(fn.Return)}
		}
	}

	segs, err := parseQuery(query, custom)
	if err != nil {
		return nil, err
	}

	jp := &JsonPath{
		segments: segs,
		regexes:  newRegexCache(),
		maxDepth: cfg.maxDepth,
	}
	if len(cfg.funcs) > 0 {
		jp.funcs = cfg.funcs
	}
	return jp, nil
}

// Parse is an alias for Compile kept for readers used to a separate
// parse/evaluate vocabulary; the two are identical.
func Parse(query string, opts ...Option) (*JsonPath, *Error) {
	return Compile(query, opts...)
}

// Query compiles query with opts and evaluates it against root in one
// step. Prefer Compile when the same query is evaluated repeatedly.
func Query(query string, root *Value, opts ...Option) ([]*Value, *Error) {
	jp, err := Compile(query, opts...)
	if err != nil {
		return nil, err
	}
	return jp.Query(root), nil
}
