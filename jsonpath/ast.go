package jsonpath

// JsonPath is a compiled, immutable JSONPath query.
type JsonPath struct {
	segments []segment
	regexes  *regexCache
	maxDepth int
	funcs    map[string]Function
}

// segKind distinguishes a child segment from a descendant segment.
type segKind int

const (
	segChild segKind = iota
	segDescendant
)

type segment struct {
	kind      segKind
	selectors []selector
}

// selKind enumerates selector variants.
type selKind int

const (
	selName selKind = iota
	selIndex
	selWildcard
	selSlice
	selFilter
)

type selector struct {
	kind selKind

	name string // selName
	idx  int64  // selIndex

	// selSlice; nil means "absent" (use the RFC default for the sign of step)
	start *int64
	end   *int64
	step  *int64

	filter expr // selFilter
}

// exprKind enumerates filter-expression node variants.
type exprKind int

const (
	exCurrent exprKind = iota
	exRoot
	exPath
	exLiteral
	exComparison
	exLogical
	exNot
	exFunctionCall
)

type compOp int

const (
	opEq compOp = iota
	opNe
	opLt
	opGt
	opLe
	opGe
)

type logicalOp int

const (
	opAnd logicalOp = iota
	opOr
)

// literalKind tags the JSON literal kinds allowed in a filter expression.
type literalKind int

const (
	litNull literalKind = iota
	litBool
	litNumber
	litString
)

type literal struct {
	kind literalKind
	b    bool
	n    float64
	s    string
}

func (l literal) toValue() Value {
	switch l.kind {
	case litNull:
		return Null()
	case litBool:
		return Bool(l.b)
	case litNumber:
		return Number(l.n)
	default:
		return String(l.s)
	}
}

// expr is the tagged-union filter expression AST. Every field outside the
// kind's own variant is left zero.
type expr struct {
	kind exprKind

	// exPath
	start    *expr // exCurrent or exRoot
	segments []segment

	// exLiteral
	lit literal

	// exComparison
	cmpLeft  *expr
	cmpOp    compOp
	cmpRight *expr

	// exLogical
	logLeft  *expr
	logOp    logicalOp
	logRight *expr

	// exNot
	notExpr *expr

	// exFunctionCall
	fnName string
	fnArgs []expr

	// singular is true for exPath nodes statically known to yield at
	// most one node (see isSingularPath in parser.go).
	singular bool
}
