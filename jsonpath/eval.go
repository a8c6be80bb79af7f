package jsonpath

import "unicode/utf8"

// Query evaluates the compiled path against root and returns, in the
// order the path's segments and selectors produce them, pointers into
// root's own Array/Object storage for every node the path selects. The
// returned slice is empty (never nil on a non-match, non-error) when
// nothing matches; evaluation itself never errors, per RFC 9535 §2.1's
// "paths always produce a node list".
func (jp *JsonPath) Query(root *Value) []*Value {
	nodes := []*Value{root}
	for _, seg := range jp.segments {
		nodes = jp.evalSegment(seg, nodes, root, 0)
	}
	if nodes == nil {
		nodes = []*Value{}
	}
	return nodes
}

func (jp *JsonPath) evalSegment(seg segment, nodes []*Value, root *Value, depth int) []*Value {
	var out []*Value
	switch seg.kind {
	case segChild:
		for _, n := range nodes {
			out = append(out, jp.evalSelectors(seg.selectors, n, root, depth)...)
		}
	case segDescendant:
		for _, n := range nodes {
			for _, d := range jp.collectDescendants(n) {
				out = append(out, jp.evalSelectors(seg.selectors, d, root, depth)...)
			}
		}
	}
	return out
}

func (jp *JsonPath) evalSelectors(sels []selector, n *Value, root *Value, depth int) []*Value {
	var out []*Value
	for _, sel := range sels {
		out = append(out, jp.evalSelector(sel, n, root, depth)...)
	}
	return out
}

func (jp *JsonPath) evalSelector(sel selector, n *Value, root *Value, depth int) []*Value {
	switch sel.kind {
	case selName:
		obj, ok := n.Object()
		if !ok {
			return nil
		}
		i, ok := obj.index[sel.name]
		if !ok {
			return nil
		}
		return []*Value{&obj.values[i]}
	case selIndex:
		arr, ok := n.Array()
		if !ok {
			return nil
		}
		i, ok := normalizeIndex(sel.idx, len(arr.Items))
		if !ok {
			return nil
		}
		return []*Value{&arr.Items[i]}
	case selWildcard:
		if arr, ok := n.Array(); ok {
			out := make([]*Value, len(arr.Items))
			for i := range arr.Items {
				out[i] = &arr.Items[i]
			}
			return out
		}
		if obj, ok := n.Object(); ok {
			out := make([]*Value, len(obj.values))
			for i := range obj.values {
				out[i] = &obj.values[i]
			}
			return out
		}
		return nil
	case selSlice:
		arr, ok := n.Array()
		if !ok {
			return nil
		}
		return evalSlice(arr, sel.start, sel.end, sel.step)
	case selFilter:
		return jp.evalFilterSelector(sel.filter, n, root, depth)
	}
	return nil
}

// normalizeIndex resolves a selector index (which may be negative, per
// RFC 9535 §2.3.3) against an array of length n, reporting whether it
// lands in bounds.
func normalizeIndex(i int64, n int) (int, bool) {
	if i >= 0 {
		if i < int64(n) {
			return int(i), true
		}
		return 0, false
	}
	norm := int64(n) + i
	if norm >= 0 && norm < int64(n) {
		return int(norm), true
	}
	return 0, false
}

func normalizeSliceBound(b int64, n int64) int64 {
	if b >= 0 {
		return b
	}
	return n + b
}

// evalSlice implements RFC 9535 §2.3.4's slice selector, including its
// negative-step and negative-bound normalization rules.
func evalSlice(arr *Array, startP, endP, stepP *int64) []*Value {
	n := int64(len(arr.Items))
	step := int64(1)
	if stepP != nil {
		step = *stepP
	}
	if step == 0 {
		return nil
	}

	var lower, upper int64
	if step > 0 {
		if startP != nil {
			lower = normalizeSliceBound(*startP, n)
		} else {
			lower = 0
		}
		if lower < 0 {
			lower = 0
		}
		if lower > n {
			lower = n
		}
		if endP != nil {
			upper = normalizeSliceBound(*endP, n)
		} else {
			upper = n
		}
		if upper < 0 {
			upper = 0
		}
		if upper > n {
			upper = n
		}
	} else {
		if startP != nil {
			lower = normalizeSliceBound(*startP, n)
		} else {
			lower = n - 1
		}
		if lower > n-1 {
			lower = n - 1
		}
		if endP != nil {
			upper = normalizeSliceBound(*endP, n)
		} else {
			upper = -1
		}
		if upper < -1 {
			upper = -1
		}
	}

	var out []*Value
	if step > 0 {
		for i := lower; i < upper; i += step {
			out = append(out, &arr.Items[i])
		}
	} else {
		for i := lower; i > upper; i += step {
			if i < 0 || i >= n {
				continue
			}
			out = append(out, &arr.Items[i])
		}
	}
	return out
}

// collectDescendants returns n followed by a pre-order, depth-first
// enumeration of every sub-value of n, stopping the descent (but still
// keeping what was already found) once jp.maxDepth is reached.
func (jp *JsonPath) collectDescendants(n *Value) []*Value {
	type frame struct {
		v     *Value
		depth int
	}
	var out []*Value
	stack := []frame{{n, 0}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, top.v)
		if top.depth >= jp.maxDepth {
			continue
		}
		if arr, ok := top.v.Array(); ok {
			for i := len(arr.Items) - 1; i >= 0; i-- {
				stack = append(stack, frame{&arr.Items[i], top.depth + 1})
			}
		} else if obj, ok := top.v.Object(); ok {
			for i := len(obj.values) - 1; i >= 0; i-- {
				stack = append(stack, frame{&obj.values[i], top.depth + 1})
			}
		}
	}
	return out
}

func (jp *JsonPath) evalFilterSelector(filter expr, n *Value, root *Value, depth int) []*Value {
	if arr, ok := n.Array(); ok {
		var out []*Value
		for i := range arr.Items {
			child := &arr.Items[i]
			if isTruthy(jp.evalExpr(filter, child, root, depth+1)) {
				out = append(out, child)
			}
		}
		return out
	}
	if obj, ok := n.Object(); ok {
		var out []*Value
		for i := range obj.values {
			child := &obj.values[i]
			if isTruthy(jp.evalExpr(filter, child, root, depth+1)) {
				out = append(out, child)
			}
		}
		return out
	}
	return nil
}

// exprResultKind distinguishes the three outcomes RFC 9535 §2.4.2
// assigns a filter expression: a single value, a node list, or Nothing.
type exprResultKind int

const (
	resValue exprResultKind = iota
	resNodes
	resNothing
)

type exprResult struct {
	kind  exprResultKind
	val   Value
	nodes []*Value
}

func valRes(v Value) exprResult       { return exprResult{kind: resValue, val: v} }
func nodesRes(ns []*Value) exprResult { return exprResult{kind: resNodes, nodes: ns} }
func nothingRes() exprResult          { return exprResult{kind: resNothing} }

// isTruthy implements the test-expression truth table: a node list is
// true iff non-empty; a boolean value is its own truth; everything else
// (including Nothing) is false.
func isTruthy(r exprResult) bool {
	switch r.kind {
	case resNodes:
		return len(r.nodes) > 0
	case resValue:
		b, ok := r.val.Bool()
		return ok && b
	default:
		return false
	}
}

func (jp *JsonPath) evalExpr(e expr, cur *Value, root *Value, depth int) exprResult {
	if depth > jp.maxDepth {
		return nothingRes()
	}
	switch e.kind {
	case exCurrent:
		return nodesRes([]*Value{cur})
	case exRoot:
		return nodesRes([]*Value{root})
	case exPath:
		nodes := []*Value{cur}
		if e.start.kind == exRoot {
			nodes = []*Value{root}
		}
		for _, seg := range e.segments {
			nodes = jp.evalSegment(seg, nodes, root, depth+1)
		}
		return nodesRes(nodes)
	case exLiteral:
		return valRes(e.lit.toValue())
	case exComparison:
		l := jp.reduceToValue(e.cmpLeft, cur, root, depth)
		r := jp.reduceToValue(e.cmpRight, cur, root, depth)
		return valRes(Bool(compareValues(l, r, e.cmpOp)))
	case exLogical:
		l := jp.evalExpr(*e.logLeft, cur, root, depth+1)
		if e.logOp == opAnd {
			if !isTruthy(l) {
				return valRes(Bool(false))
			}
			r := jp.evalExpr(*e.logRight, cur, root, depth+1)
			return valRes(Bool(isTruthy(r)))
		}
		if isTruthy(l) {
			return valRes(Bool(true))
		}
		r := jp.evalExpr(*e.logRight, cur, root, depth+1)
		return valRes(Bool(isTruthy(r)))
	case exNot:
		inner := jp.evalExpr(*e.notExpr, cur, root, depth+1)
		return valRes(Bool(!isTruthy(inner)))
	case exFunctionCall:
		return jp.evalFunctionCall(e, cur, root, depth+1)
	}
	return nothingRes()
}

// maybeValue is the ValueType slot RFC 9535 calls Nothing when absent:
// a singular path with no match, or a value-returning function applied
// to Nothing, reduces to an absent maybeValue rather than an error.
type maybeValue struct {
	present bool
	v       Value
}

func (jp *JsonPath) reduceToValue(ePtr *expr, cur *Value, root *Value, depth int) maybeValue {
	switch ePtr.kind {
	case exLiteral:
		return maybeValue{true, ePtr.lit.toValue()}
	case exFunctionCall:
		res := jp.evalExpr(*ePtr, cur, root, depth)
		if res.kind == resValue {
			return maybeValue{true, res.val}
		}
		return maybeValue{}
	default: // exPath, statically known singular by the parser
		res := jp.evalExpr(*ePtr, cur, root, depth)
		if res.kind == resNodes && len(res.nodes) == 1 {
			return maybeValue{true, *res.nodes[0]}
		}
		return maybeValue{}
	}
}

func compareValues(l, r maybeValue, op compOp) bool {
	switch op {
	case opEq:
		return valuesEqual(l, r)
	case opNe:
		return !valuesEqual(l, r)
	case opLt:
		return valuesLess(l, r)
	case opGt:
		return valuesLess(r, l)
	case opLe:
		return valuesEqual(l, r) || valuesLess(l, r)
	case opGe:
		return valuesEqual(l, r) || valuesLess(r, l)
	}
	return false
}

func valuesEqual(l, r maybeValue) bool {
	if !l.present && !r.present {
		return true
	}
	if l.present != r.present {
		return false
	}
	return jsonValuesEqual(l.v, r.v)
}

func valuesLess(l, r maybeValue) bool {
	if !l.present || !r.present {
		return false
	}
	return jsonValuesLess(l.v, r.v)
}

func jsonValuesEqual(a, b Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch a.Kind() {
	case KindNull:
		return true
	case KindBool:
		ab, _ := a.Bool()
		bb, _ := b.Bool()
		return ab == bb
	case KindNumber:
		an, _ := a.Number()
		bn, _ := b.Number()
		return an == bn
	case KindString:
		as, _ := a.Str()
		bs, _ := b.Str()
		return as == bs
	case KindArray:
		aa, _ := a.Array()
		ba, _ := b.Array()
		if len(aa.Items) != len(ba.Items) {
			return false
		}
		for i := range aa.Items {
			if !jsonValuesEqual(aa.Items[i], ba.Items[i]) {
				return false
			}
		}
		return true
	case KindObject:
		ao, _ := a.Object()
		bo, _ := b.Object()
		if ao.Len() != bo.Len() {
			return false
		}
		for i, k := range ao.Keys() {
			bv, ok := bo.Get(k)
			if !ok || !jsonValuesEqual(ao.Values()[i], bv) {
				return false
			}
		}
		return true
	}
	return false
}

func jsonValuesLess(a, b Value) bool {
	if a.Kind() == KindNumber && b.Kind() == KindNumber {
		an, _ := a.Number()
		bn, _ := b.Number()
		return an < bn
	}
	if a.Kind() == KindString && b.Kind() == KindString {
		as, _ := a.Str()
		bs, _ := b.Str()
		return as < bs
	}
	return false
}

func (jp *JsonPath) evalFunctionCall(e expr, cur *Value, root *Value, depth int) exprResult {
	switch e.fnName {
	case "length":
		return jp.fnLength(e.fnArgs[0], cur, root, depth)
	case "count":
		return jp.fnCount(e.fnArgs[0], cur, root, depth)
	case "value":
		return jp.fnValue(e.fnArgs[0], cur, root, depth)
	case "match":
		return jp.fnMatchSearch(e, cur, root, depth, true)
	case "search":
		return jp.fnMatchSearch(e, cur, root, depth, false)
	}
	if fn, ok := jp.funcs[e.fnName]; ok {
		return jp.callCustomFunction(fn, e.fnArgs, cur, root, depth)
	}
	return nothingRes()
}

func (jp *JsonPath) fnLength(argE expr, cur *Value, root *Value, depth int) exprResult {
	mv := jp.reduceToValue(&argE, cur, root, depth)
	if !mv.present {
		return nothingRes()
	}
	switch mv.v.Kind() {
	case KindString:
		s, _ := mv.v.Str()
		return valRes(Number(float64(utf8.RuneCountInString(s))))
	case KindArray:
		a, _ := mv.v.Array()
		return valRes(Number(float64(a.Len())))
	case KindObject:
		o, _ := mv.v.Object()
		return valRes(Number(float64(o.Len())))
	default:
		return nothingRes()
	}
}

func (jp *JsonPath) fnCount(argE expr, cur *Value, root *Value, depth int) exprResult {
	res := jp.evalExpr(argE, cur, root, depth)
	switch res.kind {
	case resNodes:
		return valRes(Number(float64(len(res.nodes))))
	case resValue:
		return valRes(Number(1))
	default:
		return valRes(Number(0))
	}
}

func (jp *JsonPath) fnValue(argE expr, cur *Value, root *Value, depth int) exprResult {
	res := jp.evalExpr(argE, cur, root, depth)
	switch res.kind {
	case resValue:
		return valRes(res.val)
	case resNodes:
		if len(res.nodes) == 1 {
			return valRes(*res.nodes[0])
		}
		return nothingRes()
	default:
		return nothingRes()
	}
}

func (jp *JsonPath) fnMatchSearch(e expr, cur *Value, root *Value, depth int, anchored bool) exprResult {
	sRes := jp.reduceToValue(&e.fnArgs[0], cur, root, depth)
	pRes := jp.reduceToValue(&e.fnArgs[1], cur, root, depth)
	if !sRes.present || !pRes.present {
		return valRes(Bool(false))
	}
	s, ok1 := sRes.v.Str()
	pattern, ok2 := pRes.v.Str()
	if !ok1 || !ok2 {
		return valRes(Bool(false))
	}
	re, ok := jp.regexes.get(pattern, anchored)
	if !ok {
		return valRes(Bool(false))
	}
	return valRes(Bool(re.MatchString(s)))
}

// callCustomFunction resolves each argument according to the parameter
// role the extension declared, then hands the resolved values to the
// extension's own Call.
func (jp *JsonPath) callCustomFunction(fn Function, args []expr, cur *Value, root *Value, depth int) exprResult {
	resolved := make([]any, len(args))
	for i := range args {
		want := roleValue
		if i < len(fn.Params) {
			want = role(fn.Params[i])
		}
		switch want {
		case roleNodes:
			res := jp.evalExpr(args[i], cur, root, depth)
			resolved[i] = res.nodes
		case roleLogical:
			res := jp.evalExpr(args[i], cur, root, depth)
			resolved[i] = isTruthy(res)
		default:
			mv := jp.reduceToValue(&args[i], cur, root, depth)
			if mv.present {
				resolved[i] = mv.v
			}
		}
	}
	v, ok := fn.Call(resolved)
	if role(fn.Return) == roleLogical {
		b, _ := v.Bool()
		return valRes(Bool(b))
	}
	if !ok {
		return nothingRes()
	}
	return valRes(v)
}
