package evaluator

import (
	"strings"

	"github.com/tinyjs-go/tinyjs/internal/runtime"
	"github.com/tinyjs-go/tinyjs/internal/value"
	"github.com/tinyjs-go/tinyjs/pkg/token"
)

func ok() runtime.Result { return runtime.Ok }

// ToBoolean implements ECMAScript's ToBoolean abstract operation
// (spec.md §4.3): every value is truthy except undefined, null, false,
// NaN, +/-0, and the empty string.
func ToBoolean(v *value.Value) bool {
	switch v.Kind {
	case value.KindUndefined, value.KindNull, value.KindUninitialized:
		return false
	case value.KindBoolean:
		return v.Bool
	case value.KindNumber:
		return !v.Num.IsNaN() && v.Num.Float64() != 0
	case value.KindString:
		return v.Str != ""
	default:
		return true
	}
}

// ToPrimitive implements spec.md §4.3's single-fallback rule: try
// valueOf then toString (or the reverse order for hint "string"),
// calling into script only if a user-defined method is present;
// non-object kinds pass through unchanged.
func (ev *Evaluator) ToPrimitive(v *value.Value, hint string) (*value.Value, runtime.Result) {
	if v.Kind != value.KindObject && v.Kind != value.KindArray && !isCallable(v) && v.Kind != value.KindError {
		return v, ok()
	}
	methods := []string{"valueOf", "toString"}
	if hint == "string" {
		methods = []string{"toString", "valueOf"}
	}
	slot, markID := ev.Heap.NewMark()
	defer ev.Heap.ReleaseSlot(slot)
	for _, name := range methods {
		link := v.FindWithPrototypeChain(value.String(name), slot, markID)
		if link == nil || link.Val == nil || !isCallable(link.Val) {
			continue
		}
		result, res := ev.Call(link.Val, v, nil)
		if res.Kind == runtime.Throw {
			return nil, res
		}
		if result != nil && result.Kind != value.KindObject && result.Kind != value.KindArray {
			return result, ok()
		}
	}
	return ev.StringVal(ev.defaultToString(v)), ok()
}

func (ev *Evaluator) defaultToString(v *value.Value) string {
	switch v.Kind {
	case value.KindArray:
		return "[object Array]"
	case value.KindError:
		return v.Str
	default:
		return "[object Object]"
	}
}

// ToNumber implements ECMAScript's ToNumber for every primitive kind.
// Object coercion must go through ToPrimitive first; callers that may
// see an object operand use BinaryOp's helpers instead of calling this
// directly.
func ToNumber(v *value.Value) value.Number {
	switch v.Kind {
	case value.KindNumber:
		return v.Num
	case value.KindBoolean:
		if v.Bool {
			return value.Int32(1)
		}
		return value.Int32(0)
	case value.KindNull:
		return value.Int32(0)
	case value.KindUndefined, value.KindUninitialized:
		return value.NaN()
	case value.KindString:
		s := strings.TrimSpace(v.Str)
		if s == "" {
			return value.Int32(0)
		}
		return value.ParseFloat(s)
	default:
		return value.NaN()
	}
}

// ToStringValue implements ECMAScript's ToString for primitives.
func ToStringValue(v *value.Value) string {
	switch v.Kind {
	case value.KindString:
		return v.Str
	case value.KindNumber:
		return v.Num.String()
	case value.KindBoolean:
		if v.Bool {
			return "true"
		}
		return "false"
	case value.KindNull:
		return "null"
	case value.KindUndefined, value.KindUninitialized:
		return "undefined"
	default:
		return ""
	}
}

func isNullish(v *value.Value) bool {
	return v.Kind == value.KindUndefined || v.Kind == value.KindNull
}

func isCallable(v *value.Value) bool {
	return v.Kind == value.KindFunction || v.Kind == value.KindBoundFunction || v.Kind == value.KindNativeFunction
}

// BinaryOp evaluates a fully-evaluated-operand binary expression per
// spec.md §4.3/§4.5.1's coercion table.
func (ev *Evaluator) BinaryOp(op token.Type, l, r *value.Value, pos token.Position) (*value.Value, runtime.Result) {
	switch op {
	case token.PLUS:
		return ev.add(l, r, pos)
	case token.MINUS:
		return ev.numOp(l, r, value.Sub), ok()
	case token.STAR:
		return ev.numOp(l, r, value.Mul), ok()
	case token.SLASH:
		return ev.numOp(l, r, value.Div), ok()
	case token.PERCENT:
		return ev.numOp(l, r, value.Mod), ok()
	case token.STAR_STAR:
		return ev.numOp(l, r, value.Pow), ok()
	case token.SHL:
		return ev.NumberVal(value.Int32(ToNumber(l).ToInt32() << (ToNumber(r).ToUInt32() & 31))), ok()
	case token.SHR:
		return ev.NumberVal(value.Int32(ToNumber(l).ToInt32() >> (ToNumber(r).ToUInt32() & 31))), ok()
	case token.USHR:
		return ev.NumberVal(value.FromFloat64(float64(ToNumber(l).ToUInt32() >> (ToNumber(r).ToUInt32() & 31)))), ok()
	case token.BIT_AND:
		return ev.NumberVal(value.Int32(ToNumber(l).ToInt32() & ToNumber(r).ToInt32())), ok()
	case token.BIT_OR:
		return ev.NumberVal(value.Int32(ToNumber(l).ToInt32() | ToNumber(r).ToInt32())), ok()
	case token.BIT_XOR:
		return ev.NumberVal(value.Int32(ToNumber(l).ToInt32() ^ ToNumber(r).ToInt32())), ok()
	case token.EQ:
		eq, res := ev.looseEqual(l, r)
		if res.Kind == runtime.Throw {
			return nil, res
		}
		return ev.BoolVal(eq), ok()
	case token.NOT_EQ:
		eq, res := ev.looseEqual(l, r)
		if res.Kind == runtime.Throw {
			return nil, res
		}
		return ev.BoolVal(!eq), ok()
	case token.STRICT_EQ:
		return ev.BoolVal(StrictEqual(l, r)), ok()
	case token.STRICT_NOT_EQ:
		return ev.BoolVal(!StrictEqual(l, r)), ok()
	case token.LT, token.GT, token.LE, token.GE:
		return ev.relational(op, l, r)
	case token.INSTANCEOF:
		return ev.instanceOf(l, r, pos)
	case token.IN:
		return ev.inOp(l, r, pos)
	}
	return nil, ev.throwError(runtime.CategoryTypeError, pos, "unsupported operator "+op.String())
}

func (ev *Evaluator) add(l, r *value.Value, pos token.Position) (*value.Value, runtime.Result) {
	lp, res := ev.ToPrimitive(l, "default")
	if res.Kind == runtime.Throw {
		return nil, res
	}
	rp, res := ev.ToPrimitive(r, "default")
	if res.Kind == runtime.Throw {
		return nil, res
	}
	if lp.Kind == value.KindString || rp.Kind == value.KindString {
		return ev.StringVal(ToStringValue(lp) + ToStringValue(rp)), ok()
	}
	return ev.NumberVal(value.Add(ToNumber(lp), ToNumber(rp))), ok()
}

func (ev *Evaluator) numOp(l, r *value.Value, f func(a, b value.Number) value.Number) *value.Value {
	return ev.NumberVal(f(ToNumber(l), ToNumber(r)))
}

func (ev *Evaluator) relational(op token.Type, l, r *value.Value) (*value.Value, runtime.Result) {
	lp, res := ev.ToPrimitive(l, "number")
	if res.Kind == runtime.Throw {
		return nil, res
	}
	rp, res := ev.ToPrimitive(r, "number")
	if res.Kind == runtime.Throw {
		return nil, res
	}
	if lp.Kind == value.KindString && rp.Kind == value.KindString {
		return ev.BoolVal(compareMatches(op, strings.Compare(lp.Str, rp.Str))), ok()
	}
	cmp, cok := value.Compare(ToNumber(lp), ToNumber(rp))
	if !cok {
		return ev.BoolVal(false), ok()
	}
	return ev.BoolVal(compareMatches(op, cmp)), ok()
}

func compareMatches(op token.Type, c int) bool {
	switch op {
	case token.LT:
		return c < 0
	case token.GT:
		return c > 0
	case token.LE:
		return c <= 0
	case token.GE:
		return c >= 0
	}
	return false
}

// StrictEqual implements `===` (spec.md §4.3): same kind and same
// value, with reference identity for objects/arrays/functions.
func StrictEqual(l, r *value.Value) bool {
	if l.Kind != r.Kind {
		return false
	}
	switch l.Kind {
	case value.KindUndefined, value.KindNull, value.KindUninitialized:
		return true
	case value.KindNumber:
		return value.NumericEqual(l.Num, r.Num)
	case value.KindString:
		return l.Str == r.Str
	case value.KindBoolean:
		return l.Bool == r.Bool
	case value.KindSymbol:
		return l.Sym.Equal(r.Sym)
	default:
		return l == r
	}
}

func (ev *Evaluator) looseEqual(l, r *value.Value) (bool, runtime.Result) {
	if l.Kind == r.Kind {
		return StrictEqual(l, r), ok()
	}
	if isNullish(l) && isNullish(r) {
		return true, ok()
	}
	if isNullish(l) || isNullish(r) {
		return false, ok()
	}
	if l.Kind == value.KindNumber && r.Kind == value.KindString {
		return value.NumericEqual(l.Num, ToNumber(r)), ok()
	}
	if l.Kind == value.KindString && r.Kind == value.KindNumber {
		return value.NumericEqual(ToNumber(l), r.Num), ok()
	}
	if l.Kind == value.KindBoolean {
		return ev.looseEqual(ev.NumberVal(ToNumber(l)), r)
	}
	if r.Kind == value.KindBoolean {
		return ev.looseEqual(l, ev.NumberVal(ToNumber(r)))
	}
	if (l.Kind == value.KindObject || l.Kind == value.KindArray) && (r.Kind == value.KindNumber || r.Kind == value.KindString) {
		lp, res := ev.ToPrimitive(l, "default")
		if res.Kind == runtime.Throw {
			return false, res
		}
		return ev.looseEqual(lp, r)
	}
	if (r.Kind == value.KindObject || r.Kind == value.KindArray) && (l.Kind == value.KindNumber || l.Kind == value.KindString) {
		rp, res := ev.ToPrimitive(r, "default")
		if res.Kind == runtime.Throw {
			return false, res
		}
		return ev.looseEqual(l, rp)
	}
	return false, ok()
}

func (ev *Evaluator) instanceOf(l, r *value.Value, pos token.Position) (*value.Value, runtime.Result) {
	if !isCallable(r) {
		return nil, ev.throwError(runtime.CategoryTypeError, pos, "right-hand side of 'instanceof' is not callable")
	}
	protoLink := r.FindOwn(value.String("prototype"))
	if protoLink == nil {
		return ev.BoolVal(false), ok()
	}
	proto := protoLink.Val
	for cur := l.Proto; cur != nil; cur = cur.Proto {
		if cur == proto {
			return ev.BoolVal(true), ok()
		}
	}
	return ev.BoolVal(false), ok()
}

func (ev *Evaluator) inOp(l, r *value.Value, pos token.Position) (*value.Value, runtime.Result) {
	if r.Kind != value.KindObject && r.Kind != value.KindArray && !isCallable(r) {
		return nil, ev.throwError(runtime.CategoryTypeError, pos, "cannot use 'in' operator on a non-object")
	}
	name := value.String(ToStringValue(l))
	slot, markID := ev.Heap.NewMark()
	defer ev.Heap.ReleaseSlot(slot)
	return ev.BoolVal(r.FindWithPrototypeChain(name, slot, markID) != nil), ok()
}

// UnaryOp evaluates a fully-evaluated-operand unary expression.
func (ev *Evaluator) UnaryOp(op token.Type, v *value.Value) *value.Value {
	switch op {
	case token.LOGICAL_NOT:
		return ev.BoolVal(!ToBoolean(v))
	case token.BIT_NOT:
		return ev.NumberVal(value.Int32(^ToNumber(v).ToInt32()))
	case token.PLUS:
		return ev.NumberVal(ToNumber(v))
	case token.MINUS:
		return ev.NumberVal(value.Neg(ToNumber(v)))
	case token.TYPEOF:
		return ev.StringVal(TypeOf(v))
	case token.VOID:
		return value.Undefined
	}
	return value.Undefined
}

// TypeOf implements the `typeof` operator's string results.
func TypeOf(v *value.Value) string {
	switch v.Kind {
	case value.KindUndefined, value.KindUninitialized:
		return "undefined"
	case value.KindNull:
		return "object"
	case value.KindBoolean:
		return "boolean"
	case value.KindNumber:
		return "number"
	case value.KindString:
		return "string"
	case value.KindSymbol:
		return "symbol"
	case value.KindFunction, value.KindBoundFunction, value.KindNativeFunction:
		return "function"
	default:
		return "object"
	}
}
