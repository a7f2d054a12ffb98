package evaluator

import (
	"github.com/tinyjs-go/tinyjs/internal/runtime"
	"github.com/tinyjs-go/tinyjs/internal/value"
	"github.com/tinyjs-go/tinyjs/pkg/ast"
	"github.com/tinyjs-go/tinyjs/pkg/token"
)

// evalExpr is the evaluator's single expression dispatch point
// (spec.md §4.5.1). It returns the expression's value, or a non-Normal
// Result (Throw, or Return/Break/Continue bubbled up from a yield
// resumption) that the caller must propagate without using the value.
func (ev *Evaluator) evalExpr(expr ast.Expr, scope *runtime.Scope) (*value.Value, runtime.Result) {
	switch e := expr.(type) {
	case *ast.Identifier:
		link, _, found := runtime.Lookup(scope, e.Name)
		if !found {
			return nil, ev.throwError(runtime.CategoryReferenceError, e.Pos(), e.Name+" is not defined")
		}
		if link.Val == value.Uninitialize {
			return nil, ev.throwError(runtime.CategoryReferenceError, e.Pos(), "cannot access '"+e.Name+"' before initialization")
		}
		return link.Val, ok()
	case *ast.NumberLiteral:
		return ev.NumberVal(parseNumberLiteral(e.Raw)), ok()
	case *ast.StringLiteral:
		return ev.StringVal(e.Value), ok()
	case *ast.BoolLiteral:
		return ev.BoolVal(e.Value), ok()
	case *ast.NullLiteral:
		return value.Null, ok()
	case *ast.UndefinedLiteral:
		return value.Undefined, ok()
	case *ast.ThisExpr:
		return runtime.ThisValue(scope), ok()
	case *ast.NewTargetExpr:
		return runtime.NewTargetValue(scope), ok()
	case *ast.SuperExpr:
		return nil, ev.throwError(runtime.CategorySyntaxError, e.Pos(), "'super' is only valid inside a class method")
	case *ast.RegexLiteral:
		return ev.makeRegex(e), ok()
	case *ast.SequenceExpr:
		var last *value.Value = value.Undefined
		for _, sub := range e.Exprs {
			v, res := ev.evalExpr(sub, scope)
			if res.Kind == runtime.Throw {
				return nil, res
			}
			last = v
		}
		return last, ok()
	case *ast.ArrayLiteral:
		return ev.evalArrayLiteral(e, scope)
	case *ast.ObjectLiteral:
		return ev.evalObjectLiteral(e, scope)
	case *ast.TemplateLiteral:
		return ev.evalTemplateLiteral(e, scope)
	case *ast.FunctionExpr:
		return ev.makeFunction(e.Fn, scope), ok()
	case *ast.UnaryExpr:
		if e.Op == token.DELETE {
			return ev.evalDelete(e.Operand, scope)
		}
		if e.Op == token.TYPEOF {
			if id, isID := e.Operand.(*ast.Identifier); isID {
				if link, _, found := runtime.Lookup(scope, id.Name); found {
					if link.Val == value.Uninitialize {
						return nil, ev.throwError(runtime.CategoryReferenceError, e.Pos(), "cannot access '"+id.Name+"' before initialization")
					}
					return ev.StringVal(TypeOf(link.Val)), ok()
				}
				return ev.StringVal("undefined"), ok()
			}
		}
		v, res := ev.evalExpr(e.Operand, scope)
		if res.Kind == runtime.Throw {
			return nil, res
		}
		return ev.UnaryOp(e.Op, v), ok()
	case *ast.UpdateExpr:
		return ev.evalUpdate(e, scope)
	case *ast.BinaryExpr:
		l, res := ev.evalExpr(e.Left, scope)
		if res.Kind == runtime.Throw {
			return nil, res
		}
		r, res := ev.evalExpr(e.Right, scope)
		if res.Kind == runtime.Throw {
			return nil, res
		}
		return ev.BinaryOp(e.Op, l, r, e.Pos())
	case *ast.LogicalExpr:
		l, res := ev.evalExpr(e.Left, scope)
		if res.Kind == runtime.Throw {
			return nil, res
		}
		switch e.Op {
		case token.LOGICAL_AND:
			if !ToBoolean(l) {
				return l, ok()
			}
		case token.LOGICAL_OR:
			if ToBoolean(l) {
				return l, ok()
			}
		case token.QUESTION_QUESTION:
			if !isNullish(l) {
				return l, ok()
			}
		}
		return ev.evalExpr(e.Right, scope)
	case *ast.ConditionalExpr:
		c, res := ev.evalExpr(e.Cond, scope)
		if res.Kind == runtime.Throw {
			return nil, res
		}
		if ToBoolean(c) {
			return ev.evalExpr(e.Then, scope)
		}
		return ev.evalExpr(e.Else, scope)
	case *ast.AssignExpr:
		return ev.evalAssign(e, scope)
	case *ast.MemberExpr:
		obj, prop, res := ev.evalMemberTarget(e, scope)
		if res.Kind == runtime.Throw {
			return nil, res
		}
		if obj == nil { // optional chaining short-circuited
			return value.Undefined, ok()
		}
		return ev.getProperty(obj, prop)
	case *ast.CallExpr:
		return ev.evalCall(e, scope)
	case *ast.NewExpr:
		callee, res := ev.evalExpr(e.Callee, scope)
		if res.Kind == runtime.Throw {
			return nil, res
		}
		args, res := ev.evalArgs(e.Args, scope)
		if res.Kind == runtime.Throw {
			return nil, res
		}
		return ev.New(callee, args, e.Pos())
	case *ast.YieldExpr:
		var v *value.Value = value.Undefined
		if e.Argument != nil {
			var res runtime.Result
			v, res = ev.evalExpr(e.Argument, scope)
			if res.Kind == runtime.Throw {
				return nil, res
			}
		}
		if e.Delegate {
			return ev.evalYieldDelegate(v, scope)
		}
		return ev.evalYield(v)
	case *ast.SpreadElement:
		return ev.evalExpr(e.Argument, scope)
	}
	return nil, ev.throwError(runtime.CategorySyntaxError, expr.Pos(), "unsupported expression")
}

// parseNumberLiteral converts a NumberLiteral's raw source spelling into
// a Number, dispatching on the 0x/0o prefixes the lexer recognizes
// (spec.md §4.1.1) before falling back to ParseFloat for decimal/float
// spellings.
func parseNumberLiteral(raw string) value.Number {
	if len(raw) > 2 && raw[0] == '0' && (raw[1] == 'x' || raw[1] == 'X') {
		return value.ParseInt(raw[2:], 16)
	}
	if len(raw) > 2 && raw[0] == '0' && (raw[1] == 'o' || raw[1] == 'O') {
		return value.ParseInt(raw[2:], 8)
	}
	return value.ParseFloat(raw)
}

// evalArgs evaluates a call/new argument list, expanding SpreadElement
// entries via the iterator protocol (spec.md §4.5.1).
func (ev *Evaluator) evalArgs(list []ast.Expr, scope *runtime.Scope) ([]*value.Value, runtime.Result) {
	var args []*value.Value
	for _, a := range list {
		if sp, isSpread := a.(*ast.SpreadElement); isSpread {
			v, res := ev.evalExpr(sp.Argument, scope)
			if res.Kind == runtime.Throw {
				return nil, res
			}
			it, res := ev.getIterator(v)
			if res.Kind == runtime.Throw {
				return nil, res
			}
			for {
				item, done, res := ev.iteratorNext(it)
				if res.Kind == runtime.Throw {
					return nil, res
				}
				if done {
					break
				}
				args = append(args, item)
			}
			continue
		}
		v, res := ev.evalExpr(a, scope)
		if res.Kind == runtime.Throw {
			return nil, res
		}
		args = append(args, v)
	}
	return args, ok()
}

func (ev *Evaluator) evalArrayLiteral(e *ast.ArrayLiteral, scope *runtime.Scope) (*value.Value, runtime.Result) {
	arr := ev.NewArray()
	idx := uint32(0)
	for _, el := range e.Elements {
		if el == nil {
			idx++
			continue
		}
		if sp, isSpread := el.(*ast.SpreadElement); isSpread {
			v, res := ev.evalExpr(sp.Argument, scope)
			if res.Kind == runtime.Throw {
				return nil, res
			}
			it, res := ev.getIterator(v)
			if res.Kind == runtime.Throw {
				return nil, res
			}
			for {
				item, done, res := ev.iteratorNext(it)
				if res.Kind == runtime.Throw {
					return nil, res
				}
				if done {
					break
				}
				arr.AddOwn(&value.Link{Name: value.String(itoa(int(idx))), Val: item, Writable: true, Enumerable: true, Configurable: true})
				idx++
			}
			continue
		}
		v, res := ev.evalExpr(el, scope)
		if res.Kind == runtime.Throw {
			return nil, res
		}
		arr.AddOwn(&value.Link{Name: value.String(itoa(int(idx))), Val: v, Writable: true, Enumerable: true, Configurable: true})
		idx++
	}
	return arr, ok()
}

func (ev *Evaluator) evalObjectLiteral(e *ast.ObjectLiteral, scope *runtime.Scope) (*value.Value, runtime.Result) {
	obj := ev.NewObject()
	for _, prop := range e.Properties {
		if prop.Spread {
			v, res := ev.evalExpr(prop.Value, scope)
			if res.Kind == runtime.Throw {
				return nil, res
			}
			if v.Kind == value.KindObject || v.Kind == value.KindArray {
				for _, l := range v.OwnProperties() {
					if l.Enumerable {
						obj.AddOwn(&value.Link{Name: l.Name, Val: l.Val, Writable: true, Enumerable: true, Configurable: true})
					}
				}
			}
			continue
		}
		var name value.PropertyName
		if prop.Computed {
			kv, res := ev.evalExpr(prop.Key, scope)
			if res.Kind == runtime.Throw {
				return nil, res
			}
			name = value.String(ToStringValue(kv))
		} else if id, isID := prop.Key.(*ast.Identifier); isID {
			name = value.String(id.Name)
		} else if s, isStr := prop.Key.(*ast.StringLiteral); isStr {
			name = value.String(s.Value)
		} else if n, isNum := prop.Key.(*ast.NumberLiteral); isNum {
			name = value.String(parseNumberLiteral(n.Raw).String())
		}
		v, res := ev.evalExpr(prop.Value, scope)
		if res.Kind == runtime.Throw {
			return nil, res
		}
		if prop.Kind == "get" || prop.Kind == "set" {
			if existing := obj.FindOwn(name); existing != nil && existing.IsAccessor() {
				if prop.Kind == "get" {
					existing.Val.AddOwn(&value.Link{Name: value.FromSymbol(value.SymAccessorGet), Val: v, Writable: true})
				} else {
					existing.Val.AddOwn(&value.Link{Name: value.FromSymbol(value.SymAccessorSet), Val: v, Writable: true})
				}
				continue
			}
			var accessor *value.Value
			if prop.Kind == "get" {
				accessor = value.NewAccessor(v, nil)
			} else {
				accessor = value.NewAccessor(nil, v)
			}
			obj.AddOwn(&value.Link{Name: name, Val: accessor, Writable: true, Enumerable: true, Configurable: true})
			continue
		}
		if l := obj.FindOwn(name); l != nil {
			l.Val = v
		} else {
			obj.AddOwn(&value.Link{Name: name, Val: v, Writable: true, Enumerable: true, Configurable: true})
		}
	}
	return obj, ok()
}

func (ev *Evaluator) evalTemplateLiteral(e *ast.TemplateLiteral, scope *runtime.Scope) (*value.Value, runtime.Result) {
	if e.Tag != nil {
		return ev.evalTaggedTemplate(e, scope)
	}
	out := e.Cooked[0]
	for i, expr := range e.Exprs {
		v, res := ev.evalExpr(expr, scope)
		if res.Kind == runtime.Throw {
			return nil, res
		}
		out += ToStringValue(v) + e.Cooked[i+1]
	}
	return ev.StringVal(out), ok()
}

func (ev *Evaluator) evalTaggedTemplate(e *ast.TemplateLiteral, scope *runtime.Scope) (*value.Value, runtime.Result) {
	tagFn, res := ev.evalExpr(e.Tag, scope)
	if res.Kind == runtime.Throw {
		return nil, res
	}
	strings := ev.NewArray()
	raw := ev.NewArray()
	for i, c := range e.Cooked {
		strings.AddOwn(&value.Link{Name: value.String(itoa(i)), Val: ev.StringVal(c), Writable: true, Enumerable: true, Configurable: true})
		raw.AddOwn(&value.Link{Name: value.String(itoa(i)), Val: ev.StringVal(e.Raw[i]), Writable: true, Enumerable: true, Configurable: true})
	}
	strings.AddOwn(&value.Link{Name: value.String("raw"), Val: raw, Writable: true})
	args := []*value.Value{strings}
	for _, expr := range e.Exprs {
		v, res := ev.evalExpr(expr, scope)
		if res.Kind == runtime.Throw {
			return nil, res
		}
		args = append(args, v)
	}
	return ev.Call(tagFn, value.Undefined, args)
}

func (ev *Evaluator) evalDelete(target ast.Expr, scope *runtime.Scope) (*value.Value, runtime.Result) {
	m, isMember := target.(*ast.MemberExpr)
	if !isMember {
		return ev.BoolVal(true), ok()
	}
	obj, prop, res := ev.evalMemberTarget(m, scope)
	if res.Kind == runtime.Throw {
		return nil, res
	}
	if obj == nil {
		return ev.BoolVal(true), ok()
	}
	return ev.BoolVal(obj.RemoveOwn(prop)), ok()
}

func (ev *Evaluator) evalUpdate(e *ast.UpdateExpr, scope *runtime.Scope) (*value.Value, runtime.Result) {
	old, res := ev.evalExpr(e.Operand, scope)
	if res.Kind == runtime.Throw {
		return nil, res
	}
	n := ToNumber(old)
	var next value.Number
	if e.Op == token.INCR {
		next = value.Add(n, value.Int32(1))
	} else {
		next = value.Sub(n, value.Int32(1))
	}
	newVal := ev.NumberVal(next)
	if res := ev.assignToTarget(e.Operand, newVal, scope); res.Kind == runtime.Throw {
		return nil, res
	}
	if e.Prefix {
		return newVal, ok()
	}
	return ev.NumberVal(n), ok()
}

// evalMemberTarget resolves a MemberExpr's object and property name,
// honoring optional chaining: a nullish object under `?.` returns
// (nil, _, Normal) to signal the caller to short-circuit to undefined
// without evaluating the property.
func (ev *Evaluator) evalMemberTarget(e *ast.MemberExpr, scope *runtime.Scope) (*value.Value, value.PropertyName, runtime.Result) {
	obj, res := ev.evalExpr(e.Object, scope)
	if res.Kind == runtime.Throw {
		return nil, value.PropertyName{}, res
	}
	if e.Optional && isNullish(obj) {
		return nil, value.PropertyName{}, ok()
	}
	if isNullish(obj) {
		return nil, value.PropertyName{}, ev.throwError(runtime.CategoryTypeError, e.Pos(),
			"cannot read properties of "+ToStringValue(obj)+" (reading '"+memberName(e)+"')")
	}
	if e.Computed {
		kv, res := ev.evalExpr(e.Property, scope)
		if res.Kind == runtime.Throw {
			return nil, value.PropertyName{}, res
		}
		if sym, isSym := kv.Sym, kv.Kind == value.KindSymbol; isSym {
			return obj, value.FromSymbol(sym), ok()
		}
		return obj, value.String(ToStringValue(kv)), ok()
	}
	id := e.Property.(*ast.Identifier)
	return obj, value.String(id.Name), ok()
}

func memberName(e *ast.MemberExpr) string {
	if !e.Computed {
		if id, isID := e.Property.(*ast.Identifier); isID {
			return id.Name
		}
	}
	return "?"
}

// getProperty implements spec.md §4.3's property read: array `length`
// is computed, everything else walks the prototype chain.
func (ev *Evaluator) getProperty(obj *value.Value, name value.PropertyName) (*value.Value, runtime.Result) {
	if obj.Kind == value.KindString {
		if idx, isIdx := name.IsArrayIndex(); isIdx {
			runes := []rune(obj.Str)
			if int(idx) < len(runes) {
				return ev.StringVal(string(runes[idx])), ok()
			}
			return value.Undefined, ok()
		}
		if name.Text() == "length" {
			return ev.NumberVal(value.Int32(int32(len([]rune(obj.Str))))), ok()
		}
	}
	slot, markID := ev.Heap.NewMark()
	defer ev.Heap.ReleaseSlot(slot)
	link := obj.FindWithPrototypeChain(name, slot, markID)
	if link == nil {
		return value.Undefined, ok()
	}
	if link.IsAccessor() {
		getter := link.Getter()
		if getter == nil {
			return value.Undefined, ok()
		}
		return ev.Call(getter, obj, nil)
	}
	return link.Val, ok()
}

// setProperty implements spec.md §4.3's property write, including
// prototype-chain accessor dispatch and the immutable/non-writable
// rejection that produces a catchable TypeError.
func (ev *Evaluator) setProperty(obj *value.Value, name value.PropertyName, v *value.Value, pos token.Position) runtime.Result {
	slot, markID := ev.Heap.NewMark()
	inherited := obj.FindWithPrototypeChain(name, slot, markID)
	ev.Heap.ReleaseSlot(slot)
	if inherited != nil && inherited.IsAccessor() {
		setter := inherited.Setter()
		if setter == nil {
			return ok()
		}
		_, res := ev.Call(setter, obj, []*value.Value{v})
		return res
	}
	own := obj.FindOwn(name)
	if own != nil {
		if own.Immutable || !own.Writable {
			return ev.throwError(runtime.CategoryTypeError, pos, "cannot assign to read only property '"+name.Text()+"'")
		}
		if obj.Kind == value.KindArray && name.Text() == "length" {
			newLen := ToNumber(v).ToUInt32()
			obj.TruncateArrayIndicesAbove(newLen)
		}
		own.Val = v
		return ok()
	}
	if !obj.Extensible {
		return ev.throwError(runtime.CategoryTypeError, pos, "cannot add property "+name.Text()+", object is not extensible")
	}
	obj.AddOwn(&value.Link{Name: name, Val: v, Writable: true, Enumerable: true, Configurable: true})
	return ok()
}

// assignToTarget assigns v to an Identifier or MemberExpr target.
func (ev *Evaluator) assignToTarget(target ast.Expr, v *value.Value, scope *runtime.Scope) runtime.Result {
	switch t := target.(type) {
	case *ast.Identifier:
		link, _, found := runtime.Lookup(scope, t.Name)
		if !found {
			ev.Global.Declare(t.Name, v, true)
			return ok()
		}
		if link.Immutable || !link.Writable {
			return ev.throwError(runtime.CategoryTypeError, t.Pos(), "assignment to constant variable.")
		}
		link.Val = v
		return ok()
	case *ast.MemberExpr:
		obj, prop, res := ev.evalMemberTarget(t, scope)
		if res.Kind == runtime.Throw {
			return res
		}
		return ev.setProperty(obj, prop, v, t.Pos())
	case *ast.ArrayLiteral, *ast.ObjectLiteral:
		return ev.bindPattern(target, v, scope, false)
	}
	return ok()
}

func (ev *Evaluator) evalAssign(e *ast.AssignExpr, scope *runtime.Scope) (*value.Value, runtime.Result) {
	if e.Op == token.ASSIGN {
		v, res := ev.evalExpr(e.Value, scope)
		if res.Kind == runtime.Throw {
			return nil, res
		}
		if res := ev.assignToTarget(e.Target, v, scope); res.Kind == runtime.Throw {
			return nil, res
		}
		return v, ok()
	}
	if e.Op == token.LOGICAL_AND_ASSIGN || e.Op == token.LOGICAL_OR_ASSIGN || e.Op == token.QUESTION_QUESTION_ASSIGN {
		cur, res := ev.evalExpr(e.Target, scope)
		if res.Kind == runtime.Throw {
			return nil, res
		}
		skip := false
		switch e.Op {
		case token.LOGICAL_AND_ASSIGN:
			skip = !ToBoolean(cur)
		case token.LOGICAL_OR_ASSIGN:
			skip = ToBoolean(cur)
		case token.QUESTION_QUESTION_ASSIGN:
			skip = !isNullish(cur)
		}
		if skip {
			return cur, ok()
		}
		v, res := ev.evalExpr(e.Value, scope)
		if res.Kind == runtime.Throw {
			return nil, res
		}
		if res := ev.assignToTarget(e.Target, v, scope); res.Kind == runtime.Throw {
			return nil, res
		}
		return v, ok()
	}

	cur, res := ev.evalExpr(e.Target, scope)
	if res.Kind == runtime.Throw {
		return nil, res
	}
	rhs, res := ev.evalExpr(e.Value, scope)
	if res.Kind == runtime.Throw {
		return nil, res
	}
	binOp := compoundToBinary(e.Op)
	v, res := ev.BinaryOp(binOp, cur, rhs, e.Pos())
	if res.Kind == runtime.Throw {
		return nil, res
	}
	if res := ev.assignToTarget(e.Target, v, scope); res.Kind == runtime.Throw {
		return nil, res
	}
	return v, ok()
}

func compoundToBinary(op token.Type) token.Type {
	switch op {
	case token.PLUS_ASSIGN:
		return token.PLUS
	case token.MINUS_ASSIGN:
		return token.MINUS
	case token.STAR_ASSIGN:
		return token.STAR
	case token.SLASH_ASSIGN:
		return token.SLASH
	case token.PERCENT_ASSIGN:
		return token.PERCENT
	case token.STAR_STAR_ASSIGN:
		return token.STAR_STAR
	case token.SHL_ASSIGN:
		return token.SHL
	case token.SHR_ASSIGN:
		return token.SHR
	case token.USHR_ASSIGN:
		return token.USHR
	case token.AND_ASSIGN:
		return token.BIT_AND
	case token.OR_ASSIGN:
		return token.BIT_OR
	case token.XOR_ASSIGN:
		return token.BIT_XOR
	}
	return token.ILLEGAL
}

func (ev *Evaluator) evalCall(e *ast.CallExpr, scope *runtime.Scope) (*value.Value, runtime.Result) {
	var this *value.Value = value.Undefined
	var callee *value.Value
	var res runtime.Result

	if m, isMember := e.Callee.(*ast.MemberExpr); isMember {
		obj, prop, r := ev.evalMemberTarget(m, scope)
		if r.Kind == runtime.Throw {
			return nil, r
		}
		if obj == nil {
			return value.Undefined, ok() // optional-chained member short-circuited
		}
		this = obj
		callee, res = ev.getProperty(obj, prop)
	} else {
		callee, res = ev.evalExpr(e.Callee, scope)
	}
	if res.Kind == runtime.Throw {
		return nil, res
	}
	if e.Optional && isNullish(callee) {
		return value.Undefined, ok()
	}
	args, res := ev.evalArgs(e.Args, scope)
	if res.Kind == runtime.Throw {
		return nil, res
	}
	if !isCallable(callee) {
		return nil, ev.throwError(runtime.CategoryTypeError, e.Pos(), calleeName(e.Callee)+" is not a function")
	}
	return ev.Call(callee, this, args)
}

func calleeName(e ast.Expr) string {
	switch t := e.(type) {
	case *ast.Identifier:
		return t.Name
	case *ast.MemberExpr:
		return memberName(t)
	}
	return "value"
}

func (ev *Evaluator) evalYieldDelegate(iterable *value.Value, scope *runtime.Scope) (*value.Value, runtime.Result) {
	it, res := ev.getIterator(iterable)
	if res.Kind == runtime.Throw {
		return nil, res
	}
	var last *value.Value = value.Undefined
	for {
		item, done, res := ev.iteratorNext(it)
		if res.Kind == runtime.Throw {
			return nil, res
		}
		if done {
			last = item
			break
		}
		_, res = ev.evalYield(item)
		if res.Kind == runtime.Throw || res.Kind == runtime.Return {
			return nil, res
		}
	}
	return last, ok()
}
