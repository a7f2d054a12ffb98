package evaluator

import (
	"github.com/tinyjs-go/tinyjs/internal/runtime"
	"github.com/tinyjs-go/tinyjs/internal/value"
	"github.com/tinyjs-go/tinyjs/pkg/ast"
)

// execStmt is the evaluator's single statement dispatch point (spec.md
// §4.5.2). Its Result's Kind carries whatever abrupt completion must
// propagate to the nearest handler: Break/Continue to a loop or switch,
// Return to the enclosing call, Throw to the nearest catch or the host.
func (ev *Evaluator) execStmt(stmt ast.Stmt, scope *runtime.Scope) (*value.Value, runtime.Result) {
	switch s := stmt.(type) {
	case *ast.Block:
		return ev.execBlock(s, scope)
	case *ast.VarDecl:
		return ev.execVarDecl(s, scope)
	case *ast.ExprStmt:
		v, res := ev.evalExpr(s.Expr, scope)
		if res.Kind != runtime.Normal {
			return nil, res
		}
		return v, ok()
	case *ast.EmptyStmt:
		return nil, ok()
	case *ast.Return:
		if s.Argument == nil {
			return nil, runtime.ReturnResult(value.Undefined)
		}
		v, res := ev.evalExpr(s.Argument, scope)
		if res.Kind != runtime.Normal {
			return nil, res
		}
		return nil, runtime.ReturnResult(v)
	case *ast.Break:
		return nil, runtime.BreakResult(s.Label)
	case *ast.Continue:
		return nil, runtime.ContinueResult(s.Label)
	case *ast.Throw:
		v, res := ev.evalExpr(s.Argument, scope)
		if res.Kind != runtime.Normal {
			return nil, res
		}
		return nil, runtime.ThrowResult(v, s.Pos())
	case *ast.If:
		c, res := ev.evalExpr(s.Cond, scope)
		if res.Kind != runtime.Normal {
			return nil, res
		}
		if ToBoolean(c) {
			return ev.execStmt(s.Then, scope)
		}
		if s.Else != nil {
			return ev.execStmt(s.Else, scope)
		}
		return nil, ok()
	case *ast.Loop:
		return ev.execLoop(s, scope, "")
	case *ast.Try:
		return ev.execTry(s, scope)
	case *ast.Switch:
		return ev.execSwitch(s, scope, "")
	case *ast.With:
		return ev.execWith(s, scope)
	case *ast.Labeled:
		return ev.execLabeled(s, scope)
	case *ast.Fnc:
		// A function declaration reached as a statement is already bound
		// by hoisting; re-executing it here is a no-op fall-through.
		return nil, ok()
	}
	return nil, ev.throwError(runtime.CategorySyntaxError, stmt.Pos(), "unsupported statement")
}

// execBlock runs a brace-delimited statement list, opening a fresh Let
// scope only when the block actually declares a lexical name (spec.md
// §4.4): a block with no let/const/function entries reuses the
// enclosing scope outright.
func (ev *Evaluator) execBlock(b *ast.Block, scope *runtime.Scope) (*value.Value, runtime.Result) {
	blockScope := scope
	if b.Forwards != nil && (len(b.Forwards.Lexical) > 0 || len(b.Forwards.Functions) > 0) {
		blockScope = runtime.NewLetScope(scope)
		ev.hoist(b.Forwards, blockScope)
	}
	var last *value.Value
	for _, stmt := range b.Body {
		v, res := ev.execStmt(stmt, blockScope)
		if res.Kind != runtime.Normal {
			return nil, res
		}
		if v != nil {
			last = v
		}
	}
	return last, ok()
}

func (ev *Evaluator) execVarDecl(s *ast.VarDecl, scope *runtime.Scope) (*value.Value, runtime.Result) {
	for _, d := range s.Declarators {
		var v *value.Value = value.Undefined
		if d.Init != nil {
			var res runtime.Result
			v, res = ev.evalExpr(d.Init, scope)
			if res.Kind != runtime.Normal {
				return nil, res
			}
		}
		if s.Kind == ast.DeclVar {
			// var's binding slot already exists from hoisting; this is a
			// plain assignment into it, not a fresh declaration.
			if res := ev.bindPattern(d.Target, v, scope, false); res.Kind == runtime.Throw {
				return nil, res
			}
			continue
		}
		if res := ev.bindLexical(d.Target, v, scope, s.Kind == ast.DeclConst); res.Kind == runtime.Throw {
			return nil, res
		}
	}
	return nil, ok()
}

// bindLexical assigns into a let/const binding's already-hoisted scope
// slot (spec.md §4.4: hoisting pre-declares the name Uninitialized;
// reaching the declarator's initializer clears the TDZ by writing
// through the existing Link rather than adding a new one).
func (ev *Evaluator) bindLexical(target ast.Expr, v *value.Value, scope *runtime.Scope, constant bool) runtime.Result {
	if id, isID := target.(*ast.Identifier); isID {
		link, _, found := runtime.Lookup(scope, id.Name)
		if !found {
			scope.Declare(id.Name, v, !constant)
			return ok()
		}
		link.Val = v
		link.Immutable = constant
		return ok()
	}
	return ev.bindDestructuringLexical(target, v, scope, constant)
}

// bindDestructuringLexical mirrors bindLexical for array/object pattern
// targets, whose individual leaf identifiers were hoisted the same way.
func (ev *Evaluator) bindDestructuringLexical(target ast.Expr, v *value.Value, scope *runtime.Scope, constant bool) runtime.Result {
	switch t := target.(type) {
	case *ast.ArrayLiteral:
		it, res := ev.getIterator(v)
		if res.Kind == runtime.Throw {
			return res
		}
		for _, el := range t.Elements {
			if el == nil {
				if _, _, res := ev.iteratorNext(it); res.Kind == runtime.Throw {
					return res
				}
				continue
			}
			if spread, isSpread := el.(*ast.SpreadElement); isSpread {
				rest := ev.NewArray()
				for {
					item, done, res := ev.iteratorNext(it)
					if res.Kind == runtime.Throw {
						return res
					}
					if done {
						break
					}
					ev.arrayPush(rest, item)
				}
				return ev.bindLexical(spread.Argument, rest, scope, constant)
			}
			item, _, res := ev.iteratorNext(it)
			if res.Kind == runtime.Throw {
				return res
			}
			target := el
			val := item
			if def, isDef := el.(*ast.AssignExpr); isDef {
				target = def.Target
				if val == nil || val.Kind == value.KindUndefined {
					dv, res := ev.evalExpr(def.Value, scope)
					if res.Kind == runtime.Throw {
						return res
					}
					val = dv
				}
			}
			if res := ev.bindLexical(target, val, scope, constant); res.Kind == runtime.Throw {
				return res
			}
		}
		return ok()
	case *ast.ObjectLiteral:
		for _, prop := range t.Properties {
			var name string
			if prop.Computed {
				kv, res := ev.evalExpr(prop.Key, scope)
				if res.Kind == runtime.Throw {
					return res
				}
				name = ToStringValue(kv)
			} else if id, isID := prop.Key.(*ast.Identifier); isID {
				name = id.Name
			} else if str, isStr := prop.Key.(*ast.StringLiteral); isStr {
				name = str.Value
			}
			val, res := ev.getProperty(v, value.String(name))
			if res.Kind == runtime.Throw {
				return res
			}
			target := prop.Value
			if def, isDef := prop.Value.(*ast.AssignExpr); isDef {
				target = def.Target
				if val == nil || val.Kind == value.KindUndefined {
					dv, res := ev.evalExpr(def.Value, scope)
					if res.Kind == runtime.Throw {
						return res
					}
					val = dv
				}
			}
			if res := ev.bindLexical(target, val, scope, constant); res.Kind == runtime.Throw {
				return res
			}
		}
		return ok()
	}
	return ok()
}

// execLoop dispatches on Loop.Kind (spec.md §4.5.2). ownLabel is the
// label attached to this loop via a wrapping Labeled statement, if any —
// it is what a matching labeled break/continue must see to stop here
// instead of bubbling further.
func (ev *Evaluator) execLoop(l *ast.Loop, scope *runtime.Scope, ownLabel string) (*value.Value, runtime.Result) {
	switch l.Kind {
	case ast.LoopFor:
		return ev.execForLoop(l, scope, ownLabel)
	case ast.LoopWhile:
		return ev.execWhileLoop(l, scope, ownLabel, false)
	case ast.LoopDoWhile:
		return ev.execWhileLoop(l, scope, ownLabel, true)
	case ast.LoopForIn:
		return ev.execForInLoop(l, scope, ownLabel)
	case ast.LoopForOf:
		return ev.execForOfLoop(l, scope, ownLabel)
	}
	return nil, ok()
}

func matchesLoop(res runtime.Result, ownLabel string) (isBreak, isContinue bool) {
	if res.Kind == runtime.Break && (res.Label == "" || res.Label == ownLabel) {
		return true, false
	}
	if res.Kind == runtime.Continue && (res.Label == "" || res.Label == ownLabel) {
		return false, true
	}
	return false, false
}

func (ev *Evaluator) execForLoop(l *ast.Loop, scope *runtime.Scope, ownLabel string) (*value.Value, runtime.Result) {
	loopScope := runtime.NewLetScope(scope)
	if l.Init != nil {
		if vd, isDecl := l.Init.(*ast.VarDecl); isDecl && vd.Kind != ast.DeclVar {
			for _, d := range vd.Declarators {
				if id, isID := d.Target.(*ast.Identifier); isID {
					loopScope.Declare(id.Name, value.Uninitialize, vd.Kind != ast.DeclConst)
				}
			}
		}
		if _, res := ev.execStmt(l.Init, loopScope); res.Kind == runtime.Throw {
			return nil, res
		}
	}
	for {
		if l.Cond != nil {
			c, res := ev.evalExpr(l.Cond, loopScope)
			if res.Kind == runtime.Throw {
				return nil, res
			}
			if !ToBoolean(c) {
				break
			}
		}
		// Each iteration gets its own Let-scope clone so closures formed in
		// the body capture that iteration's bindings (spec.md §4.4/§8's
		// per-iteration-let invariant for `for (let ...)`).
		iterScope := loopScope.Clone()
		_, res := ev.execStmt(l.Body, iterScope)
		if isBreak, isContinue := matchesLoop(res, ownLabel); isBreak {
			break
		} else if !isContinue && res.Kind != runtime.Normal {
			return nil, res
		}
		loopScope = iterScope.Clone()
		if l.Post != nil {
			if _, res := ev.evalExpr(l.Post, loopScope); res.Kind == runtime.Throw {
				return nil, res
			}
		}
	}
	return nil, ok()
}

func (ev *Evaluator) execWhileLoop(l *ast.Loop, scope *runtime.Scope, ownLabel string, isDo bool) (*value.Value, runtime.Result) {
	first := true
	for {
		if !(isDo && first) {
			c, res := ev.evalExpr(l.Cond, scope)
			if res.Kind == runtime.Throw {
				return nil, res
			}
			if !ToBoolean(c) {
				break
			}
		}
		first = false
		_, res := ev.execStmt(l.Body, scope)
		if isBreak, isContinue := matchesLoop(res, ownLabel); isBreak {
			break
		} else if !isContinue && res.Kind != runtime.Normal {
			return nil, res
		}
		if isDo {
			c, res := ev.evalExpr(l.Cond, scope)
			if res.Kind == runtime.Throw {
				return nil, res
			}
			if !ToBoolean(c) {
				break
			}
		}
	}
	return nil, ok()
}

func (ev *Evaluator) execForInLoop(l *ast.Loop, scope *runtime.Scope, ownLabel string) (*value.Value, runtime.Result) {
	obj, res := ev.evalExpr(l.Right, scope)
	if res.Kind == runtime.Throw {
		return nil, res
	}
	if isNullish(obj) {
		return nil, ok()
	}
	seen := map[string]bool{}
	slot, markID := ev.Heap.NewMark()
	for cur := obj; cur != nil; cur = cur.Proto {
		if !cur.Mark(slot, markID) {
			break // prototype cycle guard
		}
		for _, link := range cur.OwnProperties() {
			if !link.Enumerable {
				continue
			}
			name := link.Name.Text()
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			iterScope := runtime.NewLetScope(scope)
			if res := ev.bindForTarget(l.Left, ev.StringVal(name), iterScope); res.Kind == runtime.Throw {
				ev.Heap.ReleaseSlot(slot)
				return nil, res
			}
			_, res := ev.execStmt(l.Body, iterScope)
			if isBreak, isContinue := matchesLoop(res, ownLabel); isBreak {
				ev.Heap.ReleaseSlot(slot)
				return nil, ok()
			} else if !isContinue && res.Kind != runtime.Normal {
				ev.Heap.ReleaseSlot(slot)
				return nil, res
			}
		}
	}
	ev.Heap.ReleaseSlot(slot)
	return nil, ok()
}

func (ev *Evaluator) execForOfLoop(l *ast.Loop, scope *runtime.Scope, ownLabel string) (*value.Value, runtime.Result) {
	iterable, res := ev.evalExpr(l.Right, scope)
	if res.Kind == runtime.Throw {
		return nil, res
	}
	it, res := ev.getIterator(iterable)
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
		iterScope := runtime.NewLetScope(scope)
		if res := ev.bindForTarget(l.Left, item, iterScope); res.Kind == runtime.Throw {
			return nil, res
		}
		_, res = ev.execStmt(l.Body, iterScope)
		if isBreak, isContinue := matchesLoop(res, ownLabel); isBreak {
			return nil, ok()
		} else if !isContinue && res.Kind != runtime.Normal {
			return nil, res
		}
	}
	return nil, ok()
}

// bindForTarget binds one for-in/for-of iteration's value to Left,
// which is either a VarDecl (`for (let x of ...)`) or a bare assignment
// target (`for (x of ...)`).
func (ev *Evaluator) bindForTarget(left ast.Stmt, v *value.Value, scope *runtime.Scope) runtime.Result {
	switch t := left.(type) {
	case *ast.VarDecl:
		target := t.Declarators[0].Target
		if t.Kind == ast.DeclVar {
			return ev.bindPattern(target, v, scope, false)
		}
		return ev.bindPattern(target, v, scope, true)
	case *ast.ExprStmt:
		return ev.assignToTarget(t.Expr, v, scope)
	}
	return ok()
}

func (ev *Evaluator) execTry(s *ast.Try, scope *runtime.Scope) (*value.Value, runtime.Result) {
	v, res := ev.execBlock(s.Block, scope)
	if res.Kind == runtime.Throw && s.Catch != nil {
		catchScope := runtime.NewLetScope(scope)
		if s.Catch.Param != nil {
			if bres := ev.bindPattern(s.Catch.Param, res.Value, catchScope, true); bres.Kind == runtime.Throw {
				res = bres
			} else {
				v, res = ev.execBlock(s.Catch.Body, catchScope)
			}
		} else {
			v, res = ev.execBlock(s.Catch.Body, catchScope)
		}
	}
	if s.Finally != nil {
		_, fres := ev.execBlock(s.Finally, scope)
		if fres.Kind != runtime.Normal {
			return nil, fres // finally's own abrupt completion overrides try/catch's
		}
	}
	return v, res
}

func (ev *Evaluator) execSwitch(s *ast.Switch, scope *runtime.Scope, ownLabel string) (*value.Value, runtime.Result) {
	disc, res := ev.evalExpr(s.Disc, scope)
	if res.Kind == runtime.Throw {
		return nil, res
	}
	switchScope := runtime.NewLetScope(scope)
	matchIdx := -1
	defaultIdx := -1
	for i, c := range s.Cases {
		if c.Test == nil {
			defaultIdx = i
			continue
		}
		tv, res := ev.evalExpr(c.Test, switchScope)
		if res.Kind == runtime.Throw {
			return nil, res
		}
		if StrictEqual(disc, tv) {
			matchIdx = i
			break
		}
	}
	if matchIdx == -1 {
		matchIdx = defaultIdx
	}
	if matchIdx == -1 {
		return nil, ok()
	}
	for i := matchIdx; i < len(s.Cases); i++ {
		for _, stmt := range s.Cases[i].Body {
			_, res := ev.execStmt(stmt, switchScope)
			if res.Kind == runtime.Break && (res.Label == "" || res.Label == ownLabel) {
				return nil, ok()
			}
			if res.Kind != runtime.Normal {
				return nil, res
			}
		}
	}
	return nil, ok()
}

func (ev *Evaluator) execWith(s *ast.With, scope *runtime.Scope) (*value.Value, runtime.Result) {
	target, res := ev.evalExpr(s.Object, scope)
	if res.Kind == runtime.Throw {
		return nil, res
	}
	withScope := runtime.NewWithScope(scope, target)
	return ev.execStmt(s.Body, withScope)
}

func (ev *Evaluator) execLabeled(s *ast.Labeled, scope *runtime.Scope) (*value.Value, runtime.Result) {
	var v *value.Value
	var res runtime.Result
	switch body := s.Body.(type) {
	case *ast.Loop:
		v, res = ev.execLoop(body, scope, s.Label)
	case *ast.Switch:
		v, res = ev.execSwitch(body, scope, s.Label)
	default:
		v, res = ev.execStmt(s.Body, scope)
	}
	if res.Kind == runtime.Break && res.Label == s.Label {
		return v, ok()
	}
	return v, res
}
