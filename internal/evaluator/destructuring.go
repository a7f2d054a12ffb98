package evaluator

import (
	"github.com/tinyjs-go/tinyjs/internal/runtime"
	"github.com/tinyjs-go/tinyjs/internal/value"
	"github.com/tinyjs-go/tinyjs/pkg/ast"
)

// bindPattern implements spec.md §4.5.2's pattern binding: target is
// either a plain identifier/member expression, or an array/object
// literal parsed in pattern mode (see pkg/ast and internal/parser).
// declare controls whether a name binds a fresh scope slot (var/let/
// const, function params) or assigns an existing one (plain `=`).
func (ev *Evaluator) bindPattern(target ast.Expr, v *value.Value, scope *runtime.Scope, declare bool) runtime.Result {
	switch t := target.(type) {
	case *ast.Identifier:
		if declare {
			scope.Declare(t.Name, v, true)
			return ok()
		}
		return ev.assignToTarget(t, v, scope)
	case *ast.AssignExpr: // default value wrapper from a pattern element
		val := v
		if val == nil || val.Kind == value.KindUndefined {
			dv, res := ev.evalExpr(t.Value, scope)
			if res.Kind == runtime.Throw {
				return res
			}
			val = dv
		}
		return ev.bindPattern(t.Target, val, scope, declare)
	case *ast.ArrayLiteral:
		return ev.bindArrayPattern(t, v, scope, declare)
	case *ast.ObjectLiteral:
		return ev.bindObjectPattern(t, v, scope, declare)
	case *ast.MemberExpr:
		return ev.assignToTarget(t, v, scope)
	}
	return ok()
}

func (ev *Evaluator) bindArrayPattern(pat *ast.ArrayLiteral, v *value.Value, scope *runtime.Scope, declare bool) runtime.Result {
	it, res := ev.getIterator(v)
	if res.Kind == runtime.Throw {
		return res
	}
	for i, el := range pat.Elements {
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
			return ev.bindPattern(spread.Argument, rest, scope, declare)
		}
		item, done, res := ev.iteratorNext(it)
		if res.Kind == runtime.Throw {
			return res
		}
		if el == nil {
			continue // elision
		}
		val := value.Undefined
		if !done {
			val = item
		}
		if res := ev.bindPattern(el, val, scope, declare); res.Kind == runtime.Throw {
			return res
		}
		_ = i
	}
	return ok()
}

func (ev *Evaluator) bindObjectPattern(pat *ast.ObjectLiteral, v *value.Value, scope *runtime.Scope, declare bool) runtime.Result {
	taken := map[string]bool{}
	for _, prop := range pat.Properties {
		if prop.Spread {
			rest := ev.NewObject()
			if v.Kind == value.KindObject || v.Kind == value.KindArray {
				for _, l := range v.OwnProperties() {
					if l.Enumerable && !taken[l.Name.Text()] {
						rest.AddOwn(&value.Link{Name: l.Name, Val: l.Val, Writable: true, Enumerable: true, Configurable: true})
					}
				}
			}
			if res := ev.bindPattern(prop.Value, rest, scope, declare); res.Kind == runtime.Throw {
				return res
			}
			continue
		}
		var name string
		if prop.Computed {
			kv, res := ev.evalExpr(prop.Key, scope)
			if res.Kind == runtime.Throw {
				return res
			}
			name = ToStringValue(kv)
		} else if id, isID := prop.Key.(*ast.Identifier); isID {
			name = id.Name
		} else if s, isStr := prop.Key.(*ast.StringLiteral); isStr {
			name = s.Value
		}
		taken[name] = true
		val, res := ev.getProperty(v, value.String(name))
		if res.Kind == runtime.Throw {
			return res
		}
		if res := ev.bindPattern(prop.Value, val, scope, declare); res.Kind == runtime.Throw {
			return res
		}
	}
	return ok()
}
