package evaluator

import (
	"github.com/tinyjs-go/tinyjs/internal/runtime"
	"github.com/tinyjs-go/tinyjs/internal/value"
	"github.com/tinyjs-go/tinyjs/pkg/ast"
	"github.com/tinyjs-go/tinyjs/pkg/token"
)

// makeFunction builds a closure Value for a function declaration,
// function expression, method, or arrow function (spec.md §4.5.4):
// Closure captures the defining scope so free variables resolve
// lexically, and .prototype/.constructor are wired up for ordinary
// (non-arrow) functions so `new` has somewhere to point.
func (ev *Evaluator) makeFunction(decl *ast.Fnc, closure *runtime.Scope) *value.Value {
	fn := ev.newTracked(value.KindFunction)
	fn.Proto = ev.FunctionProto
	fn.Native = &FuncData{Decl: decl, Closure: closure}
	fn.AddOwn(&value.Link{Name: value.String("name"), Val: ev.StringVal(decl.Name)})
	fn.AddOwn(&value.Link{Name: value.String("length"), Val: ev.NumberVal(value.Int32(int32(requiredParamCount(decl.Params))))})
	if !decl.Arrow {
		proto := ev.NewObject()
		proto.AddOwn(&value.Link{Name: value.String("constructor"), Val: fn, Writable: true, Configurable: true})
		fn.AddOwn(&value.Link{Name: value.String("prototype"), Val: proto, Writable: true})
	}
	return fn
}

func requiredParamCount(params []ast.Param) int {
	n := 0
	for _, p := range params {
		if p.Default != nil || p.Rest {
			break
		}
		n++
	}
	return n
}

// Call implements spec.md §4.5.4's function-call protocol: bind
// arguments (including rest/defaults), establish `this`/`arguments`,
// run the body, and turn an implicit fall-off-the-end into `undefined`.
// A native function's Go closure runs directly with no scope of its own.
func (ev *Evaluator) Call(callee, this *value.Value, args []*value.Value) (*value.Value, runtime.Result) {
	return ev.callWithNewTarget(callee, this, args, nil)
}

// callWithNewTarget is Call's full form: newTarget is nil for an ordinary
// call (new.target reads as undefined) and the constructor function for a
// `new` invocation (spec.md §4.5.1 step 4).
func (ev *Evaluator) callWithNewTarget(callee, this *value.Value, args []*value.Value, newTarget *value.Value) (*value.Value, runtime.Result) {
	if !isCallable(callee) {
		return nil, ev.throwError(runtime.CategoryTypeError, token.Position{}, ToStringValue(callee)+" is not a function")
	}
	if !ev.Guard.Enter() {
		return nil, ev.throwError(runtime.CategoryRangeError, token.Position{}, "too much recursion")
	}
	defer ev.Guard.Leave()

	fd, _ := callee.Native.(*FuncData)
	if fd == nil {
		return nil, ev.throwError(runtime.CategoryTypeError, token.Position{}, "value is not callable")
	}

	if fd.BoundTarget != nil {
		return ev.callWithNewTarget(fd.BoundTarget, fd.BoundThis, append(append([]*value.Value{}, fd.BoundArgs...), args...), newTarget)
	}
	if fd.Native != nil {
		return fd.Native(ev, this, args)
	}
	if fd.Decl.Generator && ev.GenFactory != nil {
		return ev.GenFactory(ev, callee, this, args), ok()
	}
	return ev.runFunctionBody(fd, this, newTarget, args)
}

// RunFunctionBody binds parameters and runs a function's body directly,
// bypassing Call's generator-dispatch branch. internal/generator calls
// this from inside a generator's own goroutine to actually execute the
// body it is driving, instead of recursing back into GenFactory the way
// an ordinary Call of the same generator function would (spec.md
// §4.5.5).
func (ev *Evaluator) RunFunctionBody(fd *FuncData, this *value.Value, args []*value.Value) (*value.Value, runtime.Result) {
	return ev.runFunctionBody(fd, this, nil, args)
}

func (ev *Evaluator) runFunctionBody(fd *FuncData, this, newTarget *value.Value, args []*value.Value) (*value.Value, runtime.Result) {
	callThis := this
	if fd.Decl.Arrow {
		callThis = nil // arrow functions never rebind `this`; Scope.ThisValue defers to Closure
	}
	var scopeNewTarget *value.Value
	if !fd.Decl.Arrow {
		scopeNewTarget = newTarget
		if scopeNewTarget == nil {
			scopeNewTarget = value.Undefined
		}
	} // arrow functions never rebind new.target either; Scope.NewTargetValue defers to Closure
	scope := runtime.NewFunctionScope(fd.Closure, callThis, scopeNewTarget)
	if res := ev.bindParams(fd.Decl.Params, args, scope); res.Kind == runtime.Throw {
		return nil, res
	}
	if !fd.Decl.Arrow {
		scope.Declare("arguments", ev.makeArguments(args), true)
	}
	ev.hoist(fd.Decl.Forwards, scope)

	if fd.Decl.ExprBody != nil {
		v, res := ev.evalExpr(fd.Decl.ExprBody, scope)
		if res.Kind == runtime.Throw {
			return nil, res
		}
		return v, ok()
	}

	_, res := ev.execBlock(fd.Decl.Body, scope)
	switch res.Kind {
	case runtime.Throw:
		return nil, res
	case runtime.Return:
		return res.Value, ok()
	default:
		return value.Undefined, ok()
	}
}

// New implements spec.md §4.5.1's `new` protocol: allocate a fresh
// object chained to callee.prototype, invoke callee with it as `this`,
// and use the constructor's own return value only if it is itself an
// object.
func (ev *Evaluator) New(callee *value.Value, args []*value.Value, pos token.Position) (*value.Value, runtime.Result) {
	if !isCallable(callee) {
		return nil, ev.throwError(runtime.CategoryTypeError, pos, "value is not a constructor")
	}
	instance := ev.NewObject()
	if protoLink := callee.FindOwn(value.String("prototype")); protoLink != nil {
		instance.Proto = protoLink.Val
	}
	result, res := ev.callWithNewTarget(callee, instance, args, callee)
	if res.Kind == runtime.Throw {
		return nil, res
	}
	if result != nil && (result.Kind == value.KindObject || result.Kind == value.KindArray || result.Kind == value.KindError) {
		return result, ok()
	}
	return instance, ok()
}

// bindParams binds positional args to the function's formal parameters,
// handling defaults (used when the caller supplied undefined or
// omitted the argument), rest parameters, and destructuring targets.
func (ev *Evaluator) bindParams(params []ast.Param, args []*value.Value, scope *runtime.Scope) runtime.Result {
	for i, p := range params {
		if p.Rest {
			rest := ev.NewArray()
			for j := i; j < len(args); j++ {
				ev.arrayPush(rest, args[j])
			}
			if res := ev.bindPattern(p.Target, rest, scope, true); res.Kind == runtime.Throw {
				return res
			}
			return ok()
		}
		var v *value.Value
		if i < len(args) {
			v = args[i]
		} else {
			v = value.Undefined
		}
		if (v == nil || v.Kind == value.KindUndefined) && p.Default != nil {
			dv, res := ev.evalExpr(p.Default, scope)
			if res.Kind == runtime.Throw {
				return res
			}
			v = dv
		}
		if res := ev.bindPattern(p.Target, v, scope, true); res.Kind == runtime.Throw {
			return res
		}
	}
	return ok()
}

// makeArguments builds the array-like `arguments` object (spec.md
// §4.5.4): indexable and length-bearing but not a true Array.
func (ev *Evaluator) makeArguments(args []*value.Value) *value.Value {
	obj := ev.NewObject()
	for i, a := range args {
		obj.AddOwn(&value.Link{Name: value.String(itoa(i)), Val: a, Writable: true, Enumerable: true, Configurable: true})
	}
	obj.AddOwn(&value.Link{Name: value.String("length"), Val: ev.NumberVal(value.Int32(int32(len(args)))), Writable: true})
	return obj
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	var buf [20]byte
	pos := len(buf)
	for i > 0 {
		pos--
		buf[pos] = byte('0' + i%10)
		i /= 10
	}
	return string(buf[pos:])
}

// arrayPush appends v to an array's integer-indexed properties and
// bumps its length (spec.md §3.3).
func (ev *Evaluator) arrayPush(arr *value.Value, v *value.Value) {
	idx := arr.Length()
	arr.AddOwn(&value.Link{Name: value.String(itoa(int(idx))), Val: v, Writable: true, Enumerable: true, Configurable: true})
}
