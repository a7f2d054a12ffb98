// Package evaluator tree-walks a pkg/ast token tree against
// internal/value's Value model, threading internal/runtime's Result
// discipline through every expression and statement instead of using
// Go panics for script-level control flow (spec.md §4.5): a thrown
// script exception is a Result of kind Throw returned up the call
// stack like any other value, not a recover()'d panic.
package evaluator

import (
	"github.com/tinyjs-go/tinyjs/internal/runtime"
	"github.com/tinyjs-go/tinyjs/internal/value"
	"github.com/tinyjs-go/tinyjs/pkg/ast"
	"github.com/tinyjs-go/tinyjs/pkg/token"
)

// NativeFunc is the calling convention a host extends the engine with
// (spec.md §4.6): ordinary Go code, given the receiver and already-
// evaluated arguments, returning either a value or a Result of kind
// Throw/Return to signal an exception.
type NativeFunc func(ev *Evaluator, this *value.Value, args []*value.Value) (*value.Value, runtime.Result)

// FuncData is the Go-side payload hung off a KindFunction/
// KindBoundFunction Value's Native field.
type FuncData struct {
	Decl    *ast.Fnc
	Closure *runtime.Scope
	Native  NativeFunc

	// Bound-function fields (spec.md §4.5.4's Function.prototype.bind).
	BoundTarget *value.Value
	BoundThis   *value.Value
	BoundArgs   []*value.Value
}

// Evaluator owns one engine instance: its heap, global scope, and
// shared prototype objects. Not safe for concurrent use; host code
// embeds one Evaluator per logical script context (spec.md §1).
type Evaluator struct {
	Heap   *runtime.Heap
	Global *runtime.Scope
	Guard  *runtime.RecursionGuard

	// GenFactory, when wired by internal/generator, intercepts calls to
	// generator functions (spec.md §4.5.5); genStack tracks the
	// currently-suspending generator bodies so a `yield` expression
	// reaches the right one.
	GenFactory GenFactory
	genStack   []GenSink

	ObjectProto   *value.Value
	ArrayProto    *value.Value
	FunctionProto *value.Value
	StringProto   *value.Value
	NumberProto   *value.Value
	BooleanProto  *value.Value
	ErrorProto    *value.Value
	RegexProto    *value.Value
	GeneratorProto *value.Value

	console func(args []*value.Value)
}

// New creates an Evaluator with its root prototype chain wired
// (spec.md §3.3's "every object chains to a prototype") and an empty
// global scope ready for AddNative/globals to populate.
func New() *Evaluator {
	ev := &Evaluator{
		Heap:  runtime.NewHeap(),
		Guard: runtime.NewRecursionGuard(),
	}
	ev.ObjectProto = ev.newTracked(value.KindObject)
	ev.ArrayProto = ev.newTracked(value.KindObject)
	ev.ArrayProto.Proto = ev.ObjectProto
	ev.FunctionProto = ev.newTracked(value.KindObject)
	ev.FunctionProto.Proto = ev.ObjectProto
	ev.StringProto = ev.newTracked(value.KindObject)
	ev.StringProto.Proto = ev.ObjectProto
	ev.NumberProto = ev.newTracked(value.KindObject)
	ev.NumberProto.Proto = ev.ObjectProto
	ev.BooleanProto = ev.newTracked(value.KindObject)
	ev.BooleanProto.Proto = ev.ObjectProto
	ev.ErrorProto = ev.newTracked(value.KindObject)
	ev.ErrorProto.Proto = ev.ObjectProto
	ev.RegexProto = ev.newTracked(value.KindObject)
	ev.RegexProto.Proto = ev.ObjectProto
	ev.GeneratorProto = ev.newTracked(value.KindObject)
	ev.GeneratorProto.Proto = ev.ObjectProto

	ev.Global = runtime.NewFunctionScope(nil, ev.newTracked(value.KindUndefined), nil)
	ev.wireErrorConstructors()
	ev.wireConsole()
	ev.wireObject()
	return ev
}

// newTracked allocates a Value and registers it on the heap's live list
// in one step; every allocation the evaluator makes goes through this
// (or NewObject/NewArray below) so Sweep sees it.
func (ev *Evaluator) newTracked(k value.Kind) *value.Value {
	v := value.New(k)
	ev.Heap.Track(v)
	return v
}

// NewObject allocates a plain object chained to ObjectProto.
func (ev *Evaluator) NewObject() *value.Value {
	v := ev.newTracked(value.KindObject)
	v.Proto = ev.ObjectProto
	return v
}

// NewArray allocates an empty array chained to ArrayProto with a
// zero `length`.
func (ev *Evaluator) NewArray() *value.Value {
	v := ev.newTracked(value.KindArray)
	v.Proto = ev.ArrayProto
	v.AddOwn(&value.Link{Name: value.String("length"), Val: ev.NumberVal(value.Int32(0)), Writable: true})
	return v
}

// NumberVal/StringVal/BoolVal box primitives into fresh Values. Scripts
// never see the boxing: the evaluator only boxes when a property table
// is genuinely needed (spec.md §3.3).
func (ev *Evaluator) NumberVal(n value.Number) *value.Value {
	v := ev.newTracked(value.KindNumber)
	v.Num = n
	return v
}

func (ev *Evaluator) StringVal(s string) *value.Value {
	v := ev.newTracked(value.KindString)
	v.Str = s
	return v
}

func (ev *Evaluator) BoolVal(b bool) *value.Value {
	v := ev.newTracked(value.KindBoolean)
	v.Bool = b
	return v
}

// NewNativeFunction wraps a Go function as a callable script value.
func (ev *Evaluator) NewNativeFunction(name string, fn NativeFunc) *value.Value {
	v := ev.newTracked(value.KindNativeFunction)
	v.Proto = ev.FunctionProto
	v.Native = &FuncData{Native: fn}
	v.AddOwn(&value.Link{Name: value.String("name"), Val: ev.StringVal(name)})
	return v
}

// SetConsole installs the host's sink for the `print`/`console.log`
// style native the embedding surface registers (spec.md §1's "host
// contracts only" boundary: the engine core never prints by itself).
func (ev *Evaluator) SetConsole(fn func(args []*value.Value)) { ev.console = fn }

// RunProgram evaluates every top-level statement of prog in the global
// scope, returning the completion value of the last ExprStmt (mirroring
// a REPL's implicit result) or a Throw Result on an uncaught exception.
func (ev *Evaluator) RunProgram(prog *ast.Program) (*value.Value, runtime.Result) {
	ev.hoist(prog.Forwards, ev.Global)
	var last *value.Value = value.Undefined
	for _, stmt := range prog.Body {
		v, res := ev.execStmt(stmt, ev.Global)
		if res.Kind == runtime.Throw {
			return nil, res
		}
		if v != nil {
			last = v
		}
	}
	return last, runtime.Ok
}

// hoist pre-declares every var/function/let/const name a Forwards
// record lists, before the owning scope's first statement executes
// (spec.md §4.2/§4.4): vars and functions get their binding slot
// immediately usable, let/const are pre-declared Uninitialized (TDZ).
func (ev *Evaluator) hoist(f *ast.Forwards, scope *runtime.Scope) {
	if f == nil {
		return
	}
	for _, name := range f.Vars {
		if scope.Kind == runtime.FunctionScope {
			if scope.Binding.FindOwn(value.String(name)) == nil {
				scope.Declare(name, value.Undefined, true)
			}
		} else if _, _, ok := runtime.Lookup(scope, name); !ok {
			scope.Declare(name, value.Undefined, true)
		}
	}
	for _, ln := range f.Lexical {
		scope.Declare(ln.Name, value.Uninitialize, !ln.Constant)
	}
	for _, fn := range f.Functions {
		scope.Declare(fn.Name, ev.makeFunction(fn, scope), true)
	}
}

func (ev *Evaluator) throwError(category runtime.Category, pos token.Position, msg string) runtime.Result {
	e := &runtime.InterpreterError{Category: category, Message: msg, Pos: pos}
	v := ev.newErrorValue(category, string(category), msg)
	v.Native = e
	return runtime.ThrowResult(v, pos)
}
