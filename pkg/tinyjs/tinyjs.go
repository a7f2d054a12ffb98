// Package tinyjs is 42TinyJS's public embedding surface: the facade a
// host program links against to run scripts, register native
// functions, and read back results, without ever touching
// internal/evaluator's Result discipline or internal/value's Value
// representation directly (spec.md §6 "Embedding surface"). Modeled on
// the teacher's pkg/dwscript.New()/Eval() facade.
package tinyjs

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/tinyjs-go/tinyjs/internal/evaluator"
	"github.com/tinyjs-go/tinyjs/internal/generator"
	"github.com/tinyjs-go/tinyjs/internal/parser"
	"github.com/tinyjs-go/tinyjs/internal/runtime"
	"github.com/tinyjs-go/tinyjs/internal/value"
	"github.com/tinyjs-go/tinyjs/pkg/ast"
)

// Engine owns one Evaluator instance plus the embedding-level plumbing
// (logger, output sink, config) that sits around it. Not safe for
// concurrent use, same as the Evaluator it wraps.
type Engine struct {
	ev     *evaluator.Evaluator
	logger *zap.Logger
	output io.Writer
	opts   EngineOptions

	requireRead func(path string) (string, error)
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithLogger installs a host-supplied *zap.Logger in place of the
// silent default (spec.md §4.2).
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithOutput redirects the default console sink (see SetConsole) to w
// instead of os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(e *Engine) { e.output = w }
}

// WithOptions supplies an already-loaded EngineOptions, bypassing
// LoadConfig (e.g. when a host manages its own config file).
func WithOptions(o EngineOptions) Option {
	return func(e *Engine) { e.opts = o }
}

// New creates an Engine with its global scope and prototype chain
// wired (spec.md §6's new_engine), the generator coroutine bridge
// attached, and a default console that writes to os.Stdout (or
// WithOutput's writer) until SetConsole overrides it.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		ev:     evaluator.New(),
		logger: newDefaultLogger(),
		output: os.Stdout,
		opts:   defaultEngineOptions(),
	}
	for _, o := range opts {
		o(e)
	}
	if e.opts.RecursionLimit > 0 {
		e.ev.Guard.SetLimit(e.opts.RecursionLimit)
	}
	generator.Wire(e.ev)
	e.SetConsole(func(args ...Value) {
		strs := make([]any, len(args))
		for i, a := range args {
			strs[i] = a.String()
		}
		fmt.Fprintln(e.output, strs...)
	})
	return e, nil
}

// Program is source parsed once via Compile, ready for repeated Run
// calls without re-parsing (spec.md §6's compile/run split).
type Program struct {
	prog *ast.Program
}

// Compile parses src into a reusable Program without executing it.
// A SyntaxError from the parser is returned as a Go error so the host
// can decide whether to retry or abort without ever seeing a panic.
func (e *Engine) Compile(src string) (*Program, error) {
	p := parser.New(src)
	prog := p.Parse()
	if errs := p.Errors(); len(errs) > 0 {
		return nil, &ScriptError{Category: runtime.CategorySyntaxError, Message: errs[0].Error()}
	}
	return &Program{prog: prog}, nil
}

// Execute parses and runs src to completion, discarding its completion
// value (spec.md §6's execute): the right call when a script's only
// observable effect is via console output or AddNative callbacks.
func (e *Engine) Execute(src string) error {
	_, err := e.Evaluate(src)
	return err
}

// Evaluate runs src and coerces its completion value to a string
// (spec.md §6's evaluate), mirroring a REPL's echoed result.
func (e *Engine) Evaluate(src string) (string, error) {
	v, err := e.EvaluateComplex(src)
	if err != nil {
		return "", err
	}
	return v.String(), nil
}

// EvaluateComplex runs src and returns its raw completion value
// (spec.md §6's evaluate_complex), wrapped so callers never import
// internal/value directly.
func (e *Engine) EvaluateComplex(src string) (Value, error) {
	prog, err := e.Compile(src)
	if err != nil {
		return Value{}, err
	}
	return e.Run(prog)
}

// Run executes an already-Compiled Program, letting one parse serve
// many runs (spec.md §6's compile/run split).
func (e *Engine) Run(p *Program) (Value, error) {
	v, res := e.ev.RunProgram(p.prog)
	if res.Kind == runtime.Throw {
		return Value{}, scriptErrorFromThrow(res.Value)
	}
	return Value{ev: e.ev, v: v}, nil
}

// NativeFunction builds a callable Value from a Go closure without
// declaring it anywhere, for a host assembling a namespace object (e.g.
// `console.log`) before hanging it off a global (spec.md §6's
// add_native, generalized to support dotted paths via ordinary object
// properties rather than a signature string).
func (e *Engine) NativeFunction(name string, fn func(this Value, args []Value) (Value, error)) Value {
	native := e.ev.NewNativeFunction(name, func(ev *evaluator.Evaluator, this *value.Value, args []*value.Value) (*value.Value, runtime.Result) {
		wrappedArgs := make([]Value, len(args))
		for i, a := range args {
			wrappedArgs[i] = Value{ev: ev, v: a}
		}
		result, err := fn(Value{ev: ev, v: this}, wrappedArgs)
		if err != nil {
			return nil, throwFromGoError(ev, err)
		}
		if result.v == nil {
			return value.Undefined, runtime.Ok
		}
		return result.v, runtime.Ok
	})
	return Value{ev: e.ev, v: native}
}

// AddNative installs a host function under name in the global scope
// (spec.md §6's add_native), callable from scripts like any other
// function. The callback receives already-evaluated arguments wrapped
// as Values and returns a Value plus an error (a non-nil error throws
// a script-visible error of the given kind, defaulting to Error).
func (e *Engine) AddNative(name string, fn func(this Value, args []Value) (Value, error)) {
	e.ev.Global.Declare(name, e.NativeFunction(name, fn).v, true)
}

// NewObject creates a plain object Value a host can hang properties off
// of (via Value.Set) before installing it as a global namespace, e.g.
// `console` or `Math`.
func (e *Engine) NewObject() Value {
	return Value{ev: e.ev, v: e.ev.NewObject()}
}

// DeclareGlobal binds name to val in the global scope, for installing a
// namespace object (console, Math, ...) rather than a single function.
func (e *Engine) DeclareGlobal(name string, val Value) {
	e.ev.Global.Declare(name, val.v, true)
}

// SetConsole redirects console.*-style output (spec.md §6's
// set_console): the engine core never prints on its own, so every
// embedding installs one of these, even if only the default one New
// wires to os.Stdout.
func (e *Engine) SetConsole(fn func(args ...Value)) {
	e.ev.SetConsole(func(args []*value.Value) {
		wrapped := make([]Value, len(args))
		for i, a := range args {
			wrapped[i] = Value{ev: e.ev, v: a}
		}
		fn(wrapped...)
	})
}

// SetRequireRead installs the source-loading callback the (host-
// registered) `require(path)` builtin uses to turn a module path into
// source text (spec.md §6's set_require_read). The core engine has no
// file I/O of its own — reading `path` is entirely the host's
// business — so this just stores the callback for AddNative("require",
// ...) or a host module loader to call.
func (e *Engine) SetRequireRead(fn func(path string) (string, error)) {
	e.requireRead = fn
}

// SetStackBase overrides the recursion-depth guard's limit (spec.md
// §6's set_stack_base), re-expressed per internal/runtime/stack.go's
// design note as a call-nesting counter rather than a literal stack
// pointer, since Go gives no safe access to the latter.
func (e *Engine) SetStackBase(maxDepth int) {
	e.ev.Guard.SetLimit(maxDepth)
}

// RequireRead exposes the callback SetRequireRead installed, for a
// host module-loader native to call; nil if never set.
func (e *Engine) RequireRead() func(path string) (string, error) {
	return e.requireRead
}
