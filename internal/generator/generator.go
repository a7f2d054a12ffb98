// Package generator is 42TinyJS's coroutine bridge: it turns a
// generator function's body into a suspend/resume protocol driven over
// a pair of unbuffered channels, one goroutine per live generator
// (spec.md §4.5.5). internal/evaluator only defines the GenSink seam
// and the genStack it dispatches `yield` through; this package is the
// one implementation wired behind that seam. Hosts that never call
// Wire get Evaluator.Call's fallback: a generator function's body runs
// as an ordinary function would, and the first `yield` it reaches
// throws a SyntaxError.
package generator

import (
	"fmt"
	"runtime/debug"

	"github.com/tinyjs-go/tinyjs/internal/evaluator"
	"github.com/tinyjs-go/tinyjs/internal/runtime"
	"github.com/tinyjs-go/tinyjs/internal/value"
	"github.com/tinyjs-go/tinyjs/pkg/token"
)

// resumeMsg is what the driving side (a .next()/.throw()/.return() call)
// sends into a parked generator body.
type resumeMsg struct {
	value    *value.Value
	thrown   *value.Value
	isReturn bool
}

// yieldMsg is what a generator body sends back out: either a yielded
// value (done=false), its final return value (done=true), or an
// exception that escaped the body uncaught (thrown != nil).
type yieldMsg struct {
	value  *value.Value
	done   bool
	thrown *value.Value
}

// channelSink is the GenSink implementation backing one live generator:
// its body runs on a dedicated goroutine that blocks on resume between
// every yield, so at most one goroutine is ever actually executing
// script code for a given Evaluator at a time (the handoff is a strict
// ping-pong, never true parallel access to the shared Evaluator).
type channelSink struct {
	resume chan resumeMsg
	yield  chan yieldMsg
	done   bool
}

func (s *channelSink) Yield(v *value.Value) (sent *value.Value, thrown *value.Value, isReturn bool) {
	s.yield <- yieldMsg{value: v}
	msg := <-s.resume
	return msg.value, msg.thrown, msg.isReturn
}

// Wire installs the coroutine bridge into ev: every call to a
// generator function from then on returns a Generator object backed by
// a channelSink instead of running synchronously to completion.
func Wire(ev *evaluator.Evaluator) {
	ev.GenFactory = factory
	ev.GeneratorProto.AddOwn(&value.Link{
		Name: value.FromSymbol(value.SymIterator),
		Val: ev.NewNativeFunction("[Symbol.iterator]", func(ev *evaluator.Evaluator, this *value.Value, args []*value.Value) (*value.Value, runtime.Result) {
			return this, runtime.Ok
		}),
		Writable: true,
	})
}

// factory builds the Generator object and launches its body goroutine,
// parked at its very first statement: nothing runs until the caller's
// first .next() call, matching spec.md §4.5.5's "calling a generator
// function does not execute any of its body".
func factory(ev *evaluator.Evaluator, fn, this *value.Value, args []*value.Value) *value.Value {
	fd, _ := fn.Native.(*evaluator.FuncData)
	sink := &channelSink{resume: make(chan resumeMsg), yield: make(chan yieldMsg)}

	go runBody(ev, fd, this, args, sink)

	gen := ev.NewObject()
	gen.Proto = ev.GeneratorProto
	gen.AddOwn(&value.Link{Name: value.String("next"), Val: ev.NewNativeFunction("next", nativeNext(sink))})
	gen.AddOwn(&value.Link{Name: value.String("throw"), Val: ev.NewNativeFunction("throw", nativeThrow(sink))})
	gen.AddOwn(&value.Link{Name: value.String("return"), Val: ev.NewNativeFunction("return", nativeReturn(sink))})
	return gen
}

// runBody drives one generator's body on its own goroutine: it parks
// immediately for the first resumption, then (unless that resumption is
// itself a .throw()/.return() on a never-started generator) pushes
// itself as the current GenSink and runs the body via RunFunctionBody,
// which bypasses Call's own generator dispatch so the body actually
// executes instead of recursing back into factory.
func runBody(ev *evaluator.Evaluator, fd *evaluator.FuncData, this *value.Value, args []*value.Value, sink *channelSink) {
	defer func() {
		if r := recover(); r != nil {
			errVal := ev.NewError(runtime.CategoryError, "Error", fmt.Sprintf("panic: %v\n%s", r, debug.Stack()))
			sink.yield <- yieldMsg{done: true, thrown: errVal}
		}
	}()

	first := <-sink.resume
	if first.isReturn {
		sink.yield <- yieldMsg{value: first.value, done: true}
		return
	}
	if first.thrown != nil {
		sink.yield <- yieldMsg{done: true, thrown: first.thrown}
		return
	}

	ev.PushGen(sink)
	result, res := ev.RunFunctionBody(fd, this, args)
	ev.PopGen()

	if res.Kind == runtime.Throw {
		sink.yield <- yieldMsg{done: true, thrown: res.Value}
		return
	}
	sink.yield <- yieldMsg{value: result, done: true}
}

func iterResult(ev *evaluator.Evaluator, v *value.Value, done bool) *value.Value {
	r := ev.NewObject()
	r.AddOwn(&value.Link{Name: value.String("value"), Val: v, Writable: true, Enumerable: true})
	r.AddOwn(&value.Link{Name: value.String("done"), Val: ev.BoolVal(done), Writable: true, Enumerable: true})
	return r
}

func nativeNext(sink *channelSink) evaluator.NativeFunc {
	return func(ev *evaluator.Evaluator, this *value.Value, args []*value.Value) (*value.Value, runtime.Result) {
		if sink.done {
			return iterResult(ev, value.Undefined, true), runtime.Ok
		}
		sent := value.Undefined
		if len(args) > 0 {
			sent = args[0]
		}
		sink.resume <- resumeMsg{value: sent}
		msg := <-sink.yield
		return unpackYield(ev, sink, msg)
	}
}

func nativeThrow(sink *channelSink) evaluator.NativeFunc {
	return func(ev *evaluator.Evaluator, this *value.Value, args []*value.Value) (*value.Value, runtime.Result) {
		errVal := value.Undefined
		if len(args) > 0 {
			errVal = args[0]
		}
		if sink.done {
			return nil, runtime.ThrowResult(errVal, token.Position{})
		}
		sink.resume <- resumeMsg{thrown: errVal}
		msg := <-sink.yield
		return unpackYield(ev, sink, msg)
	}
}

func nativeReturn(sink *channelSink) evaluator.NativeFunc {
	return func(ev *evaluator.Evaluator, this *value.Value, args []*value.Value) (*value.Value, runtime.Result) {
		sent := value.Undefined
		if len(args) > 0 {
			sent = args[0]
		}
		if sink.done {
			return iterResult(ev, sent, true), runtime.Ok
		}
		sink.resume <- resumeMsg{value: sent, isReturn: true}
		msg := <-sink.yield
		return unpackYield(ev, sink, msg)
	}
}

func unpackYield(ev *evaluator.Evaluator, sink *channelSink, msg yieldMsg) (*value.Value, runtime.Result) {
	if msg.thrown != nil {
		sink.done = true
		return nil, runtime.ThrowResult(msg.thrown, token.Position{})
	}
	if msg.done {
		sink.done = true
	}
	return iterResult(ev, msg.value, msg.done), runtime.Ok
}
