package evaluator

import (
	"github.com/tinyjs-go/tinyjs/internal/runtime"
	"github.com/tinyjs-go/tinyjs/internal/value"
	"github.com/tinyjs-go/tinyjs/pkg/token"
)

// GenSink is how a suspended generator body talks back to whatever is
// driving it (internal/generator's goroutine bridge). yield v suspends
// the body and waits for the next resumption, which is exactly one of:
// a value to return from the `yield` expression, a value to throw at
// the yield point, or a signal that `.return()` was called and the
// body should unwind as if `return sent` executed there (spec.md
// §4.5.5). This package only defines the seam; the implementation
// living behind it (goroutine + channel, or none at all for hosts that
// never call a generator function) is internal/generator's job.
type GenSink interface {
	Yield(v *value.Value) (sent *value.Value, thrown *value.Value, isReturn bool)
}

// GenFactory, when set, is called in place of running a generator
// function's body synchronously (spec.md §4.5.5: calling a generator
// function returns a Generator object without executing any of the
// body yet). Left nil (embedders that never call internal/generator.Wire),
// calling a generator function runs its body like an ordinary function,
// and the first `yield` it reaches throws a SyntaxError because no
// generator frame is active.
type GenFactory func(ev *Evaluator, fn, this *value.Value, args []*value.Value) *value.Value

// pushGen/popGen/currentGen manage the stack of in-flight generator
// bodies; only the innermost one receives a given `yield` (nested
// generators each get their own frame when one generator's body calls
// another generator-driving helper).
func (ev *Evaluator) pushGen(sink GenSink) { ev.genStack = append(ev.genStack, sink) }

func (ev *Evaluator) popGen() {
	if len(ev.genStack) > 0 {
		ev.genStack = ev.genStack[:len(ev.genStack)-1]
	}
}

func (ev *Evaluator) currentGen() GenSink {
	if len(ev.genStack) == 0 {
		return nil
	}
	return ev.genStack[len(ev.genStack)-1]
}

// PushGen/PopGen are the exported forms internal/generator uses from
// outside this package.
func (ev *Evaluator) PushGen(sink GenSink) { ev.pushGen(sink) }
func (ev *Evaluator) PopGen()              { ev.popGen() }

// evalYield implements the YieldExpr case of evalExpr: it suspends via
// the current GenSink and turns `.throw()`/`.return()` resumptions into
// ordinary Result propagation — a thrown value becomes a Throw Result,
// a `.return(x)` becomes a Return Result — exactly as if the yield
// expression were a call that raised/returned (spec.md §4.5.5), keeping
// control flow inside the same Result discipline as everything else.
func (ev *Evaluator) evalYield(v *value.Value) (*value.Value, runtime.Result) {
	sink := ev.currentGen()
	if sink == nil {
		return nil, ev.throwError(runtime.CategorySyntaxError, token.Position{}, "yield used outside a generator")
	}
	sent, thrown, isReturn := sink.Yield(v)
	if thrown != nil {
		return nil, runtime.ThrowResult(thrown, token.Position{})
	}
	if isReturn {
		return nil, runtime.ReturnResult(sent)
	}
	return sent, ok()
}
