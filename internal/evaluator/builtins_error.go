package evaluator

import (
	"github.com/tinyjs-go/tinyjs/internal/runtime"
	"github.com/tinyjs-go/tinyjs/internal/value"
)

// errorCtorSpec names one of spec.md §7's built-in error kinds and the
// subtype-specific prototype it gets chained off ErrorProto.
type errorCtorSpec struct {
	name     string
	category runtime.Category
}

var errorCtorSpecs = []errorCtorSpec{
	{"Error", runtime.CategoryError},
	{"EvalError", runtime.CategoryEvalError},
	{"RangeError", runtime.CategoryRangeError},
	{"ReferenceError", runtime.CategoryReferenceError},
	{"SyntaxError", runtime.CategorySyntaxError},
	{"TypeError", runtime.CategoryTypeError},
}

// wireErrorConstructors installs Error and its five built-in subclasses
// in global scope (spec.md §7's error taxonomy table), each constructing
// a catchable value exposing `name`/`message` the way `throw new
// TypeError('x')` followed by `e.name+':'+e.message` expects.
func (ev *Evaluator) wireErrorConstructors() {
	for _, spec := range errorCtorSpecs {
		spec := spec
		proto := ev.newTracked(value.KindObject)
		proto.Proto = ev.ErrorProto
		proto.AddOwn(&value.Link{Name: value.String("name"), Val: ev.StringVal(spec.name), Writable: true, Configurable: true})
		proto.AddOwn(&value.Link{Name: value.String("message"), Val: ev.StringVal(""), Writable: true, Configurable: true})

		ctor := ev.NewNativeFunction(spec.name, func(ev *Evaluator, this *value.Value, args []*value.Value) (*value.Value, runtime.Result) {
			msg := ""
			if len(args) > 0 && args[0].Kind != value.KindUndefined {
				msg = ToStringValue(args[0])
			}
			e := ev.newErrorValue(spec.category, spec.name, msg)
			e.Proto = proto
			return e, ok()
		})
		proto.AddOwn(&value.Link{Name: value.String("constructor"), Val: ctor, Writable: true, Configurable: true})
		ctor.AddOwn(&value.Link{Name: value.String("prototype"), Val: proto, Writable: false})

		ev.Global.Declare(spec.name, ctor, true)
	}
}

// newErrorValue builds a KindError value with script-visible `name` and
// `message` own properties (spec.md §7's "Thrown errors ... expose name,
// message") plus an InterpreterError on Native for host-side inspection.
// Chained to ErrorProto by default; callers that know the matching
// subtype constructor's prototype (wireErrorConstructors) overwrite Proto
// afterward so `instanceof` sees the right subclass.
func (ev *Evaluator) newErrorValue(category runtime.Category, name, msg string) *value.Value {
	v := ev.newTracked(value.KindError)
	v.Proto = ev.ErrorProto
	v.Str = name + ": " + msg
	v.Native = &runtime.InterpreterError{Category: category, Message: msg}
	v.AddOwn(&value.Link{Name: value.String("name"), Val: ev.StringVal(name), Writable: true, Configurable: true})
	v.AddOwn(&value.Link{Name: value.String("message"), Val: ev.StringVal(msg), Writable: true, Configurable: true})
	return v
}

// NewError builds a script-visible error value with name/message
// properties set, for host-side code (internal/generator's panic
// recovery, pkg/tinyjs's Go-error-to-throw bridge) that needs to raise
// something a script's catch block can inspect like any other thrown
// Error.
func (ev *Evaluator) NewError(category runtime.Category, name, msg string) *value.Value {
	return ev.newErrorValue(category, name, msg)
}
