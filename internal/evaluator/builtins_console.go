package evaluator

import (
	"github.com/tinyjs-go/tinyjs/internal/runtime"
	"github.com/tinyjs-go/tinyjs/internal/value"
)

// wireConsole installs the `console` global with log/warn/error methods,
// all forwarding to whatever sink SetConsole last installed (spec.md
// §4.2: the engine core never prints by itself, so these are no-ops
// until a host calls SetConsole).
func (ev *Evaluator) wireConsole() {
	console := ev.NewObject()
	logFn := func(evv *Evaluator, this *value.Value, args []*value.Value) (*value.Value, runtime.Result) {
		if evv.console != nil {
			evv.console(args)
		}
		return value.Undefined, ok()
	}
	console.AddOwn(&value.Link{Name: value.String("log"), Val: ev.NewNativeFunction("log", logFn), Writable: true, Configurable: true, Enumerable: true})
	console.AddOwn(&value.Link{Name: value.String("warn"), Val: ev.NewNativeFunction("warn", logFn), Writable: true, Configurable: true, Enumerable: true})
	console.AddOwn(&value.Link{Name: value.String("error"), Val: ev.NewNativeFunction("error", logFn), Writable: true, Configurable: true, Enumerable: true})
	ev.Global.Declare("console", console, true)
}
