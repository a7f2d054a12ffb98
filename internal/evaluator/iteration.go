package evaluator

import (
	"github.com/tinyjs-go/tinyjs/internal/runtime"
	"github.com/tinyjs-go/tinyjs/internal/value"
	"github.com/tinyjs-go/tinyjs/pkg/token"
)

// getIterator implements spec.md §4.5.3's iterator protocol entry
// point: look up Symbol.iterator, call it, and keep the resulting
// object (its own `next` method is invoked per-step by iteratorNext).
// Arrays get a built-in index-walking iterator since core arrays carry
// no Symbol.iterator method of their own (that belongs to a host's
// Array.prototype, out of this engine's scope).
func (ev *Evaluator) getIterator(v *value.Value) (*value.Value, runtime.Result) {
	if v.Kind == value.KindArray {
		return ev.arrayIterator(v), ok()
	}
	if v.Kind == value.KindString {
		return ev.stringIterator(v.Str), ok()
	}
	slot, markID := ev.Heap.NewMark()
	link := v.FindWithPrototypeChain(value.FromSymbol(value.SymIterator), slot, markID)
	ev.Heap.ReleaseSlot(slot)
	if link == nil || !isCallable(link.Val) {
		return nil, ev.throwError(runtime.CategoryTypeError, token.Position{}, "value is not iterable")
	}
	iter, res := ev.Call(link.Val, v, nil)
	if res.Kind == runtime.Throw {
		return nil, res
	}
	return iter, ok()
}

// iteratorNext calls the iterator's `next` method and unpacks the
// standard {value, done} result shape.
func (ev *Evaluator) iteratorNext(iter *value.Value) (*value.Value, bool, runtime.Result) {
	nextLink := iter.FindOwn(value.String("next"))
	if nextLink == nil || !isCallable(nextLink.Val) {
		return nil, true, ev.throwError(runtime.CategoryTypeError, token.Position{}, "iterator result has no next method")
	}
	res, result := ev.Call(nextLink.Val, iter, nil)
	if result.Kind == runtime.Throw {
		return nil, true, result
	}
	doneLink := res.FindOwn(value.String("done"))
	valLink := res.FindOwn(value.String("value"))
	done := doneLink != nil && ToBoolean(doneLink.Val)
	var val *value.Value = value.Undefined
	if valLink != nil {
		val = valLink.Val
	}
	return val, done, ok()
}

// arrayIterator builds a closure-backed iterator object walking an
// array's indices in order — the evaluator's own stand-in for
// `Array.prototype[Symbol.iterator]`, since registering that on the
// prototype itself is a host/builtins concern (spec.md §1 Non-goals).
func (ev *Evaluator) arrayIterator(arr *value.Value) *value.Value {
	i := 0
	iter := ev.NewObject()
	next := ev.NewNativeFunction("next", func(ev *Evaluator, this *value.Value, args []*value.Value) (*value.Value, runtime.Result) {
		result := ev.NewObject()
		n := int(arr.Length())
		if i >= n {
			result.AddOwn(&value.Link{Name: value.String("done"), Val: ev.BoolVal(true), Writable: true, Enumerable: true})
			result.AddOwn(&value.Link{Name: value.String("value"), Val: value.Undefined, Writable: true, Enumerable: true})
			return result, ok()
		}
		elLink := arr.FindOwn(value.String(itoa(i)))
		var v *value.Value = value.Undefined
		if elLink != nil {
			v = elLink.Val
		}
		i++
		result.AddOwn(&value.Link{Name: value.String("done"), Val: ev.BoolVal(false), Writable: true, Enumerable: true})
		result.AddOwn(&value.Link{Name: value.String("value"), Val: v, Writable: true, Enumerable: true})
		return result, ok()
	})
	iter.AddOwn(&value.Link{Name: value.String("next"), Val: next, Writable: true})
	return iter
}

func (ev *Evaluator) stringIterator(s string) *value.Value {
	runes := []rune(s)
	i := 0
	iter := ev.NewObject()
	next := ev.NewNativeFunction("next", func(ev *Evaluator, this *value.Value, args []*value.Value) (*value.Value, runtime.Result) {
		result := ev.NewObject()
		if i >= len(runes) {
			result.AddOwn(&value.Link{Name: value.String("done"), Val: ev.BoolVal(true), Writable: true, Enumerable: true})
			result.AddOwn(&value.Link{Name: value.String("value"), Val: value.Undefined, Writable: true, Enumerable: true})
			return result, ok()
		}
		v := ev.StringVal(string(runes[i]))
		i++
		result.AddOwn(&value.Link{Name: value.String("done"), Val: ev.BoolVal(false), Writable: true, Enumerable: true})
		result.AddOwn(&value.Link{Name: value.String("value"), Val: v, Writable: true, Enumerable: true})
		return result, ok()
	})
	iter.AddOwn(&value.Link{Name: value.String("next"), Val: next, Writable: true})
	return iter
}
