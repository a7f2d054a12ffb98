package evaluator

import (
	"github.com/samber/lo"

	"github.com/tinyjs-go/tinyjs/internal/runtime"
	"github.com/tinyjs-go/tinyjs/internal/value"
	"github.com/tinyjs-go/tinyjs/pkg/token"
)

// wireObject installs the `Object` global, a thin script-visible surface
// over the Extensible/Writable/Configurable/Enumerable flags
// internal/value/link.go already carries on every Link (spec.md §8
// scenario 10's Object.freeze round trip).
func (ev *Evaluator) wireObject() {
	object := ev.NewNativeFunction("Object", func(ev *Evaluator, this *value.Value, args []*value.Value) (*value.Value, runtime.Result) {
		if len(args) > 0 && args[0].Kind != value.KindUndefined && args[0].Kind != value.KindNull {
			return args[0], ok()
		}
		return ev.NewObject(), ok()
	})

	object.AddOwn(&value.Link{Name: value.String("freeze"), Writable: true, Configurable: true,
		Val: ev.NewNativeFunction("freeze", objFreeze)})
	object.AddOwn(&value.Link{Name: value.String("isFrozen"), Writable: true, Configurable: true,
		Val: ev.NewNativeFunction("isFrozen", objIsFrozen)})
	object.AddOwn(&value.Link{Name: value.String("isExtensible"), Writable: true, Configurable: true,
		Val: ev.NewNativeFunction("isExtensible", objIsExtensible)})
	object.AddOwn(&value.Link{Name: value.String("preventExtensions"), Writable: true, Configurable: true,
		Val: ev.NewNativeFunction("preventExtensions", objPreventExtensions)})
	object.AddOwn(&value.Link{Name: value.String("defineProperty"), Writable: true, Configurable: true,
		Val: ev.NewNativeFunction("defineProperty", ev.objDefineProperty)})
	object.AddOwn(&value.Link{Name: value.String("keys"), Writable: true, Configurable: true,
		Val: ev.NewNativeFunction("keys", ev.objKeys)})
	object.AddOwn(&value.Link{Name: value.String("getPrototypeOf"), Writable: true, Configurable: true,
		Val: ev.NewNativeFunction("getPrototypeOf", objGetPrototypeOf)})

	object.AddOwn(&value.Link{Name: value.String("prototype"), Val: ev.ObjectProto, Writable: false})
	ev.Global.Declare("Object", object, true)
}

func argObject(args []*value.Value) (*value.Value, bool) {
	if len(args) == 0 {
		return nil, false
	}
	obj := args[0]
	switch obj.Kind {
	case value.KindObject, value.KindArray, value.KindFunction, value.KindBoundFunction, value.KindNativeFunction, value.KindError:
		return obj, true
	default:
		return nil, false
	}
}

// objFreeze implements Object.freeze: every own Link becomes
// non-writable/non-configurable and the object itself non-extensible, so
// a subsequent write throws a TypeError (catchable in a protected `try`)
// instead of mutating (spec.md §8 scenario 10).
func objFreeze(ev *Evaluator, this *value.Value, args []*value.Value) (*value.Value, runtime.Result) {
	obj, ok2 := argObject(args)
	if !ok2 {
		if len(args) > 0 {
			return args[0], ok()
		}
		return value.Undefined, ok()
	}
	obj.Extensible = false
	for _, l := range obj.OwnProperties() {
		l.Writable = false
		l.Configurable = false
	}
	return obj, ok()
}

func objIsFrozen(ev *Evaluator, this *value.Value, args []*value.Value) (*value.Value, runtime.Result) {
	obj, ok2 := argObject(args)
	if !ok2 {
		return ev.BoolVal(true), ok()
	}
	if obj.Extensible {
		return ev.BoolVal(false), ok()
	}
	for _, l := range obj.OwnProperties() {
		if l.Writable || l.Configurable {
			return ev.BoolVal(false), ok()
		}
	}
	return ev.BoolVal(true), ok()
}

func objIsExtensible(ev *Evaluator, this *value.Value, args []*value.Value) (*value.Value, runtime.Result) {
	obj, ok2 := argObject(args)
	if !ok2 {
		return ev.BoolVal(false), ok()
	}
	return ev.BoolVal(obj.Extensible), ok()
}

func objPreventExtensions(ev *Evaluator, this *value.Value, args []*value.Value) (*value.Value, runtime.Result) {
	obj, ok2 := argObject(args)
	if !ok2 {
		if len(args) > 0 {
			return args[0], ok()
		}
		return value.Undefined, ok()
	}
	obj.Extensible = false
	return obj, ok()
}

func objGetPrototypeOf(ev *Evaluator, this *value.Value, args []*value.Value) (*value.Value, runtime.Result) {
	obj, ok2 := argObject(args)
	if !ok2 || obj.Proto == nil {
		return value.Null, ok()
	}
	return obj.Proto, ok()
}

// objKeys returns an array of obj's own enumerable string-keyed property
// names (spec.md §3.2's visible-name ordering: Symbol names never
// surface here). Filtering to enumerable, non-Symbol links and then
// projecting to their text name is the same two-step shape
// `Tangerg-lynx` reaches for `lo.Filter`/`lo.Map` over, rather than a
// hand-rolled accumulator loop.
func (ev *Evaluator) objKeys(evv *Evaluator, this *value.Value, args []*value.Value) (*value.Value, runtime.Result) {
	obj, ok2 := argObject(args)
	result := ev.NewArray()
	if !ok2 {
		return result, ok()
	}
	named := lo.Filter(obj.OwnProperties(), func(l *value.Link, _ int) bool {
		if !l.Enumerable {
			return false
		}
		_, isSym := l.Name.IsSymbol()
		return !isSym
	})
	names := lo.Map(named, func(l *value.Link, _ int) string { return l.Name.Text() })
	for _, name := range names {
		ev.arrayPush(result, ev.StringVal(name))
	}
	return result, ok()
}

// objDefineProperty implements the subset of Object.defineProperty this
// engine needs: a data-descriptor object with optional value/writable/
// enumerable/configurable fields, applied to an own Link (creating one
// if absent, subject to the usual extensible/immutable rejection).
func (ev *Evaluator) objDefineProperty(evv *Evaluator, this *value.Value, args []*value.Value) (*value.Value, runtime.Result) {
	obj, ok2 := argObject(args)
	if !ok2 {
		return nil, ev.throwError(runtime.CategoryTypeError, token.Position{}, "Object.defineProperty called on non-object")
	}
	if len(args) < 2 {
		return nil, ev.throwError(runtime.CategoryTypeError, token.Position{}, "Property description must be an object")
	}
	name := value.String(ToStringValue(args[1]))
	var desc *value.Value
	if len(args) > 2 {
		desc = args[2]
	}

	existing := obj.FindOwn(name)
	link := existing
	if link == nil {
		if !obj.Extensible {
			return nil, ev.throwError(runtime.CategoryTypeError, token.Position{}, "Cannot define property "+name.Text()+", object is not extensible")
		}
		link = &value.Link{Name: name, Val: value.Undefined}
	} else if link.Immutable || !link.Configurable {
		return nil, ev.throwError(runtime.CategoryTypeError, token.Position{}, "Cannot redefine property: "+name.Text())
	}

	if desc != nil {
		if v := desc.FindOwn(value.String("value")); v != nil {
			link.Val = v.Val
		}
		if w := desc.FindOwn(value.String("writable")); w != nil {
			link.Writable = ToBoolean(w.Val)
		}
		if e := desc.FindOwn(value.String("enumerable")); e != nil {
			link.Enumerable = ToBoolean(e.Val)
		}
		if c := desc.FindOwn(value.String("configurable")); c != nil {
			link.Configurable = ToBoolean(c.Val)
		}
	}

	if existing == nil {
		obj.AddOwn(link)
	}
	return obj, ok()
}
