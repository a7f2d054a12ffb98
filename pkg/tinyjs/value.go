package tinyjs

import (
	"github.com/tinyjs-go/tinyjs/internal/evaluator"
	"github.com/tinyjs-go/tinyjs/internal/value"
)

// Value is the host-facing wrapper around an internal/value.Value: the
// public API never exposes the engine's internal representation
// directly, so AddNative callbacks and Evaluate results stay stable
// even as internal/value's Value struct evolves.
type Value struct {
	ev *evaluator.Evaluator
	v  *value.Value
}

// Undefined, Null, Bool, Number, and String build Values an AddNative
// callback can return.
func (e *Engine) Undefined() Value        { return Value{ev: e.ev, v: value.Undefined} }
func (e *Engine) Null() Value             { return Value{ev: e.ev, v: value.Null} }
func (e *Engine) Bool(b bool) Value       { return Value{ev: e.ev, v: e.ev.BoolVal(b)} }
func (e *Engine) Number(n float64) Value  { return Value{ev: e.ev, v: e.ev.NumberVal(value.FromFloat64(n))} }
func (e *Engine) String(s string) Value   { return Value{ev: e.ev, v: e.ev.StringVal(s)} }

// String coerces the Value to a string using the same ToString
// abstract operation the evaluator uses internally (spec.md §6's
// evaluate).
func (v Value) String() string {
	if v.v == nil {
		return "undefined"
	}
	return evaluator.ToStringValue(v.v)
}

// Float64 coerces the Value to a number, same coercion rules the `+`
// and comparison operators use.
func (v Value) Float64() float64 {
	if v.v == nil {
		return 0
	}
	return evaluator.ToNumber(v.v).Float64()
}

// Bool coerces the Value to a boolean per spec.md §3.4's ToBoolean.
func (v Value) Bool() bool {
	if v.v == nil {
		return false
	}
	return evaluator.ToBoolean(v.v)
}

// IsUndefined/IsNull report the Value's kind without any coercion.
func (v Value) IsUndefined() bool { return v.v == nil || v.v.Kind == value.KindUndefined }
func (v Value) IsNull() bool      { return v.v != nil && v.v.Kind == value.KindNull }

// TypeOf mirrors the script-visible `typeof` operator's result string.
func (v Value) TypeOf() string {
	if v.v == nil {
		return "undefined"
	}
	return evaluator.TypeOf(v.v)
}

// Set adds or overwrites an own, writable, enumerable property on an
// object-kind Value, for a host assembling a namespace object (e.g.
// attaching `log`/`warn`/`error` to a `console` built via
// Engine.NewObject) before installing it with Engine.DeclareGlobal.
func (v Value) Set(name string, val Value) {
	if v.v == nil {
		return
	}
	if own := v.v.FindOwn(value.String(name)); own != nil {
		own.Val = val.v
		return
	}
	v.v.AddOwn(value.DataLink(value.String(name), val.v))
}
