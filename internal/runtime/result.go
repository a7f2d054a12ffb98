package runtime

import (
	"github.com/tinyjs-go/tinyjs/internal/value"
	"github.com/tinyjs-go/tinyjs/pkg/token"
)

// ResultKind discriminates the reified control-flow outcome every
// statement evaluation produces (spec.md §4.5.3), used instead of
// host-language exceptions for normal (non-throw) control flow.
type ResultKind uint8

const (
	Normal ResultKind = iota
	Break
	Continue
	Return
	Throw
	NoExecute
)

// Result is the evaluator's explicit control-flow token. Label is set for
// labeled break/continue; Value carries an expression-statement's value
// (Normal), a function's return value (Return), or the thrown value plus
// its origin (Throw).
type Result struct {
	Kind  ResultKind
	Label string
	Value *value.Value
	Pos   token.Position
}

// Ok is the canonical "fell through normally, no value" result.
var Ok = Result{Kind: Normal}

// NormalValue wraps an expression-statement's value in a Normal result.
func NormalValue(v *value.Value) Result { return Result{Kind: Normal, Value: v} }

// BreakResult builds a Break result, label may be empty for an unlabeled
// break.
func BreakResult(label string) Result { return Result{Kind: Break, Label: label} }

// ContinueResult builds a Continue result.
func ContinueResult(label string) Result { return Result{Kind: Continue, Label: label} }

// ReturnResult builds a Return result carrying v (nil means undefined).
func ReturnResult(v *value.Value) Result { return Result{Kind: Return, Value: v} }

// ThrowResult builds a Throw result carrying the thrown value and its
// source position, per spec.md §4.5.3's `Throw(value, file, line, col)`.
func ThrowResult(v *value.Value, pos token.Position) Result {
	return Result{Kind: Throw, Value: v, Pos: pos}
}

// IsAbrupt reports whether r is anything other than a fall-through
// Normal, i.e. whether it must propagate past the current statement.
func (r Result) IsAbrupt() bool { return r.Kind != Normal }
