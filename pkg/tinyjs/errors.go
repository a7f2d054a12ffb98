package tinyjs

import (
	"fmt"

	"github.com/tinyjs-go/tinyjs/internal/evaluator"
	"github.com/tinyjs-go/tinyjs/internal/runtime"
	"github.com/tinyjs-go/tinyjs/internal/value"
	"github.com/tinyjs-go/tinyjs/pkg/token"
)

// ScriptError is what a host sees for any uncaught script-level throw
// or SyntaxError (spec.md §7's error taxonomy), carrying the same
// category/message/position shape internal/runtime.InterpreterError
// uses internally.
type ScriptError struct {
	Category runtime.Category
	Message  string
	FileName string
	Line     int
	Column   int
}

func (e *ScriptError) Error() string {
	if e.FileName != "" {
		return fmt.Sprintf("%s: %s (%s:%d:%d)", e.Category, e.Message, e.FileName, e.Line, e.Column)
	}
	return fmt.Sprintf("%s: %s", e.Category, e.Message)
}

// scriptErrorFromThrow turns an uncaught Throw Result's payload into a
// ScriptError: thrown Error-kind values (internal/runtime.InterpreterError
// carried on their Native field) unpack their category/message/position
// directly, while an arbitrary thrown non-Error value (e.g. `throw 42`)
// becomes a generic ScriptError describing what was thrown.
func scriptErrorFromThrow(thrown *value.Value) *ScriptError {
	if thrown != nil && thrown.Kind == value.KindError {
		if ie, ok := thrown.Native.(*runtime.InterpreterError); ok {
			return &ScriptError{
				Category: ie.Category,
				Message:  ie.Message,
				Line:     ie.Pos.Line,
				Column:   ie.Pos.Column,
			}
		}
		return &ScriptError{Category: runtime.CategoryError, Message: thrown.Str}
	}
	return &ScriptError{Category: runtime.CategoryError, Message: "uncaught exception: " + evaluator.ToStringValue(thrown)}
}

// throwFromGoError turns a Go error returned from an AddNative callback
// into a Result of kind Throw carrying a script-visible Error object,
// so a native function failing looks exactly like `throw new Error(...)`
// to the script that called it.
func throwFromGoError(ev *evaluator.Evaluator, err error) runtime.Result {
	category := runtime.CategoryError
	if se, ok := err.(*ScriptError); ok && se.Category != "" {
		category = se.Category
	}
	v := ev.NewError(category, string(category), err.Error())
	v.Native = &runtime.InterpreterError{Category: category, Message: err.Error()}
	return runtime.ThrowResult(v, token.Position{})
}
