package runtime

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tinyjs-go/tinyjs/pkg/token"
)

func TestInterpreterErrorMessageIncludesPosition(t *testing.T) {
	pos := token.Position{Line: 3, Column: 5}
	err := NewTypeError(pos, "bad value")
	assert.Equal(t, "TypeError: bad value (at 3:5)", err.Error())
}

func TestInterpreterErrorMessageWithoutPosition(t *testing.T) {
	err := NewError(token.Position{}, "boom")
	assert.Equal(t, "Error: boom", err.Error())
}

func TestInterpreterErrorUnwrap(t *testing.T) {
	cause := errors.New("underlying")
	err := &InterpreterError{Category: CategoryRangeError, Message: "wrapped", Err: cause}
	assert.ErrorIs(t, err, cause, "errors.Is should see through Unwrap to the underlying cause")
}

func TestCategoryConstructors(t *testing.T) {
	pos := token.Position{}
	tests := []struct {
		err  *InterpreterError
		want Category
	}{
		{NewSyntaxError(pos, "x"), CategorySyntaxError},
		{NewTypeError(pos, "x"), CategoryTypeError},
		{NewReferenceError(pos, "x"), CategoryReferenceError},
		{NewRangeError(pos, "x"), CategoryRangeError},
		{NewError(pos, "x"), CategoryError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.err.Category)
	}
}
