package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tinyjs-go/tinyjs/internal/value"
	"github.com/tinyjs-go/tinyjs/pkg/token"
)

func TestOkIsNotAbrupt(t *testing.T) {
	assert.False(t, Ok.IsAbrupt(), "the canonical Ok result should not be abrupt")
}

func TestAbruptResultKinds(t *testing.T) {
	tests := []Result{
		BreakResult(""),
		ContinueResult("outer"),
		ReturnResult(value.Undefined),
		ThrowResult(value.Undefined, token.Position{}),
		{Kind: NoExecute},
	}
	for _, r := range tests {
		assert.True(t, r.IsAbrupt(), "%v should be abrupt", r.Kind)
	}
}

func TestNormalValueCarriesValue(t *testing.T) {
	v := &value.Value{Kind: value.KindNumber, Num: value.Int32(5)}
	r := NormalValue(v)
	assert.Equal(t, Normal, r.Kind)
	assert.Same(t, v, r.Value)
}

func TestThrowResultCarriesPosition(t *testing.T) {
	pos := token.Position{Line: 2, Column: 3}
	r := ThrowResult(value.Undefined, pos)
	assert.Equal(t, Throw, r.Kind)
	assert.Equal(t, pos, r.Pos)
}

func TestLabeledBreakAndContinueCarryLabel(t *testing.T) {
	b := BreakResult("loop1")
	assert.Equal(t, "loop1", b.Label)
	c := ContinueResult("loop1")
	assert.Equal(t, "loop1", c.Label)
}
