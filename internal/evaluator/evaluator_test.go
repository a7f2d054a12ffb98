package evaluator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinyjs-go/tinyjs/internal/runtime"
	"github.com/tinyjs-go/tinyjs/internal/value"
	"github.com/tinyjs-go/tinyjs/pkg/ast"
	"github.com/tinyjs-go/tinyjs/pkg/token"
)

// runExpr evaluates a minimal hand-built AST for tests that only need one
// top-level expression statement, avoiding an import of internal/parser
// (which itself depends on this package's public surface).
func runExpr(t *testing.T, ev *Evaluator, expr ast.Expr) *value.Value {
	t.Helper()
	v, res := ev.evalExpr(expr, ev.Global)
	require.NotEqual(t, runtime.Throw, res.Kind, "unexpected throw: %v", res.Value)
	return v
}

func TestBinaryArithmetic(t *testing.T) {
	ev := New()
	expr := &ast.BinaryExpr{
		Op:    token.PLUS,
		Left:  &ast.NumberLiteral{Raw: "2"},
		Right: &ast.NumberLiteral{Raw: "3"},
	}
	v := runExpr(t, ev, expr)
	require.Equal(t, value.KindNumber, v.Kind)
	assert.Equal(t, float64(5), v.Num.Float64(), "2 + 3")
}

func TestStringConcat(t *testing.T) {
	ev := New()
	expr := &ast.BinaryExpr{
		Op:    token.PLUS,
		Left:  &ast.StringLiteral{Value: "foo"},
		Right: &ast.StringLiteral{Value: "bar"},
	}
	v := runExpr(t, ev, expr)
	require.Equal(t, value.KindString, v.Kind)
	assert.Equal(t, "foobar", v.Str)
}

func TestThrowErrorProducesNameAndMessage(t *testing.T) {
	ev := New()
	_, res := ev.evalExpr(&ast.Identifier{Name: "undeclaredName"}, ev.Global)
	require.Equal(t, runtime.Throw, res.Kind)
	e := res.Value
	require.Equal(t, value.KindError, e.Kind)
	nameLink := e.FindOwn(value.String("name"))
	require.NotNil(t, nameLink)
	assert.Equal(t, "ReferenceError", nameLink.Val.Str)
	msgLink := e.FindOwn(value.String("message"))
	require.NotNil(t, msgLink)
	assert.Equal(t, value.KindString, msgLink.Val.Kind)
}

func TestErrorConstructorsWired(t *testing.T) {
	ev := New()
	for _, name := range []string{"Error", "EvalError", "RangeError", "ReferenceError", "SyntaxError", "TypeError"} {
		_, _, ok := runtime.Lookup(ev.Global, name)
		assert.True(t, ok, "global constructor %q not declared", name)
	}
}

func TestNewTypeErrorCarriesMessage(t *testing.T) {
	ev := New()
	ctorLink, _, ok := runtime.Lookup(ev.Global, "TypeError")
	require.True(t, ok, "TypeError constructor not found in global scope")
	errVal, res := ev.New(ctorLink.Val, []*value.Value{ev.StringVal("bad value")}, token.Position{})
	require.NotEqual(t, runtime.Throw, res.Kind, "new TypeError(...) threw: %v", res.Value)
	require.Equal(t, value.KindError, errVal.Kind)
	nameLink := errVal.FindOwn(value.String("name"))
	msgLink := errVal.FindOwn(value.String("message"))
	require.NotNil(t, nameLink)
	assert.Equal(t, "TypeError", nameLink.Val.Str)
	require.NotNil(t, msgLink)
	assert.Equal(t, "bad value", msgLink.Val.Str)
}

func TestConsoleForwardsToSink(t *testing.T) {
	ev := New()
	var captured []*value.Value
	ev.SetConsole(func(args []*value.Value) { captured = args })

	consoleLink, _, ok := runtime.Lookup(ev.Global, "console")
	require.True(t, ok, "console global not declared")
	logFn, res := ev.getProperty(consoleLink.Val, value.String("log"))
	require.NotEqual(t, runtime.Throw, res.Kind, "console.log lookup threw: %v", res.Value)
	_, res = ev.Call(logFn, value.Undefined, []*value.Value{ev.StringVal("hello")})
	require.NotEqual(t, runtime.Throw, res.Kind, "console.log(...) threw: %v", res.Value)
	require.Len(t, captured, 1)
	assert.Equal(t, "hello", captured[0].Str)
}
