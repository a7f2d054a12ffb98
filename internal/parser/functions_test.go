package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinyjs-go/tinyjs/pkg/ast"
)

func TestParseFunctionDeclarationHoistsIntoForwards(t *testing.T) {
	prog := parseProgram(t, "function add(a, b) { return a + b; }")
	require.Len(t, prog.Forwards.Functions, 1)
	fn := prog.Forwards.Functions[0]
	assert.Equal(t, "add", fn.Name)
	assert.Len(t, fn.Params, 2)
	// function declarations still appear in Body in source order.
	_, ok := prog.Body[0].(*ast.Fnc)
	assert.True(t, ok, "Body[0] = %#v, want *ast.Fnc", prog.Body[0])
}

func TestParseFunctionExpression(t *testing.T) {
	expr := parseExpr(t, "(function named() {});")
	fe, ok := expr.(*ast.FunctionExpr)
	require.True(t, ok, "expected *ast.FunctionExpr, got %#v", expr)
	assert.Equal(t, "named", fe.Fn.Name)
}

func TestParseDefaultAndRestParameters(t *testing.T) {
	prog := parseProgram(t, "function f(a, b = 1, ...rest) {}")
	fn := prog.Forwards.Functions[0]
	require.Len(t, fn.Params, 3)
	assert.NotNil(t, fn.Params[1].Default, "second param should carry a Default")
	assert.True(t, fn.Params[2].Rest, "third param should be marked Rest")
}

func TestParseSingleIdentifierArrow(t *testing.T) {
	expr := parseExpr(t, "x => x + 1;")
	fe := expr.(*ast.FunctionExpr)
	assert.True(t, fe.Fn.Arrow)
	assert.NotNil(t, fe.Fn.ExprBody, "concise-body arrow should set ExprBody")
	assert.Nil(t, fe.Fn.Body, "concise-body arrow should leave Body nil")
}

func TestParseParenthesizedParamsArrowWithBlockBody(t *testing.T) {
	expr := parseExpr(t, "(a, b) => { return a + b; }")
	fe := expr.(*ast.FunctionExpr)
	require.Len(t, fe.Fn.Params, 2)
	assert.NotNil(t, fe.Fn.Body, "block-body arrow should set Body")
	assert.Nil(t, fe.Fn.ExprBody, "block-body arrow should leave ExprBody nil")
}

func TestParseArrowAmbiguityBacksOutToParenthesizedExpression(t *testing.T) {
	// (a + b) is a parenthesized expression, not an arrow head; the
	// speculative arrow parse must back out cleanly via the lexer guard.
	expr := parseExpr(t, "(a + b);")
	_, ok := expr.(*ast.BinaryExpr)
	assert.True(t, ok, "expected the parenthesized BinaryExpr to survive, got %#v", expr)
}

func TestParseArrowAmbiguityDoesNotLeakParseErrors(t *testing.T) {
	// The failed speculative arrow attempt over `(a + b)` must not leave
	// behind any recorded structural errors.
	p := New("(a + b);")
	p.Parse()
	assert.Empty(t, p.Errors())
}

func TestParseGeneratorFunctionAllowsYieldKeyword(t *testing.T) {
	prog := parseProgram(t, "function* gen() { yield 1; }")
	fn := prog.Forwards.Functions[0]
	require.True(t, fn.Generator)
	stmt := fn.Body.Body[0].(*ast.ExprStmt)
	y, ok := stmt.Expr.(*ast.YieldExpr)
	require.True(t, ok, "expected *ast.YieldExpr inside a generator body, got %#v", stmt.Expr)
	assert.NotNil(t, y.Argument)
	assert.False(t, y.Delegate)
}

func TestParseYieldDelegate(t *testing.T) {
	prog := parseProgram(t, "function* gen() { yield* other(); }")
	fn := prog.Forwards.Functions[0]
	stmt := fn.Body.Body[0].(*ast.ExprStmt)
	y := stmt.Expr.(*ast.YieldExpr)
	assert.True(t, y.Delegate, "yield* should set Delegate")
}

func TestYieldIsAPlainIdentifierOutsideAGenerator(t *testing.T) {
	// Outside a generator body, `yield` has no special lexical status and
	// parses as an ordinary identifier expression.
	prog := parseProgram(t, "function f() { yield; }")
	fn := prog.Forwards.Functions[0]
	stmt := fn.Body.Body[0].(*ast.ExprStmt)
	_, ok := stmt.Expr.(*ast.Identifier)
	assert.True(t, ok, "expected a plain Identifier for `yield` outside a generator, got %#v", stmt.Expr)
}

func TestParseDestructuringParameters(t *testing.T) {
	prog := parseProgram(t, "function f(a, [b, c], {d}) {}")
	fn := prog.Forwards.Functions[0]
	require.Len(t, fn.Params, 3)
	_, ok := fn.Params[1].Target.(*ast.ArrayLiteral)
	assert.True(t, ok, "second param should be an array-destructuring target, got %#v", fn.Params[1].Target)
	_, ok = fn.Params[2].Target.(*ast.ObjectLiteral)
	assert.True(t, ok, "third param should be an object-destructuring target, got %#v", fn.Params[2].Target)
}
