package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinyjs-go/tinyjs/pkg/ast"
	"github.com/tinyjs-go/tinyjs/pkg/token"
)

func parseExpr(t *testing.T, src string) ast.Expr {
	t.Helper()
	p := New(src)
	prog := p.Parse()
	require.Empty(t, p.Errors(), "unexpected parse errors for %q", src)
	stmt, ok := prog.Body[0].(*ast.ExprStmt)
	require.True(t, ok, "expected a single expression statement, got %#v", prog.Body[0])
	return stmt.Expr
}

func TestParseArithmeticPrecedence(t *testing.T) {
	// 1 + 2 * 3 must group as 1 + (2 * 3).
	expr := parseExpr(t, "1 + 2 * 3;")
	bin, ok := expr.(*ast.BinaryExpr)
	require.True(t, ok, "top-level op = %#v, want PLUS", expr)
	assert.Equal(t, token.PLUS, bin.Op)
	rhs, ok := bin.Right.(*ast.BinaryExpr)
	require.True(t, ok, "right operand = %#v, want a STAR BinaryExpr", bin.Right)
	assert.Equal(t, token.STAR, rhs.Op)
}

func TestParseExponentIsRightAssociative(t *testing.T) {
	// 2 ** 3 ** 2 must group as 2 ** (3 ** 2).
	expr := parseExpr(t, "2 ** 3 ** 2;")
	bin := expr.(*ast.BinaryExpr)
	require.Equal(t, token.STAR_STAR, bin.Op)
	_, ok := bin.Left.(*ast.NumberLiteral)
	assert.True(t, ok, "left should be the literal 2, got %#v", bin.Left)
	right, ok := bin.Right.(*ast.BinaryExpr)
	require.True(t, ok, "right should itself be a ** expression, got %#v", bin.Right)
	assert.Equal(t, token.STAR_STAR, right.Op)
}

func TestParseLogicalAndBindsTighterThanLogicalOr(t *testing.T) {
	expr := parseExpr(t, "a || b && c;")
	or, ok := expr.(*ast.LogicalExpr)
	require.True(t, ok, "top-level = %#v, want a LOGICAL_OR LogicalExpr", expr)
	assert.Equal(t, token.LOGICAL_OR, or.Op)
	and, ok := or.Right.(*ast.LogicalExpr)
	require.True(t, ok, "right operand = %#v, want a LOGICAL_AND LogicalExpr", or.Right)
	assert.Equal(t, token.LOGICAL_AND, and.Op)
}

func TestParseNullishCoalescingIsDistinctFromLogicalOr(t *testing.T) {
	expr := parseExpr(t, "a ?? b;")
	n, ok := expr.(*ast.LogicalExpr)
	require.True(t, ok, "?? should parse as a LogicalExpr with QUESTION_QUESTION, got %#v", expr)
	assert.Equal(t, token.QUESTION_QUESTION, n.Op)
}

func TestParseTernaryConditional(t *testing.T) {
	expr := parseExpr(t, "a ? b : c;")
	cond, ok := expr.(*ast.ConditionalExpr)
	require.True(t, ok, "expected *ast.ConditionalExpr, got %#v", expr)
	_, ok = cond.Cond.(*ast.Identifier)
	assert.True(t, ok, "Cond = %#v, want Identifier a", cond.Cond)
}

func TestParseUnaryPrefixOperators(t *testing.T) {
	expr := parseExpr(t, "typeof x;")
	u, ok := expr.(*ast.UnaryExpr)
	require.True(t, ok, "expected typeof UnaryExpr, got %#v", expr)
	assert.Equal(t, token.TYPEOF, u.Op)
}

func TestParsePrefixAndPostfixIncrement(t *testing.T) {
	pre := parseExpr(t, "++x;").(*ast.UpdateExpr)
	assert.True(t, pre.Prefix)
	assert.Equal(t, token.INCR, pre.Op)
	post := parseExpr(t, "x++;").(*ast.UpdateExpr)
	assert.False(t, post.Prefix, "postfix x++ should have Prefix=false: %#v", post)
}

func TestParseMemberAndCallChain(t *testing.T) {
	expr := parseExpr(t, "a.b[c](d);")
	call, ok := expr.(*ast.CallExpr)
	require.True(t, ok, "expected *ast.CallExpr, got %#v", expr)
	idx, ok := call.Callee.(*ast.MemberExpr)
	require.True(t, ok && idx.Computed, "callee should be a computed MemberExpr (a.b[c]), got %#v", call.Callee)
	dot, ok := idx.Object.(*ast.MemberExpr)
	require.True(t, ok, "a.b should be a non-computed MemberExpr, got %#v", idx.Object)
	assert.False(t, dot.Computed)
}

func TestParseOptionalChaining(t *testing.T) {
	expr := parseExpr(t, "a?.b?.();")
	call, ok := expr.(*ast.CallExpr)
	require.True(t, ok && call.Optional, "expected an Optional CallExpr, got %#v", expr)
	member, ok := call.Callee.(*ast.MemberExpr)
	require.True(t, ok && member.Optional, "expected an Optional MemberExpr for a?.b, got %#v", call.Callee)
}

func TestParseNewExpressionCapturesArgs(t *testing.T) {
	expr := parseExpr(t, "new Foo(1, 2);")
	n, ok := expr.(*ast.NewExpr)
	require.True(t, ok, "expected *ast.NewExpr, got %#v", expr)
	assert.Len(t, n.Args, 2)
}

func TestParseNewWithoutParensHasNoArgs(t *testing.T) {
	expr := parseExpr(t, "new Foo;")
	n, ok := expr.(*ast.NewExpr)
	require.True(t, ok, "expected *ast.NewExpr, got %#v", expr)
	assert.Nil(t, n.Args, "new Foo (no parens) should have nil Args")
}

func TestParseAssignmentBecomesPatternOnArrayTarget(t *testing.T) {
	expr := parseExpr(t, "[a, b] = pair;")
	a, ok := expr.(*ast.AssignExpr)
	require.True(t, ok, "expected *ast.AssignExpr, got %#v", expr)
	arr, ok := a.Target.(*ast.ArrayLiteral)
	require.True(t, ok, "Target should be re-threaded into an ArrayLiteral, got %#v", a.Target)
	assert.Len(t, arr.Elements, 2)
}

func TestParseObjectAssignmentMarksDestructuring(t *testing.T) {
	expr := parseExpr(t, "({a, b} = obj);")
	a := expr.(*ast.AssignExpr)
	obj, ok := a.Target.(*ast.ObjectLiteral)
	require.True(t, ok && obj.Destructuring, "Target should be an ObjectLiteral with Destructuring=true, got %#v", a.Target)
}

func TestParseCompoundAssignmentKeepsPlainTarget(t *testing.T) {
	expr := parseExpr(t, "x += 1;")
	a := expr.(*ast.AssignExpr)
	assert.Equal(t, token.PLUS_ASSIGN, a.Op)
	_, ok := a.Target.(*ast.Identifier)
	assert.True(t, ok, "compound assignment target should stay a plain Identifier, got %#v", a.Target)
}

func TestParseSpreadInCallArguments(t *testing.T) {
	expr := parseExpr(t, "f(...args);")
	call := expr.(*ast.CallExpr)
	_, ok := call.Args[0].(*ast.SpreadElement)
	assert.True(t, ok, "first arg = %#v, want *ast.SpreadElement", call.Args[0])
}

func TestParseArrayLiteralElision(t *testing.T) {
	expr := parseExpr(t, "[1, , 3];")
	arr := expr.(*ast.ArrayLiteral)
	require.Len(t, arr.Elements, 3)
	assert.Nil(t, arr.Elements[1], "want a nil hole at index 1")
}

func TestParseObjectLiteralShorthandAndMethod(t *testing.T) {
	expr := parseExpr(t, "({a, f() {}});")
	obj := expr.(*ast.ObjectLiteral)
	require.Len(t, obj.Properties, 2)
	assert.True(t, obj.Properties[0].Shorthand, "{a} should be parsed as a shorthand property")
	assert.Equal(t, "method", obj.Properties[1].Kind)
}

func TestParseObjectLiteralGetterSetter(t *testing.T) {
	expr := parseExpr(t, "({ get x() { return 1; }, set x(v) {} });")
	obj := expr.(*ast.ObjectLiteral)
	assert.Equal(t, "get", obj.Properties[0].Kind)
	assert.Equal(t, "set", obj.Properties[1].Kind)
}

func TestParseTemplateLiteralWithSubstitution(t *testing.T) {
	expr := parseExpr(t, "`a${x}b`;")
	tmpl, ok := expr.(*ast.TemplateLiteral)
	require.True(t, ok, "expected *ast.TemplateLiteral, got %#v", expr)
	assert.Len(t, tmpl.Exprs, 1)
	assert.Len(t, tmpl.Raw, 2, "want 2 raw chunks (head + tail)")
}

func TestParseSequenceExpression(t *testing.T) {
	expr := parseExpr(t, "a, b, c;")
	seq, ok := expr.(*ast.SequenceExpr)
	require.True(t, ok, "expected a SequenceExpr, got %#v", expr)
	assert.Len(t, seq.Exprs, 3)
}

func TestParseParenthesizedExpressionUnwraps(t *testing.T) {
	expr := parseExpr(t, "(1 + 2);")
	_, ok := expr.(*ast.BinaryExpr)
	assert.True(t, ok, "parens should just regroup, not wrap in a node: got %#v", expr)
}

func TestParseRegexLiteralAfterOperatorSplitsPatternAndFlags(t *testing.T) {
	expr := parseExpr(t, "x = /ab+c/gi;")
	a := expr.(*ast.AssignExpr)
	re, ok := a.Value.(*ast.RegexLiteral)
	require.True(t, ok, "expected *ast.RegexLiteral, got %#v", a.Value)
	assert.Equal(t, "ab+c", re.Pattern)
	assert.Equal(t, "gi", re.Flags)
}
