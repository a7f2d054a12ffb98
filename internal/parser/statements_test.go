package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinyjs-go/tinyjs/pkg/ast"
)

func parseProgram(t *testing.T, src string) *ast.Program {
	t.Helper()
	p := New(src)
	prog := p.Parse()
	require.Empty(t, p.Errors(), "unexpected parse errors for %q", src)
	return prog
}

func TestParseVarDeclHoistsIntoForwards(t *testing.T) {
	prog := parseProgram(t, "var x = 1;")
	require.Len(t, prog.Forwards.Vars, 1)
	assert.Equal(t, "x", prog.Forwards.Vars[0])
	require.Len(t, prog.Body, 1)
	decl, ok := prog.Body[0].(*ast.VarDecl)
	require.True(t, ok, "expected a var VarDecl, got %#v", prog.Body[0])
	assert.Equal(t, ast.DeclVar, decl.Kind)
}

func TestParseLetDeclRegistersLexicalName(t *testing.T) {
	prog := parseProgram(t, "let y = 2;")
	require.Len(t, prog.Forwards.Lexical, 1)
	assert.Equal(t, "y", prog.Forwards.Lexical[0].Name)
	assert.False(t, prog.Forwards.Lexical[0].Constant, "let binding should not be marked Constant")
}

func TestParseConstDeclIsMarkedConstant(t *testing.T) {
	prog := parseProgram(t, "const z = 3;")
	assert.True(t, prog.Forwards.Lexical[0].Constant, "const binding should be marked Constant")
}

func TestParseMultipleDeclaratorsInOneVarDecl(t *testing.T) {
	prog := parseProgram(t, "var a = 1, b = 2;")
	decl := prog.Body[0].(*ast.VarDecl)
	assert.Len(t, decl.Declarators, 2)
}

func TestParseDestructuringArrayBindingRegistersAllNames(t *testing.T) {
	prog := parseProgram(t, "let [a, b, ...rest] = x;")
	assert.Len(t, prog.Forwards.Lexical, 3)
}

func TestParseBlockHasOwnForwards(t *testing.T) {
	prog := parseProgram(t, "{ let inner = 1; }")
	block, ok := prog.Body[0].(*ast.Block)
	require.True(t, ok, "expected *ast.Block, got %#v", prog.Body[0])
	require.NotNil(t, block.Forwards, "block should hoist its own lexical name")
	assert.Len(t, block.Forwards.Lexical, 1)
	// The outer Program scope must not see the block-local let.
	assert.Empty(t, prog.Forwards.Lexical, "let inside a nested block must not leak into the enclosing Forwards")
}

func TestParseReturnWithoutArgument(t *testing.T) {
	prog := parseProgram(t, "function f() { return; }")
	fn := prog.Forwards.Functions[0]
	ret := fn.Body.Body[0].(*ast.Return)
	assert.Nil(t, ret.Argument, "bare return should have a nil Argument")
}

func TestParseReturnASIStopsAtLineBreak(t *testing.T) {
	// ASI: a line break right after `return` means no argument is parsed,
	// even though `1` looks like it could be one.
	prog := parseProgram(t, "function f() {\nreturn\n1;\n}")
	fn := prog.Forwards.Functions[0]
	ret := fn.Body.Body[0].(*ast.Return)
	assert.Nil(t, ret.Argument, "ASI should prevent the next line from being parsed as the return argument")
	assert.Len(t, fn.Body.Body, 2, "expected a second statement for the orphaned `1;`")
}

func TestParseBreakAndContinueWithLabel(t *testing.T) {
	prog := parseProgram(t, "outer: for (;;) { break outer; }")
	labeled := prog.Body[0].(*ast.Labeled)
	require.Equal(t, "outer", labeled.Label)
	loop := labeled.Body.(*ast.Loop)
	brk := loop.Body.(*ast.Block).Body[0].(*ast.Break)
	assert.Equal(t, "outer", brk.Label)
}

func TestParseThrow(t *testing.T) {
	prog := parseProgram(t, `throw new Error("boom");`)
	th, ok := prog.Body[0].(*ast.Throw)
	require.True(t, ok, "expected *ast.Throw, got %#v", prog.Body[0])
	_, ok = th.Argument.(*ast.NewExpr)
	assert.True(t, ok, "throw argument = %#v, want *ast.NewExpr", th.Argument)
}

func TestParseEmptyStatement(t *testing.T) {
	prog := parseProgram(t, ";")
	_, ok := prog.Body[0].(*ast.EmptyStmt)
	assert.True(t, ok, "expected *ast.EmptyStmt, got %#v", prog.Body[0])
}

func TestParseMissingSemicolonIsRecordedAsError(t *testing.T) {
	p := New("let x = 1 let y = 2;")
	p.Parse()
	assert.NotEmpty(t, p.Errors(), "expected a structural error for the missing semicolon")
}
