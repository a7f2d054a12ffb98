package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tinyjs-go/tinyjs/pkg/token"
)

// countingVisitor records the concrete type of every node it's asked to
// visit, including the trailing Visit(nil) each visited node gets once
// its children (if any) are done.
type countingVisitor struct {
	visits []Node
}

func (c *countingVisitor) Visit(node Node) Visitor {
	c.visits = append(c.visits, node)
	return c
}

func TestWalkVisitsEveryNode(t *testing.T) {
	prog := &Program{
		Body: []Stmt{
			&VarDecl{
				Kind: DeclLet,
				Declarators: []Declarator{
					{Target: &Identifier{Name: "x"}, Init: &NumberLiteral{Raw: "1"}},
				},
			},
			&ExprStmt{
				Expr: &BinaryExpr{
					Op:   token.PLUS,
					Left: &Identifier{Name: "x"},
					Right: &CallExpr{
						Callee: &Identifier{Name: "f"},
						Args:   []Expr{&StringLiteral{Value: "a"}},
					},
				},
			},
		},
	}

	v := &countingVisitor{}
	Walk(v, prog)

	var sawBinary, sawCall, sawVarDecl, sawString bool
	for _, n := range v.visits {
		switch n.(type) {
		case *BinaryExpr:
			sawBinary = true
		case *CallExpr:
			sawCall = true
		case *VarDecl:
			sawVarDecl = true
		case *StringLiteral:
			sawString = true
		}
	}
	assert.True(t, sawBinary, "Walk missed BinaryExpr")
	assert.True(t, sawCall, "Walk missed CallExpr")
	assert.True(t, sawVarDecl, "Walk missed VarDecl")
	assert.True(t, sawString, "Walk missed StringLiteral")

	// Every non-nil Visit must be paired with a trailing Visit(nil) once
	// its children are done.
	nilCount := 0
	for _, n := range v.visits {
		if n == nil {
			nilCount++
		}
	}
	assert.Positive(t, nilCount, "Walk should call Visit(nil) after descending into a node's children")
}

func TestWalkNilVisitorStopsDescent(t *testing.T) {
	// A Visitor that returns nil for the root should prevent Walk from
	// descending into children at all.
	v := stopAfterRoot{}
	prog := &Program{Body: []Stmt{&ExprStmt{Expr: &Identifier{Name: "x"}}}}
	Walk(v, prog) // must not panic
}

type stopAfterRoot struct{}

func (stopAfterRoot) Visit(Node) Visitor { return nil }

func TestWalkNilNodeIsNoOp(t *testing.T) {
	v := &countingVisitor{}
	Walk(v, nil)
	assert.Empty(t, v.visits, "Walk(v, nil) should not call Visit at all")
}

func TestWalkIfCoversAllBranches(t *testing.T) {
	ifStmt := &If{
		Cond: &BoolLiteral{Value: true},
		Then: &Block{Body: []Stmt{&Return{}}},
		Else: &Block{Body: []Stmt{&Break{}}},
	}
	v := &countingVisitor{}
	Walk(v, ifStmt)

	var sawReturn, sawBreak bool
	for _, n := range v.visits {
		switch n.(type) {
		case *Return:
			sawReturn = true
		case *Break:
			sawBreak = true
		}
	}
	assert.True(t, sawReturn && sawBreak, "Walk should descend into both the Then and Else branches of an If")
}

func TestPosReturnsStoredPosition(t *testing.T) {
	want := token.Position{Line: 4, Column: 2}
	id := &Identifier{base: base{position: want}, Name: "n"}
	assert.Equal(t, want, id.Pos())
}
