// Package ast defines the 42tinyjs token tree: the tokenizer's output, a
// flat-vector-of-nodes representation whose control-flow nodes carry
// pre-resolved nested sub-trees (spec.md §3.6), so the evaluator never
// has to look ahead for an `else`, a `catch`, or a loop body.
package ast

import "github.com/tinyjs-go/tinyjs/pkg/token"

// Node is implemented by every tree element: expressions, statements, and
// the nested *Data payloads control-flow statements carry.
type Node interface {
	Pos() token.Position
	node()
}

// Expr is implemented by expression nodes.
type Expr interface {
	Node
	exprNode()
}

// Stmt is implemented by statement nodes.
type Stmt interface {
	Node
	stmtNode()
}

// base embeds a position into every concrete node without repeating the
// Pos() method everywhere.
type base struct{ position token.Position }

func (b base) Pos() token.Position   { return b.position }
func (b *base) SetPos(pos token.Position) { b.position = pos }
func (base) node()                   {}

// Program is the root of a parsed script: its hoisted declarations
// (Forwards) followed by the top-level statement list.
type Program struct {
	base
	Forwards *Forwards
	Body     []Stmt
}

// Skip is spec.md §3.6's LEX_T_SKIP: a marker whose Distance counts the
// number of sibling nodes to advance past. The parser does not emit Skip
// nodes; short-circuit operators, ternary arms and switch cases are
// skipped by the evaluator not visiting them.
type Skip struct {
	base
	Distance int
}

func (*Skip) exprNode() {}
func (*Skip) stmtNode() {}

// Identifier is a bare name reference.
type Identifier struct {
	base
	Name string
}

func (*Identifier) exprNode() {}

// NumberLiteral, StringLiteral, BoolLiteral, NullLiteral, UndefinedLiteral
// are the primitive literal expression nodes.
type NumberLiteral struct {
	base
	Raw string // exact source spelling; internal/value.Number parses it lazily
}

func (*NumberLiteral) exprNode() {}

type StringLiteral struct {
	base
	Value string // already escape-resolved by the lexer
}

func (*StringLiteral) exprNode() {}

type BoolLiteral struct {
	base
	Value bool
}

func (*BoolLiteral) exprNode() {}

type NullLiteral struct{ base }

func (*NullLiteral) exprNode() {}

type UndefinedLiteral struct{ base }

func (*UndefinedLiteral) exprNode() {}

type ThisExpr struct{ base }

func (*ThisExpr) exprNode() {}

type SuperExpr struct{ base }

func (*SuperExpr) exprNode() {}

// RegexLiteral carries the already-validated pattern/flags pair.
type RegexLiteral struct {
	base
	Pattern string
	Flags   string
}

func (*RegexLiteral) exprNode() {}

// SequenceExpr is the comma operator: `a, b, c`.
type SequenceExpr struct {
	base
	Exprs []Expr
}

func (*SequenceExpr) exprNode() {}
