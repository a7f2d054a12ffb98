package ast

import "github.com/tinyjs-go/tinyjs/pkg/token"

// Block is a brace-delimited statement list; it introduces a LetScope
// only if Forwards has lexical or function entries (spec.md §4.4).
type Block struct {
	base
	Body     []Stmt
	Forwards *Forwards
}

func (*Block) stmtNode() {}

// DeclKind distinguishes `var`/`let`/`const` binding semantics.
type DeclKind uint8

const (
	DeclVar DeclKind = iota
	DeclLet
	DeclConst
)

// Declarator is one `name = init` (or bare `name`, or a destructuring
// pattern) entry of a VarDecl.
type Declarator struct {
	Target Expr // Identifier or destructuring pattern
	Init   Expr // nil if uninitialized
}

// VarDecl is `var|let|const decl, decl, ...;`.
type VarDecl struct {
	base
	Kind        DeclKind
	Declarators []Declarator
}

func (*VarDecl) stmtNode() {}

// ExprStmt is any top-level expression used as a statement.
type ExprStmt struct {
	base
	Expr Expr
}

func (*ExprStmt) stmtNode() {}

// Return is `return [Argument];`; Argument is nil for a bare `return;`.
type Return struct {
	base
	Argument Expr
}

func (*Return) stmtNode() {}

// Break is `break [Label];`.
type Break struct {
	base
	Label string
}

func (*Break) stmtNode() {}

// Continue is `continue [Label];`.
type Continue struct {
	base
	Label string
}

func (*Continue) stmtNode() {}

// Throw is `throw Argument;`.
type Throw struct {
	base
	Argument Expr
}

func (*Throw) stmtNode() {}

// EmptyStmt is a bare `;`.
type EmptyStmt struct{ base }

func (*EmptyStmt) stmtNode() {}

// tokenPos is a small helper constructor used by the tokenizer to build
// a base from a token's position without importing ast's internals
// elsewhere.
func tokenPos(pos token.Position) base { return base{position: pos} }
