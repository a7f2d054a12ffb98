package ast

import "github.com/tinyjs-go/tinyjs/pkg/token"

// LoopKind discriminates the five loop shapes spec.md §3.6 folds into one
// node so the evaluator has a single dispatch point.
type LoopKind uint8

const (
	LoopFor LoopKind = iota
	LoopWhile
	LoopDoWhile
	LoopForIn
	LoopForOf
)

// Loop is every C-style, while/do-while, for-in, and for-of loop. Init,
// Cond, and Post are nil when the corresponding clause is absent
// (`for (;;)`); Left/Right are used instead of Init/Cond for for-in/for-of.
type Loop struct {
	base
	Kind  LoopKind
	Label string

	Init Stmt // for(Init; Cond; Post)
	Cond Expr
	Post Expr

	Left   Stmt // for-in/for-of binding: VarDecl or an assignment target expr
	Right  Expr // for-in/for-of iterated expression

	Body Stmt
}

func (*Loop) stmtNode() {}

// If is `if (Cond) Then [else Else]`; Else is nil when absent.
type If struct {
	base
	Cond Expr
	Then Stmt
	Else Stmt
}

func (*If) stmtNode() {}

// CatchClause binds the thrown value (Param may be nil for `catch {}`
// with no binding) and runs Body.
type CatchClause struct {
	Param Expr // Identifier or destructuring pattern; nil if omitted
	Body  *Block
}

// Try is `try Block [catch (...) Block] [finally Block]`.
type Try struct {
	base
	Block   *Block
	Catch   *CatchClause
	Finally *Block
}

func (*Try) stmtNode() {}

// SwitchCase is one `case Test:`/`default:` arm; Test is nil for default.
type SwitchCase struct {
	Test Expr
	Body []Stmt
}

// Switch is the `switch (Disc) { case ... }` statement.
type Switch struct {
	base
	Disc  Expr
	Cases []SwitchCase
}

func (*Switch) stmtNode() {}

// With is the legacy `with (Object) Body` scope-injection statement
// (spec.md §4.4's WithScope).
type With struct {
	base
	Object Expr
	Body   Stmt
}

func (*With) stmtNode() {}

// Labeled wraps any statement with a label usable by a matching
// break/continue.
type Labeled struct {
	base
	Label string
	Body  Stmt
}

func (*Labeled) stmtNode() {}

// Param is one formal parameter: a plain Identifier, a destructuring
// pattern (ObjectLiteral/ArrayLiteral in pattern mode), optionally with a
// Default value, optionally a rest parameter (`...name`).
type Param struct {
	Target  Expr
	Default Expr
	Rest    bool
}

// Fnc is every function-shaped token-tree node: declarations,
// expressions, arrow functions, methods, and getters/setters all share
// this shape (spec.md §3.6), distinguished by the flag fields below.
type Fnc struct {
	base
	Name      string // empty for anonymous function expressions/arrows
	Params    []Param
	Body      *Block
	Forwards  *Forwards

	ExprBody Expr // non-nil for an arrow function with a concise (expression) body

	Arrow     bool
	Generator bool
	Async     bool
	Method    bool
	Getter    bool
	Setter    bool

	File string
	Line int
}

func (*Fnc) stmtNode() {}
func (*Fnc) exprNode() {}
