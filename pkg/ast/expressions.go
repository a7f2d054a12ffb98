package ast

import "github.com/tinyjs-go/tinyjs/pkg/token"

// BinaryExpr covers every left-associative binary operator in spec.md
// §4.2's precedence table (arithmetic, comparison, bitwise, `in`,
// `instanceof`).
type BinaryExpr struct {
	base
	Op          token.Type
	Left, Right Expr
}

func (*BinaryExpr) exprNode() {}

// LogicalExpr covers `&&`, `||`, `??`. SkipRight is a jump-distance slot
// (spec.md §3.6/§4.5.1) that the parser leaves zero and the evaluator
// does not read; short-circuiting simply leaves Right unevaluated.
type LogicalExpr struct {
	base
	Op          token.Type
	Left, Right Expr
	SkipRight   int
}

func (*LogicalExpr) exprNode() {}

// UnaryExpr covers prefix `! ~ + - typeof void delete`.
type UnaryExpr struct {
	base
	Op      token.Type
	Operand Expr
}

func (*UnaryExpr) exprNode() {}

// UpdateExpr covers `++`/`--`, prefix or postfix.
type UpdateExpr struct {
	base
	Op      token.Type
	Operand Expr
	Prefix  bool
}

func (*UpdateExpr) exprNode() {}

// AssignExpr covers `=` and every compound-assignment operator.
type AssignExpr struct {
	base
	Op          token.Type
	Target      Expr // Identifier, MemberExpr, or a destructuring Pattern
	Value       Expr
}

func (*AssignExpr) exprNode() {}

// ConditionalExpr is the ternary `cond ? then : else`. SkipThen/SkipElse
// are jump-distance slots that the parser leaves zero and the evaluator
// does not read.
type ConditionalExpr struct {
	base
	Cond, Then, Else Expr
	SkipThen, SkipElse int
}

func (*ConditionalExpr) exprNode() {}

// MemberExpr covers `a.b`, `a[b]`, and their optional-chaining variants
// `a?.b`, `a?.[b]` (Optional=true short-circuits the whole chain to
// undefined on a nullish Object, per spec.md §4.5.1).
type MemberExpr struct {
	base
	Object     Expr
	Property   Expr // Identifier for `.b`, arbitrary Expr for `[b]`
	Computed   bool
	Optional   bool
}

func (*MemberExpr) exprNode() {}

// CallExpr covers function calls and `?.()` optional calls. Spread
// arguments appear as *SpreadElement entries in Args.
type CallExpr struct {
	base
	Callee   Expr
	Args     []Expr
	Optional bool
}

func (*CallExpr) exprNode() {}

// NewExpr is `new Callee(Args)` (spec.md §4.5.1's four-step protocol).
type NewExpr struct {
	base
	Callee Expr
	Args   []Expr
}

func (*NewExpr) exprNode() {}

// NewTargetExpr is the `new.target` meta-property (spec.md §4.5.1 step 4,
// §8's testable new.target property): the constructor function when
// evaluated inside a `new X(...)` call, undefined otherwise.
type NewTargetExpr struct {
	base
}

func (*NewTargetExpr) exprNode() {}

// SpreadElement appears inside array literals and call argument lists.
type SpreadElement struct {
	base
	Argument Expr
}

func (*SpreadElement) exprNode() {}

// ArrayLiteral is `[a, b, ...rest]`; nil entries represent elisions
// (`[1, , 3]`).
type ArrayLiteral struct {
	base
	Elements []Expr
}

func (*ArrayLiteral) exprNode() {}

// ObjectProperty is one `key: value`, `key`, `[computed]: value`,
// `...spread`, or method entry of an object literal.
type ObjectProperty struct {
	Key      Expr // Identifier or computed Expr
	Value    Expr
	Computed bool
	Spread   bool
	Shorthand bool
	Kind      string // "init", "get", "set", "method"
}

// ObjectLiteral is `{ ... }`; spec.md §3.6 calls this the ObjectLiteral
// token, shared between object literal *expressions* and destructuring
// *patterns* — Destructuring/Structuring distinguish the two uses once
// the tokenizer resolves the ambiguity (spec.md §4.2).
type ObjectLiteral struct {
	base
	Properties    []ObjectProperty
	Destructuring bool
	Structuring   bool
}

func (*ObjectLiteral) exprNode() {}

// TemplateLiteral holds the text chunks and the interleaved value
// expressions (spec.md §3.6). Tag is non-nil for a tagged template. Raw
// holds the same escape-processed text as Cooked: the lexer does not
// keep the unprocessed source spelling of a chunk.
type TemplateLiteral struct {
	base
	Raw, Cooked []string
	Exprs       []Expr
	Tag         Expr
}

func (*TemplateLiteral) exprNode() {}

// FunctionExpr wraps an *Fnc so a function literal can appear in
// expression position (function expressions and arrow functions).
type FunctionExpr struct {
	base
	Fn *Fnc
}

func (*FunctionExpr) exprNode() {}

// YieldExpr is only legal inside a generator body, enforced by the
// tokenizer's generator-context flag (spec.md §4.1's `yield` handling).
type YieldExpr struct {
	base
	Argument Expr
	Delegate bool // `yield*`
}

func (*YieldExpr) exprNode() {}
