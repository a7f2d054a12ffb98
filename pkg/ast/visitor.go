package ast

// Visitor is implemented by callers of Walk. Visit is called with every
// node Walk descends into; if it returns a non-nil Visitor, Walk uses
// that visitor for the node's children, then calls Visit(nil) once the
// children are done (mirroring go/ast.Visitor, which the teacher's own
// pkg/ast visitor tests are written against).
type Visitor interface {
	Visit(node Node) Visitor
}

// Walk traverses a token tree in depth-first order, for diagnostic
// tooling and tests; the evaluator does not use Walk (it dispatches on
// concrete types directly), so Walk favors completeness over speed.
func Walk(v Visitor, node Node) {
	if node == nil {
		return
	}
	v = v.Visit(node)
	if v == nil {
		return
	}
	defer v.Visit(nil)

	switch n := node.(type) {
	case *Program:
		walkForwards(v, n.Forwards)
		walkStmts(v, n.Body)
	case *Skip:
		// leaf
	case *Identifier, *NumberLiteral, *StringLiteral, *BoolLiteral,
		*NullLiteral, *UndefinedLiteral, *ThisExpr, *SuperExpr, *RegexLiteral,
		*EmptyStmt, *Break, *Continue:
		// leaves
	case *SequenceExpr:
		walkExprs(v, n.Exprs)
	case *BinaryExpr:
		Walk(v, n.Left)
		Walk(v, n.Right)
	case *LogicalExpr:
		Walk(v, n.Left)
		Walk(v, n.Right)
	case *UnaryExpr:
		Walk(v, n.Operand)
	case *UpdateExpr:
		Walk(v, n.Operand)
	case *AssignExpr:
		Walk(v, n.Target)
		Walk(v, n.Value)
	case *ConditionalExpr:
		Walk(v, n.Cond)
		Walk(v, n.Then)
		Walk(v, n.Else)
	case *MemberExpr:
		Walk(v, n.Object)
		Walk(v, n.Property)
	case *CallExpr:
		Walk(v, n.Callee)
		walkExprs(v, n.Args)
	case *NewExpr:
		Walk(v, n.Callee)
		walkExprs(v, n.Args)
	case *SpreadElement:
		Walk(v, n.Argument)
	case *ArrayLiteral:
		walkExprs(v, n.Elements)
	case *ObjectLiteral:
		for _, p := range n.Properties {
			if p.Computed {
				Walk(v, p.Key)
			}
			Walk(v, p.Value)
		}
	case *TemplateLiteral:
		walkExprs(v, n.Exprs)
		if n.Tag != nil {
			Walk(v, n.Tag)
		}
	case *FunctionExpr:
		Walk(v, n.Fn)
	case *YieldExpr:
		if n.Argument != nil {
			Walk(v, n.Argument)
		}
	case *Fnc:
		for _, p := range n.Params {
			Walk(v, p.Target)
			if p.Default != nil {
				Walk(v, p.Default)
			}
		}
		walkForwards(v, n.Forwards)
		if n.ExprBody != nil {
			Walk(v, n.ExprBody)
		}
		if n.Body != nil {
			Walk(v, n.Body)
		}
	case *Block:
		walkForwards(v, n.Forwards)
		walkStmts(v, n.Body)
	case *VarDecl:
		for _, d := range n.Declarators {
			Walk(v, d.Target)
			if d.Init != nil {
				Walk(v, d.Init)
			}
		}
	case *ExprStmt:
		Walk(v, n.Expr)
	case *Return:
		if n.Argument != nil {
			Walk(v, n.Argument)
		}
	case *Throw:
		Walk(v, n.Argument)
	case *Labeled:
		Walk(v, n.Body)
	case *If:
		Walk(v, n.Cond)
		Walk(v, n.Then)
		if n.Else != nil {
			Walk(v, n.Else)
		}
	case *Loop:
		if n.Init != nil {
			Walk(v, n.Init)
		}
		if n.Cond != nil {
			Walk(v, n.Cond)
		}
		if n.Post != nil {
			Walk(v, n.Post)
		}
		if n.Left != nil {
			Walk(v, n.Left)
		}
		if n.Right != nil {
			Walk(v, n.Right)
		}
		Walk(v, n.Body)
	case *Try:
		Walk(v, n.Block)
		if n.Catch != nil {
			if n.Catch.Param != nil {
				Walk(v, n.Catch.Param)
			}
			Walk(v, n.Catch.Body)
		}
		if n.Finally != nil {
			Walk(v, n.Finally)
		}
	case *Switch:
		Walk(v, n.Disc)
		for _, c := range n.Cases {
			if c.Test != nil {
				Walk(v, c.Test)
			}
			walkStmts(v, c.Body)
		}
	case *With:
		Walk(v, n.Object)
		Walk(v, n.Body)
	default:
		panic("ast.Walk: unhandled node type")
	}
}

func walkStmts(v Visitor, list []Stmt) {
	for _, s := range list {
		Walk(v, s)
	}
}

func walkExprs(v Visitor, list []Expr) {
	for _, e := range list {
		if e != nil {
			Walk(v, e)
		}
	}
}

func walkForwards(v Visitor, f *Forwards) {
	if f == nil {
		return
	}
	for _, fn := range f.Functions {
		Walk(v, fn)
	}
}
