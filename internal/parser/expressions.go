package parser

import (
	"github.com/dlclark/regexp2"

	"github.com/tinyjs-go/tinyjs/pkg/ast"
	"github.com/tinyjs-go/tinyjs/pkg/token"
)

// parseExpression parses a full Expression: AssignmentExpression
// (',' AssignmentExpression)*, building a SequenceExpr only when a comma
// actually appears.
func (p *Parser) parseExpression() ast.Expr {
	pos := p.cur().Pos
	first := p.parseAssignment()
	if !p.is(token.COMMA) {
		return first
	}
	exprs := []ast.Expr{first}
	for p.is(token.COMMA) {
		p.advance()
		exprs = append(exprs, p.parseAssignment())
	}
	seq := &ast.SequenceExpr{Exprs: exprs}
	seq.SetPos(pos)
	return seq
}

// parseAssignment parses an AssignmentExpression: an arrow function, a
// `target = value` (or compound-assignment) pair, or falls through to
// the conditional-expression grammar.
func (p *Parser) parseAssignment() ast.Expr {
	if arrow := p.tryParseArrow(); arrow != nil {
		return arrow
	}

	pos := p.cur().Pos
	left := p.parseConditional()

	if op := p.cur().Type; assignOps[op] {
		p.advance()
		value := p.parseAssignment()
		target := left
		if op == token.ASSIGN {
			target = p.toPattern(left)
		}
		a := &ast.AssignExpr{Op: op, Target: target, Value: value}
		a.SetPos(pos)
		return a
	}
	return left
}

// parseConditional parses the ternary `cond ? then : else`, falling
// through to parseBinary for everything else.
func (p *Parser) parseConditional() ast.Expr {
	pos := p.cur().Pos
	cond := p.parseBinary(precLowest)
	if !p.is(token.QUESTION) {
		return cond
	}
	p.advance()
	then := p.parseAssignment()
	p.expect(token.COLON)
	els := p.parseAssignment()
	c := &ast.ConditionalExpr{Cond: cond, Then: then, Else: els}
	c.SetPos(pos)
	return c
}

// parseBinary implements precedence climbing over binaryPrec, folding
// `&&`/`||`/`??` into LogicalExpr (distinct from BinaryExpr so the
// evaluator can short-circuit) and everything else into BinaryExpr.
func (p *Parser) parseBinary(minPrec precedence) ast.Expr {
	left := p.parseUnary()
	for {
		op := p.cur().Type
		prec, ok := binaryPrec[op]
		if !ok || prec < minPrec {
			return left
		}
		pos := p.cur().Pos
		p.advance()
		nextMin := prec + 1
		if rightAssoc[op] {
			nextMin = prec
		}
		right := p.parseBinary(nextMin)
		if isLogical(op) {
			n := &ast.LogicalExpr{Op: op, Left: left, Right: right}
			n.SetPos(pos)
			left = n
		} else {
			n := &ast.BinaryExpr{Op: op, Left: left, Right: right}
			n.SetPos(pos)
			left = n
		}
	}
}

// parseUnary handles prefix `! ~ + - typeof void delete` and prefix
// `++`/`--`, then falls through to postfix/call/member parsing.
func (p *Parser) parseUnary() ast.Expr {
	tok := p.cur()
	if unaryOps[tok.Type] {
		p.advance()
		operand := p.parseUnary()
		u := &ast.UnaryExpr{Op: tok.Type, Operand: operand}
		u.SetPos(tok.Pos)
		return u
	}
	if tok.Type == token.INCR || tok.Type == token.DECR {
		p.advance()
		operand := p.parseUnary()
		u := &ast.UpdateExpr{Op: tok.Type, Operand: operand, Prefix: true}
		u.SetPos(tok.Pos)
		return u
	}
	return p.parsePostfix()
}

// parsePostfix parses a LeftHandSideExpression (member/call/new chain)
// and then an optional trailing, same-line `++`/`--`.
func (p *Parser) parsePostfix() ast.Expr {
	expr := p.parseCallMemberChain(p.parseNewOrPrimary())
	if (p.is(token.INCR) || p.is(token.DECR)) && !p.cur().LineBreakBefore {
		tok := p.advance()
		u := &ast.UpdateExpr{Op: tok.Type, Operand: expr, Prefix: false}
		u.SetPos(tok.Pos)
		return u
	}
	return expr
}

// parseNewOrPrimary handles `new Callee(args)` (spec.md §4.5.1); `new`
// without a following `(` binds only to the member chain immediately
// after it, per ECMAScript's NewExpression production.
func (p *Parser) parseNewOrPrimary() ast.Expr {
	if p.is(token.NEW) {
		pos := p.cur().Pos
		p.advance()
		if p.is(token.DOT) && p.peekTok(1).Literal == "target" {
			p.advance() // .
			p.advance() // target
			nt := &ast.NewTargetExpr{}
			nt.SetPos(pos)
			return nt
		}
		callee := p.parseCallMemberChain(p.parseNewOrPrimary())
		// If parseCallMemberChain already consumed a call on callee, that
		// call's arguments belong to `new`; unwrap it here.
		if call, ok := callee.(*ast.CallExpr); ok {
			n := &ast.NewExpr{Callee: call.Callee, Args: call.Args}
			n.SetPos(pos)
			return n
		}
		n := &ast.NewExpr{Callee: callee, Args: nil}
		n.SetPos(pos)
		return n
	}
	return p.parsePrimary()
}

// parseCallMemberChain consumes `.name`, `[expr]`, `(args)`, and their
// optional-chaining variants in a loop off of base.
func (p *Parser) parseCallMemberChain(base ast.Expr) ast.Expr {
	for {
		switch p.cur().Type {
		case token.DOT:
			pos := p.advance().Pos
			name := p.expect(token.IDENT)
			prop := &ast.Identifier{Name: name.Literal}
			prop.SetPos(name.Pos)
			m := &ast.MemberExpr{Object: base, Property: prop, Computed: false}
			m.SetPos(pos)
			base = m
		case token.QUESTION_DOT:
			pos := p.advance().Pos
			name := p.expect(token.IDENT)
			prop := &ast.Identifier{Name: name.Literal}
			prop.SetPos(name.Pos)
			m := &ast.MemberExpr{Object: base, Property: prop, Computed: false, Optional: true}
			m.SetPos(pos)
			base = m
		case token.LBRACKET:
			pos := p.advance().Pos
			idx := p.parseExpression()
			p.expect(token.RBRACKET)
			m := &ast.MemberExpr{Object: base, Property: idx, Computed: true}
			m.SetPos(pos)
			base = m
		case token.QUESTION_DOT_BRACK:
			pos := p.advance().Pos
			idx := p.parseExpression()
			p.expect(token.RBRACKET)
			m := &ast.MemberExpr{Object: base, Property: idx, Computed: true, Optional: true}
			m.SetPos(pos)
			base = m
		case token.LPAREN:
			pos := p.cur().Pos
			args := p.parseArguments()
			c := &ast.CallExpr{Callee: base, Args: args}
			c.SetPos(pos)
			base = c
		case token.QUESTION_DOT_PAREN:
			pos := p.cur().Pos
			args := p.parseArguments()
			c := &ast.CallExpr{Callee: base, Args: args, Optional: true}
			c.SetPos(pos)
			base = c
		case token.TEMPLATE_LITERAL, token.TEMPLATE_HEAD:
			tagged := p.parseTemplateLiteral()
			tagged.(*ast.TemplateLiteral).Tag = base
			base = tagged
		default:
			return base
		}
	}
}

// parseArguments parses a parenthesized, comma-separated argument list,
// accepting `...expr` spread entries.
func (p *Parser) parseArguments() []ast.Expr {
	p.expect(token.LPAREN)
	var args []ast.Expr
	for !p.is(token.RPAREN) && !p.is(token.EOF) {
		if p.is(token.ELLIPSIS) {
			pos := p.advance().Pos
			s := &ast.SpreadElement{Argument: p.parseAssignment()}
			s.SetPos(pos)
			args = append(args, s)
		} else {
			args = append(args, p.parseAssignment())
		}
		if !p.is(token.COMMA) {
			break
		}
		p.advance()
	}
	p.expect(token.RPAREN)
	return args
}

// parsePrimary parses identifiers, literals, parenthesized expressions,
// array/object literals, template literals, and function expressions.
func (p *Parser) parsePrimary() ast.Expr {
	tok := p.cur()
	switch tok.Type {
	case token.IDENT, token.ARGUMENTS:
		p.advance()
		id := &ast.Identifier{Name: tok.Literal}
		id.SetPos(tok.Pos)
		return id
	case token.YIELD:
		return p.parseYield()
	case token.INT, token.FLOAT:
		p.advance()
		n := &ast.NumberLiteral{Raw: tok.Literal}
		n.SetPos(tok.Pos)
		return n
	case token.STRING:
		p.advance()
		s := &ast.StringLiteral{Value: tok.Literal}
		s.SetPos(tok.Pos)
		return s
	case token.TRUE, token.FALSE:
		p.advance()
		b := &ast.BoolLiteral{Value: tok.Type == token.TRUE}
		b.SetPos(tok.Pos)
		return b
	case token.NULL:
		p.advance()
		n := &ast.NullLiteral{}
		n.SetPos(tok.Pos)
		return n
	case token.UNDEFINED:
		p.advance()
		u := &ast.UndefinedLiteral{}
		u.SetPos(tok.Pos)
		return u
	case token.THIS:
		p.advance()
		t := &ast.ThisExpr{}
		t.SetPos(tok.Pos)
		return t
	case token.SUPER:
		p.advance()
		s := &ast.SuperExpr{}
		s.SetPos(tok.Pos)
		return s
	case token.REGEX:
		p.advance()
		pattern, flags := splitRegexLiteral(tok.Literal)
		if _, err := regexp2.Compile(pattern, regexp2.None); err != nil {
			p.errorf(tok.Pos, "invalid regular expression: %v", err)
		}
		r := &ast.RegexLiteral{Pattern: pattern, Flags: flags}
		r.SetPos(tok.Pos)
		return r
	case token.LPAREN:
		p.advance()
		expr := p.parseExpression()
		p.expect(token.RPAREN)
		return expr
	case token.LBRACKET:
		return p.parseArrayLiteral()
	case token.LBRACE:
		return p.parseObjectLiteral()
	case token.TEMPLATE_LITERAL, token.TEMPLATE_HEAD:
		return p.parseTemplateLiteral()
	case token.FUNCTION:
		return p.parseFunctionExpr()
	}
	p.errorf(tok.Pos, "unexpected token %s in expression", tok.Type)
	p.advance()
	bad := &ast.Identifier{Name: "<error>"}
	bad.SetPos(tok.Pos)
	return bad
}

func (p *Parser) parseYield() ast.Expr {
	pos := p.advance().Pos
	y := &ast.YieldExpr{}
	y.SetPos(pos)
	if p.is(token.STAR) {
		p.advance()
		y.Delegate = true
	}
	if p.cur().LineBreakBefore || p.is(token.SEMICOLON) || p.is(token.RBRACE) ||
		p.is(token.RPAREN) || p.is(token.RBRACKET) || p.is(token.COMMA) || p.is(token.EOF) {
		return y
	}
	y.Argument = p.parseAssignment()
	return y
}

func (p *Parser) parseArrayLiteral() ast.Expr {
	pos := p.expect(token.LBRACKET).Pos
	var elems []ast.Expr
	for !p.is(token.RBRACKET) && !p.is(token.EOF) {
		if p.is(token.COMMA) {
			elems = append(elems, nil) // elision
			p.advance()
			continue
		}
		if p.is(token.ELLIPSIS) {
			spos := p.advance().Pos
			s := &ast.SpreadElement{Argument: p.parseAssignment()}
			s.SetPos(spos)
			elems = append(elems, s)
		} else {
			elems = append(elems, p.parseAssignment())
		}
		if p.is(token.COMMA) {
			p.advance()
		} else {
			break
		}
	}
	p.expect(token.RBRACKET)
	a := &ast.ArrayLiteral{Elements: elems}
	a.SetPos(pos)
	return a
}

func (p *Parser) parseObjectLiteral() ast.Expr {
	pos := p.expect(token.LBRACE).Pos
	var props []ast.ObjectProperty
	for !p.is(token.RBRACE) && !p.is(token.EOF) {
		props = append(props, p.parseObjectProperty())
		if p.is(token.COMMA) {
			p.advance()
		} else {
			break
		}
	}
	p.expect(token.RBRACE)
	o := &ast.ObjectLiteral{Properties: props}
	o.SetPos(pos)
	return o
}

func (p *Parser) parseObjectProperty() ast.ObjectProperty {
	if p.is(token.ELLIPSIS) {
		p.advance()
		return ast.ObjectProperty{Spread: true, Value: p.parseAssignment()}
	}
	if (p.is(token.IDENT) && (p.cur().Literal == "get" || p.cur().Literal == "set")) &&
		!p.peekTok(1).LineBreakBefore && p.peekTok(1).Type != token.COLON &&
		p.peekTok(1).Type != token.COMMA && p.peekTok(1).Type != token.RBRACE && p.peekTok(1).Type != token.LPAREN {
		kind := p.advance().Literal
		key, computed := p.parsePropertyKey()
		fn := p.parseFunctionTail(false)
		return ast.ObjectProperty{Key: key, Computed: computed, Value: wrapFunctionExpr(fn), Kind: kind}
	}

	key, computed := p.parsePropertyKey()
	if p.is(token.LPAREN) {
		fn := p.parseFunctionTail(false)
		return ast.ObjectProperty{Key: key, Computed: computed, Value: wrapFunctionExpr(fn), Kind: "method"}
	}
	if p.is(token.COLON) {
		p.advance()
		val := p.parseAssignment()
		return ast.ObjectProperty{Key: key, Computed: computed, Value: val, Kind: "init"}
	}
	// Shorthand `{ a }` or `{ a = default }` (the latter only legal in a
	// destructuring pattern; the AssignExpr built here carries the default).
	if p.is(token.ASSIGN) {
		p.advance()
		def := p.parseAssignment()
		a := &ast.AssignExpr{Op: token.ASSIGN, Target: key, Value: def}
		a.SetPos(key.Pos())
		return ast.ObjectProperty{Key: key, Value: a, Kind: "init", Shorthand: true}
	}
	return ast.ObjectProperty{Key: key, Value: key, Kind: "init", Shorthand: true}
}

func (p *Parser) parsePropertyKey() (ast.Expr, bool) {
	if p.is(token.LBRACKET) {
		p.advance()
		key := p.parseAssignment()
		p.expect(token.RBRACKET)
		return key, true
	}
	tok := p.cur()
	if tok.Type == token.STRING {
		p.advance()
		s := &ast.StringLiteral{Value: tok.Literal}
		s.SetPos(tok.Pos)
		return s, false
	}
	if tok.Type == token.INT || tok.Type == token.FLOAT {
		p.advance()
		id := &ast.Identifier{Name: tok.Literal}
		id.SetPos(tok.Pos)
		return id, false
	}
	// Any identifier or keyword spelling is a valid property name.
	p.advance()
	id := &ast.Identifier{Name: tok.Literal}
	id.SetPos(tok.Pos)
	return id, false
}

func (p *Parser) parseTemplateLiteral() ast.Expr {
	tok := p.cur()
	t := &ast.TemplateLiteral{}
	t.SetPos(tok.Pos)
	if tok.Type == token.TEMPLATE_LITERAL {
		p.advance()
		t.Raw = []string{tok.Literal}
		t.Cooked = []string{tok.Literal}
		return t
	}
	p.advance() // TEMPLATE_HEAD
	t.Raw = append(t.Raw, tok.Literal)
	t.Cooked = append(t.Cooked, tok.Literal)
	for {
		t.Exprs = append(t.Exprs, p.parseExpression())
		p.expect(token.RBRACE)
		next := p.l.ResumeTemplate()
		t.Raw = append(t.Raw, next.Literal)
		t.Cooked = append(t.Cooked, next.Literal)
		if next.Type == token.TEMPLATE_TAIL {
			break
		}
	}
	return t
}

func splitRegexLiteral(lit string) (pattern, flags string) {
	i := len(lit) - 1
	for i >= 0 && isAsciiLetter(lit[i]) {
		i--
	}
	return lit[1:i], lit[i+1:]
}

func isAsciiLetter(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }

// wrapFunctionExpr boxes an *ast.Fnc for use where an ast.Expr is
// required (object literal method/getter/setter values).
func wrapFunctionExpr(fn *ast.Fnc) ast.Expr {
	e := &ast.FunctionExpr{Fn: fn}
	e.SetPos(fn.Pos())
	return e
}
