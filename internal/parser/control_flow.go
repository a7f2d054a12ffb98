package parser

import (
	"github.com/tinyjs-go/tinyjs/pkg/ast"
	"github.com/tinyjs-go/tinyjs/pkg/token"
)

func (p *Parser) parseIf() *ast.If {
	pos := p.advance().Pos
	p.expect(token.LPAREN)
	cond := p.parseExpression()
	p.expect(token.RPAREN)
	then := p.parseStatement()
	n := &ast.If{Cond: cond, Then: then}
	n.SetPos(pos)
	if p.is(token.ELSE) {
		p.advance()
		n.Else = p.parseStatement()
	}
	return n
}

func (p *Parser) parseWhile() *ast.Loop {
	pos := p.advance().Pos
	p.expect(token.LPAREN)
	cond := p.parseExpression()
	p.expect(token.RPAREN)
	p.loopDepth++
	body := p.parseStatement()
	p.loopDepth--
	l := &ast.Loop{Kind: ast.LoopWhile, Cond: cond, Body: body}
	l.SetPos(pos)
	return l
}

func (p *Parser) parseDoWhile() *ast.Loop {
	pos := p.advance().Pos
	p.loopDepth++
	body := p.parseStatement()
	p.loopDepth--
	p.expect(token.WHILE)
	p.expect(token.LPAREN)
	cond := p.parseExpression()
	p.expect(token.RPAREN)
	p.consumeSemicolon()
	l := &ast.Loop{Kind: ast.LoopDoWhile, Cond: cond, Body: body}
	l.SetPos(pos)
	return l
}

// parseFor parses every `for (...)` shape: classic three-clause,
// for-in, and for-of, disambiguated by scanning past the binding/init
// clause for `in`/`of` (spec.md §4.2).
func (p *Parser) parseFor() *ast.Loop {
	pos := p.advance().Pos
	p.expect(token.LPAREN)

	l := &ast.Loop{}
	l.SetPos(pos)

	if p.is(token.VAR) || p.is(token.LET) || p.is(token.CONST) {
		tok := p.cur()
		var kind ast.DeclKind
		switch tok.Type {
		case token.VAR:
			kind = ast.DeclVar
		case token.LET:
			kind = ast.DeclLet
		case token.CONST:
			kind = ast.DeclConst
		}
		p.advance()
		target := p.parseBindingTarget()

		if p.is(token.IN) || p.is(token.OF) {
			l.Kind = forKindOf(p.cur().Type)
			p.advance()
			p.registerBindingNames(target, kind)
			decl := &ast.VarDecl{Kind: kind, Declarators: []ast.Declarator{{Target: target}}}
			decl.SetPos(tok.Pos)
			l.Left = decl
			l.Right = p.parseAssignment()
			p.expect(token.RPAREN)
			p.loopDepth++
			l.Body = p.parseStatement()
			p.loopDepth--
			return l
		}

		// Classic for(;;): finish the first declarator, then the rest.
		p.registerBindingNames(target, kind)
		var init ast.Expr
		if p.is(token.ASSIGN) {
			p.advance()
			init = p.parseAssignment()
		}
		decls := []ast.Declarator{{Target: target, Init: init}}
		for p.is(token.COMMA) {
			p.advance()
			t2 := p.parseBindingTarget()
			p.registerBindingNames(t2, kind)
			var i2 ast.Expr
			if p.is(token.ASSIGN) {
				p.advance()
				i2 = p.parseAssignment()
			}
			decls = append(decls, ast.Declarator{Target: t2, Init: i2})
		}
		vd := &ast.VarDecl{Kind: kind, Declarators: decls}
		vd.SetPos(tok.Pos)
		l.Init = vd
		p.expect(token.SEMICOLON)
	} else if !p.is(token.SEMICOLON) {
		expr := p.parseExpression()
		if bin, isIn := expr.(*ast.BinaryExpr); isIn && bin.Op == token.IN && p.is(token.RPAREN) {
			// `in` was taken as the relational operator: `for (x in obj)`.
			l.Kind = ast.LoopForIn
			l.Left = &ast.ExprStmt{Expr: p.toPattern(bin.Left)}
			l.Right = bin.Right
			p.advance()
			p.loopDepth++
			l.Body = p.parseStatement()
			p.loopDepth--
			return l
		}
		if p.is(token.IN) || p.is(token.OF) {
			l.Kind = forKindOf(p.cur().Type)
			p.advance()
			l.Left = &ast.ExprStmt{Expr: p.toPattern(expr)}
			l.Right = p.parseAssignment()
			p.expect(token.RPAREN)
			p.loopDepth++
			l.Body = p.parseStatement()
			p.loopDepth--
			return l
		}
		l.Init = &ast.ExprStmt{Expr: expr}
		p.expect(token.SEMICOLON)
	} else {
		p.advance() // bare `;`
	}

	l.Kind = ast.LoopFor
	if !p.is(token.SEMICOLON) {
		l.Cond = p.parseExpression()
	}
	p.expect(token.SEMICOLON)
	if !p.is(token.RPAREN) {
		l.Post = p.parseExpression()
	}
	p.expect(token.RPAREN)
	p.loopDepth++
	l.Body = p.parseStatement()
	p.loopDepth--
	return l
}

func forKindOf(t token.Type) ast.LoopKind {
	if t == token.IN {
		return ast.LoopForIn
	}
	return ast.LoopForOf
}

func (p *Parser) parseTry() *ast.Try {
	pos := p.advance().Pos
	block := p.parseFunctionBody()
	t := &ast.Try{Block: block}
	t.SetPos(pos)
	if p.is(token.CATCH) {
		p.advance()
		cc := &ast.CatchClause{}
		if p.is(token.LPAREN) {
			p.advance()
			cc.Param = p.parseBindingTarget()
			p.expect(token.RPAREN)
		}
		cc.Body = p.parseFunctionBody()
		t.Catch = cc
	}
	if p.is(token.FINALLY) {
		p.advance()
		t.Finally = p.parseFunctionBody()
	}
	if t.Catch == nil && t.Finally == nil {
		p.errorf(pos, "missing catch or finally after try")
	}
	return t
}

func (p *Parser) parseSwitch() *ast.Switch {
	pos := p.advance().Pos
	p.expect(token.LPAREN)
	disc := p.parseExpression()
	p.expect(token.RPAREN)
	p.expect(token.LBRACE)
	s := &ast.Switch{Disc: disc}
	s.SetPos(pos)
	p.switchDepth++
	for !p.is(token.RBRACE) && !p.is(token.EOF) {
		var c ast.SwitchCase
		if p.is(token.CASE) {
			p.advance()
			c.Test = p.parseExpression()
		} else {
			p.expect(token.DEFAULT)
		}
		p.expect(token.COLON)
		for !p.is(token.CASE) && !p.is(token.DEFAULT) && !p.is(token.RBRACE) && !p.is(token.EOF) {
			c.Body = append(c.Body, p.parseStatement())
		}
		s.Cases = append(s.Cases, c)
	}
	p.switchDepth--
	p.expect(token.RBRACE)
	return s
}

func (p *Parser) parseWith() *ast.With {
	pos := p.advance().Pos
	p.expect(token.LPAREN)
	obj := p.parseExpression()
	p.expect(token.RPAREN)
	body := p.parseStatement()
	w := &ast.With{Object: obj, Body: body}
	w.SetPos(pos)
	return w
}
