package parser

import (
	"github.com/tinyjs-go/tinyjs/pkg/ast"
	"github.com/tinyjs-go/tinyjs/pkg/token"
)

// parseStatement dispatches on the current token to the right statement
// production, falling through to an expression statement (optionally
// label-wrapped) when nothing else matches.
func (p *Parser) parseStatement() ast.Stmt {
	switch p.cur().Type {
	case token.LBRACE:
		return p.parseBlock()
	case token.VAR, token.LET, token.CONST:
		return p.parseVarDecl()
	case token.FUNCTION:
		return p.parseFunctionDecl()
	case token.IF:
		return p.parseIf()
	case token.FOR:
		return p.parseFor()
	case token.WHILE:
		return p.parseWhile()
	case token.DO:
		return p.parseDoWhile()
	case token.RETURN:
		return p.parseReturn()
	case token.BREAK:
		return p.parseBreak()
	case token.CONTINUE:
		return p.parseContinue()
	case token.THROW:
		return p.parseThrow()
	case token.TRY:
		return p.parseTry()
	case token.SWITCH:
		return p.parseSwitch()
	case token.WITH:
		return p.parseWith()
	case token.SEMICOLON:
		pos := p.advance().Pos
		e := &ast.EmptyStmt{}
		e.SetPos(pos)
		return e
	case token.IDENT:
		if p.peekTok(1).Type == token.COLON {
			return p.parseLabeled()
		}
	}
	return p.parseExprStatement()
}

func (p *Parser) parseBlock() *ast.Block {
	return p.parseFunctionBody() // brace-delimited body with its own Forwards
}

// parseVarDecl parses `var|let|const decl (, decl)*;`, registering each
// bound name in the enclosing Forwards record (spec.md §4.2 hoisting:
// `var` bubbles to the nearest function/Program scope; `let`/`const`
// stay block-local with TDZ).
func (p *Parser) parseVarDecl() *ast.VarDecl {
	tok := p.advance()
	var kind ast.DeclKind
	switch tok.Type {
	case token.VAR:
		kind = ast.DeclVar
	case token.LET:
		kind = ast.DeclLet
	case token.CONST:
		kind = ast.DeclConst
	}

	var decls []ast.Declarator
	for {
		target := p.parseBindingTarget()
		p.registerBindingNames(target, kind)
		var init ast.Expr
		if p.is(token.ASSIGN) {
			p.advance()
			init = p.parseAssignment()
		}
		decls = append(decls, ast.Declarator{Target: target, Init: init})
		if p.is(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.consumeSemicolon()
	v := &ast.VarDecl{Kind: kind, Declarators: decls}
	v.SetPos(tok.Pos)
	return v
}

// registerBindingNames walks a binding target (identifier or pattern)
// and records every bound name into the hoisting record.
func (p *Parser) registerBindingNames(target ast.Expr, kind ast.DeclKind) {
	switch t := target.(type) {
	case *ast.Identifier:
		if kind == ast.DeclVar {
			p.addVarName(t.Name)
		} else {
			p.addLexicalName(t.Name, kind == ast.DeclConst)
		}
	case *ast.ArrayLiteral:
		for _, el := range t.Elements {
			switch e := el.(type) {
			case nil:
			case *ast.SpreadElement:
				p.registerBindingNames(e.Argument, kind)
			case *ast.AssignExpr:
				p.registerBindingNames(e.Target, kind)
			default:
				p.registerBindingNames(e, kind)
			}
		}
	case *ast.ObjectLiteral:
		for _, prop := range t.Properties {
			if a, ok := prop.Value.(*ast.AssignExpr); ok {
				p.registerBindingNames(a.Target, kind)
			} else {
				p.registerBindingNames(prop.Value, kind)
			}
		}
	}
}

func (p *Parser) parseExprStatement() ast.Stmt {
	pos := p.cur().Pos
	expr := p.parseExpression()
	p.consumeSemicolon()
	s := &ast.ExprStmt{Expr: expr}
	s.SetPos(pos)
	return s
}

func (p *Parser) parseReturn() *ast.Return {
	pos := p.advance().Pos
	r := &ast.Return{}
	r.SetPos(pos)
	if !p.is(token.SEMICOLON) && !p.is(token.RBRACE) && !p.is(token.EOF) && !p.cur().LineBreakBefore {
		r.Argument = p.parseExpression()
	}
	p.consumeSemicolon()
	return r
}

func (p *Parser) parseBreak() *ast.Break {
	pos := p.advance().Pos
	b := &ast.Break{}
	b.SetPos(pos)
	if p.is(token.IDENT) && !p.cur().LineBreakBefore {
		b.Label = p.advance().Literal
	}
	p.consumeSemicolon()
	return b
}

func (p *Parser) parseContinue() *ast.Continue {
	pos := p.advance().Pos
	c := &ast.Continue{}
	c.SetPos(pos)
	if p.is(token.IDENT) && !p.cur().LineBreakBefore {
		c.Label = p.advance().Literal
	}
	p.consumeSemicolon()
	return c
}

func (p *Parser) parseThrow() *ast.Throw {
	pos := p.advance().Pos
	t := &ast.Throw{Argument: p.parseExpression()}
	t.SetPos(pos)
	p.consumeSemicolon()
	return t
}

func (p *Parser) parseLabeled() *ast.Labeled {
	tok := p.advance() // the identifier
	p.advance()         // the colon
	body := p.parseStatement()
	l := &ast.Labeled{Label: tok.Literal, Body: body}
	l.SetPos(tok.Pos)
	return l
}
