package parser

import (
	"github.com/tinyjs-go/tinyjs/pkg/ast"
	"github.com/tinyjs-go/tinyjs/pkg/token"
)

// tryParseArrow speculatively parses an arrow function head. Arrow
// functions and parenthesized expressions share a `(` prefix, so this
// uses the lexer's Mark/Guard savepoint to attempt the arrow parse and
// cleanly back out if it turns out to be a plain expression (spec.md
// §4.2's documented arrow-vs-parenthesized-expression ambiguity).
// Returns nil (with the lexer rewound) when the input is not an arrow.
func (p *Parser) tryParseArrow() ast.Expr {
	tok := p.cur()

	if tok.Type == token.IDENT && p.peekTok(1).Type == token.ARROW {
		id := &ast.Identifier{Name: tok.Literal}
		id.SetPos(tok.Pos)
		p.advance() // ident
		p.advance() // =>
		return p.finishArrow(tok.Pos, []ast.Param{{Target: id}})
	}

	if tok.Type != token.LPAREN {
		return nil
	}

	guard := p.l.Mark()
	savedErrs := len(p.errs)
	params, ok := p.tryParseParenParamList()
	if !ok || !p.is(token.ARROW) {
		guard.Restore()
		p.errs = p.errs[:savedErrs]
		return nil
	}
	guard.Discard()
	p.advance() // =>
	return p.finishArrow(tok.Pos, params)
}

// tryParseParenParamList attempts to parse `(p1, p2, ...)` as an arrow
// parameter list, reporting ok=false on any construct that isn't valid
// there (the caller then treats the parens as a normal expression).
func (p *Parser) tryParseParenParamList() ([]ast.Param, bool) {
	p.advance() // (
	var params []ast.Param
	for !p.is(token.RPAREN) {
		if p.is(token.EOF) {
			return nil, false
		}
		param, ok := p.tryParseParam()
		if !ok {
			return nil, false
		}
		params = append(params, param)
		if p.is(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	if !p.is(token.RPAREN) {
		return nil, false
	}
	p.advance()
	return params, true
}

func (p *Parser) tryParseParam() (ast.Param, bool) {
	rest := false
	if p.is(token.ELLIPSIS) {
		p.advance()
		rest = true
	}
	switch p.cur().Type {
	case token.IDENT, token.LBRACKET, token.LBRACE:
		target := p.parseBindingTarget()
		var def ast.Expr
		if !rest && p.is(token.ASSIGN) {
			p.advance()
			def = p.parseAssignment()
		}
		return ast.Param{Target: target, Default: def, Rest: rest}, true
	default:
		return ast.Param{}, false
	}
}

func (p *Parser) finishArrow(pos token.Position, params []ast.Param) ast.Expr {
	fn := &ast.Fnc{Params: params, Arrow: true}
	fn.SetPos(pos)
	if p.is(token.LBRACE) {
		fn.Body = p.parseFunctionBody()
	} else {
		fn.ExprBody = p.parseAssignment()
	}
	e := &ast.FunctionExpr{Fn: fn}
	e.SetPos(pos)
	return e
}

// parseFunctionExpr parses a `function [*][name](params) { body }`
// expression.
func (p *Parser) parseFunctionExpr() ast.Expr {
	fn := p.parseFunctionCommon()
	return wrapFunctionExpr(fn)
}

// parseFunctionDecl parses a `function` statement, registering it in
// the enclosing scope's Forwards.Functions so sibling functions can
// reference it regardless of source order (spec.md §4.2 hoisting).
func (p *Parser) parseFunctionDecl() *ast.Fnc {
	fn := p.parseFunctionCommon()
	p.addFunctionDecl(fn)
	return fn
}

func (p *Parser) parseFunctionCommon() *ast.Fnc {
	pos := p.expect(token.FUNCTION).Pos
	generator := false
	if p.is(token.STAR) {
		p.advance()
		generator = true
	}
	name := ""
	if p.is(token.IDENT) {
		name = p.advance().Literal
	}
	fn := p.parseFunctionTail(generator)
	fn.Name = name
	fn.SetPos(pos)
	return fn
}

// parseFunctionTail parses `(params) { body }` for a function
// declaration, expression, method, getter, or setter — generator
// controls whether `yield` is a keyword inside Body.
func (p *Parser) parseFunctionTail(generator bool) *ast.Fnc {
	pos := p.cur().Pos
	params := p.parseParamList()
	fn := &ast.Fnc{Params: params, Generator: generator}
	fn.SetPos(pos)
	p.l.PushGeneratorContext(generator)
	fn.Body = p.parseFunctionBody()
	p.l.PopGeneratorContext()
	return fn
}

func (p *Parser) parseParamList() []ast.Param {
	p.expect(token.LPAREN)
	var params []ast.Param
	for !p.is(token.RPAREN) && !p.is(token.EOF) {
		rest := false
		if p.is(token.ELLIPSIS) {
			p.advance()
			rest = true
		}
		target := p.parseBindingTarget()
		var def ast.Expr
		if !rest && p.is(token.ASSIGN) {
			p.advance()
			def = p.parseAssignment()
		}
		params = append(params, ast.Param{Target: target, Default: def, Rest: rest})
		if p.is(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RPAREN)
	return params
}

// parseFunctionBody parses a function's brace-delimited body as its own
// hoisting scope.
func (p *Parser) parseFunctionBody() *ast.Block {
	pos := p.expect(token.LBRACE).Pos
	forwards := p.pushForwards()
	var body []ast.Stmt
	for !p.is(token.RBRACE) && !p.is(token.EOF) {
		body = append(body, p.parseStatement())
	}
	p.expect(token.RBRACE)
	p.popForwards()
	b := &ast.Block{Body: body, Forwards: forwards}
	b.SetPos(pos)
	return b
}
