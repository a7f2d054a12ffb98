package parser

import (
	"github.com/tinyjs-go/tinyjs/pkg/ast"
	"github.com/tinyjs-go/tinyjs/pkg/token"
)

// parseBindingTarget parses a binding position: a plain identifier, or
// an array/object destructuring pattern (spec.md §4.5.2's pattern
// binding). Patterns reuse ArrayLiteral/ObjectLiteral with their
// Destructuring flag set so the evaluator's one pattern-binder handles
// both declarations and assignment targets uniformly.
func (p *Parser) parseBindingTarget() ast.Expr {
	switch p.cur().Type {
	case token.LBRACKET:
		return p.parseArrayPattern()
	case token.LBRACE:
		return p.parseObjectPattern()
	default:
		tok := p.expect(token.IDENT)
		id := &ast.Identifier{Name: tok.Literal}
		id.SetPos(tok.Pos)
		return id
	}
}

func (p *Parser) parseArrayPattern() ast.Expr {
	pos := p.expect(token.LBRACKET).Pos
	var elems []ast.Expr
	for !p.is(token.RBRACKET) && !p.is(token.EOF) {
		if p.is(token.COMMA) {
			elems = append(elems, nil)
			p.advance()
			continue
		}
		if p.is(token.ELLIPSIS) {
			spos := p.advance().Pos
			s := &ast.SpreadElement{Argument: p.parseBindingTarget()}
			s.SetPos(spos)
			elems = append(elems, s)
		} else {
			target := p.parseBindingTarget()
			if p.is(token.ASSIGN) {
				p.advance()
				def := p.parseAssignment()
				a := &ast.AssignExpr{Op: token.ASSIGN, Target: target, Value: def}
				a.SetPos(target.Pos())
				target = a
			}
			elems = append(elems, target)
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

func (p *Parser) parseObjectPattern() ast.Expr {
	pos := p.expect(token.LBRACE).Pos
	var props []ast.ObjectProperty
	for !p.is(token.RBRACE) && !p.is(token.EOF) {
		if p.is(token.ELLIPSIS) {
			p.advance()
			target := p.parseBindingTarget()
			props = append(props, ast.ObjectProperty{Spread: true, Value: target})
		} else {
			key, computed := p.parsePropertyKey()
			var target ast.Expr
			if p.is(token.COLON) {
				p.advance()
				target = p.parseBindingTarget()
			} else {
				target = key
			}
			if p.is(token.ASSIGN) {
				p.advance()
				def := p.parseAssignment()
				a := &ast.AssignExpr{Op: token.ASSIGN, Target: target, Value: def}
				a.SetPos(target.Pos())
				target = a
			}
			props = append(props, ast.ObjectProperty{Key: key, Computed: computed, Value: target, Kind: "init"})
		}
		if p.is(token.COMMA) {
			p.advance()
		} else {
			break
		}
	}
	p.expect(token.RBRACE)
	o := &ast.ObjectLiteral{Properties: props, Destructuring: true}
	o.SetPos(pos)
	return o
}

// toPattern re-threads an expression already parsed as a value (array
// literal, object literal, identifier, or member expression) into an
// assignment target. It is used on the left side of plain `=` once the
// parser sees the `=` and must reinterpret `[a, b] = ...` / `{a} = ...`
// as destructuring rather than an array/object value.
func (p *Parser) toPattern(expr ast.Expr) ast.Expr {
	switch e := expr.(type) {
	case *ast.ArrayLiteral:
		return e
	case *ast.ObjectLiteral:
		e.Destructuring = true
		return e
	default:
		return expr // Identifier, MemberExpr: already a valid simple target
	}
}
