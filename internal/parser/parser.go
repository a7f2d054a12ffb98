// Package parser turns a lexer.Lexer's token stream into a pkg/ast token
// tree in a single pass (spec.md §4.2): structural parsing, hoisting,
// and destructuring-ambiguity resolution all happen here so the
// evaluator never has to look ahead.
package parser

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/tinyjs-go/tinyjs/internal/lexer"
	"github.com/tinyjs-go/tinyjs/pkg/ast"
	"github.com/tinyjs-go/tinyjs/pkg/token"
)

// Error is a structural parse error with its source position, adapted
// from the teacher's structured_error.go shape.
type Error struct {
	Message string
	Pos     token.Position
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (%s)", e.Message, e.Pos.String())
}

// Parser holds one lexer and the accumulated parse errors for one
// source file or script string.
type Parser struct {
	l    *lexer.Lexer
	errs []*Error

	// hoist is a stack of in-progress Forwards records, one per
	// function/Program scope currently being parsed; declarations
	// found anywhere inside are folded into hoist[len(hoist)-1] (vars
	// and functions bubble further, to the nearest function scope).
	hoist []*ast.Forwards

	// loopDepth/switchDepth gate break/continue validity.
	loopDepth   int
	switchDepth int
}

// New creates a Parser over src.
func New(src string) *Parser {
	return &Parser{l: lexer.New(src)}
}

// Errors returns every structural error accumulated during Parse.
func (p *Parser) Errors() []*Error { return p.errs }

func (p *Parser) errorf(pos token.Position, format string, args ...any) {
	p.errs = append(p.errs, &Error{Message: fmt.Sprintf(format, args...), Pos: pos})
}

func (p *Parser) cur() token.Token       { return p.l.Peek(0) }
func (p *Parser) peekTok(n int) token.Token { return p.l.Peek(n) }

func (p *Parser) is(t token.Type) bool { return p.cur().Type == t }

func (p *Parser) advance() token.Token { return p.l.NextToken() }

// expect consumes the current token if it matches t, otherwise records
// an error and returns the unconsumed token so parsing can continue.
func (p *Parser) expect(t token.Type) token.Token {
	cur := p.cur()
	if cur.Type != t {
		p.errorf(cur.Pos, "expected %s, got %s", t, cur.Type)
		return cur
	}
	return p.advance()
}

// consumeSemicolon implements automatic semicolon insertion: an explicit
// `;` is always accepted; otherwise ASI fires at EOF, before `}`, or
// when the next token begins on a new source line.
func (p *Parser) consumeSemicolon() {
	if p.is(token.SEMICOLON) {
		p.advance()
		return
	}
	if p.is(token.RBRACE) || p.is(token.EOF) || p.cur().LineBreakBefore {
		return
	}
	p.errorf(p.cur().Pos, "expected ; got %s", p.cur().Type)
}

func (p *Parser) pushForwards() *ast.Forwards {
	f := &ast.Forwards{}
	p.hoist = append(p.hoist, f)
	return f
}

// popForwards pops the innermost Forwards record, deduplicating its var
// names: `var x; var x;` hoists a single binding, same as nested blocks
// that each push `x` onto the enclosing function's Forwards.Vars (spec.md
// §4.2).
func (p *Parser) popForwards() *ast.Forwards {
	f := p.hoist[len(p.hoist)-1]
	p.hoist = p.hoist[:len(p.hoist)-1]
	f.Vars = lo.Uniq(f.Vars)
	return f
}

// nearestFunctionForwards returns the Forwards record var and function
// declarations hoist to (spec.md §4.2: var/function hoist through
// nested blocks to the enclosing function or Program scope).
func (p *Parser) nearestFunctionForwards() *ast.Forwards {
	return p.hoist[len(p.hoist)-1]
}

func (p *Parser) addVarName(name string) {
	p.nearestFunctionForwards().Vars = append(p.nearestFunctionForwards().Vars, name)
}

func (p *Parser) addLexicalName(name string, constant bool) {
	f := p.nearestFunctionForwards()
	f.Lexical = append(f.Lexical, ast.LexicalName{Name: name, Constant: constant})
}

func (p *Parser) addFunctionDecl(fn *ast.Fnc) {
	f := p.nearestFunctionForwards()
	f.Functions = append(f.Functions, fn)
}

// Parse parses the whole source as a Program.
func (p *Parser) Parse() *ast.Program {
	pos := p.cur().Pos
	forwards := p.pushForwards()
	var body []ast.Stmt
	for !p.is(token.EOF) {
		body = append(body, p.parseStatement())
	}
	p.popForwards()
	prog := &ast.Program{Forwards: forwards, Body: body}
	prog.SetPos(pos)
	return prog
}
