// Package parser implements 42TinyJS's structural parser.
//
// The parser consumes tokens from the lexer and builds the token-tree
// (pkg/ast) describing a program's structure. It is a Pratt parser (top-down
// operator precedence) for expressions and recursive descent for statements,
// matching a pragmatic subset of JavaScript: variable declarations,
// expressions, control flow, functions (including arrows and generators),
// destructuring, and template/tagged-template literals.
//
// Example usage:
//
//	p := parser.New(input)
//	program := p.Parse()
//	errs := p.Errors()
package parser
