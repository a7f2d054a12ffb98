package ast

// Forwards is the hoisting record the tokenizer builds for every function
// body and the top-level Program (spec.md §4.2's hoisting pass): the
// names a scope must pre-declare before executing its first statement,
// so a `var`, `function`, `let`, or `const` can be referenced textually
// above its declaration (with TDZ enforced for the latter two at
// evaluation time, not at hoist time).
type Forwards struct {
	// Vars holds every `var`-declared name in this scope and all nested
	// non-function blocks (var hoists through blocks to the function or
	// Program scope that owns it).
	Vars []string

	// Functions holds top-level-of-scope `function` declarations, in
	// source order; the evaluator binds each to its closure before
	// running any statement, so sibling functions may reference one
	// another regardless of declaration order.
	Functions []*Fnc

	// Lexical holds `let`/`const` names declared directly in this block
	// (not hoisted through nested blocks). Each is pre-declared as
	// KindUninitialized so a reference before the `let`/`const`
	// statement executes raises a ReferenceError (TDZ).
	Lexical []LexicalName
}

// LexicalName pairs a let/const binding name with whether it is mutable.
type LexicalName struct {
	Name     string
	Constant bool
}
