package runtime

import "github.com/tinyjs-go/tinyjs/internal/value"

// ScopeKind discriminates the three scope flavors of spec.md §4.4.
type ScopeKind uint8

const (
	FunctionScope ScopeKind = iota
	LetScope
	WithScope
)

// Scope is a variable environment. Per the glossary, a Scope "is a value
// acting as a variable environment" — bindings live in an ordinary
// *value.Value property table (Binding) so Link's writable/configurable
// flags give `let`/`const`/TDZ semantics for free. Parent implements the
// `symbol.scope_parent` chain.
type Scope struct {
	Kind    ScopeKind
	Parent  *Scope
	Binding *value.Value

	// Function-scope-only fields (spec.md §4.4).
	This      *value.Value
	NewTarget *value.Value
	Closure   *Scope // the scope captured at function-creation time

	// With-scope-only field: the host object property lookup delegates to.
	WithTarget *value.Value
}

// NewFunctionScope creates a fresh function-invocation scope whose
// closure link is the scope captured when the function was defined.
func NewFunctionScope(closure *Scope, this, newTarget *value.Value) *Scope {
	return &Scope{
		Kind: FunctionScope, Binding: value.New(value.KindScope),
		This: this, NewTarget: newTarget, Closure: closure,
	}
}

// NewLetScope creates a block-level scope chained to parent.
func NewLetScope(parent *Scope) *Scope {
	return &Scope{Kind: LetScope, Parent: parent, Binding: value.New(value.KindScope)}
}

// NewWithScope creates a `with (obj) { ... }` scope delegating lookups to
// target before falling through to parent.
func NewWithScope(parent *Scope, target *value.Value) *Scope {
	return &Scope{Kind: WithScope, Parent: parent, Binding: value.New(value.KindScope), WithTarget: target}
}

// Clone produces a fresh Let scope with the same bindings as s, copying
// each own Link's current value. Used for `for (let i = ...; ...)` so
// each loop iteration closes over its own `i` (spec.md §4.4, §8's
// per-iteration-let invariant).
func (s *Scope) Clone() *Scope {
	clone := &Scope{Kind: s.Kind, Parent: s.Parent, Binding: value.New(value.KindScope)}
	for _, l := range s.Binding.OwnProperties() {
		cp := *l
		cp.Owner = clone.Binding
		clone.Binding.AddOwn(&cp)
	}
	return clone
}

// parentOf returns the next scope to search: With/Let scopes chain via
// Parent; a Function scope's chain continues into its Closure.
func (s *Scope) parentOf() *Scope {
	if s.Kind == FunctionScope {
		return s.Closure
	}
	return s.Parent
}

// Declare binds name in this scope's own table. Re-declaration is the
// caller's responsibility to reject (the tokenizer does this for
// let/const at parse time, per spec.md §4.2).
func (s *Scope) Declare(name string, v *value.Value, writable bool) {
	s.Binding.AddOwn(&value.Link{
		Name: value.String(name), Val: v, Writable: writable,
		Configurable: false, Enumerable: true,
	})
}

// Lookup finds name in this scope or an enclosing one, implementing
// spec.md §4.4's find_in_scopes: With scopes try their target object
// first, then fall through; Let scopes walk Parent; Function scopes
// continue into Closure.
func Lookup(s *Scope, name string) (*value.Link, *Scope, bool) {
	for cur := s; cur != nil; cur = cur.parentOf() {
		if cur.Kind == WithScope && cur.WithTarget != nil {
			if l := cur.WithTarget.FindWithPrototypeChain(value.String(name), 0, 0); l != nil {
				return l, cur, true
			}
		}
		if l := cur.Binding.FindOwn(value.String(name)); l != nil {
			return l, cur, true
		}
	}
	return nil, nil, false
}

// NewTargetValue resolves `new.target` for s: arrow-function scopes never
// set their own NewTarget, so lookup defers into the enclosing function
// scope the same way ThisValue does (spec.md §4.5.1 step 4, §8's
// new.target testable property).
func NewTargetValue(s *Scope) *value.Value {
	for cur := s; cur != nil; cur = cur.parentOf() {
		if cur.Kind == FunctionScope && cur.NewTarget != nil {
			return cur.NewTarget
		}
	}
	return value.Undefined
}

// ThisValue resolves the lexical `this` for s, walking into enclosing
// function scopes (arrow functions don't create a new `this` binding, so
// their scope has This == nil and defers to Closure).
func ThisValue(s *Scope) *value.Value {
	for cur := s; cur != nil; cur = cur.parentOf() {
		if cur.Kind == WithScope && cur.WithTarget != nil {
			return cur.WithTarget
		}
		if cur.Kind == FunctionScope && cur.This != nil {
			return cur.This
		}
	}
	return value.Undefined
}
