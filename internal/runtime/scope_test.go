package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinyjs-go/tinyjs/internal/value"
)

func numberVal(n int32) *value.Value {
	return &value.Value{Kind: value.KindNumber, Num: value.Int32(n)}
}

func TestLookupWalksLetScopeChain(t *testing.T) {
	outer := NewFunctionScope(nil, value.Undefined, value.Undefined)
	x := numberVal(1)
	outer.Declare("x", x, true)
	inner := NewLetScope(outer)

	link, found, ok := Lookup(inner, "x")
	require.True(t, ok, "expected to find x declared in an enclosing scope")
	assert.Same(t, outer, found, "Lookup should report the scope that actually owns the binding")
	assert.Same(t, x, link.Val, "Lookup should return the same Value that was declared")
}

func TestLookupMissingReturnsFalse(t *testing.T) {
	s := NewFunctionScope(nil, value.Undefined, value.Undefined)
	_, _, ok := Lookup(s, "nope")
	assert.False(t, ok, "Lookup for an undeclared name should report false")
}

func TestFunctionScopeChainsThroughClosureNotParent(t *testing.T) {
	defScope := NewFunctionScope(nil, value.Undefined, value.Undefined)
	defScope.Declare("captured", numberVal(7), true)

	callScope := NewFunctionScope(defScope, value.Undefined, value.Undefined)

	_, _, ok := Lookup(callScope, "captured")
	assert.True(t, ok, "a function scope should find names in its Closure, not just a direct Parent")
}

func TestWithScopeTriesTargetFirst(t *testing.T) {
	target := value.New(value.KindObject)
	onTarget := numberVal(99)
	target.AddOwn(value.DataLink(value.String("x"), onTarget))

	outer := NewFunctionScope(nil, value.Undefined, value.Undefined)
	outer.Declare("x", numberVal(1), true)
	withScope := NewWithScope(outer, target)

	link, _, ok := Lookup(withScope, "x")
	require.True(t, ok)
	assert.Same(t, onTarget, link.Val, "a with-scope should resolve a name on its target before falling through to Parent")
}

func TestCloneCopiesBindingsIndependently(t *testing.T) {
	s := NewLetScope(nil)
	s.Declare("i", numberVal(0), true)

	clone := s.Clone()
	cloneLink, _, ok := Lookup(clone, "i")
	require.True(t, ok, "clone should carry over the original's bindings")
	cloneLink.Val = numberVal(1)

	origLink, _, _ := Lookup(s, "i")
	assert.NotSame(t, cloneLink.Val, origLink.Val, "mutating the clone's binding should not affect the original scope's binding")
}

func TestThisValueResolvesThroughClosureForArrowFunctions(t *testing.T) {
	this := value.New(value.KindObject)
	outer := NewFunctionScope(nil, this, value.Undefined)
	// An arrow function's scope has This == nil and defers to its closure.
	arrow := &Scope{Kind: FunctionScope, Binding: value.New(value.KindScope), Closure: outer}

	assert.Same(t, this, ThisValue(arrow), "ThisValue should defer to the closure scope when This is nil")
}

func TestThisValueDefaultsToUndefined(t *testing.T) {
	s := NewFunctionScope(nil, nil, value.Undefined)
	assert.Same(t, value.Undefined, ThisValue(s), "ThisValue with no enclosing This should default to Undefined")
}

func TestNewTargetValueResolvesThroughClosureForArrowFunctions(t *testing.T) {
	ctor := value.New(value.KindFunction)
	outer := NewFunctionScope(nil, value.Undefined, ctor)
	arrow := &Scope{Kind: FunctionScope, Binding: value.New(value.KindScope), Closure: outer}

	assert.Same(t, ctor, NewTargetValue(arrow), "NewTargetValue should defer to the closure scope when NewTarget is nil")
}

func TestNewTargetValueDefaultsToUndefined(t *testing.T) {
	s := NewFunctionScope(nil, value.Undefined, value.Undefined)
	assert.Same(t, value.Undefined, NewTargetValue(s), "a plain call's new.target should read as undefined")
}
