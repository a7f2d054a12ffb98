package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringDetectsArrayIndex(t *testing.T) {
	tests := []struct {
		in      string
		isIndex bool
	}{
		{"0", true},
		{"42", true},
		{"", false},
		{"01", false}, // leading zero disqualifies
		{"-1", false},
		{"4294967294", true},  // maxArrayIndex
		{"4294967295", false}, // one past maxArrayIndex
		{"abc", false},
	}
	for _, tt := range tests {
		name := String(tt.in)
		_, ok := name.IsArrayIndex()
		assert.Equal(t, tt.isIndex, ok, "String(%q).IsArrayIndex()", tt.in)
	}
}

func TestPropertyNameOrdering(t *testing.T) {
	sym := FromSymbol(NewSymbol("s"))
	str := String("key")
	idx := String("3")

	assert.Negative(t, sym.Compare(str), "a Symbol name should order before a String name")
	assert.Negative(t, str.Compare(idx), "a String name should order before an ArrayIndex name")
	assert.Positive(t, idx.Compare(sym), "an ArrayIndex name should order after a Symbol name")
}

func TestPropertyNameEqual(t *testing.T) {
	a, b := String("x"), String("x")
	assert.True(t, a.Equal(b), "two String names with the same text should be equal")
	assert.False(t, String("x").Equal(String("y")), "different String names should not be equal")
}

func TestSymbolIdentityIsUnique(t *testing.T) {
	a := NewSymbol("x")
	b := NewSymbol("x")
	assert.False(t, a.Equal(b), "NewSymbol should mint distinct identities even for equal descriptions")
	assert.Equal(t, "x", a.Description())
	assert.Equal(t, "x", b.Description())
}

func TestInternReturnsSameSymbol(t *testing.T) {
	a := Intern("example.tag")
	b := Intern("example.tag")
	assert.True(t, a.Equal(b), "Intern should return the same Symbol for the same key")
}

func TestWellKnownSymbolsAreStable(t *testing.T) {
	assert.True(t, SymIterator.Equal(Intern("Symbol.iterator")), "SymIterator should be interned under \"Symbol.iterator\"")
}
