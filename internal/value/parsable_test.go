package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsablePrimitives(t *testing.T) {
	assert.Equal(t, "undefined", Undefined.Parsable())
	assert.Equal(t, "null", Null.Parsable())

	b := New(KindBoolean)
	b.Bool = true
	assert.Equal(t, "true", b.Parsable())

	n := New(KindNumber)
	n.Num = Int32(42)
	assert.Equal(t, "42", n.Parsable())

	s := New(KindString)
	s.Str = "a\"b\\c\n"
	assert.Equal(t, `"a\"b\\c\n"`, s.Parsable())
}

func TestParsableObjectRoundTripsOwnEnumerableProperties(t *testing.T) {
	obj := New(KindObject)
	obj.AddOwn(DataLink(String("x"), func() *Value { v := New(KindNumber); v.Num = Int32(1); return v }()))
	obj.AddOwn(&Link{Name: String("hidden"), Val: Undefined, Enumerable: false})

	got := obj.Parsable()
	assert.Equal(t, `{"x":1}`, got)
}

func TestParsableArrayTreatsMissingIndexAsElision(t *testing.T) {
	arr := New(KindArray)
	zero := New(KindNumber)
	zero.Num = Int32(1)
	two := New(KindNumber)
	two.Num = Int32(3)
	arr.AddOwn(&Link{Name: String("0"), Val: zero, Writable: true, Enumerable: true, Configurable: true})
	arr.AddOwn(&Link{Name: String("2"), Val: two, Writable: true, Enumerable: true, Configurable: true})

	assert.Equal(t, "[1,,3]", arr.Parsable())
}

func TestParsableObjectGuardsAgainstCycles(t *testing.T) {
	obj := New(KindObject)
	obj.AddOwn(&Link{Name: String("self"), Val: obj, Writable: true, Enumerable: true, Configurable: true})

	assert.Equal(t, `{"self":null}`, obj.Parsable())
}
