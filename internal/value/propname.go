package value

import (
	"strconv"

	"github.com/google/uuid"
)

// nameKind discriminates the three Property Name categories from
// spec.md §3.2.
type nameKind uint8

// Order matters: the iota values directly encode spec.md §3.2's ordering
// rule (Symbol < String < ArrayIndex).
const (
	nameSymbol nameKind = iota
	nameString
	nameArrayIndex
)

// maxArrayIndex is 2^32 - 2, the largest value an ArrayIndex name may
// carry (spec.md §3.2).
const maxArrayIndex = 1<<32 - 2

// PropertyName is the triple-category key used for every own property:
// a Symbol, a String, or an ArrayIndex. Ordering (Symbol < String <
// ArrayIndex) keeps a Value's property vector sorted with array indices
// last, enabling length-bounded iteration.
type PropertyName struct {
	kind  nameKind
	str   string
	index uint32
	sym   Symbol
}

// Symbol is a process-wide-unique identity, minted only by the symbol
// registry (NewSymbol / Intern), never by client code directly.
type Symbol struct {
	id   uuid.UUID
	desc string
}

// String builds the PropertyName for s: ArrayIndex-category when s is a
// canonical array-index spelling, String-category otherwise.
func String(s string) PropertyName {
	if idx, ok := parseArrayIndex(s); ok {
		return PropertyName{kind: nameArrayIndex, index: idx, str: s}
	}
	return PropertyName{kind: nameString, str: s}
}

// FromSymbol builds a Symbol-category PropertyName.
func FromSymbol(s Symbol) PropertyName { return PropertyName{kind: nameSymbol, sym: s} }

// parseArrayIndex detects whether s is a canonical array-index spelling:
// non-empty, all ASCII digits, no leading zero unless s == "0", and
// value <= maxArrayIndex (spec.md §3.2).
func parseArrayIndex(s string) (uint32, bool) {
	if s == "" {
		return 0, false
	}
	if s == "0" {
		return 0, true
	}
	if s[0] == '0' {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil || n > maxArrayIndex {
		return 0, false
	}
	return uint32(n), true
}

// IsArrayIndex reports whether n names an array index, and returns it.
func (n PropertyName) IsArrayIndex() (uint32, bool) {
	return n.index, n.kind == nameArrayIndex
}

// IsSymbol reports whether n names a symbol.
func (n PropertyName) IsSymbol() (Symbol, bool) { return n.sym, n.kind == nameSymbol }

// Text returns the visible spelling of n (empty for symbols, matching
// spec.md §3.2's "empty visible name" construction rule).
func (n PropertyName) Text() string {
	if n.kind == nameArrayIndex {
		return n.str
	}
	if n.kind == nameString {
		return n.str
	}
	return ""
}

// Compare orders a before/after/equal to b: Symbol < String < ArrayIndex,
// then lexicographically/numerically within a category.
func (n PropertyName) Compare(b PropertyName) int {
	if n.kind != b.kind {
		if n.kind < b.kind {
			return -1
		}
		return 1
	}
	switch n.kind {
	case nameSymbol:
		return compareBytes(n.sym.id[:], b.sym.id[:])
	case nameString:
		switch {
		case n.str < b.str:
			return -1
		case n.str > b.str:
			return 1
		}
		return 0
	default: // nameArrayIndex
		switch {
		case n.index < b.index:
			return -1
		case n.index > b.index:
			return 1
		}
		return 0
	}
}

func compareBytes(a, b []byte) int {
	for i := range a {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

func (n PropertyName) Equal(b PropertyName) bool { return n.Compare(b) == 0 }
