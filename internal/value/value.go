package value

import (
	"sort"
)

// Kind discriminates the runtime type of a Value (spec.md §3.3).
type Kind uint8

const (
	KindUndefined Kind = iota
	KindUninitialized
	KindNull
	KindBoolean
	KindNumber
	KindString
	KindSymbol
	KindObject
	KindArray
	KindError
	KindRegex
	KindDate
	KindFunction
	KindBoundFunction
	KindNativeFunction
	KindAccessor
	KindScope
	KindIterator
	KindGenerator
)

const temporaryMarkSlots = 5

// Value is the single reference-typed heap object backing every
// non-primitive and — for engine-internal bookkeeping — every primitive
// too (spec.md §3.3). The evaluator carries primitives that scripts see
// as immediate values (numbers, booleans, strings) as *Value as well.
// See internal/runtime for how Values are tracked on the engine's
// live-object list for GC.
type Value struct {
	Kind Kind

	Bool   bool
	Num    Number
	Str    string
	Sym    Symbol
	Native any // Go-side payload: *FuncData, *Generator, *regexp2.Regexp, time.Time, ...

	Proto *Value
	props []*Link // kept sorted by PropertyName.Compare

	Extensible bool

	// GC bookkeeping: marks[i] holds the mark-slot id written during the
	// i-th concurrently active mark-sweep traversal (spec.md §4.7).
	marks [temporaryMarkSlots]uint64

	// prev/next are not used: internal/runtime.Heap tracks live values in
	// its own slice.
	prev, next *Value
}

// New allocates a fresh Value of the given kind with no properties and no
// prototype. Callers set Proto explicitly (spec.md requires every
// non-root value to chain to a prototype it was constructed with).
func New(k Kind) *Value {
	return &Value{Kind: k, Extensible: true}
}

// Undefined, Null, and Uninitialized are process-wide singletons; they
// carry no mutable state so sharing them across engines is safe.
var (
	Undefined    = &Value{Kind: KindUndefined}
	Null         = &Value{Kind: KindNull}
	Uninitialize = &Value{Kind: KindUninitialized}
)

// Mark stamps v (and, by the caller's recursive walk, its reachable
// graph) with the given traversal id in the given mark slot. Returns
// false if v was already stamped with id in this slot — the caller
// should stop recursing (breaks prototype/property cycles without an
// extra visited-set allocation, per spec.md §3.3's acyclic-for-lookup
// invariant).
func (v *Value) Mark(slot int, id uint64) (fresh bool) {
	if v.marks[slot] == id {
		return false
	}
	v.marks[slot] = id
	return true
}

// Marked reports whether v was already stamped with id in slot, without
// stamping it itself.
func (v *Value) Marked(slot int, id uint64) bool {
	return v.marks[slot] == id
}

// Reset clears v's property table and prototype pointer, breaking any
// reference cycle v participates in. Used by the mark-sweep collector
// (spec.md §4.7) once v is confirmed unreachable from any root.
func (v *Value) Reset() {
	v.props = nil
	v.Proto = nil
	v.Native = nil
}

// FindOwn binary-searches the sorted property vector for name, returning
// nil if there is no own property by that name.
func (v *Value) FindOwn(name PropertyName) *Link {
	i := sort.Search(len(v.props), func(i int) bool {
		return v.props[i].Name.Compare(name) >= 0
	})
	if i < len(v.props) && v.props[i].Name.Equal(name) {
		return v.props[i]
	}
	return nil
}

// FindWithPrototypeChain implements spec.md §4.3's
// find_child_with_prototype_chain: binary search the own vector, then
// walk Proto stamping slot/id to guard against cyclic lookups. When the
// name is found on a prototype, the returned Link's ReferencedOwner is
// set to receiver so a subsequent write creates an own property there
// instead of mutating the prototype.
func (v *Value) FindWithPrototypeChain(name PropertyName, slot int, markID uint64) *Link {
	receiver := v
	cur := v
	for cur != nil {
		if !cur.Mark(slot, markID) {
			return nil // cycle guard tripped
		}
		if l := cur.FindOwn(name); l != nil {
			if cur == receiver {
				return l
			}
			inherited := *l
			inherited.ReferencedOwner = receiver
			inherited.Owner = cur
			return &inherited
		}
		cur = cur.Proto
	}
	return nil
}

// AddOwn inserts a new own Link for name, keeping props sorted. It is the
// caller's responsibility to ensure name doesn't already exist (use
// FindOwn first); this models spec.md §3.4's addChild.
func (v *Value) AddOwn(l *Link) {
	l.Owner = v
	i := sort.Search(len(v.props), func(i int) bool {
		return v.props[i].Name.Compare(l.Name) >= 0
	})
	v.props = append(v.props, nil)
	copy(v.props[i+1:], v.props[i:])
	v.props[i] = l
	if idx, ok := l.Name.IsArrayIndex(); ok && v.Kind == KindArray {
		v.growLengthTo(idx + 1)
	}
}

// RemoveOwn deletes the own property named name, if present, returning
// whether it existed (spec.md §3.4's removeChild/deleteProperty).
func (v *Value) RemoveOwn(name PropertyName) bool {
	i := sort.Search(len(v.props), func(i int) bool {
		return v.props[i].Name.Compare(name) >= 0
	})
	if i >= len(v.props) || !v.props[i].Name.Equal(name) {
		return false
	}
	v.props = append(v.props[:i], v.props[i+1:]...)
	return true
}

// OwnProperties returns the live, sorted own-property slice. Callers must
// not mutate it directly; use AddOwn/RemoveOwn.
func (v *Value) OwnProperties() []*Link { return v.props }

func (v *Value) growLengthTo(n uint32) {
	lenLink := v.FindOwn(String("length"))
	if lenLink == nil {
		v.AddOwn(&Link{Name: String("length"), Val: New(KindNumber), Writable: true})
		lenLink = v.FindOwn(String("length"))
	}
	if lenLink.Val.Num.Float64() < float64(n) {
		lenLink.Val = &Value{Kind: KindNumber, Num: Int32(int32(n))}
	}
}

// TruncateArrayIndicesAbove drops every own ArrayIndex property >= n,
// stopping at the first non-configurable one (spec.md §4.3's
// length-assignment truncation rule, and §8's invariant that length
// never outruns max(array-index own key)+1 for a writable array). The
// caller is responsible for storing the new length value afterward.
func (v *Value) TruncateArrayIndicesAbove(n uint32) {
	i := sort.Search(len(v.props), func(i int) bool {
		idx, isIdx := v.props[i].Name.IsArrayIndex()
		if !isIdx {
			return false
		}
		return idx >= n
	})
	for i < len(v.props) {
		idx, isIdx := v.props[i].Name.IsArrayIndex()
		if !isIdx {
			i++
			continue
		}
		if !v.props[i].Configurable {
			break
		}
		v.props = append(v.props[:i], v.props[i+1:]...)
	}
}

// Length returns the current `length` value for an array-kind Value
// (spec.md §3.3: "length equals max(existing-index)+1 at observation
// time").
func (v *Value) Length() uint32 {
	l := v.FindOwn(String("length"))
	if l == nil {
		return 0
	}
	return uint32(l.Val.Num.ToUInt32())
}
