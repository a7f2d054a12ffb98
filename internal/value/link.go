package value

// Link binds a PropertyName to a Value plus its property-descriptor
// flags (spec.md §3.4). Owner is a weak back-reference to the value that
// physically holds this Link in its property vector; ReferencedOwner is
// only set on the synthetic Link returned by a prototype-chain lookup,
// and names the receiver a write should target instead.
type Link struct {
	Name PropertyName
	Val  *Value

	Writable     bool
	Configurable bool
	Enumerable   bool
	Immutable bool // set on frozen/const-bound links; rejects all writes

	Owner           *Value
	ReferencedOwner *Value
}

// IsAccessor reports whether this link's value is an Accessor object
// (spec.md §3.5) and therefore dispatches through getter/setter functions
// rather than storing data directly.
func (l *Link) IsAccessor() bool {
	return l.Val != nil && l.Val.Kind == KindAccessor
}

// Getter returns the accessor's getter function value, or nil.
func (l *Link) Getter() *Value {
	if !l.IsAccessor() {
		return nil
	}
	if g := l.Val.FindOwn(FromSymbol(SymAccessorGet)); g != nil {
		return g.Val
	}
	return nil
}

// Setter returns the accessor's setter function value, or nil.
func (l *Link) Setter() *Value {
	if !l.IsAccessor() {
		return nil
	}
	if s := l.Val.FindOwn(FromSymbol(SymAccessorSet)); s != nil {
		return s.Val
	}
	return nil
}

// NewAccessor builds an accessor Value carrying get/set function values
// (either may be nil, producing a write-only or read-only property).
func NewAccessor(get, set *Value) *Value {
	v := New(KindAccessor)
	if get != nil {
		v.AddOwn(&Link{Name: FromSymbol(SymAccessorGet), Val: get, Writable: true})
	}
	if set != nil {
		v.AddOwn(&Link{Name: FromSymbol(SymAccessorSet), Val: set, Writable: true})
	}
	return v
}

// DataLink builds a plain writable, configurable, enumerable data
// property — the common case for object-literal and assignment-created
// properties.
func DataLink(name PropertyName, v *Value) *Link {
	return &Link{Name: name, Val: v, Writable: true, Configurable: true, Enumerable: true}
}
