package runtime

import "github.com/tinyjs-go/tinyjs/internal/value"

// temporaryMarkSlots mirrors spec.md §4.7's TEMPORARY_MARK_SLOTS: up to
// this many mark-sweep traversals may overlap (e.g. a GC pass triggered
// while a toString recursion is already walking the graph).
const temporaryMarkSlots = 5

// Heap tracks every live Value allocated by one engine, so a mark-sweep
// pass can walk all of them without a separate allocation table.
// Grounded on the teacher's pool.go/refcount.go "bulk-owned list +
// generation counter" idea for bulk teardown; Go's own GC reclaims the
// memory; this Heap's Sweep exists only to break reference cycles between
// Values by dropping their property table and prototype pointer once
// unreachable from any root (spec.md §4.7).
type Heap struct {
	live []*value.Value

	nextMarkID uint64
	slotsInUse [temporaryMarkSlots]bool
}

// NewHeap creates an empty heap.
func NewHeap() *Heap { return &Heap{} }

// Track registers v on the heap's live list. Every value.New call the
// evaluator makes is immediately followed by heap.Track(v).
func (h *Heap) Track(v *value.Value) {
	h.live = append(h.live, v)
}

// MarkSlot allocates one of the five overlapping mark slots for a new
// logical traversal. Returns -1 if all are in use.
func (h *Heap) MarkSlot() int {
	for i := range h.slotsInUse {
		if !h.slotsInUse[i] {
			h.slotsInUse[i] = true
			return i
		}
	}
	return -1
}

// NewMark allocates a slot exactly like MarkSlot, plus a traversal id
// unique across every mark-sweep and prototype-chain walk this heap has
// ever run. A slot is reused across calls once released, but a Value's
// marks[slot] byte from a previous, unrelated walk survives until
// something overwrites it — reusing a constant id would make that stale
// stamp look like "already visited in this walk" and trip the cycle
// guard on a value that was never part of the current chain. A fresh id
// per call keeps every traversal's stamps distinguishable.
func (h *Heap) NewMark() (slot int, id uint64) {
	slot = h.MarkSlot()
	h.nextMarkID++
	return slot, h.nextMarkID
}

// ReleaseSlot frees a slot obtained from MarkSlot.
func (h *Heap) ReleaseSlot(slot int) {
	if slot >= 0 && slot < len(h.slotsInUse) {
		h.slotsInUse[slot] = false
	}
}

// Sweep performs one mark-sweep collection: it marks everything reachable
// from roots (walking prototypes and own-property values), then clears
// the property table and prototype pointer of every live-list value that
// was not reached, breaking any reference cycles. Returns the number of
// values swept. Also compacts the live list to only the values that
// survived, so repeated Sweep calls don't re-walk collected garbage.
func (h *Heap) Sweep(roots []*value.Value) int {
	slot := h.MarkSlot()
	if slot < 0 {
		return 0 // all five traversals busy; caller may retry later
	}
	defer h.ReleaseSlot(slot)
	h.nextMarkID++
	id := h.nextMarkID

	for _, r := range roots {
		markReachable(r, slot, id)
	}

	survivors := h.live[:0]
	swept := 0
	for _, v := range h.live {
		if v.Marked(slot, id) {
			survivors = append(survivors, v)
			continue
		}
		v.Reset()
		swept++
	}
	h.live = survivors
	return swept
}

func markReachable(v *value.Value, slot int, id uint64) {
	if v == nil {
		return
	}
	if !v.Mark(slot, id) {
		return
	}
	markReachable(v.Proto, slot, id)
	for _, l := range v.OwnProperties() {
		markReachable(l.Val, slot, id)
	}
}
