package tab

import "fmt"

// Registry maps dense notebook slots to sessions. Slot i always holds the
// session shown on notebook page i.
type Registry struct {
	slots []*Session
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{}
}

// Len returns the number of sessions
func (r *Registry) Len() int {
	return len(r.slots)
}

// At returns the session at slot
func (r *Registry) At(slot int) (*Session, bool) {
	if slot < 0 || slot >= len(r.slots) {
		return nil, false
	}
	return r.slots[slot], true
}

// SlotOf returns the slot holding the session with id
func (r *Registry) SlotOf(id SessionID) (int, bool) {
	for i, s := range r.slots {
		if s.ID() == id {
			return i, true
		}
	}
	return -1, false
}

// Insert places s at slot, shifting slots >= slot up by one. slot may equal Len.
func (r *Registry) Insert(slot int, s *Session) error {
	if slot < 0 || slot > len(r.slots) {
		return fmt.Errorf("insert at %d of %d: %w", slot, len(r.slots), ErrSlotRange)
	}
	r.slots = append(r.slots, nil)
	copy(r.slots[slot+1:], r.slots[slot:])
	r.slots[slot] = s
	return nil
}

// Remove drops the session at slot, shifting slots > slot down by one
func (r *Registry) Remove(slot int) (*Session, error) {
	if slot < 0 || slot >= len(r.slots) {
		return nil, fmt.Errorf("remove at %d of %d: %w", slot, len(r.slots), ErrSlotRange)
	}
	s := r.slots[slot]
	r.slots = append(r.slots[:slot], r.slots[slot+1:]...)
	return s, nil
}

// Reorder moves the session at from to to. Every slot is recomputed in one
// pass with ReorderedSlot.
func (r *Registry) Reorder(from, to int) error {
	n := len(r.slots)
	if from < 0 || from >= n || to < 0 || to >= n {
		return fmt.Errorf("reorder %d->%d of %d: %w", from, to, n, ErrSlotRange)
	}
	if from == to {
		return nil
	}
	next := make([]*Session, n)
	for i, s := range r.slots {
		next[ReorderedSlot(i, from, to)] = s
	}
	r.slots = next
	return nil
}

// ReorderedSlot returns where slot idx ends up when from moves to to.
// Moving forward shifts (from, to] down by one, moving backward shifts
// [to, from) up by one; everything else stays.
func ReorderedSlot(idx, from, to int) int {
	switch {
	case idx == from:
		return to
	case from < to && idx > from && idx <= to:
		return idx - 1
	case from > to && idx >= to && idx < from:
		return idx + 1
	default:
		return idx
	}
}

// Each calls fn for every slot in order
func (r *Registry) Each(fn func(slot int, s *Session)) {
	for i, s := range r.slots {
		fn(i, s)
	}
}

// Clear empties the registry and returns what it held
func (r *Registry) Clear() []*Session {
	out := r.slots
	r.slots = nil
	return out
}
