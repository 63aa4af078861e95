package memory

import "brigid/pkg/flamewhisper"

// Ring is a fixed-capacity buffer of snapshots iterated newest first.
// Pushing onto a full ring silently drops the oldest entry.
type Ring struct {
	buf  []flamewhisper.Snapshot
	head int // slot of the newest entry
	n    int
}

// NewRing creates an empty ring holding at most capacity snapshots.
func NewRing(capacity int) *Ring {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring{buf: make([]flamewhisper.Snapshot, capacity)}
}

// RingFrom builds a ring from a newest-first list, keeping only the
// newest capacity entries.
func RingFrom(capacity int, items []flamewhisper.Snapshot) *Ring {
	r := NewRing(capacity)
	if len(items) > capacity {
		items = items[:capacity]
	}
	for i := len(items) - 1; i >= 0; i-- {
		r.Push(items[i])
	}
	return r
}

func (r *Ring) Cap() int { return len(r.buf) }
func (r *Ring) Len() int { return r.n }

// Push makes s the newest entry.
func (r *Ring) Push(s flamewhisper.Snapshot) {
	r.head = (r.head - 1 + len(r.buf)) % len(r.buf)
	r.buf[r.head] = s
	if r.n < len(r.buf) {
		r.n++
	}
}

// At returns the i-th newest entry.
func (r *Ring) At(i int) (flamewhisper.Snapshot, bool) {
	if i < 0 || i >= r.n {
		return flamewhisper.Snapshot{}, false
	}
	return r.buf[(r.head+i)%len(r.buf)], true
}

// Delete removes the i-th newest entry, keeping the order of the rest.
func (r *Ring) Delete(i int) bool {
	if i < 0 || i >= r.n {
		return false
	}
	// Close the gap by moving newer entries one slot towards the old end.
	for j := i; j > 0; j-- {
		r.buf[(r.head+j)%len(r.buf)] = r.buf[(r.head+j-1)%len(r.buf)]
	}
	r.buf[r.head] = flamewhisper.Snapshot{}
	r.head = (r.head + 1) % len(r.buf)
	r.n--
	return true
}

// Items returns a newest-first copy of the contents.
func (r *Ring) Items() []flamewhisper.Snapshot {
	out := make([]flamewhisper.Snapshot, r.n)
	for i := range out {
		out[i] = r.buf[(r.head+i)%len(r.buf)]
	}
	return out
}
