package memory

import (
	"encoding/json"
	"errors"

	"brigid/internal/logger"
	"brigid/pkg/flamewhisper"
)

// DefaultKey names the slot that holds the snapshot list.
const DefaultKey = "brigid_memory"

const logModule = "memory"

// ErrNotFound is returned by a KV when the key has never been written.
var ErrNotFound = errors.New("memory: key not found")

// KV is a single-slot-per-key persistent store.
type KV interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
}

// FailureRecorder is told about every persistence failure Memory absorbs.
type FailureRecorder interface {
	MemoryFailure(op string)
}

// Memory keeps the most recent snapshots in one KV slot as a JSON array,
// newest first. Storage failures never reach the caller: reads degrade to
// an empty list and writes become no-ops.
type Memory struct {
	store    KV
	key      string
	capacity int
	recorder FailureRecorder
}

// New creates a Memory over store using DefaultKey. recorder may be nil.
func New(store KV, recorder FailureRecorder) *Memory {
	return &Memory{
		store:    store,
		key:      DefaultKey,
		capacity: flamewhisper.MemoryCapacity,
		recorder: recorder,
	}
}

// Load returns the saved snapshots, newest first.
func (m *Memory) Load() []flamewhisper.Snapshot {
	return m.ring().Items()
}

// Save prepends s, evicting the oldest snapshot when full.
func (m *Memory) Save(s flamewhisper.Snapshot) {
	r := m.ring()
	r.Push(s)
	m.persist(r)
}

// Delete removes the snapshot at position index. Out-of-range indexes are
// ignored.
func (m *Memory) Delete(index int) {
	r := m.ring()
	if !r.Delete(index) {
		logger.Debug(logModule, "delete index %d out of range (have %d)", index, r.Len())
		return
	}
	m.persist(r)
}

func (m *Memory) ring() *Ring {
	data, err := m.store.Get(m.key)
	if errors.Is(err, ErrNotFound) {
		return NewRing(m.capacity)
	}
	if err != nil {
		m.fail("load", err)
		return NewRing(m.capacity)
	}

	var items []flamewhisper.Snapshot
	if err := json.Unmarshal(data, &items); err != nil {
		m.fail("decode", err)
		return NewRing(m.capacity)
	}
	return RingFrom(m.capacity, items)
}

func (m *Memory) persist(r *Ring) {
	data, err := json.Marshal(r.Items())
	if err != nil {
		m.fail("encode", err)
		return
	}
	if err := m.store.Set(m.key, data); err != nil {
		m.fail("save", err)
	}
}

func (m *Memory) fail(op string, err error) {
	logger.Warn(logModule, "%s %q failed: %v", op, m.key, err)
	if m.recorder != nil {
		m.recorder.MemoryFailure(op)
	}
}
