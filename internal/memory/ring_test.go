package memory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brigid/pkg/flamewhisper"
)

func snap(id string) flamewhisper.Snapshot {
	return flamewhisper.Snapshot{
		ID:         id,
		ImageSrc:   "data:image/png;base64,AAAA",
		ReportText: "report " + id,
		Time:       time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC),
	}
}

func ids(items []flamewhisper.Snapshot) []string {
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = s.ID
	}
	return out
}

func TestRingPushEvictsOldest(t *testing.T) {
	r := NewRing(4)
	for _, id := range []string{"a", "b", "c", "d"} {
		r.Push(snap(id))
	}
	assert.Equal(t, []string{"d", "c", "b", "a"}, ids(r.Items()))

	r.Push(snap("e"))
	assert.Equal(t, 4, r.Len())
	assert.Equal(t, []string{"e", "d", "c", "b"}, ids(r.Items()))

	s, ok := r.At(0)
	require.True(t, ok)
	assert.Equal(t, "e", s.ID)
	_, ok = r.At(4)
	assert.False(t, ok)
}

func TestRingDelete(t *testing.T) {
	tests := []struct {
		name  string
		index int
		want  []string
		ok    bool
	}{
		{"newest", 0, []string{"d", "c", "b"}, true},
		{"middle", 1, []string{"e", "c", "b"}, true},
		{"oldest", 3, []string{"e", "d", "c"}, true},
		{"out of range", 4, []string{"e", "d", "c", "b"}, false},
		{"negative", -1, []string{"e", "d", "c", "b"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Wrapped ring: head is not at slot 0
			r := NewRing(4)
			for _, id := range []string{"a", "b", "c", "d", "e"} {
				r.Push(snap(id))
			}

			assert.Equal(t, tt.ok, r.Delete(tt.index))
			assert.Equal(t, tt.want, ids(r.Items()))

			r.Push(snap("f"))
			assert.Equal(t, "f", r.Items()[0].ID)
			assert.LessOrEqual(t, r.Len(), 4)
		})
	}
}

func TestRingFromTruncates(t *testing.T) {
	items := []flamewhisper.Snapshot{snap("1"), snap("2"), snap("3"), snap("4"), snap("5")}
	r := RingFrom(4, items)
	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(r.Items()))
	assert.Equal(t, 4, r.Cap())
}

func TestRingEmpty(t *testing.T) {
	r := NewRing(4)
	assert.Empty(t, r.Items())
	assert.NotNil(t, r.Items())
	assert.False(t, r.Delete(0))
}
