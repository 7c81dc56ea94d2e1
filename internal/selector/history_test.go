package selector_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iburimskiy/sketchdeck/internal/selector"
)

func TestHistoryEvictsOldestFirst(t *testing.T) {
	h := selector.NewHistory(3)
	for _, image := range []string{"a", "b", "c", "d", "e"} {
		h.Push(image)
		assert.LessOrEqual(t, h.Len(), h.Cap())
	}

	assert.Equal(t, []string{"c", "d", "e"}, h.Entries())
	last, ok := h.Last()
	assert.True(t, ok)
	assert.Equal(t, "e", last)
}

func TestHistoryPopAfterWrap(t *testing.T) {
	h := selector.NewHistory(2)
	h.Push("a")
	h.Push("b")
	h.Push("c")

	popped, ok := h.Pop()
	assert.True(t, ok)
	assert.Equal(t, "c", popped)
	assert.Equal(t, []string{"b"}, h.Entries())

	h.Push("d")
	h.Push("e")
	assert.Equal(t, []string{"d", "e"}, h.Entries())

	h.Pop()
	h.Pop()
	_, ok = h.Pop()
	assert.False(t, ok)
	_, ok = h.Last()
	assert.False(t, ok)
}

func TestHistoryResizeKeepsNewest(t *testing.T) {
	h := selector.NewHistory(4)
	for _, image := range []string{"a", "b", "c", "d"} {
		h.Push(image)
	}

	h.Resize(2)
	assert.Equal(t, 2, h.Cap())
	assert.Equal(t, []string{"c", "d"}, h.Entries())

	h.Resize(5)
	h.Push("e")
	assert.Equal(t, []string{"c", "d", "e"}, h.Entries())

	h.Clear()
	assert.Zero(t, h.Len())
	assert.Empty(t, h.Entries())
}

func TestHistoryMinimumCapacity(t *testing.T) {
	h := selector.NewHistory(0)
	assert.Equal(t, 1, h.Cap())
	h.Push("a")
	h.Push("b")
	assert.Equal(t, []string{"b"}, h.Entries())
}
