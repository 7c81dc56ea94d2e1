package selector

// History is a fixed-capacity ring of shown images. Pushing into a full ring
// overwrites the oldest entry.
type History struct {
	buffer []string
	start  int
	size   int
}

// NewHistory returns an empty history holding at most capacity entries.
// Capacities below one are raised to one.
func NewHistory(capacity int) *History {
	if capacity < 1 {
		capacity = 1
	}
	return &History{buffer: make([]string, capacity)}
}

// Push appends image, evicting the oldest entry when full.
func (h *History) Push(image string) {
	if h.size < len(h.buffer) {
		h.buffer[h.index(h.size)] = image
		h.size++
		return
	}
	h.buffer[h.start] = image
	h.start++
	if h.start >= len(h.buffer) {
		h.start = 0
	}
}

// Pop removes and returns the most recent entry.
func (h *History) Pop() (string, bool) {
	if h.size == 0 {
		return "", false
	}
	idx := h.index(h.size - 1)
	image := h.buffer[idx]
	h.buffer[idx] = ""
	h.size--
	return image, true
}

// Last returns the most recent entry.
func (h *History) Last() (string, bool) {
	if h.size == 0 {
		return "", false
	}
	return h.buffer[h.index(h.size-1)], true
}

// Len returns the number of stored entries.
func (h *History) Len() int { return h.size }

// Cap returns the capacity.
func (h *History) Cap() int { return len(h.buffer) }

// Entries returns the stored entries oldest first.
func (h *History) Entries() []string {
	out := make([]string, 0, h.size)
	for i := 0; i < h.size; i++ {
		out = append(out, h.buffer[h.index(i)])
	}
	return out
}

// Resize changes the capacity, keeping the most recent entries.
func (h *History) Resize(capacity int) {
	if capacity < 1 {
		capacity = 1
	}
	entries := h.Entries()
	if len(entries) > capacity {
		entries = entries[len(entries)-capacity:]
	}
	h.buffer = make([]string, capacity)
	h.start = 0
	h.size = copy(h.buffer, entries)
}

// Clear drops every entry.
func (h *History) Clear() {
	for i := range h.buffer {
		h.buffer[i] = ""
	}
	h.start = 0
	h.size = 0
}

func (h *History) index(offset int) int {
	idx := h.start + offset
	if idx >= len(h.buffer) {
		idx -= len(h.buffer)
	}
	return idx
}
