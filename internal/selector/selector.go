// Package selector draws images from the active session at random without
// repeating one until the whole session has been shown, and keeps a bounded
// history for stepping back.
package selector

import (
	"errors"
	"math/rand/v2"
)

// ErrEmptySession is returned when there is nothing to draw from.
var ErrEmptySession = errors.New("selector: empty session")

// DefaultHistorySize is used when Options.HistorySize is not positive.
const DefaultHistorySize = 50

// Options configures a Selector.
type Options struct {
	HistorySize int
	// Rand supplies the draws. Nil uses the global source.
	Rand *rand.Rand
}

// Result describes one draw.
type Result struct {
	Image string
	// CycleReset is set when every image had been shown and the used-set was
	// cleared before this draw.
	CycleReset bool
}

// Selector holds the per-session selection state. It is not safe for
// concurrent use; callers drive it from a single event loop.
type Selector struct {
	images    []string
	unique    int
	used      map[string]struct{}
	history   *History
	current   string
	completed int
	intn      func(int) int
}

// New creates a selector over images. The slice is copied.
func New(images []string, opts Options) *Selector {
	size := opts.HistorySize
	if size <= 0 {
		size = DefaultHistorySize
	}
	intn := rand.IntN
	if opts.Rand != nil {
		intn = opts.Rand.IntN
	}
	session := make([]string, len(images))
	copy(session, images)
	// The used-set is compared against the number of distinct images so
	// duplicate catalog entries cannot keep it from ever filling up.
	distinct := make(map[string]struct{}, len(session))
	for _, image := range session {
		distinct[image] = struct{}{}
	}
	return &Selector{
		images:  session,
		unique:  len(distinct),
		used:    make(map[string]struct{}, len(images)),
		history: NewHistory(size),
		intn:    intn,
	}
}

// Next draws an unused image, records it in history and makes it current.
// completed counts the advance toward the completion limit.
func (s *Selector) Next(completed bool) (Result, error) {
	if len(s.images) == 0 {
		return Result{}, ErrEmptySession
	}

	var result Result
	if len(s.used) >= s.unique {
		s.used = make(map[string]struct{}, len(s.images))
		result.CycleReset = true
	}

	var image string
	for {
		image = s.images[s.intn(len(s.images))]
		if _, seen := s.used[image]; !seen {
			break
		}
	}

	s.used[image] = struct{}{}
	s.history.Push(image)
	s.current = image
	if completed {
		s.completed++
	}
	result.Image = image
	return result, nil
}

// Back steps to the previously shown image. It does not touch the used-set
// or the completion counter.
func (s *Selector) Back() (string, bool) {
	if s.history.Len() <= 1 {
		return s.current, false
	}
	s.history.Pop()
	prev, _ := s.history.Last()
	s.current = prev
	return prev, true
}

// CanGoBack reports whether Back would move.
func (s *Selector) CanGoBack() bool { return s.history.Len() > 1 }

// Current returns the image on display, or "" before the first draw.
func (s *Selector) Current() string { return s.current }

// Completed returns the number of completed advances.
func (s *Selector) Completed() int { return s.completed }

// Used returns the size of the used-set.
func (s *Selector) Used() int { return len(s.used) }

// HistoryLen returns the number of history entries.
func (s *Selector) HistoryLen() int { return s.history.Len() }

// History returns the shown images oldest first.
func (s *Selector) History() []string { return s.history.Entries() }

// Len returns the session size.
func (s *Selector) Len() int { return len(s.images) }

// Empty reports whether the session has no images.
func (s *Selector) Empty() bool { return len(s.images) == 0 }

// Reset clears the used-set, history, current image and counter.
func (s *Selector) Reset() {
	s.used = make(map[string]struct{}, len(s.images))
	s.history.Clear()
	s.current = ""
	s.completed = 0
}
